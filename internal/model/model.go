package model

// All возвращает все модели, для которых нужны миграции.
func All() []any {
	return []any{
		&User{}, &Folder{}, &Note{}, &Tag{}, &NoteTag{}, &Todo{}, &TodoTag{}, &Reminder{},
	}
}
