package repo

import (
	"NoteKeeper/internal/model"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// NoteRepository — хранилище заметок. Заметка адресуется парой (владелец, заголовок).
type NoteRepository interface {
	// Create сохраняет новую заметку. Дубликат заголовка у владельца даёт ErrConflict,
	// чужая или несуществующая папка — ErrInvalidParent.
	Create(ctx context.Context, note *model.Note) error

	// GetByTitle возвращает заметку вместе с тегами.
	GetByTitle(ctx context.Context, ownerID int64, title string) (*model.Note, error)

	// ListByOwner возвращает до limit заметок, последние изменённые первыми.
	ListByOwner(ctx context.Context, ownerID int64, limit int) ([]model.Note, error)

	// UpdateContent заменяет текст заметки и обновляет modified_at.
	UpdateContent(ctx context.Context, ownerID int64, title, content string) error

	// Rename меняет заголовок заметки.
	Rename(ctx context.Context, ownerID int64, title, newTitle string) error

	// SetFolder помещает заметку в папку; nil убирает заметку из папки.
	SetFolder(ctx context.Context, ownerID int64, title string, folderID *int64) error

	// SetReminderDate задаёт или снимает дату напоминания заметки.
	SetReminderDate(ctx context.Context, ownerID int64, title string, date *string) error

	// Delete удаляет заметку, её связи с тегами и ссылки задач на неё.
	Delete(ctx context.Context, ownerID int64, title string) error

	// Search ищет подстроку в заголовке или тексте заметок владельца.
	Search(ctx context.Context, ownerID int64, query string) ([]model.Note, error)

	// AddTags привязывает теги к заметке и возвращает итоговый набор.
	AddTags(ctx context.Context, ownerID int64, title string, names []string) ([]string, error)
}

// now возвращает текущее время для modified_at. Переопределяется в тестах.
var now = func() time.Time { return time.Now().UTC() }

type noteRepo struct {
	db *gorm.DB
}

// NewNoteRepository создаёт реализацию хранилища заметок.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepo{db: db}
}

func (r *noteRepo) Create(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if note.FolderID != nil {
			if err := ensureFolder(tx, note.OwnerID, *note.FolderID); err != nil {
				if errors.Is(err, ErrNotFound) {
					return ErrInvalidParent
				}
				return err
			}
		}
		ts := now()
		note.CreatedAt = ts
		note.ModifiedAt = ts
		if err := tx.Omit("Owner", "Folder").Create(note).Error; err != nil {
			return translate(err)
		}
		note.Tags = []string{}
		return nil
	})
}

func (r *noteRepo) GetByTitle(ctx context.Context, ownerID int64, title string) (*model.Note, error) {
	var note model.Note
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ? AND title = ?", ownerID, title).Take(&note).Error; err != nil {
			return translate(err)
		}
		tags, err := tagsFor(tx, model.TagKindNote, note.ID)
		if err != nil {
			return err
		}
		note.Tags = tags
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepo) ListByOwner(ctx context.Context, ownerID int64, limit int) ([]model.Note, error) {
	var notes []model.Note
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("owner_id = ?", ownerID).
			Order("modified_at DESC").Order("id DESC").
			Limit(limit).
			Find(&notes).Error
		if err != nil {
			return err
		}
		return fillNoteTags(tx, notes)
	})
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepo) UpdateContent(ctx context.Context, ownerID int64, title, content string) error {
	return r.updateByTitle(ctx, ownerID, title, map[string]any{
		"content":     content,
		"modified_at": now(),
	})
}

func (r *noteRepo) Rename(ctx context.Context, ownerID int64, title, newTitle string) error {
	return r.updateByTitle(ctx, ownerID, title, map[string]any{
		"title":       newTitle,
		"modified_at": now(),
	})
}

func (r *noteRepo) SetFolder(ctx context.Context, ownerID int64, title string, folderID *int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if folderID != nil {
			if err := ensureFolder(tx, ownerID, *folderID); err != nil {
				if errors.Is(err, ErrNotFound) {
					return ErrInvalidParent
				}
				return err
			}
		}
		res := tx.Model(&model.Note{}).
			Where("owner_id = ? AND title = ?", ownerID, title).
			Update("folder_id", folderID)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *noteRepo) SetReminderDate(ctx context.Context, ownerID int64, title string, date *string) error {
	return r.updateByTitle(ctx, ownerID, title, map[string]any{"reminder_date": date})
}

func (r *noteRepo) updateByTitle(ctx context.Context, ownerID int64, title string, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&model.Note{}).
		Where("owner_id = ? AND title = ?", ownerID, title).
		Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *noteRepo) Delete(ctx context.Context, ownerID int64, title string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := noteID(tx, ownerID, title)
		if err != nil {
			return err
		}
		if err := deleteLinks(tx, model.TagKindNote, id); err != nil {
			return fmt.Errorf("delete note tags: %w", err)
		}
		if err := tx.Model(&model.Todo{}).Where("note_id = ?", id).Update("note_id", nil).Error; err != nil {
			return fmt.Errorf("unlink todos: %w", err)
		}
		if err := tx.Delete(&model.Note{}, id).Error; err != nil {
			return fmt.Errorf("delete note: %w", err)
		}
		return nil
	})
}

func (r *noteRepo) Search(ctx context.Context, ownerID int64, query string) ([]model.Note, error) {
	pattern := "%" + escapeLike(query) + "%"
	var notes []model.Note
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("owner_id = ?", ownerID).
			Where(`(title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\')`, pattern, pattern).
			Order("modified_at DESC").Order("id DESC").
			Find(&notes).Error
		if err != nil {
			return err
		}
		return fillNoteTags(tx, notes)
	})
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepo) AddTags(ctx context.Context, ownerID int64, title string, names []string) ([]string, error) {
	var result []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := noteID(tx, ownerID, title)
		if err != nil {
			return err
		}
		if err := attachTags(tx, model.TagKindNote, id, names); err != nil {
			return err
		}
		result, err = tagsFor(tx, model.TagKindNote, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// noteID находит id заметки владельца по заголовку.
func noteID(tx *gorm.DB, ownerID int64, title string) (int64, error) {
	var note model.Note
	err := tx.Select("id").Where("owner_id = ? AND title = ?", ownerID, title).Take(&note).Error
	if err != nil {
		return 0, translate(err)
	}
	return note.ID, nil
}

func fillNoteTags(tx *gorm.DB, notes []model.Note) error {
	ids := make([]int64, len(notes))
	for i := range notes {
		ids[i] = notes[i].ID
	}
	byID, err := tagsForMany(tx, model.TagKindNote, ids)
	if err != nil {
		return err
	}
	for i := range notes {
		notes[i].Tags = byID[notes[i].ID]
		if notes[i].Tags == nil {
			notes[i].Tags = []string{}
		}
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
