package model

// TagKind — тип сущности, к которой привязывается тег.
type TagKind string

const (
	TagKindNote TagKind = "note"
	TagKindTodo TagKind = "todo"
)

// Tag — глобальный тег. Имя уникально без учёта владельца и без нормализации регистра.
type Tag struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// NoteTag — связь заметки с тегом.
type NoteTag struct {
	NoteID int64 `gorm:"primaryKey;autoIncrement:false"`
	Note   *Note `gorm:"constraint:OnDelete:CASCADE"`
	TagID  int64 `gorm:"primaryKey;autoIncrement:false;index"`
	Tag    *Tag  `gorm:"constraint:OnDelete:CASCADE"`
}

// TodoTag — связь задачи с тегом.
type TodoTag struct {
	TodoID int64 `gorm:"primaryKey;autoIncrement:false"`
	Todo   *Todo `gorm:"constraint:OnDelete:CASCADE"`
	TagID  int64 `gorm:"primaryKey;autoIncrement:false;index"`
	Tag    *Tag  `gorm:"constraint:OnDelete:CASCADE"`
}

// TagUsage — тег и число сущностей пользователя, которые на него ссылаются.
type TagUsage struct {
	Name  string `json:"name"`
	Notes int64  `json:"notes"`
	Todos int64  `json:"todos"`
}
