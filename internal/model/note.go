package model

import "time"

// Note — заметка пользователя. Заголовок уникален в пределах владельца.
type Note struct {
	ID      int64 `gorm:"primaryKey" json:"id"`
	OwnerID int64 `gorm:"not null;uniqueIndex:idx_notes_owner_title,priority:1" json:"-"`
	Owner   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Title   string `gorm:"not null;uniqueIndex:idx_notes_owner_title,priority:2" json:"title"`
	Content string `gorm:"not null" json:"content"`

	FolderID *int64  `gorm:"index" json:"folder_id"`
	Folder   *Folder `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`

	ReminderDate *string `json:"reminder_date"`

	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	ModifiedAt time.Time `gorm:"not null;index" json:"modified_at"`

	// Tags заполняется репозиторием из note_tags, в таблице notes не хранится.
	Tags []string `gorm:"-" json:"tags"`
}

// RecentNote — последняя изменённая заметка пользователя.
type RecentNote struct {
	Title      string    `json:"title"`
	ModifiedAt time.Time `json:"modified_at"`
}
