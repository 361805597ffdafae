package model

import "time"

// Reminder — напоминание пользователя, не связанное с заметками и задачами.
type Reminder struct {
	ID      int64 `gorm:"primaryKey" json:"id"`
	OwnerID int64 `gorm:"not null;index" json:"-"`
	Owner   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Text string `gorm:"not null" json:"text"`
	// Time хранится строкой в том виде, в котором её передал клиент.
	Time string `gorm:"column:remind_at;not null;index" json:"time"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
