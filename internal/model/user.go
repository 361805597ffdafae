package model

import "time"

// User — учётная запись владельца заметок.
type User struct {
	ID       int64  `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	// Password хранит только bcrypt-хеш пароля.
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
