package model

import "time"

// Folder — папка пользователя. Папки образуют лес: ParentID ссылается на папку того же владельца.
type Folder struct {
	ID      int64 `gorm:"primaryKey" json:"id"`
	OwnerID int64 `gorm:"not null;index" json:"-"`
	Owner   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Name string `gorm:"not null" json:"name"`

	// удаление родителя каскадно удаляет всё поддерево
	ParentID *int64  `gorm:"index" json:"parent_id"`
	Parent   *Folder `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// FolderNode — узел дерева папок для выдачи клиенту.
type FolderNode struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"`
	ParentID *int64        `json:"parent_id"`
	Children []*FolderNode `json:"children"`
}
