package model

import "time"

// Допустимые приоритеты задачи.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// Фильтр статуса задач.
const (
	TodoStatusOpen = "open"
	TodoStatusDone = "done"
)

// Todo — задача пользователя, опционально связанная с заметкой.
type Todo struct {
	ID      int64 `gorm:"primaryKey" json:"id"`
	OwnerID int64 `gorm:"not null;index" json:"-"`
	Owner   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Title       string  `gorm:"not null" json:"title"`
	Description string  `gorm:"not null;default:''" json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    string  `gorm:"not null;default:normal" json:"priority"`
	Completed   bool    `gorm:"not null;default:false" json:"completed"`

	// при удалении заметки связь обнуляется
	NoteID *int64 `gorm:"index" json:"note_id"`
	Note   *Note  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`

	// NoteTitle читается через LEFT JOIN notes
	NoteTitle *string `gorm:"->;-:migration" json:"note_title"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Tags []string `gorm:"-" json:"tags"`
}

// TodoFilter — фильтры выборки задач; заданные условия объединяются через AND.
type TodoFilter struct {
	Status     string
	Tag        string
	Priority   string
	LinkedNote string
}

// NormalizePriority приводит неизвестный приоритет к normal.
func NormalizePriority(p string) string {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return p
	default:
		return PriorityNormal
	}
}
