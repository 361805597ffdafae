package model

// Stats — сводные счётчики по данным одного пользователя.
type Stats struct {
	TotalNotes     int64       `json:"total_notes"`
	TotalTags      int64       `json:"total_tags"`
	TotalTodos     int64       `json:"total_todos"`
	TotalFolders   int64       `json:"total_folders"`
	TotalReminders int64       `json:"total_reminders"`
	RecentNote     *RecentNote `json:"recent_note"`
}
