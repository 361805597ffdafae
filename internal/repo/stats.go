package repo

import (
	"NoteKeeper/internal/model"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// StatsRepository считает сводку по данным пользователя.
type StatsRepository interface {
	// Get читает все счётчики в одной транзакции.
	Get(ctx context.Context, ownerID int64) (*model.Stats, error)
}

type statsRepo struct {
	db *gorm.DB
}

// NewStatsRepository создаёт реализацию StatsRepository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) Get(ctx context.Context, ownerID int64) (*model.Stats, error) {
	var stats model.Stats
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		counters := []struct {
			name  string
			model any
			dst   *int64
		}{
			{"notes", &model.Note{}, &stats.TotalNotes},
			{"todos", &model.Todo{}, &stats.TotalTodos},
			{"folders", &model.Folder{}, &stats.TotalFolders},
			{"reminders", &model.Reminder{}, &stats.TotalReminders},
		}
		for _, c := range counters {
			if err := tx.Model(c.model).Where("owner_id = ?", ownerID).Count(c.dst).Error; err != nil {
				return fmt.Errorf("count %s: %w", c.name, err)
			}
		}

		err := tx.Table("note_tags").
			Joins("JOIN notes ON notes.id = note_tags.note_id").
			Where("notes.owner_id = ?", ownerID).
			Distinct("note_tags.tag_id").
			Count(&stats.TotalTags).Error
		if err != nil {
			return fmt.Errorf("count tags: %w", err)
		}

		var recent model.Note
		err = tx.Select("title", "modified_at").
			Where("owner_id = ?", ownerID).
			Order("modified_at DESC").Order("id DESC").
			Take(&recent).Error
		switch {
		case err == nil:
			stats.RecentNote = &model.RecentNote{Title: recent.Title, ModifiedAt: recent.ModifiedAt}
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return fmt.Errorf("recent note: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
