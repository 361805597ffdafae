package repo

import (
	"NoteKeeper/internal/model"
	"context"

	"gorm.io/gorm"
)

// ReminderRepository — хранилище напоминаний.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *model.Reminder) error
	// List возвращает напоминания владельца в порядке времени срабатывания;
	// remind_at хранится в UTC RFC3339, поэтому строковая сортировка хронологична.
	List(ctx context.Context, ownerID int64) ([]model.Reminder, error)
	Delete(ctx context.Context, ownerID, reminderID int64) error
}

type reminderRepo struct {
	db *gorm.DB
}

// NewReminderRepository создаёт реализацию хранилища напоминаний.
func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &reminderRepo{db: db}
}

func (r *reminderRepo) Create(ctx context.Context, reminder *model.Reminder) error {
	if err := r.db.WithContext(ctx).Omit("Owner").Create(reminder).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *reminderRepo) List(ctx context.Context, ownerID int64) ([]model.Reminder, error) {
	var reminders []model.Reminder
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("remind_at ASC").Order("id ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *reminderRepo) Delete(ctx context.Context, ownerID, reminderID int64) error {
	res := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", reminderID, ownerID).Delete(&model.Reminder{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
