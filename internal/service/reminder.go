package service

import (
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/repo"
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"
)

// ReminderService — напоминания пользователя.
type ReminderService struct {
	repo   repo.ReminderRepository
	logger *zap.SugaredLogger
}

func NewReminderService(r repo.ReminderRepository, logger *zap.SugaredLogger) *ReminderService {
	return &ReminderService{repo: r, logger: logger}
}

// Create сохраняет напоминание. Время хранится в UTC (RFC3339).
func (s *ReminderService) Create(ctx context.Context, ownerID int64, text, when string) (*model.Reminder, error) {
	text = strings.TrimSpace(text)
	when = strings.TrimSpace(when)
	err := validation.Errors{
		"text": validation.Validate(text, validation.Required),
		"time": validation.Validate(when, validation.Required, reminderTimeRule),
	}.Filter()
	if err != nil {
		return nil, invalid(err)
	}
	instant, _ := reminderInstant(when)
	reminder := &model.Reminder{OwnerID: ownerID, Text: text, Time: instant}
	if err := s.repo.Create(ctx, reminder); err != nil {
		return nil, failure(s.logger, "Create reminder", ownerID, err)
	}
	return reminder, nil
}

func (s *ReminderService) List(ctx context.Context, ownerID int64) ([]model.Reminder, error) {
	reminders, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, failure(s.logger, "List reminders", ownerID, err)
	}
	return reminders, nil
}

func (s *ReminderService) Delete(ctx context.Context, ownerID, reminderID int64) error {
	if err := s.repo.Delete(ctx, ownerID, reminderID); err != nil {
		return failure(s.logger, "Delete reminder", ownerID, err)
	}
	return nil
}
