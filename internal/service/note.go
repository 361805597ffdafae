package service

import (
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/repo"
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"
)

// NoteService — операции над заметками пользователя.
type NoteService struct {
	repo      repo.NoteRepository
	logger    *zap.SugaredLogger
	listLimit int
}

// NewNoteService создаёт сервис заметок. listLimit — размер выдачи списка по умолчанию.
func NewNoteService(r repo.NoteRepository, logger *zap.SugaredLogger, listLimit int) *NoteService {
	return &NoteService{repo: r, logger: logger, listLimit: clampLimit(listLimit, DefaultNotesLimit)}
}

// CreateNoteRequest — данные новой заметки.
type CreateNoteRequest struct {
	Title    string
	Content  string
	FolderID *int64
}

func (r *CreateNoteRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
}

func (r *CreateNoteRequest) validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&r.Content, validation.Required),
	)
}

func validateTitle(title string) error {
	return invalid(validation.Errors{
		"title": validation.Validate(title, validation.Required, validation.RuneLength(1, MaxTitleLength)),
	}.Filter())
}

// Create создаёт заметку.
func (s *NoteService) Create(ctx context.Context, ownerID int64, req CreateNoteRequest) (*model.Note, error) {
	req.normalize()
	if err := req.validate(); err != nil {
		return nil, invalid(err)
	}
	note := &model.Note{
		OwnerID:  ownerID,
		Title:    req.Title,
		Content:  req.Content,
		FolderID: req.FolderID,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, failure(s.logger, "Create note", ownerID, err)
	}
	s.logger.Infow("note created", "user_id", ownerID, "note_id", note.ID)
	return note, nil
}

// Get возвращает заметку по заголовку.
func (s *NoteService) Get(ctx context.Context, ownerID int64, title string) (*model.Note, error) {
	note, err := s.repo.GetByTitle(ctx, ownerID, strings.TrimSpace(title))
	if err != nil {
		return nil, failure(s.logger, "Get note", ownerID, err)
	}
	return note, nil
}

// List возвращает последние изменённые заметки. limit <= 0 означает размер по умолчанию,
// слишком большой limit урезается до MaxNotesLimit.
func (s *NoteService) List(ctx context.Context, ownerID int64, limit int) ([]model.Note, error) {
	notes, err := s.repo.ListByOwner(ctx, ownerID, clampLimit(limit, s.listLimit))
	if err != nil {
		return nil, failure(s.logger, "List notes", ownerID, err)
	}
	return notes, nil
}

// Update заменяет текст заметки.
func (s *NoteService) Update(ctx context.Context, ownerID int64, title, content string) error {
	content = strings.TrimSpace(content)
	err := validation.Errors{
		"content": validation.Validate(content, validation.Required),
	}.Filter()
	if err != nil {
		return invalid(err)
	}
	if err := s.repo.UpdateContent(ctx, ownerID, strings.TrimSpace(title), content); err != nil {
		return failure(s.logger, "Update note", ownerID, err)
	}
	return nil
}

// Rename меняет заголовок заметки.
func (s *NoteService) Rename(ctx context.Context, ownerID int64, title, newTitle string) error {
	newTitle = strings.TrimSpace(newTitle)
	if err := validateTitle(newTitle); err != nil {
		return err
	}
	if err := s.repo.Rename(ctx, ownerID, strings.TrimSpace(title), newTitle); err != nil {
		return failure(s.logger, "Rename note", ownerID, err)
	}
	return nil
}

// SetFolder перемещает заметку в папку; nil убирает её из папки.
func (s *NoteService) SetFolder(ctx context.Context, ownerID int64, title string, folderID *int64) error {
	if err := s.repo.SetFolder(ctx, ownerID, strings.TrimSpace(title), folderID); err != nil {
		return failure(s.logger, "Move note", ownerID, err)
	}
	return nil
}

// SetReminderDate задаёт дату напоминания (YYYY-MM-DD или RFC3339); nil снимает её.
func (s *NoteService) SetReminderDate(ctx context.Context, ownerID int64, title string, date *string) error {
	date = trimmedPtr(date)
	if err := validation.Validate(date, dateRule); err != nil {
		return invalid(validation.Errors{"reminder_date": err})
	}
	if err := s.repo.SetReminderDate(ctx, ownerID, strings.TrimSpace(title), date); err != nil {
		return failure(s.logger, "Set note reminder", ownerID, err)
	}
	return nil
}

// Delete удаляет заметку.
func (s *NoteService) Delete(ctx context.Context, ownerID int64, title string) error {
	if err := s.repo.Delete(ctx, ownerID, strings.TrimSpace(title)); err != nil {
		return failure(s.logger, "Delete note", ownerID, err)
	}
	s.logger.Infow("note deleted", "user_id", ownerID)
	return nil
}

// Search ищет подстроку в заголовках и текстах заметок.
func (s *NoteService) Search(ctx context.Context, ownerID int64, query string) ([]model.Note, error) {
	query = strings.TrimSpace(query)
	err := validation.Errors{
		"query": validation.Validate(query, validation.Required),
	}.Filter()
	if err != nil {
		return nil, invalid(err)
	}
	notes, err := s.repo.Search(ctx, ownerID, query)
	if err != nil {
		return nil, failure(s.logger, "Search notes", ownerID, err)
	}
	return notes, nil
}

// AddTags привязывает теги к заметке и возвращает полный набор её тегов.
func (s *NoteService) AddTags(ctx context.Context, ownerID int64, title string, names []string) ([]string, error) {
	names, err := normalizeTags(names)
	if err != nil {
		return nil, err
	}
	tags, err := s.repo.AddTags(ctx, ownerID, strings.TrimSpace(title), names)
	if err != nil {
		return nil, failure(s.logger, "Tag note", ownerID, err)
	}
	return tags, nil
}

func clampLimit(limit, def int) int {
	switch {
	case limit <= 0:
		return def
	case limit > MaxNotesLimit:
		return MaxNotesLimit
	default:
		return limit
	}
}
