package service

import (
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/repo"
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"
)

// TodoService — операции над задачами пользователя.
type TodoService struct {
	repo   repo.TodoRepository
	tags   repo.TagRepository
	logger *zap.SugaredLogger
}

// NewTodoService создаёт сервис задач.
func NewTodoService(r repo.TodoRepository, tags repo.TagRepository, logger *zap.SugaredLogger) *TodoService {
	return &TodoService{repo: r, tags: tags, logger: logger}
}

// CreateTodoRequest — данные новой задачи.
type CreateTodoRequest struct {
	Title       string
	Description string
	DueDate     *string
	Priority    string
	// NoteTitle — заголовок заметки для связи; ненайденная заметка связь не создаёт.
	NoteTitle string
	Tags      []string
}

func (r *CreateTodoRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.DueDate = trimmedPtr(r.DueDate)
	// допускаются только точные значения low, normal, high; остальное становится normal
	r.Priority = model.NormalizePriority(strings.TrimSpace(r.Priority))
	r.NoteTitle = strings.TrimSpace(r.NoteTitle)

	tags := r.Tags[:0:0]
	for _, t := range r.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	r.Tags = tags
}

func (r *CreateTodoRequest) validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&r.DueDate, dateRule),
		validation.Field(&r.Tags, validation.Each(validation.RuneLength(1, MaxTagLength))),
	)
}

// Create создаёт задачу, при необходимости связывая её с заметкой и тегами.
func (s *TodoService) Create(ctx context.Context, ownerID int64, req CreateTodoRequest) (*model.Todo, error) {
	req.normalize()
	if err := req.validate(); err != nil {
		return nil, invalid(err)
	}
	todo := &model.Todo{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
	}
	if err := s.repo.Create(ctx, todo, req.NoteTitle, req.Tags); err != nil {
		return nil, failure(s.logger, "Create todo", ownerID, err)
	}
	s.logger.Infow("todo created", "user_id", ownerID, "todo_id", todo.ID, "linked", todo.NoteID != nil)
	return todo, nil
}

func validateFilter(f model.TodoFilter) error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Status, validation.In(model.TodoStatusOpen, model.TodoStatusDone)),
		validation.Field(&f.Priority, validation.In(model.PriorityLow, model.PriorityNormal, model.PriorityHigh)),
	)
}

// List возвращает задачи по фильтру; пустые поля фильтра не ограничивают выборку.
func (s *TodoService) List(ctx context.Context, ownerID int64, filter model.TodoFilter) ([]model.Todo, error) {
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	filter.Priority = strings.TrimSpace(filter.Priority)
	filter.Tag = strings.TrimSpace(filter.Tag)
	filter.LinkedNote = strings.TrimSpace(filter.LinkedNote)
	if err := validateFilter(filter); err != nil {
		return nil, invalid(err)
	}
	todos, err := s.repo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, failure(s.logger, "List todos", ownerID, err)
	}
	return todos, nil
}

// Toggle переключает выполнение задачи и возвращает новое состояние.
func (s *TodoService) Toggle(ctx context.Context, ownerID, todoID int64) (bool, error) {
	completed, err := s.repo.Toggle(ctx, ownerID, todoID)
	if err != nil {
		return false, failure(s.logger, "Toggle todo", ownerID, err)
	}
	return completed, nil
}

// Delete удаляет задачу.
func (s *TodoService) Delete(ctx context.Context, ownerID, todoID int64) error {
	if err := s.repo.Delete(ctx, ownerID, todoID); err != nil {
		return failure(s.logger, "Delete todo", ownerID, err)
	}
	return nil
}

// AddTags привязывает теги к задаче.
func (s *TodoService) AddTags(ctx context.Context, ownerID, todoID int64, names []string) ([]string, error) {
	names, err := normalizeTags(names)
	if err != nil {
		return nil, err
	}
	tags, err := s.tags.Attach(ctx, ownerID, model.TagKindTodo, todoID, names)
	if err != nil {
		return nil, failure(s.logger, "Tag todo", ownerID, err)
	}
	return tags, nil
}
