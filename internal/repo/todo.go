package repo

import (
	"NoteKeeper/internal/model"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// TodoRepository — хранилище задач.
type TodoRepository interface {
	// Create сохраняет задачу и привязывает теги в одной транзакции.
	// Если заметка linkedNoteTitle не найдена у владельца, задача создаётся без связи.
	Create(ctx context.Context, todo *model.Todo, linkedNoteTitle string, tags []string) error

	// List возвращает задачи владельца по фильтру, новые первыми.
	List(ctx context.Context, ownerID int64, filter model.TodoFilter) ([]model.Todo, error)

	// Toggle инвертирует признак выполнения и возвращает новое значение.
	Toggle(ctx context.Context, ownerID, todoID int64) (bool, error)

	// Delete удаляет задачу вместе со связями с тегами.
	Delete(ctx context.Context, ownerID, todoID int64) error
}

type todoRepo struct {
	db *gorm.DB
}

// NewTodoRepository создаёт реализацию хранилища задач.
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &todoRepo{db: db}
}

func (r *todoRepo) Create(ctx context.Context, todo *model.Todo, linkedNoteTitle string, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		todo.NoteID = nil
		todo.NoteTitle = nil
		if linkedNoteTitle != "" {
			id, err := noteID(tx, todo.OwnerID, linkedNoteTitle)
			switch {
			case err == nil:
				title := linkedNoteTitle
				todo.NoteID = &id
				todo.NoteTitle = &title
			case !errors.Is(err, ErrNotFound):
				return err
			}
		}
		todo.Priority = model.NormalizePriority(todo.Priority)

		if err := tx.Omit("Owner", "Note").Create(todo).Error; err != nil {
			return translate(err)
		}
		if err := attachTags(tx, model.TagKindTodo, todo.ID, tags); err != nil {
			return err
		}
		var err error
		todo.Tags, err = tagsFor(tx, model.TagKindTodo, todo.ID)
		return err
	})
}

func (r *todoRepo) List(ctx context.Context, ownerID int64, filter model.TodoFilter) ([]model.Todo, error) {
	var todos []model.Todo
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&model.Todo{}).
			Select("todos.*, notes.title AS note_title").
			Joins("LEFT JOIN notes ON notes.id = todos.note_id").
			Where("todos.owner_id = ?", ownerID)

		switch filter.Status {
		case model.TodoStatusOpen:
			q = q.Where("todos.completed = ?", false)
		case model.TodoStatusDone:
			q = q.Where("todos.completed = ?", true)
		}
		if filter.Priority != "" {
			q = q.Where("todos.priority = ?", filter.Priority)
		}
		if filter.LinkedNote != "" {
			q = q.Where("notes.title = ?", filter.LinkedNote)
		}

		err := q.Order("todos.created_at DESC").Order("todos.id DESC").Find(&todos).Error
		if err != nil {
			return err
		}

		ids := make([]int64, len(todos))
		for i := range todos {
			ids[i] = todos[i].ID
		}
		byID, err := tagsForMany(tx, model.TagKindTodo, ids)
		if err != nil {
			return err
		}
		for i := range todos {
			todos[i].Tags = byID[todos[i].ID]
			if todos[i].Tags == nil {
				todos[i].Tags = []string{}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if filter.Tag == "" {
		return todos, nil
	}
	filtered := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		for _, name := range t.Tags {
			if name == filter.Tag {
				filtered = append(filtered, t)
				break
			}
		}
	}
	return filtered, nil
}

func (r *todoRepo) Toggle(ctx context.Context, ownerID, todoID int64) (bool, error) {
	var completed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var todo model.Todo
		if err := tx.Select("id", "completed").Where("id = ? AND owner_id = ?", todoID, ownerID).Take(&todo).Error; err != nil {
			return translate(err)
		}
		completed = !todo.Completed
		return tx.Model(&model.Todo{}).Where("id = ?", todo.ID).Update("completed", completed).Error
	})
	if err != nil {
		return false, err
	}
	return completed, nil
}

func (r *todoRepo) Delete(ctx context.Context, ownerID, todoID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureOwned(tx, model.TagKindTodo, ownerID, todoID); err != nil {
			return err
		}
		if err := deleteLinks(tx, model.TagKindTodo, todoID); err != nil {
			return fmt.Errorf("delete todo tags: %w", err)
		}
		if err := tx.Delete(&model.Todo{}, todoID).Error; err != nil {
			return fmt.Errorf("delete todo: %w", err)
		}
		return nil
	})
}
