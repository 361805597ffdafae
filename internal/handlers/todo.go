package handlers

import (
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// TodoHandler — задачи.
type TodoHandler struct {
	TodoService *service.TodoService
	Logger      *zap.SugaredLogger
}

func NewTodoHandler(todoService *service.TodoService, logger *zap.SugaredLogger) *TodoHandler {
	return &TodoHandler{TodoService: todoService, Logger: logger}
}

// List отдаёт задачи; фильтры status, tag, priority, note передаются в query
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	todos, err := h.TodoService.List(r.Context(), userID(r), model.TodoFilter{
		Status:     q.Get("status"),
		Tag:        q.Get("tag"),
		Priority:   q.Get("priority"),
		LinkedNote: q.Get("note"),
	})
	if err != nil {
		writeError(w, h.Logger, "List todos", err)
		return
	}
	writeOK(w, http.StatusOK, todos)
}

type createTodoRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     *string  `json:"due_date"`
	Priority    string   `json:"priority"`
	NoteTitle   string   `json:"note_title"`
	Tags        []string `json:"tags"`
}

// Create создаёт задачу
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	todo, err := h.TodoService.Create(r.Context(), userID(r), service.CreateTodoRequest{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		NoteTitle:   req.NoteTitle,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(w, h.Logger, "Create todo", err)
		return
	}
	writeOK(w, http.StatusCreated, todo)
}

// Toggle переключает выполнение задачи
func (h *TodoHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	completed, err := h.TodoService.Toggle(r.Context(), userID(r), id)
	if err != nil {
		writeError(w, h.Logger, "Toggle todo", err)
		return
	}
	writeOK(w, http.StatusOK, map[string]bool{"completed": completed})
}

// Delete удаляет задачу
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := h.TodoService.Delete(r.Context(), userID(r), id); err != nil {
		writeError(w, h.Logger, "Delete todo", err)
		return
	}
	writeOK(w, http.StatusOK, nil)
}

// AddTags привязывает теги к задаче
func (h *TodoHandler) AddTags(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req tagsRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	tags, err := h.TodoService.AddTags(r.Context(), userID(r), id, req.Tags)
	if err != nil {
		writeError(w, h.Logger, "Tag todo", err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"tags": tags})
}
