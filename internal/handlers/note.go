package handlers

import (
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/service"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	listPreviewLen   = 100
	searchPreviewLen = 150
)

// NoteHandler — CRUD, поиск и теги заметок.
type NoteHandler struct {
	NoteService *service.NoteService
	Logger      *zap.SugaredLogger
}

func NewNoteHandler(noteService *service.NoteService, logger *zap.SugaredLogger) *NoteHandler {
	return &NoteHandler{NoteService: noteService, Logger: logger}
}

// noteSummary — элемент списка заметок с укороченным текстом.
type noteSummary struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Preview      string    `json:"preview"`
	FolderID     *int64    `json:"folder_id"`
	ReminderDate *string   `json:"reminder_date"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `json:"modified_at"`
}

func summaries(notes []model.Note, n int) []noteSummary {
	out := make([]noteSummary, 0, len(notes))
	for _, note := range notes {
		out = append(out, noteSummary{
			ID:           note.ID,
			Title:        note.Title,
			Preview:      preview(note.Content, n),
			FolderID:     note.FolderID,
			ReminderDate: note.ReminderDate,
			Tags:         note.Tags,
			CreatedAt:    note.CreatedAt,
			ModifiedAt:   note.ModifiedAt,
		})
	}
	return out
}

// List отдаёт последние изменённые заметки
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			badRequest(w, "invalid limit")
			return
		}
		limit = n
	}
	notes, err := h.NoteService.List(r.Context(), userID(r), limit)
	if err != nil {
		writeError(w, h.Logger, "List notes", err)
		return
	}
	writeOK(w, http.StatusOK, summaries(notes, listPreviewLen))
}

type createNoteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	FolderID *int64 `json:"folder_id"`
}

// Create создаёт заметку
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	note, err := h.NoteService.Create(r.Context(), userID(r), service.CreateNoteRequest{
		Title:    req.Title,
		Content:  req.Content,
		FolderID: req.FolderID,
	})
	if err != nil {
		writeError(w, h.Logger, "Create note", err)
		return
	}
	writeOK(w, http.StatusCreated, note)
}

// Get отдаёт заметку целиком
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	title, err := titleParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	note, err := h.NoteService.Get(r.Context(), userID(r), title)
	if err != nil {
		writeError(w, h.Logger, "Get note", err)
		return
	}
	writeOK(w, http.StatusOK, note)
}

type updateNoteRequest struct {
	Content string `json:"content"`
}

// Update заменяет текст заметки
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	title, err := titleParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req updateNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := h.NoteService.Update(r.Context(), userID(r), title, req.Content); err != nil {
		writeError(w, h.Logger, "Update note", err)
		return
	}
	writeOK(w, http.StatusOK, nil)
}

// Delete удаляет заметку
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	title, err := titleParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := h.NoteService.Delete(r.Context(), userID(r), title); err != nil {
		writeError(w, h.Logger, "Delete note", err)
		return
	}
	writeOK(w, http.StatusOK, nil)
}

// Search ищет подстроку в заголовках и текстах
func (h *NoteHandler) Search(w http.ResponseWriter, r *http.Request) {
	notes, err := h.NoteService.Search(r.Context(), userID(r), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, h.Logger, "Search notes", err)
		return
	}
	writeOK(w, http.StatusOK, summaries(notes, searchPreviewLen))
}

type tagsRequest struct {
	Tags []string `json:"tags"`
}

// AddTags привязывает теги к заметке
func (h *NoteHandler) AddTags(w http.ResponseWriter, r *http.Request) {
	title, err := titleParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req tagsRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	tags, err := h.NoteService.AddTags(r.Context(), userID(r), title, req.Tags)
	if err != nil {
		writeError(w, h.Logger, "Tag note", err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"tags": tags})
}

type setFolderRequest struct {
	FolderID *int64 `json:"folder_id"`
}

// SetFolder перемещает заметку в папку; folder_id: null убирает её из папки
func (h *NoteHandler) SetFolder(w http.ResponseWriter, r *http.Request) {
	title, err := titleParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req setFolderRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := h.NoteService.SetFolder(r.Context(), userID(r), title, req.FolderID); err != nil {
		writeError(w, h.Logger, "Move note", err)
		return
	}
	writeOK(w, http.StatusOK, nil)
}

type renameNoteRequest struct {
	Title string `json:"title"`
}

// Rename меняет заголовок заметки
func (h *NoteHandler) Rename(w http.ResponseWriter, r *http.Request) {
	title, err := titleParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req renameNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := h.NoteService.Rename(r.Context(), userID(r), title, req.Title); err != nil {
		writeError(w, h.Logger, "Rename note", err)
		return
	}
	writeOK(w, http.StatusOK, nil)
}

type reminderDateRequest struct {
	ReminderDate *string `json:"reminder_date"`
}

// SetReminder задаёт или снимает дату напоминания заметки
func (h *NoteHandler) SetReminder(w http.ResponseWriter, r *http.Request) {
	title, err := titleParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req reminderDateRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := h.NoteService.SetReminderDate(r.Context(), userID(r), title, req.ReminderDate); err != nil {
		writeError(w, h.Logger, "Set note reminder", err)
		return
	}
	writeOK(w, http.StatusOK, nil)
}
