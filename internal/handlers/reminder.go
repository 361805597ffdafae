package handlers

import (
	"NoteKeeper/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// ReminderHandler — напоминания.
type ReminderHandler struct {
	ReminderService *service.ReminderService
	Logger          *zap.SugaredLogger
}

func NewReminderHandler(reminderService *service.ReminderService, logger *zap.SugaredLogger) *ReminderHandler {
	return &ReminderHandler{ReminderService: reminderService, Logger: logger}
}

func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.ReminderService.List(r.Context(), userID(r))
	if err != nil {
		writeError(w, h.Logger, "List reminders", err)
		return
	}
	writeOK(w, http.StatusOK, reminders)
}

type createReminderRequest struct {
	Text string `json:"text"`
	Time string `json:"time"`
}

func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReminderRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	reminder, err := h.ReminderService.Create(r.Context(), userID(r), req.Text, req.Time)
	if err != nil {
		writeError(w, h.Logger, "Create reminder", err)
		return
	}
	writeOK(w, http.StatusCreated, reminder)
}

func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := h.ReminderService.Delete(r.Context(), userID(r), id); err != nil {
		writeError(w, h.Logger, "Delete reminder", err)
		return
	}
	writeOK(w, http.StatusOK, nil)
}
