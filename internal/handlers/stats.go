package handlers

import (
	"NoteKeeper/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// StatsHandler — сводка и список тегов пользователя.
type StatsHandler struct {
	StatsService *service.StatsService
	Logger       *zap.SugaredLogger
}

func NewStatsHandler(statsService *service.StatsService, logger *zap.SugaredLogger) *StatsHandler {
	return &StatsHandler{StatsService: statsService, Logger: logger}
}

func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.StatsService.Stats(r.Context(), userID(r))
	if err != nil {
		writeError(w, h.Logger, "Stats", err)
		return
	}
	writeOK(w, http.StatusOK, stats)
}

func (h *StatsHandler) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.StatsService.Tags(r.Context(), userID(r))
	if err != nil {
		writeError(w, h.Logger, "List tags", err)
		return
	}
	writeOK(w, http.StatusOK, tags)
}
