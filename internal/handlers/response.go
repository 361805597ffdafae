package handlers

import (
	"NoteKeeper/internal/middleware"
	"NoteKeeper/internal/service"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// envelope — общий формат ответа API.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeOK(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// statusFor сопоставляет ошибку сервиса с кодом ответа.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidParent):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError пишет ошибку сервиса. Текст внутренних ошибок клиенту не отдаётся.
func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, op string, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Errorw(op+": internal error", "error", err)
		msg = "internal error"
	} else {
		logger.Debugw(op, "status", status, "error", err)
	}
	writeJSON(w, status, envelope{Message: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, envelope{Message: msg})
}

// decodeJSON читает тело запроса в dst.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// userID возвращает id пользователя, установленный мидлварью авторизации.
func userID(r *http.Request) int64 {
	id, _ := middleware.GetUserIDFromContext(r.Context())
	return id
}

// titleParam возвращает раскодированный заголовок заметки из пути.
// chi сопоставляет маршрут по RawPath, если он есть, и тогда параметр ещё закодирован.
func titleParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "title")
	if r.URL.RawPath == "" {
		return raw, nil
	}
	title, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("invalid title in path: %w", err)
	}
	return title, nil
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", chi.URLParam(r, "id"))
	}
	return id, nil
}

// preview обрезает текст до n символов (рун).
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
