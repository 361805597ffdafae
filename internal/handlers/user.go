package handlers

import (
	"NoteKeeper/internal/middleware"
	"NoteKeeper/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler — регистрация, вход и выход.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register регистрирует пользователя
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.Logger.Warnw("Register: invalid request body", "error", err)
		badRequest(w, err.Error())
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, h.Logger, "Register", err)
		return
	}
	writeOK(w, http.StatusCreated, map[string]any{"id": user.ID, "username": user.Username})
}

// Login открывает сессию и возвращает её токен
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.Logger.Warnw("Login: invalid request body", "error", err)
		badRequest(w, err.Error())
		return
	}

	token, err := h.UserService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, h.Logger, "Login", err)
		return
	}
	writeOK(w, http.StatusOK, map[string]string{"session_id": token})
}

// Logout закрывает текущую сессию
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetTokenFromContext(r.Context())
	if !ok || !h.UserService.Logout(token) {
		writeError(w, h.Logger, "Logout", service.ErrNotAuthenticated)
		return
	}
	writeOK(w, http.StatusOK, nil)
}
