package handlers_test

import (
	"NoteKeeper/internal/config"
	"NoteKeeper/internal/handlers"
	"NoteKeeper/internal/repo"
	"NoteKeeper/internal/service"
	"NoteKeeper/internal/session"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// apiResponse — разобранный конверт ответа.
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func newServices(t *testing.T, users repo.UserRepository) (handlers.Services, *session.Registry) {
	t.Helper()
	db, err := repo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if users == nil {
		users = repo.NewUserRepository(db)
	}
	logger := zap.NewNop().Sugar()
	sessions := session.New()
	tags := repo.NewTagRepository(db)
	return handlers.Services{
		Users:     service.NewUserService(users, sessions, logger),
		Folders:   service.NewFolderService(repo.NewFolderRepository(db), logger),
		Notes:     service.NewNoteService(repo.NewNoteRepository(db), logger, 50),
		Todos:     service.NewTodoService(repo.NewTodoRepository(db), tags, logger),
		Reminders: service.NewReminderService(repo.NewReminderRepository(db), logger),
		Stats:     service.NewStatsService(repo.NewStatsRepository(db), tags, logger),
	}, sessions
}

// newTestRouter собирает роутер поверх in-memory SQLite; users позволяет подменить репозиторий пользователей.
func newTestRouter(t *testing.T, users repo.UserRepository) (http.Handler, *session.Registry) {
	t.Helper()
	svc, sessions := newServices(t, users)
	cfg := &config.Config{CORSOrigins: []string{"http://allowed.test"}}
	h := handlers.NewHandler(svc, zap.NewNop().Sugar(), cfg)
	return h.Router, sessions
}

// do выполняет запрос к роутеру и разбирает конверт ответа.
func do(t *testing.T, router http.Handler, method, path, token, body string) (int, apiResponse) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var resp apiResponse
	if rr.Body.Len() > 0 {
		require.NoError(t, json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&resp), rr.Body.String())
	}
	return rr.Code, resp
}

// signIn регистрирует пользователя через API и возвращает токен сессии.
func signIn(t *testing.T, router http.Handler, username string) string {
	t.Helper()
	creds := `{"username":"` + username + `","password":"secret-pw"}`
	code, _ := do(t, router, http.MethodPost, "/api/user/register", "", creds)
	require.Equal(t, http.StatusCreated, code)
	code, resp := do(t, router, http.MethodPost, "/api/user/login", "", creds)
	require.Equal(t, http.StatusOK, code)
	var data struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.SessionID)
	return data.SessionID
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}
