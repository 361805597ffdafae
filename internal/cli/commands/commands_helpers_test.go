package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"NoteKeeper/internal/config"
	"NoteKeeper/internal/handlers"
	"NoteKeeper/internal/repo"
	"NoteKeeper/internal/service"
	"NoteKeeper/internal/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// withTempConfig возвращает конфигурацию, у которой токен лежит во временном каталоге.
func withTempConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	return &config.Config{
		ServerURL: serverURL,
		TokenFile: filepath.Join(t.TempDir(), "NoteKeeper", "token"),
	}
}

// fakeServer отвечает на любой запрос заданным статусом и телом.
func fakeServer(t *testing.T, status int, body string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

// newNoteKeeperServer поднимает настоящий HTTP API поверх in-memory SQLite.
func newNoteKeeperServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := repo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	logger := zap.NewNop().Sugar()
	sessions := session.New()
	t.Cleanup(sessions.Close)
	tags := repo.NewTagRepository(db)
	svc := handlers.Services{
		Users:     service.NewUserService(repo.NewUserRepository(db), sessions, logger),
		Folders:   service.NewFolderService(repo.NewFolderRepository(db), logger),
		Notes:     service.NewNoteService(repo.NewNoteRepository(db), logger, 50),
		Todos:     service.NewTodoService(repo.NewTodoRepository(db), tags, logger),
		Reminders: service.NewReminderService(repo.NewReminderRepository(db), logger),
		Stats:     service.NewStatsService(repo.NewStatsRepository(db), tags, logger),
	}
	h := handlers.NewHandler(svc, logger, &config.Config{CORSOrigins: []string{"*"}})
	ts := httptest.NewServer(h.Router)
	t.Cleanup(ts.Close)
	return ts
}

// run выполняет команду по имени и возвращает её вывод.
func run(t *testing.T, cfg *config.Config, name string, args ...string) (string, error) {
	t.Helper()
	c, ok := Get(name)
	require.True(t, ok, "command %s is not registered", name)
	var out string
	var err error
	out = withStdoutCapture(t, func() { err = c.Run(context.Background(), cfg, args) })
	return out, err
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}
