package handlers_test

import (
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/repo"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// Minimal mocks
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

func TestUser_Register(t *testing.T) {
	m := new(mockUserRepo)
	router, _ := newTestRouter(t, m)

	t.Run("ok", func(t *testing.T) {
		m.ExpectedCalls = nil
		created := &model.User{ID: 42, Username: "john"}
		m.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool { return u.Username == "john" && u.Password != "p@ssw0rd" })).Return(created, nil).Once()

		code, resp := do(t, router, http.MethodPost, "/api/user/register", "", `{"username":"john","password":"p@ssw0rd"}`)
		assert.Equal(t, http.StatusCreated, code)
		assert.True(t, resp.Success)
		m.AssertExpectations(t)
	})

	t.Run("conflict", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("CreateUser", mock.Anything, mock.Anything).Return(nil, repo.ErrConflict).Once()

		code, resp := do(t, router, http.MethodPost, "/api/user/register", "", `{"username":"john","password":"p@ssw0rd"}`)
		assert.Equal(t, http.StatusConflict, code)
		assert.False(t, resp.Success)
		m.AssertExpectations(t)
	})

	t.Run("bad body", func(t *testing.T) {
		code, _ := do(t, router, http.MethodPost, "/api/user/register", "", `{"login":"john"}`)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("password over 72 bytes", func(t *testing.T) {
		m.Calls = nil
		body := `{"username":"john","password":"` + strings.Repeat("a", 73) + `"}`
		code, resp := do(t, router, http.MethodPost, "/api/user/register", "", body)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.False(t, resp.Success)
		m.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("short username", func(t *testing.T) {
		code, _ := do(t, router, http.MethodPost, "/api/user/register", "", `{"username":"jo","password":"p@ssw0rd"}`)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("empty password", func(t *testing.T) {
		code, _ := do(t, router, http.MethodPost, "/api/user/register", "", `{"username":"john","password":""}`)
		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestUser_LoginLogout(t *testing.T) {
	m := new(mockUserRepo)
	router, sessions := newTestRouter(t, m)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	alice := &model.User{ID: 2, Username: "alice", Password: string(hash)}

	t.Run("unauthorized", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByUsername", mock.Anything, "alice").Return(alice, nil).Once()

		code, resp := do(t, router, http.MethodPost, "/api/user/login", "", `{"username":"alice","password":"bad"}`)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.False(t, resp.Success)
		assert.Zero(t, sessions.Len())
	})

	t.Run("ok then logout", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByUsername", mock.Anything, "alice").Return(alice, nil)

		code, resp := do(t, router, http.MethodPost, "/api/user/login", "", `{"username":"alice","password":"secret"}`)
		assert.Equal(t, http.StatusOK, code)
		token := decode[map[string]string](t, resp.Data)["session_id"]
		assert.NotEmpty(t, token)
		assert.Equal(t, 1, sessions.Len())

		code, _ = do(t, router, http.MethodPost, "/api/user/logout", token, "")
		assert.Equal(t, http.StatusOK, code)
		assert.Zero(t, sessions.Len())

		// повторный выход той же сессией
		code, _ = do(t, router, http.MethodPost, "/api/user/logout", token, "")
		assert.Equal(t, http.StatusUnauthorized, code)
	})
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	for _, path := range []string{"/api/notes", "/api/folders", "/api/todos", "/api/reminders", "/api/tags", "/api/stats"} {
		code, resp := do(t, router, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, code, path)
		assert.False(t, resp.Success, path)

		code, _ = do(t, router, http.MethodGet, path, "forged-token", "")
		assert.Equal(t, http.StatusUnauthorized, code, path)
	}

	code, resp := do(t, router, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/notes", nil)
	req.Header.Set("Origin", "http://allowed.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "http://allowed.test", rr.Header().Get("Access-Control-Allow-Origin"))
}
