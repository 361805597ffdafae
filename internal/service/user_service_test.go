package service

import (
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/repo"
	"NoteKeeper/internal/session"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// мок для repo.UserRepository
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

func newUserService(m *mockUserRepo) (*UserService, *session.Registry) {
	reg := session.New()
	return NewUserService(m, reg, zap.NewNop().Sugar()), reg
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc, _ := newUserService(m)

	t.Run("ok stores digest only", func(t *testing.T) {
		m.ExpectedCalls = nil
		created := &model.User{ID: 10, Username: "john"}
		m.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Username == "john" && u.Password != "p@ssw0rd" &&
				bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("p@ssw0rd")) == nil
		})).Return(created, nil).Once()

		user, err := svc.Register(ctx, "  john ", "p@ssw0rd")
		assert.NoError(t, err)
		assert.Equal(t, int64(10), user.ID)
		m.AssertExpectations(t)
	})

	t.Run("conflict when username taken", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("CreateUser", mock.Anything, mock.Anything).Return(nil, repo.ErrConflict).Once()

		user, err := svc.Register(ctx, "john", "p@ssw0rd")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrAlreadyExists)
		m.AssertExpectations(t)
	})

	t.Run("empty input", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.Calls = nil

		_, err := svc.Register(ctx, "   ", "p@ssw0rd")
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = svc.Register(ctx, "john", "")
		assert.ErrorIs(t, err, ErrInvalidInput)
		m.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("registration limits", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.Calls = nil

		cases := map[string]struct{ username, password string }{
			"username too short":    {"jo", "p@ssw0rd"},
			"trimmed username":      {"  jo  ", "p@ssw0rd"},
			"username too long":     {strings.Repeat("u", MaxUsernameLength+1), "p@ssw0rd"},
			"password too short":    {"john", "12345"},
			"password over bcrypt":  {"john", strings.Repeat("a", MaxPasswordBytes+1)},
			"multibyte over bcrypt": {"john", strings.Repeat("я", 37)}, // 37 рун, 74 байта
		}
		for name, c := range cases {
			_, err := svc.Register(ctx, c.username, c.password)
			assert.ErrorIs(t, err, ErrInvalidInput, name)
			assert.NotErrorIs(t, err, ErrInternal, name)
		}
		m.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("boundary lengths accepted", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("CreateUser", mock.Anything, mock.Anything).Return(&model.User{ID: 11, Username: "joe"}, nil).Twice()

		_, err := svc.Register(ctx, "joe", strings.Repeat("a", MaxPasswordBytes))
		assert.NoError(t, err)
		_, err = svc.Register(ctx, strings.Repeat("u", MaxUsernameLength), "123456")
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})

	t.Run("storage failure is internal", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("CreateUser", mock.Anything, mock.Anything).Return(nil, errors.New("disk full")).Once()

		_, err := svc.Register(ctx, "john", "p@ssw0rd")
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc, reg := newUserService(m)

	// готовим хеш для пароля "secret"
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)

	t.Run("ok with valid credentials", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByUsername", mock.Anything, "alice").Return(&model.User{ID: 2, Username: "alice", Password: string(hash)}, nil).Twice()

		token, err := svc.Login(ctx, "alice", "secret")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		id, err := svc.Authenticate(ctx, token)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), id)
		m.AssertExpectations(t)
	})

	t.Run("invalid password", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByUsername", mock.Anything, "alice").Return(&model.User{ID: 2, Username: "alice", Password: string(hash)}, nil).Once()
		before := reg.Len()

		token, err := svc.Login(ctx, "alice", "wrong")
		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrNotAuthenticated)
		assert.Equal(t, before, reg.Len())
		m.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, repo.ErrNotFound).Once()

		ok, err := svc.Verify(ctx, "ghost", "whatever")
		assert.NoError(t, err)
		assert.False(t, ok)
		m.AssertExpectations(t)
	})
}

func TestUserService_AuthenticateAndLogout(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc, reg := newUserService(m)

	_, err := svc.Authenticate(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	// сессия пользователя, которого больше нет в базе
	token := reg.Create("gone")
	m.On("GetUserByUsername", mock.Anything, "gone").Return(nil, repo.ErrNotFound).Once()
	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	assert.True(t, svc.Logout(token))
	assert.False(t, svc.Logout(token))
	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
