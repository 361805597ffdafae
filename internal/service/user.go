package service

import (
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/repo"
	"NoteKeeper/internal/session"
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"
)

// UserService — регистрация, проверка пароля и сессии пользователей.
type UserService struct {
	repo     repo.UserRepository
	sessions *session.Registry
	logger   *zap.SugaredLogger
}

// NewUserService создаёт сервис пользователей.
func NewUserService(r repo.UserRepository, sessions *session.Registry, logger *zap.SugaredLogger) *UserService {
	return &UserService{repo: r, sessions: sessions, logger: logger}
}

// credentials — входные данные регистрации и входа.
type credentials struct {
	Username string
	Password string
}

func (c *credentials) validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Username, validation.Required, validation.RuneLength(MinUsernameLength, MaxUsernameLength)),
		validation.Field(&c.Password,
			validation.Required,
			validation.RuneLength(MinPasswordLength, 0),
			validation.Length(0, MaxPasswordBytes).Error(fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes)),
		),
	)
}

// Register создаёт пользователя. В базе хранится только bcrypt-хеш пароля.
func (s *UserService) Register(ctx context.Context, username, password string) (*model.User, error) {
	c := credentials{Username: strings.TrimSpace(username), Password: password}
	if err := c.validate(); err != nil {
		return nil, invalid(err)
	}

	digest, err := hashPassword(c.Password)
	if err != nil {
		s.logger.Errorw("Register: hash password", "error", err)
		return nil, ErrInternal
	}

	user, err := s.repo.CreateUser(ctx, &model.User{Username: c.Username, Password: digest})
	if err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrAlreadyExists
		}
		s.logger.Errorw("Register: create user", "username", c.Username, "error", err)
		return nil, mapRepoErr(err)
	}
	s.logger.Infow("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Verify сверяет пароль с сохранённым хешем. Для неизвестного пользователя
// тоже выполняется одно сравнение bcrypt.
func (s *UserService) Verify(ctx context.Context, username, password string) (bool, error) {
	user, err := s.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			burnCompare(password)
			return false, nil
		}
		return false, mapRepoErr(err)
	}
	return checkPassword(user.Password, password), nil
}

// ResolveID возвращает id пользователя по имени.
func (s *UserService) ResolveID(ctx context.Context, username string) (int64, bool, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, mapRepoErr(err)
	}
	return user.ID, true, nil
}

// Login проверяет пароль и открывает сессию. Неверные данные дают ErrNotAuthenticated.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	ok, err := s.Verify(ctx, username, password)
	if err != nil {
		s.logger.Errorw("Login: verify", "username", username, "error", err)
		return "", err
	}
	if !ok {
		s.logger.Warnw("Login: invalid credentials", "username", username)
		return "", ErrNotAuthenticated
	}
	token := s.sessions.Create(username)
	s.logger.Infow("user logged in", "username", username)
	return token, nil
}

// Logout закрывает сессию. false означает, что токен не был открыт.
func (s *UserService) Logout(token string) bool {
	return s.sessions.Destroy(token)
}

// Authenticate разрешает токен сессии в id пользователя.
func (s *UserService) Authenticate(ctx context.Context, token string) (int64, error) {
	username, ok := s.sessions.Resolve(token)
	if !ok {
		return 0, ErrNotAuthenticated
	}
	id, found, err := s.ResolveID(ctx, username)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, ErrNotAuthenticated
	}
	return id, nil
}
