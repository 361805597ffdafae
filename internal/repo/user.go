package repo

import (
	"NoteKeeper/internal/model"
	"context"

	"gorm.io/gorm"
)

// UserRepository — доступ к учётным записям.
type UserRepository interface {
	// CreateUser создаёт пользователя; занятое имя даёт ErrConflict.
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)

	// GetUserByUsername ищет пользователя по точному (регистрозависимому) имени.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository создаёт реализацию репозитория пользователей.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (r *userRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).Take(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}
