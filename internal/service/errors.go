package service

import (
	"NoteKeeper/internal/repo"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Ошибки сервисного слоя. Транспорт сопоставляет их с кодами ответа.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrInvalidParent    = errors.New("invalid parent folder")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInternal         = errors.New("internal error")
)

// mapRepoErr переводит ошибку репозитория в ошибку сервиса.
func mapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repo.ErrConflict):
		return ErrAlreadyExists
	case errors.Is(err, repo.ErrInvalidParent):
		return ErrInvalidParent
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// invalid оборачивает ошибку валидации в ErrInvalidInput, сохраняя текст.
func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

// failure переводит ошибку репозитория и пишет в лог непредвиденные сбои хранилища.
func failure(logger *zap.SugaredLogger, op string, ownerID int64, err error) error {
	mapped := mapRepoErr(err)
	if errors.Is(mapped, ErrInternal) {
		logger.Errorw(op+": storage error", "user_id", ownerID, "error", err)
	}
	return mapped
}
