package service

import (
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/repo"
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"
)

// FolderService управляет деревом папок пользователя.
type FolderService struct {
	repo   repo.FolderRepository
	logger *zap.SugaredLogger
}

// NewFolderService создаёт сервис папок.
func NewFolderService(r repo.FolderRepository, logger *zap.SugaredLogger) *FolderService {
	return &FolderService{repo: r, logger: logger}
}

func validateFolderName(name string) error {
	return invalid(validation.Errors{
		"name": validation.Validate(name, validation.Required, validation.RuneLength(1, MaxFolderName)),
	}.Filter())
}

// Create создаёт папку в корне или внутри parentID.
func (s *FolderService) Create(ctx context.Context, ownerID int64, name string, parentID *int64) (*model.Folder, error) {
	name = strings.TrimSpace(name)
	if err := validateFolderName(name); err != nil {
		return nil, err
	}
	folder := &model.Folder{OwnerID: ownerID, Name: name, ParentID: parentID}
	if err := s.repo.Create(ctx, folder); err != nil {
		return nil, failure(s.logger, "Create folder", ownerID, err)
	}
	s.logger.Infow("folder created", "user_id", ownerID, "folder_id", folder.ID)
	return folder, nil
}

// Rename переименовывает папку.
func (s *FolderService) Rename(ctx context.Context, ownerID, folderID int64, name string) error {
	name = strings.TrimSpace(name)
	if err := validateFolderName(name); err != nil {
		return err
	}
	if err := s.repo.Rename(ctx, ownerID, folderID, name); err != nil {
		return failure(s.logger, "Rename folder", ownerID, err)
	}
	return nil
}

// Move переносит папку; nil parentID переносит её в корень.
func (s *FolderService) Move(ctx context.Context, ownerID, folderID int64, parentID *int64) error {
	if err := s.repo.Move(ctx, ownerID, folderID, parentID); err != nil {
		return failure(s.logger, "Move folder", ownerID, err)
	}
	return nil
}

// Delete удаляет папку с поддеревом и возвращает число заметок, оставшихся без папки.
func (s *FolderService) Delete(ctx context.Context, ownerID, folderID int64) (int64, error) {
	detached, err := s.repo.Delete(ctx, ownerID, folderID)
	if err != nil {
		return 0, failure(s.logger, "Delete folder", ownerID, err)
	}
	s.logger.Infow("folder deleted", "user_id", ownerID, "folder_id", folderID, "detached_notes", detached)
	return detached, nil
}

// Tree возвращает лес папок пользователя.
func (s *FolderService) Tree(ctx context.Context, ownerID int64) ([]*model.FolderNode, error) {
	folders, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, failure(s.logger, "List folders", ownerID, err)
	}
	return BuildForest(folders), nil
}
