package handlers

import (
	"NoteKeeper/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// FolderHandler — дерево папок.
type FolderHandler struct {
	FolderService *service.FolderService
	Logger        *zap.SugaredLogger
}

func NewFolderHandler(folderService *service.FolderService, logger *zap.SugaredLogger) *FolderHandler {
	return &FolderHandler{FolderService: folderService, Logger: logger}
}

// Tree отдаёт лес папок пользователя
func (h *FolderHandler) Tree(w http.ResponseWriter, r *http.Request) {
	forest, err := h.FolderService.Tree(r.Context(), userID(r))
	if err != nil {
		writeError(w, h.Logger, "List folders", err)
		return
	}
	writeOK(w, http.StatusOK, forest)
}

type createFolderRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id"`
}

// Create создаёт папку
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFolderRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	folder, err := h.FolderService.Create(r.Context(), userID(r), req.Name, req.ParentID)
	if err != nil {
		writeError(w, h.Logger, "Create folder", err)
		return
	}
	writeOK(w, http.StatusCreated, folder)
}

type renameFolderRequest struct {
	Name string `json:"name"`
}

// Rename переименовывает папку
func (h *FolderHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req renameFolderRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := h.FolderService.Rename(r.Context(), userID(r), id, req.Name); err != nil {
		writeError(w, h.Logger, "Rename folder", err)
		return
	}
	writeOK(w, http.StatusOK, nil)
}

type moveFolderRequest struct {
	ParentID *int64 `json:"parent_id"`
}

// Move переносит папку; parent_id: null переносит её в корень
func (h *FolderHandler) Move(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req moveFolderRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := h.FolderService.Move(r.Context(), userID(r), id, req.ParentID); err != nil {
		writeError(w, h.Logger, "Move folder", err)
		return
	}
	writeOK(w, http.StatusOK, nil)
}

// Delete удаляет папку с поддеревом
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	detached, err := h.FolderService.Delete(r.Context(), userID(r), id)
	if err != nil {
		writeError(w, h.Logger, "Delete folder", err)
		return
	}
	writeOK(w, http.StatusOK, map[string]int64{"detached_notes": detached})
}
