package repo

import (
	"NoteKeeper/internal/model"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// FolderRepository — дерево папок пользователя.
type FolderRepository interface {
	// Create создаёт папку. Родитель, если задан, должен принадлежать тому же владельцу,
	// иначе ErrInvalidParent.
	Create(ctx context.Context, folder *model.Folder) error

	// Rename переименовывает папку владельца.
	Rename(ctx context.Context, ownerID, folderID int64, name string) error

	// Move переносит папку под нового родителя (nil — в корень).
	// Перенос в саму себя или в собственного потомка даёт ErrInvalidParent.
	Move(ctx context.Context, ownerID, folderID int64, parentID *int64) error

	// Delete удаляет папку вместе с потомками. Заметки из удалённого поддерева
	// остаются без папки; возвращается число таких заметок.
	Delete(ctx context.Context, ownerID, folderID int64) (int64, error)

	// ListByOwner возвращает все папки владельца, отсортированные по имени.
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Folder, error)
}

type folderRepo struct {
	db *gorm.DB
}

// NewFolderRepository создаёт реализацию репозитория папок.
func NewFolderRepository(db *gorm.DB) FolderRepository {
	return &folderRepo{db: db}
}

func (r *folderRepo) Create(ctx context.Context, folder *model.Folder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if folder.ParentID != nil {
			if err := ensureFolder(tx, folder.OwnerID, *folder.ParentID); err != nil {
				return ErrInvalidParent
			}
		}
		if err := tx.Create(folder).Error; err != nil {
			return translate(err)
		}
		return nil
	})
}

func (r *folderRepo) Rename(ctx context.Context, ownerID, folderID int64, name string) error {
	res := r.db.WithContext(ctx).Model(&model.Folder{}).
		Where("id = ? AND owner_id = ?", folderID, ownerID).
		Update("name", name)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *folderRepo) Move(ctx context.Context, ownerID, folderID int64, parentID *int64) error {
	if parentID != nil && *parentID == folderID {
		return ErrInvalidParent
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		parents, err := loadParents(tx, ownerID)
		if err != nil {
			return err
		}
		if _, ok := parents[folderID]; !ok {
			return ErrNotFound
		}
		if parentID != nil {
			if _, ok := parents[*parentID]; !ok {
				return ErrInvalidParent
			}
			if isAncestor(parents, folderID, *parentID) {
				return ErrInvalidParent
			}
		}
		return tx.Model(&model.Folder{}).
			Where("id = ? AND owner_id = ?", folderID, ownerID).
			Update("parent_id", parentID).Error
	})
}

func (r *folderRepo) Delete(ctx context.Context, ownerID, folderID int64) (int64, error) {
	var detached int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		parents, err := loadParents(tx, ownerID)
		if err != nil {
			return err
		}
		if _, ok := parents[folderID]; !ok {
			return ErrNotFound
		}
		subtree := collectSubtree(parents, folderID)

		res := tx.Model(&model.Note{}).
			Where("owner_id = ? AND folder_id IN ?", ownerID, subtree).
			Update("folder_id", nil)
		if res.Error != nil {
			return fmt.Errorf("detach notes: %w", res.Error)
		}
		detached = res.RowsAffected

		// всё поддерево одним запросом; каскад по parent_id делает то же на уровне схемы
		res = tx.Where("owner_id = ? AND id IN ?", ownerID, subtree).Delete(&model.Folder{})
		if res.Error != nil {
			return fmt.Errorf("delete folder: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return detached, nil
}

func (r *folderRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Folder, error) {
	var folders []model.Folder
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").Order("id ASC").
		Find(&folders).Error
	if err != nil {
		return nil, err
	}
	return folders, nil
}

// ensureFolder проверяет, что папка существует у владельца.
func ensureFolder(tx *gorm.DB, ownerID, folderID int64) error {
	var n int64
	if err := tx.Model(&model.Folder{}).Where("id = ? AND owner_id = ?", folderID, ownerID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type folderEdge struct {
	ID       int64
	ParentID *int64
}

// loadParents загружает индекс id -> parent_id по всем папкам владельца одним запросом.
// Значение 0 означает корневую папку.
func loadParents(tx *gorm.DB, ownerID int64) (map[int64]int64, error) {
	var edges []folderEdge
	if err := tx.Model(&model.Folder{}).Select("id, parent_id").Where("owner_id = ?", ownerID).Scan(&edges).Error; err != nil {
		return nil, fmt.Errorf("load folders: %w", err)
	}
	parents := make(map[int64]int64, len(edges))
	for _, e := range edges {
		var p int64
		if e.ParentID != nil {
			p = *e.ParentID
		}
		parents[e.ID] = p
	}
	return parents, nil
}

// isAncestor сообщает, лежит ли ancestor на пути от node к корню (включая сам node).
// Обход ограничен числом папок, поэтому испорченные данные с циклом не зацикливают его.
func isAncestor(parents map[int64]int64, ancestor, node int64) bool {
	cur := node
	for steps := 0; cur != 0 && steps <= len(parents); steps++ {
		if cur == ancestor {
			return true
		}
		next, ok := parents[cur]
		if !ok {
			return false
		}
		cur = next
	}
	return false
}

// collectSubtree возвращает root и всех его потомков обходом в ширину.
func collectSubtree(parents map[int64]int64, root int64) []int64 {
	children := make(map[int64][]int64, len(parents))
	for id, p := range parents {
		if p != 0 {
			children[p] = append(children[p], id)
		}
	}
	visited := map[int64]struct{}{root: {}}
	out := []int64{root}
	for queue := []int64{root}; len(queue) > 0; queue = queue[1:] {
		for _, child := range children[queue[0]] {
			if _, seen := visited[child]; seen {
				continue
			}
			visited[child] = struct{}{}
			out = append(out, child)
			queue = append(queue, child)
		}
	}
	return out
}
