package service

import (
	"NoteKeeper/internal/model"
	"sort"
)

// BuildForest собирает лес папок из плоского списка. Папка без родителя или
// с родителем вне списка становится корнем; дети упорядочены по имени.
func BuildForest(folders []model.Folder) []*model.FolderNode {
	nodes := make(map[int64]*model.FolderNode, len(folders))
	for _, f := range folders {
		nodes[f.ID] = &model.FolderNode{
			ID:       f.ID,
			Name:     f.Name,
			ParentID: f.ParentID,
			Children: []*model.FolderNode{},
		}
	}

	roots := make([]*model.FolderNode, 0)
	for _, f := range folders {
		node := nodes[f.ID]
		if f.ParentID != nil {
			if parent, ok := nodes[*f.ParentID]; ok && parent != node {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	sortNodes(roots)
	for _, n := range nodes {
		sortNodes(n.Children)
	}
	return roots
}

func sortNodes(nodes []*model.FolderNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Name != nodes[j].Name {
			return nodes[i].Name < nodes[j].Name
		}
		return nodes[i].ID < nodes[j].ID
	})
}
