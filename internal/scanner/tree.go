package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Lynthar/Tidycraft/pkg/models"
)

// dirTally is the per-directory sum over assets whose immediate parent is
// that directory.
type dirTally struct {
	count int
	size  int64
}

// buildDirectoryTree mirrors the filesystem below root into DirectoryNodes.
// Each node aggregates the file count and byte size of its whole subtree;
// leaf counts come from assets whose parent equals the node's path.
func buildDirectoryTree(root string, assets []*models.AssetInfo) *models.DirectoryNode {
	byParent := make(map[string]dirTally)
	for _, asset := range assets {
		parent := filepath.Dir(asset.Path)
		tally := byParent[parent]
		tally.count++
		tally.size += asset.Size
		byParent[parent] = tally
	}
	return buildTreeNode(root, byParent)
}

func buildTreeNode(path string, byParent map[string]dirTally) *models.DirectoryNode {
	node := &models.DirectoryNode{
		Name: filepath.Base(path),
		Path: path,
	}

	if entries, err := os.ReadDir(path); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			child := buildTreeNode(filepath.Join(path, entry.Name()), byParent)
			node.Children = append(node.Children, child)
		}
	}

	sort.Slice(node.Children, func(i, j int) bool {
		return strings.ToLower(node.Children[i].Name) < strings.ToLower(node.Children[j].Name)
	})

	tally := byParent[path]
	node.FileCount = tally.count
	node.TotalSize = tally.size
	for _, child := range node.Children {
		node.FileCount += child.FileCount
		node.TotalSize += child.TotalSize
	}

	return node
}
