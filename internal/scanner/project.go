package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Lynthar/Tidycraft/pkg/models"
)

// detectProjectType infers which game engine owns a directory tree from
// its marker files.
func detectProjectType(root string) models.ProjectType {
	// Unity: ProjectSettings directory, or an Assets directory carrying
	// meta sidecars.
	if isDir(filepath.Join(root, "ProjectSettings")) {
		return models.ProjectUnity
	}
	if isDir(filepath.Join(root, "Assets")) {
		if _, err := os.Stat(filepath.Join(root, "Assets", "Editor.meta")); err == nil {
			return models.ProjectUnity
		}
	}

	// Unreal: any .uproject file at the root
	if entries, err := os.ReadDir(root); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".uproject") {
				return models.ProjectUnreal
			}
		}
	}

	// Godot: project.godot at the root
	if _, err := os.Stat(filepath.Join(root, "project.godot")); err == nil {
		return models.ProjectGodot
	}

	return models.ProjectGeneric
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
