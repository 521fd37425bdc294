package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// UnrealPlugin is one plugin entry in a .uproject file
type UnrealPlugin struct {
	Name    string `json:"Name"`
	Enabled bool   `json:"Enabled"`
}

// UnrealModule is one module entry in a .uproject file
type UnrealModule struct {
	Name         string `json:"Name"`
	Type         string `json:"Type"`
	LoadingPhase string `json:"LoadingPhase,omitempty"`
}

// UnrealProjectInfo is the parsed view of a .uproject file
type UnrealProjectInfo struct {
	Path              string         `json:"path"`
	ProjectName       string         `json:"project_name"`
	EngineAssociation string         `json:"engine_association,omitempty"`
	Category          string         `json:"category,omitempty"`
	Description       string         `json:"description,omitempty"`
	Plugins           []UnrealPlugin `json:"plugins"`
	TargetPlatforms   []string       `json:"target_platforms"`
	Modules           []UnrealModule `json:"modules"`
}

// uprojectFile mirrors the raw .uproject JSON document
type uprojectFile struct {
	EngineAssociation string         `json:"EngineAssociation"`
	Category          string         `json:"Category"`
	Description       string         `json:"Description"`
	Modules           []UnrealModule `json:"Modules"`
	Plugins           []UnrealPlugin `json:"Plugins"`
	TargetPlatforms   []string       `json:"TargetPlatforms"`
}

// FindUProjectFile locates the .uproject file directly under root
func FindUProjectFile(root string) string {
	entries, err := os.ReadDir(root)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".uproject") {
			return filepath.Join(root, entry.Name())
		}
	}
	return ""
}

// ParseUProject parses a .uproject file, nil if unreadable or malformed
func ParseUProject(path string) *UnrealProjectInfo {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var raw uprojectFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	info := &UnrealProjectInfo{
		Path:              path,
		ProjectName:       name,
		EngineAssociation: raw.EngineAssociation,
		Category:          raw.Category,
		Description:       raw.Description,
		Plugins:           raw.Plugins,
		TargetPlatforms:   raw.TargetPlatforms,
		Modules:           raw.Modules,
	}
	if info.Plugins == nil {
		info.Plugins = []UnrealPlugin{}
	}
	if info.Modules == nil {
		info.Modules = []UnrealModule{}
	}
	if info.TargetPlatforms == nil {
		info.TargetPlatforms = []string{}
	}
	return info
}

// IsContentPath reports whether path sits inside the project's Content dir
func IsContentPath(path, projectRoot string) bool {
	content := filepath.Join(projectRoot, "Content")
	rel, err := filepath.Rel(content, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
