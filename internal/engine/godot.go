package engine

import (
	"strings"

	"gopkg.in/ini.v1"
)

// GodotAutoload is one autoload (singleton) entry in project.godot
type GodotAutoload struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Singleton bool   `json:"singleton"`
}

// GodotProjectInfo is the parsed view of a project.godot file
type GodotProjectInfo struct {
	Path         string          `json:"path"`
	ProjectName  string          `json:"project_name"`
	GodotVersion string          `json:"godot_version,omitempty"`
	MainScene    string          `json:"main_scene,omitempty"`
	Icon         string          `json:"icon,omitempty"`
	Features     []string        `json:"features"`
	Autoloads    []GodotAutoload `json:"autoloads"`
	InputActions []string        `json:"input_actions"`
	Renderer     string          `json:"renderer,omitempty"`
}

// ParseProjectGodot parses a project.godot configuration file, nil if
// unreadable or malformed.
func ParseProjectGodot(path string) *GodotProjectInfo {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return nil
	}

	app := cfg.Section("application")

	info := &GodotProjectInfo{
		Path:         path,
		ProjectName:  unquote(app.Key("config/name").String()),
		MainScene:    unquote(app.Key("run/main_scene").String()),
		Icon:         unquote(app.Key("config/icon").String()),
		Features:     parseGodotArray(app.Key("config/features").String()),
		Autoloads:    []GodotAutoload{},
		InputActions: []string{},
	}
	if info.ProjectName == "" {
		info.ProjectName = "Unknown"
	}

	// Version: a "4.x" feature tag wins, otherwise config_version hints
	// the era (5 means Godot 4, 4 means Godot 3).
	for _, feature := range info.Features {
		if strings.HasPrefix(feature, "4.") || strings.HasPrefix(feature, "3.") {
			info.GodotVersion = feature
			break
		}
	}
	if info.GodotVersion == "" {
		switch cfg.Section("").Key("config_version").String() {
		case "5":
			info.GodotVersion = "4.x"
		case "4":
			info.GodotVersion = "3.x"
		}
	}

	// Autoloads: Name="*res://path.gd" where the leading star marks a
	// singleton.
	for _, key := range cfg.Section("autoload").Keys() {
		value := unquote(key.String())
		singleton := strings.HasPrefix(value, "*")
		info.Autoloads = append(info.Autoloads, GodotAutoload{
			Name:      key.Name(),
			Path:      strings.TrimPrefix(value, "*"),
			Singleton: singleton,
		})
	}

	// Input actions are keys of the [input] section
	for _, key := range cfg.Section("input").Keys() {
		info.InputActions = append(info.InputActions, key.Name())
	}

	renderer := cfg.Section("rendering").Key("renderer/rendering_method").String()
	if renderer == "" {
		renderer = cfg.Section("rendering").Key("quality/driver/driver_name").String()
	}
	info.Renderer = unquote(renderer)

	return info
}

func unquote(s string) string {
	return strings.Trim(s, `"`)
}

// parseGodotArray parses a PackedStringArray("a", "b") literal
func parseGodotArray(s string) []string {
	start := strings.Index(s, "(")
	end := strings.LastIndex(s, ")")
	if start < 0 || end <= start {
		return []string{}
	}

	var items []string
	for _, part := range strings.Split(s[start+1:end], ",") {
		item := unquote(strings.TrimSpace(part))
		if item != "" {
			items = append(items, item)
		}
	}
	if items == nil {
		items = []string{}
	}
	return items
}
