package engine

import (
	"path/filepath"
	"testing"
)

func TestParseProjectGodot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.godot")
	writeFile(t, path, `; Engine configuration file.

config_version=5

[application]

config/name="Dungeon Crawler"
run/main_scene="res://scenes/main.tscn"
config/features=PackedStringArray("4.2", "GL Compatibility")
config/icon="res://icon.svg"

[autoload]

GameState="*res://autoload/game_state.gd"
Helpers="res://autoload/helpers.gd"

[input]

move_left={"deadzone": 0.5}
move_right={"deadzone": 0.5}

[rendering]

renderer/rendering_method="gl_compatibility"
`)

	info := ParseProjectGodot(path)
	if info == nil {
		t.Fatal("expected parsed info")
	}

	if info.ProjectName != "Dungeon Crawler" {
		t.Errorf("expected project name, got %q", info.ProjectName)
	}
	if info.MainScene != "res://scenes/main.tscn" {
		t.Errorf("unexpected main scene: %q", info.MainScene)
	}
	if info.Icon != "res://icon.svg" {
		t.Errorf("unexpected icon: %q", info.Icon)
	}
	if info.GodotVersion != "4.2" {
		t.Errorf("expected version 4.2 from feature tag, got %q", info.GodotVersion)
	}
	if len(info.Features) != 2 || info.Features[1] != "GL Compatibility" {
		t.Errorf("unexpected features: %v", info.Features)
	}

	if len(info.Autoloads) != 2 {
		t.Fatalf("expected 2 autoloads, got %v", info.Autoloads)
	}
	byName := map[string]GodotAutoload{}
	for _, a := range info.Autoloads {
		byName[a.Name] = a
	}
	gs := byName["GameState"]
	if !gs.Singleton || gs.Path != "res://autoload/game_state.gd" {
		t.Errorf("unexpected GameState autoload: %+v", gs)
	}
	if byName["Helpers"].Singleton {
		t.Error("Helpers should not be a singleton")
	}

	if len(info.InputActions) != 2 {
		t.Errorf("expected 2 input actions, got %v", info.InputActions)
	}
	if info.Renderer != "gl_compatibility" {
		t.Errorf("unexpected renderer: %q", info.Renderer)
	}
}

func TestParseProjectGodot_VersionFromConfigVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.godot")
	writeFile(t, path, `config_version=4

[application]
config/name="Old Game"
`)

	info := ParseProjectGodot(path)
	if info == nil {
		t.Fatal("expected parsed info")
	}
	if info.GodotVersion != "3.x" {
		t.Errorf("expected 3.x from config_version 4, got %q", info.GodotVersion)
	}
}

func TestParseProjectGodot_Missing(t *testing.T) {
	if info := ParseProjectGodot(filepath.Join(t.TempDir(), "project.godot")); info != nil {
		t.Errorf("expected nil for missing file, got %+v", info)
	}
}

func TestParseProjectGodot_EmptyName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.godot")
	writeFile(t, path, "config_version=5\n")

	info := ParseProjectGodot(path)
	if info == nil {
		t.Fatal("expected parsed info")
	}
	if info.ProjectName != "Unknown" {
		t.Errorf("expected fallback name Unknown, got %q", info.ProjectName)
	}
}

func TestParseGodotArray(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{`PackedStringArray("4.2", "Forward Plus")`, []string{"4.2", "Forward Plus"}},
		{`PackedStringArray()`, []string{}},
		{`not an array`, []string{}},
	}

	for _, tt := range tests {
		got := parseGodotArray(tt.input)
		if len(got) != len(tt.expected) {
			t.Errorf("parseGodotArray(%q): expected %v, got %v", tt.input, tt.expected, got)
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("parseGodotArray(%q)[%d]: expected %q, got %q", tt.input, i, tt.expected[i], got[i])
			}
		}
	}
}
