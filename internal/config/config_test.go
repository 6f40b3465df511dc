package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadValidFile(t *testing.T) {
	path := writeConfig(t, `
[render]
fps = 15
brightness = 50
background = "#112233"
hardware = false
orientation = "rotated180"

[debug]
cols = 3
rows = 2
tile_px = 80
dir = "out"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.FPS != 15 || cfg.Render.Brightness != 50 || cfg.Render.Hardware {
		t.Errorf("render section = %+v", cfg.Render)
	}
	if cfg.Render.Orientation != "rotated180" {
		t.Errorf("orientation = %q, want rotated180", cfg.Render.Orientation)
	}
	if cfg.Debug.Cols != 3 || cfg.Debug.Rows != 2 || cfg.Debug.TilePx != 80 || cfg.Debug.Dir != "out" {
		t.Errorf("debug section = %+v", cfg.Debug)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[render]
fps = 10
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.FPS != 10 {
		t.Errorf("fps = %d, want 10", cfg.Render.FPS)
	}
	if cfg.Render.Brightness != 80 || cfg.Debug.Cols != 5 {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadBrightnessZeroSurvives(t *testing.T) {
	path := writeConfig(t, "[render]\nbrightness = 0\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.Brightness != 0 {
		t.Errorf("brightness = %d, want 0", cfg.Render.Brightness)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"fps too high", "[render]\nfps = 120\n"},
		{"fps zero", "[render]\nfps = 0\n"},
		{"brightness out of range", "[render]\nbrightness = 150\n"},
		{"bad color", "[render]\nbackground = \"red\"\n"},
		{"unknown orientation", "[render]\norientation = \"sideways\"\n"},
		{"bad tile size", "[debug]\ntile_px = 64\n"},
		{"too many cols", "[debug]\ncols = 40\n"},
		{"empty dir", "[debug]\ndir = \"\"\n"},
		{"malformed toml", "render]]]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Load succeeded, want error")
			}
		})
	}
}
