// Package config loads the application configuration from a TOML file.
// All values are validated eagerly so a bad file fails at startup, not
// mid-render.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/JulesMellot/SD-Canvas-Renderer/internal/canvas"
	"github.com/JulesMellot/SD-Canvas-Renderer/internal/render"
)

// Config is the full application configuration.
type Config struct {
	Render RenderConfig `toml:"render"`
	Debug  DebugConfig  `toml:"debug"`
}

// RenderConfig controls the frame loop and device.
type RenderConfig struct {
	FPS        int    `toml:"fps"`
	Brightness int    `toml:"brightness"`
	Background string `toml:"background"`
	Hardware   bool   `toml:"hardware"`

	// Orientation overrides the device-derived transform, for decks
	// mounted rotated or mirrored. Empty keeps the derived one.
	Orientation string `toml:"orientation"`
}

// DebugConfig controls the fallback debug renderer.
type DebugConfig struct {
	Cols   int    `toml:"cols"`
	Rows   int    `toml:"rows"`
	TilePx int    `toml:"tile_px"`
	Dir    string `toml:"dir"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Render: RenderConfig{
			FPS:        30,
			Brightness: 80,
			Background: "#000000",
			Hardware:   true,
		},
		Debug: DebugConfig{
			Cols:   5,
			Rows:   3,
			TilePx: 72,
			Dir:    "frames",
		},
	}
}

// DefaultPath resolves the per-user config location under the XDG
// config directory.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("sd-canvas", "config.toml"))
}

// Load reads and validates the config at path. A missing file yields
// the defaults; a present but invalid file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field against the canvas constraints.
func (c Config) Validate() error {
	if err := canvas.ValidateFPS(c.Render.FPS); err != nil {
		return err
	}
	if err := canvas.ValidateRange(c.Render.Brightness, 0, 100, "brightness"); err != nil {
		return err
	}
	if err := canvas.ValidateColor(c.Render.Background); err != nil {
		return err
	}
	if c.Render.Orientation != "" {
		if _, err := render.ParseOrientation(c.Render.Orientation); err != nil {
			return err
		}
	}
	if err := canvas.ValidateSize(c.Debug.Cols, c.Debug.Rows, c.Debug.TilePx); err != nil {
		return err
	}
	if c.Debug.Dir == "" {
		return fmt.Errorf("%w: debug dir must not be empty", canvas.ErrInvalidParam)
	}
	return nil
}
