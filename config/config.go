// Package config loads gallery settings from YAML or TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds persistent gallery settings stored at <profileDir>/gallery.yaml.
type Config struct {
	Theme    string `yaml:"theme" toml:"theme"`
	Manifest string `yaml:"manifest" toml:"manifest"`

	Gallery GalleryConfig `yaml:"gallery" toml:"gallery"`
	Grid    GridConfig    `yaml:"grid" toml:"grid"`
	Log     LogConfig     `yaml:"log" toml:"log"`
}

// GalleryConfig maps onto gallery.Options.
type GalleryConfig struct {
	MinHeight            int    `yaml:"min_height" toml:"min_height"`
	SpeedMs              int    `yaml:"speed_ms" toml:"speed_ms"` // 0 disables animation
	Easing               string `yaml:"easing" toml:"easing"`
	Margin               int    `yaml:"margin" toml:"margin"`
	ChildrenSelector     string `yaml:"children_selector" toml:"children_selector"`
	AutomaticallyGetHTML bool   `yaml:"automatically_get_html" toml:"automatically_get_html"`
	Transitions          bool   `yaml:"transitions" toml:"transitions"`
}

// Speed returns SpeedMs as a duration.
func (g GalleryConfig) Speed() time.Duration {
	return time.Duration(g.SpeedMs) * time.Millisecond
}

// GridConfig sizes the terminal grid. Heights are in rows.
type GridConfig struct {
	CellWidth  int `yaml:"cell_width" toml:"cell_width"`
	CellHeight int `yaml:"cell_height" toml:"cell_height"`
}

// LogConfig configures the file logger.
type LogConfig struct {
	Level      string `yaml:"level" toml:"level"`
	File       string `yaml:"file" toml:"file"`
	MaxSize    int    `yaml:"max_size" toml:"max_size"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
	MaxAge     int    `yaml:"max_age" toml:"max_age"`
	Compress   bool   `yaml:"compress" toml:"compress"`
}

const filename = "gallery.yaml"

// Defaults returns a Config with default values. Terminal rows stand in for
// pixels, so the height floor is far below the browser default.
func Defaults() Config {
	return Config{
		Theme:    "dark",
		Manifest: "gallery.yaml",
		Gallery: GalleryConfig{
			MinHeight:            12,
			SpeedMs:              350,
			Easing:               "ease",
			Margin:               1,
			ChildrenSelector:     "*",
			AutomaticallyGetHTML: true,
			Transitions:          true,
		},
		Grid: GridConfig{
			CellWidth:  28,
			CellHeight: 6,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		},
	}
}

// LoadFromFile reads path over the defaults. The format follows the file
// extension: .toml for TOML, anything else YAML.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := decode(path, data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Load reads <profileDir>/gallery.yaml. If the file is absent or unreadable,
// the default Config is returned.
func Load(profileDir string) Config {
	cfg, err := LoadFromFile(filepath.Join(profileDir, filename))
	if err != nil {
		return Defaults()
	}
	return cfg
}

// Save writes cfg to <profileDir>/gallery.yaml, creating the directory if needed.
func Save(profileDir string, cfg Config) error {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(profileDir, filename), data, 0o644)
}

// Validate rejects sizes the layout cannot work with.
func (c Config) Validate() error {
	switch {
	case c.Gallery.MinHeight <= 0:
		return fmt.Errorf("%w: gallery.min_height must be positive, got %d", ErrInvalid, c.Gallery.MinHeight)
	case c.Gallery.SpeedMs < 0:
		return fmt.Errorf("%w: gallery.speed_ms must not be negative, got %d", ErrInvalid, c.Gallery.SpeedMs)
	case c.Gallery.Margin < 0:
		return fmt.Errorf("%w: gallery.margin must not be negative, got %d", ErrInvalid, c.Gallery.Margin)
	case c.Grid.CellWidth <= 0:
		return fmt.Errorf("%w: grid.cell_width must be positive, got %d", ErrInvalid, c.Grid.CellWidth)
	case c.Grid.CellHeight <= 0:
		return fmt.Errorf("%w: grid.cell_height must be positive, got %d", ErrInvalid, c.Grid.CellHeight)
	}
	return nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}
