// Package config loads editor settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"PixelBoard/internal/logging"
	"PixelBoard/internal/state"
	"PixelBoard/internal/tool"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds every tunable of the application.
type Config struct {
	Width        int           `toml:"width"`
	Height       int           `toml:"height"`
	Stride       int           `toml:"stride"`
	Background   state.Color   `toml:"background"`
	Palette      []state.Color `toml:"palette"`
	Tool         string        `toml:"tool"`
	FileName     string        `toml:"filename"`
	HistoryLimit int           `toml:"history_limit"`
	ExportScale  int           `toml:"export_scale"`
	LogLevel     string        `toml:"log_level"`
	Viewer       Viewer        `toml:"viewer"`
}

// Viewer configures the read-only live viewer.
type Viewer struct {
	Enabled   bool   `toml:"enabled"`
	Addr      string `toml:"addr"`
	Advertise bool   `toml:"advertise"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Width:      16,
		Height:     16,
		Stride:     40,
		Background: 0x00ff0000,
		Palette: []state.Color{
			0xff0000ff, 0x00ff00ff, 0x0000ffff, 0x00ffffff, 0xffff00ff, 0x000000ff,
			0x000000ff, 0x000000ff, 0x000000ff, 0x000000ff, 0x000000ff, 0x000000ff,
		},
		Tool:        tool.Brush.String(),
		FileName:    "your-creation",
		ExportScale: 1,
		LogLevel:    "info",
		Viewer: Viewer{
			Addr:      ":8888",
			Advertise: true,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error: the
// defaults are returned as they are.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, os.ErrNotExist) {
		logging.Logger().Info("config file not found, using defaults", "component", "config", "path", path)
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logging.Logger().Warn("unknown config keys", "component", "config", "keys", fmt.Sprint(undecoded))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.Width > state.MaxDimension || c.Height > state.MaxDimension {
		return fmt.Errorf("%w: grid %dx%d outside 1..%d", ErrInvalid, c.Width, c.Height, state.MaxDimension)
	}
	if c.Stride < 2 {
		return fmt.Errorf("%w: stride %d below 2", ErrInvalid, c.Stride)
	}
	if len(c.Palette) == 0 {
		return fmt.Errorf("%w: empty palette", ErrInvalid)
	}
	if _, err := tool.ParseKind(c.Tool); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("%w: negative history_limit", ErrInvalid)
	}
	if c.ExportScale < 1 {
		return fmt.Errorf("%w: export_scale %d below 1", ErrInvalid, c.ExportScale)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Viewer.Enabled && c.Viewer.Addr == "" {
		return fmt.Errorf("%w: viewer enabled without addr", ErrInvalid)
	}
	return nil
}

// ToolKind returns the configured starting tool.
func (c Config) ToolKind() tool.Kind {
	k, err := tool.ParseKind(c.Tool)
	if err != nil {
		return tool.Brush
	}
	return k
}
