package config

import (
	"github.com/dshills/cellstorm/core"
	"github.com/dshills/cellstorm/diff"
	"github.com/dshills/cellstorm/internal/logging"
	"github.com/dshills/cellstorm/render"
)

// Config holds every engine option.
type Config struct {
	Screen ScreenConfig `toml:"screen" yaml:"screen" json:"screen"`
	Diff   DiffConfig   `toml:"diff" yaml:"diff" json:"diff"`
	Render RenderConfig `toml:"render" yaml:"render" json:"render"`
	Log    LogConfig    `toml:"log" yaml:"log" json:"log"`
}

// ScreenConfig sizes the cell grid.
type ScreenConfig struct {
	// Width and Height of 0 mean "use the terminal size".
	Width  int `toml:"width" yaml:"width" json:"width"`
	Height int `toml:"height" yaml:"height" json:"height"`

	// DefaultFg and DefaultBg are hex colors ("#rrggbb") for the grid's
	// default cell. Empty keeps the terminal defaults.
	DefaultFg string `toml:"default_fg" yaml:"default_fg" json:"default_fg"`
	DefaultBg string `toml:"default_bg" yaml:"default_bg" json:"default_bg"`
}

// DefaultCell returns the buffer default cell the configured colors
// describe.
func (s ScreenConfig) DefaultCell() (core.Cell, error) {
	style := core.DefaultStyle()
	if s.DefaultFg != "" {
		fg, err := core.ColorFromHex(s.DefaultFg)
		if err != nil {
			return core.Cell{}, err
		}
		style = style.WithForeground(fg)
	}
	if s.DefaultBg != "" {
		bg, err := core.ColorFromHex(s.DefaultBg)
		if err != nil {
			return core.Cell{}, err
		}
		style = style.WithBackground(bg)
	}
	return core.EmptyCell().WithStyle(style), nil
}

// DiffConfig tunes frame diff generation.
type DiffConfig struct {
	Level           string `toml:"level" yaml:"level" json:"level"`
	DetectScrolling bool   `toml:"detect_scrolling" yaml:"detect_scrolling" json:"detect_scrolling"`
	MergeThreshold  int    `toml:"merge_threshold" yaml:"merge_threshold" json:"merge_threshold"`
}

// Options converts the section into engine diff options.
func (d DiffConfig) Options() diff.Options {
	level, _ := diff.ParseLevel(d.Level)
	return diff.Options{
		Level:           level,
		DetectScrolling: d.DetectScrolling,
		MergeThreshold:  d.MergeThreshold,
	}
}

// RenderConfig tunes frame emission.
type RenderConfig struct {
	// ColorMode forces a color depth ("truecolor", "256", "8", "mono").
	// "auto" or empty keeps the backend's detection.
	ColorMode string `toml:"color_mode" yaml:"color_mode" json:"color_mode"`

	// SyncWrites brackets frames in synchronized update sequences.
	SyncWrites bool `toml:"sync_writes" yaml:"sync_writes" json:"sync_writes"`
}

// Mode returns the forced color depth and whether one was configured.
func (r RenderConfig) Mode() (render.ColorMode, bool) {
	if r.ColorMode == "" || r.ColorMode == "auto" {
		return render.ModeTrueColor, false
	}
	return render.ParseColorMode(r.ColorMode)
}

// LogConfig routes engine logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level" json:"level"`

	// Path receives log lines. Empty disables file logging; stderr is never
	// used while a session owns the terminal.
	Path string `toml:"path" yaml:"path" json:"path"`
}

// ParsedLevel returns the logging level, defaulting to info.
func (l LogConfig) ParsedLevel() logging.Level {
	return logging.ParseLevel(l.Level)
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Diff: DiffConfig{
			Level:           "balanced",
			DetectScrolling: true,
			MergeThreshold:  diff.DefaultMergeThreshold,
		},
		Render: RenderConfig{ColorMode: "auto"},
		Log:    LogConfig{Level: "info"},
	}
}

// Validate checks every field that can hold an unusable value.
func (c Config) Validate() error {
	if c.Screen.Width < 0 {
		return &ValidationError{Field: "screen.width", Value: c.Screen.Width, Message: "must not be negative"}
	}
	if c.Screen.Height < 0 {
		return &ValidationError{Field: "screen.height", Value: c.Screen.Height, Message: "must not be negative"}
	}
	if c.Screen.DefaultFg != "" {
		if _, err := core.ColorFromHex(c.Screen.DefaultFg); err != nil {
			return &ValidationError{Field: "screen.default_fg", Value: c.Screen.DefaultFg, Message: "not a hex color"}
		}
	}
	if c.Screen.DefaultBg != "" {
		if _, err := core.ColorFromHex(c.Screen.DefaultBg); err != nil {
			return &ValidationError{Field: "screen.default_bg", Value: c.Screen.DefaultBg, Message: "not a hex color"}
		}
	}
	if _, ok := diff.ParseLevel(c.Diff.Level); !ok {
		return &ValidationError{Field: "diff.level", Value: c.Diff.Level, Message: "unknown diff level"}
	}
	if c.Diff.MergeThreshold < 0 {
		return &ValidationError{Field: "diff.merge_threshold", Value: c.Diff.MergeThreshold, Message: "must not be negative"}
	}
	if c.Render.ColorMode != "" && c.Render.ColorMode != "auto" {
		if _, ok := render.ParseColorMode(c.Render.ColorMode); !ok {
			return &ValidationError{Field: "render.color_mode", Value: c.Render.ColorMode, Message: "unknown color mode"}
		}
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return &ValidationError{Field: "log.level", Value: c.Log.Level, Message: "unknown log level"}
	}
	return nil
}

// toMap renders the config as the nested map the merge pipeline works on.
func (c Config) toMap() map[string]any {
	return map[string]any{
		"screen": map[string]any{
			"width":      c.Screen.Width,
			"height":     c.Screen.Height,
			"default_fg": c.Screen.DefaultFg,
			"default_bg": c.Screen.DefaultBg,
		},
		"diff": map[string]any{
			"level":            c.Diff.Level,
			"detect_scrolling": c.Diff.DetectScrolling,
			"merge_threshold":  c.Diff.MergeThreshold,
		},
		"render": map[string]any{
			"color_mode":  c.Render.ColorMode,
			"sync_writes": c.Render.SyncWrites,
		},
		"log": map[string]any{
			"level": c.Log.Level,
			"path":  c.Log.Path,
		},
	}
}

// fromMap decodes a merged map into a Config, coercing the numeric types
// the different parsers produce.
func fromMap(m map[string]any) (Config, error) {
	var cfg Config

	screen := section(m, "screen")
	if err := assignInt(&cfg.Screen.Width, screen, "screen", "width"); err != nil {
		return Config{}, err
	}
	if err := assignInt(&cfg.Screen.Height, screen, "screen", "height"); err != nil {
		return Config{}, err
	}
	if err := assignString(&cfg.Screen.DefaultFg, screen, "screen", "default_fg"); err != nil {
		return Config{}, err
	}
	if err := assignString(&cfg.Screen.DefaultBg, screen, "screen", "default_bg"); err != nil {
		return Config{}, err
	}

	diffSec := section(m, "diff")
	if err := assignString(&cfg.Diff.Level, diffSec, "diff", "level"); err != nil {
		return Config{}, err
	}
	if err := assignBool(&cfg.Diff.DetectScrolling, diffSec, "diff", "detect_scrolling"); err != nil {
		return Config{}, err
	}
	if err := assignInt(&cfg.Diff.MergeThreshold, diffSec, "diff", "merge_threshold"); err != nil {
		return Config{}, err
	}

	renderSec := section(m, "render")
	if err := assignString(&cfg.Render.ColorMode, renderSec, "render", "color_mode"); err != nil {
		return Config{}, err
	}
	if err := assignBool(&cfg.Render.SyncWrites, renderSec, "render", "sync_writes"); err != nil {
		return Config{}, err
	}

	logSec := section(m, "log")
	if err := assignString(&cfg.Log.Level, logSec, "log", "level"); err != nil {
		return Config{}, err
	}
	if err := assignString(&cfg.Log.Path, logSec, "log", "path"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func section(m map[string]any, name string) map[string]any {
	sub, _ := m[name].(map[string]any)
	return sub
}

func assignInt(dst *int, m map[string]any, sec, key string) error {
	raw, ok := m[key]
	if !ok {
		return nil
	}
	switch n := raw.(type) {
	case int:
		*dst = n
	case int64:
		*dst = int(n)
	case uint64:
		*dst = int(n)
	case float64:
		*dst = int(n)
	default:
		return &ValidationError{Field: sec + "." + key, Value: raw, Message: "expected an integer"}
	}
	return nil
}

func assignBool(dst *bool, m map[string]any, sec, key string) error {
	raw, ok := m[key]
	if !ok {
		return nil
	}
	b, ok := raw.(bool)
	if !ok {
		return &ValidationError{Field: sec + "." + key, Value: raw, Message: "expected a boolean"}
	}
	*dst = b
	return nil
}

func assignString(dst *string, m map[string]any, sec, key string) error {
	raw, ok := m[key]
	if !ok {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		return &ValidationError{Field: sec + "." + key, Value: raw, Message: "expected a string"}
	}
	*dst = s
	return nil
}
