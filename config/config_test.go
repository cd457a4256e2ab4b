package config

import (
	"errors"
	"testing"

	"github.com/dshills/cellstorm/core"
	"github.com/dshills/cellstorm/diff"
	"github.com/dshills/cellstorm/render"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Diff.Level != "balanced" {
		t.Errorf("expected diff level balanced, got %q", cfg.Diff.Level)
	}
	if !cfg.Diff.DetectScrolling {
		t.Error("expected scroll detection on by default")
	}
	if cfg.Diff.MergeThreshold != diff.DefaultMergeThreshold {
		t.Errorf("expected merge threshold %d, got %d", diff.DefaultMergeThreshold, cfg.Diff.MergeThreshold)
	}
	if cfg.Render.ColorMode != "auto" {
		t.Errorf("expected color mode auto, got %q", cfg.Render.ColorMode)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected log level info, got %q", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"negative width", func(c *Config) { c.Screen.Width = -1 }, "screen.width"},
		{"negative height", func(c *Config) { c.Screen.Height = -3 }, "screen.height"},
		{"bad foreground", func(c *Config) { c.Screen.DefaultFg = "teal" }, "screen.default_fg"},
		{"bad background", func(c *Config) { c.Screen.DefaultBg = "#12345" }, "screen.default_bg"},
		{"unknown diff level", func(c *Config) { c.Diff.Level = "turbo" }, "diff.level"},
		{"negative threshold", func(c *Config) { c.Diff.MergeThreshold = -1 }, "diff.merge_threshold"},
		{"unknown color mode", func(c *Config) { c.Render.ColorMode = "millions" }, "render.color_mode"},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}
}

func TestValidColorModesAndLevels(t *testing.T) {
	cfg := Default()
	for _, mode := range []string{"", "auto", "truecolor", "256", "8", "mono"} {
		cfg.Render.ColorMode = mode
		if err := cfg.Validate(); err != nil {
			t.Errorf("color mode %q should validate, got %v", mode, err)
		}
	}
	cfg = Default()
	for _, level := range []string{"none", "basic", "balanced", "aggressive"} {
		cfg.Diff.Level = level
		if err := cfg.Validate(); err != nil {
			t.Errorf("diff level %q should validate, got %v", level, err)
		}
	}
}

func TestDiffConfigOptions(t *testing.T) {
	d := DiffConfig{Level: "aggressive", DetectScrolling: true, MergeThreshold: 7}
	opts := d.Options()

	if opts.Level != diff.LevelAggressive {
		t.Errorf("expected LevelAggressive, got %v", opts.Level)
	}
	if !opts.DetectScrolling {
		t.Error("expected scroll detection enabled")
	}
	if opts.MergeThreshold != 7 {
		t.Errorf("expected merge threshold 7, got %d", opts.MergeThreshold)
	}
}

func TestRenderConfigMode(t *testing.T) {
	tests := []struct {
		input  string
		mode   render.ColorMode
		forced bool
	}{
		{"", render.ModeTrueColor, false},
		{"auto", render.ModeTrueColor, false},
		{"truecolor", render.ModeTrueColor, true},
		{"256", render.ModeIndexed256, true},
		{"8", render.ModeBasic8, true},
		{"mono", render.ModeMono, true},
	}

	for _, tt := range tests {
		mode, forced := RenderConfig{ColorMode: tt.input}.Mode()
		if forced != tt.forced {
			t.Errorf("Mode(%q): expected forced=%v, got %v", tt.input, tt.forced, forced)
		}
		if forced && mode != tt.mode {
			t.Errorf("Mode(%q): expected %v, got %v", tt.input, tt.mode, mode)
		}
	}
}

func TestScreenConfigDefaultCell(t *testing.T) {
	s := ScreenConfig{DefaultFg: "#ff8800", DefaultBg: "#000033"}
	cell, err := s.DefaultCell()
	if err != nil {
		t.Fatalf("DefaultCell failed: %v", err)
	}

	if !cell.Style.Foreground.Equals(core.ColorFromRGB(0xff, 0x88, 0x00)) {
		t.Errorf("expected foreground #FF8800, got %v", cell.Style.Foreground)
	}
	if !cell.Style.Background.Equals(core.ColorFromRGB(0x00, 0x00, 0x33)) {
		t.Errorf("expected background #000033, got %v", cell.Style.Background)
	}

	plain, err := ScreenConfig{}.DefaultCell()
	if err != nil {
		t.Fatalf("DefaultCell failed: %v", err)
	}
	if !plain.Style.Foreground.IsDefault() || !plain.Style.Background.IsDefault() {
		t.Error("expected terminal default colors when no hex is configured")
	}
}

func TestFromMapCoercesNumbers(t *testing.T) {
	m := map[string]any{
		"screen": map[string]any{
			"width":  int64(120),
			"height": float64(40),
		},
		"diff": map[string]any{
			"merge_threshold": uint64(6),
		},
	}

	cfg, err := fromMap(m)
	if err != nil {
		t.Fatalf("fromMap failed: %v", err)
	}
	if cfg.Screen.Width != 120 {
		t.Errorf("expected width 120, got %d", cfg.Screen.Width)
	}
	if cfg.Screen.Height != 40 {
		t.Errorf("expected height 40, got %d", cfg.Screen.Height)
	}
	if cfg.Diff.MergeThreshold != 6 {
		t.Errorf("expected merge threshold 6, got %d", cfg.Diff.MergeThreshold)
	}
}

func TestFromMapRejectsWrongTypes(t *testing.T) {
	m := map[string]any{
		"screen": map[string]any{"width": "wide"},
	}

	_, err := fromMap(m)
	if err == nil {
		t.Fatal("expected a type error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Field != "screen.width" {
		t.Errorf("expected field screen.width, got %q", verr.Field)
	}
}

func TestDeepMergePrecedence(t *testing.T) {
	base := Default().toMap()
	override := map[string]any{
		"diff": map[string]any{"level": "aggressive"},
	}

	cfg, err := fromMap(DeepMerge(base, override))
	if err != nil {
		t.Fatalf("fromMap failed: %v", err)
	}
	if cfg.Diff.Level != "aggressive" {
		t.Errorf("expected overridden level aggressive, got %q", cfg.Diff.Level)
	}
	if cfg.Diff.MergeThreshold != diff.DefaultMergeThreshold {
		t.Errorf("expected untouched threshold %d, got %d", diff.DefaultMergeThreshold, cfg.Diff.MergeThreshold)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected untouched log level info, got %q", cfg.Log.Level)
	}
}
