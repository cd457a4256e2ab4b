package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"
)

// Save writes the config to path in the format its extension names. Parent
// directories are created as needed.
func Save(cfg Config, path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		data, err = toml.Marshal(cfg)
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	case ".json":
		data, err = marshalJSON(cfg)
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// marshalJSON builds the document field by field so the key order stays
// stable across saves.
func marshalJSON(cfg Config) ([]byte, error) {
	doc := "{}"
	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, path, value)
	}

	set("screen.width", cfg.Screen.Width)
	set("screen.height", cfg.Screen.Height)
	set("screen.default_fg", cfg.Screen.DefaultFg)
	set("screen.default_bg", cfg.Screen.DefaultBg)
	set("diff.level", cfg.Diff.Level)
	set("diff.detect_scrolling", cfg.Diff.DetectScrolling)
	set("diff.merge_threshold", cfg.Diff.MergeThreshold)
	set("render.color_mode", cfg.Render.ColorMode)
	set("render.sync_writes", cfg.Render.SyncWrites)
	set("log.level", cfg.Log.Level)
	set("log.path", cfg.Log.Path)

	if err != nil {
		return nil, err
	}
	return pretty.Pretty([]byte(doc)), nil
}
