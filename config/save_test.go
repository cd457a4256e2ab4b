package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/cellstorm/diff"
	"github.com/tidwall/gjson"
)

func TestSaveTOMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cellstorm.toml")
	cfg := Default()
	cfg.Screen.Width = 132
	cfg.Screen.Height = 43
	cfg.Render.ColorMode = "truecolor"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Screen.Width != 132 || loaded.Screen.Height != 43 {
		t.Errorf("expected 132x43, got %dx%d", loaded.Screen.Width, loaded.Screen.Height)
	}
	if loaded.Render.ColorMode != "truecolor" {
		t.Errorf("expected color mode truecolor, got %q", loaded.Render.ColorMode)
	}
	if loaded.Diff.Level != cfg.Diff.Level {
		t.Errorf("expected diff level %q, got %q", cfg.Diff.Level, loaded.Diff.Level)
	}
}

func TestSaveYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cellstorm.yml")
	cfg := Default()
	cfg.Diff.MergeThreshold = 12

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Diff.MergeThreshold != 12 {
		t.Errorf("expected merge threshold 12, got %d", loaded.Diff.MergeThreshold)
	}
}

func TestSaveJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cellstorm.json")
	cfg := Default()
	cfg.Log.Path = "/tmp/cellstorm.log"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if !gjson.ValidBytes(data) {
		t.Fatal("saved JSON is not valid")
	}
	if got := gjson.GetBytes(data, "diff.level").String(); got != "balanced" {
		t.Errorf("expected diff.level balanced, got %q", got)
	}
	if got := gjson.GetBytes(data, "diff.merge_threshold").Int(); got != int64(diff.DefaultMergeThreshold) {
		t.Errorf("expected merge_threshold %d, got %d", diff.DefaultMergeThreshold, got)
	}
	if got := gjson.GetBytes(data, "log.path").String(); got != "/tmp/cellstorm.log" {
		t.Errorf("expected log.path /tmp/cellstorm.log, got %q", got)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Log.Path != "/tmp/cellstorm.log" {
		t.Errorf("round trip lost log path, got %q", loaded.Log.Path)
	}
}

func TestSaveUnsupportedExtension(t *testing.T) {
	if err := Save(Default(), "cellstorm.conf"); err == nil {
		t.Error("expected an error for unsupported extension")
	}
}

func TestSaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "cellstorm.toml")

	if err := Save(Default(), path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected saved file to exist: %v", err)
	}
}
