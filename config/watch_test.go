package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func watchedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cellstorm.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestWatcherReloadsOnChange(t *testing.T) {
	path := watchedFile(t, "[diff]\nlevel = \"none\"\n")

	reloaded := make(chan Config, 1)
	w, err := NewWatcher(path, func(cfg Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}, WithDebounce(30*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("[diff]\nlevel = \"aggressive\"\n"), 0644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Diff.Level != "aggressive" {
			t.Errorf("expected reloaded level aggressive, got %q", cfg.Diff.Level)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherSurvivesRenameSave(t *testing.T) {
	path := watchedFile(t, "[screen]\nwidth = 80\n")

	reloaded := make(chan Config, 1)
	w, err := NewWatcher(path, func(cfg Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}, WithDebounce(30*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	// Editor-style save: write a temp file next to the target, then rename
	// it over the target.
	tmp := filepath.Join(filepath.Dir(path), ".cellstorm.toml.tmp")
	if err := os.WriteFile(tmp, []byte("[screen]\nwidth = 99\n"), 0644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("renaming temp file: %v", err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Screen.Width != 99 {
			t.Errorf("expected reloaded width 99, got %d", cfg.Screen.Width)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload after rename")
	}
}

func TestWatcherReportsLoadErrors(t *testing.T) {
	path := watchedFile(t, "[diff]\nlevel = \"balanced\"\n")

	errs := make(chan error, 1)
	w, err := NewWatcher(path, func(Config) {},
		WithDebounce(30*time.Millisecond),
		WithErrorHandler(func(err error) {
			select {
			case errs <- err:
			default:
			}
		}))
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("[diff\nlevel ="), 0644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	select {
	case err := <-errs:
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("expected *ParseError, got %T", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload error")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	path := watchedFile(t, "[screen]\nwidth = 80\n")

	reloaded := make(chan Config, 1)
	w, err := NewWatcher(path, func(cfg Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	sibling := filepath.Join(filepath.Dir(path), "other.toml")
	if err := os.WriteFile(sibling, []byte("[diff]\nlevel = \"none\"\n"), 0644); err != nil {
		t.Fatalf("writing sibling: %v", err)
	}

	select {
	case <-reloaded:
		t.Error("unexpected reload for a sibling file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherStop(t *testing.T) {
	path := watchedFile(t, "[screen]\nwidth = 80\n")

	w, err := NewWatcher(path, func(Config) {})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !w.IsRunning() {
		t.Error("expected watcher to be running after Start")
	}

	w.Stop()
	if w.IsRunning() {
		t.Error("expected watcher to be stopped after Stop")
	}
	w.Stop() // second Stop is a no-op

	if err := w.Start(); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	if !w.IsRunning() {
		t.Error("expected watcher to run again after restart")
	}
	w.Stop()
}
