// Package main is the cellstorm demo: it animates a built-in showcase
// scene or drives a Lua script against a live terminal session.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dshills/cellstorm/backend"
	"github.com/dshills/cellstorm/config"
	"github.com/dshills/cellstorm/internal/logging"
	"github.com/dshills/cellstorm/render"
	"github.com/dshills/cellstorm/screen"
	"github.com/dshills/cellstorm/script"
	"github.com/dshills/cellstorm/theme"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	ConfigPath string
	ScriptPath string
	ThemePath  string
	DiffLevel  string
	Backend    string
	LogLevel   string
	FPS        int
	Duration   time.Duration
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	applyFlagOverrides(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log, closeLog, err := openLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
		return 1
	}
	defer closeLog()

	term, err := newBackend(opts.Backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create backend: %v\n", err)
		return 1
	}

	sessionOpts := []backend.SessionOption{
		backend.WithDiffOptions(cfg.Diff.Options()),
		backend.WithLogger(log),
	}
	if renderOpts := renderOptions(cfg.Render); len(renderOpts) > 0 {
		sessionOpts = append(sessionOpts, backend.WithRenderOptions(renderOpts...))
	}
	session := backend.NewSession(term, sessionOpts...)

	// A panic mid-frame leaves the terminal in raw mode on the alternate
	// screen. Restore it before the trace prints.
	defer func() {
		if r := recover(); r != nil {
			session.Stop()
			backend.EmergencyReset(os.Stdout)
			panic(r)
		}
	}()

	if err := session.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to start session: %v\n", err)
		return 1
	}
	defer session.Stop()

	if err := applyScreenConfig(session, cfg.Screen); err != nil {
		session.Stop()
		fmt.Fprintf(os.Stderr, "Error: failed to apply screen config: %v\n", err)
		return 1
	}

	if opts.ConfigPath != "" {
		if stop := watchConfig(opts.ConfigPath, session, log); stop != nil {
			defer stop()
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	frame, cleanup, err := buildScene(session, opts)
	if err != nil {
		session.Stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if cleanup != nil {
		defer cleanup()
	}

	if err := runLoop(session, frame, opts.FPS, opts.Duration, signals); err != nil {
		session.Stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	session.Stop()
	stats := session.Stats()
	fmt.Printf("%d frames, %d cells updated, %d bytes written\n",
		stats.Frames, stats.CellsUpdated, stats.BytesWritten)
	return 0
}

// buildScene picks the frame source: a Lua script when one was given, the
// built-in showcase otherwise. The returned frame func draws into the
// session's back buffer; the run loop presents.
func buildScene(session *backend.Session, opts options) (func(float64) error, func(), error) {
	if opts.ScriptPath != "" {
		engine := script.New(session)
		if err := engine.DoFile(opts.ScriptPath); err != nil {
			engine.Close()
			return nil, nil, fmt.Errorf("script %s: %w", opts.ScriptPath, err)
		}
		if !engine.HasFrame() {
			// The script drew once; idle frames keep the screen current.
			return nil, engine.Close, nil
		}
		return engine.RunFrame, engine.Close, nil
	}

	th := theme.Default()
	if opts.ThemePath != "" {
		loaded, err := theme.Load(opts.ThemePath)
		if err != nil {
			return nil, nil, fmt.Errorf("theme %s: %w", opts.ThemePath, err)
		}
		th = loaded
	}

	// The renderer downsamples colors per its mode, so the scene draws
	// the theme as loaded.
	scene := newShowcase(session, th)
	return scene.step, nil, nil
}

// runLoop ticks at the requested rate until a signal or the duration limit
// arrives. Each tick runs the frame func, then presents through the
// session unless the frame func already presented (Lua frames may call
// present themselves). The tick-level present also applies pending
// resizes when nothing draws.
func runLoop(session *backend.Session, frame func(float64) error, fps int, duration time.Duration, signals <-chan os.Signal) error {
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	var timeout <-chan time.Time
	if duration > 0 {
		timer := time.NewTimer(duration)
		defer timer.Stop()
		timeout = timer.C
	}

	start := time.Now()
	for {
		select {
		case <-signals:
			return nil
		case <-timeout:
			return nil
		case <-ticker.C:
			rendered := session.Stats().Frames
			if frame != nil {
				if err := frame(time.Since(start).Seconds()); err != nil {
					return err
				}
			}
			if session.Stats().Frames != rendered {
				continue
			}
			if err := session.Frame(nil); err != nil {
				return err
			}
		}
	}
}

// applyScreenConfig installs the configured default cell and, when a fixed
// grid size is set, resizes the session to it.
func applyScreenConfig(session *backend.Session, cfg config.ScreenConfig) error {
	if cfg.Width > 0 && cfg.Height > 0 {
		if err := session.Buffer().Resize(cfg.Width, cfg.Height, screen.ResizeClear); err != nil {
			return err
		}
		session.Renderer().Resize(cfg.Width, cfg.Height)
	}

	cell, err := cfg.DefaultCell()
	if err != nil {
		return err
	}
	return session.Frame(func(sb *screen.ScreenBuffer) {
		sb.SetDefaultCell(cell)
		sb.Clear()
	})
}

// watchConfig live-reloads diff tuning while the demo runs. Returns the
// watcher's stop func, or nil when watching could not start.
func watchConfig(path string, session *backend.Session, log *logging.Logger) func() {
	watcher, err := config.NewWatcher(path, func(next config.Config) {
		session.SetDiffOptions(next.Diff.Options())
		log.Info("config reloaded: diff level %s", next.Diff.Level)
	}, config.WithErrorHandler(func(err error) {
		log.Warn("config reload failed: %v", err)
	}))
	if err != nil {
		log.Warn("config watch unavailable: %v", err)
		return nil
	}
	if err := watcher.Start(); err != nil {
		log.Warn("config watch unavailable: %v", err)
		return nil
	}
	return watcher.Stop
}

func newBackend(name string) (backend.Backend, error) {
	switch name {
	case "ansi", "":
		return backend.NewANSIBackend(), nil
	case "tcell":
		return backend.NewTcellBackend()
	default:
		return nil, fmt.Errorf("unknown backend %q (must be ansi or tcell)", name)
	}
}

// renderOptions translates the render config section into renderer options.
func renderOptions(cfg config.RenderConfig) []render.Option {
	var opts []render.Option
	if mode, forced := cfg.Mode(); forced {
		opts = append(opts, render.WithColorMode(mode))
	}
	if cfg.SyncWrites {
		opts = append(opts, render.WithSyncUpdates())
	}
	return opts
}

// openLogger routes logs to the configured file. The terminal belongs to
// the renderer, so without a file path logging is off.
func openLogger(cfg config.LogConfig) (*logging.Logger, func(), error) {
	if cfg.Path == "" {
		return logging.Null, func() {}, nil
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	log := logging.New(logging.Config{
		Level:  cfg.ParsedLevel(),
		Output: f,
		Prefix: "cellstorm",
	})
	return log, func() { f.Close() }, nil
}

// applyFlagOverrides layers command-line flags over the loaded config.
func applyFlagOverrides(cfg *config.Config, opts options) {
	if opts.DiffLevel != "" {
		cfg.Diff.Level = opts.DiffLevel
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.ScriptPath, "script", "", "Lua script to run instead of the showcase")
	flag.StringVar(&opts.ScriptPath, "s", "", "Lua script to run (shorthand)")
	flag.StringVar(&opts.ThemePath, "theme", "", "Theme file for the showcase")
	flag.StringVar(&opts.DiffLevel, "level", "", "Diff level (none, basic, balanced, aggressive)")
	flag.StringVar(&opts.Backend, "backend", "ansi", "Terminal backend (ansi, tcell)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.IntVar(&opts.FPS, "fps", 30, "Frames per second")
	flag.DurationVar(&opts.Duration, "duration", 0, "Stop after this long (0 runs until interrupted)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cellstorm-demo - terminal rendering showcase\n\n")
		fmt.Fprintf(os.Stderr, "Usage: cellstorm-demo [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  cellstorm-demo                      Run the built-in showcase\n")
		fmt.Fprintf(os.Stderr, "  cellstorm-demo -s draw.lua          Run a Lua script\n")
		fmt.Fprintf(os.Stderr, "  cellstorm-demo -level aggressive    Force the diff level\n")
		fmt.Fprintf(os.Stderr, "  cellstorm-demo -backend tcell       Render through tcell\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("cellstorm-demo %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}
