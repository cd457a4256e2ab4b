package backend

import (
	"io"
	"os"
	"strings"

	"github.com/dshills/cellstorm/diff"
	"github.com/dshills/cellstorm/render"
)

// Size is a terminal geometry report delivered on a resize channel.
type Size struct {
	Width  int
	Height int
}

// Backend is the terminal surface the engine renders to.
//
// Init and Shutdown bracket the terminal session. Shutdown is safe to call
// more than once. Writer returns the sink the renderer should write frames
// into; Flush pushes buffered output to the terminal. ResizeChan delivers
// geometry changes with a one-slot latest-wins policy, so a slow consumer
// sees the newest size rather than a backlog.
type Backend interface {
	// Init prepares the terminal: raw mode, alternate screen, hidden cursor.
	Init() error

	// Shutdown restores the terminal. Safe to call multiple times.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// ResizeChan returns the channel resize events arrive on.
	ResizeChan() <-chan Size

	// ColorMode reports the detected color capability.
	ColorMode() render.ColorMode

	// Writer returns the sink for rendered frames.
	Writer() io.Writer

	// Flush pushes buffered output to the terminal.
	Flush() error

	// SetCursorVisible shows or hides the hardware cursor.
	SetCursorVisible(visible bool)

	// MoveCursor positions the hardware cursor (0-indexed, clamped).
	MoveCursor(x, y int)

	// EnterAltScreen switches to the alternate screen buffer.
	EnterAltScreen()

	// ExitAltScreen returns to the main screen buffer.
	ExitAltScreen()

	// SetTitle sets the terminal window title.
	SetTitle(title string)
}

// DiffApplier is implemented by backends that consume diff results
// directly instead of replaying rendered escape sequences. Sessions call
// BlitDiff with each frame's result in addition to the renderer pass.
type DiffApplier interface {
	BlitDiff(res diff.Result)
}

// DetectColorMode determines terminal color capability from the environment.
func DetectColorMode() render.ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return render.ModeTrueColor
	}

	// Emulators that support true color without advertising it in TERM.
	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return render.ModeTrueColor
	}

	term := os.Getenv("TERM")
	switch {
	case term == "dumb":
		return render.ModeMono
	case strings.Contains(term, "truecolor"), strings.Contains(term, "24bit"), strings.Contains(term, "direct"):
		return render.ModeTrueColor
	case strings.Contains(term, "256color"):
		return render.ModeIndexed256
	}
	return render.ModeBasic8
}
