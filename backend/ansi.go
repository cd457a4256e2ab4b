package backend

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"golang.org/x/term"

	"github.com/dshills/cellstorm/render"
)

// Control sequences the backend manages itself. Frame content goes through
// the renderer; these cover session setup and teardown.
var (
	altScreenEnter = []byte("\x1b[?1049h")
	altScreenExit  = []byte("\x1b[?1049l")
	cursorShow     = []byte("\x1b[?25h")
	cursorHide     = []byte("\x1b[?25l")
	autoWrapOff    = []byte("\x1b[?7l")
	autoWrapOn     = []byte("\x1b[?7h")
	attrsOff       = []byte("\x1b[0m")
	clearAll       = []byte("\x1b[2J\x1b[H")
)

// writerBufferSize keeps a full frame of escape sequences in memory so each
// frame reaches the terminal in as few writes as possible.
const writerBufferSize = 128 * 1024

// ANSIBackend drives a unix terminal directly over escape sequences.
// Input stays untouched beyond entering raw mode; this backend only owns
// the output side.
type ANSIBackend struct {
	in    *os.File
	out   *os.File
	inFd  int
	outFd int
	saved *term.State

	writer *bufio.Writer
	mode   render.ColorMode

	resizeCh chan Size
	stopCh   chan struct{}
	doneCh   chan struct{}

	cursorVisible atomic.Bool

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// NewANSIBackend creates a backend on stdin/stdout. Color capability is
// detected from the environment unless a mode is given.
func NewANSIBackend(mode ...render.ColorMode) *ANSIBackend {
	b := &ANSIBackend{
		in:       os.Stdin,
		out:      os.Stdout,
		inFd:     int(os.Stdin.Fd()),
		outFd:    int(os.Stdout.Fd()),
		resizeCh: make(chan Size, 1),
	}
	if len(mode) > 0 {
		b.mode = mode[0]
	} else {
		b.mode = DetectColorMode()
	}
	b.writer = bufio.NewWriterSize(b.out, writerBufferSize)
	return b
}

// Init enters raw mode, switches to the alternate screen, and hides the
// cursor. Idempotent until Shutdown.
func (b *ANSIBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if !term.IsTerminal(b.inFd) {
		return ErrNotTerminal
	}

	saved, err := term.MakeRaw(b.inFd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	b.saved = saved

	b.watchResize()

	b.writer.Write(altScreenEnter)
	b.writer.Write(cursorHide)
	// Auto-wrap off prevents the terminal from scrolling when the renderer
	// touches the bottom-right corner.
	b.writer.Write(autoWrapOff)
	b.writer.Write(clearAll)
	b.writer.Flush()
	b.cursorVisible.Store(false)

	b.initialized = true
	return nil
}

// Shutdown restores the terminal. Safe to call multiple times.
func (b *ANSIBackend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized || b.finalized {
		return
	}

	if b.stopCh != nil {
		close(b.stopCh)
		<-b.doneCh
		b.stopCh = nil
	}

	b.writer.Write(cursorShow)
	b.writer.Write(altScreenExit)
	// Re-enable auto-wrap after leaving the alternate screen so the main
	// buffer gets it back.
	b.writer.Write(autoWrapOn)
	b.writer.Write(attrsOff)
	b.writer.Flush()

	if b.saved != nil {
		term.Restore(b.inFd, b.saved)
	}

	b.finalized = true
}

// Size returns the current terminal dimensions.
func (b *ANSIBackend) Size() (int, int) {
	return terminalSize(b.outFd)
}

// ResizeChan returns the channel resize events arrive on.
func (b *ANSIBackend) ResizeChan() <-chan Size {
	return b.resizeCh
}

// ColorMode reports the detected color capability.
func (b *ANSIBackend) ColorMode() render.ColorMode {
	return b.mode
}

// Writer returns the buffered frame sink.
func (b *ANSIBackend) Writer() io.Writer {
	return b.writer
}

// Flush pushes buffered output to the terminal.
func (b *ANSIBackend) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writer.Flush()
}

// SetCursorVisible shows or hides the hardware cursor.
func (b *ANSIBackend) SetCursorVisible(visible bool) {
	if b.cursorVisible.Swap(visible) == visible {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized || b.finalized {
		return
	}

	if visible {
		b.writer.Write(cursorShow)
	} else {
		b.writer.Write(cursorHide)
	}
	b.writer.Flush()
}

// MoveCursor positions the hardware cursor, clamped to the screen.
func (b *ANSIBackend) MoveCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized || b.finalized {
		return
	}

	w, h := terminalSize(b.outFd)
	x = max(0, min(x, w-1))
	y = max(0, min(y, h-1))

	fmt.Fprintf(b.writer, "\x1b[%d;%dH", y+1, x+1)
	b.writer.Flush()
}

// EnterAltScreen switches to the alternate screen buffer and clears it.
func (b *ANSIBackend) EnterAltScreen() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized || b.finalized {
		return
	}

	b.writer.Write(altScreenEnter)
	b.writer.Write(clearAll)
	b.writer.Flush()
}

// ExitAltScreen returns to the main screen buffer.
func (b *ANSIBackend) ExitAltScreen() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized || b.finalized {
		return
	}

	b.writer.Write(altScreenExit)
	b.writer.Flush()
}

// SetTitle sets the terminal window title.
func (b *ANSIBackend) SetTitle(title string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized || b.finalized {
		return
	}

	fmt.Fprintf(b.writer, "\x1b]0;%s\a", title)
	b.writer.Flush()
}

// EmergencyReset writes the terminal back to a usable state.
// Call from panic recovery when Shutdown cannot run normally.
func EmergencyReset(w io.Writer) {
	w.Write(cursorShow)
	w.Write(altScreenExit)
	w.Write(autoWrapOn)
	w.Write(attrsOff)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone do not restore termios.
	restoreCookedMode()
}

// postLatest delivers sz on a one-slot channel, replacing any undelivered
// size so the consumer always sees the newest geometry.
func postLatest(ch chan Size, sz Size) {
	select {
	case ch <- sz:
	default:
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- sz:
		default:
		}
	}
}
