package backend

import (
	"bytes"
	"io"
	"sync"

	"github.com/dshills/cellstorm/render"
)

// NullBackend is an in-memory backend for testing. It captures everything
// written to its sink, records cursor and title state, and lets tests
// script resize events.
type NullBackend struct {
	mu     sync.Mutex
	width  int
	height int
	mode   render.ColorMode

	buf     bytes.Buffer
	flushes int

	resizeCh chan Size

	cursorX       int
	cursorY       int
	cursorVisible bool
	altScreen     bool
	title         string

	initialized bool
	finalized   bool
}

// NewNullBackend creates a null backend with the given fixed size.
// It reports true color support.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:    width,
		height:   height,
		mode:     render.ModeTrueColor,
		resizeCh: make(chan Size, 1),
	}
}

func (n *NullBackend) Init() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.initialized = true
	n.altScreen = true
	n.cursorVisible = false
	return nil
}

func (n *NullBackend) Shutdown() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.altScreen = false
	n.finalized = true
}

func (n *NullBackend) Size() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.width, n.height
}

func (n *NullBackend) ResizeChan() <-chan Size {
	return n.resizeCh
}

func (n *NullBackend) ColorMode() render.ColorMode {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.mode
}

// SetColorMode overrides the reported capability for tests.
func (n *NullBackend) SetColorMode(mode render.ColorMode) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.mode = mode
}

func (n *NullBackend) Writer() io.Writer {
	return nullSink{n}
}

func (n *NullBackend) Flush() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.flushes++
	return nil
}

func (n *NullBackend) SetCursorVisible(visible bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cursorVisible = visible
}

func (n *NullBackend) MoveCursor(x, y int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cursorX, n.cursorY = x, y
}

func (n *NullBackend) EnterAltScreen() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.altScreen = true
}

func (n *NullBackend) ExitAltScreen() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.altScreen = false
}

func (n *NullBackend) SetTitle(title string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.title = title
}

// Resize changes the reported size and posts a resize event.
// This is a test helper to simulate terminal resizing.
func (n *NullBackend) Resize(width, height int) {
	n.mu.Lock()
	n.width, n.height = width, height
	n.mu.Unlock()
	postLatest(n.resizeCh, Size{Width: width, Height: height})
}

// Output returns a copy of everything written to the sink so far.
func (n *NullBackend) Output() []byte {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]byte, n.buf.Len())
	copy(out, n.buf.Bytes())
	return out
}

// ResetOutput discards the captured sink bytes.
func (n *NullBackend) ResetOutput() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.buf.Reset()
}

// Flushes returns how many times Flush was called.
func (n *NullBackend) Flushes() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.flushes
}

// CursorPosition returns the recorded cursor state.
func (n *NullBackend) CursorPosition() (x, y int, visible bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cursorX, n.cursorY, n.cursorVisible
}

// InAltScreen reports whether the backend is on the alternate screen.
func (n *NullBackend) InAltScreen() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.altScreen
}

// Title returns the recorded window title.
func (n *NullBackend) Title() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.title
}

type nullSink struct {
	backend *NullBackend
}

func (s nullSink) Write(p []byte) (int, error) {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	return s.backend.buf.Write(p)
}
