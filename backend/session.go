package backend

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/cellstorm/diff"
	"github.com/dshills/cellstorm/internal/logging"
	"github.com/dshills/cellstorm/render"
	"github.com/dshills/cellstorm/screen"
)

// Session ties a backend, a screen buffer, and a renderer into a frame
// loop. All drawing goes through Frame, which serializes buffer access,
// picks up pending resizes, and pushes exactly one rendered frame to the
// backend.
type Session struct {
	id      string
	backend Backend

	diffOpts   diff.Options
	renderOpts []render.Option
	log        *logging.Logger

	mu       sync.Mutex
	buffer   *screen.ScreenBuffer
	renderer *render.Renderer
	started  bool
	closed   atomic.Bool
}

// SessionOption configures a session.
type SessionOption func(*Session)

// WithDiffOptions sets the diff options used for every frame.
func WithDiffOptions(opts diff.Options) SessionOption {
	return func(s *Session) { s.diffOpts = opts }
}

// WithLogger routes session lifecycle events to the given logger.
func WithLogger(log *logging.Logger) SessionOption {
	return func(s *Session) { s.log = log }
}

// WithRenderOptions adds renderer options on top of the backend's detected
// color mode. Pass render.WithColorMode to force a depth.
func WithRenderOptions(opts ...render.Option) SessionOption {
	return func(s *Session) { s.renderOpts = opts }
}

// NewSession creates a session on the given backend. The session does not
// touch the terminal until Start.
func NewSession(b Backend, opts ...SessionOption) *Session {
	s := &Session{
		id:       uuid.New().String(),
		backend:  b,
		diffOpts: diff.DefaultOptions(),
		log:      logging.Null,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("session").WithField("session", s.id[:8])
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Start initializes the backend and allocates the screen buffer and
// renderer at the terminal's current size.
func (s *Session) Start() error {
	if s.closed.Load() {
		return ErrSessionClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if err := s.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}

	w, h := s.backend.Size()
	buffer, err := screen.New(w, h)
	if err != nil {
		s.backend.Shutdown()
		return fmt.Errorf("allocate screen: %w", err)
	}

	renderOpts := append([]render.Option{render.WithColorMode(s.backend.ColorMode())}, s.renderOpts...)

	s.buffer = buffer
	s.renderer = render.New(w, h, renderOpts...)
	s.started = true

	s.log.Info("session started: %dx%d, %s", w, h, s.backend.ColorMode())
	return nil
}

// Stop shuts the backend down. Safe to call multiple times; the session
// cannot be restarted afterward.
func (s *Session) Stop() {
	if s.closed.Swap(true) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		s.backend.Shutdown()
	}
	s.log.Info("session stopped")
}

// Frame runs one frame: apply any pending resize, let fn draw on the back
// buffer, then diff, render, flush, and present. A nil fn renders whatever
// the back buffer already holds.
func (s *Session) Frame(fn func(sb *screen.ScreenBuffer)) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrSessionNotStarted
	}

	s.applyPendingResize()

	if fn != nil {
		fn(s.buffer)
	}

	res := diff.GenerateFor(s.buffer, s.diffOpts)
	if err := s.renderer.Render(res, s.backend.Writer()); err != nil {
		return fmt.Errorf("render frame: %w", err)
	}
	if blitter, ok := s.backend.(DiffApplier); ok {
		blitter.BlitDiff(res)
	}
	if err := s.backend.Flush(); err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}
	s.buffer.Present()
	return nil
}

// applyPendingResize drains the backend's resize channel and grows or
// shrinks the buffer and renderer to match. Called with the lock held.
func (s *Session) applyPendingResize() {
	select {
	case sz := <-s.backend.ResizeChan():
		if sz.Width == s.buffer.Width() && sz.Height == s.buffer.Height() {
			return
		}
		if err := s.buffer.Resize(sz.Width, sz.Height, screen.ResizePreserve); err != nil {
			s.log.Warn("resize to %dx%d rejected: %v", sz.Width, sz.Height, err)
			return
		}
		s.renderer.Resize(sz.Width, sz.Height)
		s.log.Debug("resized to %dx%d", sz.Width, sz.Height)
	default:
	}
}

// Buffer returns the session's screen buffer.
// Access it through Frame when other goroutines may be drawing.
func (s *Session) Buffer() *screen.ScreenBuffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

// Renderer returns the session's renderer.
func (s *Session) Renderer() *render.Renderer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer
}

// Stats returns cumulative render statistics.
func (s *Session) Stats() render.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.renderer == nil {
		return render.Stats{}
	}
	return s.renderer.Stats()
}

// DiffOptions returns the options used for frame diffs.
func (s *Session) DiffOptions() diff.Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.diffOpts
}

// SetDiffOptions changes the options used for subsequent frames.
func (s *Session) SetDiffOptions(opts diff.Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diffOpts = opts
}
