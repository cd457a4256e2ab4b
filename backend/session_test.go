package backend

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dshills/cellstorm/core"
	"github.com/dshills/cellstorm/diff"
	"github.com/dshills/cellstorm/render"
	"github.com/dshills/cellstorm/screen"
)

func startedSession(t *testing.T, b Backend, opts ...SessionOption) *Session {
	t.Helper()
	s := NewSession(b, opts...)
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(s.Stop)
	return s
}

func TestSessionStart(t *testing.T) {
	b := NewNullBackend(20, 5)
	s := startedSession(t, b)

	if !b.InAltScreen() {
		t.Error("start should initialize the backend")
	}

	sb := s.Buffer()
	if sb.Width() != 20 || sb.Height() != 5 {
		t.Errorf("expected 20x5 buffer, got %dx%d", sb.Width(), sb.Height())
	}

	// Starting twice is a no-op.
	if err := s.Start(); err != nil {
		t.Errorf("second Start should succeed, got %v", err)
	}
}

func TestSessionFrameRendersAndPresents(t *testing.T) {
	b := NewNullBackend(20, 5)
	s := startedSession(t, b)

	err := s.Frame(func(sb *screen.ScreenBuffer) {
		sb.WriteText(0, 0, "hi", screen.TextOptions{})
	})
	if err != nil {
		t.Fatalf("Frame failed: %v", err)
	}

	if len(b.Output()) == 0 {
		t.Error("frame with changes should write to the backend")
	}
	if b.Flushes() != 1 {
		t.Errorf("expected 1 flush, got %d", b.Flushes())
	}

	cell, err := s.Buffer().GetFrontCell(0, 0)
	if err != nil {
		t.Fatalf("GetFrontCell failed: %v", err)
	}
	if cell.Rune != 'h' {
		t.Errorf("expected presented front cell 'h', got %q", cell.Rune)
	}
}

func TestSessionIdleFrameWritesNothing(t *testing.T) {
	b := NewNullBackend(20, 5)
	s := startedSession(t, b)

	if err := s.Frame(nil); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}

	if len(b.Output()) != 0 {
		t.Errorf("idle frame should write nothing, got %q", b.Output())
	}
	if got := s.Stats().Frames; got != 1 {
		t.Errorf("expected 1 frame in stats, got %d", got)
	}
}

func TestSessionFrameAppliesResize(t *testing.T) {
	b := NewNullBackend(20, 5)
	s := startedSession(t, b)

	b.Resize(40, 10)

	if err := s.Frame(nil); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}

	sb := s.Buffer()
	if sb.Width() != 40 || sb.Height() != 10 {
		t.Errorf("expected 40x10 after resize, got %dx%d", sb.Width(), sb.Height())
	}

	// The resize forces a full repaint.
	if len(b.Output()) == 0 {
		t.Error("resized frame should repaint")
	}
}

func TestSessionFrameBeforeStart(t *testing.T) {
	s := NewSession(NewNullBackend(20, 5))

	err := s.Frame(nil)
	if !errors.Is(err, ErrSessionNotStarted) {
		t.Errorf("expected ErrSessionNotStarted, got %v", err)
	}
}

func TestSessionStopIsFinal(t *testing.T) {
	b := NewNullBackend(20, 5)
	s := NewSession(b)
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	s.Stop()
	s.Stop()

	if b.InAltScreen() {
		t.Error("stop should shut the backend down")
	}

	if err := s.Frame(nil); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed from Frame, got %v", err)
	}
	if err := s.Start(); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed from Start, got %v", err)
	}
}

// blitBackend records diff results handed to BlitDiff.
type blitBackend struct {
	*NullBackend
	blits []diff.Result
}

func (b *blitBackend) BlitDiff(res diff.Result) {
	b.blits = append(b.blits, res)
}

func TestSessionFrameBlitsToDiffAppliers(t *testing.T) {
	b := &blitBackend{NullBackend: NewNullBackend(20, 5)}
	s := startedSession(t, b)

	err := s.Frame(func(sb *screen.ScreenBuffer) {
		sb.WriteText(0, 0, "hi", screen.TextOptions{})
	})
	if err != nil {
		t.Fatalf("Frame failed: %v", err)
	}

	if len(b.blits) != 1 {
		t.Fatalf("expected 1 blit, got %d", len(b.blits))
	}
	if len(b.blits[0].Ops) == 0 {
		t.Error("expected ops in the blitted result")
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	a := NewSession(NewNullBackend(20, 5))
	b := NewSession(NewNullBackend(20, 5))

	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("expected distinct session IDs, got %q and %q", a.ID(), b.ID())
	}
}

func TestSessionRenderOptionsOverrideColorMode(t *testing.T) {
	b := NewNullBackend(20, 5)
	s := startedSession(t, b, WithRenderOptions(render.WithColorMode(render.ModeMono)))

	err := s.Frame(func(sb *screen.ScreenBuffer) {
		sb.WriteText(0, 0, "hi", screen.TextOptions{Foreground: core.ColorFromRGB(255, 0, 0)})
	})
	if err != nil {
		t.Fatalf("Frame failed: %v", err)
	}

	if out := b.Output(); bytes.Contains(out, []byte("38;2;")) {
		t.Errorf("expected mono output without truecolor sequences, got %q", out)
	}
}

func TestSessionDiffOptions(t *testing.T) {
	s := startedSession(t, NewNullBackend(20, 5), WithDiffOptions(diff.Options{Level: diff.LevelNone}))

	if got := s.DiffOptions().Level; got != diff.LevelNone {
		t.Errorf("expected LevelNone, got %v", got)
	}

	s.SetDiffOptions(diff.DefaultOptions())
	if got := s.DiffOptions().Level; got != diff.LevelBalanced {
		t.Errorf("expected LevelBalanced after update, got %v", got)
	}
}
