package main

import (
	"fmt"
	"math"

	"github.com/dshills/cellstorm/backend"
	"github.com/dshills/cellstorm/core"
	"github.com/dshills/cellstorm/screen"
	"github.com/dshills/cellstorm/theme"
)

const (
	tickerRows   = 5
	trailLength  = 8
	tickerPeriod = 0.4
)

// showcase is the built-in demo scene: a themed title bar, bouncing color
// trails, and a ticker pane whose shifting lines give the diff engine
// scroll runs to detect.
type showcase struct {
	session *backend.Session
	theme   theme.Theme

	trails   [][]core.Color
	lines    []string
	nextLine float64
}

func newShowcase(session *backend.Session, th theme.Theme) *showcase {
	s := &showcase{session: session, theme: th}
	for _, accent := range th.Accents {
		s.trails = append(s.trails, theme.Ramp(accent, th.Background, trailLength))
	}
	if len(s.trails) == 0 {
		s.trails = append(s.trails, theme.Ramp(th.Foreground, th.Background, trailLength))
	}
	return s
}

// step draws one animation frame into the session's back buffer.
func (s *showcase) step(elapsed float64) error {
	sb := s.session.Buffer()
	w, h := sb.Size()
	if w < 24 || h < tickerRows+4 {
		sb.Clear()
		sb.WriteText(0, 0, "terminal too small", screen.TextOptions{})
		return nil
	}

	fieldTop := 1
	fieldBottom := h - tickerRows - 1

	s.drawTitle(sb, w)
	s.drawField(sb, w, fieldTop, fieldBottom, elapsed)
	s.drawTicker(sb, w, fieldBottom, h, elapsed)
	return nil
}

func (s *showcase) drawTitle(sb *screen.ScreenBuffer, w int) {
	bg := s.theme.Accent(0)
	fg := theme.ForegroundFor(bg)
	sb.FillRect(0, 0, w, 1, core.NewStyledCell(' ', core.NewStyle(fg).WithBackground(bg)))

	sb.WriteText(1, 0, "cellstorm", screen.TextOptions{
		Foreground: fg,
		Background: bg,
		Attributes: core.AttrBold,
	})

	stats := s.session.Stats()
	right := fmt.Sprintf("frames %d  cells %d", stats.Frames, stats.CellsUpdated)
	if x := w - len(right) - 1; x > 12 {
		sb.WriteText(x, 0, right, screen.TextOptions{Foreground: fg, Background: bg})
	}
}

// drawField clears the play area and draws each accent's bouncing trail.
func (s *showcase) drawField(sb *screen.ScreenBuffer, w, top, bottom int, elapsed float64) {
	sb.ClearRegion(0, top, w, bottom-top)

	height := bottom - top
	for i, trail := range s.trails {
		// Per-trail phase and speed offsets keep the paths apart.
		speed := 14.0 + 3.0*float64(i)
		phase := float64(i) * 7.0

		for j := len(trail) - 1; j >= 0; j-- {
			t := elapsed*speed + phase - float64(j)*1.5
			x := bounce(t, w)
			y := top + bounce(t*0.6, height)
			cell := core.NewStyledCell('█', core.NewStyle(trail[j]))
			if err := sb.SetCell(x, y, cell); err != nil {
				return
			}
		}
	}
}

// drawTicker appends a stats line every tick period and renders the most
// recent lines bottom-aligned. Once the pane is full each new line shifts
// the block up one row.
func (s *showcase) drawTicker(sb *screen.ScreenBuffer, w, top, h int, elapsed float64) {
	sb.DrawHLine(0, top, w, core.NewStyledCell('─', core.NewStyle(s.theme.Accent(1))))

	if elapsed >= s.nextLine {
		stats := s.session.Stats()
		s.lines = append(s.lines, fmt.Sprintf("%7.2fs  frames=%-6d cells=%-8d bytes=%d",
			elapsed, stats.Frames, stats.CellsUpdated, stats.BytesWritten))
		if len(s.lines) > tickerRows {
			s.lines = s.lines[len(s.lines)-tickerRows:]
		}
		s.nextLine = elapsed + tickerPeriod
	}

	paneTop := top + 1
	sb.ClearRegion(0, paneTop, w, h-paneTop)
	for i, line := range s.lines {
		y := h - len(s.lines) + i
		sb.WriteText(1, y, line, screen.TextOptions{Foreground: s.theme.Foreground})
	}
}

// bounce folds t into a triangle wave over [0, limit), so positions sweep
// back and forth instead of wrapping.
func bounce(t float64, limit int) int {
	if limit <= 1 {
		return 0
	}
	period := float64(2 * (limit - 1))
	phase := math.Mod(t, period)
	if phase < 0 {
		phase += period
	}
	if phase > float64(limit-1) {
		phase = period - phase
	}
	return int(phase)
}
