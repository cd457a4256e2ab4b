package backend

import (
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/cellstorm/core"
	"github.com/dshills/cellstorm/diff"
	"github.com/dshills/cellstorm/render"
)

// TcellBackend wraps a tcell screen behind the Backend interface for
// portability. tcell owns the byte stream, so the renderer's escape
// sequences cannot be replayed into it; frames are applied through
// BlitDiff instead of the Writer stream.
type TcellBackend struct {
	screen tcell.Screen
	mode   render.ColorMode

	resizeCh chan Size
	doneCh   chan struct{}

	cursorX       int
	cursorY       int
	cursorVisible bool

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// NewTcellBackend creates a tcell-backed terminal.
func NewTcellBackend() (*TcellBackend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &TcellBackend{
		screen:   screen,
		resizeCh: make(chan Size, 1),
	}, nil
}

// Init starts the tcell screen and the event pump feeding the resize
// channel.
func (t *TcellBackend) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return err
	}

	switch colors := t.screen.Colors(); {
	case colors > 256:
		t.mode = render.ModeTrueColor
	case colors >= 256:
		t.mode = render.ModeIndexed256
	case colors >= 8:
		t.mode = render.ModeBasic8
	default:
		t.mode = render.ModeMono
	}

	t.screen.HideCursor()

	t.doneCh = make(chan struct{})
	go t.pumpEvents()

	t.initialized = true
	return nil
}

// pumpEvents drains tcell events, forwarding resizes. PollEvent returns nil
// once the screen is finalized, which ends the pump.
func (t *TcellBackend) pumpEvents() {
	defer close(t.doneCh)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		if resize, ok := ev.(*tcell.EventResize); ok {
			w, h := resize.Size()
			postLatest(t.resizeCh, Size{Width: w, Height: h})
		}
	}
}

// Shutdown finalizes the tcell screen. Safe to call multiple times.
func (t *TcellBackend) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	t.screen.Fini()
	<-t.doneCh
	t.finalized = true
}

// Size returns the current terminal dimensions.
func (t *TcellBackend) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

// ResizeChan returns the channel resize events arrive on.
func (t *TcellBackend) ResizeChan() <-chan Size {
	return t.resizeCh
}

// ColorMode reports the capability tcell negotiated with the terminal.
func (t *TcellBackend) ColorMode() render.ColorMode {
	return t.mode
}

// Writer discards rendered bytes. tcell owns the terminal's escape stream;
// apply frames with BlitDiff instead.
func (t *TcellBackend) Writer() io.Writer {
	return io.Discard
}

// Flush makes the current tcell cell state visible.
func (t *TcellBackend) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.initialized || t.finalized {
		return nil
	}
	t.screen.Show()
	return nil
}

// SetCursorVisible shows or hides the hardware cursor.
func (t *TcellBackend) SetCursorVisible(visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.initialized || t.finalized {
		return
	}

	t.cursorVisible = visible
	if visible {
		t.screen.ShowCursor(t.cursorX, t.cursorY)
	} else {
		t.screen.HideCursor()
	}
}

// MoveCursor positions the hardware cursor.
func (t *TcellBackend) MoveCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.initialized || t.finalized {
		return
	}

	t.cursorX, t.cursorY = x, y
	if t.cursorVisible {
		t.screen.ShowCursor(x, y)
	}
}

// EnterAltScreen is a no-op: tcell enters the alternate screen during Init.
func (t *TcellBackend) EnterAltScreen() {}

// ExitAltScreen is a no-op: tcell leaves the alternate screen during Fini.
func (t *TcellBackend) ExitAltScreen() {}

// SetTitle sets the terminal window title.
func (t *TcellBackend) SetTitle(title string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.initialized || t.finalized {
		return
	}
	t.screen.SetTitle(title)
}

// BlitDiff applies a diff result directly to the tcell cell grid. This is
// the frame path for this backend; follow with Flush to present.
func (t *TcellBackend) BlitDiff(res diff.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.initialized || t.finalized {
		return
	}

	for _, op := range res.Ops {
		switch op := op.(type) {
		case diff.SetCell:
			t.setCell(op.X, op.Y, op.Cell)
		case diff.SetSpan:
			x := op.X
			for i := 0; i < len(op.Cells); i++ {
				cell := op.Cells[i]
				t.setCell(x, op.Y, cell)
				if cell.Width == 2 {
					x += 2
					if i+1 < len(op.Cells) {
						i++
					}
					continue
				}
				x++
			}
		case diff.ClearRegion:
			blank := core.EmptyCell()
			for y := op.Y; y < op.Y+op.Height; y++ {
				for x := op.X; x < op.X+op.Width; x++ {
					t.setCell(x, y, blank)
				}
			}
		case diff.Scroll:
			t.scrollRegion(op.Region, op.Lines)
		case diff.CopyRegion:
			t.copyRegion(op)
		}
	}
}

func (t *TcellBackend) setCell(x, y int, cell core.Cell) {
	r := cell.Rune
	if r == 0 {
		r = ' '
	}
	t.screen.SetContent(x, y, r, nil, tcellStyle(cell.Style))
}

// scrollRegion moves region content by lines (positive is up), blanking the
// exposed rows. tcell has no scroll primitive, so rows are copied through
// the cell grid.
func (t *TcellBackend) scrollRegion(region diff.Rect, lines int) {
	if lines == 0 || region.Height <= 0 || region.Width <= 0 {
		return
	}

	top, bottom := region.Y, region.Y+region.Height
	style := tcellStyle(core.DefaultStyle())

	if lines > 0 {
		for y := top; y < bottom-lines; y++ {
			t.moveRow(region.X, y+lines, y, region.Width)
		}
		for y := max(bottom-lines, top); y < bottom; y++ {
			for x := region.X; x < region.X+region.Width; x++ {
				t.screen.SetContent(x, y, ' ', nil, style)
			}
		}
		return
	}

	for y := bottom - 1; y >= top-lines; y-- {
		t.moveRow(region.X, y+lines, y, region.Width)
	}
	for y := top; y < min(top-lines, bottom); y++ {
		for x := region.X; x < region.X+region.Width; x++ {
			t.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func (t *TcellBackend) copyRegion(op diff.CopyRegion) {
	if op.Width <= 0 || op.Height <= 0 {
		return
	}

	// Iterate away from the overlap so rows are read before they are
	// overwritten.
	if op.DstY <= op.SrcY {
		for dy := 0; dy < op.Height; dy++ {
			t.moveRow(op.SrcX, op.SrcY+dy, op.DstY+dy, op.Width)
		}
		return
	}
	for dy := op.Height - 1; dy >= 0; dy-- {
		t.moveRow(op.SrcX, op.SrcY+dy, op.DstY+dy, op.Width)
	}
}

func (t *TcellBackend) moveRow(x, srcY, dstY, width int) {
	for dx := 0; dx < width; dx++ {
		mainc, combc, style, _ := t.screen.GetContent(x+dx, srcY)
		t.screen.SetContent(x+dx, dstY, mainc, combc, style)
	}
}

// tcellStyle converts a cell style to tcell's representation.
func tcellStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault.
		Foreground(tcellColor(s.Foreground)).
		Background(tcellColor(s.Background))

	if s.Attributes.Has(core.AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(core.AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(core.AttrItalic) {
		style = style.Italic(true)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attributes.Has(core.AttrBlink) {
		style = style.Blink(true)
	}
	if s.Attributes.Has(core.AttrReverse) {
		style = style.Reverse(true)
	}
	if s.Attributes.Has(core.AttrStrikethrough) {
		style = style.StrikeThrough(true)
	}
	// tcell has no hidden attribute; AttrHidden is dropped here.

	return style
}

// tcellColor converts a color to tcell's representation.
func tcellColor(c core.Color) tcell.Color {
	switch c.Kind {
	case core.ColorKindBasic, core.ColorKindIndexed:
		return tcell.PaletteColor(int(c.Index()))
	case core.ColorKindRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	default:
		return tcell.ColorDefault
	}
}
