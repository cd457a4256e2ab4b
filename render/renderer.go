package render

import (
	"io"
	"time"
	"unicode/utf8"

	"github.com/dshills/cellstorm/core"
	"github.com/dshills/cellstorm/diff"
)

// Stats accumulates renderer counters across frames.
type Stats struct {
	Frames       uint64
	CellsUpdated uint64
	BytesWritten uint64
	DiffTime     time.Duration
	RenderTime   time.Duration
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithColorMode sets the emitted color depth. The default is ModeTrueColor.
func WithColorMode(mode ColorMode) Option {
	return func(r *Renderer) { r.mode = mode }
}

// WithSyncUpdates brackets every non-empty frame in the terminal's
// synchronized update sequences, so the emulator presents the frame
// atomically instead of mid-write. Terminals without the feature ignore
// the markers.
func WithSyncUpdates() Option {
	return func(r *Renderer) { r.syncUpdates = true }
}

// Renderer applies diff operations into a frame buffer and flushes it to a
// sink in a single write. The virtual cursor and the active SGR state are
// tracked across the whole frame and forgotten between frames, so the first
// styled cell of a frame always re-establishes terminal state from a reset.
// Not safe for concurrent use.
type Renderer struct {
	width       int
	height      int
	mode        ColorMode
	syncUpdates bool

	buf         []byte
	cursorX     int
	cursorY     int
	cursorKnown bool
	style       core.Style
	styleKnown  bool

	memo    map[core.Color]core.Color
	scratch [1]core.Cell
	stats   Stats
}

// New creates a renderer for a width x height grid.
func New(width, height int, opts ...Option) *Renderer {
	r := &Renderer{
		width:  width,
		height: height,
		buf:    make([]byte, 0, 4096),
		memo:   make(map[core.Color]core.Color),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resize updates the geometry the renderer clips against.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// ColorMode returns the active color depth.
func (r *Renderer) ColorMode() ColorMode { return r.mode }

// SetColorMode switches the color depth for subsequent frames.
func (r *Renderer) SetColorMode(mode ColorMode) {
	if mode == r.mode {
		return
	}
	r.mode = mode
	clear(r.memo)
}

// Stats returns a copy of the accumulated counters.
func (r *Renderer) Stats() Stats { return r.stats }

// ResetStats zeroes the counters.
func (r *Renderer) ResetStats() { r.stats = Stats{} }

// Render emits one frame's operations in order and writes the result to the
// sink in at most one call. A frame with nothing to emit writes nothing but
// is still counted.
func (r *Renderer) Render(res diff.Result, sink io.Writer) error {
	start := time.Now()
	r.buf = r.buf[:0]
	r.cursorKnown = false
	r.styleKnown = false

	if r.syncUpdates {
		r.buf = append(r.buf, syncStart...)
	}
	prefix := len(r.buf)

	var cells uint64
	for _, op := range res.Ops {
		switch op := op.(type) {
		case diff.SetCell:
			r.scratch[0] = op.Cell
			cells += r.emitSpan(op.X, op.Y, r.scratch[:])
		case diff.SetSpan:
			cells += r.emitSpan(op.X, op.Y, op.Cells)
		case diff.ClearRegion:
			cells += r.emitClear(op)
		case diff.CopyRegion:
			cells += r.emitCopy(op)
		case diff.Scroll:
			r.emitScroll(op.Region, op.Lines)
		}
	}

	if len(r.buf) > prefix {
		if r.syncUpdates {
			r.buf = append(r.buf, syncEnd...)
		}
		n, err := sink.Write(r.buf)
		r.stats.BytesWritten += uint64(n)
		if err != nil {
			return err
		}
	}
	r.stats.Frames++
	r.stats.CellsUpdated += cells
	r.stats.DiffTime += res.Elapsed
	r.stats.RenderTime += time.Since(start)
	return nil
}

// emitSpan writes a run of cells at (x, y), clipped to the grid. A cell
// directly following a width-2 cell inside the run is that cell's
// continuation and emits nothing itself; a continuation at the start of a
// run has lost its wide cell and paints as a styled blank.
func (r *Renderer) emitSpan(x, y int, cells []core.Cell) uint64 {
	if y < 0 || y >= r.height {
		return 0
	}
	if x < 0 {
		if x+len(cells) <= 0 {
			return 0
		}
		cells = cells[-x:]
		x = 0
	}
	if x >= r.width {
		return 0
	}
	if x+len(cells) > r.width {
		cells = cells[:r.width-x]
	}
	if len(cells) == 0 {
		return 0
	}

	r.moveTo(x, y)
	col := x
	for i := 0; i < len(cells); i++ {
		cell := cells[i]
		r.syncStyle(cell.Style)
		switch {
		case cell.Width == 2:
			r.buf = utf8.AppendRune(r.buf, cell.Rune)
			col += 2
			if i+1 < len(cells) {
				i++
			}
		case cell.IsEmpty():
			r.buf = append(r.buf, ' ')
			col++
		default:
			r.buf = utf8.AppendRune(r.buf, cell.Rune)
			col++
		}
	}
	r.cursorX = col
	return uint64(len(cells))
}

// emitClear paints a region back to empty cells. A clear reaching the right
// edge erases to end of line instead of spelling out spaces.
func (r *Renderer) emitClear(op diff.ClearRegion) uint64 {
	x0 := max(op.X, 0)
	y0 := max(op.Y, 0)
	x1 := min(op.X+op.Width, r.width)
	y1 := min(op.Y+op.Height, r.height)
	if x0 >= x1 || y0 >= y1 {
		return 0
	}
	width := x1 - x0
	for y := y0; y < y1; y++ {
		r.moveTo(x0, y)
		r.syncStyle(core.DefaultStyle())
		if x1 == r.width {
			// Erase-to-end leaves the cursor in place.
			r.buf = append(r.buf, eraseRight...)
			continue
		}
		for i := 0; i < width; i++ {
			r.buf = append(r.buf, ' ')
		}
		r.cursorX = x1
	}
	return uint64(width * (y1 - y0))
}

// emitCopy repositions rows using a scroll region, the only block move the
// wire protocol offers without content in hand. Copies that are not
// full-width vertical row moves have no representation and are skipped;
// diff generation never produces them.
func (r *Renderer) emitCopy(op diff.CopyRegion) uint64 {
	if op.SrcX != 0 || op.DstX != 0 || op.Width < r.width {
		return 0
	}
	if op.SrcY == op.DstY || op.Height <= 0 {
		return 0
	}
	top := min(op.SrcY, op.DstY)
	bottom := max(op.SrcY, op.DstY) + op.Height - 1
	if top < 0 || bottom >= r.height {
		return 0
	}
	r.emitScroll(diff.Rect{X: 0, Y: top, Width: r.width, Height: bottom - top + 1}, op.SrcY-op.DstY)
	return uint64(op.Width * op.Height)
}

// emitScroll shifts a region vertically. Positive lines move content up.
// Rows the scroll exposes take the terminal's idea of blank, which the
// residual diff repaints when it differs from the desired content.
func (r *Renderer) emitScroll(region diff.Rect, lines int) {
	if lines == 0 || region.Height <= 0 {
		return
	}
	full := region.Y <= 0 && region.Y+region.Height >= r.height
	if !full {
		r.buf = appendScrollRegion(r.buf, region.Y, region.Y+region.Height-1)
	}
	seq := scrollUp
	n := lines
	if lines < 0 {
		seq = scrollDown
		n = -lines
	}
	for i := 0; i < n; i++ {
		r.buf = append(r.buf, seq...)
	}
	if !full {
		r.buf = append(r.buf, regionReset...)
	}
	// Region changes home the cursor; forget the tracked position either way.
	r.cursorKnown = false
}

func (r *Renderer) moveTo(x, y int) {
	if r.cursorKnown && r.cursorX == x && r.cursorY == y {
		return
	}
	r.buf = appendCursorMove(r.buf, x, y)
	r.cursorX = x
	r.cursorY = y
	r.cursorKnown = true
}

// syncStyle brings the terminal's SGR state to the target style with the
// smallest sequence set. Attributes only switch off through a full reset,
// so dropping one, or returning a color to default, resets and rebuilds;
// otherwise only the additions and color changes are emitted.
func (r *Renderer) syncStyle(target core.Style) {
	target.Foreground = r.downsample(target.Foreground)
	target.Background = r.downsample(target.Background)
	if r.styleKnown && r.style == target {
		return
	}

	if !r.styleKnown || r.needsReset(target) {
		r.buf = append(r.buf, sgrReset...)
		for _, a := range sgrAttrs {
			if target.Attributes.Has(a.attr) {
				r.buf = append(r.buf, a.seq...)
			}
		}
		if !target.Foreground.IsDefault() {
			r.buf = appendFg(r.buf, target.Foreground)
		}
		if !target.Background.IsDefault() {
			r.buf = appendBg(r.buf, target.Background)
		}
	} else {
		for _, a := range sgrAttrs {
			if target.Attributes.Has(a.attr) && !r.style.Attributes.Has(a.attr) {
				r.buf = append(r.buf, a.seq...)
			}
		}
		if target.Foreground != r.style.Foreground {
			r.buf = appendFg(r.buf, target.Foreground)
		}
		if target.Background != r.style.Background {
			r.buf = appendBg(r.buf, target.Background)
		}
	}
	r.style = target
	r.styleKnown = true
}

func (r *Renderer) needsReset(target core.Style) bool {
	if r.style.Attributes&^target.Attributes != 0 {
		return true
	}
	if target.Foreground.IsDefault() && !r.style.Foreground.IsDefault() {
		return true
	}
	return target.Background.IsDefault() && !r.style.Background.IsDefault()
}

func (r *Renderer) downsample(c core.Color) core.Color {
	if r.mode == ModeTrueColor || c.IsDefault() {
		return c
	}
	if mapped, ok := r.memo[c]; ok {
		return mapped
	}
	mapped := Downsample(c, r.mode)
	if len(r.memo) > 4096 {
		clear(r.memo)
	}
	r.memo[c] = mapped
	return mapped
}
