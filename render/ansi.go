package render

import "github.com/dshills/cellstorm/core"

// Pre-allocated sequence fragments keep the frame hot path free of
// formatting calls.
var (
	csi         = []byte("\x1b[")
	sgrReset    = []byte("\x1b[0m")
	csiFg256    = []byte("\x1b[38;5;")
	csiBg256    = []byte("\x1b[48;5;")
	csiFgRGB    = []byte("\x1b[38;2;")
	csiBgRGB    = []byte("\x1b[48;2;")
	eraseRight  = []byte("\x1b[K")
	scrollUp    = []byte("\x1b[1S")
	scrollDown  = []byte("\x1b[1T")
	regionReset = []byte("\x1b[r")
	syncStart   = []byte("\x1b[?2026h")
	syncEnd     = []byte("\x1b[?2026l")
)

// sgrAttrs maps style bits to their sequences in emission order. Each
// attribute goes out as its own sequence.
var sgrAttrs = [8]struct {
	attr core.Attribute
	seq  []byte
}{
	{core.AttrBold, []byte("\x1b[1m")},
	{core.AttrDim, []byte("\x1b[2m")},
	{core.AttrItalic, []byte("\x1b[3m")},
	{core.AttrUnderline, []byte("\x1b[4m")},
	{core.AttrBlink, []byte("\x1b[5m")},
	{core.AttrReverse, []byte("\x1b[7m")},
	{core.AttrHidden, []byte("\x1b[8m")},
	{core.AttrStrikethrough, []byte("\x1b[9m")},
}

// appendInt appends a non-negative decimal. Terminal parameters are almost
// always below 1000, so the common cases avoid the general loop.
func appendInt(buf []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	switch {
	case n < 10:
		return append(buf, byte(n)+'0')
	case n < 100:
		return append(buf, byte(n/10)+'0', byte(n%10)+'0')
	case n < 1000:
		return append(buf, byte(n/100)+'0', byte(n/10%10)+'0', byte(n%10)+'0')
	}
	var tmp [10]byte
	i := len(tmp)
	for n > 0 {
		i--
		tmp[i] = byte(n%10) + '0'
		n /= 10
	}
	return append(buf, tmp[i:]...)
}

// appendCursorMove appends absolute positioning for a 0-indexed coordinate.
func appendCursorMove(buf []byte, x, y int) []byte {
	buf = append(buf, csi...)
	buf = appendInt(buf, y+1)
	buf = append(buf, ';')
	buf = appendInt(buf, x+1)
	return append(buf, 'H')
}

// appendFg appends the foreground sequence for a non-default color.
func appendFg(buf []byte, c core.Color) []byte {
	switch c.Kind {
	case core.ColorKindBasic:
		buf = append(buf, csi...)
		buf = append(buf, '3', '0'+c.Index())
		return append(buf, 'm')
	case core.ColorKindIndexed:
		buf = append(buf, csiFg256...)
		buf = appendInt(buf, int(c.Index()))
		return append(buf, 'm')
	case core.ColorKindRGB:
		buf = append(buf, csiFgRGB...)
		buf = appendRGB(buf, c)
		return append(buf, 'm')
	}
	return buf
}

// appendBg appends the background sequence for a non-default color.
func appendBg(buf []byte, c core.Color) []byte {
	switch c.Kind {
	case core.ColorKindBasic:
		buf = append(buf, csi...)
		buf = append(buf, '4', '0'+c.Index())
		return append(buf, 'm')
	case core.ColorKindIndexed:
		buf = append(buf, csiBg256...)
		buf = appendInt(buf, int(c.Index()))
		return append(buf, 'm')
	case core.ColorKindRGB:
		buf = append(buf, csiBgRGB...)
		buf = appendRGB(buf, c)
		return append(buf, 'm')
	}
	return buf
}

func appendRGB(buf []byte, c core.Color) []byte {
	buf = appendInt(buf, int(c.R))
	buf = append(buf, ';')
	buf = appendInt(buf, int(c.G))
	buf = append(buf, ';')
	return appendInt(buf, int(c.B))
}

// appendScrollRegion appends the region set for 0-indexed inclusive rows.
func appendScrollRegion(buf []byte, top, bottom int) []byte {
	buf = append(buf, csi...)
	buf = appendInt(buf, top+1)
	buf = append(buf, ';')
	buf = appendInt(buf, bottom+1)
	return append(buf, 'r')
}
