package render

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/cellstorm/core"
	"github.com/dshills/cellstorm/internal/xterm"
)

// ColorMode is the color depth negotiated with the terminal.
type ColorMode uint8

const (
	// ModeTrueColor passes 24-bit colors through unchanged.
	ModeTrueColor ColorMode = iota
	// ModeIndexed256 maps RGB colors onto the xterm 256-color palette.
	ModeIndexed256
	// ModeBasic8 maps RGB and indexed colors onto the eight base colors.
	ModeBasic8
	// ModeMono drops colors entirely. Attributes still apply.
	ModeMono
)

func (m ColorMode) String() string {
	switch m {
	case ModeTrueColor:
		return "truecolor"
	case ModeIndexed256:
		return "256"
	case ModeBasic8:
		return "8"
	case ModeMono:
		return "mono"
	}
	return "unknown"
}

// ParseColorMode parses a color mode name. It accepts the String forms plus
// the common aliases seen in terminal configuration.
func ParseColorMode(s string) (ColorMode, bool) {
	switch s {
	case "truecolor", "24bit", "rgb":
		return ModeTrueColor, true
	case "256", "256color", "indexed":
		return ModeIndexed256, true
	case "8", "basic", "ansi":
		return ModeBasic8, true
	case "mono", "none":
		return ModeMono, true
	}
	return ModeTrueColor, false
}

// labPalette holds the xterm palette in sRGB floats for perceptual
// distance matching.
var labPalette = func() [256]colorful.Color {
	var p [256]colorful.Color
	for i := range p {
		r, g, b := xterm.RGB(uint8(i))
		p[i] = colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	}
	return p
}()

// Downsample adapts a color to the given depth. Default colors and colors
// already within the depth pass through unchanged.
func Downsample(c core.Color, mode ColorMode) core.Color {
	switch mode {
	case ModeIndexed256:
		if c.Kind == core.ColorKindRGB {
			return core.ColorFromIndex(uint8(nearestPalette(c, xterm.CubeStart, 256)))
		}
	case ModeBasic8:
		switch c.Kind {
		case core.ColorKindRGB:
			return core.ColorFromBasic(uint8(nearestPalette(c, 0, 8)))
		case core.ColorKindIndexed:
			r, g, b := xterm.RGB(c.Index())
			return core.ColorFromBasic(uint8(nearestPalette(core.ColorFromRGB(r, g, b), 0, 8)))
		}
	case ModeMono:
		return core.ColorDefault
	}
	return c
}

// nearestPalette finds the palette index closest to the color in Lab space
// within [from, to). Matching against ModeIndexed256 starts at the color
// cube because the 16 system slots are user-themeable and unreliable.
func nearestPalette(c core.Color, from, to int) int {
	target := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	best := from
	bestDist := math.MaxFloat64
	for i := from; i < to; i++ {
		if d := target.DistanceLab(labPalette[i]); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
