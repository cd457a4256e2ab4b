package theme

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/cellstorm/core"
	"github.com/dshills/cellstorm/render"
)

// Theme is a named set of coordinated colors.
type Theme struct {
	Name       string
	Background core.Color
	Foreground core.Color
	Accents    []core.Color
}

// Default returns the built-in dark theme.
func Default() Theme {
	return Theme{
		Name:       "storm",
		Background: core.ColorFromRGB(0x1a, 0x1b, 0x26),
		Foreground: core.ColorFromRGB(0xc0, 0xca, 0xf5),
		Accents: []core.Color{
			core.ColorFromRGB(0x7a, 0xa2, 0xf7),
			core.ColorFromRGB(0xbb, 0x9a, 0xf7),
			core.ColorFromRGB(0x7d, 0xcf, 0xff),
			core.ColorFromRGB(0x9e, 0xce, 0x6a),
			core.ColorFromRGB(0xe0, 0xaf, 0x68),
			core.ColorFromRGB(0xf7, 0x76, 0x8e),
		},
	}
}

// Accent returns accent i, wrapping around the run. Themes without accents
// fall back to the foreground.
func (t Theme) Accent(i int) core.Color {
	if len(t.Accents) == 0 {
		return t.Foreground
	}
	if i < 0 {
		i = -i
	}
	return t.Accents[i%len(t.Accents)]
}

// DefaultCell returns the buffer default cell painted in the theme colors.
func (t Theme) DefaultCell() core.Cell {
	return core.EmptyCell().WithStyle(
		core.DefaultStyle().WithForeground(t.Foreground).WithBackground(t.Background))
}

// Adapt downsamples every theme color to the given depth.
func (t Theme) Adapt(mode render.ColorMode) Theme {
	out := Theme{
		Name:       t.Name,
		Background: render.Downsample(t.Background, mode),
		Foreground: render.Downsample(t.Foreground, mode),
	}
	if len(t.Accents) > 0 {
		out.Accents = make([]core.Color, len(t.Accents))
		for i, c := range t.Accents {
			out.Accents[i] = render.Downsample(c, mode)
		}
	}
	return out
}

// Ramp returns steps colors fading between two colors through Lab space.
func Ramp(from, to core.Color, steps int) []core.Color {
	if steps <= 0 {
		return nil
	}
	if steps == 1 {
		return []core.Color{from}
	}
	out := make([]core.Color, steps)
	for i := range out {
		out[i] = from.Blend(to, float64(i)/float64(steps-1))
	}
	return out
}

// GenerateAccents builds n visually distinct accent colors.
func GenerateAccents(n int) []core.Color {
	if n <= 0 {
		return nil
	}
	out := make([]core.Color, n)
	for i, cc := range colorful.FastHappyPalette(n) {
		cc = cc.Clamped()
		out[i] = core.ColorFromRGB(
			uint8(cc.R*255.0+0.5),
			uint8(cc.G*255.0+0.5),
			uint8(cc.B*255.0+0.5),
		)
	}
	return out
}

// ForegroundFor picks black or white for readable text over a background.
// Non-RGB backgrounds get the terminal default.
func ForegroundFor(bg core.Color) core.Color {
	if bg.Kind != core.ColorKindRGB {
		return core.ColorDefault
	}
	if bg.Luminance() > 0.5 {
		return core.ColorFromRGB(0, 0, 0)
	}
	return core.ColorFromRGB(0xff, 0xff, 0xff)
}
