package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorKind discriminates the color variants.
type ColorKind uint8

// Color variants.
const (
	// ColorKindDefault is the terminal's configured default color.
	ColorKindDefault ColorKind = iota
	// ColorKindBasic is the 8-entry ANSI palette (indices 0-7).
	ColorKindBasic
	// ColorKindIndexed is the 256-entry xterm palette.
	ColorKindIndexed
	// ColorKindRGB is 24-bit true color.
	ColorKindRGB
)

// Color represents a color value.
// Supports the terminal default, the basic 8-color palette, the 256-color
// palette, and true color (RGB).
type Color struct {
	Kind ColorKind
	// R, G, B are the true-color components.
	// For Basic and Indexed colors, R holds the palette index and
	// G and B are zero.
	R, G, B uint8
}

// ColorDefault represents the terminal's default color.
// It is the zero value of Color and carries no payload.
var ColorDefault = Color{}

// The basic ANSI palette by name.
var (
	ColorBlack   = Color{Kind: ColorKindBasic, R: 0}
	ColorRed     = Color{Kind: ColorKindBasic, R: 1}
	ColorGreen   = Color{Kind: ColorKindBasic, R: 2}
	ColorYellow  = Color{Kind: ColorKindBasic, R: 3}
	ColorBlue    = Color{Kind: ColorKindBasic, R: 4}
	ColorMagenta = Color{Kind: ColorKindBasic, R: 5}
	ColorCyan    = Color{Kind: ColorKindBasic, R: 6}
	ColorWhite   = Color{Kind: ColorKindBasic, R: 7}
)

// ColorFromBasic creates a basic palette color. Indices above 7 are masked
// to the low three bits.
func ColorFromBasic(index uint8) Color {
	return Color{Kind: ColorKindBasic, R: index & 0x07}
}

// ColorFromIndex creates a 256-color palette color.
func ColorFromIndex(index uint8) Color {
	return Color{Kind: ColorKindIndexed, R: index}
}

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{Kind: ColorKindRGB, R: r, G: g, B: b}
}

// ColorFromHex creates a true color from a hex string such as "#1e90ff"
// or "#fff".
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	var parts [3]uint64
	switch len(hex) {
	case 3:
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(string(hex[i])+string(hex[i]), 16, 8)
			if err != nil {
				return Color{}, fmt.Errorf("invalid hex color: %s", hex)
			}
			parts[i] = v
		}
	case 6:
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
			if err != nil {
				return Color{}, fmt.Errorf("invalid hex color: %s", hex)
			}
			parts[i] = v
		}
	default:
		return Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}

	return ColorFromRGB(uint8(parts[0]), uint8(parts[1]), uint8(parts[2])), nil
}

// IsDefault returns true if this is the terminal default color.
func (c Color) IsDefault() bool {
	return c.Kind == ColorKindDefault
}

// Equals returns true if two colors are structurally equal: same variant and
// same payload. Default colors compare equal regardless of payload bytes.
func (c Color) Equals(other Color) bool {
	if c.Kind != other.Kind {
		return false
	}
	switch c.Kind {
	case ColorKindDefault:
		return true
	case ColorKindBasic, ColorKindIndexed:
		return c.R == other.R
	default:
		return c.R == other.R && c.G == other.G && c.B == other.B
	}
}

// Index returns the palette index of a Basic or Indexed color, and 0 for
// the other variants.
func (c Color) Index() uint8 {
	if c.Kind == ColorKindBasic || c.Kind == ColorKindIndexed {
		return c.R
	}
	return 0
}

// String returns a string representation of the color.
func (c Color) String() string {
	switch c.Kind {
	case ColorKindDefault:
		return "default"
	case ColorKindBasic:
		return fmt.Sprintf("basic(%d)", c.R)
	case ColorKindIndexed:
		return fmt.Sprintf("idx(%d)", c.R)
	default:
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
}

// ToHex returns the hex representation of a true color, or "" for the
// other variants.
func (c Color) ToHex() string {
	if c.Kind != ColorKindRGB {
		return ""
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// colorfulValue converts a true color into a colorful.Color.
func (c Color) colorfulValue() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// fromColorful converts back, clamping to the displayable range.
func fromColorful(cc colorful.Color) Color {
	cc = cc.Clamped()
	return ColorFromRGB(
		uint8(cc.R*255.0+0.5),
		uint8(cc.G*255.0+0.5),
		uint8(cc.B*255.0+0.5),
	)
}

// Lighten returns a lighter version of a true color by blending toward
// white in Lab space. Other variants are returned unchanged.
func (c Color) Lighten(amount float64) Color {
	if c.Kind != ColorKindRGB {
		return c
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return fromColorful(c.colorfulValue().BlendLab(white, amount))
}

// Darken returns a darker version of a true color by blending toward
// black in Lab space. Other variants are returned unchanged.
func (c Color) Darken(amount float64) Color {
	if c.Kind != ColorKindRGB {
		return c
	}
	black := colorful.Color{}
	return fromColorful(c.colorfulValue().BlendLab(black, amount))
}

// Blend blends two true colors in Lab space. If either side is not a true
// color the nearer operand wins: amount below 0.5 keeps the receiver.
func (c Color) Blend(other Color, amount float64) Color {
	if c.Kind != ColorKindRGB || other.Kind != ColorKindRGB {
		if amount < 0.5 {
			return c
		}
		return other
	}
	return fromColorful(c.colorfulValue().BlendLab(other.colorfulValue(), amount))
}

// Luminance returns the relative luminance (0..1) of a true color.
// Other variants report 0.
func (c Color) Luminance() float64 {
	if c.Kind != ColorKindRGB {
		return 0
	}
	r, g, b := c.colorfulValue().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
