// Package color implements the engine's four-channel color model: linear
// [0,1] float red/green/blue/alpha channels, Porter-Duff compositing, and
// quantization down to the 256-color and 16-color terminal palettes.
package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Rgba is a four-channel color with channels in [0,1].
type Rgba struct {
	R, G, B, A float64
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// New builds a color from float channels, clamping each to [0,1].
func New(r, g, b, a float64) Rgba {
	return Rgba{clamp01(r), clamp01(g), clamp01(b), clamp01(a)}
}

// FromBytes builds an opaque color from 8-bit channel values.
func FromBytes(r, g, b uint8) Rgba {
	return Rgba{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

// FromBytesAlpha builds a color from 8-bit channel values including alpha.
func FromBytesAlpha(r, g, b, a uint8) Rgba {
	return Rgba{float64(r) / 255, float64(g) / 255, float64(b) / 255, float64(a) / 255}
}

// FromHex parses "#RGB", "#RRGGBB", or "#RRGGBBAA" (leading '#' optional).
// Returns false if the string isn't a well-formed hex color.
func FromHex(s string) (Rgba, bool) {
	s = strings.TrimPrefix(s, "#")
	expand := func(c byte) (byte, byte) { return c, c }
	hexByte := func(hi, lo byte) (uint8, bool) {
		v, err := strconv.ParseUint(string([]byte{hi, lo}), 16, 8)
		if err != nil {
			return 0, false
		}
		return uint8(v), true
	}
	switch len(s) {
	case 3:
		rh, rl := expand(s[0])
		gh, gl := expand(s[1])
		bh, bl := expand(s[2])
		r, ok1 := hexByte(rh, rl)
		g, ok2 := hexByte(gh, gl)
		b, ok3 := hexByte(bh, bl)
		if !ok1 || !ok2 || !ok3 {
			return Rgba{}, false
		}
		return FromBytes(r, g, b), true
	case 6:
		r, ok1 := hexByte(s[0], s[1])
		g, ok2 := hexByte(s[2], s[3])
		b, ok3 := hexByte(s[4], s[5])
		if !ok1 || !ok2 || !ok3 {
			return Rgba{}, false
		}
		return FromBytes(r, g, b), true
	case 8:
		r, ok1 := hexByte(s[0], s[1])
		g, ok2 := hexByte(s[2], s[3])
		b, ok3 := hexByte(s[4], s[5])
		a, ok4 := hexByte(s[6], s[7])
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return Rgba{}, false
		}
		return FromBytesAlpha(r, g, b, a), true
	default:
		return Rgba{}, false
	}
}

// Hex renders the color as "#RRGGBB" (alpha dropped), normalizing any valid
// input hex string to this canonical 6-digit form.
func (c Rgba) Hex() string {
	r, g, b := c.RGBBytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// FromHSV builds an opaque color from hue [0,360), saturation and value in
// [0,1], via go-colorful's HSV conversion.
func FromHSV(h, s, v float64) Rgba {
	cc := colorful.Hsv(h, clamp01(s), clamp01(v))
	return Rgba{clamp01(cc.R), clamp01(cc.G), clamp01(cc.B), 1}
}

// RGBBytes converts to 8-bit per-channel bytes, alpha discarded.
func (c Rgba) RGBBytes() (r, g, b uint8) {
	return uint8(math.Round(clamp01(c.R) * 255)),
		uint8(math.Round(clamp01(c.G) * 255)),
		uint8(math.Round(clamp01(c.B) * 255))
}

// WithAlpha returns a copy of c with the alpha channel replaced.
func (c Rgba) WithAlpha(a float64) Rgba {
	c.A = clamp01(a)
	return c
}

// MultiplyAlpha returns a copy of c with its alpha scaled by factor, clamped.
func (c Rgba) MultiplyAlpha(factor float64) Rgba {
	c.A = clamp01(c.A * factor)
	return c
}

// Over composites c (the source) atop dst (the destination) using the
// Porter-Duff "over" operator, returning the resulting opaque-or-translucent
// color. Matches invariant 3: drawing color src into an empty cell (alpha 0)
// under an alpha-stack product p yields alpha p*src.a.
func (src Rgba) Over(dst Rgba) Rgba {
	sa := clamp01(src.A)
	da := clamp01(dst.A)
	outA := sa + da*(1-sa)
	if outA == 0 {
		return Rgba{0, 0, 0, 0}
	}
	blend := func(s, d float64) float64 {
		return (s*sa + d*da*(1-sa)) / outA
	}
	return Rgba{
		R: clamp01(blend(src.R, dst.R)),
		G: clamp01(blend(src.G, dst.G)),
		B: clamp01(blend(src.B, dst.B)),
		A: clamp01(outA),
	}
}

// Lerp linearly interpolates from a to b. t is clamped to [0,1].
func (a Rgba) Lerp(b Rgba, t float64) Rgba {
	t = clamp01(t)
	lerp := func(x, y float64) float64 { return x + t*(y-x) }
	return Rgba{
		R: clamp01(lerp(a.R, b.R)),
		G: clamp01(lerp(a.G, b.G)),
		B: clamp01(lerp(a.B, b.B)),
		A: clamp01(lerp(a.A, b.A)),
	}
}

// Equal reports whether two colors have identical channels.
func (a Rgba) Equal(b Rgba) bool {
	return a == b
}

// Named constants, matching the teacher's BasicColor/RGB convenience set.
var (
	Black   = FromBytes(0, 0, 0)
	Red     = FromBytes(170, 0, 0)
	Green   = FromBytes(0, 170, 0)
	Yellow  = FromBytes(170, 85, 0)
	Blue    = FromBytes(0, 0, 170)
	Magenta = FromBytes(170, 0, 170)
	Cyan    = FromBytes(0, 170, 170)
	White   = FromBytes(170, 170, 170)

	BrightBlack   = FromBytes(85, 85, 85)
	BrightRed     = FromBytes(255, 85, 85)
	BrightGreen   = FromBytes(85, 255, 85)
	BrightYellow  = FromBytes(255, 255, 85)
	BrightBlue    = FromBytes(85, 85, 255)
	BrightMagenta = FromBytes(255, 85, 255)
	BrightCyan    = FromBytes(85, 255, 255)
	BrightWhite   = FromBytes(255, 255, 255)

	Transparent = Rgba{0, 0, 0, 0}
)
