package color

import "github.com/lucasb-eyer/go-colorful"

// xterm16 holds the RGB values of the standard 16-color xterm palette, in
// the same black/red/green/.../white, bright-* order as bengarrett/ansibump's
// Xterm16 palette table.
var xterm16 = [16][3]uint8{
	{0x00, 0x00, 0x00}, {0x80, 0x00, 0x00}, {0x00, 0x80, 0x00}, {0x80, 0x80, 0x00},
	{0x00, 0x00, 0x80}, {0x80, 0x00, 0x80}, {0x00, 0x80, 0x80}, {0xc0, 0xc0, 0xc0},
	{0x80, 0x80, 0x80}, {0xff, 0x00, 0x00}, {0x00, 0xff, 0x00}, {0xff, 0xff, 0x00},
	{0x00, 0x00, 0xff}, {0xff, 0x00, 0xff}, {0x00, 0xff, 0xff}, {0xff, 0xff, 0xff},
}

func toColorful(c Rgba) colorful.Color {
	return colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

// To16 returns the nearest of the 16 basic terminal colors (0-15), chosen by
// minimal CIE-Lab distance via go-colorful.
func (c Rgba) To16() uint8 {
	target := toColorful(c)
	best := uint8(0)
	bestDist := 1e9
	for i, rgb := range xterm16 {
		cand := colorful.Color{
			R: float64(rgb[0]) / 255,
			G: float64(rgb[1]) / 255,
			B: float64(rgb[2]) / 255,
		}
		d := target.DistanceLab(cand)
		if d < bestDist {
			bestDist = d
			best = uint8(i)
		}
	}
	return best
}

// To256 returns the nearest index in the standard 256-color xterm palette:
// 0-15 basic colors, 16-231 the 6x6x6 RGB cube, 232-255 the grayscale ramp.
func (c Rgba) To256() uint8 {
	r, g, b := c.RGBBytes()

	// Grayscale fast path: if r≈g≈b, map onto the 24-step gray ramp, using
	// the cube's pure black (16) and white (231) at the two extremes.
	if isGray(r, g, b) {
		avg := (int(r) + int(g) + int(b)) / 3
		if avg < 8 {
			return 16
		}
		if avg > 248 {
			return 231
		}
		idx := (avg - 8) * 24 / 247
		if idx > 23 {
			idx = 23
		}
		return uint8(232 + idx)
	}

	cube := func(v uint8) int {
		// Maps 0-255 onto the 6-step cube levels {0,95,135,175,215,255}.
		levels := [6]int{0, 95, 135, 175, 215, 255}
		best, bestDist := 0, 1<<30
		for i, lv := range levels {
			d := int(v) - lv
			if d < 0 {
				d = -d
			}
			if d < bestDist {
				bestDist = d
				best = i
			}
		}
		return best
	}
	ri, gi, bi := cube(r), cube(g), cube(b)
	return uint8(16 + 36*ri + 6*gi + bi)
}

func isGray(r, g, b uint8) bool {
	maxV, minV := r, r
	for _, v := range []uint8{g, b} {
		if v > maxV {
			maxV = v
		}
		if v < minV {
			minV = v
		}
	}
	return maxV-minV <= 2
}
