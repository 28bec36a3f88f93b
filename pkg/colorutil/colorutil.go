// Package colorutil provides the colour maths used to visualize class-support grids.
package colorutil

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSVChroma converts hue, saturation and value (all 0-1) to RGB (0-1) using
// the six hue sectors of width 1/6. Only the chroma part is returned: the
// value offset V-C is not added back, so a fully desaturated cell maps to black.
func HSVChroma(h, s, v float64) (r, g, b float64) {
	// Hue is periodic; keep it inside [0,1) so every sector is reachable.
	h = h - math.Floor(h)
	c := colorful.Hsv(h*360, s, v)
	m := v - v*s
	return clampUnit(c.R - m), clampUnit(c.G - m), clampUnit(c.B - m)
}

// Blend mixes a guide colour and an HSV-derived colour, both with channels in
// 0-1, into 8-bit channels: guide*scale + hsv*(255-scale).
func Blend(guide, hsv [3]float64, scale uint8) color.RGBA {
	w := float64(scale)
	mix := func(i int) uint8 {
		return toByte(guide[i]*w + hsv[i]*(255-w))
	}
	return color.RGBA{R: mix(0), G: mix(1), B: mix(2), A: 255}
}

func toByte(x float64) uint8 {
	x = math.Round(x)
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return uint8(x)
}

// clampUnit removes the rounding noise of the offset subtraction.
func clampUnit(x float64) float64 {
	if x < 1e-12 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
