package colorutil

import (
	"image/color"
	"testing"

	"go.viam.com/test"
)

func TestHSVChromaSectors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		h       float64
		r, g, b float64
	}{
		{"red", 0, 1, 0, 0},
		{"yellow", 1.0 / 6, 1, 1, 0},
		{"green", 2.0 / 6, 0, 1, 0},
		{"cyan", 3.0 / 6, 0, 1, 1},
		{"blue", 4.0 / 6, 0, 0, 1},
		{"magenta", 5.0 / 6, 1, 0, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r, g, b := HSVChroma(tc.h, 1, 1)
			test.That(t, r, test.ShouldAlmostEqual, tc.r, 1e-9)
			test.That(t, g, test.ShouldAlmostEqual, tc.g, 1e-9)
			test.That(t, b, test.ShouldAlmostEqual, tc.b, 1e-9)
		})
	}
}

func TestHSVChromaDropsValueOffset(t *testing.T) {
	// Zero saturation has zero chroma regardless of value.
	r, g, b := HSVChroma(0.5, 0, 0.8)
	test.That(t, r, test.ShouldEqual, 0.0)
	test.That(t, g, test.ShouldEqual, 0.0)
	test.That(t, b, test.ShouldEqual, 0.0)

	// Half saturation, half value on red: chroma 0.25 in red only.
	r, g, b = HSVChroma(0, 0.5, 0.5)
	test.That(t, r, test.ShouldAlmostEqual, 0.25, 1e-9)
	test.That(t, g, test.ShouldEqual, 0.0)
	test.That(t, b, test.ShouldEqual, 0.0)
}

func TestBlend(t *testing.T) {
	guide := [3]float64{1, 0, 0.5}
	hsv := [3]float64{0, 1, 1}

	test.That(t, Blend(guide, hsv, 255), test.ShouldResemble, color.RGBA{R: 255, G: 0, B: 128, A: 255})
	test.That(t, Blend(guide, hsv, 0), test.ShouldResemble, color.RGBA{R: 0, G: 255, B: 255, A: 255})

	c := Blend(guide, hsv, 240)
	test.That(t, c.R, test.ShouldEqual, uint8(240))
	test.That(t, c.G, test.ShouldEqual, uint8(15))
	test.That(t, c.B, test.ShouldEqual, uint8(135))
}
