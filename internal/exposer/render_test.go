package exposer

import (
	"image/color"
	"math"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestRenderCorners(t *testing.T) {
	e := learned(t, cornersConfig, 2, corners())
	pixels, err := e.Render(DefaultScale)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pixels, test.ShouldHaveLength, 2)
	test.That(t, pixels[0], test.ShouldHaveLength, 2)

	// Cells holding the sample nearest to their corner reach full support.
	red := color.RGBA{R: 255, A: 255}
	// Class 1 cells have hue 1/2: the cyan chroma leaks 15 into blue.
	green := color.RGBA{G: 255, B: 15, A: 255}
	test.That(t, pixels[0][0], test.ShouldResemble, red)
	test.That(t, pixels[1][0], test.ShouldResemble, green)

	// The other class 0 cell is weaker; a saturated red only scales with value.
	v := e.Grid().Row(1, nil)[0]
	test.That(t, v, test.ShouldBeLessThan, 1.0)
	test.That(t, pixels[0][1], test.ShouldResemble, color.RGBA{R: uint8(math.Round(255 * v)), A: 255})

	img := pixels.Image()
	test.That(t, img.Bounds().Dx(), test.ShouldEqual, 2)
	test.That(t, img.RGBAAt(0, 1), test.ShouldResemble, green)
}

func TestRenderIsIdempotent(t *testing.T) {
	e := learned(t, Config{Grain: 20, Radius: 0.2, ChosenLambda: []int{0, 1, 2}}, 3, blobs(300, 5))
	for _, scale := range []int{0, 128, DefaultScale, 255} {
		a, err := e.Render(scale)
		test.That(t, err, test.ShouldBeNil)
		b, err := e.Render(scale)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, a, test.ShouldResemble, b)
		test.That(t, a, test.ShouldHaveLength, 20)
	}
}

func TestRenderErrors(t *testing.T) {
	e, err := New(cornersConfig, 2, 2)
	test.That(t, err, test.ShouldBeNil)
	_, err = e.Render(DefaultScale)
	test.That(t, errors.Is(err, ErrNotTrained), test.ShouldBeTrue)

	test.That(t, e.Learn(corners()), test.ShouldBeNil)
	_, err = e.Render(256)
	test.That(t, errors.Is(err, ErrBadScale), test.ShouldBeTrue)
	_, err = e.Render(-1)
	test.That(t, errors.Is(err, ErrBadScale), test.ShouldBeTrue)

	oneDim := learned(t, Config{Grain: 4, Radius: 0.5, ChosenLambda: []int{0}}, 2, corners())
	_, err = oneDim.Render(DefaultScale)
	test.That(t, errors.Is(err, ErrRenderDimensions), test.ShouldBeTrue)
}
