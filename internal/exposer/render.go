package exposer

import (
	"image"
	"image/color"

	"github.com/pkg/errors"

	"exposer/pkg/colorutil"
)

// Pixels is a grain x grain picture of the grid, indexed [y][x]. The x axis is
// the first chosen dimension and y the second; further axes are held at 0.
type Pixels [][]color.RGBA

// Render paints the first two dimensions of the grid. The first three class
// supports of a cell are its guide colour (missing classes stay 0) and are
// blended with the cell's HSV colour: guide*scale + hsv*(255-scale).
func (e *Exposer) Render(scale int) (Pixels, error) {
	if e.grid == nil {
		return nil, ErrNotTrained
	}
	if scale < 0 || scale > 255 {
		return nil, errors.Wrapf(ErrBadScale, "got %d", scale)
	}
	if e.cfg.Dimensions() < 2 {
		return nil, errors.Wrapf(ErrRenderDimensions, "have %d", e.cfg.Dimensions())
	}

	grain := e.cfg.Grain
	vector := make([]int, e.cfg.Dimensions())
	row := make([]float64, e.classes)
	pixels := make(Pixels, grain)
	for y := 0; y < grain; y++ {
		pixels[y] = make([]color.RGBA, grain)
		vector[1] = y
		for x := 0; x < grain; x++ {
			vector[0] = x
			pos := e.grid.Position(vector)
			e.grid.Row(pos, row)

			var guide [3]float64
			copy(guide[:], row)

			hsv := e.measures.HSV[pos]
			r, g, b := colorutil.HSVChroma(hsv.H, hsv.S, hsv.V)
			pixels[y][x] = colorutil.Blend(guide, [3]float64{r, g, b}, uint8(scale))
		}
	}
	return pixels, nil
}

// Image converts the pixels into an image for encoding.
func (p Pixels) Image() *image.RGBA {
	h := len(p)
	w := 0
	if h > 0 {
		w = len(p[0])
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y, row := range p {
		for x, c := range row {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
