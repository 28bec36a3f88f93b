package image

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Mosaic lays images out left to right, top-aligned, separated by gap pixels
// of the background colour.
type Mosaic struct {
	Gap       int
	BackColor color.Color
	tiles     []image.Image
}

// NewMosaic creates an empty mosaic on a dark gray background.
func NewMosaic(gap int) *Mosaic {
	return &Mosaic{
		Gap:       gap,
		BackColor: color.RGBA{40, 40, 40, 255},
	}
}

// Add appends a tile. Nil images are ignored.
func (m *Mosaic) Add(img image.Image) {
	if img != nil {
		m.tiles = append(m.tiles, img)
	}
}

// Len returns the number of tiles.
func (m *Mosaic) Len() int {
	return len(m.tiles)
}

// Render produces the combined image.
func (m *Mosaic) Render() *image.RGBA {
	width, height := 0, 0
	for i, t := range m.tiles {
		b := t.Bounds()
		if i > 0 {
			width += m.Gap
		}
		width += b.Dx()
		height = max(height, b.Dy())
	}

	result := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(result, result.Bounds(), &image.Uniform{m.BackColor}, image.Point{}, draw.Src)

	x := 0
	for _, t := range m.tiles {
		b := t.Bounds()
		draw.Draw(result, image.Rect(x, 0, x+b.Dx(), b.Dy()), t, b.Min, draw.Src)
		x += b.Dx() + m.Gap
	}
	return result
}
