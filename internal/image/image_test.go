package image

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func checker() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{255, 255, 255, 255})
	return img
}

func TestFormatFromPath(t *testing.T) {
	test.That(t, FormatFromPath("a/b.PNG"), test.ShouldEqual, FormatPNG)
	test.That(t, FormatFromPath("x.bmp"), test.ShouldEqual, FormatBMP)
	test.That(t, FormatFromPath("x.tif"), test.ShouldEqual, FormatTIFF)
	test.That(t, FormatFromPath("x.tiff"), test.ShouldEqual, FormatTIFF)
	test.That(t, FormatFromPath("x.jpg"), test.ShouldEqual, FormatUnknown)
	test.That(t, FormatTIFF.String(), test.ShouldEqual, "tiff")
}

func TestUpscale(t *testing.T) {
	up := Upscale(checker(), 3)
	test.That(t, up.Bounds().Dx(), test.ShouldEqual, 6)
	test.That(t, up.Bounds().Dy(), test.ShouldEqual, 6)
	test.That(t, up.RGBAAt(2, 2), test.ShouldResemble, color.RGBA{255, 0, 0, 255})
	test.That(t, up.RGBAAt(3, 0), test.ShouldResemble, color.RGBA{0, 255, 0, 255})
	test.That(t, up.RGBAAt(0, 5), test.ShouldResemble, color.RGBA{0, 0, 255, 255})
	test.That(t, up.RGBAAt(5, 5), test.ShouldResemble, color.RGBA{255, 255, 255, 255})

	same := Upscale(checker(), 0)
	test.That(t, same.Bounds().Dx(), test.ShouldEqual, 2)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"grid.png", "grid.bmp", "grid.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			test.That(t, Save(path, checker()), test.ShouldBeNil)
			img, err := Load(path)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, img.Bounds().Dx(), test.ShouldEqual, 2)
			r, g, b, _ := img.At(1, 0).RGBA()
			test.That(t, []uint32{r >> 8, g >> 8, b >> 8}, test.ShouldResemble, []uint32{0, 255, 0})
		})
	}
}

func TestSaveUnsupported(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "grid.gif"), checker())
	test.That(t, err, test.ShouldNotBeNil)
	_, err = Load(filepath.Join(t.TempDir(), "missing.png"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestMosaic(t *testing.T) {
	m := NewMosaic(1)
	m.Add(checker())
	m.Add(nil)
	m.Add(Upscale(checker(), 2))
	test.That(t, m.Len(), test.ShouldEqual, 2)

	out := m.Render()
	test.That(t, out.Bounds().Dx(), test.ShouldEqual, 2+1+4)
	test.That(t, out.Bounds().Dy(), test.ShouldEqual, 4)
	test.That(t, out.RGBAAt(0, 0), test.ShouldResemble, color.RGBA{255, 0, 0, 255})
	test.That(t, out.RGBAAt(2, 0), test.ShouldResemble, color.RGBA{40, 40, 40, 255})
	test.That(t, out.RGBAAt(0, 3), test.ShouldResemble, color.RGBA{40, 40, 40, 255})
	test.That(t, out.RGBAAt(3, 0), test.ShouldResemble, color.RGBA{255, 0, 0, 255})
	test.That(t, out.RGBAAt(6, 3), test.ShouldResemble, color.RGBA{255, 255, 255, 255})
}
