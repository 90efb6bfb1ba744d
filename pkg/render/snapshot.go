package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// scaledSurface draws onto a surface factor times larger than the viewport.
type scaledSurface struct {
	Surface
	factor float64
}

// Scaled wraps s so a frame laid out for a w×h viewport fills a surface of
// factor·w × factor·h. Depth is left alone.
func Scaled(s Surface, factor float64) Surface {
	if factor == 1 {
		return s
	}
	return scaledSurface{Surface: s, factor: factor}
}

func (s scaledSurface) DrawLine(x0, y0, x1, y1 float64, c Color) {
	f := s.factor
	s.Surface.DrawLine(x0*f, y0*f, x1*f, y1*f, c)
}

func (s scaledSurface) FillTriangle(v [3]ScreenVertex, c Color) {
	for i := range v {
		v[i].X *= s.factor
		v[i].Y *= s.factor
	}
	s.Surface.FillTriangle(v, c)
}

// Downsample scales img to width×height with CatmullRom filtering. It is the
// resolve step of supersampled snapshots.
func Downsample(img image.Image, width, height int) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if b.Dx() == width && b.Dy() == height {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// imageDisplay lets tinyfont draw on an image.
type imageDisplay struct {
	img draw.Image
}

func (d imageDisplay) Size() (x, y int16) {
	b := d.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d imageDisplay) SetPixel(x, y int16, c color.RGBA) {
	b := d.img.Bounds()
	d.img.Set(b.Min.X+int(x), b.Min.Y+int(y), c)
}

func (d imageDisplay) Display() error { return nil }

var _ drivers.Displayer = imageDisplay{}

// hudFont is an 8pt proportional pixel font.
var hudFont = &proggy.TinySZ8pt7b

// DrawText writes lines of HUD text in the top-left corner of img.
func DrawText(img draw.Image, c Color, lines ...string) {
	const lineHeight = 10
	d := imageDisplay{img: img}
	for i, line := range lines {
		tinyfont.WriteLine(d, hudFont, 4, int16(4+lineHeight*(i+1)), line, c)
	}
}

// EncodeImage writes img as PNG or WebP, chosen by the extension of name.
func EncodeImage(w io.Writer, name string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return png.Encode(w, img)
	case ".webp":
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("webp encode: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported image format %q", filepath.Ext(name))
	}
}

// SupportedImage reports whether EncodeImage can write name.
func SupportedImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".webp":
		return true
	}
	return false
}

// SaveImage encodes img to path.
func SaveImage(path string, img image.Image) error {
	if !SupportedImage(path) {
		return fmt.Errorf("unsupported image format %q", filepath.Ext(path))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeImage(f, path, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
