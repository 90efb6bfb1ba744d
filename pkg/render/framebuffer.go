// Package render draws cubeview scenes: the camera, the near-plane
// projection pipeline, the software rasterizer and the matrix-stack
// hardware path.
package render

import (
	"image"
	"math"
)

// Framebuffer is a software Surface: a row-major pixel array plus a depth
// buffer. In the terminal each cell shows two rows through a half block.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Color
	depth  []float64
}

// NewFramebuffer creates a framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(width, height)
	return fb
}

// Resize reallocates the buffers. Contents are lost.
func (fb *Framebuffer) Resize(width, height int) {
	fb.Width = max(width, 0)
	fb.Height = max(height, 0)
	fb.Pixels = make([]Color, fb.Width*fb.Height)
	fb.depth = make([]float64, fb.Width*fb.Height)
	fb.clearDepth()
}

// Clear fills the framebuffer with c and resets depth.
func (fb *Framebuffer) Clear(c Color) {
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	fb.Pixels[0] = c
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
	fb.clearDepth()
}

func (fb *Framebuffer) clearDepth() {
	n := len(fb.depth)
	if n == 0 {
		return
	}
	fb.depth[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(fb.depth[i:], fb.depth[:i])
	}
}

// SetPixel sets a pixel at (x, y) to c. Out of bounds writes are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y), or transparent black out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}
	}
	return fb.Pixels[y*fb.Width+x]
}

func (fb *Framebuffer) blendPixel(x, y int, c Color) {
	fb.SetPixel(x, y, blend(fb.GetPixel(x, y), c))
}

// DrawLine draws a line using Bresenham's algorithm. Endpoints are rounded
// to the nearest pixel.
func (fb *Framebuffer) DrawLine(fx0, fy0, fx1, fy1 float64, c Color) {
	if !finite(fx0, fy0, fx1, fy1) {
		return
	}
	// Keep coordinates within a range Bresenham can walk.
	lim := float64(4 * (fb.Width + fb.Height + 1))
	if math.Abs(fx0) > lim || math.Abs(fy0) > lim || math.Abs(fx1) > lim || math.Abs(fy1) > lim {
		var ok bool
		fx0, fy0, fx1, fy1, ok = clipLine(fx0, fy0, fx1, fy1, -1, -1, float64(fb.Width), float64(fb.Height))
		if !ok {
			return
		}
	}

	x0, y0 := int(math.Round(fx0)), int(math.Round(fy0))
	x1, y1 := int(math.Round(fx1)), int(math.Round(fy1))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.blendPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// FillTriangle rasterizes a triangle with a depth test on W. Opaque pixels
// write depth; translucent ones blend without writing it.
func (fb *Framebuffer) FillTriangle(v [3]ScreenVertex, c Color) {
	for _, sv := range v {
		if !finite(sv.X, sv.Y, sv.W) || sv.W <= 0 {
			return
		}
	}

	minX := int(math.Max(0, math.Floor(min(v[0].X, v[1].X, v[2].X))))
	maxX := int(math.Min(float64(fb.Width-1), math.Ceil(max(v[0].X, v[1].X, v[2].X))))
	minY := int(math.Max(0, math.Floor(min(v[0].Y, v[1].Y, v[2].Y))))
	maxY := int(math.Min(float64(fb.Height-1), math.Ceil(max(v[0].Y, v[1].Y, v[2].Y))))
	if minX > maxX || minY > maxY {
		return
	}

	// Depth is interpolated as 1/W, which is linear in screen space.
	inv0, inv1, inv2 := 1/v[0].W, 1/v[1].W, 1/v[2].W
	opaque := c.A == 255

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5

			bc, ok := barycentric(v[0].X, v[0].Y, v[1].X, v[1].Y, v[2].X, v[2].Y, px, py)
			if !ok || bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			z := 1 / (bc.X*inv0 + bc.Y*inv1 + bc.Z*inv2)
			i := y*fb.Width + x
			if z >= fb.depth[i] {
				continue
			}
			if opaque {
				fb.depth[i] = z
				fb.Pixels[i] = c
			} else {
				fb.Pixels[i] = blend(fb.Pixels[i], c)
			}
		}
	}
}

// ToImage converts the framebuffer to an image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
