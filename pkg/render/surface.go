package render

import "image/color"

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Surface receives the primitives of one frame. Lines are not depth tested.
// Triangles are depth tested on W and blended by their alpha.
type Surface interface {
	Clear(c Color)
	DrawLine(x0, y0, x1, y1 float64, c Color)
	FillTriangle(v [3]ScreenVertex, c Color)
}

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}

// Shade scales the RGB channels of c by intensity, keeping alpha.
func Shade(c Color, intensity float64) Color {
	intensity = max(0, min(1, intensity))
	return Color{
		R: uint8(float64(c.R) * intensity),
		G: uint8(float64(c.G) * intensity),
		B: uint8(float64(c.B) * intensity),
		A: c.A,
	}
}

// blend composites src over dst by src's alpha. The result is opaque.
func blend(dst, src Color) Color {
	switch src.A {
	case 255:
		return src
	case 0:
		return dst
	}
	a := uint32(src.A)
	inv := 255 - a
	return Color{
		R: uint8((uint32(src.R)*a + uint32(dst.R)*inv) / 255),
		G: uint8((uint32(src.G)*a + uint32(dst.G)*inv) / 255),
		B: uint8((uint32(src.B)*a + uint32(dst.B)*inv) / 255),
		A: 255,
	}
}
