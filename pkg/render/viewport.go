package render

// Viewport is the pixel size of the render target. The projection origin
// sits at its centre.
type Viewport struct {
	Width  int
	Height int
}

// NewViewport returns a viewport of the given size.
func NewViewport(width, height int) *Viewport {
	return &Viewport{Width: width, Height: height}
}

// Resize changes the size; the origin follows.
func (v *Viewport) Resize(width, height int) {
	v.Width = width
	v.Height = height
}

// Origin returns the screen centre.
func (v *Viewport) Origin() (x, y float64) {
	return float64(v.Width) / 2, float64(v.Height) / 2
}
