package render

import (
	"math"

	"github.com/taigrr/cubeview/pkg/math3d"
)

// barycentric calculates barycentric coordinates for point (px, py) in a
// triangle. It returns false for a degenerate triangle.
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) (math3d.Vec3, bool) {
	v0x, v0y := x2-x0, y2-y0
	v1x, v1y := x1-x0, y1-y0
	v2x, v2y := px-x0, py-y0

	dot00 := v0x*v0x + v0y*v0y
	dot01 := v0x*v1x + v0y*v1y
	dot02 := v0x*v2x + v0y*v2y
	dot11 := v1x*v1x + v1y*v1y
	dot12 := v1x*v2x + v1y*v2y

	denom := dot00*dot11 - dot01*dot01
	if denom == 0 {
		return math3d.Vec3{}, false
	}
	invDenom := 1.0 / denom
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	return math3d.V3(1-u-v, v, u), true
}

// signedArea returns twice the signed area of a screen polygon. Screen Y
// grows down, so a polygon that winds counter-clockwise as seen has a
// negative area.
func signedArea(poly []ScreenVertex) float64 {
	var area float64
	for i := range poly {
		a := math3d.V2(poly[i].X, poly[i].Y)
		j := (i + 1) % len(poly)
		area += a.Cross(math3d.V2(poly[j].X, poly[j].Y))
	}
	return area
}

// frontFacing reports whether a projected face is wound counter-clockwise
// on screen, i.e. its outside is toward the viewer.
func frontFacing(poly []ScreenVertex) bool {
	return signedArea(poly) < 0
}

// fan emits the triangles of a convex polygon.
func fan(poly []ScreenVertex, emit func([3]ScreenVertex)) int {
	n := 0
	for i := 1; i+1 < len(poly); i++ {
		emit([3]ScreenVertex{poly[0], poly[i], poly[i+1]})
		n++
	}
	return n
}

// clipLine clips a 2D segment to a rectangle (Liang-Barsky).
func clipLine(x0, y0, x1, y1, minX, minY, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0

	edges := [4][2]float64{
		{-dx, x0 - minX},
		{dx, maxX - x0},
		{-dy, y0 - minY},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = math.Max(t0, r)
		} else {
			t1 = math.Min(t1, r)
		}
		if t0 > t1 {
			return 0, 0, 0, 0, false
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}
