package render

import (
	"github.com/taigrr/cubeview/pkg/math3d"
)

// Plane represents a plane in 3D space using the equation Ax + By + Cz + D = 0,
// where (A, B, C) is the normal.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize normalizes the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1.0 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum is the visible volume of the camera: four screen-edge planes and
// the near plane. There is no far plane. Normals point inward.
type Frustum struct {
	Planes [5]Plane
}

// Frustum plane indices.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumTop
	FrustumBottom
	FrustumNear
)

// NewFrustum extracts the frustum planes from a view-projection matrix built
// with math3d.DepthDivide, for a screen of the given size.
//
// With clip coordinates (x, y, z, w) the screen position is x/w + originX,
// so each screen edge is a linear combination of matrix rows; z is the
// camera-space depth, so the near plane is row 2 shifted by near.
func NewFrustum(m math3d.Mat4, p Projector, width, height float64) Frustum {
	// For column-major m, row i element j is at m[i + j*4].
	row := func(i int) (math3d.Vec3, float64) {
		return math3d.V3(m[i], m[i+4], m[i+8]), m[i+12]
	}
	combine := func(an math3d.Vec3, ad, sa float64, bn math3d.Vec3, bd, sb float64) Plane {
		return Plane{Normal: an.Scale(sa).Add(bn.Scale(sb)), D: ad*sa + bd*sb}
	}

	xn, xd := row(0)
	yn, yd := row(1)
	zn, zd := row(2)
	wn, wd := row(3)

	var f Frustum
	f.Planes[FrustumLeft] = combine(xn, xd, 1, wn, wd, p.OriginX)
	f.Planes[FrustumRight] = combine(xn, xd, -1, wn, wd, width-p.OriginX)
	f.Planes[FrustumTop] = combine(yn, yd, 1, wn, wd, p.OriginY)
	f.Planes[FrustumBottom] = combine(yn, yd, -1, wn, wd, height-p.OriginY)
	f.Planes[FrustumNear] = Plane{Normal: zn, D: zd - p.Near}

	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
	return f
}

// AABB is a world-space axis-aligned box, used to cull whole boxes.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB returns the box spanning min to max.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// BoundPoints returns the smallest AABB holding every point.
func BoundPoints(pts []math3d.Vec3) AABB {
	if len(pts) == 0 {
		return AABB{}
	}
	b := NewAABB(pts[0], pts[0])
	for _, p := range pts[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// IntersectAABB reports whether box may be visible. For each plane only the
// corner furthest along the normal is tested; boxes near a frustum corner can
// pass without being visible, which only costs a few clipped faces.
func (f Frustum) IntersectAABB(box AABB) bool {
	for _, plane := range f.Planes {
		far := math3d.V3(
			pick(plane.Normal.X >= 0, box.Max.X, box.Min.X),
			pick(plane.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			pick(plane.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)
		if plane.DistanceToPoint(far) < 0 {
			return false
		}
	}
	return true
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
