// Package math3d provides the vector and matrix primitives behind cubeview's
// camera, projection and box geometry.
package math3d

import "math"

// Vec3 is a point or direction. Which space it lives in (description, world
// or camera) is up to the caller.
type Vec3 struct {
	X, Y, Z float64
}

// V3 returns (x, y, z).
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Zero3 returns the origin.
func Zero3() Vec3 {
	return Vec3{}
}

// Unit axes, used as rotation axes for Rotate.
func UnitX() Vec3 { return Vec3{1, 0, 0} }

func UnitY() Vec3 { return Vec3{0, 1, 0} }

func UnitZ() Vec3 { return Vec3{0, 0, 1} }

// Add returns a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Mul multiplies component by component.
func (a Vec3) Mul(b Vec3) Vec3 {
	return Vec3{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

// Scale returns a·s.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// Dot returns a · b.
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the Euclidean length.
func (a Vec3) Len() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
}

// Normalize scales a to unit length. The zero vector stays zero.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return Vec3{}
	}
	return a.Scale(1 / l)
}

// Negate flips the direction.
func (a Vec3) Negate() Vec3 {
	return Vec3{-a.X, -a.Y, -a.Z}
}

// Lerp moves from a toward b by t.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

// Min and Max take the smaller or larger value per component, for bounds.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z)}
}

func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z)}
}

// ApproxEqual reports whether every component of a and b differs by at most eps.
func (a Vec3) ApproxEqual(b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps &&
		math.Abs(a.Y-b.Y) <= eps &&
		math.Abs(a.Z-b.Z) <= eps
}

// Rotate rotates the point a by angle radians about axis, a line through the
// origin, using Rodrigues' formula.
//
// axis must be unit length. A non-unit axis is not rejected; it produces a
// transform that also scales the point.
func (a Vec3) Rotate(axis Vec3, angle float64) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	return Vec3{
		(c+t*x*x)*a.X + (t*x*y-z*s)*a.Y + (t*x*z+y*s)*a.Z,
		(t*x*y+z*s)*a.X + (c+t*y*y)*a.Y + (t*y*z-x*s)*a.Z,
		(t*x*z-y*s)*a.X + (t*y*z+x*s)*a.Y + (c+t*z*z)*a.Z,
	}
}
