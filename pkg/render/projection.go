package render

import "github.com/taigrr/cubeview/pkg/math3d"

// ScreenVertex is a projected point. X and Y are pixels; W is the depth
// divisor 1 + z·K, which grows with distance and is always positive after
// clipping.
type ScreenVertex struct {
	X, Y float64
	W    float64
}

// Segment is a projected line in pixel coordinates.
type Segment struct {
	X0, Y0 float64
	X1, Y1 float64
}

// Projector turns camera-space points into screen pixels with the divide
// factor 1/(1 + z·K). Points with z below Near are behind the camera and
// must be clipped first.
type Projector struct {
	Near    float64
	K       float64
	OriginX float64
	OriginY float64
}

// NewProjector returns a projector centred on vp.
func NewProjector(near, k float64, vp *Viewport) Projector {
	ox, oy := vp.Origin()
	return Projector{Near: near, K: k, OriginX: ox, OriginY: oy}
}

// Visible reports whether p is on or in front of the near plane.
func (p Projector) Visible(v math3d.Vec3) bool {
	return v.Z >= p.Near
}

// intersect returns the point on a→b where z equals Near.
func (p Projector) intersect(a, b math3d.Vec3) math3d.Vec3 {
	t := (p.Near - a.Z) / (b.Z - a.Z)
	out := a.Lerp(b, t)
	out.Z = p.Near
	return out
}

// ClipSegment clips a camera-space segment against the near plane. It
// returns false when the whole segment is behind. An endpoint behind the
// plane is replaced by the crossing point, whose z is exactly Near.
func (p Projector) ClipSegment(a, b math3d.Vec3) (math3d.Vec3, math3d.Vec3, bool) {
	va, vb := p.Visible(a), p.Visible(b)
	switch {
	case !va && !vb:
		return a, b, false
	case va && vb:
		return a, b, true
	case !va:
		return p.intersect(a, b), b, true
	default:
		return a, p.intersect(b, a), true
	}
}

// ClipPolygon clips a camera-space polygon against the near plane
// (Sutherland-Hodgman with one plane). Crossing points use the same rule as
// ClipSegment. The result may have fewer than three vertices.
func (p Projector) ClipPolygon(poly []math3d.Vec3) []math3d.Vec3 {
	if len(poly) == 0 {
		return nil
	}
	out := make([]math3d.Vec3, 0, len(poly)+1)
	prev := poly[len(poly)-1]
	prevIn := p.Visible(prev)
	for _, cur := range poly {
		curIn := p.Visible(cur)
		switch {
		case curIn && prevIn:
			out = append(out, cur)
		case curIn && !prevIn:
			out = append(out, p.intersect(prev, cur), cur)
		case !curIn && prevIn:
			out = append(out, p.intersect(prev, cur))
		}
		prev, prevIn = cur, curIn
	}
	return out
}

// Project applies the perspective divide to a clipped camera-space point.
func (p Projector) Project(v math3d.Vec3) ScreenVertex {
	w := 1 + v.Z*p.K
	factor := 1 / w
	return ScreenVertex{
		X: v.X*factor + p.OriginX,
		Y: v.Y*factor + p.OriginY,
		W: w,
	}
}

// ProjectSegment clips and projects a camera-space segment. It returns false
// when nothing remains to draw.
func (p Projector) ProjectSegment(a, b math3d.Vec3) (Segment, bool) {
	a, b, ok := p.ClipSegment(a, b)
	if !ok {
		return Segment{}, false
	}
	sa, sb := p.Project(a), p.Project(b)
	return Segment{X0: sa.X, Y0: sa.Y, X1: sb.X, Y1: sb.Y}, true
}
