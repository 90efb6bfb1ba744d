package render

import (
	"github.com/taigrr/cubeview/pkg/math3d"
	"github.com/taigrr/cubeview/pkg/scene"
)

// Pipeline is the matrix-stack path. Every box is the shared unit box drawn
// through projection · view · model, where the projection is the same
// 1 + z·K divide the software path uses, so both paths agree on every
// vertex.
type Pipeline struct {
	stack   *math3d.MatrixStack
	unit    [8]math3d.Vec3
	normals [6]math3d.Vec3
	proj    Projector
}

// NewPipeline returns a pipeline with an identity stack.
func NewPipeline() *Pipeline {
	unit, normals := scene.CreateBox(math3d.V3(1, 1, 1))
	return &Pipeline{
		stack:   math3d.NewMatrixStack(),
		unit:    unit,
		normals: normals,
	}
}

// Begin loads projection · view for a new frame.
func (p *Pipeline) Begin(cam *Camera, proj Projector) {
	p.proj = proj
	p.stack.Load(math3d.DepthDivide(proj.K).Mul(cam.ViewMatrix()))
}

var flipYZ = math3d.Scale(math3d.V3(1, -1, -1))

// orientMatrix rotates about X, then Y, then Z and flips into world space.
func orientMatrix(pose scene.Pose) math3d.Mat4 {
	return flipYZ.
		Mul(math3d.RotateZ(pose.Rotation.Z)).
		Mul(math3d.RotateY(pose.Rotation.Y)).
		Mul(math3d.RotateX(pose.Rotation.X))
}

// ModelMatrix maps the unit box to world space for pose.
func ModelMatrix(pose scene.Pose) math3d.Mat4 {
	return flipYZ.
		Mul(math3d.Translate(pose.Position)).
		Mul(math3d.RotateZ(pose.Rotation.Z)).
		Mul(math3d.RotateY(pose.Rotation.Y)).
		Mul(math3d.RotateX(pose.Rotation.X)).
		Mul(math3d.Scale(pose.Scale))
}

// DrawBox submits the visible faces of b to s and returns how many
// triangles it drew. shade picks the colour of a face from its world normal.
func (p *Pipeline) DrawBox(s Surface, b *scene.Box, shade func(normal math3d.Vec3) Color) int {
	p.stack.Push()
	defer p.stack.Pop()
	p.stack.Mul(ModelMatrix(b.Pose))

	mvp := p.stack.Top()
	orient := orientMatrix(b.Pose)

	var clip [8]math3d.Vec4
	for i, v := range p.unit {
		clip[i] = mvp.MulVec4(math3d.V4FromV3(v, 1))
	}

	tris := 0
	for f, q := range scene.Quads() {
		poly := p.clipPolygon([]math3d.Vec4{clip[q[0]], clip[q[1]], clip[q[2]], clip[q[3]]})
		if len(poly) < 3 {
			continue
		}

		screen := make([]ScreenVertex, len(poly))
		for i, c := range poly {
			d := c.PerspectiveDivide()
			screen[i] = ScreenVertex{X: d.X + p.proj.OriginX, Y: d.Y + p.proj.OriginY, W: c.W}
		}
		if !frontFacing(screen) {
			continue
		}

		color := shade(orient.MulVec3Dir(p.normals[f]).Normalize())
		tris += fan(screen, func(t [3]ScreenVertex) { s.FillTriangle(t, color) })
	}
	return tris
}

// clipPolygon clips a clip-space polygon to z >= Near. Crossing points get
// z = Near and the matching w exactly.
func (p *Pipeline) clipPolygon(poly []math3d.Vec4) []math3d.Vec4 {
	near := p.proj.Near
	cross := func(a, b math3d.Vec4) math3d.Vec4 {
		out := a.Lerp(b, (near-a.Z)/(b.Z-a.Z))
		out.Z = near
		out.W = 1 + near*p.proj.K
		return out
	}

	out := make([]math3d.Vec4, 0, len(poly)+1)
	prev := poly[len(poly)-1]
	for _, cur := range poly {
		curIn, prevIn := cur.Z >= near, prev.Z >= near
		switch {
		case curIn && prevIn:
			out = append(out, cur)
		case curIn:
			out = append(out, cross(prev, cur), cur)
		case prevIn:
			out = append(out, cross(prev, cur))
		}
		prev = cur
	}
	return out
}
