package scene

import (
	"image/color"
	"math"

	"github.com/taigrr/cubeview/pkg/math3d"
)

// Face indexes the canonical box face order used by Normals and Quads.
type Face int

const (
	FaceFront  Face = iota // +Z
	FaceBack               // -Z
	FaceLeft               // -X
	FaceRight              // +X
	FaceTop                // +Y
	FaceBottom             // -Y
)

// edges is the wireframe topology shared by every box.
var edges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0}, // front
	{4, 5}, {5, 6}, {6, 7}, {7, 4}, // back
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // connecting
}

// quads lists each face counter-clockwise seen from outside, in Face order.
var quads = [6][4]int{
	FaceFront:  {3, 2, 1, 0},
	FaceBack:   {4, 5, 6, 7},
	FaceLeft:   {0, 4, 7, 3},
	FaceRight:  {1, 2, 6, 5},
	FaceTop:    {0, 1, 5, 4},
	FaceBottom: {3, 7, 6, 2},
}

var faceNormals = [6]math3d.Vec3{
	FaceFront:  {X: 0, Y: 0, Z: 1},
	FaceBack:   {X: 0, Y: 0, Z: -1},
	FaceLeft:   {X: -1, Y: 0, Z: 0},
	FaceRight:  {X: 1, Y: 0, Z: 0},
	FaceTop:    {X: 0, Y: 1, Z: 0},
	FaceBottom: {X: 0, Y: -1, Z: 0},
}

// Edges returns the 12 vertex index pairs of a box wireframe.
func Edges() [12][2]int {
	return edges
}

// Quads returns the 6 faces of a box as vertex index quadruples, wound
// counter-clockwise when seen from outside.
func Quads() [6][4]int {
	return quads
}

// CreateBox returns the 8 local-space corners of an axis-aligned box with
// half-extents scale, and its 6 outward unit face normals in Face order.
//
// Corner layout (x, y, z signs):
//
//	0 (-,+,+)  1 (+,+,+)  2 (+,-,+)  3 (-,-,+)
//	4 (-,+,-)  5 (+,+,-)  6 (+,-,-)  7 (-,-,-)
func CreateBox(scale math3d.Vec3) (vertices [8]math3d.Vec3, normals [6]math3d.Vec3) {
	x, y, z := scale.X, scale.Y, scale.Z
	vertices = [8]math3d.Vec3{
		{X: -x, Y: y, Z: z},
		{X: x, Y: y, Z: z},
		{X: x, Y: -y, Z: z},
		{X: -x, Y: -y, Z: z},
		{X: -x, Y: y, Z: -z},
		{X: x, Y: y, Z: -z},
		{X: x, Y: -y, Z: -z},
		{X: -x, Y: -y, Z: -z},
	}
	return vertices, faceNormals
}

// Pose places a box in the world. Rotation holds Euler angles in radians,
// applied about X, then Y, then Z.
type Pose struct {
	Position math3d.Vec3
	Rotation math3d.Vec3
	Scale    math3d.Vec3
}

// Orient rotates a local-space vector by the pose rotation, without moving it.
func (p Pose) Orient(v math3d.Vec3) math3d.Vec3 {
	if p.Rotation.X != 0 {
		v = v.Rotate(math3d.UnitX(), p.Rotation.X)
	}
	if p.Rotation.Y != 0 {
		v = v.Rotate(math3d.UnitY(), p.Rotation.Y)
	}
	if p.Rotation.Z != 0 {
		v = v.Rotate(math3d.UnitZ(), p.Rotation.Z)
	}
	return v
}

// Apply maps a local-space point into world space. The description stores Y
// up and Z forward; world space has Y growing down the screen, so Y and Z are
// flipped after rotation and translation. The flip is a half turn about X,
// so face winding is preserved.
func (p Pose) Apply(local math3d.Vec3) math3d.Vec3 {
	return Flip(p.Orient(local).Add(p.Position))
}

// Flip converts between description space and world space.
func Flip(v math3d.Vec3) math3d.Vec3 {
	return math3d.Vec3{X: v.X, Y: -v.Y, Z: -v.Z}
}

// Box is a named box primitive. Vertices and Normals are local space and are
// never changed after creation; world positions come from Pose each frame.
type Box struct {
	Name     string
	Pose     Pose
	Color    color.RGBA
	Vertices [8]math3d.Vec3
	Normals  [6]math3d.Vec3
}

// NewBox builds a box from a resolved description record.
func NewBox(name string, rec Record) *Box {
	scale := math3d.V3(rec.ScaleX, rec.ScaleY, rec.ScaleZ)
	verts, normals := CreateBox(scale)
	return &Box{
		Name: name,
		Pose: Pose{
			Position: math3d.V3(rec.X, rec.Y, rec.Z),
			Rotation: math3d.V3(math3d.Radians(rec.RotationX), math3d.Radians(rec.RotationY), math3d.Radians(rec.RotationZ)),
			Scale:    scale,
		},
		Color:    rec.Color(),
		Vertices: verts,
		Normals:  normals,
	}
}

// Opaque reports whether the box has full alpha.
func (b *Box) Opaque() bool {
	return b.Color.A == math.MaxUint8
}

// WorldVertices returns the 8 corners in world space for the current pose.
func (b *Box) WorldVertices() [8]math3d.Vec3 {
	var out [8]math3d.Vec3
	for i, v := range b.Vertices {
		out[i] = b.Pose.Apply(v)
	}
	return out
}

// WorldNormals returns the 6 face normals in world space for the current pose.
func (b *Box) WorldNormals() [6]math3d.Vec3 {
	var out [6]math3d.Vec3
	for i, n := range b.Normals {
		out[i] = Flip(b.Pose.Orient(n))
	}
	return out
}
