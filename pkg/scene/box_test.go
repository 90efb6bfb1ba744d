package scene

import (
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/cubeview/pkg/math3d"
)

func TestCreateBoxExtents(t *testing.T) {
	verts, normals := CreateBox(math3d.V3(1, 2, 3))

	for i, v := range verts {
		if math.Abs(v.X) != 1 || math.Abs(v.Y) != 2 || math.Abs(v.Z) != 3 {
			t.Errorf("vertex %d = %v, want half-extents (1,2,3)", i, v)
		}
	}

	seen := map[math3d.Vec3]bool{}
	for _, v := range verts {
		seen[v] = true
	}
	if len(seen) != 8 {
		t.Errorf("got %d distinct corners, want 8", len(seen))
	}

	for i, n := range normals {
		if math.Abs(n.Len()-1) > 1e-12 {
			t.Errorf("normal %d = %v is not unit length", i, n)
		}
	}
}

func TestEdgesAreBoxEdges(t *testing.T) {
	verts, _ := CreateBox(math3d.V3(1, 1, 1))
	seen := map[[2]int]bool{}

	for _, e := range Edges() {
		a, b := verts[e[0]], verts[e[1]]
		// A box edge changes exactly one coordinate.
		diff := 0
		if a.X != b.X {
			diff++
		}
		if a.Y != b.Y {
			diff++
		}
		if a.Z != b.Z {
			diff++
		}
		if diff != 1 {
			t.Errorf("edge %v joins %v and %v, not a box edge", e, a, b)
		}

		key := [2]int{min(e[0], e[1]), max(e[0], e[1])}
		if seen[key] {
			t.Errorf("edge %v listed twice", e)
		}
		seen[key] = true
	}
}

func TestQuadsWindOutward(t *testing.T) {
	verts, normals := CreateBox(math3d.V3(2, 3, 4))

	for f, q := range Quads() {
		v0, v1, v2 := verts[q[0]], verts[q[1]], verts[q[2]]
		n := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
		if !n.ApproxEqual(normals[f], 1e-12) {
			t.Errorf("face %d winding normal %v, want %v", f, n, normals[f])
		}

		// All four corners lie on the face plane.
		for _, idx := range q {
			if d := verts[idx].Sub(v0).Dot(normals[f]); math.Abs(d) > 1e-12 {
				t.Errorf("face %d vertex %d off plane by %v", f, idx, d)
			}
		}
	}
}

func TestPoseApplyFlipsYAndZ(t *testing.T) {
	p := Pose{Scale: math3d.V3(1, 1, 1)}
	p.Position = math3d.V3(10, 20, 30)

	got := p.Apply(math3d.V3(1, 1, 1))
	want := math3d.V3(11, -21, -31)
	if !got.ApproxEqual(want, 1e-12) {
		t.Errorf("Apply = %v, want %v", got, want)
	}
}

func TestPoseOrientQuarterTurn(t *testing.T) {
	p := Pose{Rotation: math3d.V3(0, math.Pi/2, 0), Scale: math3d.V3(1, 1, 1)}

	// Quarter turn about Y takes +X to -Z in description space.
	got := p.Orient(math3d.V3(1, 0, 0))
	if !got.ApproxEqual(math3d.V3(0, 0, -1), 1e-12) {
		t.Errorf("orient = %v, want (0,0,-1)", got)
	}
}

func TestBoxStoredGeometryStaysLocal(t *testing.T) {
	b := NewBox("A", Record{X: 100, Y: 0, ScaleX: 1, ScaleY: 1, ScaleZ: 1, Alpha: 255})
	before := b.Vertices

	b.Pose.Position = b.Pose.Position.Add(math3d.V3(5, 5, 5))
	_ = b.WorldVertices()

	if b.Vertices != before {
		t.Error("world transform must not modify stored vertices")
	}
	if b.WorldVertices()[0].X != before[0].X+105 {
		t.Errorf("world x = %v, want %v", b.WorldVertices()[0].X, before[0].X+105)
	}
}

func TestBoxPosesAreNotShared(t *testing.T) {
	rec := Record{ScaleX: 1, ScaleY: 1, ScaleZ: 1, Alpha: 255}
	a := NewBox("a", rec)
	b := NewBox("b", rec)
	a.Pose.Position.X++
	if b.Pose.Position != math3d.Zero3() {
		t.Error("moving one box moved another")
	}
}

func TestWorldNormalsFollowRotation(t *testing.T) {
	b := NewBox("A", Record{ScaleX: 1, ScaleY: 1, ScaleZ: 1, RotationY: 90, Alpha: 255})
	world := b.WorldNormals()
	verts := b.WorldVertices()

	for f, q := range Quads() {
		v0, v1, v2 := verts[q[0]], verts[q[1]], verts[q[2]]
		n := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
		if !n.ApproxEqual(world[f], 1e-9) {
			t.Errorf("face %d: winding %v, world normal %v", f, n, world[f])
		}
	}
}

func TestNewBoxFromRecord(t *testing.T) {
	rec := Record{
		X: 1, Y: 2, Z: 3,
		ScaleX: 4, ScaleY: 5, ScaleZ: 6,
		RotationX: 180,
		Red:       10, Green: 20, Blue: 30, Alpha: 40,
	}
	b := NewBox("crate", rec)

	if b.Name != "crate" {
		t.Errorf("name = %q", b.Name)
	}
	if b.Color != (color.RGBA{10, 20, 30, 40}) {
		t.Errorf("color = %v", b.Color)
	}
	if math.Abs(b.Pose.Rotation.X-math.Pi) > 1e-12 {
		t.Errorf("rotation x = %v, want π", b.Pose.Rotation.X)
	}
	if b.Pose.Scale != math3d.V3(4, 5, 6) {
		t.Errorf("scale = %v", b.Pose.Scale)
	}
	if b.Opaque() {
		t.Error("alpha 40 box reported opaque")
	}
}
