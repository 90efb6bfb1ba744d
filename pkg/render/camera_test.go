package render

import (
	"math"
	"testing"

	"github.com/taigrr/cubeview/pkg/math3d"
)

func TestPitchClamp(t *testing.T) {
	cam := NewCamera(math3d.Zero3(), 0, 0)

	for range 1000 {
		cam.UpdateOrientation(0.1, 0.37)
		if cam.Pitch > math.Pi/2 || cam.Pitch < -math.Pi/2 {
			t.Fatalf("pitch %v escaped [-π/2, π/2]", cam.Pitch)
		}
	}
	if cam.Pitch != math.Pi/2 {
		t.Errorf("pitch = %v, want π/2 after large upward input", cam.Pitch)
	}

	cam.UpdateOrientation(0, -1e9)
	if cam.Pitch != -math.Pi/2 {
		t.Errorf("pitch = %v, want -π/2", cam.Pitch)
	}

	start := NewCamera(math3d.Zero3(), 0, 7)
	if start.Pitch != math.Pi/2 {
		t.Errorf("start pitch = %v, want clamped to π/2", start.Pitch)
	}
}

func TestBasisOrthonormal(t *testing.T) {
	const eps = 1e-9
	for yaw := -10.0; yaw <= 10; yaw += 0.7 {
		for pitch := -math.Pi / 2; pitch <= math.Pi/2; pitch += 0.2 {
			cam := NewCamera(math3d.Zero3(), yaw, pitch)
			f, r, u := cam.Basis()

			for _, v := range []math3d.Vec3{f, r, u} {
				if math.Abs(v.Len()-1) > eps {
					t.Fatalf("yaw %v pitch %v: |%v| = %v", yaw, pitch, v, v.Len())
				}
			}
			if math.Abs(f.Dot(r)) > eps || math.Abs(f.Dot(u)) > eps || math.Abs(r.Dot(u)) > eps {
				t.Fatalf("yaw %v pitch %v: basis not orthogonal", yaw, pitch)
			}
		}
	}
}

func TestBasisAtRest(t *testing.T) {
	cam := NewCamera(math3d.Zero3(), 0, 0)
	f, r, u := cam.Basis()

	if !f.ApproxEqual(math3d.V3(0, 0, 1), 1e-12) {
		t.Errorf("forward = %v, want +Z", f)
	}
	if !r.ApproxEqual(math3d.V3(1, 0, 0), 1e-12) {
		t.Errorf("right = %v, want +X", r)
	}
	// Screen Y grows down, so up is -Y.
	if !u.ApproxEqual(math3d.V3(0, -1, 0), 1e-12) {
		t.Errorf("up = %v, want -Y", u)
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name string
		yaw  float64
		dir  Direction
		want math3d.Vec3
	}{
		{"forward", 0, Forward, math3d.V3(0, 0, 10)},
		{"back", 0, Back, math3d.V3(0, 0, -10)},
		{"left", 0, Left, math3d.V3(-10, 0, 0)},
		{"right", 0, Right, math3d.V3(10, 0, 0)},
		{"up", 0, Up, math3d.V3(0, -10, 0)},
		{"down", 0, Down, math3d.V3(0, 10, 0)},
		{"forward turned left", math.Pi / 2, Forward, math3d.V3(-10, 0, 0)},
		{"right turned around", math.Pi, Right, math3d.V3(-10, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam := NewCamera(math3d.Zero3(), tc.yaw, 0)
			cam.Move(tc.dir, 10)
			if !cam.Position.ApproxEqual(tc.want, 1e-9) {
				t.Errorf("position = %v, want %v", cam.Position, tc.want)
			}
		})
	}
}

func TestMoveFollowsPitch(t *testing.T) {
	cam := NewCamera(math3d.Zero3(), 0, math.Pi/4)
	cam.Move(Forward, math.Sqrt2)
	// Looking down 45°: forward gains +Y (down) and +Z.
	if !cam.Position.ApproxEqual(math3d.V3(0, 1, 1), 1e-9) {
		t.Errorf("position = %v, want (0,1,1)", cam.Position)
	}
}

func TestWalkStaysLevel(t *testing.T) {
	for _, pitch := range []float64{0, 0.6, -1.2, math.Pi / 2, -math.Pi / 2} {
		cam := NewCamera(math3d.Zero3(), 0.4, pitch)
		for _, dir := range []Direction{Forward, Back, Left, Right} {
			cam.Position = math3d.Zero3()
			cam.Walk(dir, 5)
			if math.Abs(cam.Position.Y) > 1e-12 {
				t.Errorf("pitch %v dir %v: walked off the ground to %v", pitch, dir, cam.Position)
			}
			if math.Abs(cam.Position.Len()-5) > 1e-9 {
				t.Errorf("pitch %v dir %v: walked %v, want 5", pitch, dir, cam.Position.Len())
			}
		}
	}

	cam := NewCamera(math3d.Zero3(), 0.4, 0.9)
	cam.Walk(Up, 3)
	if !cam.Position.ApproxEqual(math3d.V3(0, -3, 0), 1e-12) {
		t.Errorf("walk up = %v, want straight up", cam.Position)
	}
}

func TestWalkMatchesYawWhenLookingDown(t *testing.T) {
	level := NewCamera(math3d.Zero3(), 1.1, 0)
	down := NewCamera(math3d.Zero3(), 1.1, math.Pi/2)

	for _, dir := range []Direction{Forward, Back, Left, Right} {
		level.Position, down.Position = math3d.Zero3(), math3d.Zero3()
		level.Walk(dir, 1)
		down.Walk(dir, 1)
		if !level.Position.ApproxEqual(down.Position, 1e-9) {
			t.Errorf("dir %v: looking down walks %v, level walks %v", dir, down.Position, level.Position)
		}
	}
}

func TestToCameraMatchesViewMatrix(t *testing.T) {
	cam := NewCamera(math3d.V3(12, -40, -300), 0.8, -0.3)
	view := cam.ViewMatrix()

	for _, p := range []math3d.Vec3{
		math3d.Zero3(),
		math3d.V3(100, 20, 5),
		math3d.V3(-7, 300, -900),
	} {
		a := cam.ToCamera(p)
		b := view.MulVec3(p)
		if !a.ApproxEqual(b, 1e-9) {
			t.Errorf("ToCamera(%v) = %v, view matrix gives %v", p, a, b)
		}
	}
}

func TestToCameraForwardIsDepth(t *testing.T) {
	cam := NewCamera(math3d.V3(5, 5, 5), 2.1, 0.4)
	f, _, _ := cam.Basis()
	p := cam.Position.Add(f.Scale(42))

	got := cam.ToCamera(p)
	if !got.ApproxEqual(math3d.V3(0, 0, 42), 1e-9) {
		t.Errorf("point 42 ahead maps to %v", got)
	}
}

func TestCameraReset(t *testing.T) {
	cam := NewCamera(math3d.V3(0, 0, -500), 0.2, 0.1)
	cam.Move(Forward, 100)
	cam.UpdateOrientation(1, 1)
	cam.ToggleLook()

	cam.Reset()
	if cam.Position != math3d.V3(0, 0, -500) || cam.Yaw != 0.2 || cam.Pitch != 0.1 {
		t.Errorf("reset pose = %v yaw %v pitch %v", cam.Position, cam.Yaw, cam.Pitch)
	}
	if cam.State != Active {
		t.Errorf("state after reset = %v, want active", cam.State)
	}
	f, _, _ := cam.Basis()
	want := NewCamera(math3d.Zero3(), 0.2, 0.1)
	wf, _, _ := want.Basis()
	if !f.ApproxEqual(wf, 1e-12) {
		t.Error("basis not recomputed on reset")
	}
}

func TestToggleLook(t *testing.T) {
	cam := NewCamera(math3d.Zero3(), 0, 0)
	if cam.State != Active {
		t.Fatalf("new camera state = %v", cam.State)
	}
	cam.ToggleLook()
	if cam.State != LookLocked {
		t.Errorf("state = %v, want look-locked", cam.State)
	}
	cam.ToggleLook()
	if cam.State != Active {
		t.Errorf("state = %v, want active", cam.State)
	}
}
