package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestRotateRoundTrip(t *testing.T) {
	axes := []Vec3{
		UnitX(),
		UnitY(),
		UnitZ(),
		V3(1, 1, 1).Normalize(),
		V3(-0.3, 0.8, 0.2).Normalize(),
	}
	points := []Vec3{
		V3(1, 0, 0),
		V3(3, -4, 5),
		V3(-50, 50, 50),
	}
	angles := []float64{0, 0.1, math.Pi / 2, 2.5, -7}

	for _, axis := range axes {
		for _, p := range points {
			for _, a := range angles {
				got := p.Rotate(axis, a).Rotate(axis, -a)
				if !got.ApproxEqual(p, 1e-9) {
					t.Errorf("rotate %v about %v by %v and back = %v", p, axis, a, got)
				}
			}
		}
	}
}

func TestRotatePreservesLength(t *testing.T) {
	axis := V3(2, -1, 0.5).Normalize()
	p := V3(3, 4, 12)
	for _, a := range []float64{0.3, 1, 2, 4} {
		if got := p.Rotate(axis, a).Len(); math.Abs(got-13) > eps {
			t.Errorf("len after rotate by %v = %v, want 13", a, got)
		}
	}
}

func TestRotateNonUnitAxisScales(t *testing.T) {
	// Documented caller responsibility: a non-unit axis is not rigid.
	p := V3(0, 0, 1)
	got := p.Rotate(V3(0, 2, 0), math.Pi/2)
	if math.Abs(got.Len()-1) < 1e-6 {
		t.Errorf("expected non-rigid result for non-unit axis, got %v", got)
	}
}

func TestRotateMatchesFixedAxisMatrices(t *testing.T) {
	p := V3(1, 2, 3)
	tests := []struct {
		name string
		axis Vec3
		mat  func(float64) Mat3
	}{
		{"x", UnitX(), RotationX},
		{"y", UnitY(), RotationY},
		{"z", UnitZ(), RotationZ},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, a := range []float64{0.25, 1.3, -2} {
				want := tc.mat(a).MulVec3(p)
				got := p.Rotate(tc.axis, a)
				if !got.ApproxEqual(want, eps) {
					t.Errorf("angle %v: Rodrigues %v, matrix %v", a, got, want)
				}
			}
		})
	}
}

func TestViewRotationOrder(t *testing.T) {
	yaw, pitch := 0.7, 0.4
	p := V3(1, 2, 3)

	want := RotationX(pitch).MulVec3(RotationY(yaw).MulVec3(p))
	got := ViewRotation(yaw, pitch).MulVec3(p)
	if !got.ApproxEqual(want, eps) {
		t.Errorf("ViewRotation = %v, want yaw then pitch %v", got, want)
	}

	reversed := RotationY(yaw).MulVec3(RotationX(pitch).MulVec3(p))
	if got.ApproxEqual(reversed, 1e-3) {
		t.Error("ViewRotation should differ from pitch-then-yaw")
	}
}

func TestFromMat3MatchesRotate(t *testing.T) {
	tests := []struct {
		name string
		m3   Mat3
		m4   Mat4
	}{
		{"x", RotationX(0.8), RotateX(0.8)},
		{"y", RotationY(0.8), RotateY(0.8)},
		{"z", RotationZ(0.8), RotateZ(0.8)},
	}

	p := V3(1, -2, 3)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := FromMat3(tc.m3).MulVec3(p)
			b := tc.m4.MulVec3(p)
			if !a.ApproxEqual(b, eps) {
				t.Errorf("FromMat3 = %v, Rotate = %v", a, b)
			}
		})
	}
}

func TestAngles(t *testing.T) {
	tests := []struct{ deg, rad float64 }{
		{0, 0},
		{90, math.Pi / 2},
		{-180, -math.Pi},
		{720, 4 * math.Pi},
	}
	for _, tc := range tests {
		if got := Radians(tc.deg); math.Abs(got-tc.rad) > eps {
			t.Errorf("Radians(%v) = %v, want %v", tc.deg, got, tc.rad)
		}
		if got := Degrees(tc.rad); math.Abs(got-tc.deg) > eps {
			t.Errorf("Degrees(%v) = %v, want %v", tc.rad, got, tc.deg)
		}
	}
}

func TestPerspectiveDivideZeroW(t *testing.T) {
	if got := V4(3, -4, 5, 0).PerspectiveDivide(); got != V3(3, -4, 5) {
		t.Errorf("zero w divide = %v, want (3,-4,5)", got)
	}
}

func TestDepthDivide(t *testing.T) {
	const k = 0.002
	m := DepthDivide(k)
	for _, z := range []float64{-100, 0, 250, 1000} {
		clip := m.MulVec4(V4(40, -30, z, 1))
		factor := 1 / (1 + z*k)
		got := clip.PerspectiveDivide()
		if math.Abs(got.X-40*factor) > eps || math.Abs(got.Y+30*factor) > eps {
			t.Errorf("z=%v: got %v, want x=%v y=%v", z, got, 40*factor, -30*factor)
		}
	}
}

func TestMatrixStack(t *testing.T) {
	s := NewMatrixStack()
	s.Load(Translate(V3(1, 0, 0)))

	s.Push()
	s.Mul(Translate(V3(0, 2, 0)))
	if got := s.Top().MulVec3(Zero3()); got != V3(1, 2, 0) {
		t.Errorf("after push+mul translation = %v, want (1,2,0)", got)
	}
	if len(s.stack) != 2 {
		t.Errorf("depth = %d, want 2", len(s.stack))
	}

	s.Pop()
	if got := s.Top().MulVec3(Zero3()); got != V3(1, 0, 0) {
		t.Errorf("after pop translation = %v, want (1,0,0)", got)
	}

	s.Pop()
	if s.Top() != Identity() || len(s.stack) != 1 {
		t.Error("popping the last entry should leave a single identity")
	}
}

func TestMatrixStackOrder(t *testing.T) {
	// Mul post-multiplies: the last matrix pushed applies to vertices first.
	s := NewMatrixStack()
	s.Mul(Translate(V3(10, 0, 0)))
	s.Mul(Scale(V3(2, 2, 2)))

	if got := s.Top().MulVec3(V3(1, 1, 1)); !got.ApproxEqual(V3(12, 2, 2), eps) {
		t.Errorf("got %v, want (12,2,2)", got)
	}
}
