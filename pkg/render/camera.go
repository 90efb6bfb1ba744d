package render

import (
	"fmt"
	"math"

	"github.com/taigrr/cubeview/pkg/math3d"
)

// CameraState says whether mouse motion drives the camera.
type CameraState int

const (
	// Active means the cursor is captured and mouse motion turns the camera.
	Active CameraState = iota
	// LookLocked means the cursor is released and look input is ignored.
	LookLocked
)

func (s CameraState) String() string {
	switch s {
	case Active:
		return "active"
	case LookLocked:
		return "look-locked"
	default:
		return fmt.Sprintf("CameraState(%d)", int(s))
	}
}

// Direction names a camera-relative movement.
type Direction int

const (
	Forward Direction = iota
	Back
	Left
	Right
	Up
	Down
)

// Camera is a first-person camera: a position plus yaw and pitch.
//
// The view rotation is RotationX(pitch)·RotationY(yaw). Its rows are the
// camera basis in world space: right (+X), down (+Y) and forward (+Z).
// World Y grows down the screen, so up is the negated second row.
type Camera struct {
	Position math3d.Vec3
	Yaw      float64 // Rotation around Y, unbounded
	Pitch    float64 // Rotation around X, clamped to [-π/2, π/2]
	State    CameraState

	startPos   math3d.Vec3
	startYaw   float64
	startPitch float64

	rot math3d.Mat3
}

// NewCamera creates a camera at pos. Reset returns it to this pose.
func NewCamera(pos math3d.Vec3, yaw, pitch float64) *Camera {
	c := &Camera{
		Position:   pos,
		startPos:   pos,
		startYaw:   yaw,
		startPitch: clampPitch(pitch),
	}
	c.Yaw = yaw
	c.Pitch = c.startPitch
	c.updateBasis()
	return c
}

// Reset restores the start pose and re-activates look.
func (c *Camera) Reset() {
	c.Position = c.startPos
	c.Yaw = c.startYaw
	c.Pitch = c.startPitch
	c.State = Active
	c.updateBasis()
}

// ToggleLook switches between Active and LookLocked.
func (c *Camera) ToggleLook() {
	if c.State == Active {
		c.State = LookLocked
	} else {
		c.State = Active
	}
}

// UpdateOrientation turns the camera. Pitch never leaves [-π/2, π/2] no
// matter how large the accumulated input is.
func (c *Camera) UpdateOrientation(deltaYaw, deltaPitch float64) {
	c.Yaw += deltaYaw
	c.Pitch = clampPitch(c.Pitch + deltaPitch)
	c.updateBasis()
}

func clampPitch(p float64) float64 {
	return math.Max(-math.Pi/2, math.Min(math.Pi/2, p))
}

func (c *Camera) updateBasis() {
	c.rot = math3d.ViewRotation(c.Yaw, c.Pitch)
}

// Basis returns the orthonormal forward, right and up vectors in world space.
func (c *Camera) Basis() (forward, right, up math3d.Vec3) {
	return c.rot.Row(2), c.rot.Row(0), c.rot.Row(1).Negate()
}

func (c *Camera) direction(dir Direction) math3d.Vec3 {
	forward, right, up := c.Basis()
	switch dir {
	case Forward:
		return forward
	case Back:
		return forward.Negate()
	case Left:
		return right.Negate()
	case Right:
		return right
	case Up:
		return up
	case Down:
		return up.Negate()
	}
	return math3d.Zero3()
}

// Move flies the camera speed units along a basis vector.
func (c *Camera) Move(dir Direction, speed float64) {
	c.Position = c.Position.Add(c.direction(dir).Scale(speed))
}

// Walk moves the camera on the ground plane: forward and right lose their
// vertical part, and up/down follow the world vertical.
func (c *Camera) Walk(dir Direction, speed float64) {
	var d math3d.Vec3
	switch dir {
	case Up:
		d = math3d.V3(0, -1, 0)
	case Down:
		d = math3d.V3(0, 1, 0)
	default:
		d = c.direction(dir)
		d.Y = 0
		if d.Len() == 0 {
			// Looking straight up or down: walk along the yaw heading.
			sin, cos := math.Sincos(c.Yaw)
			d = math3d.V3(-sin, 0, cos)
			switch dir {
			case Back:
				d = d.Negate()
			case Left:
				d = math3d.V3(-cos, 0, -sin)
			case Right:
				d = math3d.V3(cos, 0, sin)
			}
		}
		d = d.Normalize()
	}
	c.Position = c.Position.Add(d.Scale(speed))
}

// ToCamera maps a world point into camera space: x right, y down, z forward.
func (c *Camera) ToCamera(p math3d.Vec3) math3d.Vec3 {
	return c.rot.MulVec3(p.Sub(c.Position))
}

// ViewMatrix returns ToCamera as a matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return math3d.FromMat3(c.rot).Mul(math3d.Translate(c.Position.Negate()))
}
