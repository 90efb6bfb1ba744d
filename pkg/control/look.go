package control

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Look turns raw mouse deltas into camera yaw and pitch. With a positive
// frequency the camera follows the mouse through a critically damped
// spring; with zero it follows exactly.
type Look struct {
	Sensitivity float64 // radians per mouse unit

	smooth bool
	spring harmonica.Spring

	yaw, yawVel     float64
	pitch, pitchVel float64
	targetYaw       float64
	targetPitch     float64
}

// NewLook creates a look smoother stepped fps times per second.
func NewLook(fps int, sensitivity, frequency float64) *Look {
	l := &Look{Sensitivity: sensitivity}
	if frequency > 0 {
		l.smooth = true
		l.spring = harmonica.NewSpring(harmonica.FPS(fps), frequency, 1.0)
	}
	return l
}

// Snap jumps to an orientation with no motion left over.
func (l *Look) Snap(yaw, pitch float64) {
	l.yaw, l.targetYaw = yaw, yaw
	l.pitch, l.targetPitch = pitch, pitch
	l.yawVel, l.pitchVel = 0, 0
}

// Add queues mouse motion. Moving right turns right; moving down looks down.
// The pitch target stops at straight up or down.
func (l *Look) Add(dx, dy float64) {
	l.targetYaw -= dx * l.Sensitivity
	l.targetPitch = math.Max(-math.Pi/2, math.Min(math.Pi/2, l.targetPitch+dy*l.Sensitivity))
}

// Step advances one frame and returns the orientation to show.
func (l *Look) Step() (yaw, pitch float64) {
	if !l.smooth {
		l.yaw, l.pitch = l.targetYaw, l.targetPitch
		return l.yaw, l.pitch
	}
	l.yaw, l.yawVel = l.spring.Update(l.yaw, l.yawVel, l.targetYaw)
	l.pitch, l.pitchVel = l.spring.Update(l.pitch, l.pitchVel, l.targetPitch)
	return l.yaw, l.pitch
}

// Settled reports whether the camera has caught up with the mouse.
func (l *Look) Settled() bool {
	const eps = 1e-6
	return math.Abs(l.yaw-l.targetYaw) < eps && math.Abs(l.pitch-l.targetPitch) < eps &&
		math.Abs(l.yawVel) < eps && math.Abs(l.pitchVel) < eps
}
