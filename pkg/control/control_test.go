package control

import (
	"math"
	"testing"

	"github.com/taigrr/cubeview/pkg/math3d"
	"github.com/taigrr/cubeview/pkg/render"
	"github.com/taigrr/cubeview/pkg/scene"
)

func newTestController(t *testing.T, frequency float64) *Controller {
	t.Helper()
	desc, err := scene.ParseDescription([]byte(`{"A": {"X": 0, "Y": 0, "Scale": 10, "Red": 1, "Green": 2, "Blue": 3}}`), scene.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	cam := render.NewCamera(math3d.V3(0, 0, -500), 0, 0)
	r := render.NewRenderer(cam, render.NewViewport(64, 48), scene.NewLoader(desc, nil), render.Options{
		Near: -300,
		K:    0.002,
	})
	return NewController(r, NewLook(60, 0.01, frequency), 5)
}

func TestLookup(t *testing.T) {
	tests := []struct {
		key  string
		want Action
	}{
		{"w", MoveForward},
		{"s", MoveBack},
		{"a", MoveLeft},
		{"d", MoveRight},
		{"space", MoveUp},
		{"c", MoveDown},
		{"shift", MoveDown},
		{"r", ResetScene},
		{"f", ToggleWireframe},
		{"b", ToggleFullBright},
		{"p", ToggleCapture},
		{"tab", ToggleCapture},
		{"m", ToggleFreeMove},
		{"g", TogglePipeline},
		{"h", ToggleHUD},
		{"esc", Quit},
		{"escape", Quit},
		{"ctrl+c", Quit},
		{"z", None},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			if got := Lookup(tc.key); got != tc.want {
				t.Errorf("Lookup(%q) = %v, want %v", tc.key, got, tc.want)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	pressed := func(key string) func(...string) bool {
		return func(keys ...string) bool {
			for _, k := range keys {
				if k == key {
					return true
				}
			}
			return false
		}
	}
	if got := Match(pressed("up")); got != MoveForward {
		t.Errorf("Match(up) = %v, want forward", got)
	}
	if got := Match(pressed("escape")); got != Quit {
		t.Errorf("Match(escape) = %v, want quit", got)
	}
	if got := Match(pressed("x")); got != None {
		t.Errorf("Match(x) = %v, want none", got)
	}
}

func TestActionMovement(t *testing.T) {
	if !MoveUp.Movement() || ToggleHUD.Movement() || None.Movement() {
		t.Error("Movement misclassifies actions")
	}
	if MoveForward.String() != "forward" || Action(99).String() != "Action(99)" {
		t.Error("unexpected action names")
	}
}

func TestHandleMovement(t *testing.T) {
	c := newTestController(t, 0)
	cam := c.Renderer().Camera

	c.Handle(MoveForward)
	if !cam.Position.ApproxEqual(math3d.V3(0, 0, -495), 1e-9) {
		t.Errorf("forward: %v", cam.Position)
	}
	c.Handle(MoveUp)
	if !cam.Position.ApproxEqual(math3d.V3(0, -5, -495), 1e-9) {
		t.Errorf("up: %v", cam.Position)
	}
}

func TestHandleWalkStaysLevel(t *testing.T) {
	c := newTestController(t, 0)
	cam := c.Renderer().Camera
	cam.UpdateOrientation(0, 0.8)

	c.Handle(ToggleFreeMove)
	if c.FreeMove {
		t.Fatal("free move should be off")
	}
	c.Handle(MoveForward)
	if cam.Position.Y != 0 {
		t.Errorf("walking changed height: %v", cam.Position)
	}

	c.Handle(ToggleFreeMove)
	c.Handle(MoveForward)
	if cam.Position.Y <= 0 {
		t.Errorf("flying while looking down should descend, at %v", cam.Position)
	}
}

func TestHandleToggles(t *testing.T) {
	c := newTestController(t, 0)
	r := c.Renderer()

	c.Handle(ToggleWireframe)
	c.Handle(ToggleFullBright)
	c.Handle(TogglePipeline)
	c.Handle(ToggleHUD)
	if !r.Wireframe || !r.FullBright || !r.Hardware || c.HUD {
		t.Errorf("toggles: wire %v bright %v hw %v hud %v", r.Wireframe, r.FullBright, r.Hardware, c.HUD)
	}

	c.Handle(ToggleCapture)
	if c.Captured() {
		t.Error("capture toggle should lock look")
	}

	if c.Quitting() {
		t.Fatal("quit too early")
	}
	c.Handle(Quit)
	if !c.Quitting() {
		t.Error("quit not recorded")
	}
}

func TestHandleReset(t *testing.T) {
	c := newTestController(t, 0)
	r := c.Renderer()
	if _, err := r.Frame(render.NewFramebuffer(64, 48)); err != nil {
		t.Fatal(err)
	}
	c.Handle(MoveForward)
	c.MouseMove(50, 20)
	c.Tick()

	c.Handle(ResetScene)
	if r.Loader.State() != scene.Loading {
		t.Error("reset should reload the scene")
	}
	if r.Camera.Position != math3d.V3(0, 0, -500) || r.Camera.Yaw != 0 || r.Camera.Pitch != 0 {
		t.Errorf("camera not reset: %v yaw %v pitch %v", r.Camera.Position, r.Camera.Yaw, r.Camera.Pitch)
	}

	// No leftover look motion after reset.
	c.Tick()
	if r.Camera.Yaw != 0 || r.Camera.Pitch != 0 {
		t.Errorf("look drifted after reset: yaw %v pitch %v", r.Camera.Yaw, r.Camera.Pitch)
	}
}

func TestMouseLookImmediate(t *testing.T) {
	c := newTestController(t, 0)
	cam := c.Renderer().Camera

	c.MouseMove(10, -20)
	c.Tick()
	if math.Abs(cam.Yaw+0.1) > 1e-12 || math.Abs(cam.Pitch+0.2) > 1e-12 {
		t.Errorf("yaw %v pitch %v, want -0.1 and -0.2", cam.Yaw, cam.Pitch)
	}
}

func TestMouseLookIgnoredWhenLocked(t *testing.T) {
	c := newTestController(t, 0)
	cam := c.Renderer().Camera

	c.Handle(ToggleCapture)
	c.MouseMove(100, 100)
	c.Tick()
	if cam.Yaw != 0 || cam.Pitch != 0 {
		t.Errorf("locked camera turned: yaw %v pitch %v", cam.Yaw, cam.Pitch)
	}

	c.Handle(ToggleCapture)
	c.Tick()
	if cam.Yaw != 0 || cam.Pitch != 0 {
		t.Errorf("motion while locked leaked after unlocking: yaw %v pitch %v", cam.Yaw, cam.Pitch)
	}
}

func TestMouseLookSmoothed(t *testing.T) {
	c := newTestController(t, 12)
	cam := c.Renderer().Camera

	c.MouseMove(-30, 0) // turn left by 0.3
	c.Tick()
	if cam.Yaw <= 0 || cam.Yaw >= 0.3 {
		t.Errorf("first smoothed step yaw = %v, want partway to 0.3", cam.Yaw)
	}

	prev := cam.Yaw
	for range 300 {
		c.Tick()
		if cam.Yaw < prev-1e-9 {
			t.Fatalf("critically damped look reversed: %v after %v", cam.Yaw, prev)
		}
		prev = cam.Yaw
	}
	if math.Abs(cam.Yaw-0.3) > 1e-4 {
		t.Errorf("settled yaw = %v, want 0.3", cam.Yaw)
	}
}

func TestLookPitchTargetClamped(t *testing.T) {
	l := NewLook(60, 1, 0)
	l.Add(0, 100)
	if _, pitch := l.Step(); pitch != math.Pi/2 {
		t.Errorf("pitch = %v, want π/2", pitch)
	}
	// Coming back down starts immediately, with no wind-up to undo.
	l.Add(0, -0.5)
	if _, pitch := l.Step(); math.Abs(pitch-(math.Pi/2-0.5)) > 1e-12 {
		t.Errorf("pitch = %v, want π/2 - 0.5", pitch)
	}
}

func TestLookSettled(t *testing.T) {
	l := NewLook(60, 1, 10)
	l.Snap(0.5, 0.1)
	if !l.Settled() {
		t.Error("snapped look should be settled")
	}
	l.Add(1, 0)
	if l.Settled() {
		t.Error("pending motion should not be settled")
	}
}
