// Package control maps viewer input onto the camera and renderer.
package control

import (
	"fmt"

	"github.com/taigrr/cubeview/pkg/render"
)

// Action is something a key does.
type Action int

const (
	None Action = iota
	MoveForward
	MoveBack
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	ResetScene
	ToggleWireframe
	ToggleFullBright
	ToggleCapture
	ToggleFreeMove
	TogglePipeline
	ToggleHUD
	Quit
)

var actionNames = [...]string{
	None:             "none",
	MoveForward:      "forward",
	MoveBack:         "back",
	MoveLeft:         "left",
	MoveRight:        "right",
	MoveUp:           "up",
	MoveDown:         "down",
	ResetScene:       "reset",
	ToggleWireframe:  "wireframe",
	ToggleFullBright: "full-bright",
	ToggleCapture:    "capture",
	ToggleFreeMove:   "free-move",
	TogglePipeline:   "pipeline",
	ToggleHUD:        "hud",
	Quit:             "quit",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Movement reports whether a is held down rather than pressed once.
func (a Action) Movement() bool {
	return a >= MoveForward && a <= MoveDown
}

// Binding ties key names to an action. Key names follow the terminal key
// syntax: "w", "space", "tab", "escape", "ctrl+c".
type Binding struct {
	Keys   []string
	Action Action
}

// DefaultBindings is the standard keymap.
var DefaultBindings = []Binding{
	{[]string{"w", "up"}, MoveForward},
	{[]string{"s", "down"}, MoveBack},
	{[]string{"a", "left"}, MoveLeft},
	{[]string{"d", "right"}, MoveRight},
	{[]string{"space"}, MoveUp},
	{[]string{"shift", "c"}, MoveDown},
	{[]string{"r"}, ResetScene},
	{[]string{"f"}, ToggleWireframe},
	{[]string{"b"}, ToggleFullBright},
	{[]string{"p", "tab"}, ToggleCapture},
	{[]string{"m"}, ToggleFreeMove},
	{[]string{"g"}, TogglePipeline},
	{[]string{"h"}, ToggleHUD},
	{[]string{"escape", "esc", "ctrl+c"}, Quit},
}

// Lookup returns the action bound to key, or None.
func Lookup(key string) Action {
	for _, b := range DefaultBindings {
		for _, k := range b.Keys {
			if k == key {
				return b.Action
			}
		}
	}
	return None
}

// Match returns the first action whose keys satisfy match, or None. It fits
// key event matchers such as ultraviolet's KeyPressEvent.MatchString.
func Match(match func(keys ...string) bool) Action {
	for _, b := range DefaultBindings {
		if match(b.Keys...) {
			return b.Action
		}
	}
	return None
}

// Controller applies actions and mouse motion to a renderer. It is not safe
// for concurrent use; backends call it from their frame loop.
type Controller struct {
	r    *render.Renderer
	look *Look

	Speed    float64 // world units per movement step
	FreeMove bool    // fly along the view direction instead of walking
	HUD      bool

	quit bool
}

// NewController creates a controller for r. Movement starts in free-fly mode
// with the HUD shown.
func NewController(r *render.Renderer, look *Look, speed float64) *Controller {
	look.Snap(r.Camera.Yaw, r.Camera.Pitch)
	return &Controller{
		r:        r,
		look:     look,
		Speed:    speed,
		FreeMove: true,
		HUD:      true,
	}
}

// Renderer returns the renderer the controller drives.
func (c *Controller) Renderer() *render.Renderer {
	return c.r
}

// Quitting reports whether Quit was requested.
func (c *Controller) Quitting() bool {
	return c.quit
}

// Captured reports whether mouse motion turns the camera.
func (c *Controller) Captured() bool {
	return c.r.Camera.State == render.Active
}

var moveDirs = map[Action]render.Direction{
	MoveForward: render.Forward,
	MoveBack:    render.Back,
	MoveLeft:    render.Left,
	MoveRight:   render.Right,
	MoveUp:      render.Up,
	MoveDown:    render.Down,
}

// Handle performs one action. Movement actions move one step.
func (c *Controller) Handle(a Action) {
	cam := c.r.Camera
	if dir, ok := moveDirs[a]; ok {
		if c.FreeMove {
			cam.Move(dir, c.Speed)
		} else {
			cam.Walk(dir, c.Speed)
		}
		return
	}

	switch a {
	case ResetScene:
		c.r.Reset()
		c.look.Snap(cam.Yaw, cam.Pitch)
	case ToggleWireframe:
		c.r.Wireframe = !c.r.Wireframe
	case ToggleFullBright:
		c.r.FullBright = !c.r.FullBright
	case ToggleCapture:
		cam.ToggleLook()
		// Drop motion that has not been shown yet.
		c.look.Snap(cam.Yaw, cam.Pitch)
	case ToggleFreeMove:
		c.FreeMove = !c.FreeMove
	case TogglePipeline:
		c.r.Hardware = !c.r.Hardware
	case ToggleHUD:
		c.HUD = !c.HUD
	case Quit:
		c.quit = true
	}
}

// MouseMove feeds relative mouse motion. It is ignored while the look is
// locked.
func (c *Controller) MouseMove(dx, dy float64) {
	if !c.Captured() {
		return
	}
	c.look.Add(dx, dy)
}

// Tick advances the look smoothing by one frame and turns the camera.
func (c *Controller) Tick() {
	if !c.Captured() || c.look.Settled() {
		return
	}
	cam := c.r.Camera
	yaw, pitch := c.look.Step()
	cam.UpdateOrientation(yaw-cam.Yaw, pitch-cam.Pitch)
}
