package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/taigrr/cubeview/pkg/control"
	"github.com/taigrr/cubeview/pkg/math3d"
	"github.com/taigrr/cubeview/pkg/render"
	"github.com/taigrr/cubeview/pkg/scene"
)

// hud tracks the frame rate and formats the overlay text.
type hud struct {
	name    string
	fps     float64
	frames  int
	since   time.Time
	nowFunc func() time.Time
}

func newHUD(path string) *hud {
	return &hud{name: filepath.Base(path), since: time.Now(), nowFunc: time.Now}
}

// tick counts a frame. The rate is recomputed once a second.
func (h *hud) tick() {
	h.frames++
	now := h.nowFunc()
	if elapsed := now.Sub(h.since); elapsed >= time.Second {
		h.fps = float64(h.frames) / elapsed.Seconds()
		h.frames = 0
		h.since = now
	}
}

func check(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// lines returns the overlay for the current frame.
func (h *hud) lines(ctrl *control.Controller, stats render.FrameStats) []string {
	r := ctrl.Renderer()
	cam := r.Camera

	status := fmt.Sprintf("%d objects, %d culled, %d tris", stats.Objects, stats.Culled, stats.Triangles)
	if r.Wireframe {
		status = fmt.Sprintf("%d objects, %d culled, %d lines", stats.Objects, stats.Culled, stats.Segments)
	}
	if r.Loader.State() == scene.Loading {
		loaded, total := r.Loader.Progress()
		status = fmt.Sprintf("loading %d/%d", loaded, total)
	}

	pipeline := "software"
	if r.Hardware {
		pipeline = "hardware"
	}
	move := "walk"
	if ctrl.FreeMove {
		move = "fly"
	}

	return []string{
		fmt.Sprintf("%.0f FPS  %s  %s", h.fps, h.name, status),
		fmt.Sprintf("pos %.0f,%.0f,%.0f  yaw %.0f  pitch %.0f  look %s",
			cam.Position.X, cam.Position.Y, cam.Position.Z,
			math3d.Degrees(cam.Yaw), math3d.Degrees(cam.Pitch), cam.State),
		fmt.Sprintf("%s wireframe  %s full-bright  %s pipeline  %s move",
			check(r.Wireframe), check(r.FullBright), pipeline, move),
	}
}
