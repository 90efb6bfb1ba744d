package render

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/taigrr/cubeview/pkg/math3d"
	"github.com/taigrr/cubeview/pkg/scene"
)

// lightDir points from the scene toward the light: above the camera's start
// position and slightly to the left. World Y grows down.
var lightDir = math3d.V3(-0.4, -0.8, -0.45).Normalize()

const ambient = 0.3

// FrameStats counts what one frame submitted.
type FrameStats struct {
	Objects   int // boxes drawn
	Culled    int // boxes outside the frustum
	Segments  int // wireframe lines drawn
	Triangles int // filled triangles drawn
}

// Options configures a Renderer.
type Options struct {
	Near       float64
	K          float64
	Background Color
	LoadBudget int // objects loaded per frame; <= 0 loads everything at once
	Logger     *log.Logger
}

// Renderer draws the loader's scene from the camera's point of view. It owns
// the per-view context: camera, viewport and display modes.
type Renderer struct {
	Camera   *Camera
	Viewport *Viewport
	Loader   *scene.Loader

	Wireframe  bool
	FullBright bool
	Hardware   bool

	opts     Options
	logger   *log.Logger
	pipeline *Pipeline
	ready    bool
}

// NewRenderer creates a renderer. A nil logger discards output.
func NewRenderer(cam *Camera, vp *Viewport, loader *scene.Loader, opts Options) *Renderer {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Renderer{
		Camera:   cam,
		Viewport: vp,
		Loader:   loader,
		opts:     opts,
		logger:   logger,
		pipeline: NewPipeline(),
	}
}

// Projector returns the projector for the current viewport.
func (r *Renderer) Projector() Projector {
	return NewProjector(r.opts.Near, r.opts.K, r.Viewport)
}

// Frustum returns the visible volume for the current camera and viewport.
func (r *Renderer) Frustum() Frustum {
	proj := r.Projector()
	viewProj := math3d.DepthDivide(proj.K).Mul(r.Camera.ViewMatrix())
	return NewFrustum(viewProj, proj, float64(r.Viewport.Width), float64(r.Viewport.Height))
}

// Reset drops the scene, re-reads the description and puts the camera back.
func (r *Renderer) Reset() {
	r.Loader.Reset()
	r.Camera.Reset()
	r.ready = false
	r.logger.Info("reset")
}

// Frame clears s, advances loading and draws every box. Load failures are
// returned; nothing is drawn from a scene that failed to load.
func (r *Renderer) Frame(s Surface) (FrameStats, error) {
	var stats FrameStats
	s.Clear(r.opts.Background)

	if r.Loader.State() == scene.Loading {
		if err := r.Loader.Step(r.opts.LoadBudget); err != nil {
			return stats, err
		}
	}
	sc := r.Loader.Scene()
	if sc == nil {
		return stats, nil
	}
	if !r.ready {
		r.ready = true
		r.logger.Info("scene ready", "objects", sc.Len())
	}

	proj := r.Projector()
	frustum := r.Frustum()
	if r.Hardware && !r.Wireframe {
		r.pipeline.Begin(r.Camera, proj)
	}

	for _, b := range scene.DrawOrder(sc.Boxes()) {
		world := b.WorldVertices()
		if !frustum.IntersectAABB(BoundPoints(world[:])) {
			stats.Culled++
			continue
		}
		stats.Objects++

		switch {
		case r.Wireframe:
			stats.Segments += r.drawEdges(s, proj, world, b.Color)
		case r.Hardware:
			stats.Triangles += r.pipeline.DrawBox(s, b, r.shader(b.Color))
		default:
			stats.Triangles += r.drawFaces(s, proj, b, world)
		}
	}
	return stats, nil
}

func (r *Renderer) shader(c Color) func(math3d.Vec3) Color {
	if r.FullBright {
		return func(math3d.Vec3) Color { return c }
	}
	return func(n math3d.Vec3) Color {
		return Shade(c, ambient+(1-ambient)*max(0, n.Dot(lightDir)))
	}
}

func (r *Renderer) drawEdges(s Surface, proj Projector, world [8]math3d.Vec3, c Color) int {
	var cam [8]math3d.Vec3
	for i, v := range world {
		cam[i] = r.Camera.ToCamera(v)
	}

	n := 0
	for _, e := range scene.Edges() {
		seg, ok := proj.ProjectSegment(cam[e[0]], cam[e[1]])
		if !ok {
			continue
		}
		s.DrawLine(seg.X0, seg.Y0, seg.X1, seg.Y1, c)
		n++
	}
	return n
}

func (r *Renderer) drawFaces(s Surface, proj Projector, b *scene.Box, world [8]math3d.Vec3) int {
	var cam [8]math3d.Vec3
	for i, v := range world {
		cam[i] = r.Camera.ToCamera(v)
	}
	normals := b.WorldNormals()
	shade := r.shader(b.Color)

	tris := 0
	for f, q := range scene.Quads() {
		poly := proj.ClipPolygon([]math3d.Vec3{cam[q[0]], cam[q[1]], cam[q[2]], cam[q[3]]})
		if len(poly) < 3 {
			continue
		}

		screen := make([]ScreenVertex, len(poly))
		for i, v := range poly {
			screen[i] = proj.Project(v)
		}
		if !frontFacing(screen) {
			continue
		}

		color := shade(normals[f])
		tris += fan(screen, func(t [3]ScreenVertex) { s.FillTriangle(t, color) })
	}
	return tris
}
