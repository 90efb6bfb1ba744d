package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/taigrr/cubeview/internal/config"
	"github.com/taigrr/cubeview/pkg/control"
	"github.com/taigrr/cubeview/pkg/math3d"
	"github.com/taigrr/cubeview/pkg/render"
	"github.com/taigrr/cubeview/pkg/scene"
)

// session is one open scene: the renderer with its camera and loader, and
// the controller that drives them.
type session struct {
	cfg      config.Config
	path     string
	logger   *log.Logger
	renderer *render.Renderer
	ctrl     *control.Controller
}

// newSession opens the description at path for a width×height view. The
// description is read once up front so a bad file fails before any screen
// is set up.
func newSession(cfg config.Config, path string, width, height int, logger *log.Logger) (*session, error) {
	src := scene.NewFileSource(path)
	names, err := src.Names()
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	logger.Info("opened scene", "path", path, "objects", len(names))

	cam := render.NewCamera(
		math3d.V3(cfg.Start.X, cfg.Start.Y, cfg.Start.Z),
		math3d.Radians(cfg.Start.Yaw),
		math3d.Radians(cfg.Start.Pitch),
	)
	r := render.NewRenderer(cam, render.NewViewport(width, height), scene.NewLoader(src, logger), render.Options{
		Near:       cfg.Near,
		K:          cfg.K,
		Background: background(cfg),
		LoadBudget: cfg.LoadBudget,
		Logger:     logger,
	})
	look := control.NewLook(cfg.FPS(), cfg.LookSensitivity, cfg.LookSmoothing)

	return &session{
		cfg:      cfg,
		path:     path,
		logger:   logger,
		renderer: r,
		ctrl:     control.NewController(r, look, cfg.MoveSpeed),
	}, nil
}

// frame applies one frame of look smoothing and draws to s.
func (s *session) frame(surface render.Surface) (render.FrameStats, error) {
	s.ctrl.Tick()
	stats, err := s.renderer.Frame(surface)
	if err != nil {
		return stats, fmt.Errorf("render: %w", err)
	}
	return stats, nil
}

// resize updates the viewport so the origin stays at the centre.
func (s *session) resize(width, height int) {
	s.renderer.Viewport.Resize(width, height)
	s.logger.Debug("resize", "width", width, "height", height)
}

// handle applies an action and logs toggles.
func (s *session) handle(a control.Action) {
	s.ctrl.Handle(a)
	if !a.Movement() && a != control.None {
		s.logger.Debug("action", "action", a)
	}
}

func background(cfg config.Config) render.Color {
	bg := cfg.Background
	return render.RGB(uint8(bg[0]), uint8(bg[1]), uint8(bg[2]))
}
