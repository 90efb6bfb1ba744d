// Package config holds viewer settings read from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for settings the renderer cannot use.
var ErrInvalid = errors.New("invalid config")

// Config is the full set of viewer settings. Keys missing from a file keep
// their defaults.
type Config struct {
	Near      float64 `yaml:"near"`      // camera-space z below which geometry is clipped; <= 0
	K         float64 `yaml:"k"`         // perspective constant
	MoveSpeed float64 `yaml:"move_speed"`

	LookSensitivity float64 `yaml:"look_sensitivity"` // radians per mouse unit
	LookSmoothing   float64 `yaml:"look_smoothing"`   // spring frequency, 0 disables

	FrameDelay time.Duration `yaml:"frame_delay"`
	LoadBudget int           `yaml:"load_budget"` // objects per frame, 0 loads all at once

	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background [3]int `yaml:"background"`

	Start Start `yaml:"start"`
}

// Start is the camera pose used at startup and after a reset. The position is
// in world space, where Y grows down; angles are in degrees.
type Start struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Yaw   float64 `yaml:"yaw"`
	Pitch float64 `yaml:"pitch"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Near:            -300,
		K:               0.002,
		MoveSpeed:       10,
		LookSensitivity: 0.005,
		LookSmoothing:   10,
		FrameDelay:      16 * time.Millisecond,
		LoadBudget:      1,
		Width:           640,
		Height:          480,
		Background:      [3]int{0, 0, 0},
		Start:           Start{Z: -500},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings that would divide by zero or flip the image.
func (c Config) Validate() error {
	switch {
	case c.K <= 0:
		return fmt.Errorf("%w: k must be positive, got %v", ErrInvalid, c.K)
	case c.Near > 0:
		return fmt.Errorf("%w: near must not be positive, got %v", ErrInvalid, c.Near)
	case 1+c.Near*c.K <= 0:
		return fmt.Errorf("%w: near %v is behind the perspective pole for k %v", ErrInvalid, c.Near, c.K)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.MoveSpeed <= 0:
		return fmt.Errorf("%w: move_speed must be positive", ErrInvalid)
	case c.LookSensitivity <= 0:
		return fmt.Errorf("%w: look_sensitivity must be positive", ErrInvalid)
	case c.LookSmoothing < 0:
		return fmt.Errorf("%w: look_smoothing must not be negative", ErrInvalid)
	case c.FrameDelay < 0:
		return fmt.Errorf("%w: frame_delay must not be negative", ErrInvalid)
	}
	for _, ch := range c.Background {
		if ch < 0 || ch > 255 {
			return fmt.Errorf("%w: background channel %d out of range", ErrInvalid, ch)
		}
	}
	return nil
}

// FPS is the frame rate implied by FrameDelay, at least 1.
func (c Config) FPS() int {
	if c.FrameDelay <= 0 {
		return 60
	}
	return max(1, int(time.Second/c.FrameDelay))
}
