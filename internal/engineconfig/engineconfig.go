package engineconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"drag-sandbox/internal/drag"
	"drag-sandbox/internal/input"
	"drag-sandbox/internal/orbit"
	"drag-sandbox/internal/physics"

	"github.com/caarlos0/env/v11"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// EngineConfigPath is the path to the engine config file, relative to the process working directory.
const EngineConfigPath = "config/engine.yaml"

// EnvPrefix prefixes every environment override, e.g. DRAGBOX_CAMERA_ZOOM_SENSITIVITY.
const EnvPrefix = "DRAGBOX_"

// WindowPrefs sizes the window.
type WindowPrefs struct {
	Width      int     `yaml:"width" env:"WIDTH"`
	Height     int     `yaml:"height" env:"HEIGHT"`
	Fullscreen bool    `yaml:"fullscreen" env:"FULLSCREEN"`
	FovY       float64 `yaml:"fov_y" env:"FOV_Y"` // degrees
	TargetFPS  int     `yaml:"target_fps" env:"TARGET_FPS"`
}

// CameraPrefs maps buttons and sensitivities for the pan-orbit camera.
type CameraPrefs struct {
	OrbitButton      string  `yaml:"orbit_button" env:"ORBIT_BUTTON"`
	PanButton        string  `yaml:"pan_button" env:"PAN_BUTTON"`
	OrbitSensitivity float64 `yaml:"orbit_sensitivity" env:"ORBIT_SENSITIVITY"`
	PanSensitivity   float64 `yaml:"pan_sensitivity" env:"PAN_SENSITIVITY"`
	ZoomSensitivity  float64 `yaml:"zoom_sensitivity" env:"ZOOM_SENSITIVITY"`
	RadiusMin        float64 `yaml:"radius_min" env:"RADIUS_MIN"`
	PitchMargin      float64 `yaml:"pitch_margin" env:"PITCH_MARGIN"`
	FocusSeconds     float64 `yaml:"focus_seconds" env:"FOCUS_SECONDS"`
}

// DragPrefs tunes the drag controller.
type DragPrefs struct {
	ZoomScale  float64 `yaml:"zoom_scale" env:"ZOOM_SCALE"`
	Clamp      float64 `yaml:"clamp" env:"CLAMP"`
	Gain       float64 `yaml:"gain" env:"GAIN"`
	TargetMode string  `yaml:"target_mode" env:"TARGET_MODE"`
	DeadZone   float64 `yaml:"dead_zone" env:"DEAD_ZONE"`
}

// PhysicsPrefs tunes the rigid-body step.
type PhysicsPrefs struct {
	Gravity        float64 `yaml:"gravity" env:"GRAVITY"` // downward acceleration
	Timestep       float64 `yaml:"timestep" env:"TIMESTEP"`
	Substeps       int     `yaml:"substeps" env:"SUBSTEPS"`
	LinearDamping  float64 `yaml:"linear_damping" env:"LINEAR_DAMPING"`
	AngularDamping float64 `yaml:"angular_damping" env:"ANGULAR_DAMPING"`
	Friction       float64 `yaml:"friction" env:"FRICTION"`
}

// EnginePrefs holds engine preferences: window, camera, drag and physics tuning, debug overlays.
// Camera and drag state themselves are never persisted.
type EnginePrefs struct {
	Window       WindowPrefs  `yaml:"window" envPrefix:"WINDOW_"`
	Camera       CameraPrefs  `yaml:"camera" envPrefix:"CAMERA_"`
	Drag         DragPrefs    `yaml:"drag" envPrefix:"DRAG_"`
	Physics      PhysicsPrefs `yaml:"physics" envPrefix:"PHYSICS_"`
	ShowFPS      bool         `yaml:"show_fps" env:"SHOW_FPS"`
	ShowDragInfo bool         `yaml:"show_drag_info" env:"SHOW_DRAG_INFO"`
	GridVisible  bool         `yaml:"grid_visible" env:"GRID_VISIBLE"`
}

// Default returns default engine preferences, built from the packages' own defaults.
func Default() EnginePrefs {
	oc := orbit.DefaultConfig()
	dc := drag.DefaultConfig()
	pc := physics.DefaultConfig()
	return EnginePrefs{
		Window: WindowPrefs{Width: 1280, Height: 720, FovY: 45, TargetFPS: 60},
		Camera: CameraPrefs{
			OrbitButton:      oc.OrbitButton.String(),
			PanButton:        oc.PanButton.String(),
			OrbitSensitivity: oc.OrbitSensitivity,
			PanSensitivity:   oc.PanSensitivity,
			ZoomSensitivity:  oc.ZoomSensitivity,
			RadiusMin:        oc.RadiusMin,
			PitchMargin:      oc.PitchMargin,
			FocusSeconds:     0.4,
		},
		Drag: DragPrefs{
			ZoomScale:  dc.ZoomScale,
			Clamp:      dc.Clamp,
			Gain:       dc.Gain,
			TargetMode: dc.Mode.String(),
		},
		Physics: PhysicsPrefs{
			Gravity:        -pc.Gravity.Y(),
			Timestep:       pc.Timestep,
			Substeps:       pc.Substeps,
			LinearDamping:  pc.LinearDamping,
			AngularDamping: pc.AngularDamping,
			Friction:       pc.Friction,
		},
		ShowFPS:      false,
		ShowDragInfo: true,
		GridVisible:  true,
	}
}

// Load reads engine preferences from config/engine.yaml and applies environment overrides.
func Load() (EnginePrefs, error) {
	return LoadFile(EngineConfigPath)
}

// LoadFile reads engine preferences from path over Default(), then applies
// DRAGBOX_* environment overrides. A missing file is not an error. A file that
// does not parse yields Default() and the parse error.
func LoadFile(path string) (EnginePrefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Default(), fmt.Errorf("read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Default(), fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := ApplyEnv(&p); err != nil {
		return p, err
	}
	return p, p.Validate()
}

// ApplyEnv overrides fields of p from DRAGBOX_* environment variables. Unset variables leave fields alone.
func ApplyEnv(p *EnginePrefs) error {
	if err := env.ParseWithOptions(p, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks that every name resolves and every limit is usable.
func (p EnginePrefs) Validate() error {
	var errs []error
	if _, err := p.OrbitConfig(); err != nil {
		errs = append(errs, err)
	}
	if _, err := p.DragConfig(); err != nil {
		errs = append(errs, err)
	}
	if p.Physics.Substeps < 1 {
		errs = append(errs, fmt.Errorf("physics.substeps must be >= 1, got %d", p.Physics.Substeps))
	}
	if p.Window.Width <= 0 || p.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", p.Window.Width, p.Window.Height))
	}
	if p.Window.FovY <= 0 || p.Window.FovY >= 180 {
		errs = append(errs, fmt.Errorf("window.fov_y must be in (0, 180), got %v", p.Window.FovY))
	}
	return errors.Join(errs...)
}

// OrbitConfig converts the camera section.
func (p EnginePrefs) OrbitConfig() (orbit.Config, error) {
	orbitBtn, ok := input.ParseButton(p.Camera.OrbitButton)
	if !ok {
		return orbit.Config{}, fmt.Errorf("camera.orbit_button: unknown button %q", p.Camera.OrbitButton)
	}
	panBtn, ok := input.ParseButton(p.Camera.PanButton)
	if !ok {
		return orbit.Config{}, fmt.Errorf("camera.pan_button: unknown button %q", p.Camera.PanButton)
	}
	if p.Camera.RadiusMin <= 0 {
		return orbit.Config{}, fmt.Errorf("camera.radius_min must be > 0, got %v", p.Camera.RadiusMin)
	}
	return orbit.Config{
		OrbitButton:      orbitBtn,
		PanButton:        panBtn,
		OrbitSensitivity: p.Camera.OrbitSensitivity,
		PanSensitivity:   p.Camera.PanSensitivity,
		ZoomSensitivity:  p.Camera.ZoomSensitivity,
		RadiusMin:        p.Camera.RadiusMin,
		PitchMargin:      p.Camera.PitchMargin,
	}, nil
}

// DragConfig converts the drag section.
func (p EnginePrefs) DragConfig() (drag.Config, error) {
	mode, err := drag.ParseTargetMode(p.Drag.TargetMode)
	if err != nil {
		return drag.Config{}, fmt.Errorf("drag.target_mode: %w", err)
	}
	if p.Drag.Clamp <= 0 {
		return drag.Config{}, fmt.Errorf("drag.clamp must be > 0, got %v", p.Drag.Clamp)
	}
	return drag.Config{
		ZoomScale: p.Drag.ZoomScale,
		Clamp:     p.Drag.Clamp,
		Gain:      p.Drag.Gain,
		Mode:      mode,
	}, nil
}

// PhysicsConfig converts the physics section.
func (p EnginePrefs) PhysicsConfig() physics.Config {
	return physics.Config{
		Gravity:        mgl64.Vec3{0, -p.Physics.Gravity, 0},
		Timestep:       p.Physics.Timestep,
		Substeps:       p.Physics.Substeps,
		LinearDamping:  p.Physics.LinearDamping,
		AngularDamping: p.Physics.AngularDamping,
		Friction:       p.Physics.Friction,
	}
}

// Save writes engine preferences to config/engine.yaml, creating the config directory if needed.
func Save(p EnginePrefs) error {
	return SaveFile(EngineConfigPath, p)
}

// SaveFile writes engine preferences to path, creating its directory if needed.
func SaveFile(path string, p EnginePrefs) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
