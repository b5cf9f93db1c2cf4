// Package orbit implements a pan-orbit camera: the camera sits on a sphere of
// Radius around Focus, always looking at Focus with +Y as world up.
//
// Input arrives once per tick as an input.Frame. Orbit and pan are gated on
// configurable held buttons; the wheel zooms.
package orbit

import (
	"math"

	"drag-sandbox/internal/geom"
	"drag-sandbox/internal/input"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Config holds the button mapping and sensitivities. None of it is structural.
type Config struct {
	OrbitButton      input.Button
	PanButton        input.Button
	OrbitSensitivity float64 // radians per pixel
	PanSensitivity   float64 // world units per pixel, per unit of radius
	ZoomSensitivity  float64 // radius change per wheel tick
	RadiusMin        float64 // must be > 0
	PitchMargin      float64 // radians kept clear of straight up/down
}

// DefaultConfig orbits on the right button and pans on the middle button,
// leaving the primary button free for dragging bodies.
func DefaultConfig() Config {
	return Config{
		OrbitButton:      input.Right,
		PanButton:        input.Middle,
		OrbitSensitivity: 0.005,
		PanSensitivity:   0.0015,
		ZoomSensitivity:  0.05,
		RadiusMin:        0.05,
		PitchMargin:      0.01,
	}
}

// minRadius is the floor applied when a config asks for RadiusMin <= 0.
const minRadius = 1e-3

// State is the camera's position on its orbit sphere.
// Yaw rotates about +Y; Pitch is the elevation above the focus's horizontal plane.
type State struct {
	Focus  mgl64.Vec3
	Radius float64
	Yaw    float64
	Pitch  float64
}

// FromLookAt derives the orbit state of a camera at eye looking at focus.
func FromLookAt(eye, focus mgl64.Vec3) State {
	d := eye.Sub(focus)
	r := d.Len()
	s := State{Focus: focus, Radius: r}
	if r < 1e-12 {
		return s
	}
	s.Yaw = math.Atan2(d.X(), d.Z())
	s.Pitch = math.Asin(math.Max(-1, math.Min(1, d.Y()/r)))
	return s
}

// Direction is the unit vector from Focus towards the camera.
func (s State) Direction() mgl64.Vec3 {
	sy, cy := math.Sincos(s.Yaw)
	sp, cp := math.Sincos(s.Pitch)
	return mgl64.Vec3{cp * sy, sp, cp * cy}
}

// Transform places the camera at Focus + Radius*Direction and orients it to
// look at Focus. Right stays horizontal, so world up is the secondary axis.
func (s State) Transform() geom.Transform {
	rot := mgl64.QuatRotate(s.Yaw, geom.WorldUp).Mul(mgl64.QuatRotate(-s.Pitch, mgl64.Vec3{1, 0, 0}))
	return geom.Transform{
		Translation: s.Focus.Add(s.Direction().Mul(s.Radius)),
		Rotation:    rot.Normalize(),
	}
}

type focusTween struct {
	from, to mgl64.Vec3
	t        *gween.Tween
}

// Controller owns a camera's State. It is the only writer of that state.
type Controller struct {
	State State
	cfg   Config
	tween *focusTween
}

// New returns a controller for a camera at eye looking at focus.
// Pitch and radius are brought within the configured limits once, up front.
func New(cfg Config, eye, focus mgl64.Vec3) *Controller {
	if cfg.RadiusMin <= 0 {
		cfg.RadiusMin = minRadius
	}
	c := &Controller{cfg: cfg, State: FromLookAt(eye, focus)}
	c.State.Pitch = c.clampPitch(c.State.Pitch)
	c.State.Radius = math.Max(c.State.Radius, cfg.RadiusMin)
	return c
}

// Config returns the controller's configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Transform returns the current camera transform without consuming input.
func (c *Controller) Transform() geom.Transform {
	return c.State.Transform()
}

func (c *Controller) clampPitch(p float64) float64 {
	limit := math.Pi/2 - math.Abs(c.cfg.PitchMargin)
	return math.Max(-limit, math.Min(limit, p))
}

// Update applies one tick of input and returns the new camera transform.
// A frame with no motion and no scroll leaves the transform unchanged unless
// a focus animation is running.
func (c *Controller) Update(f input.Frame, dt float64) geom.Transform {
	s := &c.State
	moved := f.Motion != (mgl64.Vec2{})

	if moved && f.Held(c.cfg.OrbitButton) {
		s.Yaw -= f.Motion.X() * c.cfg.OrbitSensitivity
		s.Pitch = c.clampPitch(s.Pitch + f.Motion.Y()*c.cfg.OrbitSensitivity)
	}

	if moved && f.Held(c.cfg.PanButton) && c.cfg.PanButton != c.cfg.OrbitButton {
		t := s.Transform()
		// screen +Y is down, so dragging down moves the focus up the view
		pan := t.Right().Mul(-f.Motion.X()).Add(t.Up().Mul(f.Motion.Y()))
		s.Focus = s.Focus.Add(pan.Mul(s.Radius * c.cfg.PanSensitivity))
		c.tween = nil
	}

	if f.Scroll != 0 {
		s.Radius = math.Max(s.Radius-f.Scroll*c.cfg.ZoomSensitivity, c.cfg.RadiusMin)
	}

	if c.tween != nil {
		v, done := c.tween.t.Update(float32(dt))
		s.Focus = c.tween.from.Add(c.tween.to.Sub(c.tween.from).Mul(float64(v)))
		if done {
			s.Focus = c.tween.to
			c.tween = nil
		}
	}

	return s.Transform()
}

// FocusOn moves the focus to p, eased over the given number of seconds.
// A non-positive duration snaps immediately. Panning cancels the animation.
func (c *Controller) FocusOn(p mgl64.Vec3, seconds float64) {
	if seconds <= 0 {
		c.State.Focus = p
		c.tween = nil
		return
	}
	c.tween = &focusTween{
		from: c.State.Focus,
		to:   p,
		t:    gween.New(0, 1, float32(seconds), ease.OutCubic),
	}
}

// Animating reports whether a FocusOn animation is in progress.
func (c *Controller) Animating() bool {
	return c.tween != nil
}
