package drag

import (
	"fmt"

	"drag-sandbox/internal/geom"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// TargetMode selects how the drag target is derived.
type TargetMode int

const (
	// TargetDistance offsets the grab point along the camera's right/up axes by
	// the screen distance, scaled by the camera's distance to the grab point.
	TargetDistance TargetMode = iota
	// TargetRay puts the target where the cursor ray meets the ground plane.
	TargetRay
)

func (m TargetMode) String() string {
	switch m {
	case TargetDistance:
		return "distance"
	case TargetRay:
		return "ray"
	}
	return "unknown"
}

// ParseTargetMode maps a config name to a TargetMode.
func ParseTargetMode(s string) (TargetMode, error) {
	switch s {
	case "distance", "":
		return TargetDistance, nil
	case "ray":
		return TargetRay, nil
	}
	return 0, fmt.Errorf("drag: unknown target mode %q", s)
}

// Config holds the drag tuning constants.
type Config struct {
	ZoomScale float64 // world units per pixel, per unit of camera distance
	Clamp     float64 // per-axis bound on the raw impulse
	Gain      float64 // raw impulse multiplier
	Mode      TargetMode
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		ZoomScale: 0.0011,
		Clamp:     1,
		Gain:      1.5,
		Mode:      TargetDistance,
	}
}

// Impulse is one tick of drag output.
type Impulse struct {
	Target    mgl64.Vec3
	DragPoint mgl64.Vec3
	Linear    mgl64.Vec3
	Angular   mgl64.Vec3
}

// Physics is the part of the rigid-body engine the controller needs.
type Physics interface {
	BodyTransform(e donburi.Entity) (geom.Transform, error)
	CenterOfMass(e donburi.Entity) (mgl64.Vec3, error)
	ApplyLinearImpulse(e donburi.Entity, j mgl64.Vec3) error
	ApplyAngularImpulse(e donburi.Entity, l mgl64.Vec3) error
}

// Controller computes and applies drag impulses.
type Controller struct {
	cfg Config
}

// NewController returns a controller with the given tuning.
func NewController(cfg Config) *Controller {
	return &Controller{cfg: cfg}
}

// Config returns the controller's tuning.
func (c *Controller) Config() Config {
	return c.cfg
}

// Target returns the ground-plane target for a session seen from cam.
func (c *Controller) Target(s Session, cam geom.Transform) mgl64.Vec3 {
	offset := cam.Right().Mul(s.Distance.X()).Sub(cam.Up().Mul(s.Distance.Y()))
	offset = geom.Flatten(offset)
	// pixels to world units at the grab point's depth
	zoom := cam.Translation.Sub(s.Origin).Len() * c.cfg.ZoomScale
	return s.Origin.Add(offset.Mul(zoom))
}

// Compute returns the impulses that pull the grabbed point towards the
// session's target, without applying them.
func (c *Controller) Compute(s Session, cam, body geom.Transform, com mgl64.Vec3) Impulse {
	return c.towards(c.Target(s, cam), s.DragPoint(body), com)
}

// ComputeRay is Compute for TargetRay: the target is where cursor meets the
// ground plane. ok is false when the ray misses the plane.
func (c *Controller) ComputeRay(s Session, cursor geom.Ray, body geom.Transform, com mgl64.Vec3) (Impulse, bool) {
	d, ok := cursor.IntersectPlane(mgl64.Vec3{}, geom.WorldUp)
	if !ok {
		return Impulse{}, false
	}
	return c.towards(cursor.At(d), s.DragPoint(body), com), true
}

func (c *Controller) towards(target, dragPoint, com mgl64.Vec3) Impulse {
	raw := geom.Clamp(target.Sub(dragPoint), -c.cfg.Clamp, c.cfg.Clamp)
	linear := raw.Mul(c.cfg.Gain)
	return Impulse{
		Target:    target,
		DragPoint: dragPoint,
		Linear:    linear,
		Angular:   torque(dragPoint, com, linear),
	}
}

// torque crosses the horizontal lever arm, minus its component along the
// impulse, with the impulse.
func torque(dragPoint, com, impulse mgl64.Vec3) mgl64.Vec3 {
	n2 := impulse.Dot(impulse)
	if n2 < 1e-18 {
		return mgl64.Vec3{}
	}
	arm := geom.Flatten(dragPoint.Sub(com))
	arm = arm.Sub(impulse.Mul(arm.Dot(impulse) / n2))
	return arm.Cross(impulse)
}

// Apply computes the impulses for the body being dragged and hands them to
// the physics engine. cursor is only used in TargetRay mode; a nil cursor or
// a ray that misses the ground applies nothing.
func (c *Controller) Apply(ph Physics, body donburi.Entity, s Session, cam geom.Transform, cursor *geom.Ray) (Impulse, error) {
	tr, err := ph.BodyTransform(body)
	if err != nil {
		return Impulse{}, fmt.Errorf("drag: body transform: %w", err)
	}
	com, err := ph.CenterOfMass(body)
	if err != nil {
		return Impulse{}, fmt.Errorf("drag: centre of mass: %w", err)
	}

	var imp Impulse
	if c.cfg.Mode == TargetRay {
		if cursor == nil {
			return Impulse{}, nil
		}
		var ok bool
		if imp, ok = c.ComputeRay(s, *cursor, tr, com); !ok {
			return Impulse{}, nil
		}
	} else {
		imp = c.Compute(s, cam, tr, com)
	}

	if err := ph.ApplyLinearImpulse(body, imp.Linear); err != nil {
		return Impulse{}, fmt.Errorf("drag: linear impulse: %w", err)
	}
	if err := ph.ApplyAngularImpulse(body, imp.Angular); err != nil {
		return Impulse{}, fmt.Errorf("drag: angular impulse: %w", err)
	}
	return imp, nil
}
