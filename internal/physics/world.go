package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Config tunes the simulation. A positive Timestep makes every Step advance
// exactly that much simulated time regardless of frame time, split into Substeps.
type Config struct {
	Gravity        mgl64.Vec3
	Timestep       float64
	Substeps       int
	LinearDamping  float64 // fraction of velocity removed per second
	AngularDamping float64
	Friction       float64 // fraction of sliding/spin velocity removed per second in floor contact
}

// DefaultConfig uses Y-up gravity and a fixed 0.05s step in 20 substeps.
func DefaultConfig() Config {
	return Config{
		Gravity:        mgl64.Vec3{0, -9.81, 0},
		Timestep:       0.05,
		Substeps:       20,
		LinearDamping:  0.5,
		AngularDamping: 2,
		Friction:       4,
	}
}

// World holds a set of bodies and runs a simple 3D rigid-body step:
// impulses, gravity, integration, then AABB push-out.
type World struct {
	cfg    Config
	bodies []*Body
}

// NewWorld returns an empty world.
func NewWorld(cfg Config) *World {
	if cfg.Substeps <= 0 {
		cfg.Substeps = 1
	}
	return &World{cfg: cfg}
}

// AddBody appends a body to the world and returns its ID.
func (w *World) AddBody(b *Body) BodyID {
	w.bodies = append(w.bodies, b)
	return BodyID(len(w.bodies) - 1)
}

// Body returns the body for id.
func (w *World) Body(id BodyID) (*Body, error) {
	if id < 0 || int(id) >= len(w.bodies) {
		return nil, fmt.Errorf("physics: unknown body %d", id)
	}
	return w.bodies[id], nil
}

// Bodies returns the bodies in insertion order. The slice must not be modified.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// ApplyLinearImpulse queues a linear impulse, applied at the centre of mass on the next Step.
func (w *World) ApplyLinearImpulse(id BodyID, j mgl64.Vec3) error {
	b, err := w.Body(id)
	if err != nil {
		return err
	}
	b.impulse = b.impulse.Add(j)
	return nil
}

// ApplyAngularImpulse queues an angular (torque) impulse, applied on the next Step.
func (w *World) ApplyAngularImpulse(id BodyID, l mgl64.Vec3) error {
	b, err := w.Body(id)
	if err != nil {
		return err
	}
	b.angularImpulse = b.angularImpulse.Add(l)
	return nil
}

// aabb is an axis-aligned box in world space.
type aabb struct {
	min, max mgl64.Vec3
}

func bodyAABB(b *Body) aabb {
	c := b.Transform.Translation
	h := b.worldHalfExtents()
	return aabb{min: c.Sub(h), max: c.Add(h)}
}

// penetrationAxis returns the overlap amount and axis index (0=X, 1=Y, 2=Z) for the minimum penetration.
// If no overlap, returns (0, -1).
func penetrationAxis(a, b aabb) (depth float64, axis int) {
	axis = -1
	for i := 0; i < 3; i++ {
		overlap := min(a.max[i], b.max[i]) - max(a.min[i], b.min[i])
		if overlap <= 0 {
			return 0, -1
		}
		if axis < 0 || overlap < depth {
			depth = overlap
			axis = i
		}
	}
	return depth, axis
}

// Step advances the simulation. With a fixed Timestep, dt is ignored.
// Queued impulses are consumed once, before the first substep.
func (w *World) Step(dt float64) {
	if w.cfg.Timestep > 0 {
		dt = w.cfg.Timestep
	}
	if dt <= 0 {
		return
	}

	for _, b := range w.bodies {
		if !b.Static {
			b.Velocity = b.Velocity.Add(b.impulse.Mul(1 / b.Mass))
			b.AngularVelocity = b.AngularVelocity.Add(b.applyInverseInertia(b.angularImpulse))
		}
		b.impulse = mgl64.Vec3{}
		b.angularImpulse = mgl64.Vec3{}
	}

	h := dt / float64(w.cfg.Substeps)
	for i := 0; i < w.cfg.Substeps; i++ {
		w.integrate(h)
		w.resolve(h)
	}
}

func damp(v mgl64.Vec3, rate, h float64) mgl64.Vec3 {
	f := 1 - rate*h
	if f < 0 {
		f = 0
	}
	return v.Mul(f)
}

func (w *World) integrate(h float64) {
	for _, b := range w.bodies {
		if b.Static {
			continue
		}
		b.Velocity = damp(b.Velocity.Add(w.cfg.Gravity.Mul(h)), w.cfg.LinearDamping, h)
		b.AngularVelocity = damp(b.AngularVelocity, w.cfg.AngularDamping, h)
		b.Transform.Translation = b.Transform.Translation.Add(b.Velocity.Mul(h))

		q := b.Transform.Rotation
		spin := mgl64.Quat{W: 0, V: b.AngularVelocity}.Mul(q).Scale(0.5 * h)
		b.Transform.Rotation = q.Add(spin).Normalize()
	}
}

// resolve pushes overlapping pairs apart along the minimum penetration axis.
// Static bodies don't move.
func (w *World) resolve(h float64) {
	for i := 0; i < len(w.bodies); i++ {
		bi := w.bodies[i]
		boxI := bodyAABB(bi)
		for j := i + 1; j < len(w.bodies); j++ {
			bj := w.bodies[j]
			if bi.Static && bj.Static {
				continue
			}
			depth, axis := penetrationAxis(boxI, bodyAABB(bj))
			if axis < 0 {
				continue
			}
			// push i towards the negative side when it sits below/behind j
			sign := 1.0
			if bi.Transform.Translation[axis] < bj.Transform.Translation[axis] {
				sign = -1
			}
			var moveI, moveJ float64
			switch {
			case bi.Static:
				moveJ = -sign * depth
			case bj.Static:
				moveI = sign * depth
			default:
				total := bi.Mass + bj.Mass
				moveI = sign * depth * (bj.Mass / total)
				moveJ = -sign * depth * (bi.Mass / total)
			}
			w.contact(bi, axis, moveI, h)
			w.contact(bj, axis, moveJ, h)
			boxI = bodyAABB(bi) // update for next pair
		}
	}
}

// contact moves b by move along axis and removes the velocity that drove it in.
// Resting on something (pushed up) also applies floor friction.
func (w *World) contact(b *Body, axis int, move, h float64) {
	if b.Static || move == 0 {
		return
	}
	b.Transform.Translation[axis] += move
	if (move > 0 && b.Velocity[axis] < 0) || (move < 0 && b.Velocity[axis] > 0) {
		b.Velocity[axis] = 0
	}
	if axis == 1 && move > 0 {
		v := damp(b.Velocity, w.cfg.Friction, h)
		b.Velocity = mgl64.Vec3{v.X(), b.Velocity.Y(), v.Z()}
		b.AngularVelocity = damp(b.AngularVelocity, w.cfg.Friction, h)
	}
}
