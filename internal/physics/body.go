package physics

import (
	"drag-sandbox/internal/geom"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyID identifies a body within its World.
type BodyID int

// Body is a 3D rigid box with position, orientation, velocities, and half extents.
// Static bodies do not move and are not affected by gravity or impulses.
type Body struct {
	Transform       geom.Transform
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
	HalfExtents     mgl64.Vec3
	Mass            float64
	Static          bool

	impulse        mgl64.Vec3
	angularImpulse mgl64.Vec3
}

// NewBody returns an unrotated box at position. Velocity is zero.
// mass <= 0 defaults to 1. Zero half extents default to 0.5 (a unit cube).
func NewBody(position, halfExtents mgl64.Vec3, mass float64, static bool) *Body {
	if mass <= 0 {
		mass = 1
	}
	for i := 0; i < 3; i++ {
		if halfExtents[i] <= 0 {
			halfExtents[i] = 0.5
		}
	}
	return &Body{
		Transform:   geom.FromTranslation(position),
		HalfExtents: halfExtents,
		Mass:        mass,
		Static:      static,
	}
}

// CenterOfMass is the world-space centre of mass. Boxes have uniform density.
func (b *Body) CenterOfMass() mgl64.Vec3 {
	return b.Transform.Translation
}

// inertia returns the principal moments of inertia of a solid box in its local frame.
func (b *Body) inertia() mgl64.Vec3 {
	hx, hy, hz := b.HalfExtents[0], b.HalfExtents[1], b.HalfExtents[2]
	k := b.Mass / 3
	return mgl64.Vec3{k * (hy*hy + hz*hz), k * (hx*hx + hz*hz), k * (hx*hx + hy*hy)}
}

// applyInverseInertia maps a world angular impulse to an angular velocity change.
func (b *Body) applyInverseInertia(l mgl64.Vec3) mgl64.Vec3 {
	local := b.Transform.InverseVector(l)
	in := b.inertia()
	for i := 0; i < 3; i++ {
		local[i] /= in[i]
	}
	return b.Transform.Vector(local)
}

// worldHalfExtents is the half size of the body's world AABB.
func (b *Body) worldHalfExtents() mgl64.Vec3 {
	r := b.Transform.Rotation.Mat4().Mat3()
	var out mgl64.Vec3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := r.At(i, j)
			if v < 0 {
				v = -v
			}
			out[i] += v * b.HalfExtents[j]
		}
	}
	return out
}
