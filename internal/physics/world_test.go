package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// weightless has no gravity or damping so impulses can be checked exactly.
func weightless() Config {
	return Config{Timestep: 0.05, Substeps: 10}
}

func TestNewBodyDefaults(t *testing.T) {
	b := NewBody(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{}, 0, false)
	if b.Mass != 1 {
		t.Errorf("Mass = %v, want 1", b.Mass)
	}
	if b.HalfExtents != (mgl64.Vec3{0.5, 0.5, 0.5}) {
		t.Errorf("HalfExtents = %v, want 0.5 each", b.HalfExtents)
	}
	if b.CenterOfMass() != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("CenterOfMass = %v", b.CenterOfMass())
	}
}

func TestLinearImpulse(t *testing.T) {
	w := NewWorld(weightless())
	id := w.AddBody(NewBody(mgl64.Vec3{}, mgl64.Vec3{0.05, 0.05, 0.05}, 2, false))

	if err := w.ApplyLinearImpulse(id, mgl64.Vec3{1, 0, 0}); err != nil {
		t.Fatal(err)
	}
	if err := w.ApplyLinearImpulse(id, mgl64.Vec3{1, 0, 0}); err != nil {
		t.Fatal(err)
	}
	w.Step(0)

	b, _ := w.Body(id)
	if !approxEqual(b.Velocity.X(), 1, 1e-12) {
		t.Errorf("Velocity.X = %v, want 1 (impulse 2 / mass 2)", b.Velocity.X())
	}
	if !approxEqual(b.Transform.Translation.X(), 0.05, 1e-12) {
		t.Errorf("X = %v, want 0.05 after one fixed step", b.Transform.Translation.X())
	}

	// impulses are consumed, not reapplied
	w.Step(0)
	if !approxEqual(b.Velocity.X(), 1, 1e-12) {
		t.Errorf("Velocity.X = %v after second step, want 1", b.Velocity.X())
	}
}

func TestAngularImpulseRotates(t *testing.T) {
	w := NewWorld(weightless())
	id := w.AddBody(NewBody(mgl64.Vec3{}, mgl64.Vec3{0.05, 0.05, 0.05}, 1, false))

	if err := w.ApplyAngularImpulse(id, mgl64.Vec3{0, 0.001, 0}); err != nil {
		t.Fatal(err)
	}
	w.Step(0)

	b, _ := w.Body(id)
	// I = m/3 * (0.05^2 + 0.05^2)
	wantOmega := 0.001 / (2 * 0.0025 / 3)
	if !approxEqual(b.AngularVelocity.Y(), wantOmega, 1e-9) {
		t.Errorf("AngularVelocity.Y = %v, want %v", b.AngularVelocity.Y(), wantOmega)
	}
	right := b.Transform.Right()
	if right.Z() >= 0 {
		t.Errorf("Right = %v, want rotated towards -Z by a positive spin about +Y", right)
	}
	if b.Transform.Translation != (mgl64.Vec3{}) {
		t.Errorf("pure torque moved the body to %v", b.Transform.Translation)
	}
}

func TestStaticBodyIgnoresImpulses(t *testing.T) {
	w := NewWorld(DefaultConfig())
	id := w.AddBody(NewBody(mgl64.Vec3{0, -0.1, 0}, mgl64.Vec3{1, 0.1, 1}, 1, true))
	_ = w.ApplyLinearImpulse(id, mgl64.Vec3{5, 5, 5})
	w.Step(0)
	b, _ := w.Body(id)
	if b.Transform.Translation != (mgl64.Vec3{0, -0.1, 0}) {
		t.Errorf("static body moved to %v", b.Transform.Translation)
	}
}

func TestBoxRestsOnFloor(t *testing.T) {
	w := NewWorld(DefaultConfig())
	w.AddBody(NewBody(mgl64.Vec3{0, -0.1, 0}, mgl64.Vec3{1, 0.1, 1}, 1, true))
	id := w.AddBody(NewBody(mgl64.Vec3{0, 0.3, 0}, mgl64.Vec3{0.05, 0.05, 0.05}, 1, false))

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60)
	}
	b, _ := w.Body(id)
	y := b.Transform.Translation.Y()
	if y < 0.04 || y > 0.06 {
		t.Errorf("box Y = %v, want resting near 0.05", y)
	}
	if math.Abs(b.Velocity.Y()) > 0.1 {
		t.Errorf("Velocity.Y = %v, want near zero at rest", b.Velocity.Y())
	}
}

func TestUnknownBody(t *testing.T) {
	w := NewWorld(DefaultConfig())
	if err := w.ApplyLinearImpulse(3, mgl64.Vec3{1, 0, 0}); err == nil {
		t.Error("ApplyLinearImpulse on unknown body: want error")
	}
	if _, err := w.Body(-1); err == nil {
		t.Error("Body(-1): want error")
	}
}

func TestPenetrationAxis(t *testing.T) {
	a := aabb{min: mgl64.Vec3{-1, -0.2, -1}, max: mgl64.Vec3{1, 0, 1}}
	b := aabb{min: mgl64.Vec3{-0.05, -0.01, -0.05}, max: mgl64.Vec3{0.05, 0.09, 0.05}}
	depth, axis := penetrationAxis(a, b)
	if axis != 1 || !approxEqual(depth, 0.01, 1e-12) {
		t.Errorf("penetrationAxis = %v, %v; want 0.01, 1", depth, axis)
	}

	c := aabb{min: mgl64.Vec3{5, 5, 5}, max: mgl64.Vec3{6, 6, 6}}
	if _, axis := penetrationAxis(a, c); axis != -1 {
		t.Errorf("disjoint boxes: axis = %v, want -1", axis)
	}
}
