package world

import (
	"drag-sandbox/internal/physics"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// Scene entities created by Populate.
type Scene struct {
	Camera donburi.Entity
	Floor  donburi.Entity
	Box    donburi.Entity
}

// Populate builds the reference scene: a 2x2 floor slab with its top at y=0,
// a 0.1 unit box of mass 1 resting on it, and a camera at (0.5, 0.5, 0.5)
// looking at (0, 0.1, 0).
func Populate(s *Sandbox) Scene {
	return Scene{
		Camera: s.AddCamera(mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0, 0.1, 0}),
		Floor:  s.AddBody(physics.NewBody(mgl64.Vec3{0, -0.1, 0}, mgl64.Vec3{1, 0.1, 1}, 1, true), false),
		Box:    s.AddBody(physics.NewBody(mgl64.Vec3{0, 0.05, 0}, mgl64.Vec3{0.05, 0.05, 0.05}, 1, false), true),
	}
}
