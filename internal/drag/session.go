// Package drag turns a pointer drag on a rigid body into per-tick impulses.
//
// A Session is captured when a drag starts and lives until it ends. Each tick
// a Controller derives a target on the ground plane from the session's
// cumulative screen distance and pushes the grabbed point towards it.
package drag

import (
	"errors"

	"drag-sandbox/internal/geom"
	"drag-sandbox/internal/input"
	"drag-sandbox/internal/pick"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

var (
	// ErrNoHitPosition means the picking backend could not resolve where the
	// body was hit. The drag is not started.
	ErrNoHitPosition = errors.New("drag: picking backend reported no hit position")
	// ErrNotPrimary means the drag was made with a button other than the primary one.
	ErrNotPrimary = errors.New("drag: not the primary button")
)

// Session is the live state of one body being dragged.
type Session struct {
	// Camera whose ray started the drag.
	Camera donburi.Entity
	// Origin is the world hit point at drag start.
	Origin mgl64.Vec3
	// Offset is Origin in the body's local frame at drag start.
	Offset mgl64.Vec3
	// Distance is the latest cumulative screen distance, in pixels.
	Distance mgl64.Vec2
}

// Begin starts a session from a drag-start event on a body with the given world transform.
func Begin(ev pick.Event, body geom.Transform) (Session, error) {
	if ev.Button != input.Left {
		return Session{}, ErrNotPrimary
	}
	if ev.Hit == nil {
		return Session{}, ErrNoHitPosition
	}
	return Session{
		Camera: ev.Camera,
		Origin: *ev.Hit,
		Offset: body.InversePoint(*ev.Hit),
	}, nil
}

// Drag records the cumulative distance of a drag event. It overwrites; the
// last event delivered in a tick wins.
func (s *Session) Drag(ev pick.Event) {
	s.Distance = ev.Distance
}

// DragPoint is where the originally grabbed point is now, following the body.
func (s Session) DragPoint(body geom.Transform) mgl64.Vec3 {
	return body.Point(s.Offset)
}
