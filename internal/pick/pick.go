// Package pick is the picking backend: it turns the pointer into world rays,
// hit-tests boxes, and publishes drag events into the ECS world.
package pick

import (
	"math"

	"drag-sandbox/internal/geom"
	"drag-sandbox/internal/input"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Kind is the type of a drag event.
type Kind int

const (
	DragStart Kind = iota
	Drag
	DragEnd
)

func (k Kind) String() string {
	switch k {
	case DragStart:
		return "drag-start"
	case Drag:
		return "drag"
	case DragEnd:
		return "drag-end"
	}
	return "unknown"
}

// Event is a pointer drag event against one entity.
// Hit is only set on DragStart and may be nil when the backend has no depth for the hit.
// Distance is the cumulative pointer travel in pixels since the press.
type Event struct {
	Kind     Kind
	Button   input.Button
	Target   donburi.Entity
	Camera   donburi.Entity
	Hit      *mgl64.Vec3
	Distance mgl64.Vec2
}

// EventType carries drag events. A single type keeps start, drag and end in
// publish order when processed.
var EventType = events.NewEventType[Event]()

// Projection describes a perspective camera's viewport.
type Projection struct {
	FovY   float64 // vertical field of view, radians
	Width  float64 // viewport size in pixels
	Height float64
}

// ViewportRay returns the world ray through a viewport point (pixels, origin top-left).
// ok is false for an empty viewport or a degenerate field of view.
func ViewportRay(cam geom.Transform, proj Projection, point mgl64.Vec2) (geom.Ray, bool) {
	if proj.Width <= 0 || proj.Height <= 0 || proj.FovY <= 0 || proj.FovY >= math.Pi {
		return geom.Ray{}, false
	}
	ndcX := 2*point.X()/proj.Width - 1
	ndcY := 1 - 2*point.Y()/proj.Height
	tanHalf := math.Tan(proj.FovY / 2)
	aspect := proj.Width / proj.Height
	local := mgl64.Vec3{ndcX * tanHalf * aspect, ndcY * tanHalf, -1}.Normalize()
	return geom.Ray{Origin: cam.Translation, Direction: cam.Vector(local)}, true
}

// Box is an oriented box that can be hit.
type Box struct {
	Entity      donburi.Entity
	Transform   geom.Transform
	HalfExtents mgl64.Vec3
}

// RayBox returns the distance along r to the first point on b, using the slab
// test in the box's local frame. A ray starting inside the box hits at 0.
func RayBox(r geom.Ray, b Box) (float64, bool) {
	o := b.Transform.InversePoint(r.Origin)
	d := b.Transform.InverseVector(r.Direction)
	tMin, tMax := 0.0, math.Inf(1)
	for i := 0; i < 3; i++ {
		if math.Abs(d[i]) < 1e-12 {
			if o[i] < -b.HalfExtents[i] || o[i] > b.HalfExtents[i] {
				return 0, false
			}
			continue
		}
		t1 := (-b.HalfExtents[i] - o[i]) / d[i]
		t2 := (b.HalfExtents[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

// Nearest returns the closest box hit by r and the world hit point.
func Nearest(r geom.Ray, boxes []Box) (Box, mgl64.Vec3, bool) {
	var (
		best  Box
		bestD = math.Inf(1)
		found bool
	)
	for _, b := range boxes {
		if d, ok := RayBox(r, b); ok && d < bestD {
			best, bestD, found = b, d, true
		}
	}
	if !found {
		return Box{}, mgl64.Vec3{}, false
	}
	return best, r.At(bestD), true
}
