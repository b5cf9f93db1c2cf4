package pick

import (
	"drag-sandbox/internal/geom"
	"drag-sandbox/internal/input"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

var buttons = [...]input.Button{input.Left, input.Right, input.Middle}

// View is the camera the pointer is looking through.
type View struct {
	Camera     donburi.Entity
	Transform  geom.Transform
	Projection Projection
}

// Tracker follows one pressed pointer button at a time and turns it into drag
// events. A press over a box arms the tracker; the first move beyond DeadZone
// pixels publishes DragStart, later moves publish Drag, and the release
// publishes DragEnd. A press and release without movement is a click and
// publishes nothing.
type Tracker struct {
	DeadZone float64

	armed    bool
	started  bool
	button   input.Button
	target   donburi.Entity
	camera   donburi.Entity
	hit      *mgl64.Vec3
	press    mgl64.Vec2
	distance mgl64.Vec2
	prevHeld [len(buttons)]bool
}

// NewTracker returns a tracker with the given dead zone in pixels.
func NewTracker(deadZone float64) *Tracker {
	return &Tracker{DeadZone: deadZone}
}

// Dragging reports whether a drag has started and not yet ended.
func (t *Tracker) Dragging() bool {
	return t.started
}

// Update advances the tracker by one tick. pos is the pointer in viewport pixels
// and f carries the held buttons for the tick.
func (t *Tracker) Update(w donburi.World, view View, boxes []Box, pos mgl64.Vec2, f input.Frame) {
	defer func() {
		for i, b := range buttons {
			t.prevHeld[i] = f.Held(b)
		}
	}()

	if t.armed {
		if !f.Held(t.button) {
			if t.started {
				EventType.Publish(w, Event{Kind: DragEnd, Button: t.button, Target: t.target})
			}
			t.reset()
			return
		}
		dist := pos.Sub(t.press)
		if !t.started {
			if dist.Len() <= t.DeadZone {
				return
			}
			t.started = true
			EventType.Publish(w, Event{
				Kind:   DragStart,
				Button: t.button,
				Target: t.target,
				Camera: t.camera,
				Hit:    t.hit,
			})
		} else if dist == t.distance {
			return
		}
		t.distance = dist
		EventType.Publish(w, Event{Kind: Drag, Button: t.button, Target: t.target, Distance: dist})
		return
	}

	for i, b := range buttons {
		if !f.Held(b) || t.prevHeld[i] {
			continue
		}
		ray, ok := ViewportRay(view.Transform, view.Projection, pos)
		if !ok {
			return
		}
		box, hit, ok := Nearest(ray, boxes)
		if !ok {
			return
		}
		t.armed = true
		t.button = b
		t.target = box.Entity
		t.camera = view.Camera
		t.hit = &hit
		t.press = pos
		return
	}
}

// Cancel drops the tracked press. An ongoing drag publishes DragEnd.
func (t *Tracker) Cancel(w donburi.World) {
	if t.started {
		EventType.Publish(w, Event{Kind: DragEnd, Button: t.button, Target: t.target})
	}
	t.reset()
}

func (t *Tracker) reset() {
	t.armed = false
	t.started = false
	t.hit = nil
	t.distance = mgl64.Vec2{}
}
