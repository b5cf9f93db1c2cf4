// Package world runs the sandbox tick over a donburi ECS world: one pan-orbit
// camera, rigid bodies, and at most one drag session at a time.
package world

import (
	"errors"

	"drag-sandbox/internal/drag"
	"drag-sandbox/internal/geom"
	"drag-sandbox/internal/input"
	"drag-sandbox/internal/logger"
	"drag-sandbox/internal/orbit"
	"drag-sandbox/internal/physics"
	"drag-sandbox/internal/pick"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// Options configures a Sandbox.
type Options struct {
	Orbit        orbit.Config
	Drag         drag.Config
	Physics      physics.Config
	Projection   pick.Projection
	DeadZone     float64 // pixels of travel before a press becomes a drag
	FocusSeconds float64 // duration of the focus-on-body animation
}

// DefaultOptions returns the reference tuning for an 800x600 viewport.
func DefaultOptions() Options {
	return Options{
		Orbit:        orbit.DefaultConfig(),
		Drag:         drag.DefaultConfig(),
		Physics:      physics.DefaultConfig(),
		Projection:   pick.Projection{FovY: mgl64.DegToRad(45), Width: 800, Height: 600},
		FocusSeconds: 0.4,
	}
}

// Status describes the last tick's drag output.
type Status struct {
	Dragging bool
	Body     donburi.Entity
	Impulse  drag.Impulse
}

// Sandbox owns the ECS world, the physics world and the per-tick input.
type Sandbox struct {
	ECS     donburi.World
	Physics *physics.World
	Input   *input.Accumulator

	opts    Options
	log     *logger.Logger
	bodies  bodies
	picker  *pick.Tracker
	drag    *drag.Controller
	pointer mgl64.Vec2
	status  Status
}

// New returns an empty sandbox. Add a camera and bodies before ticking.
func New(opts Options, log *logger.Logger) *Sandbox {
	ecs := donburi.NewWorld()
	phys := physics.NewWorld(opts.Physics)
	s := &Sandbox{
		ECS:     ecs,
		Physics: phys,
		Input:   input.NewAccumulator(),
		opts:    opts,
		log:     log,
		bodies:  bodies{ecs: ecs, physics: phys},
		picker:  pick.NewTracker(opts.DeadZone),
		drag:    drag.NewController(opts.Drag),
	}
	pick.EventType.Subscribe(ecs, s.onPick)
	return s
}

// AddCamera adds a pan-orbit camera at eye looking at focus.
func (s *Sandbox) AddCamera(eye, focus mgl64.Vec3) donburi.Entity {
	e := s.ECS.Create(Camera)
	c := orbit.New(s.opts.Orbit, eye, focus)
	Camera.SetValue(s.ECS.Entry(e), CameraData{
		Controller: c,
		Projection: s.opts.Projection,
		Transform:  c.Transform(),
	})
	return e
}

// AddBody adds a rigid body. Draggable bodies can be picked.
func (s *Sandbox) AddBody(b *physics.Body, draggable bool) donburi.Entity {
	var e donburi.Entity
	if draggable {
		e = s.ECS.Create(Body, Draggable)
	} else {
		e = s.ECS.Create(Body)
	}
	Body.SetValue(s.ECS.Entry(e), BodyData{ID: s.Physics.AddBody(b)})
	return e
}

// SetViewport updates the projection of every camera, e.g. after a window resize.
func (s *Sandbox) SetViewport(width, height float64) {
	cameraQuery.Each(s.ECS, func(entry *donburi.Entry) {
		Camera.Get(entry).Projection.Width = width
		Camera.Get(entry).Projection.Height = height
	})
}

// View returns the active camera's view. ok is false when there is no camera.
func (s *Sandbox) View() (pick.View, bool) {
	entry, ok := cameraQuery.First(s.ECS)
	if !ok {
		return pick.View{}, false
	}
	c := Camera.Get(entry)
	return pick.View{Camera: entry.Entity(), Transform: c.Transform, Projection: c.Projection}, true
}

// Focus returns the active camera's focus point.
func (s *Sandbox) Focus() (mgl64.Vec3, bool) {
	entry, ok := cameraQuery.First(s.ECS)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return Camera.Get(entry).Controller.State.Focus, true
}

// Status returns what the drag controller did on the last tick.
func (s *Sandbox) Status() Status {
	return s.status
}

// Tick runs one frame in fixed order: consume input, update the camera, pick,
// run drag lifecycle events, apply drag impulses, step physics.
// pointer is the cursor position in viewport pixels.
func (s *Sandbox) Tick(dt float64, pointer mgl64.Vec2) {
	frame := s.Input.Consume()
	s.pointer = pointer
	s.status = Status{}

	camEntry, ok := cameraQuery.First(s.ECS)
	if ok {
		cam := Camera.Get(camEntry)
		cam.Transform = cam.Controller.Update(frame, dt)
		view := pick.View{Camera: camEntry.Entity(), Transform: cam.Transform, Projection: cam.Projection}
		s.picker.Update(s.ECS, view, s.pickBoxes(), pointer, frame)
	}
	pick.EventType.ProcessEvents(s.ECS)

	s.applyDrag()
	s.Physics.Step(dt)
}

func (s *Sandbox) pickBoxes() []pick.Box {
	var boxes []pick.Box
	draggableQuery.Each(s.ECS, func(entry *donburi.Entry) {
		b, err := s.Physics.Body(Body.Get(entry).ID)
		if err != nil {
			return
		}
		boxes = append(boxes, pick.Box{Entity: entry.Entity(), Transform: b.Transform, HalfExtents: b.HalfExtents})
	})
	return boxes
}

// onPick drives the drag session lifecycle: Idle -> Dragging on a primary
// button drag-start, distance updates while dragging, back to Idle on drag-end.
func (s *Sandbox) onPick(w donburi.World, ev pick.Event) {
	if !w.Valid(ev.Target) {
		return
	}
	entry := w.Entry(ev.Target)
	if !entry.HasComponent(Draggable) {
		return
	}

	switch ev.Kind {
	case pick.DragStart:
		tr, err := s.bodies.BodyTransform(ev.Target)
		if err != nil {
			s.log.Logf("drag start on %v: %v", ev.Target, err)
			return
		}
		sess, err := drag.Begin(ev, tr)
		if errors.Is(err, drag.ErrNotPrimary) {
			return
		}
		if err != nil {
			s.log.Logf("drag start on %v rejected: %v", ev.Target, err)
			return
		}
		if entry.HasComponent(Session) {
			Session.SetValue(entry, sess)
		} else {
			donburi.Add(entry, Session, &sess)
		}
		s.log.Logf("drag start on %v at %.3f", ev.Target, sess.Origin)
	case pick.Drag:
		if entry.HasComponent(Session) {
			Session.Get(entry).Drag(ev)
		}
	case pick.DragEnd:
		if entry.HasComponent(Session) {
			entry.RemoveComponent(Session)
			s.log.Logf("drag end on %v", ev.Target)
		}
	}
}

// applyDrag pushes the dragged body, if any. Only one session is served per tick.
func (s *Sandbox) applyDrag() {
	entry, ok := sessionQuery.First(s.ECS)
	if !ok {
		return
	}
	sess := *Session.Get(entry)
	if !s.ECS.Valid(sess.Camera) {
		return
	}
	camEntry := s.ECS.Entry(sess.Camera)
	if !camEntry.HasComponent(Camera) {
		return
	}
	cam := Camera.Get(camEntry)

	var cursor *geom.Ray
	if r, ok := pick.ViewportRay(cam.Transform, cam.Projection, s.pointer); ok {
		cursor = &r
	}
	imp, err := s.drag.Apply(s.bodies, entry.Entity(), sess, cam.Transform, cursor)
	if err != nil {
		s.log.Logf("drag on %v: %v", entry.Entity(), err)
		return
	}
	s.status = Status{Dragging: true, Body: entry.Entity(), Impulse: imp}
}

// FocusDragged eases the camera focus onto the dragged body, or the first
// draggable body when nothing is being dragged.
func (s *Sandbox) FocusDragged() {
	camEntry, ok := cameraQuery.First(s.ECS)
	if !ok {
		return
	}
	entry, ok := sessionQuery.First(s.ECS)
	if !ok {
		if entry, ok = draggableQuery.First(s.ECS); !ok {
			return
		}
	}
	p, err := s.bodies.CenterOfMass(entry.Entity())
	if err != nil {
		return
	}
	Camera.Get(camEntry).Controller.FocusOn(p, s.opts.FocusSeconds)
}

// CancelDrag ends any drag in progress, e.g. when the window loses focus.
func (s *Sandbox) CancelDrag() {
	s.picker.Cancel(s.ECS)
	pick.EventType.ProcessEvents(s.ECS)
}

// DragConfig returns the drag controller tuning.
func (s *Sandbox) DragConfig() drag.Config {
	return s.drag.Config()
}

// SetDragConfig replaces the drag controller tuning. A drag in progress keeps its session.
func (s *Sandbox) SetDragConfig(cfg drag.Config) {
	s.opts.Drag = cfg
	s.drag = drag.NewController(cfg)
}

// ResetBody puts a body back at rest at position with no rotation, ending any drag on it.
func (s *Sandbox) ResetBody(e donburi.Entity, position mgl64.Vec3) error {
	b, _, err := s.bodies.lookup(e)
	if err != nil {
		return err
	}
	if entry := s.ECS.Entry(e); entry.HasComponent(Session) {
		s.CancelDrag()
		if entry.HasComponent(Session) {
			entry.RemoveComponent(Session)
		}
	}
	b.Transform = geom.FromTranslation(position)
	b.Velocity = mgl64.Vec3{}
	b.AngularVelocity = mgl64.Vec3{}
	s.log.Logf("reset %v to %.3f", e, position)
	return nil
}
