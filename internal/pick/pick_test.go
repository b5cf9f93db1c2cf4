package pick

import (
	"math"
	"testing"

	"drag-sandbox/internal/geom"
	"drag-sandbox/internal/input"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func vecAlmostEqual(a, b mgl64.Vec3, eps float64) bool {
	return approxEqual(a.X(), b.X(), eps) && approxEqual(a.Y(), b.Y(), eps) && approxEqual(a.Z(), b.Z(), eps)
}

var testTag = donburi.NewTag()

var testProjection = Projection{FovY: 1, Width: 800, Height: 600}

func TestViewportRayCentre(t *testing.T) {
	cam := geom.Transform{
		Translation: mgl64.Vec3{1, 2, 3},
		Rotation:    mgl64.QuatRotate(0.4, geom.WorldUp),
	}
	r, ok := ViewportRay(cam, testProjection, mgl64.Vec2{400, 300})
	if !ok {
		t.Fatal("ViewportRay: ok = false")
	}
	if r.Origin != cam.Translation {
		t.Errorf("Origin = %v, want %v", r.Origin, cam.Translation)
	}
	if !vecAlmostEqual(r.Direction, cam.Forward(), 1e-12) {
		t.Errorf("Direction = %v, want %v", r.Direction, cam.Forward())
	}
}

func TestViewportRayCorners(t *testing.T) {
	cam := geom.Identity()
	tl, _ := ViewportRay(cam, testProjection, mgl64.Vec2{0, 0})
	br, _ := ViewportRay(cam, testProjection, mgl64.Vec2{800, 600})
	if tl.Direction.X() >= 0 || tl.Direction.Y() <= 0 {
		t.Errorf("top-left direction = %v, want up and left", tl.Direction)
	}
	if br.Direction.X() <= 0 || br.Direction.Y() >= 0 {
		t.Errorf("bottom-right direction = %v, want down and right", br.Direction)
	}
	// vertical half-angle equals half the field of view
	if !approxEqual(math.Atan2(tl.Direction.Y(), -tl.Direction.Z()), 0.5, 1e-12) {
		t.Errorf("top edge angle = %v, want 0.5", math.Atan2(tl.Direction.Y(), -tl.Direction.Z()))
	}
}

func TestViewportRayDegenerate(t *testing.T) {
	for _, p := range []Projection{{}, {FovY: 1, Width: 0, Height: 10}, {FovY: 0, Width: 10, Height: 10}} {
		if _, ok := ViewportRay(geom.Identity(), p, mgl64.Vec2{}); ok {
			t.Errorf("ViewportRay(%+v): ok = true, want false", p)
		}
	}
}

func TestRayBox(t *testing.T) {
	box := Box{Transform: geom.FromTranslation(mgl64.Vec3{0, 0.05, 0}), HalfExtents: mgl64.Vec3{0.05, 0.05, 0.05}}
	rotated := Box{
		Transform:   geom.Transform{Translation: mgl64.Vec3{}, Rotation: mgl64.QuatRotate(math.Pi/4, geom.WorldUp)},
		HalfExtents: mgl64.Vec3{0.05, 0.05, 0.05},
	}
	tests := []struct {
		name   string
		ray    geom.Ray
		box    Box
		wantOK bool
		wantD  float64
	}{
		{"from above", geom.Ray{Origin: mgl64.Vec3{0, 1, 0}, Direction: mgl64.Vec3{0, -1, 0}}, box, true, 0.9},
		{"miss", geom.Ray{Origin: mgl64.Vec3{1, 1, 0}, Direction: mgl64.Vec3{0, -1, 0}}, box, false, 0},
		{"behind", geom.Ray{Origin: mgl64.Vec3{0, 1, 0}, Direction: mgl64.Vec3{0, 1, 0}}, box, false, 0},
		{"inside", geom.Ray{Origin: mgl64.Vec3{0, 0.05, 0}, Direction: mgl64.Vec3{1, 0, 0}}, box, true, 0},
		{"rotated corner", geom.Ray{Origin: mgl64.Vec3{1, 0, 0}, Direction: mgl64.Vec3{-1, 0, 0}}, rotated, true, 1 - 0.05*math.Sqrt2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := RayBox(tt.ray, tt.box)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !approxEqual(d, tt.wantD, 1e-9) {
				t.Errorf("d = %v, want %v", d, tt.wantD)
			}
		})
	}
}

func TestNearestPicksClosest(t *testing.T) {
	near := Box{Entity: 1, Transform: geom.FromTranslation(mgl64.Vec3{0, 0, 0.5}), HalfExtents: mgl64.Vec3{0.1, 0.1, 0.1}}
	far := Box{Entity: 2, Transform: geom.FromTranslation(mgl64.Vec3{0, 0, -0.5}), HalfExtents: mgl64.Vec3{0.1, 0.1, 0.1}}
	r := geom.Ray{Origin: mgl64.Vec3{0, 0, 2}, Direction: mgl64.Vec3{0, 0, -1}}

	box, hit, ok := Nearest(r, []Box{far, near})
	if !ok || box.Entity != near.Entity {
		t.Fatalf("Nearest = %v, %v; want near box", box.Entity, ok)
	}
	if !vecAlmostEqual(hit, mgl64.Vec3{0, 0, 0.6}, 1e-12) {
		t.Errorf("hit = %v, want [0 0 0.6]", hit)
	}
}

type trackerFixture struct {
	world  donburi.World
	view   View
	boxes  []Box
	events []Event
}

func newTrackerFixture(t *testing.T) *trackerFixture {
	t.Helper()
	f := &trackerFixture{world: donburi.NewWorld()}
	cam := f.world.Create(testTag)
	body := f.world.Create(testTag)
	f.view = View{Camera: cam, Transform: geom.FromTranslation(mgl64.Vec3{0, 0, 1}), Projection: testProjection}
	f.boxes = []Box{{Entity: body, Transform: geom.Identity(), HalfExtents: mgl64.Vec3{0.05, 0.05, 0.05}}}
	EventType.Subscribe(f.world, func(w donburi.World, e Event) {
		f.events = append(f.events, e)
	})
	return f
}

func (f *trackerFixture) tick(tr *Tracker, x, y float64, held ...input.Button) {
	tr.Update(f.world, f.view, f.boxes, mgl64.Vec2{x, y}, input.NewFrame(mgl64.Vec2{}, 0, held...))
	EventType.ProcessEvents(f.world)
}

func TestTrackerDragSequence(t *testing.T) {
	f := newTrackerFixture(t)
	tr := NewTracker(0)

	f.tick(tr, 400, 300, input.Left)
	if len(f.events) != 0 {
		t.Fatalf("press published %d events, want 0", len(f.events))
	}
	f.tick(tr, 410, 300, input.Left)
	f.tick(tr, 410, 300, input.Left)
	f.tick(tr, 420, 310, input.Left)
	if !tr.Dragging() {
		t.Error("Dragging = false mid-drag")
	}
	f.tick(tr, 420, 310)

	kinds := []Kind{DragStart, Drag, Drag, DragEnd}
	if len(f.events) != len(kinds) {
		t.Fatalf("got %d events %+v, want %d", len(f.events), f.events, len(kinds))
	}
	for i, k := range kinds {
		if f.events[i].Kind != k {
			t.Errorf("event %d kind = %v, want %v", i, f.events[i].Kind, k)
		}
		if f.events[i].Target != f.boxes[0].Entity {
			t.Errorf("event %d target = %v, want %v", i, f.events[i].Target, f.boxes[0].Entity)
		}
	}

	start := f.events[0]
	if start.Camera != f.view.Camera || start.Button != input.Left {
		t.Errorf("start = %+v", start)
	}
	if start.Hit == nil || !vecAlmostEqual(*start.Hit, mgl64.Vec3{0, 0, 0.05}, 1e-9) {
		t.Errorf("start.Hit = %v, want [0 0 0.05]", start.Hit)
	}
	if f.events[1].Distance != (mgl64.Vec2{10, 0}) {
		t.Errorf("first drag distance = %v, want [10 0]", f.events[1].Distance)
	}
	if f.events[2].Distance != (mgl64.Vec2{20, 10}) {
		t.Errorf("second drag distance = %v, want cumulative [20 10]", f.events[2].Distance)
	}
	if tr.Dragging() {
		t.Error("Dragging = true after release")
	}
}

func TestTrackerClickPublishesNothing(t *testing.T) {
	f := newTrackerFixture(t)
	tr := NewTracker(0)
	f.tick(tr, 400, 300, input.Left)
	f.tick(tr, 400, 300)
	if len(f.events) != 0 {
		t.Errorf("click published %+v", f.events)
	}
}

func TestTrackerMissPublishesNothing(t *testing.T) {
	f := newTrackerFixture(t)
	tr := NewTracker(0)
	f.tick(tr, 10, 10, input.Left)
	f.tick(tr, 400, 300, input.Left)
	f.tick(tr, 420, 300, input.Left)
	if len(f.events) != 0 {
		t.Errorf("press off target published %+v", f.events)
	}
}

func TestTrackerDeadZone(t *testing.T) {
	f := newTrackerFixture(t)
	tr := NewTracker(4)
	f.tick(tr, 400, 300, input.Left)
	f.tick(tr, 403, 300, input.Left)
	if len(f.events) != 0 {
		t.Fatalf("move inside dead zone published %+v", f.events)
	}
	f.tick(tr, 405, 300, input.Left)
	if len(f.events) != 2 || f.events[0].Kind != DragStart {
		t.Fatalf("events = %+v, want start and drag", f.events)
	}
	if f.events[1].Distance != (mgl64.Vec2{5, 0}) {
		t.Errorf("distance = %v, want measured from the press", f.events[1].Distance)
	}
}

func TestTrackerSecondaryButton(t *testing.T) {
	f := newTrackerFixture(t)
	tr := NewTracker(0)
	f.tick(tr, 400, 300, input.Right)
	f.tick(tr, 430, 300, input.Right)
	if len(f.events) != 2 || f.events[0].Button != input.Right {
		t.Fatalf("events = %+v, want right-button drag start", f.events)
	}
}

func TestTrackerCancel(t *testing.T) {
	f := newTrackerFixture(t)
	tr := NewTracker(0)
	f.tick(tr, 400, 300, input.Left)
	f.tick(tr, 410, 300, input.Left)
	tr.Cancel(f.world)
	EventType.ProcessEvents(f.world)
	if last := f.events[len(f.events)-1]; last.Kind != DragEnd {
		t.Errorf("last event = %v, want drag-end", last.Kind)
	}
	// still held, but the press was dropped
	f.tick(tr, 450, 300, input.Left)
	if last := f.events[len(f.events)-1]; last.Kind != DragEnd {
		t.Errorf("drag resumed after Cancel: %v", last.Kind)
	}
}
