package scene

import (
	"drag-sandbox/internal/geom"
	"drag-sandbox/internal/input"
	"drag-sandbox/internal/primitives"
	"drag-sandbox/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	gridExtent     = 1.0
	gridMinorStep  = 0.1
	gridMajorEvery = 5
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
	gizmoRadius    = 0.005
)

var (
	// Reused every frame to avoid per-frame color allocations.
	boxColor    = rl.NewColor(230, 26, 26, 255)
	floorColor  = rl.NewColor(230, 230, 230, 255)
	edgeColor   = rl.NewColor(40, 40, 40, 255)
	dragColor   = rl.NewColor(40, 80, 230, 255)
	targetColor = rl.NewColor(40, 180, 60, 255)
)

// Scene connects raylib to the sandbox. Update polls the pointer into the sandbox's
// input accumulator and ticks it; Draw renders between BeginMode3D and EndMode3D.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool
	sandbox     *world.Sandbox
	prims       *primitives.Registry
	keysBlocked bool
	lastW       int
	lastH       int
}

// New returns a scene drawing sb through a perspective camera with the given vertical field of view in degrees.
// Grid is visible by default.
func New(sb *world.Sandbox, fovY float64) *Scene {
	s := &Scene{sandbox: sb, prims: primitives.NewRegistry(), GridVisible: true}
	s.Camera.Fovy = float32(fovY)
	s.Camera.Projection = rl.CameraPerspective
	s.syncCamera()
	return s
}

// SetGridVisible sets whether the editor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// SetKeysBlocked disables keyboard bindings, e.g. while the console has focus.
func (s *Scene) SetKeysBlocked(blocked bool) {
	s.keysBlocked = blocked
}

// Update runs once per frame: pointer and wheel into the accumulator, key bindings, then one sandbox tick.
// F eases the camera onto the dragged (or draggable) body.
func (s *Scene) Update(dt float64) {
	if w, h := rl.GetScreenWidth(), rl.GetScreenHeight(); w != s.lastW || h != s.lastH {
		s.lastW, s.lastH = w, h
		s.sandbox.SetViewport(float64(w), float64(h))
	}
	if !rl.IsWindowFocused() {
		s.sandbox.CancelDrag()
	}

	acc := s.sandbox.Input
	d := rl.GetMouseDelta()
	acc.AddMotion(float64(d.X), float64(d.Y))
	acc.AddScroll(float64(rl.GetMouseWheelMove()))
	acc.SetButton(input.Left, rl.IsMouseButtonDown(rl.MouseButtonLeft))
	acc.SetButton(input.Right, rl.IsMouseButtonDown(rl.MouseButtonRight))
	acc.SetButton(input.Middle, rl.IsMouseButtonDown(rl.MouseButtonMiddle))

	if !s.keysBlocked && rl.IsKeyPressed(rl.KeyF) {
		s.sandbox.FocusDragged()
	}

	p := rl.GetMousePosition()
	s.sandbox.Tick(dt, mgl64.Vec2{float64(p.X), float64(p.Y)})
	s.syncCamera()
}

// syncCamera copies the orbit camera's transform into the raylib camera.
func (s *Scene) syncCamera() {
	view, ok := s.sandbox.View()
	if !ok {
		return
	}
	focus, _ := s.sandbox.Focus()
	s.Camera.Position = vec3(view.Transform.Translation)
	s.Camera.Target = vec3(focus)
	s.Camera.Up = vec3(view.Transform.Up())
}

// Draw renders the 3D scene: grid, bodies with their edges, and the drag gizmos.
func (s *Scene) Draw() {
	pos := s.Camera.Position
	s.prims.SetView([3]float32{pos.X, pos.Y, pos.Z}, [3]float32{0.5, 1, 0.3})
	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawEditorGrid()
	}
	for _, b := range s.sandbox.Physics.Bodies() {
		h := b.HalfExtents
		m := b.Transform.Mat4().Mul4(mgl64.Scale3D(2*h.X(), 2*h.Y(), 2*h.Z()))
		c := boxColor
		if b.Static {
			c = floorColor
		}
		s.prims.Draw(primitives.Cube, matrix(m), c)
		drawBoxEdges(b.Transform, h)
	}
	if st := s.sandbox.Status(); st.Dragging {
		s.prims.DrawSphere(vec3(st.Impulse.DragPoint), gizmoRadius, dragColor)
		s.prims.DrawSphere(vec3(st.Impulse.Target), gizmoRadius, targetColor)
		rl.DrawLine3D(vec3(st.Impulse.DragPoint), vec3(st.Impulse.Target), targetColor)
	}
	rl.EndMode3D()
}

// drawBoxEdges outlines an oriented box with its 12 edges.
func drawBoxEdges(tr geom.Transform, h mgl64.Vec3) {
	var corners [8]rl.Vector3
	for i := range corners {
		local := mgl64.Vec3{h.X(), h.Y(), h.Z()}
		if i&1 != 0 {
			local[0] = -local[0]
		}
		if i&2 != 0 {
			local[1] = -local[1]
		}
		if i&4 != 0 {
			local[2] = -local[2]
		}
		corners[i] = vec3(tr.Point(local))
	}
	for i := range corners {
		for _, bit := range []int{1, 2, 4} {
			if j := i | bit; j != i {
				rl.DrawLine3D(corners[i], corners[j], edgeColor)
			}
		}
	}
}

// drawEditorGrid draws a grid on the XZ plane (Y=0) with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	const lines = int(gridExtent / gridMinorStep)
	var start, end rl.Vector3
	for i := -lines; i <= lines; i++ {
		c := major
		if i%gridMajorEvery != 0 {
			c = minor
		}
		v := float32(float64(i) * gridMinorStep)
		start.X, start.Y, start.Z = v, 0.001, -gridExtent
		end.X, end.Y, end.Z = v, 0.001, gridExtent
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = -gridExtent, 0.001, v
		end.X, end.Y, end.Z = gridExtent, 0.001, v
		rl.DrawLine3D(start, end, c)
	}

	// Axis lines from the origin (X=red, Y=green, Z=blue)
	origin := rl.NewVector3(0, 0.002, 0)
	rl.DrawLine3D(origin, rl.NewVector3(1, 0.002, 0), axisX)
	rl.DrawLine3D(origin, rl.NewVector3(0, 1, 0), axisY)
	rl.DrawLine3D(origin, rl.NewVector3(0, 0.002, 1), axisZ)
}

func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

// matrix converts a column-major mgl64 matrix to raylib's layout (also column-major, M12..M14 = translation).
func matrix(m mgl64.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: float32(m[0]), M1: float32(m[1]), M2: float32(m[2]), M3: float32(m[3]),
		M4: float32(m[4]), M5: float32(m[5]), M6: float32(m[6]), M7: float32(m[7]),
		M8: float32(m[8]), M9: float32(m[9]), M10: float32(m[10]), M11: float32(m[11]),
		M12: float32(m[12]), M13: float32(m[13]), M14: float32(m[14]), M15: float32(m[15]),
	}
}
