package world

import (
	"drag-sandbox/internal/drag"
	"drag-sandbox/internal/geom"
	"drag-sandbox/internal/orbit"
	"drag-sandbox/internal/physics"
	"drag-sandbox/internal/pick"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// CameraData is a pan-orbit camera. Transform is refreshed every tick from Controller.
type CameraData struct {
	Controller *orbit.Controller
	Projection pick.Projection
	Transform  geom.Transform
}

// BodyData links an entity to its rigid body.
type BodyData struct {
	ID physics.BodyID
}

var (
	Camera = donburi.NewComponentType[CameraData]()
	Body   = donburi.NewComponentType[BodyData]()
	// Session is present on a body only while it is being dragged.
	Session   = donburi.NewComponentType[drag.Session]()
	Draggable = donburi.NewTag()
)

var (
	cameraQuery    = donburi.NewQuery(filter.Contains(Camera))
	draggableQuery = donburi.NewQuery(filter.Contains(Body, Draggable))
	sessionQuery   = donburi.NewQuery(filter.Contains(Body, Session))
)
