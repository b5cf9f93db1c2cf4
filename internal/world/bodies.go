package world

import (
	"errors"
	"fmt"

	"drag-sandbox/internal/geom"
	"drag-sandbox/internal/physics"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// ErrNoBody is returned when an entity has no rigid body.
var ErrNoBody = errors.New("world: entity has no rigid body")

// bodies resolves entities to physics bodies for the drag controller.
type bodies struct {
	ecs     donburi.World
	physics *physics.World
}

func (b bodies) lookup(e donburi.Entity) (*physics.Body, physics.BodyID, error) {
	if !b.ecs.Valid(e) {
		return nil, 0, fmt.Errorf("entity %v: %w", e, ErrNoBody)
	}
	entry := b.ecs.Entry(e)
	if !entry.HasComponent(Body) {
		return nil, 0, fmt.Errorf("entity %v: %w", e, ErrNoBody)
	}
	id := Body.Get(entry).ID
	body, err := b.physics.Body(id)
	if err != nil {
		return nil, 0, err
	}
	return body, id, nil
}

func (b bodies) BodyTransform(e donburi.Entity) (geom.Transform, error) {
	body, _, err := b.lookup(e)
	if err != nil {
		return geom.Transform{}, err
	}
	return body.Transform, nil
}

func (b bodies) CenterOfMass(e donburi.Entity) (mgl64.Vec3, error) {
	body, _, err := b.lookup(e)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return body.CenterOfMass(), nil
}

func (b bodies) ApplyLinearImpulse(e donburi.Entity, j mgl64.Vec3) error {
	_, id, err := b.lookup(e)
	if err != nil {
		return err
	}
	return b.physics.ApplyLinearImpulse(id, j)
}

func (b bodies) ApplyAngularImpulse(e donburi.Entity, l mgl64.Vec3) error {
	_, id, err := b.lookup(e)
	if err != nil {
		return err
	}
	return b.physics.ApplyAngularImpulse(id, l)
}
