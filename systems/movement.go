// Package systems contains the gameplay and render systems driven by the frame loop.
package systems

import (
	"github.com/plus3/skirmish/components"
	"github.com/plus3/skirmish/ecs"
)

// DefaultPlayerTag is the tag that marks the player entity.
const DefaultPlayerTag = "player"

// MovementSystem integrates velocity into position and kills entities that leave
// the map. The player is never culled.
type MovementSystem struct {
	ecs.BaseSystem

	// Bounds is the map size in pixels. A zero size disables culling.
	Bounds    components.Vec2
	PlayerTag string
}

func NewMovementSystem() *MovementSystem {
	s := &MovementSystem{PlayerTag: DefaultPlayerTag}
	ecs.RequireComponent[components.Transform](&s.BaseSystem)
	ecs.RequireComponent[components.RigidBody](&s.BaseSystem)
	return s
}

func (s *MovementSystem) Update(r *ecs.Registry, dt float64) {
	cull := s.Bounds.X > 0 && s.Bounds.Y > 0
	for _, e := range s.Entities() {
		tr := ecs.GetComponent[components.Transform](r, e)
		rb := ecs.GetComponent[components.RigidBody](r, e)

		tr.Position = tr.Position.Add(rb.Velocity.Scale(dt))

		if !cull || r.EntityHasTag(e, s.PlayerTag) {
			continue
		}
		p := tr.Position
		if p.X < 0 || p.X > s.Bounds.X || p.Y < 0 || p.Y > s.Bounds.Y {
			r.KillEntity(e)
		}
	}
}
