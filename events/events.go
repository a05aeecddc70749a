// Package events defines the events exchanged between systems over the event bus.
package events

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/skirmish/ecs"
)

// CollisionEvent reports that the colliders of A and B overlapped this frame.
type CollisionEvent struct {
	Registry *ecs.Registry
	A, B     ecs.Entity
}

// KeyPressedEvent reports a key that went down this frame.
type KeyPressedEvent struct {
	Registry *ecs.Registry
	Key      ebiten.Key
	Ticks    uint64
}
