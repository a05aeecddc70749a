package ecs_test

import "github.com/plus3/skirmish/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

// Custom primitive types for testing non-struct components
type Score int32

type movementSystem struct {
	ecs.BaseSystem
}

func newMovementSystem() *movementSystem {
	s := &movementSystem{}
	ecs.RequireComponent[Position](&s.BaseSystem)
	ecs.RequireComponent[Velocity](&s.BaseSystem)
	return s
}

func (s *movementSystem) Update(r *ecs.Registry, dt float32) {
	for _, e := range s.Entities() {
		pos := ecs.GetComponent[Position](r, e)
		vel := ecs.GetComponent[Velocity](r, e)
		pos.X += vel.DX * dt
		pos.Y += vel.DY * dt
	}
}

type healthSystem struct {
	ecs.BaseSystem
}

func newHealthSystem() *healthSystem {
	s := &healthSystem{}
	ecs.RequireComponent[Health](&s.BaseSystem)
	return s
}

type nameSystem struct {
	ecs.BaseSystem
}

func newNameSystem() *nameSystem {
	s := &nameSystem{}
	ecs.RequireComponent[Name](&s.BaseSystem)
	ecs.RequireComponent[Position](&s.BaseSystem)
	return s
}
