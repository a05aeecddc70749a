package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// System is the membership surface the registry uses to keep a system's interest set
// current. Concrete systems embed BaseSystem and add their own Update method with
// whatever parameters they need.
type System interface {
	Signature() *Signature
	AddEntity(e Entity)
	RemoveEntity(e Entity)
	HasEntity(e Entity) bool
	Entities() []Entity
}

// BaseSystem implements System. Embed it and call RequireComponent from the
// constructor to declare the components the system needs.
type BaseSystem struct {
	signature Signature
	entities  []Entity
	members   *intmap.Map[Entity, struct{}]
}

// RequireComponent adds component type T to the system's required signature.
func RequireComponent[T any](s *BaseSystem) {
	s.signature.Set(ComponentTypeID[T]())
}

// Signature returns the components this system requires.
func (s *BaseSystem) Signature() *Signature {
	return &s.signature
}

// AddEntity appends e to the interest set; adding a member twice is a no-op.
func (s *BaseSystem) AddEntity(e Entity) {
	if s.members == nil {
		s.members = intmap.New[Entity, struct{}](64)
	}
	if _, ok := s.members.Get(e); ok {
		return
	}
	s.members.Put(e, struct{}{})
	s.entities = append(s.entities, e)
}

// RemoveEntity drops e from the interest set, preserving the order of the rest.
func (s *BaseSystem) RemoveEntity(e Entity) {
	if s.members == nil {
		return
	}
	if _, ok := s.members.Get(e); !ok {
		return
	}
	s.members.Del(e)
	if i := slices.Index(s.entities, e); i >= 0 {
		s.entities = slices.Delete(s.entities, i, i+1)
	}
}

// HasEntity reports whether e is currently in the interest set.
func (s *BaseSystem) HasEntity(e Entity) bool {
	if s.members == nil {
		return false
	}
	_, ok := s.members.Get(e)
	return ok
}

// Entities returns the interest set in insertion order. The slice is owned by the
// system and is only mutated during registry reconciliation.
func (s *BaseSystem) Entities() []Entity {
	return s.entities
}
