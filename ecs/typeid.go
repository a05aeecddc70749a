package ecs

import (
	"reflect"
	"sync"

	"github.com/rotisserie/eris"
)

// ComponentID is the process-wide numeric identifier of a component type.
type ComponentID int

// DefaultMaxComponentTypes is the component type cap used unless SetMaxComponentTypes is called.
const DefaultMaxComponentTypes = 256

type componentTypes struct {
	mu    sync.Mutex
	ids   map[reflect.Type]ComponentID
	types []reflect.Type
	limit int
}

var componentTypeSpace = &componentTypes{
	ids:   make(map[reflect.Type]ComponentID),
	limit: DefaultMaxComponentTypes,
}

// ComponentTypeID returns the identifier of component type T, allocating the next
// sequential id the first time T is seen. Ids are never reclaimed.
func ComponentTypeID[T any]() ComponentID {
	return componentTypeSpace.idOf(reflect.TypeFor[T]())
}

// ComponentTypeOf returns the reflect.Type registered for id, or nil if id was never allocated.
func ComponentTypeOf(id ComponentID) reflect.Type {
	s := componentTypeSpace
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < 0 || int(id) >= len(s.types) {
		return nil
	}
	return s.types[id]
}

// ComponentTypeCount returns how many component types have been assigned an id.
func ComponentTypeCount() int {
	s := componentTypeSpace
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.types)
}

// MaxComponentTypes returns the current component type cap.
func MaxComponentTypes() int {
	s := componentTypeSpace
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limit
}

// SetMaxComponentTypes changes the component type cap. It panics if limit is below
// the number of types already registered.
func SetMaxComponentTypes(limit int) {
	s := componentTypeSpace
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit < len(s.types) {
		panic(eris.Wrapf(ErrTooManyComponentTypes, "limit %d is below the %d types already registered", limit, len(s.types)))
	}
	s.limit = limit
}

func (s *componentTypes) idOf(t reflect.Type) ComponentID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.ids[t]; ok {
		return id
	}
	if len(s.types) >= s.limit {
		panic(eris.Wrapf(ErrTooManyComponentTypes, "registering %s would exceed the limit of %d", t, s.limit))
	}

	id := ComponentID(len(s.types))
	s.ids[t] = id
	s.types = append(s.types, t)
	return id
}
