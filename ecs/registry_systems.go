package ecs

import (
	"reflect"
	"slices"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// AddSystem registers s, keyed by its concrete type, and returns it. Entities that
// are already active and match the system's signature join it immediately. Adding a
// second system of the same type panics with ErrSystemExists, and instantiating S
// with an interface type panics with ErrInterfaceSystemType.
func AddSystem[S System](r *Registry, s S) S {
	if st := reflect.TypeFor[S](); st.Kind() == reflect.Interface {
		panic(eris.Wrapf(ErrInterfaceSystemType, "%s", st))
	}
	t := reflect.TypeOf(s)
	if _, ok := r.systemIndex[t]; ok {
		panic(eris.Wrapf(ErrSystemExists, "%s", t))
	}

	r.systemIndex[t] = len(r.systems)
	r.systems = append(r.systems, s)

	sig := *s.Signature()
	for _, e := range slices.Clone(s.Entities()) {
		if !r.IsActive(e) || !r.signatures[e].Contains(sig) {
			s.RemoveEntity(e)
		}
	}
	for id, st := range r.states {
		if st == stateActive && r.signatures[id].Contains(sig) {
			s.AddEntity(Entity(id))
		}
	}

	r.log.Debug("system added", zap.Stringer("system", t), zap.Stringer("signature", sig))
	return s
}

// RemoveSystem unregisters the system of type S, if any, and empties its interest set.
func RemoveSystem[S System](r *Registry) {
	t := reflect.TypeFor[S]()
	idx, ok := r.systemIndex[t]
	if !ok {
		return
	}
	s := r.systems[idx]
	for _, e := range slices.Clone(s.Entities()) {
		s.RemoveEntity(e)
	}
	r.systems = slices.Delete(r.systems, idx, idx+1)
	delete(r.systemIndex, t)
	for i := idx; i < len(r.systems); i++ {
		r.systemIndex[reflect.TypeOf(r.systems[i])] = i
	}
	r.log.Debug("system removed", zap.Stringer("system", t))
}

// HasSystem reports whether a system of type S is registered.
func HasSystem[S System](r *Registry) bool {
	_, ok := r.systemIndex[reflect.TypeFor[S]()]
	return ok
}

// LookupSystem returns the registered system of type S, or false.
func LookupSystem[S System](r *Registry) (S, bool) {
	var zero S
	idx, ok := r.systemIndex[reflect.TypeFor[S]()]
	if !ok {
		return zero, false
	}
	s, ok := r.systems[idx].(S)
	if !ok {
		return zero, false
	}
	return s, true
}

// GetSystem returns the registered system of type S. Asking for a system that was
// never added is a configuration error and panics with ErrSystemNotRegistered.
func GetSystem[S System](r *Registry) S {
	s, ok := LookupSystem[S](r)
	if !ok {
		panic(eris.Wrapf(ErrSystemNotRegistered, "%s", reflect.TypeFor[S]()))
	}
	return s
}

// Systems returns the registered systems in registration order.
func (r *Registry) Systems() []System {
	return slices.Clone(r.systems)
}
