package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// AddComponent stores value as e's component of type T and sets the matching
// signature bit. The entity does not need to be active yet. It returns a pointer to
// the stored value.
func AddComponent[T any](r *Registry, e Entity, value T) *T {
	r.mustBeAlive(e)

	id := ComponentTypeID[T]()
	pool := poolFor[T](r, id)
	pool.Resize(int(e) + 1)
	ptr := pool.Set(int(e), value)

	r.signatures[e].Set(id)
	r.signatureChanged(e)
	return ptr
}

// RemoveComponent clears e's signature bit for T. The pool slot keeps its stale
// value but can no longer be read through the registry.
func RemoveComponent[T any](r *Registry, e Entity) {
	r.mustBeAlive(e)

	id := ComponentTypeID[T]()
	if !r.signatures[e].Test(id) {
		return
	}
	r.signatures[e].Clear(id)
	r.signatureChanged(e)
}

// HasComponent reports whether e carries a component of type T.
func HasComponent[T any](r *Registry, e Entity) bool {
	if !r.IsAlive(e) {
		return false
	}
	return r.signatures[e].Test(ComponentTypeID[T]())
}

// LookupComponent returns e's component of type T, or false when e does not carry it.
func LookupComponent[T any](r *Registry, e Entity) (*T, bool) {
	if !HasComponent[T](r, e) {
		return nil, false
	}
	return poolFor[T](r, ComponentTypeID[T]()).Get(int(e)), true
}

// GetComponent returns e's component of type T. It panics with ErrMissingComponent
// if e does not carry one; use LookupComponent when absence is expected.
func GetComponent[T any](r *Registry, e Entity) *T {
	c, ok := LookupComponent[T](r, e)
	if !ok {
		panic(eris.Wrapf(ErrMissingComponent, "%s on %s", reflect.TypeFor[T](), e))
	}
	return c
}

// ComponentValue is a type-erased view of one component attached to an entity.
type ComponentValue struct {
	ID    ComponentID
	Type  reflect.Type
	Value any // pointer to the stored component
}

// ComponentValues returns pointers to every component attached to e, ordered by
// component id. It is meant for tooling such as inspectors.
func (r *Registry) ComponentValues(e Entity) []ComponentValue {
	if !r.IsAlive(e) {
		return nil
	}
	ids := r.signatures[e].IDs()
	out := make([]ComponentValue, 0, len(ids))
	for _, id := range ids {
		if int(id) >= len(r.pools) || r.pools[id] == nil {
			continue
		}
		p := r.pools[id]
		out = append(out, ComponentValue{
			ID:    id,
			Type:  p.Type(),
			Value: p.getAny(int(e)),
		})
	}
	return out
}

func poolFor[T any](r *Registry, id ComponentID) *Pool[T] {
	if int(id) >= len(r.pools) {
		r.pools = append(r.pools, make([]iPool, int(id)+1-len(r.pools))...)
	}
	if r.pools[id] == nil {
		r.pools[id] = NewPool[T](r.capacity)
	}
	pool, ok := r.pools[id].(*Pool[T])
	if !ok {
		panic(eris.Errorf("ecs: pool for component %d holds %s, not %s", id, r.pools[id].Type(), reflect.TypeFor[T]()))
	}
	return pool
}
