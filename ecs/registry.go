package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Registry owns every entity, component pool, system and tag/group index. Structural
// changes requested during a frame are queued and applied by Update, so a system's
// entity list never changes while another system iterates it.
type Registry struct {
	log *zap.Logger

	nextEntity int
	capacity   int
	states     []entityState
	signatures []Signature
	pools      []iPool

	systems     []System
	systemIndex map[reflect.Type]int

	toAdd     *pendingSet
	toKill    *pendingSet
	toRefresh *pendingSet
	free      freeQueue

	tags   *tagIndex
	groups *groupIndex

	reconciles uint64
	version    uint64
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for lifecycle debug output.
func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// WithCapacity pre-sizes entity bookkeeping and new pools for n entities.
func WithCapacity(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.capacity = n
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		log:         zap.NewNop(),
		capacity:    64,
		systemIndex: make(map[reflect.Type]int),
		toAdd:       newPendingSet(),
		toKill:      newPendingSet(),
		toRefresh:   newPendingSet(),
		tags:        newTagIndex(),
		groups:      newGroupIndex(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.states = make([]entityState, 0, r.capacity)
	r.signatures = make([]Signature, 0, r.capacity)
	return r
}

// CreateEntity allocates an entity id, reusing the oldest freed id when one exists.
// The entity is visible to systems after the next Update, but components can be
// attached right away.
func (r *Registry) CreateEntity() Entity {
	e, ok := r.free.pop()
	if !ok {
		e = Entity(r.nextEntity)
		r.nextEntity++
		r.states = append(r.states, stateDestroyed)
		r.signatures = append(r.signatures, Signature{})
	}

	r.states[e] = statePendingAdd
	r.signatures[e].Reset()
	r.toAdd.push(e)

	r.log.Debug("entity created", zap.Int("entity", int(e)), zap.Bool("recycled", ok))
	return e
}

// KillEntity queues e for destruction at the next Update. Killing an entity twice
// before that is a no-op, as is killing an id that is not alive.
func (r *Registry) KillEntity(e Entity) {
	if !r.IsAlive(e) {
		r.log.Debug("kill ignored for dead entity", zap.Int("entity", int(e)))
		return
	}
	if r.toKill.push(e) {
		r.log.Debug("entity killed", zap.Int("entity", int(e)))
	}
}

// IsAlive reports whether e has been created and not yet destroyed. Entities queued
// for creation or destruction are alive.
func (r *Registry) IsAlive(e Entity) bool {
	return e >= 0 && int(e) < len(r.states) && r.states[e] != stateDestroyed
}

// IsActive reports whether e has been reconciled and is visible to systems.
func (r *Registry) IsActive(e Entity) bool {
	return r.IsAlive(e) && r.states[e] == stateActive
}

// IsPendingKill reports whether e is queued for destruction.
func (r *Registry) IsPendingKill(e Entity) bool {
	return r.toKill.has(e)
}

// Update reconciles queued structural changes: new entities join every system whose
// signature they satisfy, entities whose components changed have their membership
// re-evaluated, and killed entities leave all systems and give their id back.
func (r *Registry) Update() {
	added := r.toAdd.drain()
	for _, e := range added {
		if r.states[e] != statePendingAdd {
			continue
		}
		r.states[e] = stateActive
		r.addEntityToSystems(e)
	}

	refreshed := r.toRefresh.drain()
	for _, e := range refreshed {
		if r.states[e] == stateActive {
			r.refreshEntityInSystems(e)
		}
	}

	killed := r.toKill.drain()
	for _, e := range killed {
		if r.states[e] == stateDestroyed {
			continue
		}
		r.removeEntityFromSystems(e)
		r.signatures[e].Reset()
		r.tags.remove(e)
		r.groups.remove(e)
		r.states[e] = stateDestroyed
		r.free.push(e)
	}

	r.reconciles++
	if len(added) > 0 || len(killed) > 0 || len(refreshed) > 0 {
		r.version++
	}
	if len(added) > 0 || len(killed) > 0 {
		r.log.Debug("registry reconciled",
			zap.Uint64("pass", r.reconciles),
			zap.Int("added", len(added)),
			zap.Int("killed", len(killed)),
			zap.Int("refreshed", len(refreshed)),
		)
	}
}

// Clear destroys every entity immediately and empties all pools, pending queues and
// indices. Registered systems stay registered with empty entity lists.
func (r *Registry) Clear() {
	for id, st := range r.states {
		if st != stateDestroyed {
			r.removeEntityFromSystems(Entity(id))
		}
	}
	for _, p := range r.pools {
		if p != nil {
			p.Clear()
		}
	}
	r.pools = nil
	r.states = r.states[:0]
	r.signatures = r.signatures[:0]
	r.nextEntity = 0
	r.free = freeQueue{}
	r.toAdd.drain()
	r.toKill.drain()
	r.toRefresh.drain()
	r.tags = newTagIndex()
	r.groups = newGroupIndex()
	r.version++

	r.log.Debug("registry cleared")
}

// Version changes whenever a reconcile or Clear alters which entities are active or
// what they carry. Tooling uses it to know when cached listings are stale.
func (r *Registry) Version() uint64 {
	return r.version
}

// EntitySignature returns a copy of the components attached to e.
func (r *Registry) EntitySignature(e Entity) Signature {
	if !r.IsAlive(e) {
		return Signature{}
	}
	return r.signatures[e].Clone()
}

// LiveEntities returns every alive entity in id order.
func (r *Registry) LiveEntities() []Entity {
	out := make([]Entity, 0, len(r.states))
	for id, st := range r.states {
		if st != stateDestroyed {
			out = append(out, Entity(id))
		}
	}
	return out
}

func (r *Registry) addEntityToSystems(e Entity) {
	sig := r.signatures[e]
	for _, s := range r.systems {
		if sig.Contains(*s.Signature()) {
			s.AddEntity(e)
		}
	}
}

func (r *Registry) refreshEntityInSystems(e Entity) {
	sig := r.signatures[e]
	for _, s := range r.systems {
		interested := sig.Contains(*s.Signature())
		member := s.HasEntity(e)
		switch {
		case interested && !member:
			s.AddEntity(e)
		case !interested && member:
			s.RemoveEntity(e)
		}
	}
}

func (r *Registry) removeEntityFromSystems(e Entity) {
	for _, s := range r.systems {
		s.RemoveEntity(e)
	}
}

func (r *Registry) mustBeAlive(e Entity) {
	if !r.IsAlive(e) {
		panic(eris.Wrapf(ErrEntityNotAlive, "%s", e))
	}
}

// signatureChanged schedules a membership refresh for entities that are already
// visible to systems.
func (r *Registry) signatureChanged(e Entity) {
	if r.states[e] == stateActive {
		r.toRefresh.push(e)
	}
}
