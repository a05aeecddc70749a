package main

import (
	"math/rand"

	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/eventbus"
)

type position struct {
	X, Y float64
}

type velocity struct {
	DX, DY float64
}

type lifetime struct {
	Remaining float64
}

type vitality struct {
	Current, Max float64
}

type expiredEvent struct {
	Registry *ecs.Registry
	Entity   ecs.Entity
}

type moveSystem struct {
	ecs.BaseSystem
}

func newMoveSystem() *moveSystem {
	s := &moveSystem{}
	ecs.RequireComponent[position](&s.BaseSystem)
	ecs.RequireComponent[velocity](&s.BaseSystem)
	return s
}

func (s *moveSystem) Update(r *ecs.Registry, dt float64) {
	for _, e := range s.Entities() {
		p := ecs.GetComponent[position](r, e)
		v := ecs.GetComponent[velocity](r, e)
		p.X += v.DX * dt
		p.Y += v.DY * dt
	}
}

type lifetimeSystem struct {
	ecs.BaseSystem
}

func newLifetimeSystem() *lifetimeSystem {
	s := &lifetimeSystem{}
	ecs.RequireComponent[lifetime](&s.BaseSystem)
	return s
}

func (s *lifetimeSystem) Update(r *ecs.Registry, bus *eventbus.Bus, dt float64) {
	for _, e := range s.Entities() {
		l := ecs.GetComponent[lifetime](r, e)
		l.Remaining -= dt
		if l.Remaining <= 0 && !r.IsPendingKill(e) {
			eventbus.Emit(bus, expiredEvent{Registry: r, Entity: e})
		}
	}
}

type regenSystem struct {
	ecs.BaseSystem
}

func newRegenSystem() *regenSystem {
	s := &regenSystem{}
	ecs.RequireComponent[vitality](&s.BaseSystem)
	return s
}

func (s *regenSystem) Update(r *ecs.Registry, dt float64) {
	for _, e := range s.Entities() {
		h := ecs.GetComponent[vitality](r, e)
		h.Current = min(h.Max, h.Current+dt)
	}
}

// reaper kills expired entities.
type reaper struct {
	killed int64
}

func (rp *reaper) SubscribeToEvents(bus *eventbus.Bus) {
	eventbus.Subscribe(bus, rp.onExpired)
}

func (rp *reaper) onExpired(ev *expiredEvent) {
	ev.Registry.KillEntity(ev.Entity)
	rp.killed++
}

// churner keeps the population near target and toggles velocity on a share of the
// movers so membership refreshes are part of every frame.
type churner struct {
	rng     *rand.Rand
	target  int
	toggle  float64
	spawned int64
	toggled int64
}

func (c *churner) Update(r *ecs.Registry) {
	live := r.CollectStats().LiveEntities
	for i := live; i < c.target; i++ {
		spawnRandomEntity(r, c.rng)
		c.spawned++
	}

	for _, e := range r.LiveEntities() {
		if c.rng.Float64() >= c.toggle || !ecs.HasComponent[position](r, e) {
			continue
		}
		if ecs.HasComponent[velocity](r, e) {
			ecs.RemoveComponent[velocity](r, e)
		} else {
			ecs.AddComponent(r, e, velocity{DX: c.rng.Float64(), DY: c.rng.Float64()})
		}
		c.toggled++
	}
}

func spawnRandomEntity(r *ecs.Registry, rng *rand.Rand) ecs.Entity {
	e := r.CreateEntity()
	ecs.AddComponent(r, e, position{X: rng.Float64() * 1000, Y: rng.Float64() * 1000})
	if rng.Intn(2) == 0 {
		ecs.AddComponent(r, e, velocity{DX: rng.Float64()*10 - 5, DY: rng.Float64()*10 - 5})
	}
	if rng.Intn(3) == 0 {
		ecs.AddComponent(r, e, vitality{Current: 1, Max: 10})
	}
	ecs.AddComponent(r, e, lifetime{Remaining: 0.5 + rng.Float64()*2})
	return e
}
