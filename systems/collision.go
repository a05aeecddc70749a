package systems

import (
	"github.com/plus3/skirmish/components"
	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/eventbus"
	"github.com/plus3/skirmish/events"
	"go.uber.org/zap"
)

// CollisionSystem tests every pair of colliders and emits a CollisionEvent for each
// overlapping pair. Entities already queued for destruction are skipped.
type CollisionSystem struct {
	ecs.BaseSystem
}

func NewCollisionSystem() *CollisionSystem {
	s := &CollisionSystem{}
	ecs.RequireComponent[components.Transform](&s.BaseSystem)
	ecs.RequireComponent[components.BoxCollider](&s.BaseSystem)
	return s
}

func (s *CollisionSystem) Update(r *ecs.Registry, bus *eventbus.Bus) {
	ents := s.Entities()
	for i, a := range ents {
		if r.IsPendingKill(a) {
			continue
		}
		boxA := colliderBox(r, a)
		for _, b := range ents[i+1:] {
			if r.IsPendingKill(b) {
				continue
			}
			if boxA.overlaps(colliderBox(r, b)) {
				eventbus.Emit(bus, events.CollisionEvent{Registry: r, A: a, B: b})
				if r.IsPendingKill(a) {
					break
				}
			}
		}
	}
}

type aabb struct {
	x, y, w, h float64
}

func (a aabb) overlaps(b aabb) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x && a.y < b.y+b.h && a.y+a.h > b.y
}

func colliderBox(r *ecs.Registry, e ecs.Entity) aabb {
	tr := ecs.GetComponent[components.Transform](r, e)
	c := ecs.GetComponent[components.BoxCollider](r, e)
	return aabb{
		x: tr.Position.X + c.Offset.X,
		y: tr.Position.Y + c.Offset.Y,
		w: float64(c.Width) * tr.Scale.X,
		h: float64(c.Height) * tr.Scale.Y,
	}
}

// DamageSystem resolves collisions. A projectile damages a target with health on
// the opposing side and is destroyed; projectiles ignore each other and their own
// side. Any other pair of colliders destroys both entities.
type DamageSystem struct {
	ecs.BaseSystem

	PlayerTag string
	log       *zap.Logger
}

func NewDamageSystem(log *zap.Logger) *DamageSystem {
	if log == nil {
		log = zap.NewNop()
	}
	s := &DamageSystem{PlayerTag: DefaultPlayerTag, log: log}
	ecs.RequireComponent[components.BoxCollider](&s.BaseSystem)
	return s
}

func (s *DamageSystem) SubscribeToEvents(bus *eventbus.Bus) {
	eventbus.Subscribe(bus, s.OnCollision)
}

func (s *DamageSystem) OnCollision(ev *events.CollisionEvent) {
	r := ev.Registry
	s.log.Debug("collision",
		zap.Int("a", ev.A.ID()),
		zap.Int("b", ev.B.ID()),
	)

	aProj := ecs.HasComponent[components.Projectile](r, ev.A)
	bProj := ecs.HasComponent[components.Projectile](r, ev.B)
	switch {
	case aProj && bProj:
	case aProj:
		s.projectileHit(r, ev.A, ev.B)
	case bProj:
		s.projectileHit(r, ev.B, ev.A)
	default:
		r.KillEntity(ev.A)
		r.KillEntity(ev.B)
	}
}

func (s *DamageSystem) projectileHit(r *ecs.Registry, projectile, target ecs.Entity) {
	health, ok := ecs.LookupComponent[components.Health](r, target)
	if !ok {
		return
	}
	p := ecs.GetComponent[components.Projectile](r, projectile)
	if p.Friendly == r.EntityHasTag(target, s.PlayerTag) {
		return
	}

	health.Percentage -= p.HitPercentDamage
	r.KillEntity(projectile)
	if health.Percentage <= 0 {
		r.KillEntity(target)
	}
	s.log.Debug("projectile hit",
		zap.Int("target", target.ID()),
		zap.Int("health", health.Percentage),
	)
}
