package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/skirmish/components"
	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/eventbus"
	"github.com/plus3/skirmish/events"
)

// ProjectileAsset is the texture id used for spawned projectiles.
const ProjectileAsset = "bullet-image"

const projectileSize = 4

// ProjectileEmitSystem fires projectiles from emitters. Emitters with a repeat
// frequency fire on a timer; the player's emitter fires when space is pressed.
type ProjectileEmitSystem struct {
	ecs.BaseSystem

	PlayerTag string
}

func NewProjectileEmitSystem() *ProjectileEmitSystem {
	s := &ProjectileEmitSystem{PlayerTag: DefaultPlayerTag}
	ecs.RequireComponent[components.Transform](&s.BaseSystem)
	ecs.RequireComponent[components.ProjectileEmitter](&s.BaseSystem)
	return s
}

func (s *ProjectileEmitSystem) SubscribeToEvents(bus *eventbus.Bus) {
	eventbus.Subscribe(bus, s.OnKeyPressed)
}

func (s *ProjectileEmitSystem) OnKeyPressed(ev *events.KeyPressedEvent) {
	if ev.Key != ebiten.KeySpace {
		return
	}
	r := ev.Registry
	for _, e := range s.Entities() {
		if !r.EntityHasTag(e, s.PlayerTag) {
			continue
		}
		emitter := ecs.GetComponent[components.ProjectileEmitter](r, e)

		var dir components.Vec2
		if rb, ok := ecs.LookupComponent[components.RigidBody](r, e); ok {
			dir = components.Vec2{X: sign(rb.Velocity.X), Y: sign(rb.Velocity.Y)}
		}
		if dir == (components.Vec2{}) {
			continue
		}
		velocity := components.Vec2{X: emitter.Velocity.X * dir.X, Y: emitter.Velocity.Y * dir.Y}
		spawnProjectile(r, e, emitter, velocity, ev.Ticks)
	}
}

func (s *ProjectileEmitSystem) Update(r *ecs.Registry, ticks uint64) {
	for _, e := range s.Entities() {
		if r.IsPendingKill(e) {
			continue
		}
		emitter := ecs.GetComponent[components.ProjectileEmitter](r, e)
		if emitter.RepeatFrequency == 0 || r.EntityHasTag(e, s.PlayerTag) {
			continue
		}
		if ticks < emitter.LastEmissionTime || ticks-emitter.LastEmissionTime <= emitter.RepeatFrequency {
			continue
		}
		spawnProjectile(r, e, emitter, emitter.Velocity, ticks)
		emitter.LastEmissionTime = ticks
	}
}

// spawnProjectile creates a projectile centred on the shooter's sprite.
func spawnProjectile(r *ecs.Registry, shooter ecs.Entity, emitter *components.ProjectileEmitter, velocity components.Vec2, ticks uint64) ecs.Entity {
	tr := ecs.GetComponent[components.Transform](r, shooter)
	pos := tr.Position
	if sprite, ok := ecs.LookupComponent[components.Sprite](r, shooter); ok {
		pos.X += tr.Scale.X * float64(sprite.Width) / 2
		pos.Y += tr.Scale.Y * float64(sprite.Height) / 2
	}

	p := r.CreateEntity()
	ecs.AddComponent(r, p, components.NewTransform(pos))
	ecs.AddComponent(r, p, components.RigidBody{Velocity: velocity})
	ecs.AddComponent(r, p, components.NewSprite(ProjectileAsset, projectileSize, projectileSize, 4))
	ecs.AddComponent(r, p, components.BoxCollider{Width: projectileSize, Height: projectileSize})
	ecs.AddComponent(r, p, components.Projectile{
		Friendly:         emitter.Friendly,
		HitPercentDamage: emitter.HitPercentDamage,
		Duration:         emitter.Duration,
		StartTime:        ticks,
	})
	_ = r.GroupEntity(p, "projectiles")
	return p
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// ProjectileLifecycleSystem destroys projectiles that outlived their duration.
type ProjectileLifecycleSystem struct {
	ecs.BaseSystem
}

func NewProjectileLifecycleSystem() *ProjectileLifecycleSystem {
	s := &ProjectileLifecycleSystem{}
	ecs.RequireComponent[components.Projectile](&s.BaseSystem)
	return s
}

func (s *ProjectileLifecycleSystem) Update(r *ecs.Registry, ticks uint64) {
	for _, e := range s.Entities() {
		p := ecs.GetComponent[components.Projectile](r, e)
		if ticks > p.StartTime && ticks-p.StartTime > p.Duration {
			r.KillEntity(e)
		}
	}
}
