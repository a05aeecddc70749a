package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/skirmish/components"
	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/eventbus"
	"github.com/plus3/skirmish/events"
)

// KeyboardControlSystem steers keyboard controlled entities with the arrow keys.
// Each direction selects a row of the sprite sheet: up, right, down, left.
type KeyboardControlSystem struct {
	ecs.BaseSystem
}

func NewKeyboardControlSystem() *KeyboardControlSystem {
	s := &KeyboardControlSystem{}
	ecs.RequireComponent[components.KeyboardControlled](&s.BaseSystem)
	ecs.RequireComponent[components.Sprite](&s.BaseSystem)
	ecs.RequireComponent[components.RigidBody](&s.BaseSystem)
	return s
}

func (s *KeyboardControlSystem) SubscribeToEvents(bus *eventbus.Bus) {
	eventbus.Subscribe(bus, s.OnKeyPressed)
}

func (s *KeyboardControlSystem) OnKeyPressed(ev *events.KeyPressedEvent) {
	r := ev.Registry
	for _, e := range s.Entities() {
		kc := ecs.GetComponent[components.KeyboardControlled](r, e)
		sprite := ecs.GetComponent[components.Sprite](r, e)
		rb := ecs.GetComponent[components.RigidBody](r, e)

		var row int
		switch ev.Key {
		case ebiten.KeyArrowUp:
			rb.Velocity, row = kc.Up, 0
		case ebiten.KeyArrowRight:
			rb.Velocity, row = kc.Right, 1
		case ebiten.KeyArrowDown:
			rb.Velocity, row = kc.Down, 2
		case ebiten.KeyArrowLeft:
			rb.Velocity, row = kc.Left, 3
		default:
			return
		}
		sprite.SrcRect.Y = row * sprite.Height
	}
}
