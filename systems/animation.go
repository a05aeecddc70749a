package systems

import (
	"github.com/plus3/skirmish/components"
	"github.com/plus3/skirmish/ecs"
)

// AnimationSystem advances sprite frames horizontally across the texture.
type AnimationSystem struct {
	ecs.BaseSystem
}

func NewAnimationSystem() *AnimationSystem {
	s := &AnimationSystem{}
	ecs.RequireComponent[components.Sprite](&s.BaseSystem)
	ecs.RequireComponent[components.Animation](&s.BaseSystem)
	return s
}

func (s *AnimationSystem) Update(r *ecs.Registry, ticks uint64) {
	for _, e := range s.Entities() {
		sprite := ecs.GetComponent[components.Sprite](r, e)
		anim := ecs.GetComponent[components.Animation](r, e)
		if anim.NumFrames <= 0 {
			continue
		}

		var elapsed uint64
		if ticks > anim.StartTime {
			elapsed = ticks - anim.StartTime
		}
		frame := int(elapsed * uint64(anim.FrameSpeedRate) / 1000)
		if anim.Loop {
			frame %= anim.NumFrames
		} else {
			frame = min(frame, anim.NumFrames-1)
		}

		anim.CurrentFrame = frame
		sprite.SrcRect.X = frame * sprite.Width
	}
}
