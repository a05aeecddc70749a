package game

import (
	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/eventbus"
)

// UpdateFrame carries the per-frame inputs every step receives.
type UpdateFrame struct {
	DeltaTime float64
	Ticks     uint64
	Registry  *ecs.Registry
	Bus       *eventbus.Bus
}

func newUpdateFrame(dt float64, ticks uint64, registry *ecs.Registry, bus *eventbus.Bus) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Ticks:     ticks,
		Registry:  registry,
		Bus:       bus,
	}
}
