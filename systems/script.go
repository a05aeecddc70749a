package systems

import (
	"github.com/plus3/skirmish/components"
	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/scripting"
	"go.uber.org/zap"
)

// ScriptSystem runs each entity's Lua update function once per frame. A failing
// script is logged and does not stop the others.
type ScriptSystem struct {
	ecs.BaseSystem

	engine *scripting.Engine
	log    *zap.Logger
}

func NewScriptSystem(engine *scripting.Engine, log *zap.Logger) *ScriptSystem {
	if log == nil {
		log = zap.NewNop()
	}
	s := &ScriptSystem{engine: engine, log: log}
	ecs.RequireComponent[components.Script](&s.BaseSystem)
	return s
}

func (s *ScriptSystem) Update(r *ecs.Registry, dt float64, ticks uint64) {
	for _, e := range s.Entities() {
		script := ecs.GetComponent[components.Script](r, e)
		if script.Update == nil {
			continue
		}
		if err := s.engine.Call(script.Update, e, dt, ticks); err != nil {
			s.log.Error("lua script error", zap.Int("entity", e.ID()), zap.Error(err))
		}
	}
}
