// Package scripting embeds a Lua VM for level files and per-entity update scripts.
package scripting

import (
	"github.com/plus3/skirmish/components"
	"github.com/plus3/skirmish/ecs"
	"github.com/rotisserie/eris"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM. Single-goroutine access only (game loop).
type Engine struct {
	vm       *lua.LState
	log      *zap.Logger
	registry *ecs.Registry
	ticks    uint64
}

// NewEngine creates a Lua VM with the standard libraries opened.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

// State exposes the VM to loaders that walk Lua tables.
func (e *Engine) State() *lua.LState {
	return e.vm
}

func (e *Engine) DoFile(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		return eris.Wrapf(err, "run lua file %s", path)
	}
	e.log.Debug("loaded lua script", zap.String("file", path))
	return nil
}

func (e *Engine) DoString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return eris.Wrap(err, "run lua chunk")
	}
	return nil
}

// Global returns the named global, or lua.LNil.
func (e *Engine) Global(name string) lua.LValue {
	return e.vm.GetGlobal(name)
}

// Bind exposes entity functions operating on r to scripts. Entities cross into Lua
// as plain numbers.
func (e *Engine) Bind(r *ecs.Registry) {
	e.registry = r
	for name, fn := range map[string]lua.LGFunction{
		"get_position":            e.getPosition,
		"set_position":            e.setPosition,
		"get_velocity":            e.getVelocity,
		"set_velocity":            e.setVelocity,
		"get_rotation":            e.getRotation,
		"set_rotation":            e.setRotation,
		"set_projectile_velocity": e.setProjectileVelocity,
		"get_ticks":               e.getTicks,
		"has_tag":                 e.hasTag,
		"belongs_to_group":        e.belongsToGroup,
		"kill":                    e.kill,
	} {
		e.vm.SetGlobal(name, e.vm.NewFunction(fn))
	}
}

// Call runs fn(entity, dt, ticks) in protected mode.
func (e *Engine) Call(fn *lua.LFunction, entity ecs.Entity, dt float64, ticks uint64) error {
	e.ticks = ticks
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(entity), lua.LNumber(dt), lua.LNumber(ticks)); err != nil {
		return eris.Wrapf(err, "script for %s", entity)
	}
	return nil
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

func (e *Engine) checkEntity(L *lua.LState, n int) ecs.Entity {
	if e.registry == nil {
		L.RaiseError("scripting engine is not bound to a registry")
	}
	ent := ecs.Entity(L.CheckInt(n))
	if !e.registry.IsAlive(ent) {
		L.RaiseError("%s is not alive", ent)
	}
	return ent
}

func checkComponent[T any](L *lua.LState, r *ecs.Registry, ent ecs.Entity, what string) *T {
	c, ok := ecs.LookupComponent[T](r, ent)
	if !ok {
		L.RaiseError("%s has no %s", ent, what)
	}
	return c
}

func (e *Engine) getPosition(L *lua.LState) int {
	ent := e.checkEntity(L, 1)
	tr := checkComponent[components.Transform](L, e.registry, ent, "transform")
	L.Push(lua.LNumber(tr.Position.X))
	L.Push(lua.LNumber(tr.Position.Y))
	return 2
}

func (e *Engine) setPosition(L *lua.LState) int {
	ent := e.checkEntity(L, 1)
	tr := checkComponent[components.Transform](L, e.registry, ent, "transform")
	tr.Position = components.Vec2{X: float64(L.CheckNumber(2)), Y: float64(L.CheckNumber(3))}
	return 0
}

func (e *Engine) getVelocity(L *lua.LState) int {
	ent := e.checkEntity(L, 1)
	rb := checkComponent[components.RigidBody](L, e.registry, ent, "rigid body")
	L.Push(lua.LNumber(rb.Velocity.X))
	L.Push(lua.LNumber(rb.Velocity.Y))
	return 2
}

func (e *Engine) setVelocity(L *lua.LState) int {
	ent := e.checkEntity(L, 1)
	rb := checkComponent[components.RigidBody](L, e.registry, ent, "rigid body")
	rb.Velocity = components.Vec2{X: float64(L.CheckNumber(2)), Y: float64(L.CheckNumber(3))}
	return 0
}

func (e *Engine) getRotation(L *lua.LState) int {
	ent := e.checkEntity(L, 1)
	tr := checkComponent[components.Transform](L, e.registry, ent, "transform")
	L.Push(lua.LNumber(tr.Rotation))
	return 1
}

func (e *Engine) setRotation(L *lua.LState) int {
	ent := e.checkEntity(L, 1)
	tr := checkComponent[components.Transform](L, e.registry, ent, "transform")
	tr.Rotation = float64(L.CheckNumber(2))
	return 0
}

func (e *Engine) setProjectileVelocity(L *lua.LState) int {
	ent := e.checkEntity(L, 1)
	em := checkComponent[components.ProjectileEmitter](L, e.registry, ent, "projectile emitter")
	em.Velocity = components.Vec2{X: float64(L.CheckNumber(2)), Y: float64(L.CheckNumber(3))}
	return 0
}

func (e *Engine) getTicks(L *lua.LState) int {
	L.Push(lua.LNumber(e.ticks))
	return 1
}

func (e *Engine) hasTag(L *lua.LState) int {
	ent := e.checkEntity(L, 1)
	L.Push(lua.LBool(e.registry.EntityHasTag(ent, L.CheckString(2))))
	return 1
}

func (e *Engine) belongsToGroup(L *lua.LState) int {
	ent := e.checkEntity(L, 1)
	L.Push(lua.LBool(e.registry.EntityBelongsToGroup(ent, L.CheckString(2))))
	return 1
}

func (e *Engine) kill(L *lua.LState) int {
	e.registry.KillEntity(e.checkEntity(L, 1))
	return 0
}
