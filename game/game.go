// Package game wires the registry, event bus and systems into an ebiten game.
package game

import (
	"context"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/skirmish/assets"
	"github.com/plus3/skirmish/clock"
	"github.com/plus3/skirmish/components"
	"github.com/plus3/skirmish/config"
	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/eventbus"
	"github.com/plus3/skirmish/events"
	"github.com/plus3/skirmish/level"
	"github.com/plus3/skirmish/scripting"
	"github.com/plus3/skirmish/systems"
	"go.uber.org/zap"
)

// KeySource reports the keys that went down since the last frame.
type KeySource interface {
	AppendJustPressed(keys []ebiten.Key) []ebiten.Key
}

type ebitenKeys struct{}

func (ebitenKeys) AppendJustPressed(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustPressedKeys(keys)
}

// Overlay draws tooling on top of the game, such as the debug UI.
type Overlay interface {
	Update(frame *UpdateFrame) error
	Draw(screen *ebiten.Image)
	Layout(width, height int)
}

var background = color.RGBA{21, 21, 21, 255}

// Game implements ebiten.Game.
type Game struct {
	log       *zap.Logger
	cfg       *config.Config
	registry  *ecs.Registry
	bus       *eventbus.Bus
	clock     clock.Clock
	store     *assets.Store
	engine    *scripting.Engine
	scheduler *Scheduler
	keys      KeySource
	overlay   Overlay

	movement       *systems.MovementSystem
	cameraMovement *systems.CameraMovementSystem
	render         *systems.RenderSystem
	renderText     *systems.RenderTextSystem
	renderCollider *systems.RenderColliderSystem
	renderHealth   *systems.RenderHealthBarSystem

	camera        components.Rect
	mapWidth      int
	mapHeight     int
	showColliders bool
	pressed       []ebiten.Key
	lastFrame     *UpdateFrame
}

// Option configures a Game.
type Option func(*Game)

// WithKeySource replaces the ebiten keyboard with k.
func WithKeySource(k KeySource) Option {
	return func(g *Game) { g.keys = k }
}

// WithOverlay draws o on top of every frame and forwards its updates.
func WithOverlay(o Overlay) Option {
	return func(g *Game) { g.overlay = o }
}

// WithClock sets the clock used for frame deltas and ticks.
func WithClock(c clock.Clock) Option {
	return func(g *Game) { g.clock = c }
}

// New builds a game around registry and bus, registering every system in frame order.
func New(cfg *config.Config, registry *ecs.Registry, bus *eventbus.Bus, store *assets.Store, engine *scripting.Engine, log *zap.Logger, opts ...Option) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{
		log:           log,
		cfg:           cfg,
		registry:      registry,
		bus:           bus,
		store:         store,
		engine:        engine,
		keys:          ebitenKeys{},
		camera:        components.Rect{W: cfg.Window.Width, H: cfg.Window.Height},
		mapWidth:      cfg.Game.MapWidth,
		mapHeight:     cfg.Game.MapHeight,
		showColliders: cfg.Debug.ShowColliders,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.clock == nil {
		g.clock = clock.NewReal()
	}
	if engine != nil {
		engine.Bind(registry)
	}

	g.scheduler = NewScheduler(registry, bus, g.clock)
	g.registerSystems()
	return g
}

func (g *Game) registerSystems() {
	r := g.registry
	playerTag := g.cfg.Game.PlayerTag

	g.movement = ecs.AddSystem(r, systems.NewMovementSystem())
	g.movement.PlayerTag = playerTag
	g.movement.Bounds = components.Vec2{X: float64(g.mapWidth), Y: float64(g.mapHeight)}

	collision := ecs.AddSystem(r, systems.NewCollisionSystem())
	damage := ecs.AddSystem(r, systems.NewDamageSystem(g.log.Named("damage")))
	damage.PlayerTag = playerTag
	animation := ecs.AddSystem(r, systems.NewAnimationSystem())
	emit := ecs.AddSystem(r, systems.NewProjectileEmitSystem())
	emit.PlayerTag = playerTag
	lifecycle := ecs.AddSystem(r, systems.NewProjectileLifecycleSystem())
	keyboard := ecs.AddSystem(r, systems.NewKeyboardControlSystem())
	g.cameraMovement = ecs.AddSystem(r, systems.NewCameraMovementSystem())

	g.render = ecs.AddSystem(r, systems.NewRenderSystem(g.store, g.log.Named("render")))
	g.renderText = ecs.AddSystem(r, systems.NewRenderTextSystem(g.store))
	g.renderCollider = ecs.AddSystem(r, systems.NewRenderColliderSystem())
	g.renderHealth = ecs.AddSystem(r, systems.NewRenderHealthBarSystem())

	g.scheduler.Subscribe(damage)
	g.scheduler.Subscribe(emit)
	g.scheduler.Subscribe(keyboard)

	g.scheduler.Register("movement", func(f *UpdateFrame) { g.movement.Update(f.Registry, f.DeltaTime) })
	g.scheduler.Register("collision", func(f *UpdateFrame) { collision.Update(f.Registry, f.Bus) })
	g.scheduler.Register("animation", func(f *UpdateFrame) { animation.Update(f.Registry, f.Ticks) })
	g.scheduler.Register("projectile_emit", func(f *UpdateFrame) { emit.Update(f.Registry, f.Ticks) })
	g.scheduler.Register("projectile_lifecycle", func(f *UpdateFrame) { lifecycle.Update(f.Registry, f.Ticks) })
	if g.engine != nil {
		script := ecs.AddSystem(r, systems.NewScriptSystem(g.engine, g.log.Named("script")))
		g.scheduler.Register("script", func(f *UpdateFrame) { script.Update(f.Registry, f.DeltaTime, f.Ticks) })
	}
	g.scheduler.Register("camera", func(f *UpdateFrame) {
		g.cameraMovement.Update(f.Registry, &g.camera, g.mapWidth, g.mapHeight)
	})
}

// LoadLevel populates the registry from a level file. A level with a tilemap sets
// the map size used for culling and camera clamping.
func (g *Game) LoadLevel(path string) error {
	loaded, err := level.NewLoader(g.store, g.engine, g.log.Named("level")).Load(g.registry, path, g.clock.Ticks())
	if err != nil {
		return err
	}
	if loaded.MapWidth > 0 && loaded.MapHeight > 0 {
		g.mapWidth, g.mapHeight = loaded.MapWidth, loaded.MapHeight
		g.movement.Bounds = components.Vec2{X: float64(loaded.MapWidth), Y: float64(loaded.MapHeight)}
	}
	return nil
}

// Step runs one frame: pending key presses are emitted to the handlers subscribed
// last frame, then the scheduler resets the bus, reconciles the registry and runs
// every system. Escape ends the game with ebiten.Termination.
func (g *Game) Step(dt float64) error {
	ticks := g.clock.Ticks()
	g.pressed = g.keys.AppendJustPressed(g.pressed[:0])
	for _, k := range g.pressed {
		switch k {
		case ebiten.KeyEscape:
			return ebiten.Termination
		case ebiten.KeyF1:
			g.showColliders = !g.showColliders
		}
		eventbus.Emit(g.bus, events.KeyPressedEvent{Registry: g.registry, Key: k, Ticks: ticks})
	}

	g.scheduler.Once(dt)
	g.lastFrame = newUpdateFrame(dt, ticks, g.registry, g.bus)
	return nil
}

func (g *Game) Update() error {
	if err := g.Step(1 / float64(ebiten.TPS())); err != nil {
		return err
	}
	if g.overlay != nil {
		return g.overlay.Update(g.lastFrame)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	g.render.Draw(g.registry, screen, g.camera)
	g.renderHealth.Draw(g.registry, screen, g.camera)
	g.renderText.Draw(g.registry, screen, g.camera)
	if g.showColliders {
		g.renderCollider.Draw(g.registry, screen, g.camera)
	}

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.camera.W, g.camera.H = outsideWidth, outsideHeight
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// RunHeadless runs frames at the given interval without a window or input until
// ctx is cancelled.
func (g *Game) RunHeadless(ctx context.Context, interval time.Duration) {
	g.scheduler.Run(ctx, interval)
}

func (g *Game) Registry() *ecs.Registry {
	return g.registry
}

func (g *Game) Scheduler() *Scheduler {
	return g.scheduler
}

func (g *Game) Camera() components.Rect {
	return g.camera
}

func (g *Game) ShowColliders() bool {
	return g.showColliders
}

func (g *Game) MapSize() (width, height int) {
	return g.mapWidth, g.mapHeight
}
