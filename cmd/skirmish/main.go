package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/plus3/skirmish/assets"
	"github.com/plus3/skirmish/config"
	"github.com/plus3/skirmish/debugui"
	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/eventbus"
	"github.com/plus3/skirmish/game"
	"github.com/plus3/skirmish/scripting"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	headless := flag.Duration("headless", 0, "Run without a window for the given duration (0 opens a window).")
	levelPath := flag.String("level", "", "Level file to load, overriding game.level from the config.")
	flag.Parse()

	// 1. Load config
	cfg, cfgPath, err := config.Resolve()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *levelPath != "" {
		cfg.Game.Level = *levelPath
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	log.Info("config loaded", zap.String("path", cfgPath))

	// 3. Registry, event bus, assets and scripting
	ecs.SetMaxComponentTypes(cfg.ECS.MaxComponentTypes)
	registry := ecs.NewRegistry(
		ecs.WithLogger(log.Named("ecs")),
		ecs.WithCapacity(cfg.ECS.InitialCapacity),
	)
	bus := eventbus.New(
		eventbus.WithMaxDepth(cfg.Events.MaxEmitDepth),
		eventbus.WithLogger(log.Named("events")),
	)

	var loader assets.Loader = assets.EbitenLoader{}
	if *headless > 0 {
		loader = headlessLoader{}
	}
	store := assets.NewStore(cfg.Game.AssetsDir, loader, log.Named("assets"))
	defer store.Clear()

	engine := scripting.NewEngine(log.Named("lua"))
	defer engine.Close()

	// 4. Game
	var opts []game.Option
	var overlay *debugui.Overlay
	if cfg.Debug.ImGui && *headless == 0 {
		overlay = debugui.New(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, cfg.Debug.HistoryFrames, store, log.Named("debugui"))
		opts = append(opts, game.WithOverlay(overlay), game.WithKeySource(overlay.KeySource()))
	}
	g := game.New(cfg, registry, bus, store, engine, log.Named("game"), opts...)
	if overlay != nil {
		overlay.SetStatsSource(g.Scheduler())
	}

	if err := g.LoadLevel(cfg.Game.Level); err != nil {
		return fmt.Errorf("load level: %w", err)
	}
	w, h := g.MapSize()
	log.Info("level loaded",
		zap.String("level", cfg.Game.Level),
		zap.Int("map_width", w),
		zap.Int("map_height", h),
	)

	// 5. Run
	if *headless > 0 {
		return runHeadless(g, cfg, *headless, log)
	}

	ebiten.SetTPS(cfg.Loop.TPS)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	log.Info("game closed")
	return nil
}

func runHeadless(g *game.Game, cfg *config.Config, d time.Duration, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	log.Info("running headless", zap.Duration("duration", d), zap.Int("tps", cfg.Loop.TPS))
	g.RunHeadless(ctx, time.Second/time.Duration(cfg.Loop.TPS))

	stats := g.Scheduler().GetStats()
	rs := g.Registry().CollectStats()
	log.Info("headless run finished",
		zap.Int64("frames", stats.Frames),
		zap.Int("live_entities", rs.LiveEntities),
		zap.Duration("avg_reconcile", stats.Reconcile.AvgDuration),
	)
	for _, step := range stats.Steps {
		log.Debug("step timing",
			zap.String("step", step.Name),
			zap.Duration("avg", step.AvgDuration),
			zap.Duration("max", step.MaxDuration),
		)
	}
	return nil
}

// headlessLoader registers assets without decoding them, since no graphics device
// exists outside ebiten.RunGame.
type headlessLoader struct{}

func (headlessLoader) LoadTexture(string) (*ebiten.Image, error) {
	return nil, nil
}

func (headlessLoader) LoadFont(string, float64) (text.Face, error) {
	return nil, nil
}
