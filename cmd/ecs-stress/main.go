package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/skirmish/clock"
	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/eventbus"
	"github.com/plus3/skirmish/game"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The number of entities to keep alive.")
	toggleRate := flag.Float64("toggle", 0.01, "Share of entities whose velocity is added or removed each frame.")
	seed := flag.Int64("seed", 1, "Random seed.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	profileMode := flag.String("profile", "", "Write a cpu or mem profile to the working directory.")
	flag.Parse()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatalf("unknown profile mode %q", *profileMode)
	}

	log.Println("Starting ECS stress test...")

	// 1. Setup registry, bus, systems and scheduler
	registry := ecs.NewRegistry(ecs.WithCapacity(*entityCount))
	bus := eventbus.New()
	scheduler := game.NewScheduler(registry, bus, clock.NewReal())

	move := ecs.AddSystem(registry, newMoveSystem())
	lifetimes := ecs.AddSystem(registry, newLifetimeSystem())
	regen := ecs.AddSystem(registry, newRegenSystem())
	churn := &churner{rng: rand.New(rand.NewSource(*seed)), target: *entityCount, toggle: *toggleRate}
	reap := &reaper{}

	scheduler.Subscribe(reap)
	scheduler.Register("churn", func(f *game.UpdateFrame) { churn.Update(f.Registry) })
	scheduler.Register("move", func(f *game.UpdateFrame) { move.Update(f.Registry, f.DeltaTime) })
	scheduler.Register("lifetime", func(f *game.UpdateFrame) { lifetimes.Update(f.Registry, f.Bus, f.DeltaTime) })
	scheduler.Register("regen", func(f *game.UpdateFrame) { regen.Update(f.Registry, f.DeltaTime) })

	// 2. Populate the registry
	log.Printf("Populating registry with %d entities...\n", *entityCount)
	for i := 0; i < *entityCount; i++ {
		spawnRandomEntity(registry, churn.rng)
	}
	registry.Update()
	log.Println("Population complete.")

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Systems:        len(registry.Systems()),
		ToggleRate:     *toggleRate,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(float64(deltaTime) / float64(time.Second))
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Spawned = churn.spawned
	report.Killed = reap.killed
	report.Toggled = churn.toggled
	report.Scheduler = scheduler.GetStats()
	report.Registry = registry.CollectStats()
	emitted, dropped := bus.Stats()
	report.EventsEmitted, report.EventsDropped = emitted, dropped

	log.Println("Simulation finished.")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}
