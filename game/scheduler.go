package game

import (
	"context"
	"time"

	"github.com/plus3/skirmish/clock"
	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/eventbus"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	StepCount       int
	Frames          int64
	TotalExecutions int64
	Reconcile       StepStats
	Steps           []StepStats
}

// StepStats provides execution statistics for a single step.
type StepStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type stepStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func newStepStats(name string) *stepStatsInternal {
	return &stepStatsInternal{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	}
}

func (s *stepStatsInternal) record(d time.Duration) {
	s.executionCount++
	s.lastDuration = d
	s.totalDuration += d
	if d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
}

func (s *stepStatsInternal) snapshot() StepStats {
	avg := time.Duration(0)
	minDuration := s.minDuration
	if s.executionCount > 0 {
		avg = s.totalDuration / time.Duration(s.executionCount)
	} else {
		minDuration = 0
	}
	return StepStats{
		Name:           s.name,
		ExecutionCount: s.executionCount,
		MinDuration:    minDuration,
		MaxDuration:    s.maxDuration,
		AvgDuration:    avg,
		LastDuration:   s.lastDuration,
		TotalDuration:  s.totalDuration,
	}
}

// Subscriber re-registers its event handlers at the start of every frame.
type Subscriber interface {
	SubscribeToEvents(bus *eventbus.Bus)
}

// StepFunc is one unit of per-frame work, usually a system's Update.
type StepFunc func(frame *UpdateFrame)

// Scheduler runs a frame: it resets the event bus and lets subscribers register
// again, reconciles the registry, then executes its steps in registration order.
type Scheduler struct {
	registry *ecs.Registry
	bus      *eventbus.Bus
	clock    clock.Clock

	subscribers []Subscriber
	steps       []StepFunc
	stepStats   []*stepStatsInternal
	reconcile   *stepStatsInternal
	frames      int64
}

// NewScheduler creates a scheduler driving registry and bus, reading ticks from clk.
func NewScheduler(registry *ecs.Registry, bus *eventbus.Bus, clk clock.Clock) *Scheduler {
	return &Scheduler{
		registry:  registry,
		bus:       bus,
		clock:     clk,
		steps:     make([]StepFunc, 0),
		reconcile: newStepStats("reconcile"),
	}
}

// Subscribe adds an event subscriber. It is subscribed immediately and again at the
// start of every frame.
func (s *Scheduler) Subscribe(sub Subscriber) {
	s.subscribers = append(s.subscribers, sub)
	sub.SubscribeToEvents(s.bus)
}

// Register appends a named step.
func (s *Scheduler) Register(name string, step StepFunc) {
	s.steps = append(s.steps, step)
	s.stepStats = append(s.stepStats, newStepStats(name))
}

// Once executes a single frame with the given delta time.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.clock.Ticks(), s.registry, s.bus)

	s.bus.Reset()
	for _, sub := range s.subscribers {
		sub.SubscribeToEvents(s.bus)
	}

	start := time.Now()
	s.registry.Update()
	s.reconcile.record(time.Since(start))

	for i, step := range s.steps {
		start := time.Now()
		step(frame)
		s.stepStats[i].record(time.Since(start))
	}
	s.frames++
}

// Run executes frames at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about step execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		StepCount: len(s.steps),
		Frames:    s.frames,
		Reconcile: s.reconcile.snapshot(),
		Steps:     make([]StepStats, len(s.stepStats)),
	}

	var totalExecs int64
	for i, internal := range s.stepStats {
		stats.Steps[i] = internal.snapshot()
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
