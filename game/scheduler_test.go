package game_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/skirmish/clock"
	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/eventbus"
	"github.com/plus3/skirmish/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ping struct{}

type pingCounter struct {
	subscriptions int
	pings         int
}

func (p *pingCounter) SubscribeToEvents(bus *eventbus.Bus) {
	p.subscriptions++
	eventbus.Subscribe(bus, func(*ping) { p.pings++ })
}

func newScheduler() (*game.Scheduler, *ecs.Registry, *eventbus.Bus, *clock.Manual) {
	r := ecs.NewRegistry()
	bus := eventbus.New()
	clk := clock.NewManual(0)
	return game.NewScheduler(r, bus, clk), r, bus, clk
}

func TestScheduler(t *testing.T) {
	t.Run("steps run in registration order", func(t *testing.T) {
		s, _, _, _ := newScheduler()
		var order []string
		s.Register("first", func(*game.UpdateFrame) { order = append(order, "first") })
		s.Register("second", func(*game.UpdateFrame) { order = append(order, "second") })

		s.Once(1.0)
		s.Once(1.0)

		assert.Equal(t, []string{"first", "second", "first", "second"}, order)
	})

	t.Run("frame carries delta time and ticks", func(t *testing.T) {
		s, r, bus, clk := newScheduler()
		clk.Advance(1500 * time.Millisecond)

		var got *game.UpdateFrame
		s.Register("capture", func(f *game.UpdateFrame) { got = f })
		s.Once(0.5)

		require.NotNil(t, got)
		assert.Equal(t, 0.5, got.DeltaTime)
		assert.Equal(t, uint64(1500), got.Ticks)
		assert.Same(t, r, got.Registry)
		assert.Same(t, bus, got.Bus)
	})

	t.Run("registry is reconciled before steps", func(t *testing.T) {
		s, r, _, _ := newScheduler()
		e := r.CreateEntity()

		active := false
		s.Register("check", func(f *game.UpdateFrame) { active = f.Registry.IsActive(e) })
		s.Once(1.0)

		assert.True(t, active)
	})

	t.Run("subscribers are renewed every frame", func(t *testing.T) {
		s, _, bus, _ := newScheduler()
		counter := &pingCounter{}
		s.Subscribe(counter)
		s.Register("emit", func(f *game.UpdateFrame) { eventbus.Emit(f.Bus, ping{}) })

		s.Once(1.0)
		s.Once(1.0)

		assert.Equal(t, 3, counter.subscriptions, "once on registration and once per frame")
		assert.Equal(t, 2, counter.pings, "stale subscriptions are dropped")
		assert.Equal(t, 1, eventbus.HandlerCount[ping](bus))
	})

	t.Run("stats", func(t *testing.T) {
		s, _, _, _ := newScheduler()
		s.Register("sleepy", func(*game.UpdateFrame) { time.Sleep(time.Millisecond) })
		s.Register("noop", func(*game.UpdateFrame) {})

		stats := s.GetStats()
		assert.Zero(t, stats.Steps[0].MinDuration)

		s.Once(1.0)
		s.Once(1.0)

		stats = s.GetStats()
		assert.Equal(t, 2, stats.StepCount)
		assert.Equal(t, int64(2), stats.Frames)
		assert.Equal(t, int64(4), stats.TotalExecutions)
		assert.Equal(t, int64(2), stats.Reconcile.ExecutionCount)
		assert.Equal(t, "sleepy", stats.Steps[0].Name)
		assert.GreaterOrEqual(t, stats.Steps[0].MinDuration, time.Millisecond)
		assert.LessOrEqual(t, stats.Steps[0].MinDuration, stats.Steps[0].MaxDuration)
		assert.Equal(t, stats.Steps[0].TotalDuration/2, stats.Steps[0].AvgDuration)
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		s, _, _, _ := newScheduler()
		count := 0
		s.Register("count", func(*game.UpdateFrame) { count++ })

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			s.Run(ctx, 1*time.Millisecond)
			done <- true
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		assert.NotZero(t, count)
	})
}
