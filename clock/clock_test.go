package clock_test

import (
	"testing"
	"time"

	"github.com/plus3/skirmish/clock"
	"github.com/stretchr/testify/assert"
)

func TestManualClock(t *testing.T) {
	c := clock.NewManual(100)
	assert.Equal(t, uint64(100), c.Ticks())

	c.Advance(250 * time.Millisecond)
	assert.Equal(t, uint64(350), c.Ticks())
}

func TestRealClockIsMonotonic(t *testing.T) {
	var c clock.Clock = clock.NewReal()

	first := c.Ticks()
	time.Sleep(5 * time.Millisecond)

	assert.GreaterOrEqual(t, c.Ticks(), first+5)
}
