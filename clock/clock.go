// Package clock provides the millisecond tick source used for animation and timers.
package clock

import "time"

// Clock reports milliseconds elapsed since it started.
type Clock interface {
	Ticks() uint64
}

// Real measures wall time from its creation.
type Real struct {
	start time.Time
}

func NewReal() *Real {
	return &Real{start: time.Now()}
}

func (c *Real) Ticks() uint64 {
	return uint64(time.Since(c.start).Milliseconds())
}

// Manual only advances when told to.
type Manual struct {
	now uint64
}

func NewManual(start uint64) *Manual {
	return &Manual{now: start}
}

func (c *Manual) Ticks() uint64 {
	return c.now
}

func (c *Manual) Advance(d time.Duration) {
	c.now += uint64(d.Milliseconds())
}
