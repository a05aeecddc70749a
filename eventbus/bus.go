// Package eventbus is a synchronous, typed publish/subscribe bus. Subscriptions are
// meant to live for a single frame: the frame driver calls Reset and every
// subscriber registers again before systems run.
package eventbus

import (
	"reflect"

	"go.uber.org/zap"
)

// DefaultMaxDepth bounds how deeply an event type may be re-emitted from its own handlers.
const DefaultMaxDepth = 8

// Bus dispatches events to handlers keyed by the event's type. It is not safe for
// concurrent use.
type Bus struct {
	log      *zap.Logger
	maxDepth int

	handlers map[reflect.Type][]any
	depth    map[reflect.Type]int
	emitted  uint64
	dropped  uint64
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the logger used to report dropped recursive emissions.
func WithLogger(log *zap.Logger) Option {
	return func(b *Bus) {
		if log != nil {
			b.log = log
		}
	}
}

// WithMaxDepth sets the nesting limit for same-type emission. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(b *Bus) {
		if n > 0 {
			b.maxDepth = n
		}
	}
}

// New creates an empty bus.
func New(opts ...Option) *Bus {
	b := &Bus{
		log:      zap.NewNop(),
		maxDepth: DefaultMaxDepth,
		handlers: make(map[reflect.Type][]any),
		depth:    make(map[reflect.Type]int),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers handler for events of type T. Handlers run in registration
// order and the same handler may be registered more than once.
func Subscribe[T any](b *Bus, handler func(*T)) {
	t := reflect.TypeFor[T]()
	hs := b.handlers[t]
	if cap(hs) == 0 {
		hs = make([]any, 0, 4)
	}
	b.handlers[t] = append(hs, handler)
}

// Emit passes a pointer to event to every handler currently subscribed to T and
// returns once all of them have run. Handlers subscribed while the emission is in
// progress are not called for it.
func Emit[T any](b *Bus, event T) {
	t := reflect.TypeFor[T]()
	hs := b.handlers[t]
	if len(hs) == 0 {
		return
	}

	if b.depth[t] >= b.maxDepth {
		b.dropped++
		b.log.Warn("recursive emit dropped",
			zap.Stringer("event", t),
			zap.Int("depth", b.depth[t]),
		)
		return
	}

	b.depth[t]++
	defer func() { b.depth[t]-- }()

	b.emitted++
	// the slice header is captured so handlers appended mid-emission are not visited
	for _, h := range hs {
		h.(func(*T))(&event)
	}
}

// Reset removes every subscription for every event type.
func (b *Bus) Reset() {
	clear(b.handlers)
}

// HandlerCount returns the number of handlers subscribed to T.
func HandlerCount[T any](b *Bus) int {
	return len(b.handlers[reflect.TypeFor[T]()])
}

// Stats reports how many emissions reached handlers and how many were dropped by
// the recursion limit since the bus was created.
func (b *Bus) Stats() (emitted, dropped uint64) {
	return b.emitted, b.dropped
}
