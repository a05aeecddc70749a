package ecs

import "github.com/kamstrup/intmap"

// pendingSet buffers entities whose structural change is deferred until the next
// Registry.Update. It keeps request order and ignores repeated requests.
type pendingSet struct {
	order []Entity
	spare []Entity
	seen  *intmap.Map[Entity, struct{}]
}

func newPendingSet() *pendingSet {
	return &pendingSet{
		seen: intmap.New[Entity, struct{}](64),
	}
}

// push queues e and reports whether it was not already queued.
func (p *pendingSet) push(e Entity) bool {
	if _, ok := p.seen.Get(e); ok {
		return false
	}
	p.seen.Put(e, struct{}{})
	p.order = append(p.order, e)
	return true
}

func (p *pendingSet) has(e Entity) bool {
	_, ok := p.seen.Get(e)
	return ok
}

func (p *pendingSet) len() int {
	return len(p.order)
}

// drain returns the queued entities and resets the set. Entities pushed while the
// returned slice is being processed land in a separate buffer and wait for the next
// drain.
func (p *pendingSet) drain() []Entity {
	out := p.order
	p.order = p.spare[:0]
	p.spare = out
	p.seen.Clear()
	return out
}

// freeQueue hands out recycled entity ids first-in first-out, so a freshly killed id
// is reused as late as possible.
type freeQueue struct {
	ids  []Entity
	head int
}

func (q *freeQueue) push(e Entity) {
	q.ids = append(q.ids, e)
}

func (q *freeQueue) pop() (Entity, bool) {
	if q.head >= len(q.ids) {
		return 0, false
	}
	e := q.ids[q.head]
	q.head++
	if q.head == len(q.ids) {
		q.ids = q.ids[:0]
		q.head = 0
	}
	return e, true
}

func (q *freeQueue) len() int {
	return len(q.ids) - q.head
}
