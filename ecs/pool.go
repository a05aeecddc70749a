package ecs

import "reflect"

// iPool is the type-erased view of a Pool that the registry keeps per component type.
type iPool interface {
	Resize(n int)
	Len() int
	Clear()
	Type() reflect.Type
	getAny(index int) any
}

const poolBlockSize = 64

// Pool is dense storage for one component type, indexed directly by entity id.
// Values live in fixed-size blocks so pointers returned by Get stay valid while the
// pool grows. A Pool never shrinks on removal; presence is governed by the owning
// registry's signatures, never by the pool itself.
type Pool[T any] struct {
	blocks []*[poolBlockSize]T
	size   int
}

// NewPool creates a pool able to hold capacity values without growing.
func NewPool[T any](capacity int) *Pool[T] {
	p := &Pool[T]{}
	p.Resize(capacity)
	return p
}

// Resize grows the pool so that index n-1 is valid. Smaller values are ignored.
func (p *Pool[T]) Resize(n int) {
	if n <= p.size {
		return
	}
	for len(p.blocks)*poolBlockSize < n {
		p.blocks = append(p.blocks, new([poolBlockSize]T))
	}
	p.size = n
}

// Len returns the number of addressable slots.
func (p *Pool[T]) Len() int {
	return p.size
}

// Set writes value at index, overwriting whatever was there. The pool must already
// be sized past index.
func (p *Pool[T]) Set(index int, value T) *T {
	slot := p.slot(index)
	*slot = value
	return slot
}

// Get returns a pointer to the value at index. Reading a slot whose entity does not
// carry the component yields stale or zero data; callers check the signature first.
func (p *Pool[T]) Get(index int) *T {
	return p.slot(index)
}

// Clear drops every block.
func (p *Pool[T]) Clear() {
	p.blocks = nil
	p.size = 0
}

// Type returns the component type stored in the pool.
func (p *Pool[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

func (p *Pool[T]) getAny(index int) any {
	return p.slot(index)
}

func (p *Pool[T]) slot(index int) *T {
	if index < 0 || index >= p.size {
		panic("ecs: pool index out of range")
	}
	return &p.blocks[index/poolBlockSize][index%poolBlockSize]
}
