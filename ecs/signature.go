package ecs

import (
	"math/bits"
	"strings"
)

// Signature is a growable bit vector of component ids. An entity's signature records
// which components it carries; a system's signature records which it requires.
type Signature struct {
	words []uint64
}

// NewSignature returns a signature with the given component ids set.
func NewSignature(ids ...ComponentID) Signature {
	var s Signature
	for _, id := range ids {
		s.Set(id)
	}
	return s
}

// Set enables the bit for id, growing the vector as needed.
func (s *Signature) Set(id ComponentID) {
	i := int(id) >> 6
	if i >= len(s.words) {
		s.words = append(s.words, make([]uint64, i+1-len(s.words))...)
	}
	s.words[i] |= 1 << (uint(id) & 63)
}

// Clear disables the bit for id.
func (s *Signature) Clear(id ComponentID) {
	i := int(id) >> 6
	if i >= len(s.words) {
		return
	}
	s.words[i] &^= 1 << (uint(id) & 63)
}

// Test reports whether the bit for id is set.
func (s Signature) Test(id ComponentID) bool {
	i := int(id) >> 6
	if id < 0 || i >= len(s.words) {
		return false
	}
	return s.words[i]&(1<<(uint(id)&63)) != 0
}

// Contains reports whether every bit set in sub is also set in s.
func (s Signature) Contains(sub Signature) bool {
	for i, w := range sub.words {
		var have uint64
		if i < len(s.words) {
			have = s.words[i]
		}
		if have&w != w {
			return false
		}
	}
	return true
}

// Reset clears all bits, keeping the allocated words.
func (s *Signature) Reset() {
	clear(s.words)
}

// Count returns the number of set bits.
func (s Signature) Count() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Empty reports whether no bit is set.
func (s Signature) Empty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Equal compares set bits only; trailing zero words are ignored.
func (s Signature) Equal(other Signature) bool {
	return s.Contains(other) && other.Contains(s)
}

// Clone returns an independent copy.
func (s Signature) Clone() Signature {
	return Signature{words: append([]uint64(nil), s.words...)}
}

// IDs returns the set component ids in ascending order.
func (s Signature) IDs() []ComponentID {
	ids := make([]ComponentID, 0, s.Count())
	for i, w := range s.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			ids = append(ids, ComponentID(i<<6+b))
			w &= w - 1
		}
	}
	return ids
}

// String renders the signature as a bit string, lowest id first.
func (s Signature) String() string {
	if len(s.words) == 0 {
		return "0"
	}
	n := len(s.words) * 64
	for n > 1 && !s.Test(ComponentID(n-1)) {
		n--
	}
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		if s.Test(ComponentID(i)) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
