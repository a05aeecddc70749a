package ecs_test

import (
	"fmt"
	"testing"

	"github.com/plus3/skirmish/ecs"
	"github.com/stretchr/testify/assert"
)

func TestSignatureSetClearTest(t *testing.T) {
	var s ecs.Signature

	s.Set(3)
	s.Set(70)

	assert.True(t, s.Test(3))
	assert.True(t, s.Test(70))
	assert.False(t, s.Test(4))
	assert.False(t, s.Test(1000), "bits past the allocated words read as unset")
	assert.Equal(t, 2, s.Count())

	s.Clear(3)
	assert.False(t, s.Test(3))
	assert.Equal(t, []ecs.ComponentID{70}, s.IDs())

	s.Clear(500)
	s.Reset()
	assert.True(t, s.Empty())
}

func TestSignatureContains(t *testing.T) {
	tests := []struct {
		name   string
		entity []ecs.ComponentID
		system []ecs.ComponentID
		want   bool
	}{
		{"empty system matches everything", []ecs.ComponentID{1}, nil, true},
		{"exact match", []ecs.ComponentID{1, 2}, []ecs.ComponentID{1, 2}, true},
		{"superset", []ecs.ComponentID{1, 2, 5}, []ecs.ComponentID{1, 5}, true},
		{"missing one", []ecs.ComponentID{1}, []ecs.ComponentID{1, 2}, false},
		{"system spans more words", []ecs.ComponentID{1}, []ecs.ComponentID{1, 130}, false},
		{"entity spans more words", []ecs.ComponentID{1, 130}, []ecs.ComponentID{1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entity := ecs.NewSignature(tt.entity...)
			system := ecs.NewSignature(tt.system...)
			assert.Equal(t, tt.want, entity.Contains(system))
		})
	}
}

func TestSignatureEqualIgnoresTrailingWords(t *testing.T) {
	a := ecs.NewSignature(1, 200)
	a.Clear(200)
	b := ecs.NewSignature(1)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(ecs.NewSignature(2)))
}

func TestSignatureCloneIsIndependent(t *testing.T) {
	a := ecs.NewSignature(2)
	b := a.Clone()
	b.Set(3)

	assert.False(t, a.Test(3))
}

func TestSignatureString(t *testing.T) {
	for _, tt := range []struct {
		ids  []ecs.ComponentID
		want string
	}{
		{nil, "0"},
		{[]ecs.ComponentID{0}, "1"},
		{[]ecs.ComponentID{1, 3}, "0101"},
	} {
		t.Run(fmt.Sprint(tt.ids), func(t *testing.T) {
			assert.Equal(t, tt.want, ecs.NewSignature(tt.ids...).String())
		})
	}
}
