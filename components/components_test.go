package components_test

import (
	"testing"

	"github.com/plus3/skirmish/components"
	"github.com/stretchr/testify/assert"
)

func TestVec2(t *testing.T) {
	v := components.Vec2{X: 1, Y: 2}

	assert.Equal(t, components.Vec2{X: 4, Y: 6}, v.Add(components.Vec2{X: 3, Y: 4}))
	assert.Equal(t, components.Vec2{X: 0.5, Y: 1}, v.Scale(0.5))
}

func TestConstructors(t *testing.T) {
	tr := components.NewTransform(components.Vec2{X: 3, Y: 4})
	assert.Equal(t, components.Vec2{X: 1, Y: 1}, tr.Scale)

	sprite := components.NewSprite("tank", 32, 16, 2)
	assert.Equal(t, components.Rect{W: 32, H: 16}, sprite.SrcRect)

	anim := components.NewAnimation(0, 10, true, 500)
	assert.Equal(t, 1, anim.NumFrames, "frame count never drops below one")
	assert.Equal(t, uint64(500), anim.StartTime)

	emitter := components.NewProjectileEmitter(components.Vec2{X: 100}, 1000, 3000, 10, false, 42)
	assert.Equal(t, uint64(42), emitter.LastEmissionTime)
	assert.False(t, emitter.Friendly)
}
