package ecs_test

import (
	"testing"

	"github.com/plus3/skirmish/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagEntity(t *testing.T) {
	r := ecs.NewRegistry()
	player := r.CreateEntity()

	require.NoError(t, r.TagEntity(player, "player"))

	got, err := r.GetEntityByTag("player")
	require.NoError(t, err)
	assert.Equal(t, player, got)
	assert.True(t, r.EntityHasTag(player, "player"))
	tag, ok := r.EntityTag(player)
	assert.True(t, ok)
	assert.Equal(t, "player", tag)
}

func TestTagUniqueness(t *testing.T) {
	r := ecs.NewRegistry()
	a := r.CreateEntity()
	b := r.CreateEntity()
	require.NoError(t, r.TagEntity(a, "player"))

	t.Run("same tag on another entity is rejected", func(t *testing.T) {
		err := r.TagEntity(b, "player")
		assert.ErrorIs(t, err, ecs.ErrTagInUse)
		got, _ := r.GetEntityByTag("player")
		assert.Equal(t, a, got)
	})

	t.Run("second tag on the same entity is rejected", func(t *testing.T) {
		err := r.TagEntity(a, "hero")
		assert.ErrorIs(t, err, ecs.ErrEntityAlreadyTagged)
		assert.False(t, r.EntityHasTag(a, "hero"))
	})

	t.Run("re-applying the same tag is a no-op", func(t *testing.T) {
		assert.NoError(t, r.TagEntity(a, "player"))
	})
}

func TestGetEntityByUnknownTag(t *testing.T) {
	r := ecs.NewRegistry()

	_, err := r.GetEntityByTag("nobody")

	assert.ErrorIs(t, err, ecs.ErrTagNotFound)
}

func TestRemoveEntityTagFreesTag(t *testing.T) {
	r := ecs.NewRegistry()
	a := r.CreateEntity()
	b := r.CreateEntity()
	require.NoError(t, r.TagEntity(a, "player"))

	r.RemoveEntityTag(a)

	assert.False(t, r.EntityHasTag(a, "player"))
	assert.NoError(t, r.TagEntity(b, "player"))
}

func TestKillReleasesTagAndGroup(t *testing.T) {
	r := ecs.NewRegistry()
	e := r.CreateEntity()
	require.NoError(t, r.TagEntity(e, "boss"))
	require.NoError(t, r.GroupEntity(e, "enemies"))
	r.Update()

	r.KillEntity(e)
	assert.True(t, r.EntityHasTag(e, "boss"), "tag survives until reconciliation")
	r.Update()

	_, err := r.GetEntityByTag("boss")
	assert.ErrorIs(t, err, ecs.ErrTagNotFound)
	assert.Empty(t, r.GetEntitiesByGroup("enemies"))
}

func TestTagDeadEntity(t *testing.T) {
	r := ecs.NewRegistry()
	assert.ErrorIs(t, r.TagEntity(5, "ghost"), ecs.ErrEntityNotAlive)
	assert.ErrorIs(t, r.GroupEntity(5, "ghosts"), ecs.ErrEntityNotAlive)
}

func TestGroupEntity(t *testing.T) {
	r := ecs.NewRegistry()
	a := r.CreateEntity()
	b := r.CreateEntity()
	c := r.CreateEntity()

	require.NoError(t, r.GroupEntity(a, "enemies"))
	require.NoError(t, r.GroupEntity(b, "enemies"))
	require.NoError(t, r.GroupEntity(c, "obstacles"))

	assert.Equal(t, []ecs.Entity{a, b}, r.GetEntitiesByGroup("enemies"))
	assert.True(t, r.EntityBelongsToGroup(c, "obstacles"))
	assert.False(t, r.EntityBelongsToGroup(c, "enemies"))
	assert.Empty(t, r.GetEntitiesByGroup("missing"))
}

func TestRegroupingMovesEntity(t *testing.T) {
	r := ecs.NewRegistry()
	e := r.CreateEntity()
	require.NoError(t, r.GroupEntity(e, "enemies"))

	require.NoError(t, r.GroupEntity(e, "obstacles"))
	require.NoError(t, r.GroupEntity(e, "obstacles"))

	assert.Empty(t, r.GetEntitiesByGroup("enemies"))
	assert.Equal(t, []ecs.Entity{e}, r.GetEntitiesByGroup("obstacles"))
	group, ok := r.EntityGroup(e)
	assert.True(t, ok)
	assert.Equal(t, "obstacles", group)
}

func TestRemoveEntityGroup(t *testing.T) {
	r := ecs.NewRegistry()
	a := r.CreateEntity()
	b := r.CreateEntity()
	require.NoError(t, r.GroupEntity(a, "enemies"))
	require.NoError(t, r.GroupEntity(b, "enemies"))

	r.RemoveEntityGroup(a)

	assert.Equal(t, []ecs.Entity{b}, r.GetEntitiesByGroup("enemies"))
	_, ok := r.EntityGroup(a)
	assert.False(t, ok)
}

func TestGetEntitiesByGroupReturnsCopy(t *testing.T) {
	r := ecs.NewRegistry()
	e := r.CreateEntity()
	require.NoError(t, r.GroupEntity(e, "tiles"))

	members := r.GetEntitiesByGroup("tiles")
	members[0] = 99

	assert.Equal(t, []ecs.Entity{e}, r.GetEntitiesByGroup("tiles"))
}
