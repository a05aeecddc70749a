package debugui

import (
	"reflect"
	"testing"

	"github.com/plus3/skirmish/components"
	"github.com/plus3/skirmish/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movers struct {
	ecs.BaseSystem
}

func newMovers() *movers {
	s := &movers{}
	ecs.RequireComponent[components.Transform](&s.BaseSystem)
	ecs.RequireComponent[components.RigidBody](&s.BaseSystem)
	return s
}

func browserFixture(t *testing.T) (*ecs.Registry, *movers, []ecs.Entity) {
	t.Helper()
	r := ecs.NewRegistry()
	m := ecs.AddSystem(r, newMovers())

	player := r.CreateEntity()
	ecs.AddComponent(r, player, components.NewTransform(components.Vec2{}))
	ecs.AddComponent(r, player, components.RigidBody{})
	ecs.AddComponent(r, player, components.Health{Percentage: 100})
	require.NoError(t, r.TagEntity(player, "player"))

	tile := r.CreateEntity()
	ecs.AddComponent(r, tile, components.NewTransform(components.Vec2{}))
	require.NoError(t, r.GroupEntity(tile, "tiles"))

	enemy := SpawnEnemy(r, DefaultEnemyParams(), 0)
	r.Update()
	return r, m, []ecs.Entity{player, tile, enemy}
}

func TestCollectEntities(t *testing.T) {
	r, _, ents := browserFixture(t)

	infos := collectEntities(r)
	require.Len(t, infos, 3)

	assert.Equal(t, ents[0], infos[0].Entity)
	assert.Equal(t, "player", infos[0].Tag)
	assert.Contains(t, infos[0].Components, "Health")
	assert.True(t, infos[0].Active)

	assert.Equal(t, "tiles", infos[1].Group)
	assert.Equal(t, []string{"Transform"}, infos[1].Components)

	assert.Equal(t, EnemyGroup, infos[2].Group)
}

func TestFilterEntities(t *testing.T) {
	r, m, ents := browserFixture(t)
	infos := collectEntities(r)

	t.Run("empty filter returns everything", func(t *testing.T) {
		assert.Len(t, filterEntities(infos, "", nil), 3)
	})

	t.Run("matches tag case-insensitively", func(t *testing.T) {
		got := filterEntities(infos, "PLAY", nil)
		require.Len(t, got, 1)
		assert.Equal(t, ents[0], got[0].Entity)
	})

	t.Run("matches component names", func(t *testing.T) {
		got := filterEntities(infos, "projectileemitter", nil)
		require.Len(t, got, 1)
		assert.Equal(t, ents[2], got[0].Entity)
	})

	t.Run("system membership", func(t *testing.T) {
		got := filterEntities(infos, "", m)
		assert.Len(t, got, 2)
		got = filterEntities(infos, "tiles", m)
		assert.Empty(t, got)
	})
}

func TestSortEntities(t *testing.T) {
	r, _, ents := browserFixture(t)
	infos := collectEntities(r)

	sortEntities(infos, columnID, false)
	assert.Equal(t, ents[2], infos[0].Entity)

	sortEntities(infos, columnComponents, true)
	assert.Equal(t, ents[1], infos[0].Entity, "the tile carries the fewest components")

	sortEntities(infos, columnTag, false)
	assert.Equal(t, "player", infos[0].Tag)
}

func TestPageBounds(t *testing.T) {
	start, end := pageBounds(250, 0, 100)
	assert.Equal(t, 0, start)
	assert.Equal(t, 100, end)

	start, end = pageBounds(250, 2, 100)
	assert.Equal(t, 200, start)
	assert.Equal(t, 250, end)

	start, end = pageBounds(10, 5, 100)
	assert.Equal(t, 10, start)
	assert.Equal(t, 10, end)
}

func TestEntityBrowserRefreshFollowsRegistryVersion(t *testing.T) {
	r, _, ents := browserFixture(t)
	eb := NewEntityBrowser(10)

	eb.refresh(r)
	require.Len(t, eb.entities, 3)
	eb.selected, eb.hasSelection = ents[1], true

	r.KillEntity(ents[1])
	eb.refresh(r)
	assert.Len(t, eb.entities, 3, "kill is not visible before reconciliation")

	r.Update()
	eb.refresh(r)
	assert.Len(t, eb.entities, 2)
	_, ok := eb.Selected()
	assert.False(t, ok, "selection of a destroyed entity is dropped")
}

func TestFieldCache(t *testing.T) {
	c := newFieldCache()

	fields := c.of(reflect.TypeFor[components.BoxCollider]())
	require.Len(t, fields, 3)
	assert.Equal(t, "Width", fields[0].Name)
	assert.Equal(t, reflect.Struct, fields[2].Kind)

	assert.Nil(t, c.of(reflect.TypeFor[int]()))
	assert.Equal(t, fields, c.of(reflect.TypeFor[components.BoxCollider]()))
}

func TestFieldSettersWriteThroughComponentPointers(t *testing.T) {
	r := ecs.NewRegistry()
	e := r.CreateEntity()
	ecs.AddComponent(r, e, components.Health{Percentage: 50})
	ecs.AddComponent(r, e, components.TextLabel{})

	values := r.ComponentValues(e)
	require.Len(t, values, 2)

	for _, cv := range values {
		switch v := cv.Value.(type) {
		case *components.Health:
			field := reflect.ValueOf(v).Elem().Field(0)
			assert.True(t, setInt(field, 75))
		case *components.TextLabel:
			color := reflect.ValueOf(v).Elem().FieldByName("Color").FieldByName("R")
			assert.False(t, setUint(color, 300), "uint8 overflow is rejected")
			assert.True(t, setUint(color, 200))
		}
	}

	assert.Equal(t, 75, ecs.GetComponent[components.Health](r, e).Percentage)
	assert.Equal(t, uint8(200), ecs.GetComponent[components.TextLabel](r, e).Color.R)
}

func TestSpawnEnemy(t *testing.T) {
	r := ecs.NewRegistry()
	p := DefaultEnemyParams()
	p.Health = 250
	p.Shoots = false

	e := SpawnEnemy(r, p, 42)
	r.Update()

	assert.True(t, r.IsActive(e))
	assert.True(t, r.EntityBelongsToGroup(e, EnemyGroup))
	assert.Equal(t, 100, ecs.GetComponent[components.Health](r, e).Percentage)
	assert.False(t, ecs.HasComponent[components.ProjectileEmitter](r, e))
	assert.Equal(t, 32, ecs.GetComponent[components.BoxCollider](r, e).Width)
}

func TestFrameHistoryAverage(t *testing.T) {
	h := newFrameHistory(3)
	assert.Zero(t, h.average())

	h.push(10)
	h.push(20)
	assert.InDelta(t, 15, h.average(), 1e-6)

	h.push(30)
	h.push(60)
	assert.InDelta(t, (20.0+30+60)/3, h.average(), 1e-4)
}

func TestSystemLabels(t *testing.T) {
	m := newMovers()
	assert.Equal(t, "debugui.movers", systemLabel(m))
	assert.Equal(t, []string{"Transform", "RigidBody"}, requiredComponents(m))
}
