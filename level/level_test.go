package level_test

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/plus3/skirmish/assets"
	"github.com/plus3/skirmish/components"
	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/level"
	"github.com/plus3/skirmish/scripting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	loaded []string
}

func (s *stubLoader) LoadTexture(path string) (*ebiten.Image, error) {
	s.loaded = append(s.loaded, path)
	return nil, nil
}

func (s *stubLoader) LoadFont(path string, size float64) (text.Face, error) {
	s.loaded = append(s.loaded, path)
	return nil, nil
}

func TestLoadYAMLLevel(t *testing.T) {
	r := ecs.NewRegistry()
	stub := &stubLoader{}
	store := assets.NewStore("assets", stub, nil)

	loaded, err := level.Load(r, store, nil, filepath.Join("testdata", "level.yaml"), 1000)
	require.NoError(t, err)

	assert.Equal(t, 3*64, loaded.MapWidth)
	assert.Equal(t, 2*64, loaded.MapHeight)
	assert.Len(t, loaded.Entities, 6+3)
	assert.Len(t, stub.loaded, 2)

	tiles := r.GetEntitiesByGroup(level.TilesGroup)
	require.Len(t, tiles, 6)
	last := tiles[5]
	assert.Equal(t, components.Vec2{X: 128, Y: 64}, ecs.GetComponent[components.Transform](r, last).Position)
	assert.Equal(t, components.Rect{X: 64, Y: 32, W: 32, H: 32}, ecs.GetComponent[components.Sprite](r, last).SrcRect)

	player, err := r.GetEntityByTag("player")
	require.NoError(t, err)
	assert.Equal(t, components.Vec2{X: 1, Y: 1}, ecs.GetComponent[components.Transform](r, player).Scale, "missing scale defaults to one")
	assert.Equal(t, uint64(1000), ecs.GetComponent[components.Animation](r, player).StartTime)
	assert.Equal(t, components.Vec2{Y: 5}, ecs.GetComponent[components.BoxCollider](r, player).Offset)
	assert.Equal(t, components.Vec2{X: -50}, ecs.GetComponent[components.KeyboardControlled](r, player).Left)
	assert.True(t, ecs.HasComponent[components.CameraFollow](r, player))

	enemies := r.GetEntitiesByGroup("enemies")
	require.Len(t, enemies, 1)
	emitter := ecs.GetComponent[components.ProjectileEmitter](r, enemies[0])
	assert.Equal(t, uint64(1500), emitter.RepeatFrequency)
	assert.Equal(t, uint64(2000), emitter.Duration)
	assert.Equal(t, uint64(1000), emitter.LastEmissionTime)

	label := ecs.GetComponent[components.TextLabel](r, loaded.Entities[len(loaded.Entities)-1])
	assert.Equal(t, "SKIRMISH", label.Text)
	assert.Equal(t, color.RGBA{G: 255, A: 255}, label.Color)
	assert.True(t, label.Fixed)
}

func TestLoadLuaLevel(t *testing.T) {
	r := ecs.NewRegistry()
	engine := scripting.NewEngine(nil)
	t.Cleanup(engine.Close)
	engine.Bind(r)
	stub := &stubLoader{}
	store := assets.NewStore("", stub, nil)

	loaded, err := level.Load(r, store, engine, filepath.Join("testdata", "level.lua"), 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"images/tank-panther-right.png", "images/bullet.png"}, stub.loaded, "index 0 entries are kept")
	require.Len(t, loaded.Entities, 2)
	assert.Zero(t, loaded.MapWidth)

	player, err := r.GetEntityByTag("player")
	require.NoError(t, err)
	tr := ecs.GetComponent[components.Transform](r, player)
	assert.Equal(t, components.Vec2{X: 10, Y: 20}, tr.Position)
	assert.Equal(t, components.Vec2{X: 2, Y: 2}, tr.Scale)
	assert.Equal(t, 45.0, tr.Rotation)

	enemy := loaded.Entities[1]
	script := ecs.GetComponent[components.Script](r, enemy)
	require.NotNil(t, script.Update)
	require.NoError(t, engine.Call(script.Update, enemy, 7, 0))
	assert.Equal(t, components.Vec2{X: 307, Y: 300}, ecs.GetComponent[components.Transform](r, enemy).Position)
}

func TestLuaLevelRequiresEngine(t *testing.T) {
	_, err := level.Load(ecs.NewRegistry(), nil, nil, filepath.Join("testdata", "level.lua"), 0)
	assert.Error(t, err)
}

func TestUnknownLevelFormat(t *testing.T) {
	_, err := level.Load(ecs.NewRegistry(), nil, nil, "level.json", 0)
	assert.ErrorIs(t, err, level.ErrUnknownFormat)
}

func TestLuaLevelTypeErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.lua")
	require.NoError(t, os.WriteFile(path, []byte(`Level = { entities = { { tag = 5 } } }`), 0o644))

	engine := scripting.NewEngine(nil)
	t.Cleanup(engine.Close)

	_, err := level.Load(ecs.NewRegistry(), nil, engine, path, 0)
	assert.ErrorContains(t, err, "Level.entities[0].tag: expected string")
}

func TestTilemapRejectsMalformedCells(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.map")
	require.NoError(t, os.WriteFile(path, []byte("00,01\n0x,11\n"), 0o644))

	_, _, _, err := level.LoadTilemap(ecs.NewRegistry(), level.TilemapDef{MapFile: path, TileSize: 32})
	assert.ErrorContains(t, err, `bad tile "0x" on line 2`)
}

func TestTilemapHonoursDeclaredSize(t *testing.T) {
	r := ecs.NewRegistry()
	tiles, w, h, err := level.LoadTilemap(r, level.TilemapDef{
		MapFile:  filepath.Join("testdata", "small.map"),
		NumRows:  1,
		NumCols:  2,
		TileSize: 16,
	})
	require.NoError(t, err)

	assert.Len(t, tiles, 2)
	assert.Equal(t, 32, w)
	assert.Equal(t, 16, h)
}

func TestDuplicateTagFailsLoad(t *testing.T) {
	r := ecs.NewRegistry()
	loader := level.NewLoader(nil, nil, nil)
	def := &level.Definition{Entities: []level.EntityDef{{Tag: "player"}, {Tag: "player"}}}

	_, err := loader.Apply(r, def, ".", 0)

	assert.ErrorIs(t, err, ecs.ErrTagInUse)
}
