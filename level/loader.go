package level

import (
	"encoding/csv"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/plus3/skirmish/assets"
	"github.com/plus3/skirmish/components"
	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/scripting"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// TilesGroup is the group every tilemap tile joins.
const TilesGroup = "tiles"

var ErrUnknownFormat = eris.New("unknown level format")

// Loaded summarises a loaded level.
type Loaded struct {
	MapWidth  int
	MapHeight int
	Entities  []ecs.Entity
}

// Loader turns level files into entities.
type Loader struct {
	log    *zap.Logger
	store  *assets.Store
	engine *scripting.Engine
}

// NewLoader creates a loader. engine may be nil when only YAML levels are used.
func NewLoader(store *assets.Store, engine *scripting.Engine, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log, store: store, engine: engine}
}

// Read decodes the level at path. The format is chosen by extension: .lua runs the
// file and reads the global Level table, .yaml and .yml parse it as YAML.
func (l *Loader) Read(path string) (*Definition, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lua":
		if l.engine == nil {
			return nil, eris.Errorf("lua level %s needs a scripting engine", path)
		}
		if err := l.engine.DoFile(path); err != nil {
			return nil, err
		}
		def, err := decodeLua(l.engine.Global("Level"))
		if err != nil {
			return nil, eris.Wrapf(err, "decode %s", path)
		}
		return def, nil
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "read level %s", path)
		}
		return decodeYAML(data)
	}
	return nil, eris.Wrapf(ErrUnknownFormat, "%s", path)
}

// Load reads the level at path and populates r. now is the current tick, used to
// start animations and emitter timers.
func (l *Loader) Load(r *ecs.Registry, path string, now uint64) (Loaded, error) {
	def, err := l.Read(path)
	if err != nil {
		return Loaded{}, err
	}
	return l.Apply(r, def, filepath.Dir(path), now)
}

// Apply loads the assets of def, then spawns its tiles and entities. dir is used
// to resolve the tilemap file.
func (l *Loader) Apply(r *ecs.Registry, def *Definition, dir string, now uint64) (Loaded, error) {
	var out Loaded

	for _, a := range def.Assets {
		if err := l.loadAsset(a); err != nil {
			return out, err
		}
	}

	if def.Tilemap != nil {
		tm := *def.Tilemap
		if !filepath.IsAbs(tm.MapFile) {
			tm.MapFile = filepath.Join(dir, tm.MapFile)
		}
		tiles, w, h, err := LoadTilemap(r, tm)
		if err != nil {
			return out, err
		}
		out.MapWidth, out.MapHeight = w, h
		out.Entities = append(out.Entities, tiles...)
	}

	for i, ed := range def.Entities {
		e, err := spawn(r, ed, now)
		if err != nil {
			return out, eris.Wrapf(err, "entity %d", i)
		}
		out.Entities = append(out.Entities, e)
	}

	l.log.Info("level loaded",
		zap.Int("assets", len(def.Assets)),
		zap.Int("entities", len(out.Entities)),
		zap.Int("map_width", out.MapWidth),
		zap.Int("map_height", out.MapHeight),
	)
	return out, nil
}

func (l *Loader) loadAsset(a AssetDef) error {
	if l.store == nil {
		return nil
	}
	switch a.Type {
	case "texture":
		return l.store.AddTexture(a.ID, a.File)
	case "font":
		return l.store.AddFont(a.ID, a.File, a.FontSize)
	}
	return eris.Errorf("asset %q has unknown type %q", a.ID, a.Type)
}

// LoadTilemap spawns one tile per cell of the map file. Each cell holds two digits:
// the source row then the source column in the tile texture. It returns the tiles
// and the map size in pixels.
func LoadTilemap(r *ecs.Registry, tm TilemapDef) ([]ecs.Entity, int, int, error) {
	f, err := os.Open(tm.MapFile)
	if err != nil {
		return nil, 0, 0, eris.Wrapf(err, "open tilemap %s", tm.MapFile)
	}
	defer f.Close()

	rows, err := readTileRows(f)
	if err != nil {
		return nil, 0, 0, eris.Wrapf(err, "parse tilemap %s", tm.MapFile)
	}

	scale := tm.Scale
	if scale == 0 {
		scale = 1
	}
	numRows := tm.NumRows
	if numRows == 0 || numRows > len(rows) {
		numRows = len(rows)
	}

	step := scale * float64(tm.TileSize)
	var tiles []ecs.Entity
	numCols := tm.NumCols
	for y := range numRows {
		cols := len(rows[y])
		if numCols > 0 {
			cols = min(cols, numCols)
		}
		for x := range cols {
			cell := rows[y][x]
			e := r.CreateEntity()
			tr := components.NewTransform(components.Vec2{X: float64(x) * step, Y: float64(y) * step})
			tr.Scale = components.Vec2{X: scale, Y: scale}
			ecs.AddComponent(r, e, tr)

			sprite := components.NewSprite(tm.TextureAssetID, tm.TileSize, tm.TileSize, 0)
			sprite.SrcRect.X = cell.col * tm.TileSize
			sprite.SrcRect.Y = cell.row * tm.TileSize
			ecs.AddComponent(r, e, sprite)
			_ = r.GroupEntity(e, TilesGroup)
			tiles = append(tiles, e)
		}
		if numCols == 0 {
			numCols = cols
		}
	}

	return tiles, int(float64(numCols) * step), int(float64(numRows) * step), nil
}

type tileCell struct {
	row, col int
}

func readTileRows(rd io.Reader) ([][]tileCell, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows [][]tileCell
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make([]tileCell, 0, len(rec))
		for _, field := range rec {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			if len(field) != 2 || !isDigit(field[0]) || !isDigit(field[1]) {
				return nil, eris.Errorf("bad tile %q on line %d", field, len(rows)+1)
			}
			row = append(row, tileCell{row: int(field[0] - '0'), col: int(field[1] - '0')})
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func spawn(r *ecs.Registry, ed EntityDef, now uint64) (ecs.Entity, error) {
	e := r.CreateEntity()
	if ed.Tag != "" {
		if err := r.TagEntity(e, ed.Tag); err != nil {
			return e, err
		}
	}
	if ed.Group != "" {
		if err := r.GroupEntity(e, ed.Group); err != nil {
			return e, err
		}
	}

	c := ed.Components
	if t := c.Transform; t != nil {
		tr := components.Transform{Position: t.Position.vec2(), Scale: t.Scale.vec2(), Rotation: t.Rotation}
		if tr.Scale == (components.Vec2{}) {
			tr.Scale = components.Vec2{X: 1, Y: 1}
		}
		ecs.AddComponent(r, e, tr)
	}
	if rb := c.RigidBody; rb != nil {
		ecs.AddComponent(r, e, components.RigidBody{Velocity: rb.Velocity.vec2()})
	}
	if s := c.Sprite; s != nil {
		sprite := components.NewSprite(s.TextureAssetID, s.Width, s.Height, s.ZIndex)
		sprite.Fixed = s.Fixed
		sprite.SrcRect.X, sprite.SrcRect.Y = s.SrcRectX, s.SrcRectY
		ecs.AddComponent(r, e, sprite)
	}
	if a := c.Animation; a != nil {
		ecs.AddComponent(r, e, components.NewAnimation(a.NumFrames, a.SpeedRate, a.Loop, now))
	}
	if b := c.BoxCollider; b != nil {
		ecs.AddComponent(r, e, components.BoxCollider{Width: b.Width, Height: b.Height, Offset: b.Offset.vec2()})
	}
	if h := c.Health; h != nil {
		ecs.AddComponent(r, e, components.Health{Percentage: h.Percentage})
	}
	if p := c.ProjectileEmitter; p != nil {
		ecs.AddComponent(r, e, components.NewProjectileEmitter(
			p.Velocity.vec2(),
			seconds(p.RepeatFrequency),
			seconds(p.Duration),
			p.HitPercentage,
			p.Friendly,
			now,
		))
	}
	if k := c.KeyboardController; k != nil {
		ecs.AddComponent(r, e, components.KeyboardControlled{
			Up:    k.Up.vec2(),
			Right: k.Right.vec2(),
			Down:  k.Down.vec2(),
			Left:  k.Left.vec2(),
		})
	}
	if cf := c.CameraFollow; cf != nil && cf.Follow {
		ecs.AddComponent(r, e, components.CameraFollow{})
	}
	if tl := c.TextLabel; tl != nil {
		ecs.AddComponent(r, e, components.TextLabel{
			Position: tl.Position.vec2(),
			Text:     tl.Text,
			AssetID:  tl.FontID,
			Color:    rgba(tl.Color),
			Fixed:    tl.Fixed,
		})
	}
	if c.OnUpdateScript != nil {
		ecs.AddComponent(r, e, components.Script{Update: c.OnUpdateScript})
	}
	return e, nil
}

func seconds(s float64) uint64 {
	if s <= 0 {
		return 0
	}
	return uint64(s * 1000)
}

// rgba converts up to four channel values; alpha defaults to opaque.
func rgba(c []int) color.RGBA {
	out := color.RGBA{A: 255}
	ch := []*uint8{&out.R, &out.G, &out.B, &out.A}
	for i, v := range c {
		if i >= len(ch) {
			break
		}
		*ch[i] = uint8(max(0, min(v, 255)))
	}
	return out
}

// Load reads the level at path into r with a default loader.
func Load(r *ecs.Registry, store *assets.Store, engine *scripting.Engine, path string, now uint64) (Loaded, error) {
	return NewLoader(store, engine, nil).Load(r, path, now)
}
