// Package level loads level files into a registry. A level is either a Lua script
// assigning a global Level table or a YAML document with the same layout.
package level

import (
	"github.com/plus3/skirmish/components"
	lua "github.com/yuin/gopher-lua"
)

// Definition is the decoded content of a level file.
type Definition struct {
	Assets   []AssetDef  `yaml:"assets"`
	Tilemap  *TilemapDef `yaml:"tilemap"`
	Entities []EntityDef `yaml:"entities"`
}

type AssetDef struct {
	Type     string  `yaml:"type"`
	ID       string  `yaml:"id"`
	File     string  `yaml:"file"`
	FontSize float64 `yaml:"font_size"`
}

// TilemapDef describes a tile grid. MapFile is resolved relative to the level file.
type TilemapDef struct {
	MapFile        string  `yaml:"map_file"`
	TextureAssetID string  `yaml:"texture_asset_id"`
	NumRows        int     `yaml:"num_rows"`
	NumCols        int     `yaml:"num_cols"`
	TileSize       int     `yaml:"tile_size"`
	Scale          float64 `yaml:"scale"`
}

type EntityDef struct {
	Tag        string        `yaml:"tag"`
	Group      string        `yaml:"group"`
	Components ComponentsDef `yaml:"components"`
}

type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec) vec2() components.Vec2 {
	return components.Vec2{X: v.X, Y: v.Y}
}

type ComponentsDef struct {
	Transform          *TransformDef          `yaml:"transform"`
	RigidBody          *RigidBodyDef          `yaml:"rigidbody"`
	Sprite             *SpriteDef             `yaml:"sprite"`
	Animation          *AnimationDef          `yaml:"animation"`
	BoxCollider        *BoxColliderDef        `yaml:"boxcollider"`
	Health             *HealthDef             `yaml:"health"`
	ProjectileEmitter  *ProjectileEmitterDef  `yaml:"projectile_emitter"`
	KeyboardController *KeyboardControllerDef `yaml:"keyboard_controller"`
	CameraFollow       *CameraFollowDef       `yaml:"camera_follow"`
	TextLabel          *TextLabelDef          `yaml:"text_label"`

	// OnUpdateScript is only available from Lua levels.
	OnUpdateScript *lua.LFunction `yaml:"-" lua:"on_update_script"`
}

type TransformDef struct {
	Position Vec     `yaml:"position"`
	Scale    Vec     `yaml:"scale"`
	Rotation float64 `yaml:"rotation"`
}

type RigidBodyDef struct {
	Velocity Vec `yaml:"velocity"`
}

type SpriteDef struct {
	TextureAssetID string `yaml:"texture_asset_id"`
	Width          int    `yaml:"width"`
	Height         int    `yaml:"height"`
	ZIndex         int    `yaml:"z_index"`
	Fixed          bool   `yaml:"fixed"`
	SrcRectX       int    `yaml:"src_rect_x"`
	SrcRectY       int    `yaml:"src_rect_y"`
}

type AnimationDef struct {
	NumFrames int  `yaml:"num_frames"`
	SpeedRate int  `yaml:"speed_rate"`
	Loop      bool `yaml:"loop"`
}

type BoxColliderDef struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Offset Vec `yaml:"offset"`
}

type HealthDef struct {
	Percentage int `yaml:"health_percentage"`
}

// ProjectileEmitterDef times are in seconds.
type ProjectileEmitterDef struct {
	Velocity        Vec     `yaml:"projectile_velocity"`
	Duration        float64 `yaml:"projectile_duration"`
	RepeatFrequency float64 `yaml:"repeat_frequency"`
	HitPercentage   int     `yaml:"hit_percentage_damage"`
	Friendly        bool    `yaml:"friendly"`
}

type KeyboardControllerDef struct {
	Up    Vec `yaml:"up_velocity"`
	Right Vec `yaml:"right_velocity"`
	Down  Vec `yaml:"down_velocity"`
	Left  Vec `yaml:"left_velocity"`
}

type CameraFollowDef struct {
	Follow bool `yaml:"follow"`
}

type TextLabelDef struct {
	Position Vec    `yaml:"position"`
	Text     string `yaml:"text"`
	FontID   string `yaml:"font_asset_id"`
	Color    []int  `yaml:"color"`
	Fixed    bool   `yaml:"fixed"`
}
