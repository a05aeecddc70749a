// Package components holds the plain data records attached to entities.
package components

import (
	"image/color"

	lua "github.com/yuin/gopher-lua"
)

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Rect is a pixel rectangle, used for sprite source regions and the camera.
type Rect struct {
	X, Y, W, H int
}

type Transform struct {
	Position Vec2
	Scale    Vec2
	Rotation float64
}

// NewTransform returns a transform at pos with unit scale.
func NewTransform(pos Vec2) Transform {
	return Transform{Position: pos, Scale: Vec2{X: 1, Y: 1}}
}

type RigidBody struct {
	Velocity Vec2
}

type Sprite struct {
	AssetID string
	Width   int
	Height  int
	ZIndex  int
	// Fixed sprites ignore the camera offset.
	Fixed   bool
	SrcRect Rect
}

// NewSprite returns a sprite whose source region is the first frame of the texture.
func NewSprite(assetID string, width, height, z int) Sprite {
	return Sprite{
		AssetID: assetID,
		Width:   width,
		Height:  height,
		ZIndex:  z,
		SrcRect: Rect{W: width, H: height},
	}
}

type Animation struct {
	NumFrames      int
	CurrentFrame   int
	FrameSpeedRate int
	Loop           bool
	StartTime      uint64
}

func NewAnimation(frames, rate int, loop bool, now uint64) Animation {
	return Animation{
		NumFrames:      max(frames, 1),
		CurrentFrame:   0,
		FrameSpeedRate: rate,
		Loop:           loop,
		StartTime:      now,
	}
}

type BoxCollider struct {
	Width  int
	Height int
	Offset Vec2
}

type Health struct {
	Percentage int
}

type ProjectileEmitter struct {
	Velocity Vec2
	// RepeatFrequency is in milliseconds; zero disables timed emission.
	RepeatFrequency  uint64
	Duration         uint64
	HitPercentDamage int
	Friendly         bool
	LastEmissionTime uint64
}

func NewProjectileEmitter(velocity Vec2, repeat, duration uint64, damage int, friendly bool, now uint64) ProjectileEmitter {
	return ProjectileEmitter{
		Velocity:         velocity,
		RepeatFrequency:  repeat,
		Duration:         duration,
		HitPercentDamage: damage,
		Friendly:         friendly,
		LastEmissionTime: now,
	}
}

type Projectile struct {
	Friendly         bool
	HitPercentDamage int
	Duration         uint64
	StartTime        uint64
}

// KeyboardControlled holds the velocity applied for each arrow key.
type KeyboardControlled struct {
	Up, Right, Down, Left Vec2
}

// CameraFollow marks the entity the camera centres on.
type CameraFollow struct{}

type TextLabel struct {
	Position Vec2
	Text     string
	AssetID  string
	Color    color.RGBA
	Fixed    bool
}

// Script carries a Lua function called once per frame with the entity, delta time and ticks.
type Script struct {
	Update *lua.LFunction
}
