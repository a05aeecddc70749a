package systems

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/skirmish/assets"
	"github.com/plus3/skirmish/components"
	"github.com/plus3/skirmish/ecs"
	"go.uber.org/zap"
)

// RenderSystem draws sprites ordered by z-index, offset by the camera unless fixed.
type RenderSystem struct {
	ecs.BaseSystem

	store   *assets.Store
	log     *zap.Logger
	missing map[string]struct{}
	visible []ecs.Entity
}

func NewRenderSystem(store *assets.Store, log *zap.Logger) *RenderSystem {
	if log == nil {
		log = zap.NewNop()
	}
	s := &RenderSystem{store: store, log: log, missing: make(map[string]struct{})}
	ecs.RequireComponent[components.Transform](&s.BaseSystem)
	ecs.RequireComponent[components.Sprite](&s.BaseSystem)
	return s
}

// Visible returns the entities that intersect the camera, in draw order. Fixed
// sprites are always visible. Ties in z-index keep entity order.
func (s *RenderSystem) Visible(r *ecs.Registry, camera components.Rect) []ecs.Entity {
	s.visible = s.visible[:0]
	for _, e := range s.Entities() {
		tr := ecs.GetComponent[components.Transform](r, e)
		sprite := ecs.GetComponent[components.Sprite](r, e)
		if !sprite.Fixed && outsideCamera(tr, sprite, camera) {
			continue
		}
		s.visible = append(s.visible, e)
	}
	slices.SortStableFunc(s.visible, func(a, b ecs.Entity) int {
		return ecs.GetComponent[components.Sprite](r, a).ZIndex - ecs.GetComponent[components.Sprite](r, b).ZIndex
	})
	return s.visible
}

func outsideCamera(tr *components.Transform, sprite *components.Sprite, camera components.Rect) bool {
	w := float64(sprite.Width) * tr.Scale.X
	h := float64(sprite.Height) * tr.Scale.Y
	x, y := tr.Position.X, tr.Position.Y
	return x+w < float64(camera.X) ||
		x > float64(camera.X+camera.W) ||
		y+h < float64(camera.Y) ||
		y > float64(camera.Y+camera.H)
}

func (s *RenderSystem) Draw(r *ecs.Registry, screen *ebiten.Image, camera components.Rect) {
	for _, e := range s.Visible(r, camera) {
		tr := ecs.GetComponent[components.Transform](r, e)
		sprite := ecs.GetComponent[components.Sprite](r, e)

		tex, err := s.store.GetTexture(sprite.AssetID)
		if err != nil {
			s.warnMissing(sprite.AssetID, err)
			continue
		}

		src := sprite.SrcRect
		rect := image.Rect(src.X, src.Y, src.X+src.W, src.Y+src.H)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(tr.Scale.X, tr.Scale.Y)
		if tr.Rotation != 0 {
			w := float64(src.W) * tr.Scale.X
			h := float64(src.H) * tr.Scale.Y
			op.GeoM.Translate(-w/2, -h/2)
			op.GeoM.Rotate(tr.Rotation * degToRad)
			op.GeoM.Translate(w/2, h/2)
		}
		x, y := tr.Position.X, tr.Position.Y
		if !sprite.Fixed {
			x -= float64(camera.X)
			y -= float64(camera.Y)
		}
		op.GeoM.Translate(x, y)

		screen.DrawImage(tex.SubImage(rect).(*ebiten.Image), op)
	}
}

const degToRad = math.Pi / 180

func (s *RenderSystem) warnMissing(id string, err error) {
	if _, seen := s.missing[id]; seen {
		return
	}
	s.missing[id] = struct{}{}
	s.log.Warn("sprite texture missing", zap.String("asset", id), zap.Error(err))
}

// RenderTextSystem draws text labels with fonts from the asset store.
type RenderTextSystem struct {
	ecs.BaseSystem

	store *assets.Store
}

func NewRenderTextSystem(store *assets.Store) *RenderTextSystem {
	s := &RenderTextSystem{store: store}
	ecs.RequireComponent[components.TextLabel](&s.BaseSystem)
	return s
}

func (s *RenderTextSystem) Draw(r *ecs.Registry, screen *ebiten.Image, camera components.Rect) {
	for _, e := range s.Entities() {
		label := ecs.GetComponent[components.TextLabel](r, e)
		x, y := label.Position.X, label.Position.Y
		if !label.Fixed {
			x -= float64(camera.X)
			y -= float64(camera.Y)
		}

		face, err := s.store.GetFont(label.AssetID)
		if err != nil {
			ebitenutil.DebugPrintAt(screen, label.Text, int(x), int(y))
			continue
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(label.Color)
		text.Draw(screen, label.Text, face, op)
	}
}

// RenderColliderSystem outlines collider boxes for debugging.
type RenderColliderSystem struct {
	ecs.BaseSystem
}

func NewRenderColliderSystem() *RenderColliderSystem {
	s := &RenderColliderSystem{}
	ecs.RequireComponent[components.Transform](&s.BaseSystem)
	ecs.RequireComponent[components.BoxCollider](&s.BaseSystem)
	return s
}

func (s *RenderColliderSystem) Draw(r *ecs.Registry, screen *ebiten.Image, camera components.Rect) {
	outline := color.RGBA{255, 0, 0, 255}
	for _, e := range s.Entities() {
		box := colliderBox(r, e)
		vector.StrokeRect(screen,
			float32(box.x-float64(camera.X)),
			float32(box.y-float64(camera.Y)),
			float32(box.w), float32(box.h),
			1, outline, false)
	}
}

// RenderHealthBarSystem draws a health bar and percentage under each sprite with health.
type RenderHealthBarSystem struct {
	ecs.BaseSystem
}

func NewRenderHealthBarSystem() *RenderHealthBarSystem {
	s := &RenderHealthBarSystem{}
	ecs.RequireComponent[components.Transform](&s.BaseSystem)
	ecs.RequireComponent[components.Sprite](&s.BaseSystem)
	ecs.RequireComponent[components.Health](&s.BaseSystem)
	return s
}

func (s *RenderHealthBarSystem) Draw(r *ecs.Registry, screen *ebiten.Image, camera components.Rect) {
	const barWidth, barHeight = 15, 3

	for _, e := range s.Entities() {
		tr := ecs.GetComponent[components.Transform](r, e)
		sprite := ecs.GetComponent[components.Sprite](r, e)
		health := ecs.GetComponent[components.Health](r, e)

		x := float32(tr.Position.X-float64(camera.X)) + float32(float64(sprite.Width)*tr.Scale.X)
		y := float32(tr.Position.Y - float64(camera.Y))
		pct := float32(max(0, min(health.Percentage, 100))) / 100

		vector.DrawFilledRect(screen, x, y, barWidth, barHeight, color.RGBA{100, 100, 100, 255}, false)
		vector.DrawFilledRect(screen, x, y, barWidth*pct, barHeight, HealthColor(health.Percentage), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d%%", health.Percentage), int(x), int(y)+barHeight+1)
	}
}

// HealthColor is green at 80% and above, yellow from 50% and red below.
func HealthColor(percentage int) color.RGBA {
	switch {
	case percentage >= 80:
		return color.RGBA{0, 255, 0, 255}
	case percentage >= 50:
		return color.RGBA{255, 255, 0, 255}
	}
	return color.RGBA{255, 0, 0, 255}
}
