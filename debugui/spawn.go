package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/skirmish/assets"
	"github.com/plus3/skirmish/components"
	"github.com/plus3/skirmish/ecs"
	"go.uber.org/zap"
)

// EnemyGroup is the group spawned enemies join.
const EnemyGroup = "enemies"

// EnemyParams describes an enemy created from the spawn window.
type EnemyParams struct {
	AssetID     string
	X, Y        float32
	VelocityX   float32
	VelocityY   float32
	Health      int32
	Size        int32
	Shoots      bool
	FireEveryMs int32
}

func DefaultEnemyParams() EnemyParams {
	return EnemyParams{
		AssetID:     "tank-image",
		X:           200,
		Y:           200,
		Health:      100,
		Size:        32,
		Shoots:      true,
		FireEveryMs: 1000,
	}
}

// SpawnEnemy creates a hostile entity from p. It becomes visible to systems on the
// next reconcile.
func SpawnEnemy(r *ecs.Registry, p EnemyParams, ticks uint64) ecs.Entity {
	size := int(max(p.Size, 1))
	e := r.CreateEntity()
	ecs.AddComponent(r, e, components.NewTransform(components.Vec2{X: float64(p.X), Y: float64(p.Y)}))
	ecs.AddComponent(r, e, components.RigidBody{Velocity: components.Vec2{X: float64(p.VelocityX), Y: float64(p.VelocityY)}})
	ecs.AddComponent(r, e, components.NewSprite(p.AssetID, size, size, 1))
	ecs.AddComponent(r, e, components.BoxCollider{Width: size, Height: size})
	ecs.AddComponent(r, e, components.Health{Percentage: int(min(max(p.Health, 0), 100))})
	if p.Shoots && p.FireEveryMs > 0 {
		ecs.AddComponent(r, e, components.NewProjectileEmitter(
			components.Vec2{X: 100, Y: 0}, uint64(p.FireEveryMs), 3000, 10, false, ticks))
	}
	_ = r.GroupEntity(e, EnemyGroup)
	return e
}

// SpawnWindow creates enemies at runtime.
type SpawnWindow struct {
	log    *zap.Logger
	store  *assets.Store
	params EnemyParams
	last   string
}

func NewSpawnWindow(store *assets.Store, log *zap.Logger) *SpawnWindow {
	return &SpawnWindow{log: log, store: store, params: DefaultEnemyParams()}
}

func (sw *SpawnWindow) Render(r *ecs.Registry, ticks uint64) {
	if !imgui.BeginV("Spawn", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	p := &sw.params
	imgui.InputTextWithHint("Asset", "texture id", &p.AssetID, imgui.InputTextFlagsNone, nil)
	imgui.InputFloat("X", &p.X)
	imgui.InputFloat("Y", &p.Y)
	imgui.InputFloat("Velocity X", &p.VelocityX)
	imgui.InputFloat("Velocity Y", &p.VelocityY)
	imgui.InputInt("Health", &p.Health)
	imgui.InputInt("Size", &p.Size)
	imgui.Checkbox("Shoots", &p.Shoots)
	if p.Shoots {
		imgui.InputInt("Fire Every (ms)", &p.FireEveryMs)
	}

	if imgui.Button("Spawn Enemy") {
		if sw.store != nil {
			if _, err := sw.store.GetTexture(p.AssetID); err != nil {
				sw.log.Warn("spawning enemy without texture", zap.String("asset", p.AssetID), zap.Error(err))
			}
		}
		e := SpawnEnemy(r, *p, ticks)
		sw.last = fmt.Sprintf("spawned %s", e)
	}
	if sw.last != "" {
		imgui.SameLine()
		imgui.Text(sw.last)
	}

	imgui.End()
}
