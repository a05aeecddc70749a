package systems

import (
	"github.com/plus3/skirmish/components"
	"github.com/plus3/skirmish/ecs"
)

// CameraMovementSystem centres the camera on the followed entity, clamped to the map.
type CameraMovementSystem struct {
	ecs.BaseSystem
}

func NewCameraMovementSystem() *CameraMovementSystem {
	s := &CameraMovementSystem{}
	ecs.RequireComponent[components.CameraFollow](&s.BaseSystem)
	ecs.RequireComponent[components.Transform](&s.BaseSystem)
	return s
}

func (s *CameraMovementSystem) Update(r *ecs.Registry, camera *components.Rect, mapWidth, mapHeight int) {
	for _, e := range s.Entities() {
		tr := ecs.GetComponent[components.Transform](r, e)

		camera.X = clamp(int(tr.Position.X)-camera.W/2, 0, mapWidth-camera.W)
		camera.Y = clamp(int(tr.Position.Y)-camera.H/2, 0, mapHeight-camera.H)
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
