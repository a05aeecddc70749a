package ecs_test

import (
	"fmt"

	"github.com/plus3/skirmish/ecs"
)

// ExampleRegistry shows the frame lifecycle: entities created during a frame are
// attached to systems by Update, and kills are applied at the next Update.
func ExampleRegistry() {
	registry := ecs.NewRegistry()
	movement := ecs.AddSystem(registry, newMovementSystem())

	ship := registry.CreateEntity()
	ecs.AddComponent(registry, ship, Position{X: 0, Y: 0})
	ecs.AddComponent(registry, ship, Velocity{DX: 10, DY: 5})

	rock := registry.CreateEntity()
	ecs.AddComponent(registry, rock, Position{X: 50, Y: 50})

	fmt.Printf("Before update: %d moving\n", len(movement.Entities()))
	registry.Update()
	fmt.Printf("After update: %d moving\n", len(movement.Entities()))

	movement.Update(registry, 0.5)
	pos := ecs.GetComponent[Position](registry, ship)
	fmt.Printf("Ship at (%.1f, %.1f)\n", pos.X, pos.Y)

	registry.KillEntity(ship)
	registry.Update()
	fmt.Printf("Ship alive: %v, moving: %d\n", registry.IsAlive(ship), len(movement.Entities()))

	// Output:
	// Before update: 0 moving
	// After update: 1 moving
	// Ship at (5.0, 2.5)
	// Ship alive: false, moving: 0
}

// ExampleRegistry_TagEntity shows unique tags and shared groups.
func ExampleRegistry_TagEntity() {
	registry := ecs.NewRegistry()

	player := registry.CreateEntity()
	_ = registry.TagEntity(player, "player")

	for range 3 {
		enemy := registry.CreateEntity()
		_ = registry.GroupEntity(enemy, "enemies")
	}

	found, _ := registry.GetEntityByTag("player")
	fmt.Println("player:", found)
	fmt.Println("enemies:", registry.GetEntitiesByGroup("enemies"))

	err := registry.TagEntity(registry.CreateEntity(), "player")
	fmt.Println("duplicate tag rejected:", err != nil)

	// Output:
	// player: entity(0)
	// enemies: [entity(1) entity(2) entity(3)]
	// duplicate tag rejected: true
}
