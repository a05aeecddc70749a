package ecs_test

import (
	"testing"

	"github.com/plus3/skirmish/ecs"
)

func BenchmarkCreateEntity(b *testing.B) {
	r := ecs.NewRegistry()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := r.CreateEntity()
		ecs.AddComponent(r, e, Position{X: 1.0, Y: 2.0})
		ecs.AddComponent(r, e, Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkCreateAndKillRecycled(b *testing.B) {
	r := ecs.NewRegistry()
	ecs.AddSystem(r, newMovementSystem())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := r.CreateEntity()
		ecs.AddComponent(r, e, Position{})
		ecs.AddComponent(r, e, Velocity{})
		r.Update()
		r.KillEntity(e)
		r.Update()
	}
}

func BenchmarkGetComponent(b *testing.B) {
	r := ecs.NewRegistry()
	e := r.CreateEntity()
	ecs.AddComponent(r, e, Position{X: 1.0, Y: 2.0})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ecs.GetComponent[Position](r, e)
	}
}

func BenchmarkSystemIteration(b *testing.B) {
	r := ecs.NewRegistry(ecs.WithCapacity(10000))
	movement := ecs.AddSystem(r, newMovementSystem())
	for i := 0; i < 10000; i++ {
		e := r.CreateEntity()
		ecs.AddComponent(r, e, Position{X: float32(i)})
		ecs.AddComponent(r, e, Velocity{DX: 1, DY: 1})
	}
	r.Update()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		movement.Update(r, 0.016)
	}
}

func BenchmarkSignatureContains(b *testing.B) {
	entity := ecs.NewSignature(1, 3, 5, 70, 130)
	system := ecs.NewSignature(3, 70)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = entity.Contains(system)
	}
}
