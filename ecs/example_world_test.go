package ecs_test

import (
	"fmt"

	"github.com/plus3/sparsecs/ecs"
)

// ExampleWorld_RunSystem shows a system visiting the entities that match its
// archetype, most recently added first.
func ExampleWorld_RunSystem() {
	world := ecs.NewWorld[*ecs.Entity]()

	world.AddEntity(ecs.NewEntity(map[string]any{"name": "knight", "hp": 30, "pos": &Position{}}))
	world.AddEntity(ecs.NewEntity(map[string]any{"name": "tree", "pos": &Position{}}))
	world.AddEntity(ecs.NewEntity(map[string]any{"name": "wolf", "hp": 12, "pos": &Position{}, "vel": &Velocity{}}))

	living := ecs.NewArchetype(ecs.All("hp", "pos"))
	report := ecs.NewSystem(living, func(e *ecs.Entity, dt float64) {
		name, _ := ecs.GetComponent[string](e, "name")
		hp, _ := ecs.GetComponent[int](e, "hp")
		fmt.Printf("%s: %d\n", name, hp)
	})

	world.RunSystem(report, 0)

	// Output:
	// wolf: 12
	// knight: 30
}

// ExampleWithOrder demonstrates a system that visits its entities in a stable,
// caller-defined order.
func ExampleWithOrder() {
	world := ecs.NewWorld[*ecs.Entity]()
	for _, task := range []struct {
		name     string
		priority int
	}{{"render", 2}, {"input", 0}, {"audio", 2}, {"physics", 1}} {
		world.AddEntity(ecs.NewEntity(map[string]any{"name": task.name, "priority": task.priority}))
	}

	byPriority := ecs.WithOrder(func(a, b *ecs.Entity) bool {
		pa, _ := ecs.GetComponent[int](a, "priority")
		pb, _ := ecs.GetComponent[int](b, "priority")
		return pa <= pb
	})
	system := ecs.NewSystem(ecs.NewArchetype(ecs.All("priority")), func(e *ecs.Entity, dt float64) {
		fmt.Println(e.Get("name"))
	}, byPriority)

	world.RunSystem(system, 0)

	// Output:
	// input
	// physics
	// render
	// audio
}

// ExampleCommands shows deferring a structural change requested from inside a
// running system.
func ExampleCommands() {
	world := ecs.NewWorld[*ecs.Entity]()
	scheduler := ecs.NewScheduler(world)

	world.AddEntity(ecs.NewEntity(map[string]any{"hp": 0, "name": "goblin"}))
	world.AddEntity(ecs.NewEntity(map[string]any{"hp": 5, "name": "troll"}))

	alive := ecs.NewArchetype(ecs.All("hp"))
	scheduler.Register(ecs.NewSystem(alive, func(e *ecs.Entity, dt float64) {
		if hp, _ := ecs.GetComponent[int](e, "hp"); hp <= 0 {
			scheduler.Commands().Delete(e)
		}
	}, ecs.WithName[*ecs.Entity]("reaper")))

	scheduler.Once(1.0 / 60)

	for e := range world.Query(alive) {
		fmt.Println(e.Get("name"))
	}

	// Output:
	// troll
}
