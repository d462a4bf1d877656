package ecs_test

import "github.com/plus3/sparsecs/ecs"

// Common test component names
const (
	HP       = "hp"
	Pos      = "pos"
	Vel      = "vel"
	Name     = "name"
	Player   = "player"
	Asleep   = "asleep"
	Rotation = "rotation"
)

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

// newEntity builds an entity carrying the named components with placeholder values.
func newEntity(names ...string) *ecs.Entity {
	e := ecs.NewEntity(nil)
	for _, name := range names {
		switch name {
		case Pos:
			e.Set(name, &Position{})
		case Vel:
			e.Set(name, &Velocity{})
		default:
			e.Set(name, true)
		}
	}
	return e
}

// collect runs system against world and returns the entities it visited, in order.
func collect(world *ecs.World[*ecs.Entity], archetype *ecs.Archetype, opts ...ecs.SystemOption[*ecs.Entity]) []*ecs.Entity {
	var visited []*ecs.Entity
	system := ecs.NewSystem(archetype, func(e *ecs.Entity, dt float64) {
		visited = append(visited, e)
	}, opts...)
	world.RunSystem(system, 0)
	return visited
}
