package ecs_test

import (
	"testing"

	"github.com/plus3/sparsecs/ecs"
	"github.com/stretchr/testify/assert"
)

func TestComponentRegistry(t *testing.T) {
	registry := ecs.NewComponentRegistry(HP, Pos)

	assert.Equal(t, uint(0), registry.Register(HP))
	assert.Equal(t, uint(2), registry.Register(Vel))
	assert.Equal(t, 3, registry.Len())
	assert.Equal(t, []string{HP, Pos, Vel}, registry.Names())

	_, ok := registry.Lookup(Name)
	assert.False(t, ok)

	names := registry.Names()
	names[0] = Name
	assert.Equal(t, []string{HP, Pos, Vel}, registry.Names())

	sig := ecs.NewSignature(registry, HP)
	assert.Equal(t, []string{HP}, sig.ComponentNames())
}

func TestSignature(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	sig := ecs.NewSignature(registry, Pos, HP)

	assert.True(t, sig.HasComponent(HP))
	assert.True(t, sig.HasComponent(Pos))
	assert.False(t, sig.HasComponent(Vel))
	assert.Equal(t, 2, sig.ComponentCount())
	assert.Equal(t, []string{Pos, HP}, sig.ComponentNames())

	// bits beyond the initial size grow the set
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		registry.Register(name)
	}
	sig.Add("j")
	assert.True(t, sig.HasComponent("j"))
	assert.Equal(t, 3, sig.ComponentCount())

	sig.Clear(HP)
	sig.Clear("never-registered")
	assert.False(t, sig.HasComponent(HP))
	assert.Equal(t, 2, sig.ComponentCount())
}

func TestTaggedEntityIds(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	a := ecs.NewTaggedEntity(registry, HP)
	b := ecs.NewTaggedEntity(registry, HP)

	assert.NotEqual(t, a.Id(), b.Id())
	assert.NotEqual(t, a.Id(), ecs.NewEntity(nil).Id())
}

func TestEntity(t *testing.T) {
	e := ecs.NewEntity(map[string]any{HP: 10, Pos: nil, Name: "orc"})

	assert.NotZero(t, e.Id())
	assert.True(t, e.HasComponent(HP))
	assert.False(t, e.HasComponent(Pos), "nil values are not components")
	assert.Equal(t, 2, e.ComponentCount())
	assert.Equal(t, []string{HP, Name}, e.ComponentNames())

	hp, ok := ecs.GetComponent[int](e, HP)
	assert.True(t, ok)
	assert.Equal(t, 10, hp)

	_, ok = ecs.GetComponent[string](e, HP)
	assert.False(t, ok)

	e.Set(HP, nil)
	assert.False(t, e.HasComponent(HP))
	assert.Nil(t, e.Get(HP))

	e.Set(Vel, &Velocity{}).Remove(Name)
	assert.Equal(t, []string{Vel}, e.ComponentNames())
}
