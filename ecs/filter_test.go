package ecs_test

import (
	"testing"

	"github.com/plus3/sparsecs/ecs"
	"github.com/stretchr/testify/assert"
)

func TestFilters(t *testing.T) {
	entity := newEntity(HP, Pos)

	tests := []struct {
		name     string
		filter   ecs.Filter
		expected bool
	}{
		{"all present", ecs.All(HP, Pos), true},
		{"all missing one", ecs.All(HP, Vel), false},
		{"all empty", ecs.All(), true},
		{"any one present", ecs.Any(Vel, Pos), true},
		{"any none present", ecs.Any(Vel, Name), false},
		{"any empty", ecs.Any(), false},
		{"exact match", ecs.Exact(HP, Pos), true},
		{"exact match any order", ecs.Exact(Pos, HP), true},
		{"exact subset", ecs.Exact(HP), false},
		{"exact superset", ecs.Exact(HP, Pos, Vel), false},
		{"exact same size different set", ecs.Exact(HP, Vel), false},
		{"exact duplicate names", ecs.Exact(HP, Pos, HP), true},
		{"reject any absent", ecs.RejectAny(Vel), true},
		{"reject any present", ecs.RejectAny(Vel, HP), false},
		{"reject any empty", ecs.RejectAny(), true},
		{"reject all has one", ecs.RejectAll(HP, Vel), true},
		{"reject all has every", ecs.RejectAll(HP, Pos), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter(entity))
		})
	}
}

func TestRejectAllSingleName(t *testing.T) {
	entity := newEntity(HP, Pos)
	assert.False(t, ecs.RejectAll(HP)(entity))
	assert.True(t, ecs.RejectAll(HP, Vel)(entity))
}

func TestExactEmpty(t *testing.T) {
	assert.True(t, ecs.Exact()(ecs.NewEntity(nil)))
	assert.False(t, ecs.Exact()(newEntity(HP)))
}

func TestFilterCapturesNames(t *testing.T) {
	names := []string{HP, Pos}
	filter := ecs.All(names...)

	names[1] = Vel
	assert.True(t, filter(newEntity(HP, Pos)))
}

func TestFiltersOnSignature(t *testing.T) {
	registry := ecs.NewComponentRegistry(HP, Pos, Vel)
	sig := ecs.NewSignature(registry, HP, Pos)

	assert.True(t, ecs.All(HP, Pos)(sig))
	assert.False(t, ecs.All(HP, Vel)(sig))
	assert.True(t, ecs.Any(Vel, Pos)(sig))
	assert.True(t, ecs.Exact(HP, Pos)(sig))
	assert.False(t, ecs.Exact(HP)(sig))
	assert.True(t, ecs.RejectAny(Vel)(sig))
	assert.True(t, ecs.RejectAll(HP, Vel)(sig))
}
