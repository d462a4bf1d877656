package ecs

import (
	"slices"
	"sync/atomic"
)

// FilterSource is anything an Archetype can be composed from.
type FilterSource interface {
	Filters() []Filter
}

var lastArchetypeId atomic.Uint32

// Archetype selects entities by component shape. It is the logical AND of
// an ordered list of filters, evaluated in order and stopping at the first
// rejection, so cheaper filters should come first.
//
// Archetypes are identified by instance: two archetypes built from the same
// filters are still distinct, and each World keeps a separate view for each.
type Archetype struct {
	id      uint32
	filters []Filter
}

// NewArchetype creates an archetype from filters and other archetypes.
// Archetypes are flattened into the new filter list rather than nested.
func NewArchetype(parts ...FilterSource) *Archetype {
	filters := make([]Filter, 0, len(parts))
	for _, part := range parts {
		filters = append(filters, part.Filters()...)
	}
	return &Archetype{
		id:      lastArchetypeId.Add(1),
		filters: filters,
	}
}

// ID returns the archetype's unique token.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Filters returns a copy of the archetype's filter list.
func (a *Archetype) Filters() []Filter {
	return slices.Clone(a.filters)
}

// Len returns the number of filters.
func (a *Archetype) Len() int {
	return len(a.filters)
}

// FilterEntity reports whether c passes every filter. An archetype without
// filters accepts everything.
func (a *Archetype) FilterEntity(c Components) bool {
	for _, filter := range a.filters {
		if !filter(c) {
			return false
		}
	}
	return true
}
