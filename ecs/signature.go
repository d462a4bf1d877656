package ecs

import (
	"slices"

	"github.com/willf/bitset"
)

// ComponentRegistry interns component names to small bit indices so that an
// entity's component presence can be held in a bitset.
type ComponentRegistry struct {
	bits  map[string]uint
	names []string
}

// NewComponentRegistry creates a registry pre-populated with names, in order.
func NewComponentRegistry(names ...string) *ComponentRegistry {
	r := &ComponentRegistry{
		bits: make(map[string]uint, len(names)),
	}
	for _, name := range names {
		r.Register(name)
	}
	return r
}

// Register returns the bit index for name, assigning the next free one if the
// name is new.
func (r *ComponentRegistry) Register(name string) uint {
	if bit, ok := r.bits[name]; ok {
		return bit
	}
	bit := uint(len(r.names))
	r.bits[name] = bit
	r.names = append(r.names, name)
	return bit
}

// Lookup returns the bit index for name.
func (r *ComponentRegistry) Lookup(name string) (uint, bool) {
	bit, ok := r.bits[name]
	return bit, ok
}

// Len returns the number of registered names.
func (r *ComponentRegistry) Len() int {
	return len(r.names)
}

// Names returns a copy of the registered names in bit order.
func (r *ComponentRegistry) Names() []string {
	return slices.Clone(r.names)
}

// Signature is a component presence set backed by a bitset. Names unknown to
// the registry are never present.
type Signature struct {
	registry *ComponentRegistry
	set      *bitset.BitSet
}

// NewSignature creates a signature with the named components present.
// Names are registered on first use.
func NewSignature(registry *ComponentRegistry, names ...string) Signature {
	s := Signature{
		registry: registry,
		set:      bitset.New(uint(registry.Len())),
	}
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add marks the named component present.
func (s Signature) Add(name string) {
	s.set.Set(s.registry.Register(name))
}

// Clear marks the named component absent.
func (s Signature) Clear(name string) {
	if bit, ok := s.registry.Lookup(name); ok {
		s.set.Clear(bit)
	}
}

// HasComponent reports whether the named component is present.
func (s Signature) HasComponent(name string) bool {
	bit, ok := s.registry.Lookup(name)
	return ok && s.set.Test(bit)
}

// ComponentCount returns the number of present components.
func (s Signature) ComponentCount() int {
	return int(s.set.Count())
}

// ComponentNames returns the names of the present components in bit order.
func (s Signature) ComponentNames() []string {
	names := make([]string, 0, s.set.Count())
	for i, ok := s.set.NextSet(0); ok; i, ok = s.set.NextSet(i + 1) {
		names = append(names, s.registry.names[i])
	}
	return names
}

// TaggedEntity is an entity that only records component presence, for
// callers that keep component data elsewhere.
type TaggedEntity struct {
	Signature
	id EntityId
}

// NewTaggedEntity creates a tagged entity with the named components present.
func NewTaggedEntity(registry *ComponentRegistry, names ...string) *TaggedEntity {
	return &TaggedEntity{
		Signature: NewSignature(registry, names...),
		id:        NewEntityId(),
	}
}

// Id returns the entity's identifier.
func (e *TaggedEntity) Id() EntityId {
	return e.id
}
