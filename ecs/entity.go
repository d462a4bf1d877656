package ecs

import (
	"maps"
	"slices"
	"sync/atomic"
)

// EntityId identifies an entity within the process. Ids are never reused.
type EntityId uint64

var lastEntityId atomic.Uint64

// NewEntityId allocates a fresh, non-zero EntityId.
func NewEntityId() EntityId {
	return EntityId(lastEntityId.Add(1))
}

// Components is the view filters have of an entity: which named components
// it currently carries.
type Components interface {
	HasComponent(name string) bool
	ComponentCount() int
}

// Handle is an entity that a World can index. Two handles refer to the same
// entity when their ids are equal.
type Handle interface {
	Components
	Id() EntityId
}

// Entity is a bag of named components. A component is present when it is set
// to a non-nil value.
type Entity struct {
	id         EntityId
	components map[string]any
}

// NewEntity creates an entity carrying a copy of the given components.
// Nil values are dropped.
func NewEntity(components map[string]any) *Entity {
	e := &Entity{
		id:         NewEntityId(),
		components: make(map[string]any, len(components)),
	}
	for name, value := range components {
		e.Set(name, value)
	}
	return e
}

// Id returns the entity's identifier.
func (e *Entity) Id() EntityId {
	return e.id
}

// Set attaches value under name, replacing any previous value. Setting nil
// removes the component.
//
// Changing which components are present does not update any World views; the
// entity must be deleted from and re-added to the World for that.
func (e *Entity) Set(name string, value any) *Entity {
	if value == nil {
		delete(e.components, name)
		return e
	}
	e.components[name] = value
	return e
}

// Remove detaches the named component.
func (e *Entity) Remove(name string) *Entity {
	delete(e.components, name)
	return e
}

// Get returns the named component, or nil if it is not present.
func (e *Entity) Get(name string) any {
	return e.components[name]
}

// HasComponent reports whether the named component is present.
func (e *Entity) HasComponent(name string) bool {
	_, ok := e.components[name]
	return ok
}

// ComponentCount returns the number of present components.
func (e *Entity) ComponentCount() int {
	return len(e.components)
}

// ComponentNames returns the names of the present components, sorted.
func (e *Entity) ComponentNames() []string {
	return slices.Sorted(maps.Keys(e.components))
}

// GetComponent returns the named component of e as a T.
func GetComponent[T any](e *Entity, name string) (T, bool) {
	v, ok := e.components[name].(T)
	return v, ok
}
