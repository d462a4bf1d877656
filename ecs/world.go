package ecs

import (
	"iter"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// ViewState is the lifecycle state of an archetype's view within a World.
type ViewState int

const (
	// ViewUninitialized means no system over the archetype has run yet.
	ViewUninitialized ViewState = iota
	// ViewReady means the view exists and is maintained on every add and delete.
	ViewReady
)

func (s ViewState) String() string {
	switch s {
	case ViewUninitialized:
		return "uninitialized"
	case ViewReady:
		return "ready"
	default:
		return "unknown"
	}
}

// view caches the ids of the tracked entities that matched an archetype the
// last time their membership was computed.
type view struct {
	archetype *Archetype
	members   *SparseSet[EntityId]
	iterating int
}

// World tracks a population of entities and, for every archetype a system has
// been run over, a view of the entities that match it.
//
// View membership is computed when an entity is added or deleted. Changing an
// entity's components in place does not move it between views: delete it and
// add it again so every view re-tests it. Adding an entity that is already
// tracked re-tests it and inserts it into any view it now matches, but never
// removes it from a view.
//
// A World is not safe for concurrent use. Adding or deleting an entity in a
// way that would change a view while a system is iterating that view panics;
// use Commands to defer such changes until the system has finished.
type World[E Handle] struct {
	entities *intmap.Map[EntityId, E]
	tracked  *SparseSet[EntityId]
	views    *intmap.Map[uint32, *view]
	// ready holds the views in initialization order
	ready     []*view
	iterating int
	logger    *zap.Logger
}

// WorldOption configures a World at construction.
type WorldOption func(*worldConfig)

type worldConfig struct {
	capacity int
	logger   *zap.Logger
}

// WithCapacity presizes the World for n entities.
func WithCapacity(n int) WorldOption {
	return func(c *worldConfig) {
		c.capacity = n
	}
}

// WithLogger sets the logger used for view lifecycle events.
func WithLogger(logger *zap.Logger) WorldOption {
	return func(c *worldConfig) {
		c.logger = logger
	}
}

// NewWorld creates an empty World.
func NewWorld[E Handle](opts ...WorldOption) *World[E] {
	cfg := worldConfig{
		capacity: 256,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &World[E]{
		entities: intmap.New[EntityId, E](cfg.capacity),
		tracked:  NewSparseSet[EntityId](cfg.capacity),
		views:    intmap.New[uint32, *view](16),
		logger:   cfg.logger,
	}
}

// AddEntity starts tracking entity and inserts it into every ready view whose
// archetype it matches. Views that are not ready yet pick it up when they are
// first built.
func (w *World[E]) AddEntity(entity E) {
	id := entity.Id()
	if w.iterating > 0 {
		for _, v := range w.ready {
			if v.iterating > 0 && !v.members.Has(id) && v.archetype.FilterEntity(entity) {
				panic("ecs: entity added to a view while a system is iterating it")
			}
		}
	}

	w.entities.Put(id, entity)
	w.tracked.Add(id)

	for _, v := range w.ready {
		if v.archetype.FilterEntity(entity) {
			v.members.Add(id)
		}
	}
}

// DeleteEntity stops tracking entity and removes it from every ready view.
// Deleting an untracked entity does nothing.
func (w *World[E]) DeleteEntity(entity E) {
	w.DeleteEntityId(entity.Id())
}

// DeleteEntityId is DeleteEntity by id.
func (w *World[E]) DeleteEntityId(id EntityId) {
	if w.iterating > 0 {
		for _, v := range w.ready {
			if v.iterating > 0 && v.members.Has(id) {
				panic("ecs: entity deleted from a view while a system is iterating it")
			}
		}
	}

	w.tracked.Delete(id)
	w.entities.Del(id)

	for _, v := range w.ready {
		v.members.Delete(id)
	}
}

// HasEntity reports whether an entity with the given id is tracked.
func (w *World[E]) HasEntity(id EntityId) bool {
	return w.tracked.Has(id)
}

// Entity returns the tracked entity with the given id.
func (w *World[E]) Entity(id EntityId) (E, bool) {
	return w.entities.Get(id)
}

// Len returns the number of tracked entities.
func (w *World[E]) Len() int {
	return w.tracked.Len()
}

// Entities returns an iterator over every tracked entity, most recently
// stored first.
func (w *World[E]) Entities() iter.Seq[E] {
	return w.iterIds(w.tracked)
}

// ViewState reports whether the World has built a view for archetype.
func (w *World[E]) ViewState(archetype *Archetype) ViewState {
	if _, ok := w.views.Get(archetype.id); ok {
		return ViewReady
	}
	return ViewUninitialized
}

// ViewLen returns the number of entities in archetype's view, or zero if the
// view has not been built.
func (w *World[E]) ViewLen(archetype *Archetype) int {
	v, ok := w.views.Get(archetype.id)
	if !ok {
		return 0
	}
	return v.members.Len()
}

// Query returns an iterator over the entities in archetype's view, building
// the view first if needed. Entities are visited most recently stored first.
func (w *World[E]) Query(archetype *Archetype) iter.Seq[E] {
	v := w.resolveView(archetype)
	inner := w.iterIds(v.members)
	return func(yield func(E) bool) {
		w.enter(v)
		defer w.leave(v)
		inner(yield)
	}
}

// RunSystem calls the system's update function once for every entity in its
// archetype's view, building the view on first use. Ordered systems visit a
// sorted copy of the view; others visit the view most recently stored first.
func (w *World[E]) RunSystem(system *System[E], dt float64) {
	v := w.resolveView(system.archetype)

	w.enter(v)
	defer w.leave(v)

	if system.order == nil {
		for id := range v.members.Iter() {
			entity, _ := w.entities.Get(id)
			system.update(entity, dt)
		}
		return
	}

	ids := v.members.Dense()
	entities := make([]E, len(ids))
	for i, id := range ids {
		entities[i], _ = w.entities.Get(id)
	}
	for _, entity := range SortStable(entities, system.order) {
		system.update(entity, dt)
	}
}

// resolveView returns archetype's view, building it from every tracked entity the
// first time it is requested.
func (w *World[E]) resolveView(archetype *Archetype) *view {
	if v, ok := w.views.Get(archetype.id); ok {
		return v
	}

	v := &view{
		archetype: archetype,
		members:   NewSparseSet[EntityId](w.tracked.Len()),
	}
	for _, id := range w.tracked.Dense() {
		entity, _ := w.entities.Get(id)
		if archetype.FilterEntity(entity) {
			v.members.Add(id)
		}
	}

	w.views.Put(archetype.id, v)
	w.ready = append(w.ready, v)

	w.logger.Debug("built archetype view",
		zap.Uint32("archetype", archetype.id),
		zap.Int("filters", len(archetype.filters)),
		zap.Int("scanned", w.tracked.Len()),
		zap.Int("members", v.members.Len()),
	)
	return v
}

func (w *World[E]) enter(v *view) {
	v.iterating++
	w.iterating++
}

func (w *World[E]) leave(v *view) {
	v.iterating--
	w.iterating--
}

func (w *World[E]) iterIds(set *SparseSet[EntityId]) iter.Seq[E] {
	return func(yield func(E) bool) {
		for id := range set.Iter() {
			entity, _ := w.entities.Get(id)
			if !yield(entity) {
				return
			}
		}
	}
}
