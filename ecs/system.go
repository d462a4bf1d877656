package ecs

// UpdateFunc is called once per matching entity each time a system runs.
// dt is passed through from the caller unchanged.
type UpdateFunc[E Handle] func(entity E, dt float64)

// OrderFunc reports whether a may be visited before b. It must define a
// consistent weak ordering.
type OrderFunc[E Handle] func(a, b E) bool

// System binds update logic to the entities selected by one Archetype.
// Systems are immutable once created and may be run against any number of
// worlds.
type System[E Handle] struct {
	name      string
	archetype *Archetype
	update    UpdateFunc[E]
	order     OrderFunc[E]
}

// SystemOption configures a System at construction.
type SystemOption[E Handle] func(*System[E])

// WithName sets the name reported in scheduler statistics.
func WithName[E Handle](name string) SystemOption[E] {
	return func(s *System[E]) {
		s.name = name
	}
}

// WithOrder makes the system visit its entities in a stable order defined by
// beforeOrEqual instead of the view's storage order.
func WithOrder[E Handle](beforeOrEqual OrderFunc[E]) SystemOption[E] {
	return func(s *System[E]) {
		s.order = beforeOrEqual
	}
}

// NewSystem creates a system running update over the entities of archetype.
func NewSystem[E Handle](archetype *Archetype, update UpdateFunc[E], opts ...SystemOption[E]) *System[E] {
	if archetype == nil {
		panic("ecs: system requires an archetype")
	}
	if update == nil {
		panic("ecs: system requires an update function")
	}

	s := &System[E]{
		archetype: archetype,
		update:    update,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the system's name, which may be empty.
func (s *System[E]) Name() string {
	return s.name
}

// Archetype returns the archetype the system runs over.
func (s *System[E]) Archetype() *Archetype {
	return s.archetype
}

// Ordered reports whether the system sorts its entities before visiting them.
func (s *System[E]) Ordered() bool {
	return s.order != nil
}
