package ecs

import "slices"

// Filter reports whether an entity's components satisfy some condition.
type Filter func(c Components) bool

// Filters lets a single Filter be passed wherever a FilterSource is accepted.
func (f Filter) Filters() []Filter {
	return []Filter{f}
}

// All matches entities that carry every named component.
func All(names ...string) Filter {
	names = slices.Clone(names)
	return func(c Components) bool {
		for _, name := range names {
			if !c.HasComponent(name) {
				return false
			}
		}
		return true
	}
}

// Any matches entities that carry at least one of the named components.
// With no names it matches nothing.
func Any(names ...string) Filter {
	names = slices.Clone(names)
	return func(c Components) bool {
		for _, name := range names {
			if c.HasComponent(name) {
				return true
			}
		}
		return false
	}
}

// Exact matches entities whose component set is exactly the named set.
// Repeated names count once.
func Exact(names ...string) Filter {
	distinct := slices.Compact(slices.Sorted(slices.Values(names)))
	all := All(distinct...)
	return func(c Components) bool {
		if c.ComponentCount() != len(distinct) {
			return false
		}
		return all(c)
	}
}

// RejectAny matches entities that carry none of the named components.
// With no names it matches everything.
func RejectAny(names ...string) Filter {
	anyOf := Any(names...)
	return func(c Components) bool {
		return !anyOf(c)
	}
}

// RejectAll matches entities that are missing at least one of the named
// components.
func RejectAll(names ...string) Filter {
	all := All(names...)
	return func(c Components) bool {
		return !all(c)
	}
}
