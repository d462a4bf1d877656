package ecs

// WorldStats is a snapshot of a World's population and views.
type WorldStats struct {
	EntityCount int
	ViewCount   int
	Views       []ViewStats
}

// ViewStats describes one ready view.
type ViewStats struct {
	ArchetypeId uint32
	FilterCount int
	EntityCount int
}

// CollectStats returns a snapshot of the World. Views are listed in the order
// they were built.
func (w *World[E]) CollectStats() WorldStats {
	stats := WorldStats{
		EntityCount: w.tracked.Len(),
		ViewCount:   len(w.ready),
		Views:       make([]ViewStats, 0, len(w.ready)),
	}
	for _, v := range w.ready {
		stats.Views = append(stats.Views, ViewStats{
			ArchetypeId: v.archetype.id,
			FilterCount: len(v.archetype.filters),
			EntityCount: v.members.Len(),
		})
	}
	return stats
}
