package ecs

import (
	"context"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs systems in registration order against one World and applies
// the commands they queued once every system has run.
type Scheduler[E Handle] struct {
	world       *World[E]
	commands    *Commands[E]
	systems     []*System[E]
	systemStats []*systemStatsInternal
}

// NewScheduler creates a new scheduler for the given world.
func NewScheduler[E Handle](world *World[E]) *Scheduler[E] {
	return &Scheduler[E]{
		world:    world,
		commands: NewCommands[E](),
		systems:  make([]*System[E], 0),
	}
}

// Register appends a system to the run order.
func (s *Scheduler[E]) Register(system *System[E]) {
	s.systems = append(s.systems, system)
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        system.name,
		minDuration: time.Duration(1<<63 - 1),
	})
}

// World returns the world the scheduler runs against.
func (s *Scheduler[E]) World() *World[E] {
	return s.world
}

// Commands returns the buffer flushed at the end of every Once.
func (s *Scheduler[E]) Commands() *Commands[E] {
	return s.commands
}

// Once executes all registered systems once with the given delta time.
func (s *Scheduler[E]) Once(dt float64) {
	for i, system := range s.systems {
		start := time.Now()
		s.world.RunSystem(system, dt)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	s.commands.Flush(s.world)
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler[E]) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler[E]) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
