package telemetry

import "github.com/pthm-cable/ecosim/components"

// LifetimeStats tracks per-organism statistics over its lifetime.
type LifetimeStats struct {
	Species   components.Species
	BirthTick int32

	Meals    int // successful feeds
	Children int // births credited at staging
}

// LifetimeTracker manages per-organism lifetime statistics, keyed by
// organism ID.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new organism.
func (lt *LifetimeTracker) Register(id uint32, species components.Species, birthTick int32) {
	lt.stats[id] = &LifetimeStats{
		Species:   species,
		BirthTick: birthTick,
	}
}

// Get returns the lifetime stats for an organism, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// Remove removes an organism's stats and returns them.
func (lt *LifetimeTracker) Remove(id uint32) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// RecordMeal increments the meal count.
func (lt *LifetimeTracker) RecordMeal(id uint32) {
	if s := lt.stats[id]; s != nil {
		s.Meals++
	}
}

// RecordChild increments the offspring count.
func (lt *LifetimeTracker) RecordChild(id uint32) {
	if s := lt.stats[id]; s != nil {
		s.Children++
	}
}

// Len returns the number of tracked organisms.
func (lt *LifetimeTracker) Len() int {
	return len(lt.stats)
}
