package handler

import (
	"sync/atomic"

	"github.com/Philipp01105/logz/core"
)

// Stats tracks sink statistics
type Stats struct {
	// Separate atomic counters per level, indexed by Level.Index
	written [len(core.Levels)]atomic.Uint64
	failed  [len(core.Levels)]atomic.Uint64
	// filtered counts entries the sink's filter rejected
	filtered atomic.Uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementWritten atomically increments the written counter for a level
func (s *Stats) IncrementWritten(level core.Level) {
	if i := level.Index(); i >= 0 {
		s.written[i].Add(1)
	}
}

// IncrementFailed atomically increments the failed counter for a level
func (s *Stats) IncrementFailed(level core.Level) {
	if i := level.Index(); i >= 0 {
		s.failed[i].Add(1)
	}
}

// IncrementFiltered atomically increments the filtered counter
func (s *Stats) IncrementFiltered() {
	s.filtered.Add(1)
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	for i := range s.written {
		s.written[i].Store(0)
		s.failed[i].Store(0)
	}
	s.filtered.Store(0)
}

// Add folds snap into the counters. Used to carry totals of a retired
// sink over to its replacement.
func (s *Stats) Add(snap Snapshot) {
	for i, level := range core.Levels {
		s.written[i].Add(snap.Written[level])
		s.failed[i].Add(snap.Failed[level])
	}
	s.filtered.Add(snap.Filtered)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Written  map[core.Level]uint64
	Failed   map[core.Level]uint64
	Filtered uint64
}

// TotalWritten returns the written count across all levels
func (s Snapshot) TotalWritten() uint64 {
	var n uint64
	for _, v := range s.Written {
		n += v
	}
	return n
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	snap := Snapshot{
		Written:  make(map[core.Level]uint64, len(core.Levels)),
		Failed:   make(map[core.Level]uint64, len(core.Levels)),
		Filtered: s.filtered.Load(),
	}
	for i, level := range core.Levels {
		snap.Written[level] = s.written[i].Load()
		snap.Failed[level] = s.failed[i].Load()
	}
	return snap
}
