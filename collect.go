package arcadia

import (
	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
)

// CycleStats summarizes one collection cycle.
type CycleStats struct {
	// Passes is the number of collector passes the cycle ran.
	Passes int
	// Reclaimed counts the allocations the heap reclaimed.
	Reclaimed int
	// Destroyed is the sum of what the finalize hooks reported.
	Destroyed int
	// Live is the number of allocations left on the heap.
	Live int
}

// RunCollectionCycle runs collector passes until a pass destroys nothing.
// Each pass calls every PreMark hook with purge, every Visit hook, runs the
// collector, and sums what the Finalize hooks report. Finalizing one entry
// can make another collectible only on the next pass, so a single pass is
// not enough.
//
// Hooks must not call Acquire, Release or RunCollectionCycle.
func (r *Runtime) RunCollectionCycle(purge bool) (CycleStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.refs == 0 {
		return CycleStats{}, rterrors.New(rterrors.StatusEnvironmentFailed, "collection cycle", "runtime not started")
	}
	return r.runCycle(purge)
}

func (r *Runtime) runCycle(purge bool) (CycleStats, error) {
	var stats CycleStats
	for {
		hooks := r.hooks()
		for _, cb := range hooks {
			if cb.PreMark != nil {
				cb.PreMark(purge)
			}
		}
		for _, cb := range hooks {
			if cb.Visit != nil {
				cb.Visit(r.heap)
			}
		}
		reclaimed, err := r.heap.Run()
		if err != nil {
			return stats, err
		}
		destroyed := 0
		for _, cb := range hooks {
			if cb.Finalize != nil {
				destroyed += cb.Finalize()
			}
		}
		stats.Passes++
		stats.Reclaimed += reclaimed
		stats.Destroyed += destroyed
		r.logger.Debug("collector pass",
			"pass", stats.Passes,
			"purge", purge,
			"reclaimed", reclaimed,
			"destroyed", destroyed,
		)
		if destroyed == 0 {
			break
		}
	}
	stats.Live = r.heap.Stats().Live
	return stats, nil
}

// hooks snapshots the registered callbacks so hooks may register or
// unregister callbacks while a pass runs.
func (r *Runtime) hooks() []Callbacks {
	r.cbMu.Lock()
	defer r.cbMu.Unlock()
	var out []Callbacks
	for n := r.callbacks; n != nil; n = n.next {
		out = append(out, n.callbacks)
	}
	return out
}
