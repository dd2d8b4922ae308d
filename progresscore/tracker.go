// Package progresscore provides the progress-track state shared by the
// dashboard views. It knows nothing about rendering; the pretty package
// reads snapshots from it.
package progresscore

import (
	"sync"
	"time"
)

// Track is one progress bar's worth of state: how many units completed out
// of how many, and when this track last (re)started.
type Track struct {
	Completed int
	Total     int
	StartedAt time.Time
}

// Elapsed returns wall-clock time since the track's own start.
func (t Track) Elapsed() time.Duration {
	if t.StartedAt.IsZero() {
		return 0
	}
	return time.Since(t.StartedAt)
}

// Ratio returns completion as 0.0 to 1.0.
func (t Track) Ratio() float64 {
	if t.Total <= 0 {
		return 0
	}
	return float64(t.Completed) / float64(t.Total)
}

// Tracker maintains the outer track and the combined middle+inner track.
// Counts only move forward within a track; the inner track restarts from
// zero (with a fresh clock) at every ResetInner.
type Tracker struct {
	outer Track
	inner Track
	mu    sync.RWMutex

	onUpdate func()
}

// NewTracker creates a tracker with the outer track sized for outerTotal
// units and the inner track empty until the first ResetInner.
func NewTracker(outerTotal int) *Tracker {
	now := time.Now()
	return &Tracker{
		outer: Track{Total: outerTotal, StartedAt: now},
	}
}

// SetOnUpdate sets a callback invoked after every state change.
func (pt *Tracker) SetOnUpdate(fn func()) {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	pt.onUpdate = fn
}

func (pt *Tracker) notify() {
	pt.mu.RLock()
	fn := pt.onUpdate
	pt.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// SetOuter records the outer loop's new completed count. Counts are
// clamped to the track total and never move backwards.
func (pt *Tracker) SetOuter(current int) {
	pt.mu.Lock()
	if current > pt.outer.Completed {
		pt.outer.Completed = current
	}
	if pt.outer.Completed > pt.outer.Total {
		pt.outer.Completed = pt.outer.Total
	}
	pt.mu.Unlock()
	pt.notify()
}

// AdvanceInner credits units to the inner track, clamped to its total.
func (pt *Tracker) AdvanceInner(units int) {
	if units <= 0 {
		return
	}
	pt.mu.Lock()
	pt.inner.Completed += units
	if pt.inner.Completed > pt.inner.Total {
		pt.inner.Completed = pt.inner.Total
	}
	pt.mu.Unlock()
	pt.notify()
}

// ResetInner restarts the inner track at 0 out of newTotal with a fresh
// clock. This is a real reset, not a rewind: each outer iteration
// allocates its own batch of leaf units.
func (pt *Tracker) ResetInner(newTotal int) {
	pt.mu.Lock()
	pt.inner = Track{Total: newTotal, StartedAt: time.Now()}
	pt.mu.Unlock()
	pt.notify()
}

// Snapshot returns copies of both tracks, safe to render from any
// goroutine.
func (pt *Tracker) Snapshot() (outer, inner Track) {
	pt.mu.RLock()
	defer pt.mu.RUnlock()
	return pt.outer, pt.inner
}
