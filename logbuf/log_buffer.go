// Package logbuf keeps a bounded, append-only buffer of display-side log
// entries. It is the display's independent copy of the event stream; the
// executor keeps its own unbounded record in TaskStats.
package logbuf

import (
	"strings"
	"sync"
	"time"

	"github.com/joshyorko/taskflow/flowcore"
)

// DefaultMaxEntries is the capacity used when none is given.
const DefaultMaxEntries = 100

// LogEntry represents a single log line with metadata.
type LogEntry struct {
	Time    time.Time
	Level   flowcore.Level
	Message string
}

// LogBuffer is a thread-safe fixed-capacity buffer with FIFO eviction:
// once full, adding a new entry discards the oldest one.
type LogBuffer struct {
	entries  []LogEntry
	maxSize  int
	started  time.Time
	mu       sync.RWMutex
	onChange func()
}

// NewLogBuffer creates a log buffer holding at most maxSize entries.
func NewLogBuffer(maxSize int) *LogBuffer {
	if maxSize < 1 {
		maxSize = DefaultMaxEntries
	}
	return &LogBuffer{
		entries: make([]LogEntry, 0, maxSize),
		maxSize: maxSize,
		started: time.Now(),
	}
}

// SetOnChange sets a callback invoked after every added entry.
func (lb *LogBuffer) SetOnChange(fn func()) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.onChange = fn
}

// StartedAt returns when this buffer was created; entry timestamps are
// rendered relative to it.
func (lb *LogBuffer) StartedAt() time.Time {
	return lb.started
}

// Add appends a new log entry, evicting the oldest when over capacity.
func (lb *LogBuffer) Add(level flowcore.Level, message string) {
	lb.mu.Lock()

	lb.entries = append(lb.entries, LogEntry{
		Time:    time.Now(),
		Level:   level,
		Message: strings.TrimSpace(message),
	})
	if len(lb.entries) > lb.maxSize {
		lb.entries = lb.entries[len(lb.entries)-lb.maxSize:]
	}

	notify := lb.onChange
	lb.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Recent returns copies of the n most recent entries, oldest first.
func (lb *LogBuffer) Recent(n int) []LogEntry {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	if n <= 0 || len(lb.entries) == 0 {
		return nil
	}
	if n > len(lb.entries) {
		n = len(lb.entries)
	}

	result := make([]LogEntry, n)
	copy(result, lb.entries[len(lb.entries)-n:])
	return result
}

// All returns copies of all retained entries.
func (lb *LogBuffer) All() []LogEntry {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	result := make([]LogEntry, len(lb.entries))
	copy(result, lb.entries)
	return result
}

// Len returns the number of retained entries.
func (lb *LogBuffer) Len() int {
	lb.mu.RLock()
	defer lb.mu.RUnlock()
	return len(lb.entries)
}

// Clear removes all entries.
func (lb *LogBuffer) Clear() {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.entries = lb.entries[:0]
}

// LogStats summarizes retained entries by level.
type LogStats struct {
	Total     int
	Warnings  int
	Progress  int
	Completes int
}

func (lb *LogBuffer) Stats() LogStats {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	stats := LogStats{Total: len(lb.entries)}
	for _, e := range lb.entries {
		switch e.Level {
		case flowcore.LevelWarning:
			stats.Warnings++
		case flowcore.LevelProgress:
			stats.Progress++
		case flowcore.LevelComplete:
			stats.Completes++
		}
	}
	return stats
}
