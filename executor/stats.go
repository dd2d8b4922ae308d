package executor

import (
	"time"

	"github.com/joshyorko/taskflow/flowcore"
)

// TaskStats holds the counters for one task run. The executor owns it
// exclusively while running; displays only ever see snapshots or the
// finalized value.
type TaskStats struct {
	OuterIterations   int
	MiddleIterations  int
	InnerIterations   int
	EarlyTerminations int
	StartTime         time.Time
	TotalTime         time.Duration
	Messages          []flowcore.Message

	finalized bool
}

// NewTaskStats returns fresh zeroed stats with the clock started now.
func NewTaskStats() *TaskStats {
	return &TaskStats{StartTime: time.Now()}
}

// AddMessage appends a timestamped message. Messages are kept in
// chronological order and never dropped on this side; bounded retention is
// the display's concern.
func (it *TaskStats) AddMessage(text string) {
	it.Messages = append(it.Messages, flowcore.Message{At: time.Now(), Text: text})
}

// Finalize computes the total elapsed time. The first call wins; repeated
// calls leave TotalTime untouched, so a driver that finalizes on the
// cancellation path cannot skew an already completed run.
func (it *TaskStats) Finalize() {
	if it.finalized {
		return
	}
	it.finalized = true
	it.TotalTime = time.Since(it.StartTime)
}

// Finalized reports whether Finalize has run.
func (it *TaskStats) Finalized() bool {
	return it.finalized
}

// Efficiency is the percentage of the theoretical maximum inner
// iterations that actually ran; early terminations push it below 100.
func (it *TaskStats) Efficiency(config Config) float64 {
	max := config.OuterIterations * config.MiddleIterations * config.MaxInnerIterations
	if max <= 0 {
		return 0
	}
	return float64(it.InnerIterations) / float64(max) * 100
}

// IterationsPerSecond is the average inner-iteration rate over the whole
// run, zero until the stats are finalized with a positive elapsed time.
func (it *TaskStats) IterationsPerSecond() float64 {
	if it.TotalTime <= 0 {
		return 0
	}
	return float64(it.InnerIterations) / it.TotalTime.Seconds()
}
