// Package flowcore provides the shared event contract between the task
// executor and its displays. Both sides import this package, neither
// imports the other.
package flowcore

import "time"

// Level classifies log events emitted during a task run.
type Level int

const (
	LevelInfo Level = iota
	LevelStart
	LevelProgress
	LevelComplete
	LevelWarning
	LevelSummary
)

// Iconic controls whether to use Unicode icons or ASCII fallback.
// This should be set by the pretty package during Setup().
var Iconic = true

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelStart:
		return "START"
	case LevelProgress:
		return "PROGRESS"
	case LevelComplete:
		return "COMPLETE"
	case LevelWarning:
		return "WARNING"
	case LevelSummary:
		return "SUMMARY"
	default:
		return "???"
	}
}

func (l Level) Icon() string {
	if !Iconic {
		switch l {
		case LevelStart:
			return ">"
		case LevelProgress:
			return "-"
		case LevelComplete:
			return "+"
		case LevelWarning:
			return "!"
		case LevelSummary:
			return "="
		default:
			return "o"
		}
	}
	switch l {
	case LevelStart:
		return "▶"
	case LevelProgress:
		return "·"
	case LevelComplete:
		return "✓"
	case LevelWarning:
		return "▲"
	case LevelSummary:
		return "Σ"
	default:
		return "●"
	}
}

// Observer is the contract through which the executor reports events
// without depending on how (or whether) they are displayed. Callbacks are
// synchronous and delivered in the exact order the events occur.
type Observer interface {
	// OnLogMessage reports a human-readable event.
	OnLogMessage(message string, level Level)
	// OnOuterProgress reports that the outer loop advanced; current is the
	// new completed count.
	OnOuterProgress(current, total int)
	// OnInnerProgress reports that the combined middle+inner track
	// advanced by the given number of units.
	OnInnerProgress(advance int)
	// OnResetInner reports that a new outer iteration started and the
	// inner track must restart at 0 out of newTotal.
	OnResetInner(newTotal int)
	// OnEarlyTermination reports that the current inner loop stopped
	// short; remaining units should be credited to the inner track so it
	// still reaches its total.
	OnEarlyTermination(remaining int)
}

// Message is a timestamped log line as recorded by the executor.
type Message struct {
	At   time.Time
	Text string
}

// nullObserver ignores every event. It backs headless execution and tests
// that exercise the executor without any terminal.
type nullObserver struct{}

func (n nullObserver) OnLogMessage(message string, level Level) {}
func (n nullObserver) OnOuterProgress(current, total int)       {}
func (n nullObserver) OnInnerProgress(advance int)              {}
func (n nullObserver) OnResetInner(newTotal int)                {}
func (n nullObserver) OnEarlyTermination(remaining int)         {}

// NewNullObserver returns an Observer that does nothing. Use this when you
// need the interface but no visual output.
func NewNullObserver() Observer {
	return nullObserver{}
}
