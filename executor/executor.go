// Package executor drives the three-level nested task simulation. It holds
// no rendering state and performs no I/O beyond the simulated work sleep;
// everything worth displaying leaves through a flowcore.Observer.
package executor

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/joshyorko/taskflow/flowcore"
)

// DefaultEarlyExitChance is the default per-iteration probability of an
// inner loop stopping short; the CLI uses it when --chance is not given.
// A chance of zero disables early termination entirely.
const DefaultEarlyExitChance = 0.03

// Config carries the loop dimensions for one run. The executor assumes
// well-formed values; range validation belongs to the CLI boundary.
type Config struct {
	OuterIterations    int
	MiddleIterations   int
	MaxInnerIterations int
	SleepBase          time.Duration
	EarlyExitChance    float64
}

// InnerTotal is the number of leaf units one outer iteration allocates.
func (it Config) InnerTotal() int {
	return it.MiddleIterations * it.MaxInnerIterations
}

// SleepFunc suspends for the given duration, returning early with the
// context error when the run is cancelled. It is the executor's only
// suspension point.
type SleepFunc func(ctx context.Context, duration time.Duration) error

func defaultSleep(ctx context.Context, duration time.Duration) error {
	if duration <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// TaskExecutor runs the nested loops and reports progress through its
// observer. Not safe for concurrent use; one run at a time.
type TaskExecutor struct {
	config   Config
	observer flowcore.Observer
	stats    *TaskStats

	random func() float64
	sleep  SleepFunc
}

// NewTaskExecutor wires an executor to the given observer. A nil observer
// means headless execution.
func NewTaskExecutor(config Config, observer flowcore.Observer) *TaskExecutor {
	if observer == nil {
		observer = flowcore.NewNullObserver()
	}
	return &TaskExecutor{
		config:   config,
		observer: observer,
		stats:    NewTaskStats(),
		random:   rand.New(rand.NewSource(time.Now().UnixNano())).Float64,
		sleep:    defaultSleep,
	}
}

// UseRandom replaces the random source. Tests use this to force or forbid
// early terminations and to pin sleep jitter.
func (it *TaskExecutor) UseRandom(random func() float64) {
	it.random = random
}

// UseSleep replaces the suspension function.
func (it *TaskExecutor) UseSleep(sleep SleepFunc) {
	it.sleep = sleep
}

// Stats exposes the current run's statistics. On the cancellation path the
// driver finalizes these itself, so elapsed time still covers the work
// done up to the interruption.
func (it *TaskExecutor) Stats() *TaskStats {
	return it.stats
}

func (it *TaskExecutor) log(message string, level flowcore.Level) {
	it.stats.AddMessage(message)
	it.observer.OnLogMessage(message, level)
}

// innerLoop executes the leaf units for one middle iteration and returns
// the number of iterations actually completed.
func (it *TaskExecutor) innerLoop(ctx context.Context, outerIdx, middleIdx int) (int, error) {
	completed := 0

	for innerIdx := 0; innerIdx < it.config.MaxInnerIterations; innerIdx++ {
		it.stats.InnerIterations++
		completed++

		// Simulated work, jittered to [0.5, 1.5] of the base sleep.
		jitter := 0.5 + it.random()
		err := it.sleep(ctx, time.Duration(jitter*float64(it.config.SleepBase)))
		if err != nil {
			return completed, err
		}

		if innerIdx > 0 && innerIdx%5 == 0 {
			it.log(fmt.Sprintf("Inner loop [%d.%d.%d]: Processing batch %d...",
				outerIdx+1, middleIdx+1, innerIdx+1, innerIdx/5+1), flowcore.LevelProgress)
		}

		it.observer.OnInnerProgress(1)

		if it.random() < it.config.EarlyExitChance {
			it.stats.EarlyTerminations++
			remaining := it.config.MaxInnerIterations - innerIdx - 1
			it.observer.OnEarlyTermination(remaining)
			it.log(fmt.Sprintf("Early exit at [%d.%d.%d] - Condition met, skipping %d remaining iterations",
				outerIdx+1, middleIdx+1, innerIdx+1, remaining), flowcore.LevelWarning)
			break
		}
	}

	return completed, nil
}

func (it *TaskExecutor) middleLoop(ctx context.Context, outerIdx int) error {
	it.log(fmt.Sprintf("Starting middle loop batch for outer iteration %d", outerIdx+1),
		flowcore.LevelStart)

	for middleIdx := 0; middleIdx < it.config.MiddleIterations; middleIdx++ {
		it.stats.MiddleIterations++

		err := it.sleep(ctx, it.config.SleepBase/2)
		if err != nil {
			return err
		}

		if middleIdx%3 == 0 {
			it.log(fmt.Sprintf("Middle loop [%d.%d]: Initializing sub-task group %d/%d",
				outerIdx+1, middleIdx+1, middleIdx+1, it.config.MiddleIterations), flowcore.LevelProgress)
		}

		_, err = it.innerLoop(ctx, outerIdx, middleIdx)
		if err != nil {
			return err
		}
	}

	it.log(fmt.Sprintf("Completed all middle iterations for outer %d", outerIdx+1),
		flowcore.LevelComplete)
	return nil
}

// Execute runs the full simulation. On cancellation the error from the
// sleep point is returned as-is and stats are left unfinalized for the
// caller to finalize.
func (it *TaskExecutor) Execute(ctx context.Context) (*TaskStats, error) {
	it.stats = NewTaskStats()

	it.log(fmt.Sprintf("Beginning main task execution with %d iterations",
		it.config.OuterIterations), flowcore.LevelStart)
	it.log(fmt.Sprintf("Configuration: %d middle loops, up to %d inner iterations each",
		it.config.MiddleIterations, it.config.MaxInnerIterations), flowcore.LevelInfo)

	milestone := it.config.OuterIterations / 10
	if milestone < 1 {
		milestone = 1
	}

	for outerIdx := 0; outerIdx < it.config.OuterIterations; outerIdx++ {
		it.stats.OuterIterations++

		it.observer.OnResetInner(it.config.InnerTotal())

		it.log(fmt.Sprintf("Outer iteration %d/%d started - Processing %d sub-tasks with %d steps each",
			outerIdx+1, it.config.OuterIterations, it.config.MiddleIterations,
			it.config.MaxInnerIterations), flowcore.LevelStart)

		err := it.middleLoop(ctx, outerIdx)
		if err != nil {
			return it.stats, err
		}

		it.observer.OnOuterProgress(outerIdx+1, it.config.OuterIterations)

		if (outerIdx+1)%milestone == 0 {
			pct := float64(outerIdx+1) / float64(it.config.OuterIterations) * 100
			it.log(fmt.Sprintf("Milestone reached: %.0f%% of outer iterations complete (%d/%d)",
				pct, outerIdx+1, it.config.OuterIterations), flowcore.LevelComplete)
		}
	}

	it.log("All outer iterations completed successfully!", flowcore.LevelComplete)
	it.stats.Finalize()
	return it.stats, nil
}
