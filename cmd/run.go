package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joshyorko/taskflow/common"
	"github.com/joshyorko/taskflow/executor"
	"github.com/joshyorko/taskflow/flowcore"
	"github.com/joshyorko/taskflow/logbuf"
	"github.com/joshyorko/taskflow/operations"
	"github.com/joshyorko/taskflow/pretty"
	"github.com/spf13/viper"
)

// runFlow is the top-level driver: it validates configuration, wires the
// executor to a display, runs the simulation, and renders the final
// report on every exit path.
func runFlow() {
	config := buildConfig()
	warnSmallTerminal()

	common.Log("taskflow %s", common.Version)
	common.Debug("Configuration: outer=%d, middle=%d, inner=%d, sleep=%v, chance=%v",
		config.OuterIterations, config.MiddleIterations, config.MaxInnerIterations,
		config.SleepBase, config.EarlyExitChance)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if viper.GetBool("headless") || !pretty.Interactive {
		runHeadless(ctx, config)
		return
	}
	runDashboard(ctx, config)
}

func runHeadless(ctx context.Context, config executor.Config) {
	observer := pretty.NewPlainObserver()
	task := executor.NewTaskExecutor(config, observer)

	stats, err := task.Execute(ctx)
	cancelled := handleRunError(stats, err)
	if cancelled {
		observer.OnLogMessage("Operation cancelled by user", flowcore.LevelWarning)
	}

	finishRun(stats, config, observer.Buffer(), cancelled)
}

func runDashboard(ctx context.Context, config executor.Config) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dashboard := pretty.NewFlowDashboard(config.OuterIterations, config.InnerTotal(), os.Stdout)
	dashboard.SetOnInterrupt(cancel)

	task := executor.NewTaskExecutor(config, dashboard)

	pretty.RenderSplash(os.Stdout)
	dashboard.Start()
	defer dashboard.Stop()

	stats, err := task.Execute(ctx)
	cancelled := handleRunError(stats, err)
	if cancelled {
		dashboard.OnLogMessage("Operation cancelled by user", flowcore.LevelWarning)
		dashboard.SetStatus(pretty.StatusCancelled)
		time.Sleep(500 * time.Millisecond)
	} else {
		dashboard.SetStatus(pretty.StatusCompleted)
		time.Sleep(time.Second)
	}

	dashboard.Stop()
	finishRun(stats, config, dashboard.Buffer(), cancelled)
}

// handleRunError finalizes stats on the cancellation path (the executor
// leaves that to its caller) and reports whether the run was cancelled.
// Unexpected errors leave through pretty.Exit.
func handleRunError(stats *executor.TaskStats, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		stats.Finalize()
		return true
	}
	pretty.Exit(common.ExitFailure, "Error: %v", err)
	return false
}

func finishRun(stats *executor.TaskStats, config executor.Config, buffer *logbuf.LogBuffer, cancelled bool) {
	pretty.RenderSummary(os.Stdout, stats, config)
	pretty.RenderRecentMessages(os.Stdout, buffer, 10)

	reportFile := viper.GetString("report")
	if len(reportFile) > 0 {
		err := operations.WriteReportFile(reportFile, operations.NewRunReport(stats, config, cancelled))
		pretty.Guard(err == nil, common.ExitFailure, "%v", err)
	}

	if cancelled {
		pretty.Exit(common.ExitInterrupted, "Interrupted by user")
	}
	pretty.Success("taskflow completed successfully!")
}
