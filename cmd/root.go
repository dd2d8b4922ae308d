package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/joshyorko/taskflow/common"
	"github.com/joshyorko/taskflow/executor"
	"github.com/joshyorko/taskflow/pretty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

const (
	minOuter, maxOuter   = 1, 1000
	minMiddle, maxMiddle = 1, 10
	minInner, maxInner   = 1, 20
	minSleep, maxSleep   = 0.01, 1.0
)

var (
	versionFlag bool
	debugFlag   bool
	traceFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "taskflow",
	Short: "A full-screen CLI task runner simulation",
	Long: `taskflow runs a simulated three-level nested task and renders its
progress in a full-screen terminal dashboard: dual progress bars, a
scrolling message log, and a final summary report.

Examples:
  taskflow                     # Run with defaults
  taskflow -o 50 -m 3 -i 15    # Custom iteration counts
  taskflow --sleep 0.1         # Slower execution for visibility
  taskflow --headless          # Plain log output, no dashboard`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		common.DefineVerbosity(false, viper.GetBool("debug"), viper.GetBool("trace"))
	},
	Run: func(cmd *cobra.Command, args []string) {
		if versionFlag {
			common.Stdout("%s\n", common.Version)
			return
		}
		runFlow()
	},
}

// Execute is the CLI entry point used by main.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		pretty.Exit(common.ExitFailure, "Error: %v", err)
	}
}

func init() {
	persistent := rootCmd.PersistentFlags()
	persistent.BoolVar(&debugFlag, "debug", false, "Turn on debugging output.")
	persistent.BoolVar(&traceFlag, "trace", false, "Turn on tracing output.")

	flags := rootCmd.Flags()
	flags.IntP("outer", "o", 100, fmt.Sprintf("Number of outer loop iterations (%d-%d).", minOuter, maxOuter))
	flags.IntP("middle", "m", 5, fmt.Sprintf("Number of middle loop iterations (%d-%d).", minMiddle, maxMiddle))
	flags.IntP("inner", "i", 10, fmt.Sprintf("Maximum inner loop iterations (%d-%d).", minInner, maxInner))
	flags.Float64P("sleep", "s", 0.05, fmt.Sprintf("Base sleep time in seconds (%.2f-%.1f).", minSleep, maxSleep))
	flags.Float64("chance", executor.DefaultEarlyExitChance, "Early termination probability per inner iteration (0-1).")
	flags.Bool("headless", false, "Run without the full-screen dashboard.")
	flags.String("report", "", "Write a YAML (or .json) run report to the given file.")
	flags.BoolVarP(&versionFlag, "version", "v", false, "Just show taskflow version and exit.")

	viper.SetEnvPrefix("TASKFLOW")
	viper.AutomaticEnv()
	viper.BindPFlag("debug", persistent.Lookup("debug"))
	viper.BindPFlag("trace", persistent.Lookup("trace"))
	viper.BindPFlag("outer", flags.Lookup("outer"))
	viper.BindPFlag("middle", flags.Lookup("middle"))
	viper.BindPFlag("inner", flags.Lookup("inner"))
	viper.BindPFlag("sleep", flags.Lookup("sleep"))
	viper.BindPFlag("chance", flags.Lookup("chance"))
	viper.BindPFlag("headless", flags.Lookup("headless"))
	viper.BindPFlag("report", flags.Lookup("report"))
}

// buildConfig validates the flag values and assembles the executor
// configuration. The executor itself assumes well-formed values, so every
// range check lives here, before construction.
func buildConfig() executor.Config {
	outer := viper.GetInt("outer")
	middle := viper.GetInt("middle")
	inner := viper.GetInt("inner")
	sleep := viper.GetFloat64("sleep")
	chance := viper.GetFloat64("chance")

	pretty.Guard(outer >= minOuter && outer <= maxOuter, common.ExitValidation,
		"Outer iterations must be in range %d-%d, got %d", minOuter, maxOuter, outer)
	pretty.Guard(middle >= minMiddle && middle <= maxMiddle, common.ExitValidation,
		"Middle iterations must be in range %d-%d, got %d", minMiddle, maxMiddle, middle)
	pretty.Guard(inner >= minInner && inner <= maxInner, common.ExitValidation,
		"Inner iterations must be in range %d-%d, got %d", minInner, maxInner, inner)
	pretty.Guard(sleep >= minSleep && sleep <= maxSleep, common.ExitValidation,
		"Sleep base must be in range %.2f-%.1f seconds, got %v", minSleep, maxSleep, sleep)
	pretty.Guard(chance >= 0 && chance <= 1, common.ExitValidation,
		"Early termination chance must be in range 0-1, got %v", chance)

	return executor.Config{
		OuterIterations:    outer,
		MiddleIterations:   middle,
		MaxInnerIterations: inner,
		SleepBase:          time.Duration(sleep * float64(time.Second)),
		EarlyExitChance:    chance,
	}
}

// warnSmallTerminal advises about cramped terminals without refusing to
// run.
func warnSmallTerminal() {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return
	}
	if width < 80 || height < 24 {
		pretty.Warning(fmt.Sprintf(
			"Warning: Terminal size may be too small. Current: %dx%d, recommended: at least 80x24",
			width, height))
	}
}
