// Package operations holds post-run actions that sit above the executor
// but below the CLI, currently the machine-readable run report.
package operations

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joshyorko/taskflow/common"
	"github.com/joshyorko/taskflow/executor"
	"gopkg.in/yaml.v2"
)

// RunReport is the serializable form of one run's outcome.
type RunReport struct {
	Version            string  `yaml:"version" json:"version"`
	StartedAt          string  `yaml:"started_at" json:"started_at"`
	TotalSeconds       float64 `yaml:"total_seconds" json:"total_seconds"`
	OuterIterations    int     `yaml:"outer_iterations" json:"outer_iterations"`
	MiddleIterations   int     `yaml:"middle_iterations" json:"middle_iterations"`
	InnerIterations    int     `yaml:"inner_iterations" json:"inner_iterations"`
	EarlyTerminations  int     `yaml:"early_terminations" json:"early_terminations"`
	Efficiency         float64 `yaml:"efficiency_percent" json:"efficiency_percent"`
	IterationsPerSec   float64 `yaml:"iterations_per_second" json:"iterations_per_second"`
	Cancelled          bool    `yaml:"cancelled" json:"cancelled"`
	MessageCount       int     `yaml:"message_count" json:"message_count"`
}

// NewRunReport condenses finalized stats into report form.
func NewRunReport(stats *executor.TaskStats, config executor.Config, cancelled bool) RunReport {
	return RunReport{
		Version:           common.Version,
		StartedAt:         stats.StartTime.Format(time.RFC3339),
		TotalSeconds:      stats.TotalTime.Seconds(),
		OuterIterations:   stats.OuterIterations,
		MiddleIterations:  stats.MiddleIterations,
		InnerIterations:   stats.InnerIterations,
		EarlyTerminations: stats.EarlyTerminations,
		Efficiency:        stats.Efficiency(config),
		IterationsPerSec:  stats.IterationsPerSecond(),
		Cancelled:         cancelled,
		MessageCount:      len(stats.Messages),
	}
}

// WriteReportFile writes the report to the given path; the extension
// picks the format, YAML unless the path ends in .json.
func WriteReportFile(path string, report RunReport) error {
	var blob []byte
	var err error

	if strings.EqualFold(filepath.Ext(path), ".json") {
		blob, err = json.MarshalIndent(report, "", "  ")
	} else {
		blob, err = yaml.Marshal(report)
	}
	if err != nil {
		return fmt.Errorf("could not serialize run report: %w", err)
	}

	err = os.WriteFile(path, blob, 0o644)
	if err != nil {
		return fmt.Errorf("could not write run report %q: %w", path, err)
	}

	common.Debug("Run report written to %s", path)
	return nil
}
