package pretty

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/joshyorko/taskflow/executor"
	"github.com/joshyorko/taskflow/logbuf"
)

var (
	summaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("170")).
			Padding(1, 2)

	summaryTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("170"))

	summaryMetricStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("45")).
				Width(30)

	summaryValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("42"))
)

// formatElapsed renders a duration as HH:MM:SS.
func formatElapsed(elapsed time.Duration) string {
	total := int(elapsed.Seconds())
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := total % 3600 / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// RenderSummary writes the final execution report: counters, elapsed
// time, iteration efficiency and average rate.
func RenderSummary(out io.Writer, stats *executor.TaskStats, config executor.Config) {
	rows := [][2]string{
		{"Total Execution Time", formatElapsed(stats.TotalTime)},
		{"Outer Iterations Completed", fmt.Sprintf("%d", stats.OuterIterations)},
		{"Middle Iterations Completed", fmt.Sprintf("%d", stats.MiddleIterations)},
		{"Inner Iterations Completed", fmt.Sprintf("%d", stats.InnerIterations)},
		{"Early Terminations", fmt.Sprintf("%d", stats.EarlyTerminations)},
		{"Iteration Efficiency", fmt.Sprintf("%.1f%%", stats.Efficiency(config))},
	}
	if stats.TotalTime > 0 {
		rows = append(rows, [2]string{"Avg Iterations/Second",
			fmt.Sprintf("%.2f", stats.IterationsPerSecond())})
	}

	var b strings.Builder
	b.WriteString(summaryTitleStyle.Render("Execution Summary"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(summaryMetricStyle.Render(row[0]))
		b.WriteString(summaryValueStyle.Render(row[1]))
		b.WriteString("\n")
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, summaryBoxStyle.Render(strings.TrimSuffix(b.String(), "\n")))
	fmt.Fprintln(out)
}

// RenderRecentMessages replays the last n entries from the display's own
// log buffer after the live view has stopped.
func RenderRecentMessages(out io.Writer, buffer *logbuf.LogBuffer, n int) {
	fmt.Fprintf(out, "%sRecent Log Messages%s\n", Bold+Cyan, Reset)

	started := buffer.StartedAt()
	for _, entry := range buffer.Recent(n) {
		elapsed := formatElapsed(entry.Time.Sub(started))
		fmt.Fprintf(out, "  %s%s%s %s%s [%s]%s %s\n",
			Faint, elapsed, Reset,
			LevelColor(entry.Level), entry.Level.Icon(), entry.Level.String(), Reset,
			entry.Message)
	}
	fmt.Fprintln(out)
}
