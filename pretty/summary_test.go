package pretty

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/joshyorko/taskflow/executor"
	"github.com/joshyorko/taskflow/flowcore"
	"github.com/joshyorko/taskflow/logbuf"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  time.Duration
		expected string
	}{
		{"zero", 0, "00:00:00"},
		{"seconds", 42 * time.Second, "00:00:42"},
		{"minutes", 3*time.Minute + 5*time.Second, "00:03:05"},
		{"hours", 2*time.Hour + 30*time.Minute + 9*time.Second, "02:30:09"},
		{"negative_clamps", -5 * time.Second, "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatElapsed(tt.elapsed); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRenderSummaryContents(t *testing.T) {
	config := executor.Config{OuterIterations: 2, MiddleIterations: 2, MaxInnerIterations: 5}
	stats := &executor.TaskStats{
		OuterIterations:   2,
		MiddleIterations:  4,
		InnerIterations:   15,
		EarlyTerminations: 3,
		TotalTime:         90 * time.Second,
	}

	var out bytes.Buffer
	RenderSummary(&out, stats, config)
	text := out.String()

	for _, fragment := range []string{
		"Execution Summary",
		"00:01:30",
		"75.0%",  // 15 of 20 possible inner iterations
		"0.17",   // 15 iterations over 90 seconds
	} {
		if !strings.Contains(text, fragment) {
			t.Errorf("summary should contain %q\n%s", fragment, text)
		}
	}
}

func TestRenderSummaryWithoutElapsedTimeSkipsRate(t *testing.T) {
	var out bytes.Buffer
	RenderSummary(&out, &executor.TaskStats{}, executor.Config{})

	if strings.Contains(out.String(), "Avg Iterations/Second") {
		t.Error("rate line should be omitted when total time is zero")
	}
}

func TestRenderRecentMessagesShowsLevelIcons(t *testing.T) {
	oldIconic := flowcore.Iconic
	defer func() { flowcore.Iconic = oldIconic }()
	flowcore.Iconic = false

	buffer := logbuf.NewLogBuffer(5)
	buffer.Add(flowcore.LevelWarning, "careful")

	var out bytes.Buffer
	RenderRecentMessages(&out, buffer, 5)

	if !strings.Contains(out.String(), "! [WARNING]") {
		t.Errorf("expected ASCII level icon before the tag:\n%s", out.String())
	}
}

func TestRenderRecentMessages(t *testing.T) {
	buffer := logbuf.NewLogBuffer(20)
	for _, message := range []string{"alpha", "beta", "gamma"} {
		buffer.Add(flowcore.LevelProgress, message)
	}
	buffer.Add(flowcore.LevelWarning, "delta")

	var out bytes.Buffer
	RenderRecentMessages(&out, buffer, 2)
	text := out.String()

	if strings.Contains(text, "alpha") || strings.Contains(text, "beta") {
		t.Error("only the two most recent messages should be shown")
	}
	if !strings.Contains(text, "gamma") || !strings.Contains(text, "delta") {
		t.Errorf("recent messages missing:\n%s", text)
	}
	if !strings.Contains(text, "[WARNING]") {
		t.Errorf("level tag missing:\n%s", text)
	}
}
