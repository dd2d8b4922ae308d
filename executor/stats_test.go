package executor

import (
	"testing"
	"time"
)

func TestFinalizeIsIdempotent(t *testing.T) {
	stats := NewTaskStats()
	stats.StartTime = time.Now().Add(-3 * time.Second)

	stats.Finalize()
	first := stats.TotalTime
	if first <= 0 {
		t.Fatalf("expected positive total time, got %v", first)
	}

	time.Sleep(10 * time.Millisecond)
	stats.Finalize()
	if stats.TotalTime != first {
		t.Errorf("second finalize changed total time: %v -> %v", first, stats.TotalTime)
	}
}

func TestMessagesAreChronological(t *testing.T) {
	stats := NewTaskStats()
	stats.AddMessage("first")
	stats.AddMessage("second")
	stats.AddMessage("third")

	if len(stats.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(stats.Messages))
	}
	for i := 1; i < len(stats.Messages); i++ {
		if stats.Messages[i].At.Before(stats.Messages[i-1].At) {
			t.Errorf("message %d is out of order", i)
		}
	}
	if stats.Messages[0].Text != "first" || stats.Messages[2].Text != "third" {
		t.Error("messages must keep append order")
	}
}

func TestEfficiency(t *testing.T) {
	config := Config{OuterIterations: 2, MiddleIterations: 5, MaxInnerIterations: 10}

	tests := []struct {
		name     string
		inner    int
		expected float64
	}{
		{"full_run", 100, 100},
		{"half_run", 50, 50},
		{"no_work", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := &TaskStats{InnerIterations: tt.inner}
			if got := stats.Efficiency(config); got != tt.expected {
				t.Errorf("expected %.1f, got %.1f", tt.expected, got)
			}
		})
	}

	// Zero denominator must not divide by zero.
	stats := &TaskStats{InnerIterations: 5}
	if got := stats.Efficiency(Config{}); got != 0 {
		t.Errorf("expected 0 for empty config, got %.1f", got)
	}
}

func TestIterationsPerSecond(t *testing.T) {
	stats := &TaskStats{InnerIterations: 30, TotalTime: 10 * time.Second}
	if got := stats.IterationsPerSecond(); got != 3 {
		t.Errorf("expected 3 iterations/second, got %.2f", got)
	}

	unfinalized := &TaskStats{InnerIterations: 30}
	if got := unfinalized.IterationsPerSecond(); got != 0 {
		t.Errorf("expected 0 before finalization, got %.2f", got)
	}
}
