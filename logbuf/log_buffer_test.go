package logbuf

import (
	"fmt"
	"testing"

	"github.com/joshyorko/taskflow/flowcore"
)

func TestFIFOEviction(t *testing.T) {
	buffer := NewLogBuffer(5)

	for i := 0; i < 6; i++ {
		buffer.Add(flowcore.LevelInfo, fmt.Sprintf("message %d", i))
	}

	if buffer.Len() != 5 {
		t.Fatalf("expected 5 entries after eviction, got %d", buffer.Len())
	}

	entries := buffer.All()
	if entries[0].Message != "message 1" {
		t.Errorf("oldest entry should have been evicted, got %q first", entries[0].Message)
	}
	for i, entry := range entries {
		expected := fmt.Sprintf("message %d", i+1)
		if entry.Message != expected {
			t.Errorf("entry %d: expected %q, got %q", i, expected, entry.Message)
		}
	}
}

func TestRecentReturnsNewestInOrder(t *testing.T) {
	buffer := NewLogBuffer(10)
	for i := 0; i < 7; i++ {
		buffer.Add(flowcore.LevelProgress, fmt.Sprintf("entry %d", i))
	}

	recent := buffer.Recent(3)
	if len(recent) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(recent))
	}
	for i, entry := range recent {
		expected := fmt.Sprintf("entry %d", i+4)
		if entry.Message != expected {
			t.Errorf("recent[%d]: expected %q, got %q", i, expected, entry.Message)
		}
	}

	if got := buffer.Recent(100); len(got) != 7 {
		t.Errorf("oversized request should return all 7 entries, got %d", len(got))
	}
	if got := buffer.Recent(0); got != nil {
		t.Errorf("zero request should return nil, got %v", got)
	}
}

func TestRecentReturnsCopies(t *testing.T) {
	buffer := NewLogBuffer(10)
	buffer.Add(flowcore.LevelInfo, "original")

	recent := buffer.Recent(1)
	recent[0].Message = "mutated"

	if buffer.All()[0].Message != "original" {
		t.Error("mutating a returned slice must not affect the buffer")
	}
}

func TestOnChangeCallback(t *testing.T) {
	buffer := NewLogBuffer(10)
	calls := 0
	buffer.SetOnChange(func() { calls++ })

	buffer.Add(flowcore.LevelInfo, "one")
	buffer.Add(flowcore.LevelWarning, "two")

	if calls != 2 {
		t.Errorf("expected 2 onChange calls, got %d", calls)
	}
}

func TestMessagesAreTrimmed(t *testing.T) {
	buffer := NewLogBuffer(10)
	buffer.Add(flowcore.LevelInfo, "  padded  ")

	if got := buffer.All()[0].Message; got != "padded" {
		t.Errorf("expected trimmed message, got %q", got)
	}
}

func TestStats(t *testing.T) {
	buffer := NewLogBuffer(10)
	buffer.Add(flowcore.LevelWarning, "warn")
	buffer.Add(flowcore.LevelWarning, "warn again")
	buffer.Add(flowcore.LevelProgress, "tick")
	buffer.Add(flowcore.LevelComplete, "done")
	buffer.Add(flowcore.LevelInfo, "note")

	stats := buffer.Stats()
	if stats.Total != 5 || stats.Warnings != 2 || stats.Progress != 1 || stats.Completes != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestTinyCapacityFallsBackToDefault(t *testing.T) {
	buffer := NewLogBuffer(0)
	for i := 0; i < DefaultMaxEntries+10; i++ {
		buffer.Add(flowcore.LevelInfo, "x")
	}
	if buffer.Len() != DefaultMaxEntries {
		t.Errorf("expected default capacity %d, got %d", DefaultMaxEntries, buffer.Len())
	}
}
