package pretty

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/joshyorko/taskflow/common"
	"github.com/joshyorko/taskflow/flowcore"
)

// The observer methods fold state into the tracker and log buffer whether
// or not the live view is running, so they can be exercised headlessly.

func TestDashboardObserverUpdatesTracks(t *testing.T) {
	var out bytes.Buffer
	dashboard := NewFlowDashboard(4, 20, &out)

	dashboard.OnResetInner(20)
	dashboard.OnInnerProgress(1)
	dashboard.OnInnerProgress(1)
	dashboard.OnOuterProgress(1, 4)

	outer, inner := dashboard.tracker.Snapshot()
	if outer.Completed != 1 || outer.Total != 4 {
		t.Errorf("outer track: expected 1/4, got %d/%d", outer.Completed, outer.Total)
	}
	if inner.Completed != 2 || inner.Total != 20 {
		t.Errorf("inner track: expected 2/20, got %d/%d", inner.Completed, inner.Total)
	}
}

func TestDashboardEarlyTerminationCreditsRemaining(t *testing.T) {
	var out bytes.Buffer
	dashboard := NewFlowDashboard(1, 10, &out)

	dashboard.OnResetInner(10)
	dashboard.OnInnerProgress(1)
	dashboard.OnEarlyTermination(9)

	_, inner := dashboard.tracker.Snapshot()
	if inner.Completed != 10 {
		t.Errorf("inner track should reach its total after crediting, got %d/%d",
			inner.Completed, inner.Total)
	}
}

func TestDashboardEarlyExitCountSurvivesSaturatedQueue(t *testing.T) {
	var out bytes.Buffer
	dashboard := NewFlowDashboard(1, 10, &out)
	dashboard.OnResetInner(10)

	// Far more events than the update channel can hold; the footer count
	// is state read at render time, not carried by queued events.
	for i := 0; i < 300; i++ {
		dashboard.OnEarlyTermination(0)
	}

	_, earlyExits := dashboard.footerState()
	if earlyExits != 300 {
		t.Errorf("expected 300 early exits, got %d", earlyExits)
	}
}

func TestDashboardStatusIsStateNotEvent(t *testing.T) {
	var out bytes.Buffer
	dashboard := NewFlowDashboard(1, 10, &out)

	status, _ := dashboard.footerState()
	if status != StatusRunning {
		t.Errorf("expected initial status %q, got %q", StatusRunning, status)
	}

	dashboard.SetStatus(StatusCompleted)
	status, _ = dashboard.footerState()
	if status != StatusCompleted {
		t.Errorf("expected status %q, got %q", StatusCompleted, status)
	}
}

func TestDashboardResetRestartsInnerTrack(t *testing.T) {
	var out bytes.Buffer
	dashboard := NewFlowDashboard(2, 6, &out)

	dashboard.OnResetInner(6)
	dashboard.OnInnerProgress(5)
	dashboard.OnResetInner(6)

	_, inner := dashboard.tracker.Snapshot()
	if inner.Completed != 0 || inner.Total != 6 {
		t.Errorf("expected 0/6 after reset, got %d/%d", inner.Completed, inner.Total)
	}
}

func TestDashboardKeepsOwnLogCopy(t *testing.T) {
	var out bytes.Buffer
	dashboard := NewFlowDashboard(1, 5, &out)

	dashboard.OnLogMessage("working", flowcore.LevelProgress)
	dashboard.OnLogMessage("watch out", flowcore.LevelWarning)

	entries := dashboard.Buffer().All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 buffered entries, got %d", len(entries))
	}
	if entries[0].Message != "working" || entries[1].Level != flowcore.LevelWarning {
		t.Errorf("unexpected buffer contents: %+v", entries)
	}
}

func TestDashboardStopBeforeStartIsNoop(t *testing.T) {
	var out bytes.Buffer
	dashboard := NewFlowDashboard(1, 5, &out)

	dashboard.Stop()
	dashboard.Stop()
	// Must not panic or block.
}

func TestRenderSplashWritesBanner(t *testing.T) {
	oldPause := splashPause
	defer func() { splashPause = oldPause }()

	var paused time.Duration
	splashPause = func(d time.Duration) { paused = d }

	var out bytes.Buffer
	RenderSplash(&out)

	if !strings.Contains(out.String(), "Version "+common.Version) {
		t.Errorf("splash should show the version:\n%s", out.String())
	}
	if paused != splashDelay {
		t.Errorf("splash should pause for %v, paused %v", splashDelay, paused)
	}
}
