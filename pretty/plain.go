package pretty

import (
	"github.com/joshyorko/taskflow/common"
	"github.com/joshyorko/taskflow/flowcore"
	"github.com/joshyorko/taskflow/logbuf"
)

// PlainObserver is the headless counterpart of FlowDashboard: it logs
// events through the common logger instead of owning the terminal, while
// keeping the same bounded message buffer for the recent-messages report.
type PlainObserver struct {
	buffer *logbuf.LogBuffer
}

var _ flowcore.Observer = (*PlainObserver)(nil)

func NewPlainObserver() *PlainObserver {
	return &PlainObserver{buffer: logbuf.NewLogBuffer(logbuf.DefaultMaxEntries)}
}

func (p *PlainObserver) Buffer() *logbuf.LogBuffer {
	return p.buffer
}

func (p *PlainObserver) OnLogMessage(message string, level flowcore.Level) {
	p.buffer.Add(level, message)
	common.Log("%s%s [%s]%s %s", LevelColor(level), level.Icon(), level.String(), Reset, message)
}

func (p *PlainObserver) OnOuterProgress(current, total int) {
	common.Debug("Outer progress: %d/%d", current, total)
}

func (p *PlainObserver) OnInnerProgress(advance int) {
	common.Trace("Inner progress: +%d", advance)
}

func (p *PlainObserver) OnResetInner(newTotal int) {
	common.Trace("Inner track reset to 0/%d", newTotal)
}

func (p *PlainObserver) OnEarlyTermination(remaining int) {
	common.Debug("Early termination, crediting %d remaining units", remaining)
}
