package pretty

// Bubble Tea based dashboard for taskflow runs. The dashboard implements
// flowcore.Observer and completely owns the terminal (alternate screen)
// between Start and Stop. Executor events arrive on the calling goroutine,
// are folded into the tracker and log buffer, and trigger a redraw through
// an ordered update channel feeding the Bubble Tea program.

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	teaprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joshyorko/taskflow/common"
	"github.com/joshyorko/taskflow/flowcore"
	"github.com/joshyorko/taskflow/logbuf"
	"github.com/joshyorko/taskflow/progresscore"
)

const (
	// StatusRunning etc. are the footer status labels.
	StatusRunning    = "Running"
	StatusCompleted  = "Completed"
	StatusCancelling = "Cancelling"
	StatusCancelled  = "Cancelled"

	// Rows consumed by header, progress panel, footer and borders; the
	// message log gets the rest of the terminal.
	fixedRows = 13
)

// Bubble Tea messages
type tickMsg time.Time
type refreshMsg struct{}
type quitMsg struct{}

// Styles using lipgloss
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	barLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("248"))

	levelStyles = map[flowcore.Level]lipgloss.Style{
		flowcore.LevelInfo:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		flowcore.LevelStart:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		flowcore.LevelProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		flowcore.LevelComplete: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		flowcore.LevelWarning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		flowcore.LevelSummary:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170")),
	}
)

// FlowDashboard renders the live view of a task run. It maintains no
// business statistics beyond what the footer shows; the authoritative
// counts live in the executor's TaskStats.
type FlowDashboard struct {
	mu      sync.Mutex
	program *tea.Program
	model   *flowModel
	buffer  *logbuf.LogBuffer
	tracker *progresscore.Tracker
	out     io.Writer
	updates chan struct{}
	running bool

	// Footer state lives here, not in queued events, so a saturated
	// update channel can never lose a count or a status change.
	status     string
	earlyExits int
}

// NewFlowDashboard creates a dashboard for a run of outerTotal outer
// iterations, each allocating innerTotalPerOuter leaf units. The rendering
// target is passed in explicitly so test doubles and multiple instances
// can coexist.
func NewFlowDashboard(outerTotal, innerTotalPerOuter int, out io.Writer) *FlowDashboard {
	buffer := logbuf.NewLogBuffer(logbuf.DefaultMaxEntries)
	tracker := progresscore.NewTracker(outerTotal)
	tracker.ResetInner(innerTotalPerOuter)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	newBar := func() teaprogress.Model {
		return teaprogress.New(
			teaprogress.WithDefaultGradient(),
			teaprogress.WithWidth(40),
			teaprogress.WithoutPercentage(),
		)
	}

	model := &flowModel{
		spin:       s,
		outerBar:   newBar(),
		innerBar:   newBar(),
		tracker:    tracker,
		buffer:     buffer,
		outerTotal: outerTotal,
	}

	dashboard := &FlowDashboard{
		model:   model,
		buffer:  buffer,
		tracker: tracker,
		out:     out,
		updates: make(chan struct{}, 100),
		status:  StatusRunning,
	}
	model.footer = dashboard.footerState
	return dashboard
}

// Buffer exposes the dashboard's own bounded log copy, used for the
// recent-messages report after the live view has stopped.
func (d *FlowDashboard) Buffer() *logbuf.LogBuffer {
	return d.buffer
}

// SetOnInterrupt registers the function invoked when the user presses
// ctrl+c inside the live view. The terminal is in raw mode there, so no
// SIGINT reaches the process; this is the cancellation path instead.
func (d *FlowDashboard) SetOnInterrupt(fn func()) {
	d.model.onInterrupt = func() {
		d.SetStatus(StatusCancelling)
		fn()
	}
}

// Start acquires the live-rendering context (alternate screen) and begins
// intercepting plain log output into the message log.
func (d *FlowDashboard) Start() {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.mu.Unlock()

	// Stray common.Log output would corrupt the alternate screen; fold it
	// into the message log instead.
	common.SetLogInterceptor(func(message string) bool {
		d.buffer.Add(flowcore.LevelInfo, message)
		return true
	})

	d.program = tea.NewProgram(d.model, tea.WithAltScreen(), tea.WithOutput(d.out))

	go func() {
		if _, err := d.program.Run(); err != nil {
			common.Error("dashboard", err)
		}
	}()

	go d.listenForUpdates()
}

func (d *FlowDashboard) listenForUpdates() {
	for range d.updates {
		if d.program != nil {
			d.program.Send(refreshMsg{})
		}
	}
}

// Stop releases the live-rendering context. Safe to call on every exit
// path, including after cancellation; repeated calls are no-ops.
func (d *FlowDashboard) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	d.mu.Unlock()

	common.ClearLogInterceptor()

	close(d.updates)
	if d.program != nil {
		d.program.Send(quitMsg{})
		d.program.Wait()
	}
}

// SetStatus updates the footer status label.
func (d *FlowDashboard) SetStatus(status string) {
	d.mu.Lock()
	d.status = status
	d.mu.Unlock()
	d.push()
}

// footerState is read by the model at render time.
func (d *FlowDashboard) footerState() (status string, earlyExits int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status, d.earlyExits
}

func (d *FlowDashboard) push() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return
	}
	select {
	case d.updates <- struct{}{}:
	default:
		// Channel full; every refresh renders from current state, so a
		// queued one or the next tick shows the same picture.
	}
}

// Observer contract

var _ flowcore.Observer = (*FlowDashboard)(nil)

func (d *FlowDashboard) OnLogMessage(message string, level flowcore.Level) {
	d.buffer.Add(level, message)
	d.push()
}

func (d *FlowDashboard) OnOuterProgress(current, total int) {
	d.tracker.SetOuter(current)
	d.push()
}

func (d *FlowDashboard) OnInnerProgress(advance int) {
	d.tracker.AdvanceInner(advance)
	d.push()
}

func (d *FlowDashboard) OnResetInner(newTotal int) {
	d.tracker.ResetInner(newTotal)
	d.push()
}

func (d *FlowDashboard) OnEarlyTermination(remaining int) {
	// Credit the skipped units so the inner track still reaches its
	// total even though fewer real steps ran.
	d.tracker.AdvanceInner(remaining)
	d.mu.Lock()
	d.earlyExits++
	d.mu.Unlock()
	d.push()
}

// flowModel is the Bubble Tea model behind FlowDashboard.
type flowModel struct {
	spin       spinner.Model
	outerBar   teaprogress.Model
	innerBar   teaprogress.Model
	tracker    *progresscore.Tracker
	buffer     *logbuf.LogBuffer
	outerTotal int
	footer     func() (status string, earlyExits int)

	width       int
	height      int
	quitting    bool
	onInterrupt func()
}

func (m *flowModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *flowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.onInterrupt != nil {
				m.onInterrupt()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := msg.Width - 44
		if barWidth > 50 {
			barWidth = 50
		}
		if barWidth < 10 {
			barWidth = 10
		}
		m.outerBar.Width = barWidth
		m.innerBar.Width = barWidth

	case tickMsg:
		return m, tickCmd()

	case refreshMsg:
		return m, nil

	case quitMsg:
		m.quitting = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *flowModel) View() string {
	if m.quitting {
		return ""
	}

	outer, inner := m.tracker.Snapshot()

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderProgress(outer, inner))
	b.WriteString("\n")
	b.WriteString(m.renderMessages())
	b.WriteString("\n")
	b.WriteString(m.renderFooter(outer))
	return b.String()
}

func (m *flowModel) renderHeader() string {
	title := fmt.Sprintf("taskflow %s  |  Full-Screen Task Runner", common.Version)
	return headerStyle.Width(m.contentWidth()).Render(title)
}

func (m *flowModel) renderProgress(outer, inner progresscore.Track) string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Progress"))
	b.WriteString("\n")
	b.WriteString(m.renderTrack("Outer Loop", m.outerBar, outer))
	b.WriteString("\n")
	b.WriteString(m.renderTrack("Inner Loop", m.innerBar, inner))
	return panelStyle.Width(m.contentWidth()).Render(b.String())
}

func (m *flowModel) renderTrack(label string, bar teaprogress.Model, track progresscore.Track) string {
	return fmt.Sprintf("%s %s %s %3.0f%% %d/%d  %s",
		m.spin.View(),
		barLabelStyle.Render(fmt.Sprintf("%-10s", label)),
		bar.ViewAs(track.Ratio()),
		track.Ratio()*100,
		track.Completed,
		track.Total,
		timestampStyle.Render("Elapsed: "+formatElapsed(track.Elapsed())))
}

func (m *flowModel) renderMessages() string {
	visible := m.height - fixedRows
	if visible < 5 {
		visible = 5
	}

	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Task Log"))
	b.WriteString("\n")

	entries := m.buffer.Recent(visible)
	started := m.buffer.StartedAt()
	for _, entry := range entries {
		style, ok := levelStyles[entry.Level]
		if !ok {
			style = levelStyles[flowcore.LevelInfo]
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s\n",
			timestampStyle.Render(formatElapsed(entry.Time.Sub(started))),
			style.Render(entry.Level.Icon()),
			style.Render(fmt.Sprintf("%-8s", entry.Level.String())),
			entry.Message))
	}
	for filler := len(entries); filler < visible; filler++ {
		b.WriteString("\n")
	}

	return panelStyle.Width(m.contentWidth()).Render(strings.TrimSuffix(b.String(), "\n"))
}

func (m *flowModel) renderFooter(outer progresscore.Track) string {
	status, earlyExits := m.footer()
	line := fmt.Sprintf("Status: %s  |  Outer: %d/%d  |  Early Exits: %d  |  Press Ctrl+C to cancel",
		status, outer.Completed, m.outerTotal, earlyExits)
	return panelStyle.Width(m.contentWidth()).Render(footerStyle.Render(line))
}

func (m *flowModel) contentWidth() int {
	if m.width <= 4 {
		return 76
	}
	return m.width - 4
}
