// TUIWriter renders run progress in a terminal UI
package sim

import (
	"fmt"
	"os"
	"strconv"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"defsim/internal/telemetry"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// eventMsg carries one lifecycle event row.
type eventMsg struct{ telemetry.EventRow }

// stateMsg carries a per-tick state update.
type stateMsg struct{ telemetry.SimulationStateRow }

// runMsg carries the run banner data.
type runMsg struct{ telemetry.RunRow }

// doneMsg stops the program when the engine finishes.
type doneMsg struct{}

// TUIWriter renders events and state in a bubbletea TUI. It implements
// EventWriter, StateWriter, and RunWriter; telemetry rows are too
// high-volume for a terminal and go to other sinks.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter() *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(), tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// WriteEvent implements EventWriter.
func (w *TUIWriter) WriteEvent(e telemetry.EventRow) error {
	w.program.Send(eventMsg{e})
	return nil
}

// WriteEvents implements batch event writing.
func (w *TUIWriter) WriteEvents(rows []telemetry.EventRow) error {
	for _, e := range rows {
		_ = w.WriteEvent(e)
	}
	return nil
}

// WriteState implements StateWriter.
func (w *TUIWriter) WriteState(row telemetry.SimulationStateRow) error {
	w.program.Send(stateMsg{row})
	return nil
}

// WriteRun implements RunWriter.
func (w *TUIWriter) WriteRun(row telemetry.RunRow) error {
	w.program.Send(runMsg{row})
	return nil
}

// Close stops the TUI without signalling the process and waits for the
// program to exit.
func (w *TUIWriter) Close() {
	w.sendSignal.Store(false)
	w.program.Send(doneMsg{})
	<-w.done
}

// Wait blocks until the user quits the TUI.
func (w *TUIWriter) Wait() { <-w.done }

const maxEventLines = 500

var (
	tuiTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	tuiCounterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	tuiBorderStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("8"))
	tuiHitStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	tuiLossStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	tuiLaunchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	tuiDimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type tuiModel struct {
	run       telemetry.RunRow
	state     telemetry.SimulationStateRow
	launchers map[int]int // launcher id -> launches observed
	hits      int
	kills     int
	breaks    int

	events   []string
	viewport viewport.Model
	table    table.Model
	width    int
	height   int
	ready    bool
}

func newTUIModel() tuiModel {
	cols := []table.Column{
		{Title: "Launcher", Width: 10},
		{Title: "Fired", Width: 7},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(6))
	return tuiModel{
		launchers: make(map[int]int),
		table:     t,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		vpHeight := m.height - 12
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(m.width-2, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width - 2
			m.viewport.Height = vpHeight
		}
		m.refreshViewport()
	case runMsg:
		m.run = msg.RunRow
	case stateMsg:
		m.state = msg.SimulationStateRow
	case eventMsg:
		m.applyEvent(msg.EventRow)
	case doneMsg:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *tuiModel) applyEvent(e telemetry.EventRow) {
	switch e.Type {
	case telemetry.EventLaunch:
		m.launchers[e.LauncherID]++
		m.refreshTable()
	case telemetry.EventHit:
		m.hits++
	case telemetry.EventKilled:
		m.kills++
	case telemetry.EventBreakthrough:
		m.breaks++
	}
	m.events = append(m.events, m.renderEvent(e))
	if len(m.events) > maxEventLines {
		m.events = m.events[len(m.events)-maxEventLines:]
	}
	m.refreshViewport()
}

func (m *tuiModel) renderEvent(e telemetry.EventRow) string {
	style := tuiDimStyle
	switch e.Type {
	case telemetry.EventHit, telemetry.EventKilled:
		style = tuiHitStyle
	case telemetry.EventBreakthrough, telemetry.EventSelfDestruct:
		style = tuiLossStyle
	case telemetry.EventLaunch:
		style = tuiLaunchStyle
	}
	line := fmt.Sprintf("[%8.1fs] %-13s", e.TimeS, e.Type)
	if e.TargetID >= 0 {
		line += " target=" + strconv.Itoa(e.TargetID)
	}
	if e.MissileID >= 0 {
		line += " missile=" + strconv.Itoa(e.MissileID)
	}
	if e.LauncherID >= 0 {
		line += " launcher=" + strconv.Itoa(e.LauncherID)
	}
	if e.Detail != "" {
		line += " (" + e.Detail + ")"
	}
	return style.Render(line)
}

func (m *tuiModel) refreshTable() {
	ids := make([]int, 0, len(m.launchers))
	for id := range m.launchers {
		ids = append(ids, id)
	}
	// Small fixed set; insertion sort keeps the rows stable by ID.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	rows := make([]table.Row, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, table.Row{strconv.Itoa(id), strconv.Itoa(m.launchers[id])})
	}
	m.table.SetRows(rows)
}

func (m *tuiModel) refreshViewport() {
	if !m.ready {
		return
	}
	wrapped := make([]string, len(m.events))
	for i, l := range m.events {
		wrapped[i] = wordwrap.String(l, m.viewport.Width)
	}
	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, wrapped...))
	m.viewport.GotoBottom()
}

func (m tuiModel) View() string {
	if !m.ready {
		return "starting..."
	}
	title := tuiTitleStyle.Render(fmt.Sprintf("defsim  run=%s  scenario=%s", m.run.RunID, m.run.Scenario))
	counters := tuiCounterStyle.Render(fmt.Sprintf(
		"t=%8.1fs tick=%d  targets=%d missiles=%d pending=%d ready=%d ledger=%d  hits=%d kills=%d breakthroughs=%d",
		m.state.TimeS, m.state.Tick,
		m.state.AliveTargets, m.state.AliveMissiles, m.state.PendingSpawns,
		m.state.MissilesReady, m.state.LedgerEntries,
		m.hits, m.kills, m.breaks))
	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		counters,
		m.table.View(),
		tuiBorderStyle.Render(m.viewport.View()),
		tuiDimStyle.Render("q to quit"),
	)
	return body
}
