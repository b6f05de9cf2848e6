package dashboard

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	reportdto "factoryerp/internal/modules/reporting/dto"
	"factoryerp/internal/ui/components"
	"factoryerp/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ReportPort interface {
	ProductionChart(ctx context.Context) (reportdto.ChartOutput, error)
	WorkerHistory(ctx context.Context, workerID string) (reportdto.HistoryOutput, error)
	Attendance(ctx context.Context) ([]reportdto.AttendanceOutput, error)
	Downtime(ctx context.Context) ([]reportdto.DowntimeOutput, error)
	MaterialFlow(ctx context.Context) ([]reportdto.MaterialFlowOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ChartLoadedMsg struct {
	Chart reportdto.ChartOutput
	Err   error
}

type HistoryLoadedMsg struct {
	History reportdto.HistoryOutput
	Err     error
}

type SummariesLoadedMsg struct {
	Attendance   []reportdto.AttendanceOutput
	Downtime     []reportdto.DowntimeOutput
	MaterialFlow []reportdto.MaterialFlowOutput
	Err          error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    ReportPort
	worker  textinput.Model
	body    viewport.Model
	spinner spinner.Model
	loading bool

	chart      reportdto.ChartOutput
	chartErr   error
	history    *reportdto.HistoryOutput
	historyErr error
	summaries  SummariesLoadedMsg

	width  int
	height int
}

func New(port ReportPort) Model {
	ti := textinput.New()
	ti.Placeholder = "worker id"
	ti.Prompt = "History for worker: "
	ti.CharLimit = 12

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, worker: ti, body: viewport.New(0, 0), spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	if m.port == nil {
		return nil
	}
	return tea.Batch(m.loadChartCmd(), m.loadSummariesCmd(), m.spinner.Tick)
}

// Refresh refetches the chart and the summary tables.
func (m *Model) Refresh() tea.Cmd {
	m.loading = true
	return m.Init()
}

// Editing reports whether the worker id field has focus.
func (m Model) Editing() bool {
	return m.worker.Focused()
}

// LookupWorker fetches one worker's history.
func (m *Model) LookupWorker(id string) tea.Cmd {
	m.worker.SetValue(id)
	return m.loadHistoryCmd(id)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = msg.Width - 4
		m.body.Height = max(msg.Height-4, 1)
		m.render()

	case ChartLoadedMsg:
		m.loading = false
		m.chart, m.chartErr = msg.Chart, msg.Err
		m.render()

	case SummariesLoadedMsg:
		m.summaries = msg
		m.render()

	case HistoryLoadedMsg:
		m.historyErr = msg.Err
		if msg.Err == nil {
			h := msg.History
			m.history = &h
		}
		m.render()

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if m.worker.Focused() {
			switch msg.String() {
			case "enter":
				m.worker.Blur()
				return m, m.loadHistoryCmd(m.worker.Value())
			case "esc":
				m.worker.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.worker, cmd = m.worker.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "w":
			return m, m.worker.Focus()
		case "r":
			return m, m.Refresh()
		}
	}

	var vCmd tea.Cmd
	m.body, vCmd = m.body.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading reports…")
	}
	header := m.worker.View()
	if !m.worker.Focused() {
		header = theme.Muted.Render("w: worker history  r: refresh  ↑/↓ scroll")
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(header + "\n\n" + m.body.View())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) render() {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Production: target vs actual") + "\n\n")
	if m.chartErr != nil {
		sb.WriteString(theme.Bad.Render("Error loading production chart: "+m.chartErr.Error()) + "\n")
	} else {
		sb.WriteString(components.RenderChart(m.chart, m.body.Width) + "\n")
	}

	if m.history != nil || m.historyErr != nil {
		sb.WriteString("\n" + theme.Title.Render("Worker production history") + "\n")
		if m.historyErr != nil {
			sb.WriteString(theme.Bad.Render("Error loading worker history: "+m.historyErr.Error()) + "\n")
		} else {
			sb.WriteString(components.RenderHistory(*m.history) + "\n")
		}
	}

	s := m.summaries
	if s.Err != nil {
		sb.WriteString("\n" + theme.Bad.Render("Error loading reports: "+s.Err.Error()) + "\n")
	} else {
		sb.WriteString("\n" + theme.Title.Render("Attendance by section") + "\n" + components.RenderAttendance(s.Attendance) + "\n")
		sb.WriteString("\n" + theme.Title.Render("Recent downtime") + "\n" + components.RenderDowntime(s.Downtime) + "\n")
		sb.WriteString("\n" + theme.Title.Render("Material flow today") + "\n" + components.RenderMaterialFlow(s.MaterialFlow) + "\n")
	}
	m.body.SetContent(sb.String())
}

func (m Model) loadChartCmd() tea.Cmd {
	return func() tea.Msg {
		chart, err := m.port.ProductionChart(context.Background())
		return ChartLoadedMsg{Chart: chart, Err: err}
	}
}

func (m Model) loadHistoryCmd(id string) tea.Cmd {
	return func() tea.Msg {
		h, err := m.port.WorkerHistory(context.Background(), id)
		return HistoryLoadedMsg{History: h, Err: err}
	}
}

func (m Model) loadSummariesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		out := SummariesLoadedMsg{}
		if out.Attendance, out.Err = m.port.Attendance(ctx); out.Err != nil {
			return out
		}
		if out.Downtime, out.Err = m.port.Downtime(ctx); out.Err != nil {
			return out
		}
		out.MaterialFlow, out.Err = m.port.MaterialFlow(ctx)
		return out
	}
}
