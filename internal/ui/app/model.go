package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "factoryerp/internal/modules/auth/dto"
	formsin "factoryerp/internal/modules/forms/port/in"
	"factoryerp/internal/ui/components"
	"factoryerp/internal/ui/theme"
	approvalsview "factoryerp/internal/ui/views/approvals"
	dashboardview "factoryerp/internal/ui/views/dashboard"
	formview "factoryerp/internal/ui/views/form"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type formsPort interface {
	Open(kind string) (formsin.FormHandle, error)
}

type sessionPort interface {
	Current(ctx context.Context) (authdto.SessionOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabProduction tabID = iota
	tabAttendance
	tabDowntime
	tabRequisition
	tabApprovals
	tabDashboard
	tabCount
)

var tabLabels = [tabCount]string{
	"Production", "Attendance", "Downtime", "Requisition", "Approvals", "Dashboard",
}

// formKinds maps the form tabs to the form they edit.
var formKinds = map[tabID]string{
	tabProduction:  "production",
	tabAttendance:  "attendance",
	tabDowntime:    "downtime",
	tabRequisition: "requisition",
}

// ─── async messages ──────────────────────────────────────────────────────────

type sessionLoadedMsg struct {
	session authdto.SessionOutput
	err     error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Submit  key.Binding
	Approve key.Binding
	Reject  key.Binding
	Worker  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":", "ctrl+p"), key.WithHelp(":/ctrl+p", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Submit:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit form")),
		Approve: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "approve")),
		Reject:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reject")),
		Worker:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "worker history")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Submit},
		{k.Approve, k.Reject, k.Worker},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the session
// snapshot, the help overlay and the command palette. Forms, reports and
// approvals live in their own views.
type Model struct {
	forms     formsPort
	session   sessionPort
	reports   dashboardview.ReportPort
	decisions approvalsview.DecisionPort

	formViews map[tabID]formview.Model
	dashView  dashboardview.Model
	approView approvalsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	identity  authdto.SessionOutput
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	forms formsPort,
	session sessionPort,
	reports dashboardview.ReportPort,
	decisions approvalsview.DecisionPort,
) Model {
	m := Model{
		forms:     forms,
		session:   session,
		reports:   reports,
		decisions: decisions,
		activeTab: tabProduction,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
	m.buildViews()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadSessionCmd(), m.dashView.Init(), m.approView.Init()}
	for _, v := range m.formViews {
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(cmds...)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette takes every key while open; async results still land.
	if _, isKey := msg.(tea.KeyMsg); isKey && m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case sessionLoadedMsg:
		if msg.err != nil {
			m.status = "session: " + msg.err.Error()
		} else {
			m.identity = msg.session
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	// Async results go to the view that asked for them, whichever tab is
	// showing.
	case formview.SubmittedMsg:
		for tab, kind := range formKinds {
			if kind == msg.Kind {
				var cmd tea.Cmd
				m.formViews[tab], cmd = m.formViews[tab].Update(msg)
				cmds = append(cmds, cmd)
			}
		}
		if msg.Out.Message != "" {
			m.status = msg.Out.Message
		}
		return m, tea.Batch(cmds...)

	case approvalsview.DecidedMsg:
		if msg.Out.Message != "" {
			m.status = msg.Out.Message
		}
		var cmd tea.Cmd
		m.approView, cmd = m.approView.Update(msg)
		return m, cmd

	case approvalsview.ReloadMsg:
		return m.reload()

	case dashboardview.ChartLoadedMsg, dashboardview.HistoryLoadedMsg, dashboardview.SummariesLoadedMsg:
		var cmd tea.Cmd
		m.dashView, cmd = m.dashView.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		for tab, v := range m.formViews {
			var cmd tea.Cmd
			m.formViews[tab], cmd = v.Update(msg)
			cmds = append(cmds, cmd)
		}
		var dCmd, aCmd tea.Cmd
		m.dashView, dCmd = m.dashView.Update(msg)
		m.approView, aCmd = m.approView.Update(msg)
		return m, tea.Batch(append(cmds, dCmd, aCmd)...)

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "ctrl+p":
			return m, m.palette.Open()
		}

		// Yield the remaining global keys while the active view takes text.
		if m.capturingText() {
			break
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
	}

	// Propagate the message to the active tab's view.
	var tabCmd tea.Cmd
	switch {
	case m.activeTab == tabDashboard:
		m.dashView, tabCmd = m.dashView.Update(msg)
	case m.activeTab == tabApprovals:
		m.approView, tabCmd = m.approView.Update(msg)
	default:
		if v, ok := m.formViews[m.activeTab]; ok {
			m.formViews[m.activeTab], tabCmd = v.Update(msg)
		}
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabDashboard:
		return m.dashView.View()
	case tabApprovals:
		return m.approView.View()
	}
	if v, ok := m.formViews[m.activeTab]; ok {
		return v.View()
	}
	return theme.Bad.Render(m.status)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "factoryerp  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.identity.Anonymous {
		left = theme.Muted.Render("○ anonymous") + "  " + left
	} else if m.identity.Token != "" {
		who := m.identity.Email
		if who == "" {
			who = m.identity.UserID
		}
		left = theme.Hot.Render(fmt.Sprintf("● %s (%s)", who, m.identity.Role)) + "  " + left
	}
	right := theme.Muted.Render("tab:switch  ctrl+p:palette  ctrl+c:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "form:production", "form:attendance", "form:downtime", "form:requisition":
		kind := strings.TrimPrefix(parts[0], "form:")
		for tab, k := range formKinds {
			if k == kind {
				m.activeTab = tab
			}
		}
		m.status = "editing " + kind
		return m, nil

	case "form:reset":
		v, ok := m.formViews[m.activeTab]
		if !ok {
			m.status = "no form on this tab"
			return m, nil
		}
		v.Reset()
		m.formViews[m.activeTab] = v
		m.status = "form cleared"
		return m, nil

	case "report:refresh":
		m.activeTab = tabDashboard
		return m, m.dashView.Refresh()

	case "report:history":
		if len(parts) < 2 {
			m.status = "usage: report:history <worker-id>"
			return m, nil
		}
		m.activeTab = tabDashboard
		return m, m.dashView.LookupWorker(parts[1])

	case "requisition:approve", "requisition:reject":
		if len(parts) < 2 {
			m.status = "usage: " + parts[0] + " <id> [remarks]"
			return m, nil
		}
		action := strings.TrimPrefix(parts[0], "requisition:")
		m.activeTab = tabApprovals
		if len(parts) == 2 {
			return m, m.approView.Begin(parts[1], action)
		}
		remarks := strings.TrimSpace(strings.TrimPrefix(input, parts[0]+" "+parts[1]))
		return m, m.approView.DecideNow(parts[1], action, remarks)

	case "reload":
		return m.reload()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// buildViews creates every view from scratch with blank forms.
func (m *Model) buildViews() {
	token := m.tokenFunc()
	m.formViews = map[tabID]formview.Model{}
	for tab, kind := range formKinds {
		handle, err := m.forms.Open(kind)
		if err != nil {
			m.status = "open " + kind + ": " + err.Error()
			continue
		}
		m.formViews[tab] = formview.New(handle, formview.TokenFunc(token))
	}
	m.dashView = dashboardview.New(m.reports)
	m.approView = approvalsview.New(m.decisions, approvalsview.TokenFunc(token))
}

// reload is the terminal counterpart of a full page refresh.
func (m Model) reload() (tea.Model, tea.Cmd) {
	status := m.status
	m.buildViews()
	m.propagateSize()
	m.status = status
	return m, m.Init()
}

// capturingText reports whether the active view is taking typed input, in
// which case single-key global bindings must yield.
func (m Model) capturingText() bool {
	switch m.activeTab {
	case tabDashboard:
		return m.dashView.Editing()
	case tabApprovals:
		return true
	}
	_, isForm := m.formViews[m.activeTab]
	return isForm
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	for tab, v := range m.formViews {
		m.formViews[tab], _ = v.Update(sz)
	}
	m.dashView, _ = m.dashView.Update(sz)
	m.approView, _ = m.approView.Update(sz)
}

func (m Model) tokenFunc() func(ctx context.Context) (string, error) {
	session := m.session
	return func(ctx context.Context) (string, error) {
		if session == nil {
			return "", nil
		}
		s, err := session.Current(ctx)
		if err != nil {
			return "", err
		}
		return s.Token, nil
	}
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadSessionCmd() tea.Cmd {
	return func() tea.Msg {
		if m.session == nil {
			return sessionLoadedMsg{session: authdto.SessionOutput{Anonymous: true}}
		}
		s, err := m.session.Current(context.Background())
		return sessionLoadedMsg{session: s, err: err}
	}
}
