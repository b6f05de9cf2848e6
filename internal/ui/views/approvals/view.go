package approvals

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	reqdto "factoryerp/internal/modules/requisition/dto"
	apperrors "factoryerp/internal/platform/errors"
	"factoryerp/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type DecisionPort interface {
	Decide(ctx context.Context, input reqdto.DecideInput) (reqdto.DecideOutput, error)
}

type TokenFunc func(ctx context.Context) (string, error)

// ─── messages ────────────────────────────────────────────────────────────────

type DecidedMsg struct {
	Out reqdto.DecideOutput
	Err error
}

// ReloadMsg asks the root model to rebuild every view from fresh data.
type ReloadMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    DecisionPort
	token   TokenFunc
	id      textinput.Model
	remarks textinput.Model
	spinner spinner.Model

	// action is set while the remarks prompt is open.
	action string
	busy   bool
	notice string
	level  string
	width  int
	height int
}

func New(port DecisionPort, token TokenFunc) Model {
	id := textinput.New()
	id.Prompt = "Requisition id: "
	id.CharLimit = 12
	id.Focus()

	remarks := textinput.New()
	remarks.CharLimit = 256

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, token: token, id: id, remarks: remarks, spinner: sp}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

// Prompting reports whether the remarks prompt is open.
func (m Model) Prompting() bool { return m.action != "" }

// Begin opens the remarks prompt for action on requisition id.
func (m *Model) Begin(id, action string) tea.Cmd {
	m.id.SetValue(id)
	m.action = action
	m.notice = ""
	m.remarks.SetValue("")
	m.remarks.Prompt = "Enter remarks for " + action + ": "
	m.id.Blur()
	return m.remarks.Focus()
}

// DecideNow sends a decision with remarks already known.
func (m *Model) DecideNow(id, action, remarks string) tea.Cmd {
	m.id.SetValue(id)
	return m.decide(action, remarks)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case DecidedMsg:
		m.busy = false
		m.level, m.notice = msg.Out.Level, msg.Out.Message
		if msg.Err != nil && m.notice == "" {
			m.level, m.notice = "error", msg.Err.Error()
		}
		if msg.Out.Reload {
			return m, func() tea.Msg { return ReloadMsg{} }
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.Prompting() {
			switch msg.String() {
			case "enter":
				action, remarks := m.action, m.remarks.Value()
				m.closePrompt()
				return m, m.decide(action, remarks)
			case "esc":
				m.closePrompt()
				m.level, m.notice = "error", apperrors.ErrCancelled.Error()
				return m, nil
			}
			var cmd tea.Cmd
			m.remarks, cmd = m.remarks.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+a":
			return m, m.Begin(strings.TrimSpace(m.id.Value()), "approve")
		case "ctrl+r":
			return m, m.Begin(strings.TrimSpace(m.id.Value()), "reject")
		}
		var cmd tea.Cmd
		m.id, cmd = m.id.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Requisition approval") + "\n\n")
	sb.WriteString(m.id.View() + "\n")
	if m.Prompting() {
		sb.WriteString("\n" + m.remarks.View() + "\n")
		sb.WriteString(theme.Muted.Render("enter: send  esc: cancel") + "\n")
	}
	sb.WriteString("\n")
	switch {
	case m.busy:
		sb.WriteString(m.spinner.View() + " Sending decision…")
	case m.notice != "":
		sb.WriteString(theme.Notice(m.level, m.notice))
	default:
		sb.WriteString(theme.Muted.Render("ctrl+a approve  ctrl+r reject"))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) closePrompt() {
	m.action = ""
	m.remarks.Blur()
	m.id.Focus()
}

func (m *Model) decide(action, remarks string) tea.Cmd {
	if m.busy {
		return nil
	}
	m.busy = true
	m.notice = ""
	port, token, id := m.port, m.token, strings.TrimSpace(m.id.Value())
	send := func() tea.Msg {
		if port == nil {
			return DecidedMsg{Err: errors.New("requisition approvals are not configured")}
		}
		ctx := context.Background()
		tok := ""
		if token != nil {
			t, err := token(ctx)
			if err != nil {
				return DecidedMsg{Err: err}
			}
			tok = t
		}
		out, err := port.Decide(ctx, reqdto.DecideInput{
			RequisitionID: id,
			Action:        action,
			Token:         tok,
			Remarks:       &remarks,
		})
		return DecidedMsg{Out: out, Err: err}
	}
	return tea.Batch(send, m.spinner.Tick)
}
