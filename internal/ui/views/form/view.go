package form

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	formsdto "factoryerp/internal/modules/forms/dto"
	apperrors "factoryerp/internal/platform/errors"
	"factoryerp/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Handle is one live form instance.
type Handle interface {
	Kind() string
	Title() string
	Fields() []formsdto.FieldOutput
	Set(name, value string) error
	Select(name string, values ...string) error
	Reset()
	Pending() bool
	Submit(ctx context.Context, input formsdto.SubmitInput) (formsdto.SubmitOutput, error)
}

// TokenFunc yields the bearer token of the current session.
type TokenFunc func(ctx context.Context) (string, error)

// ─── messages ────────────────────────────────────────────────────────────────

// SubmittedMsg carries a finished submission back to the view that made it.
type SubmittedMsg struct {
	Kind string
	Out  formsdto.SubmitOutput
	Err  error
}

// ─── model ───────────────────────────────────────────────────────────────────

type field struct {
	spec  formsdto.FieldOutput
	input textinput.Model
}

type Model struct {
	handle  Handle
	token   TokenFunc
	fields  []field
	focus   int
	spinner spinner.Model
	notice  string
	level   string
	waiting bool
	width   int
	height  int
}

func New(handle Handle, token TokenFunc) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	m := Model{handle: handle, token: token, spinner: sp}
	for _, spec := range handle.Fields() {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 128
		if spec.Multi {
			ti.Placeholder = "ids, comma separated"
		}
		m.fields = append(m.fields, field{spec: spec, input: ti})
	}
	m.focus = m.nextEditable(-1, 1)
	m.applyFocus()
	m.sync()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Kind() string { return m.handle.Kind() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SubmittedMsg:
		if msg.Kind != m.Kind() || errors.Is(msg.Err, apperrors.ErrSubmissionInFlight) {
			return m, nil
		}
		m.waiting = false
		m.level, m.notice = msg.Out.Level, msg.Out.Message
		if msg.Err != nil && m.notice == "" {
			m.level, m.notice = "error", msg.Err.Error()
		}
		m.sync()
		return m, nil

	case spinner.TickMsg:
		if !m.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			m.move(-1)
			return m, nil
		case "down":
			m.move(1)
			return m, nil
		case "enter":
			if m.focus == m.nextEditable(len(m.fields), -1) {
				return m, m.Submit()
			}
			m.move(1)
			return m, nil
		case "ctrl+s":
			return m, m.Submit()
		}
	}

	if m.focus < 0 {
		return m, nil
	}
	f := &m.fields[m.focus]
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() != before {
		m.push(*f)
		m.sync()
	}
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.handle.Title()) + "\n\n")
	labelW := 0
	for _, f := range m.fields {
		labelW = max(labelW, lipgloss.Width(label(f.spec)))
	}
	for i, f := range m.fields {
		l := label(f.spec)
		l += strings.Repeat(" ", labelW-lipgloss.Width(l))
		switch {
		case f.spec.Readonly:
			sb.WriteString(theme.Muted.Render(l) + "  " + theme.Muted.Render(orDash(f.spec.Value)) + "\n")
		case i == m.focus:
			sb.WriteString(theme.Hot.Render(l) + "  " + f.input.View() + "\n")
		default:
			sb.WriteString(l + "  " + f.input.View() + "\n")
		}
	}
	sb.WriteString("\n")
	switch {
	case m.Pending():
		sb.WriteString(m.spinner.View() + " Submitting…")
	case m.notice != "":
		sb.WriteString(theme.Notice(m.level, m.notice))
	default:
		sb.WriteString(theme.Muted.Render("↑/↓ move  enter next  ctrl+s submit"))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

// Submit starts an asynchronous submission with the current session token.
// The guard inside the handle drops overlapping submits.
func (m *Model) Submit() tea.Cmd {
	m.notice = ""
	m.waiting = true
	handle, token := m.handle, m.token
	submit := func() tea.Msg {
		ctx := context.Background()
		tok := ""
		if token != nil {
			t, err := token(ctx)
			if err != nil {
				return SubmittedMsg{Kind: handle.Kind(), Err: err}
			}
			tok = t
		}
		out, err := handle.Submit(ctx, formsdto.SubmitInput{Token: tok})
		return SubmittedMsg{Kind: handle.Kind(), Out: out, Err: err}
	}
	return tea.Batch(submit, m.spinner.Tick)
}

// Pending reports whether a submission is still out.
func (m Model) Pending() bool {
	return m.waiting || m.handle.Pending()
}

// Reset blanks the form and its inputs.
func (m *Model) Reset() {
	m.handle.Reset()
	m.notice = ""
	m.sync()
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) push(f field) {
	if f.spec.Multi {
		_ = m.handle.Select(f.spec.Name, splitIDs(f.input.Value())...)
		return
	}
	_ = m.handle.Set(f.spec.Name, f.input.Value())
}

// sync pulls field state back from the handle so derived values and resets
// show up in the inputs.
func (m *Model) sync() {
	specs := m.handle.Fields()
	for i := range m.fields {
		if i >= len(specs) {
			break
		}
		spec := specs[i]
		m.fields[i].spec = spec
		if spec.Readonly {
			continue
		}
		want := spec.Value
		if spec.Multi {
			want = strings.Join(spec.Selected, ",")
			if sameIDs(m.fields[i].input.Value(), spec.Selected) {
				continue
			}
		}
		if m.fields[i].input.Value() != want {
			m.fields[i].input.SetValue(want)
		}
	}
}

func (m *Model) move(delta int) {
	next := m.nextEditable(m.focus, delta)
	if next >= 0 {
		m.focus = next
		m.applyFocus()
	}
}

func (m Model) nextEditable(from, delta int) int {
	for i := from + delta; i >= 0 && i < len(m.fields); i += delta {
		if !m.fields[i].spec.Readonly {
			return i
		}
	}
	if from >= 0 && from < len(m.fields) {
		return from
	}
	return -1
}

func (m *Model) applyFocus() {
	for i := range m.fields {
		if i == m.focus {
			m.fields[i].input.Focus()
		} else {
			m.fields[i].input.Blur()
		}
	}
}

func label(spec formsdto.FieldOutput) string {
	if spec.Required {
		return spec.Label + " *"
	}
	return spec.Label
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func splitIDs(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' })
	return parts
}

func sameIDs(raw string, selected []string) bool {
	ids := splitIDs(raw)
	if len(ids) != len(selected) {
		return false
	}
	for i := range ids {
		if ids[i] != selected[i] {
			return false
		}
	}
	return true
}
