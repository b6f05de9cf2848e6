package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"factoryerp/internal/ui/theme"
)

// PaletteSubmitMsg carries the confirmed command line.
type PaletteSubmitMsg struct{ Input string }

type PaletteCancelMsg struct{}

const maxSuggestions = 6

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle   = lipgloss.NewStyle().Foreground(theme.Subtext0)
	chosenStyle = lipgloss.NewStyle().Foreground(theme.Peach).Bold(true)
)

// PaletteCommands lists what executePalette in the app model understands.
var PaletteCommands = []string{
	"form:production",
	"form:attendance",
	"form:downtime",
	"form:requisition",
	"form:reset",
	"report:refresh",
	"report:history <worker-id>",
	"requisition:approve <id> [remarks]",
	"requisition:reject <id> [remarks]",
	"reload",
}

// Palette is the ":" command line. Tab completes the highlighted suggestion.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	cursor  int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "form:production, report:history 12 …"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.cursor = 0
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "up":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		case "down":
			if p.cursor < len(p.suggestions())-1 {
				p.cursor++
			}
			return p, nil
		case "tab":
			if s := p.suggestions(); len(s) > 0 {
				p.input.SetValue(completion(s[p.cursor]))
				p.input.CursorEnd()
				p.cursor = 0
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if n := len(p.suggestions()); p.cursor >= n {
		p.cursor = max(n-1, 0)
	}
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Commands") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if s := p.suggestions(); len(s) > 0 {
		sb.WriteString("\n")
		for i, h := range s {
			if i == p.cursor {
				sb.WriteString(chosenStyle.Render("› "+h) + "\n")
				continue
			}
			sb.WriteString(hintStyle.Render("  "+h) + "\n")
		}
	}
	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

// suggestions matches the typed command word anywhere in a known command.
func (p Palette) suggestions() []string {
	typed := strings.ToLower(strings.TrimSpace(p.input.Value()))
	if word, _, found := strings.Cut(typed, " "); found {
		typed = word
	}
	out := make([]string, 0, maxSuggestions)
	for _, c := range PaletteCommands {
		if typed == "" || strings.Contains(c, typed) {
			out = append(out, c)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

// completion keeps the command word and drops argument placeholders.
func completion(hint string) string {
	word, _, found := strings.Cut(hint, " ")
	if found {
		return word + " "
	}
	return word
}
