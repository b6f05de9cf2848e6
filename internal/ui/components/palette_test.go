package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func typeInto(p Palette, text string) Palette {
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return p
}

func TestPaletteTabCompletesMatchingCommand(t *testing.T) {
	p := NewPalette()
	p.Open()
	p = typeInto(p, "hist")
	require.Equal(t, []string{"report:history <worker-id>"}, p.suggestions())

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p = typeInto(p, "12")
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.Equal(t, PaletteSubmitMsg{Input: "report:history 12"}, cmd())
}

func TestPaletteArgumentsDoNotNarrowSuggestions(t *testing.T) {
	p := NewPalette()
	p.Open()
	p = typeInto(p, "requisition:approve 4 ok")
	require.Equal(t, []string{"requisition:approve <id> [remarks]"}, p.suggestions())
}

func TestPaletteEscCancels(t *testing.T) {
	p := NewPalette()
	p.Open()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, p.Visible())
	require.Equal(t, PaletteCancelMsg{}, cmd())
}
