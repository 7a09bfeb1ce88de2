package components

import (
	"fmt"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/curanostics/curanostics/internal/ui/theme"
)

// TextInput is a single-line field with an optional length counter.
type TextInput struct {
	input textinput.Model
	limit int
}

// NewTextInput returns an unfocused field. A positive limit caps the
// length and shows a used/limit counter while focused.
func NewTextInput(placeholder string, limit int) TextInput {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = "› "
	if limit > 0 {
		in.CharLimit = limit
	}
	return TextInput{input: in, limit: limit}
}

func (t *TextInput) Focus() tea.Cmd { return t.input.Focus() }
func (t *TextInput) Blur()          { t.input.Blur() }
func (t TextInput) Value() string   { return t.input.Value() }

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	v := t.input.View()
	if t.limit > 0 && t.input.Focused() {
		used := len([]rune(t.input.Value()))
		v += "  " + theme.Hint.Render(fmt.Sprintf("%d/%d", used, t.limit))
	}
	return v
}
