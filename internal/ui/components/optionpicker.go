package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/placeprep/internal/content"
	"github.com/abhisek/placeprep/internal/ui/theme"
)

// OptionPicker selects one answer among a question's labeled options.
// The choice stays overwritable until the question is advanced past;
// correctness is never revealed here.
type OptionPicker struct {
	Prompt  string
	Options []content.Option
	Cursor  int

	// Chosen is the committed option label, "" while undecided.
	Chosen string
}

// NewOptionPicker creates a picker for one question, restoring a prior
// selection if the user navigated back to it.
func NewOptionPicker(q *content.Question, chosen string) OptionPicker {
	cursor := 0
	for i, opt := range q.Options {
		if opt.Label == chosen {
			cursor = i
			break
		}
	}
	return OptionPicker{
		Prompt:  q.Prompt,
		Options: q.Options,
		Cursor:  cursor,
		Chosen:  chosen,
	}
}

func (p OptionPicker) Init() tea.Cmd {
	return nil
}

// Update handles navigation and selection. Pressing an option's letter
// selects it directly.
func (p OptionPicker) Update(msg tea.Msg) (OptionPicker, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if p.Cursor > 0 {
			p.Cursor--
		}
	case "down", "j":
		if p.Cursor < len(p.Options)-1 {
			p.Cursor++
		}
	case "enter", " ":
		if p.Cursor >= 0 && p.Cursor < len(p.Options) {
			p.Chosen = p.Options[p.Cursor].Label
		}
	default:
		for i, opt := range p.Options {
			if key == opt.Label || (len(key) == 1 && key[0] == opt.Label[0]+'a'-'A') {
				p.Cursor = i
				p.Chosen = opt.Label
				break
			}
		}
	}

	return p, nil
}

// View renders the question and its options.
func (p OptionPicker) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(p.Prompt) + "\n\n"

	for i, opt := range p.Options {
		prefix := "  "
		if i == p.Cursor {
			prefix = "▸ "
		}
		marker := " "
		if opt.Label == p.Chosen {
			marker = "●"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, opt.Label, opt.Text)

		switch {
		case opt.Label == p.Chosen:
			s += theme.Selected.Render(line) + "\n"
		case i == p.Cursor:
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}

	return s
}
