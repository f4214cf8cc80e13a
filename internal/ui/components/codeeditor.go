package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/placeprep/internal/ui/theme"
)

// CodeEditor wraps bubbles/textarea for contest code entry.
type CodeEditor struct {
	Model textarea.Model
}

// NewCodeEditor creates an editor seeded with starter code.
func NewCodeEditor(code string, width, height int) CodeEditor {
	ta := textarea.New()
	ta.Placeholder = "write your solution here"
	ta.SetValue(code)
	ta.SetWidth(width)
	ta.SetHeight(height)
	return CodeEditor{Model: ta}
}

// Init returns the focus command.
func (e CodeEditor) Init() tea.Cmd {
	return e.Model.Focus()
}

// Update handles messages.
func (e CodeEditor) Update(msg tea.Msg) (CodeEditor, tea.Cmd) {
	var cmd tea.Cmd
	e.Model, cmd = e.Model.Update(msg)
	return e, cmd
}

// View renders the editor inside a code block.
func (e CodeEditor) View() string {
	return theme.CodeBlock.Render(e.Model.View())
}

// Value returns the current buffer contents.
func (e CodeEditor) Value() string {
	return e.Model.Value()
}

// SetValue replaces the buffer contents.
func (e *CodeEditor) SetValue(code string) {
	e.Model.SetValue(code)
}

// Resize adjusts the editor dimensions.
func (e *CodeEditor) Resize(width, height int) {
	e.Model.SetWidth(width)
	e.Model.SetHeight(height)
}

// Focused reports whether the editor has input focus.
func (e CodeEditor) Focused() bool {
	return e.Model.Focused()
}

// Blur releases input focus.
func (e *CodeEditor) Blur() {
	e.Model.Blur()
}
