// Package welcome is the sign-in screen: login for returning accounts,
// registration for new ones.
package welcome

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/placeprep/internal/account"
	"github.com/abhisek/placeprep/internal/router"
	"github.com/abhisek/placeprep/internal/screen"
	"github.com/abhisek/placeprep/internal/ui/components"
	"github.com/abhisek/placeprep/internal/ui/layout"
	"github.com/abhisek/placeprep/internal/ui/theme"
)

type mode int

const (
	modeLogin mode = iota
	modeRegister
)

type authResultMsg struct {
	acct *account.Account
	err  error
}

// WelcomeScreen collects credentials and signs the user in.
type WelcomeScreen struct {
	auth        *account.AuthService
	homeFactory func(*account.Account) screen.Screen

	mode   mode
	inputs []components.TextInput
	labels []string
	focus  int
	errMsg string
	busy   bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. homeFactory builds the home screen for
// the signed-in account.
func New(auth *account.AuthService, homeFactory func(*account.Account) screen.Screen) *WelcomeScreen {
	w := &WelcomeScreen{
		auth:        auth,
		homeFactory: homeFactory,
	}
	w.setMode(modeLogin)
	return w
}

func (w *WelcomeScreen) setMode(m mode) {
	w.mode = m
	w.focus = 0
	w.errMsg = ""
	if m == modeLogin {
		w.labels = []string{"Email", "Password"}
		w.inputs = []components.TextInput{
			components.NewTextInput("you@example.com", false, 64),
			components.NewTextInput("password", true, 64),
		}
	} else {
		w.labels = []string{"Name", "Email", "Password"}
		w.inputs = []components.TextInput{
			components.NewTextInput("Your name", false, 64),
			components.NewTextInput("you@example.com", false, 64),
			components.NewTextInput("password", true, 64),
		}
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return w.inputs[0].Init()
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+R", Description: "Switch login/register"},
	}
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		w.busy = false
		if msg.err != nil {
			w.errMsg = msg.err.Error()
			return w, nil
		}
		home := w.homeFactory(msg.acct)
		return w, func() tea.Msg { return router.ReplaceScreenMsg{Screen: home} }

	case tea.KeyMsg:
		if w.busy {
			return w, nil
		}
		// The submit button is the last focusable element after the
		// input fields.
		fields := len(w.inputs) + 1
		switch msg.String() {
		case "tab", "down":
			w.focus = (w.focus + 1) % fields
			return w, w.focusCurrent()
		case "shift+tab", "up":
			w.focus = (w.focus - 1 + fields) % fields
			return w, w.focusCurrent()
		case "ctrl+r":
			if w.mode == modeLogin {
				w.setMode(modeRegister)
			} else {
				w.setMode(modeLogin)
			}
			return w, w.focusCurrent()
		case "enter":
			if w.focus < len(w.inputs)-1 {
				w.focus++
				return w, w.focusCurrent()
			}
			return w, w.submit()
		}
	}

	if w.focus >= len(w.inputs) {
		return w, nil
	}
	var cmd tea.Cmd
	w.inputs[w.focus], cmd = w.inputs[w.focus].Update(msg)
	return w, cmd
}

func (w *WelcomeScreen) focusCurrent() tea.Cmd {
	var cmd tea.Cmd
	for i := range w.inputs {
		if i == w.focus {
			cmd = w.inputs[i].Model.Focus()
			continue
		}
		w.inputs[i].Model.Blur()
	}
	return cmd
}

func (w *WelcomeScreen) submit() tea.Cmd {
	values := make([]string, len(w.inputs))
	for i := range w.inputs {
		values[i] = strings.TrimSpace(w.inputs[i].Value())
		if values[i] == "" {
			w.errMsg = "all fields are required"
			return nil
		}
	}

	w.busy = true
	w.errMsg = ""
	m := w.mode
	auth := w.auth

	return func() tea.Msg {
		ctx := context.Background()
		if m == modeRegister {
			acct, err := auth.Register(ctx, values[0], values[1], values[2])
			return authResultMsg{acct: acct, err: err}
		}
		acct, err := auth.Login(ctx, values[0], values[1])
		return authResultMsg{acct: acct, err: err}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, RenderBanner(width))
	sections = append(sections, "")

	heading := "Sign in"
	hint := "New here? Ctrl+R to register"
	if w.mode == modeRegister {
		heading = "Create your account"
		hint = "Have an account? Ctrl+R to sign in"
	}
	sections = append(sections, theme.Title.Render(heading))
	sections = append(sections, "")

	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(10)
	for i, input := range w.inputs {
		cursor := "  "
		if i == w.focus {
			cursor = "▸ "
		}
		sections = append(sections, cursor+labelStyle.Render(w.labels[i])+input.View())
	}

	sections = append(sections, "")
	label := "SIGN IN"
	if w.mode == modeRegister {
		label = "CREATE ACCOUNT"
	}
	button := components.NewButton(label, w.focus == len(w.inputs) && !w.busy, nil)
	sections = append(sections, button.View())

	sections = append(sections, "")
	if w.busy {
		sections = append(sections, theme.Hint.Render("signing in..."))
	} else if w.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(w.errMsg))
	} else {
		sections = append(sections, theme.Hint.Render(hint))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
