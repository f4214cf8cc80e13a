// Package app wires the services together and runs the Bubble Tea
// program.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/placeprep/internal/account"
	"github.com/abhisek/placeprep/internal/config"
	"github.com/abhisek/placeprep/internal/content"
	"github.com/abhisek/placeprep/internal/llm"
	"github.com/abhisek/placeprep/internal/progression"
	"github.com/abhisek/placeprep/internal/router"
	"github.com/abhisek/placeprep/internal/screen"
	"github.com/abhisek/placeprep/internal/screens/home"
	"github.com/abhisek/placeprep/internal/screens/welcome"
	"github.com/abhisek/placeprep/internal/store"
	"github.com/abhisek/placeprep/internal/ui/layout"
)

// AccountProvider is implemented by screens that know the signed-in
// account, so the frame header can show tier and average.
type AccountProvider interface {
	Account() *account.Account
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Fall through to the router so screens can track size too.

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	// Focus reporting feeds the contest integrity monitor.
	v.ReportFocus = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	tier := ""
	avg := 0
	if ap, ok := active.(AccountProvider); ok {
		if acct := ap.Account(); acct != nil {
			tier = acct.Level.String()
			avg = acct.AverageScore
		}
	}

	header := layout.RenderHeader(title, tier, avg, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run builds the service graph and starts the program. The signed-in
// session is restored when the store has a current session pointer.
func Run(cfg config.Config, st *store.Store) error {
	accounts := st.Accounts()
	auth := account.NewAuthService(accounts)

	provider, err := llm.NewProvider(context.Background(), cfg.LLM, st.LLMEvents())
	if err != nil {
		return fmt.Errorf("configure LLM provider: %w", err)
	}
	svc := content.NewService(provider, cfg.Content)

	deps := home.Deps{
		Auth:          auth,
		Content:       svc,
		Progress:      progression.NewEngine(accounts),
		Contests:      st.Contests(),
		Subjects:      cfg.Subjects,
		QuestionCount: cfg.Content.QuestionCount,
	}
	var welcomeFactory func() screen.Screen
	welcomeFactory = func() screen.Screen {
		return welcome.New(auth, func(acct *account.Account) screen.Screen {
			return home.New(deps, acct)
		})
	}
	deps.LoggedOut = welcomeFactory

	initial := welcomeFactory()
	if acct, err := auth.Current(context.Background()); err == nil && acct != nil {
		initial = home.New(deps, acct)
	}

	// Focus reporting is enabled via View.ReportFocus; it feeds the
	// contest integrity monitor.
	p := tea.NewProgram(AppModel{router: router.New(initial)})
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
