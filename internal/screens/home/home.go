// Package home is the signed-in landing screen.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/placeprep/internal/account"
	"github.com/abhisek/placeprep/internal/content"
	"github.com/abhisek/placeprep/internal/progression"
	"github.com/abhisek/placeprep/internal/router"
	"github.com/abhisek/placeprep/internal/screen"
	assessmentscreen "github.com/abhisek/placeprep/internal/screens/assessment"
	"github.com/abhisek/placeprep/internal/screens/contests"
	"github.com/abhisek/placeprep/internal/screens/stats"
	"github.com/abhisek/placeprep/internal/screens/study"
	"github.com/abhisek/placeprep/internal/ui/components"
	"github.com/abhisek/placeprep/internal/ui/theme"
)

// Deps carries everything the home screen fans out to child screens.
type Deps struct {
	Auth          *account.AuthService
	Content       *content.Service
	Progress      *progression.Engine
	Contests      contests.Directory
	Subjects      []string
	QuestionCount int

	// LoggedOut rebuilds the welcome screen after logout.
	LoggedOut func() screen.Screen
}

// HomeScreen is the main menu for a signed-in account.
type HomeScreen struct {
	deps Deps
	acct *account.Account
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen for the signed-in account.
func New(deps Deps, acct *account.Account) *HomeScreen {
	h := &HomeScreen{deps: deps, acct: acct}

	items := []components.MenuItem{
		{Label: "TAKE ASSESSMENT", Hint: fmt.Sprintf("%d timed questions at your %s tier", deps.QuestionCount, acct.Level), Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: assessmentscreen.New(deps.Content, deps.Progress, acct, deps.Subjects, deps.QuestionCount),
				}
			}
		}},
		{Label: "CODING CONTESTS", Hint: "join a scheduled contest", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: contests.NewList(deps.Contests, deps.Content, acct),
				}
			}
		}},
		{Label: "STUDY MODE", Hint: "AI study notes per subject", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: study.New(deps.Content, deps.Subjects),
				}
			}
		}},
		{Label: "MY STATS", Hint: "progression, badges, attempt history", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(acct)}
			}
		}},
		{Label: "LOG OUT", Action: func() tea.Cmd {
			deps.Auth.Logout(context.Background())
			return func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: deps.LoggedOut()}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// Account exposes the signed-in account for the frame header.
func (h *HomeScreen) Account() *account.Account {
	return h.acct
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	a := h.acct
	var sections []string

	sections = append(sections, theme.Title.Render("Welcome back, "+a.Name))

	status := fmt.Sprintf("%s tier   avg %d%%   %d tests", a.Level, a.AverageScore, a.TotalTests)
	if a.PlacementReady {
		status += "   placement ready"
	}
	sections = append(sections, theme.Subtitle.Render(status))

	if len(a.Badges) > 0 {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render("★ "+strings.Join(a.Badges, "   ★ ")))
	}

	sections = append(sections, "")
	sections = append(sections, h.menu.View())

	body := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
