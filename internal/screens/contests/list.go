// Package contests holds the contest lobby and the live contest screen.
package contests

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/placeprep/internal/account"
	"github.com/abhisek/placeprep/internal/content"
	"github.com/abhisek/placeprep/internal/contest"
	"github.com/abhisek/placeprep/internal/router"
	"github.com/abhisek/placeprep/internal/screen"
	"github.com/abhisek/placeprep/internal/ui/layout"
	"github.com/abhisek/placeprep/internal/ui/theme"
)

// Directory is the slice of the store the contest screens need.
type Directory interface {
	ListContests(ctx context.Context) ([]*contest.Contest, error)
	SaveSubmission(ctx context.Context, sub *contest.Submission) error
}

type contestsLoadedMsg struct {
	contests []*contest.Contest
	err      error
}

// ListScreen is the contest lobby.
type ListScreen struct {
	dir  Directory
	svc  *content.Service
	acct *account.Account

	contests []*contest.Contest
	cursor   int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.KeyHintProvider = (*ListScreen)(nil)

// NewList creates the contest lobby screen.
func NewList(dir Directory, svc *content.Service, acct *account.Account) *ListScreen {
	return &ListScreen{dir: dir, svc: svc, acct: acct}
}

func (l *ListScreen) Title() string {
	return "Contests"
}

func (l *ListScreen) Init() tea.Cmd {
	dir := l.dir
	return func() tea.Msg {
		contests, err := dir.ListContests(context.Background())
		return contestsLoadedMsg{contests: contests, err: err}
	}
}

func (l *ListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Join"},
		{Key: "Esc", Description: "Back"},
	}
}

func (l *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contestsLoadedMsg:
		l.loaded = true
		if msg.err != nil {
			l.errMsg = msg.err.Error()
			return l, nil
		}
		l.contests = msg.contests
		return l, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if l.cursor > 0 {
				l.cursor--
			}
		case "down", "j":
			if l.cursor < len(l.contests)-1 {
				l.cursor++
			}
		case "enter":
			return l.join()
		}
	}
	return l, nil
}

// join validates the contest window before entering. Out-of-window
// contests surface the error in place.
func (l *ListScreen) join() (screen.Screen, tea.Cmd) {
	if l.cursor >= len(l.contests) {
		return l, nil
	}
	c := l.contests[l.cursor]

	sess := contest.NewSession()
	if err := sess.Join(c, l.acct.Email, time.Now()); err != nil {
		l.errMsg = err.Error()
		return l, nil
	}

	live := NewLive(sess, l.dir, l.svc)
	return l, func() tea.Msg { return router.PushScreenMsg{Screen: live} }
}

func (l *ListScreen) View(width, height int) string {
	if !l.loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Subtitle.Render("Loading contests..."))
	}
	if len(l.contests) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Subtitle.Render("No contests scheduled.")+"\n"+
				theme.Hint.Render("Ask an admin to create one with `placeprep contest create`."))
	}

	var b strings.Builder
	b.WriteString("\n")
	now := time.Now()
	for i, c := range l.contests {
		cursor := "  "
		if i == l.cursor {
			cursor = "▸ "
		}

		start, end := c.Window()
		var status string
		switch {
		case now.Before(start):
			status = theme.Hint.Render("starts " + start.Format("Jan 2 15:04"))
		case now.After(end):
			status = theme.Hint.Render("ended")
		default:
			status = theme.Correct.Render("live")
		}

		line := fmt.Sprintf("%s%-32s %2d problems   %s", cursor, c.Title, len(c.Problems), status)
		if i == l.cursor {
			b.WriteString("  " + theme.Selected.Render(line))
		} else {
			b.WriteString("  " + theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}

	if l.errMsg != "" {
		b.WriteString("\n  " + theme.Incorrect.Render(l.errMsg))
	}
	return b.String()
}
