// Package stats shows the signed-in account's progression: tier,
// badges, score aggregates and the attempt history.
package stats

import (
	"fmt"
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

// Screen renders account statistics.
type Screen struct {
	acct   *account.Account
	offset int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the stats screen.
func New(acct *account.Account) *Screen {
	return &Screen{acct: acct}
}

func (s *Screen) Title() string {
	return "My Stats"
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll history"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc", "enter":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		if s.offset < len(s.acct.Attempts)-1 {
			s.offset++
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	a := s.acct
	var b strings.Builder

	b.WriteString("\n  " + theme.Title.Render(a.Name) + "\n")

	ready := ""
	if a.PlacementReady {
		ready = "   " + theme.Correct.Render("placement ready")
	}
	b.WriteString("  " + theme.Subtitle.Render(fmt.Sprintf("%s tier%s", a.Level, ready)) + "\n\n")

	avgBar := components.NewProgressBar("Average", float64(a.AverageScore)/100, true, width/2)
	bestBar := components.NewProgressBar("Best   ", float64(a.HighestScore)/100, true, width/2)
	b.WriteString("  " + avgBar.View() + "\n")
	b.WriteString("  " + bestBar.View() + "\n\n")

	b.WriteString("  " + theme.Body.Render(fmt.Sprintf("Tests taken: %d", a.TotalTests)))
	if len(a.TestsTaken) > 0 {
		parts := make([]string, 0, len(a.TestsTaken))
		for _, tier := range []account.Tier{account.TierBeginner, account.TierAdvanced, account.TierExpert} {
			if n := a.TestsTaken[tier.String()]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s %d", tier, n))
			}
		}
		b.WriteString("  " + theme.Hint.Render("("+strings.Join(parts, ", ")+")"))
	}
	b.WriteString("\n")

	if len(a.Badges) > 0 {
		b.WriteString("  " + theme.Body.Render("Badges: ") +
			lipgloss.NewStyle().Foreground(theme.Accent).Render(strings.Join(a.Badges, "  ★ ")) + "\n")
	}
	if len(a.WeakAreas) > 0 {
		b.WriteString("  " + theme.Hint.Render("Weak areas: "+strings.Join(a.WeakAreas, ", ")) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(s.renderHistory(width, height))
	return b.String()
}

func (s *Screen) renderHistory(width, height int) string {
	attempts := s.acct.Attempts
	if len(attempts) == 0 {
		return "  " + theme.Hint.Render("No assessments taken yet.")
	}

	rows := height - 14
	if rows < 3 {
		rows = 3
	}
	end := s.offset + rows
	if end > len(attempts) {
		end = len(attempts)
	}

	var b strings.Builder
	b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("History") + "\n")
	for _, at := range attempts[s.offset:end] {
		mark := theme.Correct.Render("●")
		if at.Percent < 50 {
			mark = theme.Incorrect.Render("●")
		} else if at.Percent < 100 {
			mark = lipgloss.NewStyle().Foreground(theme.Accent).Render("●")
		}
		line := fmt.Sprintf("#%-3d %s  %3d%%  %-9s  %s",
			at.Number, at.TakenAt.Format("Jan 02"), at.Percent, at.Tier,
			strings.Join(at.Subjects, ", "))
		b.WriteString(fmt.Sprintf("  %s %s\n", mark, theme.Body.Render(truncate(line, width-8))))
	}
	return b.String()
}

func truncate(s string, max int) string {
	if max < 4 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
