// Package summary shows the outcome of a completed assessment: score,
// per-question feedback, weak areas and recommendations.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/placeprep/internal/account"
	"github.com/abhisek/placeprep/internal/content"
	"github.com/abhisek/placeprep/internal/router"
	"github.com/abhisek/placeprep/internal/screen"
	"github.com/abhisek/placeprep/internal/ui/layout"
	"github.com/abhisek/placeprep/internal/ui/theme"
)

// SummaryScreen displays the assessment result.
type SummaryScreen struct {
	result  *content.AssessmentResult
	acct    *account.Account
	attempt account.Attempt
	cursor  int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for a just-completed assessment.
func New(result *content.AssessmentResult, acct *account.Account, attempt account.Attempt) *SummaryScreen {
	return &SummaryScreen{result: result, acct: acct, attempt: attempt}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Review answers"},
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.result.Feedback)-1 {
			s.cursor++
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	var b strings.Builder

	headline := "Assessment complete"
	if r.Perfect() {
		headline = "Perfect score!"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(headline))
	b.WriteString("\n\n")

	scoreLine := fmt.Sprintf("Score: %d/%d  (%d%%)        Tier: %s        Attempt #%d",
		r.Score, r.Total, r.Percent(), s.acct.Level, s.attempt.Number)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(scoreLine))
	b.WriteString("\n")

	if notice := s.unlockNotice(); notice != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render(notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(r.WeakAreas) > 0 {
		b.WriteString("  " + theme.Subtitle.Render("Weak areas: "+strings.Join(r.WeakAreas, ", ")))
		b.WriteString("\n\n")
	}

	b.WriteString(s.renderFeedback(width, height))

	if len(r.Recommendations) > 0 {
		b.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Recommended"))
		b.WriteString("\n")
		for _, rec := range r.Recommendations {
			b.WriteString("  " + theme.Body.Render(rec.Topic))
			b.WriteString("\n")
			for _, res := range rec.Resources {
				b.WriteString("    " + theme.Hint.Render(res.Name+"  "+res.URL))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

// unlockNotice reports a badge earned on this attempt, if any.
func (s *SummaryScreen) unlockNotice() string {
	if !s.result.Perfect() {
		return ""
	}
	badge := account.BadgeForTier(s.attempt.Tier)
	if !s.acct.HasBadge(badge) {
		return ""
	}
	if s.acct.PlacementReady && s.attempt.Tier == account.TierExpert {
		return "★ " + badge + " — you are placement ready!"
	}
	if s.acct.Level != s.attempt.Tier {
		return fmt.Sprintf("★ %s — %s tier unlocked!", badge, s.acct.Level)
	}
	return ""
}

// renderFeedback shows a window of per-question feedback around the
// cursor.
func (s *SummaryScreen) renderFeedback(width, height int) string {
	fb := s.result.Feedback
	if len(fb) == 0 {
		return ""
	}

	window := 4
	start := s.cursor - 1
	if start < 0 {
		start = 0
	}
	end := start + window
	if end > len(fb) {
		end = len(fb)
	}

	var b strings.Builder
	b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Review"))
	b.WriteString("\n")
	for i := start; i < end; i++ {
		f := fb[i]
		mark := theme.Correct.Render("✓")
		if !f.IsCorrect {
			mark = theme.Incorrect.Render("✗")
		}
		cursor := "  "
		if i == s.cursor {
			cursor = "▸ "
		}
		selected := f.Selected
		if selected == "" {
			selected = "—"
		}
		b.WriteString(fmt.Sprintf("  %s%s %s\n", cursor, mark,
			theme.Body.Render(truncate(f.Prompt, width-12))))
		if i == s.cursor {
			detail := fmt.Sprintf("your answer: %s   correct: %s", selected, f.Correct)
			b.WriteString("      " + theme.Hint.Render(detail) + "\n")
			if f.Explanation != "" {
				b.WriteString("      " + theme.Hint.Render(truncate(f.Explanation, width-12)) + "\n")
			}
		}
	}
	return b.String()
}

func truncate(s string, max int) string {
	if max < 4 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
