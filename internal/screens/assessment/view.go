package assessment

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	core "github.com/abhisek/placeprep/internal/assessment"
	"github.com/abhisek/placeprep/internal/ui/components"
	"github.com/abhisek/placeprep/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if s.confirmQuit {
		return renderCentered(width, height,
			theme.Title.Render("Abandon this assessment?")+"\n\n"+
				theme.Hint.Render("progress will not be saved  (y/n)"))
	}

	switch s.phase {
	case phaseLoading:
		return renderCentered(width, height,
			theme.Subtitle.Render("Generating your questions..."))
	case phaseSubmitting:
		return renderCentered(width, height,
			theme.Subtitle.Render("Scoring and analyzing your answers..."))
	case phaseFailed:
		return renderCentered(width, height,
			theme.Incorrect.Render(s.errMsg)+"\n\n"+
				theme.Hint.Render("R to retry, Esc to go back"))
	}

	return s.renderQuestion(width)
}

func (s *Screen) renderQuestion(width int) string {
	q := s.session.Current()
	if q == nil {
		return ""
	}

	var b strings.Builder

	remaining := s.session.Remaining(time.Now())
	mins := int(remaining.Minutes())
	secs := int(remaining.Seconds()) % 60

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", q.Subject))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d   %d:%02d",
			s.session.Index()+1, s.session.QuestionCount(), mins, secs))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")

	// Countdown bar drains with the per-question clock.
	frac := float64(remaining) / float64(core.PerQuestionTimeout)
	bar := components.NewProgressBar("", frac, false, width-8)
	b.WriteString("    " + bar.View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Padding(0, 4).
		Render(s.picker.View()))

	return b.String()
}

func renderCentered(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
