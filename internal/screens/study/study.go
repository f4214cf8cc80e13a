// Package study is the revision screen: AI-generated notes per subject,
// with topic deep-dives and external resources on demand.
package study

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/placeprep/internal/content"
	"github.com/abhisek/placeprep/internal/screen"
	"github.com/abhisek/placeprep/internal/ui/components"
	"github.com/abhisek/placeprep/internal/ui/layout"
	"github.com/abhisek/placeprep/internal/ui/theme"
)

type phase int

const (
	phaseSubjects phase = iota
	phaseLoading
	phaseNotes
	phaseDetail
)

type notesMsg struct {
	epoch int
	notes []content.Note
	err   error
}

type detailMsg struct {
	epoch     int
	info      *content.TopicInfo
	resources []content.Resource
	err       error
}

// Screen drives the study flow.
type Screen struct {
	svc      *content.Service
	subjects []string

	phase   phase
	menu    components.Menu
	subject string
	notes   []content.Note
	cursor  int
	info    *content.TopicInfo
	res     []content.Resource
	errMsg  string

	epoch int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the study screen over the configured subject set.
func New(svc *content.Service, subjects []string) *Screen {
	s := &Screen{svc: svc, subjects: subjects}

	items := make([]components.MenuItem, len(subjects))
	for i, subject := range subjects {
		items[i] = components.MenuItem{Label: subject}
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *Screen) Title() string {
	return "Study"
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseNotes:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Topics"},
			{Key: "Enter", Description: "Deep dive"},
			{Key: "Esc", Description: "Subjects"},
		}
	case phaseDetail:
		return []layout.KeyHint{{Key: "Esc", Description: "Notes"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Study subject"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case notesMsg:
		if msg.epoch != s.epoch {
			return s, nil
		}
		if msg.err != nil {
			s.phase = phaseSubjects
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.notes = msg.notes
		s.cursor = 0
		s.phase = phaseNotes
		return s, nil

	case detailMsg:
		if msg.epoch != s.epoch {
			return s, nil
		}
		if msg.err != nil {
			s.phase = phaseNotes
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.info = msg.info
		s.res = msg.resources
		s.phase = phaseDetail
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case phaseSubjects:
		if key == "enter" {
			s.subject = s.subjects[s.menu.Selected]
			return s, s.loadNotes()
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd

	case phaseNotes:
		switch key {
		case "esc":
			s.phase = phaseSubjects
			s.errMsg = ""
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.notes)-1 {
				s.cursor++
			}
		case "enter":
			if s.cursor < len(s.notes) {
				return s, s.loadDetail(s.notes[s.cursor].Topic)
			}
		}
		return s, nil

	case phaseDetail:
		if key == "esc" {
			s.phase = phaseNotes
		}
		return s, nil
	}
	return s, nil
}

func (s *Screen) loadNotes() tea.Cmd {
	s.phase = phaseLoading
	s.errMsg = ""
	s.epoch++
	epoch := s.epoch
	svc, subject := s.svc, s.subject

	return func() tea.Msg {
		notes, err := svc.StudyNotes(context.Background(), subject)
		return notesMsg{epoch: epoch, notes: notes, err: err}
	}
}

// loadDetail fetches the deep-dive and resources together. Either half
// failing open to empty is fine; only a hard error surfaces.
func (s *Screen) loadDetail(topic string) tea.Cmd {
	s.phase = phaseLoading
	s.errMsg = ""
	s.epoch++
	epoch := s.epoch
	svc := s.svc

	return func() tea.Msg {
		ctx := context.Background()
		info, err := svc.DetailedInfo(ctx, topic)
		if err != nil {
			return detailMsg{epoch: epoch, err: err}
		}
		resources, err := svc.ExternalResources(ctx, topic)
		if err != nil {
			resources = nil
		}
		return detailMsg{epoch: epoch, info: info, resources: resources}
	}
}

func (s *Screen) View(width, height int) string {
	switch s.phase {
	case phaseLoading:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Subtitle.Render("Preparing study material..."))

	case phaseNotes:
		return s.renderNotes(width)

	case phaseDetail:
		return s.renderDetail(width)
	}

	var b strings.Builder
	b.WriteString("\n  " + theme.Title.Render("Pick a subject to revise") + "\n\n")
	b.WriteString(s.menu.View())
	if s.errMsg != "" {
		b.WriteString("\n  " + theme.Incorrect.Render(s.errMsg))
	}
	return b.String()
}

func (s *Screen) renderNotes(width int) string {
	var b strings.Builder
	b.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(s.subject) + "\n\n")

	if len(s.notes) == 0 {
		b.WriteString("  " + theme.Hint.Render("No notes generated. Try again later."))
		return b.String()
	}

	for i, note := range s.notes {
		cursor := "  "
		if i == s.cursor {
			cursor = "▸ "
		}
		b.WriteString("  " + cursor + theme.Body.Render(note.Topic) + "\n")
		if i == s.cursor {
			b.WriteString(lipgloss.NewStyle().Padding(0, 6).Width(width-6).
				Foreground(theme.TextDim).Render(note.Summary) + "\n")
			for _, kp := range note.KeyPoints {
				b.WriteString("      " + theme.Hint.Render("• "+kp) + "\n")
			}
		}
	}
	if s.errMsg != "" {
		b.WriteString("\n  " + theme.Incorrect.Render(s.errMsg))
	}
	return b.String()
}

func (s *Screen) renderDetail(width int) string {
	var b strings.Builder
	if s.info == nil {
		b.WriteString("\n  " + theme.Hint.Render("No detail available for this topic."))
	} else {
		b.WriteString("\n  " + theme.Title.Render(s.info.Topic) + "\n\n")
		b.WriteString(lipgloss.NewStyle().Padding(0, 2).Width(width-4).
			Foreground(theme.Text).Render(s.info.Overview) + "\n\n")
		for _, sec := range s.info.Sections {
			b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(sec.Heading) + "\n")
			b.WriteString(lipgloss.NewStyle().Padding(0, 2).Width(width-4).
				Foreground(theme.TextDim).Render(sec.Body) + "\n\n")
		}
	}

	if len(s.res) > 0 {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Resources") + "\n")
		for _, r := range s.res {
			b.WriteString("  " + theme.Hint.Render(fmt.Sprintf("%s  %s", r.Name, r.URL)) + "\n")
		}
	}
	return b.String()
}
