// Package assessment is the timed multiple-choice exam screen.
package assessment

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/placeprep/internal/account"
	core "github.com/abhisek/placeprep/internal/assessment"
	"github.com/abhisek/placeprep/internal/content"
	"github.com/abhisek/placeprep/internal/progression"
	"github.com/abhisek/placeprep/internal/router"
	"github.com/abhisek/placeprep/internal/screen"
	"github.com/abhisek/placeprep/internal/screens/summary"
	"github.com/abhisek/placeprep/internal/ui/components"
	"github.com/abhisek/placeprep/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseSubmitting
	phaseFailed
)

// Screen runs one assessment from generation through the summary.
type Screen struct {
	svc      *content.Service
	progress *progression.Engine
	acct     *account.Account
	subjects []string
	count    int

	phase   phase
	session *core.Session
	picker  components.OptionPicker
	errMsg  string

	// epoch guards against applying responses from a superseded run.
	epoch int

	confirmQuit bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the assessment screen for the signed-in account.
func New(svc *content.Service, progress *progression.Engine, acct *account.Account, subjects []string, count int) *Screen {
	return &Screen{
		svc:      svc,
		progress: progress,
		acct:     acct,
		subjects: subjects,
		count:    count,
	}
}

func (s *Screen) Title() string {
	return "Assessment"
}

func (s *Screen) Init() tea.Cmd {
	return s.startCmd()
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon"},
			{Key: "N", Description: "Keep going"},
		}
	case s.phase == phaseQuestion:
		return []layout.KeyHint{
			{Key: "↑↓/A-D", Description: "Choose"},
			{Key: "Enter", Description: "Lock in"},
			{Key: "N", Description: "Next"},
			{Key: "Esc", Description: "Abandon"},
		}
	case s.phase == phaseFailed:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return nil
}

// startCmd generates the question batch off the UI loop. The session is
// built entirely inside the command and handed over in the message.
func (s *Screen) startCmd() tea.Cmd {
	s.phase = phaseLoading
	s.epoch++
	epoch := s.epoch
	svc, subjects, tier, count := s.svc, s.subjects, s.acct.Level, s.count

	return func() tea.Msg {
		sess := core.NewSession()
		err := sess.Start(context.Background(), svc, subjects, tier, count, time.Now())
		if err != nil {
			return startedMsg{epoch: epoch, err: err}
		}
		return sessionReadyMsg{epoch: epoch, session: sess}
	}
}

// finishCmd scores the run, requests gap analysis and applies
// progression, all off the UI loop.
func (s *Screen) finishCmd() tea.Cmd {
	s.phase = phaseSubmitting
	epoch := s.epoch
	sess, svc, progress, acct, subjects := s.session, s.svc, s.progress, s.acct, s.subjects

	return func() tea.Msg {
		result, err := sess.Finish(context.Background(), svc)
		if err != nil {
			return finishedMsg{epoch: epoch, err: err}
		}
		attempt, err := progress.Complete(context.Background(), acct, result, subjects)
		if err != nil {
			return finishedMsg{epoch: epoch, err: err}
		}
		return finishedMsg{epoch: epoch, result: result, attempt: attempt}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionReadyMsg:
		if msg.epoch != s.epoch {
			return s, nil
		}
		s.session = msg.session
		s.phase = phaseQuestion
		s.loadPicker()
		return s, tickCmd()

	case startedMsg:
		if msg.epoch != s.epoch {
			return s, nil
		}
		s.phase = phaseFailed
		s.errMsg = msg.err.Error()
		return s, nil

	case finishedMsg:
		if msg.epoch != s.epoch {
			return s, nil
		}
		if msg.err != nil {
			s.phase = phaseFailed
			s.errMsg = msg.err.Error()
			return s, nil
		}
		sum := summary.New(msg.result, s.acct, msg.attempt)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: sum} }

	case timerTickMsg:
		if s.phase != phaseQuestion {
			return s, nil
		}
		if s.session.Tick(time.Now()) {
			// Countdown expiry advanced for us. The question scored as
			// unanswered.
			if s.session.State() == core.StateSubmitting {
				return s, s.finishCmd()
			}
			s.loadPicker()
		}
		return s, tickCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch s.phase {
	case phaseFailed:
		switch key {
		case "r", "R":
			s.errMsg = ""
			return s, s.startCmd()
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil

	case phaseQuestion:
		switch key {
		case "esc":
			s.confirmQuit = true
			return s, nil
		case "n", "right":
			return s.advance()
		}

		var cmd tea.Cmd
		s.picker, cmd = s.picker.Update(msg)
		if q := s.session.Current(); q != nil && s.picker.Chosen != "" {
			s.session.SelectAnswer(q.ID, s.picker.Chosen)
		}
		return s, cmd
	}

	return s, nil
}

func (s *Screen) advance() (screen.Screen, tea.Cmd) {
	if err := s.session.Advance(time.Now()); err != nil {
		return s, nil
	}
	if s.session.State() == core.StateSubmitting {
		return s, s.finishCmd()
	}
	s.loadPicker()
	return s, nil
}

// loadPicker rebuilds the option picker for the current question,
// restoring any answer the learner already locked in.
func (s *Screen) loadPicker() {
	q := s.session.Current()
	if q == nil {
		return
	}
	s.picker = components.NewOptionPicker(q, s.session.Answer(q.ID))
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
