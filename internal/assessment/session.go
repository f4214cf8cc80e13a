// Package assessment runs one timed multiple-choice session from
// question generation through scoring and gap analysis.
package assessment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/placeprep/internal/account"
	"github.com/abhisek/placeprep/internal/content"
)

// PerQuestionTimeout is the countdown allotted to each question.
const PerQuestionTimeout = 120 * time.Second

// State is the session lifecycle phase.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateSubmitting
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateSubmitting:
		return "submitting"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

var (
	ErrNotRunning    = errors.New("assessment not running")
	ErrAlreadyActive = errors.New("assessment already active")
)

// ContentSource is the slice of the content service a session needs.
type ContentSource interface {
	GenerateQuestions(ctx context.Context, subjects []string, difficulty account.Tier, count int) ([]content.Question, error)
	AnalyzeGaps(ctx context.Context, result *content.AssessmentResult) (*content.AssessmentResult, error)
}

// Session is a single assessment run. It is driven by discrete events
// (answer selection, advance, one-second ticks) and is not safe for
// concurrent use.
type Session struct {
	state     State
	questions []content.Question
	answers   map[string]string
	index     int
	deadline  time.Time
	subjects  []string
	tier      account.Tier
	result    *content.AssessmentResult

	// epoch invalidates in-flight async work from a superseded run.
	// Bumped on every Start and on completion.
	epoch int
}

func NewSession() *Session {
	return &Session{state: StateIdle}
}

func (s *Session) State() State       { return s.state }
func (s *Session) Epoch() int         { return s.epoch }
func (s *Session) Subjects() []string { return s.subjects }
func (s *Session) Tier() account.Tier { return s.tier }
func (s *Session) QuestionCount() int { return len(s.questions) }
func (s *Session) Index() int         { return s.index }

// Start generates a question batch and transitions Idle to Running.
// A generation failure leaves the session Idle.
func (s *Session) Start(ctx context.Context, source ContentSource, subjects []string, tier account.Tier, count int, now time.Time) error {
	if s.state == StateRunning || s.state == StateSubmitting {
		return ErrAlreadyActive
	}

	questions, err := source.GenerateQuestions(ctx, subjects, tier, count)
	if err != nil {
		return fmt.Errorf("start assessment: %w", err)
	}
	if len(questions) == 0 {
		return fmt.Errorf("start assessment: %w", content.ErrEmptyResult)
	}

	s.epoch++
	s.state = StateRunning
	s.questions = questions
	s.answers = make(map[string]string, len(questions))
	s.index = 0
	s.deadline = now.Add(PerQuestionTimeout)
	s.subjects = subjects
	s.tier = tier
	s.result = nil
	return nil
}

// Current returns the question at the cursor, nil when not Running.
func (s *Session) Current() *content.Question {
	if s.state != StateRunning || s.index >= len(s.questions) {
		return nil
	}
	return &s.questions[s.index]
}

// Answer returns the recorded selection for a question, "" if none.
func (s *Session) Answer(questionID string) string {
	return s.answers[questionID]
}

// SelectAnswer records (or overwrites) the selection for a question.
func (s *Session) SelectAnswer(questionID, label string) error {
	if s.state != StateRunning {
		return ErrNotRunning
	}
	s.answers[questionID] = label
	return nil
}

// Advance moves to the next question with a fresh countdown, or enters
// Submitting when the last question is done.
func (s *Session) Advance(now time.Time) error {
	if s.state != StateRunning {
		return ErrNotRunning
	}
	if s.index+1 < len(s.questions) {
		s.index++
		s.deadline = now.Add(PerQuestionTimeout)
		return nil
	}
	s.state = StateSubmitting
	return nil
}

// Remaining reports the time left on the current question.
func (s *Session) Remaining(now time.Time) time.Duration {
	if s.state != StateRunning {
		return 0
	}
	d := s.deadline.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Tick advances the countdown. When the deadline passes it auto-advances
// exactly as if the user moved on; the unanswered question scores as
// "no answer". Returns true when an auto-advance fired.
func (s *Session) Tick(now time.Time) bool {
	if s.state != StateRunning {
		return false
	}
	if now.Before(s.deadline) {
		return false
	}
	s.Advance(now)
	return true
}

// Finish scores the session and requests gap analysis. A failed analysis
// falls back to the raw result rather than blocking completion.
// Valid only in Submitting.
func (s *Session) Finish(ctx context.Context, source ContentSource) (*content.AssessmentResult, error) {
	if s.state != StateSubmitting {
		return nil, fmt.Errorf("finish: session is %s, not submitting", s.state)
	}

	result := s.score()
	if analyzed, err := source.AnalyzeGaps(ctx, result); err == nil && analyzed != nil {
		result = analyzed
	}

	s.epoch++
	s.state = StateCompleted
	s.result = result
	return result, nil
}

// Result returns the final result, nil before completion.
func (s *Session) Result() *content.AssessmentResult {
	return s.result
}

// score counts questions whose recorded answer equals the correct label.
// A missing answer never matches.
func (s *Session) score() *content.AssessmentResult {
	result := &content.AssessmentResult{Total: len(s.questions)}
	for _, q := range s.questions {
		selected := s.answers[q.ID]
		correct := selected != "" && selected == q.CorrectLabel
		if correct {
			result.Score++
		}
		result.Feedback = append(result.Feedback, content.Feedback{
			QuestionID:  q.ID,
			Prompt:      q.Prompt,
			Selected:    selected,
			Correct:     q.CorrectLabel,
			IsCorrect:   correct,
			Explanation: q.Explanation,
			Subject:     q.Subject,
		})
	}
	return result
}
