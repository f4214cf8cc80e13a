package contest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/placeprep/internal/content"
)

// State is the contest session phase.
type State int

const (
	StateScheduled State = iota
	StateActive
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateScheduled:
		return "scheduled"
	case StateActive:
		return "active"
	case StateSubmitted:
		return "submitted"
	}
	return "unknown"
}

var (
	ErrNotStarted       = errors.New("contest has not started yet")
	ErrAlreadyEnded     = errors.New("contest has already ended")
	ErrNotActive        = errors.New("contest session not active")
	ErrAlreadyActive    = errors.New("contest session already active")
	ErrAlreadySubmitted = errors.New("contest already submitted")
)

// Executor runs code best-effort for sample output. Advisory only.
type Executor interface {
	PseudoExecute(ctx context.Context, code, language, stdin string) (*content.ExecResult, error)
}

// SubmissionSink persists completed submissions.
type SubmissionSink interface {
	SaveSubmission(ctx context.Context, sub *Submission) error
}

// Session is one participant's run of a contest. Driven by discrete
// events; not safe for concurrent use.
type Session struct {
	state       State
	contest     *Contest
	participant string
	index       int
	deadline    time.Time
	violations  int
	forced      bool
	code        map[string]string

	epoch int
}

func NewSession() *Session {
	return &Session{state: StateScheduled}
}

func (s *Session) State() State      { return s.state }
func (s *Session) Epoch() int        { return s.epoch }
func (s *Session) Contest() *Contest { return s.contest }
func (s *Session) Index() int        { return s.index }
func (s *Session) Violations() int   { return s.violations }

// Join validates the contest window and activates the session. The
// countdown starts at whatever is left of the window, not the full
// duration.
func (s *Session) Join(c *Contest, participant string, now time.Time) error {
	if s.state == StateActive {
		return ErrAlreadyActive
	}
	elapsed := now.Sub(c.StartTime)
	if elapsed < 0 {
		return ErrNotStarted
	}
	if elapsed > c.Duration {
		return ErrAlreadyEnded
	}

	s.epoch++
	s.state = StateActive
	s.contest = c
	s.participant = participant
	s.index = 0
	s.violations = 0
	s.forced = false
	s.deadline = now.Add(c.Duration - elapsed)
	s.code = make(map[string]string, len(c.Problems))
	return nil
}

// Current returns the problem at the cursor, nil when not Active.
func (s *Session) Current() *content.CodingProblem {
	if s.state != StateActive || s.index >= len(s.contest.Problems) {
		return nil
	}
	return &s.contest.Problems[s.index]
}

// Navigate moves the problem cursor by delta, clamped to the problem
// list. Out-of-range moves are no-ops.
func (s *Session) Navigate(delta int) {
	if s.state != StateActive {
		return
	}
	next := s.index + delta
	if next < 0 || next >= len(s.contest.Problems) {
		return
	}
	s.index = next
}

// RecordCode overwrites the stored code for a problem. Content is not
// validated.
func (s *Session) RecordCode(problemID, code string) error {
	if s.state != StateActive {
		return ErrNotActive
	}
	s.code[problemID] = code
	return nil
}

// Code returns the recorded code for a problem, falling back to the
// problem's starter code for the language when nothing was typed yet.
func (s *Session) Code(problemID, language string) string {
	if code, ok := s.code[problemID]; ok && code != "" {
		return code
	}
	for _, p := range s.contest.Problems {
		if p.ID == problemID {
			return p.StarterCode[language]
		}
	}
	return ""
}

// RunSample forwards the current code to the pseudo-execution endpoint.
// Advisory only; never gates progression.
func (s *Session) RunSample(ctx context.Context, exec Executor, problemID, language string) (*content.ExecResult, error) {
	if s.state != StateActive {
		return nil, ErrNotActive
	}
	return exec.PseudoExecute(ctx, s.Code(problemID, language), language, "")
}

// Remaining reports the time left on the contest clock.
func (s *Session) Remaining(now time.Time) time.Duration {
	if s.state != StateActive {
		return 0
	}
	d := s.deadline.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// RecordViolation counts one focus-loss event. It returns the chances
// left before forced submission, and whether this event crossed the
// threshold. The caller must Submit when forced is true.
func (s *Session) RecordViolation() (remaining int, forced bool) {
	if s.state != StateActive {
		return 0, false
	}
	s.violations++
	remaining = ViolationThreshold - s.violations
	if remaining < 0 {
		remaining = 0
	}
	if s.violations >= ViolationThreshold && !s.forced {
		s.forced = true
		return remaining, true
	}
	return remaining, false
}

// Tick reports whether the contest clock has run out. The caller must
// Submit when it returns true.
func (s *Session) Tick(now time.Time) bool {
	if s.state != StateActive {
		return false
	}
	return !now.Before(s.deadline)
}

// Submit closes the session and persists the submission record. Code is
// not evaluated here; every submission lands as pending review.
func (s *Session) Submit(ctx context.Context, sink SubmissionSink, now time.Time) (*Submission, error) {
	if s.state == StateSubmitted {
		return nil, ErrAlreadySubmitted
	}
	if s.state != StateActive {
		return nil, ErrNotActive
	}

	code := make(map[string]string, len(s.code))
	for id, c := range s.code {
		code[id] = c
	}
	sub := &Submission{
		ID:          uuid.New().String(),
		ContestID:   s.contest.ID,
		Participant: s.participant,
		Code:        code,
		Violations:  s.violations,
		Forced:      s.forced,
		Verdict:     VerdictPendingReview,
		SubmittedAt: now,
	}
	if sink != nil {
		if err := sink.SaveSubmission(ctx, sub); err != nil {
			return nil, fmt.Errorf("save submission: %w", err)
		}
	}

	s.epoch++
	s.state = StateSubmitted
	return sub, nil
}
