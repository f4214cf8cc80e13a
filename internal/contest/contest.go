// Package contest models timed coding contests: the immutable contest
// record, the per-participant session controller with its countdown and
// focus-loss integrity tracking, and the submission record.
package contest

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/placeprep/internal/content"
)

// DefaultDuration is the contest length used when a creator does not
// specify one.
const DefaultDuration = 120 * time.Minute

// ViolationThreshold is the number of focus-loss events that forces
// submission.
const ViolationThreshold = 3

// Contest is one scheduled coding contest. Immutable after creation.
type Contest struct {
	ID        string                  `json:"id"`
	Title     string                  `json:"title"`
	StartTime time.Time               `json:"start_time"`
	Duration  time.Duration           `json:"duration"`
	Subjects  []string                `json:"subjects"`
	Problems  []content.CodingProblem `json:"problems"`
	CreatedBy string                  `json:"created_by"`
	CreatedAt time.Time               `json:"created_at"`
}

// New creates a contest record. A non-positive duration falls back to
// DefaultDuration.
func New(title string, start time.Time, duration time.Duration, subjects []string, problems []content.CodingProblem, createdBy string) *Contest {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Contest{
		ID:        uuid.New().String(),
		Title:     title,
		StartTime: start,
		Duration:  duration,
		Subjects:  subjects,
		Problems:  problems,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}
}

// Window reports the contest's start and end instants.
func (c *Contest) Window() (start, end time.Time) {
	return c.StartTime, c.StartTime.Add(c.Duration)
}

// Submission is the persisted record of one participant's contest run.
type Submission struct {
	ID          string            `json:"id"`
	ContestID   string            `json:"contest_id"`
	Participant string            `json:"participant"`
	Code        map[string]string `json:"code"`
	Violations  int               `json:"violations"`
	Forced      bool              `json:"forced"`
	// Verdict is "pending review" until code evaluation runs. Nothing
	// in the submission path marks a run as passed.
	Verdict     string    `json:"verdict"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// VerdictPendingReview is the only verdict the submission path assigns.
const VerdictPendingReview = "pending review"
