package assessment

import (
	"time"

	"github.com/abhisek/placeprep/internal/account"
	core "github.com/abhisek/placeprep/internal/assessment"
	"github.com/abhisek/placeprep/internal/content"
)

// sessionReadyMsg delivers a freshly started session. epoch ties the
// response to the run that asked for it.
type sessionReadyMsg struct {
	epoch   int
	session *core.Session
}

// startedMsg reports a failed start attempt.
type startedMsg struct {
	epoch int
	err   error
}

// finishedMsg carries the scored, gap-analyzed result and the updated
// account after progression ran.
type finishedMsg struct {
	epoch   int
	result  *content.AssessmentResult
	attempt account.Attempt
	err     error
}

// timerTickMsg is sent every second to update the countdown.
type timerTickMsg time.Time
