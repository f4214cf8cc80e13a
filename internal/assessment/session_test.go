package assessment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/placeprep/internal/account"
	"github.com/abhisek/placeprep/internal/content"
)

type fakeSource struct {
	questions []content.Question
	genErr    error
	gapErr    error
	gapCalls  int
}

func (f *fakeSource) GenerateQuestions(_ context.Context, _ []string, _ account.Tier, _ int) ([]content.Question, error) {
	return f.questions, f.genErr
}

func (f *fakeSource) AnalyzeGaps(_ context.Context, result *content.AssessmentResult) (*content.AssessmentResult, error) {
	f.gapCalls++
	if f.gapErr != nil {
		return nil, f.gapErr
	}
	analyzed := *result
	analyzed.WeakAreas = []string{"Recursion"}
	return &analyzed, nil
}

func makeQuestions(n int) []content.Question {
	qs := make([]content.Question, n)
	for i := range qs {
		qs[i] = content.Question{
			ID:           string(rune('a' + i)),
			Prompt:       "q",
			CorrectLabel: "A",
			Subject:      "DSA",
		}
	}
	return qs
}

func startSession(t *testing.T, n int) (*Session, *fakeSource, time.Time) {
	t.Helper()
	src := &fakeSource{questions: makeQuestions(n)}
	sess := NewSession()
	now := time.Now()
	if err := sess.Start(context.Background(), src, []string{"DSA"}, account.TierBeginner, n, now); err != nil {
		t.Fatal(err)
	}
	return sess, src, now
}

func TestStartOfflineLeavesIdle(t *testing.T) {
	src := &fakeSource{genErr: content.ErrOffline}
	sess := NewSession()

	err := sess.Start(context.Background(), src, []string{"DSA"}, account.TierBeginner, 10, time.Now())
	if !errors.Is(err, content.ErrOffline) {
		t.Fatalf("err = %v, want ErrOffline", err)
	}
	if sess.State() != StateIdle {
		t.Errorf("state = %v, want idle", sess.State())
	}
}

func TestStartEmptyBatchLeavesIdle(t *testing.T) {
	src := &fakeSource{}
	sess := NewSession()

	err := sess.Start(context.Background(), src, []string{"DSA"}, account.TierBeginner, 10, time.Now())
	if !errors.Is(err, content.ErrEmptyResult) {
		t.Fatalf("err = %v, want ErrEmptyResult", err)
	}
	if sess.State() != StateIdle {
		t.Errorf("state = %v", sess.State())
	}
}

func TestStartWhileActive(t *testing.T) {
	sess, src, now := startSession(t, 3)

	if err := sess.Start(context.Background(), src, nil, account.TierBeginner, 3, now); !errors.Is(err, ErrAlreadyActive) {
		t.Fatalf("err = %v, want ErrAlreadyActive", err)
	}
}

func TestSelectAnswerOverwrites(t *testing.T) {
	sess, _, _ := startSession(t, 3)
	q := sess.Current()

	sess.SelectAnswer(q.ID, "B")
	sess.SelectAnswer(q.ID, "A")

	if got := sess.Answer(q.ID); got != "A" {
		t.Errorf("answer = %q, want A", got)
	}
}

func TestSelectAnswerRequiresRunning(t *testing.T) {
	sess := NewSession()
	if err := sess.SelectAnswer("x", "A"); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("err = %v, want ErrNotRunning", err)
	}
}

func TestAdvanceResetsCountdown(t *testing.T) {
	sess, _, now := startSession(t, 3)

	later := now.Add(30 * time.Second)
	if err := sess.Advance(later); err != nil {
		t.Fatal(err)
	}

	if sess.Index() != 1 {
		t.Errorf("index = %d, want 1", sess.Index())
	}
	if got := sess.Remaining(later); got != PerQuestionTimeout {
		t.Errorf("remaining = %v, want %v", got, PerQuestionTimeout)
	}
}

func TestAdvancePastLastQuestionSubmits(t *testing.T) {
	sess, _, now := startSession(t, 2)

	sess.Advance(now)
	sess.Advance(now)

	if sess.State() != StateSubmitting {
		t.Errorf("state = %v, want submitting", sess.State())
	}
}

func TestTickAutoAdvancesOnExpiry(t *testing.T) {
	sess, _, now := startSession(t, 2)

	if sess.Tick(now.Add(PerQuestionTimeout - time.Second)) {
		t.Fatal("ticked before deadline")
	}
	if !sess.Tick(now.Add(PerQuestionTimeout)) {
		t.Fatal("deadline tick did not advance")
	}
	if sess.Index() != 1 {
		t.Errorf("index = %d, want 1", sess.Index())
	}
}

func TestExpiryOnLastQuestionSubmits(t *testing.T) {
	sess, _, now := startSession(t, 1)

	sess.Tick(now.Add(PerQuestionTimeout))

	if sess.State() != StateSubmitting {
		t.Errorf("state = %v, want submitting", sess.State())
	}
}

func TestFinishScoresMissingAnswersAsWrong(t *testing.T) {
	sess, src, now := startSession(t, 3)

	sess.SelectAnswer(sess.Current().ID, "A") // correct
	sess.Advance(now)
	sess.SelectAnswer(sess.Current().ID, "B") // wrong
	sess.Advance(now)
	sess.Advance(now) // third left unanswered

	result, err := sess.Finish(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if result.Score != 1 || result.Total != 3 {
		t.Errorf("score = %d/%d, want 1/3", result.Score, result.Total)
	}
	if len(result.Feedback) != 3 {
		t.Fatalf("feedback = %d entries", len(result.Feedback))
	}
	if result.Feedback[2].Selected != "" || result.Feedback[2].IsCorrect {
		t.Errorf("unanswered feedback = %+v", result.Feedback[2])
	}
	if sess.State() != StateCompleted {
		t.Errorf("state = %v, want completed", sess.State())
	}
	if result.WeakAreas[0] != "Recursion" {
		t.Errorf("gap analysis not applied: %+v", result)
	}
}

func TestFinishFallsBackWhenAnalysisFails(t *testing.T) {
	sess, src, now := startSession(t, 1)
	src.gapErr = errors.New("network down")

	sess.SelectAnswer(sess.Current().ID, "A")
	sess.Advance(now)

	result, err := sess.Finish(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if result.Score != 1 || len(result.WeakAreas) != 0 {
		t.Errorf("fallback result = %+v", result)
	}
	if sess.State() != StateCompleted {
		t.Errorf("state = %v, want completed", sess.State())
	}
}

func TestEpochChangesAcrossRuns(t *testing.T) {
	sess, src, now := startSession(t, 1)
	first := sess.Epoch()

	sess.Advance(now)
	if _, err := sess.Finish(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if sess.Epoch() == first {
		t.Error("epoch unchanged after completion")
	}

	if err := sess.Start(context.Background(), src, nil, account.TierBeginner, 1, now); err != nil {
		t.Fatal(err)
	}
	if sess.Epoch() == first {
		t.Error("epoch reused across runs")
	}
}
