package progression

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/placeprep/internal/account"
	"github.com/abhisek/placeprep/internal/content"
)

func result(score, total int, weak ...string) *content.AssessmentResult {
	return &content.AssessmentResult{Score: score, Total: total, WeakAreas: weak}
}

func TestFirstPerfectAssessment(t *testing.T) {
	acct := account.New("Asha", "asha@example.com", "pw")

	attempt := Apply(acct, result(10, 10), account.TierBeginner, []string{"DSA"}, time.Now())

	if acct.TotalTests != 1 {
		t.Errorf("TotalTests = %d, want 1", acct.TotalTests)
	}
	if acct.AverageScore != 100 {
		t.Errorf("AverageScore = %d, want 100", acct.AverageScore)
	}
	if !acct.HasBadge(account.BadgeBeginnerChampion) {
		t.Error("champion badge not granted")
	}
	if acct.Level != account.TierAdvanced {
		t.Errorf("Level = %v, want ADVANCED", acct.Level)
	}
	if attempt.Number != 1 || attempt.Percent != 100 {
		t.Errorf("attempt = %+v", attempt)
	}
}

func TestImperfectScoreNeverAdvances(t *testing.T) {
	acct := account.New("Asha", "asha@example.com", "pw")

	Apply(acct, result(9, 10), account.TierBeginner, []string{"DSA"}, time.Now())

	if acct.Level != account.TierBeginner {
		t.Errorf("Level = %v, want BEGINNER", acct.Level)
	}
	if len(acct.Badges) != 0 {
		t.Errorf("badges = %v, want none", acct.Badges)
	}
}

func TestZeroTotalNeverAdvances(t *testing.T) {
	acct := account.New("Asha", "asha@example.com", "pw")

	Apply(acct, result(0, 0), account.TierBeginner, nil, time.Now())

	if acct.Level != account.TierBeginner || len(acct.Badges) != 0 {
		t.Errorf("empty batch advanced tier: level=%v badges=%v", acct.Level, acct.Badges)
	}
}

func TestFullLadder(t *testing.T) {
	acct := account.New("Asha", "asha@example.com", "pw")

	Apply(acct, result(10, 10), acct.Level, nil, time.Now())
	if acct.Level != account.TierAdvanced {
		t.Fatalf("after beginner: Level = %v", acct.Level)
	}
	Apply(acct, result(10, 10), acct.Level, nil, time.Now())
	if acct.Level != account.TierExpert {
		t.Fatalf("after advanced: Level = %v", acct.Level)
	}
	Apply(acct, result(10, 10), acct.Level, nil, time.Now())
	if !acct.PlacementReady {
		t.Fatal("after expert: not placement ready")
	}
	if acct.Level != account.TierExpert {
		t.Errorf("Level = %v, want EXPERT (top tier never advances past itself)", acct.Level)
	}
	want := []string{account.BadgeBeginnerChampion, account.BadgeAdvancedMaster, account.BadgeExpertLegend}
	if len(acct.Badges) != len(want) {
		t.Fatalf("badges = %v", acct.Badges)
	}
	for i, b := range want {
		if acct.Badges[i] != b {
			t.Errorf("badges[%d] = %q, want %q", i, acct.Badges[i], b)
		}
	}
}

func TestRepeatPerfectAtTopTierIsIdempotent(t *testing.T) {
	acct := account.New("Asha", "asha@example.com", "pw")
	for i := 0; i < 3; i++ {
		Apply(acct, result(10, 10), acct.Level, nil, time.Now())
	}

	Apply(acct, result(10, 10), acct.Level, nil, time.Now())

	if len(acct.Badges) != 3 {
		t.Errorf("badges = %v, want exactly 3", acct.Badges)
	}
	if !acct.PlacementReady {
		t.Error("PlacementReady must stay true")
	}
	if acct.TotalTests != 4 {
		t.Errorf("TotalTests = %d, want 4", acct.TotalTests)
	}
	if acct.AverageScore != 100 {
		t.Errorf("AverageScore = %d, want 100", acct.AverageScore)
	}
}

func TestRunningAverage(t *testing.T) {
	acct := account.New("Asha", "asha@example.com", "pw")

	for _, pct := range []int{80, 90, 70} {
		Apply(acct, result(pct/10, 10), account.TierBeginner, nil, time.Now())
	}

	// round((80+90+70)/3) = 80
	if acct.AverageScore != 80 {
		t.Errorf("AverageScore = %d, want 80", acct.AverageScore)
	}
	if acct.HighestScore != 90 {
		t.Errorf("HighestScore = %d, want 90", acct.HighestScore)
	}
	if len(acct.LastScores) != 3 || acct.LastScores[0] != 70 {
		t.Errorf("LastScores = %v", acct.LastScores)
	}
}

func TestScoreHistoryBound(t *testing.T) {
	acct := account.New("Asha", "asha@example.com", "pw")

	for i := 1; i <= 7; i++ {
		Apply(acct, result(i, 10), account.TierBeginner, nil, time.Now())
	}

	if len(acct.LastScores) != account.ScoreHistoryRetention {
		t.Fatalf("LastScores length = %d, want %d", len(acct.LastScores), account.ScoreHistoryRetention)
	}
	if acct.LastScores[0] != 70 {
		t.Errorf("LastScores[0] = %d, want newest (70)", acct.LastScores[0])
	}
}

func TestWeakAreaMergeBound(t *testing.T) {
	acct := account.New("Asha", "asha@example.com", "pw")
	labels := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}

	Apply(acct, result(5, 10, labels...), account.TierBeginner, nil, time.Now())
	Apply(acct, result(5, 10, "k", "a"), account.TierBeginner, nil, time.Now())

	if len(acct.WeakAreas) != account.WeakAreaRetention {
		t.Fatalf("WeakAreas length = %d, want %d", len(acct.WeakAreas), account.WeakAreaRetention)
	}
	if acct.WeakAreas[0] != "k" || acct.WeakAreas[1] != "a" {
		t.Errorf("WeakAreas = %v, want new entries first", acct.WeakAreas)
	}
	seen := map[string]bool{}
	for _, w := range acct.WeakAreas {
		if seen[w] {
			t.Errorf("duplicate weak area %q", w)
		}
		seen[w] = true
	}
}

func TestAttemptHistoryOrder(t *testing.T) {
	acct := account.New("Asha", "asha@example.com", "pw")

	Apply(acct, result(5, 10), account.TierBeginner, []string{"DSA"}, time.Now())
	Apply(acct, result(8, 10), account.TierBeginner, []string{"OOP"}, time.Now())

	if len(acct.Attempts) != 2 {
		t.Fatalf("attempts = %d", len(acct.Attempts))
	}
	if acct.Attempts[0].Number != 2 || acct.Attempts[0].Percent != 80 {
		t.Errorf("newest attempt = %+v", acct.Attempts[0])
	}
	if acct.Attempts[1].Number != 1 {
		t.Errorf("oldest attempt = %+v", acct.Attempts[1])
	}
}

func TestTierCounters(t *testing.T) {
	acct := account.New("Asha", "asha@example.com", "pw")

	Apply(acct, result(10, 10), acct.Level, nil, time.Now())
	Apply(acct, result(4, 10), acct.Level, nil, time.Now())

	if acct.TestsTaken["BEGINNER"] != 1 || acct.TestsTaken["ADVANCED"] != 1 {
		t.Errorf("TestsTaken = %v", acct.TestsTaken)
	}
	if acct.TotalTests != 2 {
		t.Errorf("TotalTests = %d", acct.TotalTests)
	}
}

type putRecorder struct {
	account.Repo
	puts int
}

func (p *putRecorder) Put(_ context.Context, _ *account.Account) error {
	p.puts++
	return nil
}

func TestEngineCompletePersists(t *testing.T) {
	repo := &putRecorder{}
	engine := NewEngine(repo)
	acct := account.New("Asha", "asha@example.com", "pw")

	attempt, err := engine.Complete(context.Background(), acct, result(7, 10), []string{"DSA"})
	if err != nil {
		t.Fatal(err)
	}
	if repo.puts != 1 {
		t.Errorf("Put called %d times, want 1", repo.puts)
	}
	if attempt.Number != 1 {
		t.Errorf("attempt = %+v", attempt)
	}
}
