package account

import "testing"

func TestNewAccountZeroed(t *testing.T) {
	a := New("Asha", "asha@example.com", "secret")

	if a.Level != TierBeginner {
		t.Errorf("Level = %v, want TierBeginner", a.Level)
	}
	if a.TotalTests != 0 || a.AverageScore != 0 || a.HighestScore != 0 {
		t.Error("expected all counters zeroed on a new account")
	}
	if a.Role != RoleStudent {
		t.Errorf("Role = %q, want STUDENT", a.Role)
	}
	if a.PlacementReady {
		t.Error("new account must not be placement-ready")
	}
	if a.SchemaVersion != SchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", a.SchemaVersion, SchemaVersion)
	}
}

func TestTierRoundTrip(t *testing.T) {
	tests := []struct {
		tier  Tier
		label string
	}{
		{TierBeginner, "BEGINNER"},
		{TierAdvanced, "ADVANCED"},
		{TierExpert, "EXPERT"},
	}
	for _, tt := range tests {
		if got := tt.tier.String(); got != tt.label {
			t.Errorf("Tier(%d).String() = %q, want %q", tt.tier, got, tt.label)
		}
		if got := ParseTier(tt.label); got != tt.tier {
			t.Errorf("ParseTier(%q) = %v, want %v", tt.label, got, tt.tier)
		}
	}
	if got := ParseTier("nonsense"); got != TierBeginner {
		t.Errorf("ParseTier(nonsense) = %v, want TierBeginner", got)
	}
}

func TestGrantBadgeOnce(t *testing.T) {
	a := New("Asha", "asha@example.com", "secret")

	if !a.GrantBadge(BadgeBeginnerChampion) {
		t.Error("first grant should succeed")
	}
	if a.GrantBadge(BadgeBeginnerChampion) {
		t.Error("second grant of the same badge should be a no-op")
	}
	if len(a.Badges) != 1 {
		t.Errorf("Badges = %v, want exactly one entry", a.Badges)
	}
}

func TestMergeWeakAreasDedupAndBound(t *testing.T) {
	a := New("Asha", "asha@example.com", "secret")
	a.WeakAreas = []string{"pointers", "recursion"}

	a.MergeWeakAreas([]string{"recursion", "closures", ""})

	want := []string{"recursion", "closures", "pointers"}
	if len(a.WeakAreas) != len(want) {
		t.Fatalf("WeakAreas = %v, want %v", a.WeakAreas, want)
	}
	for i := range want {
		if a.WeakAreas[i] != want[i] {
			t.Errorf("WeakAreas[%d] = %q, want %q", i, a.WeakAreas[i], want[i])
		}
	}
}

func TestMergeWeakAreasNewDisplacesOld(t *testing.T) {
	a := New("Asha", "asha@example.com", "secret")
	for _, l := range []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8", "t9"} {
		a.WeakAreas = append(a.WeakAreas, l)
	}

	a.MergeWeakAreas([]string{"new1", "new2", "new3"})

	if len(a.WeakAreas) != WeakAreaRetention {
		t.Fatalf("len(WeakAreas) = %d, want %d", len(a.WeakAreas), WeakAreaRetention)
	}
	if a.WeakAreas[0] != "new1" || a.WeakAreas[1] != "new2" || a.WeakAreas[2] != "new3" {
		t.Errorf("new labels should lead: %v", a.WeakAreas)
	}
	// t8 and t9 fell off the end; the newest old labels survive.
	if a.WeakAreas[len(a.WeakAreas)-1] != "t7" {
		t.Errorf("oldest surviving label = %q, want t7", a.WeakAreas[len(a.WeakAreas)-1])
	}
}

func TestMergeWeakAreasNeverExceedsBoundOrDuplicates(t *testing.T) {
	a := New("Asha", "asha@example.com", "secret")
	batches := [][]string{
		{"a", "b", "c", "d"},
		{"c", "d", "e", "f", "g"},
		{"h", "i", "j", "k", "l", "m"},
		{"a", "m", "n"},
	}
	for _, batch := range batches {
		a.MergeWeakAreas(batch)
		if len(a.WeakAreas) > WeakAreaRetention {
			t.Fatalf("bound exceeded after merge %v: %v", batch, a.WeakAreas)
		}
		seen := map[string]bool{}
		for _, l := range a.WeakAreas {
			if seen[l] {
				t.Fatalf("duplicate %q after merge %v: %v", l, batch, a.WeakAreas)
			}
			seen[l] = true
		}
	}
}

func TestRecordScoreRunningAverage(t *testing.T) {
	a := New("Asha", "asha@example.com", "secret")

	scores := []int{80, 90, 65, 100, 72, 88}
	sum := 0
	for i, s := range scores {
		a.TotalTests++
		a.RecordScore(s)
		sum += s
		want := (sum + (i+1)/2) / (i + 1)
		if a.AverageScore != want {
			t.Errorf("after %d scores: AverageScore = %d, want %d", i+1, a.AverageScore, want)
		}
	}

	if a.HighestScore != 100 {
		t.Errorf("HighestScore = %d, want 100", a.HighestScore)
	}
	if len(a.LastScores) != ScoreHistoryRetention {
		t.Fatalf("len(LastScores) = %d, want %d", len(a.LastScores), ScoreHistoryRetention)
	}
	// Newest first.
	if a.LastScores[0] != 88 || a.LastScores[1] != 72 {
		t.Errorf("LastScores not newest-first: %v", a.LastScores)
	}
}
