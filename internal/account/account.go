package account

import "time"

// SchemaVersion is the version tag written into persisted account records.
// Bump when the record layout changes incompatibly.
const SchemaVersion = 1

const (
	// ScoreHistoryRetention bounds LastScores to the most recent N entries.
	ScoreHistoryRetention = 5

	// WeakAreaRetention bounds WeakAreas to the most recent N labels.
	WeakAreaRetention = 10
)

// Role distinguishes students from contest-creating admins.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleAdmin   Role = "ADMIN"
)

// Tier is one of three ordered difficulty levels gating question
// difficulty and badge eligibility.
type Tier int

const (
	TierBeginner Tier = iota
	TierAdvanced
	TierExpert
)

// String returns the wire label for the tier.
func (t Tier) String() string {
	switch t {
	case TierBeginner:
		return "BEGINNER"
	case TierAdvanced:
		return "ADVANCED"
	case TierExpert:
		return "EXPERT"
	}
	return "BEGINNER"
}

// ParseTier maps a wire label back to a Tier. Unknown labels fall back
// to TierBeginner.
func ParseTier(s string) Tier {
	switch s {
	case "ADVANCED":
		return TierAdvanced
	case "EXPERT":
		return TierExpert
	}
	return TierBeginner
}

// Badge names earned by a perfect score at each tier.
const (
	BadgeBeginnerChampion = "Beginner Champion"
	BadgeAdvancedMaster   = "Advanced Master"
	BadgeExpertLegend     = "Expert Legend"
)

// BadgeForTier returns the badge granted for a perfect score at the tier.
func BadgeForTier(t Tier) string {
	switch t {
	case TierBeginner:
		return BadgeBeginnerChampion
	case TierAdvanced:
		return BadgeAdvancedMaster
	case TierExpert:
		return BadgeExpertLegend
	}
	return BadgeBeginnerChampion
}

// Account is one registered learner. Mutated only by the progression
// engine after a completed assessment; never deleted.
type Account struct {
	SchemaVersion int    `json:"schema_version"`
	Name          string `json:"name"`
	Email         string `json:"email"`

	// Password is stored and compared as-is. Login is a plain equality
	// gate; hashing is an explicit non-goal of the behavioral contract.
	Password string `json:"password"`

	Role  Role `json:"role"`
	Level Tier `json:"level"`

	// Badges is append-only: a badge is granted at most once and never
	// revoked.
	Badges []string `json:"badges"`

	// TestsTaken counts completed assessments per tier label.
	TestsTaken map[string]int `json:"tests_taken"`
	TotalTests int            `json:"total_tests"`

	// LastScores holds the most recent percentage scores, newest first,
	// capped at ScoreHistoryRetention.
	LastScores []int `json:"last_scores"`

	// AverageScore is the running mean of every percentage score ever
	// recorded: round((old*oldTotal + new) / newTotal).
	AverageScore int `json:"average_score"`

	HighestScore int `json:"highest_score"`

	// WeakAreas holds deduplicated topic labels, newest first, capped at
	// WeakAreaRetention. New labels displace old ones on truncation.
	WeakAreas []string `json:"weak_areas"`

	// PlacementReady is monotonic: once true, stays true.
	PlacementReady bool `json:"placement_ready"`

	// Attempts is the full assessment history, newest first.
	Attempts []Attempt `json:"attempts"`

	CreatedAt time.Time `json:"created_at"`
}

// Attempt is the immutable record of one completed assessment.
type Attempt struct {
	// Number is 1-based and sequential per account.
	Number    int       `json:"number"`
	TakenAt   time.Time `json:"taken_at"`
	Subjects  []string  `json:"subjects"`
	Tier      Tier      `json:"tier"`
	Percent   int       `json:"percent"`
	Questions int       `json:"questions"`
	WeakAreas []string  `json:"weak_areas"`
}

// New creates a fresh student account with all counters zeroed and the
// level at the lowest tier.
func New(name, email, password string) *Account {
	return &Account{
		SchemaVersion: SchemaVersion,
		Name:          name,
		Email:         email,
		Password:      password,
		Role:          RoleStudent,
		Level:         TierBeginner,
		TestsTaken:    make(map[string]int),
		CreatedAt:     time.Now(),
	}
}

// HasBadge reports whether the account already holds the named badge.
func (a *Account) HasBadge(name string) bool {
	for _, b := range a.Badges {
		if b == name {
			return true
		}
	}
	return false
}

// GrantBadge appends the badge if not already held. Returns true when the
// badge was newly granted.
func (a *Account) GrantBadge(name string) bool {
	if a.HasBadge(name) {
		return false
	}
	a.Badges = append(a.Badges, name)
	return true
}

// MergeWeakAreas prepends the given labels, deduplicates, and truncates to
// WeakAreaRetention entries. New labels take priority over old ones.
func (a *Account) MergeWeakAreas(labels []string) {
	seen := make(map[string]bool, len(labels)+len(a.WeakAreas))
	merged := make([]string, 0, WeakAreaRetention)
	for _, l := range labels {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		merged = append(merged, l)
	}
	for _, l := range a.WeakAreas {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		merged = append(merged, l)
	}
	if len(merged) > WeakAreaRetention {
		merged = merged[:WeakAreaRetention]
	}
	a.WeakAreas = merged
}

// RecordScore folds a new percentage score into the rolling history,
// running average, and highest score. TotalTests must already have been
// incremented for the running-average formula to see the new total.
func (a *Account) RecordScore(percent int) {
	a.LastScores = append([]int{percent}, a.LastScores...)
	if len(a.LastScores) > ScoreHistoryRetention {
		a.LastScores = a.LastScores[:ScoreHistoryRetention]
	}
	if percent > a.HighestScore {
		a.HighestScore = percent
	}
	oldTotal := a.TotalTests - 1
	a.AverageScore = roundDiv(a.AverageScore*oldTotal+percent, a.TotalTests)
}

// roundDiv divides with round-half-up semantics on non-negative operands.
func roundDiv(sum, n int) int {
	if n <= 0 {
		return 0
	}
	return (sum + n/2) / n
}
