// Package progression applies completed assessment results to an
// account: counters, score aggregates, weak areas, attempt history,
// and the tier-unlock ladder.
package progression

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/placeprep/internal/account"
	"github.com/abhisek/placeprep/internal/content"
)

// Apply folds one completed assessment into the account and returns the
// newly created attempt record. The account is mutated in place; the
// caller persists it.
func Apply(acct *account.Account, result *content.AssessmentResult, tier account.Tier, subjects []string, now time.Time) account.Attempt {
	percent := result.Percent()

	acct.TotalTests++
	if acct.TestsTaken == nil {
		acct.TestsTaken = map[string]int{}
	}
	acct.TestsTaken[tier.String()]++

	acct.RecordScore(percent)
	acct.MergeWeakAreas(result.WeakAreas)

	attempt := account.Attempt{
		Number:    acct.TotalTests,
		TakenAt:   now,
		Subjects:  subjects,
		Tier:      tier,
		Percent:   percent,
		Questions: result.Total,
		WeakAreas: result.WeakAreas,
	}
	acct.Attempts = append([]account.Attempt{attempt}, acct.Attempts...)

	// Perfect() guards against zero-length batches: an empty assessment
	// never advances the ladder.
	if result.Perfect() {
		advanceTier(acct, tier)
	}

	return attempt
}

// advanceTier grants the tier's badge and moves the account up the
// ladder. Each badge is granted at most once; holding the badge already
// means no further tier effect.
func advanceTier(acct *account.Account, tier account.Tier) {
	if !acct.GrantBadge(account.BadgeForTier(tier)) {
		return
	}
	switch tier {
	case account.TierBeginner:
		acct.Level = account.TierAdvanced
	case account.TierAdvanced:
		acct.Level = account.TierExpert
	case account.TierExpert:
		acct.PlacementReady = true
	}
}

// Engine applies results and persists the updated account.
type Engine struct {
	repo account.Repo
}

func NewEngine(repo account.Repo) *Engine {
	return &Engine{repo: repo}
}

// Complete applies the result at the account's current tier and writes
// the account back to the store.
func (e *Engine) Complete(ctx context.Context, acct *account.Account, result *content.AssessmentResult, subjects []string) (account.Attempt, error) {
	attempt := Apply(acct, result, acct.Level, subjects, time.Now())
	if err := e.repo.Put(ctx, acct); err != nil {
		return account.Attempt{}, fmt.Errorf("persist progression: %w", err)
	}
	return attempt, nil
}
