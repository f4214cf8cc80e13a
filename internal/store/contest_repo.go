package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/placeprep/internal/contest"
)

// ContestRepo persists contest records and submissions.
type ContestRepo struct {
	db *sql.DB
}

var _ contest.SubmissionSink = (*ContestRepo)(nil)

// SaveContest writes a contest record. Contests are immutable after
// creation, so conflicts overwrite with identical content.
func (r *ContestRepo) SaveContest(ctx context.Context, c *contest.Contest) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode contest: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO contests (id, doc, start_time, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`,
		c.ID, string(doc), c.StartTime.UTC().Format(time.RFC3339), c.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save contest: %w", err)
	}
	return nil
}

// GetContest returns a contest by id, nil when absent.
func (r *ContestRepo) GetContest(ctx context.Context, id string) (*contest.Contest, error) {
	var doc string
	err := r.db.QueryRowContext(ctx,
		`SELECT doc FROM contests WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get contest: %w", err)
	}

	var c contest.Contest
	if err := json.Unmarshal([]byte(doc), &c); err != nil {
		return nil, fmt.Errorf("decode contest %s: %w", id, err)
	}
	return &c, nil
}

// ListContests returns all contests ordered by start time, soonest
// first.
func (r *ContestRepo) ListContests(ctx context.Context) ([]*contest.Contest, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT doc FROM contests ORDER BY start_time ASC`)
	if err != nil {
		return nil, fmt.Errorf("list contests: %w", err)
	}
	defer rows.Close()

	var contests []*contest.Contest
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan contest: %w", err)
		}
		var c contest.Contest
		if err := json.Unmarshal([]byte(doc), &c); err != nil {
			return nil, fmt.Errorf("decode contest: %w", err)
		}
		contests = append(contests, &c)
	}
	return contests, rows.Err()
}

// SaveSubmission appends a submission record.
func (r *ContestRepo) SaveSubmission(ctx context.Context, sub *contest.Submission) error {
	doc, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO submissions (id, contest_id, participant, doc, submitted_at)
		 VALUES (?, ?, ?, ?, ?)`,
		sub.ID, sub.ContestID, sub.Participant, string(doc), sub.SubmittedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save submission: %w", err)
	}
	return nil
}

// ListSubmissions returns a contest's submissions, newest first.
func (r *ContestRepo) ListSubmissions(ctx context.Context, contestID string) ([]*contest.Submission, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT doc FROM submissions WHERE contest_id = ? ORDER BY submitted_at DESC`, contestID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []*contest.Submission
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		var sub contest.Submission
		if err := json.Unmarshal([]byte(doc), &sub); err != nil {
			return nil, fmt.Errorf("decode submission: %w", err)
		}
		subs = append(subs, &sub)
	}
	return subs, rows.Err()
}
