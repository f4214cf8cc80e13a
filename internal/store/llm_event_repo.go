package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/placeprep/internal/llm"
)

// LLMEvent is one recorded LLM API call.
type LLMEvent struct {
	ID        int64
	CreatedAt time.Time
	llm.RequestEvent
}

// LLMEventRepo records and queries LLM request events for diagnostics.
type LLMEventRepo struct {
	db *sql.DB
}

var _ llm.RequestLogger = (*LLMEventRepo)(nil)

// LogRequest appends one request event.
func (r *LLMEventRepo) LogRequest(ctx context.Context, event llm.RequestEvent) error {
	success := 0
	if event.Success {
		success = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_events
		 (created_at, provider, model, purpose, input_tokens, output_tokens,
		  latency_ms, success, error_message, request_body, response_body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		event.Provider, event.Model, event.Purpose,
		event.InputTokens, event.OutputTokens, event.LatencyMs,
		success, event.ErrorMessage, event.RequestBody, event.ResponseBody)
	if err != nil {
		return fmt.Errorf("log llm event: %w", err)
	}
	return nil
}

// List returns the most recent events, newest first.
func (r *LLMEventRepo) List(ctx context.Context, limit int) ([]LLMEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, created_at, provider, model, purpose, input_tokens,
		        output_tokens, latency_ms, success, error_message
		 FROM llm_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list llm events: %w", err)
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		ev, err := scanEvent(rows.Scan, false)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Get returns one event with full request and response bodies, nil
// when absent.
func (r *LLMEventRepo) Get(ctx context.Context, id int64) (*LLMEvent, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, created_at, provider, model, purpose, input_tokens,
		        output_tokens, latency_ms, success, error_message,
		        request_body, response_body
		 FROM llm_events WHERE id = ?`, id)

	ev, err := scanEvent(row.Scan, true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// PurposeUsage aggregates token spend for one request purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int
}

// ModelUsage aggregates token spend for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// UsageByPurpose returns per-purpose totals, highest token count first.
func (r *LLMEventRepo) UsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT purpose, COUNT(*), SUM(input_tokens), SUM(output_tokens),
		        CAST(AVG(latency_ms) AS INTEGER)
		 FROM llm_events
		 GROUP BY purpose
		 ORDER BY SUM(input_tokens) + SUM(output_tokens) DESC`)
	if err != nil {
		return nil, fmt.Errorf("usage by purpose: %w", err)
	}
	defer rows.Close()

	var usage []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan purpose usage: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}

// UsageByModel returns per-model totals, highest token count first.
func (r *LLMEventRepo) UsageByModel(ctx context.Context) ([]ModelUsage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT model, COUNT(*), SUM(input_tokens), SUM(output_tokens)
		 FROM llm_events
		 GROUP BY model
		 ORDER BY SUM(input_tokens) + SUM(output_tokens) DESC`)
	if err != nil {
		return nil, fmt.Errorf("usage by model: %w", err)
	}
	defer rows.Close()

	var usage []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan model usage: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}

func scanEvent(scan func(...any) error, withBodies bool) (LLMEvent, error) {
	var (
		ev      LLMEvent
		created string
		success int
	)
	dest := []any{
		&ev.ID, &created, &ev.Provider, &ev.Model, &ev.Purpose,
		&ev.InputTokens, &ev.OutputTokens, &ev.LatencyMs,
		&success, &ev.ErrorMessage,
	}
	if withBodies {
		dest = append(dest, &ev.RequestBody, &ev.ResponseBody)
	}
	if err := scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ev, err
		}
		return ev, fmt.Errorf("scan llm event: %w", err)
	}
	ev.Success = success == 1
	ev.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return ev, nil
}
