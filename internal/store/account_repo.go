package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/placeprep/internal/account"
)

const currentSessionKey = "current_session"

// AccountRepo persists accounts as JSON documents keyed by email.
// Writes overwrite the previous record; last writer wins.
type AccountRepo struct {
	db *sql.DB
}

var _ account.Repo = (*AccountRepo)(nil)

// Get returns the account for an email, nil when absent.
func (r *AccountRepo) Get(ctx context.Context, email string) (*account.Account, error) {
	var doc string
	err := r.db.QueryRowContext(ctx,
		`SELECT doc FROM accounts WHERE email = ?`, email).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	var acct account.Account
	if err := json.Unmarshal([]byte(doc), &acct); err != nil {
		return nil, fmt.Errorf("decode account %s: %w", email, err)
	}
	return &acct, nil
}

// Put writes the account, overwriting any previous record.
func (r *AccountRepo) Put(ctx context.Context, acct *account.Account) error {
	doc, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("encode account: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO accounts (email, doc, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(email) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		acct.Email, string(doc), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put account: %w", err)
	}
	return nil
}

// All returns every stored account keyed by email.
func (r *AccountRepo) All(ctx context.Context) (map[string]*account.Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT email, doc FROM accounts`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]*account.Account)
	for rows.Next() {
		var email, doc string
		if err := rows.Scan(&email, &doc); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		var acct account.Account
		if err := json.Unmarshal([]byte(doc), &acct); err != nil {
			return nil, fmt.Errorf("decode account %s: %w", email, err)
		}
		accounts[email] = &acct
	}
	return accounts, rows.Err()
}

// CurrentSession returns the signed-in account's email, "" when none.
func (r *AccountRepo) CurrentSession(ctx context.Context) (string, error) {
	var email string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, currentSessionKey).Scan(&email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("current session: %w", err)
	}
	return email, nil
}

// SetCurrentSession records the signed-in account. An empty email
// clears the pointer.
func (r *AccountRepo) SetCurrentSession(ctx context.Context, email string) error {
	if email == "" {
		_, err := r.db.ExecContext(ctx,
			`DELETE FROM app_state WHERE key = ?`, currentSessionKey)
		if err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		return nil
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		currentSessionKey, email)
	if err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}
