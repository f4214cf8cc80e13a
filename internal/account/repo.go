package account

import "context"

// Repo is the key-value persistence contract for accounts. Keys are
// account emails. Implementations overwrite on Put (last writer wins;
// no optimistic locking).
type Repo interface {
	// Get returns the account for the email, or nil if absent.
	Get(ctx context.Context, email string) (*Account, error)

	// Put stores the account under its email, replacing any prior record.
	Put(ctx context.Context, acct *Account) error

	// All returns every stored account keyed by email.
	All(ctx context.Context) (map[string]*Account, error)

	// CurrentSession returns the email of the signed-in account, or ""
	// when nobody is signed in.
	CurrentSession(ctx context.Context) (string, error)

	// SetCurrentSession records the signed-in account's email. An empty
	// email clears the pointer.
	SetCurrentSession(ctx context.Context, email string) error
}
