package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateEmail is returned when registering an email that
	// already has an account.
	ErrDuplicateEmail = errors.New("an account with this email already exists")

	// ErrInvalidCredentials is returned on a login credential mismatch.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService gates account creation and sign-in against the repository.
// The credential check is a plain equality gate; see the top-level docs
// for the security caveat.
type AuthService struct {
	repo Repo
}

// NewAuthService creates an AuthService backed by the given repository.
func NewAuthService(repo Repo) *AuthService {
	return &AuthService{repo: repo}
}

// Register creates a new student account. Duplicate registration is
// rejected synchronously with no account mutation.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*Account, error) {
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, errors.New("name, email and password are required")
	}

	existing, err := s.repo.Get(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("look up account: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	acct := New(name, email, password)
	if err := s.repo.Put(ctx, acct); err != nil {
		return nil, fmt.Errorf("store account: %w", err)
	}
	if err := s.repo.SetCurrentSession(ctx, email); err != nil {
		return nil, fmt.Errorf("set session pointer: %w", err)
	}
	return acct, nil
}

// Login signs an account in. A credential mismatch is rejected
// synchronously with no state change.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Account, error) {
	email = normalizeEmail(email)

	acct, err := s.repo.Get(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("look up account: %w", err)
	}
	if acct == nil || acct.Password != password {
		return nil, ErrInvalidCredentials
	}

	if err := s.repo.SetCurrentSession(ctx, email); err != nil {
		return nil, fmt.Errorf("set session pointer: %w", err)
	}
	return acct, nil
}

// Logout clears the current-session pointer.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.repo.SetCurrentSession(ctx, "")
}

// Current returns the signed-in account, or nil if nobody is signed in.
func (s *AuthService) Current(ctx context.Context) (*Account, error) {
	email, err := s.repo.CurrentSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session pointer: %w", err)
	}
	if email == "" {
		return nil, nil
	}
	return s.repo.Get(ctx, email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
