package account

import (
	"context"
	"errors"
	"testing"
)

// memRepo is an in-memory Repo for tests.
type memRepo struct {
	accounts map[string]*Account
	session  string
}

func newMemRepo() *memRepo {
	return &memRepo{accounts: make(map[string]*Account)}
}

func (m *memRepo) Get(_ context.Context, email string) (*Account, error) {
	return m.accounts[email], nil
}

func (m *memRepo) Put(_ context.Context, acct *Account) error {
	m.accounts[acct.Email] = acct
	return nil
}

func (m *memRepo) All(_ context.Context) (map[string]*Account, error) {
	return m.accounts, nil
}

func (m *memRepo) CurrentSession(_ context.Context) (string, error) {
	return m.session, nil
}

func (m *memRepo) SetCurrentSession(_ context.Context, email string) error {
	m.session = email
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newMemRepo()
	svc := NewAuthService(repo)
	ctx := context.Background()

	acct, err := svc.Register(ctx, "Asha", "Asha@Example.com", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if acct.Email != "asha@example.com" {
		t.Errorf("email not normalized: %q", acct.Email)
	}
	if repo.session != "asha@example.com" {
		t.Errorf("session pointer = %q, want registered email", repo.session)
	}

	got, err := svc.Login(ctx, "asha@example.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.Name != "Asha" {
		t.Errorf("Name = %q, want Asha", got.Name)
	}
}

func TestRegisterDuplicateRejected(t *testing.T) {
	repo := newMemRepo()
	svc := NewAuthService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Asha", "asha@example.com", "pw"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, "Imposter", "asha@example.com", "other")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("err = %v, want ErrDuplicateEmail", err)
	}
	// No mutation on rejection.
	if repo.accounts["asha@example.com"].Name != "Asha" {
		t.Error("duplicate registration mutated the existing account")
	}
}

func TestLoginMismatchRejected(t *testing.T) {
	repo := newMemRepo()
	svc := NewAuthService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Asha", "asha@example.com", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}

	tests := []struct {
		email, password string
	}{
		{"asha@example.com", "wrong"},
		{"nobody@example.com", "pw"},
	}
	for _, tt := range tests {
		_, err := svc.Login(ctx, tt.email, tt.password)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%q, %q) err = %v, want ErrInvalidCredentials", tt.email, tt.password, err)
		}
		if repo.session != "" {
			t.Errorf("rejected login changed session pointer to %q", repo.session)
		}
	}
}

func TestCurrentFollowsSessionPointer(t *testing.T) {
	repo := newMemRepo()
	svc := NewAuthService(repo)
	ctx := context.Background()

	if got, _ := svc.Current(ctx); got != nil {
		t.Error("expected nil current account before login")
	}

	if _, err := svc.Register(ctx, "Asha", "asha@example.com", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	got, err := svc.Current(ctx)
	if err != nil || got == nil || got.Email != "asha@example.com" {
		t.Errorf("Current() = %v, %v; want registered account", got, err)
	}
}
