package service

import (
	"context"
	"errors"
	"testing"

	"github.com/cartloom/cartloom/internal/model"
	"github.com/cartloom/cartloom/internal/store"
)

func newTestAuth(t *testing.T) (*AuthService, *store.Store) {
	t.Helper()
	st, err := store.Open(store.DefaultConfig())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewAuthService(st, "test-secret-key-for-jwt"), st
}

func TestRegisterAndLoginCustomer(t *testing.T) {
	auth, _ := newTestAuth(t)
	ctx := context.Background()

	token, p, err := auth.RegisterCustomer(ctx, "Ann", "ann@example.com", "5551234", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" || p.Role != RoleCustomer || p.ID == 0 {
		t.Fatalf("bad registration result: token=%q principal=%+v", token, p)
	}

	// Valid credentials log in.
	token2, p2, err := auth.LoginCustomer(ctx, "ann@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token2 == "" || p2.ID != p.ID {
		t.Fatalf("login principal mismatch: %+v", p2)
	}

	// Wrong password and unknown email report the same error.
	if _, _, err := auth.LoginCustomer(ctx, "ann@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", err)
	}
	if _, _, err := auth.LoginCustomer(ctx, "nobody@example.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, _ := newTestAuth(t)
	ctx := context.Background()

	if _, _, err := auth.RegisterCustomer(ctx, "Ann", "dup@example.com", "", "hunter22"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, _, err := auth.RegisterCustomer(ctx, "Ann Again", "dup@example.com", "", "hunter22")
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestLoginAdmin(t *testing.T) {
	auth, st := newTestAuth(t)
	ctx := context.Background()

	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admin := &model.Admin{Name: "Root", Email: "root@example.com", PasswordHash: hash}
	if err := st.CreateAdmin(ctx, admin); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	token, p, err := auth.LoginAdmin(ctx, "root@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if p.Role != RoleAdmin || p.ID != admin.ID {
		t.Fatalf("principal: %+v", p)
	}

	got, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.ID != admin.ID || got.Role != RoleAdmin || got.Email != "root@example.com" {
		t.Fatalf("claims round trip: %+v", got)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	auth, st := newTestAuth(t)
	ctx := context.Background()

	hash, _ := HashPassword("s3cret-pass")
	admin := &model.Admin{
		Name: "Old", Email: "old@example.com",
		PasswordHash: hash, Status: model.StatusInActive,
	}
	if err := st.CreateAdmin(ctx, admin); err != nil {
		t.Fatal(err)
	}

	if _, _, err := auth.LoginAdmin(ctx, "old@example.com", "s3cret-pass"); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	auth, _ := newTestAuth(t)

	if _, err := auth.ValidateToken("garbage.token.here"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	// Tokens signed with a different secret are rejected.
	other := NewAuthService(nil, "other-secret")
	token, err := other.issueToken(&Principal{ID: 1, Role: RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := auth.ValidateToken(token); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("foreign token accepted: %v", err)
	}
}
