package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cartloom/cartloom/internal/model"
)

// CreateAdmin inserts a back-office account. A duplicate email reports
// ErrConflict.
func (s *Store) CreateAdmin(ctx context.Context, a *model.Admin) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Status == "" {
		a.Status = model.StatusActive
	}

	id, err := s.insertReturningID(ctx,
		`INSERT INTO admins (name, email, password_hash, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.Name, a.Email, a.PasswordHash, a.Status, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isDuplicateErr(err) {
			return fmt.Errorf("email %q: %w", a.Email, ErrConflict)
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	a.ID = id
	return nil
}

// GetAdminByEmail fetches an admin account by email for login.
func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var a model.Admin
	err := s.db.GetContext(ctx, &a,
		s.db.Rebind(`SELECT * FROM admins WHERE email = ?`), email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get admin %q: %w", email, err)
	}
	return &a, nil
}

// HasAdmins reports whether any back-office account exists, used by the
// CLI to decide whether first-run setup is needed.
func (s *Store) HasAdmins(ctx context.Context) (bool, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM admins`); err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	return n > 0, nil
}
