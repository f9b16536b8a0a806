package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cartloom/cartloom/internal/listing"
	"github.com/cartloom/cartloom/internal/model"
)

// CreateCustomer inserts a customer account. A duplicate email reports
// ErrConflict.
func (s *Store) CreateCustomer(ctx context.Context, c *model.Customer) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = model.StatusActive
	}
	if c.Shorting == "" {
		c.Shorting = "500"
	}

	id, err := s.insertReturningID(ctx,
		`INSERT INTO customers
			(name, email, mobile_no, password_hash, status, shorting,
			 created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Email, c.MobileNo, c.PasswordHash, c.Status, c.Shorting,
		c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isDuplicateErr(err) {
			return fmt.Errorf("email %q: %w", c.Email, ErrConflict)
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	c.ID = id
	return nil
}

// GetCustomer fetches a customer by id.
func (s *Store) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	var c model.Customer
	err := s.db.GetContext(ctx, &c,
		s.db.Rebind(`SELECT * FROM customers WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get customer %d: %w", id, err)
	}
	return &c, nil
}

// GetCustomerByEmail fetches a customer by email for login.
func (s *Store) GetCustomerByEmail(ctx context.Context, email string) (*model.Customer, error) {
	var c model.Customer
	err := s.db.GetContext(ctx, &c,
		s.db.Rebind(`SELECT * FROM customers WHERE email = ?`), email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get customer %q: %w", email, err)
	}
	return &c, nil
}

// DeleteCustomer removes a customer row.
func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		s.db.Rebind(`DELETE FROM customers WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete customer %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCustomers serves the admin customers table through the query engine.
func (s *Store) ListCustomers(ctx context.Context, req listing.Request) (*listing.Page[model.Customer], error) {
	plan := listing.BuildPlan(customerDescriptor, req)
	return listing.Execute[model.Customer](ctx, s.db, customerDescriptor, plan)
}
