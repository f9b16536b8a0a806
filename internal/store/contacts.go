package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cartloom/cartloom/internal/listing"
	"github.com/cartloom/cartloom/internal/model"
)

// CreateContact records a contact-form submission.
func (s *Store) CreateContact(ctx context.Context, c *model.Contact) error {
	c.CreatedAt = time.Now().UTC()

	id, err := s.insertReturningID(ctx,
		`INSERT INTO contacts (name, email, phone, message, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		c.Name, c.Email, c.Phone, c.Message, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	c.ID = id
	return nil
}

// DeleteContact removes a contact message.
func (s *Store) DeleteContact(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		s.db.Rebind(`DELETE FROM contacts WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete contact %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListContacts serves the admin contact-messages table through the query
// engine.
func (s *Store) ListContacts(ctx context.Context, req listing.Request) (*listing.Page[model.Contact], error) {
	plan := listing.BuildPlan(contactDescriptor, req)
	return listing.Execute[model.Contact](ctx, s.db, contactDescriptor, plan)
}
