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

// toggleTables is the closed set of tables whose rows carry a toggleable
// status column. The handler routes by entity name, never by raw input.
var toggleTables = map[string]string{
	"product":  "products",
	"order":    "orders",
	"customer": "customers",
}

// ToggleStatus flips the Active/InActive status of one row and returns the
// new value. The read and the write run in a transaction so concurrent
// toggles serialize instead of losing a flip.
func (s *Store) ToggleStatus(ctx context.Context, entity string, id int64) (model.Status, error) {
	table, ok := toggleTables[entity]
	if !ok {
		return "", fmt.Errorf("unknown entity %q", entity)
	}
	if err := listing.ValidateIdentifier(table); err != nil {
		return "", err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin toggle: %w", err)
	}
	defer tx.Rollback()

	var cur model.Status
	err = tx.GetContext(ctx, &cur,
		tx.Rebind(`SELECT status FROM `+table+` WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read %s %d status: %w", entity, id, err)
	}

	next := cur.Toggle()
	if _, err := tx.ExecContext(ctx,
		tx.Rebind(`UPDATE `+table+` SET status = ?, updated_at = ? WHERE id = ?`),
		next, time.Now().UTC(), id); err != nil {
		return "", fmt.Errorf("write %s %d status: %w", entity, id, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit toggle: %w", err)
	}
	return next, nil
}
