package listing

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/cartloom/cartloom/internal/model"
)

// Page is the shaped result of executing a plan: one page of records plus
// the pagination envelope.
type Page[T any] struct {
	Items      []T
	Pagination model.Pagination
}

// Execute runs the plan against the store: one count query for the filter,
// then one page query when any rows match. The two queries are not wrapped
// in a transaction; read-committed visibility is sufficient for interactive
// admin tables, and concurrent writes may make the count and the page
// marginally inconsistent.
//
// The engine never retries and never partially applies anything; it is
// read-only. Store failures propagate wrapped, and cancellation of ctx
// aborts the in-flight queries.
func Execute[T any](ctx context.Context, db sqlx.ExtContext, d *Descriptor, p *Plan) (*Page[T], error) {
	countSQL, countArgs := p.CountSQL(d)
	var total int64
	if err := sqlx.GetContext(ctx, db, &total, db.Rebind(countSQL), countArgs...); err != nil {
		return nil, fmt.Errorf("count %s: %w", d.Entity, err)
	}

	page := &Page[T]{
		Items: []T{},
		Pagination: model.Pagination{
			TotalItems:  total,
			TotalPages:  totalPages(total, p.PageSize),
			CurrentPage: p.Page,
			PageSize:    p.PageSize,
		},
	}
	if total == 0 {
		return page, nil
	}

	selectSQL, selectArgs := p.SelectSQL(d)
	if err := sqlx.SelectContext(ctx, db, &page.Items, db.Rebind(selectSQL), selectArgs...); err != nil {
		return nil, fmt.Errorf("select %s page: %w", d.Entity, err)
	}
	return page, nil
}

// totalPages is ceil(total/pageSize); zero when nothing matches.
func totalPages(total int64, pageSize int) int64 {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + int64(pageSize) - 1) / int64(pageSize)
}
