package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cartloom/cartloom/internal/listing"
	"github.com/cartloom/cartloom/internal/model"
)

// catalogSorts maps the storefront sort keys to ORDER BY clauses. Anything
// not listed falls back to newest-first.
var catalogSorts = map[string]string{
	"newest":     "created_at DESC",
	"price_asc":  "sale_price ASC",
	"price_desc": "sale_price DESC",
	"reviews":    "review DESC",
}

// insertReturningID runs an INSERT and returns the generated id. Postgres
// has no LastInsertId, so the statement grows a RETURNING clause there.
func (s *Store) insertReturningID(ctx context.Context, query string, args ...any) (int64, error) {
	if s.driver == "postgres" {
		var id int64
		err := s.db.QueryRowxContext(ctx, s.db.Rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}
	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// CreateProduct inserts a product and fills in its id and timestamps.
// A duplicate SKU reports ErrConflict.
func (s *Store) CreateProduct(ctx context.Context, p *model.Product) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = model.StatusActive
	}
	if p.Shorting == "" {
		p.Shorting = "500"
	}

	images, err := p.Images.Value()
	if err != nil {
		return fmt.Errorf("encode images: %w", err)
	}

	id, err := s.insertReturningID(ctx,
		`INSERT INTO products
			(title, sku, main_image, images, regular_price, sale_price,
			 rating, review, description, home_page, status, shorting,
			 created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.SKU, p.MainImage, images, p.RegularPrice, p.SalePrice,
		p.Rating, p.Review, p.Desc, p.HomePage, p.Status, p.Shorting,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isDuplicateErr(err) {
			return fmt.Errorf("sku %q: %w", p.SKU, ErrConflict)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	p.ID = id
	return nil
}

// GetProduct fetches a product by id.
func (s *Store) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	err := s.db.GetContext(ctx, &p,
		s.db.Rebind(`SELECT * FROM products WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &p, nil
}

// GetProductBySKU fetches a product by its unique SKU.
func (s *Store) GetProductBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var p model.Product
	err := s.db.GetContext(ctx, &p,
		s.db.Rebind(`SELECT * FROM products WHERE sku = ?`), sku)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product sku %q: %w", sku, err)
	}
	return &p, nil
}

// UpdateProduct rewrites every mutable column of the product row.
func (s *Store) UpdateProduct(ctx context.Context, p *model.Product) error {
	p.UpdatedAt = time.Now().UTC()

	images, err := p.Images.Value()
	if err != nil {
		return fmt.Errorf("encode images: %w", err)
	}

	res, err := s.db.ExecContext(ctx, s.db.Rebind(
		`UPDATE products SET
			title = ?, sku = ?, main_image = ?, images = ?,
			regular_price = ?, sale_price = ?, rating = ?, review = ?,
			description = ?, home_page = ?, status = ?, shorting = ?,
			updated_at = ?
		 WHERE id = ?`),
		p.Title, p.SKU, p.MainImage, images, p.RegularPrice, p.SalePrice,
		p.Rating, p.Review, p.Desc, p.HomePage, p.Status, p.Shorting,
		p.UpdatedAt, p.ID)
	if err != nil {
		if isDuplicateErr(err) {
			return fmt.Errorf("sku %q: %w", p.SKU, ErrConflict)
		}
		return fmt.Errorf("update product %d: %w", p.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product row.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		s.db.Rebind(`DELETE FROM products WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListProducts serves the admin products table through the query engine.
func (s *Store) ListProducts(ctx context.Context, req listing.Request) (*listing.Page[model.Product], error) {
	plan := listing.BuildPlan(productDescriptor, req)
	return listing.Execute[model.Product](ctx, s.db, productDescriptor, plan)
}

// ListCatalog returns active products for the storefront, ordered by the
// given sort key. homeOnly restricts the result to home-page picks.
func (s *Store) ListCatalog(ctx context.Context, sortKey string, homeOnly bool) ([]model.CatalogProduct, error) {
	orderBy, ok := catalogSorts[sortKey]
	if !ok {
		orderBy = "id DESC"
	}

	var sb strings.Builder
	sb.WriteString(`SELECT id, title, sku, main_image, regular_price,
		sale_price, rating, review FROM products WHERE status = ?`)
	args := []any{model.StatusActive}
	if homeOnly {
		sb.WriteString(` AND home_page = ?`)
		args = append(args, true)
	}
	sb.WriteString(` ORDER BY ` + orderBy)

	products := []model.CatalogProduct{}
	if err := s.db.SelectContext(ctx, &products, s.db.Rebind(sb.String()), args...); err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	return products, nil
}
