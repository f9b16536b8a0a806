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

// orderListRow is the scan target for the admin orders listing: the base
// order columns plus the nullable joined customer and product projections.
type orderListRow struct {
	model.Order
	CustomerJoinID      *int64   `db:"main_customer_id"`
	CustomerName        *string  `db:"main_customer_name"`
	CustomerEmail       *string  `db:"main_customer_email"`
	CustomerMobileNo    *string  `db:"main_customer_mobile_no"`
	ProductJoinID       *int64   `db:"main_product_id"`
	ProductTitle        *string  `db:"main_product_title"`
	ProductMainImage    *string  `db:"main_product_main_image"`
	ProductRegularPrice *float64 `db:"main_product_regular_price"`
	ProductSalePrice    *float64 `db:"main_product_sale_price"`
}

// toModel shapes the flat row into an order with nested relations. A nil
// join id means the foreign key was unset or dangling; the relation stays
// nil rather than becoming a zero-valued object.
func (r orderListRow) toModel() model.OrderWithRelations {
	out := model.OrderWithRelations{Order: r.Order}
	if r.CustomerJoinID != nil {
		out.Customer = &model.OrderCustomer{
			ID:       *r.CustomerJoinID,
			Name:     deref(r.CustomerName),
			Email:    deref(r.CustomerEmail),
			MobileNo: deref(r.CustomerMobileNo),
		}
	}
	if r.ProductJoinID != nil {
		out.Product = &model.OrderProduct{
			ID:           *r.ProductJoinID,
			Title:        deref(r.ProductTitle),
			MainImage:    deref(r.ProductMainImage),
			RegularPrice: derefF(r.ProductRegularPrice),
			SalePrice:    derefF(r.ProductSalePrice),
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefF(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// CreateOrder inserts an order and fills in its id and timestamps.
func (s *Store) CreateOrder(ctx context.Context, o *model.Order) error {
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	if o.ShippingStatus == "" {
		o.ShippingStatus = model.ShippingPending
	}
	if o.Status == "" {
		o.Status = model.StatusActive
	}
	if o.Shorting == "" {
		o.Shorting = "500"
	}

	id, err := s.insertReturningID(ctx,
		`INSERT INTO orders
			(customer_id, product_id, full_name, phone_no, address, landmark,
			 pincode, state, city, quantity, subtotal, shipping, total_price,
			 shipping_status, status, shorting, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.CustomerID, o.ProductID, o.FullName, o.PhoneNo, o.Address,
		o.Landmark, o.Pincode, o.State, o.City, o.Quantity, o.Subtotal,
		o.Shipping, o.TotalPrice, o.ShippingStatus, o.Status, o.Shorting,
		o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	o.ID = id
	return nil
}

// GetOrder fetches an order by id, without relations.
func (s *Store) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	var o model.Order
	err := s.db.GetContext(ctx, &o,
		s.db.Rebind(`SELECT * FROM orders WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return &o, nil
}

// UpdateOrder rewrites the mutable columns of an order row.
func (s *Store) UpdateOrder(ctx context.Context, o *model.Order) error {
	o.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, s.db.Rebind(
		`UPDATE orders SET
			full_name = ?, phone_no = ?, address = ?, landmark = ?,
			pincode = ?, state = ?, city = ?, quantity = ?, subtotal = ?,
			shipping = ?, total_price = ?, shipping_status = ?, status = ?,
			updated_at = ?
		 WHERE id = ?`),
		o.FullName, o.PhoneNo, o.Address, o.Landmark, o.Pincode, o.State,
		o.City, o.Quantity, o.Subtotal, o.Shipping, o.TotalPrice,
		o.ShippingStatus, o.Status, o.UpdatedAt, o.ID)
	if err != nil {
		return fmt.Errorf("update order %d: %w", o.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetShippingStatus updates only the fulfillment state of an order.
func (s *Store) SetShippingStatus(ctx context.Context, id int64, status model.ShippingStatus) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(
		`UPDATE orders SET shipping_status = ?, updated_at = ? WHERE id = ?`),
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("set shipping status %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOrder removes an order row.
func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		s.db.Rebind(`DELETE FROM orders WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete order %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListOrders serves the admin orders table, joining each row's customer and
// product through the descriptor's relations.
func (s *Store) ListOrders(ctx context.Context, req listing.Request) (*listing.Page[model.OrderWithRelations], error) {
	plan := listing.BuildPlan(orderDescriptor, req)
	page, err := listing.Execute[orderListRow](ctx, s.db, orderDescriptor, plan)
	if err != nil {
		return nil, err
	}

	out := &listing.Page[model.OrderWithRelations]{
		Items:      make([]model.OrderWithRelations, 0, len(page.Items)),
		Pagination: page.Pagination,
	}
	for _, row := range page.Items {
		out.Items = append(out.Items, row.toModel())
	}
	return out, nil
}
