package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cartloom/cartloom/internal/listing"
	"github.com/cartloom/cartloom/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := DefaultConfig()
	s, err := Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedProduct(t *testing.T, s *Store, sku string) *model.Product {
	t.Helper()
	p := &model.Product{
		Title:        "Widget " + sku,
		SKU:          sku,
		MainImage:    "/uploads/" + sku + ".jpg",
		Images:       model.ImageList{"/uploads/" + sku + "-a.jpg"},
		RegularPrice: 120,
		SalePrice:    99.5,
		Rating:       4.5,
		Review:       3,
		Desc:         "a widget",
	}
	if err := s.CreateProduct(context.Background(), p); err != nil {
		t.Fatalf("seed product %s: %v", sku, err)
	}
	return p
}

func TestProductCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := seedProduct(t, s, "sku-1")
	if p.ID == 0 {
		t.Fatal("expected generated id")
	}
	if p.Status != model.StatusActive {
		t.Fatalf("default status = %q", p.Status)
	}

	got, err := s.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SKU != "sku-1" || got.Images[0] != "/uploads/sku-1-a.jpg" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	bySKU, err := s.GetProductBySKU(ctx, "sku-1")
	if err != nil || bySKU.ID != p.ID {
		t.Fatalf("get by sku: %v (id %d)", err, bySKU.ID)
	}

	got.Title = "Renamed"
	got.SalePrice = 42
	if err := s.UpdateProduct(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	again, _ := s.GetProduct(ctx, p.ID)
	if again.Title != "Renamed" || again.SalePrice != 42 {
		t.Fatalf("update not persisted: %+v", again)
	}

	if err := s.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetProduct(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteProduct(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestProductDuplicateSKU(t *testing.T) {
	s := newTestStore(t)
	seedProduct(t, s, "sku-dup")

	p := &model.Product{Title: "Another", SKU: "sku-dup"}
	err := s.CreateProduct(context.Background(), p)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestListProductsSearch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedProduct(t, s, "alpha")
	seedProduct(t, s, "bravo")
	lamp := seedProduct(t, s, "lamp")
	lamp.Title = "Desk Lamp"
	if err := s.UpdateProduct(ctx, lamp); err != nil {
		t.Fatal(err)
	}

	page, err := s.ListProducts(ctx, listing.Request{Search: "desk"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Pagination.TotalItems != 1 || page.Items[0].SKU != "lamp" {
		t.Fatalf("search miss: %+v", page)
	}
}

func TestListCatalogSorts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cheap := seedProduct(t, s, "cheap")
	cheap.SalePrice = 5
	if err := s.UpdateProduct(ctx, cheap); err != nil {
		t.Fatal(err)
	}
	dear := seedProduct(t, s, "dear")
	dear.SalePrice = 500
	if err := s.UpdateProduct(ctx, dear); err != nil {
		t.Fatal(err)
	}
	hidden := seedProduct(t, s, "hidden")
	hidden.Status = model.StatusInActive
	if err := s.UpdateProduct(ctx, hidden); err != nil {
		t.Fatal(err)
	}

	asc, err := s.ListCatalog(ctx, "price_asc", false)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if len(asc) != 2 {
		t.Fatalf("inactive product leaked into catalog: %d rows", len(asc))
	}
	if asc[0].SKU != "cheap" || asc[1].SKU != "dear" {
		t.Fatalf("price_asc order wrong: %s, %s", asc[0].SKU, asc[1].SKU)
	}

	desc, err := s.ListCatalog(ctx, "price_desc", false)
	if err != nil {
		t.Fatal(err)
	}
	if desc[0].SKU != "dear" {
		t.Fatalf("price_desc order wrong: %s", desc[0].SKU)
	}

	// Unknown sort keys fall back to newest-first by id.
	def, err := s.ListCatalog(ctx, "bogus", false)
	if err != nil {
		t.Fatal(err)
	}
	if def[0].SKU != "dear" {
		t.Fatalf("default order wrong: %s", def[0].SKU)
	}
}

func TestToggleStatusRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := seedProduct(t, s, "toggle-me")

	next, err := s.ToggleStatus(ctx, "product", p.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if next != model.StatusInActive {
		t.Fatalf("first toggle = %q, want InActive", next)
	}

	back, err := s.ToggleStatus(ctx, "product", p.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if back != model.StatusActive {
		t.Fatalf("second toggle = %q, want Active", back)
	}

	got, _ := s.GetProduct(ctx, p.ID)
	if got.Status != model.StatusActive {
		t.Fatalf("persisted status = %q", got.Status)
	}
}

func TestToggleStatusNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.ToggleStatus(context.Background(), "product", 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleStatusUnknownEntity(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.ToggleStatus(context.Background(), "admins; DROP TABLE admins", 1); err == nil {
		t.Fatal("expected error for unknown entity")
	}
}

func TestCustomerDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := &model.Customer{Name: "Ann", Email: "ann@example.com", PasswordHash: "x"}
	if err := s.CreateCustomer(ctx, c); err != nil {
		t.Fatalf("create: %v", err)
	}
	dup := &model.Customer{Name: "Ann Again", Email: "ann@example.com", PasswordHash: "y"}
	if err := s.CreateCustomer(ctx, dup); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	got, err := s.GetCustomerByEmail(ctx, "ann@example.com")
	if err != nil || got.ID != c.ID {
		t.Fatalf("get by email: %v", err)
	}
	if _, err := s.GetCustomerByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListOrdersJoinsRelations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := seedProduct(t, s, "ordered")
	c := &model.Customer{Name: "Bob", Email: "bob@example.com", MobileNo: "5551234", PasswordHash: "x"}
	if err := s.CreateCustomer(ctx, c); err != nil {
		t.Fatal(err)
	}

	linked := &model.Order{
		CustomerID: &c.ID,
		ProductID:  &p.ID,
		FullName:   "Bob Buyer",
		PhoneNo:    "5551234",
		Address:    "12 Main Street",
		Pincode:    "560001",
		State:      "Karnataka",
		City:       "Bengaluru",
		Quantity:   2,
		Subtotal:   199,
		Shipping:   10,
		TotalPrice: 209,
	}
	if err := s.CreateOrder(ctx, linked); err != nil {
		t.Fatalf("create linked order: %v", err)
	}

	guest := &model.Order{
		FullName:   "Guest Buyer",
		PhoneNo:    "5550000",
		Address:    "34 Side Street",
		Pincode:    "560002",
		State:      "Karnataka",
		City:       "Bengaluru",
		Quantity:   1,
		Subtotal:   99,
		TotalPrice: 99,
	}
	if err := s.CreateOrder(ctx, guest); err != nil {
		t.Fatalf("create guest order: %v", err)
	}

	page, err := s.ListOrders(ctx, listing.Request{})
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if page.Pagination.TotalItems != 2 {
		t.Fatalf("total = %d, want 2", page.Pagination.TotalItems)
	}

	// Default sort is newest first: guest order leads.
	if page.Items[0].FullName != "Guest Buyer" {
		t.Fatalf("sort order wrong: %s first", page.Items[0].FullName)
	}
	if page.Items[0].Customer != nil || page.Items[0].Product != nil {
		t.Fatal("guest order should have nil relations")
	}

	withRel := page.Items[1]
	if withRel.Customer == nil || withRel.Customer.Name != "Bob" {
		t.Fatalf("customer relation missing: %+v", withRel.Customer)
	}
	if withRel.Product == nil || withRel.Product.Title != p.Title {
		t.Fatalf("product relation missing: %+v", withRel.Product)
	}
}

func TestListOrdersSearchByRelationSafeColumns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		o := &model.Order{
			FullName: fmt.Sprintf("Buyer %d", i), PhoneNo: "5550000",
			Address: "12 Main Street", Pincode: "560001",
			State: "Karnataka", City: "Bengaluru",
			Quantity: 1, TotalPrice: 50,
		}
		if err := s.CreateOrder(ctx, o); err != nil {
			t.Fatal(err)
		}
	}

	page, err := s.ListOrders(ctx, listing.Request{Search: "buyer 1"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.Pagination.TotalItems != 1 || page.Items[0].FullName != "Buyer 1" {
		t.Fatalf("search miss: %+v", page.Pagination)
	}
}

func TestAdminAccounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ok, err := s.HasAdmins(ctx)
	if err != nil || ok {
		t.Fatalf("fresh store should have no admins (ok=%v err=%v)", ok, err)
	}

	a := &model.Admin{Name: "Root", Email: "root@example.com", PasswordHash: "h"}
	if err := s.CreateAdmin(ctx, a); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	ok, _ = s.HasAdmins(ctx)
	if !ok {
		t.Fatal("HasAdmins should report true after create")
	}

	got, err := s.GetAdminByEmail(ctx, "root@example.com")
	if err != nil || got.ID != a.ID {
		t.Fatalf("get admin: %v", err)
	}
}

func TestContacts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := &model.Contact{Name: "Cara", Email: "cara@example.com", Phone: "5559999", Message: "hello there"}
	if err := s.CreateContact(ctx, c); err != nil {
		t.Fatalf("create contact: %v", err)
	}

	page, err := s.ListContacts(ctx, listing.Request{Search: "cara"})
	if err != nil {
		t.Fatalf("list contacts: %v", err)
	}
	if page.Pagination.TotalItems != 1 || page.Items[0].Message != "hello there" {
		t.Fatalf("contact round trip: %+v", page)
	}

	if err := s.DeleteContact(ctx, c.ID); err != nil {
		t.Fatalf("delete contact: %v", err)
	}
	if err := s.DeleteContact(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
