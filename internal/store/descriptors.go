package store

import "github.com/cartloom/cartloom/internal/listing"

// Listing descriptors for every entity the admin tables page through.
// Columns are whitelists: anything absent here can never be projected,
// searched, or sorted no matter what the query string asks for.

var productDescriptor = &listing.Descriptor{
	Entity: "product",
	Table:  "products",
	Columns: []string{
		"id", "title", "sku", "main_image", "images", "regular_price",
		"sale_price", "rating", "review", "description", "home_page",
		"status", "shorting", "created_at", "updated_at",
	},
	Searchable: []listing.Field{
		{Name: "id", Kind: listing.Numeric},
		{Name: "title", Kind: listing.Text},
		{Name: "regular_price", Kind: listing.Numeric},
		{Name: "sale_price", Kind: listing.Numeric},
		{Name: "rating", Kind: listing.Numeric},
		{Name: "review", Kind: listing.Numeric},
		{Name: "shorting", Kind: listing.Text},
		{Name: "status", Kind: listing.Enum},
	},
	Sortable: []string{
		"id", "title", "sku", "regular_price", "sale_price", "rating",
		"review", "status", "created_at",
	},
	DefaultSort: listing.Sort{Column: "id", Desc: true},
}

var orderDescriptor = &listing.Descriptor{
	Entity: "order",
	Table:  "orders",
	Columns: []string{
		"id", "customer_id", "product_id", "full_name", "phone_no", "address",
		"landmark", "pincode", "state", "city", "quantity", "subtotal",
		"shipping", "total_price", "shipping_status", "status", "shorting",
		"created_at", "updated_at",
	},
	Searchable: []listing.Field{
		{Name: "id", Kind: listing.Numeric},
		{Name: "full_name", Kind: listing.Text},
		{Name: "phone_no", Kind: listing.Text},
		{Name: "address", Kind: listing.Text},
		{Name: "landmark", Kind: listing.Text},
		{Name: "pincode", Kind: listing.Text},
		{Name: "state", Kind: listing.Text},
		{Name: "city", Kind: listing.Text},
		{Name: "quantity", Kind: listing.Numeric},
		{Name: "total_price", Kind: listing.Numeric},
		{Name: "shipping_status", Kind: listing.Enum},
		{Name: "status", Kind: listing.Enum},
		{Name: "shorting", Kind: listing.Text},
	},
	Sortable: []string{
		"id", "full_name", "quantity", "total_price",
		"shipping_status", "status", "created_at",
	},
	DefaultSort: listing.Sort{Column: "id", Desc: true},
	Relations: []listing.Relation{
		{
			Name:       "main_customer",
			Table:      "customers",
			ForeignKey: "customer_id",
			RefKey:     "id",
			Columns:    []string{"id", "name", "email", "mobile_no"},
		},
		{
			Name:       "main_product",
			Table:      "products",
			ForeignKey: "product_id",
			RefKey:     "id",
			Columns:    []string{"id", "title", "main_image", "regular_price", "sale_price"},
		},
	},
}

var customerDescriptor = &listing.Descriptor{
	Entity: "customer",
	Table:  "customers",
	Columns: []string{
		"id", "name", "email", "mobile_no", "status", "shorting",
		"created_at", "updated_at",
	},
	Searchable: []listing.Field{
		{Name: "id", Kind: listing.Numeric},
		{Name: "name", Kind: listing.Text},
		{Name: "email", Kind: listing.Text},
		{Name: "mobile_no", Kind: listing.Text},
		{Name: "status", Kind: listing.Enum},
	},
	Sortable:    []string{"id", "name", "email", "status", "created_at"},
	DefaultSort: listing.Sort{Column: "id", Desc: true},
}

var contactDescriptor = &listing.Descriptor{
	Entity: "contact",
	Table:  "contacts",
	Columns: []string{
		"id", "name", "email", "phone", "message", "created_at",
	},
	Searchable: []listing.Field{
		{Name: "id", Kind: listing.Numeric},
		{Name: "name", Kind: listing.Text},
		{Name: "email", Kind: listing.Text},
		{Name: "phone", Kind: listing.Text},
	},
	Sortable:    []string{"id", "name", "email", "created_at"},
	DefaultSort: listing.Sort{Column: "id", Desc: true},
}
