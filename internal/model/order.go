package model

import "time"

// Order is a checkout submission from the storefront, later managed from
// the admin back office.
type Order struct {
	ID             int64          `json:"id" db:"id"`
	CustomerID     *int64         `json:"customer_id" db:"customer_id"`
	ProductID      *int64         `json:"product_id" db:"product_id"`
	FullName       string         `json:"full_name" db:"full_name"`
	PhoneNo        string         `json:"phone_no" db:"phone_no"`
	Address        string         `json:"address" db:"address"`
	Landmark       string         `json:"landmark" db:"landmark"`
	Pincode        string         `json:"pincode" db:"pincode"`
	State          string         `json:"state" db:"state"`
	City           string         `json:"city" db:"city"`
	Quantity       int64          `json:"quantity" db:"quantity"`
	Subtotal       float64        `json:"subtotal" db:"subtotal"`
	Shipping       float64        `json:"shipping" db:"shipping"`
	TotalPrice     float64        `json:"total_price" db:"total_price"`
	ShippingStatus ShippingStatus `json:"shipping_status" db:"shipping_status"`
	Status         Status         `json:"status" db:"status"`
	Shorting       string         `json:"shorting" db:"shorting"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

// OrderCustomer is the customer projection joined onto admin order rows.
type OrderCustomer struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	MobileNo string `json:"mobile_no"`
}

// OrderProduct is the product projection joined onto admin order rows.
type OrderProduct struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	MainImage    string  `json:"main_image"`
	RegularPrice float64 `json:"regular_price"`
	SalePrice    float64 `json:"sale_price"`
}

// OrderWithRelations is an order row with its optional joined customer and
// product. Either relation may be nil when the foreign key is unset or the
// referenced row was deleted.
type OrderWithRelations struct {
	Order
	Customer *OrderCustomer `json:"customer"`
	Product  *OrderProduct  `json:"product"`
}
