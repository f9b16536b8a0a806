package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ImageList is a JSON-encoded list of image URLs stored in a single text
// column, matching how the product gallery is persisted.
type ImageList []string

// Value implements driver.Valuer, serializing the list as JSON.
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner, accepting JSON text or NULL.
func (l *ImageList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		if len(v) == 0 {
			*l = nil
			return nil
		}
		return json.Unmarshal(v, l)
	case string:
		if v == "" {
			*l = nil
			return nil
		}
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into ImageList", src)
	}
}

// Product is a catalog item sold through the storefront.
type Product struct {
	ID           int64     `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	SKU          string    `json:"sku" db:"sku"`
	MainImage    string    `json:"main_image" db:"main_image"`
	Images       ImageList `json:"images" db:"images"`
	RegularPrice float64   `json:"regular_price" db:"regular_price"`
	SalePrice    float64   `json:"sale_price" db:"sale_price"`
	Rating       float64   `json:"rating" db:"rating"`
	Review       int64     `json:"review" db:"review"`
	Desc         string    `json:"desc" db:"description"`
	HomePage     bool      `json:"home_page" db:"home_page"`
	Status       Status    `json:"status" db:"status"`
	Shorting     string    `json:"shorting" db:"shorting"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// CatalogProduct is the trimmed projection served to the public storefront
// listing, without admin-only columns.
type CatalogProduct struct {
	ID           int64   `json:"id" db:"id"`
	Title        string  `json:"title" db:"title"`
	SKU          string  `json:"sku" db:"sku"`
	MainImage    string  `json:"main_image" db:"main_image"`
	RegularPrice float64 `json:"regular_price" db:"regular_price"`
	SalePrice    float64 `json:"sale_price" db:"sale_price"`
	Rating       float64 `json:"rating" db:"rating"`
	Review       int64   `json:"review" db:"review"`
}
