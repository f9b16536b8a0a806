// Package seed loads an initial catalog from a YAML file, used by the CLI
// to populate a fresh database.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cartloom/cartloom/internal/model"
	"github.com/cartloom/cartloom/internal/store"
)

// File is the top-level seed document.
type File struct {
	Products []Product `yaml:"products"`
}

// Product is one catalog entry in the seed file.
type Product struct {
	Title        string   `yaml:"title"`
	SKU          string   `yaml:"sku"`
	MainImage    string   `yaml:"main_image"`
	Images       []string `yaml:"images"`
	RegularPrice float64  `yaml:"regular_price"`
	SalePrice    float64  `yaml:"sale_price"`
	Rating       float64  `yaml:"rating"`
	Review       int64    `yaml:"review"`
	Desc         string   `yaml:"desc"`
	HomePage     bool     `yaml:"home_page"`
}

// Load reads and parses a seed file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &f, nil
}

// Apply inserts the seeded products, skipping SKUs that already exist so
// reseeding is idempotent. It returns how many rows were inserted.
func Apply(ctx context.Context, st *store.Store, f *File) (int, error) {
	inserted := 0
	for _, sp := range f.Products {
		if sp.SKU == "" {
			return inserted, fmt.Errorf("product %q: sku is required", sp.Title)
		}
		p := &model.Product{
			Title:        sp.Title,
			SKU:          sp.SKU,
			MainImage:    sp.MainImage,
			Images:       model.ImageList(sp.Images),
			RegularPrice: sp.RegularPrice,
			SalePrice:    sp.SalePrice,
			Rating:       sp.Rating,
			Review:       sp.Review,
			Desc:         sp.Desc,
			HomePage:     sp.HomePage,
		}
		err := st.CreateProduct(ctx, p)
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		if err != nil {
			return inserted, fmt.Errorf("seed %q: %w", sp.SKU, err)
		}
		inserted++
	}
	return inserted, nil
}
