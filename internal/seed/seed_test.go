package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cartloom/cartloom/internal/store"
)

const sampleSeed = `
products:
  - title: Walnut Desk
    sku: desk-01
    regular_price: 300
    sale_price: 250
    home_page: true
  - title: Cheap Stool
    sku: stool-01
    regular_price: 25
`

func TestLoadAndApplyIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(sampleSeed), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(f.Products) != 2 {
		t.Fatalf("products = %d", len(f.Products))
	}

	st, err := store.Open(store.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	ctx := context.Background()

	n, err := Apply(ctx, st, f)
	if err != nil || n != 2 {
		t.Fatalf("first apply: n=%d err=%v", n, err)
	}

	// Reapplying skips existing SKUs.
	n, err = Apply(ctx, st, f)
	if err != nil || n != 0 {
		t.Fatalf("second apply: n=%d err=%v", n, err)
	}

	p, err := st.GetProductBySKU(ctx, "desk-01")
	if err != nil {
		t.Fatalf("seeded product missing: %v", err)
	}
	if !p.HomePage || p.SalePrice != 250 {
		t.Fatalf("seeded fields: %+v", p)
	}
}

func TestApplyRequiresSKU(t *testing.T) {
	st, err := store.Open(store.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	f := &File{Products: []Product{{Title: "No SKU"}}}
	if _, err := Apply(context.Background(), st, f); err == nil {
		t.Fatal("expected error")
	}
}
