package store

import (
	"fmt"
	"strings"
)

// migrate creates the schema if it does not exist. Statements are written
// in the portable subset shared by SQLite and MySQL; the primary-key and
// timestamp fragments are the only dialect-specific pieces.
func (s *Store) migrate() error {
	pk := "INTEGER PRIMARY KEY AUTOINCREMENT"
	ts := "TIMESTAMP"
	switch s.driver {
	case "mysql":
		pk = "BIGINT PRIMARY KEY AUTO_INCREMENT"
		ts = "DATETIME"
	case "postgres":
		pk = "BIGSERIAL PRIMARY KEY"
		ts = "TIMESTAMPTZ"
	}

	migrations := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id ` + pk + `,
			title VARCHAR(255) NOT NULL DEFAULT '',
			sku VARCHAR(255) UNIQUE NOT NULL DEFAULT '',
			main_image VARCHAR(500) NOT NULL DEFAULT '',
			images TEXT NOT NULL DEFAULT '[]',
			regular_price DECIMAL(16,2) NOT NULL DEFAULT 0,
			sale_price DECIMAL(16,2) NOT NULL DEFAULT 0,
			rating DECIMAL(8,2) NOT NULL DEFAULT 4.5,
			review INTEGER NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			home_page BOOLEAN NOT NULL DEFAULT FALSE,
			status VARCHAR(16) NOT NULL DEFAULT 'Active',
			shorting VARCHAR(32) NOT NULL DEFAULT '500',
			created_at ` + ts + ` NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at ` + ts + ` NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS customers (
			id ` + pk + `,
			name VARCHAR(255) NOT NULL DEFAULT '',
			email VARCHAR(255) UNIQUE NOT NULL,
			mobile_no VARCHAR(255) NOT NULL DEFAULT '',
			password_hash VARCHAR(255) NOT NULL DEFAULT '',
			status VARCHAR(16) NOT NULL DEFAULT 'Active',
			shorting VARCHAR(32) NOT NULL DEFAULT '500',
			created_at ` + ts + ` NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at ` + ts + ` NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS orders (
			id ` + pk + `,
			customer_id INTEGER,
			product_id INTEGER,
			full_name VARCHAR(255) NOT NULL DEFAULT '',
			phone_no VARCHAR(20) NOT NULL DEFAULT '',
			address VARCHAR(500) NOT NULL DEFAULT '',
			landmark VARCHAR(255) NOT NULL DEFAULT '',
			pincode VARCHAR(20) NOT NULL DEFAULT '',
			state VARCHAR(255) NOT NULL DEFAULT '',
			city VARCHAR(255) NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL DEFAULT 0,
			subtotal DECIMAL(16,2) NOT NULL DEFAULT 0,
			shipping DECIMAL(16,2) NOT NULL DEFAULT 0,
			total_price DECIMAL(16,2) NOT NULL DEFAULT 0,
			shipping_status VARCHAR(32) NOT NULL DEFAULT 'pending',
			status VARCHAR(16) NOT NULL DEFAULT 'Active',
			shorting VARCHAR(32) NOT NULL DEFAULT '500',
			created_at ` + ts + ` NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at ` + ts + ` NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS contacts (
			id ` + pk + `,
			name VARCHAR(255) NOT NULL DEFAULT '',
			email VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(255) NOT NULL DEFAULT '',
			message TEXT NOT NULL DEFAULT '',
			created_at ` + ts + ` NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS admins (
			id ` + pk + `,
			name VARCHAR(255) NOT NULL DEFAULT '',
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			status VARCHAR(16) NOT NULL DEFAULT 'Active',
			created_at ` + ts + ` NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at ` + ts + ` NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	// MySQL rejects IF NOT EXISTS on CREATE INDEX; it reports reruns as a
	// duplicate key name instead, which the loop below tolerates.
	ifNotExists := "IF NOT EXISTS "
	if s.driver == "mysql" {
		ifNotExists = ""
	}
	migrations = append(migrations,
		`CREATE INDEX `+ifNotExists+`idx_orders_customer_id ON orders(customer_id)`,
		`CREATE INDEX `+ifNotExists+`idx_orders_product_id ON orders(product_id)`,
		`CREATE INDEX `+ifNotExists+`idx_products_home_page ON products(home_page)`,
	)

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			// MySQL has no CREATE INDEX IF NOT EXISTS; a rerun reports the
			// index as existing, which is fine for idempotent migrations.
			if strings.Contains(strings.ToLower(err.Error()), "duplicate key name") {
				continue
			}
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
