package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createCatalogTables creates the products, orders and reviews tables
// with their btree indexes.
func createCatalogTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_catalog",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS products (
					id BIGSERIAL PRIMARY KEY,
					name VARCHAR(255) NOT NULL,
					description TEXT,
					category VARCHAR(100),
					brand VARCHAR(100),
					tags TEXT[],

					-- Pricing and inventory
					price DECIMAL(10,2),
					stock_quantity INTEGER DEFAULT 0,

					-- Aggregated review data, denormalized for search results
					rating DECIMAL(2,1),
					review_count INTEGER DEFAULT 0,

					-- Timestamps
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			err = tx.Exec(`
				CREATE TABLE IF NOT EXISTS orders (
					id BIGSERIAL PRIMARY KEY,
					product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
					quantity INTEGER DEFAULT 1,
					total_price DECIMAL(10,2) NOT NULL,
					region VARCHAR(50) NOT NULL,
					status VARCHAR(20) NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			err = tx.Exec(`
				CREATE TABLE IF NOT EXISTS reviews (
					id BIGSERIAL PRIMARY KEY,
					product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
					rating INTEGER NOT NULL,
					title VARCHAR(255),
					content TEXT,
					helpful_votes INTEGER DEFAULT 0,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			// Create indexes
			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);",
				"CREATE INDEX IF NOT EXISTS idx_orders_product_id ON orders(product_id);",
				"CREATE INDEX IF NOT EXISTS idx_orders_region ON orders(region);",
				"CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);",
				"CREATE INDEX IF NOT EXISTS idx_reviews_product_votes ON reviews(product_id, helpful_votes DESC, created_at DESC);",
			}

			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE IF EXISTS reviews, orders, products;").Error
		},
	}
}
