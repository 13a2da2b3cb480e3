package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// addBM25Index sets up ParadeDB full-text search over the products table.
//
// ## What This Migration Does
//
// 1. Installs the pg_search extension (a no-op on ParadeDB images)
// 2. Creates a BM25 index covering the searchable product fields
//
// ## How Queries Use It
//
//	WHERE products @@@ 'name:wireless OR description:wireless'
//
// The @@@ operator takes an expression in ParadeDB's query grammar,
// with field:term targeting, AND/OR/NOT, "..." phrases, term~1 fuzzy
// matching and field:term^2 boosting. Matching rows expose their BM25
// relevance through paradedb.score(id), which the search queries
// select and order by.
//
// ## Index Layout
//
// key_field must be the table's unique key; name and description are
// the text-scored fields, category and brand are indexed as raw
// tokens so boolean-mode expressions can filter on them.
func addBM25Index() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "002_add_bm25_index",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.Exec(`CREATE EXTENSION IF NOT EXISTS pg_search`).Error; err != nil {
				return err
			}

			return tx.Exec(`
				CREATE INDEX IF NOT EXISTS products_search_idx ON products
				USING bm25 (id, name, description, category, brand)
				WITH (key_field='id')
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec(`DROP INDEX IF EXISTS products_search_idx`).Error
		},
	}
}
