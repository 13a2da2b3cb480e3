package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// addVectorSearch adds the pgvector embedding column used by the
// similarity endpoint.
//
// The column is nullable: products without an embedding are simply
// absent from similarity results. 384 dimensions matches the
// MiniLM-class sentence embedding models the seeder targets, and the
// HNSW index uses cosine ops to back the <=> distance operator.
func addVectorSearch() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "003_add_vector_search",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.Exec(`CREATE EXTENSION IF NOT EXISTS vector`).Error; err != nil {
				return err
			}

			if err := tx.Exec(`
				ALTER TABLE products
				ADD COLUMN IF NOT EXISTS embedding vector(384)
			`).Error; err != nil {
				return err
			}

			return tx.Exec(`
				CREATE INDEX IF NOT EXISTS products_embedding_idx ON products
				USING hnsw (embedding vector_cosine_ops)
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			_ = tx.Exec(`DROP INDEX IF EXISTS products_embedding_idx`).Error
			_ = tx.Exec(`ALTER TABLE products DROP COLUMN IF EXISTS embedding`).Error
			return nil
		},
	}
}
