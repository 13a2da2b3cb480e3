package postgres

import (
	"database/sql/driver"
	"fmt"

	"github.com/pgvector/pgvector-go"
)

// NullVector is a pgvector.Vector that may be NULL, following the
// database/sql Null* convention. pgvector.Vector alone cannot scan a
// NULL column, and the embedding column stays NULL until the seeder
// fills it.
type NullVector struct {
	Vector pgvector.Vector
	Valid  bool
}

// Scan implements the sql.Scanner interface.
func (v *NullVector) Scan(src any) error {
	if src == nil {
		v.Vector, v.Valid = pgvector.Vector{}, false
		return nil
	}
	if err := v.Vector.Scan(src); err != nil {
		return fmt.Errorf("scanning vector: %w", err)
	}
	v.Valid = true

	return nil
}

// Value implements the driver.Valuer interface.
func (v NullVector) Value() (driver.Value, error) {
	if !v.Valid {
		return nil, nil
	}

	return v.Vector.Value()
}

// NewNullVector builds a valid NullVector from a float32 slice. An
// empty slice yields the NULL value.
func NewNullVector(values []float32) NullVector {
	if len(values) == 0 {
		return NullVector{}
	}

	return NullVector{Vector: pgvector.NewVector(values), Valid: true}
}
