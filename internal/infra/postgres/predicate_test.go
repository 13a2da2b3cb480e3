package postgres

import (
	"testing"

	"ecommerce-search-service/internal/domain"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestComposePredicate(t *testing.T) {
	expr := "name:phone OR description:phone"

	tests := []struct {
		name           string
		filters        domain.SearchFilters
		expectedSQL    string
		expectedParams []any
	}{
		{
			name:           "expression only",
			filters:        domain.SearchFilters{},
			expectedSQL:    "products @@@ ?",
			expectedParams: []any{expr},
		},
		{
			name:           "category filter",
			filters:        domain.SearchFilters{Category: "Electronics"},
			expectedSQL:    "products @@@ ? AND category = ?",
			expectedParams: []any{expr, "Electronics"},
		},
		{
			name:           "min price filter",
			filters:        domain.SearchFilters{MinPrice: fptr(50)},
			expectedSQL:    "products @@@ ? AND price >= ?",
			expectedParams: []any{expr, 50.0},
		},
		{
			name:           "max price filter",
			filters:        domain.SearchFilters{MaxPrice: fptr(500)},
			expectedSQL:    "products @@@ ? AND price <= ?",
			expectedParams: []any{expr, 500.0},
		},
		{
			name:           "min rating filter",
			filters:        domain.SearchFilters{MinRating: fptr(4)},
			expectedSQL:    "products @@@ ? AND rating >= ?",
			expectedParams: []any{expr, 4.0},
		},
		{
			name: "all filters keep a fixed order",
			filters: domain.SearchFilters{
				Category:  "Electronics",
				MinPrice:  fptr(50),
				MaxPrice:  fptr(500),
				MinRating: fptr(4),
			},
			expectedSQL:    "products @@@ ? AND category = ? AND price >= ? AND price <= ? AND rating >= ?",
			expectedParams: []any{expr, "Electronics", 50.0, 500.0, 4.0},
		},
		{
			name:           "price range without category",
			filters:        domain.SearchFilters{MinPrice: fptr(100), MaxPrice: fptr(300)},
			expectedSQL:    "products @@@ ? AND price >= ? AND price <= ?",
			expectedParams: []any{expr, 100.0, 300.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, params := composePredicate(expr, tt.filters)
			assert.Equal(t, tt.expectedSQL, sql)
			assert.Equal(t, tt.expectedParams, params)
		})
	}
}

func TestComposePredicate_ZeroValuesStillBind(t *testing.T) {
	// A minimum price of 0 is a real filter, distinct from no filter.
	sql, params := composePredicate("name:phone", domain.SearchFilters{MinPrice: fptr(0)})
	assert.Equal(t, "products @@@ ? AND price >= ?", sql)
	assert.Equal(t, []any{"name:phone", 0.0}, params)
}

func TestBuildPriceBucketCase(t *testing.T) {
	expected := "CASE" +
		" WHEN price < 100 THEN 'Under $100'" +
		" WHEN price < 300 THEN '$100 - $300'" +
		" WHEN price < 500 THEN '$300 - $500'" +
		" WHEN price < 1000 THEN '$500 - $1000'" +
		" ELSE 'Over $1000' END"
	assert.Equal(t, expected, buildPriceBucketCase())
}
