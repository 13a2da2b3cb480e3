package postgres

import (
	"strconv"
	"strings"

	"ecommerce-search-service/internal/domain"
)

// composePredicate builds the WHERE fragment shared by every BM25
// search and facet query. The search expression is always the first
// bind; filters follow in a fixed order (category, min price, max
// price, min rating) so the generated SQL is stable byte for byte.
// The fragment carries no ORDER BY or LIMIT, callers append those.
func composePredicate(expression string, filters domain.SearchFilters) (string, []any) {
	var sb strings.Builder
	sb.WriteString("products @@@ ?")
	params := []any{expression}

	if filters.Category != "" {
		sb.WriteString(" AND category = ?")
		params = append(params, filters.Category)
	}
	if filters.MinPrice != nil {
		sb.WriteString(" AND price >= ?")
		params = append(params, *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		sb.WriteString(" AND price <= ?")
		params = append(params, *filters.MaxPrice)
	}
	if filters.MinRating != nil {
		sb.WriteString(" AND rating >= ?")
		params = append(params, *filters.MinRating)
	}

	return sb.String(), params
}

// priceBucketCase maps a price onto its facet bucket label in SQL.
// Rendered once from domain.PriceBuckets so SQL and Go never disagree
// on the boundaries.
var priceBucketCase = buildPriceBucketCase()

func buildPriceBucketCase() string {
	var sb strings.Builder
	sb.WriteString("CASE")
	for _, b := range domain.PriceBuckets[:len(domain.PriceBuckets)-1] {
		sb.WriteString(" WHEN price < ")
		sb.WriteString(strconv.FormatFloat(b.UpperBound, 'f', -1, 64))
		sb.WriteString(" THEN '")
		sb.WriteString(b.Label)
		sb.WriteString("'")
	}
	sb.WriteString(" ELSE '")
	sb.WriteString(domain.PriceBuckets[len(domain.PriceBuckets)-1].Label)
	sb.WriteString("' END")

	return sb.String()
}
