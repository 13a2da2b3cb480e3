package domain

import "math"

// PriceBucket is one fixed price range used for facet grouping.
// UpperBound is exclusive, so a price equal to a boundary lands in
// the next bucket up.
type PriceBucket struct {
	Label      string
	UpperBound float64
}

// PriceBuckets defines the facet buckets in ascending order. The
// buckets partition every non-null price: 100 lands in "$100 - $300",
// the last bucket is unbounded above.
var PriceBuckets = []PriceBucket{
	{Label: "Under $100", UpperBound: 100},
	{Label: "$100 - $300", UpperBound: 300},
	{Label: "$300 - $500", UpperBound: 500},
	{Label: "$500 - $1000", UpperBound: 1000},
	{Label: "Over $1000", UpperBound: math.Inf(1)},
}

// BucketForPrice returns the label of the bucket containing price.
func BucketForPrice(price float64) string {
	for _, b := range PriceBuckets {
		if price < b.UpperBound {
			return b.Label
		}
	}
	return PriceBuckets[len(PriceBuckets)-1].Label
}

// FacetValue is one grouped count for a facet dimension.
type FacetValue struct {
	Value string
	Count int64
}

// Facets holds grouped counts over the category, brand and price
// dimensions for one search expression. Facets are always computed
// against the same predicate as the main search. Rows with a null
// price are excluded from PriceRanges but still counted in Categories
// and Brands.
type Facets struct {
	Categories  []FacetValue
	Brands      []FacetValue
	PriceRanges []FacetValue
}
