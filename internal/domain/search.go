package domain

import "time"

// SearchMode selects how a raw query string is turned into a BM25
// search expression.
type SearchMode string

const (
	// SearchModeBasic matches the query against every configured field.
	SearchModeBasic SearchMode = "basic"
	// SearchModeBoolean passes the query through untouched so callers
	// can write field:term expressions with AND/OR/NOT themselves.
	SearchModeBoolean SearchMode = "boolean"
	// SearchModePhrase quotes the query for exact phrase matching.
	SearchModePhrase SearchMode = "phrase"
	// SearchModeFuzzy appends ~1 to tolerate a single edit per term.
	SearchModeFuzzy SearchMode = "fuzzy"
	// SearchModeBoosted doubles the weight of the first field.
	SearchModeBoosted SearchMode = "boosted"
)

const (
	DefaultSearchLimit     = 20
	DefaultSimilarityLimit = 10
	DefaultHybridLimit     = 10
	DefaultCompareLimit    = 10
	MaxSearchLimit         = 100
)

const (
	DefaultBM25Weight   = 0.5
	DefaultVectorWeight = 0.5
)

// SearchFilters narrows a search to a slice of the catalog. Nil
// pointer fields mean the dimension is unconstrained.
type SearchFilters struct {
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
}

// BM25Params holds one full-text search request.
type BM25Params struct {
	Query   string
	Mode    SearchMode
	Filters SearchFilters
	Limit   int
}

// Validate fills defaults and clamps the limit to the allowed range.
func (p *BM25Params) Validate() {
	if p.Mode == "" {
		p.Mode = SearchModeBasic
	}
	if p.Limit <= 0 {
		p.Limit = DefaultSearchLimit
	}
	if p.Limit > MaxSearchLimit {
		p.Limit = MaxSearchLimit
	}
}

// HybridParams holds one hybrid search request. Weights are used as
// given, the caller decides how to balance the two signals.
type HybridParams struct {
	Query        string
	BM25Weight   float64
	VectorWeight float64
	Limit        int
}

// Validate fills defaults and clamps the limit to the allowed range.
func (p *HybridParams) Validate() {
	if p.Limit <= 0 {
		p.Limit = DefaultHybridLimit
	}
	if p.Limit > MaxSearchLimit {
		p.Limit = MaxSearchLimit
	}
}

// ScoredProduct is one BM25 search hit.
type ScoredProduct struct {
	Product
	RelevanceScore float64
}

// SimilarProduct is one vector similarity hit. Distance is the raw
// cosine distance, SimilarityScore is 1 - distance.
type SimilarProduct struct {
	Product
	Distance        float64
	SimilarityScore float64
}

// HybridProduct is one hybrid search hit with its score breakdown.
// VectorScore is nil when no query embedding was available, in which
// case the hybrid score carries only the weighted BM25 term.
type HybridProduct struct {
	Product
	BM25Score       float64
	NormalizedScore float64
	VectorScore     *float64
	HybridScore     float64
}

// BM25Result holds the outcome of one full-text search.
type BM25Result struct {
	Query      string
	Mode       SearchMode
	SearchTerm string
	Products   []ScoredProduct
	Elapsed    time.Duration
}

// SimilarityResult holds the outcome of one more-like-this search.
type SimilarityResult struct {
	Source   *Product
	Products []SimilarProduct
	Elapsed  time.Duration
}

// HybridResult holds the outcome of one hybrid search.
type HybridResult struct {
	Query        string
	BM25Weight   float64
	VectorWeight float64
	Products     []HybridProduct
	Elapsed      time.Duration
}

// CompareBranch is one side of a search comparison.
type CompareBranch struct {
	Products []ScoredProduct
	Elapsed  time.Duration
}

// CompareResult holds both branches of a LIKE versus BM25 comparison
// over the same query.
type CompareResult struct {
	Query string
	Like  CompareBranch
	BM25  CompareBranch
}
