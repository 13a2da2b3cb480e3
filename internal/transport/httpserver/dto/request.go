// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import "ecommerce-search-service/internal/domain"

// BM25SearchRequest represents the query parameters for full-text search.
type BM25SearchRequest struct {
	Query     string   `query:"q" validate:"required,max=200"`
	Mode      string   `query:"mode" validate:"omitempty,oneof=basic boolean phrase fuzzy boosted"`
	Category  string   `query:"category" validate:"omitempty,max=100"`
	MinPrice  *float64 `query:"min_price" validate:"omitempty,gte=0"`
	MaxPrice  *float64 `query:"max_price" validate:"omitempty,gte=0"`
	MinRating *float64 `query:"min_rating" validate:"omitempty,gte=0,lte=5"`
	Limit     int      `query:"limit" validate:"omitempty,min=1,max=100"`
}

// ToParams converts BM25SearchRequest to domain.BM25Params. Zero-value
// mode and limit fall back to domain defaults.
func (r *BM25SearchRequest) ToParams() domain.BM25Params {
	return domain.BM25Params{
		Query: r.Query,
		Mode:  domain.SearchMode(r.Mode),
		Filters: domain.SearchFilters{
			Category:  r.Category,
			MinPrice:  r.MinPrice,
			MaxPrice:  r.MaxPrice,
			MinRating: r.MinRating,
		},
		Limit: r.Limit,
	}
}

// SimilarityRequest represents the query parameters for a
// more-like-this search.
type SimilarityRequest struct {
	ProductID int64 `query:"product_id" validate:"required,min=1"`
	Limit     int   `query:"limit" validate:"omitempty,min=1,max=100"`
}

// HybridSearchRequest represents the query parameters for hybrid search.
// Nil weights fall back to an even split.
type HybridSearchRequest struct {
	Query        string   `query:"q" validate:"required,max=200"`
	BM25Weight   *float64 `query:"bm25_weight" validate:"omitempty,gte=0,lte=1"`
	VectorWeight *float64 `query:"vector_weight" validate:"omitempty,gte=0,lte=1"`
	Limit        int      `query:"limit" validate:"omitempty,min=1,max=100"`
}

// ToParams converts HybridSearchRequest to domain.HybridParams.
func (r *HybridSearchRequest) ToParams() domain.HybridParams {
	params := domain.HybridParams{
		Query:        r.Query,
		BM25Weight:   domain.DefaultBM25Weight,
		VectorWeight: domain.DefaultVectorWeight,
		Limit:        r.Limit,
	}
	if r.BM25Weight != nil {
		params.BM25Weight = *r.BM25Weight
	}
	if r.VectorWeight != nil {
		params.VectorWeight = *r.VectorWeight
	}

	return params
}

// CompareSearchRequest represents the query parameters for the
// LIKE-versus-BM25 comparison.
type CompareSearchRequest struct {
	Query string `query:"q" validate:"required,max=200"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// FacetsRequest represents the query parameters for facet aggregation.
type FacetsRequest struct {
	Query string `query:"q" validate:"required,max=200"`
}

// TopProductsRequest represents the query parameters for the
// top-products analytics listing.
type TopProductsRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}
