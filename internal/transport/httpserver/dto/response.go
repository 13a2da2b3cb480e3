package dto

import (
	"math"
	"time"

	"ecommerce-search-service/internal/domain"
)

// ProductResponse represents a single product in API responses. The
// embedding never leaves the service.
type ProductResponse struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Brand         string   `json:"brand"`
	Tags          []string `json:"tags,omitempty"`
	Price         float64  `json:"price"`
	StockQuantity int      `json:"stock_quantity"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"review_count"`
	CreatedAt     string   `json:"created_at"`
}

// FromProduct converts domain.Product to ProductResponse.
func FromProduct(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Brand:         p.Brand,
		Tags:          p.Tags,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}

// BM25ResultRow is one full-text search hit.
type BM25ResultRow struct {
	ProductResponse
	RelevanceScore float64 `json:"relevance_score"`
}

// BM25SearchResponse represents the full-text search response.
type BM25SearchResponse struct {
	SearchType  string          `json:"search_type"`
	Mode        string          `json:"mode"`
	Query       string          `json:"query"`
	SearchTerm  string          `json:"search_term"`
	Count       int             `json:"count"`
	QueryTimeMs float64         `json:"query_time_ms"`
	Results     []BM25ResultRow `json:"results"`
}

// FromBM25Result converts domain.BM25Result to BM25SearchResponse.
func FromBM25Result(result *domain.BM25Result) BM25SearchResponse {
	rows := make([]BM25ResultRow, len(result.Products))
	for i, p := range result.Products {
		rows[i] = BM25ResultRow{
			ProductResponse: FromProduct(&p.Product),
			RelevanceScore:  p.RelevanceScore,
		}
	}

	return BM25SearchResponse{
		SearchType:  "bm25",
		Mode:        string(result.Mode),
		Query:       result.Query,
		SearchTerm:  result.SearchTerm,
		Count:       len(rows),
		QueryTimeMs: millis(result.Elapsed),
		Results:     rows,
	}
}

// SimilarityRow is one vector similarity hit.
type SimilarityRow struct {
	ProductResponse
	Distance        float64 `json:"distance"`
	SimilarityScore float64 `json:"similarity_score"`
}

// SimilaritySearchResponse represents the more-like-this response.
type SimilaritySearchResponse struct {
	SearchType    string          `json:"search_type"`
	SourceProduct ProductResponse `json:"source_product"`
	Count         int             `json:"count"`
	QueryTimeMs   float64         `json:"query_time_ms"`
	Results       []SimilarityRow `json:"results"`
}

// FromSimilarityResult converts domain.SimilarityResult to
// SimilaritySearchResponse.
func FromSimilarityResult(result *domain.SimilarityResult) SimilaritySearchResponse {
	rows := make([]SimilarityRow, len(result.Products))
	for i, p := range result.Products {
		rows[i] = SimilarityRow{
			ProductResponse: FromProduct(&p.Product),
			Distance:        p.Distance,
			SimilarityScore: p.SimilarityScore,
		}
	}

	return SimilaritySearchResponse{
		SearchType:    "similarity",
		SourceProduct: FromProduct(result.Source),
		Count:         len(rows),
		QueryTimeMs:   millis(result.Elapsed),
		Results:       rows,
	}
}

// HybridRow is one hybrid search hit with its score breakdown.
// VectorScore is omitted when no query embedding was available.
type HybridRow struct {
	ProductResponse
	BM25Score       float64  `json:"bm25_score"`
	NormalizedScore float64  `json:"normalized_score"`
	VectorScore     *float64 `json:"vector_score,omitempty"`
	HybridScore     float64  `json:"hybrid_score"`
}

// HybridSearchResponse represents the hybrid search response.
type HybridSearchResponse struct {
	SearchType   string      `json:"search_type"`
	Query        string      `json:"query"`
	BM25Weight   float64     `json:"bm25_weight"`
	VectorWeight float64     `json:"vector_weight"`
	Count        int         `json:"count"`
	QueryTimeMs  float64     `json:"query_time_ms"`
	Results      []HybridRow `json:"results"`
}

// FromHybridResult converts domain.HybridResult to HybridSearchResponse.
func FromHybridResult(result *domain.HybridResult) HybridSearchResponse {
	rows := make([]HybridRow, len(result.Products))
	for i, p := range result.Products {
		rows[i] = HybridRow{
			ProductResponse: FromProduct(&p.Product),
			BM25Score:       p.BM25Score,
			NormalizedScore: p.NormalizedScore,
			VectorScore:     p.VectorScore,
			HybridScore:     p.HybridScore,
		}
	}

	return HybridSearchResponse{
		SearchType:   "hybrid",
		Query:        result.Query,
		BM25Weight:   result.BM25Weight,
		VectorWeight: result.VectorWeight,
		Count:        len(rows),
		QueryTimeMs:  millis(result.Elapsed),
		Results:      rows,
	}
}

// CompareBranchResponse is one side of a search comparison.
type CompareBranchResponse struct {
	Count       int             `json:"count"`
	QueryTimeMs float64         `json:"query_time_ms"`
	Results     []BM25ResultRow `json:"results"`
}

// CompareSearchResponse represents the LIKE-versus-BM25 comparison
// response.
type CompareSearchResponse struct {
	Query          string                `json:"query"`
	PostgresqlLike CompareBranchResponse `json:"postgresql_like"`
	ParadeDBBM25   CompareBranchResponse `json:"paradedb_bm25"`
}

// FromCompareResult converts domain.CompareResult to
// CompareSearchResponse.
func FromCompareResult(result *domain.CompareResult) CompareSearchResponse {
	return CompareSearchResponse{
		Query:          result.Query,
		PostgresqlLike: compareBranch(result.Like),
		ParadeDBBM25:   compareBranch(result.BM25),
	}
}

func compareBranch(branch domain.CompareBranch) CompareBranchResponse {
	rows := make([]BM25ResultRow, len(branch.Products))
	for i, p := range branch.Products {
		rows[i] = BM25ResultRow{
			ProductResponse: FromProduct(&p.Product),
			RelevanceScore:  p.RelevanceScore,
		}
	}

	return CompareBranchResponse{
		Count:       len(rows),
		QueryTimeMs: millis(branch.Elapsed),
		Results:     rows,
	}
}

// CategoryFacetRow is one grouped category count.
type CategoryFacetRow struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// BrandFacetRow is one grouped brand count.
type BrandFacetRow struct {
	Brand string `json:"brand"`
	Count int64  `json:"count"`
}

// PriceRangeFacetRow is one grouped price bucket count.
type PriceRangeFacetRow struct {
	PriceRange string `json:"price_range"`
	Count      int64  `json:"count"`
}

// FacetsResponse represents grouped counts for a search. Empty
// dimensions encode as empty arrays, not null.
type FacetsResponse struct {
	Categories  []CategoryFacetRow   `json:"categories"`
	Brands      []BrandFacetRow      `json:"brands"`
	PriceRanges []PriceRangeFacetRow `json:"price_ranges"`
}

// FromFacets converts domain.Facets to FacetsResponse.
func FromFacets(facets *domain.Facets) FacetsResponse {
	resp := FacetsResponse{
		Categories:  make([]CategoryFacetRow, len(facets.Categories)),
		Brands:      make([]BrandFacetRow, len(facets.Brands)),
		PriceRanges: make([]PriceRangeFacetRow, len(facets.PriceRanges)),
	}
	for i, f := range facets.Categories {
		resp.Categories[i] = CategoryFacetRow{Category: f.Value, Count: f.Count}
	}
	for i, f := range facets.Brands {
		resp.Brands[i] = BrandFacetRow{Brand: f.Value, Count: f.Count}
	}
	for i, f := range facets.PriceRanges {
		resp.PriceRanges[i] = PriceRangeFacetRow{PriceRange: f.Value, Count: f.Count}
	}

	return resp
}

// ReviewResponse represents a single review in API responses.
type ReviewResponse struct {
	ID           int64  `json:"id"`
	Rating       int    `json:"rating"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	HelpfulVotes int    `json:"helpful_votes"`
	CreatedAt    string `json:"created_at"`
}

// ProductDetailResponse represents a product together with its most
// helpful reviews.
type ProductDetailResponse struct {
	Product ProductResponse  `json:"product"`
	Reviews []ReviewResponse `json:"reviews"`
}

// FromProductDetail converts domain.ProductDetail to
// ProductDetailResponse.
func FromProductDetail(detail *domain.ProductDetail) ProductDetailResponse {
	reviews := make([]ReviewResponse, len(detail.Reviews))
	for i, r := range detail.Reviews {
		reviews[i] = ReviewResponse{
			ID:           r.ID,
			Rating:       r.Rating,
			Title:        r.Title,
			Content:      r.Content,
			HelpfulVotes: r.HelpfulVotes,
			CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		}
	}

	return ProductDetailResponse{
		Product: FromProduct(&detail.Product),
		Reviews: reviews,
	}
}

// CategoriesResponse represents the distinct category listing.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// RegionSalesRow is one region in the sales-by-region aggregate.
type RegionSalesRow struct {
	Region        string  `json:"region"`
	OrderCount    int64   `json:"order_count"`
	TotalRevenue  float64 `json:"total_revenue"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

// SalesByRegionResponse wraps the sales-by-region rows.
type SalesByRegionResponse struct {
	Data []RegionSalesRow `json:"data"`
}

// FromRegionSales converts domain.RegionSales rows to
// SalesByRegionResponse.
func FromRegionSales(sales []domain.RegionSales) SalesByRegionResponse {
	rows := make([]RegionSalesRow, len(sales))
	for i, s := range sales {
		rows[i] = RegionSalesRow{
			Region:        s.Region,
			OrderCount:    s.OrderCount,
			TotalRevenue:  s.TotalRevenue,
			AvgOrderValue: s.AvgOrderValue,
		}
	}

	return SalesByRegionResponse{Data: rows}
}

// TopProductRow is one product in the top-products aggregate.
type TopProductRow struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	UnitsSold    int64   `json:"units_sold"`
	TotalRevenue float64 `json:"total_revenue"`
}

// TopProductsResponse wraps the top-products rows.
type TopProductsResponse struct {
	Data []TopProductRow `json:"data"`
}

// FromTopProducts converts domain.ProductSales rows to
// TopProductsResponse.
func FromTopProducts(sales []domain.ProductSales) TopProductsResponse {
	rows := make([]TopProductRow, len(sales))
	for i, s := range sales {
		rows[i] = TopProductRow{
			Name:         s.Name,
			Category:     s.Category,
			UnitsSold:    s.UnitsSold,
			TotalRevenue: s.TotalRevenue,
		}
	}

	return TopProductsResponse{Data: rows}
}

// CategoryPerformanceRow is one category in the category-performance
// aggregate.
type CategoryPerformanceRow struct {
	Category     string  `json:"category"`
	ProductCount int64   `json:"product_count"`
	TotalOrders  int64   `json:"total_orders"`
	TotalRevenue float64 `json:"total_revenue"`
	AvgRating    float64 `json:"avg_rating"`
}

// CategoryPerformanceResponse wraps the category-performance rows.
type CategoryPerformanceResponse struct {
	Data []CategoryPerformanceRow `json:"data"`
}

// FromCategoryPerformance converts domain.CategoryStats rows to
// CategoryPerformanceResponse.
func FromCategoryPerformance(stats []domain.CategoryStats) CategoryPerformanceResponse {
	rows := make([]CategoryPerformanceRow, len(stats))
	for i, s := range stats {
		rows[i] = CategoryPerformanceRow{
			Category:     s.Category,
			ProductCount: s.ProductCount,
			TotalOrders:  s.TotalOrders,
			TotalRevenue: s.TotalRevenue,
			AvgRating:    s.AvgRating,
		}
	}

	return CategoryPerformanceResponse{Data: rows}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// millis reports a duration in milliseconds rounded to two decimals,
// the resolution the demo UI displays.
func millis(d time.Duration) float64 {
	return math.Round(d.Seconds()*1000*100) / 100
}
