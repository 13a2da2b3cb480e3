// Package service provides application use cases.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"ecommerce-search-service/internal/domain"
)

// SearchService handles full-text, similarity, hybrid and comparison
// searches over the product catalog.
type SearchService struct {
	products domain.ProductRepository
	embedder domain.EmbeddingProvider
	cache    domain.Cache
	cacheTTL time.Duration
	fields   []string
	logger   *zap.Logger
}

// NewSearchService creates a new SearchService. embedder and cache are
// optional; without an embedder hybrid search ranks by text relevance
// only, without a cache every search hits the database.
func NewSearchService(
	products domain.ProductRepository,
	embedder domain.EmbeddingProvider,
	cache domain.Cache,
	cacheTTL time.Duration,
	fields []string,
	logger *zap.Logger,
) *SearchService {
	if len(fields) == 0 {
		fields = domain.DefaultSearchFields
	}

	return &SearchService{
		products: products,
		embedder: embedder,
		cache:    cache,
		cacheTTL: cacheTTL,
		fields:   fields,
		logger:   logger,
	}
}

// BM25Search runs a full-text search for the given parameters.
func (s *SearchService) BM25Search(ctx context.Context, params domain.BM25Params) (*domain.BM25Result, error) {
	params.Validate()

	expression, err := domain.BuildExpression(params.Query, params.Mode, s.fields)
	if err != nil {
		return nil, err
	}

	key := bm25CacheKey(params)
	if cached := s.cachedResult(ctx, key); cached != nil {
		return cached, nil
	}

	s.logger.Debug("searching products",
		zap.String("query", params.Query),
		zap.String("mode", string(params.Mode)),
		zap.String("expression", expression),
		zap.Int("limit", params.Limit),
	)

	start := time.Now()
	products, err := s.products.SearchBM25(ctx, expression, params.Filters, params.Limit)
	if err != nil {
		s.logger.Error("bm25 search failed", zap.Error(err))
		return nil, err
	}

	result := &domain.BM25Result{
		Query:      params.Query,
		Mode:       params.Mode,
		SearchTerm: expression,
		Products:   products,
		Elapsed:    time.Since(start),
	}

	s.storeResult(ctx, key, result)

	s.logger.Debug("search completed",
		zap.Int("count", len(products)),
		zap.Duration("elapsed", result.Elapsed),
	)

	return result, nil
}

// SimilaritySearch finds products closest to the given product's
// embedding. A product without an embedding yields an empty result,
// not an error.
func (s *SearchService) SimilaritySearch(ctx context.Context, productID int64, limit int) (*domain.SimilarityResult, error) {
	if limit <= 0 {
		limit = domain.DefaultSimilarityLimit
	}
	if limit > domain.MaxSearchLimit {
		limit = domain.MaxSearchLimit
	}

	source, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		s.logger.Error("similarity source lookup failed",
			zap.Int64("product_id", productID),
			zap.Error(err),
		)
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, productID)
	}

	start := time.Now()
	products, err := s.products.SimilarTo(ctx, source, limit)
	if err != nil {
		s.logger.Error("similarity search failed", zap.Error(err))
		return nil, err
	}

	return &domain.SimilarityResult{
		Source:   source,
		Products: products,
		Elapsed:  time.Since(start),
	}, nil
}

// HybridSearch blends text relevance with vector similarity. When the
// embedding provider is absent or unreachable the vector term drops
// out and the hybrid score carries only the weighted BM25 component.
func (s *SearchService) HybridSearch(ctx context.Context, params domain.HybridParams) (*domain.HybridResult, error) {
	params.Validate()

	expression, err := domain.BuildExpression(params.Query, domain.SearchModeBasic, s.fields)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	scored, err := s.products.SearchBM25(ctx, expression, domain.SearchFilters{}, params.Limit)
	if err != nil {
		s.logger.Error("hybrid text search failed", zap.Error(err))
		return nil, err
	}

	raw := make([]float64, len(scored))
	for i, sp := range scored {
		raw[i] = sp.RelevanceScore
	}
	normalized := domain.NormalizeScores(raw)

	merged := make(map[int64]*domain.HybridProduct, len(scored))
	for i, sp := range scored {
		merged[sp.ID] = &domain.HybridProduct{
			Product:         sp.Product,
			BM25Score:       sp.RelevanceScore,
			NormalizedScore: normalized[i],
		}
	}

	if s.embedder != nil {
		s.attachVectorScores(ctx, params, merged)
	}

	results := make([]domain.HybridProduct, 0, len(merged))
	for _, hp := range merged {
		hp.HybridScore = domain.BlendScores(hp.NormalizedScore, hp.VectorScore, params.BM25Weight, params.VectorWeight)
		results = append(results, *hp)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].HybridScore != results[j].HybridScore {
			return results[i].HybridScore > results[j].HybridScore
		}
		return results[i].ID < results[j].ID
	})
	if len(results) > params.Limit {
		results = results[:params.Limit]
	}

	return &domain.HybridResult{
		Query:        params.Query,
		BM25Weight:   params.BM25Weight,
		VectorWeight: params.VectorWeight,
		Products:     results,
		Elapsed:      time.Since(start),
	}, nil
}

// attachVectorScores embeds the query, finds its nearest products and
// merges their normalized similarity into the candidate set. Failures
// are logged and swallowed so a broken embedding server degrades the
// ranking instead of the endpoint.
func (s *SearchService) attachVectorScores(ctx context.Context, params domain.HybridParams, merged map[int64]*domain.HybridProduct) {
	vectors, err := s.embedder.Embed(ctx, []string{strings.TrimSpace(params.Query)})
	if err != nil {
		s.logger.Warn("query embedding unavailable, ranking by text only", zap.Error(err))
		return
	}
	if len(vectors) == 0 {
		return
	}

	neighbors, err := s.products.SimilarToVector(ctx, vectors[0], params.Limit)
	if err != nil {
		s.logger.Warn("vector search failed, ranking by text only", zap.Error(err))
		return
	}

	sims := make([]float64, len(neighbors))
	for i, n := range neighbors {
		sims[i] = n.SimilarityScore
	}
	simNormalized := domain.NormalizeScores(sims)

	for i, n := range neighbors {
		v := simNormalized[i]
		if hp, ok := merged[n.ID]; ok {
			hp.VectorScore = &v
			continue
		}
		merged[n.ID] = &domain.HybridProduct{
			Product:     n.Product,
			VectorScore: &v,
		}
	}
}

// CompareSearch runs the same query through the pattern-match baseline
// and the full-text index, timing both branches.
func (s *SearchService) CompareSearch(ctx context.Context, query string, limit int) (*domain.CompareResult, error) {
	if limit <= 0 {
		limit = domain.DefaultCompareLimit
	}
	if limit > domain.MaxSearchLimit {
		limit = domain.MaxSearchLimit
	}

	expression, err := domain.BuildExpression(query, domain.SearchModeBasic, s.fields)
	if err != nil {
		return nil, err
	}

	likeStart := time.Now()
	likeProducts, err := s.products.SearchLike(ctx, query, limit)
	if err != nil {
		s.logger.Error("like search failed", zap.Error(err))
		return nil, err
	}
	likeElapsed := time.Since(likeStart)

	bm25Start := time.Now()
	bm25Products, err := s.products.SearchBM25(ctx, expression, domain.SearchFilters{}, limit)
	if err != nil {
		s.logger.Error("bm25 comparison search failed", zap.Error(err))
		return nil, err
	}
	bm25Elapsed := time.Since(bm25Start)

	return &domain.CompareResult{
		Query: query,
		Like:  domain.CompareBranch{Products: likeProducts, Elapsed: likeElapsed},
		BM25:  domain.CompareBranch{Products: bm25Products, Elapsed: bm25Elapsed},
	}, nil
}

// Facets computes grouped category, brand and price counts for the
// query's result set.
func (s *SearchService) Facets(ctx context.Context, query string) (*domain.Facets, error) {
	expression, err := domain.BuildExpression(query, domain.SearchModeBasic, s.fields)
	if err != nil {
		return nil, err
	}

	facets, err := s.products.Facets(ctx, expression, domain.SearchFilters{})
	if err != nil {
		s.logger.Error("facet aggregation failed", zap.Error(err))
		return nil, err
	}

	return facets, nil
}

// bm25CacheKey digests the search parameters into a fixed-length key.
// Queries are arbitrary user text, so they never appear in the key
// directly.
func bm25CacheKey(params domain.BM25Params) string {
	parts := []string{
		string(params.Mode),
		params.Query,
		params.Filters.Category,
		formatFilter(params.Filters.MinPrice),
		formatFilter(params.Filters.MaxPrice),
		formatFilter(params.Filters.MinRating),
		strconv.Itoa(params.Limit),
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))

	return "bm25:" + hex.EncodeToString(sum[:])
}

func formatFilter(f *float64) string {
	if f == nil {
		return "-"
	}

	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// cachedResult returns the cached search result for key, or nil on a
// miss, a disabled cache or an undecodable entry. The recorded elapsed
// time is the cost of the original database query.
func (s *SearchService) cachedResult(ctx context.Context, key string) *domain.BM25Result {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil
	}

	var result domain.BM25Result
	if err := json.Unmarshal(data, &result); err != nil {
		s.logger.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		_ = s.cache.Delete(ctx, key)

		return nil
	}

	return &result
}

func (s *SearchService) storeResult(ctx context.Context, key string, result *domain.BM25Result) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}

	_ = s.cache.Set(ctx, key, data, s.cacheTTL)
}
