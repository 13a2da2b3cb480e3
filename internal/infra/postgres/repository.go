package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ecommerce-search-service/internal/domain"
)

// Repository implements the product, analytics and seed repository
// ports on top of PostgreSQL with the pg_search and vector extensions.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// productColumns is the SELECT list shared by the search queries. The
// embedding column is deliberately absent, vectors never leave the
// store except through distance computations.
const productColumns = "id, name, description, category, brand, tags, price, stock_quantity, rating, review_count, created_at, updated_at"

// scoredProductRow carries one full-text hit; the embedded model's
// columns scan by name alongside the computed score.
type scoredProductRow struct {
	ProductModel
	RelevanceScore float64
}

type similarProductRow struct {
	ProductModel
	Distance float64
}

type facetRow struct {
	Value string
	Count int64
}

// SearchBM25 runs a full-text search with the given expression and
// filters, ordered by descending relevance score.
func (r *Repository) SearchBM25(ctx context.Context, expression string, filters domain.SearchFilters, limit int) ([]domain.ScoredProduct, error) {
	predicate, params := composePredicate(expression, filters)
	query := "SELECT " + productColumns + ", paradedb.score(id) AS relevance_score" +
		" FROM products WHERE " + predicate +
		" ORDER BY relevance_score DESC, id ASC LIMIT ?"
	params = append(params, limit)

	var rows []scoredProductRow
	if err := r.db.WithContext(ctx).Raw(query, params...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("searching products: %w", err)
	}

	results := make([]domain.ScoredProduct, len(rows))
	for i, row := range rows {
		results[i] = domain.ScoredProduct{
			Product:        *row.ToDomain(),
			RelevanceScore: row.RelevanceScore,
		}
	}

	return results, nil
}

// SearchLike runs the baseline pattern-match search used by the
// comparison endpoint. LIKE has no ranking, so relevance scores stay
// zero and rows come back in ID order.
func (r *Repository) SearchLike(ctx context.Context, query string, limit int) ([]domain.ScoredProduct, error) {
	pattern := "%" + query + "%"
	stmt := "SELECT " + productColumns +
		" FROM products WHERE name ILIKE ? OR description ILIKE ?" +
		" ORDER BY id ASC LIMIT ?"

	var rows []scoredProductRow
	if err := r.db.WithContext(ctx).Raw(stmt, pattern, pattern, limit).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("searching products with like: %w", err)
	}

	results := make([]domain.ScoredProduct, len(rows))
	for i, row := range rows {
		results[i] = domain.ScoredProduct{Product: *row.ToDomain()}
	}

	return results, nil
}

// SimilarTo finds the nearest neighbors of the source product's
// embedding by cosine distance. The source itself and rows without an
// embedding are excluded; ties on distance resolve by ascending ID.
func (r *Repository) SimilarTo(ctx context.Context, source *domain.Product, limit int) ([]domain.SimilarProduct, error) {
	if source == nil || !source.HasEmbedding() {
		return []domain.SimilarProduct{}, nil
	}

	vec := pgvector.NewVector(source.Embedding)
	stmt := "SELECT " + productColumns + ", embedding <=> ? AS distance" +
		" FROM products WHERE id <> ? AND embedding IS NOT NULL" +
		" ORDER BY distance ASC, id ASC LIMIT ?"

	var rows []similarProductRow
	if err := r.db.WithContext(ctx).Raw(stmt, vec, source.ID, limit).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("finding similar products: %w", err)
	}

	results := make([]domain.SimilarProduct, len(rows))
	for i, row := range rows {
		results[i] = domain.SimilarProduct{
			Product:         *row.ToDomain(),
			Distance:        row.Distance,
			SimilarityScore: domain.SimilarityFromDistance(row.Distance),
		}
	}

	return results, nil
}

// SimilarToVector finds the nearest neighbors of an arbitrary query
// vector. Unlike SimilarTo there is no source row to exclude.
func (r *Repository) SimilarToVector(ctx context.Context, embedding []float32, limit int) ([]domain.SimilarProduct, error) {
	if len(embedding) == 0 {
		return []domain.SimilarProduct{}, nil
	}

	vec := pgvector.NewVector(embedding)
	stmt := "SELECT " + productColumns + ", embedding <=> ? AS distance" +
		" FROM products WHERE embedding IS NOT NULL" +
		" ORDER BY distance ASC, id ASC LIMIT ?"

	var rows []similarProductRow
	if err := r.db.WithContext(ctx).Raw(stmt, vec, limit).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("finding products near vector: %w", err)
	}

	results := make([]domain.SimilarProduct, len(rows))
	for i, row := range rows {
		results[i] = domain.SimilarProduct{
			Product:         *row.ToDomain(),
			Distance:        row.Distance,
			SimilarityScore: domain.SimilarityFromDistance(row.Distance),
		}
	}

	return results, nil
}

// Facets computes grouped counts over category, brand and price for
// the exact predicate the main search would use.
func (r *Repository) Facets(ctx context.Context, expression string, filters domain.SearchFilters) (*domain.Facets, error) {
	predicate, params := composePredicate(expression, filters)

	categories, err := r.facetQuery(ctx,
		"SELECT category AS value, COUNT(*) AS count FROM products WHERE "+predicate+
			" GROUP BY category ORDER BY count DESC, value ASC", params)
	if err != nil {
		return nil, fmt.Errorf("computing category facets: %w", err)
	}

	brands, err := r.facetQuery(ctx,
		"SELECT brand AS value, COUNT(*) AS count FROM products WHERE "+predicate+
			" GROUP BY brand ORDER BY count DESC, value ASC", params)
	if err != nil {
		return nil, fmt.Errorf("computing brand facets: %w", err)
	}

	// Null prices drop out of the price dimension only; the same rows
	// still count toward category and brand.
	prices, err := r.facetQuery(ctx,
		"SELECT "+priceBucketCase+" AS value, COUNT(*) AS count FROM products WHERE "+predicate+
			" AND price IS NOT NULL GROUP BY value ORDER BY MIN(price)", params)
	if err != nil {
		return nil, fmt.Errorf("computing price facets: %w", err)
	}

	return &domain.Facets{
		Categories:  categories,
		Brands:      brands,
		PriceRanges: prices,
	}, nil
}

func (r *Repository) facetQuery(ctx context.Context, stmt string, params []any) ([]domain.FacetValue, error) {
	var rows []facetRow
	if err := r.db.WithContext(ctx).Raw(stmt, params...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	values := make([]domain.FacetValue, len(rows))
	for i, row := range rows {
		values[i] = domain.FacetValue{Value: row.Value, Count: row.Count}
	}

	return values, nil
}

// GetProduct retrieves a single product by ID.
func (r *Repository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var model ProductModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not found
		}

		return nil, fmt.Errorf("getting product by id: %w", err)
	}

	return model.ToDomain(), nil
}

// ProductReviews retrieves the most helpful reviews for a product,
// newest first among equally helpful ones.
func (r *Repository) ProductReviews(ctx context.Context, productID int64, limit int) ([]domain.Review, error) {
	var models []ReviewModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("helpful_votes DESC, created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("getting product reviews: %w", err)
	}

	reviews := make([]domain.Review, len(models))
	for i := range models {
		reviews[i] = models[i].ToDomain()
	}

	return reviews, nil
}

// Categories lists all distinct product categories in order.
func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Raw("SELECT DISTINCT category FROM products ORDER BY category").
		Scan(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	return categories, nil
}

// Ping verifies the store is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

type regionSalesRow struct {
	Region        string
	OrderCount    int64
	TotalRevenue  float64
	AvgOrderValue float64
}

// SalesByRegion aggregates orders per region, highest revenue first.
func (r *Repository) SalesByRegion(ctx context.Context) ([]domain.RegionSales, error) {
	stmt := `
		SELECT
			region,
			COUNT(*) AS order_count,
			SUM(total_price)::numeric(10,2) AS total_revenue,
			AVG(total_price)::numeric(10,2) AS avg_order_value
		FROM orders
		GROUP BY region
		ORDER BY total_revenue DESC, region ASC`

	var rows []regionSalesRow
	if err := r.db.WithContext(ctx).Raw(stmt).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("aggregating sales by region: %w", err)
	}

	results := make([]domain.RegionSales, len(rows))
	for i, row := range rows {
		results[i] = domain.RegionSales{
			Region:        row.Region,
			OrderCount:    row.OrderCount,
			TotalRevenue:  row.TotalRevenue,
			AvgOrderValue: row.AvgOrderValue,
		}
	}

	return results, nil
}

type productSalesRow struct {
	Name         string
	Category     string
	UnitsSold    int64
	TotalRevenue float64
}

// TopProducts aggregates completed orders per product, highest revenue
// first. One order row counts as one unit sold.
func (r *Repository) TopProducts(ctx context.Context, limit int) ([]domain.ProductSales, error) {
	statuses := make([]string, len(domain.CompletedOrderStatuses))
	for i, s := range domain.CompletedOrderStatuses {
		statuses[i] = string(s)
	}

	stmt := `
		SELECT
			p.name,
			p.category,
			COUNT(o.id) AS units_sold,
			SUM(o.total_price)::numeric(10,2) AS total_revenue
		FROM orders o
		JOIN products p ON o.product_id = p.id
		WHERE o.status IN ?
		GROUP BY p.id, p.name, p.category
		ORDER BY total_revenue DESC, p.id ASC
		LIMIT ?`

	var rows []productSalesRow
	if err := r.db.WithContext(ctx).Raw(stmt, statuses, limit).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("aggregating top products: %w", err)
	}

	results := make([]domain.ProductSales, len(rows))
	for i, row := range rows {
		results[i] = domain.ProductSales{
			Name:         row.Name,
			Category:     row.Category,
			UnitsSold:    row.UnitsSold,
			TotalRevenue: row.TotalRevenue,
		}
	}

	return results, nil
}

type categoryStatsRow struct {
	Category     string
	ProductCount int64
	TotalOrders  int64
	TotalRevenue float64
	AvgRating    sql.NullFloat64
}

// CategoryPerformance aggregates catalog and order stats per category,
// highest revenue first. Categories without orders still appear, with
// zero revenue.
func (r *Repository) CategoryPerformance(ctx context.Context) ([]domain.CategoryStats, error) {
	stmt := `
		SELECT
			p.category,
			COUNT(DISTINCT p.id) AS product_count,
			COUNT(o.id) AS total_orders,
			COALESCE(SUM(o.total_price), 0)::numeric(10,2) AS total_revenue,
			AVG(p.rating)::numeric(2,1) AS avg_rating
		FROM products p
		LEFT JOIN orders o ON p.id = o.product_id
		GROUP BY p.category
		ORDER BY total_revenue DESC, p.category ASC`

	var rows []categoryStatsRow
	if err := r.db.WithContext(ctx).Raw(stmt).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("aggregating category performance: %w", err)
	}

	results := make([]domain.CategoryStats, len(rows))
	for i, row := range rows {
		results[i] = domain.CategoryStats{
			Category:     row.Category,
			ProductCount: row.ProductCount,
			TotalOrders:  row.TotalOrders,
			TotalRevenue: row.TotalRevenue,
			AvgRating:    row.AvgRating.Float64,
		}
	}

	return results, nil
}

// CountProducts returns the catalog size.
func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ProductModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}

	return count, nil
}

// RandomProducts samples n products from the catalog.
func (r *Repository) RandomProducts(ctx context.Context, n int) ([]domain.Product, error) {
	stmt := "SELECT " + productColumns + " FROM products ORDER BY random() LIMIT ?"

	var models []ProductModel
	if err := r.db.WithContext(ctx).Raw(stmt, n).Scan(&models).Error; err != nil {
		return nil, fmt.Errorf("sampling products: %w", err)
	}

	products := make([]domain.Product, len(models))
	for i := range models {
		products[i] = *models[i].ToDomain()
	}

	return products, nil
}

// BulkUpsertProducts creates or updates products in batches, keyed by
// ID so reseeding is idempotent.
func (r *Repository) BulkUpsertProducts(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := ProductsFromDomain(products)
	for _, m := range models {
		m.UpdatedAt = now
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "category", "brand", "tags",
			"price", "stock_quantity", "rating", "review_count",
			"embedding", "updated_at",
		}),
	}).CreateInBatches(models, 100).Error
	if err != nil {
		return fmt.Errorf("bulk upserting products: %w", err)
	}

	// Seeded rows carry explicit IDs, so the serial sequence must be
	// moved past them before the simulator inserts anything.
	err = r.db.WithContext(ctx).Exec(
		"SELECT setval(pg_get_serial_sequence('products', 'id'), (SELECT COALESCE(MAX(id), 1) FROM products))",
	).Error
	if err != nil {
		return fmt.Errorf("advancing products sequence: %w", err)
	}

	return nil
}

// InsertOrders appends new orders.
func (r *Repository) InsertOrders(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	models := make([]*OrderModel, len(orders))
	for i := range orders {
		models[i] = OrderFromDomain(&orders[i])
	}

	if err := r.db.WithContext(ctx).CreateInBatches(models, 500).Error; err != nil {
		return fmt.Errorf("inserting orders: %w", err)
	}

	return nil
}

// InsertReviews appends new reviews.
func (r *Repository) InsertReviews(ctx context.Context, reviews []domain.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	models := make([]*ReviewModel, len(reviews))
	for i := range reviews {
		models[i] = ReviewFromDomain(&reviews[i])
	}

	if err := r.db.WithContext(ctx).CreateInBatches(models, 500).Error; err != nil {
		return fmt.Errorf("inserting reviews: %w", err)
	}

	return nil
}

// ResetDemoData removes all products, orders and reviews and resets
// ID sequences.
func (r *Repository) ResetDemoData(ctx context.Context) error {
	err := r.db.WithContext(ctx).Exec(
		"TRUNCATE TABLE reviews, orders, products RESTART IDENTITY CASCADE",
	).Error
	if err != nil {
		return fmt.Errorf("resetting demo data: %w", err)
	}

	return nil
}
