package postgres

import (
	"database/sql"
	"time"

	"ecommerce-search-service/internal/domain"

	"github.com/lib/pq"
)

// ProductModel is the GORM model for the products table.
//
// Price and Rating are nullable NUMERIC columns, so they scan through
// sql.NullFloat64; ToDomain converts NULL to 0 in one place, which is
// the JSON convention for missing numbers everywhere in this service.
type ProductModel struct {
	ID            int64           `gorm:"primaryKey"`
	Name          string          `gorm:"type:varchar(255);not null"`
	Description   string          `gorm:"type:text"`
	Category      string          `gorm:"type:varchar(100);index"`
	Brand         string          `gorm:"type:varchar(100)"`
	Tags          pq.StringArray  `gorm:"type:text[]"`
	Price         sql.NullFloat64 `gorm:"type:decimal(10,2)"`
	StockQuantity int             `gorm:"default:0"`
	Rating        sql.NullFloat64 `gorm:"type:decimal(2,1)"`
	ReviewCount   int             `gorm:"default:0"`

	// Embedding stays NULL until the seeder computes vectors; such
	// products are absent from similarity results.
	Embedding NullVector `gorm:"type:vector(384)"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for ProductModel.
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts ProductModel to domain.Product.
func (m *ProductModel) ToDomain() *domain.Product {
	p := &domain.Product{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Category:      m.Category,
		Brand:         m.Brand,
		Tags:          m.Tags,
		Price:         m.Price.Float64,
		StockQuantity: m.StockQuantity,
		Rating:        m.Rating.Float64,
		ReviewCount:   m.ReviewCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Embedding.Valid {
		p.Embedding = m.Embedding.Vector.Slice()
	}

	return p
}

// ProductFromDomain creates a ProductModel from domain.Product.
func ProductFromDomain(p *domain.Product) *ProductModel {
	return &ProductModel{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Brand:         p.Brand,
		Tags:          p.Tags,
		Price:         sql.NullFloat64{Float64: p.Price, Valid: true},
		StockQuantity: p.StockQuantity,
		Rating:        sql.NullFloat64{Float64: p.Rating, Valid: true},
		ReviewCount:   p.ReviewCount,
		Embedding:     NewNullVector(p.Embedding),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ProductsFromDomain converts a slice of domain.Product to ProductModels.
func ProductsFromDomain(products []domain.Product) []*ProductModel {
	models := make([]*ProductModel, len(products))
	for i := range products {
		models[i] = ProductFromDomain(&products[i])
	}

	return models
}

// OrderModel is the GORM model for the orders table.
type OrderModel struct {
	ID         int64     `gorm:"primaryKey"`
	ProductID  int64     `gorm:"not null;index"`
	Quantity   int       `gorm:"default:1"`
	TotalPrice float64   `gorm:"type:decimal(10,2);not null"`
	Region     string    `gorm:"type:varchar(50);not null;index"`
	Status     string    `gorm:"type:varchar(20);not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for OrderModel.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderFromDomain creates an OrderModel from domain.Order.
func OrderFromDomain(o *domain.Order) *OrderModel {
	return &OrderModel{
		ID:         o.ID,
		ProductID:  o.ProductID,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice,
		Region:     o.Region,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
	}
}

// ReviewModel is the GORM model for the reviews table.
type ReviewModel struct {
	ID           int64     `gorm:"primaryKey"`
	ProductID    int64     `gorm:"not null;index"`
	Rating       int       `gorm:"not null"`
	Title        string    `gorm:"type:varchar(255)"`
	Content      string    `gorm:"type:text"`
	HelpfulVotes int       `gorm:"default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for ReviewModel.
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts ReviewModel to domain.Review.
func (m *ReviewModel) ToDomain() domain.Review {
	return domain.Review{
		ID:           m.ID,
		ProductID:    m.ProductID,
		Rating:       m.Rating,
		Title:        m.Title,
		Content:      m.Content,
		HelpfulVotes: m.HelpfulVotes,
		CreatedAt:    m.CreatedAt,
	}
}

// ReviewFromDomain creates a ReviewModel from domain.Review.
func ReviewFromDomain(r *domain.Review) *ReviewModel {
	return &ReviewModel{
		ID:           r.ID,
		ProductID:    r.ProductID,
		Rating:       r.Rating,
		Title:        r.Title,
		Content:      r.Content,
		HelpfulVotes: r.HelpfulVotes,
		CreatedAt:    r.CreatedAt,
	}
}
