// Package domain contains the core search and catalog logic.
// This package has no external dependencies (only stdlib).
package domain

import (
	"time"
)

// Product represents a catalog product.
//
// NUMERIC columns that are NULL in the store arrive here as 0; that
// conversion happens exactly once, at the store boundary.
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Brand         string    `json:"brand"`
	Tags          []string  `json:"tags,omitempty"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`

	// Embedding is the product's vector representation. It is written
	// by the seeder and read back only through similarity queries; the
	// JSON API never exposes it.
	Embedding []float32 `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasEmbedding reports whether the product carries a vector.
func (p *Product) HasEmbedding() bool {
	return len(p.Embedding) > 0
}

// Review is a customer review attached to a product.
type Review struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	Rating       int       `json:"rating"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	HelpfulVotes int       `json:"helpful_votes"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProductDetail is a product together with its most helpful reviews.
type ProductDetail struct {
	Product Product
	Reviews []Review
}

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// CompletedOrderStatuses are the statuses counted as sales by the
// top-products analytics.
var CompletedOrderStatuses = []OrderStatus{OrderStatusDelivered, OrderStatusShipped}

// Order is a purchase record. Orders enter through the seeder and the
// demo order simulator; the HTTP API only reads them for analytics.
type Order struct {
	ID         int64
	ProductID  int64
	Quantity   int
	TotalPrice float64
	Region     string
	Status     OrderStatus
	CreatedAt  time.Time
}
