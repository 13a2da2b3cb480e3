// Package seed generates the demo catalog: products, orders and
// reviews with realistic names, prices and distributions.
package seed

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"ecommerce-search-service/internal/domain"
)

// Generator produces deterministic demo data. The same seed always
// yields the same catalog, so reseeding an environment is repeatable.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator with the given random seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Products generates n products with IDs 1..n. IDs are pre-assigned so
// orders and reviews can reference them before anything is inserted.
func (g *Generator) Products(n int) []domain.Product {
	products := make([]domain.Product, n)
	now := time.Now().UTC()

	for i := range products {
		vocab := catalogVocab[g.rng.Intn(len(catalogVocab))]
		adjective := pick(g.rng, vocab.adjectives)
		noun := pick(g.rng, vocab.nouns)
		brand := pick(g.rng, vocab.brands)
		feature := pick(g.rng, vocab.features)
		secondFeature := pick(g.rng, vocab.features)

		products[i] = domain.Product{
			ID:          int64(i + 1),
			Name:        adjective + " " + noun,
			Description: fmt.Sprintf("%s %s by %s. Features %s and %s.", adjective, noun, brand, feature, secondFeature),
			Category:    vocab.name,
			Brand:       brand,
			Tags: []string{
				strings.ToLower(vocab.name),
				strings.ToLower(strings.Fields(noun)[0]),
			},
			Price:         roundPrice(vocab.minPrice + g.rng.Float64()*(vocab.maxPrice-vocab.minPrice)),
			StockQuantity: g.rng.Intn(201),
			Rating:        math.Round((3.0+g.rng.Float64()*2.0)*10) / 10,
			ReviewCount:   g.rng.Intn(501),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	}

	return products
}

// Orders generates n orders against the given products. CreatedAt is
// spread uniformly over the backdate window ending now; a zero
// backdate stamps everything at the current time.
func (g *Generator) Orders(products []domain.Product, n int, backdate time.Duration) []domain.Order {
	if len(products) == 0 || n <= 0 {
		return []domain.Order{}
	}

	now := time.Now().UTC()
	orders := make([]domain.Order, n)

	for i := range orders {
		product := products[g.rng.Intn(len(products))]
		quantity := 1 + g.rng.Intn(3)

		createdAt := now
		if backdate > 0 {
			createdAt = now.Add(-time.Duration(g.rng.Int63n(int64(backdate))))
		}

		orders[i] = domain.Order{
			ProductID:  product.ID,
			Quantity:   quantity,
			TotalPrice: roundPrice(product.Price * float64(quantity)),
			Region:     pick(g.rng, regions),
			Status:     g.orderStatus(),
			CreatedAt:  createdAt,
		}
	}

	return orders
}

// orderStatus draws a status with most orders completed, so the
// analytics endpoints have something to show.
func (g *Generator) orderStatus() domain.OrderStatus {
	roll := g.rng.Float64()
	switch {
	case roll < 0.45:
		return domain.OrderStatusDelivered
	case roll < 0.65:
		return domain.OrderStatusShipped
	case roll < 0.90:
		return domain.OrderStatusPending
	default:
		return domain.OrderStatusCancelled
	}
}

// Reviews generates n reviews against the given products, skewed
// positive the way real product reviews are.
func (g *Generator) Reviews(products []domain.Product, n int) []domain.Review {
	if len(products) == 0 || n <= 0 {
		return []domain.Review{}
	}

	now := time.Now().UTC()
	reviews := make([]domain.Review, n)

	for i := range reviews {
		product := products[g.rng.Intn(len(products))]
		rating := g.reviewRating()
		template := reviewTemplates[sentimentBand(rating)]

		reviews[i] = domain.Review{
			ProductID:    product.ID,
			Rating:       rating,
			Title:        pick(g.rng, template.titles),
			Content:      pick(g.rng, template.bodies),
			HelpfulVotes: g.rng.Intn(51),
			CreatedAt:    now.Add(-time.Duration(g.rng.Int63n(int64(180 * 24 * time.Hour)))),
		}
	}

	return reviews
}

func (g *Generator) reviewRating() int {
	roll := g.rng.Float64()
	switch {
	case roll < 0.40:
		return 5
	case roll < 0.70:
		return 4
	case roll < 0.85:
		return 3
	case roll < 0.95:
		return 2
	default:
		return 1
	}
}

func sentimentBand(rating int) int {
	switch {
	case rating <= 2:
		return 0
	case rating == 3:
		return 1
	default:
		return 2
	}
}

// EmbedText is the text a product is embedded from, shared by the
// embedding server path and the local fallback so both produce
// comparable vectors.
func EmbedText(p domain.Product) string {
	return p.Name + ". " + p.Description
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
