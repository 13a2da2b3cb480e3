// Package embeddings implements the HTTP client for the embedding
// server that turns product text and search queries into vectors.
package embeddings

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// Endpoint is the API path for the embedding endpoint.
const Endpoint = "/api/embed"

// Config holds connection settings for the embedding server.
type Config struct {
	BaseURL string
	Model   string
	// Dimension is the expected vector length. Embeddings of any other
	// length are rejected before they can reach the vector column.
	Dimension int
	Timeout   time.Duration
	Retry     RetryConfig
	CB        CBConfig
}

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxAttempts int
	WaitTime    time.Duration
	MaxWaitTime time.Duration
}

// CBConfig holds circuit breaker configuration.
type CBConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
}

// Client implements domain.EmbeddingProvider against an Ollama-style
// embedding server.
type Client struct {
	name      string
	model     string
	dimension int
	client    *resty.Client
	cb        *gobreaker.CircuitBreaker[*resty.Response]
	logger    *zap.Logger
}

// New creates a new embedding client.
func New(cfg Config, logger *zap.Logger) *Client {
	restyClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retry.MaxAttempts).
		SetRetryWaitTime(cfg.Retry.WaitTime).
		SetRetryMaxWaitTime(cfg.Retry.MaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Retry on network errors or 5xx status codes
			if err != nil {
				return true
			}

			return r.StatusCode() >= 500
		})

	settings := gobreaker.Settings{
		Name:        "embeddings",
		MaxRequests: cfg.CB.MaxRequests,
		Interval:    cfg.CB.Interval,
		Timeout:     cfg.CB.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= 3 && failureRatio >= cfg.CB.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("embedding circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &Client{
		name:      "embeddings",
		model:     cfg.Model,
		dimension: cfg.Dimension,
		client:    restyClient,
		cb:        gobreaker.NewCircuitBreaker[*resty.Response](settings),
		logger:    logger,
	}
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return c.name
}

// Embed converts the given texts into vectors, one per input text in
// input order.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		var result embedResponse
		r, err := c.client.R().
			SetContext(ctx).
			SetBody(embedRequest{Model: c.model, Input: texts}).
			SetResult(&result).
			Post(Endpoint)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("embedding server returned status %d", r.StatusCode())
		}

		return r, nil
	})

	if err != nil {
		c.logger.Warn("embed request failed",
			zap.Int("texts", len(texts)),
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("embedding %d texts: %w", len(texts), err)
	}

	result := resp.Result().(*embedResponse)
	if len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding server returned %d vectors for %d texts",
			len(result.Embeddings), len(texts))
	}
	if c.dimension > 0 {
		for i, vec := range result.Embeddings {
			if len(vec) != c.dimension {
				return nil, fmt.Errorf("embedding %d has dimension %d, expected %d",
					i, len(vec), c.dimension)
			}
		}
	}

	c.logger.Debug("embed request completed",
		zap.Int("texts", len(texts)),
	)

	return result.Embeddings, nil
}

// HealthCheck verifies the embedding server is accessible.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}

	return nil
}
