// Package embed provides clients for external text-embedding APIs.
package embed

import (
	"context"
	"time"
)

// Client defines the interface for embedding providers.
type Client interface {
	// Embed returns a fixed-length vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Config holds configuration for the embedding generator.
type Config struct {
	Provider   string
	APIKey     string
	Model      string
	Timeout    time.Duration
	RetryDelay time.Duration
	MaxRetries int
	RateLimit  int // requests per minute
}
