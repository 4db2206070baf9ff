package embed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/balisaldo/saldo/internal/common"
	"github.com/balisaldo/saldo/internal/service"
)

// Generator wraps a provider client with rate limiting, a per-call timeout,
// and retry on transient failures. It implements service.Embedder.
type Generator struct {
	client      Client
	logger      *slog.Logger
	rateLimiter *rateLimiter
	retryOpts   service.RetryOptions
	timeout     time.Duration
}

// NewGenerator creates an embedding generator for the configured provider.
func NewGenerator(ctx context.Context, cfg Config, logger *slog.Logger) (*Generator, error) {
	var client Client
	var err error

	switch strings.ToLower(cfg.Provider) {
	case "", "openai":
		client, err = newOpenAIClient(cfg)
	case "gemini":
		client, err = newGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported embedding provider: %s", common.ErrInvalidConfig, cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create embedding client: %w", err)
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Generator{
		client:      client,
		logger:      logger,
		rateLimiter: newRateLimiter(cfg.RateLimit),
		retryOpts:   retryOpts,
		timeout:     timeout,
	}, nil
}

// Embed produces a vector for the given text, retrying transient provider
// failures. The whole operation is bounded by the configured timeout.
func (g *Generator) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var embedding []float32
	err := common.WithRetry(ctx, func() error {
		if err := g.rateLimiter.wait(ctx); err != nil {
			return err
		}

		vec, embedErr := g.client.Embed(ctx, text)
		if embedErr != nil {
			return embedErr
		}
		embedding = vec
		return nil
	}, g.retryOpts)

	if err != nil {
		return nil, err
	}

	g.logger.Debug("generated embedding",
		"text_length", len(text),
		"dimensions", len(embedding))

	return embedding, nil
}

// Close releases generator resources.
func (g *Generator) Close() {
	g.rateLimiter.stop()
}
