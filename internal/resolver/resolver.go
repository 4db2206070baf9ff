// Package resolver orchestrates transaction categorization: embedding-based
// nearest-neighbor suggestion with deterministic keyword fallback.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/balisaldo/saldo/internal/classify"
	"github.com/balisaldo/saldo/internal/common"
	"github.com/balisaldo/saldo/internal/model"
	"github.com/balisaldo/saldo/internal/service"
	"github.com/balisaldo/saldo/internal/similarity"
)

// Config holds the resolver's tuning knobs.
type Config struct {
	// SimilarityThreshold gates the nearest-neighbor path. A candidate's
	// similarity must strictly exceed it.
	SimilarityThreshold float64
	// CandidateLimit caps the similarity working set fetched per query.
	CandidateLimit int
	// TopK is how many ranked candidates to retain per query.
	TopK int
}

// DefaultConfig returns the standard tuning values.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: 0.85,
		CandidateLimit:      1000,
		TopK:                3,
	}
}

// Resolver decides a category for a transaction description. It holds no
// persistent state of its own; everything durable lives in the store.
type Resolver struct {
	store      service.EmbeddingStore
	embedder   service.Embedder
	classifier *classify.KeywordClassifier
	logger     *slog.Logger
	cfg        Config
	writeLocks keyedLocks
}

// New creates a resolver. All collaborators are required.
func New(store service.EmbeddingStore, embedder service.Embedder, classifier *classify.KeywordClassifier, cfg Config, logger *slog.Logger) (*Resolver, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", common.ErrInvalidConfig)
	}
	if embedder == nil {
		return nil, fmt.Errorf("%w: embedder is required", common.ErrInvalidConfig)
	}
	if classifier == nil {
		return nil, fmt.Errorf("%w: classifier is required", common.ErrInvalidConfig)
	}
	if cfg.SimilarityThreshold <= 0 || cfg.SimilarityThreshold > 1 {
		return nil, fmt.Errorf("%w: similarity threshold must be in (0, 1]", common.ErrInvalidConfig)
	}
	if cfg.CandidateLimit <= 0 {
		return nil, fmt.Errorf("%w: candidate limit must be positive", common.ErrInvalidConfig)
	}
	if cfg.TopK <= 0 {
		return nil, fmt.Errorf("%w: topK must be positive", common.ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{
		store:      store,
		embedder:   embedder,
		classifier: classifier,
		cfg:        cfg,
		logger:     logger,
	}, nil
}

// ResolveCategory suggests a category for a description. It always returns
// an answer: the nearest-neighbor suggestion when a stored description is
// similar enough, otherwise the keyword classifier's verdict, otherwise the
// uncategorized sentinel. Provider and store read failures degrade rather
// than error.
func (r *Resolver) ResolveCategory(ctx context.Context, description string) model.Category {
	normalized := model.NormalizeDescription(description)
	if normalized == "" {
		return model.CategoryUncategorized
	}

	if category, ok := r.resolveBySimilarity(ctx, normalized); ok {
		return category
	}

	return r.classifier.Classify(normalized)
}

// resolveBySimilarity runs the nearest-neighbor path. The second return is
// false when the path produced nothing confident, for any reason.
func (r *Resolver) resolveBySimilarity(ctx context.Context, normalized string) (model.Category, bool) {
	queryEmbedding, err := r.embedder.Embed(ctx, normalized)
	if err != nil {
		// Permanent failures point at misconfiguration and should alert;
		// transient ones are routine. Either way resolution degrades to
		// keyword matching instead of failing.
		var retryable *common.RetryableError
		if errors.As(err, &retryable) && !retryable.Retryable {
			r.logger.Error("embedding provider rejected request",
				"description", normalized,
				"error", err)
		} else {
			r.logger.Warn("embedding unavailable, falling back to keywords",
				"description", normalized,
				"error", err)
		}
		return model.CategoryUncategorized, false
	}

	candidates, err := r.store.TopCandidates(ctx, r.cfg.CandidateLimit)
	if err != nil {
		r.logger.Warn("candidate fetch failed, falling back to keywords",
			"description", normalized,
			"error", err)
		return model.CategoryUncategorized, false
	}
	if len(candidates) == 0 {
		return model.CategoryUncategorized, false
	}

	results := similarity.Rank(queryEmbedding, candidates, r.cfg.TopK)
	if len(results) == 0 {
		return model.CategoryUncategorized, false
	}

	mostSimilar := results[0]
	if mostSimilar.Similarity > r.cfg.SimilarityThreshold {
		r.logger.Debug("categorized by similarity",
			"description", normalized,
			"matched", mostSimilar.Description,
			"category", mostSimilar.Category.String(),
			"similarity", mostSimilar.Similarity)
		return mostSimilar.Category, true
	}

	return model.CategoryUncategorized, false
}

// ConfirmCategory records a user-confirmed category for a description,
// reinforcing the similarity store. The stored embedding is reused when this
// exact description already has one; otherwise a fresh one is computed.
// Unlike resolution, confirmation errors propagate: silently dropping a
// user's correction is not acceptable.
func (r *Resolver) ConfirmCategory(ctx context.Context, description string, category model.Category) error {
	if !category.Valid() || category == model.CategoryUncategorized {
		return fmt.Errorf("%w: cannot confirm category %q", common.ErrInvalidInput, category)
	}

	normalized := model.NormalizeDescription(description)
	if normalized == "" {
		return fmt.Errorf("%w: description is empty", common.ErrInvalidInput)
	}

	// Upserts for the same description are read-modify-write against the
	// usage count; serialize them per key.
	unlock := r.writeLocks.lock(normalized)
	defer unlock()

	embedding, err := r.embeddingFor(ctx, normalized)
	if err != nil {
		return fmt.Errorf("failed to embed %q: %w", normalized, err)
	}

	if err := r.store.UpsertEmbedding(ctx, normalized, category, embedding); err != nil {
		return fmt.Errorf("failed to store confirmation for %q: %w", normalized, err)
	}

	r.logger.Info("confirmed category",
		"description", normalized,
		"category", category.String())
	return nil
}

// embeddingFor returns the cached vector for a description, computing one
// only when no record exists yet.
func (r *Resolver) embeddingFor(ctx context.Context, normalized string) ([]float32, error) {
	record, err := r.store.GetEmbedding(ctx, normalized)
	if err == nil {
		return record.Embedding, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	return r.embedder.Embed(ctx, normalized)
}

// ResolveBatch resolves many descriptions with bounded concurrency.
// Resolutions are read-only against the store, so running them in parallel
// is safe. Results are positionally aligned with the input.
func (r *Resolver) ResolveBatch(ctx context.Context, descriptions []string, concurrency int) []model.Category {
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]model.Category, len(descriptions))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, description := range descriptions {
		wg.Add(1)
		go func(i int, description string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = r.ResolveCategory(ctx, description)
		}(i, description)
	}

	wg.Wait()
	return results
}
