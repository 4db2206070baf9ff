// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/balisaldo/saldo/internal/model"
)

// EmbeddingStore is the persistence contract for categorized description
// embeddings. Implementations must keep at most one record per description.
type EmbeddingStore interface {
	// GetEmbedding returns the record for a normalized description, or an
	// error wrapping common.ErrNotFound when none exists.
	GetEmbedding(ctx context.Context, description string) (*model.EmbeddingRecord, error)

	// UpsertEmbedding inserts a new record with usage count 1, or reinforces
	// an existing one: category and last-used time are updated and the usage
	// count incremented, while the stored embedding is left untouched.
	UpsertEmbedding(ctx context.Context, description string, category model.Category, embedding []float32) error

	// TopCandidates returns up to limit records ordered by usage count
	// descending, then last-used time descending.
	TopCandidates(ctx context.Context, limit int) ([]model.EmbeddingRecord, error)

	// DeduplicateEmbeddings collapses any duplicate descriptions into a
	// single record, keeping the most recently used category and embedding
	// and summing usage counts. Returns the number of rows removed.
	DeduplicateEmbeddings(ctx context.Context) (int64, error)
}

// Storage is the full persistence contract, embedding store plus the
// imported-transaction tables and database management.
type Storage interface {
	EmbeddingStore

	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	GetTransactionsByIDs(ctx context.Context, ids []int64) ([]model.Transaction, error)
	UpdateTransactionCategory(ctx context.Context, ids []int64, category model.Category) (int64, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Embedder turns a text description into a fixed-length vector.
// Implementations wrap external embedding APIs and may fail transiently.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Resolver is the categorization entry point exposed to callers.
type Resolver interface {
	ResolveCategory(ctx context.Context, description string) model.Category
	ConfirmCategory(ctx context.Context, description string, category model.Category) error
}

// RetryOptions configures retry behavior for transient failures.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
