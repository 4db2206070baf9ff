package storage

import (
	"context"
	"testing"
	"time"

	"github.com/balisaldo/saldo/internal/common"
	"github.com/balisaldo/saldo/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestGetEmbedding_NotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetEmbedding(context.Background(), "nothing here")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpsertEmbedding_Insert(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	err := store.UpsertEmbedding(ctx, "Pepito Market run", model.CategoryGroceries, []float32{0.1, 0.2})
	require.NoError(t, err)

	record, err := store.GetEmbedding(ctx, "Pepito Market run")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryGroceries, record.Category)
	assert.Equal(t, []float32{0.1, 0.2}, record.Embedding)
	assert.Equal(t, 1, record.UsageCount)
	assert.False(t, record.LastUsedAt.IsZero())
}

func TestUpsertEmbedding_IdempotentArguments(t *testing.T) {
	// Same arguments twice: category and embedding unchanged, usage count
	// increments once per call, still a single row.
	store := createTestStorage(t)
	ctx := context.Background()

	embedding := []float32{0.5, 0.5, 0.5}
	require.NoError(t, store.UpsertEmbedding(ctx, "Warung Bambu Lunch", model.CategoryCafeRestaurant, embedding))
	require.NoError(t, store.UpsertEmbedding(ctx, "Warung Bambu Lunch", model.CategoryCafeRestaurant, embedding))

	record, err := store.GetEmbedding(ctx, "Warung Bambu Lunch")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryCafeRestaurant, record.Category)
	assert.Equal(t, embedding, record.Embedding)
	assert.Equal(t, 2, record.UsageCount)

	count, err := store.CountEmbeddings(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUpsertEmbedding_CategoryChangeKeepsEmbedding(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	original := []float32{1, 0, 0}
	require.NoError(t, store.UpsertEmbedding(ctx, "Nirmala Kuta", model.CategorySupermarket, original))

	// A correction carries a different vector, but the stored one wins:
	// embeddings for a fixed description are stable, only the judgment moves.
	require.NoError(t, store.UpsertEmbedding(ctx, "Nirmala Kuta", model.CategoryGroceries, []float32{0, 1, 0}))

	record, err := store.GetEmbedding(ctx, "Nirmala Kuta")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryGroceries, record.Category)
	assert.Equal(t, original, record.Embedding)
	assert.Equal(t, 2, record.UsageCount)
}

func TestUpsertEmbedding_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	err := store.UpsertEmbedding(ctx, "", model.CategoryBills, []float32{1})
	assert.ErrorIs(t, err, ErrEmptyString)

	err = store.UpsertEmbedding(ctx, "desc", model.Category("Nonsense"), []float32{1})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	err = store.UpsertEmbedding(ctx, "desc", model.CategoryBills, nil)
	assert.ErrorIs(t, err, ErrInvalidEmbedding)
}

func TestTopCandidates_Ordering(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// Three records with distinct usage counts.
	require.NoError(t, store.UpsertEmbedding(ctx, "rare", model.CategoryBills, []float32{1}))

	require.NoError(t, store.UpsertEmbedding(ctx, "frequent", model.CategoryGroceries, []float32{1}))
	require.NoError(t, store.UpsertEmbedding(ctx, "frequent", model.CategoryGroceries, []float32{1}))
	require.NoError(t, store.UpsertEmbedding(ctx, "frequent", model.CategoryGroceries, []float32{1}))

	require.NoError(t, store.UpsertEmbedding(ctx, "middle", model.CategoryHome, []float32{1}))
	require.NoError(t, store.UpsertEmbedding(ctx, "middle", model.CategoryHome, []float32{1}))

	candidates, err := store.TopCandidates(ctx, 10)
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.Equal(t, "frequent", candidates[0].Description)
	assert.Equal(t, "middle", candidates[1].Description)
	assert.Equal(t, "rare", candidates[2].Description)
}

func TestTopCandidates_Limit(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertEmbedding(ctx, "a", model.CategoryBills, []float32{1}))
	require.NoError(t, store.UpsertEmbedding(ctx, "b", model.CategoryBills, []float32{1}))
	require.NoError(t, store.UpsertEmbedding(ctx, "c", model.CategoryBills, []float32{1}))

	candidates, err := store.TopCandidates(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)

	_, err = store.TopCandidates(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestDeduplicateEmbeddings_MergesLegacyRows(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// Simulate a store restored from a pre-migration backup: the table lost
	// its description key and holds duplicate rows.
	_, err := store.db.ExecContext(ctx, `DROP TABLE transaction_embeddings`)
	require.NoError(t, err)
	_, err = store.db.ExecContext(ctx, `
		CREATE TABLE transaction_embeddings (
			description TEXT,
			category TEXT NOT NULL DEFAULT '',
			embedding TEXT NOT NULL,
			last_used_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			usage_count INTEGER NOT NULL DEFAULT 1
		)`)
	require.NoError(t, err)

	older := time.Now().UTC().Add(-2 * time.Hour)
	newer := time.Now().UTC().Add(-1 * time.Hour)
	insert := `INSERT INTO transaction_embeddings (description, category, embedding, last_used_at, usage_count)
		VALUES (?, ?, ?, ?, ?)`
	_, err = store.db.ExecContext(ctx, insert, "dup", "Bills", "[1,0]", older, 3)
	require.NoError(t, err)
	_, err = store.db.ExecContext(ctx, insert, "dup", "Groceries", "[0,1]", newer, 5)
	require.NoError(t, err)

	removed, err := store.DeduplicateEmbeddings(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	record, err := store.GetEmbedding(ctx, "dup")
	require.NoError(t, err)
	assert.Equal(t, 8, record.UsageCount, "usage counts must be summed")
	assert.Equal(t, model.CategoryGroceries, record.Category, "later last_used_at wins the category")
	assert.Equal(t, []float32{0, 1}, record.Embedding, "later last_used_at wins the embedding")
}

func TestDeduplicateEmbeddings_NoDuplicates(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertEmbedding(ctx, "solo", model.CategoryBills, []float32{1}))

	removed, err := store.DeduplicateEmbeddings(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)

	record, err := store.GetEmbedding(ctx, "solo")
	require.NoError(t, err)
	assert.Equal(t, 1, record.UsageCount)
}
