package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/balisaldo/saldo/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_FreshDatabase(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))

	var version int
	require.NoError(t, store.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)

	// Migrate again is a no-op
	require.NoError(t, store.Migrate(ctx))
}

func TestMigrate_CollapsesLegacyDuplicates(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()

	// Apply only version 1 to get the legacy non-unique layout.
	tx, err := store.db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, migrations[0].Up(tx))
	_, err = tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migrations[0].Version))
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	older := time.Now().UTC().Add(-3 * time.Hour)
	newer := time.Now().UTC().Add(-1 * time.Hour)

	insert := `INSERT INTO transaction_embeddings (description, category, embedding, last_used_at, usage_count)
		VALUES (?, ?, ?, ?, ?)`
	_, err = store.db.ExecContext(ctx, insert, "Warung Bambu", "Bills", "[1,0]", older, 3)
	require.NoError(t, err)
	_, err = store.db.ExecContext(ctx, insert, "Warung Bambu", "Cafe/Restaurant", "[0,1]", newer, 5)
	require.NoError(t, err)
	_, err = store.db.ExecContext(ctx, insert, "Pepito", "Groceries", "[1,1]", newer, 1)
	require.NoError(t, err)

	// Running the remaining migrations merges the duplicates.
	require.NoError(t, store.Migrate(ctx))

	count, err := store.CountEmbeddings(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	record, err := store.GetEmbedding(ctx, "Warung Bambu")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryCafeRestaurant, record.Category)
	assert.Equal(t, []float32{0, 1}, record.Embedding)
	assert.Equal(t, 8, record.UsageCount)

	// The surviving table enforces uniqueness going forward.
	require.NoError(t, store.UpsertEmbedding(ctx, "Warung Bambu", model.CategoryCafeRestaurant, []float32{9, 9}))
	record, err = store.GetEmbedding(ctx, "Warung Bambu")
	require.NoError(t, err)
	assert.Equal(t, 9, record.UsageCount)
	assert.Equal(t, []float32{0, 1}, record.Embedding)
}
