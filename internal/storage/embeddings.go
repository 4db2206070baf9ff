package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/balisaldo/saldo/internal/common"
	"github.com/balisaldo/saldo/internal/model"
)

// marshalEmbedding serializes a vector as JSON text, the on-disk format
// shared with the legacy schema.
func marshalEmbedding(embedding []float32) (string, error) {
	data, err := json.Marshal(embedding)
	if err != nil {
		return "", fmt.Errorf("failed to marshal embedding: %w", err)
	}
	return string(data), nil
}

func unmarshalEmbedding(data string) ([]float32, error) {
	var embedding []float32
	if err := json.Unmarshal([]byte(data), &embedding); err != nil {
		return nil, fmt.Errorf("failed to unmarshal embedding: %w", err)
	}
	return embedding, nil
}

// GetEmbedding retrieves the record for a description.
func (s *SQLiteStorage) GetEmbedding(ctx context.Context, description string) (*model.EmbeddingRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(description, "description"); err != nil {
		return nil, err
	}

	var record model.EmbeddingRecord
	var rawEmbedding string
	var rawCategory string

	err := s.db.QueryRowContext(ctx, `
		SELECT description, category, embedding, last_used_at, usage_count
		FROM transaction_embeddings
		WHERE description = ?
	`, description).Scan(
		&record.Description,
		&rawCategory,
		&rawEmbedding,
		&record.LastUsedAt,
		&record.UsageCount,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: embedding for %q", common.ErrNotFound, description)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get embedding: %w", err)
	}

	record.Category = model.Category(rawCategory)
	record.Embedding, err = unmarshalEmbedding(rawEmbedding)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// UpsertEmbedding inserts or reinforces the record for a description.
// A new description starts at usage_count 1. An existing one gets the new
// category and a fresh last_used_at, and its usage count incremented; the
// stored embedding is never overwritten.
func (s *SQLiteStorage) UpsertEmbedding(ctx context.Context, description string, category model.Category, embedding []float32) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(description, "description"); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}
	if err := validateEmbedding(embedding); err != nil {
		return err
	}

	rawEmbedding, err := marshalEmbedding(embedding)
	if err != nil {
		return err
	}

	// Single atomic statement so concurrent upserts for different
	// descriptions never observe partial state.
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO transaction_embeddings (description, category, embedding, last_used_at, usage_count)
		VALUES (?, ?, ?, ?, 1)
		ON CONFLICT(description) DO UPDATE SET
			category = excluded.category,
			last_used_at = excluded.last_used_at,
			usage_count = usage_count + 1
	`, description, string(category), rawEmbedding, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("failed to upsert embedding: %w", err)
	}

	slog.Debug("upserted embedding", "description", description, "category", category.String())
	return nil
}

// TopCandidates returns the working set for similarity scanning: up to limit
// records, most used and most recently used first.
func (s *SQLiteStorage) TopCandidates(ctx context.Context, limit int) ([]model.EmbeddingRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT description, category, embedding, last_used_at, usage_count
		FROM transaction_embeddings
		ORDER BY usage_count DESC, last_used_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query embeddings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.EmbeddingRecord
	for rows.Next() {
		var record model.EmbeddingRecord
		var rawEmbedding string
		var rawCategory string

		if err := rows.Scan(
			&record.Description,
			&rawCategory,
			&rawEmbedding,
			&record.LastUsedAt,
			&record.UsageCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan embedding: %w", err)
		}

		record.Category = model.Category(rawCategory)
		record.Embedding, err = unmarshalEmbedding(rawEmbedding)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating embeddings: %w", err)
	}

	return records, nil
}

// DeduplicateEmbeddings collapses any duplicate descriptions into a single
// record. The most recently used row keeps its category and embedding, and
// usage counts are summed across each group. With the description-keyed
// schema this is a no-op; it remains as an administrative repair for stores
// restored from pre-migration backups.
func (s *SQLiteStorage) DeduplicateEmbeddings(ctx context.Context) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var before int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM transaction_embeddings`).Scan(&before); err != nil {
		return 0, fmt.Errorf("failed to count embeddings: %w", err)
	}

	queries := []string{
		`CREATE TEMPORARY TABLE temp_embeddings AS
			SELECT
				e.description,
				(SELECT x.category FROM transaction_embeddings x
					WHERE x.description = e.description
					ORDER BY x.last_used_at DESC, x.rowid DESC LIMIT 1) AS category,
				(SELECT x.embedding FROM transaction_embeddings x
					WHERE x.description = e.description
					ORDER BY x.last_used_at DESC, x.rowid DESC LIMIT 1) AS embedding,
				MAX(e.last_used_at) AS last_used_at,
				SUM(e.usage_count) AS usage_count
			FROM transaction_embeddings e
			GROUP BY e.description`,
		`DELETE FROM transaction_embeddings`,
		`INSERT INTO transaction_embeddings (description, category, embedding, last_used_at, usage_count)
			SELECT description, category, embedding, last_used_at, usage_count FROM temp_embeddings`,
		`DROP TABLE temp_embeddings`,
	}

	for _, query := range queries {
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return 0, fmt.Errorf("failed to deduplicate embeddings: %w", err)
		}
	}

	var after int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM transaction_embeddings`).Scan(&after); err != nil {
		return 0, fmt.Errorf("failed to count embeddings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit deduplication: %w", err)
	}

	removed := before - after
	if removed > 0 {
		slog.Info("removed duplicate embeddings", "removed", removed)
	}
	return removed, nil
}

// CountEmbeddings returns the number of stored embedding records.
func (s *SQLiteStorage) CountEmbeddings(ctx context.Context) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transaction_embeddings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count embeddings: %w", err)
	}
	return count, nil
}
