package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS transactions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					date DATETIME NOT NULL,
					description TEXT NOT NULL,
					amount TEXT NOT NULL,
					category TEXT NOT NULL DEFAULT '',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_transactions_date ON transactions(date)`,
				`CREATE INDEX idx_transactions_category ON transactions(category)`,

				// Legacy embedding layout: one row per write, descriptions
				// not unique. Version 2 collapses this.
				`CREATE TABLE IF NOT EXISTS transaction_embeddings (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					description TEXT NOT NULL,
					category TEXT NOT NULL DEFAULT '',
					embedding TEXT NOT NULL,
					last_used_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
					usage_count INTEGER NOT NULL DEFAULT 1
				)`,
				`CREATE INDEX idx_embeddings_description ON transaction_embeddings(description)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Deduplicate embeddings and key them by description",
		Up: func(tx *sql.Tx) error {
			// Step 1: New table keyed by description
			if _, err := tx.Exec(`
				CREATE TABLE transaction_embeddings_new (
					description TEXT PRIMARY KEY,
					category TEXT NOT NULL DEFAULT '',
					embedding TEXT NOT NULL,
					last_used_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
					usage_count INTEGER NOT NULL DEFAULT 1
				)
			`); err != nil {
				return fmt.Errorf("failed to create new transaction_embeddings table: %w", err)
			}

			// Step 2: Collapse duplicate descriptions. The most recently
			// used row wins the category and embedding; usage counts are
			// summed across the group.
			if _, err := tx.Exec(`
				INSERT INTO transaction_embeddings_new
					(description, category, embedding, last_used_at, usage_count)
				SELECT
					e.description,
					(SELECT x.category FROM transaction_embeddings x
						WHERE x.description = e.description
						ORDER BY x.last_used_at DESC, x.id DESC LIMIT 1),
					(SELECT x.embedding FROM transaction_embeddings x
						WHERE x.description = e.description
						ORDER BY x.last_used_at DESC, x.id DESC LIMIT 1),
					MAX(e.last_used_at),
					SUM(e.usage_count)
				FROM transaction_embeddings e
				GROUP BY e.description
			`); err != nil {
				return fmt.Errorf("failed to merge duplicate embeddings: %w", err)
			}

			// Step 3: Swap tables
			if _, err := tx.Exec(`DROP TABLE transaction_embeddings`); err != nil {
				return fmt.Errorf("failed to drop old transaction_embeddings table: %w", err)
			}
			if _, err := tx.Exec(`ALTER TABLE transaction_embeddings_new RENAME TO transaction_embeddings`); err != nil {
				return fmt.Errorf("failed to rename transaction_embeddings table: %w", err)
			}

			// Step 4: Index matching the candidate-scan order
			if _, err := tx.Exec(`CREATE INDEX idx_embeddings_usage ON transaction_embeddings(usage_count DESC, last_used_at DESC)`); err != nil {
				return fmt.Errorf("failed to create usage index: %w", err)
			}

			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		// Update version
		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	// Verify we're at the expected schema version
	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
