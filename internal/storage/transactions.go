package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/balisaldo/saldo/internal/model"

	"github.com/shopspring/decimal"
)

// SaveTransactions inserts a batch of imported transactions.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}
	for i := range transactions {
		if err := validateCategory(transactions[i].Category); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
		if err := validateString(transactions[i].Description, "description"); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (date, description, amount, category, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC()
	for _, txn := range transactions {
		if _, err := stmt.ExecContext(ctx,
			txn.Date,
			txn.Description,
			txn.Amount.String(),
			string(txn.Category),
			now,
		); err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
	}

	return tx.Commit()
}

// GetTransactionsByIDs fetches transactions for the given ids. Missing ids
// are skipped, not errors.
func (s *SQLiteStorage) GetTransactionsByIDs(ctx context.Context, ids []int64) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateIDs(ids); err != nil {
		return nil, err
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, date, description, amount, category, created_at
		FROM transactions
		WHERE id IN (%s)
		ORDER BY id
	`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var rawAmount, rawCategory string

		if err := rows.Scan(
			&txn.ID,
			&txn.Date,
			&txn.Description,
			&rawAmount,
			&rawCategory,
			&txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		txn.Amount, err = decimal.NewFromString(rawAmount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount %q: %w", rawAmount, err)
		}
		txn.Category = model.Category(rawCategory)

		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// UpdateTransactionCategory sets the category for the given transaction ids
// and returns the number of rows changed.
func (s *SQLiteStorage) UpdateTransactionCategory(ctx context.Context, ids []int64, category model.Category) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateIDs(ids); err != nil {
		return 0, err
	}
	if err := validateCategory(category); err != nil {
		return 0, err
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(ids)+1)
	args = append(args, string(category))
	for _, id := range ids {
		args = append(args, id)
	}

	result, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		UPDATE transactions SET category = ? WHERE id IN (%s)
	`, placeholders), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update transaction categories: %w", err)
	}

	changed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return changed, nil
}
