package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/balisaldo/saldo/internal/cli"
	"github.com/balisaldo/saldo/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import --file <csv>",
		Short: "Import transactions from a CSV export",
		Long: `Import transactions from a CSV file with columns date, description and
amount (a header row is detected and skipped). An optional fourth column
carries an already-known category.

Imported rows can later be recategorized in bulk with confirm --ids.`,
		RunE: runImport,
	}

	cmd.Flags().StringP("file", "f", "", "CSV file to import (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runImport(cmd *cobra.Command, _ []string) error {
	file, _ := cmd.Flags().GetString("file")

	transactions, err := readTransactionsCSV(file)
	if err != nil {
		return err
	}
	if len(transactions) == 0 {
		return fmt.Errorf("no transactions found in %s", file)
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveTransactions(ctx, transactions); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("imported %d transactions from %s", len(transactions), file)))
	return nil
}

func readTransactionsCSV(path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var transactions []model.Transaction
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		line++

		if len(record) < 3 {
			return nil, fmt.Errorf("%s line %d: expected at least 3 columns, got %d", path, line, len(record))
		}

		date, err := parseDate(strings.TrimSpace(record[0]))
		if err != nil {
			if line == 1 {
				// Header row.
				continue
			}
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(record[2]))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: bad amount %q: %w", path, line, record[2], err)
		}

		category := model.CategoryUncategorized
		if len(record) > 3 {
			category, err = model.ParseCategory(record[3])
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", path, line, err)
			}
		}

		transactions = append(transactions, model.Transaction{
			Date:        date,
			Description: strings.TrimSpace(record[1]),
			Amount:      amount,
			Category:    category,
		})
	}

	return transactions, nil
}
