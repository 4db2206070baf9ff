package main

import (
	"fmt"
	"strings"

	"github.com/balisaldo/saldo/internal/cli"
	"github.com/balisaldo/saldo/internal/model"

	"github.com/spf13/cobra"
)

func confirmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "confirm --category <category> [description...]",
		Short: "Record the correct category for transactions",
		Long: `Record a confirmed category, reinforcing future suggestions for the same
and similar descriptions.

Pass descriptions directly, or --ids to recategorize imported transactions:
their stored category is updated and each distinct description is confirmed.

Categories: ` + categoryList() + `.`,
		RunE: runConfirm,
	}

	cmd.Flags().String("category", "", "category to confirm (required)")
	cmd.Flags().Int64Slice("ids", nil, "imported transaction ids to recategorize")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func runConfirm(cmd *cobra.Command, args []string) error {
	rawCategory, _ := cmd.Flags().GetString("category")
	ids, _ := cmd.Flags().GetInt64Slice("ids")

	category, err := model.ParseCategory(rawCategory)
	if err != nil {
		return fmt.Errorf("%w (valid: %s)", err, categoryList())
	}
	if category == model.CategoryUncategorized {
		return fmt.Errorf("cannot confirm %q: pick a real category", rawCategory)
	}
	if len(args) == 0 && len(ids) == 0 {
		return fmt.Errorf("nothing to confirm: pass descriptions or --ids")
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	res, cleanup, err := initResolver(ctx, store)
	if err != nil {
		return err
	}
	defer cleanup()

	descriptions := append([]string(nil), args...)

	// The id flow writes the transaction rows first, then reinforces the
	// embedding store with each distinct description.
	if len(ids) > 0 {
		transactions, err := store.GetTransactionsByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		if len(transactions) < len(ids) {
			return fmt.Errorf("only %d of %d transaction ids exist", len(transactions), len(ids))
		}

		updated, err := store.UpdateTransactionCategory(ctx, ids, category)
		if err != nil {
			return fmt.Errorf("failed to update transactions: %w", err)
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("updated %d transactions", updated)))

		seen := make(map[string]bool)
		for _, tx := range transactions {
			normalized := model.NormalizeDescription(tx.Description)
			if normalized == "" || seen[normalized] {
				continue
			}
			seen[normalized] = true
			descriptions = append(descriptions, tx.Description)
		}
	}

	for _, description := range descriptions {
		if err := res.ConfirmCategory(ctx, description, category); err != nil {
			return err
		}
		fmt.Printf("%s  %s\n", cli.SuccessStyle.Render(category.String()), description)
	}

	return nil
}

func categoryList() string {
	names := make([]string, 0, len(model.AllCategories()))
	for _, c := range model.AllCategories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
