package main

import (
	"fmt"

	"github.com/balisaldo/saldo/internal/cli"

	"github.com/spf13/cobra"
)

func embeddingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "embeddings",
		Short: "Inspect and maintain the embedding store",
	}

	cmd.AddCommand(embeddingsStatsCmd())
	cmd.AddCommand(embeddingsDedupeCmd())

	return cmd
}

func embeddingsStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show embedding store statistics",
		RunE:  runEmbeddingsStats,
	}

	cmd.Flags().Int("top", 10, "number of most-used descriptions to show")

	return cmd
}

func runEmbeddingsStats(cmd *cobra.Command, _ []string) error {
	top, _ := cmd.Flags().GetInt("top")

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	count, err := store.CountEmbeddings(ctx)
	if err != nil {
		return fmt.Errorf("failed to count embeddings: %w", err)
	}

	fmt.Println(cli.FormatTitle("Embedding store"))
	fmt.Printf("Stored descriptions: %s\n\n", cli.BoldStyle.Render(fmt.Sprintf("%d", count)))

	if count == 0 || top <= 0 {
		return nil
	}

	records, err := store.TopCandidates(ctx, top)
	if err != nil {
		return fmt.Errorf("failed to fetch top descriptions: %w", err)
	}

	fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%-6s %-22s %s", "Uses", "Category", "Description")))
	for _, record := range records {
		fmt.Printf("%-6d %s %s\n",
			record.UsageCount,
			cli.TableCellStyle.Render(fmt.Sprintf("%-22s", record.Category.String())),
			record.Description)
	}

	return nil
}

func embeddingsDedupeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dedupe",
		Short: "Collapse duplicate descriptions in the embedding store",
		Long: `Merge duplicate embedding records for the same description into one,
keeping the most recently used category and summing usage counts.

The current schema prevents new duplicates; this cleans up databases
written before that constraint existed.`,
		RunE: runEmbeddingsDedupe,
	}
}

func runEmbeddingsDedupe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	removed, err := store.DeduplicateEmbeddings(ctx)
	if err != nil {
		return fmt.Errorf("deduplication failed: %w", err)
	}

	if removed == 0 {
		fmt.Println(cli.FormatSuccess("no duplicates found"))
		return nil
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("merged %d duplicate rows", removed)))
	return nil
}
