package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/balisaldo/saldo/internal/cli"
	"github.com/balisaldo/saldo/internal/model"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func categorizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorize [description...]",
		Short: "Suggest categories for transaction descriptions",
		Long: `Suggest a category for each given transaction description.

Descriptions are matched against previously confirmed categorizations by
embedding similarity first, then against the built-in keyword table. Use
--file to categorize a whole list, one description per line.`,
		RunE: runCategorize,
	}

	cmd.Flags().StringP("file", "f", "", "file with one description per line")
	cmd.Flags().IntP("concurrency", "c", 4, "number of descriptions resolved in parallel")

	return cmd
}

func runCategorize(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	descriptions := append([]string(nil), args...)
	if file != "" {
		fromFile, err := readDescriptions(file)
		if err != nil {
			return err
		}
		descriptions = append(descriptions, fromFile...)
	}
	if len(descriptions) == 0 {
		return fmt.Errorf("nothing to categorize: pass descriptions or --file")
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

	var results []model.Category
	if len(descriptions) == 1 {
		results = []model.Category{res.ResolveCategory(ctx, descriptions[0])}
	} else {
		bar := newProgressBar(len(descriptions), "Categorizing...")
		// Chunked so the bar advances while the pool works.
		for start := 0; start < len(descriptions); start += concurrency {
			end := min(start+concurrency, len(descriptions))
			results = append(results, res.ResolveBatch(ctx, descriptions[start:end], concurrency)...)
			_ = bar.Add(end - start)
		}
	}

	categorized := 0
	for i, description := range descriptions {
		category := results[i]
		if category == model.CategoryUncategorized {
			fmt.Printf("%s  %s\n", cli.SubtleStyle.Render(category.String()), description)
			continue
		}
		categorized++
		fmt.Printf("%s  %s\n", cli.SuccessStyle.Render(category.String()), description)
	}

	fmt.Println()
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%d of %d categorized", categorized, len(descriptions))))
	return nil
}

func readDescriptions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var descriptions []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			descriptions = append(descriptions, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return descriptions, nil
}

func newProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}
