package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/avivsbt/NewsSim/internal/config"
	"github.com/avivsbt/NewsSim/internal/logging"
	"github.com/avivsbt/NewsSim/internal/newsapi"
	"github.com/avivsbt/NewsSim/internal/similarity"
)

var flagThreshold float64

var similarCmd = &cobra.Command{
	Use:   "similar <article-id>",
	Short: "List articles similar to one article",
	Long: `Fetch the current top news items and print the articles whose similarity to the
given article is at or above the threshold, most similar first.

Uses similarity_threshold from config unless overridden with --threshold.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, articles, err := fetchForReport(cmd)
		if err != nil {
			return err
		}
		threshold := cfg.SimilarityThreshold
		if cmd.Flags().Changed("threshold") {
			threshold = flagThreshold
		}
		return printSimilar(cmd.OutOrStdout(), similarity.NewTable(articles), args[0], threshold)
	},
}

var dedupCmd = &cobra.Command{
	Use:   "dedup",
	Short: "Collapse near-duplicate articles",
	Long: `Fetch the current top news items and group them greedily: each unclaimed article
absorbs every later unclaimed article it rates at or above the threshold.

Uses dedup_threshold from config unless overridden with --threshold.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, articles, err := fetchForReport(cmd)
		if err != nil {
			return err
		}
		threshold := cfg.DedupThreshold
		if cmd.Flags().Changed("threshold") {
			threshold = flagThreshold
		}
		printDedup(cmd.OutOrStdout(), similarity.NewTable(articles), threshold)
		return nil
	},
}

func init() {
	similarCmd.Flags().Float64Var(&flagThreshold, "threshold", 0, "similarity threshold between 0 and 1")
	dedupCmd.Flags().Float64Var(&flagThreshold, "threshold", 0.5, "duplicate threshold between 0 and 1")
}

// fetchForReport loads config and runs a single fetch under the request timeout.
func fetchForReport(cmd *cobra.Command) (*config.Config, []newsapi.Article, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("threshold") && (flagThreshold < 0 || flagThreshold > 1) {
		return nil, nil, fmt.Errorf("--threshold must be between 0 and 1, got %v", flagThreshold)
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)
	client := newsapi.NewClient(cfg.BaseURL, cfg.Timeout(), logger.With("component", "newsapi"))

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
	defer cancel()

	lang := cfg.DefaultLanguage()
	articles, err := client.FetchArticles(ctx, lang)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching %s articles: %w", lang, err)
	}
	return cfg, articles, nil
}

func printSimilar(w io.Writer, table *similarity.Table, id string, threshold float64) error {
	selected, ok := table.Article(id)
	if !ok {
		return fmt.Errorf("no article with id %q", id)
	}

	fmt.Fprintf(w, "Selected: [%s] %s (%s)\n", selected.ID, selected.Title, selected.PublisherName)
	count := table.CountSimilar(id, threshold)
	fmt.Fprintf(w, "%d similar articles found at ≥%.0f%%\n", count, threshold*100)
	if count == 0 {
		return nil
	}

	fmt.Fprintln(w)
	for _, m := range table.Similar(id, threshold) {
		if m.Selected {
			continue
		}
		fmt.Fprintf(w, "%6.1f%%  [%s] %s (%s)\n", m.Score*100, m.Article.ID, m.Article.Title, m.Article.PublisherName)
	}
	return nil
}

func printDedup(w io.Writer, table *similarity.Table, threshold float64) {
	result := table.Deduplicate(threshold)

	fmt.Fprintf(w, "Total: %d  Unique: %d  Removed: %d  (threshold ≥%.0f%%)\n",
		result.Total, result.Unique, result.Removed, threshold*100)

	for _, c := range result.Clusters {
		fmt.Fprintf(w, "\n[%s] %s (%s)\n", c.Representative.ID, c.Representative.Title, c.Representative.PublisherName)
		if !c.HasDuplicates() {
			continue
		}
		for _, d := range c.DuplicateScores(table) {
			fmt.Fprintf(w, "  %6.1f%%  [%s] %s (%s)\n", d.Score*100, d.Article.ID, d.Article.Title, d.Article.PublisherName)
		}
	}
}
