package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/avivsbt/NewsSim/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagBaseURL string
	flagLang    string
	flagView    string
)

var rootCmd = &cobra.Command{
	Use:   "newssim",
	Short: "Terminal viewer for news article similarity",
	Long: `newssim fetches top news items with their pairwise similarity scores and lets you
explore them: pick an article to see what resembles it, or collapse near-duplicates
under a threshold.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is the normal case
		_ = godotenv.Load()
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "override the similarity API base URL")
	rootCmd.PersistentFlags().StringVar(&flagLang, "lang", "", "article language (en, he)")
	rootCmd.Flags().StringVar(&flagView, "view", "similarity", "start view (similarity, dedup)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(dedupCmd)
	rootCmd.AddCommand(mockCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "newssim %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

// loadConfig reads the config file and applies the flags shared by all commands.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	if flagLang != "" {
		cfg.Language = flagLang
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
