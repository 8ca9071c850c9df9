package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avivsbt/NewsSim/internal/config"
	"github.com/avivsbt/NewsSim/internal/logging"
	"github.com/avivsbt/NewsSim/internal/newsapi"
	"github.com/avivsbt/NewsSim/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	page, err := tui.ParsePage(flagView)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so the session logs to a file
	logFile, err := logging.OpenFile(config.LogPath())
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer logFile.Close()
	logger := logging.New(cfg.LogLevel, logFile)

	client := newsapi.NewClient(cfg.BaseURL, cfg.Timeout(), logger.With("component", "newsapi"))
	logger.Info("starting", "version", version, "base_url", client.BaseURL(), "view", page.String())

	return tui.Run(tui.RunOpts{
		Fetcher:             client,
		Logger:              logger.With("component", "tui"),
		Page:                page,
		Language:            cfg.DefaultLanguage(),
		SimilarityThreshold: cfg.SimilarityThreshold,
		DedupThreshold:      cfg.DedupThreshold,
	})
}
