package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/avivsbt/NewsSim/internal/logging"
	"github.com/avivsbt/NewsSim/internal/mockapi"
)

var (
	flagMockAddr       string
	flagMockFixture    string
	flagMockFailStatus int
	flagMockDelay      time.Duration
	flagMockPrefix     string
	flagMockLogLevel   string
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Serve a local stand-in for the similarity API",
	Long: `Serve GET <prefix>/getTopNewsItems?language=<en|he> from a fixture file or the
built-in sample set, for offline use and testing. Point the viewer at it with
--base-url http://<addr><prefix>.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fixtures, err := mockapi.SampleFixtures()
		if flagMockFixture != "" {
			fixtures, err = mockapi.LoadFixtures(flagMockFixture)
		}
		if err != nil {
			return err
		}

		logger := logging.New(flagMockLogLevel, os.Stderr).With("component", "mockapi")
		srv := mockapi.New(fixtures, mockapi.Options{
			Prefix:     flagMockPrefix,
			FailStatus: flagMockFailStatus,
			Delay:      flagMockDelay,
			Logger:     logger,
		})

		httpSrv := &http.Server{
			Addr:              flagMockAddr,
			Handler:           srv.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("listening", "addr", flagMockAddr, "prefix", flagMockPrefix)
			errCh <- httpSrv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serving: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	},
}

func init() {
	mockCmd.Flags().StringVar(&flagMockAddr, "addr", "127.0.0.1:3001", "listen address")
	mockCmd.Flags().StringVar(&flagMockFixture, "fixture", "", "JSON file mapping language codes to article arrays")
	mockCmd.Flags().IntVar(&flagMockFailStatus, "fail-status", 0, "answer every articles request with this HTTP status")
	mockCmd.Flags().DurationVar(&flagMockDelay, "delay", 0, "delay before each articles response")
	mockCmd.Flags().StringVar(&flagMockPrefix, "prefix", mockapi.DefaultPrefix, "route prefix for the articles endpoint")
	mockCmd.Flags().StringVar(&flagMockLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
}
