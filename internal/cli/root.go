// Package cli wires the cobra command tree. Each command builds only the
// dependencies it needs, in the same order: config, logger, collaborators.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/shawn0818/lebron-bot/internal/config"
	"github.com/shawn0818/lebron-bot/internal/fetcher"
	"github.com/shawn0818/lebron-bot/internal/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "lebron",
	Short: "NBA game data ingestion and reporting tool",
	Long:  "Fetch live NBA game data, build typed game snapshots and persist box scores locally.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to config file")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(serveCmd)
}

// bootstrap loads config and builds the root logger; every command starts here.
func bootstrap() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	return cfg, log, nil
}

func newFetcher(cfg *config.Config, log zerolog.Logger) *fetcher.Client {
	return fetcher.New(fetcher.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Retries: cfg.API.Retries,
	}, log)
}
