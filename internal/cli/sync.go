package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shawn0818/lebron-bot/internal/parser"
	"github.com/shawn0818/lebron-bot/internal/service"
	"github.com/shawn0818/lebron-bot/internal/storage"
)

var syncCmd = &cobra.Command{
	Use:   "sync <game-id>",
	Short: "Sync one game's box score into the local database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}

		store, err := storage.Open(cfg.Database.Path, log)
		if err != nil {
			return err
		}
		defer store.Close()

		svc := service.NewSyncService(newFetcher(cfg, log), parser.NewGameParser(log), store, log)
		summary, err := svc.SyncBoxScore(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("sync game %s: %w", args[0], err)
		}

		out, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}
