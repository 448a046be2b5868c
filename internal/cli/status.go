package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shawn0818/lebron-bot/internal/parser"
	"github.com/shawn0818/lebron-bot/internal/service"
)

var statusCmd = &cobra.Command{
	Use:   "status <game-id>",
	Short: "Print the live status snapshot of a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}

		svc := service.NewGameService(newFetcher(cfg, log), parser.NewGameParser(log), log)
		game, err := svc.Load(cmd.Context(), args[0], true)
		if err != nil {
			return fmt.Errorf("load game %s: %w", args[0], err)
		}

		out, _ := json.MarshalIndent(game.Status(), "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}
