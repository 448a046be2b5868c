package cli

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/shawn0818/lebron-bot/internal/handler"
	"github.com/shawn0818/lebron-bot/internal/parser"
	"github.com/shawn0818/lebron-bot/internal/service"
	"github.com/shawn0818/lebron-bot/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the read-only HTTP API",
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

		nba := newFetcher(cfg, log)
		gameSvc := service.NewGameService(nba, parser.NewGameParser(log), log)
		playerSvc := service.NewPlayerService(nba, parser.NewPlayerParser(log), log)

		gin.SetMode(gin.ReleaseMode)
		r := gin.New()
		r.Use(gin.Recovery())
		handler.Register(r, store, gameSvc, playerSvc, store)

		log.Info().Str("addr", cfg.Server.Addr).Msg("HTTP API listening")
		return r.Run(cfg.Server.Addr)
	},
}
