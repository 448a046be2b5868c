package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/shawn0818/lebron-bot/internal/model"
	"github.com/shawn0818/lebron-bot/internal/parser"
	"github.com/shawn0818/lebron-bot/internal/storage"
)

// GameStore is the slice of storage the sync path needs.
type GameStore interface {
	UpsertGame(ctx context.Context, g *model.Game) error
	UpsertPlayerLines(ctx context.Context, g *model.Game) (int, error)
	RecordSyncHistory(ctx context.Context, rec storage.SyncRecord) error
}

// SyncSummary reports one ingestion run.
type SyncSummary struct {
	GameID      string    `json:"game_id"`
	Status      string    `json:"status"`
	GameStatus  string    `json:"game_status"`
	PlayerLines int       `json:"player_lines"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// SyncService drives the fetch → parse → persist pipeline for one game.
type SyncService struct {
	fetcher Fetcher
	parser  *parser.GameParser
	store   GameStore
	log     zerolog.Logger
}

// NewSyncService wires the pipeline.
func NewSyncService(fetcher Fetcher, gameParser *parser.GameParser, store GameStore, logger zerolog.Logger) *SyncService {
	return &SyncService{
		fetcher: fetcher,
		parser:  gameParser,
		store:   store,
		log:     logger.With().Str("module", "service").Str("component", "sync").Logger(),
	}
}

// SyncBoxScore ingests one game's box score into storage. The run is audited
// in sync_history whether it succeeds or fails; a failed run returns the
// original error after the audit row is written.
func (s *SyncService) SyncBoxScore(ctx context.Context, gameID string) (SyncSummary, error) {
	started := time.Now().UTC()
	summary := SyncSummary{GameID: gameID, StartedAt: started}

	if err := checkGameID(gameID); err != nil {
		return summary, err
	}
	s.log.Info().Str("game_id", gameID).Msg("box score sync started")

	game, lines, err := s.ingest(ctx, gameID)
	summary.FinishedAt = time.Now().UTC()
	summary.PlayerLines = lines

	if err != nil {
		summary.Status = "failed"
		s.audit(ctx, summary, err)
		return summary, err
	}

	summary.Status = "success"
	// the payload's own status code is authoritative, never the score
	summary.GameStatus = game.GameData.GameStatus.String()
	s.audit(ctx, summary, nil)

	s.log.Info().Str("game_id", gameID).Int("player_lines", lines).Msg("box score sync finished")
	return summary, nil
}

func (s *SyncService) ingest(ctx context.Context, gameID string) (*model.Game, int, error) {
	raw, err := s.fetcher.BoxScore(ctx, gameID)
	if err != nil {
		return nil, 0, err
	}
	game, err := s.parser.ParseGame(raw, nil)
	if err != nil {
		return nil, 0, err
	}
	if err := s.store.UpsertGame(ctx, game); err != nil {
		return game, 0, err
	}
	lines, err := s.store.UpsertPlayerLines(ctx, game)
	if err != nil {
		return game, lines, err
	}
	return game, lines, nil
}

func (s *SyncService) audit(ctx context.Context, summary SyncSummary, runErr error) {
	rec := storage.SyncRecord{
		SyncType:       "boxscore",
		GameID:         summary.GameID,
		Status:         summary.Status,
		ItemsProcessed: 1,
		StartedAt:      summary.StartedAt,
		FinishedAt:     summary.FinishedAt,
	}
	if runErr != nil {
		rec.ErrorMessage = runErr.Error()
	} else {
		rec.ItemsSucceeded = 1
		if details, err := json.Marshal(summary); err == nil {
			rec.Details = string(details)
		}
	}
	if err := s.store.RecordSyncHistory(ctx, rec); err != nil {
		s.log.Error().Str("game_id", summary.GameID).Err(err).Msg("failed to record sync history")
	}
}
