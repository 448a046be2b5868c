package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shawn0818/lebron-bot/internal/model"
	"github.com/shawn0818/lebron-bot/internal/parser"
)

// GameService loads complete game snapshots for the query surface. Loaded
// aggregates are immutable; a re-load publishes a whole new value, so cached
// snapshots stay safe for concurrent readers.
type GameService struct {
	fetcher Fetcher
	parser  *parser.GameParser
	log     zerolog.Logger

	mu    sync.RWMutex
	cache map[string]*model.Game
}

// NewGameService wires the loader.
func NewGameService(fetcher Fetcher, gameParser *parser.GameParser, logger zerolog.Logger) *GameService {
	return &GameService{
		fetcher: fetcher,
		parser:  gameParser,
		log:     logger.With().Str("module", "service").Str("component", "game").Logger(),
		cache:   make(map[string]*model.Game),
	}
}

// Load fetches both feed payloads for the game and constructs the validated
// aggregate. force skips the snapshot cache.
func (s *GameService) Load(ctx context.Context, gameID string, force bool) (*model.Game, error) {
	if err := checkGameID(gameID); err != nil {
		return nil, err
	}

	if !force {
		s.mu.RLock()
		cached, ok := s.cache[gameID]
		s.mu.RUnlock()
		if ok && cached.GameData.GameStatus == model.StatusFinished {
			// finished games never change; live ones are always re-fetched
			return cached, nil
		}
	}

	boxScore, err := s.fetcher.BoxScore(ctx, gameID)
	if err != nil {
		return nil, err
	}
	playByPlay, err := s.fetcher.PlayByPlay(ctx, gameID)
	if err != nil {
		s.log.Warn().Str("game_id", gameID).Err(err).Msg("play-by-play unavailable, loading box score only")
		playByPlay = nil
	}

	game, err := s.parser.ParseGame(boxScore, playByPlay)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[gameID] = game
	s.mu.Unlock()

	return game, nil
}
