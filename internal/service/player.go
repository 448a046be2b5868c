package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shawn0818/lebron-bot/internal/parser"
)

// PlayerService owns the league roster, the name resolution index and the
// per-player stat queries.
type PlayerService struct {
	fetcher Fetcher
	parser  *parser.PlayerParser
	log     zerolog.Logger

	mu     sync.RWMutex
	roster []parser.PlayerProfile
}

// NewPlayerService wires the roster loader.
func NewPlayerService(fetcher Fetcher, playerParser *parser.PlayerParser, logger zerolog.Logger) *PlayerService {
	return &PlayerService{
		fetcher: fetcher,
		parser:  playerParser,
		log:     logger.With().Str("module", "service").Str("component", "player").Logger(),
	}
}

// ReloadRoster fetches the league player index and rebuilds the name index
// wholesale. Readers hitting the index mid-rebuild see transient misses, not
// errors; the single-writer discipline lives in the index itself.
func (s *PlayerService) ReloadRoster(ctx context.Context) ([]parser.PlayerProfile, error) {
	raw, err := s.fetcher.PlayerIndex(ctx)
	if err != nil {
		return nil, err
	}
	players, err := s.parser.ParsePlayerList(raw)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.roster = players
	s.mu.Unlock()

	s.log.Info().Int("players", len(players)).Msg("roster reloaded")
	return players, nil
}

// ResolveID resolves a player name to its id via the shared index.
func (s *PlayerService) ResolveID(name string) (int64, bool) {
	return s.parser.Index().ResolveID(name)
}

// ResolveName resolves a player id back to its display name.
func (s *PlayerService) ResolveName(id int64) (string, bool) {
	return s.parser.Index().ResolveName(id)
}

// Profile looks the player up in the last loaded roster.
func (s *PlayerService) Profile(personID int64) (parser.PlayerProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return parser.FindProfileByID(s.roster, personID)
}

// CareerStats fetches and parses a player's career totals, keyed
// "regular_season" and "playoffs". A player without career tables yields
// (nil, nil).
func (s *PlayerService) CareerStats(ctx context.Context, personID int64) (map[string]parser.StatTotals, error) {
	raw, err := s.fetcher.CareerStats(ctx, personID)
	if err != nil {
		return nil, err
	}
	return s.parser.ParseCareerStats(raw)
}

// SeasonStats accumulates a player's game log for one season into a single
// stat line. An empty log yields (nil, nil).
func (s *PlayerService) SeasonStats(ctx context.Context, personID int64, season string) (*parser.StatTotals, error) {
	raw, err := s.fetcher.GameLog(ctx, personID, season)
	if err != nil {
		return nil, err
	}
	return s.parser.ParseSeasonStats(raw)
}
