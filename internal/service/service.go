// Package service holds use-case orchestration between the fetcher, the
// parser and storage. Kept intentionally lean: coordination, input checks
// and domain error shaping, without transport or SQL details.
package service

import (
	"context"
	"errors"
	"regexp"
)

// ErrInvalidGameID marks a game id that cannot be a feed identifier.
var ErrInvalidGameID = errors.New("invalid game id")

// gameIDPattern matches the feed's ten-digit game identifiers.
var gameIDPattern = regexp.MustCompile(`^\d{10}$`)

func checkGameID(gameID string) error {
	if !gameIDPattern.MatchString(gameID) {
		return ErrInvalidGameID
	}
	return nil
}

// Fetcher is the slice of the feed client the services depend on.
type Fetcher interface {
	BoxScore(ctx context.Context, gameID string) ([]byte, error)
	PlayByPlay(ctx context.Context, gameID string) ([]byte, error)
	PlayerIndex(ctx context.Context) ([]byte, error)
	CareerStats(ctx context.Context, personID int64) ([]byte, error)
	GameLog(ctx context.Context, personID int64, season string) ([]byte, error)
}
