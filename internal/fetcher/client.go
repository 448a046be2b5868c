// Package fetcher is the thin HTTP boundary to the upstream stats feed.
// It only moves bytes; all interpretation belongs to the parser layer.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// ErrUpstream marks a non-2xx answer from the feed.
var ErrUpstream = errors.New("upstream error")

const (
	boxScorePath    = "/static/json/liveData/boxscore/boxscore_%s.json"
	playByPlayPath  = "/static/json/liveData/playbyplay/playbyplay_%s.json"
	playerIndexPath = "/static/json/staticData/playerindex.json"
	careerStatsPath = "/stats/playercareerstats?PlayerID=%d"
	gameLogPath     = "/stats/playergamelog?PlayerID=%d&Season=%s"
)

// Options configures the feed client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Retries int
}

// Client fetches raw feed payloads.
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

// New builds the feed client.
func New(opts Options, logger zerolog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.Retries).
		SetHeader("Accept", "application/json")

	return &Client{
		http: httpClient,
		log:  logger.With().Str("module", "fetcher").Logger(),
	}
}

// BoxScore fetches the raw box-score payload for one game.
func (c *Client) BoxScore(ctx context.Context, gameID string) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf(boxScorePath, gameID))
}

// PlayByPlay fetches the raw play-by-play payload for one game.
func (c *Client) PlayByPlay(ctx context.Context, gameID string) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf(playByPlayPath, gameID))
}

// PlayerIndex fetches the league roster table.
func (c *Client) PlayerIndex(ctx context.Context) ([]byte, error) {
	return c.get(ctx, playerIndexPath)
}

// CareerStats fetches a player's career totals tables.
func (c *Client) CareerStats(ctx context.Context, personID int64) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf(careerStatsPath, personID))
}

// GameLog fetches a player's per-game log for one season, e.g. "2024-25".
func (c *Client) GameLog(ctx context.Context, personID int64, season string) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf(gameLogPath, personID, url.QueryEscape(season)))
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	if resp.IsError() {
		c.log.Warn().Str("path", path).Int("status", resp.StatusCode()).Msg("feed returned error status")
		return nil, fmt.Errorf("fetch %s: status %d: %w", path, resp.StatusCode(), ErrUpstream)
	}
	c.log.Debug().Str("path", path).Int("bytes", len(resp.Body())).Msg("fetched payload")
	return resp.Body(), nil
}
