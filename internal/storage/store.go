// Package storage persists synced game snapshots into a local SQLite file.
// The store only deals in flattened records handed over by the model's query
// surface; the typed aggregate never crosses this boundary.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/shawn0818/lebron-bot/internal/model"
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrNotFound is the domain error for absent rows.
var ErrNotFound = errors.New("not found")

// Store wraps the SQLite connection.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, log: logger.With().Str("module", "storage").Logger()}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error { return s.db.Close() }

// Ping reports readiness of the database.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// UpsertGame writes the game header row. The lifecycle status comes straight
// from the payload's own status code; score-based inference is deliberately
// not performed here.
func (s *Store) UpsertGame(ctx context.Context, g *model.Game) error {
	data := &g.GameData
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO games (
			game_id, game_code, game_status, status_text, period, game_clock,
			game_time_utc, home_team_id, home_tricode, home_score,
			away_team_id, away_tricode, away_score, arena_name, attendance, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET
			game_status = excluded.game_status,
			status_text = excluded.status_text,
			period      = excluded.period,
			game_clock  = excluded.game_clock,
			home_score  = excluded.home_score,
			away_score  = excluded.away_score,
			attendance  = excluded.attendance,
			updated_at  = excluded.updated_at`,
		data.GameID, data.GameCode, int(data.GameStatus), data.GameStatusText,
		data.Period, data.GameClock, data.GameTimeUTC.Format(time.RFC3339),
		data.HomeTeam.TeamID, data.HomeTeam.TeamTricode, data.HomeTeam.Score,
		data.AwayTeam.TeamID, data.AwayTeam.TeamTricode, data.AwayTeam.Score,
		data.Arena.ArenaName, data.Attendance, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert game %s: %w", data.GameID, err)
	}
	return nil
}

// UpsertPlayerLines writes one box-score row per roster player of both teams
// and returns the number of rows written.
func (s *Store) UpsertPlayerLines(ctx context.Context, g *model.Game) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO player_boxscores (
			game_id, person_id, team_id, name, position, starter, played,
			minutes, points, rebounds, assists, steals, blocks, turnovers,
			fouls_personal, field_goals_made, field_goals_att,
			three_made, three_att, free_throws_made, free_throws_att,
			plus_minus, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id, person_id) DO UPDATE SET
			played           = excluded.played,
			minutes          = excluded.minutes,
			points           = excluded.points,
			rebounds         = excluded.rebounds,
			assists          = excluded.assists,
			steals           = excluded.steals,
			blocks           = excluded.blocks,
			turnovers        = excluded.turnovers,
			fouls_personal   = excluded.fouls_personal,
			field_goals_made = excluded.field_goals_made,
			field_goals_att  = excluded.field_goals_att,
			three_made       = excluded.three_made,
			three_att        = excluded.three_att,
			free_throws_made = excluded.free_throws_made,
			free_throws_att  = excluded.free_throws_att,
			plus_minus       = excluded.plus_minus,
			updated_at       = excluded.updated_at`)
	if err != nil {
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	count := 0
	for _, team := range []*model.TeamInGame{&g.GameData.HomeTeam, &g.GameData.AwayTeam} {
		for i := range team.Players {
			p := &team.Players[i]
			st := &p.Statistics
			position := ""
			if p.Position != nil {
				position = *p.Position
			}
			if _, err := stmt.ExecContext(ctx,
				g.GameData.GameID, p.PersonID, team.TeamID, p.Name, position,
				p.Starter, p.Played, st.MinutesCalculated, st.Points,
				st.ReboundsTotal, st.Assists, st.Steals, st.Blocks,
				st.Turnovers, st.FoulsPersonal,
				st.FieldGoalsMade, st.FieldGoalsAttempted,
				st.ThreePointersMade, st.ThreePointersAttempted,
				st.FreeThrowsMade, st.FreeThrowsAttempted,
				st.PlusMinusPoints, now,
			); err != nil {
				return 0, fmt.Errorf("upsert line for player %d: %w", p.PersonID, err)
			}
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	s.log.Debug().Str("game_id", g.GameData.GameID).Int("lines", count).Msg("player box scores upserted")
	return count, nil
}

// PlayerLine is one stored box-score row.
type PlayerLine struct {
	GameID              string  `json:"game_id"`
	PersonID            int64   `json:"person_id"`
	TeamID              int64   `json:"team_id"`
	Name                string  `json:"name"`
	Position            string  `json:"position"`
	Starter             string  `json:"starter"`
	Played              string  `json:"played"`
	Minutes             float64 `json:"minutes"`
	Points              int     `json:"points"`
	Rebounds            int     `json:"rebounds"`
	Assists             int     `json:"assists"`
	Steals              int     `json:"steals"`
	Blocks              int     `json:"blocks"`
	Turnovers           int     `json:"turnovers"`
	FoulsPersonal       int     `json:"fouls_personal"`
	FieldGoalsMade      int     `json:"field_goals_made"`
	FieldGoalsAttempted int     `json:"field_goals_attempted"`
	ThreeMade           int     `json:"three_made"`
	ThreeAttempted      int     `json:"three_attempted"`
	FreeThrowsMade      int     `json:"free_throws_made"`
	FreeThrowsAttempted int     `json:"free_throws_attempted"`
	PlusMinus           float64 `json:"plus_minus"`
}

// ListPlayerLines reads back all stored lines for one game, ordered by team
// then points. ErrNotFound when the game has no lines at all.
func (s *Store) ListPlayerLines(ctx context.Context, gameID string) ([]PlayerLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT game_id, person_id, team_id, name, position, starter, played,
		       minutes, points, rebounds, assists, steals, blocks, turnovers,
		       fouls_personal, field_goals_made, field_goals_att,
		       three_made, three_att, free_throws_made, free_throws_att, plus_minus
		FROM player_boxscores
		WHERE game_id = ?
		ORDER BY team_id, points DESC`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query lines: %w", err)
	}
	defer rows.Close()

	var lines []PlayerLine
	for rows.Next() {
		var l PlayerLine
		if err := rows.Scan(
			&l.GameID, &l.PersonID, &l.TeamID, &l.Name, &l.Position,
			&l.Starter, &l.Played, &l.Minutes, &l.Points, &l.Rebounds,
			&l.Assists, &l.Steals, &l.Blocks, &l.Turnovers, &l.FoulsPersonal,
			&l.FieldGoalsMade, &l.FieldGoalsAttempted, &l.ThreeMade,
			&l.ThreeAttempted, &l.FreeThrowsMade, &l.FreeThrowsAttempted,
			&l.PlusMinus,
		); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrNotFound
	}
	return lines, nil
}

// SyncRecord is one ingestion run's audit row.
type SyncRecord struct {
	SyncType       string
	GameID         string
	Status         string
	ItemsProcessed int
	ItemsSucceeded int
	StartedAt      time.Time
	FinishedAt     time.Time
	Details        string
	ErrorMessage   string
}

// RecordSyncHistory appends an audit row for one sync run.
func (s *Store) RecordSyncHistory(ctx context.Context, rec SyncRecord) error {
	details := rec.Details
	if details == "" {
		details = "{}"
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_history (
			sync_type, game_id, status, items_processed, items_succeeded,
			started_at, finished_at, details, error_message
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SyncType, rec.GameID, rec.Status, rec.ItemsProcessed,
		rec.ItemsSucceeded, rec.StartedAt.Format(time.RFC3339),
		rec.FinishedAt.Format(time.RFC3339), details, rec.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("record sync history: %w", err)
	}
	return nil
}

// GameRow is the stored game header.
type GameRow struct {
	GameID      string `json:"game_id"`
	GameCode    string `json:"game_code"`
	GameStatus  int    `json:"game_status"`
	StatusText  string `json:"status_text"`
	Period      int    `json:"period"`
	GameClock   string `json:"game_clock"`
	HomeTeamID  int64  `json:"home_team_id"`
	HomeTricode string `json:"home_tricode"`
	HomeScore   int    `json:"home_score"`
	AwayTeamID  int64  `json:"away_team_id"`
	AwayTricode string `json:"away_tricode"`
	AwayScore   int    `json:"away_score"`
}

// GetGame reads back one stored game header.
func (s *Store) GetGame(ctx context.Context, gameID string) (GameRow, error) {
	var g GameRow
	err := s.db.QueryRowContext(ctx, `
		SELECT game_id, game_code, game_status, status_text, period, game_clock,
		       home_team_id, home_tricode, home_score,
		       away_team_id, away_tricode, away_score
		FROM games WHERE game_id = ?`, gameID).Scan(
		&g.GameID, &g.GameCode, &g.GameStatus, &g.StatusText, &g.Period,
		&g.GameClock, &g.HomeTeamID, &g.HomeTricode, &g.HomeScore,
		&g.AwayTeamID, &g.AwayTricode, &g.AwayScore,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GameRow{}, ErrNotFound
	}
	if err != nil {
		return GameRow{}, fmt.Errorf("get game %s: %w", gameID, err)
	}
	return g, nil
}
