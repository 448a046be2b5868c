package storage_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/shawn0818/lebron-bot/internal/model"
	"github.com/shawn0818/lebron-bot/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func storedGame() *model.Game {
	position := "G"
	data := model.GameData{
		GameID:         "0022400123",
		GameCode:       "20250115/LALGSW",
		GameStatus:     model.StatusFinished,
		GameStatusText: "Final",
		Period:         4,
		GameClock:      "PT00M00.00S",
		GameTimeUTC:    time.Date(2025, 1, 16, 3, 30, 0, 0, time.UTC),
		Attendance:     18064,
		HomeTeam: model.TeamInGame{
			TeamID:      1610612744,
			TeamTricode: "GSW",
			Score:       120,
			Players: []model.PlayerInGame{
				{
					PersonID: 201939, Name: "Stephen Curry", Position: &position,
					Starter: "1", Played: "1",
					Statistics: model.PlayerStatistics{
						MinutesCalculated: 36.5, Points: 32, ReboundsTotal: 5,
						Assists: 8, FieldGoalsMade: 11, FieldGoalsAttempted: 20,
						ThreePointersMade: 6, ThreePointersAttempted: 12,
					},
				},
			},
		},
		AwayTeam: model.TeamInGame{
			TeamID:      1610612747,
			TeamTricode: "LAL",
			Score:       112,
			Players: []model.PlayerInGame{
				{
					PersonID: 2544, Name: "LeBron James",
					Starter: "1", Played: "1",
					Statistics: model.PlayerStatistics{
						MinutesCalculated: 38.2, Points: 28, ReboundsTotal: 9, Assists: 11,
					},
				},
			},
		},
	}
	return model.NewGame(nil, data, nil, zerolog.Nop())
}

func TestStore_UpsertAndGetGame(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	game := storedGame()

	require.NoError(t, store.UpsertGame(ctx, game))

	row, err := store.GetGame(ctx, "0022400123")
	require.NoError(t, err)
	require.Equal(t, "0022400123", row.GameID)
	require.Equal(t, int(model.StatusFinished), row.GameStatus)
	require.Equal(t, "GSW", row.HomeTricode)
	require.Equal(t, 120, row.HomeScore)
	require.Equal(t, 112, row.AwayScore)
}

func TestStore_UpsertGame_UpdatesInPlace(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	game := storedGame()

	game.GameData.GameStatus = model.StatusInProgress
	game.GameData.HomeTeam.Score = 58
	require.NoError(t, store.UpsertGame(ctx, game))

	game.GameData.GameStatus = model.StatusFinished
	game.GameData.HomeTeam.Score = 120
	require.NoError(t, store.UpsertGame(ctx, game))

	row, err := store.GetGame(ctx, "0022400123")
	require.NoError(t, err)
	require.Equal(t, int(model.StatusFinished), row.GameStatus)
	require.Equal(t, 120, row.HomeScore)
}

func TestStore_GetGame_NotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetGame(context.Background(), "0022499999")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_PlayerLines(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	game := storedGame()

	count, err := store.UpsertPlayerLines(ctx, game)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	lines, err := store.ListPlayerLines(ctx, "0022400123")
	require.NoError(t, err)
	require.Len(t, lines, 2)

	// Ordered by team then points.
	require.Equal(t, int64(201939), lines[0].PersonID)
	require.Equal(t, 32, lines[0].Points)
	require.Equal(t, "G", lines[0].Position)
	require.InDelta(t, 36.5, lines[0].Minutes, 0.001)

	// Upserting again must not duplicate rows.
	game.GameData.HomeTeam.Players[0].Statistics.Points = 35
	_, err = store.UpsertPlayerLines(ctx, game)
	require.NoError(t, err)

	lines, err = store.ListPlayerLines(ctx, "0022400123")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, 35, lines[0].Points)
}

func TestStore_ListPlayerLines_NotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.ListPlayerLines(context.Background(), "0022499999")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_RecordSyncHistory(t *testing.T) {
	store := openTestStore(t)

	rec := storage.SyncRecord{
		SyncType:       "boxscore",
		GameID:         "0022400123",
		Status:         "success",
		ItemsProcessed: 1,
		ItemsSucceeded: 1,
		StartedAt:      time.Now().UTC(),
		FinishedAt:     time.Now().UTC(),
	}
	require.NoError(t, store.RecordSyncHistory(context.Background(), rec))
}

func TestStore_Ping(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Ping(context.Background()))
}
