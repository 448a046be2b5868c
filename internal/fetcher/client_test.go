package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/shawn0818/lebron-bot/internal/fetcher"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *fetcher.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return fetcher.New(fetcher.Options{BaseURL: srv.URL, Timeout: 2 * time.Second}, zerolog.Nop())
}

func TestClient_BoxScore(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"game": {"gameId": "0022400123"}}`))
	})

	body, err := client.BoxScore(context.Background(), "0022400123")
	require.NoError(t, err)
	require.JSONEq(t, `{"game": {"gameId": "0022400123"}}`, string(body))
	require.Equal(t, "/static/json/liveData/boxscore/boxscore_0022400123.json", gotPath)
}

func TestClient_PlayByPlay(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"actions": []}`))
	})

	_, err := client.PlayByPlay(context.Background(), "0022400123")
	require.NoError(t, err)
	require.Equal(t, "/static/json/liveData/playbyplay/playbyplay_0022400123.json", gotPath)
}

func TestClient_PlayerIndex(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"resultSets": []}`))
	})

	_, err := client.PlayerIndex(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/static/json/staticData/playerindex.json", gotPath)
}

func TestClient_CareerStats(t *testing.T) {
	var gotURI string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.URL.RequestURI()
		w.Write([]byte(`{"resultSets": []}`))
	})

	_, err := client.CareerStats(context.Background(), 2544)
	require.NoError(t, err)
	require.Equal(t, "/stats/playercareerstats?PlayerID=2544", gotURI)
}

func TestClient_GameLog(t *testing.T) {
	var gotURI string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.URL.RequestURI()
		w.Write([]byte(`{"resultSets": []}`))
	})

	_, err := client.GameLog(context.Background(), 2544, "2024-25")
	require.NoError(t, err)
	require.Equal(t, "/stats/playergamelog?PlayerID=2544&Season=2024-25", gotURI)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.BoxScore(context.Background(), "0022400123")
	require.ErrorIs(t, err, fetcher.ErrUpstream)
}

func TestClient_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.BoxScore(ctx, "0022400123")
	require.Error(t, err)
}
