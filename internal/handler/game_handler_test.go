package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/shawn0818/lebron-bot/internal/handler"
	"github.com/shawn0818/lebron-bot/internal/model"
	"github.com/shawn0818/lebron-bot/internal/parser"
	"github.com/shawn0818/lebron-bot/internal/service"
	"github.com/shawn0818/lebron-bot/internal/storage"
)

// stubPinger satisfies handler.Pinger; readiness outcome is configurable.
type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

// stubGameLoader serves one canned game or error, recording the force flag.
type stubGameLoader struct {
	game  *model.Game
	err   error
	force bool
}

func (s *stubGameLoader) Load(ctx context.Context, gameID string, force bool) (*model.Game, error) {
	s.force = force
	return s.game, s.err
}

// stubRoster backs the player resolution and stat endpoints.
type stubRoster struct {
	players   []parser.PlayerProfile
	reloadErr error
	ids       map[string]int64
	names     map[int64]string

	career    map[string]parser.StatTotals
	careerErr error
	season    *parser.StatTotals
	seasonErr error
}

func (s *stubRoster) ReloadRoster(ctx context.Context) ([]parser.PlayerProfile, error) {
	return s.players, s.reloadErr
}
func (s *stubRoster) ResolveID(name string) (int64, bool) {
	id, ok := s.ids[name]
	return id, ok
}
func (s *stubRoster) ResolveName(id int64) (string, bool) {
	name, ok := s.names[id]
	return name, ok
}
func (s *stubRoster) Profile(personID int64) (parser.PlayerProfile, bool) {
	for _, p := range s.players {
		if p.PersonID == personID {
			return p, true
		}
	}
	return parser.PlayerProfile{}, false
}
func (s *stubRoster) CareerStats(ctx context.Context, personID int64) (map[string]parser.StatTotals, error) {
	return s.career, s.careerErr
}
func (s *stubRoster) SeasonStats(ctx context.Context, personID int64, season string) (*parser.StatTotals, error) {
	return s.season, s.seasonErr
}

// stubBoxScores backs the stored box-score endpoints.
type stubBoxScores struct {
	row      storage.GameRow
	rowErr   error
	lines    []storage.PlayerLine
	linesErr error
}

func (s *stubBoxScores) GetGame(ctx context.Context, gameID string) (storage.GameRow, error) {
	return s.row, s.rowErr
}
func (s *stubBoxScores) ListPlayerLines(ctx context.Context, gameID string) ([]storage.PlayerLine, error) {
	return s.lines, s.linesErr
}

func i64(v int64) *int64                        { return &v }
func shot(v model.ShotResult) *model.ShotResult { return &v }

func stubGame() *model.Game {
	data := model.GameData{
		GameID:         "0022400123",
		GameStatus:     model.StatusInProgress,
		GameStatusText: "Q4 01:30",
		Period:         4,
		GameClock:      "PT01M30.00S",
		HomeTeam: model.TeamInGame{
			TeamID: 10, TeamTricode: "GSW", Score: 101,
			Players: []model.PlayerInGame{
				{PersonID: 201939, Name: "Stephen Curry", OnCourt: "1", Played: "1"},
			},
		},
		AwayTeam: model.TeamInGame{
			TeamID: 20, TeamTricode: "LAL", Score: 98,
			Players: []model.PlayerInGame{
				{PersonID: 2544, Name: "LeBron James", OnCourt: "1", Played: "1"},
			},
		},
	}
	pbp := &model.PlayByPlay{
		Actions: []model.Event{
			{ActionNumber: 1, Period: 4, Clock: "01:30", ActionType: model.ActionThreePoint,
				ShotResult: shot(model.ShotMade), PersonID: i64(201939), TeamID: i64(10)},
			{ActionNumber: 2, Period: 4, Clock: "01:05", ActionType: model.ActionRebound,
				PersonID: i64(2544), TeamID: i64(20)},
		},
	}
	return model.NewGame(nil, data, pbp, zerolog.Nop())
}

func newRouter(loader handler.GameLoader, roster handler.RosterService, boxScores handler.BoxScoreReader, pinger handler.Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.Register(r, pinger, loader, roster, boxScores)
	return r
}

func doGET(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestGameHandler_Status(t *testing.T) {
	loader := &stubGameLoader{game: stubGame()}
	r := newRouter(loader, &stubRoster{}, &stubBoxScores{}, stubPinger{})

	w := doGET(t, r, "/api/v1/games/0022400123/status")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var status model.StatusSnapshot
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if status.HomeScore != 101 || status.AwayScore != 98 {
		t.Fatalf("unexpected scores: %+v", status)
	}
	if status.TimeRemaining != "01:30" {
		t.Fatalf("expected formatted clock, got %q", status.TimeRemaining)
	}
	if loader.force {
		t.Fatal("force should default to false")
	}
}

func TestGameHandler_Status_ForceQuery(t *testing.T) {
	loader := &stubGameLoader{game: stubGame()}
	r := newRouter(loader, &stubRoster{}, &stubBoxScores{}, stubPinger{})

	doGET(t, r, "/api/v1/games/0022400123/status?force=1")
	if !loader.force {
		t.Fatal("force=1 should propagate to the loader")
	}
}

func TestGameHandler_InvalidGameID(t *testing.T) {
	loader := &stubGameLoader{err: service.ErrInvalidGameID}
	r := newRouter(loader, &stubRoster{}, &stubBoxScores{}, stubPinger{})

	w := doGET(t, r, "/api/v1/games/bogus/status")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGameHandler_InvalidPayloadMapsToBadGateway(t *testing.T) {
	loader := &stubGameLoader{err: model.NewInvalidPayload([]model.FieldError{
		{Field: "game.period", Message: "failed \"gte\" constraint"},
	})}
	r := newRouter(loader, &stubRoster{}, &stubBoxScores{}, stubPinger{})

	w := doGET(t, r, "/api/v1/games/0022400123/status")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}

	var payload struct {
		Error       string             `json:"error"`
		FieldErrors []model.FieldError `json:"field_errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error != "invalid_feed_payload" || len(payload.FieldErrors) != 1 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestGameHandler_EventsFilteredByQuery(t *testing.T) {
	loader := &stubGameLoader{game: stubGame()}
	r := newRouter(loader, &stubRoster{}, &stubBoxScores{}, stubPinger{})

	w := doGET(t, r, "/api/v1/games/0022400123/events?types=3pt&team_id=10")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var events []model.Event
	if err := json.Unmarshal(w.Body.Bytes(), &events); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(events) != 1 || events[0].ActionType != model.ActionThreePoint {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestGameHandler_TeamStats_UnknownTeam(t *testing.T) {
	loader := &stubGameLoader{game: stubGame()}
	r := newRouter(loader, &stubRoster{}, &stubBoxScores{}, stubPinger{})

	w := doGET(t, r, "/api/v1/games/0022400123/teams/999/stats")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGameHandler_AssistedShots_RequiresPasser(t *testing.T) {
	loader := &stubGameLoader{game: stubGame()}
	r := newRouter(loader, &stubRoster{}, &stubBoxScores{}, stubPinger{})

	w := doGET(t, r, "/api/v1/games/0022400123/shots/assisted")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestPlayerHandler_Resolve(t *testing.T) {
	roster := &stubRoster{
		ids:   map[string]int64{"curry": 201939},
		names: map[int64]string{201939: "Stephen Curry"},
	}
	r := newRouter(&stubGameLoader{}, roster, &stubBoxScores{}, stubPinger{})

	w := doGET(t, r, "/api/v1/players/resolve?name=curry")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doGET(t, r, "/api/v1/players/resolve?name=nobody")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w = doGET(t, r, "/api/v1/players/resolve")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestPlayerHandler_Profile(t *testing.T) {
	roster := &stubRoster{
		players: []parser.PlayerProfile{{PersonID: 2544, Name: "LeBron James", TeamTricode: "LAL"}},
	}
	r := newRouter(&stubGameLoader{}, roster, &stubBoxScores{}, stubPinger{})

	w := doGET(t, r, "/api/v1/players/2544/profile")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var profile parser.PlayerProfile
	if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if profile.Name != "LeBron James" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	w = doGET(t, r, "/api/v1/players/1/profile")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestPlayerHandler_Career(t *testing.T) {
	roster := &stubRoster{
		career: map[string]parser.StatTotals{"regular_season": {GamesPlayed: 1000, Points: 27.1}},
	}
	r := newRouter(&stubGameLoader{}, roster, &stubBoxScores{}, stubPinger{})

	w := doGET(t, r, "/api/v1/players/2544/career")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var career map[string]parser.StatTotals
	if err := json.Unmarshal(w.Body.Bytes(), &career); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if career["regular_season"].GamesPlayed != 1000 {
		t.Fatalf("unexpected career stats: %+v", career)
	}

	// No totals tables upstream reads as absent, not as an error.
	empty := newRouter(&stubGameLoader{}, &stubRoster{}, &stubBoxScores{}, stubPinger{})
	w = doGET(t, empty, "/api/v1/players/2544/career")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestPlayerHandler_Season(t *testing.T) {
	roster := &stubRoster{season: &parser.StatTotals{GamesPlayed: 70, Points: 1850}}
	r := newRouter(&stubGameLoader{}, roster, &stubBoxScores{}, stubPinger{})

	w := doGET(t, r, "/api/v1/players/2544/season?season=2024-25")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var season parser.StatTotals
	if err := json.Unmarshal(w.Body.Bytes(), &season); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if season.GamesPlayed != 70 {
		t.Fatalf("unexpected season stats: %+v", season)
	}

	w = doGET(t, r, "/api/v1/players/2544/season")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without season, got %d", w.Code)
	}

	empty := newRouter(&stubGameLoader{}, &stubRoster{}, &stubBoxScores{}, stubPinger{})
	w = doGET(t, empty, "/api/v1/players/2544/season?season=2024-25")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestStatsHandler_StoredGame(t *testing.T) {
	boxScores := &stubBoxScores{row: storage.GameRow{GameID: "0022400123", HomeScore: 120}}
	r := newRouter(&stubGameLoader{}, &stubRoster{}, boxScores, stubPinger{})

	w := doGET(t, r, "/api/v1/boxscores/0022400123")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	boxScores.rowErr = storage.ErrNotFound
	w = doGET(t, r, "/api/v1/boxscores/0022499999")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	r := newRouter(&stubGameLoader{}, &stubRoster{}, &stubBoxScores{}, stubPinger{})

	if w := doGET(t, r, "/live"); w.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", w.Code)
	}
	if w := doGET(t, r, "/ready"); w.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200, got %d", w.Code)
	}

	degraded := newRouter(&stubGameLoader{}, &stubRoster{}, &stubBoxScores{}, stubPinger{err: errors.New("db down")})
	if w := doGET(t, degraded, "/ready"); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("readiness: expected 503, got %d", w.Code)
	}
}
