// Package model contains the typed game domain: the play-by-play event
// hierarchy, the box-score aggregates and the derived-query surface over one
// game snapshot. Everything here is pure in-memory computation; the aggregate
// is an immutable value after construction and updates are whole-object
// swaps, so concurrent readers need no locking.
package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Arena describes the venue.
type Arena struct {
	ArenaID       int64  `json:"arenaId" validate:"gte=0"`
	ArenaName     string `json:"arenaName"`
	ArenaCity     string `json:"arenaCity"`
	ArenaState    string `json:"arenaState"`
	ArenaCountry  string `json:"arenaCountry"`
	ArenaTimezone string `json:"arenaTimezone"`
}

// Official is one member of the officiating crew.
type Official struct {
	PersonID   int64  `json:"personId" validate:"gte=0"`
	Name       string `json:"name"`
	NameI      string `json:"nameI"`
	FirstName  string `json:"firstName"`
	FamilyName string `json:"familyName"`
	JerseyNum  string `json:"jerseyNum"`
	Assignment string `json:"assignment"`
}

// PeriodScore is one team's score for a single period.
type PeriodScore struct {
	Period     int    `json:"period" validate:"gte=1"`
	PeriodType string `json:"periodType"`
	Score      int    `json:"score" validate:"gte=0"`
}

// PlayerInGame is one roster entry with its box-score line. The feed encodes
// the starter/oncourt/played flags as presence strings ("1"/"0"); they are
// kept verbatim so the aggregate round-trips the raw payload.
type PlayerInGame struct {
	Status                PlayerStatus      `json:"status" validate:"oneof=ACTIVE INACTIVE"`
	Order                 int               `json:"order" validate:"gte=0"`
	PersonID              int64             `json:"personId" validate:"gte=0"`
	JerseyNum             string            `json:"jerseyNum"`
	Position              *string           `json:"position,omitempty"`
	Starter               string            `json:"starter"`
	OnCourt               string            `json:"oncourt"`
	Played                string            `json:"played"`
	Statistics            PlayerStatistics  `json:"statistics"`
	Name                  string            `json:"name" validate:"required"`
	NameI                 string            `json:"nameI"`
	FirstName             string            `json:"firstName"`
	FamilyName            string            `json:"familyName"`
	NotPlayingReason      *NotPlayingReason `json:"notPlayingReason,omitempty"`
	NotPlayingDescription *string           `json:"notPlayingDescription,omitempty"`
}

// TeamInGame is one side's identity, running score and roster.
type TeamInGame struct {
	TeamID            int64          `json:"teamId" validate:"gte=0"`
	TeamName          string         `json:"teamName"`
	TeamCity          string         `json:"teamCity"`
	TeamTricode       string         `json:"teamTricode"`
	Score             int            `json:"score" validate:"gte=0"`
	InBonus           string         `json:"inBonus"`
	TimeoutsRemaining int            `json:"timeoutsRemaining" validate:"gte=0"`
	Periods           []PeriodScore  `json:"periods" validate:"dive"`
	Players           []PlayerInGame `json:"players" validate:"dive"`
	Statistics        TeamStatistics `json:"statistics"`
}

// GameData is the box-score header: identity, schedule, lifecycle state,
// venue, crew and the two team aggregates.
type GameData struct {
	GameID            string     `json:"gameId"`
	GameTimeLocal     time.Time  `json:"gameTimeLocal"`
	GameTimeUTC       time.Time  `json:"gameTimeUTC"`
	GameTimeHome      time.Time  `json:"gameTimeHome"`
	GameTimeAway      time.Time  `json:"gameTimeAway"`
	GameEt            time.Time  `json:"gameEt"`
	GameTimeBeijing   time.Time  `json:"gameTimeBeijing"`
	Duration          int        `json:"duration" validate:"gte=0"`
	GameCode          string     `json:"gameCode"`
	GameStatus        GameStatus `json:"gameStatus" validate:"gte=1,lte=3"`
	GameStatusText    string     `json:"gameStatusText"`
	Period            int        `json:"period" validate:"gte=1"`
	RegulationPeriods int        `json:"regulationPeriods" validate:"gte=1"`
	GameClock         string     `json:"gameClock"`
	Attendance        int        `json:"attendance" validate:"gte=0"`
	Sellout           string     `json:"sellout"`
	Arena             Arena      `json:"arena"`
	Officials         []Official `json:"officials" validate:"dive"`
	HomeTeam          TeamInGame `json:"homeTeam"`
	AwayTeam          TeamInGame `json:"awayTeam"`
}

// beijingOffset is the fixed UTC+8 offset used for the derived report
// timestamp; the target audience follows games from China Standard Time.
var beijingOffset = time.FixedZone("CST", 8*60*60)

// DeriveBeijingTime fills GameTimeBeijing from the UTC tipoff.
func (g *GameData) DeriveBeijingTime() {
	if !g.GameTimeUTC.IsZero() {
		g.GameTimeBeijing = g.GameTimeUTC.In(beijingOffset)
	}
}

// ApplyDefaults fills the lifecycle fields a pregame header may omit.
// Runs before validation; a sparse scheduled-game snapshot is still a
// well-formed payload.
func (g *GameData) ApplyDefaults() {
	if g.GameStatus == 0 {
		g.GameStatus = StatusNotStarted
	}
	if g.GameStatusText == "" {
		g.GameStatusText = "Not Started"
	}
	if g.Period == 0 {
		g.Period = 1
	}
	if g.RegulationPeriods == 0 {
		g.RegulationPeriods = 4
	}
}

// PlayByPlay is the ordered action list plus the raw header sections the
// feed ships alongside it.
type PlayByPlay struct {
	Game    map[string]json.RawMessage `json:"game"`
	Meta    map[string]json.RawMessage `json:"meta,omitempty"`
	Actions []Event                    `json:"actions"`
}

// Game is the root aggregate: one immutable snapshot of a fetched game.
// All Get-style queries return plain records decoupled from the typed
// internals; that is the hand-off contract to reporting and sync code.
type Game struct {
	Meta       map[string]json.RawMessage `json:"meta"`
	GameData   GameData                   `json:"gameData"`
	PlayByPlay *PlayByPlay                `json:"playByPlay,omitempty"`

	log zerolog.Logger
}

// NewGame wires the aggregate with its diagnostics dependency. Derived
// queries log and degrade instead of failing, so they need a logger at hand.
func NewGame(meta map[string]json.RawMessage, data GameData, pbp *PlayByPlay, logger zerolog.Logger) *Game {
	return &Game{
		Meta:       meta,
		GameData:   data,
		PlayByPlay: pbp,
		log:        logger.With().Str("module", "model").Str("game_id", data.GameID).Logger(),
	}
}

// StatusSnapshot is the flattened game-state record for reporting.
type StatusSnapshot struct {
	StatusText    string `json:"status_text"`
	PeriodName    string `json:"period_name"`
	CurrentPeriod int    `json:"current_period"`
	TimeRemaining string `json:"time_remaining"`
	HomeScore     int    `json:"home_score"`
	AwayScore     int    `json:"away_score"`
	HomeTimeouts  int    `json:"home_timeouts"`
	AwayTimeouts  int    `json:"away_timeouts"`
	HomeBonus     bool   `json:"home_bonus"`
	AwayBonus     bool   `json:"away_bonus"`
}

// Status reports the current period, remaining clock and score state.
// An unparsable game clock falls back to the raw feed string.
func (g *Game) Status() StatusSnapshot {
	data := &g.GameData

	remaining := data.GameClock
	if seconds, err := ParseDuration(data.GameClock); err == nil {
		remaining = FormatClock(seconds)
	} else {
		g.log.Warn().Str("clock", data.GameClock).Msg("unparsable game clock, reporting raw value")
	}

	return StatusSnapshot{
		StatusText:    data.GameStatusText,
		PeriodName:    fmt.Sprintf("Period %d", data.Period),
		CurrentPeriod: data.Period,
		TimeRemaining: remaining,
		HomeScore:     data.HomeTeam.Score,
		AwayScore:     data.AwayTeam.Score,
		HomeTimeouts:  data.HomeTeam.TimeoutsRemaining,
		AwayTimeouts:  data.AwayTeam.TimeoutsRemaining,
		HomeBonus:     data.HomeTeam.InBonus == "1",
		AwayBonus:     data.AwayTeam.InBonus == "1",
	}
}

// LineupSlot is one on-court player projection.
type LineupSlot struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

// Lineup holds both sides' on-court fives.
type Lineup struct {
	Home []LineupSlot `json:"home"`
	Away []LineupSlot `json:"away"`
}

func onCourtPlayers(players []PlayerInGame) []LineupSlot {
	slots := make([]LineupSlot, 0, 5)
	for i := range players {
		p := &players[i]
		if p.OnCourt != "1" {
			continue
		}
		slot := LineupSlot{ID: p.PersonID, Name: p.Name}
		if p.Position != nil {
			slot.Position = *p.Position
		}
		slots = append(slots, slot)
	}
	return slots
}

// CurrentLineup projects the roster entries currently marked on court.
func (g *Game) CurrentLineup() Lineup {
	return Lineup{
		Home: onCourtPlayers(g.GameData.HomeTeam.Players),
		Away: onCourtPlayers(g.GameData.AwayTeam.Players),
	}
}

// TeamStats returns the aggregate for the given team id, or nil when the id
// matches neither side. Callers routinely probe with ids from the other
// query context, so a miss is an ordinary absent result.
func (g *Game) TeamStats(teamID int64) *TeamInGame {
	switch teamID {
	case g.GameData.HomeTeam.TeamID:
		return &g.GameData.HomeTeam
	case g.GameData.AwayTeam.TeamID:
		return &g.GameData.AwayTeam
	}
	return nil
}

// PlayerStats scans both rosters for the given player id. Rosters are small
// enough that a linear scan beats maintaining an index.
func (g *Game) PlayerStats(playerID int64) *PlayerInGame {
	for _, team := range []*TeamInGame{&g.GameData.HomeTeam, &g.GameData.AwayTeam} {
		for i := range team.Players {
			if team.Players[i].PersonID == playerID {
				return &team.Players[i]
			}
		}
	}
	return nil
}

// Events returns the stored action sequence, empty when no play-by-play was
// attached to this snapshot.
func (g *Game) Events() []Event {
	if g.PlayByPlay == nil {
		return nil
	}
	return g.PlayByPlay.Actions
}

// FilterEvents applies the conjunctive filter over the stored sequence and
// returns a fresh slice in original order.
func (g *Game) FilterEvents(f EventFilter) []Event {
	events := g.Events()
	if len(events) == 0 {
		return []Event{}
	}
	return FilterEvents(events, f)
}

// ShotRecord is a flattened shot-chart entry.
type ShotRecord struct {
	XLegacy          *int       `json:"x_legacy"`
	YLegacy          *int       `json:"y_legacy"`
	ShotResult       ShotResult `json:"shot_result"`
	Description      string     `json:"description"`
	PlayerID         *int64     `json:"player_id"`
	TeamID           *int64     `json:"team_id"`
	Period           int        `json:"period"`
	ActionType       string     `json:"action_type"`
	Time             string     `json:"time"`
	Assisted         bool       `json:"assisted"`
	AssistPlayerID   *int64     `json:"assist_player_id"`
	AssistPlayerName *string    `json:"assist_player_name"`
}

// ShotData flattens every 2pt/3pt action, optionally restricted to one
// shooter, into shot-chart records.
func (g *Game) ShotData(playerID *int64) []ShotRecord {
	var shots []ShotRecord
	for _, e := range g.Events() {
		shot, ok := e.AsShot()
		if !ok {
			continue
		}
		if playerID != nil && (e.PersonID == nil || *e.PersonID != *playerID) {
			continue
		}
		shots = append(shots, ShotRecord{
			XLegacy:          shot.XLegacy,
			YLegacy:          shot.YLegacy,
			ShotResult:       shot.Result,
			Description:      e.Description,
			PlayerID:         e.PersonID,
			TeamID:           e.TeamID,
			Period:           e.Period,
			ActionType:       e.ActionType,
			Time:             e.Clock,
			Assisted:         shot.AssistedBy != nil,
			AssistPlayerID:   shot.AssistedBy,
			AssistPlayerName: e.AssistPlayerNameInitial,
		})
	}
	return shots
}

// AssistedShotRecord is one made basket created by a specific passer.
type AssistedShotRecord struct {
	X           *int    `json:"x"`
	Y           *int    `json:"y"`
	ShotType    string  `json:"shot_type"`
	ShooterID   *int64  `json:"shooter_id"`
	ShooterName *string `json:"shooter_name"`
	TeamID      *int64  `json:"team_id"`
	Period      int     `json:"period"`
	Time        string  `json:"time"`
	Description string  `json:"description"`
	Area        string  `json:"area"`
	Distance    float64 `json:"distance"`
}

// AssistedShotData collects the made shots set up by the given passer.
// The feed does not track assists on misses, so missed shots are excluded
// outright rather than reported with zero value.
func (g *Game) AssistedShotData(passerID int64) []AssistedShotRecord {
	var assisted []AssistedShotRecord
	for _, e := range g.Events() {
		shot, ok := e.AsShot()
		if !ok {
			continue
		}
		if shot.AssistedBy == nil || *shot.AssistedBy != passerID || shot.Result != ShotMade {
			continue
		}
		assisted = append(assisted, AssistedShotRecord{
			X:           shot.XLegacy,
			Y:           shot.YLegacy,
			ShotType:    e.ActionType,
			ShooterID:   e.PersonID,
			ShooterName: e.PlayerName,
			TeamID:      e.TeamID,
			Period:      e.Period,
			Time:        e.Clock,
			Description: e.Description,
			Area:        shot.Area,
			Distance:    shot.Distance,
		})
	}
	return assisted
}

// TeamShotData groups shot-chart records by player for one team, covering
// only roster entries that actually played. An id matching neither side is
// a caller mistake: logged, empty result, never an error.
func (g *Game) TeamShotData(teamID int64) map[int64][]ShotRecord {
	teamShots := make(map[int64][]ShotRecord)

	team := g.TeamStats(teamID)
	if team == nil {
		g.log.Warn().Int64("team_id", teamID).Msg("team not in this game, returning no shot data")
		return teamShots
	}

	for i := range team.Players {
		p := &team.Players[i]
		if p.Played != "1" {
			continue
		}
		if shots := g.ShotData(&p.PersonID); len(shots) > 0 {
			teamShots[p.PersonID] = shots
		}
	}
	return teamShots
}
