package parser

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// PlayerProfile is one league-roster entry from the player index feed.
type PlayerProfile struct {
	PersonID    int64  `json:"person_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Name        string `json:"name"`
	TeamID      int64  `json:"team_id"`
	TeamCity    string `json:"team_city"`
	TeamName    string `json:"team_name"`
	TeamTricode string `json:"team_tricode"`
	Position    string `json:"position"`
	Height      string `json:"height"`
	Weight      string `json:"weight"`
	Jersey      string `json:"jersey"`
	College     string `json:"college"`
	Country     string `json:"country"`
	FromYear    string `json:"from_year"`
	ToYear      string `json:"to_year"`
}

// NormalizeName collapses runs of whitespace into single spaces while
// preserving case for the display key.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// PlayerNameIndex is the bidirectional name/id lookup rebuilt wholesale on
// each roster ingestion. It is the one mutable shared structure in the core:
// rebuilds happen under a single writer while concurrent readers tolerate
// transient misses mid-rebuild.
type PlayerNameIndex struct {
	mu       sync.RWMutex
	nameToID map[string]int64
	idToName map[int64]string
	altToID  map[string]int64
}

// NewPlayerNameIndex returns an empty index.
func NewPlayerNameIndex() *PlayerNameIndex {
	idx := &PlayerNameIndex{}
	idx.reset()
	return idx
}

func (idx *PlayerNameIndex) reset() {
	idx.nameToID = make(map[string]int64)
	idx.idToName = make(map[int64]string)
	idx.altToID = make(map[string]int64)
}

// Add indexes the player under its normalized display name, a case-folded
// key and, first writer wins, its bare last name. The uniqueness guard keeps
// an ambiguous surname from silently overwriting an existing mapping.
func (idx *PlayerNameIndex) Add(p PlayerProfile) {
	full := NormalizeName(p.Name)
	if full == "" {
		return
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.nameToID[full] = p.PersonID
	idx.idToName[p.PersonID] = full
	idx.altToID[strings.ToLower(full)] = p.PersonID

	lastName := strings.ToLower(strings.TrimSpace(p.LastName))
	if lastName != "" {
		if _, taken := idx.altToID[lastName]; !taken {
			idx.altToID[lastName] = p.PersonID
		}
	}
}

// ResolveID looks a player id up by name: exact normalized match first, then
// the case-folded alternate keys. A miss is an ordinary absent result.
func (idx *PlayerNameIndex) ResolveID(name string) (int64, bool) {
	normalized := NormalizeName(name)

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if id, ok := idx.nameToID[normalized]; ok {
		return id, true
	}
	id, ok := idx.altToID[strings.ToLower(normalized)]
	return id, ok
}

// ResolveName is the direct reverse lookup.
func (idx *PlayerNameIndex) ResolveName(id int64) (string, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	name, ok := idx.idToName[id]
	return name, ok
}

// Clear drops all three maps. Run it before a full roster reload; the index
// holds no versioning, so a stale pair would survive a trade otherwise.
func (idx *PlayerNameIndex) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.reset()
}

// Len reports how many players are indexed.
func (idx *PlayerNameIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.idToName)
}

// resultSetsPayload is the header/row table shape the roster and career
// endpoints share: parallel arrays, one row per entity.
type resultSetsPayload struct {
	ResultSets []resultSet `json:"resultSets"`
}

type resultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

// row gives typed access to one rowSet entry keyed by header name.
type row map[string]any

func (r row) str(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (r row) id(key string) int64 {
	switch v := r[key].(type) {
	case float64:
		return int64(v)
	case string:
		id, _ := strconv.ParseInt(v, 10, 64)
		return id
	default:
		return 0
	}
}

func (r row) num(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

func (r row) count(key string) int { return int(r.num(key)) }

// PlayerParser ingests roster tables and maintains the name index.
type PlayerParser struct {
	index *PlayerNameIndex
	log   zerolog.Logger
}

// NewPlayerParser wires a parser with a fresh index.
func NewPlayerParser(logger zerolog.Logger) *PlayerParser {
	return &PlayerParser{
		index: NewPlayerNameIndex(),
		log:   logger.With().Str("module", "parser").Str("component", "player").Logger(),
	}
}

// Index exposes the shared name index for resolution callers.
func (p *PlayerParser) Index() *PlayerNameIndex { return p.index }

// ParsePlayerList decodes the roster table and rebuilds the name index
// wholesale. A payload without result sets yields an empty roster, logged as
// a warning rather than an error: the upstream occasionally serves empties.
func (p *PlayerParser) ParsePlayerList(data []byte) ([]PlayerProfile, error) {
	var payload resultSetsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode player list: %w", err)
	}
	if len(payload.ResultSets) == 0 {
		p.log.Warn().Msg("no resultSets in player list payload")
		return nil, nil
	}

	table := payload.ResultSets[0]
	players := make([]PlayerProfile, 0, len(table.RowSet))

	p.index.Clear()
	for _, raw := range table.RowSet {
		if len(raw) != len(table.Headers) {
			p.log.Warn().Int("cells", len(raw)).Int("headers", len(table.Headers)).Msg("skipping ragged roster row")
			continue
		}
		r := make(row, len(table.Headers))
		for i, h := range table.Headers {
			r[h] = raw[i]
		}

		player := PlayerProfile{
			PersonID:    r.id("PERSON_ID"),
			FirstName:   r.str("PLAYER_FIRST_NAME"),
			LastName:    r.str("PLAYER_LAST_NAME"),
			TeamID:      r.id("TEAM_ID"),
			TeamCity:    r.str("TEAM_CITY"),
			TeamName:    r.str("TEAM_NAME"),
			TeamTricode: r.str("TEAM_ABBREVIATION"),
			Position:    r.str("POSITION"),
			Height:      r.str("HEIGHT"),
			Weight:      r.str("WEIGHT"),
			Jersey:      r.str("JERSEY_NUMBER"),
			College:     r.str("COLLEGE"),
			Country:     r.str("COUNTRY"),
			FromYear:    r.str("FROM_YEAR"),
			ToYear:      r.str("TO_YEAR"),
		}
		player.Name = NormalizeName(player.FirstName + " " + player.LastName)

		p.index.Add(player)
		players = append(players, player)
	}

	p.log.Debug().Int("players", len(players)).Msg("parsed player list")
	return players, nil
}

// Result-set names of the career totals tables.
const (
	careerRegularSeasonSet = "CareerTotalsRegularSeason"
	careerPostSeasonSet    = "CareerTotalsPostSeason"
)

// StatTotals is one accumulated stat line from the career and game-log
// tables. Counting stats stay integers; the endpoints report points and
// per-game aggregates as floats, so those carry through as-is.
type StatTotals struct {
	GamesPlayed            int     `json:"games_played"`
	Minutes                float64 `json:"minutes"`
	Points                 float64 `json:"points"`
	Rebounds               float64 `json:"rebounds"`
	Assists                float64 `json:"assists"`
	Steals                 float64 `json:"steals"`
	Blocks                 float64 `json:"blocks"`
	Turnovers              float64 `json:"turnovers"`
	FieldGoalsMade         int     `json:"field_goals_made"`
	FieldGoalsAttempted    int     `json:"field_goals_attempted"`
	ThreePointersMade      int     `json:"three_pointers_made"`
	ThreePointersAttempted int     `json:"three_pointers_attempted"`
	FreeThrowsMade         int     `json:"free_throws_made"`
	FreeThrowsAttempted    int     `json:"free_throws_attempted"`
}

func (t *StatTotals) add(o StatTotals) {
	t.GamesPlayed += o.GamesPlayed
	t.Minutes += o.Minutes
	t.Points += o.Points
	t.Rebounds += o.Rebounds
	t.Assists += o.Assists
	t.Steals += o.Steals
	t.Blocks += o.Blocks
	t.Turnovers += o.Turnovers
	t.FieldGoalsMade += o.FieldGoalsMade
	t.FieldGoalsAttempted += o.FieldGoalsAttempted
	t.ThreePointersMade += o.ThreePointersMade
	t.ThreePointersAttempted += o.ThreePointersAttempted
	t.FreeThrowsMade += o.FreeThrowsMade
	t.FreeThrowsAttempted += o.FreeThrowsAttempted
}

// ParseCareerStats decodes the career totals payload into per-phase stat
// lines keyed "regular_season" and "playoffs". A payload carrying neither
// table yields nil, logged as a warning.
func (p *PlayerParser) ParseCareerStats(data []byte) (map[string]StatTotals, error) {
	var payload resultSetsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode career stats: %w", err)
	}
	if len(payload.ResultSets) == 0 {
		p.log.Warn().Msg("no resultSets in career stats payload")
		return nil, nil
	}

	stats := make(map[string]StatTotals)
	for _, set := range payload.ResultSets {
		var key string
		switch set.Name {
		case careerRegularSeasonSet:
			key = "regular_season"
		case careerPostSeasonSet:
			key = "playoffs"
		default:
			continue
		}
		if totals, ok := p.statRow(set); ok {
			stats[key] = totals
		}
	}
	if len(stats) == 0 {
		p.log.Warn().Msg("no career totals tables in payload")
		return nil, nil
	}
	return stats, nil
}

// ParseSeasonStats accumulates a game-log table into one season stat line.
// An empty log yields nil, not an error; ragged rows are skipped like in
// the roster parser.
func (p *PlayerParser) ParseSeasonStats(data []byte) (*StatTotals, error) {
	var payload resultSetsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode season stats: %w", err)
	}
	if len(payload.ResultSets) == 0 {
		p.log.Warn().Msg("no resultSets in season stats payload")
		return nil, nil
	}

	logs := payload.ResultSets[0]
	if len(logs.RowSet) == 0 {
		p.log.Warn().Msg("no game logs in season stats payload")
		return nil, nil
	}

	var season StatTotals
	for _, raw := range logs.RowSet {
		if len(raw) != len(logs.Headers) {
			p.log.Warn().Int("cells", len(raw)).Int("headers", len(logs.Headers)).Msg("skipping ragged game log row")
			continue
		}
		r := make(row, len(logs.Headers))
		for i, h := range logs.Headers {
			r[h] = raw[i]
		}
		season.add(p.totalsFromRow(r))
	}
	p.log.Debug().Int("games", len(logs.RowSet)).Msg("parsed season stats")
	return &season, nil
}

// statRow flattens the first row of a header/row table into a stat line.
func (p *PlayerParser) statRow(set resultSet) (StatTotals, bool) {
	if len(set.RowSet) == 0 {
		p.log.Warn().Str("result_set", set.Name).Msg("empty rowSet in stats table")
		return StatTotals{}, false
	}
	raw := set.RowSet[0]
	if len(raw) != len(set.Headers) {
		p.log.Warn().Str("result_set", set.Name).Msg("skipping ragged stats row")
		return StatTotals{}, false
	}
	r := make(row, len(set.Headers))
	for i, h := range set.Headers {
		r[h] = raw[i]
	}
	return p.totalsFromRow(r), true
}

func (p *PlayerParser) totalsFromRow(r row) StatTotals {
	minutes := r.str("MIN")
	if minutes == "" {
		minutes = "0:00"
	}
	return StatTotals{
		GamesPlayed:            r.count("GP"),
		Minutes:                p.ParseMinutes(minutes),
		Points:                 r.num("PTS"),
		Rebounds:               r.num("REB"),
		Assists:                r.num("AST"),
		Steals:                 r.num("STL"),
		Blocks:                 r.num("BLK"),
		Turnovers:              r.num("TOV"),
		FieldGoalsMade:         r.count("FGM"),
		FieldGoalsAttempted:    r.count("FGA"),
		ThreePointersMade:      r.count("FG3M"),
		ThreePointersAttempted: r.count("FG3A"),
		FreeThrowsMade:         r.count("FTM"),
		FreeThrowsAttempted:    r.count("FTA"),
	}
}

// ParseMinutes converts a "mm:ss" tabular minutes cell into fractional
// minutes; plain numerics pass through. Malformed cells degrade to zero.
func (p *PlayerParser) ParseMinutes(cell string) float64 {
	if mm, ss, found := strings.Cut(cell, ":"); found {
		minutes, err1 := strconv.Atoi(mm)
		seconds, err2 := strconv.Atoi(ss)
		if err1 != nil || err2 != nil {
			p.log.Warn().Str("minutes", cell).Msg("unparsable minutes cell, using 0")
			return 0
		}
		return float64(minutes) + float64(seconds)/60
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		p.log.Warn().Str("minutes", cell).Msg("unparsable minutes cell, using 0")
		return 0
	}
	return v
}

// FindProfileByID scans a parsed roster for one player.
func FindProfileByID(players []PlayerProfile, personID int64) (PlayerProfile, bool) {
	for _, p := range players {
		if p.PersonID == personID {
			return p, true
		}
	}
	return PlayerProfile{}, false
}
