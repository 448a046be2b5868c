package model

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Event is one play-by-play action. The wire format is flat, discriminated by
// actionType, so the struct carries the common fields plus typed-optional
// variant fields; the As* accessors perform the case analysis instead of
// callers probing fields reflectively. Unknown payload keys are preserved in
// Extra so a future feed field can never break parsing.
type Event struct {
	ActionNumber int    `json:"actionNumber" validate:"gte=0"`
	Clock        string `json:"clock"`
	TimeActual   string `json:"timeActual,omitempty"`
	Period       int    `json:"period" validate:"gte=1"`
	ActionType   string `json:"actionType" validate:"required"`
	SubType      string `json:"subType,omitempty"`
	Description  string `json:"description,omitempty"`

	TeamID      *int64  `json:"teamId,omitempty"`
	TeamTricode *string `json:"teamTricode,omitempty"`
	PersonID    *int64  `json:"personId,omitempty"`
	PlayerName  *string `json:"playerName,omitempty"`
	PlayerNameI *string `json:"playerNameI,omitempty"`

	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	XLegacy *int     `json:"xLegacy,omitempty"`
	YLegacy *int     `json:"yLegacy,omitempty"`

	// Score snapshot at the moment of the action, as the feed sends it:
	// stringified integers, absent on administrative events.
	ScoreHome *string `json:"scoreHome,omitempty"`
	ScoreAway *string `json:"scoreAway,omitempty"`

	// Shot variant (2pt / 3pt), also partially reused by free throws.
	ShotResult              *ShotResult `json:"shotResult,omitempty" validate:"omitempty,oneof=Made Missed"`
	ShotDistance            *float64    `json:"shotDistance,omitempty"`
	Area                    *string     `json:"area,omitempty"`
	AreaDetail              *string     `json:"areaDetail,omitempty"`
	Side                    *string     `json:"side,omitempty"`
	IsFieldGoal             *int        `json:"isFieldGoal,omitempty"`
	Qualifiers              []string    `json:"qualifiers,omitempty"`
	AssistPersonID          *int64      `json:"assistPersonId,omitempty"`
	AssistPlayerNameInitial *string     `json:"assistPlayerNameInitial,omitempty"`
	BlockPersonID           *int64      `json:"blockPersonId,omitempty"`
	BlockPlayerName         *string     `json:"blockPlayerName,omitempty"`

	// Free throw variant.
	PointsTotal *int `json:"pointsTotal,omitempty"`

	// Rebound variant: running totals for the rebounder.
	ReboundTotal          *int `json:"reboundTotal,omitempty" validate:"omitempty,gte=0"`
	ReboundDefensiveTotal *int `json:"reboundDefensiveTotal,omitempty" validate:"omitempty,gte=0"`
	ReboundOffensiveTotal *int `json:"reboundOffensiveTotal,omitempty" validate:"omitempty,gte=0"`
	ShotActionNumber      *int `json:"shotActionNumber,omitempty"`

	// Turnover variant.
	Descriptor      *string `json:"descriptor,omitempty"`
	TurnoverTotal   *int    `json:"turnoverTotal,omitempty" validate:"omitempty,gte=0"`
	StealPersonID   *int64  `json:"stealPersonId,omitempty"`
	StealPlayerName *string `json:"stealPlayerName,omitempty"`

	// Foul / violation variants.
	FoulDrawnPersonID   *int64  `json:"foulDrawnPersonId,omitempty"`
	FoulDrawnPlayerName *string `json:"foulDrawnPlayerName,omitempty"`
	OfficialID          *int64  `json:"officialId,omitempty"`

	// Jump ball variant.
	JumpBallWonPersonID       *int64  `json:"jumpBallWonPersonId,omitempty"`
	JumpBallWonPlayerName     *string `json:"jumpBallWonPlayerName,omitempty"`
	JumpBallLostPersonID      *int64  `json:"jumpBallLostPersonId,omitempty"`
	JumpBallLostPlayerName    *string `json:"jumpBallLostPlayerName,omitempty"`
	JumpBallRecoveredPersonID *int64  `json:"jumpBallRecoveredPersonId,omitempty"`
	JumpBallRecoveredName     *string `json:"jumpBallRecoveredName,omitempty"`

	// Substitution variant.
	IncomingPersonID    *int64  `json:"incomingPersonId,omitempty"`
	IncomingPlayerName  *string `json:"incomingPlayerName,omitempty"`
	IncomingPlayerNameI *string `json:"incomingPlayerNameI,omitempty"`
	OutgoingPersonID    *int64  `json:"outgoingPersonId,omitempty"`
	OutgoingPlayerName  *string `json:"outgoingPlayerName,omitempty"`
	OutgoingPlayerNameI *string `json:"outgoingPlayerNameI,omitempty"`

	// Extra keeps payload keys this schema does not know about.
	Extra map[string]json.RawMessage `json:"-"`
}

// knownEventKeys is built once from the struct's json tags so UnmarshalJSON
// can tell schema fields apart from forward-compatibility extras.
var knownEventKeys = func() map[string]struct{} {
	keys := make(map[string]struct{})
	t := reflect.TypeOf(Event{})
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		keys[name] = struct{}{}
	}
	return keys
}()

// UnmarshalJSON decodes the known schema fields and stashes everything else
// into Extra untouched.
func (e *Event) UnmarshalJSON(data []byte) error {
	type alias Event
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range raw {
		if _, ok := knownEventKeys[k]; ok {
			delete(raw, k)
		}
	}
	if len(raw) > 0 {
		a.Extra = raw
	}

	*e = Event(a)
	return nil
}

// MarshalJSON re-emits the schema fields together with the preserved extras.
func (e Event) MarshalJSON() ([]byte, error) {
	type alias Event
	data, err := json.Marshal(alias(e))
	if err != nil {
		return nil, err
	}
	if len(e.Extra) == 0 {
		return data, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range e.Extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// IsShot reports whether the action is a two- or three-point attempt.
func (e *Event) IsShot() bool {
	return e.ActionType == ActionTwoPoint || e.ActionType == ActionThreePoint
}

// Shot is the typed view of a 2pt/3pt event.
type Shot struct {
	ActionType string
	Result     ShotResult
	Distance   float64
	Area       string
	Qualifiers []string
	AssistedBy *int64
	BlockedBy  *int64
	XLegacy    *int
	YLegacy    *int
}

// AsShot projects the event into its shot variant.
// The second return is false for non-shot actions.
func (e *Event) AsShot() (Shot, bool) {
	if !e.IsShot() {
		return Shot{}, false
	}
	s := Shot{
		ActionType: e.ActionType,
		Qualifiers: e.Qualifiers,
		AssistedBy: e.AssistPersonID,
		BlockedBy:  e.BlockPersonID,
		XLegacy:    e.XLegacy,
		YLegacy:    e.YLegacy,
	}
	if e.ShotResult != nil {
		s.Result = *e.ShotResult
	}
	if e.ShotDistance != nil {
		s.Distance = *e.ShotDistance
	}
	if e.Area != nil {
		s.Area = *e.Area
	}
	return s, true
}

// Rebound is the typed view of a rebound event with its running totals.
type Rebound struct {
	Offensive      bool
	Total          int
	OffensiveTotal int
	DefensiveTotal int
}

func (e *Event) AsRebound() (Rebound, bool) {
	if e.ActionType != ActionRebound {
		return Rebound{}, false
	}
	r := Rebound{Offensive: e.SubType == "offensive"}
	if e.ReboundTotal != nil {
		r.Total = *e.ReboundTotal
	}
	if e.ReboundOffensiveTotal != nil {
		r.OffensiveTotal = *e.ReboundOffensiveTotal
	}
	if e.ReboundDefensiveTotal != nil {
		r.DefensiveTotal = *e.ReboundDefensiveTotal
	}
	return r, true
}

// Substitution is the typed view of a substitution event.
type Substitution struct {
	IncomingID   int64
	IncomingName string
	OutgoingID   int64
	OutgoingName string
}

func (e *Event) AsSubstitution() (Substitution, bool) {
	if e.ActionType != ActionSubstitution || e.IncomingPersonID == nil || e.OutgoingPersonID == nil {
		return Substitution{}, false
	}
	s := Substitution{IncomingID: *e.IncomingPersonID, OutgoingID: *e.OutgoingPersonID}
	if e.IncomingPlayerName != nil {
		s.IncomingName = *e.IncomingPlayerName
	}
	if e.OutgoingPlayerName != nil {
		s.OutgoingName = *e.OutgoingPlayerName
	}
	return s, true
}

// Scores returns the home/away score snapshot as integers.
// False when either side is absent or not numeric.
func (e *Event) Scores() (home, away int, ok bool) {
	if e.ScoreHome == nil || e.ScoreAway == nil {
		return 0, 0, false
	}
	h, err := strconv.Atoi(*e.ScoreHome)
	if err != nil {
		return 0, 0, false
	}
	a, err := strconv.Atoi(*e.ScoreAway)
	if err != nil {
		return 0, 0, false
	}
	return h, a, true
}

// ScoreDifference is home minus away at the moment of the action.
func (e *Event) ScoreDifference() (int, bool) {
	h, a, ok := e.Scores()
	if !ok {
		return 0, false
	}
	return h - a, true
}

// IsClutch reports whether the action happened in clutch time: fourth period
// or later, with the clock's minute component at or under the threshold.
// A clock without a colon excludes the event rather than erroring.
func (e *Event) IsClutch(thresholdMinutes int) bool {
	if e.Period < 4 {
		return false
	}
	mm, _, found := strings.Cut(e.Clock, ":")
	if !found {
		return false
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil {
		return false
	}
	return minutes <= thresholdMinutes
}

// defaultClutchMinutes is the late-game window used when a caller does not
// supply its own threshold.
const defaultClutchMinutes = 2

// Importance scores the action on a saturating 0-5 scale: +3 for scoring or
// defensive highlights, +2 for secondary actions, +1 in clutch time, +1 when
// the game is within five points.
func (e *Event) Importance() int {
	importance := 0

	switch strings.ToLower(e.ActionType) {
	case ActionTwoPoint, ActionThreePoint, "dunk", ActionBlock, ActionSteal:
		importance += 3
	case ActionRebound, ActionAssist, ActionFoul:
		importance += 2
	}

	if e.IsClutch(defaultClutchMinutes) {
		importance++
	}

	if diff, ok := e.ScoreDifference(); ok {
		if diff < 0 {
			diff = -diff
		}
		if diff <= 5 {
			importance++
		}
	}

	if importance > 5 {
		importance = 5
	}
	return importance
}

// EventFilter is a conjunctive predicate set over an event sequence.
// Nil/zero members are no-ops.
type EventFilter struct {
	Period        *int
	TeamID        *int64
	PlayerID      *int64
	ActionTypes   map[string]struct{}
	Clutch        bool
	ClutchMinutes int
}

func (f EventFilter) matches(e *Event) bool {
	if f.Period != nil && e.Period != *f.Period {
		return false
	}
	if f.TeamID != nil && (e.TeamID == nil || *e.TeamID != *f.TeamID) {
		return false
	}
	if f.PlayerID != nil && (e.PersonID == nil || *e.PersonID != *f.PlayerID) {
		return false
	}
	if len(f.ActionTypes) > 0 {
		if _, ok := f.ActionTypes[e.ActionType]; !ok {
			return false
		}
	}
	if f.Clutch {
		threshold := f.ClutchMinutes
		if threshold <= 0 {
			threshold = defaultClutchMinutes
		}
		if !e.IsClutch(threshold) {
			return false
		}
	}
	return true
}

// FilterEvents applies the filter over the ordered sequence and returns a
// newly materialized slice, preserving the original relative order.
func FilterEvents(events []Event, f EventFilter) []Event {
	out := make([]Event, 0, len(events))
	for i := range events {
		if f.matches(&events[i]) {
			out = append(out, events[i])
		}
	}
	return out
}

// CheckEventSequence verifies the per-game ordering invariants: periods never
// decrease and rebound running totals never shrink. It returns one FieldError
// per violation, with paths rooted at "actions".
func CheckEventSequence(events []Event) []FieldError {
	var ferrs []FieldError
	lastPeriod := 0
	lastTotals := map[int64]Rebound{}

	for i := range events {
		e := &events[i]
		if e.Period < lastPeriod {
			ferrs = append(ferrs, FieldError{
				Field:   fmt.Sprintf("actions[%d].period", i),
				Message: fmt.Sprintf("period decreased from %d to %d", lastPeriod, e.Period),
			})
		}
		if e.Period > lastPeriod {
			lastPeriod = e.Period
		}

		reb, ok := e.AsRebound()
		if !ok || e.PersonID == nil {
			continue
		}
		prev, seen := lastTotals[*e.PersonID]
		if seen && (reb.Total < prev.Total || reb.OffensiveTotal < prev.OffensiveTotal || reb.DefensiveTotal < prev.DefensiveTotal) {
			ferrs = append(ferrs, FieldError{
				Field:   fmt.Sprintf("actions[%d].reboundTotal", i),
				Message: "rebound running totals decreased",
			})
		}
		lastTotals[*e.PersonID] = reb
	}
	return ferrs
}
