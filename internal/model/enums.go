package model

// GameStatus mirrors the numeric lifecycle code carried by the feed.
// The model only reflects the latest snapshot; it never advances the state
// itself; re-fetching and rebuilding the aggregate is the single update path.
type GameStatus int

const (
	StatusNotStarted GameStatus = 1
	StatusInProgress GameStatus = 2
	StatusFinished   GameStatus = 3
)

func (s GameStatus) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusInProgress:
		return "in_progress"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Valid reports whether the code is one of the three lifecycle states.
func (s GameStatus) Valid() bool {
	return s >= StatusNotStarted && s <= StatusFinished
}

// ShotResult is the outcome of a field goal or free throw attempt.
type ShotResult string

const (
	ShotMade   ShotResult = "Made"
	ShotMissed ShotResult = "Missed"
)

// PlayerStatus marks roster availability for one game.
type PlayerStatus string

const (
	PlayerActive   PlayerStatus = "ACTIVE"
	PlayerInactive PlayerStatus = "INACTIVE"
)

// NotPlayingReason is the feed's typed explanation for an inactive player.
type NotPlayingReason string

const (
	ReasonInjury            NotPlayingReason = "INACTIVE_INJURY"
	ReasonPersonal          NotPlayingReason = "INACTIVE_PERSONAL"
	ReasonGLeagueTwoWay     NotPlayingReason = "INACTIVE_GLEAGUE_TWOWAY"
	ReasonGLeagueAssignment NotPlayingReason = "INACTIVE_GLEAGUE_ON_ASSIGNMENT"
	ReasonReconditioning    NotPlayingReason = "DND_RETURN_TO_COMPETITION_RECONDITIONING"
	ReasonDoubtfulInjury    NotPlayingReason = "DND_INJURY"
)

// Action type discriminators as they appear on the wire.
const (
	ActionGame         = "game"
	ActionPeriod       = "period"
	ActionJumpBall     = "jumpball"
	ActionTwoPoint     = "2pt"
	ActionThreePoint   = "3pt"
	ActionFreeThrow    = "freethrow"
	ActionRebound      = "rebound"
	ActionTurnover     = "turnover"
	ActionBlock        = "block"
	ActionSteal        = "steal"
	ActionAssist       = "assist"
	ActionTimeout      = "timeout"
	ActionSubstitution = "substitution"
	ActionFoul         = "foul"
	ActionViolation    = "violation"
)
