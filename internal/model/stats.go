package model

import (
	"math"

	"github.com/rs/zerolog"
)

// PlayerStatistics is one player's box-score line, mirroring the feed's
// camelCase keys. Cross-field constraints (made <= attempted, percentage
// bounds) live in the validate tags and are checked at construction time.
type PlayerStatistics struct {
	Minutes           string  `json:"minutes"`
	MinutesCalculated float64 `json:"minutesCalculated"`

	Points             int `json:"points" validate:"gte=0"`
	PointsFastBreak    int `json:"pointsFastBreak" validate:"gte=0"`
	PointsInThePaint   int `json:"pointsInThePaint" validate:"gte=0"`
	PointsSecondChance int `json:"pointsSecondChance" validate:"gte=0"`

	FieldGoalsAttempted  int      `json:"fieldGoalsAttempted" validate:"gte=0"`
	FieldGoalsMade       int      `json:"fieldGoalsMade" validate:"gte=0,ltefield=FieldGoalsAttempted"`
	FieldGoalsPercentage *float64 `json:"fieldGoalsPercentage,omitempty" validate:"omitempty,gte=0,lte=1"`

	ThreePointersAttempted  int      `json:"threePointersAttempted" validate:"gte=0"`
	ThreePointersMade       int      `json:"threePointersMade" validate:"gte=0,ltefield=ThreePointersAttempted"`
	ThreePointersPercentage *float64 `json:"threePointersPercentage,omitempty" validate:"omitempty,gte=0,lte=1"`

	TwoPointersAttempted  int      `json:"twoPointersAttempted" validate:"gte=0"`
	TwoPointersMade       int      `json:"twoPointersMade" validate:"gte=0,ltefield=TwoPointersAttempted"`
	TwoPointersPercentage *float64 `json:"twoPointersPercentage,omitempty" validate:"omitempty,gte=0,lte=1"`

	FreeThrowsAttempted  int      `json:"freeThrowsAttempted" validate:"gte=0"`
	FreeThrowsMade       int      `json:"freeThrowsMade" validate:"gte=0,ltefield=FreeThrowsAttempted"`
	FreeThrowsPercentage *float64 `json:"freeThrowsPercentage,omitempty" validate:"omitempty,gte=0,lte=1"`

	ReboundsOffensive int `json:"reboundsOffensive" validate:"gte=0"`
	ReboundsDefensive int `json:"reboundsDefensive" validate:"gte=0"`
	ReboundsTotal     int `json:"reboundsTotal" validate:"gte=0"`

	Assists        int `json:"assists" validate:"gte=0"`
	Steals         int `json:"steals" validate:"gte=0"`
	Blocks         int `json:"blocks" validate:"gte=0"`
	BlocksReceived int `json:"blocksReceived" validate:"gte=0"`
	Turnovers      int `json:"turnovers" validate:"gte=0"`

	FoulsPersonal  int `json:"foulsPersonal" validate:"gte=0"`
	FoulsTechnical int `json:"foulsTechnical" validate:"gte=0"`
	FoulsOffensive int `json:"foulsOffensive" validate:"gte=0"`
	FoulsDrawn     int `json:"foulsDrawn" validate:"gte=0"`

	PlusMinusPoints float64 `json:"plusMinusPoints"`
	Plus            float64 `json:"plus"`
	Minus           float64 `json:"minus"`
}

// DeriveMinutes fills MinutesCalculated from the ISO duration string.
// A malformed duration degrades to zero with a warning; dropping a whole
// stat line over one bad timestamp would cost more than a zeroed field.
func (s *PlayerStatistics) DeriveMinutes(log zerolog.Logger) {
	s.MinutesCalculated = minutesFromDuration(s.Minutes, log)
}

// TeamStatistics is the team-level box-score record, a superset of the
// player line with possession, lead and efficiency aggregates.
type TeamStatistics struct {
	Minutes               string  `json:"minutes"`
	MinutesCalculated     float64 `json:"minutesCalculated"`
	TimeLeading           string  `json:"timeLeading"`
	TimeLeadingCalculated float64 `json:"timeLeadingCalculated"`

	Assists              int     `json:"assists" validate:"gte=0"`
	AssistsTurnoverRatio float64 `json:"assistsTurnoverRatio"`
	BenchPoints          int     `json:"benchPoints" validate:"gte=0"`

	BiggestLead            int    `json:"biggestLead" validate:"gte=0"`
	BiggestLeadScore       string `json:"biggestLeadScore"`
	BiggestScoringRun      int    `json:"biggestScoringRun" validate:"gte=0"`
	BiggestScoringRunScore string `json:"biggestScoringRunScore"`
	LeadChanges            int    `json:"leadChanges" validate:"gte=0"`

	Blocks         int `json:"blocks" validate:"gte=0"`
	BlocksReceived int `json:"blocksReceived" validate:"gte=0"`

	FastBreakPointsAttempted  int     `json:"fastBreakPointsAttempted" validate:"gte=0"`
	FastBreakPointsMade       int     `json:"fastBreakPointsMade" validate:"gte=0"`
	FastBreakPointsPercentage float64 `json:"fastBreakPointsPercentage"`

	FieldGoalsAttempted         int      `json:"fieldGoalsAttempted" validate:"gte=0"`
	FieldGoalsMade              int      `json:"fieldGoalsMade" validate:"gte=0,ltefield=FieldGoalsAttempted"`
	FieldGoalsPercentage        *float64 `json:"fieldGoalsPercentage,omitempty" validate:"omitempty,gte=0,lte=1"`
	FieldGoalsEffectiveAdjusted *float64 `json:"fieldGoalsEffectiveAdjusted,omitempty" validate:"omitempty,gte=0,lte=1"`

	FoulsOffensive     int `json:"foulsOffensive" validate:"gte=0"`
	FoulsDrawn         int `json:"foulsDrawn" validate:"gte=0"`
	FoulsPersonal      int `json:"foulsPersonal" validate:"gte=0"`
	FoulsTeam          int `json:"foulsTeam" validate:"gte=0"`
	FoulsTechnical     int `json:"foulsTechnical" validate:"gte=0"`
	FoulsTeamTechnical int `json:"foulsTeamTechnical" validate:"gte=0"`

	FreeThrowsAttempted  int      `json:"freeThrowsAttempted" validate:"gte=0"`
	FreeThrowsMade       int      `json:"freeThrowsMade" validate:"gte=0,ltefield=FreeThrowsAttempted"`
	FreeThrowsPercentage *float64 `json:"freeThrowsPercentage,omitempty" validate:"omitempty,gte=0,lte=1"`

	Points                     int     `json:"points" validate:"gte=0"`
	PointsAgainst              int     `json:"pointsAgainst" validate:"gte=0"`
	PointsFastBreak            int     `json:"pointsFastBreak" validate:"gte=0"`
	PointsFromTurnovers        int     `json:"pointsFromTurnovers" validate:"gte=0"`
	PointsInThePaint           int     `json:"pointsInThePaint" validate:"gte=0"`
	PointsInThePaintAttempted  int     `json:"pointsInThePaintAttempted" validate:"gte=0"`
	PointsInThePaintMade       int     `json:"pointsInThePaintMade" validate:"gte=0"`
	PointsInThePaintPercentage float64 `json:"pointsInThePaintPercentage"`
	PointsSecondChance         int     `json:"pointsSecondChance" validate:"gte=0"`

	ReboundsDefensive     int `json:"reboundsDefensive" validate:"gte=0"`
	ReboundsOffensive     int `json:"reboundsOffensive" validate:"gte=0"`
	ReboundsPersonal      int `json:"reboundsPersonal" validate:"gte=0"`
	ReboundsTeam          int `json:"reboundsTeam" validate:"gte=0"`
	ReboundsTeamDefensive int `json:"reboundsTeamDefensive" validate:"gte=0"`
	ReboundsTeamOffensive int `json:"reboundsTeamOffensive" validate:"gte=0"`
	ReboundsTotal         int `json:"reboundsTotal" validate:"gte=0"`

	SecondChancePointsAttempted  int     `json:"secondChancePointsAttempted" validate:"gte=0"`
	SecondChancePointsMade       int     `json:"secondChancePointsMade" validate:"gte=0"`
	SecondChancePointsPercentage float64 `json:"secondChancePointsPercentage"`

	Steals                int `json:"steals" validate:"gte=0"`
	TeamFieldGoalAttempts int `json:"teamFieldGoalAttempts" validate:"gte=0"`

	ThreePointersAttempted  int      `json:"threePointersAttempted" validate:"gte=0"`
	ThreePointersMade       int      `json:"threePointersMade" validate:"gte=0,ltefield=ThreePointersAttempted"`
	ThreePointersPercentage *float64 `json:"threePointersPercentage,omitempty" validate:"omitempty,gte=0,lte=1"`

	TrueShootingAttempts   float64 `json:"trueShootingAttempts"`
	TrueShootingPercentage float64 `json:"trueShootingPercentage"`

	Turnovers      int `json:"turnovers" validate:"gte=0"`
	TurnoversTeam  int `json:"turnoversTeam" validate:"gte=0"`
	TurnoversTotal int `json:"turnoversTotal" validate:"gte=0"`

	TwoPointersAttempted  int      `json:"twoPointersAttempted" validate:"gte=0"`
	TwoPointersMade       int      `json:"twoPointersMade" validate:"gte=0,ltefield=TwoPointersAttempted"`
	TwoPointersPercentage *float64 `json:"twoPointersPercentage,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// DeriveMinutes fills the calculated playing and leading times from their
// ISO duration strings, degrading to zero on malformed input.
func (s *TeamStatistics) DeriveMinutes(log zerolog.Logger) {
	s.MinutesCalculated = minutesFromDuration(s.Minutes, log)
	s.TimeLeadingCalculated = minutesFromDuration(s.TimeLeading, log)
}

// minutesFromDuration converts a feed duration into minutes rounded to two
// decimals. Parse failure logs and yields zero.
func minutesFromDuration(raw string, log zerolog.Logger) float64 {
	if raw == "" {
		return 0
	}
	seconds, err := ParseDuration(raw)
	if err != nil {
		log.Warn().Str("duration", raw).Err(err).Msg("unparsable duration, using 0 minutes")
		return 0
	}
	return math.Round(float64(seconds)/60.0*100) / 100
}
