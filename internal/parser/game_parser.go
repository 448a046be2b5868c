// Package parser turns raw stats-feed payloads into validated domain
// aggregates. Schema violations surface as aggregated field errors; soft
// format problems (durations, clocks) degrade locally per the model's rules.
package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/shawn0818/lebron-bot/internal/model"
)

// GameParser builds model.Game aggregates from box-score and play-by-play
// payloads.
type GameParser struct {
	validate *validator.Validate
	log      zerolog.Logger
}

// NewGameParser wires the parser with its validator and diagnostics.
func NewGameParser(logger zerolog.Logger) *GameParser {
	return &GameParser{
		validate: validator.New(),
		log:      logger.With().Str("module", "parser").Str("component", "game").Logger(),
	}
}

// boxScorePayload mirrors the feed's top-level box-score response shape.
type boxScorePayload struct {
	Meta map[string]json.RawMessage `json:"meta"`
	Game model.GameData             `json:"game"`
}

// ParseGame constructs the validated aggregate from a box-score payload and
// an optional play-by-play payload. It returns a structured validation error
// naming every offending field path, or the immutable Game snapshot.
func (p *GameParser) ParseGame(boxScore []byte, playByPlay []byte) (*model.Game, error) {
	var payload boxScorePayload
	if err := json.Unmarshal(boxScore, &payload); err != nil {
		return nil, p.decodeError("game", err)
	}

	payload.Game.ApplyDefaults()
	p.deriveDurations(&payload.Game)
	payload.Game.DeriveBeijingTime()

	ferrs := p.structErrors("game", &payload.Game)

	var pbp *model.PlayByPlay
	if len(playByPlay) > 0 {
		var err error
		pbp, err = p.parsePlayByPlay(playByPlay, &ferrs)
		if err != nil {
			return nil, err
		}
	}

	if err := model.NewInvalidPayload(ferrs); err != nil {
		p.log.Error().Str("game_id", payload.Game.GameID).Int("field_errors", len(ferrs)).Msg("payload failed validation")
		return nil, err
	}

	game := model.NewGame(payload.Meta, payload.Game, pbp, p.log)
	p.log.Debug().Str("game_id", payload.Game.GameID).Int("actions", len(game.Events())).Msg("parsed game")
	return game, nil
}

func (p *GameParser) parsePlayByPlay(data []byte, ferrs *[]model.FieldError) (*model.PlayByPlay, error) {
	var pbp model.PlayByPlay
	if err := json.Unmarshal(data, &pbp); err != nil {
		return nil, p.decodeError("playByPlay", err)
	}

	for i := range pbp.Actions {
		for _, fe := range p.structErrors(fmt.Sprintf("playByPlay.actions[%d]", i), &pbp.Actions[i]) {
			*ferrs = append(*ferrs, fe)
		}
	}
	for _, fe := range model.CheckEventSequence(pbp.Actions) {
		*ferrs = append(*ferrs, model.FieldError{Field: "playByPlay." + fe.Field, Message: fe.Message})
	}
	return &pbp, nil
}

// deriveDurations runs the construction-time minute derivations across every
// statistics record before validation; the records are not considered
// well-formed until their derived fields are in place.
func (p *GameParser) deriveDurations(data *model.GameData) {
	for _, team := range []*model.TeamInGame{&data.HomeTeam, &data.AwayTeam} {
		team.Statistics.DeriveMinutes(p.log)
		for i := range team.Players {
			team.Players[i].Statistics.DeriveMinutes(p.log)
		}
	}
}

// structErrors runs struct-tag validation and rewrites validator namespaces
// into payload-rooted field paths.
func (p *GameParser) structErrors(root string, v any) []model.FieldError {
	err := p.validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []model.FieldError{{Field: root, Message: err.Error()}}
	}
	ferrs := make([]model.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace starts with the Go type name; swap it for the payload root.
		path := fe.Namespace()
		if idx := strings.Index(path, "."); idx >= 0 {
			path = root + path[idx:]
		} else {
			path = root
		}
		ferrs = append(ferrs, model.FieldError{
			Field:   path,
			Message: fmt.Sprintf("failed %q constraint", fe.Tag()),
		})
	}
	return ferrs
}

func (p *GameParser) decodeError(section string, err error) error {
	p.log.Error().Str("section", section).Err(err).Msg("payload decode failed")
	return model.NewInvalidPayload([]model.FieldError{{
		Field:   section,
		Message: fmt.Sprintf("malformed JSON: %v", err),
	}})
}
