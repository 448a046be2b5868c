package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shawn0818/lebron-bot/internal/model"
	"github.com/shawn0818/lebron-bot/pkg/response"
)

// GameLoader is the slice of the game service this handler needs.
type GameLoader interface {
	Load(ctx context.Context, gameID string, force bool) (*model.Game, error)
}

// GameHandler serves the derived-query surface of a loaded game snapshot.
type GameHandler struct {
	svc GameLoader
}

func NewGameHandler(svc GameLoader) *GameHandler { return &GameHandler{svc: svc} }

func (h *GameHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/games/:id")
	{
		g.GET("/status", h.status)
		g.GET("/lineup", h.lineup)
		g.GET("/events", h.events)
		g.GET("/shots", h.shots)
		g.GET("/shots/assisted", h.assistedShots)
		g.GET("/teams/:teamId/stats", h.teamStats)
		g.GET("/teams/:teamId/shots", h.teamShots)
		g.GET("/players/:playerId/stats", h.playerStats)
	}
}

func (h *GameHandler) load(c *gin.Context) (*model.Game, bool) {
	force := c.Query("force") == "1"
	game, err := h.svc.Load(c.Request.Context(), c.Param("id"), force)
	if err != nil {
		response.WriteError(c, err)
		return nil, false
	}
	return game, true
}

func (h *GameHandler) status(c *gin.Context) {
	game, ok := h.load(c)
	if !ok {
		return
	}
	response.WriteData(c, http.StatusOK, game.Status())
}

func (h *GameHandler) lineup(c *gin.Context) {
	game, ok := h.load(c)
	if !ok {
		return
	}
	response.WriteData(c, http.StatusOK, game.CurrentLineup())
}

func (h *GameHandler) teamStats(c *gin.Context) {
	game, ok := h.load(c)
	if !ok {
		return
	}
	teamID, _ := strconv.ParseInt(c.Param("teamId"), 10, 64)
	team := game.TeamStats(teamID)
	if team == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, response.ErrorPayload{Error: "team_not_in_game"})
		return
	}
	response.WriteData(c, http.StatusOK, team)
}

func (h *GameHandler) playerStats(c *gin.Context) {
	game, ok := h.load(c)
	if !ok {
		return
	}
	playerID, _ := strconv.ParseInt(c.Param("playerId"), 10, 64)
	player := game.PlayerStats(playerID)
	if player == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, response.ErrorPayload{Error: "player_not_in_game"})
		return
	}
	response.WriteData(c, http.StatusOK, player)
}

// eventFilterFromQuery builds the conjunctive filter from query parameters;
// absent parameters stay no-ops.
func eventFilterFromQuery(c *gin.Context) model.EventFilter {
	var f model.EventFilter
	if v, err := strconv.Atoi(c.Query("period")); err == nil {
		f.Period = &v
	}
	if v, err := strconv.ParseInt(c.Query("team_id"), 10, 64); err == nil {
		f.TeamID = &v
	}
	if v, err := strconv.ParseInt(c.Query("player_id"), 10, 64); err == nil {
		f.PlayerID = &v
	}
	if types := c.Query("types"); types != "" {
		f.ActionTypes = make(map[string]struct{})
		for _, t := range strings.Split(types, ",") {
			f.ActionTypes[strings.TrimSpace(t)] = struct{}{}
		}
	}
	if c.Query("clutch") == "1" {
		f.Clutch = true
		if v, err := strconv.Atoi(c.Query("clutch_minutes")); err == nil {
			f.ClutchMinutes = v
		}
	}
	return f
}

func (h *GameHandler) events(c *gin.Context) {
	game, ok := h.load(c)
	if !ok {
		return
	}
	response.WriteData(c, http.StatusOK, game.FilterEvents(eventFilterFromQuery(c)))
}

func (h *GameHandler) shots(c *gin.Context) {
	game, ok := h.load(c)
	if !ok {
		return
	}
	var playerID *int64
	if v, err := strconv.ParseInt(c.Query("player_id"), 10, 64); err == nil {
		playerID = &v
	}
	response.WriteData(c, http.StatusOK, game.ShotData(playerID))
}

func (h *GameHandler) assistedShots(c *gin.Context) {
	game, ok := h.load(c)
	if !ok {
		return
	}
	passerID, err := strconv.ParseInt(c.Query("passer_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorPayload{Error: "missing_passer_id"})
		return
	}
	response.WriteData(c, http.StatusOK, game.AssistedShotData(passerID))
}

func (h *GameHandler) teamShots(c *gin.Context) {
	game, ok := h.load(c)
	if !ok {
		return
	}
	teamID, _ := strconv.ParseInt(c.Param("teamId"), 10, 64)
	response.WriteData(c, http.StatusOK, game.TeamShotData(teamID))
}
