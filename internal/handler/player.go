package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shawn0818/lebron-bot/internal/parser"
	"github.com/shawn0818/lebron-bot/pkg/response"
)

// RosterService is the slice of the player service this handler needs.
type RosterService interface {
	ReloadRoster(ctx context.Context) ([]parser.PlayerProfile, error)
	ResolveID(name string) (int64, bool)
	ResolveName(id int64) (string, bool)
	Profile(personID int64) (parser.PlayerProfile, bool)
	CareerStats(ctx context.Context, personID int64) (map[string]parser.StatTotals, error)
	SeasonStats(ctx context.Context, personID int64, season string) (*parser.StatTotals, error)
}

// PlayerHandler exposes name resolution and per-player stat queries over
// the shared roster index.
type PlayerHandler struct {
	svc RosterService
}

func NewPlayerHandler(svc RosterService) *PlayerHandler { return &PlayerHandler{svc: svc} }

func (h *PlayerHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/players")
	{
		g.GET("/resolve", h.resolve)
		g.POST("/reload", h.reload)
		g.GET("/:playerId/profile", h.profile)
		g.GET("/:playerId/career", h.career)
		g.GET("/:playerId/season", h.season)
	}
}

func (h *PlayerHandler) resolve(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorPayload{Error: "missing_name"})
		return
	}
	id, ok := h.svc.ResolveID(name)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, response.ErrorPayload{Error: "player_unknown"})
		return
	}
	display, _ := h.svc.ResolveName(id)
	response.WriteData(c, http.StatusOK, gin.H{"id": id, "name": display})
}

func (h *PlayerHandler) reload(c *gin.Context) {
	players, err := h.svc.ReloadRoster(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, gin.H{"players": len(players)})
}

func (h *PlayerHandler) profile(c *gin.Context) {
	personID, _ := strconv.ParseInt(c.Param("playerId"), 10, 64)
	profile, ok := h.svc.Profile(personID)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, response.ErrorPayload{Error: "player_unknown"})
		return
	}
	response.WriteData(c, http.StatusOK, profile)
}

func (h *PlayerHandler) career(c *gin.Context) {
	personID, _ := strconv.ParseInt(c.Param("playerId"), 10, 64)
	stats, err := h.svc.CareerStats(c.Request.Context(), personID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if stats == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, response.ErrorPayload{Error: "stats_unavailable"})
		return
	}
	response.WriteData(c, http.StatusOK, stats)
}

func (h *PlayerHandler) season(c *gin.Context) {
	season := c.Query("season")
	if season == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorPayload{Error: "missing_season"})
		return
	}
	personID, _ := strconv.ParseInt(c.Param("playerId"), 10, 64)
	stats, err := h.svc.SeasonStats(c.Request.Context(), personID, season)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if stats == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, response.ErrorPayload{Error: "stats_unavailable"})
		return
	}
	response.WriteData(c, http.StatusOK, stats)
}
