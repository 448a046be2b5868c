package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shawn0818/lebron-bot/internal/storage"
	"github.com/shawn0818/lebron-bot/pkg/response"
)

// BoxScoreReader is the slice of storage the stored-stats endpoints need.
type BoxScoreReader interface {
	GetGame(ctx context.Context, gameID string) (storage.GameRow, error)
	ListPlayerLines(ctx context.Context, gameID string) ([]storage.PlayerLine, error)
}

// StatsHandler serves box scores previously persisted by the sync pipeline.
type StatsHandler struct {
	store BoxScoreReader
}

func NewStatsHandler(store BoxScoreReader) *StatsHandler { return &StatsHandler{store: store} }

func (h *StatsHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/boxscores/:id")
	{
		g.GET("", h.game)
		g.GET("/lines", h.lines)
	}
}

func (h *StatsHandler) game(c *gin.Context) {
	row, err := h.store.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, row)
}

func (h *StatsHandler) lines(c *gin.Context) {
	lines, err := h.store.ListPlayerLines(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, lines)
}
