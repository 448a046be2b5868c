package handler

import (
	"github.com/gin-gonic/gin"
)

// Register mounts all public routes on the given engine.
// Accepts service layer dependencies for API endpoints.
func Register(r *gin.Engine, store Pinger, gameSvc GameLoader, playerSvc RosterService, boxScores BoxScoreReader) {
	h := NewHealthHandler(store)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	api := r.Group(APIV1Prefix)
	{
		NewGameHandler(gameSvc).Register(api)
		NewPlayerHandler(playerSvc).Register(api)
		NewStatsHandler(boxScores).Register(api)
	}
}
