package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/cppla/subforum/services"
	"github.com/cppla/subforum/utils"
)

// StatsController provides forum statistics such as counts and daily page views.
type StatsController struct {
	forum *services.ForumService
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(forum *services.ForumService) *StatsController {
	return &StatsController{forum: forum}
}

// GetStats returns aggregate statistics for the forum.
func (s *StatsController) GetStats(ctx *gin.Context) {
	st, err := s.forum.Stats(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err, 50040, "failed to load stats")
		return
	}
	utils.Success(ctx, st)
}
