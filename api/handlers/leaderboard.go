package handlers

import (
	"context"
	"net/http"

	"tourneyhub/api/dto"
	"tourneyhub/api/filters"
	"tourneyhub/api/middleware"
	"tourneyhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

type LeaderboardService interface {
	GetGroupLeaderboard(ctx context.Context, groupId uint, requesterId uint, gameId *uint) ([]dto.LeaderboardEntry, error)
}

// LeaderboardHandler is the handler for the group leaderboards.
type LeaderboardHandler struct {
	leaderboardService LeaderboardService
	logger             *logger.NewLogger
}

type LeaderboardHandlerDependencies struct {
	LeaderboardService LeaderboardService
	Logger             *logger.NewLogger
}

// NewLeaderboardHandler creates a new instance of the leaderboard handler.
func NewLeaderboardHandler(deps *LeaderboardHandlerDependencies) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: deps.LeaderboardService,
		logger:             deps.Logger,
	}
}

// GetGroupLeaderboard handles requests for a group leaderboard, optionally for a single game.
func (h *LeaderboardHandler) GetGroupLeaderboard(c *gin.Context) {
	var uri filters.LeaderboardUriParams
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBadRequest(c, err)
		return
	}

	var qp filters.LeaderboardQueryParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		respondBadRequest(c, err)
		return
	}

	entries, err := h.leaderboardService.GetGroupLeaderboard(c.Request.Context(), uri.GroupId, middleware.UserId(c), qp.GameId)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": entries})
}
