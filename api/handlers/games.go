package handlers

import (
	"context"
	"net/http"

	"tourneyhub/api/dto"
	"tourneyhub/api/filters"
	"tourneyhub/api/middleware"
	"tourneyhub/pkg/database/models"
	"tourneyhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AccountService is what the games handler needs from the account service.
type AccountService interface {
	LinkAccount(ctx context.Context, userId uint, req dto.LinkAccountRequest) (*dto.LinkResult, error)
	RefreshAccountStats(ctx context.Context, userId uint, accountId uint) (*dto.LinkedAccount, error)
	UnlinkAccount(ctx context.Context, userId uint, accountId uint) error
	ListUserAccounts(ctx context.Context, userId uint) ([]dto.LinkedAccount, error)
	ListGames(ctx context.Context) ([]models.Game, error)
	ListGamesWithStatus(ctx context.Context, userId uint) ([]dto.GameStatus, error)
	CreateGame(ctx context.Context, name string) (*models.Game, error)
	DeleteGame(ctx context.Context, gameId uint) error
}

// GamesHandler is the handler for the games and linked accounts endpoints.
type GamesHandler struct {
	accountService AccountService
	logger         *logger.NewLogger
}

type GamesHandlerDependencies struct {
	AccountService AccountService
	Logger         *logger.NewLogger
}

// NewGamesHandler creates a new instance of the games handler.
func NewGamesHandler(deps *GamesHandlerDependencies) *GamesHandler {
	return &GamesHandler{
		accountService: deps.AccountService,
		logger:         deps.Logger,
	}
}

// ListGames handles requests for the game catalog.
func (h *GamesHandler) ListGames(c *gin.Context) {
	games, err := h.accountService.ListGames(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": games})
}

// CreateGame handles the creation of a game without API integration.
func (h *GamesHandler) CreateGame(c *gin.Context) {
	var req dto.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	game, err := h.accountService.CreateGame(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"result": game})
}

// DeleteGame handles the removal of a game.
func (h *GamesHandler) DeleteGame(c *gin.Context) {
	var uri filters.GameUriParams
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.accountService.DeleteGame(c.Request.Context(), uri.GameId); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListGamesWithStatus handles requests for the catalog with the user links.
func (h *GamesHandler) ListGamesWithStatus(c *gin.Context) {
	statuses, err := h.accountService.ListGamesWithStatus(c.Request.Context(), middleware.UserId(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": statuses})
}

// ListAccounts handles requests for the accounts of the user.
func (h *GamesHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.accountService.ListUserAccounts(c.Request.Context(), middleware.UserId(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": accounts})
}

// LinkAccount handles linking a game account.
// Returns 201 when the link is new and 200 when it replaced the previous one.
func (h *GamesHandler) LinkAccount(c *gin.Context) {
	var req dto.LinkAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.accountService.LinkAccount(c.Request.Context(), middleware.UserId(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	c.JSON(status, gin.H{"result": result.Account})
}

// RefreshAccount handles a stats refresh of a API backed account.
func (h *GamesHandler) RefreshAccount(c *gin.Context) {
	var uri filters.AccountUriParams
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBadRequest(c, err)
		return
	}

	account, err := h.accountService.RefreshAccountStats(c.Request.Context(), middleware.UserId(c), uri.AccountId)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": account})
}

// UnlinkAccount handles the removal of a linked account.
func (h *GamesHandler) UnlinkAccount(c *gin.Context) {
	var uri filters.AccountUriParams
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.accountService.UnlinkAccount(c.Request.Context(), middleware.UserId(c), uri.AccountId); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
