package routes

import (
	"tourneyhub/api/handlers"
	"tourneyhub/api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	Engine *gin.Engine
	api    *gin.RouterGroup
}

// NewRouter creates the router, every /api/v1 route requires a user.
func NewRouter(engine *gin.Engine) *Router {
	engine.Use(middleware.RequestId())
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &Router{
		api:    engine.Group("/api/v1", middleware.RequireUser()),
		Engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.GamesHandler:
			r.registerGamesHandler(handler)
		case *handlers.LeaderboardHandler:
			r.registerLeaderboardHandler(handler)
		}
	}
}

// Register the games handler.
func (r *Router) registerGamesHandler(handler *handlers.GamesHandler) {
	games := r.api.Group("/games")
	{
		games.GET("", handler.ListGames)
		games.POST("", handler.CreateGame)
		games.DELETE("/:gameId", handler.DeleteGame)
		games.GET("/status", handler.ListGamesWithStatus)
		games.POST("/link", handler.LinkAccount)
		games.GET("/accounts", handler.ListAccounts)
		games.POST("/accounts/:accountId/refresh", handler.RefreshAccount)
		games.DELETE("/accounts/:accountId", handler.UnlinkAccount)
	}
}

// Register the leaderboard handler.
func (r *Router) registerLeaderboardHandler(handler *handlers.LeaderboardHandler) {
	groups := r.api.Group("/groups")
	{
		groups.GET("/:groupId/leaderboard", handler.GetGroupLeaderboard)
	}
}

// Start the router.
func (r *Router) Run(addr string) error {
	return r.Engine.Run(addr)
}
