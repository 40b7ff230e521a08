package modules

import (
	"tourneyhub/api/handlers"
	accountservice "tourneyhub/api/services/account"
	"tourneyhub/pkg/config"
	"tourneyhub/pkg/logger"
	"tourneyhub/pkg/redis"
	"tourneyhub/pkg/stats"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ModuleDependencies are shared by every handler.
type ModuleDependencies struct {
	Config  *config.Config
	DB      *gorm.DB
	Redis   *redis.RedisClient
	Fetcher stats.StatsFetcher
	Logger  *logger.NewLogger
}

// Module containing the necessary handlers.
type Module struct {
	Router             *gin.Engine
	AccountService     *accountservice.AccountService
	GamesHandler       *handlers.GamesHandler
	LeaderboardHandler *handlers.LeaderboardHandler
}

// Create a new module with all the necessary handlers initialized.
func NewModule(deps *ModuleDependencies) *Module {
	router := gin.New()
	router.Use(gin.Recovery())

	accountService := initializeAccountService(deps)

	return &Module{
		Router:             router,
		AccountService:     accountService,
		GamesHandler:       initializeGamesHandler(deps, accountService),
		LeaderboardHandler: initializeLeaderboardHandler(deps),
	}
}
