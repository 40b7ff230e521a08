package modules

import (
	"tourneyhub/api/cache"
	"tourneyhub/api/handlers"
	leaderboardservice "tourneyhub/api/services/leaderboard"
)

func initializeLeaderboardHandler(deps *ModuleDependencies) *handlers.LeaderboardHandler {
	leaderboardDeps := &leaderboardservice.LeaderboardServiceDeps{
		DB:     deps.DB,
		Logger: deps.Logger,
	}

	if deps.Redis != nil {
		leaderboardDeps.Cache = cache.NewLeaderboardCache(deps.Redis, deps.Config.Api.LeaderboardCacheTTL)
	}

	leaderboardService := leaderboardservice.NewLeaderboardService(leaderboardDeps)

	return handlers.NewLeaderboardHandler(&handlers.LeaderboardHandlerDependencies{
		LeaderboardService: leaderboardService,
		Logger:             deps.Logger,
	})
}
