package modules

import (
	"tourneyhub/api/cache"
	"tourneyhub/api/handlers"
	accountservice "tourneyhub/api/services/account"
)

func initializeAccountService(deps *ModuleDependencies) *accountservice.AccountService {
	accountDeps := &accountservice.AccountServiceDeps{
		DB:      deps.DB,
		Fetcher: deps.Fetcher,
		Logger:  deps.Logger,
	}

	// Without redis concurrent refreshes are not rejected.
	if deps.Redis != nil {
		accountDeps.RefreshLock = cache.NewRefreshLock(deps.Redis, deps.Config.Api.RefreshLockTTL)
	}

	return accountservice.NewAccountService(accountDeps)
}

func initializeGamesHandler(deps *ModuleDependencies, accountService *accountservice.AccountService) *handlers.GamesHandler {
	return handlers.NewGamesHandler(&handlers.GamesHandlerDependencies{
		AccountService: accountService,
		Logger:         deps.Logger,
	})
}
