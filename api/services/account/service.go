package accountservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"tourneyhub/api/cache"
	"tourneyhub/api/converters"
	"tourneyhub/api/dto"
	gamerepo "tourneyhub/api/repositories/game"
	accountrepo "tourneyhub/api/repositories/linkedaccount"
	"tourneyhub/pkg/apperrors"
	"tourneyhub/pkg/database/models"
	"tourneyhub/pkg/logger"
	"tourneyhub/pkg/metrics"
	"tourneyhub/pkg/stats"

	"gorm.io/gorm"
)

// AccountService links game accounts and keeps their stats.
type AccountService struct {
	fetcher     stats.StatsFetcher
	refreshLock cache.RefreshLock
	logger      *logger.NewLogger
	now         func() time.Time

	GameRepository    gamerepo.GameRepository
	AccountRepository accountrepo.LinkedAccountRepository
}

// AccountServiceDeps are the dependencies of the account service.
// RefreshLock is optional.
type AccountServiceDeps struct {
	DB          *gorm.DB
	Fetcher     stats.StatsFetcher
	RefreshLock cache.RefreshLock
	Logger      *logger.NewLogger
}

// NewAccountService creates a service for handling the linked accounts.
func NewAccountService(deps *AccountServiceDeps) *AccountService {
	return &AccountService{
		fetcher:           deps.Fetcher,
		refreshLock:       deps.RefreshLock,
		logger:            deps.Logger,
		now:               time.Now,
		GameRepository:    gamerepo.NewGameRepository(deps.DB),
		AccountRepository: accountrepo.NewLinkedAccountRepository(deps.DB),
	}
}

// LinkAccount links a game account to the user, replacing the previous one of the same game.
// Nothing is stored when the stats couldn't be built.
func (as *AccountService) LinkAccount(ctx context.Context, userId uint, req dto.LinkAccountRequest) (*dto.LinkResult, error) {
	game, err := as.GameRepository.GetGameById(ctx, req.GameId)
	if err != nil {
		return nil, err
	}

	info := gameInfo(game)
	blob, err := stats.NormalizeForLink(ctx, info, stats.LinkInput{
		DisplayName: req.GameUsername,
		RankLabel:   req.Rank,
		Elo:         req.Elo,
	}, as.fetcher, as.now())
	if err != nil {
		return nil, err
	}

	externalId := req.GameAccountId
	if externalId == nil && blob.Kind == stats.KindAPI && blob.API.Puuid != "" {
		externalId = &blob.API.Puuid
	}

	raw, err := json.Marshal(blob)
	if err != nil {
		return nil, fmt.Errorf("couldn't encode the stats: %w", err)
	}

	link := &models.LinkedAccount{
		UserID:            userId,
		GameID:            game.ID,
		DisplayName:       strings.TrimSpace(req.GameUsername),
		ExternalAccountID: externalId,
		Stats:             raw,
		Game:              *game,
	}

	created, err := as.AccountRepository.UpsertLink(ctx, link)
	if err != nil {
		return nil, err
	}

	as.logger.Infof("user %d linked %s on %s (created: %t)", userId, link.DisplayName, game.Name, created)

	return &dto.LinkResult{
		Account: converters.ConvertLinkedAccount(link),
		Created: created,
	}, nil
}

// RefreshAccountStats fetches again the stats of a API backed account owned by the user.
func (as *AccountService) RefreshAccountStats(ctx context.Context, userId uint, accountId uint) (*dto.LinkedAccount, error) {
	account, err := as.AccountRepository.GetAccountForUser(ctx, accountId, userId)
	if err != nil {
		return nil, err
	}

	if err := as.refresh(ctx, account); err != nil {
		return nil, err
	}

	result := converters.ConvertLinkedAccount(account)
	return &result, nil
}

// RefreshReport summarizes a batch refresh.
type RefreshReport struct {
	Refreshed   int
	Failed      int
	RateLimited bool
}

// RefreshStaleAccounts refreshes the API backed accounts not updated since updatedBefore, stalest first.
// The batch stops at the first rate limit rejection.
func (as *AccountService) RefreshStaleAccounts(ctx context.Context, updatedBefore time.Time, limit int) (RefreshReport, error) {
	var report RefreshReport

	accounts, err := as.AccountRepository.ListStaleAPIAccounts(ctx, updatedBefore, limit)
	if err != nil {
		return report, err
	}

	for i := range accounts {
		account := &accounts[i]

		err := as.refresh(ctx, account)
		switch {
		case err == nil:
			report.Refreshed++
		case errors.Is(err, apperrors.ErrRateLimitExceeded):
			report.RateLimited = true
			as.logger.Warnf("stale refresh stopped by the rate limit after %d accounts", report.Refreshed)
			return report, nil
		default:
			report.Failed++
			as.logger.Warnf("couldn't refresh account %d (%s): %v", account.ID, account.DisplayName, err)
		}
	}

	return report, nil
}

// Refresh a loaded account in place.
func (as *AccountService) refresh(ctx context.Context, account *models.LinkedAccount) error {
	if !account.Game.APIAvailable || len(account.Stats) == 0 || string(account.Stats) == "null" {
		return apperrors.ErrRefreshUnsupported
	}

	if as.refreshLock != nil {
		if err := as.refreshLock.Acquire(ctx, account.ID); err != nil {
			return err
		}
		defer func() {
			if err := as.refreshLock.Release(context.WithoutCancel(ctx), account.ID); err != nil {
				as.logger.Warnf("couldn't release the refresh lock of account %d: %v", account.ID, err)
			}
		}()
	}

	fetched, err := as.fetcher.FetchFullStats(ctx, account.DisplayName)
	if err != nil {
		metrics.StatsRefreshes.WithLabelValues(outcomeOf(err)).Inc()
		as.markAttempt(ctx, account.ID, err)
		return err
	}

	raw, err := json.Marshal(stats.NewAPIBlob(fetched))
	if err != nil {
		return fmt.Errorf("couldn't encode the stats: %w", err)
	}

	account.Stats = raw
	if err := as.AccountRepository.UpdateStats(ctx, account); err != nil {
		return err
	}

	metrics.StatsRefreshes.WithLabelValues("ok").Inc()
	return nil
}

// Failed refreshes push the account back in the stale queue.
// A rate limit says nothing about the account, it keeps its place.
func (as *AccountService) markAttempt(ctx context.Context, accountId uint, cause error) {
	if errors.Is(cause, apperrors.ErrRateLimitExceeded) {
		return
	}

	if err := as.AccountRepository.MarkRefreshAttempt(context.WithoutCancel(ctx), accountId); err != nil {
		as.logger.Warnf("couldn't record the refresh attempt of account %d: %v", accountId, err)
	}
}

// UnlinkAccount removes a account owned by the user.
func (as *AccountService) UnlinkAccount(ctx context.Context, userId uint, accountId uint) error {
	return as.AccountRepository.DeleteAccountForUser(ctx, accountId, userId)
}

// ListUserAccounts returns the accounts of the user ordered by game name.
func (as *AccountService) ListUserAccounts(ctx context.Context, userId uint) ([]dto.LinkedAccount, error) {
	accounts, err := as.AccountRepository.ListByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	result := make([]dto.LinkedAccount, 0, len(accounts))
	for i := range accounts {
		result = append(result, converters.ConvertLinkedAccount(&accounts[i]))
	}

	return result, nil
}

// ListGames returns the catalog ordered by name.
func (as *AccountService) ListGames(ctx context.Context) ([]models.Game, error) {
	games, err := as.GameRepository.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	if games == nil {
		games = []models.Game{}
	}
	return games, nil
}

// ListGamesWithStatus returns every game with the account the user linked on it, if any.
func (as *AccountService) ListGamesWithStatus(ctx context.Context, userId uint) ([]dto.GameStatus, error) {
	games, err := as.GameRepository.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	accounts, err := as.AccountRepository.ListByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	byGame := make(map[uint]*models.LinkedAccount, len(accounts))
	for i := range accounts {
		byGame[accounts[i].GameID] = &accounts[i]
	}

	result := make([]dto.GameStatus, 0, len(games))
	for _, game := range games {
		result = append(result, converters.ConvertGameStatus(game, byGame[game.ID]))
	}

	return result, nil
}

// CreateGame adds a game without API integration.
func (as *AccountService) CreateGame(ctx context.Context, name string) (*models.Game, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: game name is required", apperrors.ErrInvalidRequest)
	}

	game := &models.Game{Name: name}
	if err := as.GameRepository.CreateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// DeleteGame removes a game nobody linked.
func (as *AccountService) DeleteGame(ctx context.Context, gameId uint) error {
	return as.GameRepository.DeleteGame(ctx, gameId)
}

func gameInfo(game *models.Game) stats.GameInfo {
	return stats.GameInfo{
		ID:           game.ID,
		Name:         game.Name,
		APIAvailable: game.APIAvailable,
	}
}

// Metric label of a failed refresh.
func outcomeOf(err error) string {
	if kind := apperrors.Kind(err); kind != nil {
		return strings.ReplaceAll(kind.Error(), " ", "_")
	}
	return "error"
}
