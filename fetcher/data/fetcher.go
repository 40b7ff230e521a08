package data

import (
	"context"
	"fmt"
	"strings"
	"time"

	accountfetcher "tourneyhub/fetcher/data/account"
	leaguefetcher "tourneyhub/fetcher/data/league"
	playerfetcher "tourneyhub/fetcher/data/player"
	"tourneyhub/fetcher/requests"
	"tourneyhub/pkg/apperrors"
	"tourneyhub/pkg/config"
	"tourneyhub/pkg/logger"
	"tourneyhub/pkg/ratelimit"
	"tourneyhub/pkg/regions"
	"tourneyhub/pkg/stats"
)

// Define a main fetcher.
type MainFetcher struct {
	Account *accountfetcher.AccountFetcher
	Player  *playerfetcher.PlayerFetcher
	League  *leaguefetcher.LeagueFetcher
	logger  *logger.NewLogger
	now     func() time.Time
}

// Function to instanciate the main fetcher.
// All the sub fetchers share the given limiter.
func CreateMainFetcher(cfg config.RiotConfiguration, limiter *ratelimit.Limiter, logger *logger.NewLogger) (*MainFetcher, error) {
	platformURL := cfg.PlatformURL
	regionalURL := cfg.RegionalURL

	if platformURL == "" || regionalURL == "" {
		sub := regions.SubRegion(cfg.Platform)
		main, err := regions.MainRegionOf(sub)
		if err != nil {
			return nil, err
		}
		if platformURL == "" {
			platformURL = regions.PlatformURL(sub)
		}
		if regionalURL == "" {
			regionalURL = regions.RegionalURL(main)
		}
	}

	requester := requests.NewRequester(cfg.ApiKey, cfg.RequestTimeout, limiter, logger)

	return &MainFetcher{
		Account: accountfetcher.NewAccountFetcher(requester, regionalURL),
		Player:  playerfetcher.NewPlayerFetcher(requester, platformURL),
		League:  leaguefetcher.NewLeagueFetcher(requester, platformURL),
		logger:  logger,
		now:     time.Now,
	}, nil
}

// FetchFullStats resolves a identifier into the canonical stats value.
// "Name#Tag" goes through the account endpoint, a plain name through the legacy summoner lookup.
func (m *MainFetcher) FetchFullStats(ctx context.Context, identifier string) (*stats.APIStats, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, fmt.Errorf("%w: empty identifier", apperrors.ErrInvalidIdentifierFormat)
	}

	gameName, tagLine, isRiotID := stats.SplitRiotID(identifier)
	if isRiotID {
		// A second separator is not part of the tag.
		if gameName == "" || tagLine == "" || strings.Contains(tagLine, stats.IdentifierSeparator) {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidIdentifierFormat, identifier)
		}
		return m.fetchByRiotID(ctx, gameName, tagLine)
	}

	return m.fetchLegacy(ctx, identifier)
}

func (m *MainFetcher) fetchByRiotID(ctx context.Context, gameName string, tagLine string) (*stats.APIStats, error) {
	account, err := m.Account.ResolveAccount(ctx, gameName, tagLine)
	if err != nil {
		return nil, err
	}

	summoner, err := m.Player.ResolveProfile(ctx, account.Puuid)
	if err != nil {
		return nil, err
	}

	result := m.buildStats(summoner)
	result.RiotID = &stats.RiotID{GameName: account.GameName, TagLine: account.TagLine}

	if err := m.attachRank(ctx, result); err != nil {
		return nil, err
	}

	return result, nil
}

func (m *MainFetcher) fetchLegacy(ctx context.Context, summonerName string) (*stats.APIStats, error) {
	summoner, err := m.Player.ResolveLegacySummoner(ctx, summonerName)
	if err != nil {
		return nil, err
	}

	result := m.buildStats(summoner)
	if err := m.attachRank(ctx, result); err != nil {
		return nil, err
	}

	return result, nil
}

func (m *MainFetcher) buildStats(summoner *playerfetcher.SummonerByPuuid) *stats.APIStats {
	return &stats.APIStats{
		SummonerID:    summoner.Id,
		AccountID:     summoner.AccountId,
		Puuid:         summoner.Puuid,
		SummonerLevel: summoner.SummonerLevel,
		ProfileIconID: summoner.ProfileIconId,
		LastUpdated:   m.now().UTC(),
	}
}

// Only the rate limit fails the whole lookup, any other rank failure leaves the rank empty.
func (m *MainFetcher) attachRank(ctx context.Context, result *stats.APIStats) error {
	rank, err := m.League.ResolveRank(ctx, result.Puuid)
	if err != nil {
		return err
	}

	if rank.Outcome != leaguefetcher.RankFound {
		m.logger.Infof("no rank for %s: %s", result.Puuid, rank.Outcome)
		return nil
	}

	result.Rank = rank.Record
	return nil
}
