package leaderboardservice

import (
	"context"

	"tourneyhub/api/cache"
	"tourneyhub/api/converters"
	"tourneyhub/api/dto"
	grouprepo "tourneyhub/api/repositories/group"
	accountrepo "tourneyhub/api/repositories/linkedaccount"
	"tourneyhub/pkg/apperrors"
	"tourneyhub/pkg/leaderboard"
	"tourneyhub/pkg/logger"
	"tourneyhub/pkg/stats"

	"gorm.io/gorm"
)

// LeaderboardService builds the group leaderboards.
type LeaderboardService struct {
	cache  cache.LeaderboardCache
	logger *logger.NewLogger

	GroupRepository   grouprepo.GroupRepository
	AccountRepository accountrepo.LinkedAccountRepository
}

// LeaderboardServiceDeps are the dependencies of the leaderboard service.
// Cache is optional.
type LeaderboardServiceDeps struct {
	DB     *gorm.DB
	Cache  cache.LeaderboardCache
	Logger *logger.NewLogger
}

// NewLeaderboardService creates a leaderboard service.
func NewLeaderboardService(deps *LeaderboardServiceDeps) *LeaderboardService {
	return &LeaderboardService{
		cache:             deps.Cache,
		logger:            deps.Logger,
		GroupRepository:   grouprepo.NewGroupRepository(deps.DB),
		AccountRepository: accountrepo.NewLinkedAccountRepository(deps.DB),
	}
}

// GetGroupLeaderboard ranks the linked accounts of the group members.
// Only accepted members and the creator can read it.
func (ls *LeaderboardService) GetGroupLeaderboard(ctx context.Context, groupId uint, requesterId uint, gameId *uint) ([]dto.LeaderboardEntry, error) {
	isMember, err := ls.GroupRepository.IsMember(ctx, groupId, requesterId)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.ErrUnauthorized
	}

	if ls.cache != nil {
		cached, found, err := ls.cache.GetLeaderboard(ctx, groupId, gameId)
		if err != nil {
			ls.logger.Warnf("leaderboard cache read failed for group %d: %v", groupId, err)
		} else if found {
			return cached, nil
		}
	}

	memberIds, err := ls.GroupRepository.GetMemberIds(ctx, groupId)
	if err != nil {
		return nil, err
	}

	rows, err := ls.AccountRepository.ListLeaderboardRows(ctx, memberIds, gameId)
	if err != nil {
		return nil, err
	}

	rowsById := make(map[uint]*accountrepo.LeaderboardRow, len(rows))
	accounts := make([]leaderboard.Account, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		rowsById[row.ID] = row

		blob, decodeErr := stats.Decode(row.Stats, row.APIAvailable)
		accounts = append(accounts, leaderboard.Account{
			ID:          row.ID,
			UserID:      row.UserID,
			Username:    row.Username,
			DisplayName: row.DisplayName,
			Game: stats.GameInfo{
				ID:           row.GameID,
				Name:         row.GameName,
				APIAvailable: row.APIAvailable,
			},
			Stats:    blob,
			StatsErr: decodeErr,
		})
	}

	entries := leaderboard.Build(accounts, gameId)
	if failures := leaderboard.Diagnostics(entries); len(failures) > 0 {
		log := ls.logger.With().Uint("group_id", groupId).Logger()
		for _, failed := range failures {
			log.Warn().
				Err(failed.Diagnostic).
				Uint("account_id", failed.Account.ID).
				Str("game", failed.Account.Game.Name).
				Msg("unreadable stats, ranked with 0")
		}
	}

	result := make([]dto.LeaderboardEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, converters.ConvertLeaderboardEntry(rowsById[entry.Account.ID], entry))
	}

	if ls.cache != nil {
		if err := ls.cache.SetLeaderboard(ctx, groupId, gameId, result); err != nil {
			ls.logger.Warnf("couldn't cache the leaderboard of group %d: %v", groupId, err)
		}
	}

	return result, nil
}
