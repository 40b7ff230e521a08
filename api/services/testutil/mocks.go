package testutil

import (
	"context"
	"testing"
	"time"

	"tourneyhub/api/dto"
	accountrepo "tourneyhub/api/repositories/linkedaccount"
	"tourneyhub/pkg/database/models"
	"tourneyhub/pkg/stats"

	"github.com/stretchr/testify/mock"
)

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(mock.TestingT) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// ============================================================================
// Repositories.
// ============================================================================

type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) ListGames(ctx context.Context) ([]models.Game, error) {
	args := m.Called(ctx)
	games, _ := args.Get(0).([]models.Game)
	return games, args.Error(1)
}

func (m *MockGameRepository) GetGameById(ctx context.Context, gameId uint) (*models.Game, error) {
	args := m.Called(ctx, gameId)
	game, _ := args.Get(0).(*models.Game)
	return game, args.Error(1)
}

func (m *MockGameRepository) CreateGame(ctx context.Context, game *models.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) DeleteGame(ctx context.Context, gameId uint) error {
	args := m.Called(ctx, gameId)
	return args.Error(0)
}

func (m *MockGameRepository) UpsertGameByName(ctx context.Context, game *models.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

type MockLinkedAccountRepository struct {
	mock.Mock
}

func (m *MockLinkedAccountRepository) UpsertLink(ctx context.Context, link *models.LinkedAccount) (bool, error) {
	args := m.Called(ctx, link)
	return args.Bool(0), args.Error(1)
}

func (m *MockLinkedAccountRepository) GetAccountForUser(ctx context.Context, accountId uint, userId uint) (*models.LinkedAccount, error) {
	args := m.Called(ctx, accountId, userId)
	account, _ := args.Get(0).(*models.LinkedAccount)
	return account, args.Error(1)
}

func (m *MockLinkedAccountRepository) DeleteAccountForUser(ctx context.Context, accountId uint, userId uint) error {
	args := m.Called(ctx, accountId, userId)
	return args.Error(0)
}

func (m *MockLinkedAccountRepository) ListByUser(ctx context.Context, userId uint) ([]models.LinkedAccount, error) {
	args := m.Called(ctx, userId)
	accounts, _ := args.Get(0).([]models.LinkedAccount)
	return accounts, args.Error(1)
}

func (m *MockLinkedAccountRepository) ListLeaderboardRows(ctx context.Context, userIds []uint, gameId *uint) ([]accountrepo.LeaderboardRow, error) {
	args := m.Called(ctx, userIds, gameId)
	rows, _ := args.Get(0).([]accountrepo.LeaderboardRow)
	return rows, args.Error(1)
}

func (m *MockLinkedAccountRepository) ListStaleAPIAccounts(ctx context.Context, updatedBefore time.Time, limit int) ([]models.LinkedAccount, error) {
	args := m.Called(ctx, updatedBefore, limit)
	accounts, _ := args.Get(0).([]models.LinkedAccount)
	return accounts, args.Error(1)
}

func (m *MockLinkedAccountRepository) UpdateStats(ctx context.Context, account *models.LinkedAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockLinkedAccountRepository) MarkRefreshAttempt(ctx context.Context, accountId uint) error {
	args := m.Called(ctx, accountId)
	return args.Error(0)
}

type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) IsMember(ctx context.Context, groupId uint, userId uint) (bool, error) {
	args := m.Called(ctx, groupId, userId)
	return args.Bool(0), args.Error(1)
}

func (m *MockGroupRepository) GetMemberIds(ctx context.Context, groupId uint) ([]uint, error) {
	args := m.Called(ctx, groupId)
	ids, _ := args.Get(0).([]uint)
	return ids, args.Error(1)
}

// ============================================================================
// Fetcher and cache.
// ============================================================================

type MockStatsFetcher struct {
	mock.Mock
}

func (m *MockStatsFetcher) FetchFullStats(ctx context.Context, identifier string) (*stats.APIStats, error) {
	args := m.Called(ctx, identifier)
	s, _ := args.Get(0).(*stats.APIStats)
	return s, args.Error(1)
}

type MockRefreshLock struct {
	mock.Mock
}

func (m *MockRefreshLock) Acquire(ctx context.Context, accountId uint) error {
	args := m.Called(ctx, accountId)
	return args.Error(0)
}

func (m *MockRefreshLock) Release(ctx context.Context, accountId uint) error {
	args := m.Called(ctx, accountId)
	return args.Error(0)
}

type MockLeaderboardCache struct {
	mock.Mock
}

func (m *MockLeaderboardCache) GetLeaderboard(ctx context.Context, groupId uint, gameId *uint) ([]dto.LeaderboardEntry, bool, error) {
	args := m.Called(ctx, groupId, gameId)
	entries, _ := args.Get(0).([]dto.LeaderboardEntry)
	return entries, args.Bool(1), args.Error(2)
}

func (m *MockLeaderboardCache) SetLeaderboard(ctx context.Context, groupId uint, gameId *uint, entries []dto.LeaderboardEntry) error {
	args := m.Called(ctx, groupId, gameId, entries)
	return args.Error(0)
}
