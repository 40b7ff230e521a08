package accountservice

import (
	"bytes"
	"time"

	"tourneyhub/api/services/testutil"
	"tourneyhub/pkg/logger"
)

var fixedDate = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

// Helper to initialize the mocks.
func setupTestService() (
	*AccountService,
	*testutil.MockGameRepository,
	*testutil.MockLinkedAccountRepository,
	*testutil.MockStatsFetcher,
	*testutil.MockRefreshLock,
) {
	mockGameRepo := new(testutil.MockGameRepository)
	mockAccountRepo := new(testutil.MockLinkedAccountRepository)
	mockFetcher := new(testutil.MockStatsFetcher)
	mockLock := new(testutil.MockRefreshLock)

	service := &AccountService{
		fetcher:           mockFetcher,
		refreshLock:       mockLock,
		logger:            logger.NewTestLogger(&bytes.Buffer{}),
		now:               func() time.Time { return fixedDate },
		GameRepository:    mockGameRepo,
		AccountRepository: mockAccountRepo,
	}

	return service, mockGameRepo, mockAccountRepo, mockFetcher, mockLock
}
