package jobs

import (
	"context"
	"fmt"
	"time"

	accountservice "tourneyhub/api/services/account"
	"tourneyhub/pkg/config"
	"tourneyhub/pkg/logger"
)

// StaleRefresher refreshes the stats not updated since a given time.
type StaleRefresher interface {
	RefreshStaleAccounts(ctx context.Context, updatedBefore time.Time, limit int) (accountservice.RefreshReport, error)
}

// RefreshStaleStats refreshes a batch of the stalest API backed accounts.
func RefreshStaleStats(ctx context.Context, refresher StaleRefresher, cfg config.SchedulerConfiguration, logger *logger.NewLogger, now func() time.Time) error {
	startTime := now()
	cutoff := startTime.Add(-cfg.StaleAfter)

	logger.Infof("Starting stale stats refresh (not updated since %s, batch of %d)", cutoff.Format(time.RFC3339), cfg.BatchSize)

	report, err := refresher.RefreshStaleAccounts(ctx, cutoff, cfg.BatchSize)
	if err != nil {
		return fmt.Errorf("couldn't refresh the stale stats: %w", err)
	}

	if report.RateLimited {
		logger.Warnf("Stale stats refresh stopped by the rate limit, %d refreshed and %d failed", report.Refreshed, report.Failed)
		return nil
	}

	logger.Infof("Stale stats refresh finished in %s, %d refreshed and %d failed", time.Since(startTime).Round(time.Millisecond), report.Refreshed, report.Failed)
	return nil
}
