package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tourneyhub/pkg/apperrors"
	"tourneyhub/pkg/database/models"

	"gorm.io/gorm"
)

// LinkedAccountRepository is the public interface for accessing the linked accounts.
type LinkedAccountRepository interface {
	UpsertLink(ctx context.Context, link *models.LinkedAccount) (bool, error)
	GetAccountForUser(ctx context.Context, accountId uint, userId uint) (*models.LinkedAccount, error)
	DeleteAccountForUser(ctx context.Context, accountId uint, userId uint) error
	ListByUser(ctx context.Context, userId uint) ([]models.LinkedAccount, error)
	ListLeaderboardRows(ctx context.Context, userIds []uint, gameId *uint) ([]LeaderboardRow, error)
	ListStaleAPIAccounts(ctx context.Context, updatedBefore time.Time, limit int) ([]models.LinkedAccount, error)
	UpdateStats(ctx context.Context, account *models.LinkedAccount) error
	MarkRefreshAttempt(ctx context.Context, accountId uint) error
}

// linkedAccountRepository repository structure.
type linkedAccountRepository struct {
	db *gorm.DB
}

// NewLinkedAccountRepository creates a linked account repository.
func NewLinkedAccountRepository(db *gorm.DB) LinkedAccountRepository {
	return &linkedAccountRepository{db: db}
}

// LeaderboardRow is a linked account joined with its game and owner.
type LeaderboardRow struct {
	ID                uint      `gorm:"column:id"`
	UserID            uint      `gorm:"column:user_id"`
	Username          string    `gorm:"column:username"`
	AvatarURL         *string   `gorm:"column:avatar_url"`
	GameID            uint      `gorm:"column:game_id"`
	GameName          string    `gorm:"column:game_name"`
	APIAvailable      bool      `gorm:"column:api_available"`
	DisplayName       string    `gorm:"column:display_name"`
	ExternalAccountID *string   `gorm:"column:external_account_id"`
	Stats             []byte    `gorm:"column:stats"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

type upsertResult struct {
	ID        uint
	CreatedAt time.Time
	UpdatedAt time.Time
	Inserted  bool
}

// UpsertLink inserts the link or replaces the existing one of the same user and game.
// Returns true when a new row was created.
func (lr *linkedAccountRepository) UpsertLink(ctx context.Context, link *models.LinkedAccount) (bool, error) {
	var result upsertResult
	err := lr.db.WithContext(ctx).Raw(`
		INSERT INTO linked_accounts (user_id, game_id, display_name, external_account_id, stats, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
		ON CONFLICT (user_id, game_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			external_account_id = EXCLUDED.external_account_id,
			stats = EXCLUDED.stats,
			updated_at = NOW()
		RETURNING id, created_at, updated_at, (xmax = 0) AS inserted`,
		link.UserID, link.GameID, link.DisplayName, link.ExternalAccountID, nullableJSON(link.Stats),
	).Scan(&result).Error

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, fmt.Errorf("%w: user %d game %d", apperrors.ErrDuplicateLink, link.UserID, link.GameID)
	}
	if err != nil {
		return false, fmt.Errorf("couldn't save the link of user %d on game %d: %w", link.UserID, link.GameID, err)
	}

	link.ID = result.ID
	link.CreatedAt = result.CreatedAt
	link.UpdatedAt = result.UpdatedAt

	return result.Inserted, nil
}

// GetAccountForUser returns a account owned by the user, with its game.
func (lr *linkedAccountRepository) GetAccountForUser(ctx context.Context, accountId uint, userId uint) (*models.LinkedAccount, error) {
	var account models.LinkedAccount
	err := lr.db.WithContext(ctx).
		Preload("Game").
		Where("id = ? AND user_id = ?", accountId, userId).
		First(&account).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountId)
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't get account %d: %w", accountId, err)
	}

	return &account, nil
}

// DeleteAccountForUser removes a account owned by the user.
func (lr *linkedAccountRepository) DeleteAccountForUser(ctx context.Context, accountId uint, userId uint) error {
	result := lr.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", accountId, userId).
		Delete(&models.LinkedAccount{})

	if result.Error != nil {
		return fmt.Errorf("couldn't delete account %d: %w", accountId, result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountId)
	}

	return nil
}

// ListByUser returns the accounts of a user ordered by game name.
func (lr *linkedAccountRepository) ListByUser(ctx context.Context, userId uint) ([]models.LinkedAccount, error) {
	var accounts []models.LinkedAccount
	err := lr.db.WithContext(ctx).
		Joins("Game").
		Where("linked_accounts.user_id = ?", userId).
		Order(`"Game"."name", linked_accounts.id`).
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("couldn't list the accounts of user %d: %w", userId, err)
	}

	return accounts, nil
}

// ListLeaderboardRows returns the accounts of the given users ordered by game name then insertion.
func (lr *linkedAccountRepository) ListLeaderboardRows(ctx context.Context, userIds []uint, gameId *uint) ([]LeaderboardRow, error) {
	rows := []LeaderboardRow{}
	if len(userIds) == 0 {
		return rows, nil
	}

	query := lr.db.WithContext(ctx).
		Table("linked_accounts AS la").
		Select(`la.id, la.user_id, u.username, u.avatar_url, la.game_id, g.name AS game_name,
			g.api_available, la.display_name, la.external_account_id, la.stats, la.updated_at`).
		Joins("JOIN games g ON g.id = la.game_id").
		Joins("JOIN users u ON u.id = la.user_id").
		Where("la.user_id IN ?", userIds)

	if gameId != nil {
		query = query.Where("la.game_id = ?", *gameId)
	}

	if err := query.Order("g.name, la.id").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("couldn't list the leaderboard accounts: %w", err)
	}

	return rows, nil
}

// ListStaleAPIAccounts returns the API backed accounts neither refreshed nor attempted since updatedBefore,
// the longest waiting first.
func (lr *linkedAccountRepository) ListStaleAPIAccounts(ctx context.Context, updatedBefore time.Time, limit int) ([]models.LinkedAccount, error) {
	// GREATEST skips NULL, accounts never attempted fall back to updated_at.
	const lastTouched = "GREATEST(linked_accounts.updated_at, linked_accounts.last_refresh_attempt_at)"

	var accounts []models.LinkedAccount
	err := lr.db.WithContext(ctx).
		Joins("Game").
		Where(`"Game"."api_available" = ?`, true).
		Where("linked_accounts.stats IS NOT NULL").
		Where(lastTouched+" < ?", updatedBefore).
		Order(lastTouched + ", linked_accounts.id").
		Limit(limit).
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("couldn't list the stale accounts: %w", err)
	}

	return accounts, nil
}

type statsUpdateResult struct {
	UpdatedAt            time.Time
	LastRefreshAttemptAt *time.Time
}

// UpdateStats stores refreshed stats on an existing account.
// Returns ErrNotFound when the account was unlinked meanwhile, it is never recreated.
func (lr *linkedAccountRepository) UpdateStats(ctx context.Context, account *models.LinkedAccount) error {
	var result statsUpdateResult
	tx := lr.db.WithContext(ctx).Raw(`
		UPDATE linked_accounts
		SET stats = ?, updated_at = NOW(), last_refresh_attempt_at = NOW()
		WHERE id = ?
		RETURNING updated_at, last_refresh_attempt_at`,
		nullableJSON(account.Stats), account.ID,
	).Scan(&result)

	if tx.Error != nil {
		return fmt.Errorf("couldn't update the stats of account %d: %w", account.ID, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, account.ID)
	}

	account.UpdatedAt = result.UpdatedAt
	account.LastRefreshAttemptAt = result.LastRefreshAttemptAt
	return nil
}

// MarkRefreshAttempt records a failed refresh without touching the stats or updated_at.
func (lr *linkedAccountRepository) MarkRefreshAttempt(ctx context.Context, accountId uint) error {
	result := lr.db.WithContext(ctx).
		Model(&models.LinkedAccount{}).
		Where("id = ?", accountId).
		UpdateColumn("last_refresh_attempt_at", gorm.Expr("NOW()"))

	if result.Error != nil {
		return fmt.Errorf("couldn't mark the refresh attempt of account %d: %w", accountId, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountId)
	}

	return nil
}

// Empty stats are stored as NULL.
func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
