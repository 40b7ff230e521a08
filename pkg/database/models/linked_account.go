package models

import "time"

// LinkedAccount is the account of a user on a game.
// A user has at most one account per game.
type LinkedAccount struct {
	ID                uint    `gorm:"primaryKey"`
	UserID            uint    `gorm:"not null;uniqueIndex:idx_linked_accounts_user_game"`
	GameID            uint    `gorm:"not null;uniqueIndex:idx_linked_accounts_user_game"`
	DisplayName       string  `gorm:"type:varchar(100);not null"`
	ExternalAccountID *string `gorm:"type:varchar(100)"`
	Stats             []byte  `gorm:"type:jsonb"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Set on every stats refresh, failed ones included.
	LastRefreshAttemptAt *time.Time

	Game Game `gorm:"foreignKey:GameID"`
}
