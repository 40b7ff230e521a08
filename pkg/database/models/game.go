package models

import "time"

// Game is a game the users can link accounts for.
// APIAvailable marks the games whose stats come from a external API.
type Game struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	APIAvailable bool      `gorm:"column:api_available;not null;default:false" json:"apiAvailable"`
	APIEndpoint  *string   `gorm:"column:api_endpoint;type:varchar(255)" json:"apiEndpoint"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
