package dto

import "encoding/json"

// LeaderboardEntry is a ranked account of a group leaderboard.
type LeaderboardEntry struct {
	Id           uint            `json:"id"`
	UserId       uint            `json:"userId"`
	Username     string          `json:"username"`
	AvatarURL    *string         `json:"avatarUrl"`
	GameId       uint            `json:"gameId"`
	GameName     string          `json:"gameName"`
	APIAvailable bool            `json:"apiAvailable"`
	GameUsername string          `json:"gameUsername"`
	Stats        json.RawMessage `json:"stats"`
	Elo          int             `json:"elo"`
	TierScore    *int            `json:"tierScore,omitempty"`
}
