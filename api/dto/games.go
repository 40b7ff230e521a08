package dto

import (
	"encoding/json"
	"time"

	"tourneyhub/pkg/stats"
)

// LinkAccountRequest is the body of a account link.
// Rank and elo are only read for games without API.
type LinkAccountRequest struct {
	GameId        uint         `json:"gameId" binding:"required"`
	GameUsername  string       `json:"gameUsername" binding:"required"`
	GameAccountId *string      `json:"gameAccountId"`
	Rank          string       `json:"rank"`
	Elo           stats.Number `json:"elo"`
}

// CreateGameRequest is the body of a game creation.
type CreateGameRequest struct {
	Name string `json:"name" binding:"required"`
}

// LinkedAccount is a linked account as returned to its owner.
type LinkedAccount struct {
	Id            uint            `json:"id"`
	GameId        uint            `json:"gameId"`
	GameName      string          `json:"gameName"`
	APIAvailable  bool            `json:"apiAvailable"`
	GameUsername  string          `json:"gameUsername"`
	GameAccountId *string         `json:"gameAccountId"`
	Stats         json.RawMessage `json:"stats"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// LinkResult is the result of a link, Created is false when a existing link was replaced.
type LinkResult struct {
	Account LinkedAccount `json:"account"`
	Created bool          `json:"created"`
}

// GameStatus is a game with the link state of the requesting user.
type GameStatus struct {
	Id           uint           `json:"id"`
	Name         string         `json:"name"`
	APIAvailable bool           `json:"apiAvailable"`
	APIEndpoint  *string        `json:"apiEndpoint"`
	Linked       bool           `json:"linked"`
	Account      *LinkedAccount `json:"account"`
}
