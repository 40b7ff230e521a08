package converters

import (
	"encoding/json"

	"tourneyhub/api/dto"
	accountrepo "tourneyhub/api/repositories/linkedaccount"
	"tourneyhub/pkg/database/models"
	"tourneyhub/pkg/leaderboard"
	tiervalues "tourneyhub/pkg/riotvalues/tier"
	"tourneyhub/pkg/stats"
)

// ConvertLinkedAccount returns the DTO of a stored account.
// The game must be loaded.
func ConvertLinkedAccount(account *models.LinkedAccount) dto.LinkedAccount {
	var raw json.RawMessage
	if len(account.Stats) > 0 {
		raw = account.Stats
	}

	return dto.LinkedAccount{
		Id:            account.ID,
		GameId:        account.GameID,
		GameName:      account.Game.Name,
		APIAvailable:  account.Game.APIAvailable,
		GameUsername:  account.DisplayName,
		GameAccountId: account.ExternalAccountID,
		Stats:         raw,
		UpdatedAt:     account.UpdatedAt,
	}
}

// ConvertGameStatus returns a game with the account the user linked on it, nil if none.
func ConvertGameStatus(game models.Game, account *models.LinkedAccount) dto.GameStatus {
	status := dto.GameStatus{
		Id:           game.ID,
		Name:         game.Name,
		APIAvailable: game.APIAvailable,
		APIEndpoint:  game.APIEndpoint,
	}

	if account != nil {
		linked := ConvertLinkedAccount(account)
		status.Linked = true
		status.Account = &linked
	}

	return status
}

// ConvertLeaderboardEntry returns the DTO of a ranked leaderboard row.
func ConvertLeaderboardEntry(row *accountrepo.LeaderboardRow, entry leaderboard.Entry) dto.LeaderboardEntry {
	result := dto.LeaderboardEntry{
		Id:           row.ID,
		UserId:       row.UserID,
		Username:     row.Username,
		AvatarURL:    row.AvatarURL,
		GameId:       row.GameID,
		GameName:     row.GameName,
		APIAvailable: row.APIAvailable,
		GameUsername: row.DisplayName,
		Elo:          entry.Rating,
	}

	// Unreadable or missing values are sent as null.
	if entry.Diagnostic == nil && !entry.Account.Stats.IsEmpty() {
		result.Stats = json.RawMessage(row.Stats)
	}

	blob := entry.Account.Stats
	if row.APIAvailable && blob.Kind == stats.KindAPI && blob.API.Rank != nil {
		points, _ := blob.API.Rank.LeaguePoints.Int()
		score := tiervalues.CalculateScore(blob.API.Rank.Tier, blob.API.Rank.Division, points)
		result.TierScore = &score
	}

	return result
}
