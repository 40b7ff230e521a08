package converters

import (
	"testing"

	accountrepo "tourneyhub/api/repositories/linkedaccount"
	"tourneyhub/pkg/database/models"
	"tourneyhub/pkg/leaderboard"
	"tourneyhub/pkg/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertGameStatus(t *testing.T) {
	game := models.Game{ID: 2, Name: "Valorant"}

	status := ConvertGameStatus(game, nil)
	assert.False(t, status.Linked)
	assert.Nil(t, status.Account)

	status = ConvertGameStatus(game, &models.LinkedAccount{ID: 4, GameID: 2, DisplayName: "Player", Game: game})
	assert.True(t, status.Linked)
	require.NotNil(t, status.Account)
	assert.Equal(t, "Valorant", status.Account.GameName)
	assert.Nil(t, status.Account.Stats)
}

func TestConvertLeaderboardEntry(t *testing.T) {
	row := &accountrepo.LeaderboardRow{
		ID:           1,
		GameName:     "League of Legends",
		APIAvailable: true,
		Stats:        []byte(`{"rank":{"tier":"MASTER","rank":"I","leaguePoints":120}}`),
	}
	blob, err := stats.Decode(row.Stats, true)
	require.NoError(t, err)

	entry := ConvertLeaderboardEntry(row, leaderboard.Entry{Account: leaderboard.Account{ID: 1, Stats: blob}, Rating: 120})
	assert.Equal(t, 120, entry.Elo)
	require.NotNil(t, entry.TierScore)
	assert.Equal(t, 70120, *entry.TierScore)
	assert.JSONEq(t, string(row.Stats), string(entry.Stats))
}

func TestConvertLeaderboardEntryUnreadableStats(t *testing.T) {
	row := &accountrepo.LeaderboardRow{ID: 1, Stats: []byte(`{"elo":`)}
	_, decodeErr := stats.Decode(row.Stats, false)

	entry := ConvertLeaderboardEntry(row, leaderboard.Entry{Account: leaderboard.Account{ID: 1}, Diagnostic: decodeErr})
	assert.Nil(t, entry.Stats)
	assert.Nil(t, entry.TierScore)
	assert.Equal(t, 0, entry.Elo)
}
