package pb

import (
	"testing"
	"time"

	"tourneyhub/pkg/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsStructConversion(t *testing.T) {
	original := &stats.APIStats{
		SummonerID:    "summoner-1",
		AccountID:     "acc-1",
		Puuid:         "puuid-1",
		SummonerLevel: 312,
		ProfileIconID: 29,
		RiotID:        &stats.RiotID{GameName: "Cam17OO", TagLine: "EUW"},
		Rank: &stats.RankRecord{
			Tier:         "GOLD",
			Division:     "II",
			LeaguePoints: stats.NumberFromInt(42),
			Wins:         10,
			Losses:       8,
		},
		LastUpdated: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
	}

	st, err := StatsToStruct(original)
	require.NoError(t, err)
	assert.Equal(t, "puuid-1", st.Fields["puuid"].GetStringValue())

	decoded, err := StructToStats(st)
	require.NoError(t, err)

	assert.Equal(t, original.Puuid, decoded.Puuid)
	assert.Equal(t, original.SummonerLevel, decoded.SummonerLevel)
	assert.Equal(t, original.RiotID, decoded.RiotID)
	assert.True(t, original.LastUpdated.Equal(decoded.LastUpdated))
	require.NotNil(t, decoded.Rank)
	points, ok := decoded.Rank.LeaguePoints.Int()
	assert.True(t, ok)
	assert.Equal(t, 42, points)
}

func TestStatsStructConversionUnranked(t *testing.T) {
	st, err := StatsToStruct(&stats.APIStats{Puuid: "puuid-2"})
	require.NoError(t, err)

	decoded, err := StructToStats(st)
	require.NoError(t, err)
	assert.Nil(t, decoded.Rank)
	assert.Nil(t, decoded.RiotID)
}

func TestStructToStatsNil(t *testing.T) {
	_, err := StructToStats(nil)
	assert.Error(t, err)
}
