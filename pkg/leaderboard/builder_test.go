package leaderboard

import (
	"math"
	"testing"

	"tourneyhub/pkg/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	gameA = stats.GameInfo{ID: 1, Name: "A"}
	gameB = stats.GameInfo{ID: 2, Name: "B"}
	lol   = stats.GameInfo{ID: 3, Name: "League of Legends", APIAvailable: true}
)

func manualAccount(id uint, game stats.GameInfo, elo int) Account {
	return Account{
		ID:    id,
		Game:  game,
		Stats: stats.NewManualBlob(&stats.ManualStats{Elo: stats.NumberFromInt(elo)}),
	}
}

func ids(entries []Entry) []uint {
	out := make([]uint, len(entries))
	for i, e := range entries {
		out[i] = e.Account.ID
	}
	return out
}

func TestBuildOrdersGroupsAndRatings(t *testing.T) {
	accounts := []Account{
		manualAccount(1, gameA, 10),
		manualAccount(2, gameA, 50),
		manualAccount(3, gameB, 5),
	}

	entries := Build(accounts, nil)
	require.Len(t, entries, 3)

	assert.Equal(t, []uint{2, 1, 3}, ids(entries))
	assert.Equal(t, []int{50, 10, 5}, []int{entries[0].Rating, entries[1].Rating, entries[2].Rating})
}

func TestBuildGroupsByNameNotInputOrder(t *testing.T) {
	accounts := []Account{
		manualAccount(1, gameB, 100),
		manualAccount(2, gameA, 1),
		manualAccount(3, gameB, 200),
	}

	assert.Equal(t, []uint{2, 3, 1}, ids(Build(accounts, nil)))
}

func TestBuildTiesKeepInsertionOrder(t *testing.T) {
	accounts := []Account{
		manualAccount(7, gameA, 30),
		manualAccount(3, gameA, 30),
		manualAccount(5, gameA, 40),
		manualAccount(1, gameA, 30),
	}

	assert.Equal(t, []uint{5, 7, 3, 1}, ids(Build(accounts, nil)))
}

func TestBuildGameFilter(t *testing.T) {
	accounts := []Account{
		manualAccount(1, gameA, 10),
		manualAccount(2, gameB, 20),
	}

	filter := gameB.ID
	entries := Build(accounts, &filter)
	assert.Equal(t, []uint{2}, ids(entries))
}

func TestBuildEmpty(t *testing.T) {
	entries := Build(nil, nil)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestBuildMalformedStatsRankAsZero(t *testing.T) {
	_, decodeErr := stats.Decode([]byte(`{"rank":`), true)
	require.Error(t, decodeErr)

	accounts := []Account{
		{ID: 1, Game: lol, StatsErr: decodeErr},
		{ID: 2, Game: lol, Stats: stats.NewAPIBlob(&stats.APIStats{Rank: &stats.RankRecord{LeaguePoints: stats.NumberFromInt(12)}})},
		{ID: 3, Game: lol},
	}

	entries := Build(accounts, nil)
	assert.Equal(t, []uint{2, 1, 3}, ids(entries))
	assert.Equal(t, 0, entries[1].Rating)

	failed := Diagnostics(entries)
	require.Len(t, failed, 1)
	assert.Equal(t, uint(1), failed[0].Account.ID)
	assert.ErrorIs(t, failed[0].Diagnostic, stats.ErrMalformedBlob)
}

func TestBuildOverflowingRatingsRankFirst(t *testing.T) {
	decoded := func(raw string) stats.Blob {
		blob, err := stats.Decode([]byte(raw), false)
		require.NoError(t, err)
		return blob
	}

	accounts := []Account{
		manualAccount(1, gameA, 5000),
		{ID: 2, Game: gameA, Stats: decoded(`{"elo":1e20}`)},
		{ID: 3, Game: gameA, Stats: decoded(`{"elo":"99999999999999999999"}`)},
		{ID: 4, Game: gameA, Stats: decoded(`{"elo":9.3e18}`)},
		{ID: 5, Game: gameA, Stats: decoded(`{"elo":"-99999999999999999999"}`)},
	}

	entries := Build(accounts, nil)
	assert.Equal(t, []uint{2, 3, 4, 1, 5}, ids(entries))
	assert.Equal(t, math.MaxInt, entries[0].Rating)
	assert.Equal(t, math.MaxInt, entries[2].Rating)
	assert.Equal(t, 0, entries[4].Rating)
}

func TestBuildDoesNotMutateStats(t *testing.T) {
	blob := stats.NewManualBlob(&stats.ManualStats{Elo: stats.NumberFromString("900")})
	accounts := []Account{{ID: 1, Game: gameA, Stats: blob}}

	entries := Build(accounts, nil)
	assert.Equal(t, 900, entries[0].Rating)
	assert.Same(t, blob.Manual, entries[0].Account.Stats.Manual)
	value, _ := blob.Manual.Elo.Int()
	assert.Equal(t, 900, value)
}
