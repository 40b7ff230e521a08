package stats

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"tourneyhub/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	fixedDate  = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	leagueGame = GameInfo{ID: 1, Name: "League of Legends", APIAvailable: true}
	manualGame = GameInfo{ID: 2, Name: "Valorant", APIAvailable: false}
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchFullStats(ctx context.Context, identifier string) (*APIStats, error) {
	args := m.Called(ctx, identifier)
	s, _ := args.Get(0).(*APIStats)
	return s, args.Error(1)
}

func mustDecode(t *testing.T, raw string, apiAvailable bool) Blob {
	t.Helper()
	blob, err := Decode([]byte(raw), apiAvailable)
	require.NoError(t, err)
	return blob
}

func TestExtractRating(t *testing.T) {
	tests := []struct {
		name     string
		game     GameInfo
		raw      string
		expected int
	}{
		{name: "api rank points", game: leagueGame, raw: `{"puuid":"p","rank":{"tier":"GOLD","rank":"II","leaguePoints":42}}`, expected: 42},
		{name: "api unranked", game: leagueGame, raw: `{"puuid":"p","rank":null}`, expected: 0},
		{name: "api points missing", game: leagueGame, raw: `{"rank":{"tier":"GOLD"}}`, expected: 0},
		{name: "api points non numeric", game: leagueGame, raw: `{"rank":{"leaguePoints":"lots"}}`, expected: 0},
		{name: "manual numeric string elo", game: manualGame, raw: `{"game_username":"x","elo":"1500"}`, expected: 1500},
		{name: "manual numeric elo", game: manualGame, raw: `{"elo":1500}`, expected: 1500},
		{name: "manual elo with suffix", game: manualGame, raw: `{"elo":"1500 RR"}`, expected: 1500},
		{name: "manual elo not a number", game: manualGame, raw: `{"elo":"not-a-number"}`, expected: 0},
		{name: "manual negative elo", game: manualGame, raw: `{"elo":"-20"}`, expected: 0},
		{name: "manual huge float elo", game: manualGame, raw: `{"elo":1e20}`, expected: math.MaxInt},
		{name: "manual float past int range", game: manualGame, raw: `{"elo":9.3e18}`, expected: math.MaxInt},
		{name: "manual huge string elo", game: manualGame, raw: `{"elo":"99999999999999999999"}`, expected: math.MaxInt},
		{name: "manual huge negative elo", game: manualGame, raw: `{"elo":"-99999999999999999999"}`, expected: 0},
		{name: "api huge league points", game: leagueGame, raw: `{"rank":{"leaguePoints":1e30}}`, expected: math.MaxInt},
		{name: "manual rank object rating", game: manualGame, raw: `{"rank":{"rating":"2100"}}`, expected: 2100},
		{name: "manual elo wins over rank rating", game: manualGame, raw: `{"elo":10,"rank":{"rating":2100}}`, expected: 10},
		{name: "manual text rank", game: manualGame, raw: `{"rank":"Diamond 2"}`, expected: 0},
		{name: "empty object", game: manualGame, raw: `{}`, expected: 0},
		{name: "no stats", game: manualGame, raw: ``, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob := mustDecode(t, tt.raw, tt.game.APIAvailable)
			assert.Equal(t, tt.expected, ExtractRating(tt.game, blob))
		})
	}
}

func TestExtractRatingChecksGameBeforeShape(t *testing.T) {
	// An api shaped value on a game that lost its integration is not read as one.
	blob := NewAPIBlob(&APIStats{Rank: &RankRecord{LeaguePoints: NumberFromInt(80)}})
	assert.Equal(t, 0, ExtractRating(manualGame, blob))
	assert.Equal(t, 80, ExtractRating(leagueGame, blob))
}

func TestDecode(t *testing.T) {
	blob, err := Decode(nil, true)
	require.NoError(t, err)
	assert.True(t, blob.IsEmpty())

	blob, err = Decode([]byte("null"), false)
	require.NoError(t, err)
	assert.True(t, blob.IsEmpty())

	_, err = Decode([]byte(`{"rank": `), false)
	assert.ErrorIs(t, err, ErrMalformedBlob)

	_, err = Decode([]byte(`"just a string"`), true)
	assert.ErrorIs(t, err, ErrMalformedBlob)

	blob = mustDecode(t, `{"game_username":"Player","rank":"Gold","elo":"1200","lastUpdated":"2024-01-15T10:00:00Z"}`, false)
	assert.Equal(t, KindManual, blob.Kind)
	label, ok := blob.Manual.Rank.Label()
	assert.True(t, ok)
	assert.Equal(t, "Gold", label)
	assert.Equal(t, fixedDate, blob.LastUpdated())
}

func TestBlobRoundTrip(t *testing.T) {
	original := NewAPIBlob(&APIStats{
		SummonerID:    "summoner-1",
		Puuid:         "puuid-1",
		SummonerLevel: 312,
		ProfileIconID: 29,
		RiotID:        &RiotID{GameName: "Cam17OO", TagLine: "EUW"},
		Rank:          &RankRecord{Tier: "GOLD", Division: "II", LeaguePoints: NumberFromInt(42), Wins: 10, Losses: 8},
		LastUpdated:   fixedDate,
	})

	raw, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"leaguePoints":42`)
	assert.Contains(t, string(raw), `"rank":"II"`)

	decoded := mustDecode(t, string(raw), true)
	assert.Equal(t, original.API.Puuid, decoded.API.Puuid)
	assert.Equal(t, 42, ExtractRating(leagueGame, decoded))

	manual := NewManualBlob(&ManualStats{GameUsername: "Player", LastUpdated: fixedDate})
	raw, err = json.Marshal(manual)
	require.NoError(t, err)
	assert.JSONEq(t, `{"game_username":"Player","rank":null,"elo":null,"lastUpdated":"2024-01-15T10:00:00Z"}`, string(raw))
}

func TestNormalizeForLinkManualNeverFetches(t *testing.T) {
	fetcher := new(mockFetcher)

	blob, err := NormalizeForLink(context.Background(), manualGame, LinkInput{
		DisplayName: "Player#EUW",
		RankLabel:   "Immortal 1",
		Elo:         NumberFromString("320"),
	}, fetcher, fixedDate)
	require.NoError(t, err)

	assert.Equal(t, KindManual, blob.Kind)
	assert.Equal(t, "Player#EUW", blob.Manual.GameUsername)
	assert.Equal(t, fixedDate, blob.Manual.LastUpdated)
	assert.Equal(t, 320, ExtractRating(manualGame, blob))
	fetcher.AssertNotCalled(t, "FetchFullStats", mock.Anything, mock.Anything)
}

func TestNormalizeForLinkRequiresRiotID(t *testing.T) {
	fetcher := new(mockFetcher)

	_, err := NormalizeForLink(context.Background(), leagueGame, LinkInput{DisplayName: "OldSummonerName"}, fetcher, fixedDate)
	assert.ErrorIs(t, err, apperrors.ErrInvalidIdentifierFormat)
	fetcher.AssertNotCalled(t, "FetchFullStats", mock.Anything, mock.Anything)

	for _, name := range []string{"Name#EUW#x", "#EUW", "Name#"} {
		_, err = NormalizeForLink(context.Background(), leagueGame, LinkInput{DisplayName: name}, fetcher, fixedDate)
		assert.ErrorIs(t, err, apperrors.ErrInvalidIdentifierFormat, name)
	}
	fetcher.AssertNotCalled(t, "FetchFullStats", mock.Anything, mock.Anything)

	_, err = NormalizeForLink(context.Background(), leagueGame, LinkInput{DisplayName: "  "}, fetcher, fixedDate)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
}

func TestNormalizeForLinkAPI(t *testing.T) {
	fetcher := new(mockFetcher)
	fetched := &APIStats{Puuid: "puuid-1", RiotID: &RiotID{GameName: "Cam17OO", TagLine: "EUW"}, LastUpdated: fixedDate}
	fetcher.On("FetchFullStats", mock.Anything, "Cam17OO#EUW").Return(fetched, nil).Once()

	blob, err := NormalizeForLink(context.Background(), leagueGame, LinkInput{DisplayName: "Cam17OO#EUW", RankLabel: "ignored"}, fetcher, fixedDate)
	require.NoError(t, err)
	assert.Equal(t, KindAPI, blob.Kind)
	assert.Same(t, fetched, blob.API)
	assert.Nil(t, blob.Manual)
	fetcher.AssertExpectations(t)
}

func TestNormalizeForLinkPropagatesFetchErrors(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchFullStats", mock.Anything, "Ghost#000").Return(nil, apperrors.ErrPlayerNotFound).Once()

	_, err := NormalizeForLink(context.Background(), leagueGame, LinkInput{DisplayName: "Ghost#000"}, fetcher, fixedDate)
	assert.True(t, errors.Is(err, apperrors.ErrPlayerNotFound))
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		value int
		ok    bool
	}{
		{name: "int", raw: `12`, value: 12, ok: true},
		{name: "float", raw: `12.9`, value: 12, ok: true},
		{name: "string", raw: `"77"`, value: 77, ok: true},
		{name: "padded", raw: `"  77  "`, value: 77, ok: true},
		{name: "garbage", raw: `"abc"`, ok: false},
		{name: "bool", raw: `true`, ok: false},
		{name: "null", raw: `null`, ok: false},
		{name: "huge string with suffix", raw: `"99999999999999999999x"`, value: math.MaxInt, ok: true},
		{name: "negative overflow", raw: `-1e300`, value: math.MinInt, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NumberFromRaw(json.RawMessage(tt.raw))
			value, ok := n.Int()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.value, value)
		})
	}

	assert.False(t, NumberFromString("").Present())
}

func TestSplitRiotID(t *testing.T) {
	name, tag, ok := SplitRiotID("Cam17OO#EUW")
	assert.True(t, ok)
	assert.Equal(t, "Cam17OO", name)
	assert.Equal(t, "EUW", tag)

	name, tag, ok = SplitRiotID("Name#EUW#x")
	assert.True(t, ok)
	assert.Equal(t, "Name", name)
	assert.Equal(t, "EUW#x", tag)

	_, _, ok = SplitRiotID("legacy")
	assert.False(t, ok)

	assert.True(t, IsRiotID("Cam17OO#EUW"))
	assert.False(t, IsRiotID("Name#EUW#x"))
	assert.False(t, IsRiotID("legacy"))
}
