package leaguefetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"tourneyhub/fetcher/requests"
	"tourneyhub/pkg/apperrors"
	queuevalues "tourneyhub/pkg/riotvalues/queue"
	"tourneyhub/pkg/stats"
)

const endpointEntriesByPuuid = "league-v4.entries-by-puuid"

// RankOutcome is how the rank lookup ended.
type RankOutcome int

const (
	RankFound RankOutcome = iota
	RankUnranked
	RankNotFound
	RankForbidden
	RankUnavailable
)

func (o RankOutcome) String() string {
	switch o {
	case RankFound:
		return "found"
	case RankUnranked:
		return "unranked"
	case RankNotFound:
		return "not_found"
	case RankForbidden:
		return "forbidden"
	}
	return "unavailable"
}

// RankResult is the rank lookup result, Record is only set on RankFound.
type RankResult struct {
	Outcome RankOutcome
	Record  *stats.RankRecord
}

// LeagueFetcher gets the ranked entries on the platform host.
type LeagueFetcher struct {
	requester *requests.Requester
	baseURL   string
}

// Create a league fetcher.
func NewLeagueFetcher(requester *requests.Requester, baseURL string) *LeagueFetcher {
	return &LeagueFetcher{
		requester: requester,
		baseURL:   baseURL,
	}
}

// ResolveRank gets the player standing on the primary ranked queue.
// Only the rate limit is returned as an error, every other failure ends as a outcome
// so the profile data is still usable.
func (l *LeagueFetcher) ResolveRank(ctx context.Context, puuid string) (RankResult, error) {
	url := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s", l.baseURL, url.PathEscape(puuid))

	resp, err := l.requester.AuthRequest(ctx, endpointEntriesByPuuid, url)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateLimitExceeded) {
			return RankResult{}, err
		}
		l.requester.Logger().Warnf("rank lookup for %s failed: %v", puuid, err)
		return RankResult{Outcome: RankUnavailable}, nil
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return RankResult{Outcome: RankNotFound}, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		l.requester.Logger().Errorf("rank lookup for %s was refused with status %d, check the api key scope", puuid, resp.StatusCode)
		return RankResult{Outcome: RankForbidden}, nil
	default:
		l.requester.Logger().Warnf("rank lookup for %s returned status %d", puuid, resp.StatusCode)
		return RankResult{Outcome: RankUnavailable}, nil
	}

	entries, err := requests.Decode[[]LeagueEntry](resp)
	if err != nil {
		l.requester.Logger().Warnf("rank lookup for %s: %v", puuid, err)
		return RankResult{Outcome: RankUnavailable}, nil
	}

	entry := SelectQueue(*entries, queuevalues.PrimaryRankedQueue)
	if entry == nil {
		return RankResult{Outcome: RankUnranked}, nil
	}

	return RankResult{
		Outcome: RankFound,
		Record: &stats.RankRecord{
			Tier:         entry.Tier,
			Division:     entry.Rank,
			LeaguePoints: stats.NumberFromInt(entry.LeaguePoints),
			Wins:         entry.Wins,
			Losses:       entry.Losses,
		},
	}, nil
}

// SelectQueue returns the entry of the given queue, or nil.
func SelectQueue(entries []LeagueEntry, queue string) *LeagueEntry {
	for i := range entries {
		if entries[i].QueueType == queue {
			return &entries[i]
		}
	}
	return nil
}
