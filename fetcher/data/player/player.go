package playerfetcher

import (
	"context"
	"fmt"
	"net/url"

	"tourneyhub/fetcher/requests"
)

const (
	endpointByPuuid = "summoner-v4.by-puuid"
	endpointByName  = "summoner-v4.by-name"
)

// PlayerFetcher gets summoner profiles on the platform host.
type PlayerFetcher struct {
	requester *requests.Requester
	baseURL   string
}

// Create a player fetcher.
func NewPlayerFetcher(requester *requests.Requester, baseURL string) *PlayerFetcher {
	return &PlayerFetcher{
		requester: requester,
		baseURL:   baseURL,
	}
}

// ResolveProfile gets a players summoner data.
func (p *PlayerFetcher) ResolveProfile(ctx context.Context, puuid string) (*SummonerByPuuid, error) {
	url := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s", p.baseURL, url.PathEscape(puuid))
	return p.getSummoner(ctx, endpointByPuuid, url)
}

// ResolveLegacySummoner gets a summoner by the old single token summoner name.
// Deprecated by Riot, kept for accounts linked before Riot IDs.
func (p *PlayerFetcher) ResolveLegacySummoner(ctx context.Context, summonerName string) (*SummonerByPuuid, error) {
	url := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-name/%s", p.baseURL, url.PathEscape(summonerName))
	return p.getSummoner(ctx, endpointByName, url)
}

func (p *PlayerFetcher) getSummoner(ctx context.Context, endpoint string, url string) (*SummonerByPuuid, error) {
	resp, err := p.requester.AuthRequest(ctx, endpoint, url)
	if err != nil {
		return nil, err
	}

	if err := p.requester.Classify(resp); err != nil {
		return nil, fmt.Errorf("couldn't get summoner data: %w", err)
	}

	return requests.Decode[SummonerByPuuid](resp)
}
