package accountfetcher

import (
	"context"
	"fmt"
	"net/url"

	"tourneyhub/fetcher/requests"
)

const endpointByRiotId = "account-v1.by-riot-id"

// AccountFetcher resolves Riot IDs on the regional host.
type AccountFetcher struct {
	requester *requests.Requester
	baseURL   string
}

// NewAccountFetcher creates a account fetcher for the given regional host.
func NewAccountFetcher(requester *requests.Requester, baseURL string) *AccountFetcher {
	return &AccountFetcher{
		requester: requester,
		baseURL:   baseURL,
	}
}

// ResolveAccount gets the stable puuid behind a "GameName#TagLine" identifier.
func (a *AccountFetcher) ResolveAccount(ctx context.Context, gameName string, tagLine string) (*Account, error) {
	url := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		a.baseURL, url.PathEscape(gameName), url.PathEscape(tagLine))

	resp, err := a.requester.AuthRequest(ctx, endpointByRiotId, url)
	if err != nil {
		return nil, err
	}

	if err := a.requester.Classify(resp); err != nil {
		return nil, fmt.Errorf("couldn't resolve account %s#%s: %w", gameName, tagLine, err)
	}

	account, err := requests.Decode[Account](resp)
	if err != nil {
		return nil, err
	}

	return account, nil
}
