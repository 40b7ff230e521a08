package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tourneyhub/pkg/apperrors"
)

// StatsFetcher fetches the canonical API stats of a player.
type StatsFetcher interface {
	FetchFullStats(ctx context.Context, identifier string) (*APIStats, error)
}

// LinkInput is what the user sends when linking a game account.
type LinkInput struct {
	DisplayName string
	RankLabel   string
	Elo         Number
}

// NormalizeForLink builds the stats value stored for a new link.
// Games with API integration go through the fetcher, the others keep the user input as is.
func NormalizeForLink(ctx context.Context, game GameInfo, input LinkInput, fetcher StatsFetcher, now time.Time) (Blob, error) {
	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		return Blob{}, fmt.Errorf("%w: display name is required", apperrors.ErrInvalidRequest)
	}

	if !game.APIAvailable {
		return NewManualBlob(&ManualStats{
			GameUsername: displayName,
			Rank:         ManualRankFromLabel(input.RankLabel),
			Elo:          input.Elo,
			LastUpdated:  now.UTC(),
		}), nil
	}

	// Checked before any external call.
	if !IsRiotID(displayName) {
		return Blob{}, fmt.Errorf("%w: %q is not a Riot ID", apperrors.ErrInvalidIdentifierFormat, displayName)
	}

	fetched, err := fetcher.FetchFullStats(ctx, displayName)
	if err != nil {
		return Blob{}, err
	}

	return NewAPIBlob(fetched), nil
}
