package leaderboard

import (
	"cmp"
	"slices"

	"tourneyhub/pkg/stats"
)

// Account is a linked account as loaded for a leaderboard.
// StatsErr is set when the stored value could not be decoded.
type Account struct {
	ID          uint
	UserID      uint
	Username    string
	DisplayName string
	Game        stats.GameInfo
	Stats       stats.Blob
	StatsErr    error
}

// Entry is a ranked account.
type Entry struct {
	Account    Account
	Rating     int
	Diagnostic error
}

// Build ranks the accounts: grouped by game name ascending, rating descending inside a game.
// Ties keep the input order. A nil gameFilter keeps every game.
func Build(accounts []Account, gameFilter *uint) []Entry {
	groups := make(map[string][]Entry)
	var names []string

	for _, account := range accounts {
		if gameFilter != nil && account.Game.ID != *gameFilter {
			continue
		}

		entry := Entry{Account: account}
		if account.StatsErr != nil {
			// Malformed stats rank as no stats.
			entry.Diagnostic = account.StatsErr
		} else {
			entry.Rating = stats.ExtractRating(account.Game, account.Stats)
		}

		name := account.Game.Name
		if _, exists := groups[name]; !exists {
			names = append(names, name)
		}
		groups[name] = append(groups[name], entry)
	}

	slices.Sort(names)

	result := make([]Entry, 0, len(accounts))
	for _, name := range names {
		group := groups[name]
		slices.SortStableFunc(group, func(a, b Entry) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
		result = append(result, group...)
	}

	return result
}

// Diagnostics returns the entries whose stats could not be read.
func Diagnostics(entries []Entry) []Entry {
	var failed []Entry
	for _, entry := range entries {
		if entry.Diagnostic != nil {
			failed = append(failed, entry)
		}
	}
	return failed
}
