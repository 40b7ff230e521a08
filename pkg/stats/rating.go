package stats

// ExtractRating returns the comparable rating of a stats value.
// The game is checked first: "rank" is a structured record for the integrated game
// and a free text label elsewhere.
func ExtractRating(game GameInfo, blob Blob) int {
	if game.APIAvailable && blob.Kind == KindAPI && blob.API.Rank != nil {
		points, _ := blob.API.Rank.LeaguePoints.Int()
		return clamp(points)
	}

	if blob.Kind != KindManual {
		return 0
	}

	if elo, ok := blob.Manual.Elo.Int(); ok {
		return clamp(elo)
	}

	if rating, ok := blob.Manual.Rank.Rating(); ok {
		return clamp(rating)
	}

	return 0
}

// Ratings are never negative.
func clamp(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
