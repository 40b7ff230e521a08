package filters

// Path parameters of the group leaderboard.
type LeaderboardUriParams struct {
	GroupId uint `uri:"groupId" binding:"required,min=1"`
}

// Query parameters for the leaderboard filters.
type LeaderboardQueryParams struct {
	GameId *uint `form:"gameId" binding:"omitempty,min=1"`
}
