package filters

// Path parameters of the linked account endpoints.
type AccountUriParams struct {
	AccountId uint `uri:"accountId" binding:"required,min=1"`
}

// Path parameters of the game endpoints.
type GameUriParams struct {
	GameId uint `uri:"gameId" binding:"required,min=1"`
}
