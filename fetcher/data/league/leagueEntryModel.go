package leaguefetcher

// LeagueEntry is a player standing on a single ranked queue.
type LeagueEntry struct {
	LeagueId     string `json:"leagueId"`
	SummonerId   string `json:"summonerId"`
	Puuid        string `json:"puuid"`
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	HotStreak    bool   `json:"hotStreak"`
	Veteran      bool   `json:"veteran"`
	FreshBlood   bool   `json:"freshBlood"`
	Inactive     bool   `json:"inactive"`
}
