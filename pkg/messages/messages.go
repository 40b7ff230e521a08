package messages

const (
	BadStatusCodeMsg = "API returned status code %d on URL %s"
	FailedToParseMsg = "failed to parse API response"
	MissingApiKeyMsg = "Riot API key is not configured, check RIOT_API_KEY"
	RequestFailedMsg = "API request failed on URL %s"
)
