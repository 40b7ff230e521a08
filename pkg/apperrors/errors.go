package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds shared by the fetcher and the api.
var (
	ErrPlayerNotFound          = errors.New("player not found")
	ErrAuthenticationFailed    = errors.New("external API authentication failed")
	ErrAPIUnavailable          = errors.New("external API unavailable")
	ErrRateLimitExceeded       = errors.New("external API rate limit exceeded")
	ErrInvalidIdentifierFormat = errors.New("invalid identifier format")
	ErrDuplicateLink           = errors.New("account already linked for this game")
	ErrRefreshUnsupported      = errors.New("account does not support stats refresh")
	ErrRefreshInProgress       = errors.New("stats refresh already in progress")
	ErrNotFound                = errors.New("not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrGameExists              = errors.New("game already exists")
	ErrGameInUse               = errors.New("game has linked accounts")
	ErrInvalidRequest          = errors.New("invalid request")
)

// UpstreamError keeps the full upstream detail of a failed external call.
// The detail is meant for operator logs only.
type UpstreamError struct {
	Kind       error
	StatusCode int
	URL        string
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: request to %s failed: %v", e.Kind, e.URL, e.Err)
	}
	return fmt.Sprintf("%v: %s returned status %d: %s", e.Kind, e.URL, e.StatusCode, e.Body)
}

// Unwrap exposes both the kind and the transport error to errors.Is.
func (e *UpstreamError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Kind returns the sentinel kind carried by err, or nil for unknown errors.
func Kind(err error) error {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

var kinds = []error{
	ErrPlayerNotFound,
	ErrAuthenticationFailed,
	ErrAPIUnavailable,
	ErrRateLimitExceeded,
	ErrInvalidIdentifierFormat,
	ErrDuplicateLink,
	ErrRefreshUnsupported,
	ErrRefreshInProgress,
	ErrNotFound,
	ErrUnauthorized,
	ErrGameExists,
	ErrGameInUse,
	ErrInvalidRequest,
}

var userMessages = map[error]string{
	ErrPlayerNotFound:          "Player not found. Check that the Riot ID is correct (format: GameName#TAG).",
	ErrAuthenticationFailed:    "The Riot Games API key is invalid or expired. Development keys expire after 24h, generate a new one on https://developer.riotgames.com/ and update RIOT_API_KEY.",
	ErrAPIUnavailable:          "The game statistics service is currently unavailable, please try again later.",
	ErrRateLimitExceeded:       "Too many statistics requests right now, please try again in a couple of minutes.",
	ErrInvalidIdentifierFormat: "Use your Riot ID in the format GameName#TAG (e.g. Cam17OO#EUW).",
	ErrDuplicateLink:           "This game is already linked to your account.",
	ErrRefreshUnsupported:      "This account does not support automatic stats refresh.",
	ErrRefreshInProgress:       "A refresh for this account is already in progress, please wait.",
	ErrNotFound:                "Resource not found.",
	ErrUnauthorized:            "You are not allowed to access this resource.",
	ErrGameExists:              "This game already exists.",
	ErrGameInUse:               "This game can't be deleted because accounts are linked to it.",
	ErrInvalidRequest:          "Invalid request.",
}

var httpStatuses = map[error]int{
	ErrPlayerNotFound:          http.StatusNotFound,
	ErrAuthenticationFailed:    http.StatusBadGateway,
	ErrAPIUnavailable:          http.StatusServiceUnavailable,
	ErrRateLimitExceeded:       http.StatusTooManyRequests,
	ErrInvalidIdentifierFormat: http.StatusBadRequest,
	ErrDuplicateLink:           http.StatusConflict,
	ErrRefreshUnsupported:      http.StatusBadRequest,
	ErrRefreshInProgress:       http.StatusConflict,
	ErrNotFound:                http.StatusNotFound,
	ErrUnauthorized:            http.StatusForbidden,
	ErrGameExists:              http.StatusConflict,
	ErrGameInUse:               http.StatusConflict,
	ErrInvalidRequest:          http.StatusBadRequest,
}

// UserMessage returns the actionable message shown to end users.
// Upstream bodies are never part of it.
func UserMessage(err error) string {
	if msg, ok := userMessages[Kind(err)]; ok {
		return msg
	}
	return "Internal server error."
}

// HTTPStatus maps an error to the status code returned by the api.
func HTTPStatus(err error) int {
	if status, ok := httpStatuses[Kind(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}
