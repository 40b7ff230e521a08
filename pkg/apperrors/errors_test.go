package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestUpstreamErrorIs(t *testing.T) {
	transportErr := errors.New("connection reset")
	err := &UpstreamError{Kind: ErrAPIUnavailable, URL: "https://euw1.api.riotgames.com", Err: transportErr}

	assert.ErrorIs(t, err, ErrAPIUnavailable)
	assert.ErrorIs(t, err, transportErr)
	assert.Contains(t, err.Error(), "connection reset")

	wrapped := fmt.Errorf("couldn't fetch profile: %w", &UpstreamError{Kind: ErrAuthenticationFailed, StatusCode: 403, Body: "Forbidden"})
	assert.ErrorIs(t, wrapped, ErrAuthenticationFailed)
	assert.Equal(t, ErrAuthenticationFailed, Kind(wrapped))
}

func TestUserMessageHidesUpstreamBody(t *testing.T) {
	err := &UpstreamError{Kind: ErrAuthenticationFailed, StatusCode: 403, Body: `{"status":{"message":"Forbidden"}}`}

	msg := UserMessage(err)
	assert.NotContains(t, msg, "Forbidden")
	assert.Contains(t, msg, "RIOT_API_KEY")
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "notfound", err: ErrNotFound, expected: http.StatusNotFound},
		{name: "ratelimit", err: fmt.Errorf("wrapped: %w", ErrRateLimitExceeded), expected: http.StatusTooManyRequests},
		{name: "format", err: ErrInvalidIdentifierFormat, expected: http.StatusBadRequest},
		{name: "duplicate", err: ErrDuplicateLink, expected: http.StatusConflict},
		{name: "unknown", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestGRPCRoundTrip(t *testing.T) {
	for _, kind := range []error{ErrPlayerNotFound, ErrAuthenticationFailed, ErrAPIUnavailable, ErrRateLimitExceeded, ErrInvalidIdentifierFormat} {
		t.Run(kind.Error(), func(t *testing.T) {
			converted := FromGRPC(ToGRPC(fmt.Errorf("context: %w", kind)))
			assert.ErrorIs(t, converted, kind)
		})
	}
}

func TestFromGRPCUnknown(t *testing.T) {
	err := FromGRPC(status.Error(codes.Internal, "database exploded"))
	assert.Nil(t, Kind(err))
	assert.EqualError(t, err, "database exploded")

	assert.ErrorIs(t, FromGRPC(status.Error(codes.DeadlineExceeded, "timeout")), ErrAPIUnavailable)
	assert.Nil(t, FromGRPC(nil))
	assert.Nil(t, ToGRPC(nil))
}
