package requests

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"tourneyhub/pkg/apperrors"
	"tourneyhub/pkg/logger"
	"tourneyhub/pkg/ratelimit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct {
	Puuid string `json:"puuid"`
}

func setupTestRequester(apiKey string, limit int) (*Requester, *bytes.Buffer) {
	logs := &bytes.Buffer{}
	limiter := ratelimit.New(limit, time.Minute, ratelimit.SystemClock{})
	return NewRequester(apiKey, time.Second, limiter, logger.NewTestLogger(logs)), logs
}

func TestAuthRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("X-Riot-Token"))
		_, _ = w.Write([]byte(`{"puuid":"p"}`))
	}))
	defer srv.Close()

	requester, _ := setupTestRequester("key", 10)

	resp, err := requester.AuthRequest(context.Background(), "account", srv.URL)
	require.NoError(t, err)
	require.NoError(t, requester.Classify(resp))

	decoded, err := Decode[account](resp)
	require.NoError(t, err)
	assert.Equal(t, "p", decoded.Puuid)
}

func TestAuthRequestMissingKey(t *testing.T) {
	requester, _ := setupTestRequester("", 10)

	_, err := requester.AuthRequest(context.Background(), "account", "http://127.0.0.1:1")
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationFailed)
}

func TestAuthRequestRateLimit(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	requester, _ := setupTestRequester("key", 1)

	_, err := requester.AuthRequest(context.Background(), "account", srv.URL)
	require.NoError(t, err)

	_, err = requester.AuthRequest(context.Background(), "account", srv.URL)
	assert.ErrorIs(t, err, apperrors.ErrRateLimitExceeded)
	assert.Equal(t, int32(1), hits.Load())
}

func TestAuthRequestTransportFailure(t *testing.T) {
	requester, _ := setupTestRequester("key", 10)

	_, err := requester.AuthRequest(context.Background(), "account", "http://127.0.0.1:1")
	assert.ErrorIs(t, err, apperrors.ErrAPIUnavailable)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		status   int
		expected error
	}{
		{status: http.StatusNotFound, expected: apperrors.ErrPlayerNotFound},
		{status: http.StatusUnauthorized, expected: apperrors.ErrAuthenticationFailed},
		{status: http.StatusForbidden, expected: apperrors.ErrAuthenticationFailed},
		{status: http.StatusInternalServerError, expected: apperrors.ErrAPIUnavailable},
		{status: http.StatusTooManyRequests, expected: apperrors.ErrAPIUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			requester, logs := setupTestRequester("key", 10)
			body := []byte(strings.Repeat("x", 2*maxLoggedBody))

			err := requester.Classify(&Response{StatusCode: tt.status, Body: body, URL: "https://example"})
			assert.ErrorIs(t, err, tt.expected)

			var upstream *apperrors.UpstreamError
			require.ErrorAs(t, err, &upstream)
			assert.Equal(t, tt.status, upstream.StatusCode)
			assert.Len(t, upstream.Body, maxLoggedBody+3)
			assert.NotContains(t, apperrors.UserMessage(err), "xxx")
			assert.Contains(t, logs.String(), "https://example")
		})
	}
}

func TestDecodeFailure(t *testing.T) {
	_, err := Decode[account](&Response{StatusCode: http.StatusOK, Body: []byte(`not json`)})
	assert.ErrorIs(t, err, apperrors.ErrAPIUnavailable)
}
