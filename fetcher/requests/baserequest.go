package requests

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"tourneyhub/pkg/apperrors"
	"tourneyhub/pkg/logger"
	"tourneyhub/pkg/messages"
	"tourneyhub/pkg/metrics"
	"tourneyhub/pkg/ratelimit"
)

// Upstream bodies are cut to this size before being logged.
const maxLoggedBody = 512

// Response is a fully read Riot API response.
type Response struct {
	StatusCode int
	Body       []byte
	URL        string
}

// Requester does the authenticated requests to the Riot API.
// Every request consumes one unit of the shared limiter.
type Requester struct {
	apiKey  string
	client  *http.Client
	limiter *ratelimit.Limiter
	logger  *logger.NewLogger
}

// NewRequester creates a requester sharing the given limiter.
func NewRequester(apiKey string, timeout time.Duration, limiter *ratelimit.Limiter, logger *logger.NewLogger) *Requester {
	return &Requester{
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		limiter: limiter,
		logger:  logger,
	}
}

// Do a authenticated GET request to the Riot API.
// Only transport failures, a missing key and the rate limit are returned as errors,
// the status code is left to the caller.
func (r *Requester) AuthRequest(ctx context.Context, endpoint string, url string) (*Response, error) {
	if r.apiKey == "" {
		r.logger.Errorf(messages.MissingApiKeyMsg)
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAuthenticationFailed, messages.MissingApiKeyMsg)
	}

	if err := r.limiter.CheckAndConsume(); err != nil {
		metrics.RiotRequests.WithLabelValues(endpoint, "rate_limited").Inc()
		r.logger.Warnf("rate limit reached before calling %s, resets at %s", endpoint, r.limiter.ResetAt().Format(time.RFC3339))
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't create request: %w", err)
	}
	req.Header.Set("X-Riot-Token", r.apiKey)

	start := time.Now()
	resp, err := r.client.Do(req)
	metrics.RiotRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RiotRequests.WithLabelValues(endpoint, "transport_error").Inc()
		r.logger.Errorf(messages.RequestFailedMsg+": %v", url, err)
		return nil, &apperrors.UpstreamError{Kind: apperrors.ErrAPIUnavailable, URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RiotRequests.WithLabelValues(endpoint, "transport_error").Inc()
		return nil, &apperrors.UpstreamError{Kind: apperrors.ErrAPIUnavailable, URL: url, Err: err}
	}

	metrics.RiotRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
		URL:        url,
	}, nil
}

// Classify turns a non success response into its error kind and logs the upstream detail.
// Returns nil on 200.
func (r *Requester) Classify(resp *Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	var kind error
	switch resp.StatusCode {
	case http.StatusNotFound:
		kind = apperrors.ErrPlayerNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = apperrors.ErrAuthenticationFailed
	default:
		kind = apperrors.ErrAPIUnavailable
	}

	upstream := &apperrors.UpstreamError{
		Kind:       kind,
		StatusCode: resp.StatusCode,
		URL:        resp.URL,
		Body:       truncate(resp.Body),
	}
	r.logger.Errorf(messages.BadStatusCodeMsg+": %s", resp.StatusCode, resp.URL, upstream.Body)

	return upstream
}

// Decode the response body.
func Decode[T any](resp *Response) (*T, error) {
	var result T
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, &apperrors.UpstreamError{
			Kind:       apperrors.ErrAPIUnavailable,
			StatusCode: resp.StatusCode,
			URL:        resp.URL,
			Err:        fmt.Errorf("%s: %w", messages.FailedToParseMsg, err),
		}
	}
	return &result, nil
}

// Logger returns the requester logger.
func (r *Requester) Logger() *logger.NewLogger {
	return r.logger
}

func truncate(body []byte) string {
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "..."
	}
	return string(body)
}
