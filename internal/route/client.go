// Package route implements the Route Resolver against the OpenRouteService
// HTTP API: free-text geocoding and pairwise driving directions. Provider
// responses are decoded into typed structs and validated at this boundary
// before any field is used.
package route

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// DefaultBaseURL is the public OpenRouteService endpoint.
const DefaultBaseURL = "https://api.openrouteservice.org"

// Client calls OpenRouteService for geocoding and directions. Construct it
// once in main and inject it into the trip service — there is no package-level
// shared instance. The client is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	profile    string
}

// NewClient constructs a Client for the given API key and base URL.
// Pass an empty baseURL to use DefaultBaseURL; tests point it at an
// httptest.Server instead.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("route: api key is empty")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		profile:    "driving-car",
	}, nil
}

// statusError carries a non-2xx provider response.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// newRequest builds a request with the provider auth headers set.
func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// doJSON executes the request built by makeReq and decodes the 2xx response
// body into out. Transient failures (429, 5xx, network errors) are retried
// with exponential backoff; other non-2xx responses surface as *statusError.
//
// makeReq is invoked once per attempt so each retry gets a fresh request body.
func (c *Client) doJSON(ctx context.Context, makeReq func() (*http.Request, error), out any) error {
	backoff := retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := makeReq()
		if err != nil {
			return fmt.Errorf("make request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) {
				return retry.RetryableError(err)
			}
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			b, _ := io.ReadAll(resp.Body)
			serr := &statusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
			switch resp.StatusCode {
			case http.StatusTooManyRequests,
				http.StatusInternalServerError,
				http.StatusBadGateway,
				http.StatusServiceUnavailable,
				http.StatusGatewayTimeout:
				return retry.RetryableError(serr)
			}
			return serr
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	})
}

// normalize collapses whitespace so place names hit the provider in a
// consistent form.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
