package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"octofit/internal/domain/collection"
)

// DefaultTimeout bounds a single collection fetch.
const DefaultTimeout = 15 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// Fetcher retrieves a collection from the REST API.
type Fetcher interface {
	FetchCollection(ctx context.Context, endpoint string) ([]collection.Record, error)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// ErrNoBaseURL is returned when a client is built without an API host.
var ErrNoBaseURL = errors.New("api base URL is required")

// Client is a read-only REST client for the OctoFit API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check that *Client satisfies Fetcher.
var _ Fetcher = (*Client)(nil)

// NewClient builds a client for baseURL.
// PRE: baseURL is an absolute http(s) URL
// POST: Returns a client with the given timeout (DefaultTimeout when <= 0)
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrNoBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// BaseURL returns the API host the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL joins the base URL and an endpoint path.
func (c *Client) URL(endpoint string) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.baseURL + endpoint
}

// FetchCollection issues one GET for endpoint and normalizes the body.
// PRE: endpoint is an API path such as "/api/users/"
// POST: Returns records on 2xx; *StatusError on any other status; wrapped transport or decode errors otherwise
func (c *Client) FetchCollection(ctx context.Context, endpoint string) ([]collection.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(endpoint), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", endpoint, err)
	}
	records, err := collection.Normalize(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	return records, nil
}
