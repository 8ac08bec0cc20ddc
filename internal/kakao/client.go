// Package kakao is a thin client for the Kakao Local keyword search and the
// Kakao Mobility directions APIs.
package kakao

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"busplanner.dev/internal/appconf"
	"busplanner.dev/internal/logging"
)

// ErrMalformedResponse is returned when a provider body cannot be decoded.
var ErrMalformedResponse = errors.New("kakao: malformed response")

// maxBodySize bounds how much of a provider response is read.
const maxBodySize = 8 << 20

// StatusError reports a non-2xx provider response.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("kakao: %s returned status %d", e.Endpoint, e.StatusCode)
}

type Client struct {
	localBaseURL string
	naviBaseURL  string
	apiKey       string
	priority     string
	httpClient   *http.Client
	logger       *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default client, mainly for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the endpoints and key in cfg.
func NewClient(cfg appconf.KakaoConfig, opts ...Option) *Client {
	c := &Client{
		localBaseURL: strings.TrimSuffix(cfg.LocalBaseURL, "/"),
		naviBaseURL:  strings.TrimSuffix(cfg.NaviBaseURL, "/"),
		apiKey:       cfg.RestAPIKey,
		priority:     cfg.Priority,
		httpClient:   &http.Client{Timeout: cfg.Timeout()},
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.ForComponent(c.logger, "kakao_client")
	return c
}

// get performs an authorized GET and returns the raw body of a 2xx response.
func (c *Client) get(ctx context.Context, endpoint, base, path string, params url.Values) ([]byte, error) {
	fullURL := base + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", endpoint, err)
	}
	req.Header.Set("Authorization", "KakaoAK "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", endpoint, err)
	}
	defer logging.DrainAndClose(resp.Body, c.logger, endpoint)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
