package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const DefaultUserAgent = "hypeconnect-payments/1.0"

var _ HTTPClient = (*httpClient)(nil)

// HTTPClient is the outbound side shared by the gateway and notifier
// clients. Every request carries the client's base headers; per-call headers
// win on conflict.
type HTTPClient interface {
	Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error)
	PostJSON(ctx context.Context, url string, payload any, headers map[string]string) (*http.Response, error)
	Do(req *http.Request) (*http.Response, error)
}

type Option func(*httpClient)

// WithUserAgent replaces DefaultUserAgent.
func WithUserAgent(userAgent string) Option {
	return func(c *httpClient) {
		c.baseHeaders["User-Agent"] = userAgent
	}
}

func WithHeader(key, value string) Option {
	return func(c *httpClient) {
		c.baseHeaders[key] = value
	}
}

type httpClient struct {
	client      *http.Client
	baseHeaders map[string]string
}

func NewHTTPClient(timeout time.Duration, opts ...Option) HTTPClient {
	c := &httpClient{
		client: &http.Client{Timeout: timeout},
		baseHeaders: map[string]string{
			"User-Agent": DefaultUserAgent,
			"Accept":     "application/json",
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *httpClient) Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	c.setHeaders(req, headers)

	return c.client.Do(req)
}

// PostJSON encodes payload as the request body. An encoding failure is
// returned before anything is sent.
func (c *httpClient) PostJSON(ctx context.Context, url string, payload any, headers map[string]string) (*http.Response, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("encoding error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req, headers)

	return c.client.Do(req)
}

func (c *httpClient) Do(req *http.Request) (*http.Response, error) {
	for key, value := range c.baseHeaders {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}

	return c.client.Do(req)
}

func (c *httpClient) setHeaders(req *http.Request, headers map[string]string) {
	for key, value := range c.baseHeaders {
		req.Header.Set(key, value)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
}
