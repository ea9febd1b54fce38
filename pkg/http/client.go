package http

import (
	"bytes"
	"context"
	"net/http"
	"time"
)

const userAgent = "talent-search/1.0"

// Client is a thin context-aware wrapper used for outbound calls.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	return c.httpClient.Do(req)
}

// PostJSON sends body as application/json with the given extra headers.
func (c *Client) PostJSON(ctx context.Context, url string, headers map[string]string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.httpClient.Do(req)
}

// Standard exposes the underlying client for SDKs that take an *http.Client.
func (c *Client) Standard() *http.Client {
	return c.httpClient
}
