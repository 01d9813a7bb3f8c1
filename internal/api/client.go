package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// Client issues REST calls against the external blog API. All failures are
// normalized to *Error before being returned; callers never see a raw
// transport error directly.
type Client struct {
	base       *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// Options tunes optional collaborators on the client.
type Options struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// New constructs a client for the API rooted at baseURL.
func New(baseURL string, opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("api base url %q is not absolute", baseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{base: base, httpClient: httpClient, logger: logger}, nil
}

// do executes one request and decodes a successful response into out when out
// is non-nil. fallback is the user-facing message applied when the server does
// not provide one.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindServer, Message: fallback, Err: fmt.Errorf("encode request body: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.base.JoinPath(path).String()
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: fallback, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", "method", method, "path", path, "error", err)
		return &Error{Kind: KindNetwork, Message: fallback, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(resp, fallback)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindServer, Status: resp.StatusCode, Message: fallback, Err: fmt.Errorf("decode response body: %w", err)}
	}
	return nil
}

// errorFromResponse maps a non-2xx response onto the error taxonomy, preferring
// the server-provided message over the generic fallback.
func (c *Client) errorFromResponse(resp *http.Response, fallback string) *Error {
	kind := KindServer
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		kind = KindAuth
	}

	message := fallback
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&payload); err == nil && payload.Message != "" {
		message = payload.Message
	}

	return &Error{Kind: kind, Status: resp.StatusCode, Message: message}
}
