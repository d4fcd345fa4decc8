// Package api is the HTTP client for the EdgeOS REST API. It exposes
// typed operations for the application review workflow and raw JSON
// passthrough calls for the resources the CLI mirrors one-to-one.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"edgeos-client/internal/logger"
)

const apiPrefix = "/api/v1"

// Client talks to one EdgeOS deployment on behalf of one authenticated
// user. It is safe for concurrent use.
type Client struct {
	baseURL  string
	token    string
	tenantID string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTenant scopes every request to a tenant.
func WithTenant(tenantID string) Option {
	return func(c *Client) { c.tenantID = tenantID }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one API request. A non-2xx response is returned as an
// *APIError; transport failures are wrapped and carry no status. When
// out is non-nil the response body is decoded into it.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.tenantID != "" {
		req.Header.Set("X-Tenant-ID", c.tenantID)
	}

	logger.APICall(method, path)
	resp, err := c.http.Do(req)
	if err != nil {
		logger.APIResult(method, path, 0, err)
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.APIResult(method, path, resp.StatusCode, err)
		return fmt.Errorf("read response %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseAPIError(resp.StatusCode, data)
		logger.APIResult(method, path, resp.StatusCode, apiErr)
		return apiErr
	}
	logger.APIResult(method, path, resp.StatusCode, nil)

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response %s %s: %w", method, path, err)
	}
	return nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
