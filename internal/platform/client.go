// Package platform is the HTTP client for the two external services
// userpeek talks to: the user-search endpoint and the avatar-headshot
// thumbnail endpoint. Both are treated as opaque; this package owns
// request construction, status checking, and response decoding only.
package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/userpeek/userpeek/internal/errors"
)

// Config configures the platform client.
type Config struct {
	// BaseURL is the host serving /api/v1/users/search.
	BaseURL string
	// ThumbnailURL is the host serving /v1/users/avatar-headshot.
	ThumbnailURL string
	// ProfileURL is the host used for outbound profile links.
	ProfileURL string
	// PoolSize bounds idle connections kept per host.
	PoolSize int
}

// Client talks to the search and thumbnail endpoints.
type Client struct {
	client *http.Client
	cfg    Config
}

const defaultPoolSize = 4

// NewClient creates a platform client with a pooled transport.
// No client-level timeout is set: cancellation and deadlines come from
// the caller's context, so an interactive session can keep a request
// in flight indefinitely while a CLI call bounds it.
func NewClient(cfg Config) *Client {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = defaultPoolSize
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.ThumbnailURL = strings.TrimRight(cfg.ThumbnailURL, "/")
	cfg.ProfileURL = strings.TrimRight(cfg.ProfileURL, "/")

	transport := &http.Transport{
		MaxIdleConns:        cfg.PoolSize,
		MaxIdleConnsPerHost: cfg.PoolSize,
		MaxConnsPerHost:     cfg.PoolSize * 2,
		IdleConnTimeout:     30 * time.Second,
	}

	return &Client{
		client: &http.Client{Transport: transport},
		cfg:    cfg,
	}
}

// SearchUsers queries the search endpoint with the trimmed,
// URL-encoded keyword and a fixed result limit. A missing data field
// decodes as an empty slice; non-2xx statuses are errors.
func (c *Client) SearchUsers(ctx context.Context, keyword string, limit int) ([]User, error) {
	q := url.Values{}
	q.Set("keyword", strings.TrimSpace(keyword))
	q.Set("limit", strconv.Itoa(limit))

	endpoint := c.cfg.BaseURL + "/api/v1/users/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.SearchError("failed to create search request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.SearchError(err.Error(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(errors.ErrCodeSearchStatus, "user search", resp)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.SearchError("failed to decode search response", err)
	}

	return result.Data, nil
}

// AvatarHeadshots resolves thumbnail URLs for a batch of user ids in a
// single request: all ids go into one comma-joined userIds parameter.
func (c *Client) AvatarHeadshots(ctx context.Context, ids []int64, size, format string) ([]Headshot, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	joined := make([]string, len(ids))
	for i, id := range ids {
		joined[i] = strconv.FormatInt(id, 10)
	}

	q := url.Values{}
	q.Set("userIds", strings.Join(joined, ","))
	q.Set("size", size)
	q.Set("format", format)

	endpoint := c.cfg.ThumbnailURL + "/v1/users/avatar-headshot?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.ThumbnailError("failed to create thumbnail request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.ThumbnailError(err.Error(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(errors.ErrCodeThumbnailStatus, "avatar headshot", resp)
	}

	var result thumbnailResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.ThumbnailError("failed to decode thumbnail response", err)
	}

	return result.Data, nil
}

// ProfileURL builds the outbound profile link for a user id.
func (c *Client) ProfileURL(id int64) string {
	return fmt.Sprintf("%s/users/%d/profile", c.cfg.ProfileURL, id)
}

// Close releases idle connections.
func (c *Client) Close() {
	if t, ok := c.client.Transport.(*http.Transport); ok {
		t.CloseIdleConnections()
	}
}

// statusError builds a structured error from a non-2xx response,
// keeping a short body snippet for diagnostics.
func statusError(code, op string, resp *http.Response) *errors.PeekError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := fmt.Sprintf("%s failed with status %d", op, resp.StatusCode)
	return errors.New(code, msg, nil).
		WithDetail("status", strconv.Itoa(resp.StatusCode)).
		WithDetail("body", strings.TrimSpace(string(body)))
}
