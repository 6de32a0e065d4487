// Package api is the client for the remote read-only data source. The panel
// only consumes the three read endpoints; local create/edit/delete never
// round-trip to the source.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"panel-cli/internal/cache"
	"panel-cli/internal/model"
)

// DefaultBaseURL is the public test service the panel talks to by default.
// It accepts writes but does not retain them, which is why the panel never
// bothers sending any.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

type Client struct {
	base  string
	http  *http.Client
	cache *cache.Cache
}

type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCache makes GETs read-through the given response cache.
func WithCache(rc *cache.Cache) Option {
	return func(c *Client) { c.cache = rc }
}

func New(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Users fetches the full user collection.
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.getJSON(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Posts fetches the full post collection.
func (c *Client) Posts(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := c.getJSON(ctx, "/posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// PostsByUser fetches the posts authored by one user. This feeds the Users
// screen's read-only viewer and is never merged into the Posts screen store.
func (c *Client) PostsByUser(ctx context.Context, userID int) ([]model.Post, error) {
	var posts []model.Post
	if err := c.getJSON(ctx, "/posts?userId="+strconv.Itoa(userID), &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	if c.cache != nil {
		if body, hit, err := c.cache.Get(ctx, path); err == nil && hit {
			if err := json.Unmarshal(body, v); err == nil {
				return nil
			}
			// Undecodable cache entries fall through to the network.
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("GET %s: unexpected status %s", path, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}

	if c.cache != nil {
		// Cache failures never fail the fetch.
		_ = c.cache.Put(ctx, path, body)
	}
	return nil
}
