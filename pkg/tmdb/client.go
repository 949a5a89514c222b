// Package tmdb is a minimal client for the TMDB v3 API: multi search,
// movie and show lookup, and season episode lists.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"vidplus-go/pkg/config"
	"vidplus-go/pkg/httpclient"
	"vidplus-go/pkg/logging"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("TMDB API key not configured")

// Client talks to the TMDB API.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *httpclient.Client
	log     *logging.Logger
}

// NewClient creates a TMDB client.
func NewClient(cfg *config.Config, client *httpclient.Client, log *logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.TMDBBaseURL, "/"),
		apiKey:  cfg.TMDBAPIKey,
		timeout: cfg.TMDBTimeout,
		http:    client,
		log:     log.WithComponent("tmdb"),
	}
}

// SearchMulti searches movies, shows and people in one call.
func (c *Client) SearchMulti(ctx context.Context, keyword string) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.get(ctx, "/search/multi", url.Values{"query": {keyword}}, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", keyword, err)
	}
	return &resp, nil
}

// Movie fetches movie details.
func (c *Client) Movie(ctx context.Context, id string) (*MovieDetails, error) {
	var resp MovieDetails
	if err := c.get(ctx, "/movie/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, fmt.Errorf("movie %s: %w", id, err)
	}
	return &resp, nil
}

// TV fetches show-level details.
func (c *Client) TV(ctx context.Context, id string) (*TVDetails, error) {
	var resp TVDetails
	if err := c.get(ctx, "/tv/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, fmt.Errorf("tv %s: %w", id, err)
	}
	return &resp, nil
}

// Season fetches the episode list of one season.
func (c *Client) Season(ctx context.Context, id string, season int) (*SeasonDetails, error) {
	var resp SeasonDetails
	path := fmt.Sprintf("/tv/%s/season/%d", url.PathEscape(id), season)
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("tv %s season %d: %w", id, season, err)
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}

	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + q.Encode()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	err := c.http.GetJSON(ctx, reqURL, out)
	c.log.WithDuration(time.Since(start)).Debug("tmdb request", "path", path, "ok", err == nil)
	return err
}
