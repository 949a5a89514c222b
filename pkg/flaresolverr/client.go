// Package flaresolverr provides a client for the FlareSolverr API
// to fetch pages that sit behind a Cloudflare challenge.
package flaresolverr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"vidplus-go/pkg/config"
	"vidplus-go/pkg/logging"
)

// ErrNotConfigured is returned when FLARESOLVERR_URL is unset.
var ErrNotConfigured = errors.New("FlareSolverr not configured")

// Cookie represents a cookie from FlareSolverr response.
type Cookie struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Domain   string `json:"domain"`
	Path     string `json:"path"`
	Expires  int64  `json:"expires"`
	HTTPOnly bool   `json:"httpOnly"`
	Secure   bool   `json:"secure"`
}

// Solution contains the result of a successful FlareSolverr request.
type Solution struct {
	URL       string   `json:"url"`
	Status    int      `json:"status"`
	Response  string   `json:"response"`
	Cookies   []Cookie `json:"cookies"`
	UserAgent string   `json:"userAgent"`
}

// Response is the full response from FlareSolverr API.
type Response struct {
	Status   string   `json:"status"`
	Message  string   `json:"message"`
	Version  string   `json:"version"`
	Solution Solution `json:"solution"`
}

// Request is the request body for FlareSolverr API.
type Request struct {
	Cmd        string `json:"cmd"`
	URL        string `json:"url"`
	MaxTimeout int    `json:"maxTimeout"`
}

// Client is a FlareSolverr API client.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	log        *logging.Logger
}

// NewClient creates a FlareSolverr client from the FLARESOLVERR_* settings.
func NewClient(cfg *config.Config, log *logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.FlareSolverrURL, "/"),
		timeout: cfg.FlareSolverrTimeout,
		httpClient: &http.Client{
			Timeout: cfg.FlareSolverrTimeout + 10*time.Second, // Add buffer for network overhead
		},
		log: log.WithComponent("flaresolverr"),
	}
}

// IsConfigured returns true if a FlareSolverr endpoint is set.
func (c *Client) IsConfigured() bool {
	return c != nil && c.baseURL != ""
}

// Get fetches targetURL through FlareSolverr and returns the solved page.
func (c *Client) Get(ctx context.Context, targetURL string) (*Solution, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}
	c.log.Debug("fetching URL via FlareSolverr", "url", targetURL)

	body, err := json.Marshal(Request{
		Cmd:        "request.get",
		URL:        targetURL,
		MaxTimeout: int(c.timeout.Milliseconds()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("FlareSolverr returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var fsResp Response
	if err := json.Unmarshal(respBody, &fsResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if fsResp.Status != "ok" {
		return nil, fmt.Errorf("FlareSolverr error: %s", fsResp.Message)
	}

	c.log.Debug("FlareSolverr request successful",
		"url", targetURL,
		"status", fsResp.Solution.Status,
		"cookies", len(fsResp.Solution.Cookies),
		"response_length", len(fsResp.Solution.Response))

	return &fsResp.Solution, nil
}

// GetPage fetches targetURL through FlareSolverr and returns the page HTML.
func (c *Client) GetPage(ctx context.Context, targetURL string) (string, error) {
	sol, err := c.Get(ctx, targetURL)
	if err != nil {
		return "", err
	}
	if sol.Status >= http.StatusBadRequest {
		return "", fmt.Errorf("solved page returned status %d", sol.Status)
	}
	return sol.Response, nil
}
