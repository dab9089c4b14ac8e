// Package source fetches chart datasets from the dashboard API or reads
// them from JSON files.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/gogpu/chart"
)

// Default API paths of the dashboard backend.
const (
	DefaultEvolutionsPath = "/api/perf/version-evolutions"
	DefaultBurnupPath     = "/api/bz/burnup"
)

// ErrNoBaseURL is returned by Client fetches when no base URL is configured.
var ErrNoBaseURL = errors.New("source: base URL not configured")

// Client fetches datasets from the dashboard API.
type Client struct {
	baseURL        string
	evolutionsPath string
	burnupPath     string
	httpClient     *http.Client
}

// NewClient constructs a client targeting baseURL. Empty paths fall back
// to the default API paths.
func NewClient(baseURL, evolutionsPath, burnupPath string, timeout time.Duration) *Client {
	if evolutionsPath == "" {
		evolutionsPath = DefaultEvolutionsPath
	}
	if burnupPath == "" {
		burnupPath = DefaultBurnupPath
	}
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		evolutionsPath: evolutionsPath,
		burnupPath:     burnupPath,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Evolutions fetches the version evolution dataset. query is passed
// through as the raw query string, e.g. "product=firefox&metric=tp6".
func (c *Client) Evolutions(ctx context.Context, query string) ([]chart.VersionGroup, error) {
	var groups []chart.VersionGroup
	if err := c.getJSON(ctx, c.evolutionsPath, query, &groups); err != nil {
		return nil, fmt.Errorf("fetch evolutions: %w", err)
	}
	chart.Logger().Debug("fetched evolutions", "versions", len(groups), "query", query)
	return groups, nil
}

// Burnup fetches the bug burn-up dataset.
func (c *Client) Burnup(ctx context.Context) ([]chart.BurnupPoint, error) {
	var points []chart.BurnupPoint
	if err := c.getJSON(ctx, c.burnupPath, "", &points); err != nil {
		return nil, fmt.Errorf("fetch burnup: %w", err)
	}
	chart.Logger().Debug("fetched burnup", "points", len(points))
	return points, nil
}

func (c *Client) resolvePath(p, rawQuery string) string {
	cleaned := "/" + strings.TrimLeft(p, "/")
	u, err := url.Parse(c.baseURL)
	if err != nil {
		s := c.baseURL + cleaned
		if rawQuery != "" {
			s += "?" + rawQuery
		}
		return s
	}
	u.Path = path.Join(u.Path, cleaned)
	u.RawQuery = strings.TrimPrefix(rawQuery, "?")
	return u.String()
}

func (c *Client) getJSON(ctx context.Context, p, rawQuery string, out any) error {
	if c == nil {
		return errors.New("source: client not initialised")
	}
	if c.baseURL == "" {
		return ErrNoBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolvePath(p, rawQuery), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("upstream returned %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
