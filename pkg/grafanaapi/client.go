// SPDX-License-Identifier: GPL-3.0-or-later

package grafanaapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/blang/semver/v4"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/gjson"

	"github.com/grafana-testing/grafana-testing/logger"
	"github.com/grafana-testing/grafana-testing/pkg/web"
)

const (
	pathSearch     = "search"
	pathDashboards = "dashboards/db"
	pathHealth     = "health"

	searchTypeDashboard = "dash-db"
)

// Client talks to the Grafana dashboard REST API.
type Client struct {
	*logger.Logger
	Config

	httpClient *http.Client
}

// New creates a Client from cfg.
func New(cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %v", err)
	}

	httpClient, err := web.NewHTTPClient(cfg.ClientConfig)
	if err != nil {
		return nil, fmt.Errorf("create http client: %v", err)
	}

	return &Client{
		Logger:     logger.New().With("component", "grafanaapi"),
		Config:     cfg,
		httpClient: httpClient,
	}, nil
}

// Close releases idle connections held by the underlying HTTP client.
func (c *Client) Close() {
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
	}
}

// Dashboards returns the slugs of all dashboards known to Grafana, in search order.
// Folders and other search hits are skipped.
func (c *Client) Dashboards(ctx context.Context) ([]string, error) {
	bs, err := c.get(ctx, pathSearch)
	if err != nil {
		return nil, err
	}

	res := gjson.ParseBytes(bs)
	if !res.IsArray() {
		return nil, fmt.Errorf("unexpected search response: expected a JSON array")
	}

	var slugs []string
	for _, hit := range res.Array() {
		if hit.Get("type").String() != searchTypeDashboard {
			continue
		}
		uri := hit.Get("uri").String()
		parts := strings.Split(uri, "/")
		if len(parts) < 2 {
			return nil, fmt.Errorf("unexpected search response: malformed dashboard uri '%s'", uri)
		}
		slugs = append(slugs, parts[1])
	}

	c.Debugf("found %d dashboards", len(slugs))

	return slugs, nil
}

// DashboardsMatching returns the dashboard slugs that match a glob pattern.
func (c *Client) DashboardsMatching(ctx context.Context, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid dashboard pattern '%s'", pattern)
	}

	slugs, err := c.Dashboards(ctx)
	if err != nil {
		return nil, err
	}

	var matched []string
	for _, slug := range slugs {
		if ok, _ := doublestar.Match(pattern, slug); ok {
			matched = append(matched, slug)
		}
	}
	return matched, nil
}

// Dashboard fetches the dashboard identified by slug.
func (c *Client) Dashboard(ctx context.Context, slug string) (*Dashboard, error) {
	bs, err := c.get(ctx, pathDashboards, url.PathEscape(slug))
	if err != nil {
		var statusErr *web.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: '%s'", ErrDashboardNotFound, slug)
		}
		return nil, err
	}

	return parseDashboard(slug, bs)
}

// HealthInfo is the response of the Grafana health endpoint.
type HealthInfo struct {
	Database string `json:"database"`
	Version  string `json:"version"`
	Commit   string `json:"commit"`
}

// Health checks that Grafana answers and its database is reachable.
func (c *Client) Health(ctx context.Context) (*HealthInfo, error) {
	req, err := web.NewHTTPRequestWithPath(ctx, c.RequestConfig, pathHealth)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request '%s': %v", c.URL, err)
	}

	var info HealthInfo
	if err := web.DoHTTP(c.httpClient).RequestJSON(req, &info); err != nil {
		return nil, err
	}
	if info.Database != "ok" {
		return &info, fmt.Errorf("grafana database is not ok: '%s'", info.Database)
	}

	return &info, nil
}

// AtLeast reports whether the reported Grafana version is minVer or newer.
func (h *HealthInfo) AtLeast(minVer semver.Version) (bool, error) {
	v, err := semver.ParseTolerant(h.Version)
	if err != nil {
		return false, fmt.Errorf("couldn't parse version string '%s': %v", h.Version, err)
	}
	return v.GTE(minVer), nil
}

func (c *Client) get(ctx context.Context, elem ...string) ([]byte, error) {
	req, err := web.NewHTTPRequestWithPath(ctx, c.RequestConfig, elem...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request '%s': %v", c.URL, err)
	}

	c.Debugf("GET %s", req.URL)

	return web.DoHTTP(c.httpClient).RequestBytes(req)
}
