// SPDX-License-Identifier: GPL-3.0-or-later

// Package grafanatest wires grafanaapi into Go tests: lookups that must succeed
// stop the test, layout checks only mark it failed.
package grafanatest

import (
	"testing"

	"github.com/blang/semver/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grafana-testing/grafana-testing/pkg/grafanaapi"
)

// NewClient returns a client for the Grafana API rooted at url, closed when the test ends.
func NewClient(t testing.TB, url string) *grafanaapi.Client {
	t.Helper()

	cfg := grafanaapi.DefaultConfig()
	cfg.URL = url

	client, err := grafanaapi.New(cfg)
	require.NoError(t, err, "create grafana client")
	t.Cleanup(client.Close)

	return client
}

func RequireDashboards(t testing.TB, c *grafanaapi.Client) []string {
	t.Helper()

	slugs, err := c.Dashboards(t.Context())
	require.NoError(t, err, "list grafana dashboards")

	return slugs
}

func RequireDashboard(t testing.TB, c *grafanaapi.Client, slug string) *grafanaapi.Dashboard {
	t.Helper()

	d, err := c.Dashboard(t.Context(), slug)
	require.NoError(t, err, "get grafana dashboard '%s'", slug)

	return d
}

// RequirePanel stops the test unless exactly one panel matches q.
func RequirePanel(t testing.TB, c *grafanaapi.Client, q grafanaapi.PanelQuery) *grafanaapi.Panel {
	t.Helper()

	p, err := c.Panel(t.Context(), q)
	require.NoError(t, err, "locate panel %s", q)

	return p
}

// RequireTargets locates the panel and returns its chart targets.
func RequireTargets(t testing.TB, c *grafanaapi.Client, q grafanaapi.PanelQuery, vars grafanaapi.TargetVars) [][]string {
	t.Helper()

	return c.PanelChartTargets(RequirePanel(t, c, q), vars)
}

// AssertStructure checks the dashboard layout against expected. A mismatch or
// a failed fetch marks the test as failed and lets it continue.
func AssertStructure(t testing.TB, c *grafanaapi.Client, expected grafanaapi.Structure, slug string) bool {
	t.Helper()

	cmp, err := c.CompareStructure(t.Context(), expected, slug)
	if !assert.NoError(t, err, "get grafana dashboard '%s'", slug) {
		return false
	}

	return assert.True(t, cmp.Equal,
		"defined structure of panels should be equal to structure in grafana for '%s' (-defined +grafana):\n%s",
		slug, cmp.Diff)
}

// AssertLayouts checks the layout of every dashboard in layouts and reports
// each mismatch separately. It returns true only when all of them match.
func AssertLayouts(t testing.TB, c *grafanaapi.Client, layouts grafanaapi.Layouts) bool {
	t.Helper()

	cmps, err := c.CompareLayouts(t.Context(), layouts)
	ok := assert.NoError(t, err, "get grafana dashboards")

	for _, cmp := range cmps {
		ok = assert.True(t, cmp.Equal,
			"defined structure of panels should be equal to structure in grafana for '%s' (-defined +grafana):\n%s",
			cmp.Slug, cmp.Diff) && ok
	}
	return ok
}

// RequireMinVersion stops the test unless Grafana is healthy and at least minVer.
func RequireMinVersion(t testing.TB, c *grafanaapi.Client, minVer string) {
	t.Helper()

	want, err := semver.ParseTolerant(minVer)
	require.NoError(t, err, "parse version '%s'", minVer)

	info, err := c.Health(t.Context())
	require.NoError(t, err, "grafana health")

	ok, err := info.AtLeast(want)
	require.NoError(t, err)
	require.True(t, ok, "grafana version %s is older than %s", info.Version, minVer)
}
