// SPDX-License-Identifier: GPL-3.0-or-later

package grafanaapi

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"gopkg.in/yaml.v2"
)

// Layouts maps a dashboard slug to its expected layout.
type Layouts map[string]Structure

// LoadLayouts reads expected layouts of several dashboards from a YAML file:
//
//	tendrl-gluster-hosts:
//	  At-a-glance:
//	    - Health
func LoadLayouts(path string) (Layouts, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layouts file: %v", err)
	}

	var l Layouts
	if err := yaml.Unmarshal(bs, &l); err != nil {
		return nil, fmt.Errorf("parse layouts file '%s': %v", path, err)
	}
	return l, nil
}

// CompareLayouts runs CompareStructure for every dashboard in layouts, at most
// Config.Concurrency at a time. Comparisons are sorted by slug. Dashboards that
// could not be fetched have no comparison and are reported in the returned error.
func (c *Client) CompareLayouts(ctx context.Context, layouts Layouts) ([]*Comparison, error) {
	workers := c.Concurrency
	if workers <= 0 {
		workers = 1
	}

	p := pool.NewWithResults[*Comparison]().
		WithContext(ctx).
		WithMaxGoroutines(workers)

	for slug, expected := range layouts {
		p.Go(func(ctx context.Context) (*Comparison, error) {
			return c.CompareStructure(ctx, expected, slug)
		})
	}

	cmps, err := p.Wait()
	slices.SortFunc(cmps, func(a, b *Comparison) int { return strings.Compare(a.Slug, b.Slug) })

	return cmps, err
}
