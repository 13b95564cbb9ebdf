// SPDX-License-Identifier: GPL-3.0-or-later

package grafanaapi

import (
	"context"
	"fmt"
	"os"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gopkg.in/yaml.v2"
)

// Structure maps each row title to the labels of its panels, in display order.
type Structure map[string][]string

// LoadStructure reads an expected dashboard layout from a YAML (or JSON) file:
//
//	At-a-glance:
//	  - Health
//	  - Hosts
func LoadStructure(path string) (Structure, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read structure file: %v", err)
	}

	var s Structure
	if err := yaml.Unmarshal(bs, &s); err != nil {
		return nil, fmt.Errorf("parse structure file '%s': %v", path, err)
	}
	return s, nil
}

// Structure returns the dashboard layout. Panels without a title or display
// name are left out. When several rows share a title the last one wins.
func (d *Dashboard) Structure() Structure {
	s := make(Structure)
	for _, row := range d.Rows() {
		labels := make([]string, 0, len(row.Panels))
		for _, p := range row.Panels {
			if label := p.Label(); label != "" {
				labels = append(labels, label)
			}
		}
		s[row.Title] = labels
	}
	return s
}

// Comparison is the outcome of comparing an expected layout with a dashboard.
type Comparison struct {
	Slug     string
	Expected Structure
	Actual   Structure
	Equal    bool
	// Diff is empty when the layouts are equal, otherwise it lists the
	// differences, "-" for expected and "+" for actual.
	Diff string
}

var structureCmpOpts = []cmp.Option{cmpopts.EquateEmpty()}

// CompareStructure compares the expected layout with the layout of the
// dashboard identified by slug. A layout mismatch is reported in the returned
// Comparison, errors are reserved for failing to get the dashboard.
func (c *Client) CompareStructure(ctx context.Context, expected Structure, slug string) (*Comparison, error) {
	d, err := c.Dashboard(ctx, slug)
	if err != nil {
		return nil, err
	}

	actual := d.Structure()
	diff := cmp.Diff(expected, actual, structureCmpOpts...)

	c.Debugf("defined layout structure = %v", expected)
	c.Debugf("layout structure in grafana = %v", actual)
	if diff != "" {
		c.Debugf("diff between the layouts of '%s' (-defined +grafana):\n%s", slug, diff)
	}

	return &Comparison{
		Slug:     slug,
		Expected: expected,
		Actual:   actual,
		Equal:    diff == "",
		Diff:     diff,
	}, nil
}
