// SPDX-License-Identifier: GPL-3.0-or-later

package grafanaapi

import (
	"context"
	"fmt"
)

// PanelQuery locates a panel: Title in the row titled Row of the dashboard
// with slug Dashboard. Type, when set, must match the panel type as well
// (graph, singlestat, ...).
type PanelQuery struct {
	Dashboard string
	Row       string
	Title     string
	Type      string
}

func (q PanelQuery) String() string {
	if q.Type == "" {
		return fmt.Sprintf("%s/%s/%s", q.Dashboard, q.Row, q.Title)
	}
	return fmt.Sprintf("%s/%s/%s(%s)", q.Dashboard, q.Row, q.Title, q.Type)
}

// Panel fetches the dashboard and returns the single panel matching q.
func (c *Client) Panel(ctx context.Context, q PanelQuery) (*Panel, error) {
	d, err := c.Dashboard(ctx, q.Dashboard)
	if err != nil {
		return nil, err
	}
	return d.FindPanel(q.Row, q.Title, q.Type)
}

// FindPanel returns the only panel titled title in the only row titled row.
// An empty typ matches any panel type.
func (d *Dashboard) FindPanel(row, title, typ string) (*Panel, error) {
	var rows []Row
	for _, r := range d.Rows() {
		if r.titled && r.Title == row {
			rows = append(rows, r)
		}
	}

	switch len(rows) {
	case 0:
		return nil, fmt.Errorf("%w: '%s' in dashboard '%s'", ErrRowNotFound, row, d.Slug)
	case 1:
	default:
		return nil, fmt.Errorf("%w: %d rows titled '%s' in dashboard '%s'", ErrAmbiguousRow, len(rows), row, d.Slug)
	}

	var panels []Panel
	for _, p := range rows[0].Panels {
		if p.hasTitle(title) && (typ == "" || p.Type() == typ) {
			panels = append(panels, p)
		}
	}

	switch len(panels) {
	case 0:
		return nil, fmt.Errorf("%w: '%s' in row '%s' of dashboard '%s'", ErrPanelNotFound, title, row, d.Slug)
	case 1:
		return &panels[0], nil
	default:
		return nil, fmt.Errorf("%w: %d panels titled '%s' in row '%s' of dashboard '%s'",
			ErrAmbiguousPanel, len(panels), title, row, d.Slug)
	}
}
