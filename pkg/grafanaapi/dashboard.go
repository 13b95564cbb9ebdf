// SPDX-License-Identifier: GPL-3.0-or-later

package grafanaapi

import (
	"fmt"

	"github.com/tidwall/gjson"
)

const panelTypeRow = "row"

// Dashboard is the document Grafana returns for a slug: the "dashboard" model
// plus its "meta" section. The model has no fixed schema, so it is kept as raw
// JSON and read on demand.
type Dashboard struct {
	Slug string

	doc gjson.Result
}

func parseDashboard(slug string, bs []byte) (*Dashboard, error) {
	if !gjson.ValidBytes(bs) {
		return nil, fmt.Errorf("dashboard '%s': invalid JSON response", slug)
	}

	doc := gjson.ParseBytes(bs)
	if !doc.IsObject() {
		return nil, fmt.Errorf("dashboard '%s': unexpected response: expected a JSON object", slug)
	}
	if len(doc.Map()) == 0 {
		return nil, fmt.Errorf("%w: '%s'", ErrEmptyDashboard, slug)
	}

	return &Dashboard{Slug: slug, doc: doc}, nil
}

func (d *Dashboard) Title() string { return d.doc.Get("dashboard.title").String() }

func (d *Dashboard) UID() string { return d.doc.Get("dashboard.uid").String() }

func (d *Dashboard) SchemaVersion() int { return int(d.doc.Get("dashboard.schemaVersion").Int()) }

// Bytes returns the dashboard document as received.
func (d *Dashboard) Bytes() []byte { return []byte(d.doc.Raw) }

// Row groups panels under a title.
type Row struct {
	Title  string
	Panels []Panel

	titled bool
}

// Rows returns the dashboard rows in display order.
//
// Dashboards in the legacy layout list them under "dashboard.rows". Newer
// dashboards have a flat "dashboard.panels" list where each panel of type "row"
// starts a row; a collapsed row keeps its panels nested in its own "panels"
// field. Panels placed before the first row panel form a row with an empty title.
func (d *Dashboard) Rows() []Row {
	if rows := d.doc.Get("dashboard.rows"); rows.Exists() {
		return legacyRows(rows)
	}
	return rowsFromPanels(d.doc.Get("dashboard.panels"))
}

func legacyRows(rows gjson.Result) []Row {
	var out []Row
	for _, r := range rows.Array() {
		title := r.Get("title")
		out = append(out, Row{
			Title:  title.String(),
			Panels: panelsOf(r.Get("panels")),
			titled: title.Exists(),
		})
	}
	return out
}

func rowsFromPanels(panels gjson.Result) []Row {
	var out []Row
	for _, p := range panels.Array() {
		if p.Get("type").String() == panelTypeRow {
			out = append(out, Row{
				Title:  p.Get("title").String(),
				Panels: panelsOf(p.Get("panels")),
				titled: true,
			})
			continue
		}
		if len(out) == 0 {
			out = append(out, Row{titled: true})
		}
		last := &out[len(out)-1]
		last.Panels = append(last.Panels, Panel{raw: p})
	}
	return out
}

func panelsOf(v gjson.Result) []Panel {
	var out []Panel
	for _, p := range v.Array() {
		out = append(out, Panel{raw: p})
	}
	return out
}

// Panel is a single visualization widget.
type Panel struct {
	raw gjson.Result
}

func (p Panel) ID() int64 { return p.raw.Get("id").Int() }

func (p Panel) Title() string { return p.raw.Get("title").String() }

func (p Panel) Type() string { return p.raw.Get("type").String() }

func (p Panel) DisplayName() string { return p.raw.Get("displayName").String() }

// Raw returns the panel JSON object.
func (p Panel) Raw() []byte { return []byte(p.raw.Raw) }

// Label is the name a panel is listed under: its title, or its display name
// when the title is empty. Unnamed panels have an empty label.
func (p Panel) Label() string {
	if title := p.Title(); title != "" {
		return title
	}
	return p.DisplayName()
}

func (p Panel) hasTitle(title string) bool {
	v := p.raw.Get("title")
	return v.Exists() && v.String() == title
}

// Targets returns the panel query targets in definition order.
func (p Panel) Targets() []Target {
	var out []Target
	for _, t := range p.raw.Get("targets").Array() {
		out = append(out, Target{
			RefID:      t.Get("refId").String(),
			Target:     t.Get("target").String(),
			TargetFull: t.Get("targetFull").String(),
			Hide:       t.Get("hide").Bool(),
		})
	}
	return out
}

// Target is a panel query.
type Target struct {
	RefID      string
	Target     string
	TargetFull string
	Hide       bool
}

// Query returns the fully expanded query when Grafana provides one.
func (t Target) Query() string {
	if t.TargetFull != "" {
		return t.TargetFull
	}
	return t.Target
}
