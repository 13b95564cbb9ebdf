// SPDX-License-Identifier: GPL-3.0-or-later

package grafanaapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_Rows(t *testing.T) {
	type row struct {
		title  string
		panels []string
	}

	tests := map[string]struct {
		data []byte
		want []row
	}{
		"legacy rows layout": {
			data: dataDashboardRows,
			want: []row{
				{title: "At-a-glance", panels: []string{"Health", "Bricks", "", ""}},
				{title: "Performance", panels: []string{"CPU Utilization", "CPU Utilization", "Memory Available"}},
				{title: "Bricks", panels: []string{"Brick Utilization"}},
			},
		},
		"panels layout": {
			data: dataDashboardPanels,
			want: []row{
				{title: "", panels: []string{"Cluster Info"}},
				{title: "At-a-glance", panels: []string{"Health", "IOPS"}},
				{title: "Volumes", panels: []string{"Volume Capacity"}},
				{title: "Hosts", panels: nil},
			},
		},
		"no panels at all": {
			data: []byte(`{"dashboard":{"title":"Empty"}}`),
			want: nil,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			d, err := parseDashboard("test", test.data)
			require.NoError(t, err)

			var got []row
			for _, r := range d.Rows() {
				var titles []string
				for _, p := range r.Panels {
					titles = append(titles, p.Title())
				}
				got = append(got, row{title: r.Title, panels: titles})
			}

			assert.Equal(t, test.want, got)
		})
	}
}

func TestClient_Panel(t *testing.T) {
	client, cleanup := prepareCaseGrafana(t)
	defer cleanup()

	tests := map[string]struct {
		query     PanelQuery
		wantID    int64
		wantType  string
		wantErrIs error
		wantFail  bool
	}{
		"unique title": {
			query:    PanelQuery{Dashboard: slugHosts, Row: "At-a-glance", Title: "Health"},
			wantID:   1,
			wantType: "singlestat",
		},
		"same title resolved by type": {
			query:    PanelQuery{Dashboard: slugHosts, Row: "Performance", Title: "CPU Utilization", Type: "graph"},
			wantID:   5,
			wantType: "graph",
		},
		"same title without type": {
			query:     PanelQuery{Dashboard: slugHosts, Row: "Performance", Title: "CPU Utilization"},
			wantErrIs: ErrAmbiguousPanel,
		},
		"type mismatch": {
			query:     PanelQuery{Dashboard: slugHosts, Row: "At-a-glance", Title: "Health", Type: "graph"},
			wantErrIs: ErrPanelNotFound,
		},
		"panel in another row": {
			query:     PanelQuery{Dashboard: slugHosts, Row: "Performance", Title: "Health"},
			wantErrIs: ErrPanelNotFound,
		},
		"panel known only by display name": {
			query:     PanelQuery{Dashboard: slugHosts, Row: "At-a-glance", Title: "Hosts Up"},
			wantErrIs: ErrPanelNotFound,
		},
		"unknown row": {
			query:     PanelQuery{Dashboard: slugHosts, Row: "Network", Title: "Health"},
			wantErrIs: ErrRowNotFound,
		},
		"collapsed row in panels layout": {
			query:    PanelQuery{Dashboard: slugCluster, Row: "Volumes", Title: "Volume Capacity"},
			wantID:   6,
			wantType: "graph",
		},
		"panel before first row in panels layout": {
			query:    PanelQuery{Dashboard: slugCluster, Row: "", Title: "Cluster Info"},
			wantID:   1,
			wantType: "text",
		},
		"unknown dashboard": {
			query:     PanelQuery{Dashboard: "ceph-cluster", Row: "At-a-glance", Title: "Health"},
			wantErrIs: ErrDashboardNotFound,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := client.Panel(context.Background(), test.query)

			if test.wantErrIs != nil {
				assert.ErrorIs(t, err, test.wantErrIs)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.wantID, p.ID())
			assert.Equal(t, test.wantType, p.Type())
			assert.Equal(t, test.query.Title, p.Title())
		})
	}
}

func TestDashboard_FindPanel_AmbiguousRow(t *testing.T) {
	d, err := parseDashboard("dup", []byte(`{"dashboard":{"rows":[
		{"title":"Disks","panels":[{"title":"IO","type":"graph"}]},
		{"title":"Disks","panels":[{"title":"IO","type":"graph"}]},
		{"panels":[{"title":"Untitled","type":"graph"}]}
	]}}`))
	require.NoError(t, err)

	_, err = d.FindPanel("Disks", "IO", "")
	assert.ErrorIs(t, err, ErrAmbiguousRow)

	_, err = d.FindPanel("", "Untitled", "")
	assert.ErrorIs(t, err, ErrRowNotFound)
}

func TestPanelQuery_String(t *testing.T) {
	assert.Equal(t, "hosts/Performance/CPU", PanelQuery{Dashboard: "hosts", Row: "Performance", Title: "CPU"}.String())
	assert.Equal(t, "hosts/Performance/CPU(graph)", PanelQuery{Dashboard: "hosts", Row: "Performance", Title: "CPU", Type: "graph"}.String())
}

func TestPanel_Accessors(t *testing.T) {
	d, err := parseDashboard(slugHosts, dataDashboardRows)
	require.NoError(t, err)

	rows := d.Rows()
	require.Len(t, rows, 3)
	require.Len(t, rows[0].Panels, 4)

	hostsUp := rows[0].Panels[2]
	assert.Equal(t, "", hostsUp.Title())
	assert.Equal(t, "Hosts Up", hostsUp.DisplayName())
	assert.Equal(t, "Hosts Up", hostsUp.Label())
	assert.Empty(t, hostsUp.Targets())
	assert.Empty(t, rows[0].Panels[3].Label())

	cpu := rows[1].Panels[0]
	targets := cpu.Targets()
	require.Len(t, targets, 3)
	assert.Equal(t, "A", targets[0].RefID)
	assert.False(t, targets[0].Hide)
	assert.True(t, targets[1].Hide)
	assert.Equal(t, "sumSeries(#A)", targets[2].Target)
	assert.Equal(t, targets[2].TargetFull, targets[2].Query())
	assert.Equal(t, targets[0].Target, targets[0].Query())
	assert.Contains(t, string(rows[1].Panels[1].Raw()), `"id": 6`)
}
