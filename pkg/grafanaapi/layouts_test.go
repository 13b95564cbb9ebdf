// SPDX-License-Identifier: GPL-3.0-or-later

package grafanaapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLayouts(t *testing.T) {
	layouts, err := LoadLayouts("testdata/layouts.yaml")
	require.NoError(t, err)

	require.Len(t, layouts, 2)
	assert.Equal(t, []string{"Brick Utilization"}, layouts[slugHosts]["Bricks"])
	assert.Equal(t, []string{"Cluster Info"}, layouts[slugCluster][""])

	_, err = LoadLayouts("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestClient_CompareLayouts(t *testing.T) {
	layouts, err := LoadLayouts("testdata/layouts.yaml")
	require.NoError(t, err)

	tests := map[string]struct {
		layouts     Layouts
		concurrency int
		wantSlugs   []string
		wantEqual   []bool
		wantErr     bool
	}{
		"all layouts match": {
			layouts:     layouts,
			concurrency: 2,
			wantSlugs:   []string{slugCluster, slugHosts},
			wantEqual:   []bool{true, true},
		},
		"one layout differs": {
			layouts: Layouts{
				slugHosts:   layouts[slugHosts],
				slugCluster: {"At-a-glance": {"IOPS", "Health"}},
			},
			concurrency: 1,
			wantSlugs:   []string{slugCluster, slugHosts},
			wantEqual:   []bool{false, true},
		},
		"missing dashboard is an error": {
			layouts: Layouts{
				slugHosts: layouts[slugHosts],
				"missing": {},
			},
			wantSlugs: []string{slugHosts},
			wantEqual: []bool{true},
			wantErr:   true,
		},
		"nothing to compare": {
			layouts: Layouts{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			client, cleanup := prepareCaseGrafana(t)
			defer cleanup()
			client.Concurrency = test.concurrency

			cmps, err := client.CompareLayouts(context.Background(), test.layouts)

			if test.wantErr {
				assert.ErrorIs(t, err, ErrDashboardNotFound)
			} else {
				assert.NoError(t, err)
			}

			var slugs []string
			var equal []bool
			for _, c := range cmps {
				slugs = append(slugs, c.Slug)
				equal = append(equal, c.Equal)
			}
			assert.Equal(t, test.wantSlugs, slugs)
			assert.Equal(t, test.wantEqual, equal)
		})
	}
}
