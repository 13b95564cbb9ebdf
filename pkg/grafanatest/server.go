// SPDX-License-Identifier: GPL-3.0-or-later

package grafanatest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// Fixtures are the response bodies served by the fake Grafana API.
type Fixtures struct {
	// Search is the /api/search body. Built from Dashboards when nil.
	Search []byte
	// Dashboards maps a slug to its /api/dashboards/db/<slug> body.
	Dashboards map[string][]byte
	// Health is the /api/health body. Defaults to a healthy database.
	Health []byte
}

const (
	bodyNotFound = `{"message":"Dashboard not found"}`
	bodyHealthy  = `{"commit":"unknown","database":"ok","version":"5.4.3"}`
)

// NewServer starts a fake Grafana API. Point clients at srv.URL + "/api".
func NewServer(t testing.TB, fx Fixtures) *httptest.Server {
	t.Helper()

	search := fx.Search
	if search == nil {
		bs, err := searchFromDashboards(fx.Dashboards)
		require.NoError(t, err, "build search fixture")
		search = bs
	}
	health := fx.Health
	if health == nil {
		health = []byte(bodyHealthy)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/search", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, search)
	})
	mux.HandleFunc("GET /api/dashboards/db/{slug}", func(w http.ResponseWriter, r *http.Request) {
		bs, ok := fx.Dashboards[r.PathValue("slug")]
		if !ok {
			writeJSON(w, http.StatusNotFound, []byte(bodyNotFound))
			return
		}
		writeJSON(w, http.StatusOK, bs)
	})
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, health)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

type searchHit struct {
	ID    int      `json:"id"`
	Title string   `json:"title"`
	URI   string   `json:"uri"`
	URL   string   `json:"url"`
	Type  string   `json:"type"`
	Tags  []string `json:"tags"`
}

func searchFromDashboards(dashboards map[string][]byte) ([]byte, error) {
	slugs := make([]string, 0, len(dashboards))
	for slug := range dashboards {
		slugs = append(slugs, slug)
	}
	slices.Sort(slugs)

	hits := make([]searchHit, 0, len(slugs))
	for i, slug := range slugs {
		title := gjson.GetBytes(dashboards[slug], "dashboard.title").String()
		if title == "" {
			title = slug
		}
		hits = append(hits, searchHit{
			ID:    i + 1,
			Title: title,
			URI:   "db/" + slug,
			URL:   "/dashboard/db/" + slug,
			Type:  "dash-db",
			Tags:  []string{},
		})
	}

	return json.Marshal(hits)
}

func writeJSON(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}
