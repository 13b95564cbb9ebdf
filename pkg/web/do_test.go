// SPDX-License-Identifier: GPL-3.0-or-later

package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoer_RequestJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/health":
				_, _ = w.Write([]byte(`{"database":"ok","version":"9.5.2"}`))
			case "/api/garbage":
				_, _ = w.Write([]byte("hello and\n goodbye"))
			default:
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"message":"Not found"}`))
			}
		}))
	defer srv.Close()

	newReq := func(path string) *http.Request {
		req, err := NewHTTPRequestWithPath(context.Background(), RequestConfig{URL: srv.URL}, path)
		require.NoError(t, err)
		return req
	}

	t.Run("decodes 200 OK", func(t *testing.T) {
		var health struct {
			Database string `json:"database"`
		}
		require.NoError(t, DoHTTP(srv.Client()).RequestJSON(newReq("/api/health"), &health))
		assert.Equal(t, "ok", health.Database)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		var v map[string]any
		err := DoHTTP(srv.Client()).RequestJSON(newReq("/api/garbage"), &v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error on decoding response")
	})

	t.Run("unexpected status code", func(t *testing.T) {
		var v map[string]any
		err := DoHTTP(srv.Client()).RequestJSON(newReq("/api/dashboards/db/none"), &v)

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
		assert.Equal(t, `{"message":"Not found"}`, statusErr.Body)
		assert.Contains(t, err.Error(), "404")
	})
}

func TestDoer_RequestBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"uri":"db/home"}]`))
		}))
	defer srv.Close()

	req, err := NewHTTPRequest(context.Background(), RequestConfig{URL: srv.URL})
	require.NoError(t, err)

	bs, err := DoHTTP(srv.Client()).RequestBytes(req)
	require.NoError(t, err)
	assert.Equal(t, `[{"uri":"db/home"}]`, string(bs))
}

func TestDoer_ConnectionRefused(t *testing.T) {
	req, err := NewHTTPRequest(context.Background(), RequestConfig{URL: "http://127.0.0.1:38001/api/search"})
	require.NoError(t, err)

	_, err = DoHTTP(http.DefaultClient).RequestBytes(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error on HTTP request")
}
