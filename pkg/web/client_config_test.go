// SPDX-License-Identifier: GPL-3.0-or-later

package web

import (
	"net/http"
	"testing"
	"time"

	"github.com/grafana-testing/grafana-testing/pkg/confopt"
	"github.com/grafana-testing/grafana-testing/pkg/tlscfg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	tests := map[string]struct {
		config   ClientConfig
		validate func(t *testing.T, client *http.Client)
		wantErr  bool
	}{
		"timeout and redirect policy": {
			config: ClientConfig{
				Timeout:           confopt.Duration(time.Second * 5),
				NotFollowRedirect: true,
				ProxyURL:          "http://127.0.0.1:3128",
			},
			validate: func(t *testing.T, client *http.Client) {
				assert.Equal(t, time.Second*5, client.Timeout)
				require.NotNil(t, client.CheckRedirect)
				assert.ErrorIs(t, client.CheckRedirect(nil, nil), ErrRedirectAttempted)
				assert.IsType(t, (*http.Transport)(nil), client.Transport)
			},
		},
		"follow redirects by default": {
			config: ClientConfig{},
			validate: func(t *testing.T, client *http.Client) {
				assert.Nil(t, client.CheckRedirect)
				assert.Zero(t, client.Timeout)
			},
		},
		"force http2": {
			config: ClientConfig{ForceHTTP2: true},
			validate: func(t *testing.T, client *http.Client) {
				assert.IsType(t, (*http2Transport)(nil), client.Transport)
			},
		},
		"bad TLS config": {
			config:  ClientConfig{TLSConfig: tlscfg.TLSConfig{TLSCA: "/non/existent/ca.pem"}},
			wantErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			client, err := NewHTTPClient(test.config)

			if test.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			test.validate(t, client)
		})
	}
}
