// SPDX-License-Identifier: GPL-3.0-or-later

package grafanaapi

import (
	"errors"
	"time"

	"github.com/grafana-testing/grafana-testing/pkg/confopt"
	"github.com/grafana-testing/grafana-testing/pkg/web"
)

const (
	defaultURL          = "http://127.0.0.1:3000/api"
	defaultTimeout      = 10 * time.Second
	defaultMetricPrefix = "tendrl."
	defaultConcurrency  = 4
)

// Config configures a Client. URL is the API root, request paths such as
// "search" and "dashboards/db/<slug>" are joined to it.
type Config struct {
	web.HTTPConfig `yaml:",inline" json:""`

	// MetricPrefix selects which plain chart target pieces are kept by PanelChartTargets.
	// An empty prefix keeps every piece.
	MetricPrefix string `yaml:"metric_prefix" json:"metric_prefix"`

	// Concurrency limits how many dashboards CompareLayouts fetches at once.
	Concurrency int `yaml:"concurrency,omitempty" json:"concurrency"`
}

// DefaultConfig returns the configuration for a local Grafana instance.
func DefaultConfig() Config {
	return Config{
		HTTPConfig: web.HTTPConfig{
			RequestConfig: web.RequestConfig{
				URL: defaultURL,
			},
			ClientConfig: web.ClientConfig{
				Timeout: confopt.Duration(defaultTimeout),
			},
		},
		MetricPrefix: defaultMetricPrefix,
		Concurrency:  defaultConcurrency,
	}
}

func (c Config) validate() error {
	if c.URL == "" {
		return errors.New("url not set")
	}
	if c.Concurrency < 0 {
		return errors.New("concurrency must not be negative")
	}
	return nil
}
