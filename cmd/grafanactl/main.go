// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"
	"golang.org/x/net/http/httpproxy"

	"github.com/grafana-testing/grafana-testing/logger"
	"github.com/grafana-testing/grafana-testing/pkg/buildinfo"
	"github.com/grafana-testing/grafana-testing/pkg/cli"
	"github.com/grafana-testing/grafana-testing/pkg/executable"
)

const envLogLevel = "GRAFANA_TESTING_LOG_LEVEL"

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(func(s string, args ...interface{}) {}))

	opts := parseCLI()

	if opts.Version {
		fmt.Printf("%s, version: %s\n", executable.Name, buildinfo.Version)
		return
	}

	if lvl := os.Getenv(envLogLevel); lvl != "" {
		if !logger.Level.SetByName(lvl) {
			logger.Warningf("env %s: unknown log level '%s'", envLogLevel, lvl)
		}
	}
	if opts.Debug {
		logger.Level.Set(slog.LevelDebug)
	}

	proxyCfg := httpproxy.FromEnvironment()
	logger.Debugf("env HTTP_PROXY '%s', HTTPS_PROXY '%s'", proxyCfg.HTTPProxy, proxyCfg.HTTPSProxy)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, opts, os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}

func parseCLI() *cli.Option {
	opt, err := cli.Parse(os.Args)
	if err != nil {
		if cli.IsHelp(err) {
			os.Exit(exitOK)
		}
		if errors.Is(err, cli.ErrNoCommand) {
			_, _ = fmt.Fprintf(os.Stderr, "%s: %v, see --help\n", executable.Name, err)
		}
		os.Exit(exitUsage)
	}

	return opt
}
