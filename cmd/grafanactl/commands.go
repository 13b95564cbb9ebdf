// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/blang/semver/v4"
	"github.com/mitchellh/go-homedir"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v2"

	"github.com/grafana-testing/grafana-testing/pkg/cli"
	"github.com/grafana-testing/grafana-testing/pkg/grafanaapi"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var (
	errUsage    = errors.New("wrong number of arguments")
	errMismatch = errors.New("dashboard layout differs from the defined one")
)

type command struct {
	args    string
	minArgs int
	maxArgs int
	run     func(a *app, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"health":     {args: "", minArgs: 0, maxArgs: 0, run: (*app).health},
	"dashboards": {args: "[glob]", minArgs: 0, maxArgs: 1, run: (*app).dashboards},
	"dashboard":  {args: "<slug>", minArgs: 1, maxArgs: 1, run: (*app).dashboard},
	"panel":      {args: "<slug> <row> <panel> [type]", minArgs: 3, maxArgs: 4, run: (*app).panel},
	"targets":    {args: "<slug> <row> <panel> [type]", minArgs: 3, maxArgs: 4, run: (*app).targets},
	"compare":    {args: "<slug> <layout.yaml>", minArgs: 2, maxArgs: 2, run: (*app).compare},

	"compare-all": {args: "<layouts.yaml>", minArgs: 1, maxArgs: 1, run: (*app).compareAll},
}

type app struct {
	client *grafanaapi.Client
	opts   *cli.Option
	stdout io.Writer
	stderr io.Writer
}

func run(ctx context.Context, opts *cli.Option, stdout, stderr io.Writer) int {
	cmd, ok := commands[opts.Command]
	if !ok {
		_, _ = fmt.Fprintf(stderr, "unknown command '%s'\n", opts.Command)
		return exitUsage
	}
	if n := len(opts.Args); n < cmd.minArgs || n > cmd.maxArgs {
		_, _ = fmt.Fprintf(stderr, "%v, usage: %s %s\n", errUsage, opts.Command, cmd.args)
		return exitUsage
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return exitUsage
	}

	client, err := grafanaapi.New(cfg)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return exitUsage
	}
	defer client.Close()

	a := &app{client: client, opts: opts, stdout: stdout, stderr: stderr}

	if err := cmd.run(a, ctx, opts.Args); err != nil {
		_, _ = fmt.Fprintf(stderr, "%s: %v\n", opts.Command, err)
		return exitFailure
	}
	return exitOK
}

// loadConfig layers the config file and then the command line over the defaults.
func loadConfig(opts *cli.Option) (grafanaapi.Config, error) {
	cfg := grafanaapi.DefaultConfig()

	if opts.ConfigFile != "" {
		path, err := homedir.Expand(opts.ConfigFile)
		if err != nil {
			return cfg, err
		}
		bs, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %v", err)
		}
		if err := yaml.Unmarshal(bs, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config '%s': %v", path, err)
		}
	}

	if opts.URL != "" {
		cfg.URL = opts.URL
	}
	if opts.Username != "" {
		cfg.Username = opts.Username
	}
	if opts.Password != "" {
		cfg.Password = opts.Password
	}
	if opts.BearerTokenFile != "" {
		cfg.BearerTokenFile = opts.BearerTokenFile
	}
	if opts.Timeout > 0 {
		cfg.Timeout = opts.Timeout
	}
	if opts.MetricPrefix != "" {
		cfg.MetricPrefix = opts.MetricPrefix
	}

	if cfg.BearerTokenFile != "" {
		path, err := homedir.Expand(cfg.BearerTokenFile)
		if err != nil {
			return cfg, err
		}
		cfg.BearerTokenFile = path
	}

	return cfg, nil
}

func (a *app) health(ctx context.Context, _ []string) error {
	info, err := a.client.Health(ctx)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(a.stdout, "database: %s, version: %s\n", info.Database, info.Version); err != nil {
		return err
	}
	if a.opts.MinVersion == "" {
		return nil
	}

	minVer, err := semver.ParseTolerant(a.opts.MinVersion)
	if err != nil {
		return fmt.Errorf("bad --min-version '%s': %v", a.opts.MinVersion, err)
	}
	ok, err := info.AtLeast(minVer)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("grafana version %s is older than %s", info.Version, a.opts.MinVersion)
	}
	return nil
}

func (a *app) dashboards(ctx context.Context, args []string) error {
	var slugs []string
	var err error

	if len(args) == 1 {
		slugs, err = a.client.DashboardsMatching(ctx, args[0])
	} else {
		slugs, err = a.client.Dashboards(ctx)
	}
	if err != nil {
		return err
	}

	for _, slug := range slugs {
		if _, err := fmt.Fprintln(a.stdout, slug); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) dashboard(ctx context.Context, args []string) error {
	d, err := a.client.Dashboard(ctx, args[0])
	if err != nil {
		return err
	}
	return a.printPretty(d.Bytes())
}

func (a *app) panel(ctx context.Context, args []string) error {
	p, err := a.client.Panel(ctx, panelQuery(args))
	if err != nil {
		return err
	}
	return a.printPretty(p.Raw())
}

func (a *app) targets(ctx context.Context, args []string) error {
	p, err := a.client.Panel(ctx, panelQuery(args))
	if err != nil {
		return err
	}

	targets := a.client.PanelChartTargets(p, grafanaapi.TargetVars{
		HostName:   a.opts.Host,
		ClusterID:  a.opts.Cluster,
		VolumeName: a.opts.Volume,
	})

	bs, err := json.MarshalIndent(targets, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, string(bs))
	return err
}

func (a *app) compare(ctx context.Context, args []string) error {
	path, err := homedir.Expand(args[1])
	if err != nil {
		return err
	}
	expected, err := grafanaapi.LoadStructure(path)
	if err != nil {
		return err
	}

	cmp, err := a.client.CompareStructure(ctx, expected, args[0])
	if err != nil {
		return err
	}
	if !cmp.Equal {
		_, _ = fmt.Fprintf(a.stderr, "-defined +grafana:\n%s", cmp.Diff)
		return errMismatch
	}

	_, err = fmt.Fprintf(a.stdout, "%s: layout matches\n", cmp.Slug)
	return err
}

func (a *app) compareAll(ctx context.Context, args []string) error {
	path, err := homedir.Expand(args[0])
	if err != nil {
		return err
	}
	layouts, err := grafanaapi.LoadLayouts(path)
	if err != nil {
		return err
	}

	cmps, err := a.client.CompareLayouts(ctx, layouts)

	var mismatched int
	for _, cmp := range cmps {
		if cmp.Equal {
			_, _ = fmt.Fprintf(a.stdout, "%s: layout matches\n", cmp.Slug)
			continue
		}
		mismatched++
		_, _ = fmt.Fprintf(a.stderr, "%s (-defined +grafana):\n%s", cmp.Slug, cmp.Diff)
	}

	if err != nil {
		return err
	}
	if mismatched > 0 {
		return fmt.Errorf("%w: %d of %d dashboards", errMismatch, mismatched, len(cmps))
	}
	return nil
}

func (a *app) printPretty(bs []byte) error {
	s := gjson.GetBytes(bs, "@pretty").Raw
	_, err := fmt.Fprintln(a.stdout, strings.TrimRight(s, "\n"))
	return err
}

func panelQuery(args []string) grafanaapi.PanelQuery {
	q := grafanaapi.PanelQuery{Dashboard: args[0], Row: args[1], Title: args[2]}
	if len(args) > 3 {
		q.Type = args[3]
	}
	return q
}
