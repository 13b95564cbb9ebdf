// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"errors"

	"github.com/jessevdk/go-flags"

	"github.com/grafana-testing/grafana-testing/pkg/confopt"
	"github.com/grafana-testing/grafana-testing/pkg/executable"
)

// Option defines command line options.
type Option struct {
	Command string
	Args    []string

	URL             string           `short:"u" long:"url" description:"grafana API root, e.g. http://127.0.0.1:3000/api"`
	Username        string           `long:"username" description:"basic auth username"`
	Password        string           `long:"password" description:"basic auth password"`
	BearerTokenFile string           `long:"bearer-token-file" description:"file with a bearer token to authenticate with"`
	Timeout         confopt.Duration `short:"t" long:"timeout" description:"HTTP request timeout (5, 1.5, 2s)"`
	ConfigFile      string           `short:"c" long:"config" description:"YAML client config file"`
	MetricPrefix    string           `long:"metric-prefix" description:"prefix of chart targets to keep"`
	Host            string           `long:"host" description:"host name substituted for $host_name in targets"`
	Cluster         string           `long:"cluster" description:"cluster id substituted for $cluster_id in targets"`
	Volume          string           `long:"volume" description:"volume name substituted for $volume_name in targets"`
	MinVersion      string           `long:"min-version" description:"fail health unless grafana is at least this version"`
	Debug           bool             `short:"d" long:"debug" description:"debug mode"`
	Version         bool             `short:"v" long:"version" description:"display the version and exit"`
}

const usage = `[OPTIONS] <command> [args]

Commands:
  health                                check that grafana is up (see --min-version)
  dashboards [glob]                     list dashboard slugs
  dashboard <slug>                      print dashboard JSON
  panel <slug> <row> <panel> [type]     print panel JSON
  targets <slug> <row> <panel>          print metrics charted by a panel
  compare <slug> <layout.yaml>          compare dashboard layout with a file
  compare-all <layouts.yaml>            compare layouts of several dashboards`

var ErrNoCommand = errors.New("no command given")

// Parse returns parsed command-line flags in Option struct.
// args[0] is the program name.
func Parse(args []string) (*Option, error) {
	opt := &Option{}
	parser := flags.NewParser(opt, flags.Default)
	parser.Name = executable.Name
	parser.Usage = usage

	rest, err := parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}

	if len(rest) > 1 {
		opt.Command = rest[1]
		opt.Args = rest[2:]
	}
	if opt.Command == "" && !opt.Version {
		return nil, ErrNoCommand
	}

	return opt, nil
}

func IsHelp(err error) bool {
	return flags.WroteHelp(err)
}
