// SPDX-License-Identifier: GPL-3.0-or-later

package grafanaapi

import (
	"strings"
)

const (
	varClusterID  = "$cluster_id"
	varVolumeName = "$volume_name"
	varHostName   = "$host_name"
)

// TargetVars are the values substituted for template variables in panel targets.
type TargetVars struct {
	HostName   string
	ClusterID  string
	VolumeName string
}

// PanelChartTargets returns the metric names drawn by a panel, one list per
// visible target. Template variables are substituted from vars, function calls
// are stripped down to their innermost argument, and brace expansions such as
// "cpu.{percent-user,percent-system}" yield one metric per option. Plain pieces
// are kept only when they start with the configured metric prefix.
func (c *Client) PanelChartTargets(p *Panel, vars TargetVars) [][]string {
	output := make([][]string, 0)

	for _, t := range p.Targets() {
		if t.Hide {
			continue
		}
		query := c.substituteVars(t.Query(), vars)
		output = append(output, splitTarget(query, c.MetricPrefix))
	}

	c.Debugf("targets found in panel '%s': %v", p.Title(), output)

	return output
}

func (c *Client) substituteVars(target string, vars TargetVars) string {
	if strings.Contains(target, varClusterID) {
		if vars.ClusterID == "" {
			c.Infof("%s in target but no cluster id provided: %s", varClusterID, target)
		}
		target = strings.ReplaceAll(target, varClusterID, vars.ClusterID)
	}
	if strings.Contains(target, varVolumeName) {
		if vars.VolumeName == "" {
			c.Infof("%s in target but no volume name provided: %s", varVolumeName, target)
		}
		target = strings.ReplaceAll(target, varVolumeName, vars.VolumeName)
	}
	if strings.Contains(target, varHostName) {
		// graphite path segments can't contain dots
		target = strings.ReplaceAll(target, varHostName, strings.ReplaceAll(vars.HostName, ".", "_"))
	}
	return target
}

// splitTarget turns one target query into the metric names it references.
// "aliasByNode(tendrl.a.{x,y}, 3)" gives [tendrl.a.x tendrl.a.y].
func splitTarget(query, prefix string) []string {
	metrics := make([]string, 0)

	for _, piece := range strings.Split(query, ", ") {
		if i := strings.LastIndex(piece, "("); i >= 0 {
			piece = piece[i+1:]
		}
		piece, _, _ = strings.Cut(piece, ")")

		var options string
		if i := strings.LastIndex(piece, ".{"); i >= 0 {
			piece, options = piece[:i], piece[i+2:]
		}

		if options != "" {
			for _, opt := range strings.Split(options, ",") {
				opt, _, _ = strings.Cut(opt, "}")
				metrics = append(metrics, piece+"."+opt)
			}
			continue
		}

		if strings.HasPrefix(piece, prefix) {
			metrics = append(metrics, piece)
		}
	}

	return metrics
}
