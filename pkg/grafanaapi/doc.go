// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package grafanaapi is a client for the Grafana dashboard REST API aimed at tests
that verify provisioned dashboards.

It lists dashboards, fetches a dashboard by slug, locates a panel by row and
panel title, extracts the metric names a panel charts, and compares an expected
row/panel layout with the one Grafana serves.
*/
package grafanaapi
