// SPDX-License-Identifier: GPL-3.0-or-later

package grafanaapi

import "errors"

var (
	ErrDashboardNotFound = errors.New("dashboard not found")
	ErrEmptyDashboard    = errors.New("dashboard is empty")
	ErrRowNotFound       = errors.New("row not found")
	ErrAmbiguousRow      = errors.New("row title is not unique")
	ErrPanelNotFound     = errors.New("panel not found")
	ErrAmbiguousPanel    = errors.New("panel is not unique")
)
