// SPDX-License-Identifier: GPL-3.0-or-later

package executable

import (
	"os"
	"path/filepath"
	"strings"
)

// Name is the base name of the running binary without its extension.
var Name = binaryName(os.Args)

func binaryName(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return "grafanactl"
	}
	base := filepath.Base(args[0])
	return strings.TrimSuffix(base, filepath.Ext(base))
}
