// -*- Mode: Go; indent-tabs-mode: t -*-

/*
 * Copyright (C) 2025 Canonical Ltd
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License version 3 as
 * published by the Free Software Foundation.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package dirstest

import (
	"fmt"
	"os"
	"path/filepath"
)

func mustWrite(path, content string, perm os.FileMode) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		panic(fmt.Errorf("cannot mkdir path: %w", err))
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		panic(fmt.Errorf("cannot write %s: %w", path, err))
	}
}

// MustMockCorosyncConf writes a minimal corosync configuration for the
// given cluster name under root.
func MustMockCorosyncConf(root, clusterName string) {
	mustWrite(filepath.Join(root, "/etc/corosync/corosync.conf"), fmt.Sprintf(`totem {
    version: 2
    # the name of the cluster
    cluster_name: %s
    transport: udpu
}
`, clusterName), 0o644)
}

// MustMockDefaults writes the pcsctl defaults file under root.
func MustMockDefaults(root, content string) {
	mustWrite(filepath.Join(root, "/etc/pcsctl/pcsctl.conf"), content, 0o644)
}

// MustMockPcsdTokens writes the root pcsd tokens file under root with
// a token for each of the given hosts.
func MustMockPcsdTokens(root string, hosts ...string) {
	content := `{"format_version": 2, "data_version": 1, "tokens": {`
	for i, h := range hosts {
		if i > 0 {
			content += ", "
		}
		content += fmt.Sprintf("%q: \"token-%d\"", h, i)
	}
	content += `}, "ports": {}}` + "\n"
	mustWrite(filepath.Join(root, "/var/lib/pcsd/tokens"), content, 0o600)
}
