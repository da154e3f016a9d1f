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

package dirs

import (
	"os/user"
	"path/filepath"
)

// the various file paths
var (
	GlobalRootDir string

	PcsdTokensFile   string
	CorosyncConfFile string
	DefaultsFile     string
)

const (
	// UserPcsdTokensFile is where pcs keeps the tokens of a non-root
	// user, relative to their home directory.
	UserPcsdTokensFile = "~/.pcs/tokens"

	rootPcsdTokensFile = "/var/lib/pcsd/tokens"
)

var currentUser = user.Current

// SetRootDir allows settings a new global root directory, this is useful
// for e.g. chroot operations
func SetRootDir(rootdir string) {
	if rootdir == "" {
		rootdir = "/"
	}
	GlobalRootDir = rootdir

	PcsdTokensFile = filepath.Join(rootdir, rootPcsdTokensFile)
	CorosyncConfFile = filepath.Join(rootdir, "/etc/corosync/corosync.conf")
	DefaultsFile = filepath.Join(rootdir, "/etc/pcsctl/pcsctl.conf")
}

// PcsdTokensFileFor returns the location of the pcsd tokens file used
// when pcs runs as the given user. When username is empty the user
// running this process is used.
//
// The path of non-root users is returned unexpanded, see
// osutil.ExpandHome.
func PcsdTokensFileFor(username string) string {
	if username == "" {
		if u, err := currentUser(); err == nil {
			username = u.Username
		}
	}
	if username == "root" {
		return PcsdTokensFile
	}
	return UserPcsdTokensFile
}

func init() {
	SetRootDir("")
}
