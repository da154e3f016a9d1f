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

package osutil

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AtomicWriteFile works like os.WriteFile, except that the new content is
// written to a temporary file in the same directory first, synced, and
// then renamed over filename. Readers see either the old or the new
// content, never a partial write.
func AtomicWriteFile(filename string, data []byte, perm os.FileMode) (err error) {
	tmp := filename + "." + strconv.FormatInt(time.Now().UnixNano(), 36) + "~"

	fd, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			fd.Close()
			os.Remove(tmp)
		}
	}()

	if _, err = fd.Write(data); err != nil {
		return err
	}
	if err = fd.Sync(); err != nil {
		return err
	}
	if err = os.Rename(tmp, filename); err != nil {
		return err
	}

	dir, err := os.Open(filepath.Dir(filename))
	if err != nil {
		return err
	}
	defer dir.Close()
	if err = dir.Sync(); err != nil {
		return err
	}

	// given we called Sync before, Close _shouldn't_ be able to
	// fail. Still, stuff happens.
	return fd.Close()
}
