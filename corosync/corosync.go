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

// Package corosync reads the parts of corosync.conf needed to manage a
// cluster.
package corosync

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// NotFoundError is returned when a corosync configuration does not name
// the cluster.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	if e.Path == "" {
		return "cannot find cluster_name in corosync configuration"
	}
	return fmt.Sprintf("cannot find cluster_name in %s", e.Path)
}

// ClusterName returns the value of the first uncommented line mentioning
// cluster_name, as in "cluster_name: debian".
func ClusterName(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") || !strings.Contains(line, "cluster_name") {
			continue
		}
		sep := ": "
		if !strings.Contains(line, sep) {
			sep = ":"
		}
		l := strings.SplitN(line, sep, 2)
		if len(l) != 2 {
			continue
		}
		return strings.TrimSpace(l[1]), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", &NotFoundError{}
}

// ClusterNameFromFile returns the cluster name configured in the
// corosync.conf file at path.
func ClusterNameFromFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	name, err := ClusterName(f)
	if nf, ok := err.(*NotFoundError); ok {
		nf.Path = path
	}
	return name, err
}
