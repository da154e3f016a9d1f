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

// Package tokens reads and maintains the pcsd tokens file, which maps
// each authenticated host to its pcsd token and port.
package tokens

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/xerrors"
	"gopkg.in/retry.v1"

	"github.com/snapcore/pcsctl/logger"
	"github.com/snapcore/pcsctl/osutil"
	"github.com/snapcore/pcsctl/strutil"
)

// Store is the content of a pcsd tokens file.
type Store struct {
	FormatVersion int               `json:"format_version"`
	DataVersion   int               `json:"data_version"`
	Tokens        map[string]string `json:"tokens"`
	Ports         map[string]int    `json:"ports"`
}

var storeKeys = []string{"data_version", "format_version", "ports", "tokens"}

// InvalidStoreError is returned when a tokens file does not have the
// expected structure.
type InvalidStoreError struct {
	Path   string
	Reason string
}

func (e *InvalidStoreError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid pcsd tokens data: %s", e.Reason)
	}
	return fmt.Sprintf("invalid pcsd tokens file %s: %s", e.Path, e.Reason)
}

// Validate checks that data has exactly the top-level keys of a tokens
// file and that tokens and ports are objects.
func Validate(data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return &InvalidStoreError{Reason: err.Error()}
	}
	if keys := strutil.SortedKeys(top); !strutil.SameSet(keys, storeKeys) {
		return &InvalidStoreError{Reason: fmt.Sprintf("unexpected keys %s", strutil.Quoted(keys))}
	}
	for _, k := range []string{"tokens", "ports"} {
		if raw := bytes.TrimSpace(top[k]); len(raw) == 0 || raw[0] != '{' {
			return &InvalidStoreError{Reason: fmt.Sprintf("%q is not an object", k)}
		}
	}
	return nil
}

// Parse validates and decodes the content of a tokens file.
func Parse(data []byte) (*Store, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var st Store
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, &InvalidStoreError{Reason: err.Error()}
	}
	return &st, nil
}

// Load reads the tokens file at path. A leading "~" in path is expanded
// to the home directory of the current user.
func Load(path string) (*Store, error) {
	fn, err := osutil.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	st, err := Parse(data)
	if err != nil {
		var invalid *InvalidStoreError
		if xerrors.As(err, &invalid) {
			invalid.Path = path
		}
		return nil, err
	}
	return st, nil
}

// Hosts returns the sorted hosts that have a token.
func (s *Store) Hosts() []string {
	return strutil.SortedKeys(s.Tokens)
}

// Exists reports whether the tokens file at path exists. A directory
// in its place is an InvalidStoreError.
func Exists(path string) (bool, error) {
	fn, err := osutil.ExpandHome(path)
	if err != nil {
		return false, err
	}
	if osutil.IsDirectory(fn) {
		return false, &InvalidStoreError{Path: fn, Reason: "is a directory"}
	}
	return osutil.FileExists(fn), nil
}

// Remove deletes the tokens file at path.
func Remove(path string) error {
	fn, err := osutil.ExpandHome(path)
	if err != nil {
		return err
	}
	if err := os.Remove(fn); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

var lockRetryStrategy = retry.LimitTime(5*time.Second,
	retry.Exponential{
		Initial: 10 * time.Millisecond,
		Factor:  2,
	},
)

// ErrLockTimeout is returned when the tokens file lock could not be
// taken in time.
var ErrLockTimeout = xerrors.New("timeout waiting for the pcsd tokens file lock")

func lock(path string) (*osutil.FileLock, error) {
	flock, err := osutil.NewFileLock(path + ".lock")
	if err != nil {
		return nil, err
	}
	for attempt := retry.Start(lockRetryStrategy, nil); attempt.Next(); {
		err = flock.TryLock()
		if err == nil {
			return flock, nil
		}
		if err != osutil.ErrAlreadyLocked {
			break
		}
		logger.Debugf("%s is locked, retrying", flock.Path())
	}
	flock.Close()
	if err == osutil.ErrAlreadyLocked {
		return nil, ErrLockTimeout
	}
	return nil, err
}

// Prune removes hosts from both the tokens and the ports of the tokens
// file at path. The file is re-read under an advisory lock and replaced
// atomically, keeping its permissions.
func Prune(path string, hosts []string) error {
	fn, err := osutil.ExpandHome(path)
	if err != nil {
		return err
	}
	flock, err := lock(fn)
	if err != nil {
		return xerrors.Errorf("cannot lock %s: %w", path, err)
	}
	defer flock.Close()

	fi, err := os.Stat(fn)
	if err != nil {
		return err
	}
	st, err := Load(fn)
	if err != nil {
		return err
	}
	for _, h := range hosts {
		delete(st.Tokens, h)
		delete(st.Ports, h)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	logger.Debugf("removing %s from %s", strutil.Quoted(hosts), path)
	return osutil.AtomicWriteFile(fn, append(data, '\n'), fi.Mode().Perm())
}
