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

// Package config holds the settings of a pcsctl invocation.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/mvo5/goconfigparser"
	"golang.org/x/xerrors"

	"github.com/snapcore/pcsctl/pcs"
)

// DefaultRequestTimeout is the number of seconds pcs waits for other
// nodes, unless configured otherwise.
const DefaultRequestTimeout = 60

const defaultsSection = "pcs"

// Config is the configuration of a single invocation. It is built once
// and not changed afterwards.
type Config struct {
	// PcsUtil is the pcs executable.
	PcsUtil string
	// File is a CIB file to act on instead of the live cluster.
	File string
	// RequestTimeout is in seconds.
	RequestTimeout int
	Force          bool
	// Debug adds diagnostics to the results.
	Debug bool
	// CheckMode reports what would change without changing anything.
	CheckMode bool
	// Journal sends the log to the systemd journal instead of stderr.
	Journal bool
}

// Overrides are settings given explicitly, typically on the command
// line. Zero values leave the defaults in place. NoForce and NoDebug
// turn off a force or debug set by the defaults file.
type Overrides struct {
	PcsUtil        string
	File           string
	RequestTimeout int
	Force          bool
	NoForce        bool
	Debug          bool
	NoDebug        bool
	CheckMode      bool
}

// Builder returns a pcs command builder using the configuration.
func (c Config) Builder() *pcs.Builder {
	return pcs.NewBuilder(c.PcsUtil, c.File, c.RequestTimeout)
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		PcsUtil:        pcs.DefaultUtil,
		RequestTimeout: DefaultRequestTimeout,
	}
}

func getString(cfg *goconfigparser.ConfigParser, key string) string {
	v, err := cfg.Get(defaultsSection, key)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

func getBool(cfg *goconfigparser.ConfigParser, key string) (v bool, ok bool, err error) {
	s := getString(cfg, key)
	if s == "" {
		return false, false, nil
	}
	v, err = strconv.ParseBool(s)
	if err != nil {
		return false, false, xerrors.Errorf("invalid %s value %q: %w", key, s, err)
	}
	return v, true, nil
}

// ReadDefaults layers the [pcs] section of the ini file at path over
// base. A missing file is not an error.
//
// Recognised keys are pcs-util, file, request-timeout, force, debug
// and journal.
func ReadDefaults(path string, base Config) (Config, error) {
	cfg := goconfigparser.New()
	if err := cfg.ReadFile(path); err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, xerrors.Errorf("cannot read defaults: %w", err)
	}

	c := base
	if v := getString(cfg, "pcs-util"); v != "" {
		c.PcsUtil = v
	}
	if v := getString(cfg, "file"); v != "" {
		c.File = v
	}
	if v := getString(cfg, "request-timeout"); v != "" {
		timeout, err := strconv.Atoi(v)
		if err != nil || timeout < 0 {
			return base, xerrors.Errorf("cannot read defaults from %s: invalid request-timeout %q", path, v)
		}
		c.RequestTimeout = timeout
	}
	for key, dst := range map[string]*bool{"force": &c.Force, "debug": &c.Debug, "journal": &c.Journal} {
		v, ok, err := getBool(cfg, key)
		if err != nil {
			return base, xerrors.Errorf("cannot read defaults from %s: %w", path, err)
		}
		if ok {
			*dst = v
		}
	}
	return c, nil
}

// Load returns the configuration made of the built-in defaults, the
// defaults file at path and the given overrides, in that order.
func Load(path string, o *Overrides) (Config, error) {
	c, err := ReadDefaults(path, Default())
	if err != nil {
		return Config{}, err
	}
	if o == nil {
		return c, nil
	}
	if o.PcsUtil != "" {
		c.PcsUtil = o.PcsUtil
	}
	if o.File != "" {
		c.File = o.File
	}
	if o.RequestTimeout > 0 {
		c.RequestTimeout = o.RequestTimeout
	}
	if o.Force && o.NoForce {
		return Config{}, xerrors.Errorf("cannot use force and no-force together")
	}
	if o.Debug && o.NoDebug {
		return Config{}, xerrors.Errorf("cannot use debug and no-debug together")
	}
	c.Force = (c.Force || o.Force) && !o.NoForce
	c.Debug = (c.Debug || o.Debug) && !o.NoDebug
	c.CheckMode = o.CheckMode
	return c, nil
}
