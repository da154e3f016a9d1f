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

// Package state reads the current state of a Pacemaker cluster through
// pcs.
package state

import (
	"fmt"
	"strings"
)

// ParseError describes a line of pcs output that could not be parsed.
type ParseError struct {
	Section string
	Line    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s line %q", e.Section, e.Line)
}

// Resource is a resource as listed by pcs.
type Resource struct {
	Name  string
	Type  string
	State string
}

// Stopped reports whether the resource is stopped but not disabled.
func (r *Resource) Stopped() bool {
	return r.State == "Stopped"
}

// Disabled reports whether the resource has been disabled.
func (r *Resource) Disabled() bool {
	return strings.Contains(r.State, "disabled")
}

// StartedOn reports whether the resource runs on member.
func (r *Resource) StartedOn(member string) bool {
	return r.State == "Started "+member
}

// ParseResources parses the output of "pcs resource show" (or "pcs
// resource status"). Only lines with exactly three tab separated fields
// describe a resource, anything else is ignored.
func ParseResources(out string) []Resource {
	var resources []Resource
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			continue
		}
		resources = append(resources, Resource{
			Name:  strings.TrimSpace(strings.Replace(fields[0], "*", "", -1)),
			Type:  strings.TrimSpace(fields[1]),
			State: strings.TrimSpace(fields[2]),
		})
	}
	return resources
}

// ParseProperties parses the output of "pcs property list". Lines that
// are not a single "name: value" pair are returned as parse errors and
// otherwise ignored.
func ParseProperties(out string) (props map[string]string, malformed []*ParseError) {
	props = make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Cluster Properties") || strings.TrimSpace(line) == "" {
			continue
		}
		kv := strings.Split(line, ":")
		if len(kv) != 2 {
			malformed = append(malformed, &ParseError{Section: "property", Line: line})
			continue
		}
		props[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	return props, malformed
}

var enabledDaemons = []string{
	"corosync: active/enabled",
	"pacemaker: active/enabled",
	"pcsd: active/enabled",
}

// ParseDaemonStatus reports whether the "Daemon Status" part of the
// output of "pcs status" shows corosync, pacemaker and pcsd as both
// active and enabled.
func ParseDaemonStatus(out string) bool {
	for _, d := range enabledDaemons {
		if !strings.Contains(out, d) {
			return false
		}
	}
	return true
}

// ConstraintListing is the output of "pcs constraint show --full".
type ConstraintListing string

// Has reports whether a constraint with the given id is listed.
func (l ConstraintListing) Has(id string) bool {
	return strings.Contains(string(l), id)
}
