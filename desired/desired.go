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

// Package desired describes the state the user wants a cluster entity
// to be in, and validates it before anything is done.
package desired

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/snapcore/pcsctl/pcs"
	"github.com/snapcore/pcsctl/report"
	"github.com/snapcore/pcsctl/strutil"
)

// Target states.
const (
	StatePresent    = "present"
	StateAbsent     = "absent"
	StateStarted    = "started"
	StateStopped    = "stopped"
	StateEnabled    = "enabled"
	StateDisabled   = "disabled"
	StateMove       = "move"
	StateDebugStart = "debug-start"
	StateDefault    = "default"
)

func stateOrDefault(state, dflt string) string {
	if state == "" {
		return dflt
	}
	return state
}

func checkState(entity, state string, valid ...string) error {
	if strutil.ListContains(valid, state) {
		return nil
	}
	return report.Preconditionf("invalid %s state %q, expected one of: %s", entity, state, strings.Join(valid, ", "))
}

// Member is a cluster node, optionally with the port pcsd listens on.
type Member struct {
	Host string
	Port int
}

// ParseMember parses "host" or "host:port". IPv6 addresses take a port
// only in brackets, as in "[fe80::1]:2224".
func ParseMember(s string) (Member, error) {
	host, port, found := s, "", false
	switch {
	case strings.HasPrefix(s, "["):
		end := strings.Index(s, "]")
		if end < 0 {
			return Member{}, fmt.Errorf("invalid member %q: missing ]", s)
		}
		host = s[1:end]
		if rest := s[end+1:]; rest != "" {
			if !strings.HasPrefix(rest, ":") {
				return Member{}, fmt.Errorf("invalid member %q: unexpected %q after address", s, rest)
			}
			port, found = rest[1:], true
		}
	case strings.Count(s, ":") == 1:
		host, port, found = strings.Cut(s, ":")
	}
	if host == "" {
		return Member{}, fmt.Errorf("invalid member %q: empty host", s)
	}
	m := Member{Host: host}
	if found {
		p, err := strconv.Atoi(port)
		if err != nil || p <= 0 || p > 65535 {
			return Member{}, fmt.Errorf("invalid member %q: bad port %q", s, port)
		}
		m.Port = p
	}
	return m, nil
}

// ParseMembers parses each of the given members.
func ParseMembers(l []string) ([]Member, error) {
	members := make([]Member, 0, len(l))
	for _, s := range l {
		m, err := ParseMember(s)
		if err != nil {
			return nil, report.Preconditionf("%v", err)
		}
		members = append(members, m)
	}
	return members, nil
}

func (m Member) String() string {
	if m.Port == 0 {
		return m.Host
	}
	return net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
}

func (m *Member) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseMember(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func hosts(members []Member) []string {
	l := make([]string, len(members))
	for i, m := range members {
		l[i] = m.Host
	}
	return l
}

// Options are name=value settings of a resource or fence device. Their
// order is kept.
type Options []pcs.Option

// ParseOptions parses a list of "name=value" strings. An empty list
// gives empty, non-nil Options.
func ParseOptions(l []string) (Options, error) {
	opts := make(Options, 0, len(l))
	for _, s := range l {
		name, value, found := strings.Cut(s, "=")
		if !found || name == "" {
			return nil, report.Preconditionf("invalid option %q, expected name=value", s)
		}
		opts = append(opts, pcs.Option{Name: name, Value: value})
	}
	return opts, nil
}

func (o *Options) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: options must be a mapping", node.Line)
	}
	opts := make(Options, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: option %q must have a scalar value", v.Line, k.Value)
		}
		opts = append(opts, pcs.Option{Name: k.Value, Value: v.Value})
	}
	*o = opts
	return nil
}
