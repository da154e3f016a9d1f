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

package state

import (
	"strings"

	"github.com/snapcore/pcsctl/logger"
	"github.com/snapcore/pcsctl/pcs"
)

const resourceShowReplaced = "This command has been replaced with 'pcs resource status'"

// Observer runs the read-only pcs commands describing the cluster.
// Nothing is cached: every call asks pcs again.
type Observer struct {
	builder *pcs.Builder
	runner  pcs.Runner
}

// NewObserver returns an Observer running the commands of b through r.
func NewObserver(b *pcs.Builder, r pcs.Runner) *Observer {
	return &Observer{builder: b, runner: r}
}

func (o *Observer) run(cmd *pcs.Command) (*pcs.Output, error) {
	return o.runner.Run(cmd)
}

// mustRun runs cmd and fails unless it exits successfully.
func (o *Observer) mustRun(cmd *pcs.Command) (*pcs.Output, error) {
	out, err := o.run(cmd)
	if err != nil {
		return nil, err
	}
	if !out.Success() {
		return nil, &pcs.Error{Cmd: cmd, Output: out}
	}
	return out, nil
}

// Resources returns the configured resources.
func (o *Observer) Resources() ([]Resource, error) {
	cmd := o.builder.ResourceShow()
	out, err := o.run(cmd)
	if err != nil {
		return nil, err
	}
	if strings.Contains(out.Stdout, resourceShowReplaced) || strings.Contains(out.Stderr, resourceShowReplaced) {
		logger.Debugf("%q was replaced, using %q", cmd, o.builder.ResourceStatus())
		cmd = o.builder.ResourceStatus()
		out, err = o.run(cmd)
		if err != nil {
			return nil, err
		}
	}
	if !out.Success() {
		return nil, &pcs.Error{Cmd: cmd, Output: out}
	}
	return ParseResources(out.Stdout), nil
}

// Resource returns the named resource, or nil if it is not configured.
func (o *Observer) Resource(name string) (*Resource, error) {
	resources, err := o.Resources()
	if err != nil {
		return nil, err
	}
	for i := range resources {
		if resources[i].Name == name {
			return &resources[i], nil
		}
	}
	return nil, nil
}

// Properties returns the cluster properties, or their default values.
func (o *Observer) Properties(defaults bool) (map[string]string, error) {
	out, err := o.mustRun(o.builder.PropertyList(defaults))
	if err != nil {
		return nil, err
	}
	props, malformed := ParseProperties(out.Stdout)
	for _, e := range malformed {
		logger.Debugf("ignoring %v", e)
	}
	return props, nil
}

// Property returns the value of the named property, or its default,
// and whether pcs listed it at all.
func (o *Observer) Property(name string, defaults bool) (value string, ok bool, err error) {
	props, err := o.Properties(defaults)
	if err != nil {
		return "", false, err
	}
	value, ok = props[name]
	return value, ok, nil
}

// PropertyDefined reports whether the named property is set in the
// cluster configuration.
func (o *Observer) PropertyDefined(name string) (bool, error) {
	out, err := o.mustRun(o.builder.PropertyShow(name))
	if err != nil {
		return false, err
	}
	return strings.Contains(out.Stdout, name), nil
}

// Constraints returns the full constraint listing.
func (o *Observer) Constraints() (ConstraintListing, error) {
	out, err := o.mustRun(o.builder.ConstraintShowFull())
	if err != nil {
		return "", err
	}
	return ConstraintListing(out.Stdout), nil
}

// FenceAgentExists reports whether pcs knows the given fence agent.
func (o *Observer) FenceAgentExists(agent string) (bool, error) {
	out, err := o.run(o.builder.StonithDescribe(agent))
	if err != nil {
		return false, err
	}
	return out.Success(), nil
}

// FenceConfigured reports whether the named fence device exists.
func (o *Observer) FenceConfigured(name string) (bool, error) {
	out, err := o.run(o.builder.StonithShow(name))
	if err != nil {
		return false, err
	}
	return out.Success(), nil
}

// ClusterStatus summarises the state of the cluster on this node.
type ClusterStatus struct {
	// Started is true when "pcs status" succeeds.
	Started bool
	// Enabled is true when the cluster daemons are all active and
	// enabled.
	Enabled bool
	// Configured is true when "pcs cluster status" succeeds, meaning
	// the nodes are set up.
	Configured bool
}

// Cluster returns the status of the cluster.
func (o *Observer) Cluster() (*ClusterStatus, error) {
	st := &ClusterStatus{}
	out, err := o.run(o.builder.Status())
	if err != nil {
		return nil, err
	}
	if out.Success() {
		st.Started = true
		st.Enabled = ParseDaemonStatus(out.Stdout)
	}
	out, err = o.run(o.builder.ClusterStatus())
	if err != nil {
		return nil, err
	}
	st.Configured = out.Success()
	return st, nil
}
