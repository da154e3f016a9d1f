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

package desired

import (
	"github.com/snapcore/pcsctl/dirs"
	"github.com/snapcore/pcsctl/report"
)

// DefaultUsername is the user pcs authenticates as by default.
const DefaultUsername = "hacluster"

// Authentication is the desired content of the pcsd tokens file.
type Authentication struct {
	Members []Member `yaml:"members"`
	// State is present (the default) or absent.
	State string `yaml:"state"`
	// TokensFile defaults to the tokens file of the current user.
	TokensFile string `yaml:"pcsd-tokens-file"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	Local      bool   `yaml:"local"`
}

func (a *Authentication) TargetState() string {
	return stateOrDefault(a.State, StatePresent)
}

func (a *Authentication) User() string {
	if a.Username == "" {
		return DefaultUsername
	}
	return a.Username
}

func (a *Authentication) TokensPath() string {
	if a.TokensFile == "" {
		return dirs.PcsdTokensFileFor("")
	}
	return a.TokensFile
}

// Hosts returns the members without their ports.
func (a *Authentication) Hosts() []string {
	return hosts(a.Members)
}

// Port returns the pcsd port shared by all members, or 0.
func (a *Authentication) Port() int {
	if len(a.Members) == 0 {
		return 0
	}
	return a.Members[0].Port
}

func (a *Authentication) Validate() error {
	state := a.TargetState()
	if err := checkState("authentication", state, StatePresent, StateAbsent); err != nil {
		return err
	}
	if state != StatePresent {
		return nil
	}
	if len(a.Members) == 0 {
		return report.Preconditionf("members parameter is required when state is present")
	}
	for _, m := range a.Members[1:] {
		if m.Port != a.Members[0].Port {
			return report.Preconditionf("all members must use the same port, found %s and %s", a.Members[0], m)
		}
	}
	return nil
}

// Cluster is the desired state of the cluster itself.
type Cluster struct {
	Name    string   `yaml:"name"`
	Members []Member `yaml:"members"`
	// State is started (the default) or stopped.
	State   string `yaml:"state"`
	Enabled bool   `yaml:"enabled"`
	// Wait is how many seconds to wait for the nodes to start.
	Wait  int  `yaml:"wait"`
	Local bool `yaml:"local"`
	// CorosyncFile defaults to dirs.CorosyncConfFile.
	CorosyncFile string `yaml:"corosync-file"`
}

func (cl *Cluster) TargetState() string {
	return stateOrDefault(cl.State, StateStarted)
}

func (cl *Cluster) CorosyncPath() string {
	if cl.CorosyncFile == "" {
		return dirs.CorosyncConfFile
	}
	return cl.CorosyncFile
}

// Hosts returns the members without their ports.
func (cl *Cluster) Hosts() []string {
	return hosts(cl.Members)
}

func (cl *Cluster) Validate() error {
	if cl.Name == "" {
		return report.Preconditionf("the cluster name is required")
	}
	state := cl.TargetState()
	if err := checkState("cluster", state, StateStarted, StateStopped); err != nil {
		return err
	}
	if state == StateStarted && len(cl.Members) == 0 {
		return report.Preconditionf("members parameter is required when state is started")
	}
	if cl.Wait < 0 {
		return report.Preconditionf("invalid wait %d, must not be negative", cl.Wait)
	}
	return nil
}

// Resource is the desired state of a cluster resource.
type Resource struct {
	Name    string  `yaml:"name"`
	Type    string  `yaml:"type"`
	Options Options `yaml:"options"`
	Group   string  `yaml:"group"`
	// State is one of present (the default), absent, enabled,
	// disabled, move and debug-start.
	State string `yaml:"state"`
	// Member is where to move the resource to.
	Member string `yaml:"member"`
}

func (r *Resource) TargetState() string {
	return stateOrDefault(r.State, StatePresent)
}

func (r *Resource) Validate() error {
	if r.Name == "" {
		return report.Preconditionf("the resource name is required")
	}
	state := r.TargetState()
	if err := checkState("resource", state, StatePresent, StateAbsent, StateEnabled, StateDisabled, StateMove, StateDebugStart); err != nil {
		return err
	}
	switch state {
	case StatePresent:
		if r.Type == "" || r.Options == nil {
			return report.Preconditionf("type and options are required when state is present")
		}
	case StateMove:
		if r.Member == "" {
			return report.Preconditionf("The member parameter is required when state is move")
		}
	}
	return nil
}

// Property is the desired value of a cluster property.
type Property struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
	// State is present (the default), absent or default.
	State string `yaml:"state"`
}

func (p *Property) TargetState() string {
	return stateOrDefault(p.State, StatePresent)
}

func (p *Property) Validate() error {
	if p.Name == "" {
		return report.Preconditionf("the property name is required")
	}
	state := p.TargetState()
	if err := checkState("property", state, StatePresent, StateAbsent, StateDefault); err != nil {
		return err
	}
	if state == StatePresent && p.Value == "" {
		return report.Preconditionf("a value is required when state is present")
	}
	return nil
}

// Fence is the desired state of a fence (stonith) device.
type Fence struct {
	Name    string  `yaml:"name"`
	Agent   string  `yaml:"agent"`
	Options Options `yaml:"options"`
	// State is present (the default) or absent.
	State string `yaml:"state"`
}

func (f *Fence) TargetState() string {
	return stateOrDefault(f.State, StatePresent)
}

func (f *Fence) Validate() error {
	if f.Name == "" {
		return report.Preconditionf("the fence name is required")
	}
	state := f.TargetState()
	if err := checkState("fence", state, StatePresent, StateAbsent); err != nil {
		return err
	}
	if state == StatePresent && f.Agent == "" {
		return report.Preconditionf("an agent is required when state is present")
	}
	return nil
}
