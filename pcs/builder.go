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

package pcs

import (
	"net"
	"strconv"
)

// DefaultUtil is the pcs executable used when none is configured.
const DefaultUtil = "pcs"

// Builder produces the pcs commands used to observe and change a
// cluster. The CIB file and request timeout it was created with are
// applied to every command they are relevant for.
type Builder struct {
	util           string
	cibFile        string
	requestTimeout int
}

// NewBuilder returns a Builder running util (DefaultUtil when empty).
// A non-empty cibFile makes configuration commands act on that file
// instead of the live CIB, and a positive requestTimeout (in seconds) is
// passed to the commands that talk to other nodes.
func NewBuilder(util, cibFile string, requestTimeout int) *Builder {
	if util == "" {
		util = DefaultUtil
	}
	return &Builder{util: util, cibFile: cibFile, requestTimeout: requestTimeout}
}

// Util returns the pcs executable used by the builder.
func (b *Builder) Util() string {
	return b.util
}

func (b *Builder) cmd(args ...string) *Command {
	return (&Command{Path: b.util}).add(args...)
}

// cibCmd is a command operating on the cluster configuration, which can
// be redirected to a file.
func (b *Builder) cibCmd(args ...string) *Command {
	c := &Command{Path: b.util}
	if b.cibFile != "" {
		c.add("-f", b.cibFile)
	}
	return c.add(args...)
}

func (b *Builder) withRequestTimeout(c *Command) *Command {
	if b.requestTimeout > 0 {
		c.add("--request-timeout=" + strconv.Itoa(b.requestTimeout))
	}
	return c
}

// Option is a name=value argument.
type Option struct {
	Name  string
	Value string
}

func (o Option) String() string {
	return o.Name + "=" + o.Value
}

func addOptions(c *Command, opts []Option) {
	for _, o := range opts {
		c.add(o.String())
	}
}

// AuthOptions describes a "cluster auth" invocation.
type AuthOptions struct {
	// Members are the nodes to authenticate against.
	Members []string
	// Port, when non-zero, is appended to each member.
	Port     int
	Username string
	Password string
	Local    bool
	Force    bool
}

// ClusterAuth authenticates pcs to pcsd on the given members.
func (b *Builder) ClusterAuth(opts *AuthOptions) *Command {
	c := b.cmd("cluster", "auth")
	for _, m := range opts.Members {
		if opts.Port != 0 {
			m = net.JoinHostPort(m, strconv.Itoa(opts.Port))
		}
		c.add(m)
	}
	c.add("-u", opts.Username, "-p")
	c.addSecret(opts.Password)
	if opts.Local {
		c.add("--local")
	}
	if opts.Force {
		c.add("--force")
	}
	return b.withRequestTimeout(c)
}

// SetupOptions describes a "cluster setup" invocation.
type SetupOptions struct {
	Name    string
	Members []string
	Start   bool
	Enable  bool
	Local   bool
	Force   bool
	// Wait, when positive, is how many seconds to wait for the nodes
	// to start.
	Wait int
}

// ClusterSetup creates a cluster out of the given members.
func (b *Builder) ClusterSetup(opts *SetupOptions) *Command {
	c := b.cmd("cluster", "setup")
	if opts.Start {
		c.add("--start")
	}
	if opts.Enable {
		c.add("--enable")
	}
	if opts.Local {
		c.add("--local")
	}
	if opts.Force {
		c.add("--force")
	}
	if opts.Wait > 0 {
		c.add("--wait=" + strconv.Itoa(opts.Wait))
	}
	c.add("--name", opts.Name)
	c.add(opts.Members...)
	return b.withRequestTimeout(c)
}

// ClusterStopAll stops the cluster services on all nodes.
func (b *Builder) ClusterStopAll() *Command {
	return b.withRequestTimeout(b.cmd("cluster", "stop", "--all"))
}

// Status reports the overall cluster and daemon status.
func (b *Builder) Status() *Command {
	return b.cmd("status")
}

// ClusterStatus reports the cluster status, failing when the local
// node is not part of a configured cluster.
func (b *Builder) ClusterStatus() *Command {
	return b.cmd("cluster", "status")
}

// ResourceShow lists the resources (older pcs).
func (b *Builder) ResourceShow() *Command {
	return b.cibCmd("resource", "show")
}

// ResourceStatus lists the resources (newer pcs).
func (b *Builder) ResourceStatus() *Command {
	return b.cibCmd("resource", "status")
}

// ResourceCreate creates a resource of the given type, optionally in a
// group.
func (b *Builder) ResourceCreate(name, typ string, opts []Option, group string) *Command {
	c := b.cibCmd("resource", "create", name, typ)
	addOptions(c, opts)
	if group != "" {
		c.add("--group", group)
	}
	return c
}

// ResourceDelete deletes the named resource.
func (b *Builder) ResourceDelete(name string) *Command {
	return b.cibCmd("resource", "delete", name)
}

// ResourceEnable allows the cluster to start the named resource.
func (b *Builder) ResourceEnable(name string) *Command {
	return b.cibCmd("resource", "enable", name)
}

// ResourceDisable stops the named resource and prevents the cluster
// from starting it.
func (b *Builder) ResourceDisable(name string) *Command {
	return b.cibCmd("resource", "disable", name)
}

// ResourceMove moves the named resource to member.
func (b *Builder) ResourceMove(name, member string) *Command {
	return b.cibCmd("resource", "move", name, member)
}

// ResourceDebugStart starts the named resource on the local node,
// outside of the cluster's control.
func (b *Builder) ResourceDebugStart(name string) *Command {
	return b.cibCmd("resource", "debug-start", name)
}

// ConstraintShowFull lists all constraints including their ids.
func (b *Builder) ConstraintShowFull() *Command {
	return b.cibCmd("constraint", "show", "--full")
}

// NodeScore is a node and the score a location constraint gives it.
type NodeScore struct {
	Node  string
	Score string
}

// ConstraintLocationAdd adds a location constraint with the given id.
func (b *Builder) ConstraintLocationAdd(id, resource string, nodes []NodeScore) *Command {
	c := b.cibCmd("constraint", "location", "add", id, resource)
	for _, n := range nodes {
		c.add(n.Node, n.Score)
	}
	return c
}

// OrderStep is one side of an order constraint.
type OrderStep struct {
	Action   string
	Resource string
}

// ConstraintOrder orders then after first.
func (b *Builder) ConstraintOrder(id string, first, then OrderStep) *Command {
	return b.cibCmd("constraint", "order",
		first.Action, first.Resource, "then", then.Action, then.Resource,
		"id="+id)
}

// ConstraintOrderSet orders the resources in the given sequence.
func (b *Builder) ConstraintOrderSet(id string, resources []string) *Command {
	c := b.cibCmd("constraint", "order", "set")
	c.add(resources...)
	return c.add("id=" + id)
}

// ConstraintColocationAdd keeps resource together with target.
func (b *Builder) ConstraintColocationAdd(id, resource, target, score string) *Command {
	c := b.cibCmd("constraint", "colocation", "add", resource, "with", target)
	if score != "" {
		c.add(score)
	}
	return c.add("id=" + id)
}

// ConstraintColocationSet keeps all the given resources together.
func (b *Builder) ConstraintColocationSet(id string, resources []string) *Command {
	c := b.cibCmd("constraint", "colocation", "set")
	c.add(resources...)
	return c.add("id=" + id)
}

// ConstraintRemove removes the constraint with the given id.
func (b *Builder) ConstraintRemove(id string) *Command {
	return b.cibCmd("constraint", "remove", id)
}

// StonithDescribe describes a fence agent, failing if it is unknown.
func (b *Builder) StonithDescribe(agent string) *Command {
	return b.cmd("stonith", "describe", agent)
}

// StonithShow shows a fence device, failing if it is not configured.
func (b *Builder) StonithShow(name string) *Command {
	return b.cibCmd("stonith", "show", name)
}

// StonithCreate creates a fence device using agent.
func (b *Builder) StonithCreate(name, agent string, opts []Option) *Command {
	c := b.cibCmd("stonith", "create", name, agent)
	addOptions(c, opts)
	return c
}

// StonithDelete deletes a fence device.
func (b *Builder) StonithDelete(name string) *Command {
	return b.cibCmd("stonith", "delete", name)
}

// PropertyList lists all properties, or only their defaults.
func (b *Builder) PropertyList(defaults bool) *Command {
	if defaults {
		return b.cibCmd("property", "list", "--defaults")
	}
	return b.cibCmd("property", "list", "--all")
}

// PropertyShow shows a single property.
func (b *Builder) PropertyShow(name string) *Command {
	return b.cibCmd("property", "show", name)
}

// PropertySet sets a property. An empty value resets it to its default.
func (b *Builder) PropertySet(name, value string) *Command {
	return b.cibCmd("property", "set", name+"="+value)
}

// PropertyUnset removes a property from the configuration.
func (b *Builder) PropertyUnset(name string) *Command {
	return b.cibCmd("property", "unset", name)
}
