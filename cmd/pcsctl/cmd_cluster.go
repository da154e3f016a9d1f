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

package main

import (
	"github.com/jessevdk/go-flags"

	"github.com/snapcore/pcsctl/desired"
	"github.com/snapcore/pcsctl/reconcile"
)

var shortClusterHelp = "Create or stop the cluster"
var longClusterHelp = `
The cluster command creates and starts the named cluster out of the
given members unless the local node is already part of a configured
cluster. With --state=stopped the cluster is stopped on all nodes.

If corosync is already configured, its cluster name must match.
`

type cmdCluster struct {
	State        string `long:"state" value-name:"STATE"`
	Enabled      bool   `long:"enabled"`
	Wait         int    `long:"wait" value-name:"SECONDS"`
	Local        bool   `long:"local"`
	CorosyncFile string `long:"corosync-file" value-name:"PATH"`
	Positional   struct {
		Name    string
		Members []string
	} `positional-args:"yes"`
}

func init() {
	addCommand("cluster", shortClusterHelp, longClusterHelp, func() flags.Commander { return &cmdCluster{} }, map[string]string{
		"state":         "Either started (the default) or stopped",
		"enabled":       "Start the cluster on boot",
		"wait":          "Seconds to wait for the nodes to start",
		"local":         "Only set up the local node",
		"corosync-file": "The corosync configuration to check the cluster name against",
	}, []argDesc{{
		name: "<name>",
		desc: "The cluster name",
	}, {
		name: "<member>",
		desc: "A cluster member, as host or host:port",
	}})
}

func (x *cmdCluster) Execute(args []string) error {
	if len(args) > 0 {
		return ErrExtraArgs
	}
	members, err := desired.ParseMembers(x.Positional.Members)
	if err != nil {
		return err
	}
	cl := &desired.Cluster{
		Name:         x.Positional.Name,
		Members:      members,
		State:        x.State,
		Enabled:      x.Enabled,
		Wait:         x.Wait,
		Local:        x.Local,
		CorosyncFile: x.CorosyncFile,
	}
	return convergeAndPrint(func(r *reconcile.Reconciler) (*reconcile.Plan, error) {
		return r.Cluster(cl)
	})
}
