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

var shortResourceHelp = "Manage a cluster resource"
var longResourceHelp = `
The resource command creates, deletes, enables, disables, moves or
debug-starts the named resource, depending on --state. Creating a
resource needs its type. Options are optional.
`

type cmdResource struct {
	State      string `long:"state" value-name:"STATE"`
	Type       string `long:"type" value-name:"STANDARD:PROVIDER:TYPE"`
	Group      string `long:"group"`
	Member     string `long:"member"`
	Positional struct {
		Name    string
		Options []string
	} `positional-args:"yes"`
}

func init() {
	addCommand("resource", shortResourceHelp, longResourceHelp, func() flags.Commander { return &cmdResource{} }, map[string]string{
		"state":  "One of present (the default), absent, enabled, disabled, move and debug-start",
		"type":   "The resource agent, for example ocf:heartbeat:IPaddr2",
		"group":  "Put the new resource in the given group",
		"member": "Where to move the resource to",
	}, []argDesc{{
		name: "<name>",
		desc: "The resource name",
	}, {
		name: "<option>",
		desc: "A resource option (name=value)",
	}})
}

func (x *cmdResource) Execute(args []string) error {
	if len(args) > 0 {
		return ErrExtraArgs
	}
	opts, err := desired.ParseOptions(x.Positional.Options)
	if err != nil {
		return err
	}
	res := &desired.Resource{
		Name:    x.Positional.Name,
		Type:    x.Type,
		Options: opts,
		Group:   x.Group,
		State:   x.State,
		Member:  x.Member,
	}
	return convergeAndPrint(func(r *reconcile.Reconciler) (*reconcile.Plan, error) {
		return r.Resource(res)
	})
}
