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

var shortFenceHelp = "Create or delete a fence device"
var longFenceHelp = `
The fence command creates the named fence (stonith) device using the
given agent and options, unless it already exists. The agent must be
known to pcs. With --state=absent the device is deleted.
`

type cmdFence struct {
	State      string `long:"state" value-name:"STATE"`
	Agent      string `long:"agent"`
	Positional struct {
		Name    string
		Options []string
	} `positional-args:"yes"`
}

func init() {
	addCommand("fence", shortFenceHelp, longFenceHelp, func() flags.Commander { return &cmdFence{} }, map[string]string{
		"state": "Either present (the default) or absent",
		"agent": "The fence agent, for example fence_xvm",
	}, []argDesc{{
		name: "<name>",
		desc: "The fence device name",
	}, {
		name: "<option>",
		desc: "A fence device option (name=value)",
	}})
}

func (x *cmdFence) Execute(args []string) error {
	if len(args) > 0 {
		return ErrExtraArgs
	}
	opts, err := desired.ParseOptions(x.Positional.Options)
	if err != nil {
		return err
	}
	fence := &desired.Fence{
		Name:    x.Positional.Name,
		Agent:   x.Agent,
		Options: opts,
		State:   x.State,
	}
	return convergeAndPrint(func(r *reconcile.Reconciler) (*reconcile.Plan, error) {
		return r.Fence(fence)
	})
}
