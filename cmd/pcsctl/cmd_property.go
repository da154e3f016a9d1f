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

var shortPropertyHelp = "Set or unset a cluster property"
var longPropertyHelp = `
The property command sets the named cluster property to the given value.
With --state=absent the property is unset, and with --state=default it
is reset to its default value.
`

type cmdProperty struct {
	State      string `long:"state" value-name:"STATE"`
	Positional struct {
		Name  string
		Value string
	} `positional-args:"yes"`
}

func init() {
	addCommand("property", shortPropertyHelp, longPropertyHelp, func() flags.Commander { return &cmdProperty{} }, map[string]string{
		"state": "One of present (the default), absent and default",
	}, []argDesc{{
		name: "<name>",
		desc: "The property name",
	}, {
		name: "<value>",
		desc: "The property value",
	}})
}

func (x *cmdProperty) Execute(args []string) error {
	if len(args) > 0 {
		return ErrExtraArgs
	}
	prop := &desired.Property{
		Name:  x.Positional.Name,
		Value: x.Positional.Value,
		State: x.State,
	}
	return convergeAndPrint(func(r *reconcile.Reconciler) (*reconcile.Plan, error) {
		return r.Property(prop)
	})
}
