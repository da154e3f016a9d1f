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

var shortConstraintHelp = "Manage a resource constraint"
var longConstraintHelp = `
The constraint command creates or removes a location, order or
colocation constraint of the named resource. The constraint id is the
resource name followed by an underscore and the constraint type, and
only the id is used to decide whether the constraint exists.

A location constraint takes either --prefers or --avoids, an order
constraint either two --order steps or a --set of resources, and a
colocation constraint at least one --with resource.
`

type cmdConstraint struct {
	Type       string   `long:"type" value-name:"TYPE"`
	State      string   `long:"state" value-name:"STATE"`
	Prefers    []string `long:"prefers" value-name:"NODE[=SCORE]"`
	Avoids     []string `long:"avoids" value-name:"NODE[=SCORE]"`
	Order      []string `long:"order" value-name:"ACTION=RESOURCE"`
	Set        []string `long:"set" value-name:"RESOURCE"`
	With       []string `long:"with" value-name:"RESOURCE"`
	Score      string   `long:"score"`
	Positional struct {
		Name string
	} `positional-args:"yes"`
}

func init() {
	addCommand("constraint", shortConstraintHelp, longConstraintHelp, func() flags.Commander { return &cmdConstraint{} }, map[string]string{
		"type":    "One of location, order and colocation",
		"state":   "Either present (the default) or absent",
		"prefers": "A node the resource prefers, INFINITY when no score is given",
		"avoids":  "A node the resource avoids, -INFINITY when no score is given",
		"order":   "A step of an order constraint, for example start=vip",
		"set":     "A resource of an order set",
		"with":    "A resource to keep the resource together with",
		"score":   "The score of a colocation constraint",
	}, []argDesc{{
		name: "<name>",
		desc: "The resource the constraint is about",
	}})
}

func (x *cmdConstraint) spec() (*desired.ConstraintSpec, error) {
	prefers, err := desired.ParseNodeScores(x.Prefers)
	if err != nil {
		return nil, err
	}
	avoids, err := desired.ParseNodeScores(x.Avoids)
	if err != nil {
		return nil, err
	}
	order, err := desired.ParseOrderSteps(x.Order)
	if err != nil {
		return nil, err
	}
	return &desired.ConstraintSpec{
		Name:    x.Positional.Name,
		Type:    x.Type,
		State:   x.State,
		Prefers: prefers,
		Avoids:  avoids,
		Order:   order,
		Set:     x.Set,
		With:    x.With,
		Score:   x.Score,
	}, nil
}

func (x *cmdConstraint) Execute(args []string) error {
	if len(args) > 0 {
		return ErrExtraArgs
	}
	spec, err := x.spec()
	if err != nil {
		return err
	}
	return convergeAndPrint(func(r *reconcile.Reconciler) (*reconcile.Plan, error) {
		return r.Constraint(spec)
	})
}
