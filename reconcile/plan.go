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

// Package reconcile compares the desired state of cluster entities with
// what pcs reports and plans the changes needed to converge.
package reconcile

import (
	"fmt"

	"github.com/snapcore/pcsctl/pcs"
)

// ActionKind is what an Action does.
type ActionKind int

const (
	// RunCommand runs a pcs command.
	RunCommand ActionKind = iota
	// PruneTokens removes hosts from the pcsd tokens file.
	PruneTokens
	// WipeTokens removes the pcsd tokens file.
	WipeTokens
)

func (k ActionKind) String() string {
	switch k {
	case RunCommand:
		return "run"
	case PruneTokens:
		return "prune-tokens"
	case WipeTokens:
		return "wipe-tokens"
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Action is a single change to the cluster.
type Action struct {
	Kind ActionKind

	// Command is set for RunCommand.
	Command *pcs.Command

	// TokensFile is set for PruneTokens and WipeTokens, Hosts for
	// PruneTokens.
	TokensFile string
	Hosts      []string

	// Msg describes the change once done.
	Msg string
	// Failure names the step when it fails.
	Failure string
}

func (a *Action) String() string {
	switch a.Kind {
	case RunCommand:
		return a.Command.String()
	case PruneTokens:
		return fmt.Sprintf("prune %v from %s", a.Hosts, a.TokensFile)
	}
	return fmt.Sprintf("%s %s", a.Kind, a.TokensFile)
}

// Plan is the ordered list of actions needed to reach the desired
// state. A plan without actions means nothing needs to change.
type Plan struct {
	Actions []*Action
	// Msg describes the state when there is nothing to do.
	Msg string
}

// Changed reports whether executing the plan changes anything.
func (p *Plan) Changed() bool {
	return len(p.Actions) > 0
}

func unchanged(format string, v ...interface{}) *Plan {
	return &Plan{Msg: fmt.Sprintf(format, v...)}
}

func single(cmd *pcs.Command, msg, failure string) *Plan {
	return &Plan{Actions: []*Action{{Kind: RunCommand, Command: cmd, Msg: msg, Failure: failure}}}
}
