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

// Package pcstest provides a scripted pcs.Runner for tests.
package pcstest

import (
	"fmt"
	"strings"

	"github.com/snapcore/pcsctl/pcs"
)

// Response is the scripted result of a command.
type Response struct {
	ExitCode int
	Stdout   string
	Stderr   string
	// Err makes the command fail to run at all.
	Err error
}

// Runner is a pcs.Runner answering commands from a script keyed by the
// command arguments joined by spaces (without the executable), for
// example "resource show". Unscripted commands succeed with no output.
type Runner struct {
	responses map[string][]Response
	calls     [][]string
}

// NewRunner returns an empty scripted Runner.
func NewRunner() *Runner {
	return &Runner{responses: make(map[string][]Response)}
}

// On scripts the responses to successive runs of the command given by
// args. The last response is repeated once the others are used up.
func (r *Runner) On(args string, responses ...Response) *Runner {
	if len(responses) == 0 {
		panic(fmt.Sprintf("no responses given for %q", args))
	}
	r.responses[args] = append(r.responses[args], responses...)
	return r
}

// Run implements pcs.Runner.
func (r *Runner) Run(cmd *pcs.Command) (*pcs.Output, error) {
	r.calls = append(r.calls, cmd.Argv())
	key := strings.Join(cmd.Args, " ")
	responses := r.responses[key]
	if len(responses) == 0 {
		return &pcs.Output{}, nil
	}
	resp := responses[0]
	if len(responses) > 1 {
		r.responses[key] = responses[1:]
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	return &pcs.Output{ExitCode: resp.ExitCode, Stdout: resp.Stdout, Stderr: resp.Stderr}, nil
}

// Calls returns the argument vectors of all commands run so far.
func (r *Runner) Calls() [][]string {
	return r.calls
}

// CallArgs returns the arguments (without the executable) of all
// commands run so far, each joined by spaces.
func (r *Runner) CallArgs() []string {
	var out []string
	for _, c := range r.calls {
		out = append(out, strings.Join(c[1:], " "))
	}
	return out
}

// ForgetCalls resets the recorded calls.
func (r *Runner) ForgetCalls() {
	r.calls = nil
}
