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

// Package executor applies reconciliation plans.
package executor

import (
	"github.com/snapcore/pcsctl/config"
	"github.com/snapcore/pcsctl/logger"
	"github.com/snapcore/pcsctl/pcs"
	"github.com/snapcore/pcsctl/reconcile"
	"github.com/snapcore/pcsctl/report"
	"github.com/snapcore/pcsctl/tokens"
)

var tokensPrune = tokens.Prune

// Executor runs the actions of a plan in order, stopping at the first
// failure. Nothing is retried.
type Executor struct {
	runner    pcs.Runner
	checkMode bool
	debug     bool
}

// New returns an Executor running commands through runner.
func New(cfg config.Config, runner pcs.Runner) *Executor {
	return &Executor{runner: runner, checkMode: cfg.CheckMode, debug: cfg.Debug}
}

// Execute applies plan. In check mode nothing is done but the result
// is the same as if the plan had been applied successfully.
func (e *Executor) Execute(plan *reconcile.Plan) (*report.Result, error) {
	if !plan.Changed() {
		return &report.Result{Changed: false, Msg: plan.Msg}, nil
	}
	res := &report.Result{Changed: true}
	for _, a := range plan.Actions {
		if e.checkMode {
			logger.Debugf("check mode, skipping %s", a)
			if e.debug && a.Kind == reconcile.RunCommand {
				res.Cmd = a.Command.Reveal()
			}
			res.AddMsg(a.Msg)
			continue
		}
		if err := e.apply(a, res); err != nil {
			return nil, err
		}
		res.AddMsg(a.Msg)
	}
	return res, nil
}

func (e *Executor) apply(a *reconcile.Action, res *report.Result) error {
	switch a.Kind {
	case reconcile.PruneTokens:
		if err := tokensPrune(a.TokensFile, a.Hosts); err != nil {
			return e.fileFailure(a, err)
		}
		return nil
	case reconcile.WipeTokens:
		if err := tokens.Remove(a.TokensFile); err != nil {
			return e.fileFailure(a, err)
		}
		return nil
	}

	out, err := e.runner.Run(a.Command)
	if err != nil {
		return err
	}
	if e.debug {
		res.SetDiagnostics(a.Command.Reveal(), out.Stdout, out.Stderr, out.ExitCode)
	}
	if out.Success() {
		return nil
	}
	f := report.Executionf("%s rc = %d", a.Failure, out.ExitCode)
	if e.debug {
		rc := out.ExitCode
		f.Cmd = a.Command.Reveal()
		f.Out = out.Stdout
		f.Err = out.Stderr
		f.Rc = &rc
	}
	return f
}

func (e *Executor) fileFailure(a *reconcile.Action, err error) error {
	logger.Debugf("%s: %v", a, err)
	if e.debug {
		return report.Executionf("%s: %v", a.Failure, err)
	}
	return report.Executionf("%s", a.Failure)
}
