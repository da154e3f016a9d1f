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
	"fmt"

	"github.com/snapcore/pcsctl/config"
	"github.com/snapcore/pcsctl/dirs"
	"github.com/snapcore/pcsctl/executor"
	"github.com/snapcore/pcsctl/logger"
	"github.com/snapcore/pcsctl/pcs"
	"github.com/snapcore/pcsctl/reconcile"
	"github.com/snapcore/pcsctl/report"
)

var newRunner = func() pcs.Runner {
	return pcs.NewRunner()
}

var journalSetup = logger.JournalSetup

// activeConfig is the configuration of the running command, once loaded.
var activeConfig *config.Config

func debugging() bool {
	return optionsData.Debug || (activeConfig != nil && activeConfig.Debug)
}

// loadConfig layers the global options over the defaults file.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(dirs.DefaultsFile, &config.Overrides{
		PcsUtil:        optionsData.PcsUtil,
		File:           optionsData.File,
		RequestTimeout: optionsData.RequestTimeout,
		Force:          optionsData.Force,
		NoForce:        optionsData.NoForce,
		Debug:          optionsData.Debug,
		NoDebug:        optionsData.NoDebug,
		CheckMode:      optionsData.Check,
	})
	if err != nil {
		return config.Config{}, err
	}
	activeConfig = &cfg
	if cfg.Journal {
		if err := journalSetup("pcsctl"); err != nil {
			logger.Noticef("cannot log to the journal: %v", err)
		}
	}
	if cfg.Debug {
		logger.SetDebug(true)
	}
	logger.Debugf("using %s, cib file %q, request timeout %ds", cfg.PcsUtil, cfg.File, cfg.RequestTimeout)
	return cfg, nil
}

type planner func(r *reconcile.Reconciler) (*reconcile.Plan, error)

// converge plans the changes for a single entity and carries them out.
func converge(cfg config.Config, runner pcs.Runner, plan planner) (*report.Result, error) {
	p, err := plan(reconcile.New(cfg, runner))
	if err != nil {
		return nil, err
	}
	for _, a := range p.Actions {
		logger.Debugf("planned %s", a)
	}
	return executor.New(cfg, runner).Execute(p)
}

// convergeAndPrint is what the single entity commands run.
func convergeAndPrint(plan planner) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	res, err := converge(cfg, newRunner(), plan)
	if err != nil {
		return err
	}
	return printJSON(res)
}

type jsonMarshaler interface {
	JSON() ([]byte, error)
}

func printJSON(v jsonMarshaler) error {
	out, err := v.JSON()
	if err != nil {
		return err
	}
	fmt.Fprintf(Stdout, "%s\n", out)
	return nil
}
