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
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"

	"github.com/snapcore/pcsctl/desired"
	"github.com/snapcore/pcsctl/reconcile"
	"github.com/snapcore/pcsctl/report"
)

var shortApplyHelp = "Converge the cluster to a desired state document"
var longApplyHelp = `
The apply command reads a YAML document with a list of tasks and
converges each of them in turn, stopping at the first failure. Every
task has exactly one of the keys auth, cluster, resource, constraint,
property and fence, holding the same settings as the command of that
name.

    tasks:
      - auth:
          members: [node1, node2]
          password: secret
      - cluster:
          name: web
          members: [node1, node2]
`

type cmdApply struct {
	Filename string `short:"f" long:"filename" value-name:"FILE" required:"yes"`
}

func init() {
	addCommand("apply", shortApplyHelp, longApplyHelp, func() flags.Commander { return &cmdApply{} }, map[string]string{
		"filename": "The desired state document",
	}, nil)
}

// task is a single entry of the tasks list of a desired state document.
type task struct {
	Auth       *desired.Authentication `yaml:"auth"`
	Cluster    *desired.Cluster        `yaml:"cluster"`
	Resource   *desired.Resource       `yaml:"resource"`
	Constraint *desired.ConstraintSpec `yaml:"constraint"`
	Property   *desired.Property       `yaml:"property"`
	Fence      *desired.Fence          `yaml:"fence"`
}

type document struct {
	Tasks []*task `yaml:"tasks"`
}

// planner returns the kind of the task and how to plan it.
func (t *task) planner() (string, planner, error) {
	var kinds []string
	var plan planner
	if t.Auth != nil {
		kinds = append(kinds, "auth")
		plan = func(r *reconcile.Reconciler) (*reconcile.Plan, error) { return r.Authentication(t.Auth) }
	}
	if t.Cluster != nil {
		kinds = append(kinds, "cluster")
		plan = func(r *reconcile.Reconciler) (*reconcile.Plan, error) { return r.Cluster(t.Cluster) }
	}
	if t.Resource != nil {
		kinds = append(kinds, "resource")
		plan = func(r *reconcile.Reconciler) (*reconcile.Plan, error) { return r.Resource(t.Resource) }
	}
	if t.Constraint != nil {
		kinds = append(kinds, "constraint")
		plan = func(r *reconcile.Reconciler) (*reconcile.Plan, error) { return r.Constraint(t.Constraint) }
	}
	if t.Property != nil {
		kinds = append(kinds, "property")
		plan = func(r *reconcile.Reconciler) (*reconcile.Plan, error) { return r.Property(t.Property) }
	}
	if t.Fence != nil {
		kinds = append(kinds, "fence")
		plan = func(r *reconcile.Reconciler) (*reconcile.Plan, error) { return r.Fence(t.Fence) }
	}
	switch len(kinds) {
	case 0:
		return "", nil, fmt.Errorf("task has none of auth, cluster, resource, constraint, property and fence")
	case 1:
		return kinds[0], plan, nil
	}
	return "", nil, fmt.Errorf("task has more than one of %v", kinds)
}

type validator interface {
	Validate() error
}

// entity returns the desired state held by the task.
func (t *task) entity() validator {
	switch {
	case t.Auth != nil:
		return t.Auth
	case t.Cluster != nil:
		return t.Cluster
	case t.Resource != nil:
		return t.Resource
	case t.Constraint != nil:
		return t.Constraint
	case t.Property != nil:
		return t.Property
	case t.Fence != nil:
		return t.Fence
	}
	return nil
}

func taskFailure(i int, kind string, err error) error {
	var failure *report.Failure
	if xerrors.As(err, &failure) {
		failure.Msg = fmt.Sprintf("task %d (%s): %s", i+1, kind, failure.Msg)
		return failure
	}
	return xerrors.Errorf("task %d (%s): %w", i+1, kind, err)
}

// readDocument decodes a desired state document, rejecting unknown keys.
func readDocument(r io.Reader) (*document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return &doc, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (x *cmdApply) Execute(args []string) error {
	if len(args) > 0 {
		return ErrExtraArgs
	}
	f, err := os.Open(x.Filename)
	if err != nil {
		return report.Preconditionf("cannot open desired state: %v", err)
	}
	defer f.Close()
	doc, err := readDocument(f)
	if err != nil {
		return report.Preconditionf("cannot read desired state from %s: %v", x.Filename, err)
	}

	planners := make([]planner, len(doc.Tasks))
	kinds := make([]string, len(doc.Tasks))
	for i, t := range doc.Tasks {
		kinds[i], planners[i], err = t.planner()
		if err != nil {
			return report.Preconditionf("invalid task %d in %s: %v", i+1, x.Filename, err)
		}
	}
	// nothing is changed unless every task is valid
	for i, t := range doc.Tasks {
		if err := t.entity().Validate(); err != nil {
			return taskFailure(i, kinds[i], err)
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	runner := newRunner()
	total := &report.Result{}
	for i, plan := range planners {
		res, err := converge(cfg, runner, plan)
		if err != nil {
			return taskFailure(i, kinds[i], err)
		}
		total.Changed = total.Changed || res.Changed
		total.AddMsg(res.Msg)
		if res.Rc != nil || res.Cmd != "" {
			total.Cmd, total.Out, total.Err, total.Rc = res.Cmd, res.Out, res.Err, res.Rc
		}
	}
	if len(planners) == 0 {
		total.Msg = "No tasks to apply"
	}
	return printJSON(total)
}
