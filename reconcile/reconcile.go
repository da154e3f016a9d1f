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

package reconcile

import (
	"fmt"
	"strings"

	"golang.org/x/xerrors"

	"github.com/snapcore/pcsctl/config"
	"github.com/snapcore/pcsctl/corosync"
	"github.com/snapcore/pcsctl/desired"
	"github.com/snapcore/pcsctl/logger"
	"github.com/snapcore/pcsctl/osutil"
	"github.com/snapcore/pcsctl/pcs"
	"github.com/snapcore/pcsctl/report"
	"github.com/snapcore/pcsctl/state"
	"github.com/snapcore/pcsctl/strutil"
	"github.com/snapcore/pcsctl/tokens"
)

// Reconciler plans the changes for each kind of cluster entity. It only
// reads from the cluster.
type Reconciler struct {
	cfg     config.Config
	builder *pcs.Builder
	obs     *state.Observer
}

// New returns a Reconciler observing the cluster through runner.
func New(cfg config.Config, runner pcs.Runner) *Reconciler {
	b := cfg.Builder()
	return &Reconciler{
		cfg:     cfg,
		builder: b,
		obs:     state.NewObserver(b, runner),
	}
}

// observeErr turns a failed read of the cluster state into an execution
// failure.
func (r *Reconciler) observeErr(err error) error {
	var pcsErr *pcs.Error
	if !xerrors.As(err, &pcsErr) {
		return err
	}
	f := report.Executionf("Failed reading the cluster state rc = %d", pcsErr.Output.ExitCode)
	if r.cfg.Debug {
		rc := pcsErr.Output.ExitCode
		f.Cmd = pcsErr.Cmd.Reveal()
		f.Out = pcsErr.Output.Stdout
		f.Err = pcsErr.Output.Stderr
		f.Rc = &rc
	}
	return f
}

func tokensErr(path string, err error) error {
	var invalid *tokens.InvalidStoreError
	if xerrors.As(err, &invalid) {
		logger.Debugf("%v", err)
		return report.InvalidStatef("The pcsd token file is not valid %s", path)
	}
	return err
}

// Authentication plans the changes to the pcsd tokens file. Missing
// members are authenticated before stale ones are removed.
func (r *Reconciler) Authentication(a *desired.Authentication) (*Plan, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	path := a.TokensPath()
	exists, err := tokens.Exists(path)
	if err != nil {
		return nil, tokensErr(path, err)
	}

	if a.TargetState() == desired.StateAbsent {
		if !exists {
			return unchanged("The pcsd tokens file has not been configured %s", path), nil
		}
		return &Plan{Actions: []*Action{{
			Kind:       WipeTokens,
			TokensFile: path,
			Msg:        fmt.Sprintf("The pcsd tokens file has been removed %s", path),
			Failure:    fmt.Sprintf("Failed removing %s", path),
		}}}, nil
	}

	authCmd := func(hosts []string) *pcs.Command {
		return r.builder.ClusterAuth(&pcs.AuthOptions{
			Members:  hosts,
			Port:     a.Port(),
			Username: a.User(),
			Password: a.Password,
			Local:    a.Local,
			Force:    r.cfg.Force,
		})
	}
	const authFailure = "An error was encountered"

	if !exists || r.cfg.Force {
		return single(authCmd(a.Hosts()), "All provided members were authenticated", authFailure), nil
	}

	store, err := tokens.Load(path)
	if err != nil {
		return nil, tokensErr(path, err)
	}
	known := store.Hosts()
	if strutil.SameSet(a.Hosts(), known) {
		return unchanged("All members have tokens in %s", path), nil
	}

	plan := &Plan{}
	if add := strutil.Difference(a.Hosts(), known); len(add) > 0 {
		plan.Actions = append(plan.Actions, &Action{
			Kind:    RunCommand,
			Command: authCmd(add),
			Msg:     "The following members were authenticated " + strings.Join(add, " "),
			Failure: authFailure,
		})
	}
	if remove := strutil.Difference(known, a.Hosts()); len(remove) > 0 {
		plan.Actions = append(plan.Actions, &Action{
			Kind:       PruneTokens,
			TokensFile: path,
			Hosts:      remove,
			Msg:        "The following members were removed " + strings.Join(remove, " "),
			Failure:    fmt.Sprintf("Failed removing members from %s", path),
		})
	}
	return plan, nil
}

// Cluster plans the creation or stopping of the cluster.
func (r *Reconciler) Cluster(cl *desired.Cluster) (*Plan, error) {
	if err := cl.Validate(); err != nil {
		return nil, err
	}
	if corosyncConf := cl.CorosyncPath(); osutil.FileExists(corosyncConf) {
		name, err := corosync.ClusterNameFromFile(corosyncConf)
		if err != nil {
			var nf *corosync.NotFoundError
			if xerrors.As(err, &nf) {
				return nil, report.InvalidStatef("%v", err)
			}
			return nil, err
		}
		if name != cl.Name {
			return nil, report.InvalidStatef("The expected cluster name is %s but %s was found", cl.Name, name)
		}
	}

	status, err := r.obs.Cluster()
	if err != nil {
		return nil, r.observeErr(err)
	}

	switch cl.TargetState() {
	case desired.StateStopped:
		if !status.Started {
			return unchanged("Cluster is not running"), nil
		}
		return single(r.builder.ClusterStopAll(), "Successfully stopped cluster", "Failed stopping cluster"), nil
	default:
		if status.Configured {
			return unchanged("The cluster %s is already configured", cl.Name), nil
		}
		cmd := r.builder.ClusterSetup(&pcs.SetupOptions{
			Name:    cl.Name,
			Members: cl.Hosts(),
			Start:   true,
			Enable:  cl.Enabled,
			Local:   cl.Local,
			Force:   r.cfg.Force,
			Wait:    cl.Wait,
		})
		return single(cmd, fmt.Sprintf("The cluster %s was created successfully", cl.Name), "Failed creating cluster"), nil
	}
}

// Resource plans the changes to a resource.
func (r *Reconciler) Resource(res *desired.Resource) (*Plan, error) {
	if err := res.Validate(); err != nil {
		return nil, err
	}
	cur, err := r.obs.Resource(res.Name)
	if err != nil {
		return nil, r.observeErr(err)
	}
	target := res.TargetState()

	switch target {
	case desired.StatePresent:
		if cur != nil {
			return unchanged("The resource %s already exists in the cluster", res.Name), nil
		}
		return single(r.builder.ResourceCreate(res.Name, res.Type, res.Options, res.Group),
			fmt.Sprintf("Successfully created the resource %s", res.Name),
			fmt.Sprintf("Failed creating the resource %s", res.Name)), nil
	case desired.StateAbsent:
		if cur == nil {
			return unchanged("The resource %s does not exist in the cluster", res.Name), nil
		}
		return single(r.builder.ResourceDelete(res.Name),
			fmt.Sprintf("The resource %s was deleted from the cluster", res.Name),
			fmt.Sprintf("Failed deleting the resource %s", res.Name)), nil
	}

	if cur == nil {
		return nil, report.InvalidStatef("The resource %s does not exist in the cluster", res.Name)
	}
	switch target {
	case desired.StateEnabled:
		if !cur.Disabled() {
			return unchanged("The resource %s is already enabled", res.Name), nil
		}
		return single(r.builder.ResourceEnable(res.Name),
			fmt.Sprintf("The resource %s has been enabled", res.Name),
			fmt.Sprintf("Failed enabling the resource %s", res.Name)), nil
	case desired.StateDisabled:
		if cur.Disabled() {
			return unchanged("The resource %s is already disabled", res.Name), nil
		}
		return single(r.builder.ResourceDisable(res.Name),
			fmt.Sprintf("The resource %s has been disabled", res.Name),
			fmt.Sprintf("Failed disabling the resource %s", res.Name)), nil
	case desired.StateMove:
		if cur.StartedOn(res.Member) {
			return unchanged("The resource %s is already running on %s", res.Name, res.Member), nil
		}
		return single(r.builder.ResourceMove(res.Name, res.Member),
			fmt.Sprintf("The resource %s has been moved", res.Name),
			fmt.Sprintf("Failed moving the resource %s", res.Name)), nil
	case desired.StateDebugStart:
		if !cur.Stopped() {
			return unchanged("The resource %s is already started. Stop the resource first before starting it in debug mode", res.Name), nil
		}
		return single(r.builder.ResourceDebugStart(res.Name),
			fmt.Sprintf("The resource %s has been started in debug mode", res.Name),
			fmt.Sprintf("Failed starting the resource %s in debug mode", res.Name)), nil
	}
	return nil, fmt.Errorf("internal error: unhandled resource state %q", target)
}

func (r *Reconciler) constraintCreate(c *desired.Constraint) *pcs.Command {
	id := c.ID()
	switch {
	case c.Location != nil:
		return r.builder.ConstraintLocationAdd(id, c.Name, c.Location.Nodes)
	case c.Order != nil && c.Order.First != nil:
		return r.builder.ConstraintOrder(id, *c.Order.First, *c.Order.Then)
	case c.Order != nil:
		return r.builder.ConstraintOrderSet(id, c.Order.Set)
	case c.Colocation != nil && len(c.Colocation.With) == 1:
		return r.builder.ConstraintColocationAdd(id, c.Name, c.Colocation.With[0], c.Colocation.Score)
	case c.Colocation != nil:
		return r.builder.ConstraintColocationSet(id, append([]string{c.Name}, c.Colocation.With...))
	}
	logger.Panicf("constraint %s has no configuration", id)
	return nil
}

// Constraint plans the creation or removal of a constraint. Only the
// constraint id is compared, not its configuration.
func (r *Reconciler) Constraint(spec *desired.ConstraintSpec) (*Plan, error) {
	c, err := spec.Constraint()
	if err != nil {
		return nil, err
	}
	listing, err := r.obs.Constraints()
	if err != nil {
		return nil, r.observeErr(err)
	}
	id := c.ID()
	exists := listing.Has(id)

	if c.State == desired.StateAbsent {
		if !exists {
			return unchanged("The constraint %s does not exist", id), nil
		}
		return single(r.builder.ConstraintRemove(id),
			fmt.Sprintf("The constraint %s was successfully deleted", id),
			fmt.Sprintf("Failed to delete the constraint %s", id)), nil
	}
	if exists {
		return unchanged("The constraint %s already exists", id), nil
	}
	return single(r.constraintCreate(c),
		fmt.Sprintf("The constraint %s was successfully created", id),
		fmt.Sprintf("Failed creating the constraint %s", id)), nil
}

// Property plans the change of a cluster property.
func (r *Reconciler) Property(p *desired.Property) (*Plan, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	switch p.TargetState() {
	case desired.StateAbsent:
		defined, err := r.obs.PropertyDefined(p.Name)
		if err != nil {
			return nil, r.observeErr(err)
		}
		if !defined {
			return unchanged("%s is not set in the cluster configuration", p.Name), nil
		}
		return single(r.builder.PropertyUnset(p.Name),
			fmt.Sprintf("%s has been unset in the cluster configuration", p.Name),
			fmt.Sprintf("Failed unsetting cluster property %s", p.Name)), nil
	}

	current, ok, err := r.obs.Property(p.Name, false)
	if err != nil {
		return nil, r.observeErr(err)
	}
	if p.TargetState() == desired.StatePresent {
		if ok && current == p.Value {
			return unchanged("%s is already set to %s", p.Name, p.Value), nil
		}
		return single(r.builder.PropertySet(p.Name, p.Value),
			fmt.Sprintf("%s has been set to %s", p.Name, p.Value),
			fmt.Sprintf("Failed setting cluster property %s", p.Name)), nil
	}

	dflt, ok, err := r.obs.Property(p.Name, true)
	if err != nil {
		return nil, r.observeErr(err)
	}
	if !ok {
		return nil, report.InvalidStatef("The property %s has no default value", p.Name)
	}
	if dflt == current {
		return unchanged("%s is already set to the default: %s", p.Name, dflt), nil
	}
	return single(r.builder.PropertySet(p.Name, ""),
		fmt.Sprintf("%s has been set to the default: %s", p.Name, dflt),
		fmt.Sprintf("Failed setting cluster property %s", p.Name)), nil
}

// Fence plans the creation or removal of a fence device.
func (r *Reconciler) Fence(f *desired.Fence) (*Plan, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	present := f.TargetState() == desired.StatePresent
	if present {
		ok, err := r.obs.FenceAgentExists(f.Agent)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, report.InvalidStatef("The configured fence agent does not exist: %s", f.Agent)
		}
	}
	configured, err := r.obs.FenceConfigured(f.Name)
	if err != nil {
		return nil, err
	}

	if !present {
		if !configured {
			return unchanged("The fence %s does not exist", f.Name), nil
		}
		return single(r.builder.StonithDelete(f.Name),
			fmt.Sprintf("The fence %s was successfully deleted", f.Name),
			fmt.Sprintf("Failed to delete the fence %s", f.Name)), nil
	}
	if configured {
		return unchanged("The fence %s already exists", f.Name), nil
	}
	return single(r.builder.StonithCreate(f.Name, f.Agent, f.Options),
		fmt.Sprintf("The fence %s was successfully created", f.Name),
		fmt.Sprintf("Failed creating the fence %s", f.Name)), nil
}
