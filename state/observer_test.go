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

package state_test

import (
	"errors"

	. "gopkg.in/check.v1"

	"github.com/snapcore/pcsctl/logger"
	"github.com/snapcore/pcsctl/pcs"
	"github.com/snapcore/pcsctl/pcs/pcstest"
	"github.com/snapcore/pcsctl/state"
)

type observerSuite struct {
	runner *pcstest.Runner
	obs    *state.Observer
}

var _ = Suite(&observerSuite{})

func (s *observerSuite) SetUpTest(c *C) {
	s.runner = pcstest.NewRunner()
	s.obs = state.NewObserver(pcs.NewBuilder("", "", 0), s.runner)
}

func (s *observerSuite) TestResources(c *C) {
	s.runner.On("resource show", pcstest.Response{Stdout: resourceShowOutput})

	resources, err := s.obs.Resources()
	c.Assert(err, IsNil)
	c.Check(resources, HasLen, 3)
	c.Check(s.runner.CallArgs(), DeepEquals, []string{"resource show"})
}

func (s *observerSuite) TestResourcesFallback(c *C) {
	s.runner.On("resource show", pcstest.Response{
		ExitCode: 1,
		Stderr:   "Error: This command has been replaced with 'pcs resource status', 'pcs resource config'\n",
	})
	s.runner.On("resource status", pcstest.Response{Stdout: resourceStatusOutput})

	r, err := s.obs.Resource("vip")
	c.Assert(err, IsNil)
	c.Check(r, DeepEquals, &state.Resource{Name: "vip", Type: "(ocf::heartbeat:IPaddr2):", State: "Started node2"})
	c.Check(s.runner.CallArgs(), DeepEquals, []string{"resource show", "resource status"})
}

func (s *observerSuite) TestResourceMissing(c *C) {
	s.runner.On("resource show", pcstest.Response{Stdout: resourceShowOutput})
	r, err := s.obs.Resource("nope")
	c.Assert(err, IsNil)
	c.Check(r, IsNil)
}

func (s *observerSuite) TestResourcesFailure(c *C) {
	s.runner.On("resource show", pcstest.Response{ExitCode: 1, Stderr: "Error: unable to get cib\n"})
	_, err := s.obs.Resources()
	c.Check(err, ErrorMatches, "pcs resource show failed with exit status 1: Error: unable to get cib")
	var pcsErr *pcs.Error
	c.Check(err, FitsTypeOf, pcsErr)

	runner := pcstest.NewRunner().On("resource show", pcstest.Response{Err: errors.New("cannot run")})
	_, err = state.NewObserver(pcs.NewBuilder("", "", 0), runner).Resources()
	c.Check(err, ErrorMatches, "cannot run")
}

func (s *observerSuite) TestProperty(c *C) {
	logbuf, restore := logger.MockLogger()
	defer restore()
	logger.SetDebug(true)

	s.runner.On("property list --all", pcstest.Response{Stdout: propertyListOutput + " broken line\n"})
	s.runner.On("property list --defaults", pcstest.Response{Stdout: "Cluster Properties:\n stonith-enabled: true\n"})

	v, ok, err := s.obs.Property("stonith-enabled", false)
	c.Assert(err, IsNil)
	c.Check(ok, Equals, true)
	c.Check(v, Equals, "false")
	c.Check(logbuf.String(), Matches, `(?s).*DEBUG: ignoring cannot parse property line " broken line".*`)

	v, ok, err = s.obs.Property("stonith-enabled", true)
	c.Assert(err, IsNil)
	c.Check(ok, Equals, true)
	c.Check(v, Equals, "true")

	_, ok, err = s.obs.Property("unknown", true)
	c.Assert(err, IsNil)
	c.Check(ok, Equals, false)
}

func (s *observerSuite) TestPropertyDefined(c *C) {
	s.runner.On("property show maintenance-mode", pcstest.Response{Stdout: "Cluster Properties:\n maintenance-mode: true\n"})
	s.runner.On("property show stonith-enabled", pcstest.Response{Stdout: "Cluster Properties:\n"})
	s.runner.On("property show broken", pcstest.Response{ExitCode: 1})

	defined, err := s.obs.PropertyDefined("maintenance-mode")
	c.Assert(err, IsNil)
	c.Check(defined, Equals, true)

	defined, err = s.obs.PropertyDefined("stonith-enabled")
	c.Assert(err, IsNil)
	c.Check(defined, Equals, false)

	_, err = s.obs.PropertyDefined("broken")
	c.Check(err, ErrorMatches, "pcs property show broken failed with exit status 1")
}

func (s *observerSuite) TestConstraints(c *C) {
	s.runner.On("constraint show --full", pcstest.Response{Stdout: "Location Constraints:\n  (id:vip_location)\n"})
	l, err := s.obs.Constraints()
	c.Assert(err, IsNil)
	c.Check(l.Has("vip_location"), Equals, true)
}

func (s *observerSuite) TestFence(c *C) {
	s.runner.On("stonith describe fence_xvm", pcstest.Response{Stdout: "fence_xvm - Fence agent for virtual machines"})
	s.runner.On("stonith describe fence_nope", pcstest.Response{ExitCode: 1, Stderr: "Error: Agent 'fence_nope' is not installed"})
	s.runner.On("stonith show f1", pcstest.Response{ExitCode: 1})

	ok, err := s.obs.FenceAgentExists("fence_xvm")
	c.Assert(err, IsNil)
	c.Check(ok, Equals, true)
	ok, err = s.obs.FenceAgentExists("fence_nope")
	c.Assert(err, IsNil)
	c.Check(ok, Equals, false)

	ok, err = s.obs.FenceConfigured("f1")
	c.Assert(err, IsNil)
	c.Check(ok, Equals, false)
	ok, err = s.obs.FenceConfigured("f2")
	c.Assert(err, IsNil)
	c.Check(ok, Equals, true)
}

func (s *observerSuite) TestCluster(c *C) {
	s.runner.On("status", pcstest.Response{Stdout: pcsStatusOutput})
	st, err := s.obs.Cluster()
	c.Assert(err, IsNil)
	c.Check(st, DeepEquals, &state.ClusterStatus{Started: true, Enabled: true, Configured: true})
}

func (s *observerSuite) TestClusterNotRunning(c *C) {
	s.runner.On("status", pcstest.Response{ExitCode: 1, Stderr: "Error: cluster is not currently running on this node"})
	s.runner.On("cluster status", pcstest.Response{ExitCode: 1})
	st, err := s.obs.Cluster()
	c.Assert(err, IsNil)
	c.Check(st, DeepEquals, &state.ClusterStatus{})
}
