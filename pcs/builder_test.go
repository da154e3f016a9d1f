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

package pcs_test

import (
	. "gopkg.in/check.v1"

	"github.com/snapcore/pcsctl/pcs"
	"github.com/snapcore/pcsctl/testutil"
)

type builderSuite struct {
	b *pcs.Builder
}

var _ = Suite(&builderSuite{})

func (s *builderSuite) SetUpTest(c *C) {
	s.b = pcs.NewBuilder("", "", 0)
}

func (s *builderSuite) TestClusterAuthLocalForce(c *C) {
	cmd := s.b.ClusterAuth(&pcs.AuthOptions{
		Members:  []string{"node1", "node2", "node3"},
		Username: "hacluster",
		Password: "pass",
		Local:    true,
		Force:    true,
	})
	c.Check(cmd.Argv(), DeepEquals, []string{
		"pcs", "cluster", "auth", "node1", "node2", "node3",
		"-u", "hacluster", "-p", "pass", "--local", "--force",
	})
	for _, arg := range cmd.Args {
		c.Check(arg, Not(Matches), ".*:.*")
	}
}

func (s *builderSuite) TestClusterAuthPort(c *C) {
	cmd := s.b.ClusterAuth(&pcs.AuthOptions{
		Members:  []string{"node1", "node2"},
		Port:     1234,
		Username: "hacluster",
		Password: "pass",
	})
	c.Check(cmd.Args[2], Equals, "node1:1234")
	c.Check(cmd.Args[3], Equals, "node2:1234")
	c.Check(cmd.Args, Not(testutil.Contains), "--local")
	c.Check(cmd.Args, Not(testutil.Contains), "--force")

	cmd = s.b.ClusterAuth(&pcs.AuthOptions{
		Members:  []string{"fe80::1", "node2"},
		Port:     2224,
		Username: "hacluster",
		Password: "pass",
	})
	c.Check(cmd.Args[2], Equals, "[fe80::1]:2224")
	c.Check(cmd.Args[3], Equals, "node2:2224")
}

func (s *builderSuite) TestClusterAuthRequestTimeout(c *C) {
	b := pcs.NewBuilder("", "", 30)
	cmd := b.ClusterAuth(&pcs.AuthOptions{Members: []string{"n1"}, Username: "u", Password: "p"})
	c.Check(cmd.Args[len(cmd.Args)-1], Equals, "--request-timeout=30")

	c.Check(b.ClusterStopAll().Argv(), DeepEquals, []string{"pcs", "cluster", "stop", "--all", "--request-timeout=30"})
	// not a multi-node command
	c.Check(b.Status().Argv(), DeepEquals, []string{"pcs", "status"})
}

func (s *builderSuite) TestClusterSetup(c *C) {
	cmd := s.b.ClusterSetup(&pcs.SetupOptions{
		Name:    "debian",
		Members: []string{"node1", "node2", "node3"},
		Start:   true,
		Enable:  true,
		Local:   true,
		Force:   true,
	})
	c.Check(cmd.Argv(), DeepEquals, []string{
		"pcs", "cluster", "setup", "--start", "--enable", "--local", "--force",
		"--name", "debian", "node1", "node2", "node3",
	})
}

func (s *builderSuite) TestClusterSetupWait(c *C) {
	cmd := s.b.ClusterSetup(&pcs.SetupOptions{Name: "c", Members: []string{"n1"}, Start: true, Wait: 60})
	c.Check(cmd.Args, testutil.Contains, "--wait=60")
	c.Check(cmd.Args, Not(testutil.Contains), "--enable")
}

func (s *builderSuite) TestCIBFile(c *C) {
	b := pcs.NewBuilder("pcs", "/tmp/cib.xml", 0)
	c.Check(b.ResourceDelete("vip").Argv(), DeepEquals, []string{"pcs", "-f", "/tmp/cib.xml", "resource", "delete", "vip"})
	c.Check(b.PropertyUnset("maintenance-mode").Argv(), DeepEquals, []string{"pcs", "-f", "/tmp/cib.xml", "property", "unset", "maintenance-mode"})
	// cluster level commands never use the file
	c.Check(b.ClusterStatus().Argv(), DeepEquals, []string{"pcs", "cluster", "status"})
	c.Check(b.StonithDescribe("fence_xvm").Argv(), DeepEquals, []string{"pcs", "stonith", "describe", "fence_xvm"})
}

func (s *builderSuite) TestResourceCommands(c *C) {
	c.Check(s.b.ResourceCreate("vip", "ocf:heartbeat:IPaddr2", []pcs.Option{{Name: "ip", Value: "10.0.0.1"}}, "web").Args,
		DeepEquals, []string{"resource", "create", "vip", "ocf:heartbeat:IPaddr2", "ip=10.0.0.1", "--group", "web"})
	c.Check(s.b.ResourceEnable("vip").Args, DeepEquals, []string{"resource", "enable", "vip"})
	c.Check(s.b.ResourceDisable("vip").Args, DeepEquals, []string{"resource", "disable", "vip"})
	c.Check(s.b.ResourceMove("vip", "node2").Args, DeepEquals, []string{"resource", "move", "vip", "node2"})
	c.Check(s.b.ResourceDebugStart("vip").Args, DeepEquals, []string{"resource", "debug-start", "vip"})
	c.Check(s.b.ResourceShow().Args, DeepEquals, []string{"resource", "show"})
	c.Check(s.b.ResourceStatus().Args, DeepEquals, []string{"resource", "status"})
}

func (s *builderSuite) TestConstraintCommands(c *C) {
	c.Check(s.b.ConstraintLocationAdd("vip_location", "vip", []pcs.NodeScore{{Node: "n1", Score: "100"}, {Node: "n2", Score: "-INFINITY"}}).Args,
		DeepEquals, []string{"constraint", "location", "add", "vip_location", "vip", "n1", "100", "n2", "-INFINITY"})
	c.Check(s.b.ConstraintOrder("o_order", pcs.OrderStep{Action: "start", Resource: "a"}, pcs.OrderStep{Action: "promote", Resource: "b"}).Args,
		DeepEquals, []string{"constraint", "order", "start", "a", "then", "promote", "b", "id=o_order"})
	c.Check(s.b.ConstraintOrderSet("o_order", []string{"a", "b", "c"}).Args,
		DeepEquals, []string{"constraint", "order", "set", "a", "b", "c", "id=o_order"})
	c.Check(s.b.ConstraintColocationAdd("web_colocation", "web", "vip", "INFINITY").Args,
		DeepEquals, []string{"constraint", "colocation", "add", "web", "with", "vip", "INFINITY", "id=web_colocation"})
	c.Check(s.b.ConstraintColocationAdd("web_colocation", "web", "vip", "").Args,
		DeepEquals, []string{"constraint", "colocation", "add", "web", "with", "vip", "id=web_colocation"})
	c.Check(s.b.ConstraintColocationSet("web_colocation", []string{"web", "vip", "db"}).Args,
		DeepEquals, []string{"constraint", "colocation", "set", "web", "vip", "db", "id=web_colocation"})
	c.Check(s.b.ConstraintRemove("web_colocation").Args, DeepEquals, []string{"constraint", "remove", "web_colocation"})
	c.Check(s.b.ConstraintShowFull().Args, DeepEquals, []string{"constraint", "show", "--full"})
}

func (s *builderSuite) TestStonithAndPropertyCommands(c *C) {
	c.Check(s.b.StonithCreate("f1", "fence_xvm", []pcs.Option{{Name: "pcmk_host_list", Value: "n1"}}).Args,
		DeepEquals, []string{"stonith", "create", "f1", "fence_xvm", "pcmk_host_list=n1"})
	c.Check(s.b.StonithShow("f1").Args, DeepEquals, []string{"stonith", "show", "f1"})
	c.Check(s.b.StonithDelete("f1").Args, DeepEquals, []string{"stonith", "delete", "f1"})
	c.Check(s.b.PropertyList(false).Args, DeepEquals, []string{"property", "list", "--all"})
	c.Check(s.b.PropertyList(true).Args, DeepEquals, []string{"property", "list", "--defaults"})
	c.Check(s.b.PropertyShow("x").Args, DeepEquals, []string{"property", "show", "x"})
	c.Check(s.b.PropertySet("x", "1").Args, DeepEquals, []string{"property", "set", "x=1"})
}
