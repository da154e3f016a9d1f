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

package main_test

import (
	"os"
	"path/filepath"

	. "gopkg.in/check.v1"

	pcsctl "github.com/snapcore/pcsctl/cmd/pcsctl"
	"github.com/snapcore/pcsctl/pcs"
	"github.com/snapcore/pcsctl/pcs/pcstest"
)

func (s *pcsctlSuite) writeDocument(c *C, content string) string {
	fn := filepath.Join(c.MkDir(), "desired.yaml")
	c.Assert(os.WriteFile(fn, []byte(content), 0644), IsNil)
	return fn
}

func (s *pcsctlSuite) mockRunner() *pcstest.Runner {
	runner := pcstest.NewRunner()
	s.restore = append(s.restore, pcsctl.MockNewRunner(func() pcs.Runner { return runner }))
	return runner
}

func (s *pcsctlSuite) TestApply(c *C) {
	runner := s.mockRunner()
	runner.On("property list --all", pcstest.Response{Stdout: "Cluster Properties:\n stonith-enabled: true\n"})
	runner.On("resource show", pcstest.Response{Stdout: " vip\t(ocf::heartbeat:IPaddr2):\tStarted node1\n"})

	fn := s.writeDocument(c, `
tasks:
  - property:
      name: stonith-enabled
      value: "false"
  - resource:
      name: vip
      type: ocf:heartbeat:IPaddr2
      options:
        ip: 10.0.0.1
  - constraint:
      name: vip
      type: location
      prefers:
        - node1: 50
        - node2: 100
  - resource:
      name: web
      type: ocf:heartbeat:apache
      group: webgroup
      options:
        configfile: /etc/apache2/apache2.conf
        statusurl: http://localhost/server-status
`)
	status, res := s.run(c, "apply", "-f", fn)
	c.Assert(status, Equals, 0)
	c.Check(res, DeepEquals, map[string]interface{}{
		"changed": true,
		"msg": "stonith-enabled has been set to false, " +
			"The resource vip already exists in the cluster, " +
			"The constraint vip_location was successfully created, " +
			"Successfully created the resource web",
	})
	c.Check(runner.CallArgs(), DeepEquals, []string{
		"property list --all",
		"property set stonith-enabled=false",
		"resource show",
		"constraint show --full",
		"constraint location add vip_location vip node1 50 node2 100",
		"resource show",
		"resource create web ocf:heartbeat:apache configfile=/etc/apache2/apache2.conf statusurl=http://localhost/server-status --group webgroup",
	})
}

func (s *pcsctlSuite) TestApplyStopsAtFirstFailure(c *C) {
	runner := s.mockRunner()
	runner.On("property set maintenance-mode=true", pcstest.Response{ExitCode: 2})

	fn := s.writeDocument(c, `
tasks:
  - property: {name: maintenance-mode, value: "true"}
  - fence: {name: f1, state: absent}
`)
	status, res := s.run(c, "apply", "--filename", fn)
	c.Check(status, Equals, 1)
	c.Check(res, DeepEquals, map[string]interface{}{
		"failed": true,
		"msg":    "task 1 (property): Failed setting cluster property maintenance-mode rc = 2",
	})
	c.Check(runner.CallArgs(), DeepEquals, []string{
		"property list --all",
		"property set maintenance-mode=true",
	})
}

func (s *pcsctlSuite) TestApplyValidatesBeforeRunning(c *C) {
	runner := s.mockRunner()

	for _, t := range []struct {
		doc string
		msg string
	}{
		{"tasks:\n  - {}\n", `invalid task 1 in .*: task has none of auth, cluster, resource, constraint, property and fence`},
		{"tasks:\n  - property: {name: a, value: b}\n    fence: {name: f}\n", `invalid task 1 in .*: task has more than one of \[property fence\]`},
		{"tasks:\n  - propertee: {name: a}\n", `cannot read desired state from .*: yaml: unmarshal errors:\n.*field propertee not found.*`},
		{"tasks:\n  - resource: {name: vip, options: [a, b]}\n", `cannot read desired state from .*: line 2: options must be a mapping`},
	} {
		status, res := s.run(c, "apply", "-f", s.writeDocument(c, t.doc))
		c.Check(status, Equals, 1)
		c.Check(res["msg"], Matches, t.msg)
	}
	c.Check(runner.Calls(), HasLen, 0)
}

func (s *pcsctlSuite) TestApplyPreconditionNamesTask(c *C) {
	runner := s.mockRunner()
	fn := s.writeDocument(c, `
tasks:
  - property: {name: a, value: b}
  - cluster: {name: web}
`)
	status, res := s.run(c, "apply", "-f", fn)
	c.Check(status, Equals, 1)
	c.Check(res["msg"], Equals, "task 2 (cluster): members parameter is required when state is started")
	c.Check(runner.Calls(), HasLen, 0)
}

func (s *pcsctlSuite) TestApplyValidatesAllTasksFirst(c *C) {
	runner := s.mockRunner()
	for _, t := range []struct {
		doc string
		msg string
	}{
		{"tasks:\n  - property: {name: a, value: b}\n  - resource: {name: vip, type: ocf:heartbeat:IPaddr2}\n",
			"task 2 (resource): type and options are required when state is present"},
		{"tasks:\n  - property: {name: a, value: b}\n  - constraint: {name: vip, type: location}\n",
			"task 2 (constraint): exactly one of prefers or avoids must be given for a location constraint"},
		{"tasks:\n  - property: {name: a, value: b}\n  - fence: {name: f1}\n",
			"task 2 (fence): an agent is required when state is present"},
		{"tasks:\n  - auth: {members: [n1, n2]}\n  - property: {name: a, state: gone}\n",
			`task 2 (property): invalid property state "gone", expected one of: present, absent, default`},
	} {
		status, res := s.run(c, "apply", "-f", s.writeDocument(c, t.doc))
		c.Check(status, Equals, 1)
		c.Check(res["msg"], Equals, t.msg)
	}
	c.Check(runner.Calls(), HasLen, 0)
}

func (s *pcsctlSuite) TestApplyEmpty(c *C) {
	runner := s.mockRunner()
	status, res := s.run(c, "apply", "-f", s.writeDocument(c, ""))
	c.Assert(status, Equals, 0)
	c.Check(res, DeepEquals, map[string]interface{}{
		"changed": false,
		"msg":     "No tasks to apply",
	})
	c.Check(runner.Calls(), HasLen, 0)
}

func (s *pcsctlSuite) TestApplyMissingFile(c *C) {
	status, res := s.run(c, "apply", "-f", filepath.Join(c.MkDir(), "missing.yaml"))
	c.Check(status, Equals, 1)
	c.Check(res["msg"], Matches, "cannot open desired state: .*no such file or directory")
}
