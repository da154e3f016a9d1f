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
	"os/exec"
	"path/filepath"

	. "gopkg.in/check.v1"

	"github.com/snapcore/pcsctl/logger"
	"github.com/snapcore/pcsctl/pcs"
	"github.com/snapcore/pcsctl/testutil"
)

type runnerSuite struct{}

var _ = Suite(&runnerSuite{})

func (s *runnerSuite) TestRunSuccess(c *C) {
	mockPcs := testutil.MockCommand(c, "pcs", `echo "all good"; echo "warning" >&2`)
	defer mockPcs.Restore()

	out, err := pcs.NewRunner().Run(pcs.NewBuilder("", "", 0).Status())
	c.Assert(err, IsNil)
	c.Check(out.ExitCode, Equals, 0)
	c.Check(out.Success(), Equals, true)
	c.Check(out.Stdout, Equals, "all good\n")
	c.Check(out.Stderr, Equals, "warning\n")
	c.Check(mockPcs.Calls(), DeepEquals, [][]string{{"pcs", "status"}})
}

func (s *runnerSuite) TestRunNonZeroIsNotAnError(c *C) {
	mockPcs := testutil.MockCommand(c, "pcs", `echo "Error: cluster is not currently running on this node" >&2; exit 1`)
	defer mockPcs.Restore()

	out, err := pcs.NewRunner().Run(pcs.NewBuilder("", "", 0).ClusterStatus())
	c.Assert(err, IsNil)
	c.Check(out.ExitCode, Equals, 1)
	c.Check(out.Success(), Equals, false)
	c.Check(out.Stderr, Matches, "Error: cluster is not currently running.*\n")
}

func (s *runnerSuite) TestRunMissingExecutable(c *C) {
	missing := filepath.Join(c.MkDir(), "pcs")
	out, err := pcs.NewRunner().Run(pcs.NewBuilder(missing, "", 0).Status())
	c.Check(out, IsNil)
	c.Check(err, ErrorMatches, `cannot run ".*/pcs": .*`)
}

func (s *runnerSuite) TestRunLogsMaskedCommand(c *C) {
	logbuf, restore := logger.MockLogger()
	defer restore()
	logger.SetDebug(true)

	var seen []string
	r := pcs.MockExecCommand(func(name string, args ...string) *exec.Cmd {
		seen = append([]string{name}, args...)
		return exec.Command("true")
	})
	defer r()

	cmd := pcs.NewBuilder("", "", 0).ClusterAuth(&pcs.AuthOptions{Members: []string{"n1"}, Username: "hacluster", Password: "topsecret"})
	_, err := pcs.NewRunner().Run(cmd)
	c.Assert(err, IsNil)
	c.Check(seen, DeepEquals, []string{"pcs", "cluster", "auth", "n1", "-u", "hacluster", "-p", "topsecret"})
	c.Check(logbuf.String(), testutil.Contains, "DEBUG: running pcs cluster auth n1 -u hacluster -p *****")
	c.Check(logbuf.String(), Not(testutil.Contains), "topsecret")
}

func (s *runnerSuite) TestError(c *C) {
	cmd := pcs.NewBuilder("", "", 0).ConstraintShowFull()
	err := &pcs.Error{Cmd: cmd, Output: &pcs.Output{ExitCode: 2, Stderr: "Error: boom\n"}}
	c.Check(err, ErrorMatches, `pcs constraint show --full failed with exit status 2: Error: boom`)

	err = &pcs.Error{Cmd: cmd, Output: &pcs.Output{ExitCode: 2}}
	c.Check(err, ErrorMatches, `pcs constraint show --full failed with exit status 2`)
}
