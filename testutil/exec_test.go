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

package testutil

import (
	"os/exec"

	. "gopkg.in/check.v1"
)

type mockCommandSuite struct{}

var _ = Suite(&mockCommandSuite{})

func (s *mockCommandSuite) TestMockCommand(c *C) {
	mock := MockCommand(c, "cmd", "true")
	defer mock.Restore()
	err := exec.Command("cmd", "first-run", "--arg1", "arg2", "a space").Run()
	c.Assert(err, IsNil)
	err = exec.Command("cmd", "second-run", "--arg1", "arg2", "a %s").Run()
	c.Assert(err, IsNil)
	c.Assert(mock.Calls(), DeepEquals, [][]string{
		{"cmd", "first-run", "--arg1", "arg2", "a space"},
		{"cmd", "second-run", "--arg1", "arg2", "a %s"},
	})
}

func (s *mockCommandSuite) TestMockCommandExitCode(c *C) {
	mock := MockCommand(c, "failing", "echo oops >&2; exit 3")
	defer mock.Restore()

	err := exec.Command("failing").Run()
	c.Assert(err, NotNil)
	exitErr, ok := err.(*exec.ExitError)
	c.Assert(ok, Equals, true)
	c.Check(exitErr.ExitCode(), Equals, 3)
}

func (s *mockCommandSuite) TestMockCommandForgetCalls(c *C) {
	mock := MockCommand(c, "cmd", "")
	defer mock.Restore()

	c.Assert(exec.Command("cmd", "x").Run(), IsNil)
	c.Check(mock.Calls(), HasLen, 1)
	mock.ForgetCalls()
	c.Check(mock.Calls(), IsNil)
	mock.ForgetCalls()
}

func (s *mockCommandSuite) TestMockCommandAbsPath(c *C) {
	p := c.MkDir() + "/usr/sbin/pcs"
	mock := MockCommand(c, p, "")
	defer mock.Restore()

	c.Check(mock.Exe(), Equals, p)
	c.Assert(exec.Command(p, "status").Run(), IsNil)
	c.Check(mock.Calls(), DeepEquals, [][]string{{"pcs", "status"}})
}
