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

package pcs

import (
	"bytes"
	"fmt"
	"os/exec"

	"golang.org/x/xerrors"

	"github.com/snapcore/pcsctl/logger"
)

// Output is what a finished pcs command produced.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited with status 0.
func (o *Output) Success() bool {
	return o.ExitCode == 0
}

// A Runner runs pcs commands.
//
// A command that ran but exited non-zero is not an error: the exit code
// is reported in the Output. An error means the command could not be
// run at all.
type Runner interface {
	Run(cmd *Command) (*Output, error)
}

type execRunner struct{}

// NewRunner returns a Runner executing commands on the local host.
func NewRunner() Runner {
	return execRunner{}
}

var execCommand = exec.Command

func (execRunner) Run(cmd *Command) (*Output, error) {
	logger.Debugf("running %s", cmd)

	var stdout, stderr bytes.Buffer
	c := execCommand(cmd.Path, cmd.Args...)
	c.Stdout = &stdout
	c.Stderr = &stderr
	err := c.Run()

	out := &Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if !xerrors.As(err, &exitErr) {
			return nil, xerrors.Errorf("cannot run %q: %w", cmd.Path, err)
		}
		out.ExitCode = exitErr.ExitCode()
	}
	logger.Debugf("%s exited with status %d", cmd.Path, out.ExitCode)
	return out, nil
}

// Error is returned when a pcs command that is expected to succeed
// exits with a non-zero status.
type Error struct {
	Cmd    *Command
	Output *Output
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s failed with exit status %d", e.Cmd, e.Output.ExitCode)
	if stderr := bytes.TrimSpace([]byte(e.Output.Stderr)); len(stderr) > 0 {
		msg += ": " + string(stderr)
	}
	return msg
}
