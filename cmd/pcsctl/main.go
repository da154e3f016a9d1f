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
	"strings"
	"unicode"

	"github.com/jessevdk/go-flags"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/snapcore/pcsctl/logger"
	"github.com/snapcore/pcsctl/report"
)

// Standard streams, redirected for testing.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
	// ReadPassword reads a password from the given fd without echo.
	ReadPassword = terminal.ReadPassword
)

var isStdinTTY = func() bool {
	return terminal.IsTerminal(0)
}

type options struct {
	PcsUtil        string `long:"pcs-util" value-name:"PATH"`
	File           string `long:"file" value-name:"CIB-FILE"`
	RequestTimeout int    `long:"request-timeout" value-name:"SECONDS"`
	Force          bool   `long:"force"`
	NoForce        bool   `long:"no-force"`
	Debug          bool   `long:"debug"`
	NoDebug        bool   `long:"no-debug"`
	Check          bool   `long:"check"`
}

type argDesc struct {
	name string
	desc string
}

var optionsData options

// ErrExtraArgs is returned if extra arguments to a command are found
var ErrExtraArgs = fmt.Errorf("too many arguments for command")

// cmdInfo holds information needed to call parser.AddCommand(...).
type cmdInfo struct {
	name, shortHelp, longHelp string
	builder                   func() flags.Commander
	hidden                    bool
	optDescs                  map[string]string
	argDescs                  []argDesc
}

// commands holds information about all commands.
var commands []*cmdInfo

// addCommand replaces parser.addCommand() in a way that is compatible with
// re-constructing a pristine parser.
func addCommand(name, shortHelp, longHelp string, builder func() flags.Commander, optDescs map[string]string, argDescs []argDesc) *cmdInfo {
	info := &cmdInfo{
		name:      name,
		shortHelp: shortHelp,
		longHelp:  longHelp,
		builder:   builder,
		optDescs:  optDescs,
		argDescs:  argDescs,
	}
	commands = append(commands, info)
	return info
}

var globalOptDescs = map[string]string{
	"pcs-util":        "The pcs executable to run",
	"file":            "Act on the given CIB file instead of the live cluster",
	"request-timeout": "Seconds pcs waits for other nodes",
	"force":           "Pass --force to pcs and re-authenticate all members",
	"no-force":        "Do not force, even if the defaults file says so",
	"debug":           "Add the pcs command line and output to the result",
	"no-debug":        "Do not debug, even if the defaults file says so",
	"check":           "Report what would change without changing anything",
}

func lintDesc(cmdName, optName, desc, origDesc string) {
	if len(optName) == 0 {
		logger.Panicf("option on %q has no name", cmdName)
	}
	if len(origDesc) != 0 {
		logger.Panicf("description of %s's %q of %q set from tag", cmdName, optName, origDesc)
	}
	if len(desc) > 0 {
		if !unicode.IsUpper(([]rune)(desc)[0]) {
			logger.Panicf("description of %s's %q not uppercase: %q", cmdName, optName, desc)
		}
	}
}

func lintArg(cmdName, optName, desc, origDesc string) {
	lintDesc(cmdName, optName, desc, origDesc)
	if optName[0] != '<' || optName[len(optName)-1] != '>' {
		logger.Panicf("argument %q's %q should have <>s", cmdName, optName)
	}
}

// Parser creates and populates a fresh parser.
// Since commands have local state a fresh parser is required to isolate tests
// from each other.
func Parser() *flags.Parser {
	optionsData = options{}
	activeConfig = nil

	parser := flags.NewParser(&optionsData, flags.HelpFlag|flags.PassDoubleDash)
	parser.ShortDescription = "Converge a Pacemaker cluster to a desired state"
	parser.LongDescription = `
pcsctl compares the desired state of cluster entities with what pcs
reports and runs the pcs commands needed to converge. Running it again
with the same arguments changes nothing.

The result is printed as JSON.
`
	for name, desc := range globalOptDescs {
		opt := parser.FindOptionByLongName(name)
		if opt == nil {
			logger.Panicf("no global option %q", name)
		}
		opt.Description = desc
	}

	for _, c := range commands {
		obj := c.builder()

		cmd, err := parser.AddCommand(c.name, c.shortHelp, strings.TrimSpace(c.longHelp), obj)
		if err != nil {
			logger.Panicf("cannot add command %q: %v", c.name, err)
		}
		cmd.Hidden = c.hidden

		opts := cmd.Options()
		if c.optDescs != nil && len(opts) != len(c.optDescs) {
			logger.Panicf("wrong number of option descriptions for %s: expected %d, got %d", c.name, len(opts), len(c.optDescs))
		}
		for _, opt := range opts {
			name := opt.LongName
			if name == "" {
				name = string(opt.ShortName)
			}
			desc, ok := c.optDescs[name]
			if !(c.optDescs == nil || ok) {
				logger.Panicf("%s missing description for %s", c.name, name)
			}
			lintDesc(c.name, name, desc, opt.Description)
			if desc != "" {
				opt.Description = desc
			}
		}

		args := cmd.Args()
		if c.argDescs != nil && len(args) != len(c.argDescs) {
			logger.Panicf("wrong number of argument descriptions for %s: expected %d, got %d", c.name, len(args), len(c.argDescs))
		}
		for i, arg := range args {
			name, desc := arg.Name, ""
			if c.argDescs != nil {
				name = c.argDescs[i].name
				desc = c.argDescs[i].desc
			}
			lintArg(c.name, name, desc, arg.Description)
			arg.Name = name
			arg.Description = desc
		}
	}
	return parser
}

func init() {
	err := logger.SimpleSetup()
	if err != nil {
		fmt.Fprintf(Stderr, "WARNING: failed to activate logging: %v\n", err)
	}
}

func main() {
	os.Exit(runMain(os.Args[1:]))
}

// runMain runs pcsctl with the given arguments and returns its exit
// status. Failures, including panics, are printed as JSON.
func runMain(args []string) (status int) {
	defer func() {
		if v := recover(); v != nil {
			status = printFailure(report.FromPanic(v, debugging()))
		}
	}()

	if err := run(args); err != nil {
		return printFailure(report.Classify(err, debugging()))
	}
	return 0
}

func printFailure(f *report.Failure) int {
	if err := printJSON(f); err != nil {
		fmt.Fprintf(Stderr, "error: %v\n", f.Msg)
	}
	return 1
}

func firstNonOption(args []string) string {
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			return arg
		}
	}
	return ""
}

func run(args []string) error {
	parser := Parser()
	_, err := parser.ParseArgs(args)
	if err != nil {
		if e, ok := err.(*flags.Error); ok {
			if e.Type == flags.ErrHelp || e.Type == flags.ErrCommandRequired {
				parser.WriteHelp(Stdout)
				return nil
			}
			if e.Type == flags.ErrUnknownCommand {
				return report.Preconditionf(`unknown command %q, see "pcsctl --help"`, firstNonOption(args))
			}
			return report.Preconditionf("%v", e.Message)
		}
	}

	return err
}
