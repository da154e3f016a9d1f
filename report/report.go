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

// Package report holds the outcome of a reconciliation as shown to the
// user.
package report

import (
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strings"

	"golang.org/x/xerrors"
)

// Result is the outcome of a successful run.
type Result struct {
	Changed bool   `json:"changed"`
	Msg     string `json:"msg"`

	// diagnostics, only set when requested
	Cmd string `json:"cmd,omitempty"`
	Out string `json:"out,omitempty"`
	Err string `json:"err,omitempty"`
	Rc  *int   `json:"rc,omitempty"`
}

// AddMsg appends msg to the result message, separated by ", ".
func (r *Result) AddMsg(msg string) {
	if msg == "" {
		return
	}
	if r.Msg != "" {
		r.Msg += ", "
	}
	r.Msg += msg
}

// SetDiagnostics records the last command run and its output.
func (r *Result) SetDiagnostics(cmd, out, stderr string, rc int) {
	r.Cmd = cmd
	r.Out = out
	r.Err = stderr
	r.Rc = &rc
}

// JSON returns the result encoded for output.
func (r *Result) JSON() ([]byte, error) {
	return json.Marshal(r)
}

// Kind classifies failures.
type Kind string

const (
	// KindPrecondition is for invalid or incomplete input, detected
	// before anything is done.
	KindPrecondition Kind = "precondition"
	// KindInvalidState is for a cluster state that cannot be reconciled
	// with the desired one.
	KindInvalidState Kind = "invalid-state"
	// KindExecution is for a pcs command or file operation that failed.
	KindExecution Kind = "execution"
	// KindInternal is for anything unexpected.
	KindInternal Kind = "internal"
)

// Failure is the outcome of a failed run.
type Failure struct {
	Kind Kind
	Msg  string

	Cmd string
	Out string
	Err string
	Rc  *int
}

func (f *Failure) Error() string {
	return f.Msg
}

// Preconditionf returns a precondition failure.
func Preconditionf(format string, v ...interface{}) *Failure {
	return &Failure{Kind: KindPrecondition, Msg: fmt.Sprintf(format, v...)}
}

// InvalidStatef returns an invalid-state failure.
func InvalidStatef(format string, v ...interface{}) *Failure {
	return &Failure{Kind: KindInvalidState, Msg: fmt.Sprintf(format, v...)}
}

// Executionf returns an execution failure.
func Executionf(format string, v ...interface{}) *Failure {
	return &Failure{Kind: KindExecution, Msg: fmt.Sprintf(format, v...)}
}

type failureJSON struct {
	Failed bool   `json:"failed"`
	Msg    string `json:"msg"`
	Cmd    string `json:"cmd,omitempty"`
	Out    string `json:"out,omitempty"`
	Err    string `json:"err,omitempty"`
	Rc     *int   `json:"rc,omitempty"`
}

// JSON returns the failure encoded for output.
func (f *Failure) JSON() ([]byte, error) {
	return json.Marshal(&failureJSON{
		Failed: true,
		Msg:    f.Msg,
		Cmd:    f.Cmd,
		Out:    f.Out,
		Err:    f.Err,
		Rc:     f.Rc,
	})
}

// Classify turns err into a Failure. Errors that are not already
// failures are internal; with debug their full detail is kept.
func Classify(err error, debug bool) *Failure {
	var f *Failure
	if xerrors.As(err, &f) {
		return f
	}
	msg := fmt.Sprintf("Error: %v", err)
	if debug {
		msg = fmt.Sprintf("Error: %+v", err)
	}
	return &Failure{Kind: KindInternal, Msg: msg}
}

// FromPanic turns a recovered panic value into an internal failure,
// with the stack trace when debug is set.
func FromPanic(v interface{}, debugging bool) *Failure {
	msg := fmt.Sprintf("Error: %v", v)
	if debugging {
		msg = strings.TrimRight(msg+"\n"+string(debug.Stack()), "\n")
	}
	return &Failure{Kind: KindInternal, Msg: msg}
}
