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
	"github.com/snapcore/pcsctl/pcs"
)

var RunMain = runMain

func MockNewRunner(f func() pcs.Runner) (restore func()) {
	old := newRunner
	newRunner = f
	return func() {
		newRunner = old
	}
}

func MockIsStdinTTY(tty bool) (restore func()) {
	old := isStdinTTY
	isStdinTTY = func() bool { return tty }
	return func() {
		isStdinTTY = old
	}
}

func MockJournalSetup(f func(identifier string) error) (restore func()) {
	old := journalSetup
	journalSetup = f
	return func() {
		journalSetup = old
	}
}
