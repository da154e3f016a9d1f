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

package logger

import (
	"errors"
	"sync"

	"github.com/coreos/go-systemd/journal"

	"github.com/snapcore/pcsctl/osutil"
)

// ErrNoJournal is returned by JournalSetup when the journal socket is
// not available.
var ErrNoJournal = errors.New("systemd journal is not available")

var (
	journalEnabled = journal.Enabled
	journalSend    = journal.Send
)

// JournalLog sends messages to the systemd journal, tagged with an
// identifier.
type JournalLog struct {
	identifier string

	mu    sync.Mutex
	debug bool
}

// NewJournal returns a Logger writing to the journal.
func NewJournal(identifier string) (Logger, error) {
	if !journalEnabled() {
		return nil, ErrNoJournal
	}
	return &JournalLog{identifier: identifier}, nil
}

func (l *JournalLog) vars() map[string]string {
	return map[string]string{"SYSLOG_IDENTIFIER": l.identifier}
}

func (l *JournalLog) setDebug(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = enabled
}

func (l *JournalLog) debugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug || osutil.GetenvBool("PCSCTL_DEBUG")
}

// Notice sends msg with notice priority.
func (l *JournalLog) Notice(msg string) {
	journalSend(msg, journal.PriNotice, l.vars())
}

// Debug sends msg with debug priority, if debugging.
func (l *JournalLog) Debug(msg string) {
	if l.debugEnabled() {
		journalSend(msg, journal.PriDebug, l.vars())
	}
}

// JournalSetup makes the journal the global logger.
func JournalSetup(identifier string) error {
	l, err := NewJournal(identifier)
	if err != nil {
		return err
	}
	SetLogger(l)
	return nil
}
