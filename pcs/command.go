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
	"strings"
)

// Command is a single invocation of the pcs utility, kept as an argument
// vector so that no shell is ever involved in running it.
type Command struct {
	// Path is the pcs executable, either a name looked up in PATH or an
	// absolute path.
	Path string
	Args []string

	// secret holds the indexes into Args of values that must not be
	// shown, such as passwords.
	secret map[int]bool
}

func (c *Command) add(args ...string) *Command {
	c.Args = append(c.Args, args...)
	return c
}

func (c *Command) addSecret(arg string) *Command {
	if c.secret == nil {
		c.secret = make(map[int]bool)
	}
	c.secret[len(c.Args)] = true
	c.Args = append(c.Args, arg)
	return c
}

// Argv returns the full argument vector, starting with the executable.
func (c *Command) Argv() []string {
	return append([]string{c.Path}, c.Args...)
}

// String returns the command line quoted for display, with secret
// arguments masked.
func (c *Command) String() string {
	return c.format(true)
}

// Reveal returns the command line quoted for display including secret
// arguments. Only use it when diagnostics were explicitly requested.
func (c *Command) Reveal() string {
	return c.format(false)
}

func (c *Command) format(mask bool) string {
	words := make([]string, 0, len(c.Args)+1)
	words = append(words, quote(c.Path))
	for i, arg := range c.Args {
		if mask && c.secret[i] {
			words = append(words, "*****")
			continue
		}
		words = append(words, quote(arg))
	}
	return strings.Join(words, " ")
}

const safeChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_=.,:/@%+"

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.Trim(s, safeChars) == "" {
		return s
	}
	return "'" + strings.Replace(s, "'", `'"'"'`, -1) + "'"
}
