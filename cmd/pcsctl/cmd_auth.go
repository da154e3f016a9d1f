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

	"github.com/jessevdk/go-flags"

	"github.com/snapcore/pcsctl/desired"
	"github.com/snapcore/pcsctl/reconcile"
)

var shortAuthHelp = "Authenticate cluster members with pcsd"
var longAuthHelp = `
The auth command makes sure that the pcsd tokens file holds tokens for
exactly the given members. Missing members are authenticated first, then
the tokens of members that were not given are removed.

With --state=absent the whole tokens file is removed.

If no password is given and standard input is a terminal, the password
is prompted for.
`

type cmdAuth struct {
	State      string `long:"state" value-name:"STATE"`
	TokensFile string `long:"pcsd-tokens-file" value-name:"PATH"`
	Username   string `long:"username"`
	Password   string `long:"password" env:"PCSCTL_PASSWORD"`
	Local      bool   `long:"local"`
	Positional struct {
		Members []string
	} `positional-args:"yes"`
}

func init() {
	addCommand("auth", shortAuthHelp, longAuthHelp, func() flags.Commander { return &cmdAuth{} }, map[string]string{
		"state":            "Either present (the default) or absent",
		"pcsd-tokens-file": "The pcsd tokens file, by default the one of the current user",
		"username":         "The user to authenticate as (hacluster by default)",
		"password":         "The password of the user",
		"local":            "Only authenticate the local node",
	}, []argDesc{{
		name: "<member>",
		desc: "A cluster member, as host or host:port",
	}})
}

func (x *cmdAuth) Execute(args []string) error {
	if len(args) > 0 {
		return ErrExtraArgs
	}
	members, err := desired.ParseMembers(x.Positional.Members)
	if err != nil {
		return err
	}
	auth := &desired.Authentication{
		Members:    members,
		State:      x.State,
		TokensFile: x.TokensFile,
		Username:   x.Username,
		Password:   x.Password,
		Local:      x.Local,
	}
	if auth.Password == "" && auth.TargetState() == desired.StatePresent && isStdinTTY() {
		password, err := promptPassword()
		if err != nil {
			return err
		}
		auth.Password = password
	}
	return convergeAndPrint(func(r *reconcile.Reconciler) (*reconcile.Plan, error) {
		return r.Authentication(auth)
	})
}

func promptPassword() (string, error) {
	fmt.Fprint(Stderr, "Password: ")
	password, err := ReadPassword(0)
	fmt.Fprint(Stderr, "\n")
	if err != nil {
		return "", fmt.Errorf("cannot read password: %v", err)
	}
	return string(password), nil
}
