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

package osutil_test

import (
	"path/filepath"

	. "gopkg.in/check.v1"

	"github.com/snapcore/pcsctl/osutil"
)

type flockSuite struct{}

var _ = Suite(&flockSuite{})

func (s *flockSuite) TestTryLockContention(c *C) {
	p := filepath.Join(c.MkDir(), "tokens.lock")

	l1, err := osutil.NewFileLock(p)
	c.Assert(err, IsNil)
	defer l1.Close()
	c.Check(l1.Path(), Equals, p)

	l2, err := osutil.NewFileLock(p)
	c.Assert(err, IsNil)
	defer l2.Close()

	c.Assert(l1.TryLock(), IsNil)
	c.Check(l2.TryLock(), Equals, osutil.ErrAlreadyLocked)

	c.Assert(l1.Unlock(), IsNil)
	c.Check(l2.TryLock(), IsNil)
	c.Check(l2.Unlock(), IsNil)
}

func (s *flockSuite) TestLockBlocksUntilFree(c *C) {
	p := filepath.Join(c.MkDir(), "tokens.lock")

	l, err := osutil.NewFileLock(p)
	c.Assert(err, IsNil)
	defer l.Close()

	c.Assert(l.Lock(), IsNil)
	c.Assert(l.Unlock(), IsNil)
}
