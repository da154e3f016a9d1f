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

package strutil

import (
	"sort"
)

// Difference returns, sorted and without duplicates, the elements of a
// that are not in b. Both slices are treated as sets and not mutated.
func Difference(a, b []string) []string {
	exclude := make(map[string]bool, len(b))
	for _, item := range b {
		exclude[item] = true
	}
	seen := make(map[string]bool, len(a))
	var result []string
	for _, item := range a {
		if exclude[item] || seen[item] {
			continue
		}
		seen[item] = true
		result = append(result, item)
	}
	sort.Strings(result)
	return result
}

// SameSet reports whether a and b hold the same elements, ignoring order
// and duplicates.
func SameSet(a, b []string) bool {
	return len(Difference(a, b)) == 0 && len(Difference(b, a)) == 0
}
