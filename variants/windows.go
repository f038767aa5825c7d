// msavariants: a parallel variant caller for multiple sequence alignments.
// Copyright (c) 2021 the msavariants authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/asklepian/msavariants/blob/master/LICENSE.txt>.

package variants

import "fmt"

// Window is an inclusive range of record indices assigned to one
// worker.
type Window struct {
	Start, End int
}

// Contains reports whether the record with the given index belongs to
// the window.
func (w Window) Contains(index int) bool {
	return index >= w.Start && index <= w.End
}

// Len returns the number of record indices covered by the window.
func (w Window) Len() int {
	return w.End - w.Start + 1
}

// Partition divides n records into contiguous windows of length
// ceil(n/t), one per worker.
//
// Only windows that start before n are returned. For example, n=10
// and t=6 give five windows of length 2, and the run must use
// len(windows) workers. The End of the last window is set to
// n rather than n-1. Workers stop at the end of the input anyway, so
// this only matters when the alignment contains more than n records.
func Partition(n, t int) ([]Window, error) {
	if n <= 0 {
		return nil, &ConfigError{Parameter: "count", Reason: fmt.Sprintf("%v, must be positive", n)}
	}
	if t <= 0 {
		return nil, &ConfigError{Parameter: "threads", Reason: fmt.Sprintf("%v, must be positive", t)}
	}
	l := (n + t - 1) / t
	windows := make([]Window, 0, (n+l-1)/l)
	for start := 0; start < n; start += l {
		windows = append(windows, Window{Start: start, End: start + l - 1})
	}
	windows[len(windows)-1].End = n
	return windows, nil
}
