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

// Package internal contains helpers shared by the packages of
// msavariants that are not part of its API.
package internal

import "sync"

var bufPool = sync.Pool{New: func() interface{} {
	return []byte(nil)
}}

/*
ReserveByteBuffer uses a sync.Pool to either reuse or make a slice of
bytes of length 0, but of capacity potentially larger than 0. Workers
format the calls of one record into such a slice.

Use ReleaseByteBuffer to return slices of bytes to the internal pool
once they have been written.
*/
func ReserveByteBuffer() []byte {
	return bufPool.Get().([]byte)[:0]
}

/*
ReleaseByteBuffer returns the given slice of bytes to the internal
sync.Pool from which ReserveByteBuffer can fetch it again. Nil slices
are dropped.
*/
func ReleaseByteBuffer(buf []byte) {
	if buf != nil {
		bufPool.Put(buf)
	}
}
