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

import (
	"sync"

	"github.com/willf/bitset"
)

// Entry is one element pushed onto a Channel: either a payload block
// of formatted calls for one sample, or the sentinel that a worker
// pushes exactly once when it terminates.
type Entry struct {
	Worker   int
	Payload  []byte
	Sentinel bool

	// The following fields are only set on sentinels.
	Err      error          // non-nil for a failure sentinel
	Coverage *bitset.BitSet // indices of the records the worker processed
	Overflow bool           // records beyond the expected count were seen
}

// Channel is a multi-producer, single-consumer queue of entries.
// Push must never block. Pop blocks until an entry is available.
// Entries of one producer are popped in the order they were pushed.
type Channel interface {
	Push(Entry)
	Pop() Entry
}

// Queue is an unbounded Channel.
//
// The zero Queue is valid and empty.
type Queue struct {
	mutex   sync.Mutex
	cond    sync.Cond
	entries []Entry
	head    int
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue {
	return new(Queue)
}

func (q *Queue) init() {
	if q.cond.L == nil {
		q.cond.L = &q.mutex
	}
}

// Push appends an entry to the queue.
func (q *Queue) Push(entry Entry) {
	q.mutex.Lock()
	q.init()
	q.entries = append(q.entries, entry)
	q.mutex.Unlock()
	q.cond.Signal()
}

// Pop removes and returns the oldest entry of the queue, waiting for
// one to be pushed if the queue is empty.
func (q *Queue) Pop() Entry {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	q.init()
	for q.head == len(q.entries) {
		q.cond.Wait()
	}
	entry := q.entries[q.head]
	q.entries[q.head] = Entry{}
	q.head++
	if q.head == len(q.entries) {
		q.entries = q.entries[:0]
		q.head = 0
	}
	return entry
}

// Len returns the number of entries waiting in the queue.
func (q *Queue) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return len(q.entries) - q.head
}
