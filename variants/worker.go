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
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/willf/bitset"

	"github.com/asklepian/msavariants/fasta"
	"github.com/asklepian/msavariants/internal"
)

// RunContext is shared by all tasks of one run. Everything except the
// Channel is read-only once the tasks are started.
type RunContext struct {
	Reference   *Reference
	Source      string // path of the alignment
	Channel     Channel
	Formatter   Formatter
	Count       int  // expected number of records
	StrictCount bool // Count is a hard contract
	RunID       string
}

// newCoverage returns an empty coverage set. It grows with the records
// that are actually processed, as Count is only an estimate.
func newCoverage() *bitset.BitSet {
	return bitset.New(0)
}

// Worker processes the records of the alignment whose index falls in
// the given window.
//
// The worker opens its own reader on ctx.Source, skips the records
// before the window and stops after the window or at the end of the
// input. The calls of each record are formatted into one block and
// pushed onto ctx.Channel; records without calls push nothing.
//
// Worker always pushes exactly one sentinel before it returns, also
// when it fails. The sentinel of a failed worker carries the same
// *WorkerError that Worker returns.
func Worker(ctx *RunContext, id int, window Window) (err error) {
	coverage := newCoverage()
	overflow := false
	next := window.Start

	defer func() {
		if x := recover(); x != nil {
			err = fmt.Errorf("unexpected failure: %v", x)
		}
		if err != nil {
			err = &WorkerError{Worker: id, Window: window, Err: err}
			log.Printf("[FAIL] Worker %v failed at record %v: %v\n", id, next, err)
		} else {
			log.Printf("[DONE] Worker %v finished at next record %v\n", id, next)
		}
		ctx.Channel.Push(Entry{
			Worker:   id,
			Sentinel: true,
			Err:      err,
			Coverage: coverage,
			Overflow: overflow,
		})
	}()

	file, err := fasta.Open(ctx.Source)
	if err != nil {
		return &WorkerIOError{Path: ctx.Source, Err: err}
	}
	defer func() {
		if nerr := file.Close(); err == nil && nerr != nil {
			err = &WorkerIOError{Path: ctx.Source, Err: nerr}
		}
	}()

	var calls []Call
	first := true
	for index := 0; ; index++ {
		next = index
		if index > window.End {
			return nil
		}
		rec, err := file.Read()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return &WorkerIOError{Path: ctx.Source, Err: err}
		}
		if index < window.Start {
			continue
		}
		if first {
			log.Printf("[STAT] Worker %v started on record %v\n", id, index)
			first = false
		}
		if ctx.StrictCount && index >= ctx.Count {
			overflow = true
			return nil
		}
		var block []byte
		block, calls, err = callRecord(ctx, index, rec, calls[:0], internal.ReserveByteBuffer())
		if err != nil {
			return err
		}
		coverage.Set(uint(index))
		if len(block) > 0 {
			ctx.Channel.Push(Entry{Worker: id, Payload: block})
		} else {
			internal.ReleaseByteBuffer(block)
		}
	}
}

// callRecord walks one record and appends its formatted calls to
// block. The calls are returned for reuse as scratch space.
func callRecord(ctx *RunContext, index int, rec fasta.Record, calls []Call, block []byte) ([]byte, []Call, error) {
	calls, err := Walk(rec.ID, ctx.Reference.Seq, rec.Seq, calls)
	if err != nil {
		var mismatch *AlignmentLengthMismatchError
		if errors.As(err, &mismatch) {
			mismatch.Record = index
		}
		return nil, calls, err
	}
	block, err = AppendCalls(ctx.Formatter, block, calls)
	return block, calls, err
}
