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

	"github.com/asklepian/msavariants/internal"
)

// Summary describes a completed run.
type Summary struct {
	Workers  int
	Records  int // number of records processed
	Failed   int // number of workers that failed
	Overflow bool
	Coverage *bitset.BitSet
}

// Aggregate is the single consumer of ctx.Channel. It writes the
// header, then writes every payload verbatim to out until it has seen
// the sentinels of all workers.
//
// The order of the blocks in the output is the order in which they
// arrive on the channel. Aggregate only returns after the given
// number of sentinels has been popped, so a worker that never pushes
// its sentinel blocks it forever.
//
// When at least one worker failed, Aggregate returns a
// *PartialFailureError. Write errors do not stop the aggregator from
// draining the channel, and are returned once all workers are done.
func Aggregate(ctx *RunContext, workers int, out io.Writer) (summary Summary, err error) {
	summary.Workers = workers
	summary.Coverage = newCoverage()
	werr := ctx.Formatter.WriteHeader(out)
	var failed []*WorkerError
	for dead := 0; dead < workers; {
		entry := ctx.Channel.Pop()
		if !entry.Sentinel {
			if werr == nil {
				_, werr = out.Write(entry.Payload)
			}
			internal.ReleaseByteBuffer(entry.Payload)
			continue
		}
		dead++
		if entry.Coverage != nil {
			if n := summary.Coverage.IntersectionCardinality(entry.Coverage); n > 0 {
				log.Printf("[WARN] Worker %v processed %v records that were already processed by other workers.\n", entry.Worker, n)
			}
			summary.Coverage.InPlaceUnion(entry.Coverage)
		}
		summary.Overflow = summary.Overflow || entry.Overflow
		if entry.Err != nil {
			var failure *WorkerError
			if !errors.As(entry.Err, &failure) {
				failure = &WorkerError{Worker: entry.Worker, Err: entry.Err}
			}
			failed = append(failed, failure)
		}
		log.Printf("[NOTE] Writer closed connection to worker. Waiting on %v more workers.\n", workers-dead)
	}
	log.Println("[NOTE] No workers remaining. Closing writer.")
	summary.Records = int(summary.Coverage.Count())
	summary.Failed = len(failed)
	if werr != nil {
		return summary, fmt.Errorf("writing variants: %w", werr)
	}
	if len(failed) > 0 {
		return summary, &PartialFailureError{Workers: workers, Failed: failed}
	}
	return summary, checkCount(ctx, summary)
}

// checkCount compares the number of processed records with the
// expected count. A mismatch is only logged, unless the count is a
// hard contract.
func checkCount(ctx *RunContext, summary Summary) error {
	if summary.Records == ctx.Count && !summary.Overflow {
		return nil
	}
	if ctx.StrictCount {
		return &RecordCountMismatchError{Expected: ctx.Count, Observed: summary.Records, Overflow: summary.Overflow}
	}
	log.Printf("[WARN] Expected %v records, processed %v.\n", ctx.Count, summary.Records)
	return nil
}
