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
	"bufio"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/exascience/pargo/pipeline"

	"github.com/asklepian/msavariants/fasta"
	"github.com/asklepian/msavariants/internal"
)

type indexedRecord struct {
	index int
	fasta.Record
}

// recordSource implements pipeline.Source for the records of an
// alignment, fetching them in batches. Records with an index above
// last are never fetched, which bounds the input the same way as the
// last window of Partition.
type recordSource struct {
	file *fasta.File
	path string
	next int
	last int
	err  error
	data []indexedRecord
}

// Err implements the method of the pipeline.Source interface.
func (src *recordSource) Err() error {
	return src.err
}

// Prepare implements the method of the pipeline.Source interface.
func (src *recordSource) Prepare(_ context.Context) (size int) {
	return -1
}

// Fetch implements the method of the pipeline.Source interface.
func (src *recordSource) Fetch(size int) (fetched int) {
	if src.err != nil {
		src.data = nil
		return 0
	}
	if size < 1 {
		size = 1
	}
	src.data = make([]indexedRecord, 0, size)
	for len(src.data) < size && src.next <= src.last {
		rec, err := src.file.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			src.err = &WorkerIOError{Path: src.path, Err: err}
			break
		}
		src.data = append(src.data, indexedRecord{index: src.next, Record: rec})
		src.next++
	}
	return len(src.data)
}

// Data implements the method of the pipeline.Source interface.
func (src *recordSource) Data() interface{} {
	return src.data
}

// Batch sizes for the records fetched by the ordered pipeline.
const (
	minBatchSize = 16
	maxBatchSize = 1024
)

type orderedBlock struct {
	data     []byte
	indices  []int
	overflow bool
}

// RunOrdered calls the variants of the records in ctx.Source using a
// single reader and writes them to out in the order of the records in
// the alignment, so the output does not depend on the number of
// threads. Records are walked by up to threads goroutines in parallel.
// It processes the same records as RunWindows: those with an index up
// to and including ctx.Count, where the record at ctx.Count is only
// reported as an overflow in strict mode.
func RunOrdered(ctx *RunContext, threads int, out io.Writer) (err error) {
	if threads <= 0 {
		return &ConfigError{Parameter: "threads", Reason: fmt.Sprintf("%v, must be positive", threads)}
	}
	file, err := fasta.Open(ctx.Source)
	if err != nil {
		return &WorkerIOError{Path: ctx.Source, Err: err}
	}
	defer func() {
		if nerr := file.Close(); err == nil && nerr != nil {
			err = &WorkerIOError{Path: ctx.Source, Err: nerr}
		}
	}()

	output := bufio.NewWriter(out)
	if err = ctx.Formatter.WriteHeader(output); err != nil {
		return fmt.Errorf("writing variants: %w", err)
	}
	summary := Summary{Workers: threads, Coverage: newCoverage()}

	var p pipeline.Pipeline
	p.Source(&recordSource{file: file, path: ctx.Source, last: ctx.Count})
	p.SetVariableBatchSize(minBatchSize, maxBatchSize)
	p.Add(
		pipeline.LimitedPar(threads, pipeline.Receive(func(_ int, data interface{}) interface{} {
			var (
				calls []Call
				err   error
			)
			block := orderedBlock{data: internal.ReserveByteBuffer()}
			for _, rec := range data.([]indexedRecord) {
				if ctx.StrictCount && rec.index >= ctx.Count {
					block.overflow = true
					break
				}
				block.data, calls, err = callRecord(ctx, rec.index, rec.Record, calls[:0], block.data)
				if err != nil {
					p.SetErr(err)
					return orderedBlock{}
				}
				block.indices = append(block.indices, rec.index)
			}
			return block
		})),
		pipeline.StrictOrd(pipeline.Receive(func(_ int, data interface{}) interface{} {
			block := data.(orderedBlock)
			for _, index := range block.indices {
				summary.Coverage.Set(uint(index))
			}
			summary.Overflow = summary.Overflow || block.overflow
			if _, err := output.Write(block.data); err != nil {
				p.SetErr(fmt.Errorf("writing variants: %w", err))
			}
			internal.ReleaseByteBuffer(block.data)
			return nil
		})),
	)
	p.Run()
	if err = p.Err(); err != nil {
		log.Printf("[FAIL] Ordered run failed: %v\n", err)
		return err
	}
	if err = output.Flush(); err != nil {
		return fmt.Errorf("writing variants: %w", err)
	}
	summary.Records = int(summary.Coverage.Count())
	log.Printf("[DONE] Processed %v records.\n", summary.Records)
	return checkCount(ctx, summary)
}
