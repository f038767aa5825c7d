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
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/exascience/pargo/parallel"
	"github.com/google/uuid"

	"github.com/asklepian/msavariants/fasta"
)

// DefaultThreads is the default number of workers.
const DefaultThreads = 4

// Config holds the parameters of a run.
type Config struct {
	Reference   string // path of the reference file
	Source      string // path of the alignment
	Count       int    // expected number of records in the alignment
	Threads     int
	Format      string // TableFormat or VCFFormat
	StrictCount bool
	Ordered     bool
}

func checkPath(kind, path string) error {
	if path == "" {
		return &ConfigError{Parameter: kind, Reason: "missing filename"}
	}
	if fasta.IsStdin(path) {
		log.Printf("[NOTE] %v: standard input\n", kind)
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return &FileNotFoundError{Kind: kind, Path: path, Err: err}
	}
	if info.IsDir() {
		return &FileNotFoundError{Kind: kind, Path: path, Err: errors.New("is a directory")}
	}
	log.Printf("[NOTE] %v: %v\n", kind, path)
	return nil
}

// Prepare validates the configuration, loads the reference and
// returns the context shared by all tasks of the run.
func Prepare(cfg Config) (*RunContext, error) {
	if cfg.Count <= 0 {
		return nil, &ConfigError{Parameter: "count", Reason: "the expected number of records must be positive"}
	}
	if cfg.Threads <= 0 {
		return nil, &ConfigError{Parameter: "threads", Reason: "the number of threads must be positive"}
	}
	switch strings.ToLower(cfg.Format) {
	case "", TableFormat, VCFFormat:
	default:
		return nil, &ConfigError{Parameter: "format", Reason: fmt.Sprintf("%v, must be %v or %v", cfg.Format, TableFormat, VCFFormat)}
	}
	if fasta.IsStdin(cfg.Source) {
		if fasta.IsStdin(cfg.Reference) {
			return nil, &ConfigError{Parameter: "msa", Reason: "reference and alignment cannot both be read from standard input"}
		}
		if !cfg.Ordered && cfg.Threads > 1 {
			return nil, &ConfigError{Parameter: "msa", Reason: "reading the alignment from standard input requires --ordered or a single thread"}
		}
	}
	if err := checkPath("REF", cfg.Reference); err != nil {
		return nil, err
	}
	if err := checkPath("MSA", cfg.Source); err != nil {
		return nil, err
	}
	runID := uuid.New().String()
	log.Printf("[NOTE] NUM_SEQUENCES: %v\n", cfg.Count)
	log.Printf("[NOTE] THREADS: %v\n", cfg.Threads)
	log.Printf("[NOTE] RUN_ID: %v\n", runID)

	ref, err := LoadReference(cfg.Reference)
	if err != nil {
		return nil, err
	}
	formatter, err := NewFormatter(cfg.Format, ref, runID)
	if err != nil {
		return nil, err
	}
	return &RunContext{
		Reference:   ref,
		Source:      cfg.Source,
		Channel:     NewQueue(),
		Formatter:   formatter,
		Count:       cfg.Count,
		StrictCount: cfg.StrictCount,
		RunID:       runID,
	}, nil
}

// Run calls the variants of all records in cfg.Source and writes them
// to out. With cfg.Ordered, it delegates to RunOrdered.
func Run(cfg Config, out io.Writer) error {
	ctx, err := Prepare(cfg)
	if err != nil {
		return err
	}
	if cfg.Ordered {
		return RunOrdered(ctx, cfg.Threads, out)
	}
	return RunWindows(ctx, cfg.Threads, out)
}

// RunWindows partitions the expected records into windows, and runs
// one Worker per window together with the Aggregator. It returns when
// all of them have terminated.
func RunWindows(ctx *RunContext, threads int, out io.Writer) error {
	windows, err := Partition(ctx.Count, threads)
	if err != nil {
		return err
	}
	output := bufio.NewWriter(out)

	workerErrs := make([]error, len(windows))
	var aggregateErr error
	tasks := make([]func(), 0, len(windows)+1)
	for i, window := range windows {
		i, window := i, window
		log.Printf("[WORK] Worker %v (%v, %v)\n", i, window.Start, window.End)
		tasks = append(tasks, func() {
			workerErrs[i] = Worker(ctx, i, window)
		})
	}
	tasks = append(tasks, func() {
		_, aggregateErr = Aggregate(ctx, len(windows), output)
	})
	parallel.Do(tasks...)

	if err := output.Flush(); err != nil && aggregateErr == nil {
		aggregateErr = err
	}
	if aggregateErr != nil {
		return aggregateErr
	}
	return errors.Join(workerErrs...)
}
