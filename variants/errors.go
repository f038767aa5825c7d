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
	"strings"
)

// ErrEmptyReference is returned when the reference file does not
// contain any record.
var ErrEmptyReference = errors.New("could not read sequence from reference")

// ConfigError reports an invalid or missing run parameter.
type ConfigError struct {
	Parameter string
	Reason    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %v: %v", e.Parameter, e.Reason)
}

// FileNotFoundError reports a reference or alignment path that
// cannot be accessed.
type FileNotFoundError struct {
	Kind string // "REF" or "MSA"
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("could not open %v %v: %v", e.Kind, e.Path, e.Err)
}

func (e *FileNotFoundError) Unwrap() error {
	return e.Err
}

// AlignmentLengthMismatchError reports an aligned record whose length
// differs from the length of the reference.
type AlignmentLengthMismatchError struct {
	Sample    string
	Record    int // index of the record in the alignment, -1 if unknown
	Want, Got int
}

func (e *AlignmentLengthMismatchError) Error() string {
	if e.Record < 0 {
		return fmt.Sprintf("aligned sequence %v has length %v, reference has length %v", e.Sample, e.Got, e.Want)
	}
	return fmt.Sprintf("aligned sequence %v (record %v) has length %v, reference has length %v", e.Sample, e.Record, e.Got, e.Want)
}

// WorkerIOError reports a failure to open or read the alignment
// inside a worker.
type WorkerIOError struct {
	Path string
	Err  error
}

func (e *WorkerIOError) Error() string {
	return fmt.Sprintf("reading %v: %v", e.Path, e.Err)
}

func (e *WorkerIOError) Unwrap() error {
	return e.Err
}

// WorkerError is the failure of one worker, as carried by its
// failure sentinel.
type WorkerError struct {
	Worker int
	Window Window
	Err    error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %v (%v, %v): %v", e.Worker, e.Window.Start, e.Window.End, e.Err)
}

func (e *WorkerError) Unwrap() error {
	return e.Err
}

// PartialFailureError is returned by the aggregator when at least one
// worker failed. The output is incomplete in that case.
type PartialFailureError struct {
	Workers int
	Failed  []*WorkerError
}

func (e *PartialFailureError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v of %v workers failed", len(e.Failed), e.Workers)
	for _, failure := range e.Failed {
		b.WriteString("; ")
		b.WriteString(failure.Error())
	}
	return b.String()
}

func (e *PartialFailureError) Unwrap() []error {
	errs := make([]error, len(e.Failed))
	for i, failure := range e.Failed {
		errs[i] = failure
	}
	return errs
}

// RecordCountMismatchError reports that the number of records in the
// alignment differs from the expected count. It is only an error in
// strict mode.
type RecordCountMismatchError struct {
	Expected int
	Observed int
	Overflow bool // records beyond the expected count were found
}

func (e *RecordCountMismatchError) Error() string {
	if e.Overflow {
		return fmt.Sprintf("expected %v records, but the alignment contains more", e.Expected)
	}
	return fmt.Sprintf("expected %v records, but processed %v", e.Expected, e.Observed)
}
