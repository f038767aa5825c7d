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

// Walk compares an aligned sequence to the reference and appends the
// resulting calls to calls, in ascending reference order.
//
// The walk keeps a reference cursor that advances by one for every
// aligned base, and the length of the current run of gaps. A gap
// extends the run. The first non-gap base after a run closes it as a
// Deletion starting at the first gapped position. A non-gap base that
// differs from the reference is an SNV; ambiguity codes such as N are
// not treated specially. A run still open at the end of the sequence
// is closed as a final Deletion.
//
// seq must have the same length as ref, otherwise Walk returns an
// *AlignmentLengthMismatchError and no calls.
func Walk(sample string, ref, seq []byte, calls []Call) ([]Call, error) {
	if len(seq) != len(ref) {
		return calls, &AlignmentLengthMismatchError{Sample: sample, Record: -1, Want: len(ref), Got: len(seq)}
	}
	run := 0
	for cursor, base := range seq {
		if base == GapSymbol {
			run++
			continue
		}
		if run > 0 {
			calls = append(calls, Call{
				Sample:   sample,
				Kind:     Deletion,
				Position: cursor - run + 1,
				Length:   run,
			})
			run = 0
		}
		if refBase := ref[cursor]; base != refBase {
			calls = append(calls, Call{
				Sample:   sample,
				Kind:     SNV,
				Position: cursor + 1,
				Ref:      refBase,
				Alt:      base,
				Length:   1,
			})
		}
	}
	if run > 0 {
		calls = append(calls, Call{
			Sample:   sample,
			Kind:     Deletion,
			Position: len(seq) - run + 1,
			Length:   run,
		})
	}
	return calls, nil
}
