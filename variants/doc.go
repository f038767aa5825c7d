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

// Package variants calls single-base substitutions and deletions of
// aligned samples against a reference sequence.
//
// Every record of a multiple sequence alignment is expected to be
// gap-padded to the length of the reference. A record is compared to
// the reference base by base: gap symbols extend a deletion, and any
// other symbol that differs from the reference is reported as a
// single-nucleotide variant. Insertions relative to the reference are
// not detected.
//
// Run partitions the records of an alignment into windows, one per
// worker. Each worker scans the alignment with its own reader, and
// pushes one formatted block per sample onto a shared Channel. A
// single aggregator drains the channel into the output stream until
// every worker has reported completion. RunOrdered is an alternative
// that reads the alignment once and preserves the input order of the
// samples in the output, using a pargo pipeline.
package variants
