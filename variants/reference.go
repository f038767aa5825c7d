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
	"io"

	"github.com/asklepian/msavariants/fasta"
)

// LoadReference reads the first record of the named FASTA or FASTQ
// file. It returns ErrEmptyReference if the file contains no record.
func LoadReference(filename string) (*Reference, error) {
	rec, err := fasta.ReadFirst(filename)
	if err == io.EOF {
		return nil, ErrEmptyReference
	} else if err != nil {
		return nil, err
	}
	return &Reference{Name: rec.ID, Path: filename, Seq: rec.Seq}, nil
}
