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

// GapSymbol marks a reference position that is deleted in a sample.
const GapSymbol = '-'

// Kind distinguishes the different kinds of variant calls.
type Kind uint8

// The supported kinds of variant calls.
const (
	SNV Kind = iota
	Deletion
)

func (kind Kind) String() string {
	switch kind {
	case SNV:
		return "SNV"
	case Deletion:
		return "DEL"
	default:
		return "INVALID"
	}
}

// Call is a single variant of one sample relative to the reference.
//
// Positions are 1-based reference coordinates. For a Deletion,
// Position is the first deleted reference coordinate and Length the
// number of deleted bases; Ref and Alt are unused. For an SNV, Length
// is 1.
type Call struct {
	Sample   string
	Kind     Kind
	Position int
	Ref, Alt byte
	Length   int
}

// End returns the last reference coordinate covered by the call.
func (call Call) End() int {
	return call.Position + call.Length - 1
}

// Reference is the sequence all samples are compared against. It is
// never modified after LoadReference returns, so it can be shared by
// all workers without locking.
type Reference struct {
	Name string
	Path string // file the reference was loaded from, if any
	Seq  []byte
}

// Len returns the number of bases in the reference.
func (ref *Reference) Len() int {
	return len(ref.Seq)
}
