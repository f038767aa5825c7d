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

// Package vcf represents and formats VCF files.
//
// Only the output side of the format is supported: variant calls are
// converted to Variant values and formatted line by line.
package vcf

// The supported VCF file format version.
const (
	FileFormatVersion     = "VCFv4.3"
	FileFormatVersionLine = "##fileformat=VCFv4.3"
)

// DefaultHeaderColumns for VCF files.
var DefaultHeaderColumns = []string{"CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO"}

// Type is an enumeration type for different VCF field types
type Type uint

// The VCF field types written by this package
const (
	InvalidType Type = iota
	Integer          // represented as int
	String           // represented as string
)

// Missing is the VCF representation of an absent allele, used for
// deletions that leave no anchor base.
const Missing = "*"

type (
	// Field is one key=value pair in a structured meta-information line.
	Field struct {
		Key, Value string
	}

	// MetaInformation in VCF files, such as ##contig=<ID=...>.
	MetaInformation struct {
		ID          string
		Description string // "" if not present
		Fields      []Field
	}

	// Meta is one ##key=value line. Value is either a string or a
	// *MetaInformation.
	Meta struct {
		Key   string
		Value interface{}
	}

	// FormatInformation describes an INFO or FORMAT entry.
	FormatInformation struct {
		ID          string
		Description string // "" if not present
		Number      int32  // >= 0
		Type        Type
	}

	// Header section of a VCF files.
	Header struct {
		FileFormat string
		Meta       []Meta
		Infos      []*FormatInformation
		Columns    []string
	}

	// InfoEntry is one entry in the INFO column. Values are int or
	// string.
	InfoEntry struct {
		Key   string
		Value interface{}
	}

	// Variant line in a VCF file. The ID, QUAL and FILTER columns
	// are always written as missing.
	Variant struct {
		Chrom string
		Pos   int32 // < 0 if unknown
		Ref   string
		Alt   []string // nil/empty if missing
		Info  []InfoEntry
	}
)

// NewHeader creates an empty instance.
func NewHeader() *Header {
	return &Header{
		FileFormat: FileFormatVersionLine,
		Columns:    DefaultHeaderColumns,
	}
}

// AddMeta appends a ##key=value line to the header.
func (header *Header) AddMeta(key string, value interface{}) {
	header.Meta = append(header.Meta, Meta{Key: key, Value: value})
}

// AddInfo appends an ##INFO definition to the header.
func (header *Header) AddInfo(id string, number int32, typ Type, description string) {
	header.Infos = append(header.Infos, &FormatInformation{
		ID:          id,
		Description: description,
		Number:      number,
		Type:        typ,
	})
}
