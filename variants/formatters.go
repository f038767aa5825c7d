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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/asklepian/msavariants/internal"
	"github.com/asklepian/msavariants/utils"
	"github.com/asklepian/msavariants/vcf"
)

// The supported output formats.
const (
	TableFormat = "csv"
	VCFFormat   = "vcf"
)

// Formatter serializes calls to an output format. It is the only
// place that knows about the output format, so the walk and the
// channel protocol only deal with typed calls and opaque blocks.
//
// Formatters must be safe for concurrent use by multiple workers.
type Formatter interface {
	WriteHeader(out io.Writer) error
	AppendCall(out []byte, call Call) ([]byte, error)
}

// NewFormatter returns the formatter for the given format name.
func NewFormatter(format string, ref *Reference, runID string) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", TableFormat:
		return TableFormatter{}, nil
	case VCFFormat:
		return NewVCFFormatter(ref, runID), nil
	default:
		return nil, &ConfigError{Parameter: "format", Reason: fmt.Sprintf("%v, must be %v or %v", format, TableFormat, VCFFormat)}
	}
}

// AppendCalls formats all calls and appends them to out, so that one
// sample results in one newline-terminated block.
func AppendCalls(f Formatter, out []byte, calls []Call) ([]byte, error) {
	var err error
	for _, call := range calls {
		if out, err = f.AppendCall(out, call); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// TableHeader is the header line of the variant table.
const TableHeader = "COG-ID,Position,Reference_Base,Alternate_Base,Is_Indel\n"

// TableFormatter formats calls as rows of a comma-separated table.
//
// An SNV row contains the sample, the position, the reference and the
// alternate base, and 0. A Deletion row contains the sample, the start
// position, an empty reference base, the length followed by D, and 1.
type TableFormatter struct{}

// WriteHeader writes TableHeader.
func (TableFormatter) WriteHeader(out io.Writer) error {
	_, err := io.WriteString(out, TableHeader)
	return err
}

// AppendCall appends one table row.
func (TableFormatter) AppendCall(out []byte, call Call) ([]byte, error) {
	out = append(append(out, call.Sample...), ',')
	out = append(strconv.AppendInt(out, int64(call.Position), 10), ',')
	switch call.Kind {
	case SNV:
		return append(out, call.Ref, ',', call.Alt, ',', '0', '\n'), nil
	case Deletion:
		out = strconv.AppendInt(append(out, ','), int64(call.Length), 10)
		return append(out, 'D', ',', '1', '\n'), nil
	default:
		return nil, fmt.Errorf("invalid variant kind %v", call.Kind)
	}
}

// VCFFormatter formats calls as VCF variant lines. The sample of a
// call is stored in the SAMPLE info entry.
type VCFFormatter struct {
	Reference *Reference
	Header    *vcf.Header
}

// NewVCFFormatter returns a VCFFormatter with a header describing the
// reference and the run.
func NewVCFFormatter(ref *Reference, runID string) *VCFFormatter {
	header := vcf.NewHeader()
	header.AddMeta("source", utils.ProgramName+" "+utils.ProgramVersion)
	header.AddMeta("runID", runID)
	if ref.Path != "" {
		header.AddMeta("reference", internal.FileURL(ref.Path))
	} else {
		header.AddMeta("reference", ref.Name)
	}
	header.AddMeta("contig", &vcf.MetaInformation{
		ID:     ref.Name,
		Fields: []vcf.Field{{Key: "length", Value: strconv.Itoa(ref.Len())}},
	})
	header.AddInfo("SAMPLE", 1, vcf.String, "Identifier of the aligned sample")
	header.AddInfo("TYPE", 1, vcf.String, "Variant type, SNV or DEL")
	header.AddInfo("LEN", 1, vcf.Integer, "Number of reference bases affected")
	return &VCFFormatter{Reference: ref, Header: header}
}

// WriteHeader writes the VCF header.
func (f *VCFFormatter) WriteHeader(out io.Writer) error {
	buf := bufio.NewWriter(out)
	if err := f.Header.Format(buf); err != nil {
		return err
	}
	return buf.Flush()
}

// Variant converts a call to a VCF variant.
//
// Deletions are anchored on the preceding reference base. A deletion
// at the start of the reference is anchored on the following base
// instead, and a deletion of the whole reference has the missing
// allele as alternate.
func (f *VCFFormatter) Variant(call Call) (*vcf.Variant, error) {
	ref := f.Reference.Seq
	variant := &vcf.Variant{
		Chrom: f.Reference.Name,
		Info: []vcf.InfoEntry{
			{Key: "SAMPLE", Value: call.Sample},
			{Key: "TYPE", Value: call.Kind.String()},
			{Key: "LEN", Value: call.Length},
		},
	}
	switch call.Kind {
	case SNV:
		variant.Pos = int32(call.Position)
		variant.Ref = string(call.Ref)
		variant.Alt = []string{string(call.Alt)}
	case Deletion:
		start, end := call.Position-1, call.End()
		if start < 0 || end > len(ref) {
			return nil, fmt.Errorf("deletion %v-%v of sample %v outside of reference", call.Position, end, call.Sample)
		}
		switch {
		case start > 0:
			variant.Pos = int32(start)
			variant.Ref = string(ref[start-1 : end])
			variant.Alt = []string{string(ref[start-1])}
		case end < len(ref):
			variant.Pos = 1
			variant.Ref = string(ref[:end+1])
			variant.Alt = []string{string(ref[end])}
		default:
			variant.Pos = 1
			variant.Ref = string(ref)
			variant.Alt = []string{vcf.Missing}
		}
	default:
		return nil, fmt.Errorf("invalid variant kind %v", call.Kind)
	}
	return variant, nil
}

// AppendCall appends one VCF variant line.
func (f *VCFFormatter) AppendCall(out []byte, call Call) ([]byte, error) {
	variant, err := f.Variant(call)
	if err != nil {
		return nil, err
	}
	return variant.Format(out)
}
