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
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/asklepian/msavariants/vcf"
)

func TestTableFormatter(t *testing.T) {
	calls := []Call{del("S1", 2, 1), snv("S1", 4, 'T', 'A'), del("S1", 10, 12)}
	out, err := AppendCalls(TableFormatter{}, nil, calls)
	if err != nil {
		t.Fatal(err)
	}
	want := "S1,2,,1D,1\nS1,4,T,A,0\nS1,10,,12D,1\n"
	if string(out) != want {
		t.Errorf("got %q, want %q", out, want)
	}
	var header bytes.Buffer
	if err := (TableFormatter{}).WriteHeader(&header); err != nil {
		t.Fatal(err)
	}
	if header.String() != "COG-ID,Position,Reference_Base,Alternate_Base,Is_Indel\n" {
		t.Errorf("unexpected header %q", header.String())
	}
	if _, err := (TableFormatter{}).AppendCall(nil, Call{Kind: Kind(7)}); err == nil {
		t.Error("invalid kind not detected")
	}
}

func TestVCFVariant(t *testing.T) {
	f := NewVCFFormatter(&Reference{Name: "ref", Seq: []byte("ACGT")}, "run")
	tests := []struct {
		call     Call
		pos      int32
		ref, alt string
	}{
		{snv("S1", 4, 'T', 'A'), 4, "T", "A"},
		{del("S1", 2, 1), 1, "AC", "A"},
		{del("S1", 3, 2), 2, "CGT", "C"},
		{del("S1", 1, 2), 1, "ACG", "G"},
		{del("S1", 1, 4), 1, "ACGT", vcf.Missing},
	}
	for _, test := range tests {
		variant, err := f.Variant(test.call)
		if err != nil {
			t.Errorf("Variant %+v failed: %v", test.call, err)
			continue
		}
		if variant.Chrom != "ref" || variant.Pos != test.pos || variant.Ref != test.ref ||
			len(variant.Alt) != 1 || variant.Alt[0] != test.alt {
			t.Errorf("Variant %+v: got %+v", test.call, variant)
		}
	}
	if _, err := f.Variant(del("S1", 4, 2)); err == nil {
		t.Error("deletion past the end of the reference not detected")
	}
}

func TestVCFFormatter(t *testing.T) {
	f := NewVCFFormatter(&Reference{Name: "ref", Seq: []byte("ACGT")}, "run-1")
	var header bytes.Buffer
	if err := f.WriteHeader(&header); err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{
		"##fileformat=VCFv4.3\n",
		"##runID=run-1\n",
		"##reference=ref\n",
		"##contig=<ID=ref,length=4>\n",
		"##INFO=<ID=SAMPLE,Number=1,Type=String,Description=\"Identifier of the aligned sample\">\n",
		"##INFO=<ID=LEN,Number=1,Type=Integer,Description=\"Number of reference bases affected\">\n",
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n",
	} {
		if !strings.Contains(header.String(), line) {
			t.Errorf("header does not contain %q:\n%v", line, header.String())
		}
	}
	out, err := AppendCalls(f, nil, []Call{del("S1", 2, 1), snv("S1", 4, 'T', 'A')})
	if err != nil {
		t.Fatal(err)
	}
	want := "ref\t1\t.\tAC\tA\t.\t.\tSAMPLE=S1;TYPE=DEL;LEN=1\n" +
		"ref\t4\t.\tT\tA\t.\t.\tSAMPLE=S1;TYPE=SNV;LEN=1\n"
	if string(out) != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestNewFormatter(t *testing.T) {
	ref := &Reference{Name: "ref", Seq: []byte("ACGT")}
	if f, err := NewFormatter("", ref, "run"); err != nil {
		t.Error(err)
	} else if _, ok := f.(TableFormatter); !ok {
		t.Errorf("unexpected default formatter %T", f)
	}
	if f, err := NewFormatter("VCF", ref, "run"); err != nil {
		t.Error(err)
	} else if _, ok := f.(*VCFFormatter); !ok {
		t.Errorf("unexpected vcf formatter %T", f)
	}
	var config *ConfigError
	if _, err := NewFormatter("bed", ref, "run"); !errors.As(err, &config) {
		t.Errorf("expected ConfigError, got %v", err)
	}
}

func TestKind(t *testing.T) {
	if SNV.String() != "SNV" || Deletion.String() != "DEL" || Kind(9).String() != "INVALID" {
		t.Error("Kind.String failed")
	}
	if call := del("S1", 3, 4); call.End() != 6 {
		t.Errorf("End failed: %v", call.End())
	}
}
