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

package utils

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"strings"
	"testing"
)

func TestIsGzip(t *testing.T) {
	for _, test := range []struct {
		input string
		gzip  bool
	}{
		{"", false},
		{">ref\nACGT\n", false},
		{"\x1f\x8b\x08", true},
	} {
		r := bufio.NewReader(strings.NewReader(test.input))
		ok, err := IsGzip(r)
		if err != nil || ok != test.gzip {
			t.Errorf("IsGzip(%q) = %v, %v", test.input, ok, err)
		}
		if rest, _ := io.ReadAll(r); string(rest) != test.input {
			t.Errorf("IsGzip(%q) consumed input", test.input)
		}
	}
}

func TestHandleGzip(t *testing.T) {
	var buf bytes.Buffer
	for _, member := range []string{">ref\n", "ACGT\n"} {
		gz := gzip.NewWriter(&buf)
		if _, err := gz.Write([]byte(member)); err != nil {
			t.Fatal(err)
		}
		if err := gz.Close(); err != nil {
			t.Fatal(err)
		}
	}
	for _, input := range [][]byte{buf.Bytes(), []byte(">ref\nACGT\n")} {
		r, closer, err := HandleGzip(bufio.NewReader(bytes.NewReader(input)))
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(r)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != ">ref\nACGT\n" {
			t.Errorf("unexpected contents %q", data)
		}
		if err := closer.Close(); err != nil {
			t.Error(err)
		}
	}
	if _, _, err := HandleGzip(bufio.NewReader(strings.NewReader("\x1fnot gzip"))); err == nil {
		t.Error("invalid gzip header not detected")
	}
}
