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
	"compress/gzip"
	"io"
)

// IsGzip determines if the the given byte scanner produces
// a gzip file. It uses ReadByte and UnreadByte to check
// only the initial byte from the input. An empty input is
// not a gzip file.
func IsGzip(scanner io.ByteScanner) (bool, error) {
	b, err := scanner.ReadByte()
	if err == io.EOF {
		return false, nil
	} else if err != nil {
		return false, err
	}
	if err := scanner.UnreadByte(); err != nil {
		return false, err
	}
	return b == 0x1f, nil
}

// HandleGzip checks if the given reader produces a gzip file by
// looking at the initial byte. It then either returns a gzip reader
// that also decodes multi-member (BGZF) files, or returns the given
// reader unchanged. The returned io.Closer must be closed after use;
// it is a no-op for uncompressed input.
func HandleGzip(buf *bufio.Reader) (io.Reader, io.Closer, error) {
	ok, err := IsGzip(buf)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return buf, io.NopCloser(nil), nil
	}
	gz, err := gzip.NewReader(buf)
	if err != nil {
		return nil, nil, err
	}
	return gz, gz, nil
}
