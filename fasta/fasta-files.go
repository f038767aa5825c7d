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

// Package fasta streams records from FASTA and FASTQ files.
//
// Records are read one at a time, so arbitrarily large alignments can
// be scanned with constant memory per reader. Several readers may be
// opened on the same file concurrently; they share nothing.
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/asklepian/msavariants/utils"
)

// Record is one entry of a FASTA or FASTQ file.
type Record struct {
	ID   string
	Seq  []byte
	Qual []byte // nil for FASTA records
}

// Reader reads records sequentially from a FASTA or FASTQ stream.
//
// The zero Reader is not valid; use NewReader.
type Reader struct {
	r      *bufio.Reader
	header []byte
	line   int
	err    error
}

// NewReader returns a Reader that reads from r.
func NewReader(r io.Reader) *Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return &Reader{r: br}
	}
	return &Reader{r: bufio.NewReader(r)}
}

func (r *Reader) readLine() ([]byte, error) {
	line, err := r.r.ReadBytes('\n')
	if err == io.EOF {
		if len(line) == 0 {
			return nil, io.EOF
		}
		err = nil
	}
	if err != nil {
		return nil, err
	}
	r.line++
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line, nil
}

func contigFromHeader(b []byte) string {
	i := 1
	for ; i < len(b); i++ {
		if c := b[i]; c >= '!' && c <= '~' {
			break
		}
	}
	j := i
	for ; j < len(b); j++ {
		if c := b[j]; c < '!' || c > '~' {
			break
		}
	}
	return string(b[i:j])
}

// Read returns the next record. It returns io.EOF once all records
// have been read.
//
// FASTA records end at the next header line. FASTQ records end once
// as many quality symbols as sequence symbols have been read after
// the '+' separator, so quality lines may start with '@'.
func (r *Reader) Read() (rec Record, err error) {
	if r.err != nil {
		return rec, r.err
	}
	for r.header == nil {
		line, err := r.readLine()
		if err != nil {
			r.err = err
			return rec, err
		}
		if len(line) == 0 {
			continue
		}
		if line[0] != '>' && line[0] != '@' {
			r.err = fmt.Errorf("invalid sequence file - missing record header at line %v", r.line)
			return rec, r.err
		}
		r.header = line
	}
	header := r.header
	r.header = nil
	rec.ID = contigFromHeader(header)
	rec.Seq = []byte{}
	for {
		line, err := r.readLine()
		if err == io.EOF {
			r.err = io.EOF
			return rec, nil
		} else if err != nil {
			r.err = err
			return rec, err
		}
		if len(line) == 0 {
			continue
		}
		switch line[0] {
		case '>', '@':
			r.header = line
			return rec, nil
		case '+':
			return r.readQuality(rec)
		default:
			rec.Seq = append(rec.Seq, line...)
		}
	}
}

func (r *Reader) readQuality(rec Record) (Record, error) {
	rec.Qual = make([]byte, 0, len(rec.Seq))
	for len(rec.Qual) < len(rec.Seq) {
		line, err := r.readLine()
		if err == io.EOF {
			r.err = fmt.Errorf("invalid sequence file - truncated quality string for record %v", rec.ID)
			return rec, r.err
		} else if err != nil {
			r.err = err
			return rec, err
		}
		rec.Qual = append(rec.Qual, line...)
	}
	if len(rec.Qual) != len(rec.Seq) {
		r.err = fmt.Errorf("invalid sequence file - quality string of record %v has length %v, expected %v", rec.ID, len(rec.Qual), len(rec.Seq))
		return rec, r.err
	}
	return rec, nil
}

// IsStdin reports whether Open reads the named file from os.Stdin.
// Such a file can only be read once.
func IsStdin(name string) bool {
	return name == "-" || name == "/dev/stdin"
}

// File is a Reader on an opened file.
type File struct {
	*Reader
	file *os.File
	gz   io.Closer
}

// Open opens a FASTA or FASTQ file for reading. Gzip and BGZF
// compressed files are decompressed transparently.
//
// If the name is "-" or "/dev/stdin", then the input is read from
// os.Stdin.
func Open(name string) (*File, error) {
	var file *os.File
	if IsStdin(name) {
		file = os.Stdin
	} else {
		var err error
		if file, err = os.Open(name); err != nil {
			return nil, err
		}
	}
	input, gz, err := utils.HandleGzip(bufio.NewReader(file))
	if err != nil {
		if file != os.Stdin {
			_ = file.Close()
		}
		return nil, fmt.Errorf("%v in %v", err, name)
	}
	return &File{Reader: NewReader(input), file: file, gz: gz}, nil
}

// Close closes the file.
func (f *File) Close() error {
	err := f.gz.Close()
	if f.file != os.Stdin {
		if nerr := f.file.Close(); err == nil {
			err = nerr
		}
	}
	return err
}

// ReadFirst returns the first record of the named file. It returns
// io.EOF if the file does not contain any record.
func ReadFirst(name string) (rec Record, err error) {
	f, err := Open(name)
	if err != nil {
		return rec, err
	}
	defer func() {
		if nerr := f.Close(); err == nil {
			err = nerr
		}
	}()
	return f.Read()
}
