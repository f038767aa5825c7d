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

package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/asklepian/msavariants/variants"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestExitCode(t *testing.T) {
	for _, test := range []struct {
		err  error
		code int
	}{
		{nil, ExitSuccess},
		{&variants.ConfigError{Parameter: "n", Reason: "missing"}, ExitConfig},
		{&variants.FileNotFoundError{Kind: "REF", Path: "ref.fa", Err: os.ErrNotExist}, ExitConfig},
		{variants.ErrEmptyReference, ExitEmptyReference},
		{fmt.Errorf("loading reference: %w", variants.ErrEmptyReference), ExitEmptyReference},
		{&variants.PartialFailureError{Workers: 2, Failed: []*variants.WorkerError{{Worker: 1, Err: errors.New("boom")}}}, ExitWorkerFailure},
		{&variants.AlignmentLengthMismatchError{Sample: "S1", Want: 4, Got: 3}, ExitWorkerFailure},
		{&variants.RecordCountMismatchError{Expected: 3, Observed: 2}, ExitCountMismatch},
		{errors.New("disk full"), ExitWorkerFailure},
	} {
		if code := ExitCode(test.err); code != test.code {
			t.Errorf("ExitCode(%v) = %v, want %v", test.err, code, test.code)
		}
	}
}

func TestTable(t *testing.T) {
	dir := t.TempDir()
	ref := filepath.Join(dir, "ref.fa")
	msa := filepath.Join(dir, "msa.fa")
	output := filepath.Join(dir, "variants.csv")
	if err := os.WriteFile(ref, []byte(">ref\nACGT\n"), 0666); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(msa, []byte(">S1\nA-GA\n>S2\nACGT\n"), 0666); err != nil {
		t.Fatal(err)
	}
	if err := Table([]string{"--ref", ref, "--msa", msa, "-n", "2", "-t", "2", "--output", output}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	want := variants.TableHeader + "S1,2,,1D,1\nS1,4,T,A,0\n"
	if string(data) != want {
		t.Errorf("got %q, want %q", data, want)
	}
}

func TestTableErrors(t *testing.T) {
	stderr := os.Stderr
	os.Stderr, _ = os.Open(os.DevNull)
	defer func() {
		os.Stderr = stderr
	}()

	dir := t.TempDir()
	ref := filepath.Join(dir, "ref.fa")
	if err := os.WriteFile(ref, []byte(">ref\nACGT\n"), 0666); err != nil {
		t.Fatal(err)
	}
	if err := Table([]string{"--help"}); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected flag.ErrHelp, got %v", err)
	}
	for _, args := range [][]string{
		{"--msa", "msa.fa", "-n", "2"},
		{"--ref", ref, "-n", "2"},
		{"--ref", ref, "--msa", "--threads", "-n", "2"},
		{"--ref", ref, "--msa", ref},
		{"--ref", ref, "--msa", ref, "-n", "2", "-t", "0"},
		{"--ref", ref, "--msa", ref, "-n", "two"},
		{"--ref", ref, "--msa", ref, "-n", "2", "extra"},
	} {
		if err := Table(args); ExitCode(err) != ExitConfig {
			t.Errorf("%v: expected a configuration error, got %v", args, err)
		}
	}
	if err := Table([]string{"--ref", filepath.Join(dir, "missing.fa"), "--msa", ref, "-n", "1"}); ExitCode(err) != ExitConfig {
		t.Errorf("missing reference: unexpected error %v", err)
	}
}

func TestSetLogOutputErrors(t *testing.T) {
	if err := setLogOutput(""); err != nil {
		t.Errorf("empty log path: %v", err)
	}
	dir := t.TempDir()
	blocker := filepath.Join(dir, "logs")
	if err := os.WriteFile(blocker, nil, 0666); err != nil {
		t.Fatal(err)
	}
	if err := setLogOutput(dir); err == nil {
		t.Error("unusable log directory not detected")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("unexpected files left behind: %v", entries)
	}
}
