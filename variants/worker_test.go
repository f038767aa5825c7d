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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func drain(q *Queue) (payloads []string, sentinels []Entry) {
	for q.Len() > 0 {
		entry := q.Pop()
		if entry.Sentinel {
			sentinels = append(sentinels, entry)
		} else {
			payloads = append(payloads, string(entry.Payload))
		}
	}
	return payloads, sentinels
}

func TestWorkerWindow(t *testing.T) {
	ctx := newTestContext(4)
	ctx.Source = writeFile(t, t.TempDir(), "msa.fa", ">S0\nACGA\n>S1\nACGT\n>S2\nA-GA\n>S3\nTCGT\n")
	if err := Worker(ctx, 1, Window{Start: 1, End: 2}); err != nil {
		t.Fatal(err)
	}
	payloads, sentinels := drain(ctx.Channel.(*Queue))
	if len(payloads) != 1 || payloads[0] != "S2,2,,1D,1\nS2,4,T,A,0\n" {
		t.Errorf("unexpected payloads %q", payloads)
	}
	if len(sentinels) != 1 {
		t.Fatalf("expected one sentinel, got %v", len(sentinels))
	}
	s := sentinels[0]
	if s.Worker != 1 || s.Err != nil || s.Overflow || s.Coverage.Count() != 2 || !s.Coverage.Test(1) || !s.Coverage.Test(2) {
		t.Errorf("unexpected sentinel %+v", s)
	}
}

func TestWorkerEndOfInput(t *testing.T) {
	ctx := newTestContext(10)
	ctx.Source = writeFile(t, t.TempDir(), "msa.fa", ">S0\nACGA\n")
	if err := Worker(ctx, 3, Window{Start: 6, End: 10}); err != nil {
		t.Fatal(err)
	}
	payloads, sentinels := drain(ctx.Channel.(*Queue))
	if len(payloads) != 0 || len(sentinels) != 1 || sentinels[0].Coverage.Count() != 0 {
		t.Errorf("unexpected entries %q %+v", payloads, sentinels)
	}
}

func TestWorkerStrictOverflow(t *testing.T) {
	ctx := newTestContext(1)
	ctx.StrictCount = true
	ctx.Source = writeFile(t, t.TempDir(), "msa.fa", ">S0\nACGA\n>S1\nACGC\n")
	if err := Worker(ctx, 0, Window{Start: 0, End: 1}); err != nil {
		t.Fatal(err)
	}
	payloads, sentinels := drain(ctx.Channel.(*Queue))
	if len(payloads) != 1 || payloads[0] != "S0,4,T,A,0\n" {
		t.Errorf("unexpected payloads %q", payloads)
	}
	if len(sentinels) != 1 || !sentinels[0].Overflow {
		t.Errorf("overflow not reported: %+v", sentinels)
	}
}

func TestWorkerFailures(t *testing.T) {
	dir := t.TempDir()

	ctx := newTestContext(2)
	ctx.Source = writeFile(t, dir, "msa.fa", ">S0\nACGA\n>S1\nACG\n")
	err := Worker(ctx, 0, Window{Start: 0, End: 2})
	var mismatch *AlignmentLengthMismatchError
	if !errors.As(err, &mismatch) || mismatch.Record != 1 || mismatch.Sample != "S1" {
		t.Errorf("expected AlignmentLengthMismatchError for record 1, got %v", err)
	}
	_, sentinels := drain(ctx.Channel.(*Queue))
	if len(sentinels) != 1 || sentinels[0].Err == nil {
		t.Fatalf("expected one failure sentinel, got %+v", sentinels)
	}
	var failure *WorkerError
	if !errors.As(sentinels[0].Err, &failure) || failure.Worker != 0 || failure.Window != (Window{0, 2}) {
		t.Errorf("unexpected failure %v", sentinels[0].Err)
	}

	ctx = newTestContext(2)
	ctx.Source = filepath.Join(dir, "missing.fa")
	err = Worker(ctx, 1, Window{Start: 0, End: 2})
	var ioErr *WorkerIOError
	if !errors.As(err, &ioErr) {
		t.Errorf("expected WorkerIOError, got %v", err)
	}
	if _, sentinels = drain(ctx.Channel.(*Queue)); len(sentinels) != 1 || sentinels[0].Err == nil {
		t.Errorf("expected one failure sentinel, got %+v", sentinels)
	}
}

type panickingFormatter struct{ TableFormatter }

func (panickingFormatter) AppendCall([]byte, Call) ([]byte, error) {
	panic("formatter broken")
}

func TestWorkerPanic(t *testing.T) {
	ctx := newTestContext(1)
	ctx.Formatter = panickingFormatter{}
	ctx.Source = writeFile(t, t.TempDir(), "msa.fa", ">S0\nACGA\n")
	err := Worker(ctx, 0, Window{Start: 0, End: 1})
	if err == nil || !strings.Contains(err.Error(), "formatter broken") {
		t.Errorf("panic not recovered as error: %v", err)
	}
	if _, sentinels := drain(ctx.Channel.(*Queue)); len(sentinels) != 1 || sentinels[0].Err == nil {
		t.Errorf("expected one failure sentinel, got %+v", sentinels)
	}
}
