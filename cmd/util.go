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
	"runtime"
	"time"

	"golang.org/x/sys/unix"

	"github.com/asklepian/msavariants/utils"
	"github.com/asklepian/msavariants/variants"
)

// ProgramMessage is the first line printed when the msavariants
// binary is called.
var ProgramMessage string

func init() {
	ProgramMessage = fmt.Sprint(
		"\n", utils.ProgramName, " version ", utils.ProgramVersion,
		" compiled with ", runtime.Version(),
		" - see ", utils.ProgramURL, " for more information.\n",
	)
}

// HelpMessage is printed to show the --help flag
const HelpMessage = "Print command details:\n" +
	"[--help]\n"

// The exit codes of the msavariants binary.
const (
	ExitSuccess        = 0
	ExitConfig         = 1 // invalid parameters, or missing reference/alignment file
	ExitEmptyReference = 2
	ExitWorkerFailure  = 3 // the output is incomplete
	ExitCountMismatch  = 4
)

// ExitCode maps an error returned by a command to the exit code of
// the process.
func ExitCode(err error) int {
	var (
		config   *variants.ConfigError
		notFound *variants.FileNotFoundError
		mismatch *variants.RecordCountMismatchError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &config), errors.As(err, &notFound):
		return ExitConfig
	case errors.Is(err, variants.ErrEmptyReference):
		return ExitEmptyReference
	case errors.As(err, &mismatch):
		return ExitCountMismatch
	default:
		return ExitWorkerFailure
	}
}

// parseFlags parses args with the given flag set. It returns
// flag.ErrHelp when help was requested, and a *variants.ConfigError
// for anything it cannot parse.
func parseFlags(flags *flag.FlagSet, args []string, help string) error {
	flags.SetOutput(io.Discard)
	if err := flags.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, help)
		if err == flag.ErrHelp {
			return err
		}
		return &variants.ConfigError{Parameter: "command line", Reason: err.Error()}
	}
	if flags.NArg() > 0 {
		fmt.Fprint(os.Stderr, help)
		return &variants.ConfigError{Parameter: "command line", Reason: fmt.Sprint("cannot parse remaining parameters: ", flags.Args())}
	}
	return nil
}

func checkRequired(parameter, value string) error {
	if value == "" {
		return &variants.ConfigError{Parameter: parameter, Reason: "missing required parameter --" + parameter}
	}
	if value[0] == '-' && value != "-" {
		return &variants.ConfigError{Parameter: parameter, Reason: "missing filename before " + value}
	}
	return nil
}

func createLogFilename() string {
	t := time.Now()
	zone, _ := t.Zone()
	return fmt.Sprintf("logs/msavariants/msavariants-%d-%02d-%02d-%02d-%02d-%02d-%09d-%v.log", t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), zone)
}

// setLogOutput additionally sends everything written to stderr into a
// log file in the given directory. It does nothing if path is empty.
func setLogOutput(path string) error {
	if path == "" {
		return nil
	}
	fullPath := filepath.Join(path, createLogFilename())
	if err := os.MkdirAll(filepath.Dir(fullPath), 0700); err != nil {
		return err
	}
	f, err := os.Create(fullPath)
	if err != nil {
		return err
	}
	fmt.Fprintln(f, ProgramMessage)

	orgStderr, err := unix.Dup(2)
	if err != nil {
		_ = f.Close()
		return err
	}
	ferr := os.NewFile(uintptr(orgStderr), "/dev/stderr")
	if err := unix.Dup2(int(f.Fd()), 2); err != nil {
		_ = ferr.Close()
		_ = f.Close()
		return err
	}

	log.SetOutput(io.MultiWriter(f, ferr))
	log.Println("Created log file at", fullPath)
	log.Println("Command line:", os.Args)
	return nil
}

func timedRun(timed bool, msg string, f func() error) error {
	if timed {
		log.Println(msg)
		start := time.Now()
		defer func() {
			log.Println("Elapsed time: ", time.Since(start))
		}()
	}
	return f()
}
