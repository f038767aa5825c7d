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
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/asklepian/msavariants/variants"
)

// TableHelp is the help string for this command.
const TableHelp = "table parameters:\n" +
	"msavariants table --ref fasta-file --msa fasta-file -n count\n" +
	"[-t nr-of-threads | --threads nr-of-threads]\n" +
	"[--format [csv | vcf]]\n" +
	"[--ordered]\n" +
	"[--strict-count]\n" +
	"[--output file]\n" +
	"[--log-path path]\n" +
	"[--timed]\n"

// Table implements the msavariants table command. args are the
// command line arguments following the command name.
func Table(args []string) error {
	var (
		reference, msa, format, output, logPath string
		count, threads                          int
		ordered, strictCount, timed             bool
	)

	flags := flag.NewFlagSet("table", flag.ContinueOnError)
	flags.StringVar(&reference, "ref", "", "reference sequence file, only the first record is used")
	flags.StringVar(&msa, "msa", "", "multiple sequence alignment against the reference")
	flags.IntVar(&count, "n", 0, "number of sequences to process, will be divided amongst threads")
	flags.IntVar(&count, "count", 0, "alias for -n")
	flags.IntVar(&threads, "t", variants.DefaultThreads, "number of worker threads")
	flags.IntVar(&threads, "threads", variants.DefaultThreads, "alias for -t")
	flags.StringVar(&format, "format", variants.TableFormat, "output format")
	flags.BoolVar(&ordered, "ordered", false, "write samples in alignment order")
	flags.BoolVar(&strictCount, "strict-count", false, "fail if the alignment does not contain exactly n records")
	flags.StringVar(&output, "output", "", "output file instead of standard output")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	flags.BoolVar(&timed, "timed", false, "report the elapsed time")

	if err := parseFlags(flags, args, TableHelp); err != nil {
		return err
	}

	if err := setLogOutput(logPath); err != nil {
		return err
	}

	// sanity checks

	if err := checkRequired("ref", reference); err != nil {
		fmt.Fprint(os.Stderr, TableHelp)
		return err
	}
	if err := checkRequired("msa", msa); err != nil {
		fmt.Fprint(os.Stderr, TableHelp)
		return err
	}
	if count <= 0 {
		fmt.Fprint(os.Stderr, TableHelp)
		return &variants.ConfigError{Parameter: "n", Reason: "missing or non-positive required parameter -n"}
	}
	if threads <= 0 {
		fmt.Fprint(os.Stderr, TableHelp)
		return &variants.ConfigError{Parameter: "threads", Reason: fmt.Sprint("invalid nr-of-threads: ", threads)}
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " table --ref ", reference, " --msa ", msa)
	fmt.Fprint(&command, " -n ", count, " --threads ", threads, " --format ", format)
	if ordered {
		fmt.Fprint(&command, " --ordered")
	}
	if strictCount {
		fmt.Fprint(&command, " --strict-count")
	}
	if output != "" {
		fmt.Fprint(&command, " --output ", output)
	}

	// executing command

	log.Println("Executing command:\n", command.String())

	cfg := variants.Config{
		Reference:   reference,
		Source:      msa,
		Count:       count,
		Threads:     threads,
		Format:      format,
		StrictCount: strictCount,
		Ordered:     ordered,
	}

	return timedRun(timed, "Calling variants.", func() (err error) {
		var out io.Writer = os.Stdout
		if output != "" {
			f, ferr := os.Create(output)
			if ferr != nil {
				return &variants.ConfigError{Parameter: "output", Reason: ferr.Error()}
			}
			defer func() {
				if nerr := f.Close(); err == nil {
					err = nerr
				}
			}()
			out = f
		}
		if err = variants.Run(cfg, out); err == nil {
			log.Println("[DONE] All workers exited, bye!")
		}
		return err
	})
}
