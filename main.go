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

// msavariants calls single-base substitutions and deletions of the
// samples in a multiple sequence alignment against a reference, and
// writes them as one variant table.
//
// Please see https://github.com/asklepian/msavariants for a
// documentation of the tool.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/asklepian/msavariants/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: table")
	fmt.Fprint(os.Stderr, "\n", cmd.TableHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage+"\n")
		printHelp()
		os.Exit(cmd.ExitConfig)
	}

	var err error
	switch arg := os.Args[1]; {
	case arg == "table":
		err = cmd.Table(os.Args[2:])
	case arg == "help" || arg == "-help" || arg == "--help" || arg == "-h" || arg == "--h":
		printHelp()
	case strings.HasPrefix(arg, "-"):
		err = cmd.Table(os.Args[1:])
	default:
		log.Println("Unknown command", arg)
		printHelp()
		os.Exit(cmd.ExitConfig)
	}
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Println("[FAIL]", err)
		os.Exit(cmd.ExitCode(err))
	}
}
