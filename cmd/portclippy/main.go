// Copyright 2015 Google Inc. All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command portclippy lints a ports Makefile and prints one diagnostic
// line per finding, the single-purpose sibling of portfmt: same
// flag.FlagSet-based CLI shape, no subcommands.
package main

import (
	"flag"
	"fmt"
	"os"

	portfmt "github.com/stesser/portfmt"
)

func main() {
	fs := flag.NewFlagSet("portclippy", flag.ExitOnError)
	fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: portclippy <Makefile>")
		os.Exit(2)
	}
	filename := fs.Arg(0)

	p := portfmt.NewParserFromFile(filename)
	if err := p.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer p.Release()

	passes := []portfmt.Edit{
		portfmt.LintBsdPort{},
		portfmt.LintClones{},
		portfmt.LintCommentedPortrevision{},
		portfmt.LintOrder{},
	}

	status := 0
	for _, pass := range passes {
		findings, err := p.ApplyEdit(pass)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, f := range findings {
			status = 1
			if f.Line > 0 {
				fmt.Printf("%s:%d: %s\n", filename, f.Line, f.Message)
			} else {
				fmt.Printf("%s: %s\n", filename, f.Message)
			}
		}
	}
	os.Exit(status)
}
