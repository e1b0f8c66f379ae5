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

// Command portfmt reformats a FreeBSD ports Makefile in place (or
// prints a diff, with -d), mirroring kati's cmd/kati/main.go +
// top-level main.go split: this file owns flag parsing and os.Exit,
// everything else lives in the root package.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	portfmt "github.com/stesser/portfmt"
)

func main() {
	fs := flag.NewFlagSet("portfmt", flag.ExitOnError)
	diff := fs.Bool("d", false, "print a diff instead of rewriting the file")
	check := fs.Bool("c", false, "exit 1 if the file is not already formatted")
	wrapCol := fs.Int("w", 80, "wrap column for variable value lines")
	category := fs.Bool("category", false, "format as a category Makefile")
	fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: portfmt [-d|-c] [-w col] [-category] <Makefile>")
		os.Exit(2)
	}
	filename := fs.Arg(0)

	raw, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	p := portfmt.NewParserFromBuffer(raw, filename)
	if err := p.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer p.Release()

	opts := portfmt.FormatOptions{WrapCol: *wrapCol, CategoryMakefile: *category}

	switch {
	case *check:
		changed, err := portfmt.HasDiff(raw, p.Root(), opts)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if changed {
			os.Exit(1)
		}
	case *diff:
		text, err := portfmt.Diff(raw, p.Root(), opts, filename)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Print(text)
	default:
		glog.V(1).Infof("formatting %s", filename)
		if err := p.Write(opts, filename); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
