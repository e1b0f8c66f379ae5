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

// Command portedit applies a single edit to a ports Makefile from a
// cobra subcommand tree (apply, bump-epoch, bump-revision, get,
// merge, sanitize-append, set-version, unknown-targets, unknown-vars),
// following the multi-subcommand CLI shape opal-lang-opal's cobra
// trees use.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	portfmt "github.com/stesser/portfmt"
)

func openOrDie(filename string) *portfmt.Parser {
	p := portfmt.NewParserFromFile(filename)
	if err := p.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return p
}

func writeOrDie(p *portfmt.Parser, filename string, opts portfmt.FormatOptions) {
	if err := p.Write(opts, filename); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	var wrapCol int

	root := &cobra.Command{
		Use:   "portedit",
		Short: "apply a single edit to a FreeBSD ports Makefile",
	}
	root.PersistentFlags().IntVar(&wrapCol, "wrap-col", 80, "wrap column for variable value lines")

	opts := func() portfmt.FormatOptions { return portfmt.FormatOptions{WrapCol: wrapCol} }

	root.AddCommand(&cobra.Command{
		Use:   "apply <Makefile>",
		Short: "re-apply the mandatory refactor passes and write the result",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			p := openOrDie(args[0])
			defer p.Release()
			writeOrDie(p, args[0], opts())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "bump-revision <Makefile>",
		Short: "increment PORTREVISION",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			p := openOrDie(args[0])
			defer p.Release()
			if _, err := p.ApplyEdit(portfmt.BumpRevision{}); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			writeOrDie(p, args[0], opts())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "bump-epoch <Makefile>",
		Short: "increment an existing PORTEPOCH and reset PORTREVISION to 0",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			p := openOrDie(args[0])
			defer p.Release()
			vars := p.LookupVariable("PORTEPOCH")
			n := 0
			if len(vars) > 0 {
				if len(vars[len(vars)-1].Words) == 1 {
					fmt.Sscanf(vars[len(vars)-1].Words[0], "%d", &n)
				}
			}
			for _, v := range vars {
				v.Words = []string{fmt.Sprint(n + 1)}
				v.MarkEdited()
			}
			for _, v := range p.LookupVariable("PORTREVISION") {
				v.Words = []string{"0"}
				v.MarkEdited()
			}
			writeOrDie(p, args[0], opts())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "set-version <version> <Makefile>",
		Short: "rewrite PORTVERSION/DISTVERSION and reset PORTREVISION/PORTEPOCH",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			p := openOrDie(args[1])
			defer p.Release()
			if _, err := p.ApplyEdit(portfmt.SetVersion{Version: args[0]}); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			writeOrDie(p, args[1], opts())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "sanitize-append <Makefile>",
		Short: "run only the sanitize-append-modifier pass and write the result",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			p := openOrDie(args[0])
			defer p.Release()
			if _, err := p.ApplyEdit(portfmt.SanitizeAppendModifier{}); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			writeOrDie(p, args[0], opts())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "merge <donor-Makefile> <Makefile>",
		Short: "splice assignments from donor into Makefile",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			donor := openOrDie(args[0])
			defer donor.Release()
			p := openOrDie(args[1])
			defer p.Release()
			if _, err := p.ApplyEdit(portfmt.Merge{Donor: donor.Root()}); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			writeOrDie(p, args[1], opts())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "get <variable> <Makefile>",
		Short: "print a variable's assigned words, one per line",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			p := openOrDie(args[1])
			defer p.Release()
			for _, w := range portfmt.GetVariable(p.Root(), args[0]) {
				fmt.Println(w)
			}
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "unknown-targets <Makefile>",
		Short: "list target names not recognized by the ports knowledge base",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			p := openOrDie(args[0])
			defer p.Release()
			fmt.Println(strings.Join(portfmt.UnknownTargets(p.Root()), "\n"))
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "unknown-vars <Makefile>",
		Short: "list variable names not recognized by the ports knowledge base",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			p := openOrDie(args[0])
			defer p.Release()
			fmt.Println(strings.Join(portfmt.UnknownVariables(p.Root(), p.Metadata()), "\n"))
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
