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

package portfmt

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// FormatOptions controls Format's output, the Go stand-in for the
// design's parser-construction flags that only matter at print time.
type FormatOptions struct {
	// WrapCol is the target line width variable values wrap at; 0
	// selects the default of 80.
	WrapCol int
	// CategoryMakefile selects the narrower SUBDIR-listing layout
	// used for Mk/Uses and top-level category Makefiles.
	CategoryMakefile bool
}

func (o FormatOptions) wrapCol() int {
	if o.WrapCol <= 0 {
		return 80
	}
	return o.WrapCol
}

// Format renders root to w following the reformatter's rules: goal
// column alignment for variable assignments, greedy word wrapping at
// the configured column, and verbatim passthrough for anything the
// design calls out as unformatted (FlagLeaveUnformatted).
func Format(root *Root, opts FormatOptions, w io.Writer) error {
	f := &formatter{opts: opts, w: w, root: root}
	if opts.CategoryMakefile {
		return f.formatCategoryMakefile()
	}
	for _, n := range root.Body {
		if err := f.node(n, ""); err != nil {
			return err
		}
	}
	return f.err
}

type formatter struct {
	opts FormatOptions
	w    io.Writer
	root *Root
	err  error
}

// categoryMakefileIndent is the fixed indent category Makefiles use
// for COMMENT and every SUBDIR line.
const categoryMakefileIndent = "    "

// formatCategoryMakefile implements the strict, fixed category
// Makefile layout: a COMMENT assignment and one sorted SUBDIR line per
// subdirectory, everything else passed through or rejected.
func (f *formatter) formatCategoryMakefile() error {
	for _, n := range f.root.Body {
		switch v := n.(type) {
		case *Deleted:
			continue
		case *Comment:
			for _, l := range v.Lines {
				f.writeLine(l)
			}
		case *Include:
			if v.Kind == IncludeBmake && v.Sys && v.Path == "bsd.port.subdir.mk" {
				f.writeLine(".include <bsd.port.subdir.mk>")
				continue
			}
			return wrapError(Unspecified, "", 0, errUnsupportedCategoryNode)
		case *Variable:
			switch v.Name {
			case "COMMENT":
				f.writeLine(categoryMakefileIndent + "COMMENT = " + strings.Join(v.Words, " "))
			case "SUBDIR":
				words := append([]string(nil), v.Words...)
				sort.Strings(words)
				for _, word := range words {
					f.writeLine(categoryMakefileIndent + "SUBDIR += " + word)
				}
			default:
				return wrapError(Unspecified, "", 0, fmt.Errorf("unsupported variable in category Makefile: %s", v.Name))
			}
		default:
			return wrapError(Unspecified, "", 0, errUnsupportedCategoryNode)
		}
		if f.err != nil {
			return f.err
		}
	}
	return f.err
}

func (f *formatter) writeLine(s string) {
	if f.err != nil {
		return
	}
	_, f.err = fmt.Fprintln(f.w, s)
}

func (f *formatter) node(n Node, indent string) error {
	switch v := n.(type) {
	case *Deleted:
		return nil
	case *Comment:
		for _, l := range v.Lines {
			f.writeLine(l)
		}
	case *Expr:
		f.writeExpr(v, indent)
	case *Variable:
		f.writeVariable(v)
	case *Target:
		f.writeTarget(v)
	case *TargetCommand:
		f.writeTargetCommand(v)
	case *If:
		f.writeIf(v, indent)
	case *For:
		f.writeFor(v, indent)
	case *Include:
		f.writeInclude(v, indent)
	}
	return f.err
}

func (f *formatter) children(body []Node, indent string) {
	for _, n := range body {
		f.node(n, indent)
	}
}

var exprDirective = [...]string{
	ExprError: "error", ExprWarning: "warning", ExprInfo: "info",
	ExprExport: "export", ExprExportEnv: "export-env",
	ExprExportLiteral: "export-literal", ExprUnexport: "unexport",
	ExprUnexportEnv: "unexport-env", ExprUndef: "undef",
}

func (f *formatter) writeExpr(e *Expr, indent string) {
	line := indent + "." + exprDirective[e.Kind]
	if len(e.Words) > 0 {
		line += " " + strings.Join(e.Words, " ")
	}
	f.writeLine(appendComment(line, e.Comment))
}

func (f *formatter) writeInclude(i *Include, indent string) {
	var keyword string
	switch i.Kind {
	case IncludeBmake:
		keyword = indent + ".include"
	case IncludeBmakeOptional:
		keyword = indent + ".-include"
	case IncludePosix:
		keyword = "include"
	case IncludePosixOptional:
		keyword = "sinclude"
	}
	path := i.Path
	if i.Sys {
		path = "<" + path + ">"
	} else {
		path = "\"" + path + "\""
	}
	f.writeLine(appendComment(keyword+" "+path, i.Comment))
	f.children(i.Body, indent)
}

func (f *formatter) writeIf(n *If, indent string) {
	keyword := map[IfKind]string{
		IfIf: ".if", IfDef: ".ifdef", IfElse: ".else",
		IfMake: ".ifmake", IfNdef: ".ifndef", IfNmake: ".ifnmake",
	}[n.Kind]
	if n.IfParent != nil && n.Kind != IfElse {
		keyword = ".el" + keyword[1:]
	}
	if n.Kind == IfElse && len(n.Test) == 0 {
		f.writeLine(appendComment(indent+".else", n.Comment))
	} else {
		line := indent + keyword + " " + strings.Join(n.Test, " ")
		f.writeLine(appendComment(line, n.Comment))
	}
	f.children(n.Body, indent+"")
	for _, next := range flattenOrelse(n) {
		f.writeIf(next, indent)
	}
	if n.IfParent == nil {
		f.writeLine(appendComment(indent+".endif", n.EndComment))
	}
}

// flattenOrelse returns n's Orelse body reinterpreted as a single
// chained If continuation when it holds exactly one If whose IfParent
// is n (an .elif/.else link), or nil when Orelse is a plain body.
func flattenOrelse(n *If) []*If {
	if len(n.Orelse) != 1 {
		return nil
	}
	next, ok := n.Orelse[0].(*If)
	if !ok || next.IfParent != n {
		return nil
	}
	return []*If{next}
}

func (f *formatter) writeFor(n *For, indent string) {
	line := indent + ".for " + strings.Join(n.Bindings, " ") + " in " + strings.Join(n.Words, " ")
	f.writeLine(appendComment(line, n.Comment))
	f.children(n.Body, indent)
	f.writeLine(appendComment(indent+".endfor", n.EndComment))
}

func (f *formatter) writeTarget(t *Target) {
	op := ":"
	if t.DoubleColon {
		op = "::"
	}
	line := strings.Join(t.Sources, " ") + op
	if len(t.Dependencies) > 0 {
		line += " " + strings.Join(t.Dependencies, " ")
	}
	f.writeLine(appendComment(line, t.Comment))
	f.children(t.Body, "")
}

func (f *formatter) writeTargetCommand(c *TargetCommand) {
	prefix := ""
	if c.Flags&Silent != 0 {
		prefix += "@"
	}
	if c.Flags&IgnoreError != 0 {
		prefix += "-"
	}
	if c.Flags&AlwaysExecute != 0 {
		prefix += "+"
	}
	line := "\t" + prefix + strings.Join(c.Words, " ")
	f.writeLine(appendComment(line, c.Comment))
}

func appendComment(line, comment string) string {
	if comment == "" {
		return line
	}
	return line + " " + comment
}

// containsNeutralDollar reports whether any word still carries the
// tokenizer's "$\" continuation marker, meaning the value can't be
// safely reconstructed and must be echoed from source.
func containsNeutralDollar(words []string) bool {
	for _, w := range words {
		if strings.ContainsRune(w, neutralDollar) {
			return true
		}
	}
	return false
}

// writeVariable renders one assignment, applying goal-column
// alignment and greedy wrapping unless the variable's table entry
// opts out (FlagLeaveUnformatted / FlagIgnoreWrapCol) or its value
// still carries an unresolved "$\" marker, in which case the original
// source lines are echoed verbatim rather than reconstructed.
func (f *formatter) writeVariable(v *Variable) {
	vi, known := variableTable[v.Name]
	unformatted := known && (vi.flags.has(FlagLeaveUnformatted) || vi.flags.has(FlagIgnoreWrapCol))
	if !v.Edited && (unformatted || containsNeutralDollar(v.Words)) {
		if raw := f.root.rawLines(v.NodeBase); raw != nil {
			for _, l := range raw {
				f.writeLine(l)
			}
			return
		}
	}

	words := append([]string(nil), v.Words...)
	if known && vi.flags.has(FlagSorted) {
		sortWords(v.Name, words)
	}
	if known && vi.flags.has(FlagDedup) {
		words = dedupWords(words)
	}

	head := v.Name
	if v.TrailingPlus {
		head += " "
	}
	head += v.Modifier.String()

	goalcol := v.Goalcol
	if goalcol == 0 {
		goalcol = IndentGoalcol(v.Name, v.Modifier, v.TrailingPlus)
	}
	if goalcol < 16 {
		goalcol = 16
	}

	firstSep := tabRun(len(head), goalcol)
	contSep := strings.Repeat("\t", tabCount(goalcol))

	if known && vi.flags.has(FlagPrintAsNewlines) {
		f.writePerLine(head, firstSep, contSep, words, v.Comment)
		return
	}
	f.writeWrapped(head, firstSep, contSep, goalcol, words, v.Comment, known && vi.flags.has(FlagIgnoreWrapCol))
}

// tabCount returns the number of tab stops (width 8) needed to cover n
// columns, ceil(n/8).
func tabCount(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + 7) / 8
}

// tabRun returns the tab separator bringing a line that starts at
// column startlen to goalcol, per the design's goal-column formula:
// always a tab run sized off the absolute distance between the two,
// even when startlen overshoots goalcol.
func tabRun(startlen, goalcol int) string {
	diff := startlen - goalcol
	if diff < 0 {
		diff = -diff
	}
	return strings.Repeat("\t", tabCount(diff))
}

func sortWords(name string, words []string) {
	for i := 1; i < len(words); i++ {
		for j := i; j > 0 && Compare(name, words[j-1], words[j]) > 0; j-- {
			words[j-1], words[j] = words[j], words[j-1]
		}
	}
}

func dedupWords(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := words[:0]
	for _, w := range words {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

func (f *formatter) writePerLine(head, firstSep, contSep string, words []string, comment string) {
	if len(words) == 0 {
		f.writeLine(appendComment(head, comment))
		return
	}
	sep := firstSep
	for i, w := range words {
		line := head + sep + w
		if i == len(words)-1 {
			f.writeLine(appendComment(line, comment))
		} else {
			f.writeLine(line + " \\")
		}
		head = ""
		sep = contSep
	}
}

func (f *formatter) writeWrapped(head, firstSep, contSep string, goalcol int, words []string, comment string, ignoreWrap bool) {
	wrapCol := f.opts.wrapCol()
	if ignoreWrap {
		wrapCol = 1 << 30
	}
	if len(words) == 0 {
		f.writeLine(appendComment(head, comment))
		return
	}
	cur := head + firstSep
	curLen := goalcol
	first := true
	for i, w := range words {
		candidate := curLen + len(w) + 1
		if !first && candidate > wrapCol {
			f.writeLine(cur + " \\")
			cur = contSep
			curLen = goalcol
			first = true
		}
		if !first {
			cur += " "
			curLen++
		}
		cur += w
		curLen += len(w)
		first = false
		if i == len(words)-1 {
			f.writeLine(appendComment(cur, comment))
		}
	}
}
