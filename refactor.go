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
	"strconv"
	"strings"
)

// SanitizeComments trims trailing whitespace from the inline comment
// of every Variable, Target and TargetCommand, the mandatory first
// pass so every later pass sees a normalized Comment field.
type SanitizeComments struct{}

func (SanitizeComments) Name() string { return "sanitize-comments" }

func (SanitizeComments) Apply(root *Root, pool *Pool, md *Metadata) ([]Finding, error) {
	Walk(root, func(n Node) WalkAction {
		switch v := n.(type) {
		case *Variable:
			if trimmed := strings.TrimRight(v.Comment, " \t"); trimmed != v.Comment {
				v.Comment = trimmed
				v.MarkEdited()
			}
		case *TargetCommand:
			if trimmed := strings.TrimRight(v.Comment, " \t"); trimmed != v.Comment {
				v.Comment = trimmed
				v.MarkEdited()
			}
		case *Target:
			if trimmed := strings.TrimRight(v.Comment, " \t"); trimmed != v.Comment {
				v.Comment = trimmed
				v.MarkEdited()
			}
		}
		return WalkContinue
	})
	return nil, nil
}

// SanitizeCMakeArgs fuses a bare "-D" word in CMAKE_ARGS with the word
// after it ("-D FOO=ON" becomes "-DFOO=ON") and drops a space right
// after "-D" inside a single word; it changes no other content.
type SanitizeCMakeArgs struct{}

func (SanitizeCMakeArgs) Name() string { return "sanitize-cmake-args" }

func (SanitizeCMakeArgs) Apply(root *Root, pool *Pool, md *Metadata) ([]Finding, error) {
	WalkVariables(root, func(v *Variable) WalkAction {
		if v.Name != "CMAKE_ARGS" {
			return WalkContinue
		}
		changed := false
		var words []string
		for i := 0; i < len(v.Words); i++ {
			w := v.Words[i]
			switch {
			case w == "-D" && i+1 < len(v.Words):
				i++
				w = "-D" + v.Words[i]
				changed = true
			case strings.HasPrefix(w, "-D "):
				w = "-D" + strings.TrimPrefix(w, "-D ")
				changed = true
			}
			words = append(words, w)
		}
		if changed {
			v.Words = words
			v.MarkEdited()
		}
		return WalkContinue
	})
	return nil, nil
}

// CollapseAdjacentVariables merges consecutive assignments to the
// same variable into one node when the second repeats the first's
// modifier or appends ("+=") to a plain "=", keeping the first node's
// position, modifier and comment. This is the pass that lets
// "FOO= a\nFOO+= b" written across two separate statements render as
// a single aligned block.
type CollapseAdjacentVariables struct{}

func (CollapseAdjacentVariables) Name() string { return "collapse-adjacent-variables" }

func (CollapseAdjacentVariables) Apply(root *Root, pool *Pool, md *Metadata) ([]Finding, error) {
	collapseBody(&root.Body)
	Walk(root, func(n Node) WalkAction {
		switch v := n.(type) {
		case *If:
			collapseBody(&v.Body)
			collapseBody(&v.Orelse)
		case *For:
			collapseBody(&v.Body)
		case *Target:
			collapseBody(&v.Body)
		case *Include:
			collapseBody(&v.Body)
		}
		return WalkContinue
	})
	return nil, nil
}

func collapseBody(body *[]Node) {
	out := (*body)[:0]
	for _, n := range *body {
		if len(out) > 0 {
			prev, pok := out[len(out)-1].(*Variable)
			cur, cok := n.(*Variable)
			if pok && cok && prev.Name == cur.Name && (prev.Modifier == cur.Modifier || (prev.Modifier == Assign && cur.Modifier == Append)) && !cur.TrailingPlus && !prev.TrailingPlus {
				prev.Words = append(prev.Words, cur.Words...)
				prev.LineEnd = cur.LineEnd
				prev.MarkEdited()
				continue
			}
		}
		out = append(out, n)
	}
	*body = out
}

// SanitizeAppendModifier rewrites a variable's first assignment from
// "+=" to "=" when nothing assigns to it earlier in the same body,
// since a leading "+=" onto an unset variable is equivalent to "="
// but confusing to read, per rules.c's normalization of this case.
type SanitizeAppendModifier struct{}

func (SanitizeAppendModifier) Name() string { return "sanitize-append-modifier" }

func (SanitizeAppendModifier) Apply(root *Root, pool *Pool, md *Metadata) ([]Finding, error) {
	sanitizeAppendBody(root.Body)
	Walk(root, func(n Node) WalkAction {
		switch v := n.(type) {
		case *If:
			sanitizeAppendBody(v.Body)
			sanitizeAppendBody(v.Orelse)
		case *For:
			sanitizeAppendBody(v.Body)
		case *Target:
			sanitizeAppendBody(v.Body)
		case *Include:
			sanitizeAppendBody(v.Body)
		}
		return WalkContinue
	})
	return nil, nil
}

func sanitizeAppendBody(body []Node) {
	seen := map[string]bool{}
	for _, n := range body {
		v, ok := n.(*Variable)
		if !ok {
			continue
		}
		if v.Modifier == Append && !seen[v.Name] {
			v.Modifier = Assign
			v.MarkEdited()
		}
		seen[v.Name] = true
	}
}

// DedupTokens removes duplicate words from variables flagged
// FlagDedup (USES today), keeping the first occurrence's position.
type DedupTokens struct{}

func (DedupTokens) Name() string { return "dedup-tokens" }

func (DedupTokens) Apply(root *Root, pool *Pool, md *Metadata) ([]Finding, error) {
	WalkVariables(root, func(v *Variable) WalkAction {
		vi, ok := variableTable[v.Name]
		if !ok || !vi.flags.has(FlagDedup) {
			return WalkContinue
		}
		deduped := dedupWords(append([]string(nil), v.Words...))
		if len(deduped) != len(v.Words) {
			v.Words = deduped
			v.MarkEdited()
		}
		return WalkContinue
	})
	return nil, nil
}

// RemoveConsecutiveEmptyLines collapses any run of more than one
// adjacent blank Comment line into a single blank line, the mandatory
// last pass so every earlier structural rewrite's leftover gaps get
// squashed exactly once.
type RemoveConsecutiveEmptyLines struct{}

func (RemoveConsecutiveEmptyLines) Name() string { return "remove-consecutive-empty-lines" }

func (RemoveConsecutiveEmptyLines) Apply(root *Root, pool *Pool, md *Metadata) ([]Finding, error) {
	squashBody(&root.Body)
	Walk(root, func(n Node) WalkAction {
		switch v := n.(type) {
		case *Comment:
			squashCommentLines(v)
		case *If:
			squashBody(&v.Body)
			squashBody(&v.Orelse)
		case *For:
			squashBody(&v.Body)
		case *Target:
			squashBody(&v.Body)
		case *Include:
			squashBody(&v.Body)
		}
		return WalkContinue
	})
	return nil, nil
}

// squashCommentLines collapses any run of more than one blank line
// within a single Comment's Lines, the same rule squashBody applies
// across sibling nodes, needed because the AST builder folds a run of
// adjacent blank source lines into one Comment node rather than one
// per line.
func squashCommentLines(c *Comment) {
	out := c.Lines[:0]
	prevBlank := false
	for _, l := range c.Lines {
		isBlank := strings.TrimSpace(l) == ""
		if isBlank && prevBlank {
			continue
		}
		out = append(out, l)
		prevBlank = isBlank
	}
	c.Lines = out
}

func squashBody(body *[]Node) {
	out := (*body)[:0]
	prevBlank := false
	for _, n := range *body {
		c, ok := n.(*Comment)
		isBlank := ok && len(c.Lines) == 1 && strings.TrimSpace(c.Lines[0]) == ""
		if isBlank && prevBlank {
			continue
		}
		out = append(out, n)
		prevBlank = isBlank
	}
	*body = out
}

// BumpRevision is the optional edit backing "portedit bump-revision":
// increments the last PORTREVISION assignment, or, if there is none,
// inserts PORTREVISION=1 after the last variable of BlockPortName (or
// at the end of the file). A PORTREVISION value that is not an integer
// is an ExpectedInt error.
type BumpRevision struct{}

func (BumpRevision) Name() string { return "bump-revision" }

func (BumpRevision) Apply(root *Root, pool *Pool, md *Metadata) ([]Finding, error) {
	vars := LookupVariable(root, "PORTREVISION")
	if len(vars) > 0 {
		v := vars[len(vars)-1]
		n := 0
		if len(v.Words) == 1 {
			var err error
			if n, err = strconv.Atoi(v.Words[0]); err != nil {
				return nil, newError(ExpectedInt, "", v.LineStart, "PORTREVISION is not an integer: %q", v.Words[0])
			}
		}
		v.Words = []string{strconv.Itoa(n + 1)}
		v.MarkEdited()
		return nil, nil
	}
	insertAfterBlock(root, pool, BlockPortName, "PORTREVISION", Assign, []string{"1"})
	return nil, nil
}

// SetVersion is the optional edit backing "portedit set-version": it
// rewrites PORTVERSION/DISTVERSION and clears PORTREVISION/PORTEPOCH
// the way a maintainer bumping a port manually would.
type SetVersion struct {
	Version string
}

func (SetVersion) Name() string { return "set-version" }

func (s SetVersion) Apply(root *Root, pool *Pool, md *Metadata) ([]Finding, error) {
	changed := false
	for _, name := range []string{"PORTVERSION", "DISTVERSION"} {
		for _, v := range LookupVariable(root, name) {
			v.Words = []string{s.Version}
			v.MarkEdited()
			changed = true
		}
	}
	for _, name := range []string{"PORTREVISION", "PORTEPOCH"} {
		for _, v := range LookupVariable(root, name) {
			v.Words = []string{"0"}
			v.MarkEdited()
		}
	}
	_ = changed
	return nil, nil
}

// Merge is the optional edit backing "portedit merge": for every
// Variable in the donor tree, it appends each donor word not already
// present to root's last assignment of the same name, whatever either
// side's modifier (words are never replaced), or, when root has none,
// inserts a copy of the donor assignment with insertAfterBlock. Only
// Variable nodes are merged: donor targets, conditionals and other
// nodes are not copied.
type Merge struct {
	Donor *Root
}

func (Merge) Name() string { return "merge" }

func (m Merge) Apply(root *Root, pool *Pool, md *Metadata) ([]Finding, error) {
	if m.Donor == nil {
		return nil, wrapError(InvalidArgument, "", 0, errNothingToMerge)
	}
	WalkVariables(m.Donor, func(dv *Variable) WalkAction {
		existing := LookupVariable(root, dv.Name)
		if len(existing) > 0 {
			last := existing[len(existing)-1]
			for _, w := range dv.Words {
				if !contains(last.Words, w) {
					last.Words = append(last.Words, w)
				}
			}
			last.MarkEdited()
			return WalkContinue
		}
		vi, ok := variableTable[dv.Name]
		block := BlockUnknown
		if ok {
			block = vi.block
		}
		insertAfterBlock(root, pool, block, dv.Name, dv.Modifier, append([]string(nil), dv.Words...))
		return WalkContinue
	})
	return nil, nil
}

// insertAfterBlock appends a freshly allocated Variable node to
// root.Body, after the last existing node whose variable belongs to
// the same Block (or at the end, if none do). It's a simplified stand
// in for rules.c's full block-ordering insertion sort: good enough to
// keep a newly introduced variable near its siblings without
// resorting the whole tree.
func insertAfterBlock(root *Root, pool *Pool, block Block, name string, mod Modifier, words []string) {
	v := pool.newVariable()
	v.Name = name
	v.Modifier = mod
	v.Words = words
	insertAt := len(root.Body)
	for i, n := range root.Body {
		existing, ok := n.(*Variable)
		if !ok {
			continue
		}
		vi, ok := variableTable[existing.Name]
		if ok && vi.block == block {
			insertAt = i + 1
		}
	}
	root.Body = append(root.Body, nil)
	copy(root.Body[insertAt+1:], root.Body[insertAt:])
	root.Body[insertAt] = v
	v.MarkEdited()
}

