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
	"strings"
)

// LintBsdPort is portclippy's primary pass: it flags structural
// mistakes specific to the ports tree (missing PORTNAME/MAINTAINER,
// COMMENT ending in a period, WWW not a URL) without touching the
// tree.
type LintBsdPort struct{}

func (LintBsdPort) Name() string { return "lint-bsd-port" }

func (LintBsdPort) Apply(root *Root, pool *Pool, md *Metadata) ([]Finding, error) {
	var findings []Finding
	if md.Portname() == "" {
		findings = append(findings, Finding{Message: "PORTNAME is not set"})
	}
	for _, v := range LookupVariable(root, "COMMENT") {
		text := strings.Join(v.Words, " ")
		if strings.HasSuffix(text, ".") {
			findings = append(findings, Finding{Line: v.LineStart, Message: "COMMENT should not end with a period"})
		}
		if text != "" && strings.ToUpper(text[:1]) != text[:1] {
			findings = append(findings, Finding{Line: v.LineStart, Message: "COMMENT should start with a capital letter"})
		}
	}
	if len(LookupVariable(root, "MAINTAINER")) == 0 {
		findings = append(findings, Finding{Message: "MAINTAINER is not set"})
	}
	for _, v := range LookupVariable(root, "WWW") {
		for _, w := range v.Words {
			if !strings.HasPrefix(w, "http://") && !strings.HasPrefix(w, "https://") {
				findings = append(findings, Finding{Line: v.LineStart, Message: "WWW should be a URL"})
			}
		}
	}
	return findings, nil
}

// LintClones flags two successive assignments to the same variable
// (whatever their modifiers) that carry identical word lists, a copy/paste mistake
// original_source/parser/edits/lint's duplicate-value check existed
// to catch and which the distilled spec summary dropped.
type LintClones struct{}

func (LintClones) Name() string { return "lint-clones" }

func (LintClones) Apply(root *Root, pool *Pool, md *Metadata) ([]Finding, error) {
	var findings []Finding
	seen := map[string][]*Variable{}
	WalkVariables(root, func(v *Variable) WalkAction {
		seen[v.Name] = append(seen[v.Name], v)
		return WalkContinue
	})
	for name, vars := range seen {
		if len(vars) < 2 {
			continue
		}
		for i := 1; i < len(vars); i++ {
			if sameWords(vars[i-1].Words, vars[i].Words) {
				findings = append(findings, Finding{
					Line:    vars[i].LineStart,
					Message: fmt.Sprintf("%s duplicates the assignment on line %d", name, vars[i-1].LineStart),
				})
			}
		}
	}
	return findings, nil
}

func sameWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// LintCommentedPortrevision flags a "#PORTREVISION=" comment line
// left behind after a revision bump was reverted by hand, recovered
// from original_source's lint pass of the same name.
type LintCommentedPortrevision struct{}

func (LintCommentedPortrevision) Name() string { return "lint-commented-portrevision" }

func (LintCommentedPortrevision) Apply(root *Root, pool *Pool, md *Metadata) ([]Finding, error) {
	var findings []Finding
	Walk(root, func(n Node) WalkAction {
		c, ok := n.(*Comment)
		if !ok {
			return WalkContinue
		}
		for _, l := range c.Lines {
			t := strings.TrimLeft(l, "# \t")
			if strings.HasPrefix(t, "PORTREVISION") {
				findings = append(findings, Finding{Line: c.LineStart, Message: "commented-out PORTREVISION found"})
			}
		}
		return WalkContinue
	})
	return findings, nil
}

// LintOrder flags a variable assignment that appears after a variable
// belonging to a later Block, e.g. PORTNAME after USES.
type LintOrder struct{}

func (LintOrder) Name() string { return "lint-order" }

func (LintOrder) Apply(root *Root, pool *Pool, md *Metadata) ([]Finding, error) {
	var findings []Finding
	highest := -1
	highestName := ""
	WalkVariables(root, func(v *Variable) WalkAction {
		vi, ok := variableTable[v.Name]
		if !ok {
			return WalkContinue
		}
		if int(vi.block) < highest {
			findings = append(findings, Finding{
				Line:    v.LineStart,
				Message: fmt.Sprintf("%s (block %s) appears after %s (block %s)", v.Name, vi.block, highestName, Block(highest)),
			})
			return WalkContinue
		}
		highest = int(vi.block)
		highestName = v.Name
		return WalkContinue
	})
	return findings, nil
}
