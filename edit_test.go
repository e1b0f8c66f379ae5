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

import "testing"

func buildAndEdit(t *testing.T, e Edit, lines ...string) (*Root, []Finding) {
	t.Helper()
	root := buildString(t, lines...)
	pool := NewPool()
	md := NewMetadata(root)
	findings, err := e.Apply(root, pool, md)
	if err != nil {
		t.Fatalf("%s.Apply: %v", e.Name(), err)
	}
	return root, findings
}

func TestCollapseAdjacentVariables(t *testing.T) {
	root, _ := buildAndEdit(t, CollapseAdjacentVariables{}, "FOO=\ta", "FOO+=\tb")
	if len(root.Body) != 1 {
		t.Fatalf("expected 1 node after collapse, got %d", len(root.Body))
	}
	v := root.Body[0].(*Variable)
	if len(v.Words) != 2 || v.Words[0] != "a" || v.Words[1] != "b" {
		t.Errorf("Words = %v, want [a b]", v.Words)
	}
}

func TestSanitizeAppendModifier(t *testing.T) {
	root, _ := buildAndEdit(t, SanitizeAppendModifier{}, "FOO+=\ta")
	v := root.Body[0].(*Variable)
	if v.Modifier != Assign {
		t.Errorf("Modifier = %v, want Assign", v.Modifier)
	}
}

func TestSanitizeAppendModifierKeepsSecondAppend(t *testing.T) {
	root, _ := buildAndEdit(t, SanitizeAppendModifier{}, "FOO=\ta", "BAR+=\tb", "FOO+=\tc")
	// FOO's second assignment legitimately appends; only a variable's
	// first appearance in a body should ever be rewritten.
	third := root.Body[2].(*Variable)
	if third.Modifier != Append {
		t.Errorf("Modifier = %v, want Append", third.Modifier)
	}
}

func TestDedupTokens(t *testing.T) {
	root, _ := buildAndEdit(t, DedupTokens{}, "USES=\tcabal cabal gmake")
	v := root.Body[0].(*Variable)
	if len(v.Words) != 2 {
		t.Errorf("Words = %v, want 2 deduplicated entries", v.Words)
	}
}

func TestBumpRevisionInsertsWhenAbsent(t *testing.T) {
	root := buildString(t, "PORTNAME=\tfoo")
	pool := NewPool()
	md := NewMetadata(root)
	if _, err := (BumpRevision{}).Apply(root, pool, md); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	vars := LookupVariable(root, "PORTREVISION")
	if len(vars) != 1 || vars[0].Words[0] != "1" {
		t.Errorf("expected PORTREVISION=1 inserted, got %v", vars)
	}
}

func TestBumpRevisionIncrementsExisting(t *testing.T) {
	root := buildString(t, "PORTNAME=\tfoo", "PORTREVISION=\t3")
	pool := NewPool()
	md := NewMetadata(root)
	if _, err := (BumpRevision{}).Apply(root, pool, md); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	vars := LookupVariable(root, "PORTREVISION")
	if len(vars) != 1 || vars[0].Words[0] != "4" {
		t.Errorf("expected PORTREVISION=4, got %v", vars)
	}
}

func TestLintBsdPortFlagsMissingMaintainer(t *testing.T) {
	_, findings := buildAndEdit(t, LintBsdPort{}, "PORTNAME=\tfoo", "COMMENT=\tA thing")
	found := false
	for _, f := range findings {
		if f.Message == "MAINTAINER is not set" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a MAINTAINER finding, got %v", findings)
	}
}

func TestLintClonesFindsDuplicate(t *testing.T) {
	root, findings := buildAndEdit(t, LintClones{}, "USES=\tcabal", "PORTNAME=\tfoo", "USES=\tcabal")
	_ = root
	if len(findings) != 1 {
		t.Fatalf("expected 1 clone finding, got %d: %v", len(findings), findings)
	}
}

func TestLintOrderFlagsOutOfOrderBlocks(t *testing.T) {
	root, findings := buildAndEdit(t, LintOrder{}, "USES=\tcabal", "PORTNAME=\tfoo")
	_ = root
	if len(findings) != 1 {
		t.Fatalf("expected 1 order finding (PORTNAME after USES), got %d: %v", len(findings), findings)
	}
}
