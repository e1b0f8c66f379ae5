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

func buildString(t *testing.T, lines ...string) *Root {
	t.Helper()
	tz := NewTokenizer("Makefile")
	tz.FeedAll(lines)
	if err := tz.Err(); err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	root, err := Build(tz.Tokens(), "Makefile", NewPool())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return root
}

func TestBuildSimpleTarget(t *testing.T) {
	root := buildString(t, "all: foo bar", "\techo hi")
	if len(root.Body) != 1 {
		t.Fatalf("expected 1 node, got %d", len(root.Body))
	}
	tgt, ok := root.Body[0].(*Target)
	if !ok {
		t.Fatalf("expected *Target, got %T", root.Body[0])
	}
	if len(tgt.Body) != 1 {
		t.Fatalf("expected 1 command, got %d", len(tgt.Body))
	}
	cmd, ok := tgt.Body[0].(*TargetCommand)
	if !ok {
		t.Fatalf("expected *TargetCommand, got %T", tgt.Body[0])
	}
	if cmd.Target != tgt {
		t.Errorf("TargetCommand.Target does not point back at its Target")
	}
}

func TestBuildIfElifElseChain(t *testing.T) {
	root := buildString(t,
		".if ${A}",
		"FOO=\t1",
		".elif ${B}",
		"FOO=\t2",
		".else",
		"FOO=\t3",
		".endif",
	)
	if len(root.Body) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(root.Body))
	}
	head, ok := root.Body[0].(*If)
	if !ok {
		t.Fatalf("expected *If, got %T", root.Body[0])
	}
	if head.IfParent != nil {
		t.Errorf("head.IfParent should be nil")
	}
	if len(head.Orelse) != 1 {
		t.Fatalf("expected 1 elif link, got %d", len(head.Orelse))
	}
	elif, ok := head.Orelse[0].(*If)
	if !ok || elif.IfParent != head {
		t.Fatalf("expected elif link pointing back at head, got %#v", head.Orelse[0])
	}
	if len(elif.Orelse) != 1 {
		t.Fatalf("expected 1 else link, got %d", len(elif.Orelse))
	}
	els, ok := elif.Orelse[0].(*If)
	if !ok || els.Kind != IfElse || els.IfParent != elif {
		t.Fatalf("expected else link pointing back at elif, got %#v", elif.Orelse[0])
	}
}

func TestBuildForLoop(t *testing.T) {
	root := buildString(t, ".for i in 1 2 3", "FOO+=\t${i}", ".endfor")
	f, ok := root.Body[0].(*For)
	if !ok {
		t.Fatalf("expected *For, got %T", root.Body[0])
	}
	if len(f.Words) != 3 {
		t.Errorf("expected 3 loop words, got %d", len(f.Words))
	}
	if len(f.Body) != 1 {
		t.Errorf("expected 1 body node, got %d", len(f.Body))
	}
}

func TestBuildUnterminatedIfFails(t *testing.T) {
	tz := NewTokenizer("Makefile")
	tz.FeedAll([]string{".if ${A}", "FOO=\t1"})
	if err := tz.Err(); err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	_, err := Build(tz.Tokens(), "Makefile", NewPool())
	if err == nil {
		t.Fatal("expected an error for an unterminated .if")
	}
	pe, ok := err.(*ParserError)
	if !ok || pe.Kind != AstBuildFailed {
		t.Errorf("expected AstBuildFailed, got %#v", err)
	}
}

func TestAsDeletedPreservesRange(t *testing.T) {
	root := buildString(t, "FOO=\tbar")
	v := root.Body[0]
	orig := v.base().Range()
	d := asDeleted(v)
	if d.base().Range() != orig {
		t.Errorf("asDeleted changed the line range: got %v, want %v", d.base().Range(), orig)
	}
	if _, ok := d.(*Deleted); !ok {
		t.Errorf("asDeleted did not return a *Deleted")
	}
}
