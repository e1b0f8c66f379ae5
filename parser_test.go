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
	"strings"
	"testing"
)

func TestParserFromBufferAppliesMandatoryPasses(t *testing.T) {
	src := "PORTNAME=\tfoo\n" +
		"USES=\tcabal cabal gmake\n" +
		"\n" +
		"\n" +
		"MAINTAINER=\tports@FreeBSD.org  \n"
	p := NewParserFromBuffer([]byte(src), "Makefile")
	if err := p.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer p.Release()

	uses := LookupVariable(p.Root(), "USES")
	if len(uses) != 1 || len(uses[0].Words) != 2 {
		t.Fatalf("expected USES deduplicated to 2 words, got %+v", uses)
	}

	buf, err := p.Format(FormatOptions{})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if strings.Contains(string(buf), "\n\n\n") {
		t.Errorf("expected consecutive empty lines to be collapsed, got %q", buf)
	}
}

func TestParserLatchesFirstError(t *testing.T) {
	p := NewParserFromBuffer([]byte(".if ${A}\nFOO=\t1\n"), "Makefile")
	if err := p.Err(); err == nil {
		t.Fatal("expected an error for an unterminated .if")
	}
	first := p.Err()
	if got := p.Root(); got != nil {
		t.Errorf("Root() after an error should be nil, got %v", got)
	}
	if _, err := p.ApplyEdit(BumpRevision{}); err != first {
		t.Errorf("ApplyEdit after an error should return the latched error unchanged")
	}
	if err := p.Write(FormatOptions{}, "-"); err != first {
		t.Errorf("Write after an error should return the latched error unchanged")
	}
}

func TestParserBumpRevisionRoundTrip(t *testing.T) {
	p := NewParserFromBuffer([]byte("PORTNAME=\tfoo\nPORTREVISION=\t1\n"), "Makefile")
	if err := p.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer p.Release()
	if _, err := p.ApplyEdit(BumpRevision{}); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}
	buf, err := p.Format(FormatOptions{})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(string(buf), "2") {
		t.Errorf("expected bumped PORTREVISION=2 in output, got %q", buf)
	}
}

func TestParserGetVariable(t *testing.T) {
	p := NewParserFromBuffer([]byte("CATEGORIES=\tdevel net\n"), "Makefile")
	if err := p.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer p.Release()
	got := GetVariable(p.Root(), "CATEGORIES")
	want := []string{"devel", "net"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("GetVariable(CATEGORIES) = %v, want %v", got, want)
	}
}
