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
	"bytes"
	"strings"
	"testing"
)

func formatString(t *testing.T, opts FormatOptions, lines ...string) string {
	t.Helper()
	root := buildString(t, lines...)
	var buf bytes.Buffer
	if err := Format(root, opts, &buf); err != nil {
		t.Fatalf("Format: %v", err)
	}
	return buf.String()
}

func TestFormatVariableAlignsGoalColumn(t *testing.T) {
	got := formatString(t, FormatOptions{}, "USES=\tcabal")
	want := "USES=\t\tcabal\n"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatSortsUses(t *testing.T) {
	got := formatString(t, FormatOptions{}, "USES=\tzip cabal gmake")
	if !strings.Contains(got, "cabal") || !strings.Contains(got, "gmake") {
		t.Fatalf("expected all words preserved, got %q", got)
	}
	cabalIdx := strings.Index(got, "cabal")
	gmakeIdx := strings.Index(got, "gmake")
	zipIdx := strings.Index(got, "zip")
	if !(cabalIdx < gmakeIdx && gmakeIdx < zipIdx) {
		t.Errorf("expected alphabetical order cabal < gmake < zip, got %q", got)
	}
}

func TestFormatWrapsLongLines(t *testing.T) {
	words := strings.Repeat("reallylongworditem ", 10)
	got := formatString(t, FormatOptions{WrapCol: 40}, "BUILD_DEPENDS=\t"+strings.TrimSpace(words))
	if !strings.Contains(got, "\\\n") {
		t.Errorf("expected wrapped output to contain a continuation, got %q", got)
	}
}

func TestFormatTargetAndCommand(t *testing.T) {
	got := formatString(t, FormatOptions{}, "all: foo", "\t@echo hi")
	want := "all: foo\n\t@echo hi\n"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatCategoryMakefile(t *testing.T) {
	src := "COMMENT=\tDatabases\n" +
		"SUBDIR+=\tzzz\n" +
		"SUBDIR+=\taaa\n" +
		".include <bsd.port.subdir.mk>\n"
	p := NewParserFromBuffer([]byte(src), "Makefile")
	if err := p.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer p.Release()

	got, err := p.Format(FormatOptions{CategoryMakefile: true})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	want := "    COMMENT = Databases\n" +
		"    SUBDIR += aaa\n" +
		"    SUBDIR += zzz\n" +
		".include <bsd.port.subdir.mk>\n"
	if string(got) != want {
		t.Errorf("Format(CategoryMakefile) = %q, want %q", got, want)
	}
}

func TestFormatCategoryMakefileRejectsUnsupportedNode(t *testing.T) {
	root := buildString(t, "all: foo", "\techo hi")
	var buf bytes.Buffer
	err := Format(root, FormatOptions{CategoryMakefile: true}, &buf)
	if err == nil {
		t.Fatal("expected an error for a target in category Makefile mode")
	}
}

func TestFormatLeaveUnformattedEchoesRawLines(t *testing.T) {
	root, pool, err := ReadFromBuffer([]byte("GO_BUILDFLAGS=\t-ldflags \"-s -w\"\n"), "Makefile")
	if err != nil {
		t.Fatalf("ReadFromBuffer: %v", err)
	}
	defer pool.Release()

	var buf bytes.Buffer
	if err := Format(root, FormatOptions{}, &buf); err != nil {
		t.Fatalf("Format: %v", err)
	}
	want := "GO_BUILDFLAGS=\t-ldflags \"-s -w\"\n"
	if buf.String() != want {
		t.Errorf("Format() = %q, want %q", buf.String(), want)
	}
}

func TestHasDiffDetectsChange(t *testing.T) {
	root := buildString(t, "USES=\tcabal zip")
	changed, err := HasDiff([]byte("USES=\tcabal zip\n"), root, FormatOptions{})
	if err != nil {
		t.Fatalf("HasDiff: %v", err)
	}
	if !changed {
		t.Errorf("expected HasDiff to report a change after goal-column alignment")
	}
}
