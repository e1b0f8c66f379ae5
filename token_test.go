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
	"reflect"
	"testing"
)

func TestSplitWords(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want []string
	}{
		{in: "foo", want: []string{"foo"}},
		{in: "  	 ", want: nil},
		{in: "foo bar", want: []string{"foo", "bar"}},
		{in: "foo ${BAR BAZ} qux", want: []string{"foo", "${BAR BAZ}", "qux"}},
		{in: `"a b" c`, want: []string{`"a b"`, "c"}},
	} {
		got := splitWords(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("splitWords(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsAssignLine(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want bool
	}{
		{"FOO= bar", true},
		{"FOO+= bar", true},
		{"FOO:= bar", true},
		{"FOO?= bar", true},
		{"FOO!= bar", true},
		{"all: foo", false},
		{"foo bar", false},
	} {
		if got := isAssignLine(tc.in); got != tc.want {
			t.Errorf("isAssignLine(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTokenizerTargetCommandBeforeHeader(t *testing.T) {
	tz := NewTokenizer("Makefile")
	tz.FeedAll([]string{"\techo hi"})
	if err := tz.Err(); err != nil {
		t.Fatalf("unexpected tokenizer error: %v", err)
	}
	toks := tz.Tokens()
	if len(toks) == 0 || toks[0].Type != TokTargetCommandStart {
		t.Fatalf("expected a leading TokTargetCommandStart, got %#v", toks)
	}
}

func TestTokenizerVariableAssignment(t *testing.T) {
	tz := NewTokenizer("Makefile")
	tz.FeedAll([]string{"PORTNAME=\tfoo"})
	if err := tz.Err(); err != nil {
		t.Fatalf("unexpected tokenizer error: %v", err)
	}
	toks := tz.Tokens()
	if len(toks) < 2 || toks[0].Type != TokVariableStart || toks[0].VarName != "PORTNAME" {
		t.Fatalf("expected a TokVariableStart for PORTNAME, got %#v", toks)
	}
}

func TestTokenizerContinuationJoin(t *testing.T) {
	tz := NewTokenizer("Makefile")
	tz.FeedAll([]string{"FOO=\ta \\", "\tb"})
	if err := tz.Err(); err != nil {
		t.Fatalf("unexpected tokenizer error: %v", err)
	}
	root, err := Build(tz.Tokens(), "Makefile", NewPool())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	v, ok := root.Body[0].(*Variable)
	if !ok {
		t.Fatalf("expected a Variable, got %T", root.Body[0])
	}
	want := []string{"a", "b"}
	if !reflect.DeepEqual(v.Words, want) {
		t.Errorf("Words = %q, want %q", v.Words, want)
	}
}
