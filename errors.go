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
	"errors"
	"fmt"
)

// ErrorKind classifies a ParserError the way kati's EvalError carries
// a single error value, but portfmt needs to distinguish the outcomes
// listed in the design: Ok, DifferencesFound, EditFailed, ExpectedChar,
// ExpectedInt, ExpectedToken, InvalidArgument, Io, AstBuildFailed and
// Unspecified all mean different things to a caller.
type ErrorKind int

const (
	// Ok is the zero value: no error.
	Ok ErrorKind = iota
	// DifferencesFound names the outcome of a reformatted buffer that
	// is not byte-identical to the input. No function in this package
	// returns it: Diff and HasDiff report differences through their
	// return values.
	DifferencesFound
	// EditFailed wraps the error of an inner edit pass.
	EditFailed
	// ExpectedChar is the kind for an unterminated ${...}/$(...)/quote
	// group. The tokenizer does not raise it: such a group is kept as
	// part of a word.
	ExpectedChar
	// ExpectedInt is raised when an edit expects an integer token
	// (e.g. PORTREVISION) and finds something else.
	ExpectedInt
	// ExpectedToken is raised by the tokenizer for a line it cannot
	// classify or a malformed variable assignment.
	ExpectedToken
	// InvalidArgument is raised when an edit is invoked with
	// incompatible parameters, e.g. merge without a sub-parser.
	InvalidArgument
	// Io wraps a filesystem/stream error.
	Io
	// AstBuildFailed is raised by the AST builder (unbalanced
	// .if/.endif, .for/.endfor, empty directive payload).
	AstBuildFailed
	// Unspecified covers everything else (unknown directive, category
	// Makefile with an unsupported node, ...).
	Unspecified
)

func (k ErrorKind) String() string {
	switch k {
	case Ok:
		return "ok"
	case DifferencesFound:
		return "differences found"
	case EditFailed:
		return "edit failed"
	case ExpectedChar:
		return "expected char"
	case ExpectedInt:
		return "expected int"
	case ExpectedToken:
		return "expected token"
	case InvalidArgument:
		return "invalid argument"
	case Io:
		return "io"
	case AstBuildFailed:
		return "ast build failed"
	default:
		return "unspecified"
	}
}

// ParserError is the single error type the core returns. Once a
// Parser holds a non-Ok ParserError every subsequent operation on it
// is a no-op that returns the same error (see Parser.fail).
type ParserError struct {
	Kind     ErrorKind
	Filename string
	Line     int
	Msg      string
	Err      error
}

func (e *ParserError) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Filename != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Filename, e.Line, msg)
	}
	return msg
}

func (e *ParserError) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, filename string, line int, f string, a ...interface{}) *ParserError {
	return &ParserError{
		Kind:     kind,
		Filename: filename,
		Line:     line,
		Msg:      fmt.Sprintf(f, a...),
	}
}

func wrapError(kind ErrorKind, filename string, line int, err error) *ParserError {
	if pe, ok := err.(*ParserError); ok {
		return pe
	}
	return &ParserError{
		Kind:     kind,
		Filename: filename,
		Line:     line,
		Err:      err,
	}
}

// errNothingToMerge mirrors kati's worker.go sentinel-error style
// (errNothingDone) for a condition that is not itself a parser-state
// error.
var errNothingToMerge = errors.New("nothing to merge")

// errUnsupportedCategoryNode is returned by category Makefile
// formatting for any node other than a comment, a variable, or the
// trailing .include <bsd.port.subdir.mk>; a variable other than
// COMMENT or SUBDIR gets its own error naming it.
var errUnsupportedCategoryNode = errors.New("unsupported node type in category Makefile")
