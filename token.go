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

	"github.com/golang/glog"
)

// neutralDollar is the tokenizer's marker for a "$\" at the end of a
// continued line: the backslash is replaced with this byte so later
// scans never mistake the dangling '$' for the start of a variable
// reference. It is reserved in intermediate state and must never
// appear in valid input or output (design §6).
const neutralDollar = '\x01'

// TokenType enumerates the token kinds the tokenizer emits.
type TokenType int

const (
	TokComment TokenType = iota
	TokConditionalStart
	TokConditionalToken
	TokConditionalEnd
	TokTargetStart
	TokTargetEnd
	TokTargetCommandStart
	TokTargetCommandToken
	TokTargetCommandEnd
	TokVariableStart
	TokVariableToken
	TokVariableEnd
)

// Token is one record of the builder-internal token stream.
type Token struct {
	Type        TokenType
	Data        string
	Range       LineRange
	VarName     string
	VarModifier Modifier
	VarPlus     bool
	CondType    string
	TargetName  string
	Comment     string
}

var conditionalDirectives = map[string]bool{
	"if": true, "ifdef": true, "ifndef": true, "ifmake": true, "ifnmake": true,
	"elif": true, "elifdef": true, "elifndef": true, "elifmake": true, "elifnmake": true,
	"else": true, "endif": true,
	"for": true, "endfor": true,
	"include": true, "sinclude": true, "-include": true, "dinclude": true,
	"error": true, "warning": true, "info": true,
	"export": true, "export-env": true, "export.env": true, "export-literal": true,
	"unexport": true, "unexport-env": true, "undef": true,
}

// Tokenizer turns joined logical lines into the builder's token
// stream. It is line-oriented like kati's parser.readLine, but unlike
// kati it never evaluates $-expansion: it only tracks brace/paren/
// quote nesting well enough to find word boundaries.
type Tokenizer struct {
	filename string
	lineno   int // first line of the logical (possibly joined) line
	elineno  int // last line (== lineno unless continued)
	inTarget bool
	tokens   []Token
	err      *ParserError
}

// NewTokenizer creates a Tokenizer for filename (used in error
// messages only).
func NewTokenizer(filename string) *Tokenizer {
	return &Tokenizer{filename: filename}
}

func (t *Tokenizer) fail(kind ErrorKind, line int, f string, a ...interface{}) {
	if t.err != nil {
		return
	}
	t.err = newError(kind, t.filename, line, f, a...)
}

// Err returns the first error the tokenizer hit, if any.
func (t *Tokenizer) Err() *ParserError { return t.err }

// Tokens returns the accumulated token stream.
func (t *Tokenizer) Tokens() []Token { return t.tokens }

func (t *Tokenizer) emit(tok Token) {
	t.tokens = append(t.tokens, tok)
}

// collapseLeadingSpace replaces a continuation line's leading run of
// spaces/tabs with a single space, per design §4.1.
func collapseLeadingSpace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i == 0 {
		return s
	}
	return " " + s[i:]
}

// splitContinuations groups physical lines into logical lines,
// returning each logical line's joined text and its 1-based first and
// last physical line numbers (both inclusive). A line ends with a
// continuation when it has an odd number of trailing backslashes; for
// "$\" at the very end the backslash becomes neutralDollar.
func splitContinuations(physical []string) []struct {
	text  string
	start int
	end   int
} {
	var out []struct {
		text  string
		start int
		end   int
	}
	i := 0
	for i < len(physical) {
		start := i
		var b strings.Builder
		for {
			line := physical[i]
			raw := strings.TrimRight(line, "\r")
			nbs := 0
			for nbs < len(raw) && raw[len(raw)-1-nbs] == '\\' {
				nbs++
			}
			cont := nbs%2 == 1
			body := raw
			if cont {
				body = raw[:len(raw)-1]
			}
			if i > start {
				body = collapseLeadingSpace(body)
			}
			if cont {
				if strings.HasSuffix(body, "$") {
					body += string(neutralDollar)
				} else if len(body) > 0 && body[len(body)-1] != ' ' && body[len(body)-1] != '\t' {
					body += " "
				}
			}
			b.WriteString(body)
			i++
			if !cont || i >= len(physical) {
				break
			}
		}
		out = append(out, struct {
			text  string
			start int
			end   int
		}{b.String(), start + 1, i})
	}
	return out
}

// FeedAll tokenizes every physical line of a file in one pass; it is
// the batch counterpart of the design's feed_line/finish streaming
// contract, which portfmt's single-shot read_from_buffer/read_from_file
// entry points use directly.
func (t *Tokenizer) FeedAll(physical []string) {
	for _, seg := range splitContinuations(physical) {
		t.feedLogical(seg.text, LineRange{seg.start, seg.end + 1})
		if t.err != nil {
			return
		}
	}
}

func (t *Tokenizer) feedLogical(line string, rng LineRange) {
	// A hard TAB in column 0 is always a recipe line, whether or not a
	// target header is currently open (design §9(b): a stray command
	// before any target synthesizes an Unassociated target rather than
	// erroring).
	if strings.HasPrefix(line, "\t") {
		t.emitTargetCommand(line[1:], rng)
		return
	}

	stripped := strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(stripped, " \t")

	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		if t.inTarget {
			t.emit(Token{Type: TokTargetEnd, Range: rng})
			t.inTarget = false
		}
		t.emit(Token{Type: TokComment, Data: stripped, Range: rng})
		return
	}

	if strings.HasPrefix(trimmed, ".") {
		rest := trimmed[1:]
		indent := 0
		for indent < len(rest) && (rest[indent] == ' ' || rest[indent] == '\t') {
			indent++
		}
		rest = rest[indent:]
		word, payload := splitWord(rest)
		if conditionalDirectives[word] {
			t.emitConditional(word, strings.Repeat(" ", indent), payload, rng)
			return
		}
		t.fail(Unspecified, rng.Start, "unknown directive %q", word)
		return
	}
	if strings.HasPrefix(trimmed, "include ") || trimmed == "include" {
		word, payload := splitWord(trimmed)
		if word == "include" {
			t.emitConditional("include", "", payload, rng)
			return
		}
	}

	if t.inTarget && !isAssignLine(trimmed) {
		t.emit(Token{Type: TokTargetEnd, Range: rng})
		t.inTarget = false
	}

	if isAssignLine(trimmed) {
		t.emitVariable(trimmed, rng)
		return
	}

	if idx := findUnquotedAny(trimmed, ":!"); idx >= 0 {
		t.emitTargetHeader(trimmed, rng)
		return
	}

	t.fail(ExpectedToken, rng.Start, "unable to classify line %q", line)
}

// splitWord splits s into its first whitespace-delimited word and the
// (left-trimmed) remainder.
func splitWord(s string) (string, string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i:], " \t")
}

// isAssignLine matches design §4.1 rule 4: "^ *[^ \t=]+ *[+!?:]?="
func isAssignLine(s string) bool {
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '=' {
			return i > 0
		}
		if c == ' ' || c == '\t' {
			break
		}
		if c == '+' || c == '!' || c == '?' || c == ':' {
			break
		}
		i++
	}
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i < len(s) && (s[i] == '+' || s[i] == '!' || s[i] == '?' || s[i] == ':') {
		i++
	}
	return i < len(s) && s[i] == '='
}

// findUnquotedAny returns the index of the first byte in chars that is
// not inside a ${...}/$(...)/quote group, or -1.
func findUnquotedAny(s string, chars string) int {
	depth := 0
	var open, close byte
	quote := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' && i+1 < len(s) {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		if depth == 0 && (c == '"' || c == '\'' || c == '`') {
			quote = c
			continue
		}
		if depth == 0 && c == '$' && i+1 < len(s) && (s[i+1] == '{' || s[i+1] == '(') {
			depth = 1
			open = s[i+1]
			close = '}'
			if open == '(' {
				close = ')'
			}
			i++
			continue
		}
		if depth > 0 {
			if s[i] == open {
				depth++
			} else if s[i] == close {
				depth--
			}
			continue
		}
		if strings.IndexByte(chars, c) >= 0 {
			// a colon that is actually a ":=" modifier is not a
			// target-header separator.
			if c == ':' && i+1 < len(s) && s[i+1] == '=' {
				continue
			}
			return i
		}
	}
	return -1
}

func (t *Tokenizer) emitConditional(directive, indent, payload string, rng LineRange) {
	t.emit(Token{Type: TokConditionalStart, CondType: directive, Range: rng})
	t.emit(Token{Type: TokConditionalToken, Data: directive, CondType: directive, Range: rng})
	text, comment := splitInlineComment(payload)
	for _, w := range splitWords(text) {
		t.emit(Token{Type: TokConditionalToken, Data: w, CondType: directive, Range: rng})
	}
	t.emit(Token{Type: TokConditionalEnd, CondType: directive, Data: indent, Comment: comment, Range: rng})
}

func (t *Tokenizer) emitTargetCommand(rest string, rng LineRange) {
	// A leading '#' in a recipe line is shell syntax, not a Makefile
	// comment: the whole line (flags included) is passed through to
	// the AST builder as words, which extracts the @/-/+ flag prefix.
	t.emit(Token{Type: TokTargetCommandStart, Range: rng})
	for _, w := range splitWords(rest) {
		t.emit(Token{Type: TokTargetCommandToken, Data: w, Range: rng})
	}
	t.emit(Token{Type: TokTargetCommandEnd, Range: rng})
}

func (t *Tokenizer) emitVariable(line string, rng LineRange) {
	i := findUnquotedAny(line, "=")
	if i < 0 {
		t.fail(ExpectedToken, rng.Start, "malformed variable assignment %q", line)
		return
	}
	lhs := strings.TrimRight(line[:i], " \t")
	op := "="
	plus := false
	if len(lhs) > 0 {
		switch lhs[len(lhs)-1] {
		case '+':
			op = "+="
			plus = true
			lhs = strings.TrimRight(lhs[:len(lhs)-1], " \t")
		case ':':
			op = ":="
			lhs = strings.TrimRight(lhs[:len(lhs)-1], " \t")
		case '?':
			op = "?="
			lhs = strings.TrimRight(lhs[:len(lhs)-1], " \t")
		case '!':
			op = "!="
			lhs = strings.TrimRight(lhs[:len(lhs)-1], " \t")
		}
	}
	rhs := strings.TrimLeft(line[i+1:], " \t")
	text, comment := splitInlineComment(rhs)

	mod := Assign
	switch op {
	case "+=":
		mod = Append
	case ":=":
		mod = Expand
	case "?=":
		mod = Optional
	case "!=":
		mod = Shell
	}

	t.emit(Token{Type: TokVariableStart, VarName: lhs, Range: rng})
	t.emit(Token{Type: TokVariableToken, VarName: lhs, VarModifier: mod, VarPlus: plus, Range: rng})
	for _, w := range splitWords(text) {
		t.emit(Token{Type: TokVariableToken, Data: w, Range: rng})
	}
	t.emit(Token{Type: TokVariableEnd, Comment: comment, Range: rng})
}

func (t *Tokenizer) emitTargetHeader(line string, rng LineRange) {
	if t.inTarget {
		t.emit(Token{Type: TokTargetEnd, Range: rng})
	}
	t.inTarget = true
	t.emit(Token{Type: TokTargetStart, Data: line, Range: rng})
}

// splitInlineComment splits off a trailing "# ..." that is not inside
// a ${...}/$(...)/quote group.
func splitInlineComment(s string) (text, comment string) {
	depth := 0
	var open, close byte
	quote := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' && i+1 < len(s) {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		if depth == 0 && (c == '"' || c == '\'' || c == '`') {
			quote = c
			continue
		}
		if depth == 0 && c == '$' && i+1 < len(s) && (s[i+1] == '{' || s[i+1] == '(') {
			depth = 1
			open = s[i+1]
			close = '}'
			if open == '(' {
				close = ')'
			}
			i++
			continue
		}
		if depth > 0 {
			if s[i] == open {
				depth++
			} else if s[i] == close {
				depth--
			}
			continue
		}
		if c == '#' {
			return strings.TrimRight(s[:i], " \t"), s[i:]
		}
	}
	return s, ""
}

// splitWords tokenizes a RHS/argument string into whitespace-separated
// words, preserving ${...}/$(...)/quote groups as single words. This
// generalizes kati's wordScanner (strutil.go) from "split on
// whitespace" to "split on whitespace, but don't split inside a
// reference or quoted group", since the design requires grouping to
// be visible to later passes (dedup, sort, sanitize-cmake-args).
func splitWords(s string) []string {
	var words []string
	i := 0
	n := len(s)
	for i < n {
		for i < n && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i >= n {
			break
		}
		start := i
		quote := byte(0)
		for i < n {
			c := s[i]
			if quote != 0 {
				if c == '\\' && i+1 < n {
					i += 2
					continue
				}
				if c == quote {
					quote = 0
				}
				i++
				continue
			}
			if c == ' ' || c == '\t' {
				break
			}
			if c == '"' || c == '\'' || c == '`' {
				quote = c
				i++
				continue
			}
			if c == '$' && i+1 < n {
				nc := s[i+1]
				if nc == '{' || nc == '(' {
					close := byte('}')
					open := nc
					if nc == '(' {
						close = ')'
					}
					depth := 1
					i += 2
					for i < n && depth > 0 {
						if s[i] == open {
							depth++
						} else if s[i] == close {
							depth--
						}
						i++
					}
					continue
				}
				if nc == '$' {
					i += 2
					continue
				}
				i += 2
				continue
			}
			i++
		}
		words = append(words, s[start:i])
	}
	if glog.V(3) {
		glog.Infof("splitWords(%q)=%q", s, words)
	}
	return words
}
