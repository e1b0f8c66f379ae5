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

// Small byte/string helpers lifted from kati's strutil.go. Kati needed
// these for make-expression evaluation (pattern substitution,
// $-reference skipping while scanning for a literal character); this
// tokenizer needs the same "scan for an unquoted, unreferenced
// character" primitive for a different reason (classifying a line
// without expanding it), so the whitespace/trim helpers are kept and
// the pattern-substitution ones (matchPattern, substPattern, substRef,
// stripExt) are dropped: nothing in this domain substitutes %-patterns
// or evaluates a value.

var wsbytes = [256]bool{' ': true, '\t': true, '\n': true, '\r': true}

func isWhitespace(ch byte) bool {
	return wsbytes[ch]
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
