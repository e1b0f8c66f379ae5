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

// SelectObjectOnLine finds the smallest node whose line range covers
// line and returns its full LineRange, the lookup behind the kakoune
// "select surrounding object" binding: placing the cursor anywhere in
// a multi-line variable assignment or target body and asking to
// select the whole statement. Grounded on
// original_source/parser/edits/kakoune/select_object_on_line.c.
func SelectObjectOnLine(root *Root, line int) (LineRange, bool) {
	best := LineRange{}
	found := false
	Walk(root, func(n Node) WalkAction {
		r := n.base().Range()
		if line < r.Start || line >= r.End {
			return WalkContinue
		}
		if !found || (r.End-r.Start) < (best.End-best.Start) {
			best = r
			found = true
		}
		return WalkContinue
	})
	return best, found
}

// SelectObjectsOnLines is the multi-cursor form kakoune invokes when
// several selections are active at once; it returns one range per
// input line, in the same order, skipping lines with no match.
func SelectObjectsOnLines(root *Root, lines []int) []LineRange {
	var out []LineRange
	for _, l := range lines {
		if r, ok := SelectObjectOnLine(root, l); ok {
			out = append(out, r)
		}
	}
	return out
}
