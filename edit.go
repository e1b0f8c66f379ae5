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

// Edit is one composable pass over a tree. Refactor/sanitize passes
// mutate root in place and mark touched nodes Edited; lint passes
// never mutate and report Findings instead. Both shapes implement the
// same interface so Parser can drive them through one loop, the way
// kati's evaluator drives every directiveFunc through one dispatch
// table regardless of what each one actually does.
type Edit interface {
	Name() string
	Apply(root *Root, pool *Pool, md *Metadata) ([]Finding, error)
}

// Finding is one lint diagnostic: a location plus a human message.
type Finding struct {
	Line    int
	Message string
}

// mandatoryEdits is the fixed, ordered set of passes every successful
// parse applies before the tree is considered canonical, mirroring
// the always-on directiveFunc chain kati ran for every assignment
// regardless of caller intent.
func mandatoryEdits() []Edit {
	return []Edit{
		SanitizeComments{},
		SanitizeCMakeArgs{},
		CollapseAdjacentVariables{},
		SanitizeAppendModifier{},
		DedupTokens{},
		RemoveConsecutiveEmptyLines{},
	}
}

// ApplyMandatory runs every mandatory edit over root in the fixed
// order, short-circuiting on the first error so a single bad pass
// can't corrupt the ones behind it. Lint findings from mandatory
// passes (none currently produce any) are discarded; call ApplyEdit
// directly when findings matter.
func ApplyMandatory(root *Root, pool *Pool, md *Metadata) error {
	for _, e := range mandatoryEdits() {
		if _, err := e.Apply(root, pool, md); err != nil {
			return err
		}
	}
	return nil
}

// ApplyEdit runs a single optional or lint edit and returns its
// findings, for callers (portedit, portclippy) that drive one pass at
// a time under user control.
func ApplyEdit(e Edit, root *Root, pool *Pool, md *Metadata) ([]Finding, error) {
	return e.Apply(root, pool, md)
}
