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

import "sort"

// GetVariable is the read-only query backing "portedit get <var>": it
// returns the concatenated word list of every assignment to name, in
// source order, without mutating anything. Grounded on
// original_source/parser/edits/output/variable_value.c.
func GetVariable(root *Root, name string) []string {
	var words []string
	for _, v := range LookupVariable(root, name) {
		words = append(words, v.Words...)
	}
	return words
}

// UnknownTargets returns every named Target header source that is not
// in targetTable, specialTargets or specialSources, backing "portedit
// unknown-targets". Names are matched exactly; no pre-*/post-*/do-*
// pattern is recognized. Grounded on
// original_source/parser/edits/output/unknown_targets.c.
func UnknownTargets(root *Root) []string {
	seen := map[string]bool{}
	var out []string
	WalkTargets(root, func(t *Target) WalkAction {
		if t.Kind != TargetNamed {
			return WalkContinue
		}
		for _, src := range t.Sources {
			if specialTargets[src] || specialSources[src] {
				continue
			}
			if _, ok := targetTable[src]; ok {
				continue
			}
			if seen[src] {
				continue
			}
			seen[src] = true
			out = append(out, src)
		}
		return WalkContinue
	})
	sort.Strings(out)
	return out
}

// UnknownVariables returns every assigned variable name absent from
// variableTable, backing "portedit unknown-vars". Grounded on
// original_source/parser/edits/output/unknown_variables.c.
func UnknownVariables(root *Root, md *Metadata) []string {
	seen := map[string]bool{}
	var out []string
	WalkVariables(root, func(v *Variable) WalkAction {
		if _, ok := variableTable[v.Name]; ok {
			return WalkContinue
		}
		if _, _, _, ok := IsOptionsHelper(v.Name, md); ok {
			return WalkContinue
		}
		if _, _, ok := IsFlavorsHelper(v.Name, md); ok {
			return WalkContinue
		}
		if _, _, ok := IsShebangLang(v.Name, md); ok {
			return WalkContinue
		}
		if _, ok := IsCabalDatadirVars(v.Name, md); ok {
			return WalkContinue
		}
		if _, ok := MatchesOptionsGroup(v.Name, md); ok {
			return WalkContinue
		}
		if seen[v.Name] {
			return WalkContinue
		}
		seen[v.Name] = true
		out = append(out, v.Name)
		return WalkContinue
	})
	sort.Strings(out)
	return out
}
