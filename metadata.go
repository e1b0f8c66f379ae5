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

import "strings"

// Metadata is a lazily populated, per-tree cache of the handful of
// variables the rest of the package needs to look up repeatedly
// (USES, OPTIONS, FLAVORS, ...). It mirrors kati's SymTab in shape —
// a map guarding expensive recomputation — but keys off AST scans
// instead of make-variable evaluation, since expanding a value is out
// of scope here.
type Metadata struct {
	root *Root

	uses            []string
	usesValid       bool
	optionsDefine   []string
	optionsValid    bool
	optionGroups    []string
	optionsGroupOk  bool
	flavors         []string
	flavorsValid    bool
	licenses        []string
	licensesValid   bool
	shebangLangs    []string
	shebangValid    bool
	masterdir       string
	masterdirValid  bool
	portname        string
	portnameValid   bool
	postPlist       []string
	postPlistValid  bool
	cabalExecs      []string
	cabalExecsValid bool
	subpackages     []string
	subpackagesValid bool
}

// NewMetadata returns a cache bound to root. Nothing is computed
// until the first accessor call.
func NewMetadata(root *Root) *Metadata {
	return &Metadata{root: root}
}

func (md *Metadata) collectVar(name string) []string {
	var words []string
	WalkVariables(md.root, func(v *Variable) WalkAction {
		if v.Name == name {
			words = append(words, v.Words...)
		}
		return WalkContinue
	})
	return words
}

func (md *Metadata) collectScalar(name string) string {
	words := md.collectVar(name)
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}

// Uses returns the (deduplicated) USES value with any ":arg" suffixes
// stripped, e.g. "cabal:run" -> "cabal".
func (md *Metadata) Uses() []string {
	if !md.usesValid {
		raw := md.collectVar("USES")
		seen := map[string]bool{}
		for _, u := range raw {
			if i := strings.IndexByte(u, ':'); i >= 0 {
				u = u[:i]
			}
			if !seen[u] {
				seen[u] = true
				md.uses = append(md.uses, u)
			}
		}
		md.usesValid = true
	}
	return md.uses
}

// hasOption reports whether opt is named by OPTIONS_DEFINE or any of
// the OPTIONS_GROUP/MULTI/RADIO/SINGLE lists.
func (md *Metadata) hasOption(opt string) bool {
	if !md.optionsValid {
		md.optionsDefine = md.collectVar("OPTIONS_DEFINE")
		for _, kind := range []string{"OPTIONS_GROUP", "OPTIONS_MULTI", "OPTIONS_RADIO", "OPTIONS_SINGLE"} {
			groups := md.collectVar(kind)
			for _, g := range groups {
				md.optionsDefine = append(md.optionsDefine, md.collectVar(kind+"_"+g)...)
			}
		}
		md.optionsValid = true
	}
	return contains(md.optionsDefine, opt)
}

// OptionGroups returns the union of OPTIONS_GROUP/MULTI/RADIO/SINGLE
// group names.
func (md *Metadata) OptionGroups() []string {
	if !md.optionsGroupOk {
		for _, kind := range []string{"OPTIONS_GROUP", "OPTIONS_MULTI", "OPTIONS_RADIO", "OPTIONS_SINGLE"} {
			md.optionGroups = append(md.optionGroups, md.collectVar(kind)...)
		}
		md.optionsGroupOk = true
	}
	return md.optionGroups
}

// hasFlavor reports whether fl is named by FLAVORS.
func (md *Metadata) hasFlavor(fl string) bool {
	if !md.flavorsValid {
		md.flavors = md.collectVar("FLAVORS")
		md.flavorsValid = true
	}
	return contains(md.flavors, fl)
}

// Flavors returns the FLAVORS list.
func (md *Metadata) Flavors() []string {
	md.hasFlavor("")
	return md.flavors
}

// Licenses returns the LICENSE list.
func (md *Metadata) Licenses() []string {
	if !md.licensesValid {
		md.licenses = md.collectVar("LICENSE")
		md.licensesValid = true
	}
	return md.licenses
}

// ShebangLangs returns the SHEBANG_LANG list.
func (md *Metadata) ShebangLangs() []string {
	if !md.shebangValid {
		md.shebangLangs = md.collectVar("SHEBANG_LANG")
		md.shebangValid = true
	}
	return md.shebangLangs
}

// Masterdir returns the last MASTERDIR assignment, or "" if unset.
func (md *Metadata) Masterdir() string {
	if !md.masterdirValid {
		md.masterdir = md.collectScalar("MASTERDIR")
		md.masterdirValid = true
	}
	return md.masterdir
}

// Portname returns the last PORTNAME assignment, or "" if unset.
func (md *Metadata) Portname() string {
	if !md.portnameValid {
		md.portname = md.collectScalar("PORTNAME")
		md.portnameValid = true
	}
	return md.portname
}

// PostPlistTargets returns the POST_PLIST target name list.
func (md *Metadata) PostPlistTargets() []string {
	if !md.postPlistValid {
		md.postPlist = md.collectVar("POST_PLIST")
		md.postPlistValid = true
	}
	return md.postPlist
}

// CabalExecutables returns the CABAL_EXECUTABLES list.
func (md *Metadata) CabalExecutables() []string {
	if !md.cabalExecsValid {
		md.cabalExecs = md.collectVar("CABAL_EXECUTABLES")
		md.cabalExecsValid = true
	}
	return md.cabalExecs
}

// Subpackages returns the OPTIONS_SUB-style subpackage name list,
// derived from any ".<name>" suffix seen on a variable name.
func (md *Metadata) Subpackages() []string {
	if !md.subpackagesValid {
		seen := map[string]bool{}
		WalkVariables(md.root, func(v *Variable) WalkAction {
			if i := strings.LastIndexByte(v.Name, '.'); i >= 0 {
				sub := v.Name[i+1:]
				if sub != "" && !seen[sub] {
					seen[sub] = true
					md.subpackages = append(md.subpackages, sub)
				}
			}
			return WalkContinue
		})
		md.subpackagesValid = true
	}
	return md.subpackages
}

// LookupVariable returns every Variable node named name, in source
// order, the way the design's lookup_variable helper exposes raw
// assignment sites to callers like portedit get.
func LookupVariable(root *Root, name string) []*Variable {
	var out []*Variable
	WalkVariables(root, func(v *Variable) WalkAction {
		if v.Name == name {
			out = append(out, v)
		}
		return WalkContinue
	})
	return out
}
