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
	"path/filepath"
	"strings"
)

// includeVars are the handful of path variables a ports Makefile's
// .include path is allowed to reference; portfmt never evaluates
// arbitrary make expressions (out of scope), so substitution here is
// a fixed lookup table rather than a general expander.
func includeVars(filename string, md *Metadata) map[string]string {
	dir := filepath.Dir(filename)
	vars := map[string]string{
		".CURDIR": dir,
	}
	if m := md.Masterdir(); m != "" {
		vars[".MASTERDIR"] = m
		vars["MASTERDIR"] = m
	}
	return vars
}

// resolveIncludePath substitutes any "${VAR}" references in path
// using vars, and resolves the result relative to dir when it's not
// already absolute.
func resolveIncludePath(path, dir string, vars map[string]string) string {
	resolved := path
	for name, val := range vars {
		resolved = strings.ReplaceAll(resolved, "${"+name+"}", val)
		resolved = strings.ReplaceAll(resolved, "$("+name+")", val)
	}
	if filepath.IsAbs(resolved) {
		return resolved
	}
	return filepath.Join(dir, resolved)
}

// LoadLocalIncludes walks root and, for every Include node whose path
// resolves to a file that exists relative to baseFilename's directory,
// parses that file and splices its Root.Body into the Include's Body,
// marking it Loaded. System includes (Sys true, i.e. <...>) are never
// followed: they live outside the ports tree portfmt operates on.
// Errors opening or parsing a non-optional include are collected and
// returned together rather than aborting the whole walk; a failure on
// an optional include (.-include/.sinclude/.dinclude) is skipped.
func LoadLocalIncludes(root *Root, baseFilename string, md *Metadata) []error {
	dir := filepath.Dir(baseFilename)
	vars := includeVars(baseFilename, md)
	var errs []error
	Walk(root, func(n Node) WalkAction {
		inc, ok := n.(*Include)
		if !ok || inc.Sys || inc.Loaded {
			return WalkContinue
		}
		path := resolveIncludePath(inc.Path, dir, vars)
		childRoot, childPool, err := ReadFromFile(path)
		if err != nil {
			if inc.Kind == IncludeBmakeOptional || inc.Kind == IncludePosixOptional {
				return WalkContinue
			}
			errs = append(errs, err)
			return WalkContinue
		}
		// Ownership of childPool transfers to inc: the spliced body
		// keeps referencing nodes allocated from it, so inc must keep
		// it alive rather than root's own Pool.
		inc.pool = childPool
		inc.Body = childRoot.Body
		inc.Loaded = true
		return WalkContinue
	})
	return errs
}
