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
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders a unified-style diff between the original source and
// root's reformatted output, the design's diff mode used by
// portfmt's -d flag. It is built on
// diffmatchpatch's line-mode diff, which kati's own tree never
// needed (kati never writes Makefiles back out) but which
// config-formatter-style tools in the pack reach for when comparing
// rendered output against a source file.
func Diff(original []byte, root *Root, opts FormatOptions, filename string) (string, error) {
	var buf bytes.Buffer
	if err := Format(root, opts, &buf); err != nil {
		return "", err
	}
	return unifiedDiff(string(original), buf.String(), filename), nil
}

func unifiedDiff(a, b, filename string) string {
	dmp := diffmatchpatch.New()
	aLines, bLines, lineArray := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(aLines, bLines, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var out strings.Builder
	fmt.Fprintf(&out, "--- %s\n+++ %s (formatted)\n", filename, filename)
	for _, d := range diffs {
		lines := strings.SplitAfter(d.Text, "\n")
		for _, l := range lines {
			if l == "" {
				continue
			}
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				out.WriteString("-" + l)
			case diffmatchpatch.DiffInsert:
				out.WriteString("+" + l)
			default:
				out.WriteString(" " + l)
			}
			if !strings.HasSuffix(l, "\n") {
				out.WriteString("\n")
			}
		}
	}
	return out.String()
}

// HasDiff reports whether formatting root would change original,
// without building the full textual diff; used by portfmt's -c
// flag to set a process exit status cheaply.
func HasDiff(original []byte, root *Root, opts FormatOptions) (bool, error) {
	var buf bytes.Buffer
	if err := Format(root, opts, &buf); err != nil {
		return false, err
	}
	return !bytes.Equal(original, buf.Bytes()), nil
}
