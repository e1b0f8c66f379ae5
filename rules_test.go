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

import "testing"

func TestLookupVariableInfo(t *testing.T) {
	vi, ok := LookupVariableInfo("PORTNAME")
	if !ok {
		t.Fatal("expected PORTNAME to be known")
	}
	if vi.block != BlockPortName {
		t.Errorf("PORTNAME block = %v, want %v", vi.block, BlockPortName)
	}
	if _, ok := LookupVariableInfo("NOT_A_REAL_VARIABLE"); ok {
		t.Error("did not expect NOT_A_REAL_VARIABLE to be known")
	}
}

func TestArchExpansion(t *testing.T) {
	if _, ok := LookupVariableInfo("BROKEN_AARCH64"); !ok {
		t.Error("expected BROKEN_AARCH64 to be expanded at init")
	}
	if _, ok := LookupVariableInfo("BROKEN_AARCH64_FBSD14"); !ok {
		t.Error("expected BROKEN_AARCH64_FBSD14 to be expanded at init")
	}
}

func TestIndentGoalcol(t *testing.T) {
	for _, tc := range []struct {
		name string
		mod  Modifier
		want int
	}{
		{"USES", Assign, 8},
		{"PORTNAME", Assign, 16},
		{"A_REALLY_LONG_VARIABLE_NAME", Assign, 32},
	} {
		got := IndentGoalcol(tc.name, tc.mod, false)
		if got != tc.want {
			t.Errorf("IndentGoalcol(%q) = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestIsOptionsHelper(t *testing.T) {
	opt, helper, sub, ok := IsOptionsHelper("FOO_DESC", nil)
	if !ok || opt != "FOO" || helper != "DESC" || sub != "" {
		t.Errorf("IsOptionsHelper(FOO_DESC) = %q %q %q %v", opt, helper, sub, ok)
	}
	opt, helper, sub, ok = IsOptionsHelper("FOO.bar_DESC", nil)
	if !ok || opt != "FOO" || helper != "DESC" || sub != "bar" {
		t.Errorf("IsOptionsHelper(FOO.bar_DESC) = %q %q %q %v", opt, helper, sub, ok)
	}
}

func TestIsValidLicenseFuzzy(t *testing.T) {
	if !IsValidLicense("MIT", nil) {
		t.Error("MIT should be a valid-looking license in fuzzy mode")
	}
	if IsValidLicense("not a license!", nil) {
		t.Error("a string with spaces/punctuation should not look like a license")
	}
}
