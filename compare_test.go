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

func TestCompareLicensePerms(t *testing.T) {
	if Compare("LICENSE_PERMS", "dist-sell", "dist-mirror") <= 0 {
		t.Errorf("dist-sell should sort after dist-mirror")
	}
	if Compare("LICENSE_PERMS", "dist-mirror", "no-auto-accept") >= 0 {
		t.Errorf("dist-mirror should sort before no-auto-accept")
	}
}

func TestCompareUseGnomeOrdinal(t *testing.T) {
	if Compare("USE_GNOME", "gtk30", "atk") <= 0 {
		t.Errorf("gtk30 should sort after atk")
	}
}

func TestCompareUnknownTokenFallsBackLexical(t *testing.T) {
	if Compare("USE_GNOME", "zzz-unknown", "aaa-unknown") <= 0 {
		t.Errorf("two unrecognized tokens should fall back to lexical order")
	}
}

func TestCompareDefaultIsCaseInsensitive(t *testing.T) {
	if Compare("BUILD_DEPENDS", "Abc", "abd") >= 0 {
		t.Errorf("default compare should be case-insensitive")
	}
}

func TestCompareCaseSensitiveSort(t *testing.T) {
	if Compare("CFLAGS", "-O2", "-flto") >= 0 {
		t.Errorf("-O2 should sort before -flto under case-sensitive compare")
	}
}

func TestIsSortable(t *testing.T) {
	if !IsSortable("USES") {
		t.Errorf("USES should be sortable")
	}
	if IsSortable("MAINTAINER") {
		t.Errorf("MAINTAINER should not be sortable")
	}
	if IsSortable("NOT_A_REAL_VARIABLE") {
		t.Errorf("an unknown variable should not be sortable")
	}
}
