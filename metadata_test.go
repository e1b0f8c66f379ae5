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
	"reflect"
	"testing"
)

func TestMetadataUsesStripsArgs(t *testing.T) {
	root := buildString(t, "USES=\tcabal:run gmake")
	md := NewMetadata(root)
	want := []string{"cabal", "gmake"}
	if got := md.Uses(); !reflect.DeepEqual(got, want) {
		t.Errorf("Uses() = %v, want %v", got, want)
	}
}

func TestMetadataPortname(t *testing.T) {
	root := buildString(t, "PORTNAME=\tfoo", "PORTNAME=\tbar")
	md := NewMetadata(root)
	if got := md.Portname(); got != "bar" {
		t.Errorf("Portname() = %q, want %q", got, "bar")
	}
}

func TestMetadataHasOptionFromGroup(t *testing.T) {
	root := buildString(t, "OPTIONS_GROUP=\tBACKEND", "OPTIONS_GROUP_BACKEND=\tSQLITE MYSQL")
	md := NewMetadata(root)
	if !md.hasOption("SQLITE") {
		t.Error("expected SQLITE to be recognized via OPTIONS_GROUP_BACKEND")
	}
	if md.hasOption("POSTGRES") {
		t.Error("did not expect POSTGRES to be recognized")
	}
}

func TestLookupVariableOrder(t *testing.T) {
	root := buildString(t, "FOO=\ta", "BAR=\tb", "FOO=\tc")
	vars := LookupVariable(root, "FOO")
	if len(vars) != 2 || vars[0].Words[0] != "a" || vars[1].Words[0] != "c" {
		t.Errorf("LookupVariable(FOO) = %+v", vars)
	}
}
