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
	"fmt"
	"os"

	"github.com/golang/glog"
)

// Logf gates debug output on glog's own -v verbosity the way kati's
// Logf gated on a package-level katiLogFlag; portfmt has no separate
// flag because glog.V already gives callers per-run control via
// -v=N/-vmodule without another plumbed-through bool.
func Logf(f string, a ...interface{}) {
	if glog.V(1) {
		glog.Infof(f, a...)
	}
}

// Warnf prints a "file:line: warning: ..." diagnostic to stderr,
// mirroring kati's log.go Warn.
func Warnf(filename string, line int, f string, a ...interface{}) {
	msg := fmt.Sprintf(f, a...)
	if filename != "" && line > 0 {
		fmt.Fprintf(os.Stderr, "%s:%d: warning: %s\n", filename, line, msg)
		return
	}
	fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
}
