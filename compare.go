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

// licensePermOrder ranks LICENSE_PERMS tokens for sorting: each
// permission directly followed by its "no-" form, in the order
// dist-mirror, dist-sell, pkg-mirror, pkg-sell, auto-accept, and
// "none" last.
var licensePermOrder = map[string]int{
	"dist-mirror":       0,
	"no-dist-mirror":    1,
	"dist-sell":         2,
	"no-dist-sell":      3,
	"pkg-mirror":        4,
	"no-pkg-mirror":     5,
	"pkg-sell":          6,
	"no-pkg-sell":       7,
	"auto-accept":       8,
	"no-auto-accept":    9,
	"none":              10,
}

var useGnomeOrder = buildOrder([]string{
	"atk", "cairo", "gconfmm26", "gdkpixbuf2", "girepository", "glib20",
	"gnomeprefix", "gtk20", "gtk30", "gtkmm24", "gtkmm30", "gtksourceview3",
	"intltool", "introspection", "libgda5", "libgsf", "librsvg2", "pango",
})

var useKdeOrder = buildOrder([]string{
	"auth", "baloo", "bookmarks", "codecs", "completion", "config",
	"coreaddons", "crash", "dbusaddons", "ecm", "frameworkintegration",
	"i18n", "iconthemes", "init", "kdelibs4support", "kio", "notifications",
	"service", "solid", "sonnet", "widgetsaddons", "workspace", "xmlgui",
})

var usePyQtOrder = buildOrder([]string{
	"core", "dbus", "dbussupport", "gui", "network", "opengl", "printsupport",
	"qscintilla2", "sip", "svg", "webkit", "widgets", "xml",
})

var useQtOrder = buildOrder([]string{
	"core", "concurrent", "dbus", "declarative", "designer", "gui", "location",
	"multimedia", "network", "opengl", "printsupport", "qmake", "quickcontrols2",
	"script", "sql", "svg", "testlib", "webchannel", "widgets", "xml",
})

func buildOrder(items []string) map[string]int {
	m := make(map[string]int, len(items))
	for i, s := range items {
		m[s] = i
	}
	return m
}

// Compare orders two raw tokens belonging to varName the way
// portfmt's sort edit needs: variable-specific ordinal tables take
// priority over the generic fallback (case-sensitive or
// case-insensitive lexical, per the variable's flags), mirroring
// rules.c's compare_tokens dispatch.
func Compare(varName, a, b string) int {
	switch {
	case varName == "LICENSE_PERMS":
		return compareOrdinal(licensePermOrder, a, b)
	case varName == "USE_GNOME":
		return compareOrdinal(useGnomeOrder, a, b)
	case varName == "USE_KDE":
		return compareOrdinal(useKdeOrder, a, b)
	case varName == "USE_PYQT":
		return compareOrdinal(usePyQtOrder, a, b)
	case varName == "USE_QT":
		return compareOrdinal(useQtOrder, a, b)
	}
	vi, ok := variableTable[varName]
	if ok && vi.flags.has(FlagCaseSensitiveSort) {
		return strings.Compare(a, b)
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// compareOrdinal ranks tokens present in table before any not found
// there, so an unrecognized USE_GNOME component sorts after every
// known one; unknown tokens fall back to lexical order among
// themselves.
func compareOrdinal(table map[string]int, a, b string) int {
	ai, aok := table[a]
	bi, bok := table[b]
	switch {
	case aok && bok:
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	case aok && !bok:
		return -1
	case !aok && bok:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// IsSortable reports whether varName's assigned word list should be
// alphabetized at all (some blocks, e.g. MAINTAINER/COMMENT, must
// never be reordered).
func IsSortable(varName string) bool {
	vi, ok := variableTable[varName]
	if !ok {
		return false
	}
	return vi.flags.has(FlagSorted) && !vi.flags.has(FlagNotComparable)
}
