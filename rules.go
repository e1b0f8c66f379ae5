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

// Block is an ordered enum of the canonical groups a variable belongs
// to; order is significant for reformatting. Grounded on
// original_source/rules.c's block table.
type Block int

const (
	BlockPortName Block = iota
	BlockPatchFiles
	BlockMaintainer
	BlockLicense
	BlockLicenseOld
	BlockBroken
	BlockDepends
	BlockFlavors
	BlockFlavorsHelper
	BlockUses
	BlockShebangFix
	BlockUniqueFiles
	BlockApache
	BlockElixir
	BlockEmacs
	BlockErlang
	BlockCmake
	BlockConfigure
	BlockQmake
	BlockMeson
	BlockSCons
	BlockCabal
	BlockCargo
	BlockGo
	BlockLazarus
	BlockLinux
	BlockNuget
	BlockMake
	BlockCFlags
	BlockConflicts
	BlockStandard
	BlockWrkSrc
	BlockUsers
	BlockPlist
	BlockOptDef
	BlockOptDesc
	BlockOptHelper
	BlockUnknown
)

func (b Block) String() string {
	names := [...]string{
		"PortName", "PatchFiles", "Maintainer", "License", "LicenseOld",
		"Broken", "Depends", "Flavors", "FlavorsHelper", "Uses",
		"ShebangFix", "UniqueFiles", "Apache", "Elixir", "Emacs",
		"Erlang", "Cmake", "Configure", "Qmake", "Meson", "SCons",
		"Cabal", "Cargo", "Go", "Lazarus", "Linux", "Nuget", "Make",
		"CFlags", "Conflicts", "Standard", "WrkSrc", "Users", "Plist",
		"OptDef", "OptDesc", "OptHelper", "Unknown",
	}
	if int(b) < 0 || int(b) >= len(names) {
		return "Unknown"
	}
	return names[b]
}

// VarFlag is a bitset of the per-variable formatting/ordering flags.
type VarFlag uint16

const (
	FlagDefault VarFlag = 0
	FlagCaseSensitiveSort VarFlag = 1 << iota
	FlagIgnoreWrapCol
	FlagLeaveUnformatted
	FlagNotComparable
	FlagPrintAsNewlines
	FlagSkipGoalCol
	FlagSorted
	FlagSubpkgHelper
	FlagDedup
)

func (f VarFlag) has(bit VarFlag) bool { return f&bit != 0 }

// varInfo is one row of the variable table.
type varInfo struct {
	block        Block
	flags        VarFlag
	requiredUses [2]string
}

// variableTable is a representative slice of the ~500-entry table
// described in the design, covering every Block except
// BlockFlavorsHelper, BlockOptDesc and BlockOptHelper (which have no
// rows) so goal-column and ordering logic is exercised end to end.
// It is intentionally not exhaustive (see DESIGN.md).
var variableTable = map[string]varInfo{
	"PORTNAME":        {block: BlockPortName, flags: FlagDefault},
	"PORTVERSION":     {block: BlockPortName, flags: FlagDefault},
	"DISTVERSION":     {block: BlockPortName, flags: FlagDefault},
	"DISTVERSIONPREFIX": {block: BlockPortName, flags: FlagDefault},
	"DISTVERSIONSUFFIX": {block: BlockPortName, flags: FlagDefault},
	"PORTREVISION":    {block: BlockPortName, flags: FlagDefault},
	"PORTEPOCH":       {block: BlockPortName, flags: FlagDefault},
	"CATEGORIES":      {block: BlockPortName, flags: FlagDefault},
	"MASTER_SITES":    {block: BlockPortName, flags: FlagIgnoreWrapCol | FlagPrintAsNewlines},
	"MASTER_SITE_SUBDIR": {block: BlockPortName, flags: FlagDefault},
	"PKGNAMEPREFIX":   {block: BlockPortName, flags: FlagDefault},
	"PKGNAMESUFFIX":   {block: BlockPortName, flags: FlagDefault},
	"DISTNAME":        {block: BlockPortName, flags: FlagDefault},
	"EXTRACT_SUFX":    {block: BlockPortName, flags: FlagDefault},
	"DISTFILES":       {block: BlockPatchFiles, flags: FlagSorted},
	"EXTRACT_ONLY":    {block: BlockPatchFiles, flags: FlagSorted},
	"PATCH_SITES":     {block: BlockPatchFiles, flags: FlagDefault},
	"PATCHFILES":      {block: BlockPatchFiles, flags: FlagSorted},
	"PATCH_DIST_STRIP": {block: BlockPatchFiles, flags: FlagDefault},
	"MAINTAINER":      {block: BlockMaintainer, flags: FlagNotComparable},
	"COMMENT":         {block: BlockMaintainer, flags: FlagNotComparable},
	"WWW":             {block: BlockMaintainer, flags: FlagNotComparable},
	"LICENSE":         {block: BlockLicense, flags: FlagSorted},
	"LICENSE_COMB":    {block: BlockLicense, flags: FlagDefault},
	"LICENSE_FILE":    {block: BlockLicense, flags: FlagDefault},
	"LICENSE_NAME":    {block: BlockLicense, flags: FlagNotComparable},
	"LICENSE_PERMS":   {block: BlockLicense, flags: FlagSorted},
	"LICENSE_DISTFILES": {block: BlockLicenseOld, flags: FlagSorted},
	"RESTRICTED":      {block: BlockBroken, flags: FlagNotComparable},
	"NOT_FOR_ARCHS":   {block: BlockBroken, flags: FlagSorted},
	"BROKEN":          {block: BlockBroken, flags: FlagIgnoreWrapCol},
	"DEPRECATED":      {block: BlockBroken, flags: FlagNotComparable},
	"EXPIRATION_DATE": {block: BlockBroken, flags: FlagDefault},
	"BUILD_DEPENDS":   {block: BlockDepends, flags: FlagSorted},
	"LIB_DEPENDS":     {block: BlockDepends, flags: FlagSorted},
	"RUN_DEPENDS":     {block: BlockDepends, flags: FlagSorted},
	"TEST_DEPENDS":    {block: BlockDepends, flags: FlagSorted},
	"FETCH_DEPENDS":   {block: BlockDepends, flags: FlagSorted},
	"PATCH_DEPENDS":   {block: BlockDepends, flags: FlagSorted},
	"EXTRACT_DEPENDS": {block: BlockDepends, flags: FlagSorted},
	"FLAVORS":         {block: BlockFlavors, flags: FlagSorted},
	"FLAVOR":          {block: BlockFlavors, flags: FlagDefault},
	"USES":            {block: BlockUses, flags: FlagSorted | FlagDedup},
	"USE_GNOME":       {block: BlockUses, flags: FlagSorted},
	"USE_KDE":         {block: BlockUses, flags: FlagSorted},
	"USE_PYQT":        {block: BlockUses, flags: FlagSorted},
	"USE_QT":          {block: BlockUses, flags: FlagSorted},
	"USE_GITHUB":      {block: BlockUses, flags: FlagDefault},
	"USE_GITLAB":      {block: BlockUses, flags: FlagDefault},
	"USE_LDCONFIG":    {block: BlockUses, flags: FlagSorted},
	"SHEBANG_LANG":    {block: BlockShebangFix, flags: FlagSorted},
	"UNIQUE_PREFIX":   {block: BlockUniqueFiles, flags: FlagDefault},
	"UNIQUE_SUFFIX":   {block: BlockUniqueFiles, flags: FlagDefault},
	"APACHE_MODNAME":  {block: BlockApache, flags: FlagDefault, requiredUses: [2]string{"apache"}},
	"ELIXIR_APP_NAME": {block: BlockElixir, flags: FlagDefault, requiredUses: [2]string{"elixir"}},
	"EMACS_FLAVORS_EXCLUDE": {block: BlockEmacs, flags: FlagSorted, requiredUses: [2]string{"emacs"}},
	"ERLANG_CONFIGURE": {block: BlockErlang, flags: FlagDefault, requiredUses: [2]string{"erlang"}},
	"CMAKE_ARGS":      {block: BlockCmake, flags: FlagDefault, requiredUses: [2]string{"cmake"}},
	"CMAKE_ON":        {block: BlockCmake, flags: FlagDefault, requiredUses: [2]string{"cmake"}},
	"CMAKE_OFF":       {block: BlockCmake, flags: FlagDefault, requiredUses: [2]string{"cmake"}},
	"GNU_CONFIGURE":   {block: BlockConfigure, flags: FlagDefault},
	"CONFIGURE_ARGS":  {block: BlockConfigure, flags: FlagDefault},
	"CONFIGURE_ENV":   {block: BlockConfigure, flags: FlagDefault},
	"QMAKE_ARGS":      {block: BlockQmake, flags: FlagDefault, requiredUses: [2]string{"qmake"}},
	"MESON_ARGS":      {block: BlockMeson, flags: FlagDefault, requiredUses: [2]string{"meson"}},
	"SCONS_ARGS":      {block: BlockSCons, flags: FlagDefault, requiredUses: [2]string{"scons"}},
	"CABAL_EXECUTABLES": {block: BlockCabal, flags: FlagSorted, requiredUses: [2]string{"cabal"}},
	"CARGO_CRATES":    {block: BlockCargo, flags: FlagSorted, requiredUses: [2]string{"cargo"}},
	"CARGO_ENV":       {block: BlockCargo, flags: FlagDefault, requiredUses: [2]string{"cargo"}},
	"GO_MODULE":       {block: BlockGo, flags: FlagDefault, requiredUses: [2]string{"go"}},
	"GO_PKGNAME":      {block: BlockGo, flags: FlagDefault, requiredUses: [2]string{"go"}},
	"GO_BUILDFLAGS":   {block: BlockGo, flags: FlagLeaveUnformatted, requiredUses: [2]string{"go"}},
	"GO_TESTFLAGS":    {block: BlockGo, flags: FlagLeaveUnformatted, requiredUses: [2]string{"go"}},
	"LAZARUS_PROJECT_FILES": {block: BlockLazarus, flags: FlagSorted, requiredUses: [2]string{"lazarus"}},
	"LINUX_DIST":      {block: BlockLinux, flags: FlagDefault, requiredUses: [2]string{"linux"}},
	"NUGET_DEPENDS":   {block: BlockNuget, flags: FlagSorted, requiredUses: [2]string{"dotnet"}},
	"MAKE_ARGS":       {block: BlockMake, flags: FlagDefault},
	"MAKE_ENV":        {block: BlockMake, flags: FlagDefault},
	"ALL_TARGET":      {block: BlockMake, flags: FlagDefault},
	"INSTALL_TARGET":  {block: BlockMake, flags: FlagDefault},
	"CFLAGS":          {block: BlockCFlags, flags: FlagCaseSensitiveSort},
	"CXXFLAGS":        {block: BlockCFlags, flags: FlagCaseSensitiveSort},
	"LDFLAGS":         {block: BlockCFlags, flags: FlagCaseSensitiveSort},
	"RUSTFLAGS":       {block: BlockCFlags, flags: FlagCaseSensitiveSort},
	"CPPFLAGS":        {block: BlockCFlags, flags: FlagCaseSensitiveSort},
	"CONFLICTS":       {block: BlockConflicts, flags: FlagSorted},
	"CONFLICTS_BUILD": {block: BlockConflicts, flags: FlagSorted},
	"CONFLICTS_INSTALL": {block: BlockConflicts, flags: FlagSorted},
	"NO_ARCH":         {block: BlockStandard, flags: FlagDefault},
	"NO_BUILD":        {block: BlockStandard, flags: FlagDefault},
	"NO_WRKSUBDIR":    {block: BlockStandard, flags: FlagDefault},
	"WRKSRC":          {block: BlockWrkSrc, flags: FlagDefault},
	"WRKSRC_SUBDIR":   {block: BlockWrkSrc, flags: FlagDefault},
	"USERS":           {block: BlockUsers, flags: FlagSorted},
	"GROUPS":          {block: BlockUsers, flags: FlagSorted},
	"PLIST_FILES":     {block: BlockPlist, flags: FlagSorted | FlagPrintAsNewlines},
	"PLIST_DIRS":      {block: BlockPlist, flags: FlagSorted | FlagPrintAsNewlines},
	"PLIST_SUB":       {block: BlockPlist, flags: FlagDefault},
	"OPTIONS_DEFINE":  {block: BlockOptDef, flags: FlagSorted},
	"OPTIONS_DEFAULT": {block: BlockOptDef, flags: FlagSorted},
	"OPTIONS_GROUP":   {block: BlockOptDef, flags: FlagSorted},
	"OPTIONS_MULTI":   {block: BlockOptDef, flags: FlagSorted},
	"OPTIONS_RADIO":   {block: BlockOptDef, flags: FlagSorted},
	"OPTIONS_SINGLE":  {block: BlockOptDef, flags: FlagSorted},
	"OPTIONS_SUB":     {block: BlockOptDef, flags: FlagDefault},
	"SUBDIR":          {block: BlockStandard, flags: FlagSorted | FlagPrintAsNewlines},
}

// architectures / freebsdVersions / sslImplementations are the small
// lists the design expands FOO_<ARCH>, FOO_<ARCH>_<FBSDVER> and
// FOO_<SSL_IMPL> patterns from, at package init() (the Go stand-in
// for the design's "build time" expansion).
var architectures = []string{
	"aarch64", "amd64", "armv6", "armv7", "i386", "mips", "mips64",
	"powerpc", "powerpc64", "powerpc64le", "riscv64", "sparc64",
}

var freebsdVersions = []string{"13", "14", "15"}

var sslImplementations = []string{"base", "libressl", "openssl"}

func init() {
	expandArchVariables()
}

// archExpandable lists the base variable names that receive a
// FOO_<ARCH> and FOO_<ARCH>_<FBSDVER> expansion.
var archExpandable = []string{"ONLY_FOR_ARCHS", "NOT_FOR_ARCHS", "BROKEN", "IGNORE"}
var sslExpandable = []string{"USE_OPENSSL", "IGNORE_SSL", "CONFIGURE_ARGS", "CPPFLAGS", "LDFLAGS"}

func expandArchVariables() {
	for _, base := range archExpandable {
		for _, arch := range architectures {
			name := base + "_" + strings.ToUpper(arch)
			if _, ok := variableTable[name]; !ok {
				variableTable[name] = varInfo{block: BlockBroken, flags: FlagDefault}
			}
			for _, fv := range freebsdVersions {
				vname := name + "_FBSD" + fv
				if _, ok := variableTable[vname]; !ok {
					variableTable[vname] = varInfo{block: BlockBroken, flags: FlagDefault}
				}
			}
		}
	}
	for _, base := range sslExpandable {
		for _, ssl := range sslImplementations {
			name := base + "_" + strings.ToUpper(ssl)
			if _, ok := variableTable[name]; !ok {
				variableTable[name] = varInfo{block: BlockConfigure, flags: FlagDefault}
			}
		}
	}
}

// targetInfo is one row of the target table.
type targetInfo struct {
	optHelper bool
}

var targetTable = map[string]targetInfo{
	"all": {}, "install": {}, "package": {}, "fetch": {}, "checksum": {},
	"extract": {}, "patch": {}, "configure": {}, "build": {}, "test": {},
	"deinstall": {}, "clean": {}, "distclean": {}, "makesum": {},
	"do-fetch": {optHelper: true}, "do-extract": {optHelper: true},
	"do-patch": {optHelper: true}, "do-configure": {optHelper: true},
	"do-build": {optHelper: true}, "do-install": {optHelper: true},
	"do-test": {optHelper: true},
	"pre-fetch": {optHelper: true}, "post-fetch": {optHelper: true},
	"pre-extract": {optHelper: true}, "post-extract": {optHelper: true},
	"pre-patch": {optHelper: true}, "post-patch": {optHelper: true},
	"pre-configure": {optHelper: true}, "post-configure": {optHelper: true},
	"pre-build": {optHelper: true}, "post-build": {optHelper: true},
	"pre-install": {optHelper: true}, "post-install": {optHelper: true},
	"pre-test": {optHelper: true}, "post-test": {optHelper: true},
	"pre-su-install": {optHelper: true}, "post-install-script": {optHelper: true},
}

var specialSources = map[string]bool{
	".PHONY": true, ".SILENT": true, ".PRECIOUS": true, ".NOTPARALLEL": true,
	".IGNORE": true, ".ORDER": true, ".WAIT": true,
}

var specialTargets = map[string]bool{
	".BEGIN": true, ".END": true, ".ERROR": true, ".INTERRUPT": true,
	".DEFAULT": true, ".MAIN": true,
}

// knownHelperSuffixes lists the <OPT>_<SUFFIX> / <FLAVOR>_<SUFFIX>
// tails the is_options_helper / is_flavors_helper recognizers accept.
var knownHelperSuffixes = []string{
	"CFLAGS", "CONFIGURE_ENABLE", "CONFIGURE_ON", "CONFIGURE_OFF",
	"CONFIGURE_WITH", "CMAKE_BOOL", "CMAKE_ON", "CMAKE_OFF",
	"MESON_ENABLED", "MESON_ON", "MESON_OFF", "USE", "USE_OFF",
	"PKG_DEPENDS", "BUILD_DEPENDS", "RUN_DEPENDS", "LIB_DEPENDS",
	"EXTRA_PATCHES", "VARS", "DESC",
}

// IsOptionsHelper recognizes "<OPT>_<SUFFIX>[.<subpkg>]" (and also
// "<OPT>.<subpkg>_<SUFFIX>") where OPT is a member of md's
// OPTIONS/OPTION_GROUPS set (or, when md is nil, i.e. fuzzy mode, any
// non-empty run of upper-case letters, digits, '-' and '_').
func IsOptionsHelper(name string, md *Metadata) (option, helper, subpkg string, ok bool) {
	for _, suf := range knownHelperSuffixes {
		opt, sub := "", ""
		if strings.HasSuffix(name, "_"+suf) {
			opt = strings.TrimSuffix(name, "_"+suf)
			if i := strings.LastIndexByte(opt, '.'); i >= 0 {
				sub, opt = opt[i+1:], opt[:i]
			}
		} else if i := strings.LastIndex(name, "_"+suf+"."); i >= 0 && !strings.Contains(name[i+len(suf)+2:], ".") {
			opt, sub = name[:i], name[i+len(suf)+2:]
		} else {
			continue
		}
		if md == nil && (opt == "" || strings.Trim(opt, "-_ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789") != "") {
			continue
		}
		if md == nil || md.hasOption(opt) {
			return opt, suf, sub, true
		}
	}
	return "", "", "", false
}

// IsFlavorsHelper recognizes "<FLAVOR>_<SUFFIX>".
func IsFlavorsHelper(name string, md *Metadata) (flavor, helper string, ok bool) {
	for _, suf := range []string{"DESC", "PKGNAMEPREFIX", "PKGNAMESUFFIX"} {
		if !strings.HasSuffix(name, "_"+suf) {
			continue
		}
		fl := strings.TrimSuffix(name, "_"+suf)
		if md == nil || md.hasFlavor(fl) {
			return fl, suf, true
		}
	}
	return "", "", false
}

var staticShebangLangs = []string{"PERL", "PYTHON", "LUA", "TCL", "RUBY", "PHP", "BASH", "SH"}

// IsShebangLang recognizes "<LANG>_CMD" / "<LANG>_OLD_CMD".
func IsShebangLang(name string, md *Metadata) (lang, suffix string, ok bool) {
	for _, suf := range []string{"_OLD_CMD", "_CMD"} {
		if !strings.HasSuffix(name, suf) {
			continue
		}
		lang = strings.TrimSuffix(name, suf)
		if contains(staticShebangLangs, lang) {
			return lang, suf, true
		}
		if md != nil && contains(md.ShebangLangs(), lang) {
			return lang, suf, true
		}
	}
	return "", "", false
}

// IsCabalDatadirVars recognizes "<EXE>_DATADIR_VARS" when USES
// contains cabal.
func IsCabalDatadirVars(name string, md *Metadata) (exe string, ok bool) {
	if md == nil || !contains(md.Uses(), "cabal") {
		return "", false
	}
	if !strings.HasSuffix(name, "_DATADIR_VARS") {
		return "", false
	}
	return strings.TrimSuffix(name, "_DATADIR_VARS"), true
}

// MatchesOptionsGroup recognizes "_?OPTIONS_(GROUP|MULTI|RADIO|SINGLE)_<G>".
func MatchesOptionsGroup(name string, md *Metadata) (group string, ok bool) {
	n := strings.TrimPrefix(name, "_")
	for _, kind := range []string{"OPTIONS_GROUP_", "OPTIONS_MULTI_", "OPTIONS_RADIO_", "OPTIONS_SINGLE_"} {
		if strings.HasPrefix(n, kind) {
			g := strings.TrimPrefix(n, kind)
			if md == nil || contains(md.OptionGroups(), g) {
				return g, true
			}
		}
	}
	return "", false
}

// IsValidLicense reports whether name is a license identifier known
// to md (or, with md nil, matches the generic license-name shape used
// in fuzzy mode).
func IsValidLicense(name string, md *Metadata) bool {
	if md != nil {
		return contains(md.Licenses(), name)
	}
	for _, c := range name {
		if !(c == '-' || c == '_' || c == '.' || c == '+' ||
			(c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return name != ""
}

// IndentGoalcol computes the goal column for a variable named name
// assigned with modifier mod, per design §4.3's formula:
// ceil((len(name) + 1 + trailingPlus + opWidth + oddFixup) / 8) * 8.
func IndentGoalcol(name string, mod Modifier, trailingPlus bool) int {
	n := len(name) + 1
	if trailingPlus {
		n++
	}
	if mod == Assign {
		n++
	} else {
		n += 2
	}
	if n%2 != 0 {
		n++
	}
	col := ((n + 7) / 8) * 8
	if col < 8 {
		col = 8
	}
	return col
}

// LookupVariableInfo returns the known table entry for name, if any.
func LookupVariableInfo(name string) (varInfo, bool) {
	vi, ok := variableTable[name]
	return vi, ok
}

// LookupTargetInfo returns the known table entry for name, if any.
func LookupTargetInfo(name string) (targetInfo, bool) {
	ti, ok := targetTable[name]
	return ti, ok
}
