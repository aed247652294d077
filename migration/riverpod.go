package migration

import (
	"path"
	"regexp"
)

const (
	DefaultHelperImport   = "package:farm_vest/core/localization/translation_helpers.dart"
	DefaultRiverpodImport = "package:flutter_riverpod/flutter_riverpod.dart"

	migratedCall   = ".tr(ref)"
	consumerBuild  = "Widget build(BuildContext context, WidgetRef ref)"
	consumerWidget = "ConsumerWidget"
)

var (
	trCallRe        = regexp.MustCompile(`\.tr\b`)
	buildSigRe      = regexp.MustCompile(`Widget\s+build\s*\(\s*BuildContext\s+context\s*\)`)
	statelessRe     = regexp.MustCompile(`\bextends\s+StatelessWidget\b`)
	statefulRe      = regexp.MustCompile(`\bextends\s+StatefulWidget\b`)
	stateClassRe    = regexp.MustCompile(`\bclass\s+(\w+)\s+extends\s+State<(\w+)>`)
	consumerTypeRe  = regexp.MustCompile(`\bConsumer(?:Widget|StatefulWidget|State)\b`)
	getxImportRe    = regexp.MustCompile(`(?m)^[ \t]*import\s+['"]package:get/get\.dart['"][^;]*;[ \t]*(?://[^\n]*)?\r?\n`)
	getxUsageRegexp = []*regexp.Regexp{
		regexp.MustCompile(`\bGet\.`),
		regexp.MustCompile(`\bGetX[<(]`),
		regexp.MustCompile(`\bObx\(`),
		regexp.MustCompile(`\bGetBuilder[<(]`),
		regexp.MustCompile(`\bGetController`),
	}
)

// Imports names the package URIs the passes insert
type Imports struct {
	Helper   string
	Riverpod string
}

// DefaultImports returns the import targets of the farm_vest code base
func DefaultImports() Imports {
	return Imports{Helper: DefaultHelperImport, Riverpod: DefaultRiverpodImport}
}

func (i Imports) withDefaults() Imports {
	if i.Helper == "" {
		i.Helper = DefaultHelperImport
	}
	if i.Riverpod == "" {
		i.Riverpod = DefaultRiverpodImport
	}
	return i
}

// importMarker is the substring whose presence means an import of target is already there,
// e.g. "translation_helpers.dart" for package:app/core/translation_helpers.dart. Relative
// imports of the same file carry it too.
func importMarker(target string) string {
	return path.Base(target)
}

// UsesGetX reports whether text references GetX through anything other than .tr. This is a
// best-effort pattern check, not a usage analysis: GetX reached through an import alias or a
// re-export is not seen, so a needed import can be removed.
func UsesGetX(text string) bool {
	for _, re := range getxUsageRegexp {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// CallSitePass rewrites `.tr` call sites to `.tr(ref)` and turns the stateless widgets that
// now need a ref into ConsumerWidgets.
func CallSitePass(imports Imports) *Pass {
	imports = imports.withDefaults()
	usesRef := Contains(migratedCall)

	return &Pass{
		Name:  "calls",
		Guard: Contains(".tr"),
		Rules: []Rule{
			ReplaceUnless(TrCallsUpdated, Always, trCallRe, "(ref)", migratedCall),
			InsertImport(ImportsAdded, usesRef, importMarker(imports.Helper), imports.Helper, Last),
			ReplaceRegexp(StatelessToConsumer, usesRef, statelessRe, "extends "+consumerWidget),
			RewriteInClasses(WidgetsConverted, usesRef, consumerWidget, buildSigRe, consumerBuild),
			InsertImport(RiverpodImportsAdded, Matches(consumerTypeRe), importMarker(imports.Riverpod), imports.Riverpod, Last),
		},
		Counters: []string{TrCallsUpdated, ImportsAdded, WidgetsConverted, StatelessToConsumer, RiverpodImportsAdded},
	}
}

// WidgetPass converts widgets of files already using `.tr(` to Consumer base types, fixes up
// imports and drops the GetX import once nothing else needs it.
func WidgetPass(imports Imports) *Pass {
	imports = imports.withDefaults()
	usesTr := Contains(".tr(")

	return &Pass{
		Name:  "widgets",
		Guard: Contains(".tr"),
		Rules: []Rule{
			ReplaceRegexp(StatefulToConsumer, usesTr, statefulRe, "extends ConsumerStatefulWidget"),
			ReplaceRegexp("", All(usesTr, Contains("ConsumerStatefulWidget")), stateClassRe, "class ${1} extends ConsumerState<${2}>"),
			ReplaceRegexp(StatelessToConsumer, usesTr, statelessRe, "extends "+consumerWidget),
			RewriteInClasses(WidgetsConverted, usesTr, consumerWidget, buildSigRe, consumerBuild),
			InsertImport(RiverpodImportsAdded, Matches(consumerTypeRe), importMarker(imports.Riverpod), imports.Riverpod, First),
			InsertImport(ImportsAdded, Contains(migratedCall), importMarker(imports.Helper), imports.Helper, Last),
			RemoveImport(GetImportsRemoved, Not(UsesGetX), getxImportRe),
		},
		Counters: []string{StatelessToConsumer, StatefulToConsumer, WidgetsConverted, ImportsAdded, RiverpodImportsAdded, GetImportsRemoved},
	}
}
