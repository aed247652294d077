package migration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statelessSource = `import 'package:flutter/material.dart';

class Greeting extends StatelessWidget {
  @override
  Widget build(BuildContext context) {
    return Text('hello'.tr);
  }
}
`

const statelessMigrated = `import 'package:flutter/material.dart';
import 'package:farm_vest/core/localization/translation_helpers.dart';
import 'package:flutter_riverpod/flutter_riverpod.dart';

class Greeting extends ConsumerWidget {
  @override
  Widget build(BuildContext context, WidgetRef ref) {
    return Text('hello'.tr(ref));
  }
}
`

const statefulSource = `import 'package:flutter/material.dart';
import 'package:get/get.dart';

class Page extends StatefulWidget {
  @override
  State<Page> createState() => _PageState();
}

class _PageState extends State<Page> {
  @override
  Widget build(BuildContext context) {
    return Text('title'.tr(ref));
  }
}
`

func TestCallSitePass(t *testing.T) {
	res := CallSitePass(DefaultImports()).Apply(statelessSource)
	require.True(t, res.Changed)
	assert.Equal(t, statelessMigrated, res.Content)

	want := map[string]int{
		TrCallsUpdated:       1,
		ImportsAdded:         1,
		WidgetsConverted:     1,
		StatelessToConsumer:  1,
		RiverpodImportsAdded: 1,
	}
	for name, n := range want {
		assert.Equal(t, n, res.Counts.Get(name), name)
	}
	assert.Equal(t, []string{TrCallsUpdated, ImportsAdded, WidgetsConverted, StatelessToConsumer, RiverpodImportsAdded}, res.Counts.Names())
}

func TestCallSitePassIdempotent(t *testing.T) {
	pass := CallSitePass(DefaultImports())
	first := pass.Apply(statelessSource)
	second := pass.Apply(first.Content)
	assert.False(t, second.Changed)
	assert.Equal(t, first.Content, second.Content)
}

func TestCallSitePassNoOp(t *testing.T) {
	inputs := []string{
		"",
		"void main() {}\n",
		"import 'package:flutter/material.dart';\n\nfinal s = value.trim();\n",
		statelessMigrated,
	}
	for _, input := range inputs {
		res := CallSitePass(DefaultImports()).Apply(input)
		assert.False(t, res.Changed)
		assert.Equal(t, input, res.Content)
	}
}

func TestCallSitePassImportOnce(t *testing.T) {
	input := "import 'package:flutter/material.dart';\n\nfinal a = 'a'.tr;\nfinal b = 'b'.tr;\nfinal c = 'c'.tr;\n"
	res := CallSitePass(DefaultImports()).Apply(input)
	assert.Equal(t, 3, res.Counts.Get(TrCallsUpdated))
	assert.Equal(t, 1, strings.Count(res.Content, ImportLine(DefaultHelperImport)))
	// no widget, so no riverpod import
	assert.NotContains(t, res.Content, "flutter_riverpod")
}

func TestCallSitePassCustomImports(t *testing.T) {
	imports := Imports{Helper: "package:app/l10n/tr.dart", Riverpod: "package:hooks_riverpod/hooks_riverpod.dart"}
	res := CallSitePass(imports).Apply(statelessSource)
	assert.Contains(t, res.Content, "import 'package:app/l10n/tr.dart';")
	assert.Contains(t, res.Content, "import 'package:hooks_riverpod/hooks_riverpod.dart';")
	assert.NotContains(t, res.Content, DefaultHelperImport)
}

func TestCallSitePassLeavesStateBuild(t *testing.T) {
	input := `class _S extends State<P> {
  Widget build(BuildContext context) {
    return Text('x'.tr);
  }
}
`
	res := CallSitePass(DefaultImports()).Apply(input)
	assert.Contains(t, res.Content, "Widget build(BuildContext context) {")
	assert.Contains(t, res.Content, "'x'.tr(ref)")
	assert.Zero(t, res.Counts.Get(WidgetsConverted))
}

func TestCallSitePassBraceInInterpolation(t *testing.T) {
	input := `import 'package:flutter/material.dart';

class Badge extends StatelessWidget {
  @override
  Widget build(BuildContext context) {
    return Text('title'.tr + '${open ? '{' : ''}');
  }
}
`
	res := CallSitePass(DefaultImports()).Apply(input)
	assert.Contains(t, res.Content, "class Badge extends ConsumerWidget {")
	assert.Contains(t, res.Content, "Widget build(BuildContext context, WidgetRef ref) {")
	assert.Contains(t, res.Content, "'title'.tr(ref) + '${open ? '{' : ''}'")
	assert.Equal(t, 1, res.Counts.Get(StatelessToConsumer))
}

func TestCallSitePassMultiLineImport(t *testing.T) {
	input := `import 'package:flutter/material.dart'
    show StatelessWidget, Text;

final a = 'a'.tr;
`
	res := CallSitePass(DefaultImports()).Apply(input)
	want := `import 'package:flutter/material.dart'
    show StatelessWidget, Text;
import 'package:farm_vest/core/localization/translation_helpers.dart';

final a = 'a'.tr(ref);
`
	assert.Equal(t, want, res.Content)
}

func TestWidgetPass(t *testing.T) {
	res := WidgetPass(DefaultImports()).Apply(statefulSource)
	require.True(t, res.Changed)

	assert.Contains(t, res.Content, "class Page extends ConsumerStatefulWidget {")
	assert.Contains(t, res.Content, "class _PageState extends ConsumerState<Page> {")
	// State build methods keep their signature, ref is a member there
	assert.Contains(t, res.Content, "Widget build(BuildContext context) {")
	assert.NotContains(t, res.Content, "package:get/get.dart")

	riverpod := strings.Index(res.Content, ImportLine(DefaultRiverpodImport))
	material := strings.Index(res.Content, "import 'package:flutter/material.dart';")
	helper := strings.Index(res.Content, ImportLine(DefaultHelperImport))
	require.True(t, riverpod >= 0 && material >= 0 && helper >= 0)
	assert.Less(t, riverpod, material)
	assert.Less(t, material, helper)

	assert.Equal(t, 1, res.Counts.Get(StatefulToConsumer))
	assert.Equal(t, 0, res.Counts.Get(StatelessToConsumer))
	assert.Equal(t, 1, res.Counts.Get(RiverpodImportsAdded))
	assert.Equal(t, 1, res.Counts.Get(ImportsAdded))
	assert.Equal(t, 1, res.Counts.Get(GetImportsRemoved))

	again := WidgetPass(DefaultImports()).Apply(res.Content)
	assert.False(t, again.Changed)
}

func TestWidgetPassStateless(t *testing.T) {
	input := strings.Replace(statelessMigrated, "extends ConsumerWidget", "extends StatelessWidget", 1)
	input = strings.Replace(input, "Widget build(BuildContext context, WidgetRef ref)", "Widget build(BuildContext context)", 1)

	res := WidgetPass(DefaultImports()).Apply(input)
	assert.Equal(t, statelessMigrated, res.Content)
	assert.Equal(t, 1, res.Counts.Get(StatelessToConsumer))
	assert.Equal(t, 1, res.Counts.Get(WidgetsConverted))
	assert.Zero(t, res.Counts.Get(RiverpodImportsAdded))
}

func TestWidgetPassKeepsGetX(t *testing.T) {
	tests := []struct {
		name  string
		usage string
	}{
		{name: "navigation", usage: "Get.to(Other());"},
		{name: "obx", usage: "return Obx(() => Text('a'.tr(ref)));"},
		{name: "getx widget", usage: "return GetX<Ctrl>(builder: (c) => Text('a'.tr(ref)));"},
		{name: "get builder", usage: "return GetBuilder<Ctrl>(builder: (c) => Text('a'.tr(ref)));"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "import 'package:get/get.dart';\n\nvoid f() {\n  final x = 'a'.tr(ref);\n  " + tt.usage + "\n}\n"
			res := WidgetPass(DefaultImports()).Apply(input)
			assert.Contains(t, res.Content, "import 'package:get/get.dart';")
			assert.Zero(t, res.Counts.Get(GetImportsRemoved))
		})
	}
}

func TestWidgetPassWithoutMigratedCalls(t *testing.T) {
	input := "import 'package:flutter/material.dart';\n\nclass A extends StatelessWidget {\n  Widget build(BuildContext context) => Text('a'.tr);\n}\n"
	res := WidgetPass(DefaultImports()).Apply(input)
	assert.False(t, res.Changed)
	assert.Equal(t, input, res.Content)
}

func TestUsesGetX(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "Get.back();", want: true},
		{input: "Obx(() => x)", want: true},
		{input: "GetX<C>(builder: b)", want: true},
		{input: "GetBuilder(init: c)", want: true},
		{input: "class C extends GetController", want: true},
		{input: "'a'.tr", want: false},
		{input: "import 'package:get/get.dart';", want: false},
		{input: "TargetGet.x", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, UsesGetX(tt.input))
		})
	}
}

func TestImportMarker(t *testing.T) {
	assert.Equal(t, "translation_helpers.dart", importMarker(DefaultHelperImport))
	assert.Equal(t, "flutter_riverpod.dart", importMarker(DefaultRiverpodImport))
}
