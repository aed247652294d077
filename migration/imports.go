package migration

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/markwave/dartmigrate/internal/dartlex"
)

// Placement selects where InsertImport puts a new import line
type Placement int

const (
	// Last inserts after the last import
	Last Placement = iota
	// First inserts before the first import
	First
)

var (
	// a directive runs to its semicolon, combinators may be wrapped onto following lines
	packageImportRe = regexp.MustCompile(`(?m)^[ \t]*import\s+['"]package:[^'"]+['"][^;]*;[ \t]*(?://[^\n]*)?\r?\n`)
	anyImportRe     = regexp.MustCompile(`(?m)^[ \t]*import\s+['"][^'"]+['"][^;]*;[ \t]*(?://[^\n]*)?\r?\n`)
	libraryRe       = regexp.MustCompile(`(?m)^[ \t]*library\b[^;\n]*;[ \t]*\r?\n`)
	partOfRe        = regexp.MustCompile(`(?m)^[ \t]*part\s+of\b`)
)

// ImportLine renders the import directive for a package: URI
func ImportLine(target string) string {
	return fmt.Sprintf("import '%s';", target)
}

// importOffset returns where a new import goes. Package imports are preferred as anchors,
// then any import, then the library directive, then the top of the file.
func importOffset(text string, placement Placement) int {
	locs := packageImportRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		locs = anyImportRe.FindAllStringIndex(text, -1)
	}
	if len(locs) > 0 {
		if placement == First {
			return locs[0][0]
		}
		return locs[len(locs)-1][1]
	}
	if loc := libraryRe.FindStringIndex(text); loc != nil {
		return loc[1]
	}
	return 0
}

func lineEnding(text string) string {
	if strings.Contains(text, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// InsertImport adds an import of target unless marker already occurs in the text, so the
// line is inserted at most once however many call sites asked for it. Part files are left
// alone since Dart does not allow imports in them.
func InsertImport(name string, when Condition, marker, target string, placement Placement) Rule {
	return Rule{
		Name: name,
		When: All(when, Absent(marker), Not(Matches(partOfRe))),
		Apply: func(text string) (string, int) {
			at := importOffset(text, placement)
			line := ImportLine(target) + lineEnding(text)
			return text[:at] + line + text[at:], 1
		},
	}
}

// RemoveImport deletes every import directive matched by re
func RemoveImport(name string, when Condition, re *regexp.Regexp) Rule {
	return ReplaceRegexp(name, All(when, Matches(re)), re, "")
}

// classDeclPattern matches a class header extending base, up to and including the opening brace
func classDeclPattern(base string) *regexp.Regexp {
	return regexp.MustCompile(`\bclass\s+\w+(?:\s*<[^{;]*?>)?\s+extends\s+` + regexp.QuoteMeta(base) + `\b[^{;]*\{`)
}

// classBodies returns the [open, close] brace spans (close exclusive) of the classes
// declared with decl. Declarations inside an earlier span are ignored.
func classBodies(text string, decl *regexp.Regexp) [][2]int {
	var spans [][2]int
	end := 0
	for _, loc := range decl.FindAllStringIndex(text, -1) {
		if loc[0] < end {
			continue
		}
		open := loc[1] - 1
		closing := dartlex.MatchBrace(text, open)
		if closing < 0 {
			continue
		}
		spans = append(spans, [2]int{open, closing + 1})
		end = closing + 1
	}
	return spans
}
