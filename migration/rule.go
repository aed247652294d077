package migration

import (
	"regexp"
	"strings"
)

// Condition is a textual precondition evaluated against the current text of a pass
type Condition func(text string) bool

// Always is the condition of unconditional rules
func Always(string) bool { return true }

// Contains holds when text contains substr
func Contains(substr string) Condition {
	return func(text string) bool {
		return strings.Contains(text, substr)
	}
}

// Absent holds when text does not contain substr
func Absent(substr string) Condition {
	return func(text string) bool {
		return !strings.Contains(text, substr)
	}
}

// Matches holds when re matches somewhere in text
func Matches(re *regexp.Regexp) Condition {
	return func(text string) bool {
		return re.MatchString(text)
	}
}

// Not negates c
func Not(c Condition) Condition {
	return func(text string) bool {
		return !c(text)
	}
}

// All holds when every condition holds
func All(conds ...Condition) Condition {
	return func(text string) bool {
		for _, c := range conds {
			if !c(text) {
				return false
			}
		}
		return true
	}
}

// Any holds when at least one condition holds
func Any(conds ...Condition) Condition {
	return func(text string) bool {
		for _, c := range conds {
			if c(text) {
				return true
			}
		}
		return false
	}
}

// Rule is one precondition-gated substitution. Apply returns the rewritten text and the
// number of hits, which is added to the counter called Name.
type Rule struct {
	Name  string
	When  Condition
	Apply func(text string) (string, int)
}

// ReplaceRegexp replaces every match of re with repl (which may reference groups)
func ReplaceRegexp(name string, when Condition, re *regexp.Regexp, repl string) Rule {
	return Rule{
		Name: name,
		When: when,
		Apply: func(text string) (string, int) {
			n := len(re.FindAllStringIndex(text, -1))
			if n == 0 {
				return text, 0
			}
			return re.ReplaceAllString(text, repl), n
		},
	}
}

// ReplaceLiteral replaces every occurrence of old with repl
func ReplaceLiteral(name string, when Condition, old, repl string) Rule {
	return Rule{
		Name: name,
		When: when,
		Apply: func(text string) (string, int) {
			n := strings.Count(text, old)
			if n == 0 {
				return text, 0
			}
			return strings.ReplaceAll(text, old, repl), n
		},
	}
}

// ReplaceUnless replaces matches of re with repl, skipping matches that are immediately
// followed by suffix. It stands in for a negative lookahead, which RE2 does not support,
// and is what keeps a rule from re-firing on text it already produced.
func ReplaceUnless(name string, when Condition, re *regexp.Regexp, suffix, repl string) Rule {
	return Rule{
		Name: name,
		When: when,
		Apply: func(text string) (string, int) {
			var sb strings.Builder
			last, n := 0, 0
			for _, loc := range re.FindAllStringIndex(text, -1) {
				if strings.HasPrefix(text[loc[1]:], suffix) {
					continue
				}
				sb.WriteString(text[last:loc[0]])
				sb.WriteString(repl)
				last = loc[1]
				n++
			}
			if n == 0 {
				return text, 0
			}
			sb.WriteString(text[last:])
			return sb.String(), n
		},
	}
}

// RewriteInClasses applies re -> repl only inside the bodies of classes extending base
func RewriteInClasses(name string, when Condition, base string, re *regexp.Regexp, repl string) Rule {
	decl := classDeclPattern(base)
	return Rule{
		Name: name,
		When: when,
		Apply: func(text string) (string, int) {
			spans := classBodies(text, decl)
			if len(spans) == 0 {
				return text, 0
			}
			var sb strings.Builder
			last, n := 0, 0
			for _, sp := range spans {
				body := text[sp[0]:sp[1]]
				hits := len(re.FindAllStringIndex(body, -1))
				if hits == 0 {
					continue
				}
				sb.WriteString(text[last:sp[0]])
				sb.WriteString(re.ReplaceAllString(body, repl))
				last = sp[1]
				n += hits
			}
			if n == 0 {
				return text, 0
			}
			sb.WriteString(text[last:])
			return sb.String(), n
		},
	}
}
