// Package dartlex recognises the few lexical elements of Dart source the rewriters need to
// step over: string literals and comments. It is not a tokenizer; everything else is left
// to regular expressions.
package dartlex

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Literal is a string literal found in source text
type Literal struct {
	// Start and End are byte offsets, End exclusive, covering prefix and quotes
	Start, End int
	Quote      byte
	Raw        bool
	Triple     bool
	// Body is the text between the quotes, escapes untouched
	Body string
	// Interpolations holds the [start, end) offsets of each ${...} in the body, braces included
	Interpolations [][2]int
}

// Value returns the literal's body with escape sequences resolved
func (l Literal) Value() string {
	if l.Raw {
		return l.Body
	}
	return Unescape(l.Body)
}

func isQuote(c byte) bool {
	return c == '\'' || c == '"'
}

func isIdent(c byte) bool {
	return c == '_' || c == '$' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// startsLiteral reports whether a string literal starts at text[i]
func startsLiteral(text string, i int) bool {
	c := text[i]
	if isQuote(c) {
		return true
	}
	return c == 'r' && i+1 < len(text) && isQuote(text[i+1]) && (i == 0 || !isIdent(text[i-1]))
}

// ScanLiteral parses the literal starting at text[i]. It returns false when no literal starts
// there or when the literal is unterminated.
func ScanLiteral(text string, i int) (Literal, bool) {
	if i >= len(text) || !startsLiteral(text, i) {
		return Literal{}, false
	}
	lit := Literal{Start: i}
	j := i
	if text[j] == 'r' {
		lit.Raw = true
		j++
	}
	lit.Quote = text[j]
	closing := string(lit.Quote)
	if strings.HasPrefix(text[j:], strings.Repeat(closing, 3)) {
		lit.Triple = true
		closing = strings.Repeat(closing, 3)
	}
	bodyStart := j + len(closing)
	for k := bodyStart; k < len(text); k++ {
		c := text[k]
		switch {
		case c == '\\' && !lit.Raw:
			k++
		case c == '\n' && !lit.Triple:
			return Literal{}, false
		case c == '$' && !lit.Raw && k+1 < len(text) && text[k+1] == '{':
			// the expression may hold quotes and braces of its own
			end := MatchBrace(text, k+1)
			if end < 0 {
				return Literal{}, false
			}
			lit.Interpolations = append(lit.Interpolations, [2]int{k, end + 1})
			k = end
		case strings.HasPrefix(text[k:], closing):
			lit.Body = text[bodyStart:k]
			lit.End = k + len(closing)
			return lit, true
		}
	}
	return Literal{}, false
}

// CommentEnd returns the offset just past the comment starting at text[i], or -1 when no
// comment starts there. Unterminated block comments run to the end of text.
func CommentEnd(text string, i int) int {
	if i+1 >= len(text) || text[i] != '/' {
		return -1
	}
	switch text[i+1] {
	case '/':
		if nl := strings.IndexByte(text[i:], '\n'); nl >= 0 {
			return i + nl + 1
		}
		return len(text)
	case '*':
		depth := 0
		for k := i; k < len(text)-1; k++ {
			switch {
			case text[k] == '/' && text[k+1] == '*':
				depth++
				k++
			case text[k] == '*' && text[k+1] == '/':
				depth--
				k++
				if depth == 0 {
					return k + 1
				}
			}
		}
		return len(text)
	}
	return -1
}

// skip returns the offset past a comment or literal starting at i, or i when neither starts there
func skip(text string, i int) int {
	if end := CommentEnd(text, i); end >= 0 {
		return end
	}
	if lit, ok := ScanLiteral(text, i); ok {
		return lit.End
	}
	return i
}

// Literals returns every string literal of text outside comments, in source order. Literals
// nested in an interpolation follow the literal holding them.
func Literals(text string) []Literal {
	return literals(text, 0, len(text), nil)
}

func literals(text string, from, to int, out []Literal) []Literal {
	for i := from; i < to; {
		if end := CommentEnd(text, i); end >= 0 {
			i = end
			continue
		}
		if startsLiteral(text, i) {
			if lit, ok := ScanLiteral(text, i); ok {
				out = append(out, lit)
				for _, in := range lit.Interpolations {
					out = literals(text, in[0]+2, in[1]-1, out)
				}
				i = lit.End
				continue
			}
		}
		i++
	}
	return out
}

// MatchBrace returns the offset of the brace closing the one at text[open], stepping over
// comments and string literals, or -1 when it is unbalanced.
func MatchBrace(text string, open int) int {
	if open >= len(text) || text[open] != '{' {
		return -1
	}
	depth := 0
	for i := open; i < len(text); {
		if next := skip(text, i); next != i {
			i = next
			continue
		}
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return -1
}

// Unescape resolves Dart escape sequences in a non-raw literal body
func Unescape(body string) string {
	if !strings.Contains(body, `\`) {
		return body
	}
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case 'u':
			r, width := unicodeEscape(body[i+1:])
			if width == 0 {
				sb.WriteByte('u')
				continue
			}
			sb.WriteRune(r)
			i += width
		default:
			sb.WriteByte(body[i])
		}
	}
	return sb.String()
}

// unicodeEscape decodes the part of a \u escape following the u: XXXX or {X...}
func unicodeEscape(s string) (rune, int) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0
		}
		v, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || !utf8.ValidRune(rune(v)) {
			return 0, 0
		}
		return rune(v), end + 1
	}
	if len(s) < 4 {
		return 0, 0
	}
	v, err := strconv.ParseUint(s[:4], 16, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return 0, 0
	}
	return rune(v), 4
}
