package preprocessor

import (
	"fmt"
	"strings"
)

// directiveKind classifies a source line for the conditional filter.
type directiveKind int

const (
	kindContent directiveKind = iota // ordinary line, or #pragma/#region/#endregion
	kindIf
	kindElse
	kindEndif
	kindUnknown
)

// directive is the parsed form of a single line.
type directive struct {
	kind    directiveKind
	keyword string // text after '#' up to the first non-letter
	arg     string // remainder with any trailing // comment removed, trimmed
}

// contentKeywords are #-lines that do not affect conditional state.
var contentKeywords = map[string]bool{
	"pragma":    true,
	"region":    true,
	"endregion": true,
}

// parseDirective classifies a line. Only the first non-indentation
// character decides whether the line is a directive.
func parseDirective(line string) directive {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "#") {
		return directive{kind: kindContent}
	}

	rest := trimmed[1:]
	n := 0
	for n < len(rest) && isLetter(rest[n]) {
		n++
	}
	keyword := rest[:n]
	if n < len(rest) && !endsKeyword(rest[n]) {
		// #if_X or #endif2 is one unknown keyword, not #if followed by _X
		end := n
		for end < len(rest) && !endsKeyword(rest[end]) {
			end++
		}
		return directive{kind: kindUnknown, keyword: rest[:end]}
	}
	arg := rest[n:]
	if i := strings.Index(arg, "//"); i >= 0 {
		arg = arg[:i]
	}
	arg = strings.TrimSpace(arg)

	d := directive{keyword: keyword, arg: arg}
	switch {
	case keyword == "if":
		d.kind = kindIf
	case keyword == "else":
		d.kind = kindElse
	case keyword == "endif":
		d.kind = kindEndif
	case contentKeywords[keyword]:
		d.kind = kindContent
	default:
		d.kind = kindUnknown
	}
	return d
}

// parseCondition splits an #if expression into its symbol and negation flag.
// Only a single identifier, optionally prefixed by one '!', is accepted.
// Compound expressions such as "A && B" or "(A)" are rejected rather than
// looked up as one symbol, which would silently evaluate them as undefined.
func parseCondition(expr string) (symbol string, negate bool, err error) {
	if strings.HasPrefix(expr, "!") {
		negate = true
		expr = strings.TrimSpace(expr[1:])
	}
	if expr == "" {
		return "", false, fmt.Errorf("#if without a symbol")
	}
	if !isSymbol(expr) {
		return "", false, fmt.Errorf("unsupported #if expression %q", expr)
	}
	return expr, negate, nil
}

// endsKeyword reports whether c may follow a directive keyword.
func endsKeyword(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '!', '/':
		return true
	}
	return false
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSymbol(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isLetter(c) || c == '_' {
			continue
		}
		if i > 0 && c >= '0' && c <= '9' {
			continue
		}
		return false
	}
	return s != ""
}
