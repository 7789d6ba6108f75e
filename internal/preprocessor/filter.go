package preprocessor

import (
	"fmt"

	"github.com/boristhebrave/upmprep/pkg/upmprep"
)

// SymbolSet is a set of conditional-compilation symbols.
type SymbolSet map[string]struct{}

// NewSymbolSet builds a set from a list of symbols. Empty names are ignored.
func NewSymbolSet(symbols ...string) SymbolSet {
	set := make(SymbolSet, len(symbols))
	for _, s := range symbols {
		if s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}

// Has reports whether the symbol is in the set.
func (s SymbolSet) Has(symbol string) bool {
	_, ok := s[symbol]
	return ok
}

// Filter removes code guarded by inactive #if branches.
// A Filter is immutable and safe for concurrent use; each call keeps its own stack.
type Filter struct {
	defines SymbolSet
	keep    SymbolSet
}

// NewFilter creates a Filter for the given active and pass-through symbols.
// A symbol present in both sets is treated as pass-through.
func NewFilter(defines, keepDefines []string) *Filter {
	return &Filter{
		defines: NewSymbolSet(defines...),
		keep:    NewSymbolSet(keepDefines...),
	}
}

// FilterLines returns the lines that survive conditional evaluation, in input order.
// Lines are returned verbatim; nothing is emitted if the input is malformed.
func (f *Filter) FilterLines(lines []string) ([]string, error) {
	var stack condStack
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		lineNo := i + 1
		d := parseDirective(line)

		switch d.kind {
		case kindIf:
			symbol, negate, err := parseCondition(d.arg)
			if err != nil {
				return nil, newDirectiveError(upmprep.ErrMalformedDirective, lineNo, line, err.Error())
			}
			if f.keep.Has(symbol) {
				stack.push(&passThrough{block: block{line: lineNo}})
				break
			}
			stack.push(&evaluated{block: block{line: lineNo}, active: negate != f.defines.Has(symbol)})
			continue

		case kindElse:
			if d.arg != "" {
				return nil, newDirectiveError(upmprep.ErrMalformedDirective, lineNo, line,
					fmt.Sprintf("unexpected %q after #else", d.arg))
			}
			top := stack.top()
			if top == nil {
				return nil, newDirectiveError(upmprep.ErrMalformedDirective, lineNo, line, "#else without matching #if")
			}
			if !top.markElse() {
				return nil, newDirectiveError(upmprep.ErrMalformedDirective, lineNo, line,
					fmt.Sprintf("second #else for #if on line %d", top.openedAt()))
			}
			if e, ok := top.(*evaluated); ok {
				e.active = !e.active
				continue
			}

		case kindEndif:
			if d.arg != "" {
				return nil, newDirectiveError(upmprep.ErrMalformedDirective, lineNo, line,
					fmt.Sprintf("unexpected %q after #endif", d.arg))
			}
			top, ok := stack.pop()
			if !ok {
				return nil, newDirectiveError(upmprep.ErrMalformedDirective, lineNo, line, "#endif without matching #if")
			}
			if _, keep := top.(*passThrough); !keep {
				continue
			}

		case kindUnknown:
			return nil, newDirectiveError(upmprep.ErrMalformedDirective, lineNo, line,
				fmt.Sprintf("unknown directive #%s", d.keyword))
		}

		if stack.visible() {
			out = append(out, line)
		}
	}

	if open := stack.top(); open != nil {
		openLine := lines[open.openedAt()-1]
		return nil, newDirectiveError(upmprep.ErrUnterminatedBlock, open.openedAt(), openLine,
			fmt.Sprintf("%d block(s) still open at end of input", stack.depth()))
	}

	return out, nil
}
