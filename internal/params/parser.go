package params

import (
	"fmt"
	"strings"

	"github.com/boristhebrave/upmprep/pkg/upmprep"
)

// Symbols holds an active and a pass-through symbol list.
// A nil list means the layer does not set it; an empty non-nil list clears it.
type Symbols struct {
	Defines     []string
	KeepDefines []string
}

// SplitSymbols splits a symbol list written the way build systems write
// DefineConstants: separated by semicolons, commas or whitespace.
// The result is never nil, and duplicates are dropped keeping first occurrence.
func SplitSymbols(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ';' || r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	return dedupe(fields)
}

// ParseSymbolFlags flattens repeated flag values, each of which may itself
// be a list ("--define UNITY;GODOT --define DEBUG"). Returns nil when no
// flag was given so the layer does not override lower layers.
func ParseSymbolFlags(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return SplitSymbols(strings.Join(values, ";"))
}

// Merge resolves layers in increasing priority order.
func Merge(layers ...Symbols) Symbols {
	var out Symbols
	for _, l := range layers {
		if l.Defines != nil {
			out.Defines = l.Defines
		}
		if l.KeepDefines != nil {
			out.KeepDefines = l.KeepDefines
		}
	}
	return out
}

// Validate checks that every symbol is a plain identifier.
func (s Symbols) Validate() error {
	for _, list := range [][]string{s.Defines, s.KeepDefines} {
		for _, sym := range list {
			if !isIdentifier(sym) {
				return fmt.Errorf("symbol %q is not a valid identifier: %w", sym, upmprep.ErrInvalidConfig)
			}
		}
	}
	return nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
