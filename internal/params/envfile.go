package params

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/joho/godotenv"

	"github.com/boristhebrave/upmprep/pkg/upmprep"
)

// Keys recognised in a symbol file.
const (
	KeyDefines     = "DEFINES"
	KeyKeepDefines = "KEEP_DEFINES"
)

// ParseSymbolFile parses symbol file content in .env format.
//
// Format rules follow godotenv: comments start with #, values may be quoted,
// and "export " prefixes are accepted. Only DEFINES and KEEP_DEFINES are
// allowed; any other key is a configuration error so typos do not silently
// drop a symbol.
func ParseSymbolFile(content []byte) (Symbols, error) {
	env, err := godotenv.Parse(bytes.NewReader(content))
	if err != nil {
		return Symbols{}, fmt.Errorf("invalid symbol file: %w", err)
	}

	var unknown []string
	for key := range env {
		if key != KeyDefines && key != KeyKeepDefines {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Symbols{}, fmt.Errorf("unknown key(s) %v in symbol file (expected %s or %s): %w",
			unknown, KeyDefines, KeyKeepDefines, upmprep.ErrInvalidConfig)
	}

	var syms Symbols
	if v, ok := env[KeyDefines]; ok {
		syms.Defines = SplitSymbols(v)
	}
	if v, ok := env[KeyKeepDefines]; ok {
		syms.KeepDefines = SplitSymbols(v)
	}
	return syms, nil
}

// LoadSymbolFile reads and parses a symbol file from disk.
func LoadSymbolFile(path string) (Symbols, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Symbols{}, fmt.Errorf("failed to read symbol file %s: %w", path, err)
	}
	syms, err := ParseSymbolFile(content)
	if err != nil {
		return Symbols{}, fmt.Errorf("%s: %w", path, err)
	}
	return syms, nil
}
