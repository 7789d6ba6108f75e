package ui

import (
	"os"

	"golang.org/x/term"
)

// Styled reports whether output written to f should carry colors and symbols.
//
// Returns false if:
//   - UPMPREP_PLAIN=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//   - f is not a terminal (piped or redirected output)
func Styled(f *os.File) bool {
	if os.Getenv("UPMPREP_PLAIN") == "1" {
		return false
	}
	if os.Getenv("CI") != "" {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return f != nil && term.IsTerminal(int(f.Fd()))
}
