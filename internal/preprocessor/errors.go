package preprocessor

import (
	"fmt"
	"strings"
)

// DirectiveError describes the first structural problem found in a file.
// It unwraps to upmprep.ErrMalformedDirective or upmprep.ErrUnterminatedBlock.
type DirectiveError struct {
	Kind   error
	Line   int    // 1-based line number
	Text   string // offending line, without its terminator
	Reason string
}

func newDirectiveError(kind error, line int, text, reason string) *DirectiveError {
	return &DirectiveError{
		Kind:   kind,
		Line:   line,
		Text:   strings.TrimRight(text, "\r\n"),
		Reason: reason,
	}
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("line %d: %v: %s: %q", e.Line, e.Kind, e.Reason, strings.TrimSpace(e.Text))
}

func (e *DirectiveError) Unwrap() error {
	return e.Kind
}
