package upmprep

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := proc.ProcessTree(ctx, dir, opts)
//	if errors.Is(err, upmprep.ErrMalformedDirective) {
//	    // A source file needs fixing before it can ship
//	}
var (
	// ErrMalformedDirective indicates an unknown #-directive, or an #else/#endif
	// without a matching #if.
	ErrMalformedDirective = errors.New("malformed directive")

	// ErrUnterminatedBlock indicates end of input was reached inside an #if block.
	ErrUnterminatedBlock = errors.New("unterminated #if block")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrVersionNotFound indicates the changelog has no release heading.
	ErrVersionNotFound = errors.New("version not found")

	// ErrInvalidVersion indicates a release heading is not MAJOR.MINOR.PATCH.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrLocked indicates another run holds the lock for the target directory.
	ErrLocked = errors.New("directory is locked by another run")
)

// usageErrorMarkers are fragments of cobra/pflag error messages caused by bad invocations.
var usageErrorMarkers = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrMalformedDirective), errors.Is(err, ErrUnterminatedBlock):
		return ExitMalformedSource
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrVersionNotFound), errors.Is(err, ErrInvalidVersion):
		return ExitVersionError
	case errors.Is(err, ErrLocked):
		return ExitLocked
	}

	errStr := err.Error()
	for _, marker := range usageErrorMarkers {
		if strings.Contains(errStr, marker) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
