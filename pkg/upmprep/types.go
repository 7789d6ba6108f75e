package upmprep

import (
	"errors"
	"fmt"
	"strings"
)

// FilterOptions configures one tree-filtering run.
type FilterOptions struct {
	// Defines are the active symbols: blocks guarded by them are kept.
	Defines []string

	// KeepDefines are pass-through symbols: their blocks, directives included,
	// are emitted as written.
	KeepDefines []string

	// Extensions is the allow-list of file extensions to filter (case-insensitive).
	Extensions []string

	// ExcludeDirs are directory base names skipped while walking.
	ExcludeDirs []string

	// Workers bounds concurrent file processing. Values below 2 mean sequential.
	Workers int

	// KeepGoing reports every failing file instead of stopping at the first.
	KeepGoing bool
}

// Validate checks if the FilterOptions are usable.
// It returns a multi-error if multiple validation failures occur.
func (o *FilterOptions) Validate() error {
	var errs []error

	if len(o.Extensions) == 0 {
		errs = append(errs, fmt.Errorf("at least one extension is required: %w", ErrInvalidConfig))
	}
	for _, ext := range o.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("extension %q must start with '.': %w", ext, ErrInvalidConfig))
		}
	}

	keep := make(map[string]bool, len(o.KeepDefines))
	for _, s := range o.KeepDefines {
		keep[s] = true
	}
	for _, s := range o.Defines {
		if keep[s] {
			errs = append(errs, fmt.Errorf("symbol %q is both defined and pass-through: %w", s, ErrInvalidConfig))
		}
	}

	if o.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// FileResult describes the outcome of filtering one file.
type FileResult struct {
	// Path is the file path relative to the processed root, forward slashes.
	Path string

	ChecksumBefore string
	ChecksumAfter  string

	// ChecksumNormalized is the line-ending independent checksum of the result.
	ChecksumNormalized string

	LinesIn  int
	LinesOut int

	// Changed reports whether the file was rewritten.
	Changed bool
}

// TreeResult summarizes a tree-filtering run.
type TreeResult struct {
	Files []FileResult
}

// Rewritten returns the number of files whose content changed.
func (r TreeResult) Rewritten() int {
	n := 0
	for _, f := range r.Files {
		if f.Changed {
			n++
		}
	}
	return n
}

// LinesRemoved returns the total number of lines dropped across all files.
func (r TreeResult) LinesRemoved() int {
	n := 0
	for _, f := range r.Files {
		n += f.LinesIn - f.LinesOut
	}
	return n
}
