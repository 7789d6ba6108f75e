package processor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/boristhebrave/upmprep/internal/checksum"
	"github.com/boristhebrave/upmprep/internal/files/filesystem"
	"github.com/boristhebrave/upmprep/internal/files/scanner"
	"github.com/boristhebrave/upmprep/internal/preprocessor"
	"github.com/boristhebrave/upmprep/pkg/upmprep"
)

// TreeProcessor rewrites a directory tree through the directive filter.
// A TreeProcessor holds no per-run state and may serve concurrent runs on
// different roots.
type TreeProcessor struct {
	fsProvider filesystem.FileSystemProvider
	scanner    *scanner.Scanner
	calculator checksum.Calculator
	logger     upmprep.Logger
}

// New creates a TreeProcessor. Panics if fsProvider or logger is nil.
func New(fsProvider filesystem.FileSystemProvider, logger upmprep.Logger) *TreeProcessor {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &TreeProcessor{
		fsProvider: fsProvider,
		scanner:    scanner.NewScannerWithFS(fsProvider),
		calculator: checksum.New(),
		logger:     logger,
	}
}

// ProcessTree filters every eligible file under root in place.
//
// The returned result lists the files that were processed, in path order,
// even when an error is returned. Errors for individual files are
// *FileError values and unwrap to the directive sentinels.
func (p *TreeProcessor) ProcessTree(ctx context.Context, root string, opts upmprep.FilterOptions) (upmprep.TreeResult, error) {
	if err := ctx.Err(); err != nil {
		return upmprep.TreeResult{}, err
	}

	scan, err := p.scanner.ScanDirectory(root, scanner.Options{
		Extensions:  opts.Extensions,
		ExcludeDirs: opts.ExcludeDirs,
	})
	if err != nil {
		return upmprep.TreeResult{}, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	p.logger.Verbose("Found %d eligible file(s) under %s (%d ignored)", len(scan.Files), root, scan.Ignored)

	filter := preprocessor.NewFilter(opts.Defines, opts.KeepDefines)

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]upmprep.FileResult, len(scan.Files))
	done := make([]bool, len(scan.Files))

	var mu sync.Mutex
	var fileErrs []*FileError

	for i, entry := range scan.Files {
		i, entry := i, entry
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := p.processFile(filter, entry)
			if err != nil {
				ferr := &FileError{Path: entry.RelativePath, Err: err}
				if !opts.KeepGoing {
					return ferr
				}
				p.logger.Error("%v", ferr)
				mu.Lock()
				fileErrs = append(fileErrs, ferr)
				mu.Unlock()
				return nil
			}
			results[i] = res
			done[i] = true
			return nil
		})
	}

	waitErr := g.Wait()

	var tree upmprep.TreeResult
	for i, ok := range done {
		if ok {
			tree.Files = append(tree.Files, results[i])
		}
	}

	if waitErr != nil {
		return tree, waitErr
	}
	if err := ctx.Err(); err != nil {
		return tree, err
	}
	if len(fileErrs) > 0 {
		sort.Slice(fileErrs, func(i, j int) bool { return fileErrs[i].Path < fileErrs[j].Path })
		errs := make([]error, len(fileErrs))
		for i, ferr := range fileErrs {
			errs[i] = ferr
		}
		return tree, errors.Join(errs...)
	}

	p.logger.Verbose("Filtered %d file(s), rewrote %d, removed %d line(s)", len(tree.Files), tree.Rewritten(), tree.LinesRemoved())
	return tree, nil
}

func (p *TreeProcessor) processFile(filter *preprocessor.Filter, entry scanner.Entry) (upmprep.FileResult, error) {
	content, err := p.fsProvider.ReadFile(entry.Path)
	if err != nil {
		return upmprep.FileResult{}, fmt.Errorf("failed to read: %w", err)
	}

	out, err := filter.FilterContent(content)
	if err != nil {
		return upmprep.FileResult{}, err
	}

	result := upmprep.FileResult{
		Path:               entry.RelativePath,
		ChecksumBefore:     p.calculator.CalculateRaw(content),
		ChecksumAfter:      p.calculator.CalculateRaw(out.Content),
		ChecksumNormalized: p.calculator.CalculateNormalized(out.Content),
		LinesIn:            out.LinesIn,
		LinesOut:           out.LinesOut,
	}
	result.Changed = result.ChecksumBefore != result.ChecksumAfter

	if !result.Changed {
		return result, nil
	}
	if err := p.fsProvider.WriteFile(entry.Path, out.Content); err != nil {
		return upmprep.FileResult{}, fmt.Errorf("failed to write: %w", err)
	}
	p.logger.Verbose("Filtered %s (%d -> %d lines)", entry.RelativePath, out.LinesIn, out.LinesOut)
	return result, nil
}

// Digest fingerprints a filtered tree from the paths and normalized
// checksums of its files. It is independent of file order, line endings
// and trailing whitespace.
func Digest(tree upmprep.TreeResult) string {
	files := make([]upmprep.FileResult, len(tree.Files))
	copy(files, tree.Files)
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	var b strings.Builder
	for _, f := range files {
		fmt.Fprintf(&b, "%s\x00%s\n", f.Path, f.ChecksumNormalized)
	}
	return checksum.New().CalculateRaw([]byte(b.String()))
}
