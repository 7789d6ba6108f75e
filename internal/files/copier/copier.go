package copier

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/moby/patternmatcher"

	"github.com/boristhebrave/upmprep/internal/files/filesystem"
)

// Ignore decides which entries of a tree are left out of a copy.
// The zero value ignores nothing.
type Ignore struct {
	base *patternmatcher.PatternMatcher
	path *patternmatcher.PatternMatcher
}

// CompileIgnore compiles ignore patterns. Empty patterns are dropped.
func CompileIgnore(patterns []string) (*Ignore, error) {
	var basePatterns, pathPatterns []string
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if strings.Contains(p, "/") {
			pathPatterns = append(pathPatterns, filepath.FromSlash(p))
		} else {
			basePatterns = append(basePatterns, p)
		}
	}

	ig := &Ignore{}
	var err error
	if len(basePatterns) > 0 {
		if ig.base, err = patternmatcher.New(basePatterns); err != nil {
			return nil, fmt.Errorf("invalid ignore pattern: %w", err)
		}
	}
	if len(pathPatterns) > 0 {
		if ig.path, err = patternmatcher.New(pathPatterns); err != nil {
			return nil, fmt.Errorf("invalid ignore pattern: %w", err)
		}
	}
	return ig, nil
}

// Match reports whether the entry at relPath (relative to the copied root)
// is ignored. Base-name patterns match any component of relPath, so an
// entry below an ignored directory is ignored too.
func (i *Ignore) Match(relPath string) (bool, error) {
	if i == nil {
		return false, nil
	}
	relPath = filepath.FromSlash(relPath)
	if i.base != nil {
		for _, name := range strings.Split(relPath, string(filepath.Separator)) {
			if name == "" {
				continue
			}
			ok, err := i.base.MatchesOrParentMatches(name)
			if err != nil || ok {
				return ok, err
			}
		}
	}
	if i.path != nil {
		return i.path.MatchesOrParentMatches(relPath)
	}
	return false, nil
}

// Result summarises a tree copy.
type Result struct {
	// Files lists copied files relative to the destination, with forward slashes.
	Files []string

	// Ignored counts files and directories left out by the ignore patterns.
	Ignored int
}

// Copier copies files and trees.
type Copier struct {
	fsProvider filesystem.FileSystemProvider
}

// New creates a copier on the given filesystem.
// Panics if fsProvider is nil.
func New(fsProvider filesystem.FileSystemProvider) *Copier {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Copier{fsProvider: fsProvider}
}

// CopyTree replaces dst with a copy of src, leaving out ignored entries.
// Whatever was at dst before is removed first.
func (c *Copier) CopyTree(src, dst string, ignore *Ignore) (Result, error) {
	src = filepath.Clean(src)
	dst = filepath.Clean(dst)
	if isWithin(dst, src) {
		return Result{}, fmt.Errorf("cannot copy %s into itself (%s)", src, dst)
	}

	dir, err := c.fsProvider.Open(src)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open source directory: %w", err)
	}

	if err := c.fsProvider.RemoveAll(dst); err != nil {
		return Result{}, fmt.Errorf("failed to clear %s: %w", dst, err)
	}

	var result Result
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return err
		}
		rel := file.RelativePath()
		if rel == "." {
			return nil
		}

		ignored, err := ignore.Match(rel)
		if err != nil {
			return err
		}
		if ignored {
			result.Ignored++
			if file.Info().IsDir() {
				return filesystem.SkipDir
			}
			return nil
		}
		if file.Info().IsDir() || !file.Info().Mode().IsRegular() {
			return nil
		}

		content, err := file.ReadContent()
		if err != nil {
			return err
		}
		if err := c.fsProvider.WriteFile(filepath.Join(dst, rel), content); err != nil {
			return err
		}
		result.Files = append(result.Files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return result, nil
}

// CopyFile copies a single file, creating missing parents of dst.
func (c *Copier) CopyFile(src, dst string) error {
	content, err := c.fsProvider.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}
	if err := c.fsProvider.WriteFile(dst, content); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}

func isWithin(p, dir string) bool {
	if p == dir {
		return true
	}
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
