package scanner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/boristhebrave/upmprep/internal/files/filesystem"
)

// Options controls which files a scan reports.
type Options struct {
	// Extensions is the allow-list of extensions, matched case-insensitively.
	// An empty list accepts every file.
	Extensions []string

	// ExcludeDirs are directory base names whose contents are skipped.
	ExcludeDirs []string
}

// Entry describes one eligible file.
type Entry struct {
	// Path is the path handed to the filesystem provider for reads and writes.
	Path string

	// RelativePath is relative to the scanned root, with forward slashes.
	RelativePath string

	Name      string
	Extension string
	SizeBytes int64
}

// ScanResult contains the eligible files of a scan in lexical order.
type ScanResult struct {
	Files []Entry

	// Ignored counts regular files rejected by the extension allow-list.
	Ignored int
}

// Scanner discovers eligible files in a directory tree.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided fsProvider is also thread-safe.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a new file scanner on the OS filesystem.
func NewScanner() *Scanner {
	return &Scanner{
		fsProvider: filesystem.NewOSFileSystem(),
	}
}

// NewScannerWithFS creates a new file scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		fsProvider: fsProvider,
	}
}

// ScanDirectory recursively scans root and returns the files eligible under opts.
func (s *Scanner) ScanDirectory(root string, opts Options) (ScanResult, error) {
	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return ScanResult{}, fmt.Errorf("failed to open directory: %w", err)
	}

	excluded := make(map[string]bool, len(opts.ExcludeDirs))
	for _, name := range opts.ExcludeDirs {
		excluded[name] = true
	}

	var result ScanResult
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}

		info := file.Info()
		if info.IsDir() {
			if file.RelativePath() != "." && excluded[info.Name()] {
				return filesystem.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		if !IsEligible(info.Name(), opts.Extensions) {
			result.Ignored++
			return nil
		}

		result.Files = append(result.Files, Entry{
			Path:         file.Path(),
			RelativePath: filepath.ToSlash(file.RelativePath()),
			Name:         info.Name(),
			Extension:    filepath.Ext(info.Name()),
			SizeBytes:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return ScanResult{}, err
	}

	return result, nil
}

// IsEligible reports whether a file name matches the extension allow-list.
// An empty allow-list accepts every name.
func IsEligible(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := filepath.Ext(name)
	for _, allowed := range extensions {
		if strings.EqualFold(ext, allowed) {
			return true
		}
	}
	return false
}
