// Package bundle writes release zip archives.
//
// A bundle is a list of entries, each copying a file or a directory tree from
// the project into the archive under a chosen name. Archive names always use
// forward slashes.
package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/boristhebrave/upmprep/internal/files/filesystem"
)

// Entry copies From (a file or directory) into the archive at To.
type Entry struct {
	From string
	To   string
}

// Result describes a written archive.
type Result struct {
	Path  string
	Files []string // archive names, in write order
}

// Writer builds zip archives through a filesystem provider.
type Writer struct {
	fsProvider filesystem.FileSystemProvider
}

// New creates a bundle writer. Panics if fsProvider is nil.
func New(fsProvider filesystem.FileSystemProvider) *Writer {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Writer{fsProvider: fsProvider}
}

// Write creates the archive at dst from entries, replacing any existing file.
// Nothing is written if any entry fails.
func (w *Writer) Write(dst string, entries []Entry) (result Result, err error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	defer func() {
		if closeErr := zw.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to finalize %s: %w", dst, closeErr)
		}
		if err != nil {
			result = Result{}
			return
		}
		if writeErr := w.fsProvider.WriteFile(dst, buf.Bytes()); writeErr != nil {
			result = Result{}
			err = fmt.Errorf("failed to write %s: %w", dst, writeErr)
		}
	}()

	seen := make(map[string]bool)
	add := func(name string, info filesystem.FileInfo, content []byte) error {
		if seen[name] {
			return fmt.Errorf("duplicate archive entry %q", name)
		}
		seen[name] = true

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return fmt.Errorf("failed to create header for %s: %w", name, err)
		}
		header.Name = name
		header.Method = zip.Deflate

		fw, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", name, err)
		}
		if _, err := fw.Write(content); err != nil {
			return fmt.Errorf("failed to add %s: %w", name, err)
		}
		result.Files = append(result.Files, name)
		return nil
	}

	for _, e := range entries {
		to, err := archiveName(e.To)
		if err != nil {
			return Result{}, err
		}

		info, err := w.fsProvider.Stat(e.From)
		if err != nil {
			return Result{}, fmt.Errorf("bundle entry %s: %w", e.From, err)
		}

		if !info.IsDir() {
			content, err := w.fsProvider.ReadFile(e.From)
			if err != nil {
				return Result{}, fmt.Errorf("bundle entry %s: %w", e.From, err)
			}
			if err := add(to, info, content); err != nil {
				return Result{}, err
			}
			continue
		}

		dir, err := w.fsProvider.Open(e.From)
		if err != nil {
			return Result{}, fmt.Errorf("bundle entry %s: %w", e.From, err)
		}
		err = dir.Walk(func(file filesystem.File, err error) error {
			if err != nil {
				return err
			}
			if file.Info().IsDir() || !file.Info().Mode().IsRegular() {
				return nil
			}
			content, err := file.ReadContent()
			if err != nil {
				return err
			}
			return add(path.Join(to, filepath.ToSlash(file.RelativePath())), file.Info(), content)
		})
		if err != nil {
			return Result{}, fmt.Errorf("bundle entry %s: %w", e.From, err)
		}
	}

	result.Path = dst
	return result, nil
}

// archiveName cleans an archive path and rejects names that would extract
// outside the target directory.
func archiveName(name string) (string, error) {
	clean := path.Clean(filepath.ToSlash(name))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
		return "", fmt.Errorf("invalid archive name %q", name)
	}
	return clean, nil
}
