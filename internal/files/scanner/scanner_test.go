package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boristhebrave/upmprep/internal/files/filesystem"
)

func newTestScanner() (*Scanner, *filesystem.MemoryFileSystem) {
	fs := filesystem.NewMemoryFileSystem("/project")
	return NewScannerWithFS(fs), fs
}

func TestNewScannerWithFS_NilFilesystem(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for nil filesystem")
		}
	}()
	NewScannerWithFS(nil)
}

func TestScanDirectory(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("Grid/HexGrid.cs", "class HexGrid {}")
	fs.AddFile("Grid/SquareGrid.CS", "class SquareGrid {}")
	fs.AddFile("Grid/HexGrid.cs.meta", "guid: 1")
	fs.AddFile("README.md", "# Sylves")

	result, err := s.ScanDirectory("/project", Options{Extensions: []string{".cs"}})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, "Grid/HexGrid.cs", result.Files[0].RelativePath)
	assert.Equal(t, "/project/Grid/HexGrid.cs", result.Files[0].Path)
	assert.Equal(t, ".cs", result.Files[0].Extension)
	assert.Equal(t, int64(len("class HexGrid {}")), result.Files[0].SizeBytes)
	assert.Equal(t, "Grid/SquareGrid.CS", result.Files[1].RelativePath, "extension match is case-insensitive")
	assert.Equal(t, 2, result.Ignored)
}

func TestScanDirectory_ExcludeDirs(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("Runtime/A.cs", "")
	fs.AddFile("Runtime/obj/Gen.cs", "")
	fs.AddFile("UnityShim/Vector3.cs", "")

	result, err := s.ScanDirectory("/project", Options{
		Extensions:  []string{".cs"},
		ExcludeDirs: []string{"obj", "UnityShim"},
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, "Runtime/A.cs", result.Files[0].RelativePath)
}

func TestScanDirectory_RootNameIsNotExcluded(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/obj")
	fs.AddFile("A.cs", "")

	result, err := NewScannerWithFS(fs).ScanDirectory("/obj", Options{ExcludeDirs: []string{"obj"}})
	require.NoError(t, err)
	assert.Len(t, result.Files, 1)
}

func TestScanDirectory_NoExtensionsAcceptsAll(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("a.cs", "")
	fs.AddFile("b.txt", "")

	result, err := s.ScanDirectory("/project", Options{})
	require.NoError(t, err)
	assert.Len(t, result.Files, 2)
	assert.Zero(t, result.Ignored)
}

func TestScanDirectory_NonexistentPath(t *testing.T) {
	s, _ := newTestScanner()

	_, err := s.ScanDirectory("/nonexistent", Options{})
	require.Error(t, err)
}

func TestIsEligible(t *testing.T) {
	tests := []struct {
		name       string
		extensions []string
		want       bool
	}{
		{"Grid.cs", []string{".cs"}, true},
		{"Grid.CS", []string{".cs"}, true},
		{"Grid.cs.meta", []string{".cs"}, false},
		{"Makefile", []string{".cs"}, false},
		{"shader.hlsl", []string{".cs", ".hlsl"}, true},
		{"anything", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEligible(tt.name, tt.extensions))
		})
	}
}
