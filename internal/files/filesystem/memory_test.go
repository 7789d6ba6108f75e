package filesystem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystem_Basic(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/project")

	// Add some files
	mfs.AddFile("Root.cs", "class Root {}")
	mfs.AddFile("Grid/HexGrid.cs", "class HexGrid {}")

	// Try to open the root directory
	dir, err := mfs.Open("/test/project")
	require.NoError(t, err, "Failed to open root directory")
	require.NotNil(t, dir)

	// Verify we can walk the directory
	var fileCount int
	err = dir.Walk(func(file File, err error) error {
		require.NoError(t, err)
		if !file.Info().IsDir() {
			fileCount++
			t.Logf("Found file: %s (rel: %s)", file.Path(), file.RelativePath())
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, fileCount, "Expected 2 files")
}

func TestMemoryFileSystem_ReadFile(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/project")

	// Add a file
	expectedContent := "class Root {}"
	mfs.AddFile("Root.cs", expectedContent)

	// Read it back
	content, err := mfs.ReadFile("/test/project/Root.cs")
	require.NoError(t, err)
	require.Equal(t, expectedContent, string(content))
}

func TestMemoryFileSystem_Stat(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/project")

	// Add a file
	mfs.AddFile("Root.cs", "class Root {}")

	// Stat the file
	info, err := mfs.Stat("/test/project/Root.cs")
	require.NoError(t, err)
	require.False(t, info.IsDir())
	require.Equal(t, "Root.cs", info.Name())

	// Stat the root directory
	info, err = mfs.Stat("/test/project")
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestMemoryFileSystem_WalkRelativeToOpenedDirectory(t *testing.T) {
	mfs := NewMemoryFileSystem("/repo")
	mfs.AddFile("src/Sylves/Grid/HexGrid.cs", "class HexGrid {}")

	dir, err := mfs.Open("src/Sylves")
	require.NoError(t, err)

	var rels []string
	err = dir.Walk(func(file File, err error) error {
		require.NoError(t, err)
		rels = append(rels, file.RelativePath())
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{".", "Grid", "Grid/HexGrid.cs"}, rels)
}

func TestMemoryFileSystem_WalkSkipDir(t *testing.T) {
	mfs := NewMemoryFileSystem("/repo")
	mfs.AddFile("bin/Debug/Out.cs", "x")
	mfs.AddFile("binary.cs", "y")
	mfs.AddFile("Main.cs", "z")

	dir, err := mfs.Open("/repo")
	require.NoError(t, err)

	var files []string
	err = dir.Walk(func(file File, err error) error {
		if file.Info().IsDir() && file.Info().Name() == "bin" {
			return SkipDir
		}
		if !file.Info().IsDir() {
			files = append(files, file.RelativePath())
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Main.cs", "binary.cs"}, files)
}

func TestMemoryFileSystem_WriteFile(t *testing.T) {
	mfs := NewMemoryFileSystem("/repo")
	mfs.AddFile("A.cs", "old")

	require.NoError(t, mfs.WriteFile("/repo/A.cs", []byte("new")))
	content, err := mfs.ReadFile("A.cs")
	require.NoError(t, err)
	require.Equal(t, "new", string(content))

	require.NoError(t, mfs.WriteFile("/repo/deep/nested/B.cs", []byte("b")))
	info, err := mfs.Stat("/repo/deep/nested")
	require.NoError(t, err)
	require.True(t, info.IsDir())

	require.Error(t, mfs.WriteFile("/repo/deep", []byte("x")), "cannot overwrite a directory")
}

func TestMemoryFileSystem_ReadDir(t *testing.T) {
	mfs := NewMemoryFileSystem("/repo")
	mfs.AddFile("b.cs", "")
	mfs.AddFile("a.cs", "")
	mfs.AddFile("sub/c.cs", "")

	infos, err := mfs.ReadDir("/repo")
	require.NoError(t, err)

	var names []string
	for _, info := range infos {
		names = append(names, info.Name())
	}
	require.Equal(t, []string{"a.cs", "b.cs", "sub"}, names)

	_, err = mfs.ReadDir("/repo/a.cs")
	require.Error(t, err)
}

func TestMemoryFileSystem_RemoveAll(t *testing.T) {
	mfs := NewMemoryFileSystem("/repo")
	mfs.AddFile("upm/Runtime/A.cs", "a")
	mfs.AddFile("upm/Runtimes.txt", "keep")

	require.NoError(t, mfs.RemoveAll("/repo/upm/Runtime"))

	_, err := mfs.Stat("/repo/upm/Runtime/A.cs")
	require.Error(t, err)
	_, err = mfs.Stat("/repo/upm/Runtime")
	require.Error(t, err)
	_, err = mfs.Stat("/repo/upm/Runtimes.txt")
	require.NoError(t, err, "sibling with shared prefix must survive")

	require.NoError(t, mfs.RemoveAll("/repo/missing"))
}
