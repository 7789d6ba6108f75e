package bundle

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boristhebrave/upmprep/internal/files/filesystem"
)

func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		files[f.Name] = string(content)
	}
	return files
}

func TestNew_NilFilesystem(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}

func TestWrite_FilesAndDirectories(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/repo")
	fs.AddFile("src/Sylves/bin/UnityRelease/netstandard2.0/Sylves.dll", "MZ")
	fs.AddFile("src/Sylves/bin/UnityRelease/netstandard2.0/Sylves.xml", "<doc/>")
	fs.AddFile("LICENSE.txt", "MIT")
	fs.AddFile("docs/_site/index.html", "<html/>")
	fs.AddFile("docs/_site/api/Sylves.html", "<html/>")

	result, err := New(fs).Write("/repo/release/Unity.zip", []Entry{
		{From: "/repo/src/Sylves/bin/UnityRelease/netstandard2.0/Sylves.dll", To: "Sylves.dll"},
		{From: "/repo/src/Sylves/bin/UnityRelease/netstandard2.0/Sylves.xml", To: "Sylves.xml"},
		{From: "/repo/LICENSE.txt", To: "LICENSE.txt"},
		{From: "/repo/docs/_site", To: "docs"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/repo/release/Unity.zip", result.Path)
	assert.Equal(t, []string{"Sylves.dll", "Sylves.xml", "LICENSE.txt", "docs/api/Sylves.html", "docs/index.html"}, result.Files)

	data, err := fs.ReadFile("/repo/release/Unity.zip")
	require.NoError(t, err)
	files := readArchive(t, data)
	assert.Equal(t, "MZ", files["Sylves.dll"])
	assert.Equal(t, "MIT", files["LICENSE.txt"])
	assert.Equal(t, "<html/>", files["docs/index.html"])
	assert.Len(t, files, 5)
}

func TestWrite_MissingEntryWritesNothing(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/repo")
	fs.AddFile("LICENSE.txt", "MIT")

	_, err := New(fs).Write("/repo/release/Godot.zip", []Entry{
		{From: "/repo/LICENSE.txt", To: "LICENSE.txt"},
		{From: "/repo/src/Sylves.Godot/bin/Release/net6.0/Sylves.Godot.dll", To: "Sylves.Godot.dll"},
	})
	require.Error(t, err)

	_, statErr := fs.Stat("/repo/release/Godot.zip")
	assert.Error(t, statErr)
}

func TestWrite_DuplicateName(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/repo")
	fs.AddFile("a.txt", "a")
	fs.AddFile("b.txt", "b")

	_, err := New(fs).Write("/repo/out.zip", []Entry{
		{From: "/repo/a.txt", To: "x.txt"},
		{From: "/repo/b.txt", To: "./x.txt"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate archive entry")
}

func TestWrite_EscapingName(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/repo")
	fs.AddFile("a.txt", "a")

	_, err := New(fs).Write("/repo/out.zip", []Entry{{From: "/repo/a.txt", To: "../a.txt"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid archive name")
}

func TestWrite_OSFileSystem(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "LICENSE.txt"), []byte("MIT"), 0644))

	dst := filepath.Join(dir, "release", "netstandard2.0.zip")
	_, err := New(filesystem.NewOSFileSystem()).Write(dst, []Entry{
		{From: filepath.Join(dir, "LICENSE.txt"), To: "LICENSE.txt"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"LICENSE.txt": "MIT"}, readArchive(t, data))
}
