package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boristhebrave/upmprep/pkg/upmprep"
)

const sylvesConfig = `package:
  name: com.boristhebrave.sylves
  display_name: Sylves
  description: Sylves is a pure C# utility for working with 2d and 3d grids
  unity: "2019.1"
  unity_release: 0b5
  documentation_url: https://www.boristhebrave.com/docs/sylves/1
  keywords: [grid]
  author:
    name: BorisTheBrave
    email: boris@boristhebrave.com
    url: https://www.boristhebrave.com

changelog: docs/articles/release_notes.md
output: upm

runtime:
  source: src/Sylves
  assembly: Sylves
  assembly_guid: eeb0c2632dc942b4a851016966687b2f
  ignore: [bin, obj, UnityShim, AssemblyInfo.cs, Sylves.csproj]
  keep_defines: [DEBUG]

files:
  - {from: LICENSE.txt, to: LICENSE.md}
  - {from: README.md, to: README.md}
  - {from: docs/articles/release_notes.md, to: CHANGELOG.md}
dirs:
  - {from: docs/_site, to: Documentation~}

bundles:
  - name: Unity.zip
    entries:
      - {from: src/Sylves/bin/UnityRelease/netstandard2.0/Sylves.dll, to: Sylves.dll}
      - {from: LICENSE.txt, to: LICENSE.txt}
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))
	return dir
}

func TestLoad_AllFields(t *testing.T) {
	cfg, err := Load(writeConfig(t, sylvesConfig))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "com.boristhebrave.sylves", cfg.Package.Name)
	assert.Equal(t, "Sylves", cfg.Package.DisplayName)
	assert.Equal(t, "2019.1", cfg.Package.Unity)
	assert.Equal(t, "0b5", cfg.Package.UnityRelease)
	assert.Equal(t, []string{"grid"}, cfg.Package.Keywords)
	assert.Equal(t, "BorisTheBrave", cfg.Package.Author.Name)
	assert.Equal(t, "docs/articles/release_notes.md", cfg.Changelog)

	assert.Equal(t, "src/Sylves", cfg.Runtime.Source)
	assert.Equal(t, "Runtime", cfg.Runtime.Target, "target defaults to Runtime")
	assert.Equal(t, []string{"UNITY"}, cfg.Runtime.Defines, "defines default to UNITY")
	assert.Equal(t, []string{"DEBUG"}, cfg.Runtime.KeepDefines)
	assert.Equal(t, []string{".cs"}, cfg.Runtime.Extensions)
	assert.Len(t, cfg.Runtime.Ignore, 5)

	require.Len(t, cfg.Files, 3)
	assert.Equal(t, CopyEntry{From: "LICENSE.txt", To: "LICENSE.md"}, cfg.Files[0])
	require.Len(t, cfg.Dirs, 1)
	assert.Equal(t, "Documentation~", cfg.Dirs[0].To)
	require.Len(t, cfg.Bundles, 1)
	assert.Len(t, cfg.Bundles[0].Entries, 2)
	assert.Equal(t, DefaultBundleDir, cfg.BundleDir)

	assert.NoError(t, cfg.Validate())
}

func TestLoad_ExplicitEmptyListsAreKept(t *testing.T) {
	cfg, err := Load(writeConfig(t, "runtime:\n  defines: []\n  ignore: []\n"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Runtime.Defines)
	assert.NotNil(t, cfg.Runtime.Defines)
	assert.Empty(t, cfg.Runtime.Ignore)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{{invalid"))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, upmprep.ErrInvalidConfig))
	assert.Nil(t, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultChangelog, cfg.Changelog)
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	cfg := Default("Sylves")
	cfg.Runtime.AssemblyGUID = "eeb0c2632dc942b4a851016966687b2f"

	require.NoError(t, Save(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDefault(t *testing.T) {
	cfg := Default("Sylves")

	assert.Equal(t, "com.example.sylves", cfg.Package.Name)
	assert.Equal(t, "src/Sylves", cfg.Runtime.Source)
	assert.Equal(t, "Sylves", cfg.Runtime.Assembly)
	assert.Empty(t, cfg.Runtime.AssemblyGUID)

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assembly_guid is required")
}

func TestValidate(t *testing.T) {
	valid := func() *ProjectConfig {
		cfg := Default("Sylves")
		cfg.Runtime.AssemblyGUID = "eeb0c2632dc942b4a851016966687b2f"
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name    string
		mutate  func(*ProjectConfig)
		wantErr string
	}{
		{"uppercase package name", func(c *ProjectConfig) { c.Package.Name = "com.Example.Sylves" }, "package.name"},
		{"single-segment package name", func(c *ProjectConfig) { c.Package.Name = "sylves" }, "package.name"},
		{"missing display name", func(c *ProjectConfig) { c.Package.DisplayName = "" }, "display_name"},
		{"missing source", func(c *ProjectConfig) { c.Runtime.Source = "" }, "runtime.source"},
		{"uppercase guid", func(c *ProjectConfig) { c.Runtime.AssemblyGUID = "EEB0C2632DC942B4A851016966687B2F" }, "assembly_guid"},
		{"dashed guid", func(c *ProjectConfig) { c.Runtime.AssemblyGUID = "eeb0c263-2dc9-42b4-a851-016966687b2f" }, "assembly_guid"},
		{"escaping target", func(c *ProjectConfig) { c.Runtime.Target = "../Runtime" }, "runtime.target"},
		{"output overlaps source", func(c *ProjectConfig) { c.Output = "src" }, "must not overlap"},
		{"file without from", func(c *ProjectConfig) { c.Files = []CopyEntry{{To: "x"}} }, "files[0].from"},
		{"absolute dir target", func(c *ProjectConfig) { c.Dirs = []CopyEntry{{From: "docs", To: "/abs"}} }, "dirs[0].to"},
		{"bundle not zip", func(c *ProjectConfig) {
			c.Bundles = []BundleConfig{{Name: "Unity.tar", Entries: []CopyEntry{{From: "a", To: "a"}}}}
		}, "bundles[0].name"},
		{"bundle without entries", func(c *ProjectConfig) { c.Bundles = []BundleConfig{{Name: "Unity.zip"}} }, "no entries"},
		{"define also kept", func(c *ProjectConfig) { c.Runtime.KeepDefines = []string{"UNITY"} }, "both defined and pass-through"},
		{"extension without dot", func(c *ProjectConfig) { c.Runtime.Extensions = []string{"cs"} }, "must start with '.'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.Is(err, upmprep.ErrInvalidConfig))
		})
	}
}

func TestFilterOptions(t *testing.T) {
	cfg := Default("Sylves")
	cfg.Runtime.KeepDefines = []string{"DEBUG"}
	cfg.Runtime.Workers = 4

	opts := cfg.FilterOptions()
	assert.Equal(t, []string{"UNITY"}, opts.Defines)
	assert.Equal(t, []string{"DEBUG"}, opts.KeepDefines)
	assert.Equal(t, 4, opts.Workers)
}
