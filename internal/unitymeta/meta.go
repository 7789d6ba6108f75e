package unitymeta

import (
	"bytes"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/boristhebrave/upmprep/internal/files/filesystem"
	"github.com/boristhebrave/upmprep/pkg/upmprep"
)

// Importer names as written by Unity.
const (
	ImporterDefault            = "DefaultImporter"
	ImporterMono               = "MonoImporter"
	ImporterAssemblyDefinition = "AssemblyDefinitionImporter"
	ImporterTextScript         = "TextScriptImporter"
	ImporterPackageManifest    = "PackageManifestImporter"
)

// Unity writes "userData: " with a trailing space; the templates keep it.
var metaTemplate = template.Must(template.New("meta").Parse(`fileFormatVersion: 2
guid: {{.GUID}}
{{- if .Folder}}
folderAsset: yes{{end}}
{{.Importer}}:
  externalObjects: {}
{{- if eq .Importer "MonoImporter"}}
  serializedVersion: 2
  defaultReferences: []
  executionOrder: 0
  icon: {instanceID: 0}{{end}}
  userData: 
  assetBundleName: 
  assetBundleVariant: 
`))

type metaData struct {
	GUID     string
	Importer string
	Folder   bool
}

// RenderMeta renders a .meta file for an asset.
func RenderMeta(guid, importer string, folder bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := metaTemplate.Execute(&buf, metaData{GUID: guid, Importer: importer, Folder: folder}); err != nil {
		return nil, fmt.Errorf("failed to render meta: %w", err)
	}
	return buf.Bytes(), nil
}

// ImporterFor picks the importer Unity assigns to a file by its name.
func ImporterFor(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".cs":
		return ImporterMono
	case AssemblyDefinitionExtension:
		return ImporterAssemblyDefinition
	case ".txt", ".md", ".json", ".xml", ".bytes", ".csv", ".yaml", ".html", ".htm":
		if name == PackageManifestFileName {
			return ImporterPackageManifest
		}
		return ImporterTextScript
	}
	return ImporterDefault
}

// Hidden reports whether Unity skips the named asset on import: dot files
// and names ending in "~" are never imported.
func Hidden(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~")
}

// MetaGenerator writes placeholder .meta files.
type MetaGenerator struct {
	fsProvider  filesystem.FileSystemProvider
	packageName string
}

// NewMetaGenerator creates a generator for the named package.
// Panics if fsProvider is nil.
func NewMetaGenerator(fsProvider filesystem.FileSystemProvider, packageName string) *MetaGenerator {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &MetaGenerator{fsProvider: fsProvider, packageName: packageName}
}

// Generate writes a .meta file beside every asset under root that lacks one.
// root is the package root; the package root itself gets no meta. Existing
// metas are left alone. Returns the package-relative paths of the written
// metas, in lexical order.
func (g *MetaGenerator) Generate(root string) ([]string, error) {
	dir, err := g.fsProvider.Open(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open package root: %w", err)
	}

	type asset struct {
		path   string
		rel    string
		folder bool
	}
	var assets []asset
	present := make(map[string]bool)

	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return err
		}
		rel := file.RelativePath()
		if rel == "." {
			return nil
		}
		info := file.Info()
		if Hidden(info.Name()) {
			if info.IsDir() {
				return filesystem.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(info.Name(), upmprep.MetaExtension) {
			present[file.Path()] = true
			return nil
		}
		assets = append(assets, asset{path: file.Path(), rel: filepath.ToSlash(rel), folder: info.IsDir()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk package: %w", err)
	}

	var written []string
	for _, a := range assets {
		metaPath := a.path + upmprep.MetaExtension
		if present[metaPath] {
			continue
		}
		importer := ImporterDefault
		if !a.folder {
			importer = ImporterFor(path.Base(a.rel))
		}
		content, err := RenderMeta(StableGUID(g.packageName, a.rel), importer, a.folder)
		if err != nil {
			return written, err
		}
		if err := g.fsProvider.WriteFile(metaPath, content); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", metaPath, err)
		}
		written = append(written, a.rel+upmprep.MetaExtension)
	}
	return written, nil
}
