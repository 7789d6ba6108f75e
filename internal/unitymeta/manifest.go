package unitymeta

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/boristhebrave/upmprep/internal/config"
)

// PackageManifestFileName is the UPM package descriptor file name.
const PackageManifestFileName = "package.json"

type ManifestAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

// PackageManifest is the package.json document of a UPM package.
type PackageManifest struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	DisplayName      string            `json:"displayName"`
	Description      string            `json:"description,omitempty"`
	Unity            string            `json:"unity,omitempty"`
	UnityRelease     string            `json:"unityRelease,omitempty"`
	DocumentationURL string            `json:"documentationUrl,omitempty"`
	Dependencies     map[string]string `json:"dependencies"`
	Keywords         []string          `json:"keywords,omitempty"`
	Author           *ManifestAuthor   `json:"author,omitempty"`
}

// NewPackageManifest builds the manifest for one release of a package.
func NewPackageManifest(pkg config.PackageConfig, version string) PackageManifest {
	deps := pkg.Dependencies
	if deps == nil {
		deps = map[string]string{}
	}
	m := PackageManifest{
		Name:             pkg.Name,
		Version:          version,
		DisplayName:      pkg.DisplayName,
		Description:      pkg.Description,
		Unity:            pkg.Unity,
		UnityRelease:     pkg.UnityRelease,
		DocumentationURL: pkg.DocumentationURL,
		Dependencies:     deps,
		Keywords:         pkg.Keywords,
	}
	if pkg.Author.Name != "" {
		m.Author = &ManifestAuthor{
			Name:  pkg.Author.Name,
			Email: pkg.Author.Email,
			URL:   pkg.Author.URL,
		}
	}
	return m
}

// Render encodes the manifest with two-space indentation. URLs are written
// as is, without HTML escaping.
func (m PackageManifest) Render() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("failed to encode package manifest: %w", err)
	}
	return buf.Bytes(), nil
}
