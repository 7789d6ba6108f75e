package unitymeta

import (
	"encoding/json"
	"fmt"
)

// AssemblyDefinitionExtension is the extension of Unity assembly definition files.
const AssemblyDefinitionExtension = ".asmdef"

type VersionDefine struct {
	Name       string `json:"name"`
	Expression string `json:"expression"`
	Define     string `json:"define"`
}

// AssemblyDefinition is the JSON document Unity reads from a .asmdef file.
// Field order follows the files Unity writes itself.
type AssemblyDefinition struct {
	Name                  string          `json:"name"`
	References            []string        `json:"references"`
	IncludePlatforms      []string        `json:"includePlatforms"`
	ExcludePlatforms      []string        `json:"excludePlatforms"`
	AllowUnsafeCode       bool            `json:"allowUnsafeCode"`
	OverrideReferences    bool            `json:"overrideReferences"`
	PrecompiledReferences []string        `json:"precompiledReferences"`
	AutoReferenced        bool            `json:"autoReferenced"`
	DefineConstraints     []string        `json:"defineConstraints"`
	VersionDefines        []VersionDefine `json:"versionDefines"`
	NoEngineReferences    bool            `json:"noEngineReferences"`
}

// NewAssemblyDefinition returns an auto-referenced definition for all platforms.
func NewAssemblyDefinition(name string, references []string) AssemblyDefinition {
	if references == nil {
		references = []string{}
	}
	return AssemblyDefinition{
		Name:                  name,
		References:            references,
		IncludePlatforms:      []string{},
		ExcludePlatforms:      []string{},
		PrecompiledReferences: []string{},
		AutoReferenced:        true,
		DefineConstraints:     []string{},
		VersionDefines:        []VersionDefine{},
	}
}

// FileName returns the file name of the definition, e.g. Sylves.asmdef.
func (a AssemblyDefinition) FileName() string {
	return a.Name + AssemblyDefinitionExtension
}

// Render encodes the definition with four-space indentation.
func (a AssemblyDefinition) Render() ([]byte, error) {
	data, err := json.MarshalIndent(a, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode assembly definition: %w", err)
	}
	return append(data, '\n'), nil
}
