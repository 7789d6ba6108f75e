package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/boristhebrave/upmprep/internal/filelock"
	"github.com/boristhebrave/upmprep/pkg/upmprep"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConfigFileName is the name of the project configuration file.
const ConfigFileName = upmprep.ConfigFileName

// Defaults applied to fields left empty in upmprep.yaml.
const (
	DefaultOutput    = "upm"
	DefaultTarget    = "Runtime"
	DefaultChangelog = "CHANGELOG.md"
	DefaultBundleDir = "release"
)

var packageNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*(\.[a-z0-9][a-z0-9_-]*)+$`)

type Author struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email,omitempty"`
	URL   string `yaml:"url,omitempty"`
}

// PackageConfig holds the fields rendered into package.json.
type PackageConfig struct {
	Name             string            `yaml:"name"`
	DisplayName      string            `yaml:"display_name"`
	Description      string            `yaml:"description,omitempty"`
	Unity            string            `yaml:"unity,omitempty"`
	UnityRelease     string            `yaml:"unity_release,omitempty"`
	DocumentationURL string            `yaml:"documentation_url,omitempty"`
	Dependencies     map[string]string `yaml:"dependencies,omitempty"`
	Keywords         []string          `yaml:"keywords,omitempty"`
	Author           Author            `yaml:"author"`
}

// RuntimeConfig describes how the runtime source tree is staged and filtered.
type RuntimeConfig struct {
	Source       string   `yaml:"source"`
	Target       string   `yaml:"target,omitempty"`
	Assembly     string   `yaml:"assembly"`
	AssemblyGUID string   `yaml:"assembly_guid"`
	References   []string `yaml:"references,omitempty"`
	Ignore       []string `yaml:"ignore"`
	Defines      []string `yaml:"defines"`
	KeepDefines  []string `yaml:"keep_defines"`
	Extensions   []string `yaml:"extensions"`
	ExcludeDirs  []string `yaml:"exclude_dirs,omitempty"`
	Workers      int      `yaml:"workers,omitempty"`
}

// CopyEntry copies From (relative to the project) to To (relative to the
// output directory, or the archive root for bundles).
type CopyEntry struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// BundleConfig describes one zip archive written to the bundle directory.
type BundleConfig struct {
	Name    string      `yaml:"name"`
	Entries []CopyEntry `yaml:"entries"`
}

type ProjectConfig struct {
	Package      PackageConfig  `yaml:"package"`
	Changelog    string         `yaml:"changelog"`
	Output       string         `yaml:"output"`
	Runtime      RuntimeConfig  `yaml:"runtime"`
	Files        []CopyEntry    `yaml:"files,omitempty"`
	Dirs         []CopyEntry    `yaml:"dirs,omitempty"`
	GenerateMeta bool           `yaml:"generate_meta"`
	BundleDir    string         `yaml:"bundle_dir,omitempty"`
	Bundles      []BundleConfig `yaml:"bundles,omitempty"`
}

// Load reads upmprep.yaml from projectDir and fills in defaults.
func Load(projectDir string) (*ProjectConfig, error) {
	configPath := filepath.Join(projectDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v: %w", configPath, err, upmprep.ErrInvalidConfig)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes cfg to projectDir/upmprep.yaml atomically.
func Save(projectDir string, cfg *ProjectConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return filelock.AtomicWrite(filepath.Join(projectDir, ConfigFileName), data, 0644)
}

// Default returns a configuration for a runtime assembly called name whose
// source lives in src/<name>. The assembly GUID is left empty; callers that
// write a new project generate one.
func Default(name string) *ProjectConfig {
	cfg := &ProjectConfig{
		Package: PackageConfig{
			Name:        "com.example." + strings.ToLower(name),
			DisplayName: name,
			Unity:       "2019.1",
		},
		Runtime: RuntimeConfig{
			Source:   path.Join("src", name),
			Assembly: name,
		},
		Files: []CopyEntry{
			{From: "README.md", To: "README.md"},
		},
	}
	cfg.applyDefaults()
	return cfg
}

func (c *ProjectConfig) applyDefaults() {
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Changelog == "" {
		c.Changelog = DefaultChangelog
	}
	if c.BundleDir == "" {
		c.BundleDir = DefaultBundleDir
	}
	if c.Runtime.Target == "" {
		c.Runtime.Target = DefaultTarget
	}
	// nil means absent; an explicit empty list is kept as written
	if c.Runtime.Ignore == nil {
		c.Runtime.Ignore = upmprep.DefaultIgnorePatterns()
	}
	if c.Runtime.Defines == nil {
		c.Runtime.Defines = upmprep.DefaultDefines()
	}
	if c.Runtime.KeepDefines == nil {
		c.Runtime.KeepDefines = []string{}
	}
	if c.Runtime.Extensions == nil {
		c.Runtime.Extensions = upmprep.DefaultExtensions()
	}
}

// FilterOptions returns the filter settings of the runtime section.
func (c *ProjectConfig) FilterOptions() upmprep.FilterOptions {
	return upmprep.FilterOptions{
		Defines:     c.Runtime.Defines,
		KeepDefines: c.Runtime.KeepDefines,
		Extensions:  c.Runtime.Extensions,
		ExcludeDirs: c.Runtime.ExcludeDirs,
		Workers:     c.Runtime.Workers,
	}
}

// Validate checks the configuration and reports every problem found.
func (c *ProjectConfig) Validate() error {
	var errs []error
	invalid := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf(format+": %w", append(args, upmprep.ErrInvalidConfig)...))
	}

	if !packageNamePattern.MatchString(c.Package.Name) {
		invalid("package.name %q must be a lowercase reverse-domain name such as com.company.package", c.Package.Name)
	}
	if c.Package.DisplayName == "" {
		invalid("package.display_name is required")
	}

	if c.Runtime.Source == "" {
		invalid("runtime.source is required")
	}
	if c.Runtime.Assembly == "" {
		invalid("runtime.assembly is required")
	}
	if c.Runtime.AssemblyGUID == "" {
		invalid("runtime.assembly_guid is required")
	} else if !isUnityGUID(c.Runtime.AssemblyGUID) {
		invalid("runtime.assembly_guid %q must be 32 lowercase hex digits", c.Runtime.AssemblyGUID)
	}
	if err := checkRelative("runtime.target", c.Runtime.Target); err != nil {
		errs = append(errs, err)
	}

	if c.Output == "" {
		invalid("output is required")
	} else if c.Runtime.Source != "" && overlaps(c.Output, c.Runtime.Source) {
		invalid("output %q must not overlap runtime.source %q", c.Output, c.Runtime.Source)
	}

	for i, e := range c.Files {
		errs = append(errs, checkEntry(fmt.Sprintf("files[%d]", i), e))
	}
	for i, e := range c.Dirs {
		errs = append(errs, checkEntry(fmt.Sprintf("dirs[%d]", i), e))
	}

	names := make(map[string]bool)
	for i, b := range c.Bundles {
		if !strings.HasSuffix(b.Name, ".zip") || strings.ContainsAny(b.Name, `/\`) {
			invalid("bundles[%d].name %q must be a plain file name ending in .zip", i, b.Name)
		}
		if names[b.Name] {
			invalid("bundles[%d].name %q is used twice", i, b.Name)
		}
		names[b.Name] = true
		if len(b.Entries) == 0 {
			invalid("bundles[%d] has no entries", i)
		}
		for j, e := range b.Entries {
			errs = append(errs, checkEntry(fmt.Sprintf("bundles[%d].entries[%d]", i, j), e))
		}
	}

	opts := c.FilterOptions()
	if err := opts.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("runtime: %w", err))
	}

	return errors.Join(errs...)
}

// isUnityGUID accepts the dashless lowercase form Unity writes into .meta files.
func isUnityGUID(s string) bool {
	if len(s) != 32 || strings.ToLower(s) != s {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func checkEntry(field string, e CopyEntry) error {
	if e.From == "" {
		return fmt.Errorf("%s.from is required: %w", field, upmprep.ErrInvalidConfig)
	}
	return checkRelative(field+".to", e.To)
}

// checkRelative rejects destinations that would escape their root.
func checkRelative(field, p string) error {
	if p == "" {
		return fmt.Errorf("%s is required: %w", field, upmprep.ErrInvalidConfig)
	}
	clean := path.Clean(filepath.ToSlash(p))
	if path.IsAbs(clean) || filepath.IsAbs(p) || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%s %q must stay inside its root: %w", field, p, upmprep.ErrInvalidConfig)
	}
	return nil
}

func overlaps(a, b string) bool {
	a = path.Clean(filepath.ToSlash(a))
	b = path.Clean(filepath.ToSlash(b))
	return a == b || strings.HasPrefix(a, b+"/") || strings.HasPrefix(b, a+"/")
}
