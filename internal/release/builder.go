package release

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/boristhebrave/upmprep/internal/bundle"
	"github.com/boristhebrave/upmprep/internal/changelog"
	"github.com/boristhebrave/upmprep/internal/config"
	"github.com/boristhebrave/upmprep/internal/files/copier"
	"github.com/boristhebrave/upmprep/internal/files/filesystem"
	"github.com/boristhebrave/upmprep/internal/processor"
	"github.com/boristhebrave/upmprep/internal/unitymeta"
	"github.com/boristhebrave/upmprep/pkg/upmprep"
)

// Options adjusts a single build.
type Options struct {
	// Version overrides the version derived from the changelog.
	Version string

	// Workers and KeepGoing are passed to the tree processor.
	Workers   int
	KeepGoing bool

	// SkipBundles leaves the zip archives out.
	SkipBundles bool
}

// Report describes a finished build.
type Report struct {
	Version string
	Output  string

	// RuntimeFiles counts files copied from the runtime source.
	RuntimeFiles int
	// RuntimeIgnored counts entries left out by the ignore patterns.
	RuntimeIgnored int
	// Filter holds the per-file results of the directive filter.
	Filter upmprep.TreeResult
	// Digest fingerprints the filtered runtime, see processor.Digest.
	Digest string

	// Artifacts lists written files and directories relative to the project.
	Artifacts []string
	// Metas lists generated placeholder metas relative to the output.
	Metas []string
	// Bundles lists written archives.
	Bundles []bundle.Result
}

// Builder stages releases.
// Builder is NOT safe for concurrent Build calls on the same output; the
// Locker guards against that across processes.
type Builder struct {
	fsProvider filesystem.FileSystemProvider
	logger     upmprep.Logger
	locker     Locker

	copier    *copier.Copier
	processor *processor.TreeProcessor
	bundler   *bundle.Writer
}

// NewBuilder creates a Builder. Panics if any dependency is nil.
func NewBuilder(fsProvider filesystem.FileSystemProvider, logger upmprep.Logger, locker Locker) *Builder {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if locker == nil {
		panic("locker cannot be nil")
	}
	return &Builder{
		fsProvider: fsProvider,
		logger:     logger,
		locker:     locker,
		copier:     copier.New(fsProvider),
		processor:  processor.New(fsProvider, logger),
		bundler:    bundle.New(fsProvider),
	}
}

// Build stages the release described by cfg for the project in projectDir.
// On failure the returned report covers the steps that completed.
func (b *Builder) Build(ctx context.Context, projectDir string, cfg *config.ProjectConfig, opts Options) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	project := func(p string) string { return filepath.Join(projectDir, filepath.FromSlash(p)) }
	output := project(cfg.Output)
	report := &Report{Output: output}

	unlock, err := b.locker(ctx, output)
	if err != nil {
		return report, err
	}
	defer func() {
		if err := unlock(); err != nil {
			b.logger.Error("Failed to release lock on %s: %v", output, err)
		}
	}()

	version, err := b.resolveVersion(projectDir, cfg, opts)
	if err != nil {
		return report, err
	}
	report.Version = version
	b.logger.Info("Building %s %s into %s", cfg.Package.Name, version, output)

	record := func(p string) {
		rel, err := filepath.Rel(projectDir, p)
		if err != nil {
			rel = p
		}
		report.Artifacts = append(report.Artifacts, filepath.ToSlash(rel))
	}

	// Runtime source
	runtimeDir := filepath.Join(output, filepath.FromSlash(cfg.Runtime.Target))
	ignore, err := copier.CompileIgnore(cfg.Runtime.Ignore)
	if err != nil {
		return report, fmt.Errorf("runtime.ignore: %v: %w", err, upmprep.ErrInvalidConfig)
	}
	copied, err := b.copier.CopyTree(project(cfg.Runtime.Source), runtimeDir, ignore)
	if err != nil {
		return report, fmt.Errorf("failed to stage runtime source: %w", err)
	}
	report.RuntimeFiles = len(copied.Files)
	report.RuntimeIgnored = copied.Ignored
	record(runtimeDir)
	b.logger.Verbose("Copied %d runtime file(s), ignored %d", len(copied.Files), copied.Ignored)

	if err := ctx.Err(); err != nil {
		return report, err
	}

	filterOpts := cfg.FilterOptions()
	if opts.Workers > 0 {
		filterOpts.Workers = opts.Workers
	}
	filterOpts.KeepGoing = opts.KeepGoing
	tree, err := b.processor.ProcessTree(ctx, runtimeDir, filterOpts)
	report.Filter = tree
	if err != nil {
		return report, fmt.Errorf("failed to filter runtime source: %w", err)
	}
	report.Digest = processor.Digest(tree)
	b.logger.Info("Filtered %d file(s): %d rewritten, %d line(s) removed", len(tree.Files), tree.Rewritten(), tree.LinesRemoved())

	// Verbatim copies
	for _, e := range cfg.Files {
		dst := filepath.Join(output, filepath.FromSlash(e.To))
		if err := b.copier.CopyFile(project(e.From), dst); err != nil {
			return report, err
		}
		record(dst)
	}
	for _, e := range cfg.Dirs {
		dst := filepath.Join(output, filepath.FromSlash(e.To))
		if _, err := b.copier.CopyTree(project(e.From), dst, nil); err != nil {
			return report, err
		}
		record(dst)
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}

	// Package descriptor and assembly definition
	manifest, err := unitymeta.NewPackageManifest(cfg.Package, version).Render()
	if err != nil {
		return report, err
	}
	manifestPath := filepath.Join(output, unitymeta.PackageManifestFileName)
	if err := b.fsProvider.WriteFile(manifestPath, manifest); err != nil {
		return report, fmt.Errorf("failed to write package manifest: %w", err)
	}
	record(manifestPath)

	asm := unitymeta.NewAssemblyDefinition(cfg.Runtime.Assembly, cfg.Runtime.References)
	asmData, err := asm.Render()
	if err != nil {
		return report, err
	}
	asmPath := filepath.Join(runtimeDir, asm.FileName())
	if err := b.fsProvider.WriteFile(asmPath, asmData); err != nil {
		return report, fmt.Errorf("failed to write assembly definition: %w", err)
	}
	record(asmPath)

	asmMeta, err := unitymeta.RenderMeta(cfg.Runtime.AssemblyGUID, unitymeta.ImporterAssemblyDefinition, false)
	if err != nil {
		return report, err
	}
	if err := b.fsProvider.WriteFile(asmPath+upmprep.MetaExtension, asmMeta); err != nil {
		return report, fmt.Errorf("failed to write assembly definition meta: %w", err)
	}
	record(asmPath + upmprep.MetaExtension)

	if cfg.GenerateMeta {
		metas, err := unitymeta.NewMetaGenerator(b.fsProvider, cfg.Package.Name).Generate(output)
		report.Metas = metas
		if err != nil {
			return report, err
		}
		b.logger.Verbose("Generated %d meta file(s)", len(metas))
	}

	if opts.SkipBundles {
		return report, nil
	}
	for _, bc := range cfg.Bundles {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		entries := make([]bundle.Entry, len(bc.Entries))
		for i, e := range bc.Entries {
			entries[i] = bundle.Entry{From: project(e.From), To: e.To}
		}
		dst := filepath.Join(project(cfg.BundleDir), bc.Name)
		res, err := b.bundler.Write(dst, entries)
		if err != nil {
			return report, fmt.Errorf("bundle %s: %w", bc.Name, err)
		}
		report.Bundles = append(report.Bundles, res)
		record(dst)
		b.logger.Verbose("Wrote %s with %d file(s)", bc.Name, len(res.Files))
	}

	return report, nil
}

func (b *Builder) resolveVersion(projectDir string, cfg *config.ProjectConfig, opts Options) (string, error) {
	if opts.Version != "" {
		return opts.Version, nil
	}
	path := filepath.Join(projectDir, filepath.FromSlash(cfg.Changelog))
	source, err := b.fsProvider.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read changelog %s: %w", path, err)
	}
	v, err := changelog.Parse(source)
	if err != nil {
		return "", fmt.Errorf("%s: %w", cfg.Changelog, err)
	}
	return v.String(), nil
}
