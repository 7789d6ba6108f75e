package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boristhebrave/upmprep/internal/files/filesystem"
	"github.com/boristhebrave/upmprep/internal/logging"
	"github.com/boristhebrave/upmprep/internal/params"
	"github.com/boristhebrave/upmprep/internal/release"
	"github.com/boristhebrave/upmprep/internal/ui"
)

var releaseCmd = &cobra.Command{
	Use:   "release [project_dir]",
	Short: "Stage a UPM release of the project",
	Long: `Release stages the Unity Package Manager release described by upmprep.yaml.

The release command:
1. Locks the output directory against concurrent runs
2. Derives the version from the changelog (an Unreleased heading marks a preview)
3. Copies the runtime source into <output>/<target>, leaving out ignored entries
4. Strips inactive #if branches from the copied runtime
5. Copies the configured files and directories
6. Writes package.json, the assembly definition and its .meta
7. Optionally writes placeholder .meta files for every other asset
8. Writes the configured zip bundles

Arguments:
  project_dir    Directory containing upmprep.yaml (default: current directory)

Examples:
  # Stage the release configured in ./upmprep.yaml
  upmprep release

  # Force a version and skip the zip bundles
  upmprep release ../Sylves --set-version 1.3.0 --skip-bundles

  # Keep DEBUG blocks in the shipped source
  upmprep release -K DEBUG`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRelease,
}

type releaseFlagValues struct {
	symbols      symbolFlags
	setVersion   string
	workers      int
	keepGoing    bool
	skipBundles  bool
	generateMeta bool
	lockRetries  int
}

var releaseFlags releaseFlagValues

func init() {
	rootCmd.AddCommand(releaseCmd)

	addSymbolFlags(releaseCmd, &releaseFlags.symbols)
	releaseCmd.Flags().StringVar(&releaseFlags.setVersion, "set-version", "",
		"Use this version instead of the one derived from the changelog")
	releaseCmd.Flags().IntVarP(&releaseFlags.workers, "workers", "j", 0,
		"Number of files filtered concurrently (default: runtime.workers, or 1)")
	releaseCmd.Flags().BoolVar(&releaseFlags.keepGoing, "keep-going", false,
		"Report every failing file instead of stopping at the first")
	releaseCmd.Flags().BoolVar(&releaseFlags.skipBundles, "skip-bundles", false,
		"Do not write the zip bundles")
	releaseCmd.Flags().BoolVar(&releaseFlags.generateMeta, "generate-meta", false,
		"Write placeholder .meta files (overrides generate_meta in upmprep.yaml)")
	addLockRetriesFlag(releaseCmd, &releaseFlags.lockRetries)
}

func projectDirArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

func runRelease(cmd *cobra.Command, args []string) error {
	projectDir := projectDirArg(args)
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	loadEnvironment()

	cfg, err := loadProjectConfig(projectDir)
	if err != nil {
		return err
	}

	base := params.Symbols{Defines: cfg.Runtime.Defines, KeepDefines: cfg.Runtime.KeepDefines}
	syms, err := resolveSymbols(base, releaseFlags.symbols, logger)
	if err != nil {
		return err
	}
	cfg.Runtime.Defines = syms.Defines
	cfg.Runtime.KeepDefines = syms.KeepDefines
	if cmd.Flags().Changed("generate-meta") {
		cfg.GenerateMeta = releaseFlags.generateMeta
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	builder := release.NewBuilder(filesystem.NewOSFileSystem(), logger,
		release.WaitingLock(release.DirectoryLock, releaseFlags.lockRetries, logger))
	report, err := builder.Build(ctx, projectDir, cfg, release.Options{
		Version:     releaseFlags.setVersion,
		Workers:     releaseFlags.workers,
		KeepGoing:   releaseFlags.keepGoing,
		SkipBundles: releaseFlags.skipBundles,
	})
	theme := ui.NewTheme(ui.Styled(stdoutFile(cmd)))
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.Failure("release failed", theme))
		return fmt.Errorf("release failed: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), ui.ReleaseSummary(cfg.Package.Name, report, theme))
	return nil
}
