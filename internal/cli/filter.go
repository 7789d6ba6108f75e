package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boristhebrave/upmprep/internal/files/filesystem"
	"github.com/boristhebrave/upmprep/internal/logging"
	"github.com/boristhebrave/upmprep/internal/params"
	"github.com/boristhebrave/upmprep/internal/processor"
	"github.com/boristhebrave/upmprep/internal/release"
	"github.com/boristhebrave/upmprep/internal/ui"
	"github.com/boristhebrave/upmprep/pkg/upmprep"
)

var filterCmd = &cobra.Command{
	Use:   "filter <dir>",
	Short: "Strip inactive #if branches from a source tree in place",
	Long: `Filter rewrites every eligible file under <dir> in place, keeping only the
code that is live for the active symbols.

  #if SYMBOL / #if !SYMBOL, #else, #endif   evaluated and removed
  blocks on a pass-through symbol           kept as written
  #pragma, #region, #endregion              kept as ordinary lines
  any other # directive                     error, the file is not changed

Files are independent: a failure leaves files already rewritten as they are.

Examples:
  # Filter a staged copy for Unity
  upmprep filter upm/Runtime -D UNITY

  # Keep DEBUG blocks for the consumer to evaluate
  upmprep filter upm/Runtime -D UNITY -K DEBUG

  # Read symbols from a file and report every broken file at once
  upmprep filter upm/Runtime --symbols-file unity.env --keep-going`,
	Args: cobra.ExactArgs(1),
	RunE: runFilter,
}

type filterFlagValues struct {
	symbols     symbolFlags
	extensions  []string
	excludeDirs []string
	workers     int
	keepGoing   bool
	lockRetries int
}

var filterFlags filterFlagValues

func init() {
	rootCmd.AddCommand(filterCmd)

	addSymbolFlags(filterCmd, &filterFlags.symbols)
	filterCmd.Flags().StringSliceVar(&filterFlags.extensions, "ext", nil,
		"File extensions to filter (default .cs)")
	filterCmd.Flags().StringSliceVar(&filterFlags.excludeDirs, "exclude-dir", nil,
		"Directory names to skip (can be specified multiple times)")
	filterCmd.Flags().IntVarP(&filterFlags.workers, "workers", "j", 1,
		"Number of files filtered concurrently")
	filterCmd.Flags().BoolVar(&filterFlags.keepGoing, "keep-going", false,
		"Report every failing file instead of stopping at the first")
	addLockRetriesFlag(filterCmd, &filterFlags.lockRetries)
}

func runFilter(cmd *cobra.Command, args []string) error {
	dir := args[0]
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	loadEnvironment()

	base := params.Symbols{Defines: upmprep.DefaultDefines(), KeepDefines: []string{}}
	syms, err := resolveSymbols(base, filterFlags.symbols, logger)
	if err != nil {
		return err
	}

	opts := upmprep.FilterOptions{
		Defines:     syms.Defines,
		KeepDefines: syms.KeepDefines,
		Extensions:  filterFlags.extensions,
		ExcludeDirs: filterFlags.excludeDirs,
		Workers:     filterFlags.workers,
		KeepGoing:   filterFlags.keepGoing,
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = upmprep.DefaultExtensions()
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	logger.Verbose("Active symbols: %v, pass-through: %v", opts.Defines, opts.KeepDefines)

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	locker := release.WaitingLock(release.DirectoryLock, filterFlags.lockRetries, logger)
	unlock, err := locker(ctx, dir)
	if err != nil {
		return err
	}
	defer func() {
		if err := unlock(); err != nil {
			logger.Error("Failed to release lock: %v", err)
		}
	}()

	proc := processor.New(filesystem.NewOSFileSystem(), logger)
	result, err := proc.ProcessTree(ctx, dir, opts)
	theme := ui.NewTheme(ui.Styled(stdoutFile(cmd)))
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.Failure(fmt.Sprintf("filter failed after %d file(s)", len(result.Files)), theme))
		return fmt.Errorf("filter failed: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), ui.FilterSummary(dir, result, verbose, theme))
	return nil
}
