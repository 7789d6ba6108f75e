package cli

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/boristhebrave/upmprep/internal/config"
	"github.com/boristhebrave/upmprep/internal/params"
	"github.com/boristhebrave/upmprep/pkg/upmprep"
)

// addLockRetriesFlag registers --lock-retries on cmd.
func addLockRetriesFlag(cmd *cobra.Command, target *int) {
	cmd.Flags().IntVar(target, "lock-retries", 0,
		"Retry this many times with backoff when another run holds the lock (-1 waits until interrupted)")
}

// addSymbolFlags registers the symbol flags on cmd.
func addSymbolFlags(cmd *cobra.Command, f *symbolFlags) {
	cmd.Flags().StringSliceVarP(&f.defines, "define", "D", nil,
		"Active symbols (can be specified multiple times, or as A;B)\n"+
			"Blocks guarded by these symbols are kept, their directives removed")
	cmd.Flags().StringSliceVarP(&f.keepDefines, "keep-define", "K", nil,
		"Pass-through symbols (can be specified multiple times)\n"+
			"Blocks guarded by these symbols are kept as written, directives included")
	cmd.Flags().StringSliceVar(&f.files, "symbols-file", nil,
		"Load DEFINES and KEEP_DEFINES from .env files (can be specified multiple times)\n"+
			"Later files override earlier ones, --define/--keep-define override all")
}

// symbolFlags holds the symbol-related flag values shared by filter and release.
type symbolFlags struct {
	defines     []string
	keepDefines []string
	files       []string
}

// loadEnvironment reads a .env file from the working directory if present.
// Values already set in the environment win.
func loadEnvironment() {
	_ = godotenv.Load()
}

// loadProjectConfig loads upmprep.yaml, mapping a missing file to a
// configuration error with a hint.
func loadProjectConfig(projectDir string) (*config.ProjectConfig, error) {
	cfg, err := config.Load(projectDir)
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("no %s in %s (run 'upmprep init' to create one): %w",
			config.ConfigFileName, projectDir, upmprep.ErrInvalidConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	return cfg, nil
}

// resolveSymbols merges symbol sources.
// Priority (highest to lowest): CLI flags > symbol files > upmprep.yaml
// Later symbol files override earlier ones.
func resolveSymbols(base params.Symbols, flags symbolFlags, logger upmprep.Logger) (params.Symbols, error) {
	layers := []params.Symbols{base}

	for _, path := range flags.files {
		syms, err := params.LoadSymbolFile(path)
		if err != nil {
			if !errors.Is(err, upmprep.ErrInvalidConfig) {
				err = fmt.Errorf("%v: %w", err, upmprep.ErrInvalidConfig)
			}
			return params.Symbols{}, err
		}
		logger.Verbose("Loaded symbols from %s", path)
		layers = append(layers, syms)
	}

	layers = append(layers, params.Symbols{
		Defines:     params.ParseSymbolFlags(flags.defines),
		KeepDefines: params.ParseSymbolFlags(flags.keepDefines),
	})

	merged := params.Merge(layers...)
	if err := merged.Validate(); err != nil {
		return params.Symbols{}, err
	}
	return merged, nil
}
