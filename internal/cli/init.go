package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/boristhebrave/upmprep/internal/config"
	"github.com/boristhebrave/upmprep/internal/unitymeta"
	"github.com/boristhebrave/upmprep/pkg/upmprep"
)

var initCmd = &cobra.Command{
	Use:   "init [project_dir]",
	Short: "Write a starter upmprep.yaml",
	Long: `Init writes a starter upmprep.yaml for the project.

The assembly name defaults to the project directory name and the runtime
source to src/<name>. A fresh assembly GUID is generated; keep it stable
across releases so Unity projects referencing the assembly keep working.

Examples:
  upmprep init
  upmprep init ../Sylves --name Sylves`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var initFlags struct {
	name  string
	force bool
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initFlags.name, "name", "",
		"Assembly and display name (default: project directory name)")
	initCmd.Flags().BoolVar(&initFlags.force, "force", false,
		"Overwrite an existing upmprep.yaml")
}

func runInit(cmd *cobra.Command, args []string) error {
	projectDir := projectDirArg(args)

	info, err := os.Stat(projectDir)
	if err != nil {
		return fmt.Errorf("invalid project directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory: %w", projectDir, upmprep.ErrInvalidConfig)
	}

	configPath := filepath.Join(projectDir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !initFlags.force {
		return fmt.Errorf("%s already exists (use --force to overwrite): %w", configPath, upmprep.ErrInvalidConfig)
	}

	name := initFlags.name
	if name == "" {
		abs, err := filepath.Abs(projectDir)
		if err != nil {
			return err
		}
		name = filepath.Base(abs)
	}

	cfg := config.Default(name)
	cfg.Runtime.AssemblyGUID = unitymeta.NewGUID()
	if err := config.Save(projectDir, cfg); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configPath)
	return nil
}
