package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/boristhebrave/upmprep/internal/changelog"
)

var changelogVersionCmd = &cobra.Command{
	Use:   "changelog-version [project_dir]",
	Short: "Print the version derived from the changelog",
	Long: `Changelog-version prints the package version a release would use.

Headings of the changelog are read top to bottom. An "Unreleased" heading
marks the next release as a preview; the first other heading must be
MAJOR.MINOR.PATCH, optionally prefixed with "v".

The changelog is the one named in upmprep.yaml, or the file given with --file.

Examples:
  upmprep changelog-version
  upmprep changelog-version --file docs/articles/release_notes.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChangelogVersion,
}

var changelogFile string

func init() {
	rootCmd.AddCommand(changelogVersionCmd)

	changelogVersionCmd.Flags().StringVarP(&changelogFile, "file", "f", "",
		"Changelog to read instead of the one named in upmprep.yaml")
}

func runChangelogVersion(cmd *cobra.Command, args []string) error {
	projectDir := projectDirArg(args)

	path := changelogFile
	if path == "" {
		cfg, err := loadProjectConfig(projectDir)
		if err != nil {
			return err
		}
		path = filepath.Join(projectDir, filepath.FromSlash(cfg.Changelog))
	}

	v, err := changelog.Load(path)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), v.String())
	return nil
}
