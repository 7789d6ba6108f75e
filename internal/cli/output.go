package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// stdoutFile returns the command's output as a file when it is one, so
// terminal detection can look at it. Redirected test buffers yield nil.
func stdoutFile(cmd *cobra.Command) *os.File {
	f, _ := cmd.OutOrStdout().(*os.File)
	return f
}
