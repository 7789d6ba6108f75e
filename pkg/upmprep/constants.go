package upmprep

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Run completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or symbol files
	ExitLocked          = 12 // Another run holds the staging directory lock
	ExitMalformedSource = 13 // A source file has malformed directives
	ExitVersionError    = 14 // Version could not be derived from the changelog
)

const (
	// ConfigFileName is the project configuration file looked up in the project root.
	ConfigFileName = "upmprep.yaml"

	// LockSuffix is appended to a directory path to name its run lock file.
	// The lock lives beside the directory so it never ends up in the shipped tree.
	LockSuffix = ".lock"

	// MetaExtension is the extension of Unity asset metadata files.
	MetaExtension = ".meta"

	// PreviewSuffix is appended to the version when the changelog has an
	// unreleased section above the latest release.
	PreviewSuffix = "-preview"
)

// DefaultExtensions lists the file extensions filtered when none are configured.
func DefaultExtensions() []string {
	return []string{".cs"}
}

// DefaultDefines lists the active symbols for a UPM release.
func DefaultDefines() []string {
	return []string{"UNITY"}
}

// DefaultIgnorePatterns lists the base-name patterns skipped when staging the runtime source.
func DefaultIgnorePatterns() []string {
	return []string{"bin", "obj", "UnityShim", "AssemblyInfo.cs", "*.csproj"}
}
