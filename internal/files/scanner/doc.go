// Package scanner provides file discovery for the directive filter.
//
// The scanner package is responsible for:
//   - Recursively discovering files in a directory tree
//   - Applying the extension allow-list that decides which files are filtered
//   - Skipping excluded directories (build output, shims)
//
// The scanner is designed to be filesystem-agnostic through the use of
// filesystem.FileSystemProvider interface, enabling both production use
// with the OS filesystem and testing with in-memory filesystems.
package scanner
