// Package copier copies directory trees through a filesystem.FileSystemProvider.
//
// Ignore patterns follow the dockerignore grammar. A pattern without a slash
// is matched against every base name, so "bin" skips any directory called
// bin at any depth and "*.csproj" skips project files everywhere. A pattern
// with a slash is matched against the path relative to the copied root.
package copier
