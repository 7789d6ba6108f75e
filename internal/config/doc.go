// Package config loads and validates upmprep.yaml, the per-project release
// description.
//
// All paths in the file are relative to the directory that holds it. Paths
// under copy entries and bundles use forward slashes on every platform.
package config
