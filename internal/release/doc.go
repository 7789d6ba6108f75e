// Package release stages a UPM release of a C# library.
//
// A build runs these steps in order, stopping at the first failure:
//  1. lock the output directory against concurrent runs
//  2. derive the version from the changelog
//  3. copy the runtime source into the output, leaving out ignored entries
//  4. filter the copied runtime through the directive filter
//  5. copy the configured files and directories
//  6. write package.json, the assembly definition and its meta
//  7. optionally write placeholder .meta files
//  8. write the zip bundles
//
// Only the directories the build copies into are replaced; anything else in
// the output directory (a git checkout, for instance) is left alone. Nothing
// is rolled back when a step fails.
package release
