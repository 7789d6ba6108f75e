// Package params resolves the conditional-compilation symbol sets of a run.
//
// Symbols come from three layers, lowest priority first:
//   - the runtime section of upmprep.yaml
//   - symbol files in .env format (DEFINES=UNITY;NET_STANDARD, KEEP_DEFINES=DEBUG)
//   - --define and --keep-define command line flags
//
// A layer that names a list replaces the list of the layers below it. A list
// that is present but empty (DEFINES=) clears it.
//
// # Example Usage
//
//	fileSyms, err := params.LoadSymbolFile("unity.env")
//	if err != nil {
//	    return err
//	}
//	syms := params.Merge(fromConfig, fileSyms, fromFlags)
package params
