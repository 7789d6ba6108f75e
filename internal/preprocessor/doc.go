// Package preprocessor strips conditional-compilation blocks from C# source.
//
// The filter walks a file line by line with a stack of open #if blocks.
// Each block is either evaluated against the active symbols, or passed
// through untouched when its symbol is in the pass-through set:
//
//	#if UNITY        // evaluated: directive dropped, branch kept or removed
//	#if !UNITY       // negation
//	#if GODOT        // pass-through when GODOT is a keep symbol: kept as written
//
// #pragma, #region and #endregion are ordinary content. Any other #-line,
// an unmatched #else or #endif, or an #if left open at end of input fails
// the whole file with a *DirectiveError and no output.
//
// # Example Usage
//
//	f := preprocessor.NewFilter([]string{"UNITY"}, nil)
//	res, err := f.FilterContent(content)
//	if err != nil {
//	    return fmt.Errorf("%s: %w", path, err)
//	}
//	os.WriteFile(path, res.Content, 0644)
package preprocessor
