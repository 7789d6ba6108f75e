// Package checksum provides file content hashing with normalization support.
//
// Two checksums are computed per file:
//
//   - Raw checksum: Hash of the exact file content (detects all changes)
//   - Normalized checksum: Hash after dropping a byte order mark, unifying
//     line endings and trimming trailing whitespace
//
// The processor records raw checksums before and after filtering and the
// normalized checksum of the result, so a Windows and a Unix checkout of
// the same source can be compared by content.
//
// # Example Usage
//
//	calculator := checksum.New()
//	rawChecksum := calculator.CalculateRaw(fileContent)
//	normalizedChecksum := calculator.CalculateNormalized(fileContent)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
