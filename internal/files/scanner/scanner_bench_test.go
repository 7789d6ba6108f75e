package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// BenchmarkScanDirectory benchmarks directory scanning with real filesystem
func BenchmarkScanDirectory(b *testing.B) {
	tempDir := b.TempDir()

	for i := 0; i < 10; i++ {
		sub := filepath.Join(tempDir, fmt.Sprintf("dir%d", i))
		if err := os.MkdirAll(sub, 0755); err != nil {
			b.Fatal(err)
		}
		for j := 0; j < 10; j++ {
			name := filepath.Join(sub, fmt.Sprintf("File%d.cs", j))
			if err := os.WriteFile(name, []byte("class C {}\n"), 0644); err != nil {
				b.Fatal(err)
			}
		}
	}

	fileScanner := NewScanner()
	opts := Options{Extensions: []string{".cs"}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := fileScanner.ScanDirectory(tempDir, opts); err != nil {
			b.Fatal(err)
		}
	}
}
