// Package files groups the file-handling sub-packages:
//   - filesystem: filesystem abstraction (OS and in-memory)
//   - scanner: discovery of files eligible for filtering
//   - copier: tree copies with ignore patterns
//
// # Usage
//
//	import (
//	    "github.com/boristhebrave/upmprep/internal/files/copier"
//	    "github.com/boristhebrave/upmprep/internal/files/filesystem"
//	    "github.com/boristhebrave/upmprep/internal/files/scanner"
//	)
//
//	fs := filesystem.NewOSFileSystem()
//	ignore, err := copier.CompileIgnore([]string{"bin", "obj", "*.csproj"})
//	_, err = copier.New(fs).CopyTree("src/Sylves", "upm/Runtime", ignore)
//
//	result, err := scanner.NewScannerWithFS(fs).ScanDirectory("upm/Runtime", scanner.Options{
//	    Extensions: []string{".cs"},
//	})
package files
