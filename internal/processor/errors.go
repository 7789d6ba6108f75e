package processor

import "fmt"

// FileError reports the file whose filtering failed and why.
type FileError struct {
	Path string // relative to the processed root
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
