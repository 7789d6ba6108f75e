package preprocessor

import (
	"bytes"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ContentResult is the outcome of filtering a whole file.
type ContentResult struct {
	Content  []byte
	LinesIn  int
	LinesOut int
}

// SplitLines splits text into lines, each keeping its own terminator.
// "\r\n" and "\n" endings are preserved as written; the last line may have none.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// FilterContent filters raw file content. A leading UTF-8 byte order mark is
// kept out of directive matching and written back in front of the result.
func (f *Filter) FilterContent(content []byte) (ContentResult, error) {
	bom := bytes.HasPrefix(content, utf8BOM)
	body := content
	if bom {
		body = content[len(utf8BOM):]
	}

	lines := SplitLines(string(body))
	kept, err := f.FilterLines(lines)
	if err != nil {
		return ContentResult{}, err
	}

	var buf bytes.Buffer
	buf.Grow(len(content))
	if bom {
		buf.Write(utf8BOM)
	}
	for _, line := range kept {
		buf.WriteString(line)
	}

	return ContentResult{
		Content:  buf.Bytes(),
		LinesIn:  len(lines),
		LinesOut: len(kept),
	}, nil
}
