// Package changelog derives the package version from release notes.
//
// The release notes are markdown. Headings are read top to bottom: an
// "Unreleased" heading marks the next release as a preview, and the first
// other heading must name the latest release as MAJOR.MINOR.PATCH,
// optionally prefixed with "v".
package changelog

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/boristhebrave/upmprep/pkg/upmprep"
)

const unreleased = "unreleased"

var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// Version is a release version read from the changelog.
type Version struct {
	Major, Minor, Patch int

	// Preview is set when an unreleased section sits above the release.
	Preview bool
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Preview {
		s += upmprep.PreviewSuffix
	}
	return s
}

// Load reads the changelog at path and derives its version.
func Load(path string) (Version, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return Version{}, fmt.Errorf("failed to read changelog: %w", err)
	}
	v, err := Parse(source)
	if err != nil {
		return Version{}, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Parse derives the version from changelog markdown.
func Parse(source []byte) (Version, error) {
	preview := false
	for _, heading := range Headings(source) {
		name := strings.TrimPrefix(strings.ToLower(heading), "v")
		if name == unreleased {
			preview = true
			continue
		}

		m := versionPattern.FindStringSubmatch(name)
		if m == nil {
			return Version{}, fmt.Errorf("heading %q is not MAJOR.MINOR.PATCH: %w", heading, upmprep.ErrInvalidVersion)
		}
		v := Version{Preview: preview}
		for i, dst := range []*int{&v.Major, &v.Minor, &v.Patch} {
			n, err := strconv.Atoi(m[i+1])
			if err != nil {
				return Version{}, fmt.Errorf("heading %q: %v: %w", heading, err, upmprep.ErrInvalidVersion)
			}
			*dst = n
		}
		return v, nil
	}
	return Version{}, fmt.Errorf("no release heading in changelog: %w", upmprep.ErrVersionNotFound)
}

// Headings returns the trimmed text of every heading, in document order.
// Headings inside code blocks are not headings and are not returned.
func Headings(source []byte) []string {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var headings []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok {
			headings = append(headings, strings.TrimSpace(extractText(heading, source)))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return headings
}

// extractText concatenates the text of n's inline descendants.
func extractText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(extractText(c, source))
		}
	}
	return buf.String()
}
