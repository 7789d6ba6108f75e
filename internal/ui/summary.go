// Package ui renders run summaries for the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/boristhebrave/upmprep/internal/release"
	"github.com/boristhebrave/upmprep/pkg/upmprep"
)

// FilterSummary renders the outcome of filtering a tree. With details set,
// every rewritten file is listed with its line counts.
func FilterSummary(root string, result upmprep.TreeResult, details bool, theme Theme) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n",
		theme.Success.Render(theme.Check),
		theme.Title.Render(fmt.Sprintf("Filtered %d file(s) in %s", len(result.Files), root)))
	fmt.Fprintf(&b, "  %s%s\n", label(theme, "rewritten"), theme.Value.Render(fmt.Sprint(result.Rewritten())))
	fmt.Fprintf(&b, "  %s%s\n", label(theme, "removed"), theme.Value.Render(fmt.Sprintf("%d line(s)", result.LinesRemoved())))

	if details {
		for _, f := range result.Files {
			if !f.Changed {
				continue
			}
			fmt.Fprintf(&b, "    %s %s\n", f.Path,
				theme.Muted.Render(fmt.Sprintf("%d %s %d sha256:%s", f.LinesIn, theme.Arrow, f.LinesOut, shortSum(f.ChecksumAfter))))
		}
	}
	return b.String()
}

// ReleaseSummary renders the outcome of a release build.
func ReleaseSummary(packageName string, report *release.Report, theme Theme) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n",
		theme.Success.Render(theme.Check),
		theme.Title.Render(fmt.Sprintf("%s %s staged in %s", packageName, report.Version, report.Output)))
	fmt.Fprintf(&b, "  %s%s\n", label(theme, "runtime"), theme.Value.Render(fmt.Sprintf(
		"%d file(s), %d ignored, %d rewritten, %d line(s) removed",
		report.RuntimeFiles, report.RuntimeIgnored, report.Filter.Rewritten(), report.Filter.LinesRemoved())))
	if report.Digest != "" {
		fmt.Fprintf(&b, "  %s%s\n", label(theme, "digest"), theme.Muted.Render(shortSum(report.Digest)))
	}
	if len(report.Metas) > 0 {
		fmt.Fprintf(&b, "  %s%s\n", label(theme, "metas"), theme.Value.Render(fmt.Sprintf("%d generated", len(report.Metas))))
	}
	for _, bundle := range report.Bundles {
		fmt.Fprintf(&b, "  %s%s %s\n", label(theme, "bundle"), theme.Value.Render(bundle.Path),
			theme.Muted.Render(fmt.Sprintf("(%d file(s))", len(bundle.Files))))
	}
	return b.String()
}

// Failure renders a one-line failure header.
func Failure(msg string, theme Theme) string {
	return fmt.Sprintf("%s %s\n", theme.Error.Render(theme.Cross), theme.Error.Render(msg))
}

func shortSum(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}

func label(theme Theme, name string) string {
	// The plain theme has no width, so pad by hand
	s := theme.Label.Render(name)
	if theme.Label.GetWidth() == 0 {
		s = fmt.Sprintf("%-10s", name)
	}
	return s
}
