package refstyles

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Reporter handles formatting and outputting linting results
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// NewReporter creates a new reporter with the given configuration
func NewReporter(w io.Writer, config LintConfig) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       shouldUseColors(config),
		printLines:      config.PrintIssuedLines,
		printLinterName: config.PrintLinterName,
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(config LintConfig) bool {
	// Explicit flag wins
	if config.UseColors {
		return true
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// GitHub Actions and friends
	if os.Getenv("FORCE_COLOR") != "" || os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintIssues outputs issues in golangci-lint format
func (r *Reporter) PrintIssues(issues []Issue) {
	sortIssues(issues)
	for _, issue := range issues {
		r.printIssue(issue)
	}
}

// printIssue formats a single issue in golangci-lint style
func (r *Reporter) printIssue(issue Issue) {
	// Format: file:line:col: message (linter)
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	text := issue.Text
	switch issue.Severity {
	case SeverityError:
		text = RenderStyle(StyleRed, "error: ", r.useColors) + text
	case SeverityWarning:
		text = RenderStyle(StyleYellow, "warning: ", r.useColors) + text
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		text,
		RenderStyle(StyleGray, linterSuffix, r.useColors))

	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}

		caret := r.buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column
// Tabs in the prefix are kept so the caret lines up in any tab width.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	prefix := sourceLine[:prefixLen]

	var padding strings.Builder
	for _, ch := range prefix {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary outputs the issue count summary
func (r *Reporter) PrintSummary(result LintResult) {
	totalIssues := len(result.Issues)
	truncated := result.TruncatedCount

	fmt.Fprintln(r.w, "")

	switch {
	case result.ErrorCount > 0 && result.WarningCount > 0 && truncated > 0:
		fmt.Fprintf(r.w, "%s (%s, %s; %s truncated):\n",
			pluralizeCount(totalIssues, "issue", "issues"),
			pluralizeCount(result.ErrorCount, "error", "errors"),
			pluralizeCount(result.WarningCount, "warning", "warnings"),
			pluralizeCount(truncated, "issue", "issues"))
	case result.ErrorCount > 0 && result.WarningCount > 0:
		fmt.Fprintf(r.w, "%s (%s, %s):\n",
			pluralizeCount(totalIssues, "issue", "issues"),
			pluralizeCount(result.ErrorCount, "error", "errors"),
			pluralizeCount(result.WarningCount, "warning", "warnings"))
	case truncated > 0:
		fmt.Fprintf(r.w, "%s (%s truncated):\n",
			pluralizeCount(totalIssues, "issue", "issues"),
			pluralizeCount(truncated, "issue", "issues"))
	default:
		fmt.Fprintf(r.w, "%s:\n", pluralizeCount(totalIssues, "issue", "issues"))
	}

	for _, lc := range countByLinter(result.Issues) {
		fmt.Fprintf(r.w, "* %s: %d\n", lc.linter, lc.count)
	}
}

// PrintStatistics outputs the scan statistics used by the summary format
func (r *Reporter) PrintStatistics(result LintResult) {
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Reference Style Statistics", r.useColors))
	fmt.Fprintln(r.w, "--------------------------")
	fmt.Fprintf(r.w, "Files Discovered: %d\n", result.Stats.FilesDiscovered)
	fmt.Fprintf(r.w, "Files Scanned:    %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "Files Skipped:    %d\n", result.Stats.FilesSkipped)
	fmt.Fprintf(r.w, "Styles Checked:   %d\n", result.StylesChecked)
	fmt.Fprintf(r.w, "Errors:           %d\n", result.ErrorCount)
	fmt.Fprintf(r.w, "Warnings:         %d\n", result.WarningCount)

	if result.ErrorCount == 0 && result.WarningCount == 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, "All styles render cleanly", r.useColors))
	}
}

type linterCount struct {
	linter string
	count  int
}

// countByLinter groups issues per linter in name order.
func countByLinter(issues []Issue) []linterCount {
	counts := make(map[string]int)
	for _, issue := range issues {
		counts[issue.FromLinter]++
	}

	out := make([]linterCount, 0, len(counts))
	for linter, count := range counts {
		out = append(out, linterCount{linter: linter, count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].linter < out[j].linter })
	return out
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
