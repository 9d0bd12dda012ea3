package refstyles

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// LintConfig holds linting configuration
type LintConfig struct {
	ScanPaths   []string // Patterns to scan (e.g., "settings/*.json")
	SettingsKey string   // Field holding the styles blob (default: blockStyles)
	Verbose     bool
	Strict      bool // Exit with code 1 on warnings too

	// golangci-style output configuration
	MaxIssuesPerLinter int  // 0 = unlimited (default)
	MaxSameIssues      int  // 0 = unlimited (default)
	PrintIssuedLines   bool // Show source lines with issues (default: true)
	PrintLinterName    bool // Show (refcolor) suffix (default: true)
	UseColors          bool // Enable color output (default: auto-detect)
}

// LintResult contains linting analysis results
type LintResult struct {
	Issues         []Issue
	Stats          ScanStats
	FilesScanned   int
	StylesChecked  int
	ErrorCount     int
	WarningCount   int
	TruncatedCount int // Issues removed due to limits
}

// Lint checks every settings file matched by config.ScanPaths.
func Lint(config LintConfig) (*LintResult, error) {
	files, stats, err := ExpandPaths(config.ScanPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to scan files: %w", err)
	}

	if config.Verbose && stats.FilesSkipped > 0 {
		fmt.Fprintf(os.Stderr, "Scanned %d files (skipped %d backup/ignored files)\n",
			stats.FilesScanned, stats.FilesSkipped)
	}

	result := &LintResult{Stats: stats, FilesScanned: len(files)}
	for _, file := range files {
		issues, checked := LintFile(file, config.SettingsKey)
		result.Issues = append(result.Issues, issues...)
		result.StylesChecked += checked
	}

	if config.MaxIssuesPerLinter > 0 || config.MaxSameIssues > 0 {
		result.Issues, result.TruncatedCount = limitIssues(result.Issues, config)
	}

	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			result.ErrorCount++
		case SeverityWarning:
			result.WarningCount++
		}
	}

	return result, nil
}

// LintFile checks a single settings file and returns its issues and the
// number of styles examined.
func LintFile(path, settingsKey string) ([]Issue, int) {
	// #nosec G304 - path comes from trusted configuration
	content, _ := os.ReadFile(path)
	src := string(content)

	blob, err := FileSettings{Path: path, Key: settingsKey}.Load()
	if err == nil {
		var decoded DecodeResult
		decoded, err = Decode(blob)
		if err == nil {
			return lintStyles(path, src, decoded), len(decoded.Styles)
		}
	}

	pos, lines := IssuePos{Filename: path, Line: 1, Column: 1}, firstLine(src)
	return []Issue{{
		FromLinter:  LinterShape,
		Text:        fmt.Sprintf(IssueUndecodable, err),
		Severity:    SeverityError,
		SourceLines: lines,
		Pos:         pos,
	}}, 0
}

func lintStyles(path, src string, decoded DecodeResult) []Issue {
	var issues []Issue
	seen := make(map[string]string) // selector+value -> first id

	for _, id := range decoded.Styles.IDs() {
		entry := decoded.Styles[id]
		pos, lines := locateStyle(path, src, id)
		add := func(linter, severity, text string) {
			issues = append(issues, Issue{
				FromLinter:  linter,
				Text:        text,
				Severity:    severity,
				StyleID:     id,
				SourceLines: lines,
				Pos:         pos,
			})
		}

		if decoded.Shapes[id] == ShapeLegacy {
			add(LinterLegacy, SeverityInfo, fmt.Sprintf(IssueLegacyShape, id))
		}

		if entry.Value == "" {
			add(LinterValue, SeverityError, fmt.Sprintf(IssueEmptyValue, id))
		}

		if reason := checkTokenization(id, entry); reason != "" {
			add(LinterQuote, SeverityError, fmt.Sprintf(IssueBrokenCSS, id, reason))
		}

		if n := uniseg.GraphemeClusterCount(entry.Character); n > 1 {
			add(LinterGlyph, SeverityWarning, fmt.Sprintf(IssueLongGlyph, id, entry.Character, n))
		}

		if entry.Color != "" && !IsCSSColor(entry.Color) {
			add(LinterColor, SeverityWarning, fmt.Sprintf(IssueInvalidColor, id, entry.Color))
		}

		key := string(entry.Selector) + entry.Value
		if first, dup := seen[key]; dup {
			add(LinterDuplicate, SeverityWarning,
				fmt.Sprintf(IssueDuplicate, id, strings.ToLower(entry.Selector.Name()), entry.Value, first))
		} else {
			seen[key] = id
		}
	}

	return issues
}

// checkTokenization compares the CSS token stream generated for entry with
// the stream for the same entry holding placeholder text. Any difference
// means value or character escaped its quoted string.
func checkTokenization(id string, entry StyleEntry) string {
	placeholder := entry
	placeholder.Value = "x"
	if placeholder.Character != "" {
		placeholder.Character = "x"
	}

	got := tokenTypes(Generate(id, entry))
	want := tokenTypes(Generate(id, placeholder))
	if slices.Equal(got, want) {
		return ""
	}
	if slices.Contains(got, css.BadStringToken) {
		return "newline inside a quoted string"
	}
	return "unbalanced quote or escape in value or character"
}

func tokenTypes(stylesheet string) []css.TokenType {
	lexer := css.NewLexer(parse.NewInputString(stylesheet))
	var types []css.TokenType
	for {
		tt, _ := lexer.Next()
		if tt == css.ErrorToken {
			return types
		}
		if tt == css.WhitespaceToken {
			continue
		}
		types = append(types, tt)
	}
}

// cssColorKeywords are the CSS named colors and color keywords.
var cssColorKeywords = func() map[string]bool {
	names := `inherit initial unset revert currentcolor transparent
aliceblue antiquewhite aqua aquamarine azure beige bisque black blanchedalmond blue
blueviolet brown burlywood cadetblue chartreuse chocolate coral cornflowerblue cornsilk
crimson cyan darkblue darkcyan darkgoldenrod darkgray darkgreen darkgrey darkkhaki
darkmagenta darkolivegreen darkorange darkorchid darkred darksalmon darkseagreen
darkslateblue darkslategray darkslategrey darkturquoise darkviolet deeppink deepskyblue
dimgray dimgrey dodgerblue firebrick floralwhite forestgreen fuchsia gainsboro ghostwhite
gold goldenrod gray green greenyellow grey honeydew hotpink indianred indigo ivory khaki
lavender lavenderblush lawngreen lemonchiffon lightblue lightcoral lightcyan
lightgoldenrodyellow lightgray lightgreen lightgrey lightpink lightsalmon lightseagreen
lightskyblue lightslategray lightslategrey lightsteelblue lightyellow lime limegreen linen
magenta maroon mediumaquamarine mediumblue mediumorchid mediumpurple mediumseagreen
mediumslateblue mediumspringgreen mediumturquoise mediumvioletred midnightblue mintcream
mistyrose moccasin navajowhite navy oldlace olive olivedrab orange orangered orchid
palegoldenrod palegreen paleturquoise palevioletred papayawhip peachpuff peru pink plum
powderblue purple rebeccapurple red rosybrown royalblue saddlebrown salmon sandybrown
seagreen seashell sienna silver skyblue slateblue slategray slategrey snow springgreen
steelblue tan teal thistle tomato turquoise violet wheat white whitesmoke yellow
yellowgreen`
	m := make(map[string]bool)
	for _, name := range strings.Fields(names) {
		m[name] = true
	}
	return m
}()

// IsCSSColor reports whether s is a hex color, a color function or a CSS
// color keyword.
func IsCSSColor(s string) bool {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		_, err := colorful.Hex(expandShortHex(s))
		return err == nil
	}

	lower := strings.ToLower(s)
	for _, fn := range []string{"rgb(", "rgba(", "hsl(", "hsla(", "var("} {
		if strings.HasPrefix(lower, fn) && strings.HasSuffix(lower, ")") {
			return true
		}
	}

	return cssColorKeywords[lower]
}

// expandShortHex turns #rgb into #rrggbb and drops the alpha of #rrggbbaa.
func expandShortHex(s string) string {
	switch len(s) {
	case 4:
		return "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	case 9:
		return s[:7]
	}
	return s
}

// locateStyle finds the first occurrence of id in the settings source.
func locateStyle(path, src, id string) (IssuePos, []string) {
	idx := strings.Index(src, id)
	if idx < 0 {
		return IssuePos{Filename: path, Line: 1, Column: 1}, firstLine(src)
	}

	line := strings.Count(src[:idx], "\n") + 1
	lineStart := strings.LastIndex(src[:idx], "\n") + 1
	lineEnd := strings.Index(src[idx:], "\n")
	if lineEnd < 0 {
		lineEnd = len(src)
	} else {
		lineEnd += idx
	}

	return IssuePos{Filename: path, Line: line, Column: idx - lineStart + 1},
		[]string{src[lineStart:lineEnd]}
}

func firstLine(src string) []string {
	if src == "" {
		return nil
	}
	line, _, _ := strings.Cut(src, "\n")
	return []string{line}
}

// limitIssues applies max-issues-per-linter and max-same-issues constraints
func limitIssues(issues []Issue, config LintConfig) ([]Issue, int) {
	originalCount := len(issues)

	if config.MaxIssuesPerLinter > 0 {
		perLinter := make(map[string]int)
		var kept []Issue
		for _, issue := range issues {
			if perLinter[issue.FromLinter] < config.MaxIssuesPerLinter {
				kept = append(kept, issue)
				perLinter[issue.FromLinter]++
			}
		}
		issues = kept
	}

	// Deduplication by message text
	if config.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, config.MaxSameIssues)
	}

	return issues, originalCount - len(issues)
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		count := messageCounts[issue.Text]
		if count < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}

// sortIssues orders issues by file, then line, then column, then linter.
func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i].Pos, issues[j].Pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return issues[i].FromLinter < issues[j].FromLinter
	})
}
