package refstyles

// Issue represents a single linting violation in golangci-lint format
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "refcolor"
	Text        string   `json:"Text"`        // "style \"abc\": color \"blu\" is not a CSS color"
	Severity    string   `json:"Severity"`    // "", "warning", "error"
	StyleID     string   `json:"StyleID"`     // Empty for file-level issues
	SourceLines []string `json:"SourceLines"` // Lines of the settings file with the issue
	Pos         IssuePos `json:"Pos"`         // File location
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "settings/logseq-reference-styles.json"
	Line     int    `json:"Line"`     // 3
	Column   int    `json:"Column"`   // 18 (1-based, start of the style id)
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// Linter names
const (
	LinterShape     = "refshape"
	LinterValue     = "refvalue"
	LinterQuote     = "refquote"
	LinterGlyph     = "refglyph"
	LinterColor     = "refcolor"
	LinterDuplicate = "refduplicate"
	LinterLegacy    = "reflegacy"
)

// Issue message formats
const (
	IssueUndecodable  = "settings cannot be decoded: %v"
	IssueEmptyValue   = "style %q has an empty value and matches every reference"
	IssueBrokenCSS    = "style %q produces CSS that does not tokenize cleanly (%s)"
	IssueLongGlyph    = "style %q character %q is %d glyphs, expected 1"
	IssueInvalidColor = "style %q color %q is not a hex color or CSS keyword"
	IssueDuplicate    = "style %q duplicates %s match on %q from style %q"
	IssueLegacyShape  = "style %q uses the legacy prefix shape; run `refstyles migrate`"
)
