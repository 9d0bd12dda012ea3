// Package refstyles renders user-defined reference styles into stylesheet rules.
//
// A style matches page reference names by prefix, suffix or substring,
// optionally prepends a glyph and recolors the matched text. Styles live in
// the host's plugin settings file as one JSON string field.
//
// # Rendering
//
// Render the stylesheet for a settings file:
//
//	result, err := refstyles.Render(refstyles.Config{
//		SettingsPath: "~/.logseq/settings/logseq-reference-styles.json",
//		OutputPath:   "reference-styles.css",
//	})
//
// # Generating
//
// The generator is a pure function usable on its own:
//
//	css := refstyles.Generate("todo", refstyles.StyleEntry{
//		Value:     "TODO/",
//		Selector:  refstyles.SelectorPrefix,
//		Character: "✅",
//	})
//
// # CLI Tool
//
// Install the CLI with:
//
//	go install github.com/yacobolo/refstyles/cmd/refstyles@latest
package refstyles

import (
	"fmt"

	"github.com/yacobolo/refstyles/internal/refstyles"
)

// Re-exported types
type (
	StyleEntry      = refstyles.StyleEntry
	StyleCollection = refstyles.StyleCollection
	Selector        = refstyles.Selector
	LintConfig      = refstyles.LintConfig
	LintResult      = refstyles.LintResult
)

// Selectors
const (
	SelectorPrefix    = refstyles.SelectorPrefix
	SelectorSuffix    = refstyles.SelectorSuffix
	SelectorSubstring = refstyles.SelectorSubstring
)

// Config locates the settings file and the stylesheet output.
type Config struct {
	SettingsPath string
	SettingsKey  string // default: blockStyles
	StyleKey     string // default: logseq-reference-styles-style
	OutputPath   string
}

// RenderResult contains render stats
type RenderResult struct {
	StylesRendered int
	Migrated       bool
	CSS            string
}

// Render loads the styles from config.SettingsPath, migrating legacy
// entries in place, and writes the aggregate stylesheet to config.OutputPath.
func Render(config Config) (*RenderResult, error) {
	store := refstyles.FileSettings{Path: config.SettingsPath, Key: config.SettingsKey}

	blob, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load failed: %w", err)
	}
	decoded, err := refstyles.Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}

	styleKey := config.StyleKey
	if styleKey == "" {
		styleKey = refstyles.DefaultStyleKey
	}

	form, err := refstyles.NewForm(store, refstyles.FileStyleSink{Path: config.OutputPath}, refstyles.NopUI{},
		refstyles.WithStyleKey(styleKey))
	if err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}

	return &RenderResult{
		StylesRendered: len(form.IDs()),
		Migrated:       decoded.Migrated(),
		CSS:            form.CSS(),
	}, nil
}

// Generate renders the stylesheet block for one style.
func Generate(title string, entry StyleEntry) string {
	return refstyles.Generate(title, entry)
}

// GenerateAll renders every style, separated by blank lines.
func GenerateAll(styles StyleCollection) string {
	return refstyles.GenerateAll(styles)
}

// EscapeValue approximates the host's sanitized form of a page name.
func EscapeValue(value string) string {
	return refstyles.EscapeValue(value)
}

// Lint checks the settings files matched by config.ScanPaths.
func Lint(config LintConfig) (*LintResult, error) {
	return refstyles.Lint(config)
}
