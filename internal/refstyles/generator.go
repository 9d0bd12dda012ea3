package refstyles

import (
	"fmt"
	"strings"
)

// Generate renders the stylesheet block for a single style entry.
//
// Four host contexts are matched: inline page references, bare page refs,
// recent-item sidebar entries and page titles. Inline references are matched
// against the raw value while every other context uses EscapeValue, since the
// host stores the sanitized name in data-ref for those elements.
//
// The output is a pure function of its arguments.
func Generate(title string, entry StyleEntry) string {
	sel := string(entry.Selector)
	raw := entry.Value
	escaped := EscapeValue(entry.Value)

	inline := fmt.Sprintf(".page-reference[data-ref%s='%s'] .page-ref", sel, raw)
	ref := fmt.Sprintf(".page-ref[data-ref%s='%s']", sel, escaped)
	recent := fmt.Sprintf(".recent-item[data-ref%s='%s']", sel, escaped)
	titleSel := fmt.Sprintf(".title[data-ref%s='%s']", sel, escaped)

	color := "color: inherit!important;"
	if entry.Color != "" {
		color = fmt.Sprintf("color: %s!important;", entry.Color)
	}

	display := "none"
	if entry.Character != "" {
		display = "inline"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n/* %s */\n", title)

	// Matched text
	fmt.Fprintf(&b, "%s,\n%s,\n%s a,\n%s {\n", inline, ref, recent, titleSel)
	fmt.Fprintf(&b, "  %s\n", color)
	b.WriteString("  font-weight: 500;\n}\n")

	// Recent items replace the page icon with the glyph
	fmt.Fprintf(&b, "%s {\n  position: relative;\n}\n", recent)
	fmt.Fprintf(&b, "%s .page-icon {\n  visibility: hidden;\n}\n", recent)

	// Glyph
	fmt.Fprintf(&b, "%s:before,\n%s:before,\n%s:before,\n%s:before {\n", inline, ref, recent, titleSel)
	fmt.Fprintf(&b, "  display: %s;\n", display)
	fmt.Fprintf(&b, "  content: '%s';\n", entry.Character)
	b.WriteString("  margin-right: 2px;\n}\n\n")

	fmt.Fprintf(&b, "%s:before {\n  position: absolute;\n  left: 20px;\n  top: 3px;\n}", recent)

	return b.String()
}

// GenerateAll renders every entry in id order, separated by a blank line.
func GenerateAll(styles StyleCollection) string {
	ids := styles.IDs()
	blocks := make([]string, 0, len(ids))
	for _, id := range ids {
		blocks = append(blocks, Generate(id, styles[id]))
	}
	return strings.Join(blocks, "\n\n")
}
