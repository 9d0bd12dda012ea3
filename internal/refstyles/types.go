// Package refstyles turns user-defined reference styles into host stylesheet rules.
package refstyles

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors returned by settings decoding and form operations.
var (
	ErrMalformedSettings = errors.New("malformed settings")
	ErrUnknownShape      = errors.New("unrecognized style shape")
	ErrStyleNotFound     = errors.New("style not found")
	ErrInvalidSelector   = errors.New("invalid selector")
)

// Selector is the attribute-selector operator used to match reference names.
// Its value is the CSS symbol placed after data-ref.
type Selector string

// Supported selectors
const (
	SelectorPrefix    Selector = "^"
	SelectorSuffix    Selector = "$"
	SelectorSubstring Selector = "*"
)

// Selectors lists every selector in display order.
var Selectors = []Selector{SelectorPrefix, SelectorSuffix, SelectorSubstring}

// Valid reports whether s is one of the known selectors.
func (s Selector) Valid() bool {
	switch s {
	case SelectorPrefix, SelectorSuffix, SelectorSubstring:
		return true
	}
	return false
}

// Name returns the human readable selector name.
func (s Selector) Name() string {
	switch s {
	case SelectorPrefix:
		return "Prefix"
	case SelectorSuffix:
		return "Suffix"
	case SelectorSubstring:
		return "Substring"
	}
	return string(s)
}

// Next cycles to the following selector, wrapping around.
func (s Selector) Next() Selector {
	for i, sel := range Selectors {
		if sel == s {
			return Selectors[(i+1)%len(Selectors)]
		}
	}
	return SelectorPrefix
}

// Prev cycles to the preceding selector, wrapping around.
func (s Selector) Prev() Selector {
	for i, sel := range Selectors {
		if sel == s {
			return Selectors[(i+len(Selectors)-1)%len(Selectors)]
		}
	}
	return SelectorPrefix
}

// ParseSelector accepts either the symbol ("^", "$", "*") or the name
// ("prefix", "suffix", "substring", any case).
func ParseSelector(s string) (Selector, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "^", "prefix":
		return SelectorPrefix, nil
	case "$", "suffix":
		return SelectorSuffix, nil
	case "*", "substring":
		return SelectorSubstring, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSelector, s)
}

// UnmarshalJSON only accepts the persisted symbols.
func (s *Selector) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSelector, string(data))
	}
	sel := Selector(raw)
	if !sel.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSelector, raw)
	}
	*s = sel
	return nil
}

// StyleEntry is one user-defined reference style.
// Character and Color are optional; the empty string means unset.
type StyleEntry struct {
	Value     string   `json:"value"`
	Selector  Selector `json:"selector"`
	Character string   `json:"character,omitempty"`
	Color     string   `json:"color,omitempty"`
}

// StyleCollection maps opaque ids to style entries.
type StyleCollection map[string]StyleEntry

// IDs returns the collection keys in lexical order.
func (c StyleCollection) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a shallow copy. StyleEntry holds only strings so this is a full copy.
func (c StyleCollection) Clone() StyleCollection {
	out := make(StyleCollection, len(c))
	for id, entry := range c {
		out[id] = entry
	}
	return out
}

// Default values used when a style is added from the form.
const (
	DefaultStyleKey    = "logseq-reference-styles-style"
	DefaultSettingsKey = "blockStyles"
)

// DefaultEntry is the entry inserted by Form.Add.
var DefaultEntry = StyleEntry{
	Value:     "Party: ",
	Selector:  SelectorPrefix,
	Character: "🎉",
}

// OutputFormat represents the linter output format
type OutputFormat string

const (
	// OutputIssues shows only errors/warnings in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows per-linter counts only
	OutputSummary OutputFormat = "summary"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
)
