package refstyles

import (
	"encoding/json"
	"fmt"
)

// storedEntry accepts both the current and the legacy persisted shapes.
// Pointer fields distinguish "absent" from "empty".
type storedEntry struct {
	Value     *string   `json:"value"`
	Selector  *Selector `json:"selector"`
	Prefix    *string   `json:"prefix"`
	Character string    `json:"character"`
	Color     string    `json:"color"`
}

// Shape identifies which persisted layout an entry was read from.
type Shape int

// Persisted shapes
const (
	ShapeCurrent Shape = iota
	// ShapeLegacy entries predate selectors and only matched prefixes.
	ShapeLegacy
)

// normalize converts a stored entry into a StyleEntry.
func (s storedEntry) normalize() (StyleEntry, Shape, error) {
	switch {
	case s.Selector != nil:
		if s.Value == nil {
			return StyleEntry{}, ShapeCurrent, fmt.Errorf("%w: missing value", ErrUnknownShape)
		}
		return StyleEntry{
			Value:     *s.Value,
			Selector:  *s.Selector,
			Character: s.Character,
			Color:     s.Color,
		}, ShapeCurrent, nil
	case s.Prefix != nil:
		return StyleEntry{
			Value:     *s.Prefix,
			Selector:  SelectorPrefix,
			Character: s.Character,
			Color:     s.Color,
		}, ShapeLegacy, nil
	}
	return StyleEntry{}, ShapeCurrent, fmt.Errorf("%w: neither selector nor prefix", ErrUnknownShape)
}

// DecodeResult is a decoded blob plus the shape each entry was stored in.
type DecodeResult struct {
	Styles StyleCollection
	Shapes map[string]Shape
}

// Migrated reports whether any entry was read from the legacy shape.
func (r DecodeResult) Migrated() bool {
	for _, shape := range r.Shapes {
		if shape == ShapeLegacy {
			return true
		}
	}
	return false
}

// Decode parses a persisted settings blob, normalizing legacy entries.
func Decode(blob string) (DecodeResult, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return DecodeResult{}, fmt.Errorf("%w: %w", ErrMalformedSettings, err)
	}

	result := DecodeResult{
		Styles: make(StyleCollection, len(raw)),
		Shapes: make(map[string]Shape, len(raw)),
	}
	for id, msg := range raw {
		var stored storedEntry
		if err := json.Unmarshal(msg, &stored); err != nil {
			return DecodeResult{}, fmt.Errorf("style %q: %w: %w", id, ErrMalformedSettings, err)
		}
		entry, shape, err := stored.normalize()
		if err != nil {
			return DecodeResult{}, fmt.Errorf("style %q: %w", id, err)
		}
		result.Styles[id] = entry
		result.Shapes[id] = shape
	}

	return result, nil
}

// DecodeCollection parses a persisted blob and reports whether any entry
// needed migration from the legacy shape.
func DecodeCollection(blob string) (StyleCollection, bool, error) {
	result, err := Decode(blob)
	if err != nil {
		return nil, false, err
	}
	return result.Styles, result.Migrated(), nil
}

// EncodeCollection serializes styles in the current shape.
func EncodeCollection(styles StyleCollection) (string, error) {
	if styles == nil {
		styles = StyleCollection{}
	}
	data, err := json.Marshal(styles)
	if err != nil {
		return "", fmt.Errorf("encode styles: %w", err)
	}
	return string(data), nil
}
