package refstyles

import (
	"regexp"
	"strings"
)

// sanitizeChars mirrors the characters the host replaces when it derives a
// page's internal name.
var sanitizeChars = regexp.MustCompile(`[\[:\\*?"<>|\]+%#]`)

// EscapeValue approximates the host's sanitized page name for value:
// special characters become underscores and the result is lower-cased.
func EscapeValue(value string) string {
	return strings.ToLower(sanitizeChars.ReplaceAllString(value, "_"))
}
