package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// idRegex matches identifiers that are safe as SVG element ids and URL path segments.
var idRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidateID validates a slider identifier.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - Maximum length of 64 characters
//   - Must start with a letter, then letters, digits, '-' or '_'
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "slider id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidID, "slider id too long (max 64 characters)")
	}
	if !idRegex.MatchString(id) {
		return New(ErrCodeInvalidID, "invalid slider id: %q", id)
	}
	return nil
}

// ValidateSelector validates a container selector before it is embedded in
// an HTML page. Empty selectors are allowed and mean "the default container".
func ValidateSelector(sel string) error {
	if len(sel) > 256 {
		return New(ErrCodeInvalidSelector, "selector too long (max 256 characters)")
	}

	for _, r := range sel {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSelector, "selector contains invalid control characters")
		}
	}

	// Characters that could break out of an attribute or script context
	dangerousPatterns := []string{"<", ">", "`", "\\", "\""}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(sel, pattern) {
			return New(ErrCodeInvalidSelector, "selector contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateColor validates a CSS color value used in rendered documents.
// Accepted forms are hex colors (#rgb, #rrggbb, #rrggbbaa) and plain keywords.
func ValidateColor(c string) error {
	if c == "" {
		return New(ErrCodeInvalidConfig, "color cannot be empty")
	}
	if !colorRegex.MatchString(c) {
		return New(ErrCodeInvalidConfig, "invalid color: %q", c)
	}
	return nil
}

var colorRegex = regexp.MustCompile(`^(#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})|[a-zA-Z]+)$`)
