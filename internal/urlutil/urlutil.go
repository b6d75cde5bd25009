package urlutil

import (
	"fmt"
	"regexp"
	"strings"
)

// InvalidInputError reports a user-supplied URL that failed validation.
type InvalidInputError struct {
	Input string
}

func (e *InvalidInputError) Error() string {
	if e.Input == "" {
		return "URL cannot be empty"
	}
	return fmt.Sprintf("invalid URL format: %q", e.Input)
}

// Matches domains with optional scheme, port and path/query suffix:
// example.com, www.example.com, https://blog.example.co.uk/path?x=1
var urlPattern = regexp.MustCompile(`(?i)^(https?://)?([\w-]+\.)+[a-z]{2,}(:\d+)?(/[\w\-./?%&=]*)?$`)

// IsValid reports whether raw looks like a usable website URL.
func IsValid(raw string) bool {
	return urlPattern.MatchString(raw)
}

// Normalize prefixes https:// when the URL carries no scheme. Idempotent.
// The scheme check is case-insensitive to match the validator, so
// HTTP://example.com never gets a second scheme stacked on top.
func Normalize(raw string) string {
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	return "https://" + raw
}

// Validate trims, checks and normalizes user input in one step.
func Validate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &InvalidInputError{}
	}
	if !IsValid(raw) {
		return "", &InvalidInputError{Input: raw}
	}
	return Normalize(raw), nil
}
