package domain

import "strings"

// NormalizeID trims surrounding whitespace and lower-cases a node identifier
func NormalizeID(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
