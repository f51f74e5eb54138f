package utils

import "strings"

// NormalizeVariant trims a size or color value supplied by a client
func NormalizeVariant(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

// MatchOption resolves a client-supplied variant against the product's offered options.
// Matching is case-insensitive and returns the canonical option spelling.
func MatchOption(options []string, raw string) (string, bool) {
	normalized := NormalizeVariant(raw)
	if normalized == "" {
		return "", false
	}
	for _, opt := range options {
		if opt == normalized {
			return opt, true
		}
	}
	for _, opt := range options {
		if strings.EqualFold(opt, normalized) {
			return opt, true
		}
	}
	return "", false
}
