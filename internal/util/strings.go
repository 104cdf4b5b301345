// Package util provides common utility functions used across the go-pinterest module.
package util

import "strings"

// SafeTruncate safely truncates a string to maxLen characters without panicking.
// Returns the original string if it's shorter than maxLen, otherwise returns
// the first maxLen characters. Used when logging token prefixes.
//
// If maxLen is negative, it's treated as 0 and returns an empty string.
//
// Example:
//
//	SafeTruncate("very-long-token-abc123", 8) // Returns: "very-lon"
//	SafeTruncate("short", 10)                  // Returns: "short"
//	SafeTruncate("test", -1)                   // Returns: ""
func SafeTruncate(s string, maxLen int) string {
	if maxLen < 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// EnsureTrailingSlash returns url with exactly one trailing slash, so that
// relative API paths resolve beneath it instead of replacing its last segment.
//
// Example:
//
//	EnsureTrailingSlash("https://api.pinterest.com/v1")   // Returns: "https://api.pinterest.com/v1/"
//	EnsureTrailingSlash("https://api.pinterest.com/v1//") // Returns: "https://api.pinterest.com/v1/"
func EnsureTrailingSlash(url string) string {
	return strings.TrimRight(url, "/") + "/"
}

// SplitList splits a space or comma separated list, dropping empty items.
//
// Example:
//
//	SplitList("read_public, write_public") // Returns: ["read_public", "write_public"]
func SplitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
