package utils

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Compiled regular expressions for validation
var (
	// Line numbers mix digits, latin letters, hangul and hyphens ("1187", "첨단09", "송정19-1")
	validLineNumberPattern = regexp.MustCompile(`^[0-9A-Za-z\p{Hangul}_-]+$`)

	// Detect potentially dangerous characters - more focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)

	// Detect HTML/script tags
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

const (
	maxLineNumberLength = 20
	maxQueryLength      = 100
)

// ValidateLineNumber validates a bus line number taken from a path
func ValidateLineNumber(number string) error {
	if number == "" {
		return errors.New("line number cannot be empty")
	}

	if utf8.RuneCountInString(number) > maxLineNumberLength {
		return errors.New("line number too long (max 20 characters)")
	}

	if !validLineNumberPattern.MatchString(number) {
		return errors.New("line number contains invalid characters")
	}

	return nil
}

// ValidateQuery validates search query strings
func ValidateQuery(query string) error {
	// Empty queries are allowed
	if query == "" {
		return nil
	}

	if utf8.RuneCountInString(query) > maxQueryLength {
		return errors.New("query too long (max 100 characters)")
	}

	// Check for dangerous characters that could indicate injection attempts
	if dangerousPattern.MatchString(query) {
		return errors.New("query contains invalid characters")
	}

	return nil
}

// SanitizeInput removes HTML tags and other potentially dangerous content
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}
