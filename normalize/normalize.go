// Package normalize reduces raw corpus text to the target alphabet: Hangul
// syllables and whitespace.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	hangulFirst = '가'
	hangulLast  = '힣'
)

// InAlphabet reports whether r survives normalization.
func InAlphabet(r rune) bool {
	return (r >= hangulFirst && r <= hangulLast) || unicode.IsSpace(r)
}

// Normalize
// Composes the text to NFC, drops every rune outside the target alphabet and
// lowercases what remains. When exclude is non-nil every match of it is
// removed afterwards.
func Normalize(text string, exclude *regexp.Regexp) string {
	composed := norm.NFC.String(text)
	var sb strings.Builder
	sb.Grow(len(composed))
	for _, r := range composed {
		if InAlphabet(r) {
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	normalized := sb.String()
	if exclude != nil {
		normalized = exclude.ReplaceAllString(normalized, "")
	}
	return normalized
}

// CompilePattern compiles a user supplied exclusion pattern. An empty
// pattern compiles to nil.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	return regexp.Compile(pattern)
}
