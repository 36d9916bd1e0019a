package utils

import (
	"regexp"
	"strings"
)

// SplitThatEnsuresGlobsAreSafe splits a string by any of the given separators,
// but does not split within brace-delimited glob patterns like {group1,group2}.
// Parts are trimmed and empty parts are dropped.
func SplitThatEnsuresGlobsAreSafe(s string, separators []rune) []string {
	var parts []string
	var current strings.Builder
	braceLevel := 0

	flush := func() {
		if part := strings.TrimSpace(current.String()); part != "" {
			parts = append(parts, part)
		}
		current.Reset()
	}

	for _, char := range s {
		switch {
		case char == '{':
			braceLevel++
		case char == '}' && braceLevel > 0:
			braceLevel--
		case braceLevel == 0 && strings.ContainsRune(string(separators), char):
			flush()
			continue
		}
		current.WriteRune(char)
	}
	flush()
	return parts
}

var invalidPathCharsRegex = regexp.MustCompile(`[^\w\.\-]+`)

// ReplaceInvalidPathChars replaces characters in a path that are not word characters, dots, or hyphens with an underscore.
func ReplaceInvalidPathChars(path string) string {
	return invalidPathCharsRegex.ReplaceAllString(path, "_")
}
