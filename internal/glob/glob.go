// Package glob finds files by matching their paths against a pattern. Supported syntax:
//   - `?`: any single character in a name.
//   - `*`: zero or more characters in a name.
//   - `**`: zero or more directories.
//   - `[...]`: a set of characters in a name, e.g. `[abc]` or `[a-z]`.
//   - `{group1,group2,...}`: any of the groups; groups may nest.
//
// Matching is case-insensitive.
package glob

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

const globCharacters = "*?[{"

// GetFiles expands pattern into the regular files it matches, sorted and without duplicates.
// A pattern without wildcards yields the file itself when it exists. Relative patterns
// produce relative paths. Unreadable directories are skipped with a warning.
func GetFiles(pattern string) ([]string, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, nil
	}

	patterns, err := ungroup(pattern)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	for _, p := range patterns {
		matches, err := expand(p)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

// expand resolves a pattern without brace groups.
func expand(pattern string) ([]string, error) {
	slashed := filepath.ToSlash(filepath.Clean(pattern))
	segments := strings.Split(slashed, "/")

	first := len(segments)
	for i, seg := range segments {
		if strings.ContainsAny(seg, globCharacters) {
			first = i
			break
		}
	}

	if first == len(segments) {
		info, err := os.Stat(filepath.FromSlash(slashed))
		if err != nil || info.IsDir() {
			return nil, nil
		}
		return []string{filepath.FromSlash(slashed)}, nil
	}

	rest := segments[first:]
	for _, seg := range rest {
		if seg == "**" {
			continue
		}
		if _, err := path.Match(seg, ""); err != nil {
			return nil, fmt.Errorf("invalid pattern segment %q in %s: %w", seg, pattern, err)
		}
	}

	root := strings.Join(segments[:first], "/")
	switch {
	case first == 1 && segments[0] == "":
		root = "/"
	case root == "":
		root = "."
	}
	root = filepath.FromSlash(root)
	recursive := containsDoubleStar(rest)

	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return fs.SkipAll
			}
			slog.Warn("Skipping unreadable path while expanding pattern", "path", p, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		relSegments := strings.Split(filepath.ToSlash(rel), "/")

		if d.IsDir() {
			if !recursive && len(relSegments) >= len(rest) {
				return fs.SkipDir
			}
			return nil
		}
		if matchSegments(rest, relSegments) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory '%s': %w", root, err)
	}
	return files, nil
}

func containsDoubleStar(segments []string) bool {
	for _, seg := range segments {
		if seg == "**" {
			return true
		}
	}
	return false
}

// matchSegments matches path segments against pattern segments; "**" consumes any number of
// segments.
func matchSegments(pattern, segments []string) bool {
	if len(pattern) == 0 {
		return len(segments) == 0
	}
	if pattern[0] == "**" {
		if matchSegments(pattern[1:], segments) {
			return true
		}
		return len(segments) > 0 && matchSegments(pattern, segments[1:])
	}
	if len(segments) == 0 {
		return false
	}
	ok, _ := path.Match(strings.ToLower(pattern[0]), strings.ToLower(segments[0]))
	return ok && matchSegments(pattern[1:], segments[1:])
}

// ungroup handles brace expansion, e.g. "{a,b}c" -> ["ac", "bc"]. The first top-level group
// is expanded and every alternative is expanded again, which covers nested and repeated
// groups.
func ungroup(pattern string) ([]string, error) {
	open := strings.IndexByte(pattern, '{')
	if open < 0 {
		return []string{pattern}, nil
	}

	var parts []string
	depth, start := 0, open+1
	for i := open; i < len(pattern); i++ {
		switch pattern[i] {
		case '{':
			depth++
		case ',':
			if depth == 1 {
				parts = append(parts, pattern[start:i])
				start = i + 1
			}
		case '}':
			depth--
			if depth > 0 {
				continue
			}
			parts = append(parts, pattern[start:i])
			prefix, suffix := pattern[:open], pattern[i+1:]

			var results []string
			for _, part := range parts {
				expanded, err := ungroup(prefix + part + suffix)
				if err != nil {
					return nil, err
				}
				results = append(results, expanded...)
			}
			return results, nil
		}
	}
	return nil, fmt.Errorf("unbalanced braces in pattern: %s", pattern)
}
