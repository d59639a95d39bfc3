package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters suite files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters suite files by name pattern using wildcard matching.
// Supports patterns like "login_*.robot" or "*checkout*"; a pattern without
// wildcards matches as a substring.
func (f *Filter) FilterByName(suites []string, pattern string) []string {
	if pattern == "" {
		return suites
	}

	var filtered []string
	for _, suite := range suites {
		name := filepath.Base(suite)

		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			filtered = append(filtered, suite)
			continue
		}

		if strings.ContainsAny(pattern, "*?") {
			// filepath.Match is anchored; fall back to piecewise substring
			// matching so "*checkout*" behaves as users expect.
			if matchesParts(name, pattern) {
				filtered = append(filtered, suite)
			}
			continue
		}

		if strings.Contains(name, pattern) {
			filtered = append(filtered, suite)
		}
	}
	return filtered
}

// matchesParts checks that every literal fragment of the pattern occurs in
// the name, in order.
func matchesParts(name, pattern string) bool {
	rest := name
	sawLiteral := false
	for _, part := range strings.FieldsFunc(pattern, func(r rune) bool { return r == '*' || r == '?' }) {
		if part == "" {
			continue
		}
		sawLiteral = true
		i := strings.Index(rest, part)
		if i < 0 {
			return false
		}
		rest = rest[i+len(part):]
	}
	return sawLiteral
}
