// Package linkcheck verifies that URLs referenced by the documentation are
// reachable. Links are extracted from rendered HTML and Markdown sources,
// filtered through the configured ignore patterns, checked over HTTP with
// bounded concurrency, and cached so repeated runs skip known-good URLs.
package linkcheck

import (
	"fmt"
	"regexp"
	"strings"
)

// IgnoreList decides which URLs are skipped during link checking. Patterns
// are regular expressions matched against the start of the URL, so a plain
// string works as a literal prefix (dots in hostnames almost never cause
// false negatives, and this matches how the ignore lists have historically
// been written).
type IgnoreList struct {
	patterns []*regexp.Regexp
}

// NewIgnoreList compiles the configured patterns. Empty entries are skipped.
func NewIgnoreList(patterns []string) (*IgnoreList, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		rx, err := regexp.Compile("^(?:" + p + ")")
		if err != nil {
			return nil, fmt.Errorf("compile ignore pattern %q: %w", p, err)
		}
		compiled = append(compiled, rx)
	}
	return &IgnoreList{patterns: compiled}, nil
}

// Ignored reports whether url matches any ignore pattern.
func (l *IgnoreList) Ignored(url string) bool {
	if l == nil {
		return false
	}
	for _, rx := range l.patterns {
		if rx.MatchString(url) {
			return true
		}
	}
	return false
}
