package intersphinx

import (
	"fmt"
	"sort"
	"strings"
)

// Target is one intersphinx destination: the documentation base URL and an
// optional explicit inventory location (nil means the default objects.inv
// under the base URL).
type Target struct {
	URL       string  `yaml:"url"`
	Inventory *string `yaml:"inventory,omitempty"`
	// Package overrides the pinned package name when it differs from the
	// mapping key (for example the `mpl_interactions` target pins the
	// `mpl-interactions` package).
	Package string `yaml:"package,omitempty"`
}

// Placeholders recognized in Target URLs.
const (
	placeholderVersion = "{version}"
	placeholderMinor   = "{minor}"
)

// Resolve expands version placeholders in every target URL using the pinned
// package versions. Targets without placeholders pass through unchanged. A
// placeholder referencing an unpinned package is an error: emitting a URL
// with a literal placeholder would produce broken inventory fetches.
func Resolve(mapping map[string]Target, pins *PinSet) (map[string]Target, error) {
	resolved := make(map[string]Target, len(mapping))
	for name, target := range mapping {
		url, err := expandURL(name, target, pins)
		if err != nil {
			return nil, err
		}
		target.URL = url
		resolved[name] = target
	}
	return resolved, nil
}

func expandURL(name string, target Target, pins *PinSet) (string, error) {
	url := target.URL
	if !strings.Contains(url, placeholderVersion) && !strings.Contains(url, placeholderMinor) {
		return url, nil
	}
	pkg := target.Package
	if pkg == "" {
		pkg = name
	}
	if strings.Contains(url, placeholderVersion) {
		version, err := pins.Pin(pkg)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", name, err)
		}
		url = strings.ReplaceAll(url, placeholderVersion, version)
	}
	if strings.Contains(url, placeholderMinor) {
		minor, err := pins.PinMinor(pkg)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", name, err)
		}
		url = strings.ReplaceAll(url, placeholderMinor, minor)
	}
	return url, nil
}

// Names returns the mapping keys in sorted order, for deterministic output.
func Names(mapping map[string]Target) []string {
	names := make([]string, 0, len(mapping))
	for name := range mapping {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
