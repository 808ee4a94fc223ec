// Package intersphinx resolves cross-project documentation references:
// mapping targets to their documentation base URLs, pinning those URLs to the
// package versions the build actually uses, and remapping published versions
// that never got a matching documentation build.
package intersphinx

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// PinSet holds the package versions pinned by the build's constraints file.
// Package names are matched case-insensitively with `-` and `_` treated as
// equivalent, following Python packaging name normalization.
type PinSet struct {
	versions map[string]string
}

// LoadPins parses a pip-style constraints file (`package==version` lines).
// Comments, blank lines and lines without an exact `==` pin are skipped.
func LoadPins(path string) (*PinSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open constraints file: %w", err)
	}
	defer file.Close()

	pins := &PinSet{versions: make(map[string]string)}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		name, version, ok := strings.Cut(line, "==")
		if !ok {
			continue
		}
		// Strip extras such as `package[extra]==1.0`.
		if idx := strings.Index(name, "["); idx >= 0 {
			name = name[:idx]
		}
		version = strings.TrimSpace(strings.SplitN(version, ";", 2)[0])
		pins.versions[normalizeName(name)] = version
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read constraints file: %w", err)
	}
	return pins, nil
}

// NewPinSet builds a PinSet from an in-memory table (used in tests and by
// config-supplied pins).
func NewPinSet(versions map[string]string) *PinSet {
	pins := &PinSet{versions: make(map[string]string, len(versions))}
	for name, version := range versions {
		pins.versions[normalizeName(name)] = version
	}
	return pins
}

// Pin returns the exact pinned version of pkg.
func (p *PinSet) Pin(pkg string) (string, error) {
	if p == nil {
		return "", fmt.Errorf("no constraints loaded")
	}
	version, ok := p.versions[normalizeName(pkg)]
	if !ok {
		return "", fmt.Errorf("package %q is not pinned", pkg)
	}
	return version, nil
}

// PinMinor returns the MAJOR.MINOR prefix of the pinned version of pkg.
func (p *PinSet) PinMinor(pkg string) (string, error) {
	version, err := p.Pin(pkg)
	if err != nil {
		return "", err
	}
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 {
		return version, nil
	}
	return parts[0] + "." + parts[1], nil
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, "_", "-")
}
