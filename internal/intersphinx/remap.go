package intersphinx

// VersionRemapping redirects published package versions whose documentation
// was never deployed to the nearest version that does have an inventory.
// Keys are package names; the inner map goes from published version to the
// known-good documentation version.
type VersionRemapping map[string]map[string]string

// Apply returns the documentation version to use for the given published
// version. Versions without a remapping entry are returned unchanged.
func (r VersionRemapping) Apply(pkg, version string) string {
	byVersion, ok := r[normalizeName(pkg)]
	if !ok {
		return version
	}
	if remapped, ok := byVersion[version]; ok {
		return remapped
	}
	return version
}

// Normalize rewrites the package keys into normalized form so lookups are
// insensitive to case and `-`/`_` spelling. Called once after config load.
func (r VersionRemapping) Normalize() VersionRemapping {
	out := make(VersionRemapping, len(r))
	for pkg, byVersion := range r {
		out[normalizeName(pkg)] = byVersion
	}
	return out
}
