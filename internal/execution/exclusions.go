package execution

import (
	"github.com/ComPWA/compwa-org/internal/util/sets"
)

// ExclusionPatterns computes the glob patterns of documents that must be
// skipped during notebook execution. The static patterns are always included.
// The Julia-only patterns are added when the Julia interpreter is missing
// from the search path, or when the build runs on the hosted platform (which
// never ships a Julia toolchain). The result is deduplicated and sorted so
// repeated runs produce identical renderer configuration.
func ExclusionPatterns(static, juliaOnly []string, env Env) []string {
	excluded := sets.New(static...)
	if !env.HasJulia() || env.isSet(EnvHostedBuild) {
		excluded.AddAll(juliaOnly...)
	}
	return sets.Sorted(excluded)
}
