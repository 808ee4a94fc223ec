package execution

// Mode is the notebook execution mode handed to the renderer.
type Mode string

const (
	// ModeOff skips notebook execution entirely.
	ModeOff Mode = "off"
	// ModeCache executes notebooks, reusing cached outputs when inputs are
	// unchanged.
	ModeCache Mode = "cache"
	// ModeForce executes all notebooks, ignoring the cache.
	ModeForce Mode = "force"
)

// ResolveMode derives the execution mode from the environment. Forced
// execution wins over cached execution; with neither variable set, execution
// is off.
func ResolveMode(env Env) Mode {
	switch {
	case env.isSet(EnvForceExecute):
		return ModeForce
	case env.isSet(EnvExecute):
		return ModeCache
	default:
		return ModeOff
	}
}
