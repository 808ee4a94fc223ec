// Package execution decides how notebooks are treated during a site build:
// which execution mode applies, which documents are excluded from execution,
// and whether the Julia kernel needs to be installed first.
package execution

import (
	"os"
	"os/exec"
)

// Environment variables consumed by the execution layer.
const (
	// EnvExecute enables notebook execution with caching.
	EnvExecute = "EXECUTE_NB"
	// EnvForceExecute executes all notebooks, ignoring any cache.
	EnvForceExecute = "FORCE_EXECUTE_NB"
	// EnvHostedBuild marks a build running on the hosted documentation
	// platform, where the Julia toolchain is unavailable.
	EnvHostedBuild = "READTHEDOCS"
)

// JuliaBinary is the interpreter probed for on PATH.
const JuliaBinary = "julia"

// Env abstracts the two external reads the execution layer performs, so
// tests can exercise every branch without touching the real environment.
type Env struct {
	LookPath  func(file string) (string, error)
	LookupEnv func(key string) (string, bool)
}

// SystemEnv reads from the real process environment and PATH.
func SystemEnv() Env {
	return Env{
		LookPath:  exec.LookPath,
		LookupEnv: os.LookupEnv,
	}
}

// HasJulia reports whether the Julia interpreter is on the search path.
func (e Env) HasJulia() bool {
	_, err := e.LookPath(JuliaBinary)
	return err == nil
}

func (e Env) isSet(key string) bool {
	_, ok := e.LookupEnv(key)
	return ok
}
