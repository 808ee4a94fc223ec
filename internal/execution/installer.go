package execution

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// DefaultKernelManifest is the Julia script that installs the IJulia kernel.
const DefaultKernelManifest = "InstallIJulia.jl"

// Installer conditionally installs the IJulia kernel before notebook
// execution. It is a no-op unless the Julia interpreter is available and
// the environment requests notebook execution.
type Installer struct {
	env      Env
	manifest string
	dir      string
	run      func(ctx context.Context, dir, name string, args ...string) error
}

// NewInstaller creates an installer that runs the given manifest script from
// dir. An empty manifest selects DefaultKernelManifest.
func NewInstaller(env Env, dir, manifest string) *Installer {
	if manifest == "" {
		manifest = DefaultKernelManifest
	}
	return &Installer{
		env:      env,
		manifest: manifest,
		dir:      dir,
		run:      runCommand,
	}
}

// WithRunner replaces the subprocess runner (for testing).
func (i *Installer) WithRunner(run func(ctx context.Context, dir, name string, args ...string) error) *Installer {
	i.run = run
	return i
}

// Run installs the IJulia kernel when needed. Missing interpreter and unset
// environment variables are normal conditions, not errors. A failing install
// subprocess is fatal: the error propagates and aborts the build.
func (i *Installer) Run(ctx context.Context) error {
	if !i.env.HasJulia() {
		slog.Debug("Julia interpreter not found, skipping kernel install")
		return nil
	}
	if !i.env.isSet(EnvExecute) && !i.env.isSet(EnvForceExecute) {
		slog.Debug("Notebook execution not requested, skipping kernel install")
		return nil
	}
	slog.Info("Installing IJulia kernel", "manifest", i.manifest)
	if err := i.run(ctx, i.dir, JuliaBinary, i.manifest); err != nil {
		return fmt.Errorf("install IJulia kernel: %w", err)
	}
	return nil
}

// runCommand executes an external command with stdout/stderr passed through.
func runCommand(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s command failed: %w", name, err)
	}
	return nil
}
