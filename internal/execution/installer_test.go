package execution

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	dir  string
	name string
	args []string
}

func newTestInstaller(env Env, calls *[]recordedCall, runErr error) *Installer {
	inst := NewInstaller(env, "docs", "")
	return inst.WithRunner(func(_ context.Context, dir, name string, args ...string) error {
		*calls = append(*calls, recordedCall{dir: dir, name: name, args: args})
		return runErr
	})
}

func TestInstaller_JuliaMissing_NeverSpawns(t *testing.T) {
	for _, vars := range [][]string{nil, {EnvExecute}, {EnvForceExecute}, {EnvExecute, EnvForceExecute}} {
		var calls []recordedCall
		inst := newTestInstaller(fakeEnv(false, vars...), &calls, nil)
		require.NoError(t, inst.Run(context.Background()))
		require.Empty(t, calls, "vars=%v", vars)
	}
}

func TestInstaller_ExecutionRequested_SpawnsExactlyOnce(t *testing.T) {
	for _, vars := range [][]string{{EnvExecute}, {EnvForceExecute}, {EnvExecute, EnvForceExecute}} {
		var calls []recordedCall
		inst := newTestInstaller(fakeEnv(true, vars...), &calls, nil)
		require.NoError(t, inst.Run(context.Background()))
		require.Len(t, calls, 1, "vars=%v", vars)
		require.Equal(t, "julia", calls[0].name)
		require.Equal(t, []string{DefaultKernelManifest}, calls[0].args)
		require.Equal(t, "docs", calls[0].dir)
	}
}

func TestInstaller_NoExecutionVariables_DoesNothing(t *testing.T) {
	var calls []recordedCall
	inst := newTestInstaller(fakeEnv(true), &calls, nil)
	require.NoError(t, inst.Run(context.Background()))
	require.Empty(t, calls)
}

func TestInstaller_SubprocessFailure_IsFatal(t *testing.T) {
	var calls []recordedCall
	inst := newTestInstaller(fakeEnv(true, EnvExecute), &calls, errors.New("exit status 1"))
	err := inst.Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "install IJulia kernel")
}

func TestInstaller_CustomManifest(t *testing.T) {
	var calls []recordedCall
	inst := NewInstaller(fakeEnv(true, EnvForceExecute), ".", "SetupKernels.jl").
		WithRunner(func(_ context.Context, dir, name string, args ...string) error {
			calls = append(calls, recordedCall{dir: dir, name: name, args: args})
			return nil
		})
	require.NoError(t, inst.Run(context.Background()))
	require.Len(t, calls, 1)
	require.Equal(t, []string{"SetupKernels.jl"}, calls[0].args)
}
