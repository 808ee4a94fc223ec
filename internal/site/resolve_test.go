package site

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ComPWA/compwa-org/internal/config"
	"github.com/ComPWA/compwa-org/internal/execution"
	"github.com/ComPWA/compwa-org/internal/intersphinx"
)

func testEnv(hasJulia bool, vars ...string) execution.Env {
	return execution.Env{
		LookPath: func(string) (string, error) {
			if hasJulia {
				return "/usr/bin/julia", nil
			}
			return "", errors.New("not found")
		},
		LookupEnv: func(key string) (string, bool) {
			if slices.Contains(vars, key) {
				return "1", true
			}
			return "", false
		},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Project: config.ProjectConfig{
			Organization: "ComPWA",
			Repository:   "compwa.github.io",
			Title:        "ComPWA Organization",
			PathToDocs:   "docs",
		},
		Execution: config.ExecutionConfig{
			Exclude:      []string{"report/000*", "adr/001/*"},
			JuliaExclude: []string{"report/019*"},
		},
		Myst: config.MystConfig{
			Substitutions: map[string]string{
				"run_interactive": "Run [on Binder]({binder_link}) from {branch}.",
			},
			ExecutionSubstitutions: map[string]string{
				"remark_019": "Files are generated automatically.",
			},
		},
		Intersphinx: map[string]intersphinx.Target{
			"python": {URL: "https://docs.python.org/3"},
		},
	}
}

func TestResolve_ComputesBinderLinkAndBranch(t *testing.T) {
	t.Setenv("READTHEDOCS_GIT_COMMIT_HASH", "abc1234")

	r := NewResolver(testConfig(), testEnv(true), t.TempDir())
	res, err := r.Resolve()
	require.NoError(t, err)

	require.Equal(t, "abc1234", res.Branch)
	require.Equal(t,
		"https://mybinder.org/v2/gh/ComPWA/compwa.github.io/abc1234?filepath=docs/usage",
		res.BinderLink)
	require.Equal(t, "https://github.com/ComPWA/compwa.github.io", res.RepositoryURL)
}

func TestResolve_SubstitutionsExpandPlaceholders(t *testing.T) {
	t.Setenv("READTHEDOCS_GIT_COMMIT_HASH", "abc1234")

	r := NewResolver(testConfig(), testEnv(true, execution.EnvExecute), t.TempDir())
	res, err := r.Resolve()
	require.NoError(t, err)

	require.Equal(t, execution.ModeCache, res.ExecutionMode)
	require.Contains(t, res.MystSubstitutions["run_interactive"], res.BinderLink)
	require.Contains(t, res.MystSubstitutions["run_interactive"], "abc1234")
	require.Equal(t, "abc1234", res.MystSubstitutions["branch"])
	require.Equal(t, "Files are generated automatically.", res.MystSubstitutions["remark_019"])
}

func TestResolve_ExecutionOffBlanksGatedSubstitutions(t *testing.T) {
	t.Setenv("READTHEDOCS_GIT_COMMIT_HASH", "abc1234")

	r := NewResolver(testConfig(), testEnv(true), t.TempDir())
	res, err := r.Resolve()
	require.NoError(t, err)

	require.Equal(t, execution.ModeOff, res.ExecutionMode)
	require.Equal(t, "", res.MystSubstitutions["remark_019"])
}

func TestResolve_HostedBuildExcludesJuliaReports(t *testing.T) {
	t.Setenv("READTHEDOCS_GIT_COMMIT_HASH", "abc1234")

	r := NewResolver(testConfig(), testEnv(true, execution.EnvHostedBuild), t.TempDir())
	res, err := r.Resolve()
	require.NoError(t, err)

	require.Contains(t, res.ExecutionExclude, "report/019*")
	require.True(t, slices.IsSorted(res.ExecutionExclude))
}

func TestResolve_PinsFileExpandsIntersphinx(t *testing.T) {
	t.Setenv("READTHEDOCS_GIT_COMMIT_HASH", "abc1234")

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "requirements.txt"),
		[]byte("attrs==23.1.0\n"), 0o644))

	cfg := testConfig()
	cfg.PinsFile = "requirements.txt"
	cfg.Intersphinx["attrs"] = intersphinx.Target{URL: "https://www.attrs.org/en/{version}"}

	res, err := NewResolver(cfg, testEnv(true), root).Resolve()
	require.NoError(t, err)
	require.Equal(t, "https://www.attrs.org/en/23.1.0", res.Intersphinx["attrs"].URL)
}

func TestResolve_MissingPinsFileFails(t *testing.T) {
	cfg := testConfig()
	cfg.PinsFile = "requirements.txt"

	_, err := NewResolver(cfg, testEnv(true), t.TempDir()).Resolve()
	require.Error(t, err)
	require.Contains(t, err.Error(), "load version pins")
}

func TestResolved_WriteYAML(t *testing.T) {
	t.Setenv("READTHEDOCS_GIT_COMMIT_HASH", "abc1234")

	res, err := NewResolver(testConfig(), testEnv(false), t.TempDir()).Resolve()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, res.WriteYAML(&buf))

	out := buf.String()
	require.Contains(t, out, "execution_mode:")
	require.Contains(t, out, "report/019*")
	require.True(t, strings.Contains(out, "binder_link: https://mybinder.org/v2/gh/ComPWA/"))
}
