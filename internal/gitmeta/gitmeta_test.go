package gitmeta

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

func initRepoWithCommit(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	file := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(file, []byte("# test\n"), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.org", When: time.Now()},
	})
	require.NoError(t, err)
	return dir, hash.String()
}

func TestCommitSHA_EnvOverrideWins(t *testing.T) {
	t.Setenv("READTHEDOCS_GIT_COMMIT_HASH", "deadbeef")
	require.Equal(t, "deadbeef", CommitSHA(t.TempDir()))
}

func TestCommitSHA_ResolvesHead(t *testing.T) {
	for _, key := range commitEnvVars {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	dir, hash := initRepoWithCommit(t)
	require.Equal(t, hash, CommitSHA(dir))
}

func TestCommitSHA_ResolvesFromSubdirectory(t *testing.T) {
	for _, key := range commitEnvVars {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	dir, hash := initRepoWithCommit(t)
	sub := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.Equal(t, hash, CommitSHA(sub))
}

func TestCommitSHA_NoRepositoryFallsBackToBranch(t *testing.T) {
	for _, key := range commitEnvVars {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	require.Equal(t, DefaultBranch, CommitSHA(t.TempDir()))
}
