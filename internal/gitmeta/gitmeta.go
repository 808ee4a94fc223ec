// Package gitmeta resolves repository metadata used to interpolate the
// resolved site configuration: launch-button links and edit links point at
// the exact commit being documented.
package gitmeta

import (
	"fmt"
	"os"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Environment overrides checked before asking git, in order. Hosted builds
// export the commit they check out.
var commitEnvVars = []string{
	"READTHEDOCS_GIT_COMMIT_HASH",
	"GITHUB_SHA",
}

// DefaultBranch is the reference used when no commit can be resolved.
const DefaultBranch = "main"

// CommitSHA returns the commit to reference in generated links: an
// environment override when present, otherwise the HEAD of the repository
// containing repoPath, otherwise DefaultBranch. Resolution never fails; a
// repository-less build simply links to the default branch.
func CommitSHA(repoPath string) string {
	for _, key := range commitEnvVars {
		if sha := os.Getenv(key); sha != "" {
			return sha
		}
	}
	sha, err := headSHA(repoPath)
	if err != nil {
		return DefaultBranch
	}
	return sha
}

// headSHA resolves the HEAD commit hash via go-git, searching parent
// directories for the repository root.
func headSHA(repoPath string) (string, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("open repository at %s: %w", repoPath, err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	hash := head.Hash()
	if hash == plumbing.ZeroHash {
		return "", fmt.Errorf("repository at %s has no commits", repoPath)
	}
	return hash.String(), nil
}
