package git

import (
	"github.com/go-git/go-git/v5"
)

func repoFromDir(inputDir string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(inputDir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
}

// RepoRootFromDir returns the root of the worktree inputDir belongs to.
func RepoRootFromDir(inputDir string) (string, error) {
	repo, err := repoFromDir(inputDir)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	return worktree.Filesystem.Root(), nil
}

// BranchNameFromDir returns the checked out branch, an empty string for a detached head.
func BranchNameFromDir(inputDir string) (string, error) {
	repo, err := repoFromDir(inputDir)
	if err != nil {
		return "", err
	}

	ref, err := repo.Head()
	if err != nil {
		return "", err
	}

	if ref.Name().IsBranch() {
		return ref.Name().Short(), nil
	}
	return "", nil
}
