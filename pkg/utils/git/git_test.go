package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepoWithCommit(t *testing.T) string {
	t.Helper()
	repoDir := t.TempDir()

	repo, err := git.PlainInit(repoDir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(repoDir, "README.md"), []byte("# test"), 0o600))
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = worktree.Add("README.md")
	require.NoError(t, err)
	_, err = worktree.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return repoDir
}

func TestRepoRootFromDir(t *testing.T) {
	repoDir := initRepoWithCommit(t)
	nested := filepath.Join(repoDir, "src", "pkg")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	root, err := RepoRootFromDir(nested)
	require.NoError(t, err)

	expected, err := filepath.EvalSymlinks(repoDir)
	require.NoError(t, err)
	actual, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func TestRepoRootFromDir_NoGitRepo(t *testing.T) {
	_, err := RepoRootFromDir(t.TempDir())
	assert.ErrorIs(t, err, git.ErrRepositoryNotExists)
}

func TestBranchNameFromDir(t *testing.T) {
	repoDir := initRepoWithCommit(t)

	branch, err := BranchNameFromDir(repoDir)
	require.NoError(t, err)
	assert.Equal(t, "master", branch)
}
