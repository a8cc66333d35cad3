package git_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/branchwatch/infrastructure/vcs/git"
)

const testHash = "aaaabbbbccccddddeeeeffff0000111122223333"

// --- helpers ---

// writeGitDir creates a bare-bones .git directory with the given HEAD content.
func writeGitDir(t *testing.T, dir, headContent string) string {
	t.Helper()

	gitDir := filepath.Join(dir, ".git")
	require.NoError(t, os.MkdirAll(gitDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "HEAD"), []byte(headContent), 0o644))
	return gitDir
}

// writePackedRefs writes a packed-refs file from the given lines.
func writePackedRefs(t *testing.T, gitDir string, lines ...string) {
	t.Helper()

	content := strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "packed-refs"), []byte(content), 0o644))
}

// writeLooseRef writes a loose ref file under .git/refs.
func writeLooseRef(t *testing.T, gitDir, refPath, hash string) {
	t.Helper()

	full := filepath.Join(gitDir, "refs", filepath.FromSlash(refPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(hash+"\n"), 0o644))
}

// initRepoWithCommit creates a real repository with one commit via go-git.
func initRepoWithCommit(t *testing.T) (string, *gogit.Repository, plumbing.Hash) {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello\n"), 0o644))
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = worktree.Add("README.md")
	require.NoError(t, err)

	hash, err := worktree.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return dir, repo, hash
}

// --- tests ---

func TestFindRepositoryRoot(t *testing.T) {
	t.Parallel()

	t.Run("should find the .git directory in the start directory", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		gitDir := writeGitDir(t, dir, "ref: refs/heads/main\n")

		// when
		found, ok := git.FindRepositoryRoot(dir)

		// then
		require.True(t, ok)
		assert.Equal(t, gitDir, found)
	})

	t.Run("should walk upward through parent directories", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		gitDir := writeGitDir(t, dir, "ref: refs/heads/main\n")
		nested := filepath.Join(dir, "src", "internal", "deep")
		require.NoError(t, os.MkdirAll(nested, 0o755))

		// when
		found, ok := git.FindRepositoryRoot(nested)

		// then
		require.True(t, ok)
		assert.Equal(t, gitDir, found)
	})

	t.Run("should return none when no repository exists up to the root", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()

		// when
		found, ok := git.FindRepositoryRoot(dir)

		// then
		assert.False(t, ok)
		assert.Empty(t, found)
	})

	t.Run("should return none for an empty start directory", func(t *testing.T) {
		t.Parallel()

		// when
		found, ok := git.FindRepositoryRoot("")

		// then
		assert.False(t, ok)
		assert.Empty(t, found)
	})

	t.Run("should ignore a .git directory without a HEAD file", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))

		// when
		_, ok := git.FindRepositoryRoot(dir)

		// then
		assert.False(t, ok)
	})
}

func TestResolveDisplayName_Symbolic(t *testing.T) {
	t.Parallel()

	t.Run("should resolve a local branch head", func(t *testing.T) {
		t.Parallel()

		// given
		gitDir := writeGitDir(t, t.TempDir(), "ref: refs/heads/main\n")

		// when / then
		assert.Equal(t, "main", git.ResolveDisplayName(gitDir))
	})

	t.Run("should keep slashes in branch names", func(t *testing.T) {
		t.Parallel()

		// given
		gitDir := writeGitDir(t, t.TempDir(), "ref: refs/heads/feature/login-form\n")

		// when / then
		assert.Equal(t, "feature/login-form", git.ResolveDisplayName(gitDir))
	})

	t.Run("should resolve a remote tracking head with its remote name", func(t *testing.T) {
		t.Parallel()

		// given
		gitDir := writeGitDir(t, t.TempDir(), "ref: refs/remotes/origin/main\n")

		// when / then
		assert.Equal(t, "origin/main", git.ResolveDisplayName(gitDir))
	})

	t.Run("should be idempotent on unchanged content", func(t *testing.T) {
		t.Parallel()

		// given
		gitDir := writeGitDir(t, t.TempDir(), "ref: refs/heads/develop\n")

		// when
		first := git.ResolveDisplayName(gitDir)
		second := git.ResolveDisplayName(gitDir)

		// then
		assert.Equal(t, "develop", first)
		assert.Equal(t, first, second)
	})

	t.Run("should return empty when HEAD is unreadable", func(t *testing.T) {
		t.Parallel()

		// given: a .git directory with no HEAD at all
		dir := t.TempDir()
		gitDir := filepath.Join(dir, ".git")
		require.NoError(t, os.MkdirAll(gitDir, 0o755))

		// when / then
		assert.Empty(t, git.ResolveDisplayName(gitDir))
	})
}

func TestResolveDisplayName_PackedRefs(t *testing.T) {
	t.Parallel()

	t.Run("should prefer a local head over a tag pointing at the same commit", func(t *testing.T) {
		t.Parallel()

		// given
		gitDir := writeGitDir(t, t.TempDir(), testHash+"\n")
		writePackedRefs(t, gitDir,
			"# pack-refs with: peeled fully-peeled sorted",
			testHash+" refs/tags/v1.0.0",
			testHash+" refs/heads/main",
		)

		// when / then
		assert.Equal(t, "main", git.ResolveDisplayName(gitDir))
	})

	t.Run("should prefer a remote over a tag", func(t *testing.T) {
		t.Parallel()

		// given
		gitDir := writeGitDir(t, t.TempDir(), testHash+"\n")
		writePackedRefs(t, gitDir,
			testHash+" refs/tags/v1.0.0",
			testHash+" refs/remotes/origin/main",
		)

		// when / then
		assert.Equal(t, "(origin/main)", git.ResolveDisplayName(gitDir))
	})

	t.Run("should render a tag parenthesized with its namespace", func(t *testing.T) {
		t.Parallel()

		// given
		gitDir := writeGitDir(t, t.TempDir(), testHash+"\n")
		writePackedRefs(t, gitDir, testHash+" refs/tags/v2.1.0")

		// when / then
		assert.Equal(t, "(tags/v2.1.0)", git.ResolveDisplayName(gitDir))
	})

	t.Run("should pick the shortest path among equal-priority candidates", func(t *testing.T) {
		t.Parallel()

		// given
		gitDir := writeGitDir(t, t.TempDir(), testHash+"\n")
		writePackedRefs(t, gitDir,
			testHash+" refs/heads/very-long-branch-name",
			testHash+" refs/heads/dev",
		)

		// when / then
		assert.Equal(t, "dev", git.ResolveDisplayName(gitDir))
	})

	t.Run("should skip comments, peeled lines and malformed entries", func(t *testing.T) {
		t.Parallel()

		// given
		gitDir := writeGitDir(t, t.TempDir(), testHash+"\n")
		writePackedRefs(t, gitDir,
			"# pack-refs with: peeled fully-peeled sorted",
			"^"+testHash,
			"short line",
			strings.Repeat("a", 50), // long enough but no separator
			"",
			testHash+" refs/heads/main",
		)

		// when / then
		assert.Equal(t, "main", git.ResolveDisplayName(gitDir))
	})

	t.Run("should fall through to loose refs when packed-refs has no match", func(t *testing.T) {
		t.Parallel()

		// given
		gitDir := writeGitDir(t, t.TempDir(), testHash+"\n")
		writePackedRefs(t, gitDir,
			strings.Repeat("0", 40)+" refs/heads/other",
		)
		writeLooseRef(t, gitDir, "heads/main", testHash)

		// when / then
		assert.Equal(t, "(main)", git.ResolveDisplayName(gitDir))
	})
}

func TestResolveDisplayName_LooseRefs(t *testing.T) {
	t.Parallel()

	t.Run("should resolve a remote ref keeping the remote name", func(t *testing.T) {
		t.Parallel()

		// given
		gitDir := writeGitDir(t, t.TempDir(), testHash+"\n")
		writeLooseRef(t, gitDir, "remotes/origin/feature", testHash)

		// when / then
		assert.Equal(t, "(origin/feature)", git.ResolveDisplayName(gitDir))
	})

	t.Run("should resolve a local head parenthesized", func(t *testing.T) {
		t.Parallel()

		// given
		gitDir := writeGitDir(t, t.TempDir(), testHash+"\n")
		writeLooseRef(t, gitDir, "heads/main", testHash)

		// when / then
		assert.Equal(t, "(main)", git.ResolveDisplayName(gitDir))
	})

	t.Run("should keep the tags namespace", func(t *testing.T) {
		t.Parallel()

		// given
		gitDir := writeGitDir(t, t.TempDir(), testHash+"\n")
		writeLooseRef(t, gitDir, "tags/v3.0.0", testHash)

		// when / then
		assert.Equal(t, "(tags/v3.0.0)", git.ResolveDisplayName(gitDir))
	})

	t.Run("should ignore loose refs pointing at other commits", func(t *testing.T) {
		t.Parallel()

		// given
		gitDir := writeGitDir(t, t.TempDir(), testHash+"\n")
		writeLooseRef(t, gitDir, "heads/main", strings.Repeat("0", 40))

		// when / then
		assert.Equal(t, "("+testHash[:10]+"...)", git.ResolveDisplayName(gitDir))
	})
}

func TestResolveDisplayName_Fallback(t *testing.T) {
	t.Parallel()

	t.Run("should truncate an unresolvable hash to ten characters", func(t *testing.T) {
		t.Parallel()

		// given
		gitDir := writeGitDir(t, t.TempDir(), testHash+"\n")

		// when / then
		assert.Equal(t, "(aaaabbbbcc...)", git.ResolveDisplayName(gitDir))
	})

	t.Run("should truncate arbitrary non-symbolic content", func(t *testing.T) {
		t.Parallel()

		// given
		gitDir := writeGitDir(t, t.TempDir(), "not-a-ref\n")

		// when / then
		assert.Equal(t, "(not-a-ref...)", git.ResolveDisplayName(gitDir))
	})
}

func TestResolveDisplayName_RealRepository(t *testing.T) {
	t.Parallel()

	t.Run("should resolve the branch of a freshly initialized repository", func(t *testing.T) {
		t.Parallel()

		// given
		dir, _, _ := initRepoWithCommit(t)
		gitDir, ok := git.FindRepositoryRoot(dir)
		require.True(t, ok)

		// when / then
		assert.Equal(t, "master", git.ResolveDisplayName(gitDir))
	})

	t.Run("should follow a branch checkout", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo, _ := initRepoWithCommit(t)
		worktree, err := repo.Worktree()
		require.NoError(t, err)
		require.NoError(t, worktree.Checkout(&gogit.CheckoutOptions{
			Branch: plumbing.NewBranchReferenceName("feature"),
			Create: true,
		}))

		gitDir, ok := git.FindRepositoryRoot(dir)
		require.True(t, ok)

		// when / then
		assert.Equal(t, "feature", git.ResolveDisplayName(gitDir))
	})

	t.Run("should resolve a detached HEAD through the loose refs", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo, hash := initRepoWithCommit(t)
		worktree, err := repo.Worktree()
		require.NoError(t, err)
		require.NoError(t, worktree.Checkout(&gogit.CheckoutOptions{Hash: hash}))

		gitDir, ok := git.FindRepositoryRoot(dir)
		require.True(t, ok)

		// when / then: the only ref pointing at the commit is refs/heads/master
		assert.Equal(t, "(master)", git.ResolveDisplayName(gitDir))
	})
}

func TestResolver(t *testing.T) {
	t.Parallel()

	t.Run("should report its name", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "git", git.NewResolver().Name())
	})

	t.Run("should probe positively inside a repository", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		writeGitDir(t, dir, "ref: refs/heads/main\n")

		// when / then
		assert.True(t, git.NewResolver().Probe(dir))
	})

	t.Run("should probe negatively outside any repository", func(t *testing.T) {
		t.Parallel()

		assert.False(t, git.NewResolver().Probe(t.TempDir()))
	})
}
