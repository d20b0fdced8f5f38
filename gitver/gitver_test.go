package gitver_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apache/tooling-asf-example/gitcli"
	"github.com/apache/tooling-asf-example/gitver"
)

// initRepo creates a git repository with one commit
// containing the given files and returns its path.
func initRepo(
	tb testing.TB,
	files map[string]string,
) string {
	tb.Helper()

	dir := tb.TempDir()

	mustGit := func(arg ...string) {
		tb.Helper()

		_, err := gitcli.Run(dir, arg...)
		require.NoError(tb, err)
	}

	mustGit("init", "--quiet")
	mustGit("config", "user.email", "ci@example.org")
	mustGit("config", "user.name", "ci")

	for name, content := range files {
		require.NoError(tb, os.WriteFile(
			filepath.Join(dir, name),
			[]byte(content),
			0o644, //nolint:gosec // test fixture
		))
	}

	mustGit("add", ".")
	mustGit(
		"commit", "--quiet", "-m", "initial commit",
	)

	return dir
}

func TestInsideWorkTree(t *testing.T) {
	t.Parallel()

	if !gitcli.Available() {
		t.Skip("git not installed")
	}

	dir := initRepo(t, map[string]string{
		"README.md": "readme\n",
	})

	assert.True(t, gitver.InsideWorkTree(dir))
}

func TestInsideWorkTree_outside_repo(t *testing.T) {
	t.Parallel()

	if !gitcli.Available() {
		t.Skip("git not installed")
	}

	// GIT_CEILING_DIRECTORIES is not set, so pick a
	// temp dir; it is never under a repository in CI.
	assert.False(t, gitver.InsideWorkTree(os.TempDir()))
}

func TestHeadVersion_reads_committed_version(t *testing.T) {
	t.Parallel()

	if !gitcli.Available() {
		t.Skip("git not installed")
	}

	dir := initRepo(t, map[string]string{
		"package.yaml": "project:\n" +
			"  name: asf-example\n" +
			"  version: 0.3.0-dev2\n",
	})

	ve, err := gitver.HeadVersion(dir, "package.yaml")

	require.NoError(t, err)
	assert.Equal(t, "0.3.0-dev2", ve.String())
}

func TestHeadVersion_ignores_working_tree(t *testing.T) {
	t.Parallel()

	if !gitcli.Available() {
		t.Skip("git not installed")
	}

	dir := initRepo(t, map[string]string{
		"package.yaml": "project:\n" +
			"  name: asf-example\n" +
			"  version: 0.3.0\n",
	})

	// Uncommitted edits must not affect the result.
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "package.yaml"),
		[]byte("project:\n"+
			"  name: asf-example\n"+
			"  version: 9.9.9\n"),
		0o644, //nolint:gosec // test fixture
	))

	ve, err := gitver.HeadVersion(dir, "package.yaml")

	require.NoError(t, err)
	assert.Equal(t, "0.3.0", ve.String())
}

func TestHeadVersion_file_absent_at_HEAD(t *testing.T) {
	t.Parallel()

	if !gitcli.Available() {
		t.Skip("git not installed")
	}

	dir := initRepo(t, map[string]string{
		"README.md": "readme\n",
	})

	ve, err := gitver.HeadVersion(dir, "package.yaml")

	require.NoError(t, err)
	assert.Equal(t, "0.0.0", ve.String())
}

func TestHeadVersion_malformed_at_HEAD(t *testing.T) {
	t.Parallel()

	if !gitcli.Available() {
		t.Skip("git not installed")
	}

	dir := initRepo(t, map[string]string{
		"package.yaml": "project:\n" +
			"  name: asf-example\n" +
			"  version: abc\n",
	})

	_, err := gitver.HeadVersion(dir, "package.yaml")

	require.Error(t, err)
	assert.Contains(
		t, err.Error(), "reading version at HEAD",
	)
}
