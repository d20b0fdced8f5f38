package gitcli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apache/tooling-asf-example/gitcli"
)

func TestRun_success(t *testing.T) {
	t.Parallel()

	if !gitcli.Available() {
		t.Skip("git not installed")
	}

	out, err := gitcli.Run("", "--version")

	require.NoError(t, err)
	assert.Contains(t, out, "git version")
}

func TestRun_failure_includes_stderr(t *testing.T) {
	t.Parallel()

	if !gitcli.Available() {
		t.Skip("git not installed")
	}

	_, err := gitcli.Run(
		t.TempDir(), "rev-parse", "HEAD",
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "running git")
}

func TestRun_with_dir(t *testing.T) {
	t.Parallel()

	if !gitcli.Available() {
		t.Skip("git not installed")
	}

	dir := t.TempDir()

	_, err := gitcli.Run(dir, "init", "--quiet")

	require.NoError(t, err)
}
